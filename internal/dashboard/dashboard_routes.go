package dashboard

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/PatelKrunal-11/stride/config"
	"github.com/PatelKrunal-11/stride/internal/attendance"
	"github.com/PatelKrunal-11/stride/internal/authz"
	"github.com/PatelKrunal-11/stride/internal/event"
	mw "github.com/PatelKrunal-11/stride/internal/middleware"
	"github.com/PatelKrunal-11/stride/internal/student"
	"github.com/PatelKrunal-11/stride/pkg/rmiddleware"
)

// RegisterDashboardRoutes sets up the coach dashboard route.
func RegisterDashboardRoutes(router *gin.RouterGroup, db *gorm.DB, appConfig *config.Config, studentRepo student.StudentRepository, jwtSecret string) {
	eventRepo := event.NewEventRepository(db)
	attendanceRepo := attendance.NewGormAttendanceRepository(db)
	dashboardController := NewDashboardController(studentRepo, eventRepo, attendanceRepo, appConfig)

	dashboardRoutes := router.Group("/dashboard")
	dashboardRoutes.Use(mw.AuthMiddleware(jwtSecret, db))
	dashboardRoutes.Use(rmiddleware.RequirePermission(authz.PermManageRoster))
	{
		dashboardRoutes.GET("", dashboardController.GetDashboard)
	}
}
