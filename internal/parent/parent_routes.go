package parent

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/PatelKrunal-11/stride/config"
	"github.com/PatelKrunal-11/stride/internal/attendance"
	"github.com/PatelKrunal-11/stride/internal/authz"
	"github.com/PatelKrunal-11/stride/internal/event"
	"github.com/PatelKrunal-11/stride/internal/invite"
	mw "github.com/PatelKrunal-11/stride/internal/middleware"
	"github.com/PatelKrunal-11/stride/internal/student"
	"github.com/PatelKrunal-11/stride/pkg/rmiddleware"
)

// RegisterParentRoutes sets up the read-only parent surface.
func RegisterParentRoutes(router *gin.RouterGroup, db *gorm.DB, appConfig *config.Config, studentRepo student.StudentRepository, jwtSecret string) {
	inviteRepo := invite.NewGormInviteRepository(db)
	eventRepo := event.NewEventRepository(db)
	attendanceRepo := attendance.NewGormAttendanceRepository(db)
	parentController := NewParentController(inviteRepo, studentRepo, eventRepo, attendanceRepo, appConfig)

	parentRoutes := router.Group("/parent")
	parentRoutes.Use(mw.AuthMiddleware(jwtSecret, db))
	parentRoutes.Use(rmiddleware.RequirePermission(authz.PermViewLinkedStudents))
	{
		parentRoutes.GET("/children", parentController.GetChildren)
		parentRoutes.GET("/children/:id", parentController.GetChild)
		parentRoutes.GET("/children/:id/performances", parentController.GetChildPerformances)
		parentRoutes.GET("/children/:id/attendance", parentController.GetChildAttendance)
	}
}
