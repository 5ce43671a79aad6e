package attendance

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/PatelKrunal-11/stride/config"
	"github.com/PatelKrunal-11/stride/internal/authz"
	mw "github.com/PatelKrunal-11/stride/internal/middleware"
	"github.com/PatelKrunal-11/stride/internal/student"
	"github.com/PatelKrunal-11/stride/pkg/rmiddleware"
)

// RegisterAttendanceRoutes sets up all attendance routes.
func RegisterAttendanceRoutes(router *gin.RouterGroup, db *gorm.DB, appConfig *config.Config, studentRepo student.StudentRepository, jwtSecret string) {
	attendanceRepo := NewGormAttendanceRepository(db)
	attendanceController := NewAttendanceController(attendanceRepo, studentRepo, appConfig)

	attendanceRoutes := router.Group("/attendance")
	attendanceRoutes.Use(mw.AuthMiddleware(jwtSecret, db))
	attendanceRoutes.Use(rmiddleware.RequirePermission(authz.PermMarkAttendance))
	{
		attendanceRoutes.POST("", attendanceController.MarkAttendance)
		attendanceRoutes.POST("/bulk", attendanceController.BulkMarkAttendance)
		attendanceRoutes.GET("", attendanceController.GetAttendanceByDate)
		attendanceRoutes.GET("/students/:id", attendanceController.GetStudentAttendance)
		attendanceRoutes.GET("/stats/daily", attendanceController.GetDailyStats)
		attendanceRoutes.GET("/stats/monthly", attendanceController.GetMonthlyStats)
	}
}
