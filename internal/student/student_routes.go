package student

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/PatelKrunal-11/stride/config"
	"github.com/PatelKrunal-11/stride/internal/authz"
	"github.com/PatelKrunal-11/stride/internal/middleware"
	"github.com/PatelKrunal-11/stride/pkg/rmiddleware"
)

// RegisterStudentRoutes wires the roster endpoints.
func RegisterStudentRoutes(router *gin.RouterGroup, db *gorm.DB, appConfig *config.Config) {
	studentRepo := NewStudentRepository(db)
	studentController := NewStudentController(studentRepo, appConfig)

	students := router.Group("/students")
	students.Use(middleware.AuthMiddleware(appConfig.JWT.AccessTokenSecret, db))
	students.Use(rmiddleware.RequirePermission(authz.PermManageRoster))
	{
		students.POST("", studentController.CreateStudent)
		students.GET("", studentController.GetStudents)
		students.GET("/:id", studentController.GetStudentByID)
		students.PUT("/:id", studentController.UpdateStudent)
		students.DELETE("/:id", studentController.DeleteStudent)
	}
}
