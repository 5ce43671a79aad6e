package routes

import (
	"net/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"gorm.io/gorm"

	"github.com/PatelKrunal-11/stride/config"
	"github.com/PatelKrunal-11/stride/internal/attendance"
	"github.com/PatelKrunal-11/stride/internal/auth"
	"github.com/PatelKrunal-11/stride/internal/dashboard"
	"github.com/PatelKrunal-11/stride/internal/event"
	"github.com/PatelKrunal-11/stride/internal/invite"
	"github.com/PatelKrunal-11/stride/internal/middleware"
	"github.com/PatelKrunal-11/stride/internal/parent"
	"github.com/PatelKrunal-11/stride/internal/student"
	"github.com/PatelKrunal-11/stride/pkg/mailer"
)

func SetupRoutes(db *gorm.DB, appConfig *config.Config) *gin.Engine {
	r := gin.Default()
	r.Use(middleware.RequestID())

	corsConfig := cors.DefaultConfig()
	if appConfig.App.FrontendURL != "" {
		corsConfig.AllowOrigins = []string{appConfig.App.FrontendURL}
	} else {
		corsConfig.AllowAllOrigins = true
	}
	corsConfig.AddAllowHeaders("Authorization", "X-Request-ID")
	r.Use(cors.New(corsConfig))

	// Welcome page
	r.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"name": "Stride API",
			"docs": "/swagger/index.html",
		})
	})

	// Swagger route
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	mail := mailer.New(appConfig)
	jwtSecret := appConfig.JWT.AccessTokenSecret

	// Shared across the event, attendance, invite, parent and
	// dashboard surfaces for roster ownership checks.
	studentRepo := student.NewStudentRepository(db)

	// API routes
	api := r.Group("/api")
	auth.RegisterAuthRoutes(api, db, appConfig)
	student.RegisterStudentRoutes(api, db, appConfig)
	event.RegisterEventRoutes(api, db, appConfig, studentRepo, jwtSecret)
	attendance.RegisterAttendanceRoutes(api, db, appConfig, studentRepo, jwtSecret)
	invite.RegisterInviteRoutes(api, db, appConfig, studentRepo, mail, jwtSecret)
	parent.RegisterParentRoutes(api, db, appConfig, studentRepo, jwtSecret)
	dashboard.RegisterDashboardRoutes(api, db, appConfig, studentRepo, jwtSecret)

	return r
}
