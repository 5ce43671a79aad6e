package auth

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/PatelKrunal-11/stride/config"
	"github.com/PatelKrunal-11/stride/internal/middleware"
	"github.com/PatelKrunal-11/stride/pkg/rmiddleware"
)

func RegisterAuthRoutes(router *gin.RouterGroup, db *gorm.DB, appConfig *config.Config) {
	authRepo := NewAuthRepository(db)
	authController := NewAuthController(authRepo, appConfig)

	// Public routes
	authPublic := router.Group("/auth")
	{
		authPublic.POST("/register", authController.Register)
		authPublic.POST("/login", authController.Login)
		authPublic.POST("/refresh-token", authController.RefreshToken)
	}

	// Authenticated routes (protected by auth middleware)
	authProtected := router.Group("/auth")
	authProtected.Use(middleware.AuthMiddleware(appConfig.JWT.AccessTokenSecret, db))
	{
		authProtected.GET("/me", authController.GetProfile)
		authProtected.PUT("/me", authController.UpdateProfile)
		authProtected.POST("/change-password", authController.ChangePassword)
		authProtected.POST("/logout", authController.Logout)
	}

	// Admin surface
	admin := router.Group("/admin")
	admin.Use(middleware.AuthMiddleware(appConfig.JWT.AccessTokenSecret, db))
	admin.Use(rmiddleware.AdminMiddleware())
	{
		admin.GET("/users", authController.ListUsers)
		admin.PUT("/users/:id/role", authController.UpdateUserRole)
	}
}
