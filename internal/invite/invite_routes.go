package invite

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/PatelKrunal-11/stride/config"
	"github.com/PatelKrunal-11/stride/internal/authz"
	mw "github.com/PatelKrunal-11/stride/internal/middleware"
	"github.com/PatelKrunal-11/stride/internal/student"
	"github.com/PatelKrunal-11/stride/pkg/mailer"
	"github.com/PatelKrunal-11/stride/pkg/rmiddleware"
)

// RegisterInviteRoutes sets up all parent invite routes.
func RegisterInviteRoutes(router *gin.RouterGroup, db *gorm.DB, appConfig *config.Config, studentRepo student.StudentRepository, mail mailer.Mailer, jwtSecret string) {
	inviteRepo := NewGormInviteRepository(db)
	inviteController := NewInviteController(inviteRepo, studentRepo, mail, appConfig)

	// Coach-side invite management
	coachRoutes := router.Group("/invites")
	coachRoutes.Use(mw.AuthMiddleware(jwtSecret, db))
	coachRoutes.Use(rmiddleware.RequirePermission(authz.PermIssueInvites))
	{
		coachRoutes.POST("", inviteController.CreateInvite)
		coachRoutes.GET("", inviteController.GetInvites)
		coachRoutes.DELETE("/:id", inviteController.RevokeInvite)
	}

	// Claiming needs a login but no particular role; the claim itself
	// assigns the parent role.
	claimRoutes := router.Group("/invites")
	claimRoutes.Use(mw.AuthMiddleware(jwtSecret, db))
	{
		claimRoutes.GET("/validate", inviteController.ValidateInvite)
		claimRoutes.POST("/claim", inviteController.ClaimInvite)
	}
}
