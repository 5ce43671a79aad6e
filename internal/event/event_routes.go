package event

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/PatelKrunal-11/stride/config"
	"github.com/PatelKrunal-11/stride/internal/authz"
	mw "github.com/PatelKrunal-11/stride/internal/middleware"
	"github.com/PatelKrunal-11/stride/internal/student"
	"github.com/PatelKrunal-11/stride/pkg/rmiddleware"
)

// RegisterEventRoutes sets up all event and performance routes.
func RegisterEventRoutes(router *gin.RouterGroup, db *gorm.DB, appConfig *config.Config, studentRepo student.StudentRepository, jwtSecret string) {
	eventRepo := NewEventRepository(db)
	eventController := NewEventController(eventRepo, studentRepo, appConfig)

	eventRoutes := router.Group("/events")
	eventRoutes.Use(mw.AuthMiddleware(jwtSecret, db))
	eventRoutes.Use(rmiddleware.RequirePermission(authz.PermManageEvents))
	{
		eventRoutes.POST("", eventController.CreateEvent)
		eventRoutes.GET("", eventController.GetEvents)
		eventRoutes.GET("/:id", eventController.GetEventByID)
		eventRoutes.PUT("/:id", eventController.UpdateEvent)
		eventRoutes.DELETE("/:id", eventController.DeleteEvent)

		// Lifecycle
		eventRoutes.POST("/:id/start", eventController.StartEvent)
		eventRoutes.POST("/:id/finish", eventController.FinishEvent)

		// Participants
		eventRoutes.POST("/:id/participants", eventController.AddParticipants)
		eventRoutes.DELETE("/:id/participants/:studentId", eventController.RemoveParticipant)

		// Performances and ranking
		eventRoutes.GET("/:id/performances", eventController.GetEventPerformances)
		eventRoutes.GET("/:id/ranking", eventController.GetEventRanking)
	}

	// Recording goes through its own permission so role policy can
	// split event administration from score entry.
	recordRoutes := router.Group("/events")
	recordRoutes.Use(mw.AuthMiddleware(jwtSecret, db))
	recordRoutes.Use(rmiddleware.RequirePermission(authz.PermRecordPerformances))
	{
		recordRoutes.POST("/:id/performances", eventController.RecordPerformance)
	}

	// Student history lives under /students but is served here because
	// it reads the performances table.
	historyRoutes := router.Group("/students")
	historyRoutes.Use(mw.AuthMiddleware(jwtSecret, db))
	historyRoutes.Use(rmiddleware.RequirePermission(authz.PermManageRoster))
	{
		historyRoutes.GET("/:id/performances", eventController.GetStudentPerformances)
	}
}
