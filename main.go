package main

import (
	"log"

	"github.com/PatelKrunal-11/stride/config"
	_ "github.com/PatelKrunal-11/stride/docs"
	"github.com/PatelKrunal-11/stride/internal/attendance"
	"github.com/PatelKrunal-11/stride/internal/event"
	"github.com/PatelKrunal-11/stride/internal/invite"
	"github.com/PatelKrunal-11/stride/internal/student"
	"github.com/PatelKrunal-11/stride/internal/user"
	"github.com/PatelKrunal-11/stride/routes"
)

// @title Stride REST API
// @version 1.0
// @description Backend for the Stride athletics coaching app: rosters, training events, performances, rankings, attendance and parent access.
// @host localhost:8088
// @BasePath /api
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	if err := config.Initialize(); err != nil {
		log.Fatalf("Failed to initialize application: %v", err)
	}

	cfg := config.GetConfig()

	err := config.DB.AutoMigrate(
		&user.User{}, &user.RefreshToken{},
		&student.Student{},
		&event.Event{}, &event.EventParticipant{}, &event.Performance{},
		&attendance.Attendance{},
		&invite.ParentInvite{},
	)
	if err != nil {
		log.Fatalf("AutoMigrate failed: %v", err)
	}
	log.Println("AutoMigrate successful")

	r := routes.SetupRoutes(config.DB, cfg)

	// Use port from loaded configuration
	log.Printf("Starting server on port %s in %s mode\n", cfg.App.Port, cfg.App.Env)
	if err := r.Run(":" + cfg.App.Port); err != nil {
		log.Fatalf("Failed to run server: %v", err)
	}
}
