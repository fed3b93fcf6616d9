package main

import (
	"os"

	"github.com/yigit/degreeplan/internal/pkg/logger" // used before the configured logger exists
	"github.com/yigit/degreeplan/internal/server"
)

// @title Degree Planner API
// @version 1.0
// @description Degree audits and next-term schedule planning for students

// @host localhost:8080
// @BasePath /api/v1
// @schemes http https

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description JWT token for authorization

func main() {
	// Load config, connect and migrate the database, load the catalog and wire the handlers
	srv, err := server.NewServer()
	if err != nil {
		// Setup steps log their own details; this records which phase failed
		logger.Error().Err(err).Msg("Failed to initialize server")
		os.Exit(1)
	}

	// Serve until an interrupt or terminate signal, then shut down gracefully
	if err := srv.Run(); err != nil {
		// Run logs startup failures itself; shutdown errors surface here
		logger.Error().Err(err).Msg("Server execution failed or shutdown encountered errors")
		os.Exit(1)
	}

	// Reaching here means the HTTP server, Redis and database were closed cleanly
	logger.Info().Msg("Application finished gracefully.")
}
