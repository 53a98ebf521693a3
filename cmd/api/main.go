package main

import (
	"os"

	"github.com/joho/godotenv"
	"github.com/lilnurik/uniadmit/internal/pkg/logger"
	"github.com/lilnurik/uniadmit/internal/server"
)

// @title UniAdmit API
// @version 1.0
// @description Backend API for the university admission portal: faculties, exam slots and applications.

// @license.name MIT
// @license.url https://opensource.org/licenses/MIT

// @host localhost:7077
// @BasePath /api
// @schemes http https

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description JWT token for administrator authorization

func main() {
	// .env is optional, real deployments use environment variables
	if err := godotenv.Load(); err == nil {
		logger.Debug().Msg("Loaded environment from .env file")
	}

	srv, err := server.NewServer()
	if err != nil {
		logger.Error().Err(err).Msg("Failed to initialize server")
		os.Exit(1)
	}

	if err := srv.Run(); err != nil {
		logger.Error().Err(err).Msg("Server execution failed or shutdown encountered errors")
		os.Exit(1)
	}

	logger.Info().Msg("Application finished gracefully.")
}
