package main

import (
	"context"
	"os"

	"github.com/yigit/collegesocial/internal/pkg/logger"
	"github.com/yigit/collegesocial/internal/server"
)

// @title College Social API
// @version 1.0
// @description API for the college social network: feed, events, profiles, direct messages and roster onboarding
// @termsOfService http://swagger.io/terms/

// @contact.name API Support
// @contact.email support@collegesocial.local

// @license.name MIT
// @license.url https://opensource.org/licenses/MIT

// @host localhost:8080
// @BasePath /api
// @schemes http https

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Student JWT as "Bearer <token>"

// @securityDefinitions.apikey AdminAuth
// @in header
// @name Authorization
// @description Administrative token as "Bearer <token>"

func main() {
	srv, err := server.NewServer(context.Background())
	if err != nil {
		// Details are logged by the bootstrap steps.
		logger.Error().Err(err).Msg("Failed to initialize server")
		os.Exit(1)
	}

	if err := srv.Run(); err != nil {
		logger.Error().Err(err).Msg("Server execution failed or shutdown encountered errors")
		os.Exit(1)
	}

	logger.Info().Msg("Application finished gracefully.")
}
