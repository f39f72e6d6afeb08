package main

import (
	"os"

	"github.com/ctecscope/ctecscope/internal/pkg/logger"
	"github.com/ctecscope/ctecscope/internal/server"
)

// @title CTECScope API
// @version 1.0
// @description Search and aggregation API over CTEC course evaluation reports

// @license.name MIT
// @license.url https://opensource.org/licenses/MIT

// @host localhost:8080
// @BasePath /api/v1
// @schemes http https

func main() {
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
