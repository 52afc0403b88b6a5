package main

import (
	"os"

	"github.com/joho/godotenv"

	"github.com/oliveapp/olive-server/internal/logger"
	"github.com/oliveapp/olive-server/oliveservice"
)

func main() {
	// Optional .env for local development; absence is fine.
	_ = godotenv.Load()

	if err := oliveservice.Run(); err != nil {
		log := logger.New("olive-service")
		log.Error().Err(err).Msg("service exited with error")
		os.Exit(1)
	}
}
