package main

import (
	"os"

	"github.com/rs/zerolog/log"

	"github.com/arkasetya/field-booking-backend/internal/config"
	"github.com/arkasetya/field-booking-backend/internal/db"
)

// Usage: migrate [up|down]
func main() {
	direction := "up"
	if len(os.Args) > 1 {
		direction = os.Args[1]
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load config")
	}

	sourceURL := "file://" + cfg.MigrationsDir

	switch direction {
	case "up":
		if err := db.MigrateUp(sourceURL, cfg.DBDSN); err != nil {
			log.Fatal().Err(err).Msg("migration up failed")
		}
		log.Info().Msg("migrations applied")
	case "down":
		if err := db.MigrateDown(sourceURL, cfg.DBDSN); err != nil {
			log.Fatal().Err(err).Msg("migration down failed")
		}
		log.Info().Msg("migration rolled back")
	default:
		log.Fatal().Str("direction", direction).Msg("unknown direction, expected up or down")
	}
}
