package main

import (
	"dinebook/config"
	"dinebook/di"
	"dinebook/helper"
	"dinebook/shared/logger"

	"github.com/rs/zerolog/log"
)

// @title dinebook API
// @version 1.0
// @description Restaurant table reservations: tables, time slots, bookings and reviews.
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @securityDefinitions.apikey ApiKeyAuth
// @in header
// @name X-API-Key
func main() {
	cfg := config.Get()

	logger.InitLogger()

	sink := logger.AttachFileSink(cfg)
	defer sink.Close()

	logger.SetLogLevel(cfg)

	if cfg.DB.Postgres.AutoMigrate {
		if err := helper.Up(cfg); err != nil {
			log.Fatal().Err(err).Msg("Auto migration failed")
		}
	}

	http := di.InitializeService()
	http.Serve()
}
