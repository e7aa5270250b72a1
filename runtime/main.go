package main

import (
	"github.com/playgrove-labs/grove_api/services"

	"github.com/alphabatem/common/context"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
)

// @title Grove API
// @version 1.0
// @description Gamified progression backend for Grove
// @securityDefinitions.apikey Bearer
// @in header
// @name Authorization
func main() {
	err := godotenv.Load()
	if err != nil {
		log.Warn().Err(err).Msg("No .env file loaded")
	}

	ctx, err := context.NewCtx(
		&services.JWTService{},
		&services.PostgresService{},
		&services.RedisService{},
		&services.MinIOService{},

		&services.CatalogService{},
		&services.ProgressionService{},
		&services.MultiplayerService{},
		&services.TreeService{},
		&services.ShareService{},

		&services.AuthService{},
		&services.RateLimitService{},
		&services.MonitoringService{},
		&services.HttpService{},
	)
	if err != nil {
		log.Fatal().Err(err)
		return
	}

	err = ctx.Run()
	if err != nil {
		log.Fatal().Err(err)
		return
	}
}
