package main

import (
	"os"
	"time"

	"github.com/leochenhaha/ForumAPI0924/internal/config"
	"github.com/leochenhaha/ForumAPI0924/internal/db"
	"github.com/leochenhaha/ForumAPI0924/internal/middleware"
	"github.com/leochenhaha/ForumAPI0924/internal/router"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func main() {
	// Load .env file
	if err := godotenv.Load(); err != nil {
		log.Info().Msg("No .env file found, reading env vars from system")
	}

	cfg := config.Load()

	// Logging
	zerolog.SetGlobalLevel(zerolog.InfoLevel)
	if cfg.Debug {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	// Initialize Database
	db.Init(cfg.DatabaseURL)

	// Initialize Gin
	r := gin.New()
	r.Use(middleware.RequestLogger(), gin.Recovery())

	router.RegisterRoutes(r, cfg)

	log.Info().Str("addr", cfg.Addr).Msg("starting server")
	if err := r.Run(cfg.Addr); err != nil {
		log.Fatal().Err(err).Msg("server exited")
	}
}
