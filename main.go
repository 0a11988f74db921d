package main

import (
	"context"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
)

func main() {
	// .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()

	cfg := loadConfig()
	setupLogger(cfg)

	if cfg.DBURL == "" {
		log.Fatal().Msg("DB_URL is required")
	}
	if cfg.JWTSecret == "" {
		log.Fatal().Msg("JWT_SECRET is required")
	}

	db := getDBPool(cfg.DBURL)
	defer db.Close()

	h := &Handler{
		db:    db,
		agent: newAgent(cfg),
		cache: newCache(cfg.RedisURL),
		cfg:   cfg,
	}

	if cfg.Environment != "development" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(requestLogger(), gin.Recovery())
	_ = router.SetTrustedProxies(nil)
	h.registerRoutes(router)

	scheduler := newReportScheduler(db, h.agent, h.cache, cfg.ReportHour)
	scheduler.start(context.Background())

	log.Info().Str("port", cfg.Port).Str("env", cfg.Environment).Msg("server starting")
	if err := router.Run(":" + cfg.Port); err != nil {
		log.Error().Err(err).Msg("server exited")
		os.Exit(1)
	}
}
