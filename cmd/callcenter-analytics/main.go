package main

import (
	"fmt"
	"os"

	"callcenter-analytics/internal/config"
	"callcenter-analytics/internal/db"
	httphandler "callcenter-analytics/internal/http"
	"callcenter-analytics/internal/logger"
	"callcenter-analytics/internal/repository"
	"callcenter-analytics/internal/service"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	appLogger := logger.New(cfg.Environment)

	database, err := db.New(cfg, appLogger)
	if err != nil {
		appLogger.Fatal().Err(err).Msg("failed to connect database")
	}

	cdrRepo := repository.NewCDRRepository(database)
	analyticsService := service.NewAnalyticsService(cdrRepo, appLogger, cfg.Analytics.DefaultPeriod, cfg.Analytics.TopLimit, cfg.Analytics.PageLimit)

	handler := httphandler.NewHandler(analyticsService, appLogger)
	router := httphandler.NewRouter(handler, appLogger, cfg.Environment, cfg.HTTP.AllowedOrigins)

	addr := fmt.Sprintf("%s:%d", cfg.HTTP.Host, cfg.HTTP.Port)
	appLogger.Info().Str("addr", addr).Msg("starting callcenter analytics service")

	if err := router.Run(addr); err != nil {
		appLogger.Error().Err(err).Msg("failed to start server")
		os.Exit(1)
	}
}
