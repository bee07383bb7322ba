package main

import (
	"log"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/keerthi/accidents-backend-go/internal/api"
	"github.com/keerthi/accidents-backend-go/internal/config"
	"github.com/keerthi/accidents-backend-go/internal/dataset"
	"github.com/keerthi/accidents-backend-go/internal/handler"
	"github.com/keerthi/accidents-backend-go/internal/observability"
	"github.com/keerthi/accidents-backend-go/internal/repository"
	"github.com/keerthi/accidents-backend-go/internal/service"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load configuration:", err)
	}

	level, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil {
		level = zerolog.InfoLevel
	}
	logger := zerolog.New(os.Stdout).Level(level).With().Timestamp().Logger()

	// The dataset is loaded once and injected; a missing or corrupt source
	// is fatal at startup.
	table, err := dataset.Load(cfg.DataPath, logger)
	if err != nil {
		log.Fatal("Failed to load dataset:", err)
	}

	metrics := observability.NewMetrics()
	metrics.DatasetRows.Set(float64(table.Len()))

	repo := repository.NewAccidentRepository(table, cfg.FilterCacheSize, metrics)
	analytics := service.NewAnalyticsService(cfg.TopN)
	maps := service.NewMapService(cfg.MapSampleCap, cfg.MapSampleSeed)
	export := service.NewExportService(analytics)

	dashboardHandler := handler.NewDashboardHandler(repo, analytics, maps)
	exportHandler := handler.NewExportHandler(repo, export, logger)

	gin.SetMode(gin.ReleaseMode)
	router := api.SetupRouter(cfg, logger, metrics, dashboardHandler, exportHandler)

	logger.Info().Str("port", cfg.Port).Msg("server starting")
	if err := router.Run(cfg.Port); err != nil {
		log.Fatal("Failed to start server:", err)
	}
}
