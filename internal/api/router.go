package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"github.com/keerthi/accidents-backend-go/internal/config"
	"github.com/keerthi/accidents-backend-go/internal/handler"
	"github.com/keerthi/accidents-backend-go/internal/middleware"
	"github.com/keerthi/accidents-backend-go/internal/observability"
)

// SetupRouter wires middleware and the dashboard routes.
func SetupRouter(cfg *config.Config, logger zerolog.Logger, metrics *observability.Metrics,
	dashboard *handler.DashboardHandler, export *handler.ExportHandler) *gin.Engine {

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger(logger))
	r.Use(middleware.Metrics(metrics))
	r.Use(middleware.RateLimit(cfg.RateLimit, cfg.RateLimitWindow))

	// CORS middleware
	r.Use(func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	})

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "ok",
			"message": "Accident Analytics API is running",
		})
	})

	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := r.Group("/api/v1")
	{
		dash := api.Group("/dashboard")
		{
			dash.GET("/summary", dashboard.GetSummary)

			distributions := dash.Group("/distributions")
			{
				distributions.GET("/hour", dashboard.GetHourDistribution)
				distributions.GET("/day", dashboard.GetDayDistribution)
				distributions.GET("/month", dashboard.GetMonthDistribution)
				distributions.GET("/severity", dashboard.GetSeverityDistribution)
			}

			dash.GET("/states/top", dashboard.GetTopStates)
			dash.GET("/weather/top", dashboard.GetTopWeather)
			dash.GET("/weather/severity", dashboard.GetWeatherSeverity)
			dash.GET("/correlation", dashboard.GetCorrelation)
			dash.GET("/map/points", dashboard.GetMapPoints)
			dash.GET("/filters/options", dashboard.GetFilterOptions)
			dash.GET("/export", export.GetExport)
		}
	}

	return r
}
