package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/keerthi/accidents-backend-go/internal/models"
	"github.com/keerthi/accidents-backend-go/internal/repository"
	"github.com/keerthi/accidents-backend-go/internal/service"
	"github.com/keerthi/accidents-backend-go/pkg/response"
)

// DashboardHandler handles HTTP requests for dashboard aggregates.
type DashboardHandler struct {
	repo      *repository.AccidentRepository
	analytics *service.AnalyticsService
	maps      *service.MapService
}

// NewDashboardHandler creates a new dashboard handler.
func NewDashboardHandler(repo *repository.AccidentRepository, analytics *service.AnalyticsService, maps *service.MapService) *DashboardHandler {
	return &DashboardHandler{
		repo:      repo,
		analytics: analytics,
		maps:      maps,
	}
}

// bindFilter binds the sidebar filter criteria from query parameters.
func bindFilter(c *gin.Context) (models.AccidentFilter, bool) {
	var filter models.AccidentFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		response.BadRequest(c, "Invalid filter parameters: "+err.Error())
		return filter, false
	}
	return filter, true
}

// GetSummary handles GET /api/v1/dashboard/summary
func (h *DashboardHandler) GetSummary(c *gin.Context) {
	filter, ok := bindFilter(c)
	if !ok {
		return
	}
	response.Success(c, h.analytics.Summary(h.repo.Filter(filter)))
}

// GetHourDistribution handles GET /api/v1/dashboard/distributions/hour
func (h *DashboardHandler) GetHourDistribution(c *gin.Context) {
	filter, ok := bindFilter(c)
	if !ok {
		return
	}
	response.Success(c, h.analytics.ByHour(h.repo.Filter(filter)))
}

// GetDayDistribution handles GET /api/v1/dashboard/distributions/day
func (h *DashboardHandler) GetDayDistribution(c *gin.Context) {
	filter, ok := bindFilter(c)
	if !ok {
		return
	}
	response.Success(c, h.analytics.ByWeekday(h.repo.Filter(filter)))
}

// GetMonthDistribution handles GET /api/v1/dashboard/distributions/month
func (h *DashboardHandler) GetMonthDistribution(c *gin.Context) {
	filter, ok := bindFilter(c)
	if !ok {
		return
	}
	response.Success(c, h.analytics.ByMonth(h.repo.Filter(filter)))
}

// GetSeverityDistribution handles GET /api/v1/dashboard/distributions/severity
func (h *DashboardHandler) GetSeverityDistribution(c *gin.Context) {
	filter, ok := bindFilter(c)
	if !ok {
		return
	}
	response.Success(c, h.analytics.BySeverity(h.repo.Filter(filter)))
}

// GetTopStates handles GET /api/v1/dashboard/states/top
func (h *DashboardHandler) GetTopStates(c *gin.Context) {
	filter, ok := bindFilter(c)
	if !ok {
		return
	}
	response.Success(c, h.analytics.TopStates(h.repo.Filter(filter)))
}

// GetTopWeather handles GET /api/v1/dashboard/weather/top
func (h *DashboardHandler) GetTopWeather(c *gin.Context) {
	filter, ok := bindFilter(c)
	if !ok {
		return
	}
	response.Success(c, h.analytics.TopWeather(h.repo.Filter(filter)))
}

// GetWeatherSeverity handles GET /api/v1/dashboard/weather/severity
func (h *DashboardHandler) GetWeatherSeverity(c *gin.Context) {
	filter, ok := bindFilter(c)
	if !ok {
		return
	}
	response.Success(c, h.analytics.SeverityByWeather(h.repo.Filter(filter)))
}

// GetCorrelation handles GET /api/v1/dashboard/correlation
func (h *DashboardHandler) GetCorrelation(c *gin.Context) {
	filter, ok := bindFilter(c)
	if !ok {
		return
	}
	response.Success(c, h.analytics.Correlation(h.repo.Filter(filter)))
}

// GetMapPoints handles GET /api/v1/dashboard/map/points
func (h *DashboardHandler) GetMapPoints(c *gin.Context) {
	filter, ok := bindFilter(c)
	if !ok {
		return
	}

	capStr := c.DefaultQuery("cap", "0")
	mapCap, err := strconv.Atoi(capStr)
	if err != nil {
		response.BadRequest(c, "Invalid cap parameter")
		return
	}

	response.Success(c, h.maps.Points(h.repo.Filter(filter), mapCap))
}

// GetFilterOptions handles GET /api/v1/dashboard/filters/options
func (h *DashboardHandler) GetFilterOptions(c *gin.Context) {
	response.Success(c, h.analytics.FilterOptions(h.repo.Table(), h.maps.DefaultCap()))
}
