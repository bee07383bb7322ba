package handler

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/keerthi/accidents-backend-go/internal/repository"
	"github.com/keerthi/accidents-backend-go/internal/service"
	"github.com/keerthi/accidents-backend-go/pkg/response"
)

// ExportHandler handles HTTP requests for workbook exports.
type ExportHandler struct {
	repo   *repository.AccidentRepository
	export *service.ExportService
	logger zerolog.Logger
}

// NewExportHandler creates a new export handler.
func NewExportHandler(repo *repository.AccidentRepository, export *service.ExportService, logger zerolog.Logger) *ExportHandler {
	return &ExportHandler{
		repo:   repo,
		export: export,
		logger: logger,
	}
}

// GetExport handles GET /api/v1/dashboard/export
func (h *ExportHandler) GetExport(c *gin.Context) {
	filter, ok := bindFilter(c)
	if !ok {
		return
	}

	f, err := h.export.Workbook(h.repo.Filter(filter))
	if err != nil {
		h.logger.Error().Err(err).Msg("export workbook failed")
		response.InternalError(c, "Failed to build export workbook")
		return
	}
	defer f.Close()

	filename := fmt.Sprintf("accident-analytics-%s.xlsx", time.Now().Format("20060102-150405"))
	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Status(http.StatusOK)

	if err := f.Write(c.Writer); err != nil {
		h.logger.Error().Err(err).Msg("export write failed")
	}
}
