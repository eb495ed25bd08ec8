package handler

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/interview-flow-api/internal/service"
	"github.com/noah-isme/interview-flow-api/pkg/response"
)

type exportService interface {
	Render(ctx context.Context, sessionID string, format service.ExportFormat) (*service.ExportResult, error)
}

// ExportHandler serves feedback summary downloads.
type ExportHandler struct {
	service exportService
}

// NewExportHandler constructs the handler.
func NewExportHandler(service exportService) *ExportHandler {
	return &ExportHandler{service: service}
}

// Download godoc
// @Summary Export a completed session's feedback summary
// @Tags Interviews
// @Produce text/csv
// @Produce application/pdf
// @Param id path string true "Session ID"
// @Param format query string false "csv or pdf (default csv)"
// @Success 200 {file} file
// @Router /interviews/{id}/export [get]
func (h *ExportHandler) Download(c *gin.Context) {
	format := service.ExportFormat(strings.ToLower(c.DefaultQuery("format", "csv")))
	result, err := h.service.Render(c.Request.Context(), c.Param("id"), format)
	if err != nil {
		response.Error(c, err)
		return
	}
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", result.FileName))
	c.Data(http.StatusOK, result.ContentType, result.Data)
}
