package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/interview-flow-api/internal/dto"
	"github.com/noah-isme/interview-flow-api/pkg/response"
)

type dashboardService interface {
	Summary(ctx context.Context, bypassCache bool) (*dto.DashboardSummary, error)
}

// DashboardHandler exposes the workflow overview.
type DashboardHandler struct {
	service dashboardService
}

// NewDashboardHandler constructs the handler.
func NewDashboardHandler(service dashboardService) *DashboardHandler {
	return &DashboardHandler{service: service}
}

// Summary godoc
// @Summary Bucket counts and scheduling urgency
// @Tags Dashboard
// @Produce json
// @Param refresh query bool false "Bypass the cached summary"
// @Success 200 {object} response.Envelope
// @Router /dashboard/summary [get]
func (h *DashboardHandler) Summary(c *gin.Context) {
	bypass := c.Query("refresh") == "true"
	summary, err := h.service.Summary(c.Request.Context(), bypass)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, summary, nil)
}
