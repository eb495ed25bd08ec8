package handler

import (
	"context"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/interview-flow-api/internal/models"
	appErrors "github.com/noah-isme/interview-flow-api/pkg/errors"
	"github.com/noah-isme/interview-flow-api/pkg/response"
)

type notificationService interface {
	List(ctx context.Context, filter models.NotificationFilter) ([]models.Notification, error)
}

// NotificationHandler exposes the reminder feed.
type NotificationHandler struct {
	service notificationService
}

// NewNotificationHandler constructs the handler.
func NewNotificationHandler(service notificationService) *NotificationHandler {
	return &NotificationHandler{service: service}
}

// List godoc
// @Summary List the caller's notifications
// @Tags Notifications
// @Produce json
// @Param sessionId query string false "Filter by session"
// @Success 200 {object} response.Envelope
// @Router /notifications [get]
func (h *NotificationHandler) List(c *gin.Context) {
	actor := actorFromContext(c)
	if actor == nil {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "actor headers are required"))
		return
	}
	filter := models.NotificationFilter{
		TargetID:  actor.ID,
		SessionID: strings.TrimSpace(c.Query("sessionId")),
		Limit:     queryInt(c, "pageSize", 50),
	}
	if page := queryInt(c, "page", 1); page > 1 {
		filter.Offset = (page - 1) * filter.Limit
	}
	notifications, err := h.service.List(c.Request.Context(), filter)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, notifications, nil)
}
