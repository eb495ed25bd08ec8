package handler

import (
	"context"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/interview-flow-api/internal/dto"
	"github.com/noah-isme/interview-flow-api/internal/models"
	appErrors "github.com/noah-isme/interview-flow-api/pkg/errors"
	"github.com/noah-isme/interview-flow-api/pkg/response"
)

type sessionService interface {
	Create(ctx context.Context, req dto.CreateSessionRequest, actorID string) (*models.InterviewSession, error)
	CreateBatch(ctx context.Context, req dto.BatchCreateSessionRequest, actorID string) (*dto.BatchCreateSessionResult, error)
	List(ctx context.Context, query dto.SessionQuery) ([]dto.SessionItem, int, error)
	Get(ctx context.Context, id string) (*dto.SessionItem, error)
	Schedule(ctx context.Context, id string, req dto.ScheduleSessionRequest, actorID string) (*models.InterviewSession, error)
	GiveDirectFeedback(ctx context.Context, id string, version int, actorID string) (*models.InterviewSession, error)
	EnterMeeting(ctx context.Context, id string, version int, actorID string) (*models.InterviewSession, error)
	SubmitFeedback(ctx context.Context, id string, req dto.SubmitFeedbackRequest, actorID string) (*models.InterviewSession, error)
	ConfirmResult(ctx context.Context, id string, version int, actorID string) (*models.InterviewSession, error)
	Cancel(ctx context.Context, id string, version int, actorID string) error
	Remind(ctx context.Context, id string, actorID string) (*models.Notification, error)
}

type summaryInvalidator interface {
	Invalidate(ctx context.Context)
}

// SessionHandler exposes REST endpoints for the interview workflow.
type SessionHandler struct {
	service   sessionService
	dashboard summaryInvalidator
}

// NewSessionHandler constructs the handler. The dashboard invalidator is
// optional; when present every successful mutation drops the cached
// summary.
func NewSessionHandler(service sessionService, dashboard summaryInvalidator) *SessionHandler {
	return &SessionHandler{service: service, dashboard: dashboard}
}

// Create godoc
// @Summary Create an interview session
// @Tags Interviews
// @Accept json
// @Produce json
// @Param payload body dto.CreateSessionRequest true "Session payload"
// @Success 201 {object} response.Envelope
// @Router /interviews [post]
func (h *SessionHandler) Create(c *gin.Context) {
	var req dto.CreateSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "invalid session payload"))
		return
	}
	session, err := h.service.Create(c.Request.Context(), req, actorID(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	h.invalidateSummary(c)
	response.Created(c, session)
}

// CreateBatch godoc
// @Summary Create interview sessions for several employees
// @Tags Interviews
// @Accept json
// @Produce json
// @Param payload body dto.BatchCreateSessionRequest true "Batch payload"
// @Success 200 {object} response.Envelope
// @Router /interviews/batch [post]
func (h *SessionHandler) CreateBatch(c *gin.Context) {
	var req dto.BatchCreateSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "invalid batch payload"))
		return
	}
	result, err := h.service.CreateBatch(c.Request.Context(), req, actorID(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	h.invalidateSummary(c)
	response.JSON(c, http.StatusOK, result, nil)
}

// List godoc
// @Summary List interview sessions
// @Tags Interviews
// @Produce json
// @Param bucket query string false "Workflow bucket"
// @Param employeeId query string false "Employee ID"
// @Param managerId query string false "Manager ID"
// @Param period query string false "Review period"
// @Param department query string false "Department"
// @Param page query int false "Page"
// @Param pageSize query int false "Page size"
// @Success 200 {object} response.Envelope
// @Router /interviews [get]
func (h *SessionHandler) List(c *gin.Context) {
	query := dto.SessionQuery{
		EmployeeID:      strings.TrimSpace(c.Query("employeeId")),
		ManagerID:       strings.TrimSpace(c.Query("managerId")),
		Period:          strings.TrimSpace(c.Query("period")),
		AssessmentCycle: strings.TrimSpace(c.Query("assessmentCycle")),
		Department:      strings.TrimSpace(c.Query("department")),
		Page:            queryInt(c, "page", 1),
		PageSize:        queryInt(c, "pageSize", 50),
	}
	if raw := c.Query("bucket"); raw != "" {
		query.Bucket = models.Bucket(strings.ToUpper(strings.TrimSpace(raw)))
		if _, ok := models.CriteriaForBucket(query.Bucket); !ok {
			response.Error(c, appErrors.Clone(appErrors.ErrValidation, "unknown bucket"))
			return
		}
	}
	items, total, err := h.service.List(c.Request.Context(), query)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, items, &models.Pagination{
		Page:       query.Page,
		PageSize:   query.PageSize,
		TotalCount: total,
	})
}

// Get godoc
// @Summary Get an interview session
// @Tags Interviews
// @Produce json
// @Param id path string true "Session ID"
// @Success 200 {object} response.Envelope
// @Router /interviews/{id} [get]
func (h *SessionHandler) Get(c *gin.Context) {
	item, err := h.service.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, item, nil)
}

// Schedule godoc
// @Summary Schedule the interview meeting
// @Tags Interviews
// @Accept json
// @Produce json
// @Param id path string true "Session ID"
// @Param payload body dto.ScheduleSessionRequest true "Meeting payload"
// @Success 200 {object} response.Envelope
// @Router /interviews/{id}/schedule [post]
func (h *SessionHandler) Schedule(c *gin.Context) {
	var req dto.ScheduleSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "invalid schedule payload"))
		return
	}
	session, err := h.service.Schedule(c.Request.Context(), c.Param("id"), req, actorID(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	h.invalidateSummary(c)
	response.JSON(c, http.StatusOK, session, nil)
}

// DirectFeedback godoc
// @Summary Give feedback immediately, skipping the meeting
// @Tags Interviews
// @Accept json
// @Produce json
// @Param id path string true "Session ID"
// @Param payload body dto.TransitionRequest false "Version guard"
// @Success 200 {object} response.Envelope
// @Router /interviews/{id}/direct-feedback [post]
func (h *SessionHandler) DirectFeedback(c *gin.Context) {
	req := bindTransition(c)
	session, err := h.service.GiveDirectFeedback(c.Request.Context(), c.Param("id"), req.Version, actorID(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	h.invalidateSummary(c)
	response.JSON(c, http.StatusOK, session, nil)
}

// EnterMeeting godoc
// @Summary Enter the scheduled meeting and start feedback authoring
// @Tags Interviews
// @Accept json
// @Produce json
// @Param id path string true "Session ID"
// @Param payload body dto.TransitionRequest false "Version guard"
// @Success 200 {object} response.Envelope
// @Router /interviews/{id}/enter-meeting [post]
func (h *SessionHandler) EnterMeeting(c *gin.Context) {
	req := bindTransition(c)
	session, err := h.service.EnterMeeting(c.Request.Context(), c.Param("id"), req.Version, actorID(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	h.invalidateSummary(c)
	response.JSON(c, http.StatusOK, session, nil)
}

// SubmitFeedback godoc
// @Summary Submit authored feedback for employee confirmation
// @Tags Interviews
// @Accept json
// @Produce json
// @Param id path string true "Session ID"
// @Param payload body dto.SubmitFeedbackRequest true "Feedback payload"
// @Success 200 {object} response.Envelope
// @Router /interviews/{id}/feedback [post]
func (h *SessionHandler) SubmitFeedback(c *gin.Context) {
	var req dto.SubmitFeedbackRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "invalid feedback payload"))
		return
	}
	session, err := h.service.SubmitFeedback(c.Request.Context(), c.Param("id"), req, actorID(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	h.invalidateSummary(c)
	response.JSON(c, http.StatusOK, session, nil)
}

// Confirm godoc
// @Summary Confirm the interview result
// @Tags Interviews
// @Accept json
// @Produce json
// @Param id path string true "Session ID"
// @Param payload body dto.TransitionRequest false "Version guard"
// @Success 200 {object} response.Envelope
// @Router /interviews/{id}/confirm [post]
func (h *SessionHandler) Confirm(c *gin.Context) {
	req := bindTransition(c)
	session, err := h.service.ConfirmResult(c.Request.Context(), c.Param("id"), req.Version, actorID(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	h.invalidateSummary(c)
	response.JSON(c, http.StatusOK, session, nil)
}

// Cancel godoc
// @Summary Cancel a session that has not started
// @Tags Interviews
// @Param id path string true "Session ID"
// @Param version query int false "Version guard"
// @Success 204
// @Router /interviews/{id} [delete]
func (h *SessionHandler) Cancel(c *gin.Context) {
	version := queryInt(c, "version", 0)
	if err := h.service.Cancel(c.Request.Context(), c.Param("id"), version, actorID(c)); err != nil {
		response.Error(c, err)
		return
	}
	h.invalidateSummary(c)
	response.NoContent(c)
}

// Remind godoc
// @Summary Send a reminder to the participant whose action is pending
// @Tags Interviews
// @Produce json
// @Param id path string true "Session ID"
// @Success 202 {object} response.Envelope
// @Router /interviews/{id}/remind [post]
func (h *SessionHandler) Remind(c *gin.Context) {
	notification, err := h.service.Remind(c.Request.Context(), c.Param("id"), actorID(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusAccepted, notification, nil)
}

func (h *SessionHandler) invalidateSummary(c *gin.Context) {
	if h.dashboard != nil {
		h.dashboard.Invalidate(c.Request.Context())
	}
}

// bindTransition tolerates an empty body: transitions without payloads may
// be invoked with no version guard at all.
func bindTransition(c *gin.Context) dto.TransitionRequest {
	var req dto.TransitionRequest
	if c.Request.Body != nil && c.Request.ContentLength > 0 {
		_ = c.ShouldBindJSON(&req)
	}
	return req
}

func queryInt(c *gin.Context, key string, fallback int) int {
	raw := c.Query(key)
	if raw == "" {
		return fallback
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}
	return value
}
