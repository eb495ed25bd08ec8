package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/interview-flow-api/internal/dto"
	"github.com/noah-isme/interview-flow-api/internal/middleware"
	"github.com/noah-isme/interview-flow-api/internal/models"
	appErrors "github.com/noah-isme/interview-flow-api/pkg/errors"
)

type sessionServiceMock struct {
	createResp   *models.InterviewSession
	createErr    error
	listResp     []dto.SessionItem
	listTotal    int
	listErr      error
	getResp      *dto.SessionItem
	getErr       error
	scheduleResp *models.InterviewSession
	scheduleErr  error
	cancelErr    error
	remindResp   *models.Notification
	remindErr    error

	lastQuery   dto.SessionQuery
	lastActorID string
	lastVersion int
}

func (m *sessionServiceMock) Create(ctx context.Context, req dto.CreateSessionRequest, actorID string) (*models.InterviewSession, error) {
	m.lastActorID = actorID
	return m.createResp, m.createErr
}

func (m *sessionServiceMock) CreateBatch(ctx context.Context, req dto.BatchCreateSessionRequest, actorID string) (*dto.BatchCreateSessionResult, error) {
	return &dto.BatchCreateSessionResult{}, nil
}

func (m *sessionServiceMock) List(ctx context.Context, query dto.SessionQuery) ([]dto.SessionItem, int, error) {
	m.lastQuery = query
	return m.listResp, m.listTotal, m.listErr
}

func (m *sessionServiceMock) Get(ctx context.Context, id string) (*dto.SessionItem, error) {
	return m.getResp, m.getErr
}

func (m *sessionServiceMock) Schedule(ctx context.Context, id string, req dto.ScheduleSessionRequest, actorID string) (*models.InterviewSession, error) {
	m.lastActorID = actorID
	return m.scheduleResp, m.scheduleErr
}

func (m *sessionServiceMock) GiveDirectFeedback(ctx context.Context, id string, version int, actorID string) (*models.InterviewSession, error) {
	m.lastVersion = version
	return m.scheduleResp, m.scheduleErr
}

func (m *sessionServiceMock) EnterMeeting(ctx context.Context, id string, version int, actorID string) (*models.InterviewSession, error) {
	m.lastVersion = version
	return m.scheduleResp, m.scheduleErr
}

func (m *sessionServiceMock) SubmitFeedback(ctx context.Context, id string, req dto.SubmitFeedbackRequest, actorID string) (*models.InterviewSession, error) {
	return m.scheduleResp, m.scheduleErr
}

func (m *sessionServiceMock) ConfirmResult(ctx context.Context, id string, version int, actorID string) (*models.InterviewSession, error) {
	m.lastVersion = version
	return m.scheduleResp, m.scheduleErr
}

func (m *sessionServiceMock) Cancel(ctx context.Context, id string, version int, actorID string) error {
	m.lastVersion = version
	return m.cancelErr
}

func (m *sessionServiceMock) Remind(ctx context.Context, id string, actorID string) (*models.Notification, error) {
	return m.remindResp, m.remindErr
}

type invalidatorMock struct {
	calls int
}

func (m *invalidatorMock) Invalidate(ctx context.Context) {
	m.calls++
}

func testSessionContext(t *testing.T, method, target string, body []byte) (*gin.Context, *httptest.ResponseRecorder) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	var req *http.Request
	if body != nil {
		req, _ = http.NewRequest(method, target, bytes.NewBuffer(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req, _ = http.NewRequest(method, target, nil)
	}
	c.Request = req
	c.Set(middleware.ContextActorKey, &models.Actor{ID: "mgr-1", Role: models.RoleManager})
	return c, w
}

func TestSessionHandlerCreate(t *testing.T) {
	mockSvc := &sessionServiceMock{
		createResp: &models.InterviewSession{ID: "session-1", Status: models.SessionStatusNotStarted},
	}
	invalidator := &invalidatorMock{}
	handler := NewSessionHandler(mockSvc, invalidator)

	body, _ := json.Marshal(dto.CreateSessionRequest{
		EmployeeID: "emp-1", EmployeeName: "Aiko Tanaka",
		ManagerID: "mgr-1", ManagerName: "Kenji Sato",
	})
	c, w := testSessionContext(t, http.MethodPost, "/interviews", body)

	handler.Create(c)
	require.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, "mgr-1", mockSvc.lastActorID)
	assert.Equal(t, 1, invalidator.calls)
}

func TestSessionHandlerCreateInvalidBody(t *testing.T) {
	handler := NewSessionHandler(&sessionServiceMock{}, nil)
	c, w := testSessionContext(t, http.MethodPost, "/interviews", []byte(`{"employeeId":`))

	handler.Create(c)
	require.Equal(t, http.StatusBadRequest, w.Code)
}

func TestSessionHandlerListBucketFilter(t *testing.T) {
	mockSvc := &sessionServiceMock{
		listResp:  []dto.SessionItem{{Bucket: models.BucketToSchedule}},
		listTotal: 1,
	}
	handler := NewSessionHandler(mockSvc, nil)
	c, w := testSessionContext(t, http.MethodGet, "/interviews?bucket=to_schedule&page=2&pageSize=10", nil)

	handler.List(c)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, models.BucketToSchedule, mockSvc.lastQuery.Bucket)
	assert.Equal(t, 2, mockSvc.lastQuery.Page)
	assert.Equal(t, 10, mockSvc.lastQuery.PageSize)

	var envelope struct {
		Pagination *models.Pagination `json:"pagination"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &envelope))
	require.NotNil(t, envelope.Pagination)
	assert.Equal(t, 1, envelope.Pagination.TotalCount)
}

func TestSessionHandlerListUnknownBucket(t *testing.T) {
	handler := NewSessionHandler(&sessionServiceMock{}, nil)
	c, w := testSessionContext(t, http.MethodGet, "/interviews?bucket=bogus", nil)

	handler.List(c)
	require.Equal(t, http.StatusBadRequest, w.Code)
}

func TestSessionHandlerScheduleConflict(t *testing.T) {
	mockSvc := &sessionServiceMock{scheduleErr: appErrors.ErrConflict}
	invalidator := &invalidatorMock{}
	handler := NewSessionHandler(mockSvc, invalidator)

	body, _ := json.Marshal(dto.ScheduleSessionRequest{Date: "2026-01-15", Time: "10:00", Version: 1})
	c, w := testSessionContext(t, http.MethodPost, "/interviews/session-1/schedule", body)
	c.Params = gin.Params{{Key: "id", Value: "session-1"}}

	handler.Schedule(c)
	require.Equal(t, http.StatusConflict, w.Code)
	assert.Zero(t, invalidator.calls, "failed transitions keep the cached summary")
}

func TestSessionHandlerConfirmWithoutBody(t *testing.T) {
	mockSvc := &sessionServiceMock{
		scheduleResp: &models.InterviewSession{ID: "session-1", Status: models.SessionStatusCompleted},
	}
	handler := NewSessionHandler(mockSvc, nil)

	c, w := testSessionContext(t, http.MethodPost, "/interviews/session-1/confirm", nil)
	c.Params = gin.Params{{Key: "id", Value: "session-1"}}

	handler.Confirm(c)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Zero(t, mockSvc.lastVersion)
}

func TestSessionHandlerCancel(t *testing.T) {
	mockSvc := &sessionServiceMock{}
	invalidator := &invalidatorMock{}
	handler := NewSessionHandler(mockSvc, invalidator)

	c, w := testSessionContext(t, http.MethodDelete, "/interviews/session-1?version=3", nil)
	c.Params = gin.Params{{Key: "id", Value: "session-1"}}

	handler.Cancel(c)
	c.Writer.WriteHeaderNow()
	require.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, 3, mockSvc.lastVersion)
	assert.Equal(t, 1, invalidator.calls)
}

func TestSessionHandlerRemind(t *testing.T) {
	mockSvc := &sessionServiceMock{
		remindResp: &models.Notification{SessionID: "session-1", TargetID: "mgr-1"},
	}
	handler := NewSessionHandler(mockSvc, nil)

	c, w := testSessionContext(t, http.MethodPost, "/interviews/session-1/remind", nil)
	c.Params = gin.Params{{Key: "id", Value: "session-1"}}

	handler.Remind(c)
	require.Equal(t, http.StatusAccepted, w.Code)
}

func TestSessionHandlerRemindIllegal(t *testing.T) {
	mockSvc := &sessionServiceMock{remindErr: appErrors.ErrIllegalTransition}
	handler := NewSessionHandler(mockSvc, nil)

	c, w := testSessionContext(t, http.MethodPost, "/interviews/session-1/remind", nil)
	c.Params = gin.Params{{Key: "id", Value: "session-1"}}

	handler.Remind(c)
	require.Equal(t, http.StatusConflict, w.Code)
}
