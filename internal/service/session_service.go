package service

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/noah-isme/interview-flow-api/internal/dto"
	"github.com/noah-isme/interview-flow-api/internal/models"
	"github.com/noah-isme/interview-flow-api/internal/repository"
	appErrors "github.com/noah-isme/interview-flow-api/pkg/errors"
)

type sessionStore interface {
	Create(ctx context.Context, session *models.InterviewSession) error
	GetByID(ctx context.Context, id string) (*models.InterviewSession, error)
	List(ctx context.Context, filter models.SessionFilter) ([]models.InterviewSession, int, error)
	ApplyTransition(ctx context.Context, params repository.TransitionParams) (bool, error)
	Delete(ctx context.Context, id string, expectedVersion int) (bool, error)
}

type templateResolver interface {
	GetByID(ctx context.Context, id string) (*models.Template, error)
}

type reminderDispatcher interface {
	Dispatch(ctx context.Context, notification models.Notification) error
}

type auditLogger interface {
	CreateAuditLog(ctx context.Context, log *models.AuditLog) error
}

// SessionService is the transition engine for interview sessions. Every
// operation resolves the session, checks its current bucket, and either
// applies the transition atomically or returns a typed failure. Concurrent
// writers are fenced by the session's version counter.
type SessionService struct {
	repo      sessionStore
	templates templateResolver
	reminders reminderDispatcher
	audit     auditLogger
	validator *validator.Validate
	logger    *zap.Logger
	now       func() time.Time
}

// SessionServiceOption configures the service.
type SessionServiceOption func(*SessionService)

// WithClock overrides the time source, mainly for tests.
func WithClock(now func() time.Time) SessionServiceOption {
	return func(s *SessionService) {
		if now != nil {
			s.now = now
		}
	}
}

// NewSessionService constructs the service with defaults.
func NewSessionService(repo sessionStore, templates templateResolver, reminders reminderDispatcher,
	audit auditLogger, logger *zap.Logger, opts ...SessionServiceOption) *SessionService {
	if logger == nil {
		logger = zap.NewNop()
	}
	svc := &SessionService{
		repo:      repo,
		templates: templates,
		reminders: reminders,
		audit:     audit,
		validator: validator.New(),
		logger:    logger,
		now:       time.Now,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(svc)
		}
	}
	return svc
}

// Create stores a new session awaiting scheduling.
func (s *SessionService) Create(ctx context.Context, req dto.CreateSessionRequest, actorID string) (*models.InterviewSession, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Clone(appErrors.ErrValidation, err.Error())
	}
	if req.Deadline != "" {
		if _, _, err := models.ClassifyDeadline(req.Deadline, s.now()); err != nil {
			return nil, appErrors.Clone(appErrors.ErrInvalidDate, "malformed deadline, expected YYYY-MM-DD")
		}
	}
	session := &models.InterviewSession{
		EmployeeID:       req.EmployeeID,
		EmployeeName:     req.EmployeeName,
		ManagerID:        req.ManagerID,
		ManagerName:      req.ManagerName,
		Status:           models.SessionStatusNotStarted,
		SchedulingStatus: models.SchedulingStatusPending,
		Deadline:         req.Deadline,
		Period:           req.Period,
		AssessmentCycle:  req.AssessmentCycle,
		TemplateID:       req.TemplateID,
		LinkedAssessment: req.LinkedAssessment,
		GradeTag:         req.GradeTag,
		Department:       req.Department,
		RiskTag:          req.RiskTag,
	}
	if err := s.repo.Create(ctx, session); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create session")
	}
	s.emitAudit(ctx, actorID, models.AuditActionSessionCreate, nil, session)
	return session, nil
}

// CreateBatch creates one session per item. Items succeed or fail
// independently; one bad participant never blocks the rest.
func (s *SessionService) CreateBatch(ctx context.Context, req dto.BatchCreateSessionRequest, actorID string) (*dto.BatchCreateSessionResult, error) {
	if len(req.Items) == 0 {
		return nil, appErrors.Clone(appErrors.ErrValidation, "batch requires at least one item")
	}
	result := &dto.BatchCreateSessionResult{
		Created:  make([]models.InterviewSession, 0, len(req.Items)),
		Failures: make([]dto.BatchItemFailure, 0),
	}
	for i, item := range req.Items {
		session, err := s.Create(ctx, item, actorID)
		if err != nil {
			appErr := appErrors.FromError(err)
			result.Failures = append(result.Failures, dto.BatchItemFailure{
				Index:      i,
				EmployeeID: item.EmployeeID,
				Code:       appErr.Code,
				Message:    appErr.Message,
			})
			continue
		}
		result.Created = append(result.Created, *session)
	}
	return result, nil
}

// List returns decorated sessions matching the query plus the total count.
func (s *SessionService) List(ctx context.Context, query dto.SessionQuery) ([]dto.SessionItem, int, error) {
	limit := query.PageSize
	if limit <= 0 {
		limit = 50
	}
	offset := 0
	if query.Page > 1 {
		offset = (query.Page - 1) * limit
	}
	sessions, total, err := s.repo.List(ctx, models.SessionFilter{
		Bucket:          query.Bucket,
		EmployeeID:      query.EmployeeID,
		ManagerID:       query.ManagerID,
		Period:          query.Period,
		AssessmentCycle: query.AssessmentCycle,
		Department:      query.Department,
		Limit:           limit,
		Offset:          offset,
	})
	if err != nil {
		return nil, 0, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list sessions")
	}
	items := make([]dto.SessionItem, 0, len(sessions))
	for i := range sessions {
		items = append(items, s.decorate(&sessions[i]))
	}
	return items, total, nil
}

// Get returns one decorated session.
func (s *SessionService) Get(ctx context.Context, id string) (*dto.SessionItem, error) {
	session, err := s.getSession(ctx, id)
	if err != nil {
		return nil, err
	}
	item := s.decorate(session)
	return &item, nil
}

// Schedule sets a concrete meeting time for a session that has not yet
// started. The session stays NOT_STARTED but moves to the to-start queue.
func (s *SessionService) Schedule(ctx context.Context, id string, req dto.ScheduleSessionRequest, actorID string) (*models.InterviewSession, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Clone(appErrors.ErrValidation, err.Error())
	}
	if _, err := time.Parse(models.DateLayout, req.Date); err != nil {
		return nil, appErrors.Clone(appErrors.ErrInvalidDate, "malformed meeting date, expected YYYY-MM-DD")
	}
	if req.Time != "" {
		if _, err := time.Parse("15:04", req.Time); err != nil {
			return nil, appErrors.Clone(appErrors.ErrInvalidDate, "malformed meeting time, expected HH:mm")
		}
	}

	session, err := s.getSession(ctx, id)
	if err != nil {
		return nil, err
	}
	if _, err := requireBucket(session, models.BucketToSchedule, models.BucketToStart); err != nil {
		return nil, err
	}

	topic := req.Topic
	return s.applyTransition(ctx, session, repository.TransitionParams{
		ID:               session.ID,
		ExpectedVersion:  expectedVersion(req.Version, session),
		Status:           models.SessionStatusNotStarted,
		SchedulingStatus: models.SchedulingStatusScheduled,
		Method:           models.FeedbackMethodAppointment,
		Date:             models.CombineDateTime(req.Date, req.Time),
		Topic:            &topic,
	}, models.AuditActionSessionSchedule, actorID)
}

// GiveDirectFeedback skips the meeting entirely: the session becomes
// IN_PROGRESS with the current instant as its moment of feedback.
func (s *SessionService) GiveDirectFeedback(ctx context.Context, id string, version int, actorID string) (*models.InterviewSession, error) {
	session, err := s.getSession(ctx, id)
	if err != nil {
		return nil, err
	}
	if _, err := requireBucket(session, models.BucketToSchedule, models.BucketToStart); err != nil {
		return nil, err
	}
	return s.applyTransition(ctx, session, repository.TransitionParams{
		ID:               session.ID,
		ExpectedVersion:  expectedVersion(version, session),
		Status:           models.SessionStatusInProgress,
		SchedulingStatus: models.SchedulingStatusScheduled,
		Method:           models.FeedbackMethodDirect,
		Date:             s.now().UTC().Format(models.DateTimeLayout),
	}, models.AuditActionDirectFeedback, actorID)
}

// EnterMeeting explicitly moves a scheduled appointment into feedback
// authoring rather than inferring the flip from UI navigation.
func (s *SessionService) EnterMeeting(ctx context.Context, id string, version int, actorID string) (*models.InterviewSession, error) {
	session, err := s.getSession(ctx, id)
	if err != nil {
		return nil, err
	}
	if _, err := requireBucket(session, models.BucketToStart); err != nil {
		return nil, err
	}
	if session.Method != models.FeedbackMethodAppointment {
		return nil, appErrors.Clone(appErrors.ErrIllegalTransition, "entering a meeting requires a scheduled appointment")
	}
	return s.applyTransition(ctx, session, repository.TransitionParams{
		ID:               session.ID,
		ExpectedVersion:  expectedVersion(version, session),
		Status:           models.SessionStatusInProgress,
		SchedulingStatus: models.SchedulingStatusScheduled,
		Method:           session.Method,
		Date:             session.Date,
	}, models.AuditActionEnterMeeting, actorID)
}

// SubmitFeedback stores the authored feedback and hands the session to the
// employee for confirmation. The content blob is shape-checked against the
// session's template at this boundary only.
func (s *SessionService) SubmitFeedback(ctx context.Context, id string, req dto.SubmitFeedbackRequest, actorID string) (*models.InterviewSession, error) {
	if len(req.Content) == 0 {
		return nil, appErrors.Clone(appErrors.ErrValidation, "feedback content is required")
	}
	session, err := s.getSession(ctx, id)
	if err != nil {
		return nil, err
	}
	if _, err := requireBucket(session, models.BucketToFeedback); err != nil {
		return nil, err
	}
	if session.TemplateID != "" && s.templates != nil {
		template, err := s.templates.GetByID(ctx, session.TemplateID)
		switch {
		case errors.Is(err, sql.ErrNoRows):
			// The template is opaque configuration. A vanished template must
			// not strand the session, so the blob passes through unchecked.
			s.logger.Sugar().Warnw("feedback template missing, skipping shape check",
				"session_id", session.ID, "template_id", session.TemplateID)
		case err != nil:
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to resolve template")
		default:
			if err := ValidateFeedbackContent(req.Content, template); err != nil {
				return nil, err
			}
		}
	}
	return s.applyTransition(ctx, session, repository.TransitionParams{
		ID:               session.ID,
		ExpectedVersion:  expectedVersion(req.Version, session),
		Status:           models.SessionStatusPendingConfirmation,
		SchedulingStatus: models.SchedulingStatusScheduled,
		Method:           session.Method,
		Date:             session.Date,
		Content:          append([]byte(nil), req.Content...),
	}, models.AuditActionSubmitFeedback, actorID)
}

// ConfirmResult records the employee's sign-off and completes the session.
func (s *SessionService) ConfirmResult(ctx context.Context, id string, version int, actorID string) (*models.InterviewSession, error) {
	session, err := s.getSession(ctx, id)
	if err != nil {
		return nil, err
	}
	if _, err := requireBucket(session, models.BucketToConfirm); err != nil {
		return nil, err
	}
	return s.applyTransition(ctx, session, repository.TransitionParams{
		ID:               session.ID,
		ExpectedVersion:  expectedVersion(version, session),
		Status:           models.SessionStatusCompleted,
		SchedulingStatus: models.SchedulingStatusScheduled,
		Method:           session.Method,
		Date:             session.Date,
	}, models.AuditActionConfirmResult, actorID)
}

// Cancel hard-deletes a session that has not started yet.
func (s *SessionService) Cancel(ctx context.Context, id string, version int, actorID string) error {
	session, err := s.getSession(ctx, id)
	if err != nil {
		return err
	}
	if _, err := requireBucket(session, models.BucketToSchedule, models.BucketToStart); err != nil {
		return err
	}
	ok, err := s.repo.Delete(ctx, session.ID, expectedVersion(version, session))
	if err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to cancel session")
	}
	if !ok {
		return appErrors.ErrConflict
	}
	s.emitAudit(ctx, actorID, models.AuditActionSessionCancel, session, nil)
	return nil
}

// Remind emits a reminder towards the participant whose action is pending:
// the manager while the session awaits scheduling, the employee while it
// awaits confirmation. The session itself is not mutated.
func (s *SessionService) Remind(ctx context.Context, id string, actorID string) (*models.Notification, error) {
	session, err := s.getSession(ctx, id)
	if err != nil {
		return nil, err
	}
	bucket, err := requireBucket(session, models.BucketToSchedule, models.BucketToConfirm)
	if err != nil {
		return nil, err
	}

	notification := models.Notification{
		SessionID: session.ID,
		Kind:      models.NotificationKindReminder,
	}
	if bucket == models.BucketToSchedule {
		notification.TargetID = session.ManagerID
		notification.Message = fmt.Sprintf("Interview with %s is waiting to be scheduled", session.EmployeeName)
	} else {
		notification.TargetID = session.EmployeeID
		notification.Message = fmt.Sprintf("Interview feedback from %s is waiting for your confirmation", session.ManagerName)
	}

	if s.reminders == nil {
		return nil, appErrors.Clone(appErrors.ErrInternal, "reminder dispatch not configured")
	}
	if err := s.reminders.Dispatch(ctx, notification); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to dispatch reminder")
	}
	s.emitAudit(ctx, actorID, models.AuditActionSessionRemind, session, session)
	return &notification, nil
}

func (s *SessionService) getSession(ctx context.Context, id string) (*models.InterviewSession, error) {
	session, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "session no longer exists")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load session")
	}
	return session, nil
}

// applyTransition performs the guarded update and returns the resulting
// session. A version mismatch surfaces as CONFLICT so the caller can
// re-read and retry.
func (s *SessionService) applyTransition(ctx context.Context, session *models.InterviewSession,
	params repository.TransitionParams, action, actorID string) (*models.InterviewSession, error) {
	ok, err := s.repo.ApplyTransition(ctx, params)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to apply transition")
	}
	if !ok {
		return nil, appErrors.ErrConflict
	}

	updated := *session
	updated.Status = params.Status
	updated.SchedulingStatus = params.SchedulingStatus
	updated.Method = params.Method
	updated.Date = params.Date
	if params.Topic != nil {
		updated.Topic = *params.Topic
	}
	if params.Content != nil {
		updated.Content = params.Content
	}
	updated.Version = params.ExpectedVersion + 1
	updated.UpdatedAt = params.UpdatedAt
	if updated.UpdatedAt.IsZero() {
		updated.UpdatedAt = s.now().UTC()
	}

	s.emitAudit(ctx, actorID, action, session, &updated)
	return &updated, nil
}

func (s *SessionService) decorate(session *models.InterviewSession) dto.SessionItem {
	item := dto.SessionItem{InterviewSession: *session}
	bucket, active := session.Bucket()
	if !active {
		return item
	}
	item.Bucket = bucket

	// The deadline is advisory and only surfaced while scheduling is still
	// pending; afterwards the meeting time drives urgency.
	var source string
	switch bucket {
	case models.BucketToSchedule:
		source = session.Deadline
	case models.BucketToStart, models.BucketToFeedback:
		source = session.Date
	}
	if source == "" {
		return item
	}
	urgency, daysLeft, err := models.ClassifyDeadline(source, s.now())
	if err != nil {
		item.Urgency = models.UrgencyNormal
		return item
	}
	item.Urgency = urgency
	item.DaysLeft = &daysLeft
	return item
}

func (s *SessionService) emitAudit(ctx context.Context, actorID, action string,
	before, after *models.InterviewSession) {
	if s.audit == nil {
		return
	}
	log := &models.AuditLog{
		Action:   action,
		Resource: "interview_session",
	}
	if actorID != "" {
		log.ActorID = &actorID
	}
	if before != nil {
		log.ResourceID = &before.ID
	} else if after != nil {
		log.ResourceID = &after.ID
	}
	if before != nil {
		log.OldValues, _ = json.Marshal(map[string]interface{}{
			"status":           before.Status,
			"schedulingStatus": before.SchedulingStatus,
		})
	}
	if after != nil {
		log.NewValues, _ = json.Marshal(map[string]interface{}{
			"status":           after.Status,
			"schedulingStatus": after.SchedulingStatus,
		})
	}
	if err := s.audit.CreateAuditLog(ctx, log); err != nil {
		s.logger.Sugar().Warnw("audit log failed", "action", action, "error", err)
	}
}

// requireBucket returns the session's bucket when it is one of the allowed
// preconditions, or an ILLEGAL_TRANSITION failure naming both sides.
func requireBucket(session *models.InterviewSession, allowed ...models.Bucket) (models.Bucket, error) {
	bucket, active := session.Bucket()
	if active {
		for _, candidate := range allowed {
			if bucket == candidate {
				return bucket, nil
			}
		}
	}
	return "", appErrors.Clone(appErrors.ErrIllegalTransition,
		fmt.Sprintf("session %s is in bucket %s", session.ID, bucketLabel(bucket, active)))
}

func bucketLabel(bucket models.Bucket, active bool) string {
	if !active {
		return "ARCHIVED"
	}
	return string(bucket)
}

func expectedVersion(requested int, session *models.InterviewSession) int {
	if requested > 0 {
		return requested
	}
	return session.Version
}
