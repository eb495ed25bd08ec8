package repository

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/interview-flow-api/internal/models"
)

const sessionColumns = `id, employee_id, employee_name, manager_id, manager_name, status, scheduling_status,
       method, date, deadline, topic, period, assessment_cycle, template_id, linked_assessment_id,
       grade_tag, department, risk_tag, content, version, created_at, updated_at`

// SessionRepository persists interview sessions. It is the single writer
// for session rows; every transition goes through ApplyTransition so a
// reader never observes a partially applied update.
type SessionRepository struct {
	db *sqlx.DB
}

// NewSessionRepository constructs the repository.
func NewSessionRepository(db *sqlx.DB) *SessionRepository {
	return &SessionRepository{db: db}
}

// Create inserts a new session row.
func (r *SessionRepository) Create(ctx context.Context, session *models.InterviewSession) error {
	if session.ID == "" {
		session.ID = uuid.NewString()
	}
	if session.Status == "" {
		session.Status = models.SessionStatusNotStarted
	}
	if session.SchedulingStatus == "" {
		session.SchedulingStatus = models.SchedulingStatusPending
	}
	if session.Version == 0 {
		session.Version = 1
	}
	now := time.Now().UTC()
	if session.CreatedAt.IsZero() {
		session.CreatedAt = now
	}
	session.UpdatedAt = session.CreatedAt

	const query = `INSERT INTO interview_sessions
	(id, employee_id, employee_name, manager_id, manager_name, status, scheduling_status,
	 method, date, deadline, topic, period, assessment_cycle, template_id, linked_assessment_id,
	 grade_tag, department, risk_tag, content, version, created_at, updated_at)
	VALUES (:id, :employee_id, :employee_name, :manager_id, :manager_name, :status, :scheduling_status,
	 :method, :date, :deadline, :topic, :period, :assessment_cycle, :template_id, :linked_assessment_id,
	 :grade_tag, :department, :risk_tag, :content, :version, :created_at, :updated_at)`
	if _, err := r.db.NamedExecContext(ctx, query, session); err != nil {
		return fmt.Errorf("create session: %w", err)
	}
	return nil
}

// GetByID fetches a session by identifier.
func (r *SessionRepository) GetByID(ctx context.Context, id string) (*models.InterviewSession, error) {
	query := `SELECT ` + sessionColumns + ` FROM interview_sessions WHERE id = $1`
	var session models.InterviewSession
	if err := r.db.GetContext(ctx, &session, query, id); err != nil {
		return nil, err
	}
	return &session, nil
}

// List returns sessions matching the filter plus the unpaginated total.
func (r *SessionRepository) List(ctx context.Context, filter models.SessionFilter) ([]models.InterviewSession, int, error) {
	args := make([]interface{}, 0, 8)
	conditions := make([]string, 0, 6)

	if filter.Bucket != "" {
		criteria, ok := models.CriteriaForBucket(filter.Bucket)
		if !ok {
			return nil, 0, fmt.Errorf("unknown bucket %q", filter.Bucket)
		}
		args = append(args, criteria.Status)
		conditions = append(conditions, fmt.Sprintf("status = $%d", len(args)))
		if len(criteria.Scheduling) > 0 {
			placeholders := make([]string, len(criteria.Scheduling))
			for i, scheduling := range criteria.Scheduling {
				args = append(args, scheduling)
				placeholders[i] = fmt.Sprintf("$%d", len(args))
			}
			conditions = append(conditions, fmt.Sprintf("scheduling_status IN (%s)", strings.Join(placeholders, ",")))
		}
	} else if !filter.IncludeArchived {
		args = append(args, models.SessionStatusArchived)
		conditions = append(conditions, fmt.Sprintf("status <> $%d", len(args)))
	}
	if filter.EmployeeID != "" {
		args = append(args, filter.EmployeeID)
		conditions = append(conditions, fmt.Sprintf("employee_id = $%d", len(args)))
	}
	if filter.ManagerID != "" {
		args = append(args, filter.ManagerID)
		conditions = append(conditions, fmt.Sprintf("manager_id = $%d", len(args)))
	}
	if filter.Period != "" {
		args = append(args, filter.Period)
		conditions = append(conditions, fmt.Sprintf("period = $%d", len(args)))
	}
	if filter.AssessmentCycle != "" {
		args = append(args, filter.AssessmentCycle)
		conditions = append(conditions, fmt.Sprintf("assessment_cycle = $%d", len(args)))
	}
	if filter.Department != "" {
		args = append(args, filter.Department)
		conditions = append(conditions, fmt.Sprintf("department = $%d", len(args)))
	}

	where := ""
	if len(conditions) > 0 {
		where = " WHERE " + strings.Join(conditions, " AND ")
	}

	var total int
	countQuery := "SELECT COUNT(*) FROM interview_sessions" + where
	if err := r.db.GetContext(ctx, &total, countQuery, args...); err != nil {
		return nil, 0, fmt.Errorf("count sessions: %w", err)
	}

	limit := filter.Limit
	if limit <= 0 || limit > 200 {
		limit = 50
	}
	offset := filter.Offset
	if offset < 0 {
		offset = 0
	}

	query := `SELECT ` + sessionColumns + ` FROM interview_sessions` + where +
		fmt.Sprintf(" ORDER BY created_at DESC LIMIT %d OFFSET %d", limit, offset)

	var sessions []models.InterviewSession
	if err := r.db.SelectContext(ctx, &sessions, query, args...); err != nil {
		return nil, 0, fmt.Errorf("list sessions: %w", err)
	}
	return sessions, total, nil
}

// TransitionParams groups the columns a lifecycle transition may touch.
// ExpectedVersion implements optimistic locking: the update only applies
// when the stored version still matches.
type TransitionParams struct {
	ID               string
	ExpectedVersion  int
	Status           models.SessionStatus
	SchedulingStatus models.SchedulingStatus
	Method           models.FeedbackMethod
	Date             string
	Topic            *string
	Content          []byte
	UpdatedAt        time.Time
}

// ApplyTransition updates the lifecycle columns of a session guarded by
// the expected version. It reports whether a row was updated; false means
// the session either vanished or was modified concurrently.
func (r *SessionRepository) ApplyTransition(ctx context.Context, params TransitionParams) (bool, error) {
	if params.UpdatedAt.IsZero() {
		params.UpdatedAt = time.Now().UTC()
	}

	sets := []string{
		"status = :status",
		"scheduling_status = :scheduling_status",
		"method = :method",
		"date = :date",
		"version = version + 1",
		"updated_at = :updated_at",
	}
	if params.Topic != nil {
		sets = append(sets, "topic = :topic")
	}
	if params.Content != nil {
		sets = append(sets, "content = :content")
	}

	query := "UPDATE interview_sessions SET " + strings.Join(sets, ", ") +
		" WHERE id = :id AND version = :expected_version"
	res, err := r.db.NamedExecContext(ctx, query, map[string]interface{}{
		"id":                params.ID,
		"expected_version":  params.ExpectedVersion,
		"status":            params.Status,
		"scheduling_status": params.SchedulingStatus,
		"method":            params.Method,
		"date":              params.Date,
		"topic":             derefString(params.Topic),
		"content":           params.Content,
		"updated_at":        params.UpdatedAt,
	})
	if err != nil {
		return false, fmt.Errorf("apply transition: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("apply transition rows: %w", err)
	}
	return affected == 1, nil
}

// Delete removes a session row guarded by the expected version. Used only
// by cancel, which is a hard delete.
func (r *SessionRepository) Delete(ctx context.Context, id string, expectedVersion int) (bool, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM interview_sessions WHERE id = $1 AND version = $2`, id, expectedVersion)
	if err != nil {
		return false, fmt.Errorf("delete session: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("delete session rows: %w", err)
	}
	return affected == 1, nil
}

// CountByState tallies rows grouped by the classifier inputs.
func (r *SessionRepository) CountByState(ctx context.Context) ([]models.BucketTally, error) {
	const query = `SELECT status, scheduling_status, COUNT(*) AS count
	FROM interview_sessions GROUP BY status, scheduling_status`
	var tallies []models.BucketTally
	if err := r.db.SelectContext(ctx, &tallies, query); err != nil {
		return nil, fmt.Errorf("count sessions by state: %w", err)
	}
	return tallies, nil
}

// PendingDeadlines returns the non-empty deadlines of sessions still
// awaiting scheduling.
func (r *SessionRepository) PendingDeadlines(ctx context.Context) ([]string, error) {
	const query = `SELECT deadline FROM interview_sessions
	WHERE status = $1 AND (scheduling_status = $2 OR scheduling_status = '') AND deadline <> ''`
	var deadlines []string
	if err := r.db.SelectContext(ctx, &deadlines, query,
		models.SessionStatusNotStarted, models.SchedulingStatusPending); err != nil {
		return nil, fmt.Errorf("pending deadlines: %w", err)
	}
	return deadlines, nil
}

func derefString(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
