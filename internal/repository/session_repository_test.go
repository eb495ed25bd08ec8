package repository

import (
	"context"
	"regexp"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/interview-flow-api/internal/models"
)

func newSessionRepoMock(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock, func()) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	return sqlx.NewDb(db, "sqlmock"), mock, func() { db.Close() }
}

func sessionRows() *sqlmock.Rows {
	now := time.Now().UTC()
	return sqlmock.NewRows([]string{
		"id", "employee_id", "employee_name", "manager_id", "manager_name",
		"status", "scheduling_status", "method", "date", "deadline",
		"topic", "period", "version", "created_at", "updated_at",
	}).AddRow(
		"session-1", "emp-1", "Aiko Tanaka", "mgr-1", "Kenji Sato",
		"NOT_STARTED", "PENDING", "", "", "2026-01-20",
		"", "2026-H1", 1, now, now,
	)
}

func TestSessionRepositoryCreateDefaults(t *testing.T) {
	db, mock, cleanup := newSessionRepoMock(t)
	defer cleanup()

	repo := NewSessionRepository(db)
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO interview_sessions")).
		WillReturnResult(sqlmock.NewResult(1, 1))

	session := &models.InterviewSession{
		EmployeeID:   "emp-1",
		EmployeeName: "Aiko Tanaka",
		ManagerID:    "mgr-1",
		ManagerName:  "Kenji Sato",
	}
	require.NoError(t, repo.Create(context.Background(), session))
	require.NotEmpty(t, session.ID)
	require.Equal(t, models.SessionStatusNotStarted, session.Status)
	require.Equal(t, models.SchedulingStatusPending, session.SchedulingStatus)
	require.Equal(t, 1, session.Version)
	require.Equal(t, session.CreatedAt, session.UpdatedAt)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestSessionRepositoryGetByID(t *testing.T) {
	db, mock, cleanup := newSessionRepoMock(t)
	defer cleanup()

	repo := NewSessionRepository(db)
	mock.ExpectQuery(regexp.QuoteMeta("SELECT id, employee_id, employee_name")).
		WithArgs("session-1").
		WillReturnRows(sessionRows())

	session, err := repo.GetByID(context.Background(), "session-1")
	require.NoError(t, err)
	require.Equal(t, "session-1", session.ID)
	require.Equal(t, models.SessionStatusNotStarted, session.Status)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestSessionRepositoryListBucketFilter(t *testing.T) {
	db, mock, cleanup := newSessionRepoMock(t)
	defer cleanup()

	repo := NewSessionRepository(db)
	mock.ExpectQuery(regexp.QuoteMeta("SELECT COUNT(*) FROM interview_sessions")).
		WithArgs("NOT_STARTED", "PENDING", "").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))
	mock.ExpectQuery(regexp.QuoteMeta("SELECT id, employee_id, employee_name")).
		WithArgs("NOT_STARTED", "PENDING", "").
		WillReturnRows(sessionRows())

	sessions, total, err := repo.List(context.Background(), models.SessionFilter{
		Bucket: models.BucketToSchedule,
	})
	require.NoError(t, err)
	require.Equal(t, 1, total)
	require.Len(t, sessions, 1)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestSessionRepositoryListExcludesArchived(t *testing.T) {
	db, mock, cleanup := newSessionRepoMock(t)
	defer cleanup()

	repo := NewSessionRepository(db)
	mock.ExpectQuery(regexp.QuoteMeta("SELECT COUNT(*) FROM interview_sessions")).
		WithArgs("ARCHIVED", "emp-1").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))
	mock.ExpectQuery(regexp.QuoteMeta("SELECT id, employee_id, employee_name")).
		WithArgs("ARCHIVED", "emp-1").
		WillReturnRows(sessionRows())

	_, _, err := repo.List(context.Background(), models.SessionFilter{EmployeeID: "emp-1"})
	require.NoError(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestSessionRepositoryListRejectsUnknownBucket(t *testing.T) {
	db, _, cleanup := newSessionRepoMock(t)
	defer cleanup()

	repo := NewSessionRepository(db)
	_, _, err := repo.List(context.Background(), models.SessionFilter{Bucket: models.Bucket("BOGUS")})
	require.Error(t, err)
}

func TestSessionRepositoryApplyTransition(t *testing.T) {
	db, mock, cleanup := newSessionRepoMock(t)
	defer cleanup()

	repo := NewSessionRepository(db)
	now := time.Now().UTC()
	mock.ExpectExec(regexp.QuoteMeta("UPDATE interview_sessions SET")).
		WithArgs("IN_PROGRESS", "SCHEDULED", "APPOINTMENT", "2026-01-15 10:00", now, "session-1", 2).
		WillReturnResult(sqlmock.NewResult(0, 1))

	ok, err := repo.ApplyTransition(context.Background(), TransitionParams{
		ID:               "session-1",
		ExpectedVersion:  2,
		Status:           models.SessionStatusInProgress,
		SchedulingStatus: models.SchedulingStatusScheduled,
		Method:           models.FeedbackMethodAppointment,
		Date:             "2026-01-15 10:00",
		UpdatedAt:        now,
	})
	require.NoError(t, err)
	require.True(t, ok)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestSessionRepositoryApplyTransitionVersionMismatch(t *testing.T) {
	db, mock, cleanup := newSessionRepoMock(t)
	defer cleanup()

	repo := NewSessionRepository(db)
	mock.ExpectExec(regexp.QuoteMeta("UPDATE interview_sessions SET")).
		WillReturnResult(sqlmock.NewResult(0, 0))

	ok, err := repo.ApplyTransition(context.Background(), TransitionParams{
		ID:              "session-1",
		ExpectedVersion: 1,
		Status:          models.SessionStatusInProgress,
		UpdatedAt:       time.Now().UTC(),
	})
	require.NoError(t, err)
	require.False(t, ok)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestSessionRepositoryDelete(t *testing.T) {
	db, mock, cleanup := newSessionRepoMock(t)
	defer cleanup()

	repo := NewSessionRepository(db)
	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM interview_sessions")).
		WithArgs("session-1", 1).
		WillReturnResult(sqlmock.NewResult(0, 1))

	ok, err := repo.Delete(context.Background(), "session-1", 1)
	require.NoError(t, err)
	require.True(t, ok)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestSessionRepositoryCountByState(t *testing.T) {
	db, mock, cleanup := newSessionRepoMock(t)
	defer cleanup()

	repo := NewSessionRepository(db)
	rows := sqlmock.NewRows([]string{"status", "scheduling_status", "count"}).
		AddRow("NOT_STARTED", "PENDING", 3).
		AddRow("COMPLETED", "SCHEDULED", 5)
	mock.ExpectQuery(regexp.QuoteMeta("SELECT status, scheduling_status, COUNT(*)")).
		WillReturnRows(rows)

	tallies, err := repo.CountByState(context.Background())
	require.NoError(t, err)
	require.Len(t, tallies, 2)
	require.Equal(t, models.SessionStatusNotStarted, tallies[0].Status)
	require.Equal(t, 3, tallies[0].Count)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestSessionRepositoryPendingDeadlines(t *testing.T) {
	db, mock, cleanup := newSessionRepoMock(t)
	defer cleanup()

	repo := NewSessionRepository(db)
	mock.ExpectQuery(regexp.QuoteMeta("SELECT deadline FROM interview_sessions")).
		WithArgs("NOT_STARTED", "PENDING").
		WillReturnRows(sqlmock.NewRows([]string{"deadline"}).AddRow("2026-01-06").AddRow("2026-01-20"))

	deadlines, err := repo.PendingDeadlines(context.Background())
	require.NoError(t, err)
	require.Equal(t, []string{"2026-01-06", "2026-01-20"}, deadlines)
	require.NoError(t, mock.ExpectationsWereMet())
}
