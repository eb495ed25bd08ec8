package service

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/noah-isme/interview-flow-api/internal/models"
	appErrors "github.com/noah-isme/interview-flow-api/pkg/errors"
)

func completedSession() *models.InterviewSession {
	return &models.InterviewSession{
		ID:               "session-1",
		EmployeeName:     "Aiko Tanaka",
		ManagerName:      "Kenji Sato",
		Status:           models.SessionStatusCompleted,
		SchedulingStatus: models.SchedulingStatusScheduled,
		Method:           models.FeedbackMethodAppointment,
		Date:             "2026-01-15 10:00",
		Period:           "2026-H1",
		Content:          []byte(`{"summary":"solid half","rating":4}`),
	}
}

func TestExportServiceRenderCSV(t *testing.T) {
	repo := newSessionRepoStub()
	repo.sessions["session-1"] = completedSession()
	svc := NewExportService(repo, nil)

	result, err := svc.Render(context.Background(), "session-1", ExportFormatCSV)
	require.NoError(t, err)
	require.Equal(t, "interview-session-1.csv", result.FileName)
	require.Equal(t, "text/csv", result.ContentType)

	body := string(result.Data)
	require.Contains(t, body, "Aiko Tanaka")
	require.Contains(t, body, "2026-01-15 10:00")
	require.Contains(t, body, "solid half")
	require.True(t, strings.HasPrefix(body, "Field,Value"))
}

func TestExportServiceRenderPDF(t *testing.T) {
	repo := newSessionRepoStub()
	repo.sessions["session-1"] = completedSession()
	svc := NewExportService(repo, nil)

	result, err := svc.Render(context.Background(), "session-1", ExportFormatPDF)
	require.NoError(t, err)
	require.Equal(t, "application/pdf", result.ContentType)
	require.True(t, strings.HasPrefix(string(result.Data), "%PDF"))
}

func TestExportServiceRejectsActiveSession(t *testing.T) {
	repo := newSessionRepoStub()
	session := completedSession()
	session.Status = models.SessionStatusInProgress
	repo.sessions["session-1"] = session
	svc := NewExportService(repo, nil)

	_, err := svc.Render(context.Background(), "session-1", ExportFormatCSV)
	require.Error(t, err)
	require.Equal(t, appErrors.ErrIllegalTransition.Code, appErrors.FromError(err).Code)
}

func TestExportServiceUnknownFormat(t *testing.T) {
	repo := newSessionRepoStub()
	repo.sessions["session-1"] = completedSession()
	svc := NewExportService(repo, nil)

	_, err := svc.Render(context.Background(), "session-1", ExportFormat("xml"))
	require.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)

	_, err = svc.Render(context.Background(), "missing", ExportFormatCSV)
	require.Equal(t, appErrors.ErrNotFound.Code, appErrors.FromError(err).Code)
}
