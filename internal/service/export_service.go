package service

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"go.uber.org/zap"

	"github.com/noah-isme/interview-flow-api/internal/models"
	appErrors "github.com/noah-isme/interview-flow-api/pkg/errors"
	"github.com/noah-isme/interview-flow-api/pkg/export"
)

// ExportFormat selects the rendered output type.
type ExportFormat string

const (
	ExportFormatCSV ExportFormat = "csv"
	ExportFormatPDF ExportFormat = "pdf"
)

// ExportResult carries a rendered document.
type ExportResult struct {
	FileName    string
	ContentType string
	Data        []byte
}

type exportSessionReader interface {
	GetByID(ctx context.Context, id string) (*models.InterviewSession, error)
}

// ExportService renders the feedback summary of a completed session.
type ExportService struct {
	sessions exportSessionReader
	csv      *export.CSVExporter
	pdf      *export.PDFExporter
	logger   *zap.Logger
}

// NewExportService constructs the service.
func NewExportService(sessions exportSessionReader, logger *zap.Logger) *ExportService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ExportService{
		sessions: sessions,
		csv:      export.NewCSVExporter(),
		pdf:      export.NewPDFExporter(),
		logger:   logger,
	}
}

// Render produces the summary document for a completed session. Sessions
// still moving through the workflow cannot be exported.
func (s *ExportService) Render(ctx context.Context, sessionID string, format ExportFormat) (*ExportResult, error) {
	session, err := s.sessions.GetByID(ctx, sessionID)
	if err != nil {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "session no longer exists")
	}
	bucket, active := session.Bucket()
	if !active || bucket != models.BucketDone {
		return nil, appErrors.Clone(appErrors.ErrIllegalTransition, "only completed sessions can be exported")
	}

	dataset := export.Dataset{
		Headers: []string{"Field", "Value"},
		Rows: []map[string]string{
			{"Field": "Employee", "Value": session.EmployeeName},
			{"Field": "Manager", "Value": session.ManagerName},
			{"Field": "Period", "Value": session.Period},
			{"Field": "Assessment cycle", "Value": session.AssessmentCycle},
			{"Field": "Meeting time", "Value": session.Date},
			{"Field": "Method", "Value": string(session.Method)},
		},
	}
	dataset.Rows = append(dataset.Rows, contentRows(session.Content)...)

	title := fmt.Sprintf("Interview summary - %s", session.EmployeeName)
	switch format {
	case ExportFormatCSV:
		data, err := s.csv.Render(dataset)
		if err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render csv")
		}
		return &ExportResult{
			FileName:    fmt.Sprintf("interview-%s.csv", session.ID),
			ContentType: "text/csv",
			Data:        data,
		}, nil
	case ExportFormatPDF:
		data, err := s.pdf.Render(dataset, title)
		if err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render pdf")
		}
		return &ExportResult{
			FileName:    fmt.Sprintf("interview-%s.pdf", session.ID),
			ContentType: "application/pdf",
			Data:        data,
		}, nil
	default:
		return nil, appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("unsupported export format %q", format))
	}
}

// contentRows flattens the opaque feedback blob into key/value rows. The
// blob's shape was validated at submission; anything unreadable here is
// rendered as-is.
func contentRows(content []byte) []map[string]string {
	if len(content) == 0 {
		return nil
	}
	var payload map[string]json.RawMessage
	if err := json.Unmarshal(content, &payload); err != nil {
		return []map[string]string{{"Field": "Feedback", "Value": string(content)}}
	}
	keys := make([]string, 0, len(payload))
	for key := range payload {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	rows := make([]map[string]string, 0, len(keys))
	for _, key := range keys {
		value := strings.Trim(string(payload[key]), `"`)
		rows = append(rows, map[string]string{"Field": key, "Value": value})
	}
	return rows
}
