package dto

import (
	"encoding/json"

	"github.com/noah-isme/interview-flow-api/internal/models"
)

// CreateSessionRequest is the payload creating a single interview session.
type CreateSessionRequest struct {
	EmployeeID       string `json:"employeeId" validate:"required"`
	EmployeeName     string `json:"employeeName" validate:"required"`
	ManagerID        string `json:"managerId" validate:"required"`
	ManagerName      string `json:"managerName" validate:"required"`
	Deadline         string `json:"deadline"`
	Period           string `json:"period"`
	AssessmentCycle  string `json:"assessmentCycle"`
	TemplateID       string `json:"templateId"`
	LinkedAssessment string `json:"linkedAssessmentId"`
	GradeTag         string `json:"gradeTag"`
	Department       string `json:"department"`
	RiskTag          string `json:"riskTag"`
}

// BatchCreateSessionRequest creates one session per item. Items succeed or
// fail independently.
type BatchCreateSessionRequest struct {
	Items []CreateSessionRequest `json:"items" validate:"required,min=1"`
}

// BatchItemFailure reports one rejected batch item.
type BatchItemFailure struct {
	Index      int    `json:"index"`
	EmployeeID string `json:"employeeId"`
	Code       string `json:"code"`
	Message    string `json:"message"`
}

// BatchCreateSessionResult carries per-item outcomes of a batch create.
type BatchCreateSessionResult struct {
	Created  []models.InterviewSession `json:"created"`
	Failures []BatchItemFailure        `json:"failures"`
}

// ScheduleSessionRequest sets a concrete meeting time.
type ScheduleSessionRequest struct {
	Date    string `json:"date" validate:"required"`
	Time    string `json:"time"`
	Topic   string `json:"topic"`
	Version int    `json:"version"`
}

// SubmitFeedbackRequest carries the authored feedback blob.
type SubmitFeedbackRequest struct {
	Content json.RawMessage `json:"content" validate:"required"`
	Version int             `json:"version"`
}

// TransitionRequest is the shared payload for transitions without extra
// inputs (direct feedback, enter meeting, confirm).
type TransitionRequest struct {
	Version int `json:"version"`
}

// SessionQuery mirrors supported listing filters.
type SessionQuery struct {
	Bucket          models.Bucket
	EmployeeID      string
	ManagerID       string
	Period          string
	AssessmentCycle string
	Department      string
	Page            int
	PageSize        int
}

// SessionItem decorates a session with its derived bucket and urgency for
// queue rendering. Urgency reflects the deadline while the session awaits
// scheduling and the meeting time while it awaits the meeting.
type SessionItem struct {
	models.InterviewSession
	Bucket   models.Bucket  `json:"bucket"`
	Urgency  models.Urgency `json:"urgency,omitempty"`
	DaysLeft *int           `json:"daysLeft,omitempty"`
}

// DashboardSummary aggregates bucket counts and scheduling urgency.
type DashboardSummary struct {
	Buckets map[models.Bucket]int `json:"buckets"`
	Total   int                   `json:"total"`
	Urgency UrgencyBreakdown      `json:"urgency"`
}

// UrgencyBreakdown counts the deadline urgency of the scheduling queue.
type UrgencyBreakdown struct {
	Overdue int `json:"overdue"`
	DueSoon int `json:"dueSoon"`
	Normal  int `json:"normal"`
}
