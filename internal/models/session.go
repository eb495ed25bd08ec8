package models

import "time"

// SessionStatus enumerates the lifecycle states of an interview session.
type SessionStatus string

const (
	SessionStatusNotStarted          SessionStatus = "NOT_STARTED"
	SessionStatusInProgress          SessionStatus = "IN_PROGRESS"
	SessionStatusPendingConfirmation SessionStatus = "PENDING_CONFIRMATION"
	SessionStatusCompleted           SessionStatus = "COMPLETED"
	SessionStatusArchived            SessionStatus = "ARCHIVED"
)

// IsValid reports whether the value is a known lifecycle state.
func (s SessionStatus) IsValid() bool {
	switch s {
	case SessionStatusNotStarted, SessionStatusInProgress, SessionStatusPendingConfirmation,
		SessionStatusCompleted, SessionStatusArchived:
		return true
	default:
		return false
	}
}

// SchedulingStatus is the sub-state of NOT_STARTED indicating whether a
// concrete meeting time has been set. It is only consulted while the
// session has not started; past that point it is frozen at SCHEDULED.
type SchedulingStatus string

const (
	SchedulingStatusPending   SchedulingStatus = "PENDING"
	SchedulingStatusScheduled SchedulingStatus = "SCHEDULED"
)

// FeedbackMethod records how feedback is given once the session leaves
// NOT_STARTED: after a scheduled meeting, or immediately without one.
type FeedbackMethod string

const (
	FeedbackMethodDirect      FeedbackMethod = "DIRECT"
	FeedbackMethodAppointment FeedbackMethod = "APPOINTMENT"
)

// Bucket is the workflow queue a session currently belongs to. Bucket
// membership is derived, never stored.
type Bucket string

const (
	BucketToSchedule Bucket = "TO_SCHEDULE"
	BucketToStart    Bucket = "TO_START"
	BucketToFeedback Bucket = "TO_FEEDBACK"
	BucketToConfirm  Bucket = "TO_CONFIRM"
	BucketDone       Bucket = "DONE"
)

// ActiveBuckets lists every bucket in workflow order. Archived sessions
// belong to none of them.
var ActiveBuckets = []Bucket{BucketToSchedule, BucketToStart, BucketToFeedback, BucketToConfirm, BucketDone}

// ClassifyBucket maps a (status, schedulingStatus) pair onto exactly one
// workflow bucket. The scheduling status is only consulted while the
// session is NOT_STARTED; an empty value counts as PENDING. The second
// return value is false for archived sessions and unknown states, which
// are excluded from every active bucket.
func ClassifyBucket(status SessionStatus, scheduling SchedulingStatus) (Bucket, bool) {
	switch status {
	case SessionStatusNotStarted:
		if scheduling == SchedulingStatusScheduled {
			return BucketToStart, true
		}
		return BucketToSchedule, true
	case SessionStatusInProgress:
		return BucketToFeedback, true
	case SessionStatusPendingConfirmation:
		return BucketToConfirm, true
	case SessionStatusCompleted:
		return BucketDone, true
	default:
		return "", false
	}
}

// BucketCriteria is the inverse of ClassifyBucket: the column predicates a
// storage layer needs to select the members of a bucket.
type BucketCriteria struct {
	Status SessionStatus
	// Scheduling constrains scheduling_status. Nil means any value matches;
	// an empty string inside the slice matches rows with no value set.
	Scheduling []SchedulingStatus
}

// CriteriaForBucket returns the predicates selecting a bucket's members.
// It must stay consistent with ClassifyBucket; the model tests assert the
// round trip.
func CriteriaForBucket(b Bucket) (BucketCriteria, bool) {
	switch b {
	case BucketToSchedule:
		return BucketCriteria{Status: SessionStatusNotStarted, Scheduling: []SchedulingStatus{SchedulingStatusPending, ""}}, true
	case BucketToStart:
		return BucketCriteria{Status: SessionStatusNotStarted, Scheduling: []SchedulingStatus{SchedulingStatusScheduled}}, true
	case BucketToFeedback:
		return BucketCriteria{Status: SessionStatusInProgress}, true
	case BucketToConfirm:
		return BucketCriteria{Status: SessionStatusPendingConfirmation}, true
	case BucketDone:
		return BucketCriteria{Status: SessionStatusCompleted}, true
	default:
		return BucketCriteria{}, false
	}
}

// InterviewSession is one performance-review interview task between a
// manager and an employee.
type InterviewSession struct {
	ID               string           `db:"id" json:"id"`
	EmployeeID       string           `db:"employee_id" json:"employeeId"`
	EmployeeName     string           `db:"employee_name" json:"employeeName"`
	ManagerID        string           `db:"manager_id" json:"managerId"`
	ManagerName      string           `db:"manager_name" json:"managerName"`
	Status           SessionStatus    `db:"status" json:"status"`
	SchedulingStatus SchedulingStatus `db:"scheduling_status" json:"schedulingStatus"`
	Method           FeedbackMethod   `db:"method" json:"method,omitempty"`
	Date             string           `db:"date" json:"date"`
	Deadline         string           `db:"deadline" json:"deadline"`
	Topic            string           `db:"topic" json:"topic"`
	Period           string           `db:"period" json:"period"`
	AssessmentCycle  string           `db:"assessment_cycle" json:"assessmentCycle"`
	TemplateID       string           `db:"template_id" json:"templateId"`
	LinkedAssessment string           `db:"linked_assessment_id" json:"linkedAssessmentId"`
	GradeTag         string           `db:"grade_tag" json:"gradeTag"`
	Department       string           `db:"department" json:"department"`
	RiskTag          string           `db:"risk_tag" json:"riskTag"`
	Content          []byte           `db:"content" json:"content,omitempty"`
	Version          int              `db:"version" json:"version"`
	CreatedAt        time.Time        `db:"created_at" json:"createdAt"`
	UpdatedAt        time.Time        `db:"updated_at" json:"updatedAt"`
}

// Bucket derives the session's workflow bucket.
func (s *InterviewSession) Bucket() (Bucket, bool) {
	return ClassifyBucket(s.Status, s.SchedulingStatus)
}

// SessionFilter constrains listing queries.
type SessionFilter struct {
	Bucket          Bucket
	EmployeeID      string
	ManagerID       string
	Period          string
	AssessmentCycle string
	Department      string
	IncludeArchived bool
	Limit           int
	Offset          int
}

// BucketTally pairs the raw grouping columns with a row count; the service
// layer folds tallies into buckets through ClassifyBucket.
type BucketTally struct {
	Status           SessionStatus    `db:"status"`
	SchedulingStatus SchedulingStatus `db:"scheduling_status"`
	Count            int              `db:"count"`
}
