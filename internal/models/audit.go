package models

import "time"

// AuditAction constants represent actions to be logged.
const (
	AuditActionSessionCreate   = "SESSION_CREATE"
	AuditActionSessionSchedule = "SESSION_SCHEDULE"
	AuditActionDirectFeedback  = "SESSION_DIRECT_FEEDBACK"
	AuditActionEnterMeeting    = "SESSION_ENTER_MEETING"
	AuditActionSubmitFeedback  = "SESSION_SUBMIT_FEEDBACK"
	AuditActionConfirmResult   = "SESSION_CONFIRM_RESULT"
	AuditActionSessionCancel   = "SESSION_CANCEL"
	AuditActionSessionRemind   = "SESSION_REMIND"
)

// AuditLog represents an audit trail record.
type AuditLog struct {
	ID         string    `db:"id" json:"id"`
	ActorID    *string   `db:"actor_id" json:"actorId,omitempty"`
	Action     string    `db:"action" json:"action"`
	Resource   string    `db:"resource" json:"resource"`
	ResourceID *string   `db:"resource_id" json:"resourceId,omitempty"`
	OldValues  []byte    `db:"old_values" json:"oldValues,omitempty"`
	NewValues  []byte    `db:"new_values" json:"newValues,omitempty"`
	CreatedAt  time.Time `db:"created_at" json:"createdAt"`
}
