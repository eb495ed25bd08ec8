package models

import "time"

// NotificationKind constants label notification events.
const (
	NotificationKindReminder = "REMINDER"
)

// Notification is one event emitted towards a participant. Delivery
// beyond persistence is out of scope.
type Notification struct {
	ID        string    `db:"id" json:"id"`
	TargetID  string    `db:"target_id" json:"targetId"`
	SessionID string    `db:"session_id" json:"sessionId"`
	Kind      string    `db:"kind" json:"kind"`
	Message   string    `db:"message" json:"message"`
	CreatedAt time.Time `db:"created_at" json:"createdAt"`
}

// NotificationFilter constrains notification listing.
type NotificationFilter struct {
	TargetID  string
	SessionID string
	Limit     int
	Offset    int
}
