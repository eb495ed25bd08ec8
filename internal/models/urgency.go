package models

import (
	"fmt"
	"strings"
	"time"
)

// Urgency classifies how close a deadline or meeting time is relative to a
// reference day.
type Urgency string

const (
	UrgencyOverdue Urgency = "OVERDUE"
	UrgencyDueSoon Urgency = "DUE_SOON"
	UrgencyNormal  Urgency = "NORMAL"
)

// DateLayout is the canonical day format used on sessions.
const DateLayout = "2006-01-02"

// DateTimeLayout is DateLayout with an appended meeting time.
const DateTimeLayout = "2006-01-02 15:04"

// dueSoonWindowDays is the inclusive number of days ahead still counted as
// DUE_SOON.
const dueSoonWindowDays = 3

// ClassifyDeadline classifies a YYYY-MM-DD date string (an optional
// trailing HH:mm is ignored) against an injected "today". It returns the
// urgency together with the number of whole days left, which is negative
// once the date has passed. A malformed input yields an error; callers
// rendering lists degrade it to UrgencyNormal instead of failing.
func ClassifyDeadline(raw string, today time.Time) (Urgency, int, error) {
	day := strings.TrimSpace(raw)
	if idx := strings.IndexByte(day, ' '); idx >= 0 {
		day = day[:idx]
	}

	deadline, err := time.ParseInLocation(DateLayout, day, time.UTC)
	if err != nil {
		return UrgencyNormal, 0, fmt.Errorf("parse deadline %q: %w", raw, err)
	}

	ref := time.Date(today.Year(), today.Month(), today.Day(), 0, 0, 0, 0, time.UTC)
	daysLeft := int(deadline.Sub(ref).Hours() / 24)

	switch {
	case daysLeft < 0:
		return UrgencyOverdue, daysLeft, nil
	case daysLeft <= dueSoonWindowDays:
		return UrgencyDueSoon, daysLeft, nil
	default:
		return UrgencyNormal, daysLeft, nil
	}
}

// CombineDateTime joins a day and a clock value into the session date
// format. An empty clock yields the bare day.
func CombineDateTime(day, clock string) string {
	day = strings.TrimSpace(day)
	clock = strings.TrimSpace(clock)
	if clock == "" {
		return day
	}
	return day + " " + clock
}
