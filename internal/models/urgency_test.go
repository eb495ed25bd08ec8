package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fixedToday(t *testing.T) time.Time {
	t.Helper()
	today, err := time.ParseInLocation(DateLayout, "2026-01-09", time.UTC)
	require.NoError(t, err)
	return today
}

func TestClassifyDeadline(t *testing.T) {
	today := fixedToday(t)

	cases := []struct {
		name     string
		raw      string
		urgency  Urgency
		daysLeft int
	}{
		{"yesterday is overdue", "2026-01-08", UrgencyOverdue, -1},
		{"well past", "2026-01-06", UrgencyOverdue, -3},
		{"today is due soon", "2026-01-09", UrgencyDueSoon, 0},
		{"window edge", "2026-01-12", UrgencyDueSoon, 3},
		{"just past the window", "2026-01-13", UrgencyNormal, 4},
		{"far out", "2026-01-20", UrgencyNormal, 11},
		{"trailing meeting time ignored", "2026-01-12 10:00", UrgencyDueSoon, 3},
		{"surrounding whitespace", "  2026-01-09  ", UrgencyDueSoon, 0},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			urgency, daysLeft, err := ClassifyDeadline(tc.raw, today)
			require.NoError(t, err)
			assert.Equal(t, tc.urgency, urgency)
			assert.Equal(t, tc.daysLeft, daysLeft)
		})
	}
}

func TestClassifyDeadlineMalformed(t *testing.T) {
	today := fixedToday(t)

	for _, raw := range []string{"", "soon", "01/09/2026", "2026-1-9", "2026-13-40"} {
		urgency, daysLeft, err := ClassifyDeadline(raw, today)
		assert.Error(t, err, "input %q", raw)
		assert.Equal(t, UrgencyNormal, urgency)
		assert.Equal(t, 0, daysLeft)
	}
}

func TestClassifyDeadlineIgnoresTimeOfDay(t *testing.T) {
	// Classification is day granular: a late-evening "today" still sees
	// tomorrow as one day out.
	lateToday := time.Date(2026, 1, 9, 23, 45, 0, 0, time.UTC)
	urgency, daysLeft, err := ClassifyDeadline("2026-01-10", lateToday)
	require.NoError(t, err)
	assert.Equal(t, UrgencyDueSoon, urgency)
	assert.Equal(t, 1, daysLeft)
}

func TestCombineDateTime(t *testing.T) {
	assert.Equal(t, "2026-01-15 10:00", CombineDateTime("2026-01-15", "10:00"))
	assert.Equal(t, "2026-01-15", CombineDateTime("2026-01-15", ""))
	assert.Equal(t, "2026-01-15 10:00", CombineDateTime(" 2026-01-15 ", " 10:00 "))
}
