package service

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/noah-isme/interview-flow-api/internal/models"
	appErrors "github.com/noah-isme/interview-flow-api/pkg/errors"
)

type dashboardRepoStub struct {
	tallies   []models.BucketTally
	deadlines []string
	countCall int
}

func (r *dashboardRepoStub) CountByState(ctx context.Context) ([]models.BucketTally, error) {
	r.countCall++
	return r.tallies, nil
}

func (r *dashboardRepoStub) PendingDeadlines(ctx context.Context) ([]string, error) {
	return r.deadlines, nil
}

type cacheStub struct {
	entries map[string][]byte
	deletes int
}

func newCacheStub() *cacheStub {
	return &cacheStub{entries: make(map[string][]byte)}
}

func (c *cacheStub) Get(ctx context.Context, key string, dest interface{}) error {
	raw, ok := c.entries[key]
	if !ok {
		return appErrors.ErrCacheMiss
	}
	return json.Unmarshal(raw, dest)
}

func (c *cacheStub) Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}
	c.entries[key] = raw
	return nil
}

func (c *cacheStub) Delete(ctx context.Context, key string) {
	c.deletes++
	delete(c.entries, key)
}

func dashboardToday() func() time.Time {
	return func() time.Time {
		return time.Date(2026, 1, 9, 12, 0, 0, 0, time.UTC)
	}
}

func TestDashboardSummaryPartition(t *testing.T) {
	repo := &dashboardRepoStub{
		tallies: []models.BucketTally{
			{Status: models.SessionStatusNotStarted, SchedulingStatus: models.SchedulingStatusPending, Count: 3},
			{Status: models.SessionStatusNotStarted, SchedulingStatus: models.SchedulingStatusScheduled, Count: 2},
			{Status: models.SessionStatusInProgress, SchedulingStatus: models.SchedulingStatusScheduled, Count: 1},
			{Status: models.SessionStatusPendingConfirmation, SchedulingStatus: models.SchedulingStatusScheduled, Count: 4},
			{Status: models.SessionStatusCompleted, SchedulingStatus: models.SchedulingStatusScheduled, Count: 5},
			{Status: models.SessionStatusArchived, SchedulingStatus: models.SchedulingStatusScheduled, Count: 7},
		},
		deadlines: []string{"2026-01-06", "2026-01-10", "2026-01-30", "garbage"},
	}
	svc := NewDashboardService(repo, nil, 0, nil, WithDashboardClock(dashboardToday()))

	summary, err := svc.Summary(context.Background(), false)
	require.NoError(t, err)
	require.Equal(t, 3, summary.Buckets[models.BucketToSchedule])
	require.Equal(t, 2, summary.Buckets[models.BucketToStart])
	require.Equal(t, 1, summary.Buckets[models.BucketToFeedback])
	require.Equal(t, 4, summary.Buckets[models.BucketToConfirm])
	require.Equal(t, 5, summary.Buckets[models.BucketDone])

	// Archived sessions are excluded, so the buckets sum to the total.
	sum := 0
	for _, count := range summary.Buckets {
		sum += count
	}
	require.Equal(t, summary.Total, sum)
	require.Equal(t, 15, summary.Total)

	require.Equal(t, 1, summary.Urgency.Overdue)
	require.Equal(t, 1, summary.Urgency.DueSoon)
	require.Equal(t, 2, summary.Urgency.Normal)
}

func TestDashboardSummaryCaches(t *testing.T) {
	repo := &dashboardRepoStub{
		tallies: []models.BucketTally{
			{Status: models.SessionStatusNotStarted, SchedulingStatus: models.SchedulingStatusPending, Count: 1},
		},
	}
	cache := newCacheStub()
	svc := NewDashboardService(repo, cache, time.Minute, nil, WithDashboardClock(dashboardToday()))
	ctx := context.Background()

	first, err := svc.Summary(ctx, false)
	require.NoError(t, err)
	require.Equal(t, 1, repo.countCall)

	second, err := svc.Summary(ctx, false)
	require.NoError(t, err)
	require.Equal(t, 1, repo.countCall, "second read is served from cache")
	require.Equal(t, first.Total, second.Total)

	_, err = svc.Summary(ctx, true)
	require.NoError(t, err)
	require.Equal(t, 2, repo.countCall, "bypass forces a rebuild")

	svc.Invalidate(ctx)
	require.Equal(t, 1, cache.deletes)
	_, err = svc.Summary(ctx, false)
	require.NoError(t, err)
	require.Equal(t, 3, repo.countCall, "invalidation drops the cached summary")
}
