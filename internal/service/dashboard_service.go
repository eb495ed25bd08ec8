package service

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	"github.com/noah-isme/interview-flow-api/internal/dto"
	"github.com/noah-isme/interview-flow-api/internal/models"
	appErrors "github.com/noah-isme/interview-flow-api/pkg/errors"
)

const dashboardCacheKey = "dashboard:summary"

type dashboardStore interface {
	CountByState(ctx context.Context) ([]models.BucketTally, error)
	PendingDeadlines(ctx context.Context) ([]string, error)
}

type summaryCache interface {
	Get(ctx context.Context, key string, dest interface{}) error
	Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error
	Delete(ctx context.Context, key string)
}

// DashboardService derives queue counts and scheduling urgency for the
// workflow overview. Counts are always re-derived from the store through
// the bucket classifier; the cache only trades freshness for latency.
type DashboardService struct {
	repo    dashboardStore
	cache   summaryCache
	ttl     time.Duration
	metrics *MetricsService
	logger  *zap.Logger
	now     func() time.Time
}

// DashboardServiceOption configures the service.
type DashboardServiceOption func(*DashboardService)

// WithDashboardClock overrides the time source, mainly for tests.
func WithDashboardClock(now func() time.Time) DashboardServiceOption {
	return func(s *DashboardService) {
		if now != nil {
			s.now = now
		}
	}
}

// WithDashboardMetrics records cache hit/miss metrics.
func WithDashboardMetrics(metrics *MetricsService) DashboardServiceOption {
	return func(s *DashboardService) {
		s.metrics = metrics
	}
}

// NewDashboardService constructs the service.
func NewDashboardService(repo dashboardStore, cache summaryCache, ttl time.Duration,
	logger *zap.Logger, opts ...DashboardServiceOption) *DashboardService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	svc := &DashboardService{repo: repo, cache: cache, ttl: ttl, logger: logger, now: time.Now}
	for _, opt := range opts {
		if opt != nil {
			opt(svc)
		}
	}
	return svc
}

// Summary returns bucket counts plus the urgency breakdown of the
// scheduling queue. Archived sessions are excluded, so the bucket counts
// always sum to the total.
func (s *DashboardService) Summary(ctx context.Context, bypassCache bool) (*dto.DashboardSummary, error) {
	if s.cache != nil && !bypassCache {
		start := time.Now()
		var cached dto.DashboardSummary
		err := s.cache.Get(ctx, dashboardCacheKey, &cached)
		if err == nil {
			if s.metrics != nil {
				s.metrics.RecordCacheOperation(true, time.Since(start))
			}
			return &cached, nil
		}
		if !errors.Is(err, appErrors.ErrCacheMiss) {
			s.logger.Sugar().Warnw("dashboard cache read failed", "error", err)
		}
		if s.metrics != nil {
			s.metrics.RecordCacheOperation(false, time.Since(start))
		}
	}

	summary, err := s.build(ctx)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, dashboardCacheKey, summary, s.ttl); err != nil {
			s.logger.Sugar().Warnw("dashboard cache write failed", "error", err)
		}
	}
	return summary, nil
}

// Invalidate drops the cached summary, typically after a transition.
func (s *DashboardService) Invalidate(ctx context.Context) {
	if s.cache != nil {
		s.cache.Delete(ctx, dashboardCacheKey)
	}
}

func (s *DashboardService) build(ctx context.Context) (*dto.DashboardSummary, error) {
	tallies, err := s.repo.CountByState(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to count sessions")
	}

	summary := &dto.DashboardSummary{Buckets: make(map[models.Bucket]int, len(models.ActiveBuckets))}
	for _, bucket := range models.ActiveBuckets {
		summary.Buckets[bucket] = 0
	}
	for _, tally := range tallies {
		bucket, active := models.ClassifyBucket(tally.Status, tally.SchedulingStatus)
		if !active {
			continue
		}
		summary.Buckets[bucket] += tally.Count
		summary.Total += tally.Count
	}

	deadlines, err := s.repo.PendingDeadlines(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to read deadlines")
	}
	today := s.now()
	for _, deadline := range deadlines {
		urgency, _, err := models.ClassifyDeadline(deadline, today)
		if err != nil {
			// Malformed deadlines never break rendering.
			urgency = models.UrgencyNormal
		}
		switch urgency {
		case models.UrgencyOverdue:
			summary.Urgency.Overdue++
		case models.UrgencyDueSoon:
			summary.Urgency.DueSoon++
		default:
			summary.Urgency.Normal++
		}
	}
	return summary, nil
}
