package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/noah-isme/interview-flow-api/internal/models"
	"github.com/noah-isme/interview-flow-api/pkg/config"
	appErrors "github.com/noah-isme/interview-flow-api/pkg/errors"
	"github.com/noah-isme/interview-flow-api/pkg/jobs"
)

type notificationStore interface {
	Create(ctx context.Context, notification *models.Notification) error
	List(ctx context.Context, filter models.NotificationFilter) ([]models.Notification, error)
}

// NotificationService fans reminder events out through an in-process
// queue and records them for the participant's feed. Actual delivery
// (mail, chat) is out of scope; persistence is the contract.
type NotificationService struct {
	repo   notificationStore
	queue  *jobs.Queue
	logger *zap.Logger
}

// NewNotificationService constructs the service and its dispatch queue.
func NewNotificationService(repo notificationStore, cfg config.RemindersConfig, logger *zap.Logger) *NotificationService {
	if logger == nil {
		logger = zap.NewNop()
	}
	svc := &NotificationService{repo: repo, logger: logger}
	svc.queue = jobs.NewQueue("reminders", svc.handleJob, jobs.QueueConfig{
		Workers:    cfg.WorkerConcurrency,
		BufferSize: cfg.QueueSize,
		MaxRetries: cfg.MaxRetries,
		RetryDelay: cfg.RetryDelay,
		Logger:     logger,
	})
	return svc
}

// Start launches the dispatch workers.
func (s *NotificationService) Start(ctx context.Context) {
	s.queue.Start(ctx)
}

// Stop drains the dispatch workers.
func (s *NotificationService) Stop() {
	s.queue.Stop()
}

// Dispatch enqueues a notification for asynchronous persistence.
func (s *NotificationService) Dispatch(ctx context.Context, notification models.Notification) error {
	return s.queue.Enqueue(jobs.Job{
		ID:      notification.SessionID,
		Type:    notification.Kind,
		Payload: notification,
	})
}

// List returns a participant's notification feed.
func (s *NotificationService) List(ctx context.Context, filter models.NotificationFilter) ([]models.Notification, error) {
	notifications, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list notifications")
	}
	return notifications, nil
}

func (s *NotificationService) handleJob(ctx context.Context, job jobs.Job) error {
	notification, ok := job.Payload.(models.Notification)
	if !ok {
		s.logger.Sugar().Errorw("unexpected reminder payload", "job_id", job.ID)
		return nil
	}
	if err := s.repo.Create(ctx, &notification); err != nil {
		return err
	}
	s.logger.Sugar().Infow("reminder recorded",
		"session_id", notification.SessionID, "target_id", notification.TargetID)
	return nil
}
