package service

import (
	"context"
	"errors"
	"fmt"

	"digiplot/internal/domain"
	"digiplot/internal/metrics"
	"digiplot/internal/notify"
	"digiplot/internal/repository"

	"go.uber.org/zap"
)

// NotificationService stores in-app notifications and fans them out.
type NotificationService interface {
	Notify(ctx context.Context, recipientType domain.RecipientType, recipientID int64, message string) (*domain.Notification, error)
	List(ctx context.Context, recipientType domain.RecipientType, recipientID int64) ([]*domain.Notification, error)
	// MarkRead returns false when the notification does not exist or belongs to someone else.
	MarkRead(ctx context.Context, recipientType domain.RecipientType, recipientID, notificationID int64) (bool, error)
}

type notificationService struct {
	repo      repository.NotificationsRepository
	publisher notify.Publisher
	clock     Clock
	logger    *zap.Logger
}

func NewNotificationService(repo repository.NotificationsRepository, publisher notify.Publisher, clock Clock, logger *zap.Logger) NotificationService {
	if publisher == nil {
		publisher = notify.Nop{}
	}
	return &notificationService{repo: repo, publisher: publisher, clock: clock, logger: logger}
}

func (s *notificationService) Notify(ctx context.Context, recipientType domain.RecipientType, recipientID int64, message string) (*domain.Notification, error) {
	n := &domain.Notification{
		RecipientID:   recipientID,
		RecipientType: recipientType,
		Message:       message,
		CreatedAt:     s.clock.now(),
	}
	if _, err := s.repo.CreateNotification(ctx, n); err != nil {
		s.logger.Error("CreateNotification failed",
			zap.String("recipient_type", string(recipientType)),
			zap.Int64("recipient_id", recipientID),
			zap.Error(err),
		)
		return nil, fmt.Errorf("failed to create notification: %w", err)
	}

	published := true
	if err := s.publisher.Publish(ctx, notify.NewNotificationEvent(n)); err != nil {
		published = false
		s.logger.Warn("Publish notification event failed",
			zap.Int64("notification_id", n.ID),
			zap.Error(err),
		)
	}
	metrics.RecordNotification(string(recipientType), published)
	return n, nil
}

func (s *notificationService) List(ctx context.Context, recipientType domain.RecipientType, recipientID int64) ([]*domain.Notification, error) {
	items, err := s.repo.ListNotifications(ctx, recipientType, recipientID)
	if err != nil {
		return nil, fmt.Errorf("failed to list notifications: %w", err)
	}
	return items, nil
}

func (s *notificationService) MarkRead(ctx context.Context, recipientType domain.RecipientType, recipientID, notificationID int64) (bool, error) {
	n, err := s.repo.GetNotification(ctx, notificationID)
	if errors.Is(err, repository.ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to get notification: %w", err)
	}
	if n.RecipientType != recipientType || n.RecipientID != recipientID {
		return false, nil
	}
	if err := s.repo.MarkRead(ctx, notificationID, s.clock.now()); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return false, nil
		}
		return false, fmt.Errorf("failed to mark notification read: %w", err)
	}
	return true, nil
}

// notifyQuietly is used by mutations whose success must not depend on the notification.
func notifyQuietly(ctx context.Context, ns NotificationService, logger *zap.Logger, recipientType domain.RecipientType, recipientID int64, message string) {
	if ns == nil {
		return
	}
	if _, err := ns.Notify(ctx, recipientType, recipientID, message); err != nil {
		logger.Warn("Notify failed",
			zap.String("recipient_type", string(recipientType)),
			zap.Int64("recipient_id", recipientID),
			zap.Error(err),
		)
	}
}
