package repository

import (
	"context"
	"time"

	"digiplot/internal/domain"
)

// NotificationsRepository stores in-app notifications.
type NotificationsRepository interface {
	ListNotifications(ctx context.Context, recipientType domain.RecipientType, recipientID int64) ([]*domain.Notification, error)
	GetNotification(ctx context.Context, id int64) (*domain.Notification, error)
	CreateNotification(ctx context.Context, n *domain.Notification) (int64, error)
	MarkRead(ctx context.Context, id int64, at time.Time) error
}
