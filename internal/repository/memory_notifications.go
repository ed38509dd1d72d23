package repository

import (
	"context"
	"time"

	"digiplot/internal/domain"
)

// MemoryNotificationsRepo is the in-process NotificationsRepository.
type MemoryNotificationsRepo struct {
	t *memoryTable[domain.Notification]
}

func NewMemoryNotificationsRepo() *MemoryNotificationsRepo {
	return &MemoryNotificationsRepo{t: newMemoryTable(
		func(n *domain.Notification) int64 { return n.ID },
		func(n *domain.Notification, id int64) { n.ID = id },
		cloneNotification,
	)}
}

var _ NotificationsRepository = (*MemoryNotificationsRepo)(nil)

func (r *MemoryNotificationsRepo) ListNotifications(_ context.Context, recipientType domain.RecipientType, recipientID int64) ([]*domain.Notification, error) {
	return r.t.filter(func(n *domain.Notification) bool {
		return n.RecipientType == recipientType && n.RecipientID == recipientID
	}), nil
}

func (r *MemoryNotificationsRepo) GetNotification(_ context.Context, id int64) (*domain.Notification, error) {
	return r.t.get(id)
}

func (r *MemoryNotificationsRepo) CreateNotification(_ context.Context, n *domain.Notification) (int64, error) {
	return r.t.insert(n), nil
}

// MarkRead keeps the first read time when called twice.
func (r *MemoryNotificationsRepo) MarkRead(_ context.Context, id int64, at time.Time) error {
	return r.t.modify(id, func(n *domain.Notification) {
		if n.ReadAt == nil {
			n.ReadAt = &at
		}
	})
}

func cloneNotification(n *domain.Notification) *domain.Notification {
	c := *n
	if n.ReadAt != nil {
		t := *n.ReadAt
		c.ReadAt = &t
	}
	return &c
}
