// Package notify fans notification events out to external subscribers.
package notify

import (
	"context"
	"errors"
	"time"

	"digiplot/internal/domain"
)

// EventNotificationCreated is the only event type emitted today.
const EventNotificationCreated = "notification.created"

// Event is the payload handed to every Publisher.
type Event struct {
	Type         string               `json:"type"`
	Notification *domain.Notification `json:"notification"`
	OccurredAt   time.Time            `json:"occurred_at"`
}

// NewNotificationEvent wraps a stored notification.
func NewNotificationEvent(n *domain.Notification) Event {
	return Event{Type: EventNotificationCreated, Notification: n, OccurredAt: n.CreatedAt}
}

// Publisher delivers events outside the process.
type Publisher interface {
	Publish(ctx context.Context, ev Event) error
}

// Nop drops every event.
type Nop struct{}

func (Nop) Publish(context.Context, Event) error { return nil }

// Multi publishes to each publisher in order and joins their errors.
type Multi []Publisher

func (m Multi) Publish(ctx context.Context, ev Event) error {
	var errs []error
	for _, p := range m {
		if err := p.Publish(ctx, ev); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
