package service

import (
	"context"
	"errors"
	"testing"

	"digiplot/internal/domain"
	"digiplot/internal/notify"
	"digiplot/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type recordingPublisher struct {
	events []notify.Event
	err    error
}

func (r *recordingPublisher) Publish(_ context.Context, ev notify.Event) error {
	r.events = append(r.events, ev)
	return r.err
}

func TestNotificationService_NotifyPublishes(t *testing.T) {
	repo := repository.NewMemoryNotificationsRepo()
	pub := &recordingPublisher{}
	ns := NewNotificationService(repo, pub, fixedClock(testNow), zap.NewNop())

	n, err := ns.Notify(context.Background(), domain.RecipientLandlord, 1, "New request")
	require.NoError(t, err)
	assert.Equal(t, testNow, n.CreatedAt)
	assert.False(t, n.IsRead())

	require.Len(t, pub.events, 1)
	assert.Equal(t, notify.EventNotificationCreated, pub.events[0].Type)
	assert.Equal(t, n.ID, pub.events[0].Notification.ID)
}

func TestNotificationService_PublishFailureIsNotFatal(t *testing.T) {
	repo := repository.NewMemoryNotificationsRepo()
	pub := &recordingPublisher{err: errors.New("broker down")}
	ns := NewNotificationService(repo, pub, fixedClock(testNow), zap.NewNop())
	ctx := context.Background()

	_, err := ns.Notify(ctx, domain.RecipientTenant, 2, "Rent due")
	require.NoError(t, err)

	list, err := ns.List(ctx, domain.RecipientTenant, 2)
	require.NoError(t, err)
	assert.Len(t, list, 1)
}

func TestNotificationService_MarkRead(t *testing.T) {
	ns := NewNotificationService(repository.NewMemoryNotificationsRepo(), nil, fixedClock(testNow), zap.NewNop())
	ctx := context.Background()

	n, err := ns.Notify(ctx, domain.RecipientTenant, 2, "Rent due")
	require.NoError(t, err)

	ok, err := ns.MarkRead(ctx, domain.RecipientLandlord, 2, n.ID)
	require.NoError(t, err)
	assert.False(t, ok, "wrong recipient type")

	ok, err = ns.MarkRead(ctx, domain.RecipientTenant, 2, 999)
	require.NoError(t, err)
	assert.False(t, ok)

	ok, err = ns.MarkRead(ctx, domain.RecipientTenant, 2, n.ID)
	require.NoError(t, err)
	assert.True(t, ok)
}
