package service

import (
	"context"
	"testing"

	"digiplot/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestRentReminder_Run(t *testing.T) {
	p := newTestPortfolio(t)
	ctx := context.Background()
	former := p.addTenant(t, p.unitIDs[1], "Faith", "faith@example.co.ke", testNow.AddDate(-1, 0, 0))
	_, err := p.landlord.UpdateTenant(ctx, former.ID, TenantPatch{MoveOutDate: SomeTime(testNow.AddDate(0, -6, 0))})
	require.NoError(t, err)
	jane := p.addTenant(t, p.unitIDs[0], "Jane", "jane@example.co.ke", testNow.AddDate(0, -3, 0))
	brian := p.addTenant(t, p.unitIDs[1], "Brian", "brian@example.co.ke", testNow.AddDate(0, -3, 0))
	p.addPayment(t, jane, 20000, testNow.AddDate(0, 0, -3), domain.PaymentPaid)

	r := NewRentReminder(p.store, p.notifications, "", fixedClock(testNow), zap.NewNop())
	sent, err := r.Run(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, sent)

	notes, err := p.notifications.List(ctx, domain.RecipientTenant, brian.ID)
	require.NoError(t, err)
	require.Len(t, notes, 1)
	assert.Equal(t, "Reminder: rent of KES 30,000 for unit A2 is due by Apr 1, 2024.", notes[0].Message)

	for _, id := range []int64{jane.ID, former.ID} {
		notes, err := p.notifications.List(ctx, domain.RecipientTenant, id)
		require.NoError(t, err)
		assert.Empty(t, notes)
	}
}

func TestRentReminder_StartRejectsBadSchedule(t *testing.T) {
	p := newTestPortfolio(t)
	r := NewRentReminder(p.store, p.notifications, "every tuesday", fixedClock(testNow), zap.NewNop())
	require.Error(t, r.Start())
	r.Stop()

	ok := NewRentReminder(p.store, p.notifications, DefaultReminderSchedule, fixedClock(testNow), zap.NewNop())
	require.NoError(t, ok.Start())
	assert.True(t, ok.Running())
	ok.Stop()
	assert.False(t, ok.Running())
	ok.Stop()
}
