package service

import (
	"context"
	"strings"
	"testing"
	"time"

	"digiplot/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestTenantService(p *testPortfolio) TenantService {
	payments := NewPaymentService(p.store, NoopGateway{}, p.notifications, false, fixedClock(testNow), zap.NewNop())
	return NewTenantService(p.store, payments, p.notifications, fixedClock(testNow), zap.NewNop())
}

func TestTenantService_Dashboard(t *testing.T) {
	p := newTestPortfolio(t)
	svc := newTestTenantService(p)
	jane := p.addTenant(t, p.unitIDs[0], "Jane", "jane@example.co.ke", date(2023, time.October, 1))

	p.addPayment(t, jane, 20000, date(2024, time.January, 2), domain.PaymentPaid)
	feb := p.addPayment(t, jane, 20000, date(2024, time.February, 2), domain.PaymentPaid)
	mar := p.addPayment(t, jane, 20000, date(2024, time.March, 2), domain.PaymentPending)
	dec := p.addPayment(t, jane, 20000, date(2023, time.December, 2), domain.PaymentPaid)
	p.addRequest(t, jane, "Sink", domain.PriorityHigh, domain.MaintenancePending, 0, testNow)
	p.addRequest(t, jane, "Door", domain.PriorityLow, domain.MaintenanceInProgress, 0, testNow)
	p.addRequest(t, jane, "Paint", domain.PriorityLow, domain.MaintenanceCompleted, 0, testNow)

	d, err := svc.Dashboard(context.Background(), jane.ID)
	require.NoError(t, err)
	require.NotNil(t, d)
	assert.Equal(t, jane.ID, d.Tenant.ID)
	require.NotNil(t, d.Unit)
	assert.Equal(t, p.unitIDs[0], d.Unit.ID)
	assert.EqualValues(t, 20000, d.RentAmount)
	assert.Equal(t, RentStatusPaid, d.RentStatus, "a pending payment this month still counts")
	assert.Equal(t, date(2024, time.April, 1), d.NextPaymentDue)
	assert.Equal(t, 1, d.PendingMaintenance)
	assert.Equal(t, 1, d.InProgressMaintenance)

	require.Len(t, d.RecentPayments, 3)
	assert.Equal(t, dec.ID, d.RecentPayments[0].ID, "newest insertion first, not newest date")
	assert.Equal(t, mar.ID, d.RecentPayments[1].ID)
	assert.Equal(t, feb.ID, d.RecentPayments[2].ID)
}

func TestTenantService_DashboardUnpaidAndMissing(t *testing.T) {
	p := newTestPortfolio(t)
	svc := newTestTenantService(p)
	ctx := context.Background()
	brian := p.addTenant(t, p.unitIDs[1], "Brian", "brian@example.co.ke", date(2023, time.October, 1))
	p.addPayment(t, brian, 30000, date(2023, time.March, 2), domain.PaymentPaid)

	d, err := svc.Dashboard(ctx, brian.ID)
	require.NoError(t, err)
	assert.Equal(t, RentStatusUnpaid, d.RentStatus, "same month last year does not count")
	assert.Len(t, d.RecentPayments, 1)

	missing, err := svc.Dashboard(ctx, 404)
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestTenantService_GetUnit(t *testing.T) {
	p := newTestPortfolio(t)
	svc := newTestTenantService(p)
	ctx := context.Background()
	jane := p.addTenant(t, p.unitIDs[1], "Jane", "jane@example.co.ke", testNow)

	u, err := svc.GetUnit(ctx, jane.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 30000, u.RentAmount)

	// The unit is gone; the join yields nothing rather than an error.
	_, err = p.landlord.DeleteUnit(ctx, p.unitIDs[1])
	require.NoError(t, err)
	u, err = svc.GetUnit(ctx, jane.ID)
	require.NoError(t, err)
	assert.Nil(t, u)
}

func TestTenantService_CreateMaintenanceRequest(t *testing.T) {
	p := newTestPortfolio(t)
	svc := newTestTenantService(p)
	ctx := context.Background()
	jane := p.addTenant(t, p.unitIDs[0], "Jane", "jane@example.co.ke", testNow)

	r, err := svc.CreateMaintenanceRequest(ctx, jane.ID, CreateMaintenanceRequest{
		Title:       " Leaking sink ",
		Description: "Water under the cabinet",
	})
	require.NoError(t, err)
	assert.Equal(t, "Leaking sink", r.Title)
	assert.Equal(t, domain.PriorityMedium, r.Priority)
	assert.Equal(t, domain.MaintenancePending, r.Status)
	assert.Equal(t, jane.UnitID, r.UnitID)
	assert.Equal(t, testNow, r.CreatedAt)
	assert.NotNil(t, r.Images)

	notes, err := p.notifications.List(ctx, domain.RecipientLandlord, p.landlordID)
	require.NoError(t, err)
	require.Len(t, notes, 1)
	assert.Equal(t, "New medium priority maintenance request from Jane (unit A1): Leaking sink", notes[0].Message)

	reqs, err := svc.GetMaintenanceRequests(ctx, jane.ID)
	require.NoError(t, err)
	assert.Len(t, reqs, 1)
}

func TestTenantService_CreateMaintenanceRequestValidation(t *testing.T) {
	p := newTestPortfolio(t)
	svc := newTestTenantService(p)
	ctx := context.Background()
	jane := p.addTenant(t, p.unitIDs[0], "Jane", "jane@example.co.ke", testNow)

	_, err := svc.CreateMaintenanceRequest(ctx, jane.ID, CreateMaintenanceRequest{Description: "x"})
	assert.ErrorIs(t, err, ErrValidation)
	_, err = svc.CreateMaintenanceRequest(ctx, jane.ID, CreateMaintenanceRequest{Title: "x"})
	assert.ErrorIs(t, err, ErrValidation)
	_, err = svc.CreateMaintenanceRequest(ctx, jane.ID, CreateMaintenanceRequest{Title: "x", Description: "y", Priority: "whenever"})
	assert.ErrorIs(t, err, ErrValidation)
	_, err = svc.CreateMaintenanceRequest(ctx, 404, CreateMaintenanceRequest{Title: "x", Description: "y"})
	assert.ErrorIs(t, err, ErrValidation)
}

func TestTenantService_MakePayment(t *testing.T) {
	p := newTestPortfolio(t)
	svc := newTestTenantService(p)
	ctx := context.Background()
	jane := p.addTenant(t, p.unitIDs[0], "Jane", "jane@example.co.ke", testNow)

	pay, err := svc.MakePayment(ctx, jane.ID, MakePaymentRequest{
		Amount:        20000,
		PaymentMethod: domain.PaymentMethodMpesa,
		PhoneNumber:   "+254722000001",
	})
	require.NoError(t, err)
	assert.Equal(t, domain.PaymentPending, pay.Status)
	assert.True(t, strings.HasPrefix(pay.TransactionReference, "TXN-"))
	assert.Equal(t, jane.UnitID, pay.UnitID)
	assert.Equal(t, testNow, pay.PaymentDate)

	payments, err := svc.GetPayments(ctx, jane.ID)
	require.NoError(t, err)
	require.Len(t, payments, 1)
	assert.Equal(t, pay.ID, payments[0].ID)
}

func TestTenantService_MakePaymentValidation(t *testing.T) {
	p := newTestPortfolio(t)
	svc := newTestTenantService(p)
	ctx := context.Background()
	jane := p.addTenant(t, p.unitIDs[0], "Jane", "jane@example.co.ke", testNow)

	cases := []MakePaymentRequest{
		{Amount: 0, PaymentMethod: domain.PaymentMethodCash},
		{Amount: 100},
		{Amount: 100, PaymentMethod: "barter"},
		{Amount: 100, PaymentMethod: domain.PaymentMethodMpesa},
	}
	for _, req := range cases {
		_, err := svc.MakePayment(ctx, jane.ID, req)
		assert.ErrorIs(t, err, ErrValidation, "%+v", req)
	}
	_, err := svc.MakePayment(ctx, 404, MakePaymentRequest{Amount: 100, PaymentMethod: domain.PaymentMethodCash})
	assert.ErrorIs(t, err, ErrValidation)
}

func TestTenantService_Notifications(t *testing.T) {
	p := newTestPortfolio(t)
	svc := newTestTenantService(p)
	ctx := context.Background()
	jane := p.addTenant(t, p.unitIDs[0], "Jane", "jane@example.co.ke", testNow)
	brian := p.addTenant(t, p.unitIDs[1], "Brian", "brian@example.co.ke", testNow)

	n, err := p.notifications.Notify(ctx, domain.RecipientTenant, jane.ID, "Welcome")
	require.NoError(t, err)

	ok, err := svc.MarkNotificationRead(ctx, brian.ID, n.ID)
	require.NoError(t, err)
	assert.False(t, ok, "someone else's notification")

	ok, err = svc.MarkNotificationRead(ctx, jane.ID, n.ID)
	require.NoError(t, err)
	assert.True(t, ok)

	list, err := svc.ListNotifications(ctx, jane.ID)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.True(t, list[0].IsRead())
}
