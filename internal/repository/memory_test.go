package repository

import (
	"context"
	"testing"
	"time"

	"digiplot/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryUnits_IDsAreNotReusedAfterDelete(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryUnitsRepo()

	a, err := repo.CreateUnit(ctx, &domain.Unit{PropertyID: 1, UnitNumber: "A1"})
	require.NoError(t, err)
	b, err := repo.CreateUnit(ctx, &domain.Unit{PropertyID: 1, UnitNumber: "A2"})
	require.NoError(t, err)
	require.NoError(t, repo.DeleteUnit(ctx, a))

	c, err := repo.CreateUnit(ctx, &domain.Unit{PropertyID: 1, UnitNumber: "A3"})
	require.NoError(t, err)
	assert.NotEqual(t, b, c)
	assert.Greater(t, c, b)

	units, err := repo.ListUnits(ctx, AllUnits())
	require.NoError(t, err)
	require.Len(t, units, 2)
	assert.Equal(t, "A2", units[0].UnitNumber)
	assert.Equal(t, "A3", units[1].UnitNumber)
}

func TestMemoryUnits_Scope(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryUnitsRepo()
	for _, pid := range []int64{1, 2, 2, 3} {
		_, err := repo.CreateUnit(ctx, &domain.Unit{PropertyID: pid})
		require.NoError(t, err)
	}

	all, err := repo.ListUnits(ctx, AllUnits())
	require.NoError(t, err)
	assert.Len(t, all, 4)

	two, err := repo.ListUnits(ctx, PropertyUnits(2))
	require.NoError(t, err)
	assert.Len(t, two, 2)

	none, err := repo.ListUnits(ctx, PropertyUnits())
	require.NoError(t, err)
	assert.Empty(t, none)

	zero, err := repo.ListUnits(ctx, UnitScope{})
	require.NoError(t, err)
	assert.Empty(t, zero)
}

func TestMemoryUnits_ReturnsCopies(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryUnitsRepo()
	tenantID := int64(7)
	id, err := repo.CreateUnit(ctx, &domain.Unit{PropertyID: 1, TenantID: &tenantID})
	require.NoError(t, err)

	u, err := repo.GetUnit(ctx, id)
	require.NoError(t, err)
	u.UnitNumber = "changed"
	*u.TenantID = 99

	again, err := repo.GetUnit(ctx, id)
	require.NoError(t, err)
	assert.Empty(t, again.UnitNumber)
	assert.Equal(t, int64(7), *again.TenantID)
}

func TestMemoryUnits_NotFound(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryUnitsRepo()

	_, err := repo.GetUnit(ctx, 42)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.ErrorIs(t, repo.UpdateUnit(ctx, &domain.Unit{ID: 42}), ErrNotFound)
	assert.ErrorIs(t, repo.DeleteUnit(ctx, 42), ErrNotFound)
}

func TestMemoryTenants_ByEmailIsCaseInsensitive(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryTenantsRepo()
	id, err := repo.CreateTenant(ctx, &domain.Tenant{UnitID: 1, Name: "Jane", Email: "Jane@Example.com"})
	require.NoError(t, err)

	got, err := repo.GetTenantByEmail(ctx, "jane@example.com")
	require.NoError(t, err)
	assert.Equal(t, id, got.ID)

	byUnit, err := repo.ListTenantsByUnits(ctx, []int64{1})
	require.NoError(t, err)
	assert.Len(t, byUnit, 1)
}

func TestMemoryPayments_ByReference(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryPaymentsRepo()
	_, err := repo.CreatePayment(ctx, &domain.Payment{TenantID: 1, UnitID: 2, Amount: 100, TransactionReference: "MP1"})
	require.NoError(t, err)

	p, err := repo.GetPaymentByReference(ctx, "MP1")
	require.NoError(t, err)
	assert.Equal(t, int64(100), p.Amount)

	_, err = repo.GetPaymentByReference(ctx, "nope")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMemoryMaintenance_CloneIsolatesComments(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryMaintenanceRepo()
	id, err := repo.CreateMaintenanceRequest(ctx, &domain.MaintenanceRequest{
		TenantID: 1, UnitID: 1, Title: "Leak",
		Comments: []domain.MaintenanceComment{{Author: "tenant", Message: "please"}},
	})
	require.NoError(t, err)

	got, err := repo.GetMaintenanceRequest(ctx, id)
	require.NoError(t, err)
	got.Comments[0].Message = "edited"

	again, err := repo.GetMaintenanceRequest(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "please", again.Comments[0].Message)
}

func TestMemoryNotifications_MarkReadKeepsFirstTime(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryNotificationsRepo()
	id, err := repo.CreateNotification(ctx, &domain.Notification{
		RecipientID: 1, RecipientType: domain.RecipientTenant, Message: "hi",
	})
	require.NoError(t, err)

	first := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	require.NoError(t, repo.MarkRead(ctx, id, first))
	require.NoError(t, repo.MarkRead(ctx, id, first.Add(time.Hour)))

	n, err := repo.GetNotification(ctx, id)
	require.NoError(t, err)
	require.NotNil(t, n.ReadAt)
	assert.True(t, first.Equal(*n.ReadAt))

	list, err := repo.ListNotifications(ctx, domain.RecipientLandlord, 1)
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestMemoryPayments_SettleOnlyOnce(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryPaymentsRepo()
	id, err := repo.CreatePayment(ctx, &domain.Payment{TenantID: 1, UnitID: 2, Amount: 100, Status: domain.PaymentPending})
	require.NoError(t, err)
	at := time.Date(2024, 3, 15, 10, 0, 0, 0, time.UTC)

	p, err := repo.SettlePayment(ctx, id, domain.PaymentPaid, at)
	require.NoError(t, err)
	assert.Equal(t, domain.PaymentPaid, p.Status)
	assert.Equal(t, at, p.UpdatedAt)

	_, err = repo.SettlePayment(ctx, id, domain.PaymentFailed, at)
	assert.ErrorIs(t, err, ErrNotPending)
	stored, err := repo.GetPayment(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, domain.PaymentPaid, stored.Status)

	_, err = repo.SettlePayment(ctx, 99, domain.PaymentPaid, at)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMemoryReceipts_OnePerPayment(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryReceiptsRepo()
	_, err := repo.CreateReceipt(ctx, &domain.Receipt{PaymentID: 7, ReceiptNumber: "RCT-202403-7", Amount: 100})
	require.NoError(t, err)

	_, err = repo.CreateReceipt(ctx, &domain.Receipt{PaymentID: 7, ReceiptNumber: "RCT-202403-7", Amount: 100})
	assert.ErrorIs(t, err, ErrDuplicate)

	_, err = repo.CreateReceipt(ctx, &domain.Receipt{PaymentID: 8, ReceiptNumber: "RCT-202403-8", Amount: 100})
	assert.NoError(t, err)
}
