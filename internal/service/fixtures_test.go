package service

import (
	"context"
	"fmt"
	"testing"
	"time"

	"digiplot/internal/domain"
	"digiplot/internal/notify"
	"digiplot/internal/repository"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

var testNow = time.Date(2024, time.March, 15, 10, 0, 0, 0, time.UTC)

func fixedClock(t time.Time) Clock {
	return func() time.Time { return t }
}

// testPortfolio is one landlord with one property and two vacant units
// (rent 20,000 and 30,000).
type testPortfolio struct {
	store         *repository.Store
	notifications NotificationService
	landlord      LandlordService
	landlordID    int64
	propertyID    int64
	unitIDs       []int64
}

func newTestPortfolio(t *testing.T) *testPortfolio {
	t.Helper()
	ctx := context.Background()
	st := repository.NewMemoryStore()
	logger := zap.NewNop()
	clock := fixedClock(testNow)

	landlordID, err := st.Landlords.CreateLandlord(ctx, &domain.Landlord{
		Name:  "John Kamau",
		Email: DemoLandlordEmail,
	})
	require.NoError(t, err)
	propertyID, err := st.Properties.CreateProperty(ctx, &domain.Property{
		LandlordID: landlordID,
		Name:       "Sunset Apartments",
		Location:   "Kilimani, Nairobi",
	})
	require.NoError(t, err)

	var unitIDs []int64
	for i, rent := range []int64{20000, 30000} {
		id, err := st.Units.CreateUnit(ctx, &domain.Unit{
			PropertyID: propertyID,
			UnitNumber: fmt.Sprintf("A%d", i+1),
			RentAmount: rent,
			Status:     domain.UnitVacant,
		})
		require.NoError(t, err)
		unitIDs = append(unitIDs, id)
	}

	ns := NewNotificationService(st.Notifications, notify.Nop{}, clock, logger)
	return &testPortfolio{
		store:         st,
		notifications: ns,
		landlord:      NewLandlordService(st, ns, clock, logger),
		landlordID:    landlordID,
		propertyID:    propertyID,
		unitIDs:       unitIDs,
	}
}

func (p *testPortfolio) addTenant(t *testing.T, unitID int64, name, email string, moveIn time.Time) *domain.Tenant {
	t.Helper()
	tenant, err := p.landlord.CreateTenant(context.Background(), CreateTenantRequest{
		UnitID:     unitID,
		Name:       name,
		Email:      email,
		MoveInDate: moveIn,
	})
	require.NoError(t, err)
	return tenant
}

func (p *testPortfolio) addPayment(t *testing.T, tenant *domain.Tenant, amount int64, on time.Time, status domain.PaymentStatus) *domain.Payment {
	t.Helper()
	pay := &domain.Payment{
		TenantID:             tenant.ID,
		UnitID:               tenant.UnitID,
		Amount:               amount,
		PaymentDate:          on,
		PaymentMethod:        domain.PaymentMethodCash,
		Status:               status,
		TransactionReference: "REF-" + on.Format("20060102") + "-" + tenant.Name,
	}
	_, err := p.store.Payments.CreatePayment(context.Background(), pay)
	require.NoError(t, err)
	return pay
}

func (p *testPortfolio) addRequest(t *testing.T, tenant *domain.Tenant, title string, priority domain.MaintenancePriority, status domain.MaintenanceStatus, cost int64, created time.Time) *domain.MaintenanceRequest {
	t.Helper()
	r := &domain.MaintenanceRequest{
		TenantID:    tenant.ID,
		UnitID:      tenant.UnitID,
		Title:       title,
		Description: title,
		Priority:    priority,
		Status:      status,
		Cost:        cost,
		Images:      []string{},
		Comments:    []domain.MaintenanceComment{},
		CreatedAt:   created,
		UpdatedAt:   created,
	}
	_, err := p.store.Maintenance.CreateMaintenanceRequest(context.Background(), r)
	require.NoError(t, err)
	return r
}

func ptr[T any](v T) *T { return &v }
