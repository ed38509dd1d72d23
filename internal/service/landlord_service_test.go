package service

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"digiplot/internal/domain"
	"digiplot/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLandlordService_CreatePropertyValidation(t *testing.T) {
	p := newTestPortfolio(t)
	ctx := context.Background()

	_, err := p.landlord.CreateProperty(ctx, CreatePropertyRequest{LandlordID: p.landlordID, Location: "Westlands"})
	require.ErrorIs(t, err, ErrValidation)
	assert.Equal(t, "name is required", err.Error())

	_, err = p.landlord.CreateProperty(ctx, CreatePropertyRequest{LandlordID: p.landlordID, Name: "Greenview"})
	require.ErrorIs(t, err, ErrValidation)
}

func TestLandlordService_PropertyLifecycle(t *testing.T) {
	p := newTestPortfolio(t)
	ctx := context.Background()

	created, err := p.landlord.CreateProperty(ctx, CreatePropertyRequest{
		LandlordID: p.landlordID,
		Name:       "  Greenview Residences ",
		Location:   "Westlands, Nairobi",
	})
	require.NoError(t, err)
	assert.Equal(t, "Greenview Residences", created.Name)
	assert.Equal(t, testNow, created.CreatedAt)
	assert.Equal(t, testNow, created.UpdatedAt)

	updated, err := p.landlord.UpdateProperty(ctx, created.ID, PropertyPatch{Description: ptr("Garden units")})
	require.NoError(t, err)
	require.NotNil(t, updated)
	assert.Equal(t, "Greenview Residences", updated.Name, "nil patch fields are kept")
	assert.Equal(t, "Garden units", updated.Description)

	_, err = p.landlord.UpdateProperty(ctx, created.ID, PropertyPatch{Name: ptr(" ")})
	require.ErrorIs(t, err, ErrValidation)

	missing, err := p.landlord.UpdateProperty(ctx, 999, PropertyPatch{Name: ptr("x")})
	require.NoError(t, err)
	assert.Nil(t, missing)

	ok, err := p.landlord.DeleteProperty(ctx, created.ID)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = p.landlord.DeleteProperty(ctx, created.ID)
	require.NoError(t, err)
	assert.False(t, ok)

	got, err := p.landlord.GetProperty(ctx, created.ID)
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestLandlordService_DeletedIDsAreNotReused(t *testing.T) {
	p := newTestPortfolio(t)
	ctx := context.Background()

	a, err := p.landlord.CreateUnit(ctx, CreateUnitRequest{PropertyID: p.propertyID, UnitNumber: "B1", RentAmount: 10000})
	require.NoError(t, err)
	b, err := p.landlord.CreateUnit(ctx, CreateUnitRequest{PropertyID: p.propertyID, UnitNumber: "B2", RentAmount: 10000})
	require.NoError(t, err)

	ok, err := p.landlord.DeleteUnit(ctx, a.ID)
	require.NoError(t, err)
	require.True(t, ok)

	c, err := p.landlord.CreateUnit(ctx, CreateUnitRequest{PropertyID: p.propertyID, UnitNumber: "B3", RentAmount: 10000})
	require.NoError(t, err)
	assert.Greater(t, c.ID, b.ID)

	got, err := p.landlord.GetUnit(ctx, b.ID)
	require.NoError(t, err)
	assert.Equal(t, "B2", got.UnitNumber)
}

func TestLandlordService_DeletePropertyKeepsUnits(t *testing.T) {
	p := newTestPortfolio(t)
	ctx := context.Background()

	ok, err := p.landlord.DeleteProperty(ctx, p.propertyID)
	require.NoError(t, err)
	require.True(t, ok)

	units, err := p.landlord.ListUnits(ctx, repository.AllUnits())
	require.NoError(t, err)
	assert.Len(t, units, 2)
}

func TestLandlordService_ListUnitsScope(t *testing.T) {
	p := newTestPortfolio(t)
	ctx := context.Background()

	other, err := p.landlord.CreateProperty(ctx, CreatePropertyRequest{LandlordID: p.landlordID, Name: "Riverside", Location: "Kileleshwa"})
	require.NoError(t, err)
	_, err = p.landlord.CreateUnit(ctx, CreateUnitRequest{PropertyID: other.ID, UnitNumber: "R1", RentAmount: 15000})
	require.NoError(t, err)

	all, err := p.landlord.ListUnits(ctx, repository.AllUnits())
	require.NoError(t, err)
	assert.Len(t, all, 3)

	one, err := p.landlord.ListUnits(ctx, repository.PropertyUnits(other.ID))
	require.NoError(t, err)
	require.Len(t, one, 1)
	assert.Equal(t, "R1", one[0].UnitNumber)

	scope, err := p.landlord.LandlordUnitScope(ctx, p.landlordID)
	require.NoError(t, err)
	mine, err := p.landlord.ListUnits(ctx, scope)
	require.NoError(t, err)
	assert.Len(t, mine, 3)

	none, err := p.landlord.ListUnits(ctx, repository.UnitScope{})
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestLandlordService_CreateUnitValidation(t *testing.T) {
	p := newTestPortfolio(t)
	ctx := context.Background()

	cases := []CreateUnitRequest{
		{UnitNumber: "X1"},
		{PropertyID: p.propertyID},
		{PropertyID: p.propertyID, UnitNumber: "X1", RentAmount: -1},
		{PropertyID: p.propertyID, UnitNumber: "X1", Status: "demolished"},
	}
	for _, req := range cases {
		_, err := p.landlord.CreateUnit(ctx, req)
		assert.ErrorIs(t, err, ErrValidation, "%+v", req)
	}

	u, err := p.landlord.CreateUnit(ctx, CreateUnitRequest{PropertyID: p.propertyID, UnitNumber: "X1"})
	require.NoError(t, err)
	assert.Equal(t, domain.UnitVacant, u.Status)
}

func TestLandlordService_TenantKeepsUnitInSync(t *testing.T) {
	p := newTestPortfolio(t)
	ctx := context.Background()
	first, second := p.unitIDs[0], p.unitIDs[1]

	tenant := p.addTenant(t, first, "Jane Wanjiku", "jane@example.co.ke", testNow.AddDate(0, -2, 0))
	assert.Equal(t, tenant.MoveInDate, tenant.LeaseStartDate)
	assert.Equal(t, tenant.LeaseStartDate.AddDate(1, 0, 0), tenant.LeaseEndDate)

	u, err := p.landlord.GetUnit(ctx, first)
	require.NoError(t, err)
	assert.Equal(t, domain.UnitOccupied, u.Status)
	require.NotNil(t, u.TenantID)
	assert.Equal(t, tenant.ID, *u.TenantID)
	assert.Equal(t, "Jane Wanjiku", u.TenantName)

	// Moving to another unit releases the first.
	_, err = p.landlord.UpdateTenant(ctx, tenant.ID, TenantPatch{UnitID: &second})
	require.NoError(t, err)
	u, err = p.landlord.GetUnit(ctx, first)
	require.NoError(t, err)
	assert.Equal(t, domain.UnitVacant, u.Status)
	assert.Nil(t, u.TenantID)
	assert.Empty(t, u.TenantName)
	u, err = p.landlord.GetUnit(ctx, second)
	require.NoError(t, err)
	assert.Equal(t, domain.UnitOccupied, u.Status)

	// Moving out releases the unit but keeps the tenant record.
	updated, err := p.landlord.UpdateTenant(ctx, tenant.ID, TenantPatch{MoveOutDate: SomeTime(testNow)})
	require.NoError(t, err)
	assert.Equal(t, domain.TenantFormer, updated.Status())
	u, err = p.landlord.GetUnit(ctx, second)
	require.NoError(t, err)
	assert.Equal(t, domain.UnitVacant, u.Status)

	tenants, err := p.landlord.ListTenants(ctx, p.landlordID)
	require.NoError(t, err)
	assert.Len(t, tenants, 1)

	// Clearing the move-out date makes the tenant active again.
	back, err := p.landlord.UpdateTenant(ctx, tenant.ID, TenantPatch{MoveOutDate: NullTime()})
	require.NoError(t, err)
	assert.Nil(t, back.MoveOutDate)
	assert.Equal(t, domain.TenantActive, back.Status())
	u, err = p.landlord.GetUnit(ctx, second)
	require.NoError(t, err)
	assert.Equal(t, domain.UnitOccupied, u.Status)
	require.NotNil(t, u.TenantID)
	assert.Equal(t, tenant.ID, *u.TenantID)
}

func TestTenantPatch_MoveOutDateJSON(t *testing.T) {
	var absent TenantPatch
	require.NoError(t, json.Unmarshal([]byte(`{"name":"Jane"}`), &absent))
	assert.False(t, absent.MoveOutDate.Set)

	var cleared TenantPatch
	require.NoError(t, json.Unmarshal([]byte(`{"move_out_date":null}`), &cleared))
	assert.True(t, cleared.MoveOutDate.Set)
	assert.Nil(t, cleared.MoveOutDate.Value)

	var set TenantPatch
	require.NoError(t, json.Unmarshal([]byte(`{"move_out_date":"2024-03-31T00:00:00Z"}`), &set))
	assert.True(t, set.MoveOutDate.Set)
	require.NotNil(t, set.MoveOutDate.Value)
	assert.Equal(t, time.Date(2024, time.March, 31, 0, 0, 0, 0, time.UTC), set.MoveOutDate.Value.UTC())

	var bad TenantPatch
	assert.Error(t, json.Unmarshal([]byte(`{"move_out_date":"soon"}`), &bad))
}

func TestLandlordService_DeleteTenantReleasesUnitOnly(t *testing.T) {
	p := newTestPortfolio(t)
	ctx := context.Background()

	tenant := p.addTenant(t, p.unitIDs[0], "Brian Otieno", "brian@example.co.ke", testNow.AddDate(0, -1, 0))
	p.addPayment(t, tenant, 20000, testNow, domain.PaymentPaid)

	ok, err := p.landlord.DeleteTenant(ctx, tenant.ID)
	require.NoError(t, err)
	require.True(t, ok)

	u, err := p.landlord.GetUnit(ctx, p.unitIDs[0])
	require.NoError(t, err)
	assert.Equal(t, domain.UnitVacant, u.Status)

	payments, err := p.landlord.ListPayments(ctx, p.landlordID)
	require.NoError(t, err)
	assert.Len(t, payments, 1, "payments survive the tenant")

	ok, err = p.landlord.DeleteTenant(ctx, tenant.ID)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestLandlordService_CreateTenantRejectsInvertedLease(t *testing.T) {
	p := newTestPortfolio(t)
	_, err := p.landlord.CreateTenant(context.Background(), CreateTenantRequest{
		UnitID:         p.unitIDs[0],
		Name:           "Aisha",
		Email:          "aisha@example.co.ke",
		LeaseStartDate: testNow,
		LeaseEndDate:   testNow.AddDate(0, -1, 0),
	})
	require.ErrorIs(t, err, ErrValidation)
}

func TestLandlordService_UpdateMaintenanceStatus(t *testing.T) {
	p := newTestPortfolio(t)
	ctx := context.Background()
	tenant := p.addTenant(t, p.unitIDs[0], "Jane Wanjiku", "jane@example.co.ke", testNow.AddDate(0, -3, 0))
	created := testNow.AddDate(0, 0, -5)
	req := p.addRequest(t, tenant, "Leaking sink", domain.PriorityHigh, domain.MaintenancePending, 0, created)

	got, err := p.landlord.UpdateMaintenanceStatus(ctx, req.ID, domain.MaintenanceInProgress)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, domain.MaintenanceInProgress, got.Status)
	assert.Equal(t, testNow, got.UpdatedAt)
	assert.Equal(t, created, got.CreatedAt)
	assert.Equal(t, "Leaking sink", got.Title)
	assert.Equal(t, domain.PriorityHigh, got.Priority)
	assert.Nil(t, got.CompletedAt)

	notes, err := p.notifications.List(ctx, domain.RecipientTenant, tenant.ID)
	require.NoError(t, err)
	require.Len(t, notes, 1)
	assert.Contains(t, notes[0].Message, "in progress")

	done, err := p.landlord.UpdateMaintenanceStatus(ctx, req.ID, domain.MaintenanceCompleted)
	require.NoError(t, err)
	assert.Equal(t, domain.MaintenanceCompleted, done.Status)
	assert.Equal(t, testNow, done.UpdatedAt)
	assert.Nil(t, done.CompletedAt, "only status and updated_at change")
	assert.Equal(t, created, done.CreatedAt)
	assert.Equal(t, "Leaking sink", done.Title)
	_, err = p.landlord.UpdateMaintenanceStatus(ctx, req.ID, domain.MaintenancePending)
	require.ErrorIs(t, err, ErrValidation)

	_, err = p.landlord.UpdateMaintenanceStatus(ctx, req.ID, "on_hold")
	require.ErrorIs(t, err, ErrValidation)

	missing, err := p.landlord.UpdateMaintenanceStatus(ctx, 999, domain.MaintenanceCompleted)
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestLandlordService_MaintenanceCommentsAndCost(t *testing.T) {
	p := newTestPortfolio(t)
	ctx := context.Background()
	tenant := p.addTenant(t, p.unitIDs[0], "Jane Wanjiku", "jane@example.co.ke", testNow.AddDate(0, -3, 0))
	req := p.addRequest(t, tenant, "Broken latch", domain.PriorityLow, domain.MaintenancePending, 0, testNow.AddDate(0, 0, -1))
	p.addRequest(t, tenant, "Paint", domain.PriorityLow, domain.MaintenanceCompleted, 0, testNow.AddDate(0, 0, -1))

	got, err := p.landlord.AddMaintenanceComment(ctx, req.ID, "landlord", "Fundi coming Tuesday")
	require.NoError(t, err)
	require.Len(t, got.Comments, 1)
	assert.Equal(t, "Fundi coming Tuesday", got.Comments[0].Message)

	_, err = p.landlord.AddMaintenanceComment(ctx, req.ID, "landlord", "  ")
	require.ErrorIs(t, err, ErrValidation)

	got, err = p.landlord.SetMaintenanceCost(ctx, req.ID, 3500)
	require.NoError(t, err)
	assert.EqualValues(t, 3500, got.Cost)

	_, err = p.landlord.SetMaintenanceCost(ctx, req.ID, -1)
	require.ErrorIs(t, err, ErrValidation)

	pending, err := p.landlord.ListMaintenanceRequests(ctx, p.landlordID, domain.MaintenancePending)
	require.NoError(t, err)
	require.Len(t, pending, 1)
	assert.Equal(t, req.ID, pending[0].ID)
	assert.Len(t, pending[0].Comments, 1)

	all, err := p.landlord.ListMaintenanceRequests(ctx, p.landlordID, "")
	require.NoError(t, err)
	assert.Len(t, all, 2)
}

func TestLandlordService_UpdateProfile(t *testing.T) {
	p := newTestPortfolio(t)
	ctx := context.Background()

	l, err := p.landlord.UpdateProfile(ctx, p.landlordID, LandlordPatch{PhoneNumber: ptr("+254700000000")})
	require.NoError(t, err)
	assert.Equal(t, "John Kamau", l.Name)
	assert.Equal(t, "+254700000000", l.PhoneNumber)

	_, err = p.landlord.UpdateProfile(ctx, p.landlordID, LandlordPatch{Email: ptr("")})
	require.ErrorIs(t, err, ErrValidation)

	missing, err := p.landlord.UpdateProfile(ctx, 42, LandlordPatch{})
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestLandlordService_Dashboard(t *testing.T) {
	p := newTestPortfolio(t)
	ctx := context.Background()

	for _, name := range []string{"Greenview", "Riverside", "Hillcrest"} {
		_, err := p.landlord.CreateProperty(ctx, CreatePropertyRequest{LandlordID: p.landlordID, Name: name, Location: "Nairobi"})
		require.NoError(t, err)
	}
	jane := p.addTenant(t, p.unitIDs[0], "Jane", "jane@example.co.ke", testNow.AddDate(0, -6, 0))
	p.addPayment(t, jane, 20000, time.Date(2024, time.February, 3, 0, 0, 0, 0, time.UTC), domain.PaymentPaid)
	p.addPayment(t, jane, 20000, time.Date(2024, time.March, 3, 0, 0, 0, 0, time.UTC), domain.PaymentPaid)
	p.addPayment(t, jane, 5000, time.Date(2024, time.March, 10, 0, 0, 0, 0, time.UTC), domain.PaymentPending)
	p.addPayment(t, jane, 9000, time.Date(2023, time.March, 10, 0, 0, 0, 0, time.UTC), domain.PaymentPaid)
	p.addRequest(t, jane, "Sink", domain.PriorityHigh, domain.MaintenancePending, 0, testNow)
	p.addRequest(t, jane, "Door", domain.PriorityLow, domain.MaintenanceInProgress, 0, testNow)

	d, err := p.landlord.Dashboard(ctx, p.landlordID)
	require.NoError(t, err)
	assert.Equal(t, 4, d.TotalProperties)
	assert.Equal(t, 2, d.TotalUnits)
	assert.Equal(t, 1, d.OccupiedUnits)
	assert.Equal(t, 1, d.VacantUnits)
	assert.InDelta(t, 0.5, d.OccupancyRate, 1e-9)
	assert.EqualValues(t, 50000, d.TotalMonthlyRent)
	assert.EqualValues(t, 25000, d.TotalCollectedRent, "current month counts every status, not last year's March")
	assert.InDelta(t, 0.5, d.RentCollectionRate, 1e-9)
	assert.Equal(t, 1, d.PendingMaintenance)
	assert.Equal(t, 1, d.InProgressMaintenance)
	assert.Equal(t, 0, d.CompletedMaintenance)

	require.Len(t, d.RevenueTrend, 6)
	assert.Equal(t, "Oct", d.RevenueTrend[0].Month)
	assert.Equal(t, "Mar", d.RevenueTrend[5].Month)
	assert.EqualValues(t, 20000, d.RevenueTrend[4].Revenue)
	assert.EqualValues(t, 25000, d.RevenueTrend[5].Revenue)

	require.Len(t, d.RecentProperties, 3)
	assert.Equal(t, "Sunset Apartments", d.RecentProperties[0].Name, "insertion order")
	assert.Len(t, d.RecentPayments, 4)
	require.Len(t, d.PendingRequests, 1)
	assert.Equal(t, "Sink", d.PendingRequests[0].Title)
}

func TestLandlordService_DashboardEmptyPortfolio(t *testing.T) {
	p := newTestPortfolio(t)
	d, err := p.landlord.Dashboard(context.Background(), 777)
	require.NoError(t, err)
	assert.Zero(t, d.TotalUnits)
	assert.Zero(t, d.OccupancyRate)
	assert.Zero(t, d.RentCollectionRate)
	assert.Len(t, d.RevenueTrend, 6)
	assert.Empty(t, d.RecentPayments)
}
