package service

import (
	"context"
	"fmt"
	"time"

	"digiplot/internal/domain"
	"digiplot/internal/stats"

	"go.uber.org/zap"
)

const (
	trendMonths           = 6
	recentPropertiesLimit = 3
	recentPaymentsLimit   = 5
	pendingRequestsLimit  = 5
)

// LandlordDashboard is the landlord home-page summary.
type LandlordDashboard struct {
	TotalProperties       int                          `json:"total_properties"`
	TotalUnits            int                          `json:"total_units"`
	OccupiedUnits         int                          `json:"occupied_units"`
	VacantUnits           int                          `json:"vacant_units"`
	OccupancyRate         float64                      `json:"occupancy_rate"`
	TotalMonthlyRent      int64                        `json:"total_monthly_rent"`
	TotalCollectedRent    int64                        `json:"total_collected_rent"`
	RentCollectionRate    float64                      `json:"rent_collection_rate"`
	PendingMaintenance    int                          `json:"pending_maintenance"`
	InProgressMaintenance int                          `json:"in_progress_maintenance"`
	CompletedMaintenance  int                          `json:"completed_maintenance"`
	RevenueTrend          []stats.TrendPoint           `json:"revenue_trend"`
	RecentProperties      []*domain.Property           `json:"recent_properties"`
	RecentPayments        []*domain.Payment            `json:"recent_payments"`
	PendingRequests       []*domain.MaintenanceRequest `json:"pending_requests"`
	GeneratedAt           time.Time                    `json:"generated_at"`
}

// Dashboard recomputes everything from the store on each call.
//
// Collected rent and the revenue trend sum every payment dated in the
// month, whatever its status. The recent slices keep insertion order.
func (s *landlordService) Dashboard(ctx context.Context, landlordID int64) (*LandlordDashboard, error) {
	now := s.clock.now()

	pf, err := loadPortfolio(ctx, s.store, landlordID)
	if err != nil {
		s.logger.Error("Dashboard failed", zap.Int64("landlord_id", landlordID), zap.Error(err))
		return nil, err
	}
	unitIDs := pf.unitIDs()
	payments, err := s.store.Payments.ListPaymentsByUnits(ctx, unitIDs)
	if err != nil {
		s.logger.Error("Dashboard failed", zap.Int64("landlord_id", landlordID), zap.Error(err))
		return nil, fmt.Errorf("failed to list payments: %w", err)
	}
	requests, err := s.store.Maintenance.ListMaintenanceByUnits(ctx, unitIDs)
	if err != nil {
		s.logger.Error("Dashboard failed", zap.Int64("landlord_id", landlordID), zap.Error(err))
		return nil, fmt.Errorf("failed to list maintenance requests: %w", err)
	}

	unitStatus := stats.CountByStatus(pf.units, func(u *domain.Unit) domain.UnitStatus { return u.Status })
	reqStatus := stats.CountByStatus(requests, func(r *domain.MaintenanceRequest) domain.MaintenanceStatus { return r.Status })
	paymentDate := func(p *domain.Payment) time.Time { return p.PaymentDate }
	paymentAmount := func(p *domain.Payment) int64 { return p.Amount }

	d := &LandlordDashboard{
		TotalProperties:       len(pf.properties),
		TotalUnits:            len(pf.units),
		OccupiedUnits:         unitStatus[domain.UnitOccupied],
		VacantUnits:           unitStatus[domain.UnitVacant],
		TotalMonthlyRent:      stats.Sum(pf.units, func(u *domain.Unit) int64 { return u.RentAmount }),
		TotalCollectedRent:    stats.Sum(stats.InMonth(payments, paymentDate, now), paymentAmount),
		PendingMaintenance:    reqStatus[domain.MaintenancePending],
		InProgressMaintenance: reqStatus[domain.MaintenanceInProgress],
		CompletedMaintenance:  reqStatus[domain.MaintenanceCompleted],
		RevenueTrend:          stats.RevenueTrend(payments, paymentDate, paymentAmount, now, trendMonths),
		RecentProperties:      head(pf.properties, recentPropertiesLimit),
		RecentPayments:        head(payments, recentPaymentsLimit),
		GeneratedAt:           now,
	}
	d.OccupancyRate = stats.Rate(float64(d.OccupiedUnits), float64(d.TotalUnits))
	d.RentCollectionRate = stats.Rate(float64(d.TotalCollectedRent), float64(d.TotalMonthlyRent))

	pending := make([]*domain.MaintenanceRequest, 0, pendingRequestsLimit)
	for _, r := range requests {
		if r.Status == domain.MaintenancePending {
			pending = append(pending, r)
			if len(pending) == pendingRequestsLimit {
				break
			}
		}
	}
	d.PendingRequests = pending
	return d, nil
}

// head returns at most the first n items.
func head[T any](items []T, n int) []T {
	if len(items) <= n {
		return items
	}
	return items[:n]
}
