package service

import (
	"context"
	"fmt"
	"time"

	"digiplot/internal/domain"
	"digiplot/internal/stats"

	"go.uber.org/zap"
)

// Period selects the reporting window.
type Period string

const (
	PeriodMonth   Period = "month"
	PeriodQuarter Period = "quarter"
	PeriodYear    Period = "year"
)

// ParsePeriod defaults an empty string to month.
func ParsePeriod(s string) (Period, error) {
	p := Period(s)
	if p == "" {
		return PeriodMonth, nil
	}
	if p.Months() == 0 {
		return "", invalidf("invalid period %q: want month, quarter or year", s)
	}
	return p, nil
}

// Months returns the window length, or 0 for an unknown period.
func (p Period) Months() int {
	switch p {
	case PeriodMonth:
		return 1
	case PeriodQuarter:
		return 3
	case PeriodYear:
		return 12
	}
	return 0
}

// reportWindow covers whole calendar months ending with the current one.
type reportWindow struct {
	months []time.Time
	from   time.Time
	to     time.Time // exclusive
}

func newReportWindow(p Period, now time.Time) (reportWindow, error) {
	n := p.Months()
	if n == 0 {
		return reportWindow{}, invalidf("invalid period %q: want month, quarter or year", p)
	}
	months := stats.MonthWindow(now, n)
	return reportWindow{months: months, from: months[0], to: stats.FirstOfNextMonth(now)}, nil
}

func (w reportWindow) contains(t time.Time) bool {
	t = t.In(w.from.Location())
	return !t.Before(w.from) && t.Before(w.to)
}

// reportData is everything the four reports aggregate over.
type reportData struct {
	window   reportWindow
	pf       *portfolio
	tenants  []*domain.Tenant
	payments []*domain.Payment
	requests []*domain.MaintenanceRequest
}

func (s *landlordService) loadReportData(ctx context.Context, landlordID int64, period Period) (*reportData, error) {
	w, err := newReportWindow(period, s.clock.now())
	if err != nil {
		return nil, err
	}
	pf, err := loadPortfolio(ctx, s.store, landlordID)
	if err != nil {
		s.logger.Error("Report load failed", zap.Int64("landlord_id", landlordID), zap.Error(err))
		return nil, err
	}
	unitIDs := pf.unitIDs()
	tenants, err := s.store.Tenants.ListTenantsByUnits(ctx, unitIDs)
	if err != nil {
		s.logger.Error("Report load failed", zap.Int64("landlord_id", landlordID), zap.Error(err))
		return nil, fmt.Errorf("failed to list tenants: %w", err)
	}
	payments, err := s.store.Payments.ListPaymentsByUnits(ctx, unitIDs)
	if err != nil {
		s.logger.Error("Report load failed", zap.Int64("landlord_id", landlordID), zap.Error(err))
		return nil, fmt.Errorf("failed to list payments: %w", err)
	}
	requests, err := s.store.Maintenance.ListMaintenanceByUnits(ctx, unitIDs)
	if err != nil {
		s.logger.Error("Report load failed", zap.Int64("landlord_id", landlordID), zap.Error(err))
		return nil, fmt.Errorf("failed to list maintenance requests: %w", err)
	}
	return &reportData{window: w, pf: pf, tenants: tenants, payments: payments, requests: requests}, nil
}

func (d *reportData) paymentsIn(month time.Time, status domain.PaymentStatus) []*domain.Payment {
	out := make([]*domain.Payment, 0)
	for _, p := range d.payments {
		if stats.SameMonth(p.PaymentDate, month) && (status == "" || p.Status == status) {
			out = append(out, p)
		}
	}
	return out
}

func (d *reportData) requestsIn(month time.Time) []*domain.MaintenanceRequest {
	return stats.InMonth(d.requests, func(r *domain.MaintenanceRequest) time.Time { return r.CreatedAt }, month)
}

// occupiedUnitsIn returns the units that had a tenant for any part of month.
func (d *reportData) occupiedUnitsIn(month time.Time) []*domain.Unit {
	start := stats.MonthStart(month)
	end := stats.FirstOfNextMonth(month)
	seen := make(map[int64]bool)
	var out []*domain.Unit
	for _, t := range d.tenants {
		if !t.MoveInDate.Before(end) {
			continue
		}
		if t.MoveOutDate != nil && t.MoveOutDate.Before(start) {
			continue
		}
		if seen[t.UnitID] {
			continue
		}
		if u := d.pf.unit(t.UnitID); u != nil {
			seen[t.UnitID] = true
			out = append(out, u)
		}
	}
	return out
}

func (d *reportData) expectedRentIn(month time.Time) int64 {
	return stats.Sum(d.occupiedUnitsIn(month), func(u *domain.Unit) int64 { return u.RentAmount })
}

func amountOf(p *domain.Payment) int64 { return p.Amount }

func costOf(r *domain.MaintenanceRequest) int64 { return r.Cost }

// ============================================
// Financial summary
// ============================================

type MonthlyFinancials struct {
	Month    string    `json:"month"`
	Start    time.Time `json:"start"`
	Revenue  int64     `json:"revenue"`
	Expenses int64     `json:"expenses"`
	Net      int64     `json:"net"`
}

type FinancialSummary struct {
	Period              Period              `json:"period"`
	From                time.Time           `json:"from"`
	To                  time.Time           `json:"to"`
	TotalRevenue        int64               `json:"total_revenue"`
	PendingRevenue      int64               `json:"pending_revenue"`
	ExpectedRent        int64               `json:"expected_rent"`
	MaintenanceExpenses int64               `json:"maintenance_expenses"`
	NetIncome           int64               `json:"net_income"`
	CollectionRate      float64             `json:"collection_rate"`
	Monthly             []MonthlyFinancials `json:"monthly"`
}

// FinancialSummary counts paid payments as revenue and pending ones as
// pending revenue. Expenses are the costs of requests raised in the window.
func (s *landlordService) FinancialSummary(ctx context.Context, landlordID int64, period Period) (*FinancialSummary, error) {
	d, err := s.loadReportData(ctx, landlordID, period)
	if err != nil {
		return nil, err
	}
	out := &FinancialSummary{
		Period:  period,
		From:    d.window.from,
		To:      d.window.to,
		Monthly: make([]MonthlyFinancials, 0, len(d.window.months)),
	}
	for _, m := range d.window.months {
		revenue := stats.Sum(d.paymentsIn(m, domain.PaymentPaid), amountOf)
		expenses := stats.Sum(d.requestsIn(m), costOf)
		out.TotalRevenue += revenue
		out.PendingRevenue += stats.Sum(d.paymentsIn(m, domain.PaymentPending), amountOf)
		out.ExpectedRent += d.expectedRentIn(m)
		out.MaintenanceExpenses += expenses
		out.Monthly = append(out.Monthly, MonthlyFinancials{
			Month:    m.Format("Jan"),
			Start:    m,
			Revenue:  revenue,
			Expenses: expenses,
			Net:      revenue - expenses,
		})
	}
	out.NetIncome = out.TotalRevenue - out.MaintenanceExpenses
	out.CollectionRate = stats.Rate(float64(out.TotalRevenue), float64(out.ExpectedRent))
	return out, nil
}

// ============================================
// Occupancy
// ============================================

type PropertyOccupancy struct {
	PropertyID    int64   `json:"property_id"`
	PropertyName  string  `json:"property_name"`
	TotalUnits    int     `json:"total_units"`
	OccupiedUnits int     `json:"occupied_units"`
	VacantUnits   int     `json:"vacant_units"`
	OccupancyRate float64 `json:"occupancy_rate"`
}

type MonthlyOccupancy struct {
	Month         string    `json:"month"`
	Start         time.Time `json:"start"`
	OccupiedUnits int       `json:"occupied_units"`
	OccupancyRate float64   `json:"occupancy_rate"`
}

type OccupancyReport struct {
	Period           Period              `json:"period"`
	TotalUnits       int                 `json:"total_units"`
	OccupiedUnits    int                 `json:"occupied_units"`
	VacantUnits      int                 `json:"vacant_units"`
	MaintenanceUnits int                 `json:"maintenance_units"`
	OccupancyRate    float64             `json:"occupancy_rate"`
	ByProperty       []PropertyOccupancy `json:"by_property"`
	Monthly          []MonthlyOccupancy  `json:"monthly"`
}

// OccupancyRates reports the current unit snapshot plus, per month, how
// many units had a tenant according to move-in and move-out dates.
func (s *landlordService) OccupancyRates(ctx context.Context, landlordID int64, period Period) (*OccupancyReport, error) {
	d, err := s.loadReportData(ctx, landlordID, period)
	if err != nil {
		return nil, err
	}
	counts := stats.CountByStatus(d.pf.units, func(u *domain.Unit) domain.UnitStatus { return u.Status })
	out := &OccupancyReport{
		Period:           period,
		TotalUnits:       len(d.pf.units),
		OccupiedUnits:    counts[domain.UnitOccupied],
		VacantUnits:      counts[domain.UnitVacant],
		MaintenanceUnits: counts[domain.UnitMaintenance],
		ByProperty:       make([]PropertyOccupancy, 0, len(d.pf.properties)),
		Monthly:          make([]MonthlyOccupancy, 0, len(d.window.months)),
	}
	out.OccupancyRate = stats.Rate(float64(out.OccupiedUnits), float64(out.TotalUnits))

	for _, p := range d.pf.properties {
		po := PropertyOccupancy{PropertyID: p.ID, PropertyName: p.Name}
		for _, u := range d.pf.units {
			if u.PropertyID != p.ID {
				continue
			}
			po.TotalUnits++
			switch u.Status {
			case domain.UnitOccupied:
				po.OccupiedUnits++
			case domain.UnitVacant:
				po.VacantUnits++
			}
		}
		po.OccupancyRate = stats.Rate(float64(po.OccupiedUnits), float64(po.TotalUnits))
		out.ByProperty = append(out.ByProperty, po)
	}

	for _, m := range d.window.months {
		occupied := len(d.occupiedUnitsIn(m))
		out.Monthly = append(out.Monthly, MonthlyOccupancy{
			Month:         m.Format("Jan"),
			Start:         m,
			OccupiedUnits: occupied,
			OccupancyRate: stats.Rate(float64(occupied), float64(out.TotalUnits)),
		})
	}
	return out, nil
}

// ============================================
// Maintenance costs
// ============================================

type CostBucket struct {
	Count int   `json:"count"`
	Cost  int64 `json:"cost"`
}

type PropertyCost struct {
	PropertyID   int64  `json:"property_id"`
	PropertyName string `json:"property_name"`
	Count        int    `json:"count"`
	Cost         int64  `json:"cost"`
}

type MaintenanceCostReport struct {
	Period       Period                                    `json:"period"`
	TotalCost    int64                                     `json:"total_cost"`
	RequestCount int                                       `json:"request_count"`
	AverageCost  float64                                   `json:"average_cost"`
	ByPriority   map[domain.MaintenancePriority]CostBucket `json:"by_priority"`
	ByStatus     map[domain.MaintenanceStatus]int          `json:"by_status"`
	ByProperty   []PropertyCost                            `json:"by_property"`
}

// MaintenanceCosts aggregates requests raised in the window.
func (s *landlordService) MaintenanceCosts(ctx context.Context, landlordID int64, period Period) (*MaintenanceCostReport, error) {
	d, err := s.loadReportData(ctx, landlordID, period)
	if err != nil {
		return nil, err
	}
	inWindow := make([]*domain.MaintenanceRequest, 0)
	for _, r := range d.requests {
		if d.window.contains(r.CreatedAt) {
			inWindow = append(inWindow, r)
		}
	}

	out := &MaintenanceCostReport{
		Period:       period,
		TotalCost:    stats.Sum(inWindow, costOf),
		RequestCount: len(inWindow),
		ByPriority:   make(map[domain.MaintenancePriority]CostBucket),
		ByStatus:     stats.CountByStatus(inWindow, func(r *domain.MaintenanceRequest) domain.MaintenanceStatus { return r.Status }),
		ByProperty:   make([]PropertyCost, 0, len(d.pf.properties)),
	}
	out.AverageCost = stats.Rate(float64(out.TotalCost), float64(out.RequestCount))

	for _, pr := range []domain.MaintenancePriority{domain.PriorityLow, domain.PriorityMedium, domain.PriorityHigh, domain.PriorityEmergency} {
		out.ByPriority[pr] = CostBucket{}
	}
	byProperty := make(map[int64]*PropertyCost, len(d.pf.properties))
	for _, p := range d.pf.properties {
		out.ByProperty = append(out.ByProperty, PropertyCost{PropertyID: p.ID, PropertyName: p.Name})
	}
	for i := range out.ByProperty {
		byProperty[out.ByProperty[i].PropertyID] = &out.ByProperty[i]
	}

	for _, r := range inWindow {
		b := out.ByPriority[r.Priority]
		b.Count++
		b.Cost += r.Cost
		out.ByPriority[r.Priority] = b

		if u := d.pf.unit(r.UnitID); u != nil {
			if pc := byProperty[u.PropertyID]; pc != nil {
				pc.Count++
				pc.Cost += r.Cost
			}
		}
	}
	return out, nil
}

// ============================================
// Rent collection
// ============================================

type MonthlyCollection struct {
	Month          string    `json:"month"`
	Start          time.Time `json:"start"`
	Expected       int64     `json:"expected"`
	Collected      int64     `json:"collected"`
	CollectionRate float64   `json:"collection_rate"`
}

type RentCollectionReport struct {
	Period         Period                       `json:"period"`
	ExpectedRent   int64                        `json:"expected_rent"`
	CollectedRent  int64                        `json:"collected_rent"`
	Outstanding    int64                        `json:"outstanding"`
	CollectionRate float64                      `json:"collection_rate"`
	StatusCounts   map[domain.PaymentStatus]int `json:"status_counts"`
	Monthly        []MonthlyCollection          `json:"monthly"`
}

// RentCollection compares rent due from occupied units with paid payments.
func (s *landlordService) RentCollection(ctx context.Context, landlordID int64, period Period) (*RentCollectionReport, error) {
	d, err := s.loadReportData(ctx, landlordID, period)
	if err != nil {
		return nil, err
	}
	out := &RentCollectionReport{
		Period: period,
		StatusCounts: map[domain.PaymentStatus]int{
			domain.PaymentPaid:    0,
			domain.PaymentPending: 0,
			domain.PaymentFailed:  0,
		},
		Monthly: make([]MonthlyCollection, 0, len(d.window.months)),
	}
	for _, m := range d.window.months {
		expected := d.expectedRentIn(m)
		collected := stats.Sum(d.paymentsIn(m, domain.PaymentPaid), amountOf)
		out.ExpectedRent += expected
		out.CollectedRent += collected
		for _, p := range d.paymentsIn(m, "") {
			out.StatusCounts[p.Status]++
		}
		out.Monthly = append(out.Monthly, MonthlyCollection{
			Month:          m.Format("Jan"),
			Start:          m,
			Expected:       expected,
			Collected:      collected,
			CollectionRate: stats.Rate(float64(collected), float64(expected)),
		})
	}
	out.Outstanding = max(out.ExpectedRent-out.CollectedRent, 0)
	out.CollectionRate = stats.Rate(float64(out.CollectedRent), float64(out.ExpectedRent))
	return out, nil
}
