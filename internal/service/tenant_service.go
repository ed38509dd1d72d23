package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"digiplot/internal/domain"
	"digiplot/internal/repository"
	"digiplot/internal/stats"

	"go.uber.org/zap"
)

// TenantService is the tenant half of the portal, always scoped to one tenant.
type TenantService interface {
	GetProfile(ctx context.Context, tenantID int64) (*domain.Tenant, error)
	GetUnit(ctx context.Context, tenantID int64) (*domain.Unit, error)
	GetPayments(ctx context.Context, tenantID int64) ([]*domain.Payment, error)
	GetMaintenanceRequests(ctx context.Context, tenantID int64) ([]*domain.MaintenanceRequest, error)
	CreateMaintenanceRequest(ctx context.Context, tenantID int64, req CreateMaintenanceRequest) (*domain.MaintenanceRequest, error)
	MakePayment(ctx context.Context, tenantID int64, req MakePaymentRequest) (*domain.Payment, error)
	Dashboard(ctx context.Context, tenantID int64) (*TenantDashboard, error)
	ListNotifications(ctx context.Context, tenantID int64) ([]*domain.Notification, error)
	MarkNotificationRead(ctx context.Context, tenantID, notificationID int64) (bool, error)
}

type tenantService struct {
	store         *repository.Store
	payments      PaymentService
	notifications NotificationService
	clock         Clock
	logger        *zap.Logger
}

func NewTenantService(store *repository.Store, payments PaymentService, notifications NotificationService, clock Clock, logger *zap.Logger) TenantService {
	return &tenantService{
		store:         store,
		payments:      payments,
		notifications: notifications,
		clock:         clock,
		logger:        logger,
	}
}

type CreateMaintenanceRequest struct {
	Title       string                     `json:"title"`
	Description string                     `json:"description"`
	Priority    domain.MaintenancePriority `json:"priority"` // default medium
	Images      []string                   `json:"images"`
}

type MakePaymentRequest struct {
	Amount        int64     `json:"amount"`
	PaymentMethod string    `json:"payment_method"`
	PhoneNumber   string    `json:"phone_number"`
	PaymentDate   time.Time `json:"payment_date"` // default now
}

// TenantDashboard is the tenant home-page summary.
type TenantDashboard struct {
	Tenant                *domain.Tenant    `json:"tenant"`
	Unit                  *domain.Unit      `json:"unit"`
	RentAmount            int64             `json:"rent_amount"`
	RentStatus            string            `json:"rent_status"` // paid | unpaid
	NextPaymentDue        time.Time         `json:"next_payment_due"`
	PendingMaintenance    int               `json:"pending_maintenance"`
	InProgressMaintenance int               `json:"in_progress_maintenance"`
	RecentPayments        []*domain.Payment `json:"recent_payments"`
}

const (
	RentStatusPaid   = "paid"
	RentStatusUnpaid = "unpaid"

	recentTenantPaymentsLimit = 3
)

func (s *tenantService) GetProfile(ctx context.Context, tenantID int64) (*domain.Tenant, error) {
	t, err := s.store.Tenants.GetTenant(ctx, tenantID)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get tenant: %w", err)
	}
	return t, nil
}

func (s *tenantService) GetUnit(ctx context.Context, tenantID int64) (*domain.Unit, error) {
	t, err := s.GetProfile(ctx, tenantID)
	if err != nil || t == nil {
		return nil, err
	}
	u, err := s.store.Units.GetUnit(ctx, t.UnitID)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get unit: %w", err)
	}
	return u, nil
}

func (s *tenantService) GetPayments(ctx context.Context, tenantID int64) ([]*domain.Payment, error) {
	payments, err := s.store.Payments.ListPaymentsByTenant(ctx, tenantID)
	if err != nil {
		s.logger.Error("GetPayments failed", zap.Int64("tenant_id", tenantID), zap.Error(err))
		return nil, fmt.Errorf("failed to list payments: %w", err)
	}
	return payments, nil
}

func (s *tenantService) GetMaintenanceRequests(ctx context.Context, tenantID int64) ([]*domain.MaintenanceRequest, error) {
	reqs, err := s.store.Maintenance.ListMaintenanceByTenant(ctx, tenantID)
	if err != nil {
		s.logger.Error("GetMaintenanceRequests failed", zap.Int64("tenant_id", tenantID), zap.Error(err))
		return nil, fmt.Errorf("failed to list maintenance requests: %w", err)
	}
	return reqs, nil
}

func (s *tenantService) CreateMaintenanceRequest(ctx context.Context, tenantID int64, req CreateMaintenanceRequest) (*domain.MaintenanceRequest, error) {
	if strings.TrimSpace(req.Title) == "" {
		return nil, invalidf("title is required")
	}
	if strings.TrimSpace(req.Description) == "" {
		return nil, invalidf("description is required")
	}
	priority := req.Priority
	if priority == "" {
		priority = domain.PriorityMedium
	}
	if !priority.Valid() {
		return nil, invalidf("invalid priority %q", priority)
	}
	t, err := s.GetProfile(ctx, tenantID)
	if err != nil {
		return nil, err
	}
	if t == nil {
		return nil, invalidf("tenant %d not found", tenantID)
	}

	now := s.clock.now()
	images := req.Images
	if images == nil {
		images = []string{}
	}
	r := &domain.MaintenanceRequest{
		TenantID:    t.ID,
		UnitID:      t.UnitID,
		Title:       strings.TrimSpace(req.Title),
		Description: strings.TrimSpace(req.Description),
		Priority:    priority,
		Status:      domain.MaintenancePending,
		Images:      images,
		Comments:    []domain.MaintenanceComment{},
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if _, err := s.store.Maintenance.CreateMaintenanceRequest(ctx, r); err != nil {
		s.logger.Error("CreateMaintenanceRequest failed",
			zap.Int64("tenant_id", tenantID),
			zap.String("title", r.Title),
			zap.Error(err),
		)
		return nil, fmt.Errorf("failed to create maintenance request: %w", err)
	}

	landlordID, unit, ok, err := landlordOfUnit(ctx, s.store, t.UnitID)
	if err != nil {
		s.logger.Warn("Landlord lookup failed", zap.Int64("request_id", r.ID), zap.Error(err))
	}
	if ok {
		notifyQuietly(ctx, s.notifications, s.logger, domain.RecipientLandlord, landlordID,
			fmt.Sprintf("New %s priority maintenance request from %s (unit %s): %s", r.Priority, t.Name, unit.UnitNumber, r.Title))
	}
	return r, nil
}

func (s *tenantService) MakePayment(ctx context.Context, tenantID int64, req MakePaymentRequest) (*domain.Payment, error) {
	if req.Amount <= 0 {
		return nil, invalidf("amount must be positive")
	}
	method := strings.TrimSpace(req.PaymentMethod)
	switch method {
	case domain.PaymentMethodMpesa:
		if strings.TrimSpace(req.PhoneNumber) == "" {
			return nil, invalidf("phone_number is required for M-Pesa payments")
		}
	case domain.PaymentMethodBankTransfer, domain.PaymentMethodCash, domain.PaymentMethodCard:
	case "":
		return nil, invalidf("payment_method is required")
	default:
		return nil, invalidf("unsupported payment method %q", method)
	}
	t, err := s.GetProfile(ctx, tenantID)
	if err != nil {
		return nil, err
	}
	if t == nil {
		return nil, invalidf("tenant %d not found", tenantID)
	}

	return s.payments.Submit(ctx, &domain.Payment{
		TenantID:      t.ID,
		UnitID:        t.UnitID,
		Amount:        req.Amount,
		PaymentDate:   req.PaymentDate,
		PaymentMethod: method,
		PhoneNumber:   strings.TrimSpace(req.PhoneNumber),
	})
}

// Dashboard marks rent as paid when any payment of the tenant is dated in
// the current month, whatever its status. Recent payments are the last
// three inserted, newest first.
func (s *tenantService) Dashboard(ctx context.Context, tenantID int64) (*TenantDashboard, error) {
	now := s.clock.now()
	t, err := s.GetProfile(ctx, tenantID)
	if err != nil || t == nil {
		return nil, err
	}
	unit, err := s.GetUnit(ctx, tenantID)
	if err != nil {
		return nil, err
	}
	payments, err := s.GetPayments(ctx, tenantID)
	if err != nil {
		return nil, err
	}
	reqs, err := s.GetMaintenanceRequests(ctx, tenantID)
	if err != nil {
		return nil, err
	}

	d := &TenantDashboard{
		Tenant:         t,
		Unit:           unit,
		RentStatus:     RentStatusUnpaid,
		NextPaymentDue: stats.FirstOfNextMonth(now),
	}
	if unit != nil {
		d.RentAmount = unit.RentAmount
	}
	if len(stats.InMonth(payments, func(p *domain.Payment) time.Time { return p.PaymentDate }, now)) > 0 {
		d.RentStatus = RentStatusPaid
	}
	counts := stats.CountByStatus(reqs, func(r *domain.MaintenanceRequest) domain.MaintenanceStatus { return r.Status })
	d.PendingMaintenance = counts[domain.MaintenancePending]
	d.InProgressMaintenance = counts[domain.MaintenanceInProgress]

	recent := make([]*domain.Payment, 0, recentTenantPaymentsLimit)
	for i := len(payments) - 1; i >= 0 && len(recent) < recentTenantPaymentsLimit; i-- {
		recent = append(recent, payments[i])
	}
	d.RecentPayments = recent
	return d, nil
}

func (s *tenantService) ListNotifications(ctx context.Context, tenantID int64) ([]*domain.Notification, error) {
	return s.notifications.List(ctx, domain.RecipientTenant, tenantID)
}

func (s *tenantService) MarkNotificationRead(ctx context.Context, tenantID, notificationID int64) (bool, error) {
	return s.notifications.MarkRead(ctx, domain.RecipientTenant, tenantID, notificationID)
}
