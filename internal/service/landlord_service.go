package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"digiplot/internal/domain"
	"digiplot/internal/repository"

	"go.uber.org/zap"
)

// LandlordService is the landlord half of the portal: CRUD over the
// landlord's properties, units and tenants plus the derived views.
//
// Get* and Update* return (nil, nil) when the record does not exist and
// Delete* returns false. Input problems come back wrapped in ErrValidation.
type LandlordService interface {
	// Profile
	GetProfile(ctx context.Context, landlordID int64) (*domain.Landlord, error)
	UpdateProfile(ctx context.Context, landlordID int64, patch LandlordPatch) (*domain.Landlord, error)

	// Properties
	ListProperties(ctx context.Context, landlordID int64) ([]*domain.Property, error)
	GetProperty(ctx context.Context, id int64) (*domain.Property, error)
	CreateProperty(ctx context.Context, req CreatePropertyRequest) (*domain.Property, error)
	UpdateProperty(ctx context.Context, id int64, patch PropertyPatch) (*domain.Property, error)
	DeleteProperty(ctx context.Context, id int64) (bool, error)

	// Units
	ListUnits(ctx context.Context, scope repository.UnitScope) ([]*domain.Unit, error)
	LandlordUnitScope(ctx context.Context, landlordID int64) (repository.UnitScope, error)
	GetUnit(ctx context.Context, id int64) (*domain.Unit, error)
	CreateUnit(ctx context.Context, req CreateUnitRequest) (*domain.Unit, error)
	UpdateUnit(ctx context.Context, id int64, patch UnitPatch) (*domain.Unit, error)
	DeleteUnit(ctx context.Context, id int64) (bool, error)

	// Tenants
	ListTenants(ctx context.Context, landlordID int64) ([]*domain.Tenant, error)
	GetTenant(ctx context.Context, id int64) (*domain.Tenant, error)
	CreateTenant(ctx context.Context, req CreateTenantRequest) (*domain.Tenant, error)
	UpdateTenant(ctx context.Context, id int64, patch TenantPatch) (*domain.Tenant, error)
	DeleteTenant(ctx context.Context, id int64) (bool, error)

	// Payments and maintenance
	ListPayments(ctx context.Context, landlordID int64) ([]*domain.Payment, error)
	ListMaintenanceRequests(ctx context.Context, landlordID int64, status domain.MaintenanceStatus) ([]*domain.MaintenanceRequest, error)
	UpdateMaintenanceStatus(ctx context.Context, requestID int64, status domain.MaintenanceStatus) (*domain.MaintenanceRequest, error)
	AddMaintenanceComment(ctx context.Context, requestID int64, author, message string) (*domain.MaintenanceRequest, error)
	SetMaintenanceCost(ctx context.Context, requestID int64, cost int64) (*domain.MaintenanceRequest, error)

	// Derived views
	Dashboard(ctx context.Context, landlordID int64) (*LandlordDashboard, error)
	FinancialSummary(ctx context.Context, landlordID int64, period Period) (*FinancialSummary, error)
	OccupancyRates(ctx context.Context, landlordID int64, period Period) (*OccupancyReport, error)
	MaintenanceCosts(ctx context.Context, landlordID int64, period Period) (*MaintenanceCostReport, error)
	RentCollection(ctx context.Context, landlordID int64, period Period) (*RentCollectionReport, error)
}

type landlordService struct {
	store         *repository.Store
	notifications NotificationService
	clock         Clock
	logger        *zap.Logger
}

func NewLandlordService(store *repository.Store, notifications NotificationService, clock Clock, logger *zap.Logger) LandlordService {
	return &landlordService{
		store:         store,
		notifications: notifications,
		clock:         clock,
		logger:        logger,
	}
}

// ============================================
// Request / patch types
// ============================================

// LandlordPatch updates the landlord profile; nil fields are kept.
type LandlordPatch struct {
	Name        *string `json:"name"`
	Email       *string `json:"email"`
	PhoneNumber *string `json:"phone_number"`
}

type CreatePropertyRequest struct {
	LandlordID  int64  `json:"-"` // taken from the session
	Name        string `json:"name"`
	Location    string `json:"location"`
	Address     string `json:"address"`
	Description string `json:"description"`
}

type PropertyPatch struct {
	Name        *string `json:"name"`
	Location    *string `json:"location"`
	Address     *string `json:"address"`
	Description *string `json:"description"`
}

type CreateUnitRequest struct {
	PropertyID int64             `json:"property_id"`
	UnitNumber string            `json:"unit_number"`
	Floor      int               `json:"floor"`
	Bedrooms   int               `json:"bedrooms"`
	Bathrooms  int               `json:"bathrooms"`
	RentAmount int64             `json:"rent_amount"`
	Status     domain.UnitStatus `json:"status"` // default vacant
}

type UnitPatch struct {
	PropertyID *int64             `json:"property_id"`
	UnitNumber *string            `json:"unit_number"`
	Floor      *int               `json:"floor"`
	Bedrooms   *int               `json:"bedrooms"`
	Bathrooms  *int               `json:"bathrooms"`
	RentAmount *int64             `json:"rent_amount"`
	Status     *domain.UnitStatus `json:"status"`
}

type CreateTenantRequest struct {
	UnitID                int64     `json:"unit_id"`
	Name                  string    `json:"name"`
	Email                 string    `json:"email"`
	PhoneNumber           string    `json:"phone_number"`
	MoveInDate            time.Time `json:"move_in_date"`     // default now
	LeaseStartDate        time.Time `json:"lease_start_date"` // default move-in
	LeaseEndDate          time.Time `json:"lease_end_date"`   // default one year after lease start
	EmergencyContactName  string    `json:"emergency_contact_name"`
	EmergencyContactPhone string    `json:"emergency_contact_phone"`
}

type TenantPatch struct {
	UnitID                *int64       `json:"unit_id"`
	Name                  *string      `json:"name"`
	Email                 *string      `json:"email"`
	PhoneNumber           *string      `json:"phone_number"`
	MoveInDate            *time.Time   `json:"move_in_date"`
	MoveOutDate           OptionalTime `json:"move_out_date"` // null clears
	LeaseStartDate        *time.Time   `json:"lease_start_date"`
	LeaseEndDate          *time.Time   `json:"lease_end_date"`
	EmergencyContactName  *string      `json:"emergency_contact_name"`
	EmergencyContactPhone *string      `json:"emergency_contact_phone"`
}

// ============================================
// Profile
// ============================================

func (s *landlordService) GetProfile(ctx context.Context, landlordID int64) (*domain.Landlord, error) {
	l, err := s.store.Landlords.GetLandlord(ctx, landlordID)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get landlord: %w", err)
	}
	return l, nil
}

func (s *landlordService) UpdateProfile(ctx context.Context, landlordID int64, patch LandlordPatch) (*domain.Landlord, error) {
	l, err := s.GetProfile(ctx, landlordID)
	if err != nil || l == nil {
		return nil, err
	}
	if patch.Name != nil {
		l.Name = strings.TrimSpace(*patch.Name)
	}
	if patch.Email != nil {
		l.Email = strings.TrimSpace(*patch.Email)
	}
	if patch.PhoneNumber != nil {
		l.PhoneNumber = strings.TrimSpace(*patch.PhoneNumber)
	}
	if l.Name == "" {
		return nil, invalidf("name is required")
	}
	if l.Email == "" {
		return nil, invalidf("email is required")
	}
	if err := s.store.Landlords.UpdateLandlord(ctx, l); err != nil {
		return nil, s.updateFailed("UpdateLandlord", "update landlord", "landlord_id", landlordID, err)
	}
	return l, nil
}

// ============================================
// Properties
// ============================================

func (s *landlordService) ListProperties(ctx context.Context, landlordID int64) ([]*domain.Property, error) {
	props, err := s.store.Properties.ListProperties(ctx, landlordID)
	if err != nil {
		s.logger.Error("ListProperties failed", zap.Int64("landlord_id", landlordID), zap.Error(err))
		return nil, fmt.Errorf("failed to list properties: %w", err)
	}
	return props, nil
}

func (s *landlordService) GetProperty(ctx context.Context, id int64) (*domain.Property, error) {
	p, err := s.store.Properties.GetProperty(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get property: %w", err)
	}
	return p, nil
}

func (s *landlordService) CreateProperty(ctx context.Context, req CreatePropertyRequest) (*domain.Property, error) {
	if strings.TrimSpace(req.Name) == "" {
		return nil, invalidf("name is required")
	}
	if strings.TrimSpace(req.Location) == "" {
		return nil, invalidf("location is required")
	}

	now := s.clock.now()
	p := &domain.Property{
		LandlordID:  req.LandlordID,
		Name:        strings.TrimSpace(req.Name),
		Location:    strings.TrimSpace(req.Location),
		Address:     strings.TrimSpace(req.Address),
		Description: strings.TrimSpace(req.Description),
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if _, err := s.store.Properties.CreateProperty(ctx, p); err != nil {
		s.logger.Error("CreateProperty failed",
			zap.Int64("landlord_id", req.LandlordID),
			zap.String("name", p.Name),
			zap.Error(err),
		)
		return nil, fmt.Errorf("failed to create property: %w", err)
	}
	return p, nil
}

func (s *landlordService) UpdateProperty(ctx context.Context, id int64, patch PropertyPatch) (*domain.Property, error) {
	p, err := s.GetProperty(ctx, id)
	if err != nil || p == nil {
		return nil, err
	}
	if patch.Name != nil {
		if strings.TrimSpace(*patch.Name) == "" {
			return nil, invalidf("name cannot be empty")
		}
		p.Name = strings.TrimSpace(*patch.Name)
	}
	if patch.Location != nil {
		if strings.TrimSpace(*patch.Location) == "" {
			return nil, invalidf("location cannot be empty")
		}
		p.Location = strings.TrimSpace(*patch.Location)
	}
	if patch.Address != nil {
		p.Address = strings.TrimSpace(*patch.Address)
	}
	if patch.Description != nil {
		p.Description = strings.TrimSpace(*patch.Description)
	}
	p.UpdatedAt = s.clock.now()

	if err := s.store.Properties.UpdateProperty(ctx, p); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, nil
		}
		return nil, s.updateFailed("UpdateProperty", "update property", "property_id", id, err)
	}
	return p, nil
}

// DeleteProperty removes only the property row; its units stay behind.
func (s *landlordService) DeleteProperty(ctx context.Context, id int64) (bool, error) {
	return s.deleted(s.store.Properties.DeleteProperty(ctx, id), "DeleteProperty", "property_id", id)
}

// ============================================
// Units
// ============================================

func (s *landlordService) ListUnits(ctx context.Context, scope repository.UnitScope) ([]*domain.Unit, error) {
	units, err := s.store.Units.ListUnits(ctx, scope)
	if err != nil {
		s.logger.Error("ListUnits failed", zap.Error(err))
		return nil, fmt.Errorf("failed to list units: %w", err)
	}
	return units, nil
}

// LandlordUnitScope selects the units of every property the landlord owns.
func (s *landlordService) LandlordUnitScope(ctx context.Context, landlordID int64) (repository.UnitScope, error) {
	props, err := s.ListProperties(ctx, landlordID)
	if err != nil {
		return repository.UnitScope{}, err
	}
	ids := make([]int64, len(props))
	for i, p := range props {
		ids[i] = p.ID
	}
	return repository.PropertyUnits(ids...), nil
}

func (s *landlordService) GetUnit(ctx context.Context, id int64) (*domain.Unit, error) {
	u, err := s.store.Units.GetUnit(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get unit: %w", err)
	}
	return u, nil
}

func (s *landlordService) CreateUnit(ctx context.Context, req CreateUnitRequest) (*domain.Unit, error) {
	if req.PropertyID <= 0 {
		return nil, invalidf("property_id is required")
	}
	if strings.TrimSpace(req.UnitNumber) == "" {
		return nil, invalidf("unit_number is required")
	}
	if req.RentAmount < 0 {
		return nil, invalidf("rent_amount cannot be negative")
	}
	status := req.Status
	if status == "" {
		status = domain.UnitVacant
	}
	if !status.Valid() {
		return nil, invalidf("invalid unit status %q", status)
	}

	now := s.clock.now()
	u := &domain.Unit{
		PropertyID: req.PropertyID,
		UnitNumber: strings.TrimSpace(req.UnitNumber),
		Floor:      req.Floor,
		Bedrooms:   req.Bedrooms,
		Bathrooms:  req.Bathrooms,
		RentAmount: req.RentAmount,
		Status:     status,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if _, err := s.store.Units.CreateUnit(ctx, u); err != nil {
		s.logger.Error("CreateUnit failed",
			zap.Int64("property_id", req.PropertyID),
			zap.String("unit_number", u.UnitNumber),
			zap.Error(err),
		)
		return nil, fmt.Errorf("failed to create unit: %w", err)
	}
	return u, nil
}

func (s *landlordService) UpdateUnit(ctx context.Context, id int64, patch UnitPatch) (*domain.Unit, error) {
	u, err := s.GetUnit(ctx, id)
	if err != nil || u == nil {
		return nil, err
	}
	if patch.PropertyID != nil {
		if *patch.PropertyID <= 0 {
			return nil, invalidf("property_id is required")
		}
		u.PropertyID = *patch.PropertyID
	}
	if patch.UnitNumber != nil {
		if strings.TrimSpace(*patch.UnitNumber) == "" {
			return nil, invalidf("unit_number cannot be empty")
		}
		u.UnitNumber = strings.TrimSpace(*patch.UnitNumber)
	}
	if patch.Floor != nil {
		u.Floor = *patch.Floor
	}
	if patch.Bedrooms != nil {
		u.Bedrooms = *patch.Bedrooms
	}
	if patch.Bathrooms != nil {
		u.Bathrooms = *patch.Bathrooms
	}
	if patch.RentAmount != nil {
		if *patch.RentAmount < 0 {
			return nil, invalidf("rent_amount cannot be negative")
		}
		u.RentAmount = *patch.RentAmount
	}
	if patch.Status != nil {
		if !patch.Status.Valid() {
			return nil, invalidf("invalid unit status %q", *patch.Status)
		}
		u.Status = *patch.Status
	}
	u.UpdatedAt = s.clock.now()

	if err := s.store.Units.UpdateUnit(ctx, u); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, nil
		}
		return nil, s.updateFailed("UpdateUnit", "update unit", "unit_id", id, err)
	}
	return u, nil
}

// DeleteUnit leaves tenants, payments and requests that reference the unit untouched.
func (s *landlordService) DeleteUnit(ctx context.Context, id int64) (bool, error) {
	return s.deleted(s.store.Units.DeleteUnit(ctx, id), "DeleteUnit", "unit_id", id)
}

// ============================================
// Tenants
// ============================================

// ListTenants returns active and former tenants of the landlord's units.
func (s *landlordService) ListTenants(ctx context.Context, landlordID int64) ([]*domain.Tenant, error) {
	pf, err := loadPortfolio(ctx, s.store, landlordID)
	if err != nil {
		s.logger.Error("ListTenants failed", zap.Int64("landlord_id", landlordID), zap.Error(err))
		return nil, err
	}
	tenants, err := s.store.Tenants.ListTenantsByUnits(ctx, pf.unitIDs())
	if err != nil {
		s.logger.Error("ListTenants failed", zap.Int64("landlord_id", landlordID), zap.Error(err))
		return nil, fmt.Errorf("failed to list tenants: %w", err)
	}
	return tenants, nil
}

func (s *landlordService) GetTenant(ctx context.Context, id int64) (*domain.Tenant, error) {
	t, err := s.store.Tenants.GetTenant(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get tenant: %w", err)
	}
	return t, nil
}

func (s *landlordService) CreateTenant(ctx context.Context, req CreateTenantRequest) (*domain.Tenant, error) {
	if req.UnitID <= 0 {
		return nil, invalidf("unit_id is required")
	}
	if strings.TrimSpace(req.Name) == "" {
		return nil, invalidf("name is required")
	}
	if strings.TrimSpace(req.Email) == "" {
		return nil, invalidf("email is required")
	}

	now := s.clock.now()
	t := &domain.Tenant{
		UnitID:                req.UnitID,
		Name:                  strings.TrimSpace(req.Name),
		Email:                 strings.TrimSpace(req.Email),
		PhoneNumber:           strings.TrimSpace(req.PhoneNumber),
		MoveInDate:            req.MoveInDate,
		LeaseStartDate:        req.LeaseStartDate,
		LeaseEndDate:          req.LeaseEndDate,
		EmergencyContactName:  strings.TrimSpace(req.EmergencyContactName),
		EmergencyContactPhone: strings.TrimSpace(req.EmergencyContactPhone),
		CreatedAt:             now,
		UpdatedAt:             now,
	}
	if t.MoveInDate.IsZero() {
		t.MoveInDate = now
	}
	if t.LeaseStartDate.IsZero() {
		t.LeaseStartDate = t.MoveInDate
	}
	if t.LeaseEndDate.IsZero() {
		t.LeaseEndDate = t.LeaseStartDate.AddDate(1, 0, 0)
	}
	if t.LeaseEndDate.Before(t.LeaseStartDate) {
		return nil, invalidf("lease_end_date must not be before lease_start_date")
	}

	if _, err := s.store.Tenants.CreateTenant(ctx, t); err != nil {
		s.logger.Error("CreateTenant failed",
			zap.Int64("unit_id", req.UnitID),
			zap.String("email", t.Email),
			zap.Error(err),
		)
		return nil, fmt.Errorf("failed to create tenant: %w", err)
	}
	s.syncUnits(ctx, nil, t)
	return t, nil
}

func (s *landlordService) UpdateTenant(ctx context.Context, id int64, patch TenantPatch) (*domain.Tenant, error) {
	t, err := s.GetTenant(ctx, id)
	if err != nil || t == nil {
		return nil, err
	}
	before := *t

	if patch.UnitID != nil {
		if *patch.UnitID <= 0 {
			return nil, invalidf("unit_id is required")
		}
		t.UnitID = *patch.UnitID
	}
	if patch.Name != nil {
		if strings.TrimSpace(*patch.Name) == "" {
			return nil, invalidf("name cannot be empty")
		}
		t.Name = strings.TrimSpace(*patch.Name)
	}
	if patch.Email != nil {
		if strings.TrimSpace(*patch.Email) == "" {
			return nil, invalidf("email cannot be empty")
		}
		t.Email = strings.TrimSpace(*patch.Email)
	}
	if patch.PhoneNumber != nil {
		t.PhoneNumber = strings.TrimSpace(*patch.PhoneNumber)
	}
	if patch.MoveInDate != nil {
		t.MoveInDate = *patch.MoveInDate
	}
	if patch.MoveOutDate.Set {
		t.MoveOutDate = nil
		if patch.MoveOutDate.Value != nil {
			moveOut := *patch.MoveOutDate.Value
			t.MoveOutDate = &moveOut
		}
	}
	if patch.LeaseStartDate != nil {
		t.LeaseStartDate = *patch.LeaseStartDate
	}
	if patch.LeaseEndDate != nil {
		t.LeaseEndDate = *patch.LeaseEndDate
	}
	if patch.EmergencyContactName != nil {
		t.EmergencyContactName = strings.TrimSpace(*patch.EmergencyContactName)
	}
	if patch.EmergencyContactPhone != nil {
		t.EmergencyContactPhone = strings.TrimSpace(*patch.EmergencyContactPhone)
	}
	if t.LeaseEndDate.Before(t.LeaseStartDate) {
		return nil, invalidf("lease_end_date must not be before lease_start_date")
	}
	t.UpdatedAt = s.clock.now()

	if err := s.store.Tenants.UpdateTenant(ctx, t); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, nil
		}
		return nil, s.updateFailed("UpdateTenant", "update tenant", "tenant_id", id, err)
	}
	s.syncUnits(ctx, &before, t)
	return t, nil
}

// DeleteTenant keeps the tenant's payments and requests; only the unit's
// occupant fields are released.
func (s *landlordService) DeleteTenant(ctx context.Context, id int64) (bool, error) {
	t, err := s.GetTenant(ctx, id)
	if err != nil || t == nil {
		return false, err
	}
	ok, err := s.deleted(s.store.Tenants.DeleteTenant(ctx, id), "DeleteTenant", "tenant_id", id)
	if ok {
		s.syncUnits(ctx, t, nil)
	}
	return ok, err
}

// syncUnits keeps the denormalized occupant fields of the units a tenant
// moves between in step with the tenant record. Failures are logged only.
func (s *landlordService) syncUnits(ctx context.Context, before, after *domain.Tenant) {
	if before != nil && before.IsActive() && (after == nil || !after.IsActive() || after.UnitID != before.UnitID) {
		s.releaseUnit(ctx, before.UnitID, before.ID)
	}
	if after != nil && after.IsActive() {
		s.occupyUnit(ctx, after)
	}
}

func (s *landlordService) occupyUnit(ctx context.Context, t *domain.Tenant) {
	u, err := s.store.Units.GetUnit(ctx, t.UnitID)
	if err != nil {
		s.logger.Warn("Unit not synced on tenant change",
			zap.Int64("unit_id", t.UnitID), zap.Int64("tenant_id", t.ID), zap.Error(err))
		return
	}
	id := t.ID
	u.Status = domain.UnitOccupied
	u.TenantID = &id
	u.TenantName = t.Name
	u.UpdatedAt = s.clock.now()
	if err := s.store.Units.UpdateUnit(ctx, u); err != nil {
		s.logger.Warn("Unit not synced on tenant change",
			zap.Int64("unit_id", t.UnitID), zap.Int64("tenant_id", t.ID), zap.Error(err))
	}
}

func (s *landlordService) releaseUnit(ctx context.Context, unitID, tenantID int64) {
	u, err := s.store.Units.GetUnit(ctx, unitID)
	if err != nil {
		s.logger.Warn("Unit not released", zap.Int64("unit_id", unitID), zap.Error(err))
		return
	}
	if u.TenantID == nil || *u.TenantID != tenantID {
		return
	}
	u.Status = domain.UnitVacant
	u.TenantID = nil
	u.TenantName = ""
	u.UpdatedAt = s.clock.now()
	if err := s.store.Units.UpdateUnit(ctx, u); err != nil {
		s.logger.Warn("Unit not released", zap.Int64("unit_id", unitID), zap.Error(err))
	}
}

// ============================================
// Payments and maintenance
// ============================================

func (s *landlordService) ListPayments(ctx context.Context, landlordID int64) ([]*domain.Payment, error) {
	pf, err := loadPortfolio(ctx, s.store, landlordID)
	if err != nil {
		return nil, err
	}
	payments, err := s.store.Payments.ListPaymentsByUnits(ctx, pf.unitIDs())
	if err != nil {
		s.logger.Error("ListPayments failed", zap.Int64("landlord_id", landlordID), zap.Error(err))
		return nil, fmt.Errorf("failed to list payments: %w", err)
	}
	return payments, nil
}

// ListMaintenanceRequests filters by status when status is not empty.
func (s *landlordService) ListMaintenanceRequests(ctx context.Context, landlordID int64, status domain.MaintenanceStatus) ([]*domain.MaintenanceRequest, error) {
	if status != "" && !status.Valid() {
		return nil, invalidf("invalid maintenance status %q", status)
	}
	pf, err := loadPortfolio(ctx, s.store, landlordID)
	if err != nil {
		return nil, err
	}
	reqs, err := s.store.Maintenance.ListMaintenanceByUnits(ctx, pf.unitIDs())
	if err != nil {
		s.logger.Error("ListMaintenanceRequests failed", zap.Int64("landlord_id", landlordID), zap.Error(err))
		return nil, fmt.Errorf("failed to list maintenance requests: %w", err)
	}
	if status == "" {
		return reqs, nil
	}
	out := make([]*domain.MaintenanceRequest, 0, len(reqs))
	for _, r := range reqs {
		if r.Status == status {
			out = append(out, r)
		}
	}
	return out, nil
}

// UpdateMaintenanceStatus changes status and updated_at and nothing else.
func (s *landlordService) UpdateMaintenanceStatus(ctx context.Context, requestID int64, status domain.MaintenanceStatus) (*domain.MaintenanceRequest, error) {
	if !status.Valid() {
		return nil, invalidf("invalid maintenance status %q", status)
	}
	r, err := s.getRequest(ctx, requestID)
	if err != nil || r == nil {
		return nil, err
	}
	if r.Status.Terminal() && r.Status != status {
		return nil, invalidf("request is already %s", r.Status)
	}

	r.Status = status
	r.UpdatedAt = s.clock.now()
	if err := s.store.Maintenance.UpdateMaintenanceRequest(ctx, r); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, nil
		}
		return nil, s.updateFailed("UpdateMaintenanceStatus", "update maintenance status", "request_id", requestID, err)
	}

	notifyQuietly(ctx, s.notifications, s.logger, domain.RecipientTenant, r.TenantID,
		fmt.Sprintf("Your maintenance request %q is now %s.", r.Title, strings.ReplaceAll(string(status), "_", " ")))
	return r, nil
}

func (s *landlordService) AddMaintenanceComment(ctx context.Context, requestID int64, author, message string) (*domain.MaintenanceRequest, error) {
	if strings.TrimSpace(message) == "" {
		return nil, invalidf("message is required")
	}
	r, err := s.getRequest(ctx, requestID)
	if err != nil || r == nil {
		return nil, err
	}
	now := s.clock.now()
	r.Comments = append(r.Comments, domain.MaintenanceComment{
		Author:    strings.TrimSpace(author),
		Message:   strings.TrimSpace(message),
		CreatedAt: now,
	})
	r.UpdatedAt = now
	if err := s.store.Maintenance.UpdateMaintenanceRequest(ctx, r); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, nil
		}
		return nil, s.updateFailed("AddMaintenanceComment", "add maintenance comment", "request_id", requestID, err)
	}
	return r, nil
}

func (s *landlordService) SetMaintenanceCost(ctx context.Context, requestID int64, cost int64) (*domain.MaintenanceRequest, error) {
	if cost < 0 {
		return nil, invalidf("cost cannot be negative")
	}
	r, err := s.getRequest(ctx, requestID)
	if err != nil || r == nil {
		return nil, err
	}
	r.Cost = cost
	r.UpdatedAt = s.clock.now()
	if err := s.store.Maintenance.UpdateMaintenanceRequest(ctx, r); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, nil
		}
		return nil, s.updateFailed("SetMaintenanceCost", "set maintenance cost", "request_id", requestID, err)
	}
	return r, nil
}

func (s *landlordService) getRequest(ctx context.Context, id int64) (*domain.MaintenanceRequest, error) {
	r, err := s.store.Maintenance.GetMaintenanceRequest(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get maintenance request: %w", err)
	}
	return r, nil
}

// ============================================
// helpers
// ============================================

func (s *landlordService) updateFailed(op, what, idField string, id int64, err error) error {
	s.logger.Error(op+" failed", zap.Int64(idField, id), zap.Error(err))
	return fmt.Errorf("failed to %s: %w", what, err)
}

func (s *landlordService) deleted(err error, op, idField string, id int64) (bool, error) {
	if errors.Is(err, repository.ErrNotFound) {
		return false, nil
	}
	if err != nil {
		s.logger.Error(op+" failed", zap.Int64(idField, id), zap.Error(err))
		return false, fmt.Errorf("failed to delete: %w", err)
	}
	return true, nil
}
