package repository

import (
	"context"
	"slices"

	"digiplot/internal/domain"
)

// MemoryMaintenanceRepo is the in-process MaintenanceRepository.
type MemoryMaintenanceRepo struct {
	t *memoryTable[domain.MaintenanceRequest]
}

func NewMemoryMaintenanceRepo() *MemoryMaintenanceRepo {
	return &MemoryMaintenanceRepo{t: newMemoryTable(
		func(m *domain.MaintenanceRequest) int64 { return m.ID },
		func(m *domain.MaintenanceRequest, id int64) { m.ID = id },
		(*domain.MaintenanceRequest).Clone,
	)}
}

var _ MaintenanceRepository = (*MemoryMaintenanceRepo)(nil)

func (r *MemoryMaintenanceRepo) ListMaintenanceByTenant(_ context.Context, tenantID int64) ([]*domain.MaintenanceRequest, error) {
	return r.t.filter(func(m *domain.MaintenanceRequest) bool { return m.TenantID == tenantID }), nil
}

func (r *MemoryMaintenanceRepo) ListMaintenanceByUnits(_ context.Context, unitIDs []int64) ([]*domain.MaintenanceRequest, error) {
	return r.t.filter(func(m *domain.MaintenanceRequest) bool { return slices.Contains(unitIDs, m.UnitID) }), nil
}

func (r *MemoryMaintenanceRepo) GetMaintenanceRequest(_ context.Context, id int64) (*domain.MaintenanceRequest, error) {
	return r.t.get(id)
}

func (r *MemoryMaintenanceRepo) CreateMaintenanceRequest(_ context.Context, req *domain.MaintenanceRequest) (int64, error) {
	return r.t.insert(req), nil
}

func (r *MemoryMaintenanceRepo) UpdateMaintenanceRequest(_ context.Context, req *domain.MaintenanceRequest) error {
	return r.t.replace(req)
}
