package repository

import (
	"context"
	"slices"
	"strings"

	"digiplot/internal/domain"
)

// MemoryTenantsRepo is the in-process TenantsRepository.
type MemoryTenantsRepo struct {
	t *memoryTable[domain.Tenant]
}

func NewMemoryTenantsRepo() *MemoryTenantsRepo {
	return &MemoryTenantsRepo{t: newMemoryTable(
		func(t *domain.Tenant) int64 { return t.ID },
		func(t *domain.Tenant, id int64) { t.ID = id },
		cloneTenant,
	)}
}

var _ TenantsRepository = (*MemoryTenantsRepo)(nil)

func (r *MemoryTenantsRepo) ListTenants(_ context.Context) ([]*domain.Tenant, error) {
	return r.t.filter(nil), nil
}

func (r *MemoryTenantsRepo) ListTenantsByUnits(_ context.Context, unitIDs []int64) ([]*domain.Tenant, error) {
	return r.t.filter(func(t *domain.Tenant) bool { return slices.Contains(unitIDs, t.UnitID) }), nil
}

func (r *MemoryTenantsRepo) GetTenant(_ context.Context, id int64) (*domain.Tenant, error) {
	return r.t.get(id)
}

func (r *MemoryTenantsRepo) GetTenantByEmail(_ context.Context, email string) (*domain.Tenant, error) {
	return r.t.first(func(t *domain.Tenant) bool { return strings.EqualFold(t.Email, email) })
}

func (r *MemoryTenantsRepo) CreateTenant(_ context.Context, tenant *domain.Tenant) (int64, error) {
	return r.t.insert(tenant), nil
}

func (r *MemoryTenantsRepo) UpdateTenant(_ context.Context, tenant *domain.Tenant) error {
	return r.t.replace(tenant)
}

func (r *MemoryTenantsRepo) DeleteTenant(_ context.Context, id int64) error {
	return r.t.remove(id)
}

func cloneTenant(t *domain.Tenant) *domain.Tenant {
	c := *t
	if t.MoveOutDate != nil {
		d := *t.MoveOutDate
		c.MoveOutDate = &d
	}
	return &c
}
