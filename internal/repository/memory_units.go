package repository

import (
	"context"

	"digiplot/internal/domain"
)

// MemoryUnitsRepo is the in-process UnitsRepository.
type MemoryUnitsRepo struct {
	t *memoryTable[domain.Unit]
}

func NewMemoryUnitsRepo() *MemoryUnitsRepo {
	return &MemoryUnitsRepo{t: newMemoryTable(
		func(u *domain.Unit) int64 { return u.ID },
		func(u *domain.Unit, id int64) { u.ID = id },
		cloneUnit,
	)}
}

var _ UnitsRepository = (*MemoryUnitsRepo)(nil)

func (r *MemoryUnitsRepo) ListUnits(_ context.Context, scope UnitScope) ([]*domain.Unit, error) {
	return r.t.filter(func(u *domain.Unit) bool { return scope.Includes(u.PropertyID) }), nil
}

func (r *MemoryUnitsRepo) GetUnit(_ context.Context, id int64) (*domain.Unit, error) {
	return r.t.get(id)
}

func (r *MemoryUnitsRepo) CreateUnit(_ context.Context, unit *domain.Unit) (int64, error) {
	return r.t.insert(unit), nil
}

func (r *MemoryUnitsRepo) UpdateUnit(_ context.Context, unit *domain.Unit) error {
	return r.t.replace(unit)
}

func (r *MemoryUnitsRepo) DeleteUnit(_ context.Context, id int64) error {
	return r.t.remove(id)
}

func cloneUnit(u *domain.Unit) *domain.Unit {
	c := *u
	if u.TenantID != nil {
		id := *u.TenantID
		c.TenantID = &id
	}
	return &c
}
