package repository

import (
	"context"

	"digiplot/internal/domain"
)

// MemoryPropertiesRepo is the in-process PropertiesRepository.
type MemoryPropertiesRepo struct {
	t *memoryTable[domain.Property]
}

func NewMemoryPropertiesRepo() *MemoryPropertiesRepo {
	return &MemoryPropertiesRepo{t: newMemoryTable(
		func(p *domain.Property) int64 { return p.ID },
		func(p *domain.Property, id int64) { p.ID = id },
		nil,
	)}
}

var _ PropertiesRepository = (*MemoryPropertiesRepo)(nil)

func (r *MemoryPropertiesRepo) ListProperties(_ context.Context, landlordID int64) ([]*domain.Property, error) {
	return r.t.filter(func(p *domain.Property) bool { return p.LandlordID == landlordID }), nil
}

func (r *MemoryPropertiesRepo) GetProperty(_ context.Context, id int64) (*domain.Property, error) {
	return r.t.get(id)
}

func (r *MemoryPropertiesRepo) CreateProperty(_ context.Context, property *domain.Property) (int64, error) {
	return r.t.insert(property), nil
}

func (r *MemoryPropertiesRepo) UpdateProperty(_ context.Context, property *domain.Property) error {
	return r.t.replace(property)
}

func (r *MemoryPropertiesRepo) DeleteProperty(_ context.Context, id int64) error {
	return r.t.remove(id)
}
