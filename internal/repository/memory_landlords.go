package repository

import (
	"context"
	"strings"

	"digiplot/internal/domain"
)

// MemoryLandlordsRepo is the in-process LandlordsRepository.
type MemoryLandlordsRepo struct {
	t *memoryTable[domain.Landlord]
}

func NewMemoryLandlordsRepo() *MemoryLandlordsRepo {
	return &MemoryLandlordsRepo{t: newMemoryTable(
		func(l *domain.Landlord) int64 { return l.ID },
		func(l *domain.Landlord, id int64) { l.ID = id },
		nil,
	)}
}

var _ LandlordsRepository = (*MemoryLandlordsRepo)(nil)

func (r *MemoryLandlordsRepo) GetLandlord(_ context.Context, id int64) (*domain.Landlord, error) {
	return r.t.get(id)
}

func (r *MemoryLandlordsRepo) GetLandlordByEmail(_ context.Context, email string) (*domain.Landlord, error) {
	return r.t.first(func(l *domain.Landlord) bool { return strings.EqualFold(l.Email, email) })
}

func (r *MemoryLandlordsRepo) CreateLandlord(_ context.Context, landlord *domain.Landlord) (int64, error) {
	return r.t.insert(landlord), nil
}

func (r *MemoryLandlordsRepo) UpdateLandlord(_ context.Context, landlord *domain.Landlord) error {
	return r.t.replace(landlord)
}
