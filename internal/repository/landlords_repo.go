package repository

import (
	"context"

	"digiplot/internal/domain"
)

// LandlordsRepository stores landlord profiles.
type LandlordsRepository interface {
	GetLandlord(ctx context.Context, id int64) (*domain.Landlord, error)
	GetLandlordByEmail(ctx context.Context, email string) (*domain.Landlord, error)
	CreateLandlord(ctx context.Context, landlord *domain.Landlord) (int64, error)
	UpdateLandlord(ctx context.Context, landlord *domain.Landlord) error
}
