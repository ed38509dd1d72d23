package repository

import (
	"context"

	"digiplot/internal/domain"
)

// PropertiesRepository stores properties. Deleting a property never touches its units.
type PropertiesRepository interface {
	ListProperties(ctx context.Context, landlordID int64) ([]*domain.Property, error)
	GetProperty(ctx context.Context, id int64) (*domain.Property, error)
	CreateProperty(ctx context.Context, property *domain.Property) (int64, error)
	UpdateProperty(ctx context.Context, property *domain.Property) error
	DeleteProperty(ctx context.Context, id int64) error
}
