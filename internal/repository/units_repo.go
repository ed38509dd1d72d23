package repository

import (
	"context"
	"slices"

	"digiplot/internal/domain"
)

// UnitsRepository stores units.
type UnitsRepository interface {
	ListUnits(ctx context.Context, scope UnitScope) ([]*domain.Unit, error)
	GetUnit(ctx context.Context, id int64) (*domain.Unit, error)
	CreateUnit(ctx context.Context, unit *domain.Unit) (int64, error)
	UpdateUnit(ctx context.Context, unit *domain.Unit) error
	DeleteUnit(ctx context.Context, id int64) error
}

// UnitScope selects which units ListUnits returns.
// The zero value selects nothing; use AllUnits or PropertyUnits.
type UnitScope struct {
	all         bool
	propertyIDs []int64
}

// AllUnits selects every unit regardless of property.
func AllUnits() UnitScope {
	return UnitScope{all: true}
}

// PropertyUnits selects the units of the given properties. No ids selects nothing.
func PropertyUnits(propertyIDs ...int64) UnitScope {
	return UnitScope{propertyIDs: slices.Clone(propertyIDs)}
}

// All reports whether the scope is unrestricted.
func (s UnitScope) All() bool { return s.all }

// PropertyIDs returns the property filter; meaningless when All is true.
func (s UnitScope) PropertyIDs() []int64 { return slices.Clone(s.propertyIDs) }

// Includes reports whether a unit of propertyID falls in the scope.
func (s UnitScope) Includes(propertyID int64) bool {
	return s.all || slices.Contains(s.propertyIDs, propertyID)
}
