package service

import (
	"context"
	"errors"
	"fmt"

	"digiplot/internal/domain"
	"digiplot/internal/repository"
)

// portfolio is one landlord's properties and the units inside them,
// loaded once per dashboard or report call.
type portfolio struct {
	properties []*domain.Property
	units      []*domain.Unit
}

func loadPortfolio(ctx context.Context, st *repository.Store, landlordID int64) (*portfolio, error) {
	props, err := st.Properties.ListProperties(ctx, landlordID)
	if err != nil {
		return nil, fmt.Errorf("failed to list properties: %w", err)
	}
	ids := make([]int64, len(props))
	for i, p := range props {
		ids[i] = p.ID
	}
	units, err := st.Units.ListUnits(ctx, repository.PropertyUnits(ids...))
	if err != nil {
		return nil, fmt.Errorf("failed to list units: %w", err)
	}
	return &portfolio{properties: props, units: units}, nil
}

func (p *portfolio) propertyIDs() []int64 {
	ids := make([]int64, len(p.properties))
	for i, prop := range p.properties {
		ids[i] = prop.ID
	}
	return ids
}

func (p *portfolio) unitIDs() []int64 {
	ids := make([]int64, len(p.units))
	for i, u := range p.units {
		ids[i] = u.ID
	}
	return ids
}

func (p *portfolio) unit(id int64) *domain.Unit {
	for _, u := range p.units {
		if u.ID == id {
			return u
		}
	}
	return nil
}

func (p *portfolio) property(id int64) *domain.Property {
	for _, prop := range p.properties {
		if prop.ID == id {
			return prop
		}
	}
	return nil
}

// landlordOfUnit follows unit -> property -> landlord. ok is false when
// either hop is missing.
func landlordOfUnit(ctx context.Context, st *repository.Store, unitID int64) (landlordID int64, unit *domain.Unit, ok bool, err error) {
	unit, err = st.Units.GetUnit(ctx, unitID)
	if errors.Is(err, repository.ErrNotFound) {
		return 0, nil, false, nil
	}
	if err != nil {
		return 0, nil, false, fmt.Errorf("failed to get unit: %w", err)
	}
	prop, err := st.Properties.GetProperty(ctx, unit.PropertyID)
	if errors.Is(err, repository.ErrNotFound) {
		return 0, unit, false, nil
	}
	if err != nil {
		return 0, unit, false, fmt.Errorf("failed to get property: %w", err)
	}
	return prop.LandlordID, unit, true, nil
}
