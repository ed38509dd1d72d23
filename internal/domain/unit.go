package domain

import "time"

// UnitStatus is the letting state of a unit.
type UnitStatus string

const (
	UnitVacant      UnitStatus = "vacant"
	UnitOccupied    UnitStatus = "occupied"
	UnitMaintenance UnitStatus = "maintenance"
)

// Valid reports whether s is one of the known unit statuses.
func (s UnitStatus) Valid() bool {
	switch s {
	case UnitVacant, UnitOccupied, UnitMaintenance:
		return true
	}
	return false
}

// Unit is a lettable space inside a property (units table).
// TenantID/TenantName are denormalized from the tenant currently living there.
type Unit struct {
	ID         int64      `db:"id" json:"id"`
	PropertyID int64      `db:"property_id" json:"property_id"`
	UnitNumber string     `db:"unit_number" json:"unit_number"` // NOT NULL
	Floor      int        `db:"floor" json:"floor"`
	Bedrooms   int        `db:"bedrooms" json:"bedrooms"`
	Bathrooms  int        `db:"bathrooms" json:"bathrooms"`
	RentAmount int64      `db:"rent_amount" json:"rent_amount"` // KES, no minor units
	Status     UnitStatus `db:"status" json:"status"`           // vacant | occupied | maintenance
	TenantID   *int64     `db:"tenant_id" json:"tenant_id,omitempty"`
	TenantName string     `db:"tenant_name" json:"tenant_name,omitempty"`
	CreatedAt  time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt  time.Time  `db:"updated_at" json:"updated_at"`
}

// IsOccupied reports whether the unit is counted as occupied.
func (u *Unit) IsOccupied() bool {
	return u.Status == UnitOccupied
}
