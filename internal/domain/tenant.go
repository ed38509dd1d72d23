package domain

import (
	"encoding/json"
	"time"
)

// TenantStatus is derived from MoveOutDate and never stored.
type TenantStatus string

const (
	TenantActive TenantStatus = "active"
	TenantFormer TenantStatus = "former"
)

// Tenant is a person renting a unit (tenants table).
type Tenant struct {
	ID                    int64      `db:"id" json:"id"`
	UnitID                int64      `db:"unit_id" json:"unit_id"`
	Name                  string     `db:"name" json:"name"`   // NOT NULL
	Email                 string     `db:"email" json:"email"` // NOT NULL
	PhoneNumber           string     `db:"phone_number" json:"phone_number"`
	MoveInDate            time.Time  `db:"move_in_date" json:"move_in_date"`
	MoveOutDate           *time.Time `db:"move_out_date" json:"move_out_date"` // nullable, NULL = currently living there
	LeaseStartDate        time.Time  `db:"lease_start_date" json:"lease_start_date"`
	LeaseEndDate          time.Time  `db:"lease_end_date" json:"lease_end_date"`
	EmergencyContactName  string     `db:"emergency_contact_name" json:"emergency_contact_name"`
	EmergencyContactPhone string     `db:"emergency_contact_phone" json:"emergency_contact_phone"`
	CreatedAt             time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt             time.Time  `db:"updated_at" json:"updated_at"`
}

// IsActive reports whether the tenant has not moved out.
func (t *Tenant) IsActive() bool {
	return t.MoveOutDate == nil
}

// Status returns active or former.
func (t *Tenant) Status() TenantStatus {
	if t.IsActive() {
		return TenantActive
	}
	return TenantFormer
}

// MarshalJSON adds the derived status to the serialized tenant.
func (t Tenant) MarshalJSON() ([]byte, error) {
	type plain Tenant
	return json.Marshal(struct {
		plain
		Status TenantStatus `json:"status"`
	}{plain: plain(t), Status: t.Status()})
}
