package domain

import "time"

// Property is a building or estate managed by one landlord (properties table).
// LandlordID is a plain reference; nothing enforces that the landlord exists.
type Property struct {
	ID          int64     `db:"id" json:"id"`
	LandlordID  int64     `db:"landlord_id" json:"landlord_id"`
	Name        string    `db:"name" json:"name"`         // NOT NULL
	Location    string    `db:"location" json:"location"` // NOT NULL, e.g. "Kilimani, Nairobi"
	Address     string    `db:"address" json:"address"`
	Description string    `db:"description" json:"description"`
	CreatedAt   time.Time `db:"created_at" json:"created_at"`
	UpdatedAt   time.Time `db:"updated_at" json:"updated_at"`
}
