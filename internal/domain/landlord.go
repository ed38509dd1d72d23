package domain

import "time"

// Landlord owns properties (landlords table).
type Landlord struct {
	ID          int64     `db:"id" json:"id"`                     // BIGSERIAL, PRIMARY KEY
	Name        string    `db:"name" json:"name"`                 // NOT NULL
	Email       string    `db:"email" json:"email"`               // UNIQUE
	PhoneNumber string    `db:"phone_number" json:"phone_number"` // nullable
	CreatedAt   time.Time `db:"created_at" json:"created_at"`
}
