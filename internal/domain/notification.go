package domain

import "time"

// RecipientType selects which role a notification is addressed to.
type RecipientType string

const (
	RecipientLandlord RecipientType = "landlord"
	RecipientTenant   RecipientType = "tenant"
)

// Notification is an in-app message (notifications table).
type Notification struct {
	ID            int64         `db:"id" json:"id"`
	RecipientID   int64         `db:"recipient_id" json:"recipient_id"`
	RecipientType RecipientType `db:"recipient_type" json:"recipient_type"`
	Message       string        `db:"message" json:"message"`
	CreatedAt     time.Time     `db:"created_at" json:"created_at"`
	ReadAt        *time.Time    `db:"read_at" json:"read_at"` // nullable, NULL = unread
}

// IsRead reports whether the notification has been read.
func (n *Notification) IsRead() bool {
	return n.ReadAt != nil
}
