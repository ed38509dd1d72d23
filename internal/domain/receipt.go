package domain

import "time"

// Receipt is issued once per paid payment (receipts table).
type Receipt struct {
	ID            int64     `db:"id" json:"id"`
	PaymentID     int64     `db:"payment_id" json:"payment_id"`
	ReceiptNumber string    `db:"receipt_number" json:"receipt_number"`
	Amount        int64     `db:"amount" json:"amount"`
	IssuedAt      time.Time `db:"issued_at" json:"issued_at"`
}
