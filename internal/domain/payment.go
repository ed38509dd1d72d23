package domain

import "time"

// PaymentStatus is the settlement state of a payment.
type PaymentStatus string

const (
	PaymentPaid    PaymentStatus = "paid"
	PaymentPending PaymentStatus = "pending"
	PaymentFailed  PaymentStatus = "failed"
)

// Payment methods accepted from the tenant portal.
const (
	PaymentMethodMpesa        = "mpesa"
	PaymentMethodBankTransfer = "bank_transfer"
	PaymentMethodCash         = "cash"
	PaymentMethodCard         = "card"
)

// Payment is one rent payment (payments table).
type Payment struct {
	ID                   int64         `db:"id" json:"id"`
	TenantID             int64         `db:"tenant_id" json:"tenant_id"`
	UnitID               int64         `db:"unit_id" json:"unit_id"`
	Amount               int64         `db:"amount" json:"amount"` // KES
	PaymentDate          time.Time     `db:"payment_date" json:"payment_date"`
	PaymentMethod        string        `db:"payment_method" json:"payment_method"`
	Status               PaymentStatus `db:"status" json:"status"` // paid | pending | failed
	TransactionReference string        `db:"transaction_reference" json:"transaction_reference"`
	PhoneNumber          string        `db:"phone_number" json:"phone_number,omitempty"` // M-Pesa only
	CreatedAt            time.Time     `db:"created_at" json:"created_at"`
	UpdatedAt            time.Time     `db:"updated_at" json:"updated_at"`
}
