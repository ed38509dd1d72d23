package repository

import (
	"context"
	"time"

	"digiplot/internal/domain"
)

// PaymentsRepository stores rent payments. Payments are never deleted.
type PaymentsRepository interface {
	ListPaymentsByTenant(ctx context.Context, tenantID int64) ([]*domain.Payment, error)
	ListPaymentsByUnits(ctx context.Context, unitIDs []int64) ([]*domain.Payment, error)
	GetPayment(ctx context.Context, id int64) (*domain.Payment, error)
	GetPaymentByReference(ctx context.Context, reference string) (*domain.Payment, error)
	CreatePayment(ctx context.Context, payment *domain.Payment) (int64, error)
	// SettlePayment moves a pending payment to status and returns the stored
	// row. Only one caller wins; the rest get ErrNotPending.
	SettlePayment(ctx context.Context, id int64, status domain.PaymentStatus, at time.Time) (*domain.Payment, error)
}

// ReceiptsRepository stores receipts, at most one per payment.
type ReceiptsRepository interface {
	GetReceiptByPayment(ctx context.Context, paymentID int64) (*domain.Receipt, error)
	// CreateReceipt returns ErrDuplicate when the payment already has one.
	CreateReceipt(ctx context.Context, receipt *domain.Receipt) (int64, error)
}
