package repository

import (
	"context"
	"slices"
	"time"

	"digiplot/internal/domain"
)

// MemoryPaymentsRepo is the in-process PaymentsRepository.
type MemoryPaymentsRepo struct {
	t *memoryTable[domain.Payment]
}

func NewMemoryPaymentsRepo() *MemoryPaymentsRepo {
	return &MemoryPaymentsRepo{t: newMemoryTable(
		func(p *domain.Payment) int64 { return p.ID },
		func(p *domain.Payment, id int64) { p.ID = id },
		nil,
	)}
}

var _ PaymentsRepository = (*MemoryPaymentsRepo)(nil)

func (r *MemoryPaymentsRepo) ListPaymentsByTenant(_ context.Context, tenantID int64) ([]*domain.Payment, error) {
	return r.t.filter(func(p *domain.Payment) bool { return p.TenantID == tenantID }), nil
}

func (r *MemoryPaymentsRepo) ListPaymentsByUnits(_ context.Context, unitIDs []int64) ([]*domain.Payment, error) {
	return r.t.filter(func(p *domain.Payment) bool { return slices.Contains(unitIDs, p.UnitID) }), nil
}

func (r *MemoryPaymentsRepo) GetPayment(_ context.Context, id int64) (*domain.Payment, error) {
	return r.t.get(id)
}

func (r *MemoryPaymentsRepo) GetPaymentByReference(_ context.Context, reference string) (*domain.Payment, error) {
	return r.t.first(func(p *domain.Payment) bool { return p.TransactionReference == reference })
}

func (r *MemoryPaymentsRepo) CreatePayment(_ context.Context, payment *domain.Payment) (int64, error) {
	return r.t.insert(payment), nil
}

func (r *MemoryPaymentsRepo) SettlePayment(_ context.Context, id int64, status domain.PaymentStatus, at time.Time) (*domain.Payment, error) {
	return r.t.update(id, func(p *domain.Payment) error {
		if p.Status != domain.PaymentPending {
			return ErrNotPending
		}
		p.Status = status
		p.UpdatedAt = at
		return nil
	})
}

// MemoryReceiptsRepo is the in-process ReceiptsRepository.
type MemoryReceiptsRepo struct {
	t *memoryTable[domain.Receipt]
}

func NewMemoryReceiptsRepo() *MemoryReceiptsRepo {
	return &MemoryReceiptsRepo{t: newMemoryTable(
		func(r *domain.Receipt) int64 { return r.ID },
		func(r *domain.Receipt, id int64) { r.ID = id },
		nil,
	)}
}

var _ ReceiptsRepository = (*MemoryReceiptsRepo)(nil)

func (r *MemoryReceiptsRepo) GetReceiptByPayment(_ context.Context, paymentID int64) (*domain.Receipt, error) {
	return r.t.first(func(rc *domain.Receipt) bool { return rc.PaymentID == paymentID })
}

func (r *MemoryReceiptsRepo) CreateReceipt(_ context.Context, receipt *domain.Receipt) (int64, error) {
	id, ok := r.t.insertUnless(receipt, func(rc *domain.Receipt) bool { return rc.PaymentID == receipt.PaymentID })
	if !ok {
		return 0, ErrDuplicate
	}
	return id, nil
}
