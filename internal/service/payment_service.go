package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"digiplot/internal/domain"
	"digiplot/internal/metrics"
	"digiplot/internal/repository"
	"digiplot/internal/stats"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// PaymentService owns the payment lifecycle: pending on submit, then paid
// or failed once the gateway (or the landlord) confirms.
type PaymentService interface {
	// Submit records a pending payment and hands it to the gateway. With
	// auto-confirm on, the payment comes back already settled.
	Submit(ctx context.Context, p *domain.Payment) (*domain.Payment, error)
	Confirm(ctx context.Context, paymentID int64, success bool) (*domain.Payment, error)
	ConfirmByReference(ctx context.Context, reference string, success bool) (*domain.Payment, error)
	GetReceipt(ctx context.Context, paymentID int64) (*domain.Receipt, error)
}

type paymentService struct {
	store         *repository.Store
	gateway       PaymentGateway
	notifications NotificationService
	autoConfirm   bool
	clock         Clock
	logger        *zap.Logger
}

func NewPaymentService(store *repository.Store, gateway PaymentGateway, notifications NotificationService, autoConfirm bool, clock Clock, logger *zap.Logger) PaymentService {
	if gateway == nil {
		gateway = NoopGateway{}
	}
	return &paymentService{
		store:         store,
		gateway:       gateway,
		notifications: notifications,
		autoConfirm:   autoConfirm,
		clock:         clock,
		logger:        logger,
	}
}

func newTransactionReference() string {
	return "TXN-" + strings.ToUpper(uuid.NewString())
}

// receiptNumber looks like RCT-202403-17.
func receiptNumber(paymentID int64, issued time.Time) string {
	return fmt.Sprintf("RCT-%s-%d", issued.Format("200601"), paymentID)
}

func (s *paymentService) Submit(ctx context.Context, p *domain.Payment) (*domain.Payment, error) {
	now := s.clock.now()
	p.Status = domain.PaymentPending
	p.TransactionReference = newTransactionReference()
	if p.PaymentDate.IsZero() {
		p.PaymentDate = now
	}
	p.CreatedAt = now
	p.UpdatedAt = now

	if _, err := s.store.Payments.CreatePayment(ctx, p); err != nil {
		s.logger.Error("CreatePayment failed",
			zap.Int64("tenant_id", p.TenantID),
			zap.Int64("amount", p.Amount),
			zap.Error(err),
		)
		return nil, fmt.Errorf("failed to create payment: %w", err)
	}

	if err := s.gateway.Initiate(ctx, p); err != nil {
		s.logger.Warn("Payment gateway rejected payment",
			zap.Int64("payment_id", p.ID),
			zap.Error(err),
		)
		return s.settle(ctx, p, false)
	}
	if s.autoConfirm {
		return s.settle(ctx, p, true)
	}
	return p, nil
}

func (s *paymentService) Confirm(ctx context.Context, paymentID int64, success bool) (*domain.Payment, error) {
	p, err := s.store.Payments.GetPayment(ctx, paymentID)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get payment: %w", err)
	}
	return s.settlePending(ctx, p, success)
}

func (s *paymentService) ConfirmByReference(ctx context.Context, reference string, success bool) (*domain.Payment, error) {
	if strings.TrimSpace(reference) == "" {
		return nil, invalidf("transaction_reference is required")
	}
	p, err := s.store.Payments.GetPaymentByReference(ctx, reference)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get payment: %w", err)
	}
	return s.settlePending(ctx, p, success)
}

func (s *paymentService) GetReceipt(ctx context.Context, paymentID int64) (*domain.Receipt, error) {
	r, err := s.store.Receipts.GetReceiptByPayment(ctx, paymentID)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get receipt: %w", err)
	}
	return r, nil
}

func (s *paymentService) settlePending(ctx context.Context, p *domain.Payment, success bool) (*domain.Payment, error) {
	if p.Status != domain.PaymentPending {
		return nil, invalidf("payment %s is already %s", p.TransactionReference, p.Status)
	}
	return s.settle(ctx, p, success)
}

func (s *paymentService) alreadySettled(ctx context.Context, p *domain.Payment) error {
	status := p.Status
	if current, err := s.store.Payments.GetPayment(ctx, p.ID); err == nil {
		status = current.Status
	}
	return invalidf("payment %s is already %s", p.TransactionReference, status)
}

// settle moves a pending payment to paid (with a receipt) or failed and
// tells the people involved. Concurrent settles of the same payment are
// decided by the store; only the winner issues a receipt and notifies.
func (s *paymentService) settle(ctx context.Context, pending *domain.Payment, success bool) (*domain.Payment, error) {
	now := s.clock.now()
	status := domain.PaymentFailed
	if success {
		status = domain.PaymentPaid
	}
	p, err := s.store.Payments.SettlePayment(ctx, pending.ID, status, now)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, nil
	}
	if errors.Is(err, repository.ErrNotPending) {
		return nil, s.alreadySettled(ctx, pending)
	}
	if err != nil {
		s.logger.Error("SettlePayment failed", zap.Int64("payment_id", pending.ID), zap.Error(err))
		return nil, fmt.Errorf("failed to settle payment: %w", err)
	}
	metrics.RecordPaymentSettled(string(p.Status), p.Amount)

	amount := stats.FormatKES(float64(p.Amount))
	if !success {
		notifyQuietly(ctx, s.notifications, s.logger, domain.RecipientTenant, p.TenantID,
			fmt.Sprintf("Your payment of %s (ref %s) failed. Please try again.", amount, p.TransactionReference))
		return p, nil
	}

	receipt := &domain.Receipt{
		PaymentID:     p.ID,
		ReceiptNumber: receiptNumber(p.ID, now),
		Amount:        p.Amount,
		IssuedAt:      now,
	}
	if _, err := s.store.Receipts.CreateReceipt(ctx, receipt); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, s.alreadySettled(ctx, p)
		}
		s.logger.Error("CreateReceipt failed", zap.Int64("payment_id", p.ID), zap.Error(err))
		return nil, fmt.Errorf("failed to create receipt: %w", err)
	}

	notifyQuietly(ctx, s.notifications, s.logger, domain.RecipientTenant, p.TenantID,
		fmt.Sprintf("Payment of %s received. Receipt %s.", amount, receipt.ReceiptNumber))

	landlordID, unit, ok, err := landlordOfUnit(ctx, s.store, p.UnitID)
	if err != nil {
		s.logger.Warn("Landlord lookup failed", zap.Int64("payment_id", p.ID), zap.Error(err))
	}
	if ok {
		tenantName := "A tenant"
		if t, err := s.store.Tenants.GetTenant(ctx, p.TenantID); err == nil {
			tenantName = t.Name
		}
		notifyQuietly(ctx, s.notifications, s.logger, domain.RecipientLandlord, landlordID,
			fmt.Sprintf("%s paid %s for unit %s.", tenantName, amount, unit.UnitNumber))
	}
	return p, nil
}
