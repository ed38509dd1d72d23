package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"digiplot/internal/domain"

	"github.com/lib/pq"
)

// PostgresPaymentsRepo implements PaymentsRepository on the payments table.
type PostgresPaymentsRepo struct {
	db *sql.DB
}

func NewPostgresPaymentsRepo(db *sql.DB) *PostgresPaymentsRepo {
	return &PostgresPaymentsRepo{db: db}
}

var _ PaymentsRepository = (*PostgresPaymentsRepo)(nil)

// uniqueViolation is the Postgres SQLSTATE for a unique constraint failure.
const uniqueViolation pq.ErrorCode = "23505"

const paymentColumns = `id, tenant_id, unit_id, amount, payment_date, payment_method, status,
	transaction_reference, phone_number, created_at, updated_at`

func scanPayment(s rowScanner) (*domain.Payment, error) {
	var p domain.Payment
	err := s.Scan(&p.ID, &p.TenantID, &p.UnitID, &p.Amount, &p.PaymentDate, &p.PaymentMethod, &p.Status,
		&p.TransactionReference, &p.PhoneNumber, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *PostgresPaymentsRepo) queryPayments(ctx context.Context, query string, args ...any) ([]*domain.Payment, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list payments: %w", err)
	}
	defer rows.Close()

	out := []*domain.Payment{}
	for rows.Next() {
		p, err := scanPayment(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan payment: %w", err)
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

func (r *PostgresPaymentsRepo) ListPaymentsByTenant(ctx context.Context, tenantID int64) ([]*domain.Payment, error) {
	return r.queryPayments(ctx, `SELECT `+paymentColumns+` FROM payments WHERE tenant_id = $1 ORDER BY id`, tenantID)
}

func (r *PostgresPaymentsRepo) ListPaymentsByUnits(ctx context.Context, unitIDs []int64) ([]*domain.Payment, error) {
	return r.queryPayments(ctx,
		`SELECT `+paymentColumns+` FROM payments WHERE unit_id = ANY($1) ORDER BY id`, pq.Array(unitIDs))
}

func (r *PostgresPaymentsRepo) GetPayment(ctx context.Context, id int64) (*domain.Payment, error) {
	p, err := scanPayment(r.db.QueryRowContext(ctx, `SELECT `+paymentColumns+` FROM payments WHERE id = $1`, id))
	if err != nil {
		return nil, notFoundOr(err, "get payment")
	}
	return p, nil
}

func (r *PostgresPaymentsRepo) GetPaymentByReference(ctx context.Context, reference string) (*domain.Payment, error) {
	p, err := scanPayment(r.db.QueryRowContext(ctx,
		`SELECT `+paymentColumns+` FROM payments WHERE transaction_reference = $1`, reference))
	if err != nil {
		return nil, notFoundOr(err, "get payment by reference")
	}
	return p, nil
}

func (r *PostgresPaymentsRepo) CreatePayment(ctx context.Context, p *domain.Payment) (int64, error) {
	err := r.db.QueryRowContext(ctx,
		`INSERT INTO payments (tenant_id, unit_id, amount, payment_date, payment_method, status,
		                       transaction_reference, phone_number, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		 RETURNING id`,
		p.TenantID, p.UnitID, p.Amount, p.PaymentDate, p.PaymentMethod, p.Status,
		p.TransactionReference, p.PhoneNumber, p.CreatedAt, p.UpdatedAt,
	).Scan(&p.ID)
	if err != nil {
		return 0, fmt.Errorf("failed to create payment: %w", err)
	}
	return p.ID, nil
}

func (r *PostgresPaymentsRepo) SettlePayment(ctx context.Context, id int64, status domain.PaymentStatus, at time.Time) (*domain.Payment, error) {
	p, err := scanPayment(r.db.QueryRowContext(ctx,
		`UPDATE payments SET status = $2, updated_at = $3
		 WHERE id = $1 AND status = 'pending'
		 RETURNING `+paymentColumns,
		id, status, at,
	))
	if err == nil {
		return p, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("failed to settle payment: %w", err)
	}
	if _, err := r.GetPayment(ctx, id); err != nil {
		return nil, err
	}
	return nil, ErrNotPending
}

// PostgresReceiptsRepo implements ReceiptsRepository on the receipts table.
type PostgresReceiptsRepo struct {
	db *sql.DB
}

func NewPostgresReceiptsRepo(db *sql.DB) *PostgresReceiptsRepo {
	return &PostgresReceiptsRepo{db: db}
}

var _ ReceiptsRepository = (*PostgresReceiptsRepo)(nil)

func (r *PostgresReceiptsRepo) GetReceiptByPayment(ctx context.Context, paymentID int64) (*domain.Receipt, error) {
	var rc domain.Receipt
	err := r.db.QueryRowContext(ctx,
		`SELECT id, payment_id, receipt_number, amount, issued_at FROM receipts WHERE payment_id = $1`, paymentID,
	).Scan(&rc.ID, &rc.PaymentID, &rc.ReceiptNumber, &rc.Amount, &rc.IssuedAt)
	if err != nil {
		return nil, notFoundOr(err, "get receipt")
	}
	return &rc, nil
}

func (r *PostgresReceiptsRepo) CreateReceipt(ctx context.Context, rc *domain.Receipt) (int64, error) {
	err := r.db.QueryRowContext(ctx,
		`INSERT INTO receipts (payment_id, receipt_number, amount, issued_at)
		 VALUES ($1, $2, $3, $4)
		 RETURNING id`,
		rc.PaymentID, rc.ReceiptNumber, rc.Amount, rc.IssuedAt,
	).Scan(&rc.ID)
	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code == uniqueViolation {
		return 0, ErrDuplicate
	}
	if err != nil {
		return 0, fmt.Errorf("failed to create receipt: %w", err)
	}
	return rc.ID, nil
}
