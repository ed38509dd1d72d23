package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"
)

// schemaStatements create the DigiPlot tables. References are plain ids
// without foreign keys; deletes never cascade.
var schemaStatements = []string{
	`CREATE TABLE IF NOT EXISTS landlords (
		id           BIGSERIAL PRIMARY KEY,
		name         VARCHAR(255) NOT NULL,
		email        VARCHAR(255) NOT NULL UNIQUE,
		phone_number VARCHAR(50)  NOT NULL DEFAULT '',
		created_at   TIMESTAMPTZ  NOT NULL DEFAULT now()
	)`,
	`CREATE TABLE IF NOT EXISTS properties (
		id          BIGSERIAL PRIMARY KEY,
		landlord_id BIGINT       NOT NULL,
		name        VARCHAR(255) NOT NULL,
		location    VARCHAR(255) NOT NULL,
		address     TEXT         NOT NULL DEFAULT '',
		description TEXT         NOT NULL DEFAULT '',
		created_at  TIMESTAMPTZ  NOT NULL,
		updated_at  TIMESTAMPTZ  NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_properties_landlord ON properties (landlord_id)`,
	`CREATE TABLE IF NOT EXISTS units (
		id          BIGSERIAL PRIMARY KEY,
		property_id BIGINT       NOT NULL,
		unit_number VARCHAR(50)  NOT NULL,
		floor       INT          NOT NULL DEFAULT 0,
		bedrooms    INT          NOT NULL DEFAULT 0,
		bathrooms   INT          NOT NULL DEFAULT 0,
		rent_amount BIGINT       NOT NULL DEFAULT 0,
		status      VARCHAR(20)  NOT NULL DEFAULT 'vacant',
		tenant_id   BIGINT,
		tenant_name VARCHAR(255) NOT NULL DEFAULT '',
		created_at  TIMESTAMPTZ  NOT NULL,
		updated_at  TIMESTAMPTZ  NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_units_property ON units (property_id)`,
	`CREATE TABLE IF NOT EXISTS tenants (
		id                      BIGSERIAL PRIMARY KEY,
		unit_id                 BIGINT       NOT NULL,
		name                    VARCHAR(255) NOT NULL,
		email                   VARCHAR(255) NOT NULL,
		phone_number            VARCHAR(50)  NOT NULL DEFAULT '',
		move_in_date            TIMESTAMPTZ  NOT NULL,
		move_out_date           TIMESTAMPTZ,
		lease_start_date        TIMESTAMPTZ  NOT NULL,
		lease_end_date          TIMESTAMPTZ  NOT NULL,
		emergency_contact_name  VARCHAR(255) NOT NULL DEFAULT '',
		emergency_contact_phone VARCHAR(50)  NOT NULL DEFAULT '',
		created_at              TIMESTAMPTZ  NOT NULL,
		updated_at              TIMESTAMPTZ  NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_tenants_unit ON tenants (unit_id)`,
	`CREATE TABLE IF NOT EXISTS payments (
		id                    BIGSERIAL PRIMARY KEY,
		tenant_id             BIGINT       NOT NULL,
		unit_id               BIGINT       NOT NULL,
		amount                BIGINT       NOT NULL,
		payment_date          TIMESTAMPTZ  NOT NULL,
		payment_method        VARCHAR(50)  NOT NULL,
		status                VARCHAR(20)  NOT NULL DEFAULT 'pending',
		transaction_reference VARCHAR(100) NOT NULL UNIQUE,
		phone_number          VARCHAR(50)  NOT NULL DEFAULT '',
		created_at            TIMESTAMPTZ  NOT NULL,
		updated_at            TIMESTAMPTZ  NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_payments_tenant ON payments (tenant_id)`,
	`CREATE INDEX IF NOT EXISTS idx_payments_unit ON payments (unit_id)`,
	`CREATE TABLE IF NOT EXISTS maintenance_requests (
		id           BIGSERIAL PRIMARY KEY,
		tenant_id    BIGINT       NOT NULL,
		unit_id      BIGINT       NOT NULL,
		title        VARCHAR(255) NOT NULL,
		description  TEXT         NOT NULL DEFAULT '',
		priority     VARCHAR(20)  NOT NULL DEFAULT 'medium',
		status       VARCHAR(20)  NOT NULL DEFAULT 'pending',
		images       TEXT[]       NOT NULL DEFAULT '{}',
		comments     JSONB        NOT NULL DEFAULT '[]'::jsonb,
		cost         BIGINT       NOT NULL DEFAULT 0,
		created_at   TIMESTAMPTZ  NOT NULL,
		updated_at   TIMESTAMPTZ  NOT NULL,
		completed_at TIMESTAMPTZ
	)`,
	`CREATE INDEX IF NOT EXISTS idx_maintenance_unit ON maintenance_requests (unit_id)`,
	`CREATE TABLE IF NOT EXISTS notifications (
		id             BIGSERIAL PRIMARY KEY,
		recipient_id   BIGINT      NOT NULL,
		recipient_type VARCHAR(20) NOT NULL,
		message        TEXT        NOT NULL,
		created_at     TIMESTAMPTZ NOT NULL,
		read_at        TIMESTAMPTZ
	)`,
	`CREATE INDEX IF NOT EXISTS idx_notifications_recipient ON notifications (recipient_type, recipient_id)`,
	`CREATE TABLE IF NOT EXISTS receipts (
		id             BIGSERIAL PRIMARY KEY,
		payment_id     BIGINT       NOT NULL UNIQUE,
		receipt_number VARCHAR(100) NOT NULL,
		amount         BIGINT       NOT NULL,
		issued_at      TIMESTAMPTZ  NOT NULL
	)`,
}

// Migrate creates missing tables and indexes. It is idempotent.
func Migrate(ctx context.Context, db *sql.DB) error {
	for i, stmt := range schemaStatements {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("failed to apply schema statement %d: %w", i, err)
		}
	}
	return nil
}

// rowScanner is satisfied by *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func notFoundOr(err error, what string) error {
	if err == sql.ErrNoRows {
		return ErrNotFound
	}
	return fmt.Errorf("failed to %s: %w", what, err)
}

func execOne(ctx context.Context, db *sql.DB, what string, query string, args ...any) error {
	res, err := db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("failed to %s: %w", what, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to %s: %w", what, err)
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

func timePtr(v sql.NullTime) *time.Time {
	if !v.Valid {
		return nil
	}
	t := v.Time
	return &t
}

func nullTimeOf(t *time.Time) sql.NullTime {
	if t == nil {
		return sql.NullTime{}
	}
	return sql.NullTime{Time: *t, Valid: true}
}
