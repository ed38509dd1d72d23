package repository

import (
	"context"
	"database/sql"
	"fmt"

	"digiplot/internal/domain"

	"github.com/lib/pq"
)

// PostgresTenantsRepo implements TenantsRepository on the tenants table.
type PostgresTenantsRepo struct {
	db *sql.DB
}

func NewPostgresTenantsRepo(db *sql.DB) *PostgresTenantsRepo {
	return &PostgresTenantsRepo{db: db}
}

var _ TenantsRepository = (*PostgresTenantsRepo)(nil)

const tenantColumns = `id, unit_id, name, email, phone_number, move_in_date, move_out_date,
	lease_start_date, lease_end_date, emergency_contact_name, emergency_contact_phone, created_at, updated_at`

func scanTenant(s rowScanner) (*domain.Tenant, error) {
	var t domain.Tenant
	var moveOut sql.NullTime
	err := s.Scan(&t.ID, &t.UnitID, &t.Name, &t.Email, &t.PhoneNumber, &t.MoveInDate, &moveOut,
		&t.LeaseStartDate, &t.LeaseEndDate, &t.EmergencyContactName, &t.EmergencyContactPhone,
		&t.CreatedAt, &t.UpdatedAt)
	if err != nil {
		return nil, err
	}
	t.MoveOutDate = timePtr(moveOut)
	return &t, nil
}

func (r *PostgresTenantsRepo) queryTenants(ctx context.Context, query string, args ...any) ([]*domain.Tenant, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list tenants: %w", err)
	}
	defer rows.Close()

	out := []*domain.Tenant{}
	for rows.Next() {
		t, err := scanTenant(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan tenant: %w", err)
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

func (r *PostgresTenantsRepo) ListTenants(ctx context.Context) ([]*domain.Tenant, error) {
	return r.queryTenants(ctx, `SELECT `+tenantColumns+` FROM tenants ORDER BY id`)
}

func (r *PostgresTenantsRepo) ListTenantsByUnits(ctx context.Context, unitIDs []int64) ([]*domain.Tenant, error) {
	return r.queryTenants(ctx,
		`SELECT `+tenantColumns+` FROM tenants WHERE unit_id = ANY($1) ORDER BY id`, pq.Array(unitIDs))
}

func (r *PostgresTenantsRepo) GetTenant(ctx context.Context, id int64) (*domain.Tenant, error) {
	t, err := scanTenant(r.db.QueryRowContext(ctx, `SELECT `+tenantColumns+` FROM tenants WHERE id = $1`, id))
	if err != nil {
		return nil, notFoundOr(err, "get tenant")
	}
	return t, nil
}

func (r *PostgresTenantsRepo) GetTenantByEmail(ctx context.Context, email string) (*domain.Tenant, error) {
	t, err := scanTenant(r.db.QueryRowContext(ctx,
		`SELECT `+tenantColumns+` FROM tenants WHERE lower(email) = lower($1) ORDER BY id LIMIT 1`, email))
	if err != nil {
		return nil, notFoundOr(err, "get tenant by email")
	}
	return t, nil
}

func (r *PostgresTenantsRepo) CreateTenant(ctx context.Context, t *domain.Tenant) (int64, error) {
	err := r.db.QueryRowContext(ctx,
		`INSERT INTO tenants (unit_id, name, email, phone_number, move_in_date, move_out_date,
		                      lease_start_date, lease_end_date, emergency_contact_name, emergency_contact_phone,
		                      created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		 RETURNING id`,
		t.UnitID, t.Name, t.Email, t.PhoneNumber, t.MoveInDate, nullTimeOf(t.MoveOutDate),
		t.LeaseStartDate, t.LeaseEndDate, t.EmergencyContactName, t.EmergencyContactPhone,
		t.CreatedAt, t.UpdatedAt,
	).Scan(&t.ID)
	if err != nil {
		return 0, fmt.Errorf("failed to create tenant: %w", err)
	}
	return t.ID, nil
}

func (r *PostgresTenantsRepo) UpdateTenant(ctx context.Context, t *domain.Tenant) error {
	return execOne(ctx, r.db, "update tenant",
		`UPDATE tenants
		 SET unit_id = $2, name = $3, email = $4, phone_number = $5, move_in_date = $6, move_out_date = $7,
		     lease_start_date = $8, lease_end_date = $9, emergency_contact_name = $10,
		     emergency_contact_phone = $11, updated_at = $12
		 WHERE id = $1`,
		t.ID, t.UnitID, t.Name, t.Email, t.PhoneNumber, t.MoveInDate, nullTimeOf(t.MoveOutDate),
		t.LeaseStartDate, t.LeaseEndDate, t.EmergencyContactName, t.EmergencyContactPhone, t.UpdatedAt,
	)
}

func (r *PostgresTenantsRepo) DeleteTenant(ctx context.Context, id int64) error {
	return execOne(ctx, r.db, "delete tenant", `DELETE FROM tenants WHERE id = $1`, id)
}
