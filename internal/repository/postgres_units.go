package repository

import (
	"context"
	"database/sql"
	"fmt"

	"digiplot/internal/domain"

	"github.com/lib/pq"
)

// PostgresUnitsRepo implements UnitsRepository on the units table.
type PostgresUnitsRepo struct {
	db *sql.DB
}

func NewPostgresUnitsRepo(db *sql.DB) *PostgresUnitsRepo {
	return &PostgresUnitsRepo{db: db}
}

var _ UnitsRepository = (*PostgresUnitsRepo)(nil)

const unitColumns = `id, property_id, unit_number, floor, bedrooms, bathrooms, rent_amount, status, tenant_id, tenant_name, created_at, updated_at`

func scanUnit(s rowScanner) (*domain.Unit, error) {
	var u domain.Unit
	var tenantID sql.NullInt64
	err := s.Scan(&u.ID, &u.PropertyID, &u.UnitNumber, &u.Floor, &u.Bedrooms, &u.Bathrooms,
		&u.RentAmount, &u.Status, &tenantID, &u.TenantName, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		return nil, err
	}
	if tenantID.Valid {
		id := tenantID.Int64
		u.TenantID = &id
	}
	return &u, nil
}

func nullInt64Of(v *int64) sql.NullInt64 {
	if v == nil {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: *v, Valid: true}
}

func (r *PostgresUnitsRepo) ListUnits(ctx context.Context, scope UnitScope) ([]*domain.Unit, error) {
	var (
		rows *sql.Rows
		err  error
	)
	if scope.All() {
		rows, err = r.db.QueryContext(ctx, `SELECT `+unitColumns+` FROM units ORDER BY id`)
	} else {
		rows, err = r.db.QueryContext(ctx,
			`SELECT `+unitColumns+` FROM units WHERE property_id = ANY($1) ORDER BY id`,
			pq.Array(scope.PropertyIDs()))
	}
	if err != nil {
		return nil, fmt.Errorf("failed to list units: %w", err)
	}
	defer rows.Close()

	out := []*domain.Unit{}
	for rows.Next() {
		u, err := scanUnit(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan unit: %w", err)
		}
		out = append(out, u)
	}
	return out, rows.Err()
}

func (r *PostgresUnitsRepo) GetUnit(ctx context.Context, id int64) (*domain.Unit, error) {
	u, err := scanUnit(r.db.QueryRowContext(ctx, `SELECT `+unitColumns+` FROM units WHERE id = $1`, id))
	if err != nil {
		return nil, notFoundOr(err, "get unit")
	}
	return u, nil
}

func (r *PostgresUnitsRepo) CreateUnit(ctx context.Context, u *domain.Unit) (int64, error) {
	err := r.db.QueryRowContext(ctx,
		`INSERT INTO units (property_id, unit_number, floor, bedrooms, bathrooms, rent_amount, status, tenant_id, tenant_name, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		 RETURNING id`,
		u.PropertyID, u.UnitNumber, u.Floor, u.Bedrooms, u.Bathrooms, u.RentAmount, u.Status,
		nullInt64Of(u.TenantID), u.TenantName, u.CreatedAt, u.UpdatedAt,
	).Scan(&u.ID)
	if err != nil {
		return 0, fmt.Errorf("failed to create unit: %w", err)
	}
	return u.ID, nil
}

func (r *PostgresUnitsRepo) UpdateUnit(ctx context.Context, u *domain.Unit) error {
	return execOne(ctx, r.db, "update unit",
		`UPDATE units
		 SET property_id = $2, unit_number = $3, floor = $4, bedrooms = $5, bathrooms = $6,
		     rent_amount = $7, status = $8, tenant_id = $9, tenant_name = $10, updated_at = $11
		 WHERE id = $1`,
		u.ID, u.PropertyID, u.UnitNumber, u.Floor, u.Bedrooms, u.Bathrooms,
		u.RentAmount, u.Status, nullInt64Of(u.TenantID), u.TenantName, u.UpdatedAt,
	)
}

func (r *PostgresUnitsRepo) DeleteUnit(ctx context.Context, id int64) error {
	return execOne(ctx, r.db, "delete unit", `DELETE FROM units WHERE id = $1`, id)
}
