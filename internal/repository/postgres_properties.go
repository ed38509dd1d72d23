package repository

import (
	"context"
	"database/sql"
	"fmt"

	"digiplot/internal/domain"
)

// PostgresPropertiesRepo implements PropertiesRepository on the properties table.
type PostgresPropertiesRepo struct {
	db *sql.DB
}

func NewPostgresPropertiesRepo(db *sql.DB) *PostgresPropertiesRepo {
	return &PostgresPropertiesRepo{db: db}
}

var _ PropertiesRepository = (*PostgresPropertiesRepo)(nil)

const propertyColumns = `id, landlord_id, name, location, address, description, created_at, updated_at`

func scanProperty(s rowScanner) (*domain.Property, error) {
	var p domain.Property
	err := s.Scan(&p.ID, &p.LandlordID, &p.Name, &p.Location, &p.Address, &p.Description, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *PostgresPropertiesRepo) ListProperties(ctx context.Context, landlordID int64) ([]*domain.Property, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+propertyColumns+` FROM properties WHERE landlord_id = $1 ORDER BY id`, landlordID)
	if err != nil {
		return nil, fmt.Errorf("failed to list properties: %w", err)
	}
	defer rows.Close()

	out := []*domain.Property{}
	for rows.Next() {
		p, err := scanProperty(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan property: %w", err)
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

func (r *PostgresPropertiesRepo) GetProperty(ctx context.Context, id int64) (*domain.Property, error) {
	p, err := scanProperty(r.db.QueryRowContext(ctx,
		`SELECT `+propertyColumns+` FROM properties WHERE id = $1`, id))
	if err != nil {
		return nil, notFoundOr(err, "get property")
	}
	return p, nil
}

func (r *PostgresPropertiesRepo) CreateProperty(ctx context.Context, p *domain.Property) (int64, error) {
	err := r.db.QueryRowContext(ctx,
		`INSERT INTO properties (landlord_id, name, location, address, description, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)
		 RETURNING id`,
		p.LandlordID, p.Name, p.Location, p.Address, p.Description, p.CreatedAt, p.UpdatedAt,
	).Scan(&p.ID)
	if err != nil {
		return 0, fmt.Errorf("failed to create property: %w", err)
	}
	return p.ID, nil
}

func (r *PostgresPropertiesRepo) UpdateProperty(ctx context.Context, p *domain.Property) error {
	return execOne(ctx, r.db, "update property",
		`UPDATE properties
		 SET landlord_id = $2, name = $3, location = $4, address = $5, description = $6, updated_at = $7
		 WHERE id = $1`,
		p.ID, p.LandlordID, p.Name, p.Location, p.Address, p.Description, p.UpdatedAt,
	)
}

func (r *PostgresPropertiesRepo) DeleteProperty(ctx context.Context, id int64) error {
	return execOne(ctx, r.db, "delete property", `DELETE FROM properties WHERE id = $1`, id)
}
