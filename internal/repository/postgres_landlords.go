package repository

import (
	"context"
	"database/sql"
	"fmt"

	"digiplot/internal/domain"
)

// PostgresLandlordsRepo implements LandlordsRepository on the landlords table.
type PostgresLandlordsRepo struct {
	db *sql.DB
}

func NewPostgresLandlordsRepo(db *sql.DB) *PostgresLandlordsRepo {
	return &PostgresLandlordsRepo{db: db}
}

var _ LandlordsRepository = (*PostgresLandlordsRepo)(nil)

const landlordColumns = `id, name, email, phone_number, created_at`

func scanLandlord(s rowScanner) (*domain.Landlord, error) {
	var l domain.Landlord
	if err := s.Scan(&l.ID, &l.Name, &l.Email, &l.PhoneNumber, &l.CreatedAt); err != nil {
		return nil, err
	}
	return &l, nil
}

func (r *PostgresLandlordsRepo) GetLandlord(ctx context.Context, id int64) (*domain.Landlord, error) {
	l, err := scanLandlord(r.db.QueryRowContext(ctx,
		`SELECT `+landlordColumns+` FROM landlords WHERE id = $1`, id))
	if err != nil {
		return nil, notFoundOr(err, "get landlord")
	}
	return l, nil
}

func (r *PostgresLandlordsRepo) GetLandlordByEmail(ctx context.Context, email string) (*domain.Landlord, error) {
	l, err := scanLandlord(r.db.QueryRowContext(ctx,
		`SELECT `+landlordColumns+` FROM landlords WHERE lower(email) = lower($1)`, email))
	if err != nil {
		return nil, notFoundOr(err, "get landlord by email")
	}
	return l, nil
}

func (r *PostgresLandlordsRepo) CreateLandlord(ctx context.Context, landlord *domain.Landlord) (int64, error) {
	err := r.db.QueryRowContext(ctx,
		`INSERT INTO landlords (name, email, phone_number, created_at)
		 VALUES ($1, $2, $3, $4)
		 RETURNING id`,
		landlord.Name, landlord.Email, landlord.PhoneNumber, landlord.CreatedAt,
	).Scan(&landlord.ID)
	if err != nil {
		return 0, fmt.Errorf("failed to create landlord: %w", err)
	}
	return landlord.ID, nil
}

func (r *PostgresLandlordsRepo) UpdateLandlord(ctx context.Context, landlord *domain.Landlord) error {
	return execOne(ctx, r.db, "update landlord",
		`UPDATE landlords SET name = $2, email = $3, phone_number = $4 WHERE id = $1`,
		landlord.ID, landlord.Name, landlord.Email, landlord.PhoneNumber,
	)
}
