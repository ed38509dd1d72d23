package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"digiplot/internal/domain"

	"github.com/lib/pq"
)

// PostgresMaintenanceRepo implements MaintenanceRepository on maintenance_requests.
// Images live in a TEXT[] column and comments in JSONB.
type PostgresMaintenanceRepo struct {
	db *sql.DB
}

func NewPostgresMaintenanceRepo(db *sql.DB) *PostgresMaintenanceRepo {
	return &PostgresMaintenanceRepo{db: db}
}

var _ MaintenanceRepository = (*PostgresMaintenanceRepo)(nil)

const maintenanceColumns = `id, tenant_id, unit_id, title, description, priority, status, images, comments,
	cost, created_at, updated_at, completed_at`

func scanMaintenance(s rowScanner) (*domain.MaintenanceRequest, error) {
	var m domain.MaintenanceRequest
	var images pq.StringArray
	var comments []byte
	var completedAt sql.NullTime
	err := s.Scan(&m.ID, &m.TenantID, &m.UnitID, &m.Title, &m.Description, &m.Priority, &m.Status,
		&images, &comments, &m.Cost, &m.CreatedAt, &m.UpdatedAt, &completedAt)
	if err != nil {
		return nil, err
	}
	m.Images = []string(images)
	if len(comments) > 0 {
		if err := json.Unmarshal(comments, &m.Comments); err != nil {
			return nil, fmt.Errorf("failed to decode comments: %w", err)
		}
	}
	m.CompletedAt = timePtr(completedAt)
	return &m, nil
}

func encodeComments(comments []domain.MaintenanceComment) ([]byte, error) {
	if comments == nil {
		comments = []domain.MaintenanceComment{}
	}
	return json.Marshal(comments)
}

func (r *PostgresMaintenanceRepo) queryMaintenance(ctx context.Context, query string, args ...any) ([]*domain.MaintenanceRequest, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list maintenance requests: %w", err)
	}
	defer rows.Close()

	out := []*domain.MaintenanceRequest{}
	for rows.Next() {
		m, err := scanMaintenance(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan maintenance request: %w", err)
		}
		out = append(out, m)
	}
	return out, rows.Err()
}

func (r *PostgresMaintenanceRepo) ListMaintenanceByTenant(ctx context.Context, tenantID int64) ([]*domain.MaintenanceRequest, error) {
	return r.queryMaintenance(ctx,
		`SELECT `+maintenanceColumns+` FROM maintenance_requests WHERE tenant_id = $1 ORDER BY id`, tenantID)
}

func (r *PostgresMaintenanceRepo) ListMaintenanceByUnits(ctx context.Context, unitIDs []int64) ([]*domain.MaintenanceRequest, error) {
	return r.queryMaintenance(ctx,
		`SELECT `+maintenanceColumns+` FROM maintenance_requests WHERE unit_id = ANY($1) ORDER BY id`,
		pq.Array(unitIDs))
}

func (r *PostgresMaintenanceRepo) GetMaintenanceRequest(ctx context.Context, id int64) (*domain.MaintenanceRequest, error) {
	m, err := scanMaintenance(r.db.QueryRowContext(ctx,
		`SELECT `+maintenanceColumns+` FROM maintenance_requests WHERE id = $1`, id))
	if err != nil {
		return nil, notFoundOr(err, "get maintenance request")
	}
	return m, nil
}

func (r *PostgresMaintenanceRepo) CreateMaintenanceRequest(ctx context.Context, m *domain.MaintenanceRequest) (int64, error) {
	comments, err := encodeComments(m.Comments)
	if err != nil {
		return 0, fmt.Errorf("failed to encode comments: %w", err)
	}
	err = r.db.QueryRowContext(ctx,
		`INSERT INTO maintenance_requests (tenant_id, unit_id, title, description, priority, status, images,
		                                   comments, cost, created_at, updated_at, completed_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		 RETURNING id`,
		m.TenantID, m.UnitID, m.Title, m.Description, m.Priority, m.Status, pq.Array(m.Images),
		comments, m.Cost, m.CreatedAt, m.UpdatedAt, nullTimeOf(m.CompletedAt),
	).Scan(&m.ID)
	if err != nil {
		return 0, fmt.Errorf("failed to create maintenance request: %w", err)
	}
	return m.ID, nil
}

func (r *PostgresMaintenanceRepo) UpdateMaintenanceRequest(ctx context.Context, m *domain.MaintenanceRequest) error {
	comments, err := encodeComments(m.Comments)
	if err != nil {
		return fmt.Errorf("failed to encode comments: %w", err)
	}
	return execOne(ctx, r.db, "update maintenance request",
		`UPDATE maintenance_requests
		 SET title = $2, description = $3, priority = $4, status = $5, images = $6, comments = $7,
		     cost = $8, updated_at = $9, completed_at = $10
		 WHERE id = $1`,
		m.ID, m.Title, m.Description, m.Priority, m.Status, pq.Array(m.Images), comments,
		m.Cost, m.UpdatedAt, nullTimeOf(m.CompletedAt),
	)
}
