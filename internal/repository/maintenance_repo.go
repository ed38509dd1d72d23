package repository

import (
	"context"

	"digiplot/internal/domain"
)

// MaintenanceRepository stores maintenance requests.
type MaintenanceRepository interface {
	ListMaintenanceByTenant(ctx context.Context, tenantID int64) ([]*domain.MaintenanceRequest, error)
	ListMaintenanceByUnits(ctx context.Context, unitIDs []int64) ([]*domain.MaintenanceRequest, error)
	GetMaintenanceRequest(ctx context.Context, id int64) (*domain.MaintenanceRequest, error)
	CreateMaintenanceRequest(ctx context.Context, req *domain.MaintenanceRequest) (int64, error)
	UpdateMaintenanceRequest(ctx context.Context, req *domain.MaintenanceRequest) error
}
