package repository

import (
	"context"

	"digiplot/internal/domain"
)

// TenantsRepository stores tenants, active and former alike.
type TenantsRepository interface {
	ListTenants(ctx context.Context) ([]*domain.Tenant, error)
	ListTenantsByUnits(ctx context.Context, unitIDs []int64) ([]*domain.Tenant, error)
	GetTenant(ctx context.Context, id int64) (*domain.Tenant, error)
	GetTenantByEmail(ctx context.Context, email string) (*domain.Tenant, error)
	CreateTenant(ctx context.Context, tenant *domain.Tenant) (int64, error)
	UpdateTenant(ctx context.Context, tenant *domain.Tenant) error
	DeleteTenant(ctx context.Context, id int64) error
}
