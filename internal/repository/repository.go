package repository

import (
	"database/sql"
	"errors"
)

var (
	// ErrNotFound is returned by every repository when the requested row does not exist.
	ErrNotFound = errors.New("record not found")
	// ErrNotPending is returned by SettlePayment when the payment has already settled.
	ErrNotPending = errors.New("payment is not pending")
	// ErrDuplicate is returned when a unique key is already taken.
	ErrDuplicate = errors.New("record already exists")
)

// Store bundles the per-aggregate repositories behind one injectable value.
type Store struct {
	Landlords     LandlordsRepository
	Properties    PropertiesRepository
	Units         UnitsRepository
	Tenants       TenantsRepository
	Payments      PaymentsRepository
	Maintenance   MaintenanceRepository
	Notifications NotificationsRepository
	Receipts      ReceiptsRepository
}

// NewMemoryStore returns an empty in-process store.
func NewMemoryStore() *Store {
	return &Store{
		Landlords:     NewMemoryLandlordsRepo(),
		Properties:    NewMemoryPropertiesRepo(),
		Units:         NewMemoryUnitsRepo(),
		Tenants:       NewMemoryTenantsRepo(),
		Payments:      NewMemoryPaymentsRepo(),
		Maintenance:   NewMemoryMaintenanceRepo(),
		Notifications: NewMemoryNotificationsRepo(),
		Receipts:      NewMemoryReceiptsRepo(),
	}
}

// NewPostgresStore returns a store backed by db. Call Migrate first on a fresh database.
func NewPostgresStore(db *sql.DB) *Store {
	return &Store{
		Landlords:     NewPostgresLandlordsRepo(db),
		Properties:    NewPostgresPropertiesRepo(db),
		Units:         NewPostgresUnitsRepo(db),
		Tenants:       NewPostgresTenantsRepo(db),
		Payments:      NewPostgresPaymentsRepo(db),
		Maintenance:   NewPostgresMaintenanceRepo(db),
		Notifications: NewPostgresNotificationsRepo(db),
		Receipts:      NewPostgresReceiptsRepo(db),
	}
}
