package repository

import (
	"dealersync-backend/internal/inventory/domain"
)

// VehicleRepository is the persistence boundary for dealership inventory
type VehicleRepository interface {
	// Upsert inserts the vehicle or, when the stock number already exists,
	// overwrites every scraper-owned column (last-write-wins). Returns
	// whether the call created a new row.
	Upsert(vehicle *domain.Vehicle) (created bool, err error)
	FindByStockNumber(stockNumber string) (*domain.Vehicle, error)
	// Search matches q case-insensitively against stock number, VIN, make,
	// model, trim and the year rendered as text.
	Search(q string, limit int) ([]*domain.Vehicle, error)
	Stats() (*domain.InventoryStats, error)
}

// SyncRunRepository records sync invocations for the history endpoint
type SyncRunRepository interface {
	Record(run *domain.SyncRun) error
	ListRecent(limit int) ([]*domain.SyncRun, error)
}
