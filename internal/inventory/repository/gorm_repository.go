package repository

import (
	"database/sql"
	"errors"
	"strings"
	"time"

	"dealersync-backend/internal/inventory/domain"

	"gorm.io/gorm"
)

// gormVehicleRepository implements VehicleRepository using GORM
type gormVehicleRepository struct {
	db *gorm.DB
}

// NewGormVehicleRepository creates a new GORM-based VehicleRepository
func NewGormVehicleRepository(db *gorm.DB) VehicleRepository {
	return &gormVehicleRepository{db: db}
}

// mutable columns owned by the scraper; everything else (enrichment columns,
// created_at) survives an upsert untouched
func scrapeUpdates(v *domain.Vehicle, now time.Time) map[string]interface{} {
	return map[string]interface{}{
		"vin":             v.VIN,
		"year":            v.Year,
		"make":            v.Make,
		"model":           v.Model,
		"trim":            v.Trim,
		"status":          v.Status,
		"last_scraped_at": now,
		"updated_at":      now,
	}
}

func (r *gormVehicleRepository) Upsert(v *domain.Vehicle) (bool, error) {
	now := time.Now()
	created := false

	err := r.db.Transaction(func(tx *gorm.DB) error {
		var existing domain.Vehicle
		err := tx.Where("stock_number = ?", v.StockNumber).First(&existing).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			v.LastScrapedAt = &now
			if v.Status == "" {
				v.Status = domain.StatusAvailable
			}
			if err := tx.Create(v).Error; err != nil {
				return err
			}
			created = true
			return nil
		}
		if err != nil {
			return err
		}

		return tx.Model(&domain.Vehicle{}).
			Where("stock_number = ?", v.StockNumber).
			Updates(scrapeUpdates(v, now)).Error
	})

	return created, err
}

func (r *gormVehicleRepository) FindByStockNumber(stockNumber string) (*domain.Vehicle, error) {
	var vehicle domain.Vehicle
	err := r.db.Where("stock_number = ?", stockNumber).First(&vehicle).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &vehicle, nil
}

func (r *gormVehicleRepository) Search(q string, limit int) ([]*domain.Vehicle, error) {
	pattern := "%" + strings.ToLower(q) + "%"

	var vehicles []*domain.Vehicle
	// "trim" needs quoting or it parses as the SQL function
	err := r.db.
		Where(`lower(stock_number) LIKE ? OR lower(vin) LIKE ? OR lower(make) LIKE ? OR lower(model) LIKE ? OR lower("trim") LIKE ? OR CAST(year AS TEXT) LIKE ?`,
			pattern, pattern, pattern, pattern, pattern, pattern).
		Order("stock_number ASC").
		Limit(limit).
		Find(&vehicles).Error
	return vehicles, err
}

func (r *gormVehicleRepository) Stats() (*domain.InventoryStats, error) {
	stats := &domain.InventoryStats{}

	if err := r.db.Model(&domain.Vehicle{}).Count(&stats.TotalVehicles).Error; err != nil {
		return nil, err
	}
	if err := r.db.Model(&domain.Vehicle{}).Where("status = ?", domain.StatusAvailable).Count(&stats.Available).Error; err != nil {
		return nil, err
	}
	if err := r.db.Model(&domain.Vehicle{}).Where("status = ?", domain.StatusSold).Count(&stats.Sold).Error; err != nil {
		return nil, err
	}

	var lastUpdated sql.NullTime
	err := r.db.Model(&domain.Vehicle{}).
		Select("MAX(last_scraped_at)").
		Row().Scan(&lastUpdated)
	if err == nil && lastUpdated.Valid {
		stats.LastUpdated = &lastUpdated.Time
	}

	return stats, nil
}
