package repository

import (
	"time"

	"dealersync-backend/internal/inventory/domain"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// gormSyncRunRepository implements SyncRunRepository using GORM
type gormSyncRunRepository struct {
	db *gorm.DB
}

// NewGormSyncRunRepository creates a new GORM-based SyncRunRepository
func NewGormSyncRunRepository(db *gorm.DB) SyncRunRepository {
	return &gormSyncRunRepository{db: db}
}

func (r *gormSyncRunRepository) Record(run *domain.SyncRun) error {
	if run.ID == "" {
		run.ID = uuid.New().String()
	}
	run.CreatedAt = time.Now()
	return r.db.Create(run).Error
}

func (r *gormSyncRunRepository) ListRecent(limit int) ([]*domain.SyncRun, error) {
	var runs []*domain.SyncRun
	err := r.db.Order("started_at DESC").Limit(limit).Find(&runs).Error
	return runs, err
}
