package usecase

import (
	"context"
	"errors"
	"log"
	"sync"
	"time"

	"dealersync-backend/internal/inventory/domain"
	"dealersync-backend/internal/inventory/repository"
)

// ErrSyncInProgress is returned when a sync trigger arrives while another
// run holds the browser session. Only one session may log into the DMS
// account at a time.
var ErrSyncInProgress = errors.New("sync already in progress")

// VehicleSource produces the current inventory; the browser scraper
// implements it, tests substitute fakes.
type VehicleSource interface {
	Run(ctx context.Context) ([]*domain.Vehicle, error)
}

// InventoryUsecase is the business-logic boundary for the inventory store
type InventoryUsecase interface {
	Search(q string, limit int) ([]*domain.Vehicle, error)
	Stats() (*domain.InventoryStats, error)
	GetByStockNumber(stockNumber string) (*domain.Vehicle, error)
	Sync(ctx context.Context) (*domain.SyncOutcome, error)
	RecentSyncs(limit int) ([]*domain.SyncRun, error)
}

type inventoryUsecase struct {
	vehicles repository.VehicleRepository
	syncRuns repository.SyncRunRepository
	source   VehicleSource
	syncMu   sync.Mutex
}

// NewInventoryUsecase creates a new InventoryUsecase
func NewInventoryUsecase(vehicles repository.VehicleRepository, syncRuns repository.SyncRunRepository, source VehicleSource) InventoryUsecase {
	return &inventoryUsecase{
		vehicles: vehicles,
		syncRuns: syncRuns,
		source:   source,
	}
}

func (u *inventoryUsecase) Search(q string, limit int) ([]*domain.Vehicle, error) {
	if limit <= 0 || limit > 200 {
		limit = 50
	}
	return u.vehicles.Search(q, limit)
}

func (u *inventoryUsecase) Stats() (*domain.InventoryStats, error) {
	return u.vehicles.Stats()
}

func (u *inventoryUsecase) GetByStockNumber(stockNumber string) (*domain.Vehicle, error) {
	return u.vehicles.FindByStockNumber(stockNumber)
}

func (u *inventoryUsecase) RecentSyncs(limit int) ([]*domain.SyncRun, error) {
	if limit <= 0 {
		limit = 20
	}
	if limit > 100 {
		limit = 100
	}
	return u.syncRuns.ListRecent(limit)
}

// Sync runs the scrape job and reconciles its records into the store.
// Per-record failures are counted, never fatal: later rows are independent
// of earlier ones, so the job completes partially rather than aborting.
func (u *inventoryUsecase) Sync(ctx context.Context) (*domain.SyncOutcome, error) {
	if !u.syncMu.TryLock() {
		return nil, ErrSyncInProgress
	}
	defer u.syncMu.Unlock()

	started := time.Now()
	outcome := &domain.SyncOutcome{}

	vehicles, err := u.source.Run(ctx)
	switch {
	case err != nil:
		outcome.Error = err.Error()
		log.Printf("[SYNC] scrape failed: %v", err)
	case len(vehicles) == 0:
		// Grid located but nothing extractable: structural drift, not a crash
		outcome.Error = "table found but zero extractable rows"
		log.Printf("[SYNC] %s", outcome.Error)
	default:
		outcome.VehiclesFound = len(vehicles)
		for _, v := range vehicles {
			created, err := u.vehicles.Upsert(v)
			if err != nil {
				outcome.Errors++
				log.Printf("[SYNC] upsert failed for stock %s: %v", v.StockNumber, err)
				continue
			}
			if created {
				outcome.Inserted++
			} else {
				outcome.Updated++
			}
		}
		outcome.Success = true
		log.Printf("[SYNC] reconciled %d vehicles: %d inserted, %d updated, %d errors",
			outcome.VehiclesFound, outcome.Inserted, outcome.Updated, outcome.Errors)
	}

	u.recordRun(started, outcome)
	return outcome, nil
}

// recordRun persists the run for the history endpoint; best-effort, a
// history write failure never fails the sync response.
func (u *inventoryUsecase) recordRun(started time.Time, outcome *domain.SyncOutcome) {
	if u.syncRuns == nil {
		return
	}
	finished := time.Now()
	run := &domain.SyncRun{
		StartedAt:     started,
		FinishedAt:    &finished,
		Success:       outcome.Success,
		VehiclesFound: outcome.VehiclesFound,
		Inserted:      outcome.Inserted,
		Updated:       outcome.Updated,
		Errors:        outcome.Errors,
		Error:         outcome.Error,
	}
	if err := u.syncRuns.Record(run); err != nil {
		log.Printf("[WARN] failed to record sync run: %v", err)
	}
}
