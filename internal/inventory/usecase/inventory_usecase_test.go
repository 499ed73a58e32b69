package usecase

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"dealersync-backend/internal/inventory/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeVehicleRepo keys rows by stock number and can fail specific stocks
type fakeVehicleRepo struct {
	rows     map[string]*domain.Vehicle
	failFor  map[string]bool
	upserted int
}

func newFakeVehicleRepo() *fakeVehicleRepo {
	return &fakeVehicleRepo{rows: map[string]*domain.Vehicle{}, failFor: map[string]bool{}}
}

func (f *fakeVehicleRepo) Upsert(v *domain.Vehicle) (bool, error) {
	f.upserted++
	if f.failFor[v.StockNumber] {
		return false, fmt.Errorf("constraint violation")
	}
	_, existed := f.rows[v.StockNumber]
	f.rows[v.StockNumber] = v
	return !existed, nil
}

func (f *fakeVehicleRepo) FindByStockNumber(stockNumber string) (*domain.Vehicle, error) {
	return f.rows[stockNumber], nil
}

func (f *fakeVehicleRepo) Search(q string, limit int) ([]*domain.Vehicle, error) {
	return nil, nil
}

func (f *fakeVehicleRepo) Stats() (*domain.InventoryStats, error) {
	return &domain.InventoryStats{TotalVehicles: int64(len(f.rows))}, nil
}

type fakeSyncRunRepo struct {
	recorded []*domain.SyncRun
}

func (f *fakeSyncRunRepo) Record(run *domain.SyncRun) error {
	f.recorded = append(f.recorded, run)
	return nil
}

func (f *fakeSyncRunRepo) ListRecent(limit int) ([]*domain.SyncRun, error) {
	return f.recorded, nil
}

type fakeSource struct {
	vehicles []*domain.Vehicle
	err      error
	block    chan struct{} // when set, Run waits until closed
	started  chan struct{} // when set, closed once Run begins
	once     sync.Once
}

func (f *fakeSource) Run(ctx context.Context) ([]*domain.Vehicle, error) {
	if f.started != nil {
		f.once.Do(func() { close(f.started) })
	}
	if f.block != nil {
		<-f.block
	}
	return f.vehicles, f.err
}

func vehicles(stocks ...string) []*domain.Vehicle {
	out := make([]*domain.Vehicle, 0, len(stocks))
	for _, s := range stocks {
		out = append(out, &domain.Vehicle{StockNumber: s, Status: domain.StatusAvailable})
	}
	return out
}

func TestSyncCounters(t *testing.T) {
	repo := newFakeVehicleRepo()
	repo.rows["A1"] = &domain.Vehicle{StockNumber: "A1"}
	runs := &fakeSyncRunRepo{}

	uc := NewInventoryUsecase(repo, runs, &fakeSource{vehicles: vehicles("A1", "A2", "A3")})

	outcome, err := uc.Sync(context.Background())
	require.NoError(t, err)
	assert.True(t, outcome.Success)
	assert.Equal(t, 3, outcome.VehiclesFound)
	assert.Equal(t, 2, outcome.Inserted)
	assert.Equal(t, 1, outcome.Updated)
	assert.Equal(t, 0, outcome.Errors)
	require.Len(t, runs.recorded, 1)
	assert.True(t, runs.recorded[0].Success)
}

func TestSyncPerRecordFailuresDoNotAbort(t *testing.T) {
	repo := newFakeVehicleRepo()
	repo.failFor["A2"] = true

	uc := NewInventoryUsecase(repo, &fakeSyncRunRepo{}, &fakeSource{vehicles: vehicles("A1", "A2", "A3")})

	outcome, err := uc.Sync(context.Background())
	require.NoError(t, err)
	assert.True(t, outcome.Success)
	assert.Equal(t, 2, outcome.Inserted)
	assert.Equal(t, 1, outcome.Errors)
	// Every record was attempted despite the middle failure
	assert.Equal(t, 3, repo.upserted)
}

func TestSyncZeroRows(t *testing.T) {
	uc := NewInventoryUsecase(newFakeVehicleRepo(), &fakeSyncRunRepo{}, &fakeSource{vehicles: nil})

	outcome, err := uc.Sync(context.Background())
	require.NoError(t, err)
	assert.False(t, outcome.Success)
	assert.Equal(t, 0, outcome.VehiclesFound)
	assert.Contains(t, outcome.Error, "zero extractable rows")
}

func TestSyncScrapeFailure(t *testing.T) {
	uc := NewInventoryUsecase(newFakeVehicleRepo(), &fakeSyncRunRepo{}, &fakeSource{err: fmt.Errorf("inventory table not found after 15 attempts")})

	outcome, err := uc.Sync(context.Background())
	require.NoError(t, err)
	assert.False(t, outcome.Success)
	assert.Contains(t, outcome.Error, "inventory table not found")
}

func TestSyncSingleFlight(t *testing.T) {
	block := make(chan struct{})
	started := make(chan struct{})
	source := &fakeSource{vehicles: vehicles("A1"), block: block, started: started}
	uc := NewInventoryUsecase(newFakeVehicleRepo(), &fakeSyncRunRepo{}, source)

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		_, err := uc.Sync(context.Background())
		assert.NoError(t, err)
	}()

	// Second trigger while the first holds the lock
	<-started
	_, err := uc.Sync(context.Background())
	require.ErrorIs(t, err, ErrSyncInProgress)

	close(block)
	wg.Wait()
}
