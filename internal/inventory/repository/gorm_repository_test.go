package repository

import (
	"testing"

	"dealersync-backend/internal/inventory/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&domain.Vehicle{}, &domain.SyncRun{}))
	return db
}

func intPtr(v int) *int { return &v }

func testVehicle(stock string) *domain.Vehicle {
	return &domain.Vehicle{
		StockNumber: stock,
		VIN:         "HTKJPVM4RH178232",
		Year:        intPtr(2024),
		Make:        "Chevrolet",
		Model:       "Silverado MD",
		Trim:        "Work Truck",
		Status:      domain.StatusAvailable,
	}
}

func TestUpsertIdempotent(t *testing.T) {
	repo := NewGormVehicleRepository(newTestDB(t))

	created, err := repo.Upsert(testVehicle("M37385"))
	require.NoError(t, err)
	assert.True(t, created)

	// Identical record again: update, not a second row
	created, err = repo.Upsert(testVehicle("M37385"))
	require.NoError(t, err)
	assert.False(t, created)

	stored, err := repo.FindByStockNumber("M37385")
	require.NoError(t, err)
	require.NotNil(t, stored)
	assert.Equal(t, "Chevrolet", stored.Make)
	assert.Equal(t, "Silverado MD", stored.Model)
	require.NotNil(t, stored.Year)
	assert.Equal(t, 2024, *stored.Year)
	assert.NotNil(t, stored.LastScrapedAt)
}

func TestUpsertLastWriteWins(t *testing.T) {
	repo := NewGormVehicleRepository(newTestDB(t))

	_, err := repo.Upsert(testVehicle("M37385"))
	require.NoError(t, err)

	revised := testVehicle("M37385")
	revised.Model = "Silverado 1500"
	revised.Trim = "LTZ"
	revised.Year = intPtr(2025)
	revised.Status = domain.StatusSold

	created, err := repo.Upsert(revised)
	require.NoError(t, err)
	assert.False(t, created)

	stored, err := repo.FindByStockNumber("M37385")
	require.NoError(t, err)
	require.NotNil(t, stored)
	assert.Equal(t, "Silverado 1500", stored.Model)
	assert.Equal(t, "LTZ", stored.Trim)
	require.NotNil(t, stored.Year)
	assert.Equal(t, 2025, *stored.Year)
	assert.EqualValues(t, domain.StatusSold, stored.Status)
}

func TestUpsertDistinctKeysDistinctRows(t *testing.T) {
	repo := NewGormVehicleRepository(newTestDB(t))

	// 5 records over 3 distinct stock numbers
	for _, stock := range []string{"A1", "A2", "A3", "A1", "A2"} {
		_, err := repo.Upsert(testVehicle(stock))
		require.NoError(t, err)
	}

	stats, err := repo.Stats()
	require.NoError(t, err)
	assert.EqualValues(t, 3, stats.TotalVehicles)
}

func TestFindByStockNumberMissing(t *testing.T) {
	repo := NewGormVehicleRepository(newTestDB(t))

	stored, err := repo.FindByStockNumber("NOPE")
	require.NoError(t, err)
	assert.Nil(t, stored)
}

func TestSearch(t *testing.T) {
	repo := NewGormVehicleRepository(newTestDB(t))

	silverado := testVehicle("M37385")
	_, err := repo.Upsert(silverado)
	require.NoError(t, err)

	tahoe := testVehicle("M40001")
	tahoe.VIN = "1GNSKCKC8LR123456"
	tahoe.Model = "Tahoe"
	tahoe.Trim = "LT"
	_, err = repo.Upsert(tahoe)
	require.NoError(t, err)

	t.Run("case insensitive model match", func(t *testing.T) {
		results, err := repo.Search("silv", 50)
		require.NoError(t, err)
		require.Len(t, results, 1)
		assert.Equal(t, "M37385", results[0].StockNumber)
	})

	t.Run("year as text", func(t *testing.T) {
		results, err := repo.Search("2024", 50)
		require.NoError(t, err)
		assert.Len(t, results, 2)
	})

	t.Run("stock number match", func(t *testing.T) {
		results, err := repo.Search("m400", 50)
		require.NoError(t, err)
		require.Len(t, results, 1)
		assert.Equal(t, "Tahoe", results[0].Model)
	})

	t.Run("no match", func(t *testing.T) {
		results, err := repo.Search("corvette", 50)
		require.NoError(t, err)
		assert.Empty(t, results)
	})
}

func TestStats(t *testing.T) {
	repo := NewGormVehicleRepository(newTestDB(t))

	_, err := repo.Upsert(testVehicle("A1"))
	require.NoError(t, err)

	sold := testVehicle("A2")
	sold.Status = domain.StatusSold
	_, err = repo.Upsert(sold)
	require.NoError(t, err)

	stats, err := repo.Stats()
	require.NoError(t, err)
	assert.EqualValues(t, 2, stats.TotalVehicles)
	assert.EqualValues(t, 1, stats.Available)
	assert.EqualValues(t, 1, stats.Sold)
	assert.NotNil(t, stats.LastUpdated)
}

func TestSyncRunRepository(t *testing.T) {
	db := newTestDB(t)
	repo := NewGormSyncRunRepository(db)

	require.NoError(t, repo.Record(&domain.SyncRun{Success: true, VehiclesFound: 12, Inserted: 3, Updated: 9}))
	require.NoError(t, repo.Record(&domain.SyncRun{Success: false, Error: "inventory table not found after 15 attempts"}))

	runs, err := repo.ListRecent(10)
	require.NoError(t, err)
	require.Len(t, runs, 2)
	assert.NotEmpty(t, runs[0].ID)
}
