package persistence

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/minh261002/Shopee.vn-sub000/internal/domain/inventory"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSQLXStatsReader_StoreStats(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	reader := NewSQLXStatsReader(sqlx.NewDb(sqlDB, "sqlite3"))

	storeID := uuid.New()
	locations := NewGormLocationRepository(db)
	items := NewGormInventoryItemRepository(db)
	movements := NewGormStockMovementRepository(db)

	mainLoc := newTestLocation(t, storeID, "Main", "MAIN")
	annex := newTestLocation(t, storeID, "Annex", "ANNEX")
	closed := newTestLocation(t, storeID, "Closed", "CLOSED")
	for _, l := range []*inventory.Location{mainLoc, annex, closed} {
		require.NoError(t, locations.Create(ctx, l))
	}
	closed.Deactivate()
	require.NoError(t, locations.Save(ctx, closed))

	productA := inventory.ProductOf(uuid.New())
	productB := inventory.VariantOf(uuid.New())

	stock := func(locationID uuid.UUID, ref inventory.ProductRef, qty, reorderPoint int64, avgCost string) {
		item, err := items.GetOrCreate(ctx, storeID, locationID, ref)
		require.NoError(t, err)
		if qty > 0 {
			require.NoError(t, item.ApplyQuantityDelta(qty))
			require.NoError(t, item.ApplyInboundCost(0, qty, decimal.RequireFromString(avgCost)))
		}
		require.NoError(t, item.SetThresholds(0, nil, reorderPoint))
		require.NoError(t, items.SaveWithLock(ctx, item))
	}

	// Product A at two locations counts as one product
	stock(mainLoc.ID, productA, 10, 2, "12.5") // in stock, 125.00
	stock(annex.ID, productA, 3, 5, "10")      // low stock, 30.00
	stock(mainLoc.ID, productB, 0, 1, "0")     // out of stock

	// Items of another store never leak in
	_, err = items.GetOrCreate(ctx, uuid.New(), uuid.New(), productA)
	require.NoError(t, err)

	now := time.Now().UTC()
	recent := movementAt(storeID, mainLoc.ID, productA, inventory.MovementTypeIn, 10, 0, now.Add(-time.Hour))
	old := movementAt(storeID, mainLoc.ID, productA, inventory.MovementTypeIn, 1, 0, now.Add(-30*24*time.Hour))
	require.NoError(t, movements.Create(ctx, recent, old))

	stats, err := reader.StoreStats(ctx, storeID, now.Add(-7*24*time.Hour))
	require.NoError(t, err)

	assert.Equal(t, int64(3), stats.TotalLocations, "inactive locations still count")
	assert.Equal(t, int64(2), stats.TotalProducts)
	assert.True(t, decimal.RequireFromString("155").Equal(stats.TotalValue), stats.TotalValue.String())
	assert.Equal(t, int64(1), stats.LowStockItems)
	assert.Equal(t, int64(1), stats.OutOfStockItems)
	assert.Equal(t, int64(1), stats.RecentMovements)

	// The gauge spans every store: the other store's empty item is out of stock too
	low, out, err := reader.StockLevels(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), low)
	assert.Equal(t, int64(2), out)
}

func TestSQLXStatsReader_EmptyStore(t *testing.T) {
	db := newTestDB(t)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	reader := NewSQLXStatsReader(sqlx.NewDb(sqlDB, "sqlite3"))

	stats, err := reader.StoreStats(context.Background(), uuid.New(), time.Now().Add(-time.Hour))
	require.NoError(t, err)
	assert.Zero(t, stats.TotalLocations)
	assert.Zero(t, stats.TotalProducts)
	assert.True(t, stats.TotalValue.IsZero())
	assert.Zero(t, stats.RecentMovements)
}
