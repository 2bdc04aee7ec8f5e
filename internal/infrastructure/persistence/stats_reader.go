package persistence

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	appinv "github.com/minh261002/Shopee.vn-sub000/internal/application/inventory"
	"github.com/shopspring/decimal"
)

// storeStatsQuery computes every store figure in one round trip. It takes no
// row locks, so it reads a snapshot that may trail in-flight movements.
const storeStatsQuery = `
SELECT
	(SELECT COUNT(*) FROM inventory_locations
		WHERE store_id = ?) AS total_locations,
	(SELECT COUNT(*) FROM (SELECT DISTINCT ref_kind, ref_id FROM inventory_items
		WHERE store_id = ?) refs) AS total_products,
	(SELECT COALESCE(SUM(quantity * avg_cost_price), 0) FROM inventory_items
		WHERE store_id = ?) AS total_value,
	(SELECT COUNT(*) FROM inventory_items
		WHERE store_id = ? AND (quantity - reserved_qty) > 0 AND (quantity - reserved_qty) <= reorder_point) AS low_stock_items,
	(SELECT COUNT(*) FROM inventory_items
		WHERE store_id = ? AND (quantity - reserved_qty) <= 0) AS out_of_stock_items,
	(SELECT COUNT(*) FROM stock_movements
		WHERE store_id = ? AND created_at >= ?) AS recent_movements`

type storeStatsRow struct {
	TotalLocations  int64           `db:"total_locations"`
	TotalProducts   int64           `db:"total_products"`
	TotalValue      decimal.Decimal `db:"total_value"`
	LowStockItems   int64           `db:"low_stock_items"`
	OutOfStockItems int64           `db:"out_of_stock_items"`
	RecentMovements int64           `db:"recent_movements"`
}

// SQLXStatsReader implements StatsReader with plain SQL over sqlx
type SQLXStatsReader struct {
	db *sqlx.DB
}

// NewSQLXStatsReader creates a new SQLXStatsReader
func NewSQLXStatsReader(db *sqlx.DB) *SQLXStatsReader {
	return &SQLXStatsReader{db: db}
}

// StoreStats returns totals, valuation and stock status counts for a store
func (r *SQLXStatsReader) StoreStats(ctx context.Context, storeID uuid.UUID, recentSince time.Time) (*appinv.StoreStats, error) {
	var row storeStatsRow
	err := r.db.GetContext(ctx, &row, r.db.Rebind(storeStatsQuery),
		storeID,
		storeID,
		storeID,
		storeID,
		storeID,
		storeID, recentSince.UTC(),
	)
	if err != nil {
		return nil, err
	}
	return &appinv.StoreStats{
		TotalLocations:  row.TotalLocations,
		TotalProducts:   row.TotalProducts,
		TotalValue:      row.TotalValue.Round(4),
		LowStockItems:   row.LowStockItems,
		OutOfStockItems: row.OutOfStockItems,
		RecentMovements: row.RecentMovements,
	}, nil
}

// stockLevelsQuery counts low and out of stock items across all stores
const stockLevelsQuery = `
SELECT
	COUNT(CASE WHEN (quantity - reserved_qty) > 0 AND (quantity - reserved_qty) <= reorder_point THEN 1 END) AS low_stock_items,
	COUNT(CASE WHEN (quantity - reserved_qty) <= 0 THEN 1 END) AS out_of_stock_items
FROM inventory_items`

// StockLevels feeds the low-stock gauge
func (r *SQLXStatsReader) StockLevels(ctx context.Context) (low, out int64, err error) {
	var row struct {
		Low int64 `db:"low_stock_items"`
		Out int64 `db:"out_of_stock_items"`
	}
	if err := r.db.GetContext(ctx, &row, stockLevelsQuery); err != nil {
		return 0, 0, err
	}
	return row.Low, row.Out, nil
}

// Ensure SQLXStatsReader implements StatsReader
var _ appinv.StatsReader = (*SQLXStatsReader)(nil)
