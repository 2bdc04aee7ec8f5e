package persistence

import (
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/minh261002/Shopee.vn-sub000/internal/domain/inventory"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// newTestDB opens a private in-memory SQLite database with the ledger schema
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger:                 logger.Default.LogMode(logger.Silent),
		SkipDefaultTransaction: true,
		TranslateError:         true,
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, AutoMigrate(db))
	return db
}

func newTestItem(t *testing.T) *inventory.InventoryItem {
	t.Helper()
	item, err := inventory.NewInventoryItem(uuid.New(), uuid.New(), inventory.ProductOf(uuid.New()))
	require.NoError(t, err)
	return item
}

func newTestLocation(t *testing.T, storeID uuid.UUID, name, code string) *inventory.Location {
	t.Helper()
	loc, err := inventory.NewLocation(storeID, name, code, "", nil)
	require.NoError(t, err)
	return loc
}
