package testutil

import (
	"testing"

	"github.com/minh261002/Shopee.vn-sub000/internal/infrastructure/persistence/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewMockDB(t *testing.T) {
	mockDB := NewMockDB(t)

	assert.NotNil(t, mockDB.DB)
	mockDB.ExpectationsWereMet(t)
}

func TestNewSQLiteDB(t *testing.T) {
	db := NewSQLiteDB(t)

	for _, table := range []string{"inventory_locations", "inventory_items", "stock_movements"} {
		assert.True(t, db.Migrator().HasTable(table), table)
	}

	// Each call gets its own database
	loc := models.LocationModel{StoreID: TestStoreID(), Name: "Main", Code: "MAIN", IsActive: true}
	loc.ID = NewTestUUID("loc")
	require.NoError(t, db.Create(&loc).Error)
	other := NewSQLiteDB(t)
	var count int64
	require.NoError(t, other.Table("inventory_locations").Count(&count).Error)
	assert.Zero(t, count)
}

func TestNewTestUUID(t *testing.T) {
	assert.Equal(t, NewTestUUID("a"), NewTestUUID("a"))
	assert.NotEqual(t, NewTestUUID("a"), NewTestUUID("b"))
	assert.NotEqual(t, TestStoreID(), TestActorID())
}
