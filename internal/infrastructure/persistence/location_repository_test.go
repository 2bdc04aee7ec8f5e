package persistence

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/minh261002/Shopee.vn-sub000/internal/domain/inventory"
	"github.com/minh261002/Shopee.vn-sub000/internal/domain/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGormLocationRepository_CreateAndFind(t *testing.T) {
	ctx := context.Background()
	repo := NewGormLocationRepository(newTestDB(t))
	storeID := uuid.New()

	loc := newTestLocation(t, storeID, "Main Warehouse", "wh-1")
	loc.Coordinates = &inventory.Coordinates{Latitude: 10.5, Longitude: 106.7}
	require.NoError(t, repo.Create(ctx, loc))

	found, err := repo.FindByID(ctx, loc.ID)
	require.NoError(t, err)
	assert.Equal(t, "WH-1", found.Code)
	assert.Equal(t, "Main Warehouse", found.Name)
	assert.Equal(t, storeID, found.StoreID)
	assert.True(t, found.IsActive)
	assert.False(t, found.IsDefault)
	assert.Equal(t, 1, found.Version)
	require.NotNil(t, found.Coordinates)
	assert.InDelta(t, 10.5, found.Coordinates.Latitude, 1e-9)

	exists, err := repo.ExistsByCode(ctx, storeID, "WH-1")
	require.NoError(t, err)
	assert.True(t, exists)

	exists, err = repo.ExistsByCode(ctx, uuid.New(), "WH-1")
	require.NoError(t, err)
	assert.False(t, exists)

	_, err = repo.FindByID(ctx, uuid.New())
	assert.ErrorIs(t, err, shared.ErrNotFound)
}

func TestGormLocationRepository_DuplicateCodeIsConflict(t *testing.T) {
	ctx := context.Background()
	repo := NewGormLocationRepository(newTestDB(t))
	storeID := uuid.New()

	require.NoError(t, repo.Create(ctx, newTestLocation(t, storeID, "A", "WH")))

	err := repo.Create(ctx, newTestLocation(t, storeID, "B", "wh"))
	require.Error(t, err)
	assert.ErrorIs(t, err, shared.ErrConcurrencyConflict)

	// Same code in another store is fine
	require.NoError(t, repo.Create(ctx, newTestLocation(t, uuid.New(), "C", "WH")))
}

func TestGormLocationRepository_FindByStoreOrdering(t *testing.T) {
	ctx := context.Background()
	repo := NewGormLocationRepository(newTestDB(t))
	storeID := uuid.New()

	charlie := newTestLocation(t, storeID, "Charlie", "C")
	alpha := newTestLocation(t, storeID, "Alpha", "A")
	bravo := newTestLocation(t, storeID, "Bravo", "B")
	for _, l := range []*inventory.Location{charlie, alpha, bravo} {
		require.NoError(t, repo.Create(ctx, l))
	}

	require.NoError(t, charlie.MarkDefault())
	require.NoError(t, repo.Save(ctx, charlie))

	bravo.Deactivate()
	require.NoError(t, repo.Save(ctx, bravo))

	all, err := repo.FindByStore(ctx, storeID, false, shared.Filter{})
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, []string{"Charlie", "Alpha", "Bravo"}, []string{all[0].Name, all[1].Name, all[2].Name})

	active, err := repo.FindByStore(ctx, storeID, true, shared.Filter{})
	require.NoError(t, err)
	require.Len(t, active, 2)

	count, err := repo.CountByStore(ctx, storeID, true)
	require.NoError(t, err)
	assert.Equal(t, int64(2), count)

	page, err := repo.FindByStore(ctx, storeID, false, shared.Filter{Page: 2, PageSize: 2})
	require.NoError(t, err)
	require.Len(t, page, 1)
	assert.Equal(t, "Bravo", page[0].Name)
}

func TestGormLocationRepository_Default(t *testing.T) {
	ctx := context.Background()
	repo := NewGormLocationRepository(newTestDB(t))
	storeID := uuid.New()

	first := newTestLocation(t, storeID, "First", "F1")
	second := newTestLocation(t, storeID, "Second", "F2")
	require.NoError(t, repo.Create(ctx, first))
	require.NoError(t, repo.Create(ctx, second))

	_, err := repo.FindDefault(ctx, storeID)
	assert.ErrorIs(t, err, shared.ErrNotFound)

	require.NoError(t, first.MarkDefault())
	require.NoError(t, repo.Save(ctx, first))

	t.Run("second default without clearing violates the index", func(t *testing.T) {
		stale, err := repo.FindByID(ctx, second.ID)
		require.NoError(t, err)
		require.NoError(t, stale.MarkDefault())

		err = repo.Save(ctx, stale)
		assert.ErrorIs(t, err, shared.ErrConcurrencyConflict)
	})

	t.Run("clear then set moves the default", func(t *testing.T) {
		require.NoError(t, repo.ClearDefault(ctx, storeID))

		cleared, err := repo.FindByID(ctx, first.ID)
		require.NoError(t, err)
		assert.False(t, cleared.IsDefault)
		assert.Equal(t, first.Version+1, cleared.Version)

		next, err := repo.FindByID(ctx, second.ID)
		require.NoError(t, err)
		require.NoError(t, next.MarkDefault())
		require.NoError(t, repo.Save(ctx, next))

		def, err := repo.FindDefault(ctx, storeID)
		require.NoError(t, err)
		assert.Equal(t, second.ID, def.ID)
	})

	t.Run("stale copy of a cleared location fails to save", func(t *testing.T) {
		first.Name = "Renamed"
		err := repo.Save(ctx, first)
		assert.ErrorIs(t, err, shared.ErrConcurrencyConflict)
	})
}

func TestGormLocationRepository_SaveVersionCheck(t *testing.T) {
	ctx := context.Background()
	repo := NewGormLocationRepository(newTestDB(t))
	loc := newTestLocation(t, uuid.New(), "Shop", "S1")
	require.NoError(t, repo.Create(ctx, loc))

	copyA, err := repo.FindByID(ctx, loc.ID)
	require.NoError(t, err)
	copyB, err := repo.FindByID(ctx, loc.ID)
	require.NoError(t, err)

	require.NoError(t, copyA.Update("Shop A", "", nil))
	require.NoError(t, repo.Save(ctx, copyA))
	assert.Equal(t, 2, copyA.Version)

	require.NoError(t, copyB.Update("Shop B", "", nil))
	assert.ErrorIs(t, repo.Save(ctx, copyB), shared.ErrConcurrencyConflict)

	stored, err := repo.FindByID(ctx, loc.ID)
	require.NoError(t, err)
	assert.Equal(t, "Shop A", stored.Name)
}

func TestGormLocationRepository_FindByIDsAndDelete(t *testing.T) {
	ctx := context.Background()
	repo := NewGormLocationRepository(newTestDB(t))
	storeID := uuid.New()

	a := newTestLocation(t, storeID, "A", "A")
	b := newTestLocation(t, storeID, "B", "B")
	require.NoError(t, repo.Create(ctx, a))
	require.NoError(t, repo.Create(ctx, b))

	found, err := repo.FindByIDs(ctx, []uuid.UUID{a.ID, b.ID, uuid.New()})
	require.NoError(t, err)
	assert.Len(t, found, 2)

	empty, err := repo.FindByIDs(ctx, nil)
	require.NoError(t, err)
	assert.Empty(t, empty)

	require.NoError(t, repo.Delete(ctx, a.ID))
	_, err = repo.FindByID(ctx, a.ID)
	assert.ErrorIs(t, err, shared.ErrNotFound)
	assert.ErrorIs(t, repo.Delete(ctx, a.ID), shared.ErrNotFound)
}
