package inventory_test

import (
	"sync"
	"testing"

	"github.com/google/uuid"
	appinv "github.com/minh261002/Shopee.vn-sub000/internal/application/inventory"
	"github.com/minh261002/Shopee.vn-sub000/internal/domain/inventory"
	"github.com/minh261002/Shopee.vn-sub000/internal/domain/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestItemStore_GetOrCreateItem(t *testing.T) {
	h := newHarness(t)
	loc := h.createLocation("MAIN", false)
	ref := inventory.VariantOf(uuid.New())

	first, err := h.items.GetOrCreateItem(h.ctx, loc.ID, ref)
	require.NoError(t, err)
	assert.Zero(t, first.Quantity)
	assert.Zero(t, first.ReservedQty)
	assert.Equal(t, h.storeID, first.StoreID)
	assert.Nil(t, first.ProductID)
	require.NotNil(t, first.VariantID)
	assert.Equal(t, ref.ID, *first.VariantID)
	assert.Equal(t, inventory.StockStatusOutOfStock, first.StockStatus)

	second, err := h.items.GetOrCreateItem(h.ctx, loc.ID, ref)
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)

	t.Run("concurrent callers share one row", func(t *testing.T) {
		concurrentRef := inventory.ProductOf(uuid.New())
		const callers = 8

		var wg sync.WaitGroup
		ids := make([]uuid.UUID, callers)
		errs := make([]error, callers)
		for i := 0; i < callers; i++ {
			wg.Add(1)
			go func(i int) {
				defer wg.Done()
				item, err := h.items.GetOrCreateItem(h.ctx, loc.ID, concurrentRef)
				errs[i] = err
				if err == nil {
					ids[i] = item.ID
				}
			}(i)
		}
		wg.Wait()

		for i := 0; i < callers; i++ {
			require.NoError(t, errs[i])
			assert.Equal(t, ids[0], ids[i])
		}
		page, err := h.items.List(h.ctx, appinv.ItemListFilter{LocationID: &loc.ID, ProductID: &concurrentRef.ID})
		require.NoError(t, err)
		assert.Equal(t, int64(1), page.Total)
	})

	t.Run("invalid ref", func(t *testing.T) {
		_, err := h.items.GetOrCreateItem(h.ctx, loc.ID, inventory.ProductRef{})
		assert.ErrorIs(t, err, inventory.ErrInvalidProductRef)
	})

	t.Run("unknown location", func(t *testing.T) {
		_, err := h.items.GetOrCreateItem(h.ctx, uuid.New(), ref)
		assert.ErrorIs(t, err, shared.ErrNotFound)
	})

	t.Run("lookups", func(t *testing.T) {
		byID, err := h.items.GetByID(h.ctx, first.ID)
		require.NoError(t, err)
		assert.Equal(t, first.ID, byID.ID)

		_, err = h.items.GetByID(h.ctx, uuid.New())
		assert.ErrorIs(t, err, shared.ErrNotFound)

		_, err = h.items.GetByKey(h.ctx, loc.ID, inventory.ProductOf(ref.ID))
		assert.ErrorIs(t, err, shared.ErrNotFound, "a product and a variant with the same id are different keys")
	})
}

func TestItemStore_SetThresholds(t *testing.T) {
	h := newHarness(t)
	loc := h.createLocation("MAIN", false)
	ref := inventory.ProductOf(uuid.New())
	h.receive(loc.ID, ref, 8, "")
	maxLevel := int64(50)

	item, err := h.items.SetThresholds(h.ctx, appinv.SetThresholdsRequest{
		LocationID: loc.ID, Ref: ref, MinStockLevel: 2, MaxStockLevel: &maxLevel, ReorderPoint: 10,
	})
	require.NoError(t, err)
	assert.Equal(t, int64(8), item.Quantity, "thresholds never touch quantities")
	assert.Equal(t, int64(10), item.ReorderPoint)
	require.NotNil(t, item.MaxStockLevel)
	assert.Equal(t, maxLevel, *item.MaxStockLevel)
	assert.Equal(t, inventory.StockStatusLowStock, item.StockStatus)

	changes := h.events.OfType(inventory.EventTypeStockStatusChanged)
	require.NotEmpty(t, changes)
	last := changes[len(changes)-1].(*inventory.StockStatusChangedEvent)
	assert.Equal(t, inventory.StockStatusInStock, last.From)
	assert.Equal(t, inventory.StockStatusLowStock, last.To)

	t.Run("creates the item when missing", func(t *testing.T) {
		fresh := inventory.VariantOf(uuid.New())
		item, err := h.items.SetThresholds(h.ctx, appinv.SetThresholdsRequest{LocationID: loc.ID, Ref: fresh, ReorderPoint: 3})
		require.NoError(t, err)
		assert.Zero(t, item.Quantity)
		assert.Equal(t, int64(3), item.ReorderPoint)
	})

	invalid := []struct {
		name string
		req  appinv.SetThresholdsRequest
	}{
		{"negative minimum", appinv.SetThresholdsRequest{MinStockLevel: -1}},
		{"negative reorder point", appinv.SetThresholdsRequest{ReorderPoint: -1}},
		{"maximum below minimum", appinv.SetThresholdsRequest{MinStockLevel: 60, MaxStockLevel: &maxLevel}},
	}
	for _, tt := range invalid {
		t.Run(tt.name, func(t *testing.T) {
			req := tt.req
			req.LocationID = loc.ID
			req.Ref = ref
			_, err := h.items.SetThresholds(h.ctx, req)
			assert.ErrorIs(t, err, inventory.ErrInvalidThresholds)

			unchanged := h.item(loc.ID, ref)
			assert.Equal(t, int64(10), unchanged.ReorderPoint)
		})
	}
}

func TestItemStore_StockClassification(t *testing.T) {
	h := newHarness(t)
	loc := h.createLocation("MAIN", false)

	tests := []struct {
		name      string
		available int64
		expected  inventory.StockStatus
	}{
		{"at the reorder point", 5, inventory.StockStatusLowStock},
		{"empty", 0, inventory.StockStatusOutOfStock},
		{"above the reorder point", 6, inventory.StockStatusInStock},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ref := inventory.ProductOf(uuid.New())
			_, err := h.items.SetThresholds(h.ctx, appinv.SetThresholdsRequest{LocationID: loc.ID, Ref: ref, ReorderPoint: 5})
			require.NoError(t, err)
			if tt.available > 0 {
				h.receive(loc.ID, ref, tt.available, "")
			}
			assert.Equal(t, tt.expected, h.item(loc.ID, ref).StockStatus)
		})
	}

	t.Run("reservations count against availability", func(t *testing.T) {
		ref := inventory.ProductOf(uuid.New())
		_, err := h.items.SetThresholds(h.ctx, appinv.SetThresholdsRequest{LocationID: loc.ID, Ref: ref, ReorderPoint: 5})
		require.NoError(t, err)
		h.receive(loc.ID, ref, 9, "")
		_, err = h.reservations.Reserve(h.ctx, appinv.ReservationRequest{LocationID: loc.ID, Ref: ref, Quantity: 4})
		require.NoError(t, err)
		assert.Equal(t, inventory.StockStatusLowStock, h.item(loc.ID, ref).StockStatus)
	})

	t.Run("list by status", func(t *testing.T) {
		for status, expected := range map[inventory.StockStatus]int64{
			inventory.StockStatusLowStock:   2,
			inventory.StockStatusOutOfStock: 1,
			inventory.StockStatusInStock:    1,
		} {
			page, err := h.items.List(h.ctx, appinv.ItemListFilter{StoreID: &h.storeID, StockStatus: string(status)})
			require.NoError(t, err)
			assert.Equal(t, expected, page.Total, status)
			for _, item := range page.Items {
				assert.Equal(t, status, item.StockStatus)
			}
		}

		_, err := h.items.List(h.ctx, appinv.ItemListFilter{StockStatus: "FULL"})
		assert.ErrorIs(t, err, shared.ErrInvalidInput)
	})
}

func TestItemStore_ListPagination(t *testing.T) {
	h := newHarness(t)
	loc := h.createLocation("MAIN", false)
	for i := 0; i < 5; i++ {
		_, err := h.items.GetOrCreateItem(h.ctx, loc.ID, inventory.ProductOf(uuid.New()))
		require.NoError(t, err)
	}

	page, err := h.items.List(h.ctx, appinv.ItemListFilter{LocationID: &loc.ID, Page: 2, PageSize: 2})
	require.NoError(t, err)
	assert.Len(t, page.Items, 2)
	assert.Equal(t, int64(5), page.Total)
	assert.Equal(t, 3, page.TotalPages)

	defaults, err := h.items.List(h.ctx, appinv.ItemListFilter{LocationID: &loc.ID, PageSize: 1000})
	require.NoError(t, err)
	assert.Equal(t, appinv.MaxPageSize, defaults.PageSize)
}
