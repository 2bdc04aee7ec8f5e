package inventory_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	appinv "github.com/minh261002/Shopee.vn-sub000/internal/application/inventory"
	"github.com/minh261002/Shopee.vn-sub000/internal/domain/inventory"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockStatsReader struct {
	mock.Mock
}

func (m *mockStatsReader) StoreStats(ctx context.Context, storeID uuid.UUID, recentSince time.Time) (*appinv.StoreStats, error) {
	args := m.Called(ctx, storeID, recentSince)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*appinv.StoreStats), args.Error(1)
}

func TestStatsService_UsesRecentWindow(t *testing.T) {
	storeID := uuid.New()
	reader := new(mockStatsReader)
	expected := &appinv.StoreStats{TotalLocations: 2, TotalValue: decimal.NewFromInt(10)}

	start := time.Now().UTC()
	reader.On("StoreStats", mock.Anything, storeID, mock.MatchedBy(func(since time.Time) bool {
		cutoff := start.Add(-48 * time.Hour)
		return !since.Before(cutoff) && since.Before(cutoff.Add(time.Minute))
	})).Return(expected, nil)

	svc := appinv.NewStatsService(reader, 48*time.Hour)
	stats, err := svc.GetStats(context.Background(), storeID)
	require.NoError(t, err)
	assert.Same(t, expected, stats)
	reader.AssertExpectations(t)
}

func TestStatsService_DefaultWindow(t *testing.T) {
	storeID := uuid.New()
	reader := new(mockStatsReader)
	reader.On("StoreStats", mock.Anything, storeID, mock.MatchedBy(func(since time.Time) bool {
		age := time.Since(since)
		return age >= appinv.DefaultRecentMovementsWindow && age < appinv.DefaultRecentMovementsWindow+time.Minute
	})).Return(&appinv.StoreStats{}, nil)

	_, err := appinv.NewStatsService(reader, 0).GetStats(context.Background(), storeID)
	require.NoError(t, err)
	reader.AssertExpectations(t)
}

func TestStatsService_AgainstLedger(t *testing.T) {
	h := newHarness(t)
	a := h.createLocation("A", true)
	b := h.createLocation("B", false)
	idle := h.createLocation("IDLE", false)
	_, err := h.locations.Deactivate(h.ctx, idle.ID)
	require.NoError(t, err)

	shirt := inventory.ProductOf(uuid.New())
	mug := inventory.VariantOf(uuid.New())
	h.receive(a.ID, shirt, 10, "5")
	h.receive(b.ID, shirt, 2, "5")
	h.receive(a.ID, mug, 1, "40")
	_, err = h.items.SetThresholds(h.ctx, appinv.SetThresholdsRequest{LocationID: b.ID, Ref: shirt, ReorderPoint: 3})
	require.NoError(t, err)
	_, err = h.ledger.RecordMovement(h.ctx, appinv.RecordMovementRequest{
		LocationID: a.ID, Ref: mug, Type: inventory.MovementTypeOut, Quantity: 1,
	})
	require.NoError(t, err)

	stats, err := h.stats.GetStats(h.ctx, h.storeID)
	require.NoError(t, err)
	assert.Equal(t, int64(3), stats.TotalLocations)
	assert.Equal(t, int64(2), stats.TotalProducts)
	assert.True(t, decimal.NewFromInt(60).Equal(stats.TotalValue), "got %s", stats.TotalValue)
	assert.Equal(t, int64(1), stats.LowStockItems)
	assert.Equal(t, int64(1), stats.OutOfStockItems)
	assert.Equal(t, int64(4), stats.RecentMovements)

	other, err := h.stats.GetStats(h.ctx, uuid.New())
	require.NoError(t, err)
	assert.Zero(t, other.TotalLocations)
	assert.True(t, other.TotalValue.IsZero())
}
