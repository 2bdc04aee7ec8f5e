package inventory_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	appinv "github.com/minh261002/Shopee.vn-sub000/internal/application/inventory"
	"github.com/minh261002/Shopee.vn-sub000/internal/domain/inventory"
	"github.com/minh261002/Shopee.vn-sub000/internal/infrastructure/persistence"
	"github.com/minh261002/Shopee.vn-sub000/tests/testutil"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// harness wires every inventory service to one SQLite database
type harness struct {
	t            *testing.T
	ctx          context.Context
	db           *gorm.DB
	storeID      uuid.UUID
	events       *testutil.RecordingPublisher
	locations    *appinv.LocationService
	items        *appinv.ItemStore
	ledger       *appinv.LedgerService
	reservations *appinv.ReservationService
	stats        *appinv.StatsService
}

func newHarness(t *testing.T) *harness {
	t.Helper()

	db := testutil.NewSQLiteDB(t)
	scope := persistence.NewGormTransactionScope(db,
		persistence.WithRetryPolicy(persistence.RetryPolicy{MaxRetries: 3, Backoff: time.Millisecond}))
	locationRepo := persistence.NewGormLocationRepository(db)
	itemRepo := persistence.NewGormInventoryItemRepository(db)
	movementRepo := persistence.NewGormStockMovementRepository(db)

	sqlDB, err := db.DB()
	require.NoError(t, err)

	logger := zap.NewNop()
	events := testutil.NewRecordingPublisher()
	items := appinv.NewItemStore(locationRepo, itemRepo, scope, logger)
	ledger := appinv.NewLedgerService(items, itemRepo, movementRepo, scope, logger)

	h := &harness{
		t:            t,
		ctx:          context.Background(),
		db:           db,
		storeID:      uuid.New(),
		events:       events,
		locations:    appinv.NewLocationService(locationRepo, scope, logger),
		items:        items,
		ledger:       ledger,
		reservations: appinv.NewReservationService(items, ledger, scope, logger),
		stats:        appinv.NewStatsService(persistence.NewSQLXStatsReader(sqlx.NewDb(sqlDB, "sqlite3")), 0),
	}
	h.locations.SetEventPublisher(events)
	h.items.SetEventPublisher(events)
	h.ledger.SetEventPublisher(events)
	h.reservations.SetEventPublisher(events)
	return h
}

func (h *harness) createLocation(code string, isDefault bool) *appinv.LocationResponse {
	h.t.Helper()
	loc, err := h.locations.Create(h.ctx, appinv.CreateLocationRequest{
		StoreID:   h.storeID,
		Name:      "Location " + code,
		Code:      code,
		IsDefault: isDefault,
	})
	require.NoError(h.t, err)
	return loc
}

func (h *harness) receive(locationID uuid.UUID, ref inventory.ProductRef, qty int64, unitCost string) []appinv.MovementResponse {
	h.t.Helper()
	req := appinv.RecordMovementRequest{
		LocationID: locationID,
		Ref:        ref,
		Type:       inventory.MovementTypeIn,
		Quantity:   qty,
	}
	if unitCost != "" {
		cost := decimal.RequireFromString(unitCost)
		req.UnitCost = &cost
	}
	rows, err := h.ledger.RecordMovement(h.ctx, req)
	require.NoError(h.t, err)
	return rows
}

func (h *harness) item(locationID uuid.UUID, ref inventory.ProductRef) *appinv.ItemResponse {
	h.t.Helper()
	item, err := h.items.GetByKey(h.ctx, locationID, ref)
	require.NoError(h.t, err)
	return item
}

// requireItemInvariants checks 0 <= reserved <= quantity and available = quantity - reserved
func requireItemInvariants(t *testing.T, item *appinv.ItemResponse) {
	t.Helper()
	require.GreaterOrEqual(t, item.Quantity, int64(0))
	require.GreaterOrEqual(t, item.ReservedQty, int64(0))
	require.LessOrEqual(t, item.ReservedQty, item.Quantity)
	require.Equal(t, item.Quantity-item.ReservedQty, item.AvailableQty)
}
