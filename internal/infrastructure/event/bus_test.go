package event

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/minh261002/Shopee.vn-sub000/internal/domain/shared"
	"github.com/minh261002/Shopee.vn-sub000/tests/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func startedBus(t *testing.T) *InMemoryEventBus {
	t.Helper()
	bus := NewInMemoryEventBus(zap.NewNop())
	require.NoError(t, bus.Start(context.Background()))
	t.Cleanup(func() { _ = bus.Stop(context.Background()) })
	return bus
}

func TestInMemoryEventBus_DeliversByType(t *testing.T) {
	bus := startedBus(t)
	storeID := uuid.New()

	reserved := testutil.NewMockEventHandler("StockReserved")
	everything := testutil.NewMockEventHandler()
	bus.Subscribe(reserved)
	bus.Subscribe(everything)

	err := bus.Publish(context.Background(),
		testutil.NewTestEvent("StockReserved", storeID),
		testutil.NewTestEvent("LocationCreated", storeID),
	)
	require.NoError(t, err)

	assert.Equal(t, 1, reserved.HandledCount())
	assert.Equal(t, 2, everything.HandledCount())
	assert.Equal(t, "StockReserved", everything.Handled()[0].EventType(), "publish order is kept")
}

func TestInMemoryEventBus_ExplicitTypesOverrideHandlerTypes(t *testing.T) {
	bus := startedBus(t)
	handler := testutil.NewMockEventHandler("StockReserved")
	bus.Subscribe(handler, "ReservationReleased")

	require.NoError(t, bus.Publish(context.Background(), testutil.NewTestEvent("StockReserved", uuid.New())))
	require.NoError(t, bus.Publish(context.Background(), testutil.NewTestEvent("ReservationReleased", uuid.New())))
	assert.Equal(t, 1, handler.HandledCount())
	assert.Equal(t, "ReservationReleased", handler.Handled()[0].EventType())
}

func TestInMemoryEventBus_HandlerErrorsAreJoined(t *testing.T) {
	core, logs := observer.New(zapcore.ErrorLevel)
	bus := NewInMemoryEventBus(zap.New(core))
	require.NoError(t, bus.Start(context.Background()))

	boom := errors.New("boom")
	failing := testutil.NewMockEventHandler("StockStatusChanged")
	failing.SetError(boom)
	healthy := testutil.NewMockEventHandler("StockStatusChanged")
	bus.Subscribe(failing)
	bus.Subscribe(healthy)

	err := bus.Publish(context.Background(), testutil.NewTestEvent("StockStatusChanged", uuid.New()))
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, 1, healthy.HandledCount(), "later handlers still run")
	assert.Equal(t, 1, logs.FilterMessage("event handler failed").Len())
}

type panickingHandler struct{}

func (panickingHandler) EventTypes() []string { return []string{"StockReserved"} }

func (panickingHandler) Handle(context.Context, shared.DomainEvent) error {
	panic("handler bug")
}

func TestInMemoryEventBus_RecoversPanics(t *testing.T) {
	bus := startedBus(t)
	after := testutil.NewMockEventHandler("StockReserved")
	bus.Subscribe(&panickingHandler{})
	bus.Subscribe(after)

	err := bus.Publish(context.Background(), testutil.NewTestEvent("StockReserved", uuid.New()))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "handler bug")
	assert.Equal(t, 1, after.HandledCount())
}

func TestInMemoryEventBus_Lifecycle(t *testing.T) {
	bus := NewInMemoryEventBus(nil)
	handler := testutil.NewMockEventHandler()
	bus.Subscribe(handler)

	err := bus.Publish(context.Background(), testutil.NewTestEvent("StockReserved", uuid.New()))
	assert.ErrorIs(t, err, ErrBusStopped)

	require.NoError(t, bus.Start(context.Background()))
	require.NoError(t, bus.Publish(context.Background(), testutil.NewTestEvent("StockReserved", uuid.New())))
	require.NoError(t, bus.Stop(context.Background()))

	err = bus.Publish(context.Background(), testutil.NewTestEvent("StockReserved", uuid.New()))
	assert.ErrorIs(t, err, ErrBusStopped)
	assert.Equal(t, 1, handler.HandledCount())
}

type blockingHandler struct {
	entered chan struct{}
	release chan struct{}
}

func (h *blockingHandler) EventTypes() []string { return nil }

func (h *blockingHandler) Handle(context.Context, shared.DomainEvent) error {
	close(h.entered)
	<-h.release
	return nil
}

func TestInMemoryEventBus_StopWaitsForInflight(t *testing.T) {
	bus := NewInMemoryEventBus(zap.NewNop())
	require.NoError(t, bus.Start(context.Background()))
	handler := &blockingHandler{entered: make(chan struct{}), release: make(chan struct{})}
	bus.Subscribe(handler)

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		_ = bus.Publish(context.Background(), testutil.NewTestEvent("StockReserved", uuid.New()))
	}()
	<-handler.entered

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	assert.ErrorIs(t, bus.Stop(ctx), context.DeadlineExceeded)

	close(handler.release)
	wg.Wait()
	assert.NoError(t, bus.Stop(context.Background()))
}

func TestInMemoryEventBus_Unsubscribe(t *testing.T) {
	bus := startedBus(t)
	handler := testutil.NewMockEventHandler("StockReserved")
	bus.Subscribe(handler)
	bus.Unsubscribe(handler)

	require.NoError(t, bus.Publish(context.Background(), testutil.NewTestEvent("StockReserved", uuid.New())))
	assert.Zero(t, handler.HandledCount())
}
