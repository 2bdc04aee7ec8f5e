package testutil

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMockEventHandler(t *testing.T) {
	handler := NewMockEventHandler("StockReserved")
	assert.Equal(t, []string{"StockReserved"}, handler.EventTypes())

	event := NewTestEvent("StockReserved", TestStoreID())
	require.NoError(t, handler.Handle(context.Background(), event))
	assert.Equal(t, 1, handler.HandledCount())
	assert.Equal(t, event, handler.Handled()[0])

	handler.SetError(assert.AnError)
	assert.ErrorIs(t, handler.Handle(context.Background(), event), assert.AnError)
}

func TestRecordingPublisher(t *testing.T) {
	pub := NewRecordingPublisher()
	storeID := uuid.New()

	require.NoError(t, pub.Publish(context.Background(),
		NewTestEvent("A", storeID),
		NewTestEvent("B", storeID),
		NewTestEvent("A", storeID),
	))
	assert.Len(t, pub.Events(), 3)
	assert.Len(t, pub.OfType("A"), 2)
	assert.Empty(t, pub.OfType("C"))

	pub.SetError(assert.AnError)
	assert.Error(t, pub.Publish(context.Background(), NewTestEvent("C", storeID)))

	pub.Reset()
	assert.Empty(t, pub.Events())
}

func TestNewTestEventWithID(t *testing.T) {
	eventID := uuid.New()
	storeID := uuid.New()
	event := NewTestEventWithID(eventID, "CustomEvent", storeID)

	assert.Equal(t, eventID, event.EventID())
	assert.Equal(t, "CustomEvent", event.EventType())
	assert.Equal(t, storeID, event.StoreID())
	assert.False(t, event.OccurredAt().IsZero())
}

func TestWaitForEventCount(t *testing.T) {
	handler := NewMockEventHandler("TestEvent")

	go func() {
		time.Sleep(20 * time.Millisecond)
		_ = handler.Handle(context.Background(), NewTestEvent("TestEvent", TestStoreID()))
		_ = handler.Handle(context.Background(), NewTestEvent("TestEvent", TestStoreID()))
	}()

	assert.True(t, WaitForEventCount(handler, 2, time.Second))
	assert.False(t, WaitForEventCount(handler, 3, 30*time.Millisecond))
}
