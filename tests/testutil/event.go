package testutil

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/minh261002/Shopee.vn-sub000/internal/domain/shared"
)

// eventLog is a goroutine-safe list of events with an injectable failure.
type eventLog struct {
	mu     sync.Mutex
	events []shared.DomainEvent
	err    error
}

func (l *eventLog) record(events ...shared.DomainEvent) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.events = append(l.events, events...)
	return l.err
}

func (l *eventLog) snapshot() []shared.DomainEvent {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]shared.DomainEvent(nil), l.events...)
}

// SetError makes every later call fail with err; nil restores success.
func (l *eventLog) SetError(err error) {
	l.mu.Lock()
	l.err = err
	l.mu.Unlock()
}

// Reset forgets what was recorded
func (l *eventLog) Reset() {
	l.mu.Lock()
	l.events = nil
	l.mu.Unlock()
}

// MockEventHandler records what the bus delivers to it
type MockEventHandler struct {
	eventLog
	eventTypes []string
}

func NewMockEventHandler(eventTypes ...string) *MockEventHandler {
	return &MockEventHandler{eventTypes: eventTypes}
}

func (h *MockEventHandler) EventTypes() []string { return h.eventTypes }

func (h *MockEventHandler) Handle(_ context.Context, event shared.DomainEvent) error {
	return h.record(event)
}

func (h *MockEventHandler) Handled() []shared.DomainEvent { return h.snapshot() }

func (h *MockEventHandler) HandledCount() int { return len(h.snapshot()) }

// RecordingPublisher stands in for the event bus in service tests
type RecordingPublisher struct {
	eventLog
}

func NewRecordingPublisher() *RecordingPublisher {
	return &RecordingPublisher{}
}

func (p *RecordingPublisher) Publish(_ context.Context, events ...shared.DomainEvent) error {
	return p.record(events...)
}

func (p *RecordingPublisher) Events() []shared.DomainEvent { return p.snapshot() }

// OfType filters the recorded events by EventType
func (p *RecordingPublisher) OfType(eventType string) []shared.DomainEvent {
	var out []shared.DomainEvent
	for _, e := range p.snapshot() {
		if e.EventType() == eventType {
			out = append(out, e)
		}
	}
	return out
}

// TestEvent carries only the base fields and a marker payload
type TestEvent struct {
	shared.BaseDomainEvent
	Data string
}

func NewTestEvent(eventType string, storeID uuid.UUID) *TestEvent {
	return NewTestEventWithID(uuid.New(), eventType, storeID)
}

// NewTestEventWithID fixes the event id, for redelivery tests.
func NewTestEventWithID(eventID uuid.UUID, eventType string, storeID uuid.UUID) *TestEvent {
	base := shared.NewBaseDomainEvent(eventType, "TestAggregate", uuid.New(), storeID)
	base.ID = eventID
	return &TestEvent{BaseDomainEvent: base, Data: "test-data"}
}

// WaitForEventCount polls until handler has seen count events or the
// timeout passes.
func WaitForEventCount(handler *MockEventHandler, count int, timeout time.Duration) bool {
	for deadline := time.Now().Add(timeout); time.Now().Before(deadline); time.Sleep(10 * time.Millisecond) {
		if handler.HandledCount() >= count {
			return true
		}
	}
	return handler.HandledCount() >= count
}
