package shared

import (
	"time"

	"github.com/google/uuid"
)

// BaseEntity carries identity and timestamps. Timestamps are UTC.
type BaseEntity struct {
	ID        uuid.UUID
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Touch bumps UpdatedAt.
func (e *BaseEntity) Touch() {
	e.UpdatedAt = time.Now().UTC()
}

// AggregateRoot is what the application layer needs from a mutated
// aggregate once its transaction commits: the events it raised.
type AggregateRoot interface {
	GetDomainEvents() []DomainEvent
	ClearDomainEvents()
}

// BaseAggregateRoot adds the optimistic lock version and the pending
// event buffer. Version starts at 1 and is bumped by the repository on
// every successful versioned update.
type BaseAggregateRoot struct {
	BaseEntity
	Version int
	events  []DomainEvent
}

// IncrementVersion is called after a versioned write succeeds
func (a *BaseAggregateRoot) IncrementVersion() { a.Version++ }

// AddDomainEvent queues event until the aggregate is saved
func (a *BaseAggregateRoot) AddDomainEvent(event DomainEvent) {
	a.events = append(a.events, event)
}

func (a *BaseAggregateRoot) GetDomainEvents() []DomainEvent { return a.events }

func (a *BaseAggregateRoot) ClearDomainEvents() { a.events = nil }

// StoreAggregateRoot is owned by exactly one store. Store-scoped queries
// always filter on StoreID; there is no ambient current store.
type StoreAggregateRoot struct {
	BaseAggregateRoot
	StoreID uuid.UUID
}

// NewStoreAggregateRoot assigns a fresh id at version 1
func NewStoreAggregateRoot(storeID uuid.UUID) StoreAggregateRoot {
	now := time.Now().UTC()
	return StoreAggregateRoot{
		BaseAggregateRoot: BaseAggregateRoot{
			BaseEntity: BaseEntity{ID: uuid.New(), CreatedAt: now, UpdatedAt: now},
			Version:    1,
		},
		StoreID: storeID,
	}
}
