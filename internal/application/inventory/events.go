package inventory

import (
	"context"

	"github.com/google/uuid"
	"github.com/minh261002/Shopee.vn-sub000/internal/domain/inventory"
	"github.com/minh261002/Shopee.vn-sub000/internal/domain/shared"
	"go.uber.org/zap"
)

// eventBuffer collects domain events raised inside a transaction so they
// can be published once it has committed.
type eventBuffer struct {
	events []shared.DomainEvent
}

func (b *eventBuffer) reset() {
	b.events = b.events[:0]
}

func (b *eventBuffer) add(events ...shared.DomainEvent) {
	b.events = append(b.events, events...)
}

func (b *eventBuffer) collect(aggregates ...shared.AggregateRoot) {
	for _, agg := range aggregates {
		b.events = append(b.events, agg.GetDomainEvents()...)
		agg.ClearDomainEvents()
	}
}

// settle folds the stock status transitions an item went through during
// the transaction into its net transition, placed where the last one was.
// An item that ends where it started reports none.
func (b *eventBuffer) settle() {
	first := make(map[uuid.UUID]inventory.StockStatus)
	last := make(map[uuid.UUID]int)
	for i, e := range b.events {
		if sc, ok := e.(*inventory.StockStatusChangedEvent); ok {
			if _, seen := first[sc.InventoryItemID]; !seen {
				first[sc.InventoryItemID] = sc.From
			}
			last[sc.InventoryItemID] = i
		}
	}
	if len(last) == 0 {
		return
	}

	settled := make([]shared.DomainEvent, 0, len(b.events))
	for i, e := range b.events {
		sc, ok := e.(*inventory.StockStatusChangedEvent)
		if !ok {
			settled = append(settled, e)
			continue
		}
		if last[sc.InventoryItemID] != i {
			continue
		}
		sc.From = first[sc.InventoryItemID]
		if sc.From != sc.To {
			settled = append(settled, sc)
		}
	}
	b.events = settled
}

// publishEvents hands committed events to the bus. Handler failures are
// logged; the state change they describe is already durable.
func publishEvents(ctx context.Context, publisher shared.EventPublisher, logger *zap.Logger, buf *eventBuffer) {
	buf.settle()
	if publisher == nil || len(buf.events) == 0 {
		return
	}
	if err := publisher.Publish(ctx, buf.events...); err != nil {
		logger.Warn("failed to publish inventory events",
			zap.Int("count", len(buf.events)),
			zap.Error(err),
		)
	}
}
