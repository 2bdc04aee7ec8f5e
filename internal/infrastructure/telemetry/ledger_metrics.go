package telemetry

import (
	"context"
	"errors"
	"fmt"

	"github.com/minh261002/Shopee.vn-sub000/internal/domain/inventory"
	"github.com/minh261002/Shopee.vn-sub000/internal/domain/shared"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// LedgerMeterName names the meter for ledger business metrics
const LedgerMeterName = "inventory-ledger/ledger"

// Metric attribute keys
var (
	AttrMovementType = attribute.Key("movement_type")
	AttrTransferLeg  = attribute.Key("transfer_leg")
	AttrDirection    = attribute.Key("direction")
	AttrOutcome      = attribute.Key("outcome")
	AttrFromStatus   = attribute.Key("from_status")
	AttrToStatus     = attribute.Key("to_status")
	AttrStatus       = attribute.Key("status")
)

// Reservation outcomes reported on inventory.reservations
const (
	OutcomeReserved  = "reserved"
	OutcomeReleased  = "released"
	OutcomeCommitted = "committed"
)

// LedgerMetrics derives business metrics from committed ledger events. It
// is subscribed to the event bus like any other handler.
type LedgerMetrics struct {
	meter             metric.Meter
	movements         *Counter
	unitsMoved        *Counter
	movementQuantity  *Histogram
	reservations      *Counter
	reservedUnits     *Counter
	statusTransitions *Counter
	txRetries         *Counter
}

// NewLedgerMetrics registers the ledger instruments on mp's meter.
func NewLedgerMetrics(mp *MeterProvider) (*LedgerMetrics, error) {
	meter := mp.Meter(LedgerMeterName)
	var errs []error
	counter := func(name, desc, unit string) *Counter {
		c, err := NewCounter(meter, name, desc, unit)
		errs = append(errs, err)
		return c
	}

	m := &LedgerMetrics{
		meter:             meter,
		movements:         counter("inventory.movements", "Ledger rows appended", "{movement}"),
		unitsMoved:        counter("inventory.units_moved", "Units moved by ledger rows", "{unit}"),
		reservations:      counter("inventory.reservations", "Reservation operations", "{operation}"),
		reservedUnits:     counter("inventory.reservation_units", "Units reserved, released or committed", "{unit}"),
		statusTransitions: counter("inventory.stock_status_transitions", "Stock status changes", "{transition}"),
		txRetries:         counter("inventory.tx_retries", "Ledger transactions re-run after a conflict", "{retry}"),
	}
	h, err := NewHistogram(meter, HistogramOpts{
		Name:        "inventory.movement_quantity",
		Description: "Absolute quantity per ledger row",
		Unit:        "{unit}",
		Buckets:     []float64{1, 5, 10, 50, 100, 500, 1000, 5000},
	})
	errs = append(errs, err)
	m.movementQuantity = h

	if err := errors.Join(errs...); err != nil {
		return nil, fmt.Errorf("failed to create ledger metrics: %w", err)
	}
	return m, nil
}

// TxRetries counts conflict retries of ledger transactions
func (m *LedgerMetrics) TxRetries() *Counter {
	return m.txRetries
}

// StockLevelFunc reports how many items are low and out of stock right now
type StockLevelFunc func(ctx context.Context) (low, out int64, err error)

// ObserveStockLevels registers the inventory.items_by_status gauge. fn is
// called on every collection.
func (m *LedgerMetrics) ObserveStockLevels(fn StockLevelFunc) error {
	gauge, err := m.meter.Int64ObservableGauge("inventory.items_by_status",
		metric.WithDescription("Inventory items currently low or out of stock"),
		metric.WithUnit("{item}"),
	)
	if err != nil {
		return fmt.Errorf("failed to create stock level gauge: %w", err)
	}
	lowStock := metric.WithAttributes(AttrStatus.String(string(inventory.StockStatusLowStock)))
	outOfStock := metric.WithAttributes(AttrStatus.String(string(inventory.StockStatusOutOfStock)))

	_, err = m.meter.RegisterCallback(func(ctx context.Context, o metric.Observer) error {
		low, out, err := fn(ctx)
		if err != nil {
			return err
		}
		o.ObserveInt64(gauge, low, lowStock)
		o.ObserveInt64(gauge, out, outOfStock)
		return nil
	}, gauge)
	if err != nil {
		return fmt.Errorf("failed to register stock level callback: %w", err)
	}
	return nil
}

// EventTypes implements shared.EventHandler
func (m *LedgerMetrics) EventTypes() []string {
	return []string{
		inventory.EventTypeStockMovementRecorded,
		inventory.EventTypeStockReserved,
		inventory.EventTypeReservationReleased,
		inventory.EventTypeReservationCommitted,
		inventory.EventTypeStockStatusChanged,
	}
}

// Handle implements shared.EventHandler
func (m *LedgerMetrics) Handle(ctx context.Context, event shared.DomainEvent) error {
	switch e := event.(type) {
	case *inventory.StockMovementRecordedEvent:
		m.recordMovement(ctx, e)
	case *inventory.StockReservedEvent:
		m.recordReservation(ctx, OutcomeReserved, e.Quantity)
	case *inventory.ReservationReleasedEvent:
		m.recordReservation(ctx, OutcomeReleased, e.Quantity)
	case *inventory.ReservationCommittedEvent:
		m.recordReservation(ctx, OutcomeCommitted, e.Quantity)
	case *inventory.StockStatusChangedEvent:
		m.statusTransitions.Inc(ctx,
			AttrFromStatus.String(string(e.From)),
			AttrToStatus.String(string(e.To)),
		)
	}
	return nil
}

func (m *LedgerMetrics) recordMovement(ctx context.Context, e *inventory.StockMovementRecordedEvent) {
	direction, units := "in", e.Effect
	if units < 0 {
		direction, units = "out", -units
	}
	attrs := []attribute.KeyValue{AttrMovementType.String(string(e.MovementType))}
	if e.TransferLeg != "" {
		attrs = append(attrs, AttrTransferLeg.String(string(e.TransferLeg)))
	}

	m.movements.Inc(ctx, attrs...)
	m.unitsMoved.Add(ctx, units, append(attrs, AttrDirection.String(direction))...)
	m.movementQuantity.Record(ctx, float64(units), attrs...)
}

func (m *LedgerMetrics) recordReservation(ctx context.Context, outcome string, qty int64) {
	m.reservations.Inc(ctx, AttrOutcome.String(outcome))
	m.reservedUnits.Add(ctx, qty, AttrOutcome.String(outcome))
}
