package inventory

import (
	"github.com/google/uuid"
	"github.com/minh261002/Shopee.vn-sub000/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// Aggregate type constants
const (
	AggregateTypeLocation      = "InventoryLocation"
	AggregateTypeInventoryItem = "InventoryItem"
)

// Event type constants
const (
	EventTypeLocationCreated        = "LocationCreated"
	EventTypeLocationDeactivated    = "LocationDeactivated"
	EventTypeLocationActivated      = "LocationActivated"
	EventTypeDefaultLocationChanged = "DefaultLocationChanged"
	EventTypeStockMovementRecorded  = "StockMovementRecorded"
	EventTypeStockReserved          = "StockReserved"
	EventTypeReservationReleased    = "ReservationReleased"
	EventTypeReservationCommitted   = "ReservationCommitted"
	EventTypeStockStatusChanged     = "StockStatusChanged"
)

// LocationCreatedEvent is raised when a location is registered
type LocationCreatedEvent struct {
	shared.BaseDomainEvent
	LocationID uuid.UUID `json:"location_id"`
	Code       string    `json:"code"`
	Name       string    `json:"name"`
}

// NewLocationCreatedEvent creates a new LocationCreatedEvent
func NewLocationCreatedEvent(l *Location) *LocationCreatedEvent {
	return &LocationCreatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeLocationCreated, AggregateTypeLocation, l.ID, l.StoreID),
		LocationID:      l.ID,
		Code:            l.Code,
		Name:            l.Name,
	}
}

// LocationDeactivatedEvent is raised when a location is soft-disabled
type LocationDeactivatedEvent struct {
	shared.BaseDomainEvent
	LocationID uuid.UUID `json:"location_id"`
	Code       string    `json:"code"`
}

// NewLocationDeactivatedEvent creates a new LocationDeactivatedEvent
func NewLocationDeactivatedEvent(l *Location) *LocationDeactivatedEvent {
	return &LocationDeactivatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeLocationDeactivated, AggregateTypeLocation, l.ID, l.StoreID),
		LocationID:      l.ID,
		Code:            l.Code,
	}
}

// LocationActivatedEvent is raised when a location is re-enabled
type LocationActivatedEvent struct {
	shared.BaseDomainEvent
	LocationID uuid.UUID `json:"location_id"`
	Code       string    `json:"code"`
}

// NewLocationActivatedEvent creates a new LocationActivatedEvent
func NewLocationActivatedEvent(l *Location) *LocationActivatedEvent {
	return &LocationActivatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeLocationActivated, AggregateTypeLocation, l.ID, l.StoreID),
		LocationID:      l.ID,
		Code:            l.Code,
	}
}

// DefaultLocationChangedEvent is raised when a store gets a new default location
type DefaultLocationChangedEvent struct {
	shared.BaseDomainEvent
	LocationID uuid.UUID `json:"location_id"`
}

// NewDefaultLocationChangedEvent creates a new DefaultLocationChangedEvent
func NewDefaultLocationChangedEvent(l *Location) *DefaultLocationChangedEvent {
	return &DefaultLocationChangedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeDefaultLocationChanged, AggregateTypeLocation, l.ID, l.StoreID),
		LocationID:      l.ID,
	}
}

// StockMovementRecordedEvent is raised for every ledger row appended
type StockMovementRecordedEvent struct {
	shared.BaseDomainEvent
	MovementID    uuid.UUID        `json:"movement_id"`
	CorrelationID uuid.UUID        `json:"correlation_id"`
	LocationID    uuid.UUID        `json:"location_id"`
	RefKind       RefKind          `json:"ref_kind"`
	RefID         uuid.UUID        `json:"ref_id"`
	MovementType  MovementType     `json:"movement_type"`
	TransferLeg   TransferLeg      `json:"transfer_leg,omitempty"`
	Effect        int64            `json:"effect"`
	QuantityAfter int64            `json:"quantity_after"`
	UnitCost      *decimal.Decimal `json:"unit_cost,omitempty"`
	OrderID       *uuid.UUID       `json:"order_id,omitempty"`
}

// NewStockMovementRecordedEvent creates a new StockMovementRecordedEvent
func NewStockMovementRecordedEvent(item *InventoryItem, m *StockMovement) *StockMovementRecordedEvent {
	return &StockMovementRecordedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeStockMovementRecorded, AggregateTypeInventoryItem, item.ID, m.StoreID),
		MovementID:      m.ID,
		CorrelationID:   m.CorrelationID,
		LocationID:      m.LocationID,
		RefKind:         m.Ref.Kind,
		RefID:           m.Ref.ID,
		MovementType:    m.Type,
		TransferLeg:     m.TransferLeg,
		Effect:          m.Effect,
		QuantityAfter:   m.QuantityAfter,
		UnitCost:        m.UnitCost,
		OrderID:         m.OrderID,
	}
}

// reservationEvent carries the fields shared by all reservation events
type reservationEvent struct {
	shared.BaseDomainEvent
	InventoryItemID uuid.UUID `json:"inventory_item_id"`
	LocationID      uuid.UUID `json:"location_id"`
	RefKind         RefKind   `json:"ref_kind"`
	RefID           uuid.UUID `json:"ref_id"`
	Quantity        int64     `json:"quantity"`
	ReservedQty     int64     `json:"reserved_qty"`
	AvailableQty    int64     `json:"available_qty"`
}

func newReservationEvent(eventType string, item *InventoryItem, qty int64) reservationEvent {
	return reservationEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(eventType, AggregateTypeInventoryItem, item.ID, item.StoreID),
		InventoryItemID: item.ID,
		LocationID:      item.LocationID,
		RefKind:         item.Ref.Kind,
		RefID:           item.Ref.ID,
		Quantity:        qty,
		ReservedQty:     item.ReservedQty,
		AvailableQty:    item.AvailableQty(),
	}
}

// StockReservedEvent is raised when units are put on hold
type StockReservedEvent struct {
	reservationEvent
}

// NewStockReservedEvent creates a new StockReservedEvent
func NewStockReservedEvent(item *InventoryItem, qty int64) *StockReservedEvent {
	return &StockReservedEvent{newReservationEvent(EventTypeStockReserved, item, qty)}
}

// ReservationReleasedEvent is raised when a hold is cancelled
type ReservationReleasedEvent struct {
	reservationEvent
}

// NewReservationReleasedEvent creates a new ReservationReleasedEvent
func NewReservationReleasedEvent(item *InventoryItem, qty int64) *ReservationReleasedEvent {
	return &ReservationReleasedEvent{newReservationEvent(EventTypeReservationReleased, item, qty)}
}

// ReservationCommittedEvent is raised when held units ship
type ReservationCommittedEvent struct {
	reservationEvent
}

// NewReservationCommittedEvent creates a new ReservationCommittedEvent
func NewReservationCommittedEvent(item *InventoryItem, qty int64) *ReservationCommittedEvent {
	return &ReservationCommittedEvent{newReservationEvent(EventTypeReservationCommitted, item, qty)}
}

// StockStatusChangedEvent is raised when an item moves between
// IN_STOCK, LOW_STOCK and OUT_OF_STOCK.
type StockStatusChangedEvent struct {
	shared.BaseDomainEvent
	InventoryItemID uuid.UUID   `json:"inventory_item_id"`
	LocationID      uuid.UUID   `json:"location_id"`
	RefKind         RefKind     `json:"ref_kind"`
	RefID           uuid.UUID   `json:"ref_id"`
	From            StockStatus `json:"from"`
	To              StockStatus `json:"to"`
	AvailableQty    int64       `json:"available_qty"`
	ReorderPoint    int64       `json:"reorder_point"`
}

// NewStockStatusChangedEvent creates a new StockStatusChangedEvent
func NewStockStatusChangedEvent(item *InventoryItem, from, to StockStatus) *StockStatusChangedEvent {
	return &StockStatusChangedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeStockStatusChanged, AggregateTypeInventoryItem, item.ID, item.StoreID),
		InventoryItemID: item.ID,
		LocationID:      item.LocationID,
		RefKind:         item.Ref.Kind,
		RefID:           item.Ref.ID,
		From:            from,
		To:              to,
		AvailableQty:    item.AvailableQty(),
		ReorderPoint:    item.ReorderPoint,
	}
}

// NeedsAttention returns true when the item entered a low or empty state
func (e *StockStatusChangedEvent) NeedsAttention() bool {
	return e.To == StockStatusLowStock || e.To == StockStatusOutOfStock
}
