package inventory

import (
	"github.com/google/uuid"
	"github.com/minh261002/Shopee.vn-sub000/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// InventoryItem is the current stock of one product or variant at one
// location. It is the aggregate root for every quantity change.
//
// Quantity and ReservedQty are the only stored counters; AvailableQty is
// always derived from them, and 0 <= ReservedQty <= Quantity holds after
// every successful method call.
type InventoryItem struct {
	shared.StoreAggregateRoot
	LocationID    uuid.UUID
	Ref           ProductRef
	Quantity      int64
	ReservedQty   int64
	MinStockLevel int64
	MaxStockLevel *int64
	ReorderPoint  int64
	AvgCostPrice  decimal.Decimal
	LastCostPrice decimal.Decimal
}

// NewInventoryItem creates an empty item for a (location, product ref) pair
func NewInventoryItem(storeID, locationID uuid.UUID, ref ProductRef) (*InventoryItem, error) {
	if locationID == uuid.Nil {
		return nil, ErrInvalidLocation.WithMessage("Location ID cannot be empty")
	}
	if err := ref.Validate(); err != nil {
		return nil, err
	}
	return &InventoryItem{
		StoreAggregateRoot: shared.NewStoreAggregateRoot(storeID),
		LocationID:         locationID,
		Ref:                ref,
		AvgCostPrice:       decimal.Zero,
		LastCostPrice:      decimal.Zero,
	}, nil
}

// AvailableQty is the sellable quantity
func (i *InventoryItem) AvailableQty() int64 {
	return i.Quantity - i.ReservedQty
}

// StockStatus classifies the item against its reorder point
func (i *InventoryItem) StockStatus() StockStatus {
	return ClassifyStock(i.AvailableQty(), i.ReorderPoint)
}

// CostBasis returns the item's current valuation
func (i *InventoryItem) CostBasis() CostBasis {
	return CostBasis{AvgCostPrice: i.AvgCostPrice, LastCostPrice: i.LastCostPrice}
}

// TotalValue is quantity * average cost
func (i *InventoryItem) TotalValue() decimal.Decimal {
	return i.CostBasis().Valuation(i.Quantity)
}

// ApplyQuantityDelta adds delta to the physical quantity. The result may
// not drop below zero nor below what is already reserved.
func (i *InventoryItem) ApplyQuantityDelta(delta int64) error {
	if delta == 0 {
		return ErrInvalidQuantity.WithMessage("Quantity delta cannot be zero")
	}
	next := i.Quantity + delta
	if next < 0 || next < i.ReservedQty {
		return ErrNegativeStock.WithMessage(
			"Quantity %d%+d would fall below reserved quantity %d", i.Quantity, delta, i.ReservedQty)
	}
	before := i.StockStatus()
	i.Quantity = next
	i.Touch()
	i.recordStatusChange(before)
	return nil
}

// ApplyInboundCost updates the cost basis for quantityIn units received
// at unitCost. quantityBefore is the quantity on hand before the receipt.
func (i *InventoryItem) ApplyInboundCost(quantityBefore, quantityIn int64, unitCost decimal.Decimal) error {
	if err := ValidateCost(unitCost); err != nil {
		return err
	}
	next := i.CostBasis().ApplyInbound(quantityBefore, quantityIn, unitCost)
	i.AvgCostPrice = next.AvgCostPrice
	i.LastCostPrice = next.LastCostPrice
	return nil
}

// AdjustReservation adds delta to the reserved quantity, keeping it
// between zero and the physical quantity.
func (i *InventoryItem) AdjustReservation(delta int64) error {
	if delta == 0 {
		return ErrInvalidQuantity.WithMessage("Reservation delta cannot be zero")
	}
	next := i.ReservedQty + delta
	if next < 0 {
		return ErrInsufficientAvailable.WithMessage(
			"Cannot release %d units, only %d reserved", -delta, i.ReservedQty)
	}
	if next > i.Quantity {
		return ErrInsufficientAvailable.WithMessage(
			"Cannot reserve %d units, only %d available", delta, i.AvailableQty())
	}
	before := i.StockStatus()
	i.ReservedQty = next
	i.Touch()
	i.recordStatusChange(before)
	return nil
}

// EnsureAvailable checks that qty units can be put on hold
func (i *InventoryItem) EnsureAvailable(qty int64) error {
	if qty <= 0 {
		return ErrInvalidQuantity
	}
	if i.AvailableQty() < qty {
		return ErrInsufficientStock.WithMessage(
			"Requested %d units, only %d available", qty, i.AvailableQty())
	}
	return nil
}

// SetThresholds replaces the replenishment configuration
func (i *InventoryItem) SetThresholds(minStockLevel int64, maxStockLevel *int64, reorderPoint int64) error {
	if minStockLevel < 0 || reorderPoint < 0 {
		return ErrInvalidThresholds.WithMessage("Minimum stock level and reorder point cannot be negative")
	}
	if maxStockLevel != nil && *maxStockLevel < minStockLevel {
		return ErrInvalidThresholds.WithMessage("Maximum stock level cannot be below the minimum stock level")
	}

	before := i.StockStatus()
	i.MinStockLevel = minStockLevel
	i.MaxStockLevel = maxStockLevel
	i.ReorderPoint = reorderPoint
	i.Touch()
	i.recordStatusChange(before)
	return nil
}

// IsBelowMinimum returns true if the physical quantity is under the minimum level
func (i *InventoryItem) IsBelowMinimum() bool {
	return i.MinStockLevel > 0 && i.Quantity < i.MinStockLevel
}

// IsAboveMaximum returns true if the physical quantity exceeds the maximum level
func (i *InventoryItem) IsAboveMaximum() bool {
	return i.MaxStockLevel != nil && i.Quantity > *i.MaxStockLevel
}

func (i *InventoryItem) recordStatusChange(before StockStatus) {
	if after := i.StockStatus(); after != before {
		i.AddDomainEvent(NewStockStatusChangedEvent(i, before, after))
	}
}
