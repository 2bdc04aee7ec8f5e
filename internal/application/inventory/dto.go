package inventory

import (
	"time"

	"github.com/google/uuid"
	"github.com/minh261002/Shopee.vn-sub000/internal/domain/inventory"
	"github.com/shopspring/decimal"
)

const (
	// DefaultPageSize is used when a list request does not set a limit
	DefaultPageSize = 20
	// MaxPageSize caps list requests
	MaxPageSize = 100
)

func normalizePage(page, pageSize int) (int, int) {
	if page <= 0 {
		page = 1
	}
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}
	if pageSize > MaxPageSize {
		pageSize = MaxPageSize
	}
	return page, pageSize
}

// CreateLocationRequest registers a new location
type CreateLocationRequest struct {
	StoreID   uuid.UUID
	Name      string
	Code      string
	Address   string
	Latitude  *float64
	Longitude *float64
	IsDefault bool
}

// UpdateLocationRequest changes the descriptive attributes of a location
type UpdateLocationRequest struct {
	Name      string
	Address   string
	Latitude  *float64
	Longitude *float64
}

func coordinatesFrom(lat, lng *float64) (*inventory.Coordinates, error) {
	if lat == nil && lng == nil {
		return nil, nil
	}
	if lat == nil || lng == nil {
		return nil, inventory.ErrInvalidLocation.WithMessage("Latitude and longitude must be given together")
	}
	return &inventory.Coordinates{Latitude: *lat, Longitude: *lng}, nil
}

// LocationResponse represents a location in API responses
type LocationResponse struct {
	ID        uuid.UUID `json:"id"`
	StoreID   uuid.UUID `json:"storeId"`
	Name      string    `json:"name"`
	Code      string    `json:"code"`
	Address   string    `json:"address"`
	Latitude  *float64  `json:"latitude,omitempty"`
	Longitude *float64  `json:"longitude,omitempty"`
	IsActive  bool      `json:"isActive"`
	IsDefault bool      `json:"isDefault"`
	Version   int       `json:"version"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// ToLocationResponse converts a domain location
func ToLocationResponse(l *inventory.Location) LocationResponse {
	resp := LocationResponse{
		ID:        l.ID,
		StoreID:   l.StoreID,
		Name:      l.Name,
		Code:      l.Code,
		Address:   l.Address,
		IsActive:  l.IsActive,
		IsDefault: l.IsDefault,
		Version:   l.Version,
		CreatedAt: l.CreatedAt,
		UpdatedAt: l.UpdatedAt,
	}
	if l.Coordinates != nil {
		lat, lng := l.Coordinates.Latitude, l.Coordinates.Longitude
		resp.Latitude = &lat
		resp.Longitude = &lng
	}
	return resp
}

// ItemResponse represents an inventory item in API responses
type ItemResponse struct {
	ID            uuid.UUID             `json:"id"`
	StoreID       uuid.UUID             `json:"storeId"`
	LocationID    uuid.UUID             `json:"locationId"`
	ProductID     *uuid.UUID            `json:"productId,omitempty"`
	VariantID     *uuid.UUID            `json:"variantId,omitempty"`
	Quantity      int64                 `json:"quantity"`
	ReservedQty   int64                 `json:"reservedQty"`
	AvailableQty  int64                 `json:"availableQty"`
	MinStockLevel int64                 `json:"minStockLevel"`
	MaxStockLevel *int64                `json:"maxStockLevel,omitempty"`
	ReorderPoint  int64                 `json:"reorderPoint"`
	AvgCostPrice  decimal.Decimal       `json:"avgCostPrice"`
	LastCostPrice decimal.Decimal       `json:"lastCostPrice"`
	TotalValue    decimal.Decimal       `json:"totalValue"`
	StockStatus   inventory.StockStatus `json:"stockStatus"`
	Version       int                   `json:"version"`
	UpdatedAt     time.Time             `json:"updatedAt"`
}

// ToItemResponse converts a domain inventory item
func ToItemResponse(i *inventory.InventoryItem) ItemResponse {
	return ItemResponse{
		ID:            i.ID,
		StoreID:       i.StoreID,
		LocationID:    i.LocationID,
		ProductID:     i.Ref.ProductID(),
		VariantID:     i.Ref.VariantID(),
		Quantity:      i.Quantity,
		ReservedQty:   i.ReservedQty,
		AvailableQty:  i.AvailableQty(),
		MinStockLevel: i.MinStockLevel,
		MaxStockLevel: i.MaxStockLevel,
		ReorderPoint:  i.ReorderPoint,
		AvgCostPrice:  i.AvgCostPrice,
		LastCostPrice: i.LastCostPrice,
		TotalValue:    i.TotalValue(),
		StockStatus:   i.StockStatus(),
		Version:       i.Version,
		UpdatedAt:     i.UpdatedAt,
	}
}

// ItemListFilter narrows ListItems
type ItemListFilter struct {
	StoreID     *uuid.UUID
	LocationID  *uuid.UUID
	ProductID   *uuid.UUID
	VariantID   *uuid.UUID
	StockStatus string
	Page        int
	PageSize    int
}

// SetThresholdsRequest updates replenishment configuration of an item
type SetThresholdsRequest struct {
	LocationID    uuid.UUID
	Ref           inventory.ProductRef
	MinStockLevel int64
	MaxStockLevel *int64
	ReorderPoint  int64
}

// RecordMovementRequest asks the ledger to record one movement.
// StoreID is optional; when set the location must belong to it.
type RecordMovementRequest struct {
	StoreID              *uuid.UUID
	LocationID           uuid.UUID
	Ref                  inventory.ProductRef
	Type                 inventory.MovementType
	Quantity             int64
	SignedDelta          int64
	UnitCost             *decimal.Decimal
	Reason               string
	ReferenceNumber      string
	TransferToLocationID *uuid.UUID
	OrderID              *uuid.UUID
	CreatedBy            string
}

func (r RecordMovementRequest) toInput() inventory.MovementInput {
	in := inventory.MovementInput{
		LocationID:           r.LocationID,
		Ref:                  r.Ref,
		Type:                 r.Type,
		Quantity:             r.Quantity,
		SignedDelta:          r.SignedDelta,
		UnitCost:             r.UnitCost,
		Reason:               r.Reason,
		ReferenceNumber:      r.ReferenceNumber,
		TransferToLocationID: r.TransferToLocationID,
		OrderID:              r.OrderID,
		CreatedBy:            r.CreatedBy,
	}
	if r.StoreID != nil {
		in.StoreID = *r.StoreID
	}
	return in
}

// MovementResponse represents a ledger row in API responses
type MovementResponse struct {
	ID                     uuid.UUID              `json:"id"`
	StoreID                uuid.UUID              `json:"storeId"`
	LocationID             uuid.UUID              `json:"locationId"`
	ProductID              *uuid.UUID             `json:"productId,omitempty"`
	VariantID              *uuid.UUID             `json:"variantId,omitempty"`
	Type                   inventory.MovementType `json:"type"`
	TransferLeg            inventory.TransferLeg  `json:"transferLeg,omitempty"`
	Quantity               int64                  `json:"quantity"`
	Effect                 int64                  `json:"effect"`
	QuantityBefore         int64                  `json:"quantityBefore"`
	QuantityAfter          int64                  `json:"quantityAfter"`
	UnitCost               *decimal.Decimal       `json:"unitCost,omitempty"`
	TotalCost              *decimal.Decimal       `json:"totalCost,omitempty"`
	OrderID                *uuid.UUID             `json:"orderId,omitempty"`
	TransferFromLocationID *uuid.UUID             `json:"transferFromLocationId,omitempty"`
	TransferToLocationID   *uuid.UUID             `json:"transferToLocationId,omitempty"`
	Reason                 string                 `json:"reason,omitempty"`
	ReferenceNumber        string                 `json:"referenceNumber,omitempty"`
	CorrelationID          uuid.UUID              `json:"correlationId"`
	CreatedBy              string                 `json:"createdBy,omitempty"`
	CreatedAt              time.Time              `json:"createdAt"`
}

// ToMovementResponse converts a ledger row
func ToMovementResponse(m *inventory.StockMovement) MovementResponse {
	return MovementResponse{
		ID:                     m.ID,
		StoreID:                m.StoreID,
		LocationID:             m.LocationID,
		ProductID:              m.Ref.ProductID(),
		VariantID:              m.Ref.VariantID(),
		Type:                   m.Type,
		TransferLeg:            m.TransferLeg,
		Quantity:               m.Quantity,
		Effect:                 m.Effect,
		QuantityBefore:         m.QuantityBefore,
		QuantityAfter:          m.QuantityAfter,
		UnitCost:               m.UnitCost,
		TotalCost:              m.TotalCost,
		OrderID:                m.OrderID,
		TransferFromLocationID: m.TransferFromLocationID,
		TransferToLocationID:   m.TransferToLocationID,
		Reason:                 m.Reason,
		ReferenceNumber:        m.ReferenceNumber,
		CorrelationID:          m.CorrelationID,
		CreatedBy:              m.CreatedBy,
		CreatedAt:              m.CreatedAt,
	}
}

// ToMovementResponses converts ledger rows
func ToMovementResponses(movements []inventory.StockMovement) []MovementResponse {
	out := make([]MovementResponse, len(movements))
	for i := range movements {
		out[i] = ToMovementResponse(&movements[i])
	}
	return out
}

// MovementListFilter narrows ListMovements
type MovementListFilter struct {
	StoreID         *uuid.UUID
	LocationID      *uuid.UUID
	ProductID       *uuid.UUID
	VariantID       *uuid.UUID
	Type            string
	From            *time.Time
	To              *time.Time
	CorrelationID   *uuid.UUID
	OrderID         *uuid.UUID
	ReferenceNumber string
	OrderDir        string
	Page            int
	PageSize        int
}

// ReservationRequest addresses reserve and release.
// StoreID is optional; when set the location must belong to it.
type ReservationRequest struct {
	StoreID    *uuid.UUID
	LocationID uuid.UUID
	Ref        inventory.ProductRef
	Quantity   int64
}

// CommitReservationRequest converts reserved units into an OUT movement
type CommitReservationRequest struct {
	StoreID         *uuid.UUID
	LocationID      uuid.UUID
	Ref             inventory.ProductRef
	Quantity        int64
	OrderID         *uuid.UUID
	Reason          string
	ReferenceNumber string
	CreatedBy       string
}

// CommitReservationResponse carries the updated item and the OUT row
type CommitReservationResponse struct {
	Item     ItemResponse     `json:"item"`
	Movement MovementResponse `json:"movement"`
}

// ReconcileResponse compares an item with a replay of its ledger
type ReconcileResponse struct {
	ItemID             uuid.UUID       `json:"itemId"`
	LocationID         uuid.UUID       `json:"locationId"`
	Quantity           int64           `json:"quantity"`
	LedgerQuantity     int64           `json:"ledgerQuantity"`
	AvgCostPrice       decimal.Decimal `json:"avgCostPrice"`
	LedgerAvgCostPrice decimal.Decimal `json:"ledgerAvgCostPrice"`
	MovementCount      int             `json:"movementCount"`
	Consistent         bool            `json:"consistent"`
}

// StoreStats is the point-in-time summary of a store's inventory
type StoreStats struct {
	TotalLocations  int64           `json:"totalLocations"`
	TotalProducts   int64           `json:"totalProducts"`
	TotalValue      decimal.Decimal `json:"totalValue"`
	LowStockItems   int64           `json:"lowStockItems"`
	OutOfStockItems int64           `json:"outOfStockItems"`
	RecentMovements int64           `json:"recentMovements"`
}
