package models

import (
	"github.com/google/uuid"
	"github.com/minh261002/Shopee.vn-sub000/internal/domain/inventory"
	"github.com/shopspring/decimal"
)

// InventoryItemModel is the persistence model for the InventoryItem aggregate root.
// The product reference is stored as (ref_kind, ref_id).
type InventoryItemModel struct {
	StoreAggregateModel
	LocationID    uuid.UUID       `gorm:"type:uuid;not null;uniqueIndex:idx_inventory_items_key,priority:1"`
	RefKind       string          `gorm:"type:varchar(10);not null;uniqueIndex:idx_inventory_items_key,priority:2"`
	RefID         uuid.UUID       `gorm:"type:uuid;not null;uniqueIndex:idx_inventory_items_key,priority:3;index"`
	Quantity      int64           `gorm:"not null;default:0"`
	ReservedQty   int64           `gorm:"not null;default:0"`
	MinStockLevel int64           `gorm:"not null;default:0"`
	MaxStockLevel *int64
	ReorderPoint  int64           `gorm:"not null;default:0"`
	AvgCostPrice  decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	LastCostPrice decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
}

// TableName returns the table name for GORM
func (InventoryItemModel) TableName() string {
	return "inventory_items"
}

// ToDomain converts the persistence model to a domain InventoryItem
func (m *InventoryItemModel) ToDomain() *inventory.InventoryItem {
	return &inventory.InventoryItem{
		StoreAggregateRoot: m.ToDomainStoreAggregateRoot(),
		LocationID:         m.LocationID,
		Ref:                inventory.ProductRef{Kind: inventory.RefKind(m.RefKind), ID: m.RefID},
		Quantity:           m.Quantity,
		ReservedQty:        m.ReservedQty,
		MinStockLevel:      m.MinStockLevel,
		MaxStockLevel:      m.MaxStockLevel,
		ReorderPoint:       m.ReorderPoint,
		AvgCostPrice:       m.AvgCostPrice,
		LastCostPrice:      m.LastCostPrice,
	}
}

// FromDomain populates the persistence model from a domain InventoryItem
func (m *InventoryItemModel) FromDomain(i *inventory.InventoryItem) {
	m.FromDomainStoreAggregateRoot(i.StoreAggregateRoot)
	m.LocationID = i.LocationID
	m.RefKind = string(i.Ref.Kind)
	m.RefID = i.Ref.ID
	m.Quantity = i.Quantity
	m.ReservedQty = i.ReservedQty
	m.MinStockLevel = i.MinStockLevel
	m.MaxStockLevel = i.MaxStockLevel
	m.ReorderPoint = i.ReorderPoint
	m.AvgCostPrice = i.AvgCostPrice
	m.LastCostPrice = i.LastCostPrice
}

// InventoryItemModelFromDomain creates a new persistence model from a domain InventoryItem
func InventoryItemModelFromDomain(i *inventory.InventoryItem) *InventoryItemModel {
	m := &InventoryItemModel{}
	m.FromDomain(i)
	return m
}
