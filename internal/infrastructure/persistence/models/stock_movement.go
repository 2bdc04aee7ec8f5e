package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/minh261002/Shopee.vn-sub000/internal/domain/inventory"
	"github.com/shopspring/decimal"
)

// StockMovementModel is one append-only ledger row. It has no version or
// updated_at: rows are never modified.
type StockMovementModel struct {
	ID                     uuid.UUID           `gorm:"type:uuid;primaryKey"`
	StoreID                uuid.UUID           `gorm:"type:uuid;not null;index:idx_stock_movements_store_created,priority:1"`
	LocationID             uuid.UUID           `gorm:"type:uuid;not null;index:idx_stock_movements_item,priority:1"`
	RefKind                string              `gorm:"type:varchar(10);not null;index:idx_stock_movements_item,priority:2"`
	RefID                  uuid.UUID           `gorm:"type:uuid;not null;index:idx_stock_movements_item,priority:3"`
	Type                   string              `gorm:"type:varchar(20);not null;index"`
	TransferLeg            string              `gorm:"type:varchar(3)"`
	Quantity               int64               `gorm:"not null"`
	Effect                 int64               `gorm:"not null"`
	QuantityBefore         int64               `gorm:"not null"`
	QuantityAfter          int64               `gorm:"not null"`
	UnitCost               decimal.NullDecimal `gorm:"type:decimal(18,4)"`
	TotalCost              decimal.NullDecimal `gorm:"type:decimal(18,4)"`
	OrderID                *uuid.UUID          `gorm:"type:uuid;index"`
	TransferFromLocationID *uuid.UUID          `gorm:"type:uuid"`
	TransferToLocationID   *uuid.UUID          `gorm:"type:uuid;index"`
	Reason                 string              `gorm:"type:varchar(500)"`
	ReferenceNumber        string              `gorm:"type:varchar(100);index"`
	CorrelationID          uuid.UUID           `gorm:"type:uuid;not null;index"`
	CreatedBy              string              `gorm:"type:varchar(100)"`
	CreatedAt              time.Time           `gorm:"not null;index:idx_stock_movements_store_created,priority:2"`
}

// TableName returns the table name for GORM
func (StockMovementModel) TableName() string {
	return "stock_movements"
}

// ToDomain converts the persistence model to a domain StockMovement
func (m *StockMovementModel) ToDomain() *inventory.StockMovement {
	mv := &inventory.StockMovement{
		ID:                     m.ID,
		StoreID:                m.StoreID,
		LocationID:             m.LocationID,
		Ref:                    inventory.ProductRef{Kind: inventory.RefKind(m.RefKind), ID: m.RefID},
		Type:                   inventory.MovementType(m.Type),
		TransferLeg:            inventory.TransferLeg(m.TransferLeg),
		Quantity:               m.Quantity,
		Effect:                 m.Effect,
		QuantityBefore:         m.QuantityBefore,
		QuantityAfter:          m.QuantityAfter,
		OrderID:                m.OrderID,
		TransferFromLocationID: m.TransferFromLocationID,
		TransferToLocationID:   m.TransferToLocationID,
		Reason:                 m.Reason,
		ReferenceNumber:        m.ReferenceNumber,
		CorrelationID:          m.CorrelationID,
		CreatedBy:              m.CreatedBy,
		CreatedAt:              m.CreatedAt,
	}
	if m.UnitCost.Valid {
		v := m.UnitCost.Decimal
		mv.UnitCost = &v
	}
	if m.TotalCost.Valid {
		v := m.TotalCost.Decimal
		mv.TotalCost = &v
	}
	return mv
}

// StockMovementModelFromDomain creates a persistence model from a domain StockMovement
func StockMovementModelFromDomain(mv *inventory.StockMovement) *StockMovementModel {
	m := &StockMovementModel{
		ID:                     mv.ID,
		StoreID:                mv.StoreID,
		LocationID:             mv.LocationID,
		RefKind:                string(mv.Ref.Kind),
		RefID:                  mv.Ref.ID,
		Type:                   string(mv.Type),
		TransferLeg:            string(mv.TransferLeg),
		Quantity:               mv.Quantity,
		Effect:                 mv.Effect,
		QuantityBefore:         mv.QuantityBefore,
		QuantityAfter:          mv.QuantityAfter,
		OrderID:                mv.OrderID,
		TransferFromLocationID: mv.TransferFromLocationID,
		TransferToLocationID:   mv.TransferToLocationID,
		Reason:                 mv.Reason,
		ReferenceNumber:        mv.ReferenceNumber,
		CorrelationID:          mv.CorrelationID,
		CreatedBy:              mv.CreatedBy,
		CreatedAt:              mv.CreatedAt,
	}
	if mv.UnitCost != nil {
		m.UnitCost = decimal.NewNullDecimal(*mv.UnitCost)
	}
	if mv.TotalCost != nil {
		m.TotalCost = decimal.NewNullDecimal(*mv.TotalCost)
	}
	return m
}
