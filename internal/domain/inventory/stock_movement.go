package inventory

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// MovementType is the wire vocabulary for stock movements.
type MovementType string

const (
	MovementTypeIn         MovementType = "IN"
	MovementTypeOut        MovementType = "OUT"
	MovementTypeTransfer   MovementType = "TRANSFER"
	MovementTypeAdjustment MovementType = "ADJUSTMENT"
	MovementTypeReturn     MovementType = "RETURN"
	MovementTypeDamaged    MovementType = "DAMAGED"
	MovementTypeExpired    MovementType = "EXPIRED"
)

// AllMovementTypes lists every movement type
var AllMovementTypes = []MovementType{
	MovementTypeIn,
	MovementTypeOut,
	MovementTypeTransfer,
	MovementTypeAdjustment,
	MovementTypeReturn,
	MovementTypeDamaged,
	MovementTypeExpired,
}

func (t MovementType) String() string {
	return string(t)
}

// IsValid returns true if the movement type is known
func (t MovementType) IsValid() bool {
	for _, mt := range AllMovementTypes {
		if t == mt {
			return true
		}
	}
	return false
}

// IsIncrease returns true for types that always add stock
func (t MovementType) IsIncrease() bool {
	return t == MovementTypeIn || t == MovementTypeReturn
}

// IsDecrease returns true for types that always remove stock
func (t MovementType) IsDecrease() bool {
	switch t {
	case MovementTypeOut, MovementTypeDamaged, MovementTypeExpired:
		return true
	}
	return false
}

// TransferLeg tells which half of a transfer a ledger row records.
type TransferLeg string

const (
	TransferLegOut TransferLeg = "OUT"
	TransferLegIn  TransferLeg = "IN"
)

// StockMovement is one immutable ledger row. Quantity is always the
// positive magnitude; Effect is the signed change applied to the item at
// LocationID. A transfer produces two rows, one per leg, sharing a
// CorrelationID.
type StockMovement struct {
	ID                     uuid.UUID
	StoreID                uuid.UUID
	LocationID             uuid.UUID
	Ref                    ProductRef
	Type                   MovementType
	TransferLeg            TransferLeg
	Quantity               int64
	Effect                 int64
	QuantityBefore         int64
	QuantityAfter          int64
	UnitCost               *decimal.Decimal
	TotalCost              *decimal.Decimal
	OrderID                *uuid.UUID
	TransferFromLocationID *uuid.UUID
	TransferToLocationID   *uuid.UUID
	Reason                 string
	ReferenceNumber        string
	CorrelationID          uuid.UUID
	CreatedBy              string
	CreatedAt              time.Time
}

// IsInbound returns true if the row added stock at its location
func (m *StockMovement) IsInbound() bool {
	return m.Effect > 0
}

// MovementInput is a request to record a movement.
type MovementInput struct {
	StoreID              uuid.UUID
	LocationID           uuid.UUID
	Ref                  ProductRef
	Type                 MovementType
	Quantity             int64
	SignedDelta          int64
	UnitCost             *decimal.Decimal
	Reason               string
	ReferenceNumber      string
	TransferToLocationID *uuid.UUID
	OrderID              *uuid.UUID
	CreatedBy            string
}

// Validate checks the input without looking at stored state. Whether a
// transfer destination exists and is active is checked by the ledger.
func (in MovementInput) Validate() error {
	if in.LocationID == uuid.Nil {
		return ErrInvalidLocation.WithMessage("Location ID cannot be empty")
	}
	if err := in.Ref.Validate(); err != nil {
		return err
	}
	if !in.Type.IsValid() {
		return ErrInvalidMovementType.WithMessage("Unknown movement type %q", in.Type)
	}
	if in.Type == MovementTypeAdjustment {
		if in.SignedDelta == 0 {
			return ErrInvalidQuantity.WithMessage("Adjustment delta cannot be zero")
		}
	} else if in.Quantity <= 0 {
		return ErrInvalidQuantity
	}
	if in.UnitCost != nil {
		if err := ValidateCost(*in.UnitCost); err != nil {
			return err
		}
		if err := ValidateCost(in.UnitCost.Mul(decimal.NewFromInt(in.Magnitude()))); err != nil {
			return ErrInvalidCost.WithMessage("Total cost of %d units at %s exceeds %s", in.Magnitude(), in.UnitCost, MaxCost)
		}
	}

	if in.Type == MovementTypeTransfer {
		if in.TransferToLocationID == nil || *in.TransferToLocationID == uuid.Nil {
			return ErrInvalidTransferTarget.WithMessage("Transfer destination is required")
		}
		if *in.TransferToLocationID == in.LocationID {
			return ErrInvalidTransferTarget.WithMessage("Transfer destination must differ from the source")
		}
	} else if in.TransferToLocationID != nil {
		return ErrInvalidTransferTarget.WithMessage("Transfer destination is only valid for TRANSFER movements")
	}
	return nil
}

// Magnitude is the positive number of units the movement moves
func (in MovementInput) Magnitude() int64 {
	if in.Type == MovementTypeAdjustment {
		if in.SignedDelta < 0 {
			return -in.SignedDelta
		}
		return in.SignedDelta
	}
	return in.Quantity
}

// Effect is the signed change at LocationID. For a transfer this is the
// outbound leg; the destination receives the inverse.
func (in MovementInput) Effect() int64 {
	switch {
	case in.Type == MovementTypeAdjustment:
		return in.SignedDelta
	case in.Type.IsIncrease():
		return in.Quantity
	default:
		return -in.Quantity
	}
}

// NewMovement builds a ledger row for the given item change.
func NewMovement(in MovementInput, locationID uuid.UUID, effect, quantityBefore int64, correlationID uuid.UUID) *StockMovement {
	magnitude := effect
	if magnitude < 0 {
		magnitude = -magnitude
	}
	m := &StockMovement{
		ID:              uuid.New(),
		StoreID:         in.StoreID,
		LocationID:      locationID,
		Ref:             in.Ref,
		Type:            in.Type,
		Quantity:        magnitude,
		Effect:          effect,
		QuantityBefore:  quantityBefore,
		QuantityAfter:   quantityBefore + effect,
		OrderID:         in.OrderID,
		Reason:          in.Reason,
		ReferenceNumber: in.ReferenceNumber,
		CorrelationID:   correlationID,
		CreatedBy:       in.CreatedBy,
		CreatedAt:       time.Now().UTC(),
	}
	if m.CorrelationID == uuid.Nil {
		m.CorrelationID = m.ID
	}
	if in.Type == MovementTypeTransfer {
		from := in.LocationID
		m.TransferFromLocationID = &from
		m.TransferToLocationID = in.TransferToLocationID
		m.TransferLeg = TransferLegOut
		if effect > 0 {
			m.TransferLeg = TransferLegIn
		}
	}
	if in.UnitCost != nil {
		m.WithUnitCost(*in.UnitCost)
	}
	return m
}

// WithUnitCost sets unit and total cost of the row
func (m *StockMovement) WithUnitCost(unitCost decimal.Decimal) *StockMovement {
	total := unitCost.Mul(decimal.NewFromInt(m.Quantity))
	m.UnitCost = &unitCost
	m.TotalCost = &total
	return m
}

// LedgerReplay is the state obtained by applying an item's movements in
// creation order starting from an empty item.
type LedgerReplay struct {
	Quantity  int64
	CostBasis CostBasis
	Rows      int
}

// ReplayLedger folds movements, which must be in creation order.
func ReplayLedger(movements []StockMovement) LedgerReplay {
	replay := LedgerReplay{CostBasis: CostBasis{AvgCostPrice: decimal.Zero, LastCostPrice: decimal.Zero}}
	for _, m := range movements {
		if m.Effect > 0 && m.UnitCost != nil {
			replay.CostBasis = replay.CostBasis.ApplyInbound(replay.Quantity, m.Effect, *m.UnitCost)
		}
		replay.Quantity += m.Effect
		replay.Rows++
	}
	return replay
}
