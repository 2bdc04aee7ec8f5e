package inventory

import "github.com/shopspring/decimal"

// CostPrecision is the number of fractional digits kept on cost prices.
const CostPrecision = 4

// MaxCost is the smallest amount the DECIMAL(18,4) cost columns cannot hold.
var MaxCost = decimal.New(1, 18-CostPrecision)

// ValidateCost checks that an amount can be stored as a cost without being
// rounded by the database.
func ValidateCost(cost decimal.Decimal) error {
	if cost.IsNegative() {
		return ErrInvalidCost
	}
	if !cost.Equal(cost.Round(CostPrecision)) {
		return ErrInvalidCost.WithMessage("Cost %s has more than %d decimal places", cost, CostPrecision)
	}
	if cost.GreaterThanOrEqual(MaxCost) {
		return ErrInvalidCost.WithMessage("Cost %s exceeds %s", cost, MaxCost)
	}
	return nil
}

// CostBasis is the per-unit valuation carried on an inventory item.
type CostBasis struct {
	AvgCostPrice  decimal.Decimal
	LastCostPrice decimal.Decimal
}

// ApplyInbound returns the cost basis after quantityIn units arrive at
// unitCost on top of quantityBefore units valued at the current average.
//
//	avg = (avg_old * quantity_before + unit_cost * quantity_in) / (quantity_before + quantity_in)
//
// When nothing was on hand the new average is the unit cost.
func (c CostBasis) ApplyInbound(quantityBefore, quantityIn int64, unitCost decimal.Decimal) CostBasis {
	next := CostBasis{
		AvgCostPrice:  c.AvgCostPrice,
		LastCostPrice: unitCost.Round(CostPrecision),
	}
	if quantityIn <= 0 {
		return c
	}
	if quantityBefore <= 0 {
		next.AvgCostPrice = unitCost.Round(CostPrecision)
		return next
	}

	before := decimal.NewFromInt(quantityBefore)
	in := decimal.NewFromInt(quantityIn)
	totalValue := c.AvgCostPrice.Mul(before).Add(unitCost.Mul(in))
	next.AvgCostPrice = totalValue.Div(before.Add(in)).Round(CostPrecision)
	return next
}

// Valuation is quantity * average cost.
func (c CostBasis) Valuation(quantity int64) decimal.Decimal {
	return c.AvgCostPrice.Mul(decimal.NewFromInt(quantity))
}
