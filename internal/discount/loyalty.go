package discount

import (
	"github.com/shopspring/decimal"
)

// LoyaltyRule discounts the whole cart for customers holding at least a
// threshold of loyalty points.
type LoyaltyRule struct {
	PointsThreshold decimal.Decimal
	Percentage      decimal.Decimal
}

func (r LoyaltyRule) Name() string {
	return "Loyalty Points Discount"
}

func (r LoyaltyRule) Applicable(in Input) bool {
	return in.Customer.LoyaltyPoints.GreaterThanOrEqual(r.PointsThreshold)
}

func (r LoyaltyRule) Amount(in Input) decimal.Decimal {
	if !r.Applicable(in) {
		return zero
	}
	return percentOf(in.Subtotal(), r.Percentage)
}
