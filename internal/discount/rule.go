package discount

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/xenking/cart-pricing-engine/internal/domain/cart"
	"github.com/xenking/cart-pricing-engine/internal/domain/customer"
	"github.com/xenking/cart-pricing-engine/internal/domain/payment"
)

var (
	hundred = decimal.NewFromInt(100)
	zero    = decimal.Zero
)

// Input is the immutable snapshot a rule is evaluated against. Rules are
// pure functions over it: they never mutate items or products. Voucher
// carries the code supplied by the caller, Now the evaluation time for
// date-windowed rules.
type Input struct {
	Items    []cart.Item
	Customer customer.Profile
	Payment  *payment.Info
	Voucher  string
	Now      time.Time
}

// Subtotal returns the cart total on the current-price basis. All rules
// discount against this same pre-discount base; amounts are combined by
// the aggregator, never by individual rules.
func (in Input) Subtotal() decimal.Decimal {
	return cart.Subtotal(in.Items)
}

// Rule is one discount strategy: an applicability predicate plus an
// amount formula. Amount must return zero when Applicable is false and
// must never exceed the monetary base it is computed against.
type Rule interface {
	Name() string
	Applicable(in Input) bool
	Amount(in Input) decimal.Decimal
}

// percentOf returns pct% of base using exact decimal arithmetic, rounded
// to 2 decimal places and floored at zero.
func percentOf(base, pct decimal.Decimal) decimal.Decimal {
	return floorAtZero(base.Mul(pct).Div(hundred)).Round(2)
}

// capAt limits amount to cap when cap is positive. A non-positive cap
// means "no cap".
func capAt(amount, cap decimal.Decimal) decimal.Decimal {
	if cap.IsPositive() && amount.GreaterThan(cap) {
		return cap
	}
	return amount
}

// floorAtZero clamps negative values to zero.
func floorAtZero(d decimal.Decimal) decimal.Decimal {
	if d.IsNegative() {
		return zero
	}
	return d
}
