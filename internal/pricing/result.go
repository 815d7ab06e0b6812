package pricing

import (
	"github.com/shopspring/decimal"

	"github.com/xenking/cart-pricing-engine/internal/discount"
)

// Result is the priced outcome of one cart. It is a value produced per
// call, never stored. Invariant: 0 <= FinalPrice <= OriginalPrice.
type Result struct {
	OriginalPrice decimal.Decimal
	FinalPrice    decimal.Decimal
	Applied       *discount.Breakdown
	Message       string
}

// TotalDiscount returns the sum of all applied discount amounts.
func (r Result) TotalDiscount() decimal.Decimal {
	return r.Applied.Total()
}
