package discount

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// BrandRule discounts the lines of a single brand by a percentage, with
// an optional absolute cap. Brand matching is case-insensitive.
type BrandRule struct {
	Brand       string
	Percentage  decimal.Decimal
	MaxDiscount decimal.Decimal // non-positive means no cap
}

func (r BrandRule) Name() string {
	return fmt.Sprintf("%s Brand Discount", strings.ToUpper(r.Brand))
}

func (r BrandRule) Applicable(in Input) bool {
	for _, item := range in.Items {
		if strings.EqualFold(item.Product.Brand, r.Brand) {
			return true
		}
	}
	return false
}

func (r BrandRule) Amount(in Input) decimal.Decimal {
	if !r.Applicable(in) {
		return zero
	}

	matching := zero
	for _, item := range in.Items {
		if strings.EqualFold(item.Product.Brand, r.Brand) {
			matching = matching.Add(item.LineTotal())
		}
	}

	return capAt(percentOf(matching, r.Percentage), r.MaxDiscount)
}
