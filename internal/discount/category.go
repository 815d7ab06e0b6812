package discount

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// CategoryRule discounts the lines of a single category by a percentage
// of their base price. It is a pure function over the cart snapshot: the
// amount is reported to the aggregator, item prices are never touched.
type CategoryRule struct {
	Category   string
	Percentage decimal.Decimal
}

func (r CategoryRule) Name() string {
	return fmt.Sprintf("%s Category Discount", r.Category)
}

func (r CategoryRule) Applicable(in Input) bool {
	for _, item := range in.Items {
		if item.Product.Category == r.Category {
			return true
		}
	}
	return false
}

func (r CategoryRule) Amount(in Input) decimal.Decimal {
	if !r.Applicable(in) {
		return zero
	}

	matching := zero
	for _, item := range in.Items {
		if item.Product.Category == r.Category {
			line := item.Product.BasePrice.Mul(decimal.NewFromInt(int64(item.Quantity)))
			matching = matching.Add(line)
		}
	}

	return percentOf(matching, r.Percentage)
}
