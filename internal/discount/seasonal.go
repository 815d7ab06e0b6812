package discount

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// SeasonalRule discounts the cart during a date window. When Categories
// is non-empty only lines in those categories are discounted and the
// cart must contain at least one of them.
type SeasonalRule struct {
	Season      string
	StartDate   time.Time
	EndDate     time.Time
	Percentage  decimal.Decimal
	Categories  []string
	MaxDiscount decimal.Decimal // non-positive means no cap
}

func (r SeasonalRule) Name() string {
	return fmt.Sprintf("%s Seasonal Discount", r.Season)
}

func (r SeasonalRule) Applicable(in Input) bool {
	today := dateOnly(in.Now)
	if today.Before(dateOnly(r.StartDate)) || today.After(dateOnly(r.EndDate)) {
		return false
	}
	if len(r.Categories) == 0 {
		return true
	}
	for _, item := range in.Items {
		if r.inCategories(item.Product.Category) {
			return true
		}
	}
	return false
}

func (r SeasonalRule) Amount(in Input) decimal.Decimal {
	if !r.Applicable(in) {
		return zero
	}

	base := zero
	if len(r.Categories) == 0 {
		base = in.Subtotal()
	} else {
		for _, item := range in.Items {
			if r.inCategories(item.Product.Category) {
				base = base.Add(item.LineTotal())
			}
		}
	}

	return capAt(percentOf(base, r.Percentage), r.MaxDiscount)
}

func (r SeasonalRule) inCategories(category string) bool {
	for _, c := range r.Categories {
		if c == category {
			return true
		}
	}
	return false
}

// dateOnly truncates a time to its calendar date so the window check
// compares whole days, inclusive on both ends.
func dateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
