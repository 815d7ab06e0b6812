package discount

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/xenking/cart-pricing-engine/internal/domain/customer"
)

// TierRule discounts the whole cart for customers at or above a loyalty
// tier, optionally gated on a minimum cart value and capped.
type TierRule struct {
	RequiredTier customer.Tier
	Percentage   decimal.Decimal
	MaxDiscount  decimal.Decimal // non-positive means no cap
	MinCartValue decimal.Decimal
}

func (r TierRule) Name() string {
	tier := string(r.RequiredTier)
	if tier != "" {
		tier = strings.ToUpper(tier[:1]) + strings.ToLower(tier[1:])
	}
	return fmt.Sprintf("%s Tier Discount", tier)
}

func (r TierRule) Applicable(in Input) bool {
	if !in.Customer.Tier.AtLeast(r.RequiredTier) {
		return false
	}
	return in.Subtotal().GreaterThanOrEqual(r.MinCartValue)
}

func (r TierRule) Amount(in Input) decimal.Decimal {
	if !r.Applicable(in) {
		return zero
	}
	return capAt(percentOf(in.Subtotal(), r.Percentage), r.MaxDiscount)
}
