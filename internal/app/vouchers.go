package app

import (
	"github.com/shopspring/decimal"

	"github.com/xenking/cart-pricing-engine/internal/domain/customer"
	"github.com/xenking/cart-pricing-engine/internal/voucher"
)

// seedVouchers is the built-in voucher table used when no vouchers file
// is configured. It lives in the wiring layer so the pricing core stays
// free of business-data churn.
func seedVouchers() voucher.Table {
	d := decimal.RequireFromString
	return voucher.NewTable([]voucher.Definition{
		{
			Code:        "SUPER69",
			Percentage:  d("69"),
			MaxDiscount: d("1000"),
		},
		{
			Code:            "PREMIUM20",
			Percentage:      d("20"),
			MaxDiscount:     d("500"),
			TierRequirement: customer.TierPremium,
			MinCartValue:    d("1000"),
		},
		{
			Code:         "NEWUSER15",
			Percentage:   d("15"),
			MaxDiscount:  d("300"),
			MinCartValue: d("500"),
		},
		{
			Code:           "BRAND_EXCLUSION",
			Percentage:     d("10"),
			MaxDiscount:    d("200"),
			ExcludedBrands: []string{"PUMA", "NIKE"},
		},
		{
			Code:              "CATEGORY_RESTRICTION",
			Percentage:        d("25"),
			MaxDiscount:       d("600"),
			AllowedCategories: []string{"Shoes", "Jackets"},
		},
		{
			Code:            "TIER_DISCOUNT",
			Percentage:      d("30"),
			MaxDiscount:     d("800"),
			TierRequirement: customer.TierRegular,
			MinCartValue:    d("2000"),
		},
	})
}
