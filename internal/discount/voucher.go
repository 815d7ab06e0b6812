package discount

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// VoucherRule discounts the whole cart when the caller-supplied code
// matches, case-sensitively. The cap is always enforced: a voucher's
// MaxDiscount is a hard limit, unlike the optional caps on other rules.
type VoucherRule struct {
	Code        string
	Percentage  decimal.Decimal
	MaxDiscount decimal.Decimal
}

func (r VoucherRule) Name() string {
	return fmt.Sprintf("Voucher %s", r.Code)
}

func (r VoucherRule) Applicable(in Input) bool {
	return in.Voucher != "" && in.Voucher == r.Code
}

func (r VoucherRule) Amount(in Input) decimal.Decimal {
	if !r.Applicable(in) {
		return zero
	}

	amount := percentOf(in.Subtotal(), r.Percentage)
	if amount.GreaterThan(r.MaxDiscount) {
		amount = r.MaxDiscount
	}
	return floorAtZero(amount)
}
