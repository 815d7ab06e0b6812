package discount

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// BankRule discounts the whole cart by a percentage when the payment is
// routed through the configured bank.
type BankRule struct {
	Bank        string
	Percentage  decimal.Decimal
	MaxDiscount decimal.Decimal // non-positive means no cap
}

func (r BankRule) Name() string {
	return fmt.Sprintf("%s Bank Offer", r.Bank)
}

func (r BankRule) Applicable(in Input) bool {
	return in.Payment != nil && in.Payment.BankName == r.Bank
}

func (r BankRule) Amount(in Input) decimal.Decimal {
	if !r.Applicable(in) {
		return zero
	}
	return capAt(percentOf(in.Subtotal(), r.Percentage), r.MaxDiscount)
}
