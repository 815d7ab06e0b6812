package voucher

import (
	"strings"

	"github.com/xenking/cart-pricing-engine/internal/domain/cart"
	"github.com/xenking/cart-pricing-engine/internal/domain/customer"
)

// SanityCheck is an upstream collaborator consulted before the
// definition constraints. It lets callers plug in checks that live
// outside the pricing core, such as per-customer usage limits.
type SanityCheck func(code string, items []cart.Item, cust customer.Profile) bool

// Validator decides whether a voucher code may be redeemed against a
// cart/customer pair. Unknown codes fail closed.
type Validator struct {
	table  Table
	sanity SanityCheck
}

// Option configures a Validator.
type Option func(*Validator)

// WithSanityCheck replaces the default sanity check.
func WithSanityCheck(fn SanityCheck) Option {
	return func(v *Validator) {
		v.sanity = fn
	}
}

// NewValidator creates a Validator over the given definition table.
func NewValidator(table Table, opts ...Option) *Validator {
	v := &Validator{
		table: table,
		sanity: func(code string, _ []cart.Item, _ customer.Profile) bool {
			return strings.TrimSpace(code) != ""
		},
	}
	for _, opt := range opts {
		opt(v)
	}
	return v
}

// Lookup returns the definition for a code, matched case-sensitively.
func (v *Validator) Lookup(code string) (Definition, bool) {
	return v.table.Lookup(code)
}

// Validate reports whether the code may be applied. Checks run in order
// and short-circuit on the first failure: known code, sanity check, tier
// requirement, excluded brands, allowed categories, minimum cart value.
// Ineligibility is a plain false, never an error.
func (v *Validator) Validate(code string, items []cart.Item, cust customer.Profile) bool {
	def, ok := v.table.Lookup(code)
	if !ok {
		return false
	}

	if !v.sanity(code, items, cust) {
		return false
	}

	if def.TierRequirement != "" && !cust.Tier.AtLeast(def.TierRequirement) {
		return false
	}

	for _, brand := range def.ExcludedBrands {
		if cart.ContainsBrand(items, brand) {
			return false
		}
	}

	if len(def.AllowedCategories) > 0 && !intersects(cart.Categories(items), def.AllowedCategories) {
		return false
	}

	return cart.Subtotal(items).GreaterThanOrEqual(def.MinCartValue)
}

func intersects(a, b []string) bool {
	for _, x := range a {
		for _, y := range b {
			if x == y {
				return true
			}
		}
	}
	return false
}
