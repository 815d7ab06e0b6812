package voucher

import (
	"github.com/shopspring/decimal"

	"github.com/xenking/cart-pricing-engine/internal/domain/customer"
)

// Definition is the configuration of one voucher code: its discount and
// the constraints a cart/customer pair must satisfy to redeem it.
// Definitions are immutable once loaded.
type Definition struct {
	Code              string          `json:"code" validate:"required"`
	Percentage        decimal.Decimal `json:"percentage" validate:"gte=0,lte=100"`
	MaxDiscount       decimal.Decimal `json:"max_discount" validate:"gt=0"`
	TierRequirement   customer.Tier   `json:"tier_requirement,omitempty"`
	ExcludedBrands    []string        `json:"excluded_brands,omitempty"`
	AllowedCategories []string        `json:"allowed_categories,omitempty"`
	MinCartValue      decimal.Decimal `json:"min_cart_value" validate:"gte=0"`
}

// Table is the voucher definition table, keyed by code. It is fixed at
// service construction and read-only during request handling.
type Table map[string]Definition

// NewTable builds a Table from a list of definitions. Later duplicates
// of a code overwrite earlier ones.
func NewTable(defs []Definition) Table {
	t := make(Table, len(defs))
	for _, def := range defs {
		t[def.Code] = def
	}
	return t
}

// Lookup returns the definition for a code, matched case-sensitively.
func (t Table) Lookup(code string) (Definition, bool) {
	def, ok := t[code]
	return def, ok
}
