package cart

import (
	"strings"

	"github.com/shopspring/decimal"

	"github.com/xenking/cart-pricing-engine/internal/domain/catalog"
)

// Item is a line in a shopping cart. The product is a shared reference:
// the same Product may appear in many carts, so pricing must never
// mutate it. An optional PriceOverride replaces the product's current
// price for this line only.
type Item struct {
	Product       catalog.Product
	Quantity      int
	Size          string
	PriceOverride *decimal.Decimal
}

// UnitPrice returns the effective unit price for the line: the explicit
// override when present, otherwise the product's current price.
func (i Item) UnitPrice() decimal.Decimal {
	if i.PriceOverride != nil {
		return *i.PriceOverride
	}
	return i.Product.CurrentPrice
}

// LineTotal returns UnitPrice multiplied by the line quantity.
func (i Item) LineTotal() decimal.Decimal {
	return i.UnitPrice().Mul(decimal.NewFromInt(int64(i.Quantity)))
}

// Subtotal returns the sum of line totals across all items, on the
// current-price basis. This is the monetary base every discount rule
// is evaluated against.
func Subtotal(items []Item) decimal.Decimal {
	sum := decimal.Zero
	for _, item := range items {
		sum = sum.Add(item.LineTotal())
	}
	return sum
}

// Brands returns the distinct brands present in the cart, in first-seen
// order.
func Brands(items []Item) []string {
	seen := make(map[string]struct{}, len(items))
	brands := make([]string, 0, len(items))
	for _, item := range items {
		key := strings.ToUpper(item.Product.Brand)
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		brands = append(brands, item.Product.Brand)
	}
	return brands
}

// Categories returns the distinct categories present in the cart, in
// first-seen order.
func Categories(items []Item) []string {
	seen := make(map[string]struct{}, len(items))
	categories := make([]string, 0, len(items))
	for _, item := range items {
		if _, ok := seen[item.Product.Category]; ok {
			continue
		}
		seen[item.Product.Category] = struct{}{}
		categories = append(categories, item.Product.Category)
	}
	return categories
}

// ContainsBrand reports whether any item in the cart matches the given
// brand, comparing case-insensitively.
func ContainsBrand(items []Item, brand string) bool {
	for _, item := range items {
		if strings.EqualFold(item.Product.Brand, brand) {
			return true
		}
	}
	return false
}
