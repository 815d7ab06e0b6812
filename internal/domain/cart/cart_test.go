package cart

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/xenking/cart-pricing-engine/internal/domain/catalog"
)

func d(v string) decimal.Decimal {
	return decimal.RequireFromString(v)
}

func item(brand, category, price string, qty int) Item {
	return Item{
		Product: catalog.Product{
			Brand:        brand,
			Category:     category,
			BasePrice:    d(price),
			CurrentPrice: d(price),
		},
		Quantity: qty,
	}
}

func TestSubtotal(t *testing.T) {
	items := []Item{
		item("PUMA", "Shoes", "9.99", 3),
		item("NIKE", "Shoes", "49.95", 1),
	}

	// 29.97 + 49.95 = 79.92, exactly.
	assert.True(t, d("79.92").Equal(Subtotal(items)))
	assert.True(t, Subtotal(nil).IsZero())
}

func TestUnitPriceOverride(t *testing.T) {
	override := d("8.50")
	it := item("PUMA", "Shoes", "9.99", 2)

	assert.True(t, d("9.99").Equal(it.UnitPrice()))

	it.PriceOverride = &override
	assert.True(t, d("8.50").Equal(it.UnitPrice()))
	assert.True(t, d("17").Equal(it.LineTotal()))
}

func TestBrands(t *testing.T) {
	items := []Item{
		item("PUMA", "Shoes", "10", 1),
		item("puma", "Socks", "5", 1),
		item("NIKE", "Shoes", "20", 1),
	}

	// Distinct case-insensitively, first-seen spelling wins.
	assert.Equal(t, []string{"PUMA", "NIKE"}, Brands(items))
}

func TestCategories(t *testing.T) {
	items := []Item{
		item("PUMA", "Shoes", "10", 1),
		item("NIKE", "Shoes", "20", 1),
		item("ZARA", "Jackets", "30", 1),
	}

	assert.Equal(t, []string{"Shoes", "Jackets"}, Categories(items))
}

func TestContainsBrand(t *testing.T) {
	items := []Item{item("PUMA", "Shoes", "10", 1)}

	assert.True(t, ContainsBrand(items, "puma"))
	assert.True(t, ContainsBrand(items, "PUMA"))
	assert.False(t, ContainsBrand(items, "NIKE"))
	assert.False(t, ContainsBrand(nil, "PUMA"))
}
