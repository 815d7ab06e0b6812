package catalog

import (
	"github.com/shopspring/decimal"
)

// BrandTier classifies a brand within the catalog.
type BrandTier string

const (
	BrandTierRegular BrandTier = "REGULAR"
	BrandTierPremium BrandTier = "PREMIUM"
)

// Product represents a catalog item available for purchase. Products are
// treated as immutable: pricing never writes back to CurrentPrice.
type Product struct {
	ID           string
	Brand        string
	BrandTier    BrandTier
	Category     string
	BasePrice    decimal.Decimal
	CurrentPrice decimal.Decimal
}
