package customer

import (
	"strings"

	"github.com/shopspring/decimal"
)

// Tier is a customer's loyalty tier. Tiers form a total order used for
// "at least" eligibility comparisons.
type Tier string

const (
	TierBudget   Tier = "budget"
	TierRegular  Tier = "regular"
	TierPremium  Tier = "premium"
	TierGold     Tier = "gold"
	TierPlatinum Tier = "platinum"
)

// tierLevels is the tier hierarchy. Unknown tiers map to 0, which fails
// open to "no special privilege".
var tierLevels = map[Tier]int{
	TierBudget:   1,
	TierRegular:  2,
	TierPremium:  3,
	TierGold:     4,
	TierPlatinum: 5,
}

// Level returns the tier's ordinal in the hierarchy, 0 for unknown tiers.
func (t Tier) Level() int {
	return tierLevels[Tier(strings.ToLower(string(t)))]
}

// AtLeast reports whether t ranks at or above the required tier.
func (t Tier) AtLeast(required Tier) bool {
	return t.Level() >= required.Level()
}

// Profile describes the customer a cart is being priced for.
type Profile struct {
	ID            string
	Name          string
	Email         string
	Tier          Tier
	LoyaltyPoints decimal.Decimal
}
