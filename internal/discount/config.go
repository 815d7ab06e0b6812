package discount

import (
	"time"

	"github.com/go-faster/errors"
	"github.com/shopspring/decimal"

	"github.com/xenking/cart-pricing-engine/internal/domain/customer"
)

// Config selects a rule type and carries its parameters. It is the unit
// of the generic discount path: one Config, one rule instance.
type Config struct {
	Type   string `json:"type"`
	Label  string `json:"label,omitempty"`
	Params Params `json:"params"`
}

// Params is the union of parameters across all built-in rule types.
// Each builder reads only the fields it needs and validates them.
type Params struct {
	Brand           string          `json:"brand,omitempty"`
	Category        string          `json:"category,omitempty"`
	Bank            string          `json:"bank,omitempty"`
	Code            string          `json:"code,omitempty"`
	Season          string          `json:"season,omitempty"`
	Percentage      decimal.Decimal `json:"percentage"`
	MaxDiscount     decimal.Decimal `json:"max_discount,omitempty"`
	MinCartValue    decimal.Decimal `json:"min_cart_value,omitempty"`
	PointsThreshold decimal.Decimal `json:"points_threshold,omitempty"`
	RequiredTier    customer.Tier   `json:"required_tier,omitempty"`
	StartDate       time.Time       `json:"start_date,omitzero"`
	EndDate         time.Time       `json:"end_date,omitzero"`
	Categories      []string        `json:"categories,omitempty"`
}

func validPercentage(pct decimal.Decimal) error {
	if pct.IsNegative() || pct.GreaterThan(hundred) {
		return errors.Errorf("percentage %s out of range [0, 100]", pct)
	}
	return nil
}

func buildBrand(p Params) (Rule, error) {
	if p.Brand == "" {
		return nil, errors.New("brand is required")
	}
	if err := validPercentage(p.Percentage); err != nil {
		return nil, err
	}
	return BrandRule{Brand: p.Brand, Percentage: p.Percentage, MaxDiscount: p.MaxDiscount}, nil
}

func buildCategory(p Params) (Rule, error) {
	if p.Category == "" {
		return nil, errors.New("category is required")
	}
	if err := validPercentage(p.Percentage); err != nil {
		return nil, err
	}
	return CategoryRule{Category: p.Category, Percentage: p.Percentage}, nil
}

func buildBank(p Params) (Rule, error) {
	if p.Bank == "" {
		return nil, errors.New("bank is required")
	}
	if err := validPercentage(p.Percentage); err != nil {
		return nil, err
	}
	return BankRule{Bank: p.Bank, Percentage: p.Percentage, MaxDiscount: p.MaxDiscount}, nil
}

func buildTier(p Params) (Rule, error) {
	if p.RequiredTier.Level() == 0 {
		return nil, errors.Errorf("unknown tier %q", p.RequiredTier)
	}
	if err := validPercentage(p.Percentage); err != nil {
		return nil, err
	}
	return TierRule{
		RequiredTier: p.RequiredTier,
		Percentage:   p.Percentage,
		MaxDiscount:  p.MaxDiscount,
		MinCartValue: p.MinCartValue,
	}, nil
}

func buildLoyalty(p Params) (Rule, error) {
	if p.PointsThreshold.IsNegative() {
		return nil, errors.New("points threshold must be non-negative")
	}
	if err := validPercentage(p.Percentage); err != nil {
		return nil, err
	}
	return LoyaltyRule{PointsThreshold: p.PointsThreshold, Percentage: p.Percentage}, nil
}

func buildSeasonal(p Params) (Rule, error) {
	if p.Season == "" {
		return nil, errors.New("season is required")
	}
	if p.StartDate.IsZero() || p.EndDate.IsZero() {
		return nil, errors.New("start and end dates are required")
	}
	if p.EndDate.Before(p.StartDate) {
		return nil, errors.New("end date precedes start date")
	}
	if err := validPercentage(p.Percentage); err != nil {
		return nil, err
	}
	return SeasonalRule{
		Season:      p.Season,
		StartDate:   p.StartDate,
		EndDate:     p.EndDate,
		Percentage:  p.Percentage,
		Categories:  p.Categories,
		MaxDiscount: p.MaxDiscount,
	}, nil
}

func buildVoucher(p Params) (Rule, error) {
	if p.Code == "" {
		return nil, errors.New("code is required")
	}
	if !p.MaxDiscount.IsPositive() {
		return nil, errors.New("max discount must be positive")
	}
	if err := validPercentage(p.Percentage); err != nil {
		return nil, err
	}
	return VoucherRule{Code: p.Code, Percentage: p.Percentage, MaxDiscount: p.MaxDiscount}, nil
}
