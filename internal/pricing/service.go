package pricing

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/xenking/cart-pricing-engine/internal/discount"
	"github.com/xenking/cart-pricing-engine/internal/domain/cart"
	"github.com/xenking/cart-pricing-engine/internal/domain/customer"
	"github.com/xenking/cart-pricing-engine/internal/domain/payment"
	"github.com/xenking/cart-pricing-engine/internal/voucher"
)

// Defaults for the fixed pipeline when the injected config leaves them
// unset.
var (
	defaultBrandPercent = decimal.NewFromInt(10)
	defaultBrandCap     = decimal.NewFromInt(200)
	defaultBankPercent  = decimal.NewFromInt(10)
)

// Config is the injected business configuration of the fixed pipeline.
// The premium-brand allow-list and the percentages live here, not in
// code, so the core stays free of business-data churn.
type Config struct {
	// PremiumBrands is the allow-list of brands that earn an automatic
	// brand discount. Its order is the application order, which keeps
	// results deterministic for identical inputs.
	PremiumBrands []string
	BrandPercent  decimal.Decimal
	BrandCap      decimal.Decimal
	BankPercent   decimal.Decimal
	BankCap       decimal.Decimal // non-positive means no cap
}

func (c Config) withDefaults() Config {
	if c.BrandPercent.IsZero() {
		c.BrandPercent = defaultBrandPercent
	}
	if c.BrandCap.IsZero() {
		c.BrandCap = defaultBrandCap
	}
	if c.BankPercent.IsZero() {
		c.BankPercent = defaultBankPercent
	}
	return c
}

// Service aggregates discount rules into one priced result. All state is
// fixed at construction and read-only afterwards; every call is an
// independent, synchronous computation over in-memory data.
type Service struct {
	cfg      Config
	vouchers *voucher.Validator
	registry *discount.Registry
	now      func() time.Time
}

// Option configures a Service.
type Option func(*Service)

// WithClock replaces the evaluation-time source used by date-windowed
// rules. Tests use it to pin the seasonal window check.
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		s.now = now
	}
}

// NewService creates the aggregator over an injected voucher table and
// rule registry.
func NewService(cfg Config, vouchers *voucher.Validator, registry *discount.Registry, opts ...Option) *Service {
	s := &Service{
		cfg:      cfg.withDefaults(),
		vouchers: vouchers,
		registry: registry,
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// CalculateCartDiscounts runs the fixed pipeline: automatic brand
// discounts for premium-listed brands in the cart, a bank offer when
// payment details are present, and a validated voucher when a code is
// supplied. Every rule is evaluated against the same pre-discount
// subtotal; amounts are summed and the final price clamped to zero.
func (s *Service) CalculateCartDiscounts(
	items []cart.Item,
	cust customer.Profile,
	pay *payment.Info,
	voucherCode string,
) Result {
	original := cart.Subtotal(items)
	if len(items) == 0 {
		return Result{
			OriginalPrice: original,
			FinalPrice:    original,
			Applied:       discount.NewBreakdown(),
			Message:       "Cart is empty",
		}
	}

	in := discount.Input{
		Items:    items,
		Customer: cust,
		Payment:  pay,
		Voucher:  voucherCode,
		Now:      s.now(),
	}

	var rules []discount.Rule

	// Allow-list order, not cart order, drives brand rule ordering.
	for _, brand := range s.cfg.PremiumBrands {
		if cart.ContainsBrand(items, brand) {
			rules = append(rules, discount.BrandRule{
				Brand:       brand,
				Percentage:  s.cfg.BrandPercent,
				MaxDiscount: s.cfg.BrandCap,
			})
		}
	}

	if pay != nil && pay.BankName != "" {
		rules = append(rules, discount.BankRule{
			Bank:        pay.BankName,
			Percentage:  s.cfg.BankPercent,
			MaxDiscount: s.cfg.BankCap,
		})
	}

	if voucherCode != "" && s.vouchers.Validate(voucherCode, items, cust) {
		if def, ok := s.vouchers.Lookup(voucherCode); ok {
			rules = append(rules, discount.VoucherRule{
				Code:        def.Code,
				Percentage:  def.Percentage,
				MaxDiscount: def.MaxDiscount,
			})
		}
	}

	applied := s.registry.ApplyMany(rules, in)
	return s.finalize(original, applied, "Discounts applied successfully")
}

// ApplyAdvancedDiscounts is the generic path: one rule per configuration
// entry, instantiated through the registry. A bad entry fails the whole
// call; eligible rules are applied together off the same base.
func (s *Service) ApplyAdvancedDiscounts(
	items []cart.Item,
	cust customer.Profile,
	pay *payment.Info,
	configs []discount.Config,
) (Result, error) {
	original := cart.Subtotal(items)

	rules := make([]discount.Rule, 0, len(configs))
	for _, cfg := range configs {
		rule, err := s.registry.Create(cfg)
		if err != nil {
			return Result{}, err
		}
		rules = append(rules, rule)
	}

	in := discount.Input{
		Items:    items,
		Customer: cust,
		Payment:  pay,
		Now:      s.now(),
	}

	applied := s.registry.ApplyMany(rules, in)
	return s.finalize(original, applied, "Advanced discounts applied successfully"), nil
}

// ValidateDiscountCode reports whether a voucher code is redeemable for
// the cart and customer. Unknown or ineligible codes are a plain false.
func (s *Service) ValidateDiscountCode(code string, items []cart.Item, cust customer.Profile) bool {
	return s.vouchers.Validate(code, items, cust)
}

func (s *Service) finalize(original decimal.Decimal, applied *discount.Breakdown, message string) Result {
	final := original.Sub(applied.Total())
	if final.IsNegative() {
		final = decimal.Zero
	}
	if applied.Len() == 0 {
		message = "No discounts applied"
	}
	return Result{
		OriginalPrice: original,
		FinalPrice:    final.Round(2),
		Applied:       applied,
		Message:       message,
	}
}
