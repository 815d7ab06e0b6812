package discount

import (
	"testing"
	"time"

	"github.com/go-faster/errors"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xenking/cart-pricing-engine/internal/domain/cart"
	"github.com/xenking/cart-pricing-engine/internal/domain/customer"
)

func TestRegistryCreate(t *testing.T) {
	r := NewRegistry()

	tests := []struct {
		name    string
		cfg     Config
		wantErr error
	}{
		{
			name: "brand rule",
			cfg:  Config{Type: "brand", Params: Params{Brand: "NIKE", Percentage: d("10")}},
		},
		{
			name: "category rule",
			cfg:  Config{Type: "category", Params: Params{Category: "Shoes", Percentage: d("5")}},
		},
		{
			name: "bank rule",
			cfg:  Config{Type: "bank", Params: Params{Bank: "ICICI", Percentage: d("10")}},
		},
		{
			name: "tier rule",
			cfg:  Config{Type: "tier", Params: Params{RequiredTier: customer.TierGold, Percentage: d("15")}},
		},
		{
			name: "loyalty rule",
			cfg:  Config{Type: "loyalty", Params: Params{PointsThreshold: d("100"), Percentage: d("5")}},
		},
		{
			name: "seasonal rule",
			cfg: Config{Type: "seasonal", Params: Params{
				Season:     "Summer",
				StartDate:  time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC),
				EndDate:    time.Date(2026, 8, 31, 0, 0, 0, 0, time.UTC),
				Percentage: d("20"),
			}},
		},
		{
			name: "voucher rule",
			cfg:  Config{Type: "voucher", Params: Params{Code: "SUPER69", Percentage: d("69"), MaxDiscount: d("1000")}},
		},
		{
			name:    "unknown type",
			cfg:     Config{Type: "cashback"},
			wantErr: ErrUnknownDiscountType,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rule, err := r.Create(tt.cfg)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			require.NotNil(t, rule)
			assert.NotEmpty(t, rule.Name())
		})
	}
}

func TestRegistryCreate_InvalidParams(t *testing.T) {
	r := NewRegistry()

	tests := []struct {
		name string
		cfg  Config
	}{
		{"brand without brand name", Config{Type: "brand", Params: Params{Percentage: d("10")}}},
		{"percentage above 100", Config{Type: "brand", Params: Params{Brand: "NIKE", Percentage: d("101")}}},
		{"negative percentage", Config{Type: "bank", Params: Params{Bank: "ICICI", Percentage: d("-1")}}},
		{"tier rule with unknown tier", Config{Type: "tier", Params: Params{RequiredTier: "vip", Percentage: d("10")}}},
		{"seasonal without dates", Config{Type: "seasonal", Params: Params{Season: "Summer", Percentage: d("10")}}},
		{
			"seasonal end before start",
			Config{Type: "seasonal", Params: Params{
				Season:     "Summer",
				StartDate:  time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC),
				EndDate:    time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC),
				Percentage: d("10"),
			}},
		},
		{"voucher without cap", Config{Type: "voucher", Params: Params{Code: "X", Percentage: d("10")}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := r.Create(tt.cfg)
			require.Error(t, err)
		})
	}
}

func TestRegistryRegister(t *testing.T) {
	r := NewRegistry()

	t.Run("nil builder rejected", func(t *testing.T) {
		require.ErrorIs(t, r.Register("custom", nil), ErrInvalidRuleType)
	})

	t.Run("blank name rejected", func(t *testing.T) {
		err := r.Register("", func(Params) (Rule, error) { return nil, nil })
		require.ErrorIs(t, err, ErrInvalidRuleType)
	})

	t.Run("registered type becomes creatable", func(t *testing.T) {
		err := r.Register("flat", func(p Params) (Rule, error) {
			if !p.MaxDiscount.IsPositive() {
				return nil, errors.New("max discount required")
			}
			return flatRule{amount: p.MaxDiscount}, nil
		})
		require.NoError(t, err)
		assert.Contains(t, r.Types(), "flat")

		rule, err := r.Create(Config{Type: "flat", Params: Params{MaxDiscount: d("50")}})
		require.NoError(t, err)
		assert.True(t, d("50").Equal(rule.Amount(Input{})))
	})

	t.Run("label override renames rule", func(t *testing.T) {
		rule, err := r.Create(Config{
			Type:   "brand",
			Label:  "Weekend NIKE Special",
			Params: Params{Brand: "NIKE", Percentage: d("10")},
		})
		require.NoError(t, err)
		assert.Equal(t, "Weekend NIKE Special", rule.Name())
	})
}

type flatRule struct {
	amount decimal.Decimal
}

func (f flatRule) Name() string               { return "Flat Discount" }
func (f flatRule) Applicable(Input) bool      { return true }
func (f flatRule) Amount(Input) decimal.Decimal { return f.amount }

func TestApplyMany(t *testing.T) {
	r := NewRegistry()
	items := []cart.Item{
		item("PUMA", "Shoes", "1000", 2),
		item("NIKE", "Shoes", "5000", 1),
	}
	in := Input{Items: items}

	t.Run("skips non-applicable and zero amounts", func(t *testing.T) {
		rules := []Rule{
			BrandRule{Brand: "PUMA", Percentage: d("10")},
			BrandRule{Brand: "ZARA", Percentage: d("10")}, // not in cart
			BrandRule{Brand: "NIKE", Percentage: d("0")},  // zero amount
		}
		applied := r.ApplyMany(rules, in)

		require.Equal(t, 1, applied.Len())
		amount, ok := applied.Get("PUMA Brand Discount")
		require.True(t, ok)
		assert.True(t, d("200").Equal(amount))
	})

	t.Run("duplicate labels overwrite", func(t *testing.T) {
		rules := []Rule{
			labeled{Rule: BrandRule{Brand: "PUMA", Percentage: d("5")}, label: "Promo"},
			labeled{Rule: BrandRule{Brand: "PUMA", Percentage: d("10")}, label: "Promo"},
		}
		applied := r.ApplyMany(rules, in)

		require.Equal(t, 1, applied.Len())
		amount, _ := applied.Get("Promo")
		assert.True(t, d("200").Equal(amount))
	})

	t.Run("empty rule list yields empty breakdown", func(t *testing.T) {
		applied := r.ApplyMany(nil, in)
		assert.Equal(t, 0, applied.Len())
		assert.True(t, decimal.Zero.Equal(applied.Total()))
	})
}
