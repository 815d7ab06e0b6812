package app

import (
	"os"
	"time"

	"github.com/cristalhq/aconfig"
	"github.com/cristalhq/aconfig/aconfigyaml"
	"github.com/go-faster/errors"
	"github.com/shopspring/decimal"

	"github.com/xenking/cart-pricing-engine/internal/pricing"
)

// Config holds the complete application configuration, loadable from
// environment variables (PRICING_ prefix), flags, or YAML config files.
type Config struct {
	Addr         string `default:"0.0.0.0:8080" usage:"API server listen address"`
	VouchersFile string `default:"" usage:"Path to voucher definitions JSON (built-in table when empty)" flag:"vouchers-file"`
	Pricing      PricingConfig
	Graceful     GracefulConfig
}

// PricingConfig is the business configuration of the fixed pipeline.
// Percentages and caps are decimal strings to keep money arithmetic
// exact end to end.
type PricingConfig struct {
	PremiumBrands []string `default:"NIKE,ADIDAS,PUMA" usage:"Brands that earn the automatic brand discount" flag:"premium-brands"`
	BrandPercent  string   `default:"10" usage:"Automatic brand discount percentage" flag:"brand-percent"`
	BrandCap      string   `default:"200" usage:"Automatic brand discount cap" flag:"brand-cap"`
	BankPercent   string   `default:"10" usage:"Bank offer percentage" flag:"bank-percent"`
	BankCap       string   `default:"0" usage:"Bank offer cap (0 = uncapped)" flag:"bank-cap"`
}

// GracefulConfig controls graceful shutdown timing.
type GracefulConfig struct {
	ReadinessDelay  time.Duration `default:"3s"  usage:"Delay before shutdown begins" flag:"readiness-delay"`
	ShutdownTimeout time.Duration `default:"15s" usage:"Maximum shutdown duration" flag:"shutdown-timeout"`
}

// ToPricing converts the decimal strings into the pricing service config.
func (c PricingConfig) ToPricing() (pricing.Config, error) {
	cfg := pricing.Config{PremiumBrands: c.PremiumBrands}

	for _, field := range []struct {
		name  string
		value string
		dst   *decimal.Decimal
	}{
		{"brand-percent", c.BrandPercent, &cfg.BrandPercent},
		{"brand-cap", c.BrandCap, &cfg.BrandCap},
		{"bank-percent", c.BankPercent, &cfg.BankPercent},
		{"bank-cap", c.BankCap, &cfg.BankCap},
	} {
		d, err := decimal.NewFromString(field.value)
		if err != nil {
			return pricing.Config{}, errors.Wrapf(err, "parse %s", field.name)
		}
		*field.dst = d
	}

	return cfg, nil
}

// LoadConfig loads configuration from environment variables, YAML config
// files, and applies platform-specific defaults.
func LoadConfig() (*Config, error) {
	var cfg Config
	loader := aconfig.LoaderFor(&cfg, aconfig.Config{
		EnvPrefix: "PRICING",
		Files:     []string{"config.yaml", "/etc/pricing/config.yaml"},
		FileDecoders: map[string]aconfig.FileDecoder{
			".yaml": aconfigyaml.New(),
		},
	})
	if err := loader.Load(); err != nil {
		return nil, errors.Wrap(err, "load config")
	}
	cfg.applyPlatformDefaults()

	return &cfg, nil
}

// applyPlatformDefaults maps platform-provided environment variables
// that use standard names like PORT to the PRICING_-prefixed
// configuration.
func (c *Config) applyPlatformDefaults() {
	if port := os.Getenv("PORT"); port != "" && c.Addr == "0.0.0.0:8080" {
		c.Addr = "0.0.0.0:" + port
	}
}
