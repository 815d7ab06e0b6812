package discount

import (
	"sort"

	"github.com/go-faster/errors"
)

// Registry errors.
var (
	// ErrUnknownDiscountType is returned by Create for unregistered type names.
	ErrUnknownDiscountType = errors.New("unknown discount type")
	// ErrInvalidRuleType is returned by Register for builders that cannot
	// satisfy the rule contract.
	ErrInvalidRuleType = errors.New("invalid rule type")
)

// Builder constructs a Rule from its parameters, validating them.
type Builder func(p Params) (Rule, error)

// Registry maps discount-type names to rule builders. The default set is
// registered at construction; new types can be added at runtime through
// Register, which is an administrative operation and is not expected to
// race with pricing calls.
type Registry struct {
	builders map[string]Builder
}

// NewRegistry returns a Registry with all built-in rule types registered:
// brand, category, bank, tier, loyalty, seasonal and voucher.
func NewRegistry() *Registry {
	r := &Registry{builders: make(map[string]Builder)}
	r.builders["brand"] = buildBrand
	r.builders["category"] = buildCategory
	r.builders["bank"] = buildBank
	r.builders["tier"] = buildTier
	r.builders["loyalty"] = buildLoyalty
	r.builders["seasonal"] = buildSeasonal
	r.builders["voucher"] = buildVoucher
	return r
}

// Register adds a rule type under the given name, replacing any previous
// registration. A blank name or nil builder cannot satisfy the rule
// contract and is rejected with ErrInvalidRuleType.
func (r *Registry) Register(name string, b Builder) error {
	if name == "" {
		return errors.Wrap(ErrInvalidRuleType, "blank type name")
	}
	if b == nil {
		return errors.Wrap(ErrInvalidRuleType, "nil builder")
	}
	r.builders[name] = b
	return nil
}

// Create instantiates a rule from a configuration entry. Unregistered
// type names fail with ErrUnknownDiscountType; invalid parameters fail
// with the builder's error. A non-empty Label overrides the rule's
// display name so two rules of the same type can both appear in a
// breakdown.
func (r *Registry) Create(cfg Config) (Rule, error) {
	b, ok := r.builders[cfg.Type]
	if !ok {
		return nil, errors.Wrapf(ErrUnknownDiscountType, "%q", cfg.Type)
	}

	rule, err := b(cfg.Params)
	if err != nil {
		return nil, errors.Wrapf(err, "build %q rule", cfg.Type)
	}

	if cfg.Label != "" {
		rule = labeled{Rule: rule, label: cfg.Label}
	}
	return rule, nil
}

// Types returns the registered type names, sorted.
func (r *Registry) Types() []string {
	names := make([]string, 0, len(r.builders))
	for name := range r.builders {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// ApplyMany evaluates the rules against one input, skipping rules that
// are not applicable and dropping zero amounts. Results are keyed by
// each rule's display name; a later rule with a duplicate name
// overwrites the earlier amount.
func (r *Registry) ApplyMany(rules []Rule, in Input) *Breakdown {
	applied := NewBreakdown()
	for _, rule := range rules {
		if !rule.Applicable(in) {
			continue
		}
		amount := rule.Amount(in)
		if amount.IsPositive() {
			applied.Set(rule.Name(), amount)
		}
	}
	return applied
}

// labeled overrides a rule's display name.
type labeled struct {
	Rule
	label string
}

func (l labeled) Name() string {
	return l.label
}
