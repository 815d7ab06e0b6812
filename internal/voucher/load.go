package voucher

import (
	"encoding/json"
	"os"
	"reflect"

	"github.com/go-faster/errors"
	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

// newValidate builds a validator that understands decimal fields by
// converting them to float64 for the numeric comparison tags.
func newValidate() *validator.Validate {
	v := validator.New()
	v.RegisterCustomTypeFunc(func(field reflect.Value) any {
		if d, ok := field.Interface().(decimal.Decimal); ok {
			return d.InexactFloat64()
		}
		return nil
	}, decimal.Decimal{})
	return v
}

// LoadFile reads voucher definitions from a JSON file and builds the
// definition table. Every definition is validated; a single bad entry
// fails the whole load so a misconfigured table never reaches pricing.
func LoadFile(path string) (Table, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "read vouchers file")
	}

	var defs []Definition
	if err := json.Unmarshal(data, &defs); err != nil {
		return nil, errors.Wrap(err, "decode vouchers file")
	}

	validate := newValidate()
	for _, def := range defs {
		if err := validate.Struct(def); err != nil {
			return nil, errors.Wrapf(err, "voucher %q", def.Code)
		}
		if def.TierRequirement != "" && def.TierRequirement.Level() == 0 {
			return nil, errors.Errorf("voucher %q: unknown tier requirement %q", def.Code, def.TierRequirement)
		}
	}

	return NewTable(defs), nil
}
