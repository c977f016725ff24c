package helpers

import (
	"encoding/json"
	"fmt"

	"github.com/shopspring/decimal"
)

// ValidateExtraFields checks a request's extension map: keys map to scalar
// values only (string, number, bool). Nested objects and arrays are refused
// so record shapes stay checkable.
func ValidateExtraFields(extra map[string]any) error {
	for key, value := range extra {
		switch value.(type) {
		case nil, string, bool, float64, int, int64, json.Number:
		default:
			return fmt.Errorf("extra field %q must be a scalar value", key)
		}
	}
	return nil
}

// CoerceAmount accepts an amount given either as a JSON number or as a
// numeric string and returns it as a decimal. The bool result reports
// whether a value was present at all.
func CoerceAmount(value any) (decimal.Decimal, bool, error) {
	switch v := value.(type) {
	case nil:
		return decimal.Zero, false, nil
	case float64:
		return decimal.NewFromFloat(v), true, nil
	case int:
		return decimal.NewFromInt(int64(v)), true, nil
	case int64:
		return decimal.NewFromInt(v), true, nil
	case json.Number:
		d, err := decimal.NewFromString(v.String())
		if err != nil {
			return decimal.Zero, true, fmt.Errorf("amount %q is not numeric", v)
		}
		return d, true, nil
	case string:
		if v == "" {
			return decimal.Zero, false, nil
		}
		d, err := decimal.NewFromString(v)
		if err != nil {
			return decimal.Zero, true, fmt.Errorf("amount %q is not numeric", v)
		}
		return d, true, nil
	case decimal.Decimal:
		return v, true, nil
	default:
		return decimal.Zero, true, fmt.Errorf("amount has unsupported type %T", value)
	}
}
