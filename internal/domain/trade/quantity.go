package trade

import (
	"encoding/json"
	"math"
	"strings"

	"github.com/shopspring/decimal"
)

// ParseQuantity converts a loosely typed field value into an optional quantity.
//
// nil means the field is absent. Any other value is present; values that are
// not numeric count as zero.
func ParseQuantity(v any) *decimal.Decimal {
	if v == nil {
		return nil
	}
	d := toDecimal(v)
	return &d
}

// Quantity returns a pointer to the given amount, for building lines in code
func Quantity(v float64) *decimal.Decimal {
	d := decimal.NewFromFloat(v)
	return &d
}

func toDecimal(v any) decimal.Decimal {
	switch n := v.(type) {
	case decimal.Decimal:
		return n
	case *decimal.Decimal:
		if n == nil {
			return decimal.Zero
		}
		return *n
	case int:
		return decimal.NewFromInt(int64(n))
	case int32:
		return decimal.NewFromInt32(n)
	case int64:
		return decimal.NewFromInt(n)
	case float32:
		return finiteFloat(float64(n))
	case float64:
		return finiteFloat(n)
	case json.Number:
		return parseDecimalString(n.String())
	case string:
		return parseDecimalString(n)
	case bool:
		if n {
			return decimal.NewFromInt(1)
		}
		return decimal.Zero
	default:
		return decimal.Zero
	}
}

func finiteFloat(f float64) decimal.Decimal {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return decimal.Zero
	}
	return decimal.NewFromFloat(f)
}

func parseDecimalString(s string) decimal.Decimal {
	d, err := decimal.NewFromString(strings.ReplaceAll(strings.TrimSpace(s), ",", ""))
	if err != nil {
		return decimal.Zero
	}
	return d
}

func valueOrZero(q *decimal.Decimal) decimal.Decimal {
	if q == nil {
		return decimal.Zero
	}
	return *q
}
