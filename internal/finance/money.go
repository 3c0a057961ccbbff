package finance

import (
	"encoding/json"
	"math"
	"strings"

	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// CoerceAmount turns loosely typed input into a non-negative amount. Anything
// that is not a finite, non-negative number becomes zero.
func CoerceAmount(v any) decimal.Decimal {
	var d decimal.Decimal
	switch x := v.(type) {
	case nil:
		return decimal.Zero
	case decimal.Decimal:
		d = x
	case *decimal.Decimal:
		if x == nil {
			return decimal.Zero
		}
		d = *x
	case float64:
		if math.IsNaN(x) || math.IsInf(x, 0) {
			return decimal.Zero
		}
		d = decimal.NewFromFloat(x)
	case float32:
		return CoerceAmount(float64(x))
	case int:
		d = decimal.NewFromInt(int64(x))
	case int64:
		d = decimal.NewFromInt(x)
	case int32:
		d = decimal.NewFromInt32(x)
	case uint:
		d = decimal.NewFromUint64(uint64(x))
	case uint32:
		d = decimal.NewFromUint64(uint64(x))
	case uint64:
		d = decimal.NewFromUint64(x)
	case json.Number:
		return CoerceAmount(string(x))
	case string:
		s := strings.NewReplacer(",", "", " ", "", "_", "").Replace(strings.TrimSpace(x))
		parsed, err := decimal.NewFromString(s)
		if err != nil {
			return decimal.Zero
		}
		d = parsed
	default:
		return decimal.Zero
	}
	return nonNegative(d)
}

func nonNegative(d decimal.Decimal) decimal.Decimal {
	if d.IsNegative() {
		return decimal.Zero
	}
	return d
}

// percentOf returns part/total*100, or 0 when total is not positive.
func percentOf(part, total decimal.Decimal) float64 {
	if !total.IsPositive() {
		return 0
	}
	return roundPercent(part.Div(total).Mul(hundred))
}

func roundPercent(pct decimal.Decimal) float64 {
	return pct.Round(4).InexactFloat64()
}
