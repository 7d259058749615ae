// Package currency renders money amounts for display.
package currency

import (
	"fmt"
	"math"
	"math/big"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/shopspring/decimal"
)

// DefaultSymbol Indian rupee
const DefaultSymbol = "₹"

// Formatter renders amounts as <symbol><grouped integer>.<2 digits>, with a
// leading "-" for negative values. Values are rounded half away from zero.
type Formatter struct {
	Symbol string
}

// New creates a Formatter; an empty symbol means DefaultSymbol
func New(symbol string) Formatter {
	if symbol == "" {
		symbol = DefaultSymbol
	}
	return Formatter{Symbol: symbol}
}

// Zero is the formatted zero amount, also used for unparsable input
func (f Formatter) Zero() string {
	return f.Symbol + "0.00"
}

// Format converts v to a decimal and formats it. Numbers, numeric strings and
// decimals are accepted; anything else yields Zero.
func (f Formatter) Format(v any) string {
	d, ok := toDecimal(v)
	if !ok {
		return f.Zero()
	}
	return f.FormatDecimal(d)
}

// FormatDecimal formats d
func (f Formatter) FormatDecimal(d decimal.Decimal) string {
	fixed := d.Abs().StringFixed(2)
	intPart, frac, _ := strings.Cut(fixed, ".")

	n, ok := new(big.Int).SetString(intPart, 10)
	if !ok {
		return f.Zero()
	}

	out := f.Symbol + humanize.BigComma(n) + "." + frac
	if d.Sign() < 0 {
		return "-" + out
	}
	return out
}

func toDecimal(v any) (decimal.Decimal, bool) {
	switch x := v.(type) {
	case nil:
		return decimal.Zero, false
	case decimal.Decimal:
		return x, true
	case *decimal.Decimal:
		if x == nil {
			return decimal.Zero, false
		}
		return *x, true
	case decimal.NullDecimal:
		return x.Decimal, x.Valid
	case float64:
		if math.IsNaN(x) || math.IsInf(x, 0) {
			return decimal.Zero, false
		}
		return decimal.NewFromFloat(x), true
	case float32:
		if math.IsNaN(float64(x)) || math.IsInf(float64(x), 0) {
			return decimal.Zero, false
		}
		return decimal.NewFromFloat32(x), true
	case int:
		return decimal.NewFromInt(int64(x)), true
	case int8:
		return decimal.NewFromInt(int64(x)), true
	case int16:
		return decimal.NewFromInt(int64(x)), true
	case int32:
		return decimal.NewFromInt(int64(x)), true
	case int64:
		return decimal.NewFromInt(x), true
	case uint:
		return fromUint(uint64(x)), true
	case uint8:
		return fromUint(uint64(x)), true
	case uint16:
		return fromUint(uint64(x)), true
	case uint32:
		return fromUint(uint64(x)), true
	case uint64:
		return fromUint(x), true
	case string:
		return parse(x)
	case []byte:
		return parse(string(x))
	case fmt.Stringer:
		return parse(x.String())
	default:
		return decimal.Zero, false
	}
}

func fromUint(u uint64) decimal.Decimal {
	return decimal.NewFromBigInt(new(big.Int).SetUint64(u), 0)
}

func parse(s string) (decimal.Decimal, bool) {
	d, err := decimal.NewFromString(strings.TrimSpace(s))
	if err != nil {
		return decimal.Zero, false
	}
	return d, true
}
