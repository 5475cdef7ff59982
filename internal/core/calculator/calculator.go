// Package calculator provides chained, scale/rounding-controlled decimal
// arithmetic for balance computation.
package calculator

import (
	"github.com/shopspring/decimal"
)

// RoundingMode selects how amounts are rounded when a scale is applied.
type RoundingMode int

const (
	// RoundDown truncates toward zero. The default for money amounts.
	RoundDown RoundingMode = iota
	// RoundUp rounds away from zero.
	RoundUp
	// RoundHalfUp rounds half away from zero.
	RoundHalfUp
	// RoundHalfEven rounds half to the even neighbor.
	RoundHalfEven
	// RoundCeiling rounds toward positive infinity.
	RoundCeiling
	// RoundFloor rounds toward negative infinity.
	RoundFloor
)

// defaultScale bounds division results when no explicit scale is configured,
// to avoid non-terminating decimal expansion.
const defaultScale = 18

// Calculator wraps one decimal value and accumulates chained operations.
// By default the configured scale/rounding is applied only at read-out
// (Decimal/IntValue/Int64Value); with RoundingAlways every intermediate
// operation rounds immediately, which changes results for chains of small
// additions.
//
// A Calculator is a single-owner builder. It must not be shared between
// concurrent callers.
type Calculator struct {
	value          decimal.Decimal
	scale          int32
	mode           RoundingMode
	roundingAlways bool
}

// New starts a calculation from a decimal value, at scale 18 round-down.
func New(v decimal.Decimal) *Calculator {
	return &Calculator{value: v, scale: defaultScale, mode: RoundDown}
}

// NewInt starts a calculation from an integer value.
func NewInt(v int64) *Calculator {
	return New(decimal.NewFromInt(v))
}

// NewString starts a calculation from a numeric string. Unparsable input
// starts from zero rather than failing.
func NewString(s string) *Calculator {
	d, err := decimal.NewFromString(s)
	if err != nil {
		d = decimal.Zero
	}
	return New(d)
}

// Scale sets the output scale and rounding mode. Call it before calculating.
func (c *Calculator) Scale(scale int32, mode RoundingMode) *Calculator {
	c.scale = scale
	c.mode = mode
	return c
}

// RoundingAlways makes every intermediate operation round to the configured
// scale immediately. Call it before calculating.
func (c *Calculator) RoundingAlways(roundingAlways bool) *Calculator {
	c.roundingAlways = roundingAlways
	return c
}

// Add adds v to the running value.
func (c *Calculator) Add(v decimal.Decimal) *Calculator {
	c.value = c.rounding(c.value.Add(v))
	return c
}

// AddString adds a numeric string. Unparsable input is ignored.
func (c *Calculator) AddString(s string) *Calculator {
	if d, err := decimal.NewFromString(s); err == nil {
		c.Add(d)
	}
	return c
}

// Subtract subtracts v from the running value.
func (c *Calculator) Subtract(v decimal.Decimal) *Calculator {
	c.value = c.rounding(c.value.Sub(v))
	return c
}

// SubtractString subtracts a numeric string. Unparsable input is ignored.
func (c *Calculator) SubtractString(s string) *Calculator {
	if d, err := decimal.NewFromString(s); err == nil {
		c.Subtract(d)
	}
	return c
}

// Multiply multiplies the running value by v.
func (c *Calculator) Multiply(v decimal.Decimal) *Calculator {
	c.value = c.rounding(c.value.Mul(v))
	return c
}

// MultiplyString multiplies by a numeric string. Unparsable input is ignored.
func (c *Calculator) MultiplyString(s string) *Calculator {
	if d, err := decimal.NewFromString(s); err == nil {
		c.Multiply(d)
	}
	return c
}

// DivideBy divides the running value by v. The quotient is always bounded to
// an explicit scale: the configured one under RoundingAlways, 18 otherwise.
func (c *Calculator) DivideBy(v decimal.Decimal) *Calculator {
	scale := int32(defaultScale)
	if c.roundingAlways {
		scale = c.scale
	}
	c.value = divide(c.value, v, scale, c.mode)
	return c
}

// DivideByString divides by a numeric string. Unparsable input is ignored.
func (c *Calculator) DivideByString(s string) *Calculator {
	if d, err := decimal.NewFromString(s); err == nil {
		c.DivideBy(d)
	}
	return c
}

// Decimal returns the result at the configured scale and rounding mode.
func (c *Calculator) Decimal() decimal.Decimal {
	return round(c.value, c.scale, c.mode)
}

// IntValue returns the result as an int.
func (c *Calculator) IntValue() int {
	return int(c.Decimal().IntPart())
}

// Int64Value returns the result as an int64.
func (c *Calculator) Int64Value() int64 {
	return c.Decimal().IntPart()
}

func (c *Calculator) rounding(v decimal.Decimal) decimal.Decimal {
	if c.roundingAlways {
		return round(v, c.scale, c.mode)
	}
	return v
}

func round(v decimal.Decimal, scale int32, mode RoundingMode) decimal.Decimal {
	switch mode {
	case RoundDown:
		return v.Truncate(scale)
	case RoundUp:
		t := v.Truncate(scale)
		if t.Equal(v) {
			return t
		}
		step := decimal.New(1, -scale)
		if v.IsNegative() {
			return t.Sub(step)
		}
		return t.Add(step)
	case RoundHalfUp:
		return v.Round(scale)
	case RoundHalfEven:
		return v.RoundBank(scale)
	case RoundCeiling:
		return v.RoundCeil(scale)
	case RoundFloor:
		return v.RoundFloor(scale)
	default:
		return v.Truncate(scale)
	}
}

// divide computes a/b truncated a few digits past scale, then rounds by
// mode. The guard digits keep the final rounding faithful to the exact
// quotient for every supported mode.
func divide(a, b decimal.Decimal, scale int32, mode RoundingMode) decimal.Decimal {
	q, _ := a.QuoRem(b, scale+4)
	return round(q, scale, mode)
}
