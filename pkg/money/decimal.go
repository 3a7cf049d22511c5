// Package money provides the exact, deterministic decimal and monetary value
// types the rest of the planner is built on: Money, ExchangeRate,
// OrderBounds and ToleranceWindow. No floating point is used anywhere in a
// code path that affects a result; the search's time-budget check in
// internal/search compares whole elapsed milliseconds and never influences
// which paths rank ahead of others.
package money

import (
	"strings"

	"github.com/shopspring/decimal"
)

// CanonicalScale is the internal working scale used whenever a component
// does not carry its own explicit scale (cumulative rate products, path
// costs, tolerance windows).
const CanonicalScale = 18

// MaxScale is the largest scale any Money, ExchangeRate or arithmetic
// operation in this package will accept.
const MaxScale = 50

func init() {
	// HALF_UP, ties away from zero: 0.5 -> 1, -0.5 -> -1, 1.005 (scale 2) -> 1.01.
	decimal.DivisionPrecision = CanonicalScale
}

// ValidateScale rejects scales outside [0, MaxScale].
func ValidateScale(op string, scale int32) error {
	if scale < 0 || scale > MaxScale {
		return invalidInput(op, "scale %d out of range [0,%d]", scale, MaxScale)
	}
	return nil
}

// Normalize rounds value to scale using HALF_UP (ties move away from zero).
func Normalize(value decimal.Decimal, scale int32) decimal.Decimal {
	return value.Round(scale)
}

// EnsureNumeric validates that every supplied string parses as a decimal,
// returning a precision-violation error naming the first offender.
func EnsureNumeric(op string, values ...string) ([]decimal.Decimal, error) {
	out := make([]decimal.Decimal, 0, len(values))
	for _, v := range values {
		d, err := decimal.NewFromString(strings.TrimSpace(v))
		if err != nil {
			return nil, precisionViolation(op, "%q is not a valid decimal: %v", v, err)
		}
		out = append(out, d)
	}
	return out, nil
}

// Add returns left+right normalized to scale, HALF_UP.
func Add(left, right decimal.Decimal, scale int32) decimal.Decimal {
	return Normalize(left.Add(right), scale)
}

// Sub returns left-right normalized to scale, HALF_UP.
func Sub(left, right decimal.Decimal, scale int32) decimal.Decimal {
	return Normalize(left.Sub(right), scale)
}

// Mul returns left*right normalized to scale, HALF_UP.
func Mul(left, right decimal.Decimal, scale int32) decimal.Decimal {
	return Normalize(left.Mul(right), scale)
}

// Div returns left/right normalized to scale, HALF_UP. A zero divisor is a
// precision-violation, not an invalid-input: it signals a programming
// mistake (e.g. a zero exchange rate slipping past construction checks).
func Div(op string, left, right decimal.Decimal, scale int32) (decimal.Decimal, error) {
	if right.IsZero() {
		return decimal.Decimal{}, precisionViolation(op, "division by zero")
	}
	return left.DivRound(right, scale), nil
}

// Compare returns -1, 0 or 1 comparing left and right after normalizing both
// to scale.
func Compare(left, right decimal.Decimal, scale int32) int {
	return Normalize(left, scale).Cmp(Normalize(right, scale))
}

// ScaleForComparison picks the larger of two scales, falling back to
// fallback when both are zero-valued (e.g. comparing against an untyped
// literal).
func ScaleForComparison(a, b, fallback int32) int32 {
	s := a
	if b > s {
		s = b
	}
	if s == 0 {
		return fallback
	}
	return s
}
