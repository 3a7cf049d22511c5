package money

import (
	"regexp"

	"github.com/shopspring/decimal"
)

var currencyCodeRE = regexp.MustCompile(`^[A-Z]{3,12}$`)

// ValidateCurrency rejects anything but 3-12 uppercase letters.
func ValidateCurrency(op, currency string) error {
	if !currencyCodeRE.MatchString(currency) {
		return invalidInput(op, "currency %q must be 3-12 uppercase letters", currency)
	}
	return nil
}

// Money is an immutable (currency, amount, scale) triple. The amount is
// always normalized to exactly scale fractional digits and is never
// negative.
type Money struct {
	currency string
	amount   decimal.Decimal
	scale    int32
}

// New builds a Money, validating the currency code, scale bound and
// non-negativity, then normalizing amount to scale with HALF_UP rounding.
func New(currency string, amount decimal.Decimal, scale int32) (Money, error) {
	const op = "Money.New"
	if err := ValidateCurrency(op, currency); err != nil {
		return Money{}, err
	}
	if err := ValidateScale(op, scale); err != nil {
		return Money{}, err
	}
	normalized := Normalize(amount, scale)
	if normalized.IsNegative() {
		return Money{}, invalidInput(op, "amount %s is negative", normalized.String())
	}
	return Money{currency: currency, amount: normalized, scale: scale}, nil
}

// MustNew is New but panics on error; reserved for tests and constant
// fixtures where the input is known-good.
func MustNew(currency string, amount decimal.Decimal, scale int32) Money {
	m, err := New(currency, amount, scale)
	if err != nil {
		panic(err)
	}
	return m
}

// Zero returns a zero-valued Money in currency at scale.
func Zero(currency string, scale int32) Money {
	return MustNew(currency, decimal.Zero, scale)
}

func (m Money) Currency() string        { return m.currency }
func (m Money) Scale() int32            { return m.scale }
func (m Money) Decimal() decimal.Decimal { return m.amount }
func (m Money) String() string          { return m.amount.String() + " " + m.currency }
func (m Money) IsZero() bool            { return m.amount.IsZero() }

func (m Money) sameCurrency(op string, other Money) error {
	if m.currency != other.currency {
		return invalidInput(op, "currency mismatch: %s vs %s", m.currency, other.currency)
	}
	return nil
}

// resultScale picks the greater of the two operand scales unless an
// override is supplied, in which case its first value is used as given.
func resultScale(a, b int32, override []int32) int32 {
	if len(override) > 0 {
		return override[0]
	}
	if a > b {
		return a
	}
	return b
}

// Add returns m+other in the same currency. Scale defaults to the larger of
// the two operand scales unless scaleOverride is supplied.
func (m Money) Add(other Money, scaleOverride ...int32) (Money, error) {
	const op = "Money.Add"
	if err := m.sameCurrency(op, other); err != nil {
		return Money{}, err
	}
	s := resultScale(m.scale, other.scale, scaleOverride)
	return New(m.currency, m.amount.Add(other.amount), s)
}

// Subtract returns m-other in the same currency; a negative result is an
// invalid-input error rather than silently clamping to zero, since Money
// itself never represents a signed quantity.
func (m Money) Subtract(other Money, scaleOverride ...int32) (Money, error) {
	const op = "Money.Subtract"
	if err := m.sameCurrency(op, other); err != nil {
		return Money{}, err
	}
	s := resultScale(m.scale, other.scale, scaleOverride)
	return New(m.currency, m.amount.Sub(other.amount), s)
}

// Multiply scales m's amount by factor, which may be a decimal string or a
// decimal.Decimal.
func (m Money) Multiply(factor interface{}, scaleOverride ...int32) (Money, error) {
	const op = "Money.Multiply"
	f, err := toDecimal(op, factor)
	if err != nil {
		return Money{}, err
	}
	s := resultScale(m.scale, m.scale, scaleOverride)
	return New(m.currency, m.amount.Mul(f), s)
}

// Divide divides m's amount by divisor, which may be a decimal string or a
// decimal.Decimal. A zero divisor is a precision-violation.
func (m Money) Divide(divisor interface{}, scaleOverride ...int32) (Money, error) {
	const op = "Money.Divide"
	d, err := toDecimal(op, divisor)
	if err != nil {
		return Money{}, err
	}
	s := resultScale(m.scale, m.scale, scaleOverride)
	q, err := Div(op, m.amount, d, s)
	if err != nil {
		return Money{}, err
	}
	return New(m.currency, q, s)
}

func toDecimal(op string, v interface{}) (decimal.Decimal, error) {
	switch x := v.(type) {
	case decimal.Decimal:
		return x, nil
	case string:
		values, err := EnsureNumeric(op, x)
		if err != nil {
			return decimal.Decimal{}, err
		}
		return values[0], nil
	default:
		return decimal.Decimal{}, invalidInput(op, "operand must be a decimal.Decimal or string, got %T", v)
	}
}

// Compare returns -1, 0 or 1. Currencies must match.
func (m Money) Compare(other Money) (int, error) {
	const op = "Money.Compare"
	if err := m.sameCurrency(op, other); err != nil {
		return 0, err
	}
	s := ScaleForComparison(m.scale, other.scale, CanonicalScale)
	return Compare(m.amount, other.amount, s), nil
}

func (m Money) GreaterThan(other Money) (bool, error) {
	c, err := m.Compare(other)
	return c > 0, err
}

func (m Money) LessThan(other Money) (bool, error) {
	c, err := m.Compare(other)
	return c < 0, err
}

// Equals reports numeric equality at the greater of the two scales; it
// returns false (never an error) on currency mismatch.
func (m Money) Equals(other Money) bool {
	if m.currency != other.currency {
		return false
	}
	c, _ := m.Compare(other)
	return c == 0
}

// WithScale returns m re-normalized to scale, returning m unchanged when
// scale already matches.
func (m Money) WithScale(scale int32) (Money, error) {
	if scale == m.scale {
		return m, nil
	}
	return New(m.currency, m.amount, scale)
}
