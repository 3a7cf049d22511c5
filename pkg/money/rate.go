package money

import "github.com/shopspring/decimal"

// ExchangeRate is an immutable unidirectional rate: one unit of base buys
// rate units of quote.
type ExchangeRate struct {
	base  string
	quote string
	rate  decimal.Decimal
	scale int32
}

// NewExchangeRate validates base != quote, rate > 0, and scale <= MaxScale.
func NewExchangeRate(base, quote string, rate decimal.Decimal, scale int32) (ExchangeRate, error) {
	const op = "ExchangeRate.New"
	if err := ValidateCurrency(op, base); err != nil {
		return ExchangeRate{}, err
	}
	if err := ValidateCurrency(op, quote); err != nil {
		return ExchangeRate{}, err
	}
	if base == quote {
		return ExchangeRate{}, invalidInput(op, "base and quote currency must differ, got %s", base)
	}
	if err := ValidateScale(op, scale); err != nil {
		return ExchangeRate{}, err
	}
	normalized := Normalize(rate, scale)
	if !normalized.IsPositive() {
		return ExchangeRate{}, invalidInput(op, "rate must be positive, got %s", normalized.String())
	}
	return ExchangeRate{base: base, quote: quote, rate: normalized, scale: scale}, nil
}

func (r ExchangeRate) Base() string            { return r.base }
func (r ExchangeRate) Quote() string            { return r.quote }
func (r ExchangeRate) Rate() decimal.Decimal    { return r.rate }
func (r ExchangeRate) Scale() int32             { return r.scale }

// Convert converts a base-currency Money amount into quote currency at an
// optional explicit result scale (defaults to the Money's own scale).
func (r ExchangeRate) Convert(m Money, resultScale ...int32) (Money, error) {
	const op = "ExchangeRate.Convert"
	if m.Currency() != r.base {
		return Money{}, invalidInput(op, "money currency %s does not match rate base %s", m.Currency(), r.base)
	}
	s := m.Scale()
	if len(resultScale) > 0 {
		s = resultScale[0]
	}
	converted := Mul(m.Decimal(), r.rate, s)
	return New(r.quote, converted, s)
}

// Invert swaps base and quote and takes the reciprocal rate, rounded
// HALF_UP at the same scale. Panics are never used; a zero rate cannot
// exist post-construction so this never fails at runtime, but Invert still
// routes through the shared Div helper to keep the precision-violation path
// uniform with the rest of the package.
func (r ExchangeRate) Invert() (ExchangeRate, error) {
	const op = "ExchangeRate.Invert"
	reciprocal, err := Div(op, decimal.NewFromInt(1), r.rate, r.scale)
	if err != nil {
		return ExchangeRate{}, err
	}
	return NewExchangeRate(r.quote, r.base, reciprocal, r.scale)
}
