package orderbook

import (
	"github.com/mExOms/planroute/pkg/money"
	"github.com/shopspring/decimal"
)

// FeePolicy computes the fees charged when an order executes for a given
// side and (base, quote) amount pair. Fees are returned as a map keyed by
// currency, since a policy may charge in base currency, quote currency, or
// both. Implementations must be pure and side-effect free: the search
// engine may invoke a policy many times for the same inputs while exploring
// alternative segments.
type FeePolicy interface {
	// Fees returns the fee amounts charged on an execution of baseAmount
	// (in the order's base currency) converting to quoteAmount (in its
	// quote currency). An error propagates verbatim to FindBestPlans'
	// caller.
	Fees(side Side, baseAmount, quoteAmount money.Money) (map[string]money.Money, error)
}

// NoFee charges nothing.
type noFeePolicy struct{}

func NoFee() FeePolicy { return noFeePolicy{} }

func (noFeePolicy) Fees(_ Side, baseAmount, quoteAmount money.Money) (map[string]money.Money, error) {
	return map[string]money.Money{
		baseAmount.Currency():  money.Zero(baseAmount.Currency(), baseAmount.Scale()),
		quoteAmount.Currency(): money.Zero(quoteAmount.Currency(), quoteAmount.Scale()),
	}, nil
}

// FixedFeePolicy charges a constant amount in a single currency regardless
// of order size.
type FixedFeePolicy struct {
	Currency string
	Amount   decimal.Decimal
	Scale    int32
}

func NewFixedFeePolicy(currency string, amount decimal.Decimal, scale int32) FeePolicy {
	return FixedFeePolicy{Currency: currency, Amount: amount, Scale: scale}
}

func (p FixedFeePolicy) Fees(_ Side, baseAmount, quoteAmount money.Money) (map[string]money.Money, error) {
	fee, err := money.New(p.Currency, p.Amount, p.Scale)
	if err != nil {
		return nil, err
	}
	out := map[string]money.Money{
		baseAmount.Currency():  money.Zero(baseAmount.Currency(), baseAmount.Scale()),
		quoteAmount.Currency(): money.Zero(quoteAmount.Currency(), quoteAmount.Scale()),
	}
	out[p.Currency] = fee
	return out, nil
}

// PercentageFeePolicy charges baseRate of the base-currency amount plus
// quoteRate of the quote-currency amount.
type PercentageFeePolicy struct {
	BaseRate  decimal.Decimal
	QuoteRate decimal.Decimal
}

func NewPercentageFeePolicy(baseRate, quoteRate decimal.Decimal) FeePolicy {
	return PercentageFeePolicy{BaseRate: baseRate, QuoteRate: quoteRate}
}

func (p PercentageFeePolicy) Fees(_ Side, baseAmount, quoteAmount money.Money) (map[string]money.Money, error) {
	baseFee, err := baseAmount.Multiply(p.BaseRate, baseAmount.Scale())
	if err != nil {
		return nil, err
	}
	quoteFee, err := quoteAmount.Multiply(p.QuoteRate, quoteAmount.Scale())
	if err != nil {
		return nil, err
	}
	return map[string]money.Money{
		baseAmount.Currency():  baseFee,
		quoteAmount.Currency(): quoteFee,
	}, nil
}

// VolumeTier is one rung of a TieredFeePolicy's schedule: orders whose
// base-currency amount is >= Threshold are charged BaseRate on the base
// amount and QuoteRate on the quote amount.
type VolumeTier struct {
	Threshold decimal.Decimal
	BaseRate  decimal.Decimal
	QuoteRate decimal.Decimal
}

// TieredFeePolicy picks the highest tier whose threshold the base amount
// meets or exceeds, falling back to the zero tier (first entry) otherwise.
// Tiers must be supplied in ascending Threshold order.
type TieredFeePolicy struct {
	Tiers []VolumeTier
}

func NewTieredFeePolicy(tiers []VolumeTier) FeePolicy {
	return TieredFeePolicy{Tiers: tiers}
}

func (p TieredFeePolicy) Fees(side Side, baseAmount, quoteAmount money.Money) (map[string]money.Money, error) {
	if len(p.Tiers) == 0 {
		return NoFee().Fees(side, baseAmount, quoteAmount)
	}
	selected := p.Tiers[0]
	for _, tier := range p.Tiers {
		if baseAmount.Decimal().GreaterThanOrEqual(tier.Threshold) {
			selected = tier
		}
	}
	return PercentageFeePolicy{BaseRate: selected.BaseRate, QuoteRate: selected.QuoteRate}.Fees(side, baseAmount, quoteAmount)
}

// MakerTakerFeePolicy charges MakerRate when IsMaker reports true for the
// execution, else TakerRate, both applied to the quote-currency amount.
type MakerTakerFeePolicy struct {
	MakerRate decimal.Decimal
	TakerRate decimal.Decimal
	IsMaker   func(side Side, baseAmount, quoteAmount money.Money) bool
}

func NewMakerTakerFeePolicy(makerRate, takerRate decimal.Decimal, isMaker func(Side, money.Money, money.Money) bool) FeePolicy {
	return MakerTakerFeePolicy{MakerRate: makerRate, TakerRate: takerRate, IsMaker: isMaker}
}

func (p MakerTakerFeePolicy) Fees(side Side, baseAmount, quoteAmount money.Money) (map[string]money.Money, error) {
	rate := p.TakerRate
	if p.IsMaker != nil && p.IsMaker(side, baseAmount, quoteAmount) {
		rate = p.MakerRate
	}
	quoteFee, err := quoteAmount.Multiply(rate, quoteAmount.Scale())
	if err != nil {
		return nil, err
	}
	return map[string]money.Money{
		baseAmount.Currency():  money.Zero(baseAmount.Currency(), baseAmount.Scale()),
		quoteAmount.Currency(): quoteFee,
	}, nil
}
