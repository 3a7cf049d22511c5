package money

import "github.com/shopspring/decimal"

// ToleranceOrigin records which side of the window the heuristic tolerance
// was derived from.
type ToleranceOrigin string

const (
	OriginUnder ToleranceOrigin = "under"
	OriginOver  ToleranceOrigin = "over"
	OriginEqual ToleranceOrigin = "equal"
)

// ToleranceWindow bounds acceptable spend deviation: underMax is the
// maximum allowed shortfall below the requested spend, overMax is the
// maximum allowed overspend, both normalized to CanonicalScale and
// constrained to [0, 1).
type ToleranceWindow struct {
	underMax decimal.Decimal
	overMax  decimal.Decimal
	// heuristic is the larger of the two bounds when they differ, else
	// their shared value.
	heuristic decimal.Decimal
	origin    ToleranceOrigin
}

// NewToleranceWindow normalizes under/over to CanonicalScale and rejects
// values outside [0, 1).
func NewToleranceWindow(under, over decimal.Decimal) (ToleranceWindow, error) {
	const op = "ToleranceWindow.New"
	u := Normalize(under, CanonicalScale)
	o := Normalize(over, CanonicalScale)
	one := decimal.NewFromInt(1)
	if u.IsNegative() || u.GreaterThanOrEqual(one) {
		return ToleranceWindow{}, invalidInput(op, "underMax %s must be in [0,1)", u.String())
	}
	if o.IsNegative() || o.GreaterThanOrEqual(one) {
		return ToleranceWindow{}, invalidInput(op, "overMax %s must be in [0,1)", o.String())
	}
	heuristic := u
	origin := OriginEqual
	switch {
	case u.GreaterThan(o):
		heuristic, origin = u, OriginUnder
	case o.GreaterThan(u):
		heuristic, origin = o, OriginOver
	}
	return ToleranceWindow{underMax: u, overMax: o, heuristic: heuristic, origin: origin}, nil
}

func (w ToleranceWindow) UnderMax() decimal.Decimal    { return w.underMax }
func (w ToleranceWindow) OverMax() decimal.Decimal     { return w.overMax }
func (w ToleranceWindow) Heuristic() decimal.Decimal   { return w.heuristic }
func (w ToleranceWindow) Origin() ToleranceOrigin      { return w.origin }

// EvaluateResidual returns the normalized signed residual
// (actual-requested)/requested when it falls within [-underMax, +overMax],
// and ok=false otherwise. A requested amount of zero accepts only an actual
// amount of exactly zero, returning a zero residual.
func (w ToleranceWindow) EvaluateResidual(requested, actual Money) (residual decimal.Decimal, ok bool, err error) {
	const op = "ToleranceWindow.EvaluateResidual"
	if requested.Currency() != actual.Currency() {
		return decimal.Decimal{}, false, invalidInput(op, "currency mismatch: %s vs %s", requested.Currency(), actual.Currency())
	}
	if requested.IsZero() {
		return decimal.Zero, actual.IsZero(), nil
	}
	diff := actual.Decimal().Sub(requested.Decimal())
	ratio, divErr := Div(op, diff, requested.Decimal(), CanonicalScale)
	if divErr != nil {
		return decimal.Decimal{}, false, divErr
	}
	negUnder := w.underMax.Neg()
	if ratio.LessThan(negUnder) || ratio.GreaterThan(w.overMax) {
		return ratio, false, nil
	}
	return ratio, true, nil
}
