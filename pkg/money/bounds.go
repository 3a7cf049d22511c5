package money

// OrderBounds is an immutable (min, max) Money pair of matching currency
// with min <= max.
type OrderBounds struct {
	min Money
	max Money
}

// NewOrderBounds validates that min and max share a currency and that
// min <= max.
func NewOrderBounds(min, max Money) (OrderBounds, error) {
	const op = "OrderBounds.New"
	if min.Currency() != max.Currency() {
		return OrderBounds{}, invalidInput(op, "min/max currency mismatch: %s vs %s", min.Currency(), max.Currency())
	}
	gt, err := min.GreaterThan(max)
	if err != nil {
		return OrderBounds{}, err
	}
	if gt {
		return OrderBounds{}, invalidInput(op, "min %s exceeds max %s", min.String(), max.String())
	}
	return OrderBounds{min: min, max: max}, nil
}

func (b OrderBounds) Min() Money      { return b.min }
func (b OrderBounds) Max() Money      { return b.max }
func (b OrderBounds) Currency() string { return b.min.Currency() }

// Contains reports whether x falls within [min, max] inclusive.
func (b OrderBounds) Contains(x Money) (bool, error) {
	ltMin, err := x.LessThan(b.min)
	if err != nil {
		return false, err
	}
	if ltMin {
		return false, nil
	}
	gtMax, err := x.GreaterThan(b.max)
	if err != nil {
		return false, err
	}
	return !gtMax, nil
}

// Clamp returns min when x < min, max when x > max, else x unchanged.
func (b OrderBounds) Clamp(x Money) (Money, error) {
	ltMin, err := x.LessThan(b.min)
	if err != nil {
		return Money{}, err
	}
	if ltMin {
		return b.min, nil
	}
	gtMax, err := x.GreaterThan(b.max)
	if err != nil {
		return Money{}, err
	}
	if gtMax {
		return b.max, nil
	}
	return x, nil
}
