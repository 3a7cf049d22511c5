package money

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMoney_New_RejectsBadCurrency(t *testing.T) {
	_, err := New("us", decimal.NewFromInt(10), 2)
	assert.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestMoney_New_RejectsNegative(t *testing.T) {
	_, err := New("USD", decimal.NewFromInt(-5), 2)
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestMoney_New_RejectsScaleOutOfRange(t *testing.T) {
	_, err := New("USD", decimal.NewFromInt(5), 51)
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestMoney_HalfUpRounding(t *testing.T) {
	cases := []struct {
		in    string
		scale int32
		want  string
	}{
		{"0.5", 0, "1"},
		{"1.005", 2, "1.01"},
		{"1.2345", 3, "1.235"},
	}
	for _, c := range cases {
		d, err := decimal.NewFromString(c.in)
		require.NoError(t, err)
		m, err := New("USD", d, c.scale)
		require.NoError(t, err)
		assert.Equal(t, c.want, m.Decimal().String())
	}
}

func TestMoney_WithScale_SameScaleIsNoop(t *testing.T) {
	m := MustNew("USD", decimal.NewFromInt(10), 2)
	m2, err := m.WithScale(2)
	require.NoError(t, err)
	assert.Equal(t, m, m2)
}

func TestMoney_Add_RequiresSameCurrency(t *testing.T) {
	a := MustNew("USD", decimal.NewFromInt(10), 2)
	b := MustNew("EUR", decimal.NewFromInt(5), 2)
	_, err := a.Add(b)
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestMoney_Add_UsesMaxScale(t *testing.T) {
	a := MustNew("USD", decimal.NewFromInt(10), 2)
	b := MustNew("USD", decimal.RequireFromString("1.2345"), 4)
	sum, err := a.Add(b)
	require.NoError(t, err)
	assert.Equal(t, int32(4), sum.Scale())
	assert.Equal(t, "11.2345", sum.Decimal().String())
}

func TestMoney_Subtract_NegativeResultIsInvalid(t *testing.T) {
	a := MustNew("USD", decimal.NewFromInt(5), 2)
	b := MustNew("USD", decimal.NewFromInt(10), 2)
	_, err := a.Subtract(b)
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestMoney_Multiply_StringOperand(t *testing.T) {
	m := MustNew("USD", decimal.NewFromInt(100), 2)
	out, err := m.Multiply("0.02", 2)
	require.NoError(t, err)
	assert.Equal(t, "2.00", out.Decimal().StringFixed(2))
}

func TestMoney_Divide_ByZeroIsPrecisionViolation(t *testing.T) {
	m := MustNew("USD", decimal.NewFromInt(100), 2)
	_, err := m.Divide(decimal.Zero, 2)
	assert.ErrorIs(t, err, ErrPrecisionViolation)
}

func TestMoney_Compare(t *testing.T) {
	a := MustNew("USD", decimal.NewFromInt(10), 2)
	b := MustNew("USD", decimal.NewFromInt(20), 2)
	lt, err := a.LessThan(b)
	require.NoError(t, err)
	assert.True(t, lt)
	gt, err := b.GreaterThan(a)
	require.NoError(t, err)
	assert.True(t, gt)
}

func TestMoney_Equals_ScaleInsensitive(t *testing.T) {
	a := MustNew("USD", decimal.NewFromInt(10), 2)
	b := MustNew("USD", decimal.RequireFromString("10.000"), 3)
	assert.True(t, a.Equals(b))
}

func TestMoney_Equals_CurrencyMismatchIsFalseNotError(t *testing.T) {
	a := MustNew("USD", decimal.NewFromInt(10), 2)
	b := MustNew("EUR", decimal.NewFromInt(10), 2)
	assert.False(t, a.Equals(b))
}
