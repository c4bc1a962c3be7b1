package stepwise_test

import (
	"errors"
	"math/rand"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/njchilds90/stepwise"
)

// ============================================================
// GCD tests
// ============================================================

func TestGCD_Basic(t *testing.T) {
	g, err := stepwise.GCD(84, 36)
	require.NoError(t, err)
	assert.Equal(t, int64(12), g)

	g, err = stepwise.GCD(-84, 36)
	require.NoError(t, err)
	assert.Equal(t, int64(12), g)
}

func TestGCD_ZeroOperand(t *testing.T) {
	_, err := stepwise.GCD(0, 5)
	assert.True(t, errors.Is(err, stepwise.ErrOutOfRangeArgument))
}

func TestLCM(t *testing.T) {
	l, err := stepwise.LCM(4, 6)
	require.NoError(t, err)
	assert.Equal(t, int64(12), l)

	_, err = stepwise.LCM(4, 0)
	assert.ErrorIs(t, err, stepwise.ErrOutOfRangeArgument)
}

func TestPupilGCD(t *testing.T) {
	cases := []struct {
		a, b, want int64
	}{
		{26, 10, 2},
		{84, 36, 6},  // the table stops at 6; the true gcd is 12
		{91, 39, 13}, // nothing in the table, Euclid finds 13
		{13, 5, 1},
		{100, 75, 25},
		{200, 300, 100},
		{150, 225, 75},
		{-26, 10, 2},
	}
	for _, c := range cases {
		g, err := stepwise.PupilGCD(c.a, c.b)
		require.NoError(t, err)
		assert.Equal(t, c.want, g, "pupil gcd(%d, %d)", c.a, c.b)
	}
}

func TestPupilGCD_ZeroOperand(t *testing.T) {
	_, err := stepwise.PupilGCD(12, 0)
	assert.ErrorIs(t, err, stepwise.ErrOutOfRangeArgument)
}

func TestPupilGCD_FindsDivisorWhenOneExists(t *testing.T) {
	for a := int64(1); a <= 120; a++ {
		for b := int64(1); b <= 120; b++ {
			g, err := stepwise.GCD(a, b)
			require.NoError(t, err)
			p, err := stepwise.PupilGCD(a, b)
			require.NoError(t, err)
			if g > 1 {
				assert.Greater(t, p, int64(1), "pupil gcd(%d, %d)", a, b)
			}
			assert.Zero(t, a%p)
			assert.Zero(t, b%p)
		}
	}
}

// ============================================================
// Rounding
// ============================================================

func TestRound(t *testing.T) {
	assert.Equal(t, "0.67", stepwise.Round(stepwise.ValueFrac(2, 3), 2).String())
	assert.Equal(t, "3", stepwise.Round(stepwise.ValueFrac(5, 2), 0).String())
	assert.Equal(t, "0.125", stepwise.Round(stepwise.ValueFrac(1, 8), 3).String())
}

func TestIsTerminating(t *testing.T) {
	assert.True(t, stepwise.IsTerminating(stepwise.ValueFrac(1, 4), 2))
	assert.False(t, stepwise.IsTerminating(stepwise.ValueFrac(1, 8), 2))
	assert.False(t, stepwise.IsTerminating(stepwise.ValueFrac(1, 3), 10))
}

func TestDigitsNumber(t *testing.T) {
	assert.Equal(t, 0, stepwise.DigitsNumber(decimal.NewFromInt(12)))
	assert.Equal(t, 2, stepwise.DigitsNumber(decimal.RequireFromString("3.25")))
	assert.Equal(t, 1, stepwise.DigitsNumber(decimal.RequireFromString("3.50")))
}

func TestValue_Decimal(t *testing.T) {
	d, ok := stepwise.ValueFrac(5, 2).Decimal()
	require.True(t, ok)
	assert.Equal(t, "2.5", d.String())

	_, ok = stepwise.ValueFrac(1, 3).Decimal()
	assert.False(t, ok)
}

func TestValue_String(t *testing.T) {
	assert.Equal(t, "4", stepwise.NewValue(4).String())
	assert.Equal(t, "0.75", stepwise.ValueFrac(3, 4).String())
	assert.Equal(t, "1/3", stepwise.ValueFrac(1, 3).String())
}

func TestValue_QuoByZero(t *testing.T) {
	_, err := stepwise.NewValue(1).Quo(stepwise.NewValue(0))
	assert.ErrorIs(t, err, stepwise.ErrOutOfRangeArgument)
}

// ============================================================
// Sign rule
// ============================================================

func TestSignOfProduct_MatchesValue(t *testing.T) {
	r := rand.New(rand.NewSource(1))
	for n := 1; n <= 10; n++ {
		for trial := 0; trial < 50; trial++ {
			factors := make([]stepwise.Expr, n)
			negatives := 0
			for i := range factors {
				k := int64(r.Intn(9) + 1)
				if r.Intn(2) == 0 {
					k = -k
					negatives++
				}
				factors[i] = stepwise.N(k)
			}
			want := stepwise.Plus
			if negatives%2 == 1 {
				want = stepwise.Minus
			}
			assert.Equal(t, want, stepwise.SignOfProduct(factors))

			v, err := stepwise.Mul(factors...).Evaluate(nil)
			require.NoError(t, err)
			assert.Equal(t, int(want), v.Sign())
		}
	}
}

func TestSignOfProduct_EvenPower(t *testing.T) {
	sq := stepwise.N(-2).Pow(stepwise.N(2))
	assert.Equal(t, stepwise.Plus, stepwise.SignOfProduct([]stepwise.Expr{sq, stepwise.N(3)}))
	assert.Equal(t, stepwise.Minus, stepwise.SignOfProduct([]stepwise.Expr{sq, stepwise.N(-3)}))
}

func TestValue_Pow(t *testing.T) {
	v, err := stepwise.ValueFrac(2, 3).Pow(-2)
	require.NoError(t, err)
	assert.True(t, v.Equal(stepwise.ValueFrac(9, 4)), v.String())

	v, err = stepwise.NewValue(-2).Pow(3)
	require.NoError(t, err)
	assert.True(t, v.Equal(stepwise.NewValue(-8)))

	_, err = stepwise.NewValue(0).Pow(-1)
	assert.ErrorIs(t, err, stepwise.ErrOutOfRangeArgument)
	_, err = stepwise.NewValue(2).Pow(stepwise.MaxExponent + 1)
	assert.ErrorIs(t, err, stepwise.ErrOutOfRangeArgument)
}
