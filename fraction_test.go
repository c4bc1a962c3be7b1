package stepwise_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/njchilds90/stepwise"
)

func TestFraction_PupilReduction(t *testing.T) {
	lines := mustSteps(t, stepwise.F(26, 10), stepwise.RenderOptions{})
	assert.Equal(t, []string{"26/10", "(13×~2~)/(5×~2~)", "13/5"}, lines)
}

func TestFraction_PupilReductionLaTeX(t *testing.T) {
	lines := mustSteps(t, stepwise.F(26, 10), stepwise.RenderOptions{Format: stepwise.FormatLaTeX})
	assert.Equal(t, []string{
		`\frac{26}{10}`,
		`\frac{13 \times \bcancel{2}}{5 \times \bcancel{2}}`,
		`\frac{13}{5}`,
	}, lines)
}

func TestFraction_LowestTerms(t *testing.T) {
	cases := []struct {
		p, q int64
		want string
	}{
		{84, 36, "7/3"},
		{4, 8, "1/2"},
		{12, 4, "3"},
		{5, -10, "-1/2"},
		{0, 7, "0"},
		{7, 1, "7"},
		{300, 200, "3/2"},
	}
	for _, c := range cases {
		final, err := stepwise.ReduceFully(stepwise.F(c.p, c.q))
		require.NoError(t, err)
		assert.Equal(t, c.want, final.String(), "%d/%d", c.p, c.q)
		assert.False(t, final.IsReducible())

		v, err := final.Evaluate(nil)
		require.NoError(t, err)
		assert.True(t, v.Equal(stepwise.ValueFrac(c.p, c.q)))
	}
}

func TestFraction_WholeNumeratorStruck(t *testing.T) {
	// 2/4: the numerator is the common factor itself.
	lines := mustSteps(t, stepwise.F(2, 4), stepwise.RenderOptions{})
	assert.Equal(t, []string{"2/4", "~2~/(2×~2~)", "1/2"}, lines)
}

func TestFraction_Decimals(t *testing.T) {
	f, err := stepwise.NewFraction(stepwise.D("1.5"), stepwise.D("0.5"))
	require.NoError(t, err)
	lines := mustSteps(t, f, stepwise.RenderOptions{})
	require.NotEmpty(t, lines)
	assert.Equal(t, "1.5/0.5", lines[0])
	assert.Equal(t, "15/5", lines[1])
	assert.Equal(t, "3", lines[len(lines)-1])
}

func TestFraction_NegativeDenominator(t *testing.T) {
	lines := mustSteps(t, stepwise.F(3, -4), stepwise.RenderOptions{})
	assert.Equal(t, []string{"3/(-4)", "-3/4"}, lines)
}

func TestFraction_ZeroDenominator(t *testing.T) {
	_, err := stepwise.NewFraction(stepwise.N(1), stepwise.N(0))
	assert.ErrorIs(t, err, stepwise.ErrOutOfRangeArgument)
	assert.Panics(t, func() { stepwise.F(1, 0) })
}

func TestFraction_UncompatibleOperand(t *testing.T) {
	_, err := stepwise.NewFraction(stepwise.M(2, "x", 1), stepwise.N(3))
	assert.ErrorIs(t, err, stepwise.ErrUncompatibleType)
}

func TestFraction_LiteralCancellation(t *testing.T) {
	num := stepwise.Mul(stepwise.N(3), stepwise.S("x"))
	den := stepwise.Mul(stepwise.N(5), stepwise.S("x"))
	f, err := stepwise.NewFraction(num, den)
	require.NoError(t, err)
	lines := mustSteps(t, f, stepwise.RenderOptions{})
	assert.Equal(t, []string{"(3x)/(5x)", "(3×~x~)/(5×~x~)", "3/5"}, lines)
}

func TestFraction_DecimalResult(t *testing.T) {
	opts := stepwise.RenderOptions{DecimalResult: true}
	assert.Equal(t, "0.75", stepwise.F(3, 4).Render(opts))
	assert.Equal(t, "1/3", stepwise.F(1, 3).Render(opts))

	opts.KeepFractionForm = true
	assert.Equal(t, "3/4", stepwise.F(3, 4).Render(opts))
}

func TestFraction_LaTeXMinus(t *testing.T) {
	assert.Equal(t, `-\frac{3}{4}`, stepwise.F(-3, 4).LaTeX())
}
