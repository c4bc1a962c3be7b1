package stepwise_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/njchilds90/stepwise"
)

func TestProduct_FractionsMergeAndCancel(t *testing.T) {
	e := stepwise.Mul(stepwise.F(5, 4), stepwise.F(5, 5))

	forms, err := stepwise.Reduce(e)
	require.NoError(t, err)
	require.Len(t, forms, 4)
	for i, f := range forms[:3] {
		assert.True(t, f.IsReducible(), "form %d", i)
	}
	_, ok := forms[3].Step()
	assert.False(t, ok)
	assert.Equal(t, "5/4", forms[3].String())

	lines := mustSteps(t, e, stepwise.RenderOptions{})
	assert.Equal(t, []string{"5/4×5/5", "(5×5)/(4×5)", "(~5~×5)/(4×~5~)", "5/4"}, lines)
}

func TestProduct_FoldNumbers(t *testing.T) {
	lines := mustSteps(t, stepwise.Mul(stepwise.N(-2), stepwise.N(3), stepwise.N(-5)), stepwise.RenderOptions{})
	assert.Equal(t, []string{"-2×3×(-5)", "30"}, lines)

	lines = mustSteps(t, stepwise.Mul(stepwise.N(2), stepwise.S("x"), stepwise.N(3)), stepwise.RenderOptions{})
	assert.Equal(t, []string{"2x×3", "6x"}, lines)
}

func TestProduct_MergeLikeBases(t *testing.T) {
	x := stepwise.S("x")
	lines := mustSteps(t, stepwise.Mul(x, x.Pow(stepwise.N(2))), stepwise.RenderOptions{})
	assert.Equal(t, []string{"xx^2", "x^3"}, lines)
}

func TestProduct_NeutralFactors(t *testing.T) {
	x := stepwise.S("x")
	explicit := stepwise.RenderOptions{ExplicitProducts: true}

	assert.Equal(t, []string{"1×x", "x"}, mustSteps(t, stepwise.Mul(stepwise.N(1), x), explicit))
	assert.Equal(t, []string{"x"}, mustSteps(t, stepwise.Mul(stepwise.N(1), x), stepwise.RenderOptions{}))
	assert.Equal(t, []string{"-1×x", "-x"}, mustSteps(t, stepwise.Mul(stepwise.N(-1), x), explicit))
	assert.Equal(t, []string{"-x"}, mustSteps(t, stepwise.Mul(stepwise.N(-1), x), stepwise.RenderOptions{}))
}

func TestProduct_NegatedNegativeFactor(t *testing.T) {
	assert.Equal(t, "-(-3)x", stepwise.Mul(stepwise.N(-1), stepwise.N(-3), stepwise.S("x")).String())
	assert.Equal(t, "(-(-1))^3", stepwise.Mul(stepwise.N(-1), stepwise.N(-1)).Pow(stepwise.N(3)).String())
	assert.Equal(t, `-\left(-3\right)x`, stepwise.Mul(stepwise.N(-1), stepwise.N(-3), stepwise.S("x")).LaTeX())
	assert.Equal(t, "-3x", stepwise.Mul(stepwise.N(-1), stepwise.N(3), stepwise.S("x")).String())
}

func TestProduct_AbsorbZero(t *testing.T) {
	final, err := stepwise.ReduceFully(stepwise.Mul(stepwise.N(0), stepwise.S("x")))
	require.NoError(t, err)
	assert.True(t, final.Equal(stepwise.N(0)))
}

func TestProduct_DistributeExponent(t *testing.T) {
	e := stepwise.Mul(stepwise.N(2), stepwise.S("x")).Pow(stepwise.N(3))
	lines := mustSteps(t, e, stepwise.RenderOptions{})
	assert.Equal(t, []string{"(2x)^3", "2^3x^3", "8x^3"}, lines)
}

func TestProduct_Division(t *testing.T) {
	lines := mustSteps(t, stepwise.Div(stepwise.N(3), stepwise.N(4)), stepwise.RenderOptions{})
	assert.Equal(t, []string{"3 ÷ 4", "3×1/4", "3/4"}, lines)
}

func TestProduct_NoFactors(t *testing.T) {
	_, err := stepwise.NewProduct()
	assert.ErrorIs(t, err, stepwise.ErrWrongArgument)
}

func TestProduct_LaTeX(t *testing.T) {
	e := stepwise.Mul(stepwise.N(2), stepwise.N(-3))
	assert.Equal(t, `2 \times \left(-3\right)`, e.LaTeX())
}
