package stepwise_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/njchilds90/stepwise"
)

func solve(t *testing.T, eq *stepwise.Equation, opts stepwise.SolveOptions) *stepwise.Resolution {
	t.Helper()
	res, err := eq.AutoResolution(opts)
	require.NoError(t, err)
	return res
}

func TestAutoResolution_Linear(t *testing.T) {
	eq := stepwise.Eq(stepwise.SumOf(stepwise.M(2, "x", 1), stepwise.N(3)), stepwise.N(8))
	res := solve(t, eq, stepwise.SolveOptions{})

	assert.Equal(t, stepwise.Solved, res.Outcome)
	assert.Equal(t, []string{"2x + 3 = 8", "2x = 8 - 3", "2x = 5", "x = 5/2"}, res.Render(stepwise.RenderOptions{}))
	require.Len(t, res.Solutions, 1)
	assert.True(t, res.Solutions[0].Equal(stepwise.ValueFrac(5, 2)))
}

func TestAutoResolution_DecimalLine(t *testing.T) {
	eq := stepwise.Eq(stepwise.SumOf(stepwise.M(3, "x", 1), stepwise.N(-1)), stepwise.N(1))
	res := solve(t, eq, stepwise.SolveOptions{DecimalResult: true, Precision: 2})

	last := res.Last()
	assert.True(t, last.Approximate)
	assert.Equal(t, "x ≈ 0.67", last.Render(stepwise.RenderOptions{}))
	assert.Equal(t, `x \approx 0.67`, last.Render(stepwise.RenderOptions{Format: stepwise.FormatLaTeX}))
	assert.True(t, res.Solutions[0].Equal(stepwise.ValueFrac(2, 3)))
}

func TestAutoResolution_DecimalLineExact(t *testing.T) {
	eq := stepwise.Eq(stepwise.M(4, "x", 1), stepwise.N(3))
	res := solve(t, eq, stepwise.SolveOptions{DecimalResult: true, Precision: 2})

	lines := res.Render(stepwise.RenderOptions{})
	assert.Equal(t, []string{"4x = 3", "x = 3/4", "x = 0.75"}, lines)
	assert.False(t, res.Last().Approximate)
}

func TestAutoResolution_NoSolution(t *testing.T) {
	eq := stepwise.Eq(stepwise.SumOf(stepwise.M(0, "x", 1), stepwise.N(-36)), stepwise.N(8))
	res := solve(t, eq, stepwise.SolveOptions{})

	assert.Equal(t, stepwise.NoSolution, res.Outcome)
	assert.Equal(t, []string{"0x - 36 = 8", "0x = 8 + 36", "0x = 44"}, res.Render(stepwise.RenderOptions{}))
	assert.Empty(t, res.Solutions)
}

func TestAutoResolution_InfiniteSolutions(t *testing.T) {
	side := func() stepwise.Expr { return stepwise.SumOf(stepwise.M(2, "x", 1), stepwise.N(3)) }
	res := solve(t, stepwise.Eq(side(), side()), stepwise.SolveOptions{})

	assert.Equal(t, stepwise.InfiniteSolutions, res.Outcome)
	assert.Equal(t, []string{
		"2x + 3 = 2x + 3",
		"2x + 3 - 2x = 3",
		"2x - 2x = 3 - 3",
		"(2 - 2)x = 0",
		"0x = 0",
	}, res.Render(stepwise.RenderOptions{}))
}

func TestAutoResolution_UnknownOnRight(t *testing.T) {
	eq := stepwise.Eq(stepwise.N(12), stepwise.M(3, "x", 1))
	res := solve(t, eq, stepwise.SolveOptions{})

	assert.Equal(t, []string{"12 = 3x", "3x = 12", "x = 12/3", "x = (4×~3~)/~3~", "x = 4"}, res.Render(stepwise.RenderOptions{}))
	assert.True(t, res.Solutions[0].Equal(stepwise.NewValue(4)))
}

func TestAutoResolution_NegativeCoefficient(t *testing.T) {
	eq := stepwise.Eq(stepwise.M(-1, "x", 1), stepwise.N(5))
	res := solve(t, eq, stepwise.SolveOptions{})

	assert.Equal(t, []string{"-x = 5", "x = -5"}, res.Render(stepwise.RenderOptions{}))
	assert.True(t, res.Solutions[0].Equal(stepwise.NewValue(-5)))
}

func TestAutoResolution_Expansion(t *testing.T) {
	exp, err := stepwise.NewExpandable(stepwise.N(2), stepwise.SumOf(stepwise.S("x"), stepwise.N(1)))
	require.NoError(t, err)
	res := solve(t, stepwise.Eq(exp, stepwise.N(10)), stepwise.SolveOptions{})

	assert.Equal(t, stepwise.Solved, res.Outcome)
	assert.Equal(t, "2(x + 1) = 10", res.Steps[0].Render(stepwise.RenderOptions{}))
	assert.Equal(t, "2x + 2×1 = 10", res.Steps[1].Render(stepwise.RenderOptions{}))
	assert.True(t, res.Solutions[0].Equal(stepwise.NewValue(4)))
}

func TestAutoResolution_NestedSums(t *testing.T) {
	x := stepwise.S("x")
	exp, err := stepwise.NewExpandable(stepwise.N(-3), stepwise.SumOf(x, stepwise.N(-1)))
	require.NoError(t, err)

	cases := []struct {
		name string
		eq   *stepwise.Equation
		want int64
	}{
		{"expansion beside a term", stepwise.Eq(stepwise.SumOf(exp, x), stepwise.N(7)), -2},
		{"bracketed sum beside a term", stepwise.Eq(stepwise.SumOf(stepwise.SumOf(stepwise.M(2, "x", 1), stepwise.N(3)), x), stepwise.N(9)), 2},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			res := solve(t, c.eq, stepwise.SolveOptions{})
			assert.Equal(t, stepwise.Solved, res.Outcome)
			require.Len(t, res.Solutions, 1)
			assert.True(t, res.Solutions[0].Equal(stepwise.NewValue(c.want)), res.Solutions[0].String())
			assert.Equal(t, "x = "+stepwise.N(c.want).String(), res.Last().Render(stepwise.RenderOptions{}))
		})
	}
}

func TestAutoResolution_NoRepeatedLines(t *testing.T) {
	x := stepwise.S("x")
	exp, err := stepwise.NewExpandable(stepwise.N(2), stepwise.SumOf(x, stepwise.N(3)))
	require.NoError(t, err)
	twoThirds, err := stepwise.NewMonomial(stepwise.F(2, 3), "x", 1)
	require.NoError(t, err)

	equations := map[string]*stepwise.Equation{
		"expansion":     stepwise.Eq(exp, stepwise.N(10)),
		"division":      stepwise.Eq(stepwise.SumOf(stepwise.Div(x, stepwise.N(2)), stepwise.N(1)), stepwise.N(3)),
		"fraction":      stepwise.Eq(twoThirds, stepwise.N(4)),
		"opposite term": stepwise.Eq(stepwise.SumOf(x, stepwise.M(-1, "x", 1)), stepwise.N(5)),
	}
	for name, eq := range equations {
		t.Run(name, func(t *testing.T) {
			lines := solve(t, eq, stepwise.SolveOptions{}).Render(stepwise.RenderOptions{})
			for i := 1; i < len(lines); i++ {
				assert.NotEqual(t, lines[i-1], lines[i], "line %d repeats: %v", i, lines)
			}
		})
	}
}

func TestAutoResolution_UnitFractionCoefficient(t *testing.T) {
	half, err := stepwise.NewMonomial(stepwise.F(1, 2), "x", 1)
	require.NoError(t, err)
	res := solve(t, stepwise.Eq(half, stepwise.N(2)), stepwise.SolveOptions{})

	require.Len(t, res.Solutions, 1)
	assert.True(t, res.Solutions[0].Equal(stepwise.NewValue(4)))
	for _, l := range res.Render(stepwise.RenderOptions{}) {
		assert.NotContains(t, l, "/1", "unit denominator in %q", l)
	}
	assert.Equal(t, "x = 4", res.Last().Render(stepwise.RenderOptions{}))
}

func TestAutoResolution_SquareRoots(t *testing.T) {
	eq := stepwise.Eq(stepwise.S("x").Pow(stepwise.N(2)), stepwise.N(16))
	res := solve(t, eq, stepwise.SolveOptions{Pythagorean: true, Length: true})

	assert.Equal(t, stepwise.Solved, res.Outcome)
	assert.Equal(t, []string{
		"x^2 = 16",
		"x = 4 or x = -4",
		"x = 4 (because x is positive)",
	}, res.Render(stepwise.RenderOptions{}))
	require.Len(t, res.Solutions, 1)
	assert.True(t, res.Solutions[0].Equal(stepwise.NewValue(4)))
	assert.Equal(t, "because x is positive", res.Last().Justification)
}

func TestAutoResolution_BothRoots(t *testing.T) {
	eq := stepwise.Eq(stepwise.S("x").Pow(stepwise.N(2)), stepwise.N(9))
	res := solve(t, eq, stepwise.SolveOptions{Pythagorean: true})

	assert.Equal(t, "x = 3 or x = -3", res.Last().Render(stepwise.RenderOptions{}))
	assert.Len(t, res.Solutions, 2)
}

func TestAutoResolution_IrrationalRoot(t *testing.T) {
	eq := stepwise.Eq(stepwise.S("x").Pow(stepwise.N(2)), stepwise.N(8))

	res := solve(t, eq, stepwise.SolveOptions{Pythagorean: true, Length: true})
	assert.Empty(t, res.Solutions)
	assert.Equal(t, "x = 2√2 (because x is positive)", res.Render(stepwise.RenderOptions{})[len(res.Steps)-1])

	res = solve(t, eq, stepwise.SolveOptions{Pythagorean: true, Length: true, DecimalResult: true, Precision: 2})
	require.Len(t, res.Solutions, 1)
	assert.Equal(t, "2.83", res.Solutions[0].String())
	assert.Equal(t, "x ≈ 2.83", res.Last().Render(stepwise.RenderOptions{}))
}

func TestAutoResolution_NegativeSquare(t *testing.T) {
	eq := stepwise.Eq(stepwise.S("x").Pow(stepwise.N(2)), stepwise.N(-4))
	res := solve(t, eq, stepwise.SolveOptions{Pythagorean: true})
	assert.Equal(t, stepwise.NoSolution, res.Outcome)
}

func TestAutoResolution_QuadraticRejected(t *testing.T) {
	eq := stepwise.Eq(stepwise.S("x").Pow(stepwise.N(2)), stepwise.N(16))
	_, err := eq.AutoResolution(stepwise.SolveOptions{})
	assert.ErrorIs(t, err, stepwise.ErrImpossibleAction)
}

func TestAutoResolution_TwoUnknowns(t *testing.T) {
	eq := stepwise.Eq(stepwise.SumOf(stepwise.S("x"), stepwise.S("y")), stepwise.N(1))
	_, err := eq.AutoResolution(stepwise.SolveOptions{})
	assert.ErrorIs(t, err, stepwise.ErrImpossibleAction)

	res, err := eq.WithSubstitutions(stepwise.Env{"y": stepwise.NewValue(4)}).AutoResolution(stepwise.SolveOptions{})
	require.NoError(t, err)
	assert.True(t, res.Solutions[0].Equal(stepwise.NewValue(-3)))
	assert.Equal(t, "x + 4 = 1", res.Steps[1].Render(stepwise.RenderOptions{}))
}

// ============================================================
// Pythagorean theorem
// ============================================================

func TestPythagorean_Hypotenuse(t *testing.T) {
	known := stepwise.Env{"AB": stepwise.NewValue(3), "AC": stepwise.NewValue(4)}
	eq, err := stepwise.NewPythagoreanEquation("BC", "AB", "AC", known)
	require.NoError(t, err)

	res := solve(t, eq, stepwise.SolveOptions{})
	assert.Equal(t, []string{
		"BC^2 = AB^2 + AC^2",
		"BC^2 = 3^2 + 4^2",
		"BC^2 = 9 + 4^2",
		"BC^2 = 9 + 16",
		"BC^2 = 25",
		"BC = 5 or BC = -5",
		"BC = 5 (because BC is positive)",
	}, res.Render(stepwise.RenderOptions{}))
	assert.True(t, res.Solutions[0].Equal(stepwise.NewValue(5)))
	assert.Equal(t, "BC = 5 cm (because BC is positive)", res.Render(stepwise.RenderOptions{DisplayUnit: "cm"})[6])
}

func TestPythagorean_Leg(t *testing.T) {
	known := stepwise.Env{"BC": stepwise.NewValue(13), "AB": stepwise.NewValue(5)}
	eq, err := stepwise.NewPythagoreanEquation("BC", "AB", "AC", known)
	require.NoError(t, err)

	res := solve(t, eq, stepwise.SolveOptions{})
	assert.Equal(t, "AC^2 = BC^2 - AB^2", res.Steps[0].Render(stepwise.RenderOptions{}))
	assert.Equal(t, stepwise.Solved, res.Outcome)
	assert.True(t, res.Solutions[0].Equal(stepwise.NewValue(12)))
}

func TestPythagorean_Validation(t *testing.T) {
	_, err := stepwise.NewPythagoreanEquation("BC", "AB", "AC", stepwise.Env{"AB": stepwise.NewValue(3)})
	assert.ErrorIs(t, err, stepwise.ErrImpossibleAction)

	_, err = stepwise.NewPythagoreanEquation("BC", "AB", "AC", stepwise.Env{"AB": stepwise.NewValue(-3), "AC": stepwise.NewValue(4)})
	assert.ErrorIs(t, err, stepwise.ErrOutOfRangeArgument)

	_, err = stepwise.NewPythagoreanEquation("BC", "BC", "AC", stepwise.Env{"AC": stepwise.NewValue(4)})
	assert.ErrorIs(t, err, stepwise.ErrWrongArgument)
}

func TestEquality_Render(t *testing.T) {
	e, err := stepwise.NewEquality([]stepwise.Expr{stepwise.S("x"), stepwise.F(2, 3), stepwise.D("0.67")}, true)
	require.NoError(t, err)
	assert.Equal(t, "x = 2/3 ≈ 0.67", e.String())

	_, err = stepwise.NewEquality([]stepwise.Expr{stepwise.N(1)}, false)
	assert.ErrorIs(t, err, stepwise.ErrWrongArgument)
}

func TestSubstitutableEquality(t *testing.T) {
	se, err := stepwise.NewSubstitutableEquality(
		[]stepwise.Expr{stepwise.S("P"), stepwise.Mul(stepwise.N(4), stepwise.S("c"))},
		stepwise.Env{"c": stepwise.NewValue(3)},
	)
	require.NoError(t, err)
	assert.Equal(t, "P = 4×3", se.Substitute().String())

	_, err = stepwise.NewSubstitutableEquality([]stepwise.Expr{stepwise.N(1), stepwise.N(1)}, stepwise.Env{"1a": stepwise.NewValue(1)})
	assert.ErrorIs(t, err, stepwise.ErrWrongArgument)
}
