package stepwise

import (
	"math/big"

	"github.com/shopspring/decimal"
)

// SquareRoot is the principal square root of its radicand.
type SquareRoot struct{ radicand Expr }

func NewSquareRoot(radicand Expr) (*SquareRoot, error) {
	if radicand == nil {
		return nil, wrongArgument("square root radicand is nil")
	}
	if it, ok := numericItem(radicand); ok && it.sign == Minus && !it.value.IsZero() {
		return nil, outOfRange("square root of negative number %s", it)
	}
	return &SquareRoot{radicand: radicand}, nil
}

// Sqrt is NewSquareRoot for literal code; it panics on invalid input.
func Sqrt(radicand Expr) *SquareRoot {
	r, err := NewSquareRoot(radicand)
	if err != nil {
		panic("stepwise: " + err.Error())
	}
	return r
}

func (r *SquareRoot) Radicand() Expr { return r.radicand }

func (r *SquareRoot) Kind() Kind        { return KindSquareRoot }
func (r *SquareRoot) IsReducible() bool { _, ok := r.Step(); return ok }
func (r *SquareRoot) String() string    { return r.Render(RenderOptions{}) }
func (r *SquareRoot) LaTeX() string     { return r.Render(RenderOptions{Format: FormatLaTeX}) }

// maxSquareSearch bounds the perfect-square factor search.
const maxSquareSearch = 1_000_000

func (r *SquareRoot) Step() (Expr, bool) {
	if next, ok := r.radicand.Step(); ok {
		return &SquareRoot{radicand: next}, true
	}
	it, ok := numericItem(r.radicand)
	if !ok || it.sign == Minus {
		return nil, false
	}
	v := ValueFromDecimal(it.value)
	if root, ok := ratSqrt(v); ok {
		return ValueExpr(root), true
	}
	if !v.IsInteger() || !v.Num().IsInt64() {
		return nil, false
	}
	n := v.Num().Int64()
	start := new(big.Int).Sqrt(big.NewInt(n)).Int64()
	if start > maxSquareSearch {
		start = maxSquareSearch
	}
	for s := start; s > 1; s-- {
		if n%(s*s) == 0 {
			return &Product{factors: []Expr{N(s), &SquareRoot{radicand: N(n / (s * s))}}}, true
		}
	}
	return nil, false
}

// ratSqrt returns the exact square root of v when v is a rational square.
func ratSqrt(v Value) (Value, bool) {
	if v.Sign() < 0 {
		return Value{}, false
	}
	num, den := v.Num(), v.Denom()
	rn, rd := new(big.Int).Sqrt(num), new(big.Int).Sqrt(den)
	if new(big.Int).Mul(rn, rn).Cmp(num) != 0 || new(big.Int).Mul(rd, rd).Cmp(den) != 0 {
		return Value{}, false
	}
	return ValueOf(new(big.Rat).SetFrac(rn, rd)), true
}

func (r *SquareRoot) Evaluate(env Env) (Value, error) {
	v, err := r.radicand.Evaluate(env)
	if err != nil {
		return Value{}, err
	}
	if v.Sign() < 0 {
		return Value{}, outOfRange("square root of negative value %s", v)
	}
	root, ok := ratSqrt(v)
	if !ok {
		return Value{}, nonEvaluable("square root of %s is irrational", v)
	}
	return root, nil
}

// Approximate returns the root rounded half-up to precision digits.
func (r *SquareRoot) Approximate(env Env, precision int32) (decimal.Decimal, error) {
	v, err := r.radicand.Evaluate(env)
	if err != nil {
		return decimal.Decimal{}, err
	}
	if v.Sign() < 0 {
		return decimal.Decimal{}, outOfRange("square root of negative value %s", v)
	}
	return approximateSqrt(v, precision)
}

func approximateSqrt(v Value, precision int32) (decimal.Decimal, error) {
	f := new(big.Float).SetPrec(256).SetRat(v.Rat())
	f.Sqrt(f)
	d, err := decimal.NewFromString(f.Text('f', int(precision)+10))
	if err != nil {
		return decimal.Decimal{}, err
	}
	return d.Round(precision), nil
}

func (r *SquareRoot) Render(opts RenderOptions) string {
	inner := r.radicand.Render(opts)
	if opts.latex() {
		return `\sqrt{` + inner + `}`
	}
	if it, ok := r.radicand.(*Item); ok && it.sign == Plus && it.exponent == nil {
		return "√" + inner
	}
	return "√(" + inner + ")"
}

func (r *SquareRoot) Equal(other Expr) bool {
	o, ok := other.(*SquareRoot)
	return ok && r.radicand.Equal(o.radicand)
}

func (r *SquareRoot) RequiresBrackets(pos Position) bool { return pos == PositionBase }
func (r *SquareRoot) RequiresInnerBrackets() bool        { return false }

func (r *SquareRoot) toJSON() map[string]interface{} {
	return map[string]interface{}{"type": "sqrt", "radicand": r.radicand.toJSON()}
}
