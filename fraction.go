package stepwise

import (
	"math/big"

	"github.com/shopspring/decimal"
)

// ============================================================
// Fraction: a kept numerator/denominator pair
// ============================================================

// Fraction is a numerator over a denominator kept unevaluated for display.
type Fraction struct {
	numerator   Expr
	denominator Expr
}

// NewFraction validates the operand kinds and builds a Fraction.
func NewFraction(numerator, denominator Expr) (*Fraction, error) {
	for _, e := range []Expr{numerator, denominator} {
		switch e.(type) {
		case *Item, *Product, *Sum:
		case nil:
			return nil, wrongArgument("fraction operand is nil")
		default:
			return nil, uncompatibleType("fraction operand must be an item, product or sum, got %s", e.Kind())
		}
	}
	if it, ok := numericItem(denominator); ok && it.value.IsZero() {
		return nil, outOfRange("fraction denominator is zero")
	}
	return &Fraction{numerator: numerator, denominator: denominator}, nil
}

// F returns the Fraction p/q. It panics when q is zero.
func F(p, q int64) *Fraction {
	if q == 0 {
		panic("stepwise: zero denominator")
	}
	return &Fraction{numerator: N(p), denominator: N(q)}
}

func (f *Fraction) Numerator() Expr   { return f.numerator }
func (f *Fraction) Denominator() Expr { return f.denominator }

func (f *Fraction) Kind() Kind        { return KindFraction }
func (f *Fraction) IsReducible() bool { _, ok := f.Step(); return ok }
func (f *Fraction) String() string    { return f.Render(RenderOptions{}) }
func (f *Fraction) LaTeX() string     { return f.Render(RenderOptions{Format: FormatLaTeX}) }

func (f *Fraction) Step() (Expr, bool) {
	if next, ok := f.cancelStruck(); ok {
		return next, true
	}
	if next, ok := f.strikeCommonFactor(); ok {
		return next, true
	}
	if next, ok := f.numerator.Step(); ok {
		return over(next, f.denominator), true
	}
	if next, ok := f.denominator.Step(); ok {
		return over(f.numerator, next), true
	}
	n, okN := numericItem(f.numerator)
	d, okD := numericItem(f.denominator)
	if !okN || !okD || d.value.IsZero() {
		return nil, false
	}
	if !n.value.IsInteger() || !d.value.IsInteger() {
		shift := int32(DigitsNumber(n.value))
		if k := int32(DigitsNumber(d.value)); k > shift {
			shift = k
		}
		return &Fraction{
			numerator:   ItemFromDecimal(n.signed().Shift(shift)),
			denominator: ItemFromDecimal(d.signed().Shift(shift)),
		}, true
	}
	if d.sign == Minus {
		return &Fraction{numerator: n.withSign(n.sign.Flip()), denominator: d.withSign(Plus)}, true
	}
	if isOne(d) {
		return n, true
	}
	if n.value.IsZero() {
		return N(0), true
	}
	g := pupilGCDDecimal(n.value, d.value)
	if g.Cmp(decimal.NewFromInt(1)) <= 0 {
		return nil, false
	}
	return &Fraction{numerator: splitByGCD(n, g), denominator: splitByGCD(d, g)}, true
}

// over builds num/den, folding a nested fraction into the outer one.
func over(num, den Expr) Expr {
	if inner, ok := num.(*Fraction); ok {
		return &Fraction{numerator: inner.numerator, denominator: productOrSingle(append(fractionFactors(inner.denominator), fractionFactors(den)...))}
	}
	if inner, ok := den.(*Fraction); ok {
		return &Fraction{numerator: productOrSingle(append(fractionFactors(num), fractionFactors(inner.denominator)...)), denominator: inner.numerator}
	}
	return &Fraction{numerator: num, denominator: den}
}

func pupilGCDDecimal(a, b decimal.Decimal) decimal.Decimal {
	x, y := a.BigInt(), b.BigInt()
	if x.IsInt64() && y.IsInt64() {
		if g, err := PupilGCD(x.Int64(), y.Int64()); err == nil {
			return decimal.NewFromInt(g)
		}
		return decimal.NewFromInt(1)
	}
	return decimal.NewFromBigInt(new(big.Int).GCD(nil, nil, x, y), 0)
}

// splitByGCD writes it as (it/g) × g with g marked as struck.
func splitByGCD(it *Item, g decimal.Decimal) *Product {
	q := it.value.Div(g)
	common := ItemFromDecimal(g)
	if q.Equal(decimal.NewFromInt(1)) && it.sign == Plus {
		return &Product{factors: []Expr{common}, struck: []bool{true}}
	}
	quotient := &Item{sign: it.sign, value: q}
	return &Product{factors: []Expr{quotient, common}, struck: []bool{false, true}}
}

func (f *Fraction) cancelStruck() (Expr, bool) {
	np, okN := f.numerator.(*Product)
	dp, okD := f.denominator.(*Product)
	hasN := okN && np.hasStruck()
	hasD := okD && dp.hasStruck()
	if !hasN && !hasD {
		return nil, false
	}
	num, den := f.numerator, f.denominator
	if hasN {
		num = np.withoutStruck()
	}
	if hasD {
		den = dp.withoutStruck()
	}
	if isOne(den) {
		return num, true
	}
	return &Fraction{numerator: num, denominator: den}, true
}

// strikeCommonFactor marks the first factor shared by numerator and
// denominator. Plain numbers go through the GCD rule instead.
func (f *Fraction) strikeCommonFactor() (Expr, bool) {
	if isNumericItem(f.numerator) && isNumericItem(f.denominator) {
		return nil, false
	}
	nf := fractionFactors(f.numerator)
	df := fractionFactors(f.denominator)
	for i, a := range nf {
		if isOne(a) {
			continue
		}
		for j, b := range df {
			if !a.Equal(b) {
				continue
			}
			return &Fraction{numerator: strikeAt(nf, i), denominator: strikeAt(df, j)}, true
		}
	}
	return nil, false
}

func strikeAt(factors []Expr, i int) *Product {
	struck := make([]bool, len(factors))
	struck[i] = true
	return &Product{factors: append([]Expr{}, factors...), struck: struck}
}

func (f *Fraction) Evaluate(env Env) (Value, error) {
	n, err := f.numerator.Evaluate(env)
	if err != nil {
		return Value{}, err
	}
	d, err := f.denominator.Evaluate(env)
	if err != nil {
		return Value{}, err
	}
	return n.Quo(d)
}

func (f *Fraction) Render(opts RenderOptions) string {
	if opts.DecimalResult && !opts.KeepFractionForm && isNumericOnly(f) {
		if v, err := f.Evaluate(nil); err == nil {
			if d, ok := v.Decimal(); ok {
				return ItemFromDecimal(d).Render(opts)
			}
		}
	}
	if opts.latex() {
		num := f.numerator
		prefix := ""
		if it, ok := num.(*Item); ok && it.sign == Minus && it.exponent == nil {
			num, prefix = it.withSign(Plus), "-"
		}
		return prefix + `\frac{` + num.Render(opts) + `}{` + f.denominator.Render(opts) + `}`
	}
	return fractionSide(f.numerator, false, opts) + "/" + fractionSide(f.denominator, true, opts)
}

func fractionSide(e Expr, isDenominator bool, opts RenderOptions) string {
	s := e.Render(opts)
	switch v := e.(type) {
	case *Item:
		if isDenominator && (v.sign == Minus || v.exponent != nil) {
			return bracket(s, opts)
		}
		return s
	case *Product:
		if len(v.factors) == 1 && v.exponent == nil {
			return s
		}
		if v.exponent != nil && !isDenominator {
			return s
		}
	case *Sum:
		if len(v.terms) == 1 {
			return s
		}
	case *Fraction:
	default:
		if !isDenominator {
			return s
		}
	}
	return bracket(s, opts)
}

func (f *Fraction) Equal(other Expr) bool {
	o, ok := other.(*Fraction)
	return ok && f.numerator.Equal(o.numerator) && f.denominator.Equal(o.denominator)
}

func (f *Fraction) RequiresBrackets(pos Position) bool {
	switch pos {
	case PositionFactor:
		return beginsWithMinus(f)
	case PositionBase:
		return true
	}
	return false
}

func (f *Fraction) RequiresInnerBrackets() bool { return false }

func (f *Fraction) toJSON() map[string]interface{} {
	return map[string]interface{}{
		"type":        "fraction",
		"numerator":   f.numerator.toJSON(),
		"denominator": f.denominator.toJSON(),
	}
}
