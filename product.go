package stepwise

import (
	"strings"

	"github.com/shopspring/decimal"
)

// ============================================================
// Product: ordered factors with a shared exponent
// ============================================================

// Product is an ordered sequence of factors raised to an optional shared
// exponent. struck marks factors shown as cancelled; it never changes the
// value.
type Product struct {
	factors  []Expr
	exponent Expr
	struck   []bool
}

// NewProduct builds a Product. It needs at least one factor.
func NewProduct(factors ...Expr) (*Product, error) {
	if len(factors) == 0 {
		return nil, wrongArgument("product needs at least one factor")
	}
	for i, f := range factors {
		if f == nil {
			return nil, wrongArgument("product factor %d is nil", i)
		}
	}
	return &Product{factors: append([]Expr{}, factors...)}, nil
}

// Mul is NewProduct for literal code; it panics on invalid input.
func Mul(factors ...Expr) *Product {
	p, err := NewProduct(factors...)
	if err != nil {
		panic("stepwise: " + err.Error())
	}
	return p
}

// Pow returns a copy of p raised to exp.
func (p *Product) Pow(exp Expr) *Product {
	return &Product{factors: p.factors, exponent: normalizeExponent(exp), struck: p.struck}
}

func (p *Product) Factors() []Expr { return append([]Expr{}, p.factors...) }

// Exponent returns the shared exponent, N(1) when neutral.
func (p *Product) Exponent() Expr {
	if p.exponent == nil {
		return N(1)
	}
	return p.exponent
}

// Struck reports whether factor i is marked as cancelled.
func (p *Product) Struck(i int) bool { return i < len(p.struck) && p.struck[i] }

func (p *Product) hasStruck() bool {
	for _, s := range p.struck {
		if s {
			return true
		}
	}
	return false
}

func (p *Product) Kind() Kind        { return KindProduct }
func (p *Product) IsReducible() bool { _, ok := p.Step(); return ok }
func (p *Product) String() string    { return p.Render(RenderOptions{}) }
func (p *Product) LaTeX() string     { return p.Render(RenderOptions{Format: FormatLaTeX}) }

func (p *Product) Step() (Expr, bool) {
	if p.hasStruck() {
		return p.withoutStruck(), true
	}
	if next, ok := p.mergeFractions(); ok {
		return next, true
	}
	for i, f := range p.factors {
		if next, ok := f.Step(); ok {
			return &Product{factors: replaceAt(p.factors, i, next), exponent: p.exponent}, true
		}
	}
	if p.exponent != nil {
		if next, ok := p.exponent.Step(); ok {
			return p.Pow(next), true
		}
	}
	rules := []func() (Expr, bool){
		p.flatten,
		p.absorbZero,
		p.unwrapMonomials,
		p.foldNumbers,
		p.mergeLikeBases,
		p.dropNeutral,
		p.collapseSingle,
		p.distributeExponent,
	}
	for _, rule := range rules {
		if next, ok := rule(); ok {
			return next, true
		}
	}
	return nil, false
}

func (p *Product) withoutStruck() Expr {
	kept := make([]Expr, 0, len(p.factors))
	for i, f := range p.factors {
		if !p.Struck(i) {
			kept = append(kept, f)
		}
	}
	if p.exponent == nil {
		return productOrSingle(kept)
	}
	if len(kept) == 0 {
		return N(1)
	}
	return &Product{factors: kept, exponent: p.exponent}
}

// productOrSingle wraps factors as a Product unless there is only one.
func productOrSingle(factors []Expr) Expr {
	switch len(factors) {
	case 0:
		return N(1)
	case 1:
		return factors[0]
	}
	return &Product{factors: factors}
}

// mergeFractions rewrites a product of Items and Fractions as one Fraction
// (n1×n2)/(d1×d2).
func (p *Product) mergeFractions() (Expr, bool) {
	if p.exponent != nil || len(p.factors) < 2 {
		return nil, false
	}
	hasFraction := false
	var nums, dens []Expr
	for _, f := range p.factors {
		switch v := f.(type) {
		case *Item:
			nums = append(nums, v)
		case *Fraction:
			hasFraction = true
			nums = append(nums, fractionFactors(v.numerator)...)
			dens = append(dens, fractionFactors(v.denominator)...)
		default:
			return nil, false
		}
	}
	if !hasFraction {
		return nil, false
	}
	return &Fraction{numerator: productOrSingle(dropOnes(nums)), denominator: productOrSingle(dropOnes(dens))}, true
}

func fractionFactors(e Expr) []Expr {
	if p, ok := e.(*Product); ok && p.exponent == nil && !p.hasStruck() {
		return p.factors
	}
	return []Expr{e}
}

func dropOnes(list []Expr) []Expr {
	out := make([]Expr, 0, len(list))
	for _, e := range list {
		if !isOne(e) {
			out = append(out, e)
		}
	}
	if len(out) == 0 {
		return []Expr{N(1)}
	}
	return out
}

func (p *Product) flatten() (Expr, bool) {
	for i, f := range p.factors {
		inner, ok := f.(*Product)
		if !ok || inner.exponent != nil || inner.hasStruck() {
			continue
		}
		flat := append([]Expr{}, p.factors[:i]...)
		flat = append(flat, inner.factors...)
		flat = append(flat, p.factors[i+1:]...)
		return &Product{factors: flat, exponent: p.exponent}, true
	}
	return nil, false
}

func (p *Product) absorbZero() (Expr, bool) {
	if n, ok := integerExponent(p.exponent); !ok || n < 1 {
		return nil, false
	}
	if len(p.factors) < 2 {
		return nil, false
	}
	for _, f := range p.factors {
		if it, ok := numericItem(f); ok && it.value.IsZero() {
			return N(0), true
		}
	}
	return nil, false
}

func (p *Product) unwrapMonomials() (Expr, bool) {
	for i, f := range p.factors {
		m, ok := f.(*Monomial)
		if !ok {
			continue
		}
		parts := m.asFactors()
		out := append([]Expr{}, p.factors[:i]...)
		out = append(out, parts...)
		out = append(out, p.factors[i+1:]...)
		return &Product{factors: out, exponent: p.exponent}, true
	}
	return nil, false
}

func (p *Product) foldNumbers() (Expr, bool) {
	var idx []int
	for i, f := range p.factors {
		if _, ok := numericItem(f); ok {
			idx = append(idx, i)
		}
	}
	if len(idx) < 2 {
		return nil, false
	}
	acc := decimal.NewFromInt(1)
	numbers := make([]Expr, len(idx))
	for k, i := range idx {
		it := p.factors[i].(*Item)
		acc = acc.Mul(it.value)
		numbers[k] = it
	}
	folded := &Item{sign: SignOfProduct(numbers), value: acc}
	if acc.IsZero() {
		folded.sign = Plus
	}
	out := make([]Expr, 0, len(p.factors)-len(idx)+1)
	for i, f := range p.factors {
		switch {
		case i == idx[0]:
			out = append(out, folded)
		case isNumericItem(f):
		default:
			out = append(out, f)
		}
	}
	return &Product{factors: out, exponent: p.exponent}, true
}

// mergeLikeBases merges the first literal base occurring twice by summing
// its exponents.
func (p *Product) mergeLikeBases() (Expr, bool) {
	first := map[string]int{}
	for i, f := range p.factors {
		it, ok := f.(*Item)
		if !ok || it.isNumeric() || it.sign != Plus {
			continue
		}
		if _, ok := integerExponent(it.exponent); !ok {
			continue
		}
		j, seen := first[it.literal]
		if !seen {
			first[it.literal] = i
			continue
		}
		a, _ := integerExponent(p.factors[j].(*Item).exponent)
		b, _ := integerExponent(it.exponent)
		merged := S(it.literal).Pow(N(a + b))
		out := make([]Expr, 0, len(p.factors)-1)
		for k, g := range p.factors {
			switch k {
			case j:
				out = append(out, merged)
			case i:
			default:
				out = append(out, g)
			}
		}
		return &Product{factors: out, exponent: p.exponent}, true
	}
	return nil, false
}

func negatable(e Expr) bool {
	switch v := e.(type) {
	case *Item:
		return v.exponent == nil
	case *Monomial, *Fraction:
		return true
	}
	return false
}

// dropNeutral removes a factor 1, or folds a factor -1 into its neighbour.
func (p *Product) dropNeutral() (Expr, bool) {
	if len(p.factors) < 2 {
		return nil, false
	}
	for i, f := range p.factors {
		if isOne(f) {
			out := append(append([]Expr{}, p.factors[:i]...), p.factors[i+1:]...)
			return &Product{factors: out, exponent: p.exponent}, true
		}
	}
	for i, f := range p.factors {
		if !isMinusOne(f) {
			continue
		}
		for j, g := range p.factors {
			if j == i || !negatable(g) {
				continue
			}
			out := make([]Expr, 0, len(p.factors)-1)
			for k, h := range p.factors {
				switch k {
				case i:
				case j:
					out = append(out, negate(g))
				default:
					out = append(out, h)
				}
			}
			return &Product{factors: out, exponent: p.exponent}, true
		}
	}
	return nil, false
}

func (p *Product) collapseSingle() (Expr, bool) {
	if len(p.factors) != 1 {
		return nil, false
	}
	f := p.factors[0]
	if p.exponent == nil {
		return f, true
	}
	it, ok := f.(*Item)
	if !ok {
		return nil, false
	}
	if it.exponent == nil {
		return it.Pow(p.exponent), true
	}
	a, okA := integerExponent(it.exponent)
	b, okB := integerExponent(p.exponent)
	if okA && okB {
		return it.Pow(N(a * b)), true
	}
	return nil, false
}

func (p *Product) distributeExponent() (Expr, bool) {
	n, ok := integerExponent(p.exponent)
	if p.exponent == nil || !ok {
		return nil, false
	}
	out := make([]Expr, len(p.factors))
	for i, f := range p.factors {
		it, ok := f.(*Item)
		if !ok {
			return nil, false
		}
		k, ok := integerExponent(it.exponent)
		if !ok {
			return nil, false
		}
		out[i] = it.Pow(N(k * n))
	}
	return &Product{factors: out}, true
}

func (p *Product) Evaluate(env Env) (Value, error) {
	acc := NewValue(1)
	for _, f := range p.factors {
		v, err := f.Evaluate(env)
		if err != nil {
			return Value{}, err
		}
		acc = acc.Mul(v)
	}
	if p.exponent == nil {
		return acc, nil
	}
	e, err := p.exponent.Evaluate(env)
	if err != nil {
		return Value{}, err
	}
	if !e.IsInteger() {
		return Value{}, nonEvaluable("non-integer exponent %s", e)
	}
	return acc.Pow(e.Num().Int64())
}

func (p *Product) Render(opts RenderOptions) string {
	factors := p.factors
	struck := p.struck
	var b strings.Builder
	negated := false
	if !opts.ExplicitProducts && len(factors) > 1 && !p.Struck(0) {
		switch {
		case isOne(factors[0]):
			factors, struck = factors[1:], tail(struck)
		case isMinusOne(factors[0]):
			b.WriteString("-")
			factors, struck = factors[1:], tail(struck)
			negated = true
		}
	}
	for i, f := range factors {
		cancelled := i < len(struck) && struck[i]
		pos := PositionFactor
		if i == 0 {
			pos = PositionFirstFactor
		}
		s := renderAt(f, pos, opts)
		if i == 0 && negated && beginsWithMinus(f) && !f.RequiresBrackets(pos) {
			// -(-3)x, never --3x
			s = bracket(s, opts)
		}
		if i > 0 {
			prevCancelled := i-1 < len(struck) && struck[i-1]
			if opts.ExplicitProducts || cancelled || prevCancelled || !implicitTimes(f, pos) {
				b.WriteString(timesSymbol(opts))
			}
		}
		if cancelled {
			s = strikeThrough(s, opts)
		}
		b.WriteString(s)
	}
	if p.exponent == nil {
		return b.String()
	}
	return bracket(b.String(), opts) + superscript(p.exponent, opts)
}

func tail(s []bool) []bool {
	if len(s) == 0 {
		return s
	}
	return s[1:]
}

// implicitTimes reports whether the multiplication sign before f can be left
// out, as in 2x or 3(x + 1).
func implicitTimes(f Expr, pos Position) bool {
	switch v := f.(type) {
	case *Item:
		return v.IsLiteral() && v.sign == Plus
	case *SquareRoot:
		return true
	}
	return f.RequiresBrackets(pos) && !beginsWithMinus(f)
}

func strikeThrough(s string, opts RenderOptions) string {
	if opts.latex() {
		return `\bcancel{` + s + `}`
	}
	return "~" + s + "~"
}

func (p *Product) Equal(other Expr) bool {
	o, ok := other.(*Product)
	if !ok || !equalExprs(p.factors, o.factors) || !equalOptional(p.exponent, o.exponent) {
		return false
	}
	for i := range p.factors {
		if p.Struck(i) != o.Struck(i) {
			return false
		}
	}
	return true
}

func (p *Product) RequiresBrackets(pos Position) bool {
	switch pos {
	case PositionFactor:
		return beginsWithMinus(p)
	case PositionBase:
		return true
	}
	return false
}

func (p *Product) RequiresInnerBrackets() bool { return p.exponent != nil }

func (p *Product) toJSON() map[string]interface{} {
	fs := make([]map[string]interface{}, len(p.factors))
	for i, f := range p.factors {
		fs[i] = f.toJSON()
	}
	m := map[string]interface{}{"type": "product", "factors": fs}
	if p.exponent != nil {
		m["exponent"] = p.exponent.toJSON()
	}
	if p.hasStruck() {
		var idx []int
		for i := range p.factors {
			if p.Struck(i) {
				idx = append(idx, i)
			}
		}
		m["struck"] = idx
	}
	return m
}
