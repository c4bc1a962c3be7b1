package stepwise

// ============================================================
// Quotient: a pending division
// ============================================================

// Quotient is a division a ÷ b still to be carried out. useDivideSymbol
// selects between the ÷ and the bar notation.
type Quotient struct {
	numerator       Expr
	denominator     Expr
	useDivideSymbol bool
}

func NewQuotient(numerator, denominator Expr, useDivideSymbol bool) (*Quotient, error) {
	if numerator == nil || denominator == nil {
		return nil, wrongArgument("quotient operand is nil")
	}
	if it, ok := numericItem(denominator); ok && it.value.IsZero() {
		return nil, outOfRange("division by zero")
	}
	return &Quotient{numerator: numerator, denominator: denominator, useDivideSymbol: useDivideSymbol}, nil
}

// Div returns a ÷ b. It panics on invalid input.
func Div(a, b Expr) *Quotient {
	q, err := NewQuotient(a, b, true)
	if err != nil {
		panic("stepwise: " + err.Error())
	}
	return q
}

func (q *Quotient) Numerator() Expr        { return q.numerator }
func (q *Quotient) Denominator() Expr      { return q.denominator }
func (q *Quotient) UsesDivideSymbol() bool { return q.useDivideSymbol }

func (q *Quotient) Kind() Kind        { return KindQuotient }
func (q *Quotient) IsReducible() bool { _, ok := q.Step(); return ok }
func (q *Quotient) String() string    { return q.Render(RenderOptions{}) }
func (q *Quotient) LaTeX() string     { return q.Render(RenderOptions{Format: FormatLaTeX}) }

func (q *Quotient) Step() (Expr, bool) {
	if next, ok := q.numerator.Step(); ok {
		return &Quotient{numerator: next, denominator: q.denominator, useDivideSymbol: q.useDivideSymbol}, true
	}
	if next, ok := q.denominator.Step(); ok {
		return &Quotient{numerator: q.numerator, denominator: next, useDivideSymbol: q.useDivideSymbol}, true
	}
	return &Product{factors: []Expr{q.numerator, reciprocal(q.denominator)}}, true
}

// reciprocal returns 1/e, swapping the terms of a fraction. The reciprocal
// of 1/b is b itself.
func reciprocal(e Expr) Expr {
	if f, ok := e.(*Fraction); ok {
		switch {
		case isOne(f.numerator):
			return f.denominator
		case isMinusOne(f.numerator):
			return negate(f.denominator)
		}
		return &Fraction{numerator: f.denominator, denominator: f.numerator}
	}
	return &Fraction{numerator: N(1), denominator: e}
}

func (q *Quotient) Evaluate(env Env) (Value, error) {
	n, err := q.numerator.Evaluate(env)
	if err != nil {
		return Value{}, err
	}
	d, err := q.denominator.Evaluate(env)
	if err != nil {
		return Value{}, err
	}
	return n.Quo(d)
}

func (q *Quotient) Render(opts RenderOptions) string {
	num := renderAt(q.numerator, PositionFirstFactor, opts)
	den := renderAt(q.denominator, PositionFactor, opts)
	if !q.useDivideSymbol {
		if opts.latex() {
			return `\frac{` + q.numerator.Render(opts) + `}{` + q.denominator.Render(opts) + `}`
		}
		return num + "/" + den
	}
	if opts.latex() {
		return num + ` \div ` + den
	}
	return num + " ÷ " + den
}

func (q *Quotient) Equal(other Expr) bool {
	o, ok := other.(*Quotient)
	return ok && q.useDivideSymbol == o.useDivideSymbol &&
		q.numerator.Equal(o.numerator) && q.denominator.Equal(o.denominator)
}

func (q *Quotient) RequiresBrackets(pos Position) bool {
	return pos == PositionFactor || pos == PositionBase
}

func (q *Quotient) RequiresInnerBrackets() bool { return false }

func (q *Quotient) toJSON() map[string]interface{} {
	return map[string]interface{}{
		"type":          "quotient",
		"numerator":     q.numerator.toJSON(),
		"denominator":   q.denominator.toJSON(),
		"divide_symbol": q.useDivideSymbol,
	}
}
