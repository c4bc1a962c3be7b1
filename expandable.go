package stepwise

// Expandable is factor × (sum) waiting to be distributed.
type Expandable struct {
	factor Expr
	sum    Expr
}

// NewExpandable builds factor(sum). sum must be a Sum or a Polynomial.
func NewExpandable(factor, sum Expr) (*Expandable, error) {
	if factor == nil || sum == nil {
		return nil, wrongArgument("expandable operand is nil")
	}
	switch sum.(type) {
	case *Sum, *Polynomial:
	default:
		return nil, uncompatibleType("expandable needs a sum, got %s", sum.Kind())
	}
	switch factor.(type) {
	case *Sum, *Polynomial:
		return nil, uncompatibleType("expandable factor cannot be a %s", factor.Kind())
	}
	return &Expandable{factor: factor, sum: sum}, nil
}

func (e *Expandable) Factor() Expr { return e.factor }
func (e *Expandable) Sum() Expr    { return e.sum }

func (e *Expandable) Kind() Kind        { return KindExpandable }
func (e *Expandable) IsReducible() bool { _, ok := e.Step(); return ok }
func (e *Expandable) String() string    { return e.Render(RenderOptions{}) }
func (e *Expandable) LaTeX() string     { return e.Render(RenderOptions{Format: FormatLaTeX}) }

func (e *Expandable) Step() (Expr, bool) {
	if next, ok := e.factor.Step(); ok {
		return &Expandable{factor: next, sum: e.sum}, true
	}
	if next, ok := e.sum.Step(); ok {
		switch next.(type) {
		case *Sum, *Polynomial:
			return &Expandable{factor: e.factor, sum: next}, true
		}
		return &Product{factors: []Expr{e.factor, next}}, true
	}
	terms := termsOf(e.sum)
	out := make([]Expr, len(terms))
	for i, t := range terms {
		out[i] = &Product{factors: []Expr{e.factor, t}}
	}
	return &Sum{terms: out}, true
}

func (e *Expandable) Evaluate(env Env) (Value, error) {
	f, err := e.factor.Evaluate(env)
	if err != nil {
		return Value{}, err
	}
	s, err := e.sum.Evaluate(env)
	if err != nil {
		return Value{}, err
	}
	return f.Mul(s), nil
}

func (e *Expandable) Render(opts RenderOptions) string {
	return (&Product{factors: []Expr{e.factor, e.sum}}).Render(opts)
}

func (e *Expandable) Equal(other Expr) bool {
	o, ok := other.(*Expandable)
	return ok && e.factor.Equal(o.factor) && e.sum.Equal(o.sum)
}

func (e *Expandable) RequiresBrackets(pos Position) bool {
	switch pos {
	case PositionFactor:
		return beginsWithMinus(e)
	case PositionBase:
		return true
	}
	return false
}

func (e *Expandable) RequiresInnerBrackets() bool { return false }

func (e *Expandable) toJSON() map[string]interface{} {
	return map[string]interface{}{
		"type":   "expandable",
		"factor": e.factor.toJSON(),
		"sum":    e.sum.toJSON(),
	}
}
