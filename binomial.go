package stepwise

// IdentityKind names a remarkable identity.
type IdentityKind int

const (
	SquareOfSum         IdentityKind = iota // (a + b)²
	SquareOfDifference                      // (a - b)²
	DifferenceOfSquares                     // (a + b)(a - b)
)

var identityNames = map[IdentityKind]string{
	SquareOfSum:         "square_of_sum",
	SquareOfDifference:  "square_of_difference",
	DifferenceOfSquares: "difference_of_squares",
}

func (k IdentityKind) String() string { return identityNames[k] }

// ParseIdentityKind is the inverse of IdentityKind.String.
func ParseIdentityKind(s string) (IdentityKind, error) {
	for k, name := range identityNames {
		if name == s {
			return k, nil
		}
	}
	return 0, outOfRange("unknown identity %q", s)
}

// BinomialIdentity is a factored form expanded through its closed formula
// in a single step.
type BinomialIdentity struct {
	kind IdentityKind
	a, b Expr
}

func NewBinomialIdentity(kind IdentityKind, a, b Expr) (*BinomialIdentity, error) {
	if _, ok := identityNames[kind]; !ok {
		return nil, outOfRange("unknown identity kind %d", kind)
	}
	for _, e := range []Expr{a, b} {
		switch e.(type) {
		case *Item, *Monomial:
		case nil:
			return nil, wrongArgument("identity operand is nil")
		default:
			return nil, uncompatibleType("identity operand must be an item or a monomial, got %s", e.Kind())
		}
	}
	return &BinomialIdentity{kind: kind, a: a, b: b}, nil
}

func (bi *BinomialIdentity) IdentityKind() IdentityKind { return bi.kind }
func (bi *BinomialIdentity) Operands() (Expr, Expr)     { return bi.a, bi.b }

func (bi *BinomialIdentity) Kind() Kind        { return KindBinomialIdentity }
func (bi *BinomialIdentity) IsReducible() bool { _, ok := bi.Step(); return ok }
func (bi *BinomialIdentity) String() string    { return bi.Render(RenderOptions{}) }
func (bi *BinomialIdentity) LaTeX() string     { return bi.Render(RenderOptions{Format: FormatLaTeX}) }

func (bi *BinomialIdentity) Step() (Expr, bool) {
	if next, ok := bi.a.Step(); ok {
		return &BinomialIdentity{kind: bi.kind, a: next, b: bi.b}, true
	}
	if next, ok := bi.b.Step(); ok {
		return &BinomialIdentity{kind: bi.kind, a: bi.a, b: next}, true
	}
	switch bi.kind {
	case SquareOfSum:
		return &Sum{terms: []Expr{square(bi.a), &Product{factors: []Expr{N(2), bi.a, bi.b}}, square(bi.b)}}, true
	case SquareOfDifference:
		return &Sum{terms: []Expr{square(bi.a), &Product{factors: []Expr{N(-2), bi.a, bi.b}}, square(bi.b)}}, true
	case DifferenceOfSquares:
		return &Sum{terms: []Expr{square(bi.a), &Product{factors: []Expr{N(-1), square(bi.b)}}}}, true
	}
	panic("stepwise: unhandled identity " + bi.kind.String())
}

func square(e Expr) Expr {
	switch v := e.(type) {
	case *Item:
		if v.exponent == nil {
			return v.Pow(N(2))
		}
	case *Monomial:
		return &Product{factors: v.asFactors(), exponent: N(2)}
	}
	return &Product{factors: []Expr{e}, exponent: N(2)}
}

func (bi *BinomialIdentity) Evaluate(env Env) (Value, error) {
	a, err := bi.a.Evaluate(env)
	if err != nil {
		return Value{}, err
	}
	b, err := bi.b.Evaluate(env)
	if err != nil {
		return Value{}, err
	}
	switch bi.kind {
	case SquareOfSum:
		s := a.Add(b)
		return s.Mul(s), nil
	case SquareOfDifference:
		d := a.Sub(b)
		return d.Mul(d), nil
	}
	return a.Add(b).Mul(a.Sub(b)), nil
}

func (bi *BinomialIdentity) Render(opts RenderOptions) string {
	plus := &Sum{terms: []Expr{bi.a, bi.b}}
	minus := &Sum{terms: []Expr{bi.a, negate(bi.b)}}
	switch bi.kind {
	case SquareOfSum:
		return bracket(plus.Render(opts), opts) + superscript(N(2), opts)
	case SquareOfDifference:
		return bracket(minus.Render(opts), opts) + superscript(N(2), opts)
	}
	return bracket(plus.Render(opts), opts) + bracket(minus.Render(opts), opts)
}

func (bi *BinomialIdentity) Equal(other Expr) bool {
	o, ok := other.(*BinomialIdentity)
	return ok && bi.kind == o.kind && bi.a.Equal(o.a) && bi.b.Equal(o.b)
}

func (bi *BinomialIdentity) RequiresBrackets(pos Position) bool { return pos == PositionBase }
func (bi *BinomialIdentity) RequiresInnerBrackets() bool        { return true }

func (bi *BinomialIdentity) toJSON() map[string]interface{} {
	return map[string]interface{}{
		"type":     "binomial",
		"identity": bi.kind.String(),
		"a":        bi.a.toJSON(),
		"b":        bi.b.toJSON(),
	}
}
