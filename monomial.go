package stepwise

import "strings"

// Monomial is coefficient × variable^degree. Degree 0 is the constant rank
// and ignores the variable.
type Monomial struct {
	coefficient Expr
	variable    string
	degree      int
}

// NewMonomial builds a Monomial. The coefficient must be free of literals.
func NewMonomial(coefficient Expr, variable string, degree int) (*Monomial, error) {
	if coefficient == nil {
		return nil, wrongArgument("monomial coefficient is nil")
	}
	if !isNumericOnly(coefficient) {
		return nil, uncompatibleType("monomial coefficient %s is not numeric", coefficient)
	}
	if degree < 0 {
		return nil, outOfRange("monomial degree %d is negative", degree)
	}
	if degree == 0 {
		variable = ""
	} else if variable == "" || !isLetter(variable[0]) || !validLiteral(variable) {
		return nil, wrongArgument("invalid monomial variable %q", variable)
	}
	return &Monomial{coefficient: coefficient, variable: variable, degree: degree}, nil
}

// M returns the Monomial c·v^d. It panics on invalid input.
func M(c int64, v string, d int) *Monomial {
	m, err := NewMonomial(N(c), v, d)
	if err != nil {
		panic("stepwise: " + err.Error())
	}
	return m
}

func (m *Monomial) Coefficient() Expr { return m.coefficient }
func (m *Monomial) Variable() string  { return m.variable }
func (m *Monomial) Degree() int       { return m.degree }

// asFactors splits m into its coefficient and its literal power.
func (m *Monomial) asFactors() []Expr {
	if m.degree == 0 {
		return []Expr{m.coefficient}
	}
	return []Expr{m.coefficient, S(m.variable).Pow(N(int64(m.degree)))}
}

func (m *Monomial) Kind() Kind        { return KindMonomial }
func (m *Monomial) IsReducible() bool { _, ok := m.Step(); return ok }
func (m *Monomial) String() string    { return m.Render(RenderOptions{}) }
func (m *Monomial) LaTeX() string     { return m.Render(RenderOptions{Format: FormatLaTeX}) }

func (m *Monomial) Step() (Expr, bool) {
	next, ok := m.coefficient.Step()
	if !ok {
		return nil, false
	}
	return &Monomial{coefficient: next, variable: m.variable, degree: m.degree}, true
}

func (m *Monomial) Evaluate(env Env) (Value, error) {
	c, err := m.coefficient.Evaluate(env)
	if err != nil {
		return Value{}, err
	}
	if m.degree == 0 {
		return c, nil
	}
	v, ok := env[m.variable]
	if !ok {
		return Value{}, nonEvaluable("literal %q has no value", m.variable)
	}
	p, err := v.Pow(int64(m.degree))
	if err != nil {
		return Value{}, err
	}
	return c.Mul(p), nil
}

func (m *Monomial) Render(opts RenderOptions) string {
	if m.degree == 0 {
		return m.coefficient.Render(opts)
	}
	power := m.variable
	if m.degree > 1 {
		power += superscript(N(int64(m.degree)), opts)
	}
	var coeff string
	switch c := m.coefficient.(type) {
	case *Item:
		switch {
		case opts.ExplicitProducts:
			coeff = c.Render(opts)
		case isOne(c):
		case isMinusOne(c):
			coeff = "-"
		default:
			coeff = renderAt(c, PositionFirstFactor, opts)
		}
	case *Fraction:
		coeff = c.Render(opts)
		if !opts.latex() && strings.Contains(coeff, "/") {
			coeff = bracket(coeff, opts)
		}
	default:
		coeff = renderAt(c, PositionFirstFactor, opts)
	}
	return coeff + power
}

func (m *Monomial) Equal(other Expr) bool {
	o, ok := other.(*Monomial)
	return ok && m.variable == o.variable && m.degree == o.degree && m.coefficient.Equal(o.coefficient)
}

func (m *Monomial) RequiresBrackets(pos Position) bool {
	switch pos {
	case PositionFactor:
		return beginsWithMinus(m)
	case PositionBase:
		return true
	}
	return false
}

func (m *Monomial) RequiresInnerBrackets() bool { return false }

func (m *Monomial) toJSON() map[string]interface{} {
	return map[string]interface{}{
		"type":        "monomial",
		"coefficient": m.coefficient.toJSON(),
		"variable":    m.variable,
		"degree":      m.degree,
	}
}
