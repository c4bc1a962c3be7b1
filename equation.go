package stepwise

import "strings"

// ============================================================
// Equations and equalities
// ============================================================

// Equation is left = right, with optional known literal values applied
// before solving.
type Equation struct {
	left, right   Expr
	substitutions Env
	// set by NewPythagoreanEquation
	pythagorean bool
}

func NewEquation(left, right Expr) (*Equation, error) {
	if left == nil || right == nil {
		return nil, wrongArgument("equation member is nil")
	}
	return &Equation{left: left, right: right}, nil
}

// Eq is NewEquation for literal code; it panics on invalid input.
func Eq(left, right Expr) *Equation {
	eq, err := NewEquation(left, right)
	if err != nil {
		panic("stepwise: " + err.Error())
	}
	return eq
}

// WithSubstitutions returns a copy of eq carrying known literal values.
func (eq *Equation) WithSubstitutions(env Env) *Equation {
	cp := *eq
	cp.substitutions = copyEnv(env)
	return &cp
}

func (eq *Equation) Left() Expr         { return eq.left }
func (eq *Equation) Right() Expr        { return eq.right }
func (eq *Equation) Substitutions() Env { return copyEnv(eq.substitutions) }

func (eq *Equation) Render(opts RenderOptions) string {
	return (&Equality{members: []Expr{eq.left, eq.right}}).Render(opts)
}

func (eq *Equation) String() string { return eq.Render(RenderOptions{}) }
func (eq *Equation) LaTeX() string  { return eq.Render(RenderOptions{Format: FormatLaTeX}) }

func copyEnv(env Env) Env {
	if env == nil {
		return nil
	}
	out := make(Env, len(env))
	for k, v := range env {
		out[k] = v
	}
	return out
}

// Equality is a chain m0 = m1 = … ; when approximate the last link is ≈.
type Equality struct {
	members     []Expr
	approximate bool
}

func NewEquality(members []Expr, approximate bool) (*Equality, error) {
	if len(members) < 2 {
		return nil, wrongArgument("equality needs at least two members, got %d", len(members))
	}
	for i, m := range members {
		if m == nil {
			return nil, wrongArgument("equality member %d is nil", i)
		}
	}
	return &Equality{members: append([]Expr{}, members...), approximate: approximate}, nil
}

func (e *Equality) Members() []Expr   { return append([]Expr{}, e.members...) }
func (e *Equality) Approximate() bool { return e.approximate }

func (e *Equality) Render(opts RenderOptions) string {
	var b strings.Builder
	for i, m := range e.members {
		if i > 0 {
			b.WriteString(relation(e.approximate && i == len(e.members)-1, opts))
		}
		b.WriteString(m.Render(opts))
		if i > 0 && opts.DisplayUnit != "" && isNumericOnly(m) {
			b.WriteString(unitSuffix(opts))
		}
	}
	return b.String()
}

func (e *Equality) String() string { return e.Render(RenderOptions{}) }

func relation(approximate bool, opts RenderOptions) string {
	switch {
	case approximate && opts.latex():
		return ` \approx `
	case approximate:
		return " ≈ "
	}
	return " = "
}

func unitSuffix(opts RenderOptions) string {
	if opts.latex() {
		return `\text{ ` + opts.DisplayUnit + `}`
	}
	return " " + opts.DisplayUnit
}

// SubstitutableEquality is an Equality whose literals have known values,
// as in a relation derived from a figure.
type SubstitutableEquality struct {
	Equality
	substitutions Env
}

func NewSubstitutableEquality(members []Expr, env Env) (*SubstitutableEquality, error) {
	eq, err := NewEquality(members, false)
	if err != nil {
		return nil, err
	}
	for name := range env {
		if name == "" || !isLetter(name[0]) || !validLiteral(name) {
			return nil, wrongArgument("invalid substitution literal %q", name)
		}
	}
	return &SubstitutableEquality{Equality: *eq, substitutions: copyEnv(env)}, nil
}

// Substitute returns the Equality with every known literal replaced.
func (s *SubstitutableEquality) Substitute() *Equality {
	out := make([]Expr, len(s.members))
	for i, m := range s.members {
		out[i] = Substitute(m, s.substitutions)
	}
	return &Equality{members: out, approximate: s.approximate}
}
