// Package stepwise is a deterministic arithmetic and algebra engine that
// reduces expressions one pupil-sized step at a time.
//
// Design goals:
//   - Immutable expression trees; reductions build new nodes and share
//     untouched sub-trees
//   - Exact arithmetic (base-10 fixed point leaves, math/big.Rat evaluation)
//   - Deterministic, human-like simplification order
//   - Worked equation solutions with explicit terminal outcomes
package stepwise

import (
	"sort"
	"strings"
)

// ============================================================
// Core Interface
// ============================================================

// Kind tags the closed set of expression variants.
type Kind int

const (
	KindItem Kind = iota
	KindSum
	KindProduct
	KindQuotient
	KindFraction
	KindMonomial
	KindPolynomial
	KindExpandable
	KindBinomialIdentity
	KindSquareRoot
)

var kindNames = [...]string{
	KindItem:             "item",
	KindSum:              "sum",
	KindProduct:          "product",
	KindQuotient:         "quotient",
	KindFraction:         "fraction",
	KindMonomial:         "monomial",
	KindPolynomial:       "polynomial",
	KindExpandable:       "expandable",
	KindBinomialIdentity: "binomial",
	KindSquareRoot:       "sqrt",
}

func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return "unknown"
	}
	return kindNames[k]
}

// Expr is implemented by every expression node. Nodes are immutable.
type Expr interface {
	Kind() Kind
	// IsReducible reports whether Step would produce a new node.
	IsReducible() bool
	// Step returns the single next simplification of the node, or false
	// when no further step exists.
	Step() (Expr, bool)
	Evaluate(env Env) (Value, error)
	Render(opts RenderOptions) string
	String() string
	LaTeX() string
	Equal(other Expr) bool
	RequiresBrackets(pos Position) bool
	RequiresInnerBrackets() bool
	toJSON() map[string]interface{}
}

// Env is a substitution dictionary from literal names to values.
type Env map[string]Value

// Position is the place a node occupies inside its parent.
type Position int

const (
	PositionStandalone  Position = iota // whole expression or first term of a sum
	PositionTerm                        // non-first term of a sum
	PositionFirstFactor                 // first factor of a product
	PositionFactor                      // non-first factor of a product
	PositionBase                        // base of a power
)

// ============================================================
// Sign
// ============================================================

// Sign is either Plus or Minus.
type Sign int8

const (
	Plus  Sign = 1
	Minus Sign = -1
)

// ParseSign accepts "+", "-" and the empty string (Plus).
func ParseSign(s string) (Sign, error) {
	switch s {
	case "", "+":
		return Plus, nil
	case "-":
		return Minus, nil
	}
	return Plus, wrongArgument("sign must be '+' or '-', got %q", s)
}

func (s Sign) String() string {
	if s == Minus {
		return "-"
	}
	return "+"
}

func (s Sign) Flip() Sign {
	if s == Minus {
		return Plus
	}
	return Minus
}

func (s Sign) Mul(o Sign) Sign {
	if s == o {
		return Plus
	}
	return Minus
}

// ============================================================
// Rendering options
// ============================================================

type Format int

const (
	FormatText Format = iota
	FormatLaTeX
)

// RenderOptions configures Render. The zero value renders compact text.
type RenderOptions struct {
	Format Format
	// DisplayUnit is appended to numeric results of equation snapshots.
	DisplayUnit string
	// DecimalResult renders terminating numeric fractions as decimals
	// rounded to Precision digits, unless KeepFractionForm is set.
	DecimalResult    bool
	Precision        int32
	KeepFractionForm bool
	// ExplicitProducts shows neutral factors (1×x, -1×x) instead of
	// compacting them.
	ExplicitProducts bool
}

func (o RenderOptions) latex() bool { return o.Format == FormatLaTeX }

func bracket(s string, opts RenderOptions) string {
	if opts.latex() {
		return `\left(` + s + `\right)`
	}
	return "(" + s + ")"
}

func renderAt(e Expr, pos Position, opts RenderOptions) string {
	s := e.Render(opts)
	if e.RequiresBrackets(pos) {
		return bracket(s, opts)
	}
	return s
}

func superscript(exp Expr, opts RenderOptions) string {
	s := exp.Render(opts)
	if opts.latex() {
		return "^{" + s + "}"
	}
	if it, ok := exp.(*Item); ok && it.sign == Plus && it.exponent == nil {
		return "^" + s
	}
	return "^(" + s + ")"
}

func timesSymbol(opts RenderOptions) string {
	if opts.latex() {
		return ` \times `
	}
	return "×"
}

// renderTerms joins terms as a sum, turning a leading minus into the
// operator.
func renderTerms(terms []Expr, opts RenderOptions) string {
	var b strings.Builder
	for i, t := range terms {
		s := renderAt(t, PositionTerm, opts)
		if i == 0 {
			b.WriteString(s)
			continue
		}
		if strings.HasPrefix(s, "-") {
			b.WriteString(" - ")
			b.WriteString(s[1:])
		} else {
			b.WriteString(" + ")
			b.WriteString(s)
		}
	}
	return b.String()
}

// ============================================================
// Tree helpers
// ============================================================

func children(e Expr) []Expr {
	switch v := e.(type) {
	case *Item:
		if v.exponent != nil {
			return []Expr{v.exponent}
		}
		return nil
	case *Sum:
		return v.terms
	case *Product:
		if v.exponent != nil {
			return append(append([]Expr{}, v.factors...), v.exponent)
		}
		return v.factors
	case *Fraction:
		return []Expr{v.numerator, v.denominator}
	case *Quotient:
		return []Expr{v.numerator, v.denominator}
	case *Monomial:
		return []Expr{v.coefficient}
	case *Polynomial:
		out := make([]Expr, len(v.terms))
		for i, t := range v.terms {
			out[i] = t
		}
		return out
	case *Expandable:
		return []Expr{v.factor, v.sum}
	case *BinomialIdentity:
		return []Expr{v.a, v.b}
	case *SquareRoot:
		return []Expr{v.radicand}
	}
	panic("stepwise: unhandled kind " + e.Kind().String())
}

// Literals returns the sorted literal names appearing in e.
func Literals(e Expr) []string {
	seen := map[string]struct{}{}
	collectLiterals(e, seen)
	out := make([]string, 0, len(seen))
	for name := range seen {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

func collectLiterals(e Expr, out map[string]struct{}) {
	switch v := e.(type) {
	case *Item:
		if v.literal != "" {
			out[v.literal] = struct{}{}
		}
	case *Monomial:
		if v.degree > 0 {
			out[v.variable] = struct{}{}
		}
	}
	for _, c := range children(e) {
		collectLiterals(c, out)
	}
}

func containsLiteral(e Expr, name string) bool {
	for _, l := range Literals(e) {
		if l == name {
			return true
		}
	}
	return false
}

func isNumericOnly(e Expr) bool { return len(Literals(e)) == 0 }

func containsKind(e Expr, kinds ...Kind) bool {
	for _, k := range kinds {
		if e.Kind() == k {
			return true
		}
	}
	for _, c := range children(e) {
		if containsKind(c, kinds...) {
			return true
		}
	}
	return false
}

func equalExprs(a, b []Expr) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if !a[i].Equal(b[i]) {
			return false
		}
	}
	return true
}

func equalOptional(a, b Expr) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return a.Equal(b)
}

func replaceAt(list []Expr, i int, e Expr) []Expr {
	out := append([]Expr{}, list...)
	out[i] = e
	return out
}

// beginsWithMinus reports whether e renders with a leading minus sign.
func beginsWithMinus(e Expr) bool {
	switch v := e.(type) {
	case *Item:
		return v.sign == Minus && v.exponent == nil
	case *Monomial:
		return beginsWithMinus(v.coefficient)
	case *Product:
		return v.exponent == nil && len(v.factors) > 0 && beginsWithMinus(v.factors[0])
	case *Fraction:
		return beginsWithMinus(v.numerator)
	case *Sum:
		return len(v.terms) == 1 && beginsWithMinus(v.terms[0])
	case *Expandable:
		return beginsWithMinus(v.factor)
	}
	return false
}

// negate returns -e, written the way a pupil would write it.
func negate(e Expr) Expr {
	switch v := e.(type) {
	case *Item:
		if v.exponent == nil {
			return v.withSign(v.sign.Flip())
		}
	case *Monomial:
		return &Monomial{coefficient: negate(v.coefficient), variable: v.variable, degree: v.degree}
	case *Fraction:
		return &Fraction{numerator: negate(v.numerator), denominator: v.denominator}
	case *Product:
		if v.exponent == nil && len(v.factors) > 0 {
			if it, ok := v.factors[0].(*Item); ok && it.exponent == nil {
				return &Product{factors: replaceAt(v.factors, 0, it.withSign(it.sign.Flip()))}
			}
			return &Product{factors: append([]Expr{N(-1)}, v.factors...)}
		}
	case *Sum:
		terms := make([]Expr, len(v.terms))
		for i, t := range v.terms {
			terms[i] = negate(t)
		}
		return &Sum{terms: terms}
	}
	return &Product{factors: []Expr{N(-1), e}}
}

func sumOrSingle(terms []Expr) Expr {
	switch len(terms) {
	case 0:
		return N(0)
	case 1:
		return terms[0]
	}
	return &Sum{terms: terms}
}

func termsOf(e Expr) []Expr {
	switch v := e.(type) {
	case *Sum:
		return v.terms
	case *Polynomial:
		return children(v)
	}
	return []Expr{e}
}
