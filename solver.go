package stepwise

import (
	"fmt"
	"strings"

	"go.uber.org/zap"
)

// ============================================================
// Equation solver
// ============================================================

// Outcome is the terminal state of an auto-resolution.
type Outcome int

const (
	Solved Outcome = iota
	NoSolution
	InfiniteSolutions
)

func (o Outcome) String() string {
	switch o {
	case NoSolution:
		return "no_solution"
	case InfiniteSolutions:
		return "infinite_solutions"
	}
	return "solved"
}

// SolveOptions tunes AutoResolution.
type SolveOptions struct {
	// DecimalResult appends a rounded line when the solution is not an
	// integer; the line reads ≈ when rounding lost information.
	DecimalResult bool
	Precision     int32
	// Pythagorean accepts x² = k and extracts the roots.
	Pythagorean bool
	// Length discards the negative root.
	Length bool
	// Variable names the unknown; empty means the only literal present.
	Variable string
}

// Snapshot is one line of a worked solution. Right holds several members
// when the line lists alternatives (x = 4 or x = -4).
type Snapshot struct {
	Left          Expr
	Right         []Expr
	Approximate   bool
	Justification string
}

func (s Snapshot) Render(opts RenderOptions) string {
	parts := make([]string, len(s.Right))
	for i, r := range s.Right {
		parts[i] = (&Equality{members: []Expr{s.Left, r}, approximate: s.Approximate}).Render(opts)
	}
	sep := " or "
	if opts.latex() {
		sep = `\text{ or }`
	}
	return strings.Join(parts, sep)
}

// sameAs reports whether both snapshots print the same line.
func (s Snapshot) sameAs(o Snapshot) bool {
	return s.Justification == o.Justification && s.Render(RenderOptions{}) == o.Render(RenderOptions{})
}

// Resolution is the worked solution of an equation.
type Resolution struct {
	Outcome   Outcome
	Steps     []Snapshot
	Solutions []Value
}

// Render returns one line per snapshot, justifications in brackets.
func (r *Resolution) Render(opts RenderOptions) []string {
	lines := make([]string, len(r.Steps))
	for i, s := range r.Steps {
		lines[i] = s.Render(opts)
		if s.Justification != "" {
			if opts.latex() {
				lines[i] += `\text{ (` + s.Justification + `)}`
			} else {
				lines[i] += " (" + s.Justification + ")"
			}
		}
	}
	return lines
}

// Last returns the final snapshot.
func (r *Resolution) Last() Snapshot { return r.Steps[len(r.Steps)-1] }

type solver struct {
	opts    SolveOptions
	unknown string
	res     *Resolution
}

func (s *solver) record(snap Snapshot) {
	if n := len(s.res.Steps); n > 0 && s.res.Steps[n-1].sameAs(snap) {
		return
	}
	if ce := lg().Check(zap.DebugLevel, "snapshot"); ce != nil {
		ce.Write(zap.Int("n", len(s.res.Steps)), zap.String("equation", snap.Render(RenderOptions{})))
	}
	s.res.Steps = append(s.res.Steps, snap)
}

func (s *solver) equal(left, right Expr) {
	s.record(Snapshot{Left: left, Right: []Expr{right}})
}

// AutoResolution solves eq and returns every intermediate line. Terminal
// outcomes without a solution are reported in Outcome, not as errors.
func (eq *Equation) AutoResolution(opts SolveOptions) (*Resolution, error) {
	if eq.pythagorean {
		opts.Pythagorean, opts.Length = true, true
	}
	s := &solver{opts: opts, res: &Resolution{}}
	left, right := eq.left, eq.right
	s.equal(left, right)

	if len(eq.substitutions) > 0 {
		se, err := NewSubstitutableEquality([]Expr{left, right}, eq.substitutions)
		if err != nil {
			return nil, err
		}
		members := se.Substitute().members
		left, right = members[0], members[1]
		s.equal(left, right)
	}

	unknown, err := findUnknown(left, right, opts.Variable)
	if err != nil {
		return nil, err
	}
	s.unknown = unknown

	left, right, err = s.expand(left, right)
	if err != nil {
		return nil, err
	}
	if !containsLiteral(left, unknown) {
		left, right = right, left
		s.equal(left, right)
	}
	left, right = s.move(left, right)
	left, right, err = s.collect(left, right)
	if err != nil {
		return nil, err
	}
	if err := s.isolate(left, right); err != nil {
		return nil, err
	}
	lg().Debug("outcome", zap.Stringer("outcome", s.res.Outcome), zap.Int("steps", len(s.res.Steps)))
	return s.res, nil
}

func findUnknown(left, right Expr, want string) (string, error) {
	names := Literals(&Sum{terms: []Expr{left, right}})
	if want != "" {
		for _, n := range names {
			if n == want && len(names) == 1 {
				return want, nil
			}
		}
		return "", impossibleAction("equation unknowns %v, expected only %q", names, want)
	}
	if len(names) != 1 {
		return "", impossibleAction("equation must have exactly one unknown, got %v", names)
	}
	return names[0], nil
}

func pending(e Expr) bool { return containsKind(e, KindExpandable, KindBinomialIdentity) }

// expand steps each side holding a pending expansion until none is left.
func (s *solver) expand(left, right Expr) (Expr, Expr, error) {
	for i := 0; pending(left) || pending(right); i++ {
		if i > MaxReductionSteps {
			return nil, nil, impossibleAction("expansion does not terminate")
		}
		if pending(left) {
			if next, ok := left.Step(); ok {
				left = next
			}
		}
		if pending(right) {
			if next, ok := right.Step(); ok {
				right = next
			}
		}
		s.equal(left, right)
	}
	return left, right, nil
}

// move carries unknown terms to the left and constants to the right, one
// line per moved term.
func (s *solver) move(left, right Expr) (Expr, Expr) {
	left, right = flatten(left), flatten(right)
	s.equal(left, right)
	for {
		terms := flatTerms(right)
		i := indexOf(terms, func(t Expr) bool { return containsLiteral(t, s.unknown) })
		if i < 0 {
			break
		}
		left = &Sum{terms: append(flatTerms(left), negate(terms[i]))}
		right = remove(terms, i)
		s.equal(left, right)
	}
	for {
		terms := flatTerms(left)
		if len(terms) < 2 {
			break
		}
		i := indexOf(terms, func(t Expr) bool { return !containsLiteral(t, s.unknown) })
		if i < 0 {
			break
		}
		moved := negate(terms[i])
		left = remove(terms, i)
		if isZeroItem(right) {
			right = moved
		} else {
			right = &Sum{terms: append(flatTerms(right), moved)}
		}
		s.equal(left, right)
	}
	return left, right
}

// flatTerms lists the terms of e, opening nested sums.
func flatTerms(e Expr) []Expr {
	var out []Expr
	for _, t := range termsOf(e) {
		switch t.(type) {
		case *Sum, *Polynomial:
			out = append(out, flatTerms(t)...)
		default:
			out = append(out, t)
		}
	}
	return out
}

// flatten rebuilds a sum holding nested sums as a single sum.
func flatten(e Expr) Expr {
	switch e.(type) {
	case *Sum, *Polynomial:
	default:
		return e
	}
	for _, t := range termsOf(e) {
		switch t.(type) {
		case *Sum, *Polynomial:
			return &Sum{terms: flatTerms(e)}
		}
	}
	return e
}

func indexOf(list []Expr, pred func(Expr) bool) int {
	for i, e := range list {
		if pred(e) {
			return i
		}
	}
	return -1
}

func remove(list []Expr, i int) Expr {
	out := append(append([]Expr{}, list[:i]...), list[i+1:]...)
	return sumOrSingle(out)
}

func isZeroItem(e Expr) bool {
	it, ok := numericItem(e)
	return ok && it.value.IsZero()
}

// collect reduces both sides together, one step per side per line.
func (s *solver) collect(left, right Expr) (Expr, Expr, error) {
	for i := 0; ; i++ {
		if i > MaxReductionSteps {
			return nil, nil, impossibleAction("collection does not terminate")
		}
		nl, okL := s.stepLeft(left)
		nr, okR := right.Step()
		if !okL && !okR {
			return left, right, nil
		}
		if okL {
			left = nl
		}
		if okR {
			right = nr
		}
		s.equal(left, right)
	}
}

// stepLeft reduces the unknown side but keeps a null coefficient visible:
// 0x stays on the line so the degenerate case can be read.
func (s *solver) stepLeft(left Expr) (Expr, bool) {
	next, ok := left.Step()
	if !ok {
		return nil, false
	}
	if containsLiteral(left, s.unknown) && !containsLiteral(next, s.unknown) {
		if sum, isSum := left.(*Sum); isSum {
			for _, t := range sum.terms {
				if !isZeroTerm(t) {
					continue
				}
				lt, _ := classify(t)
				if lt.variable == s.unknown {
					return t, true
				}
			}
		}
		return nil, false
	}
	return next, true
}

// unknownTerm reads left as coefficient × unknown^degree.
func (s *solver) unknownTerm(left Expr) (coeff Expr, degree int, ok bool) {
	if f, isFrac := left.(*Fraction); isFrac && isNumericOnly(f.denominator) {
		c, d, ok := s.unknownTerm(f.numerator)
		if !ok {
			return nil, 0, false
		}
		return over(c, f.denominator), d, true
	}
	lt, ok := classify(left)
	if !ok || lt.variable != s.unknown {
		return nil, 0, false
	}
	return lt.coeff, lt.degree, true
}

func (s *solver) isolate(left, right Expr) error {
	if !isNumericOnly(right) {
		return impossibleAction("right-hand side %s still holds an unknown", right)
	}
	coeff, degree, ok := s.unknownTerm(left)
	if !ok {
		return impossibleAction("cannot isolate %s in %s", s.unknown, left)
	}
	if degree != 1 && !(s.opts.Pythagorean && degree == 2) {
		return impossibleAction("equation of degree %d in %s is not linear", degree, s.unknown)
	}
	c, err := coeff.Evaluate(nil)
	if err != nil {
		return err
	}
	k, err := right.Evaluate(nil)
	if err != nil {
		return err
	}
	if c.IsZero() {
		if k.IsZero() {
			s.res.Outcome = InfiniteSolutions
		} else {
			s.res.Outcome = NoSolution
		}
		return nil
	}

	unknown := Expr(S(s.unknown))
	if degree == 2 {
		unknown = S(s.unknown).Pow(N(2))
	}
	switch {
	case c.IsOne():
		if !left.Equal(unknown) {
			s.equal(unknown, right)
		}
	case c.Neg().IsOne():
		right = negate(right)
		s.equal(unknown, right)
	default:
		if f, isFrac := coeff.(*Fraction); isFrac {
			right = &Product{factors: []Expr{right, reciprocal(f)}}
		} else {
			right = over(right, coeff)
		}
		s.equal(unknown, right)
	}
	right, err = s.reduceRight(unknown, right)
	if err != nil {
		return err
	}
	value, err := right.Evaluate(nil)
	if err != nil {
		return err
	}
	if degree == 2 {
		return s.roots(right, value)
	}
	s.res.Outcome = Solved
	s.res.Solutions = []Value{value}
	s.decimalLine(unknown, right, value)
	return nil
}

func (s *solver) reduceRight(left, right Expr) (Expr, error) {
	for i := 0; ; i++ {
		if i > MaxReductionSteps {
			return nil, impossibleAction("%s does not reduce", right)
		}
		next, ok := right.Step()
		if !ok {
			return right, nil
		}
		right = next
		s.equal(left, right)
	}
}

// decimalLine appends the rounded form of a non-integer solution.
func (s *solver) decimalLine(left, right Expr, value Value) {
	if !s.opts.DecimalResult || value.IsInteger() {
		return
	}
	rounded := Round(value, s.opts.Precision)
	exact := ValueFromDecimal(rounded).Equal(value)
	s.record(Snapshot{Left: left, Right: []Expr{ItemFromDecimal(rounded)}, Approximate: !exact})
}

// roots finishes x² = k.
func (s *solver) roots(right Expr, k Value) error {
	x := S(s.unknown)
	switch k.Sign() {
	case -1:
		s.res.Outcome = NoSolution
		return nil
	case 0:
		s.res.Outcome = Solved
		s.res.Solutions = []Value{NewValue(0)}
		s.equal(x, N(0))
		return nil
	}
	s.res.Outcome = Solved
	root, exact := ratSqrt(k)
	var pos Expr
	if exact {
		pos = ValueExpr(root)
	} else {
		reduced, err := ReduceFully(&SquareRoot{radicand: right})
		if err != nil {
			return err
		}
		pos = reduced
	}
	neg := negate(pos)
	s.record(Snapshot{Left: x, Right: []Expr{pos, neg}})
	if s.opts.Length {
		s.record(Snapshot{Left: x, Right: []Expr{pos}, Justification: fmt.Sprintf("because %s is positive", s.unknown)})
	}
	if exact {
		s.res.Solutions = []Value{root}
		if !s.opts.Length {
			s.res.Solutions = append(s.res.Solutions, root.Neg())
		}
		s.decimalLine(x, pos, root)
		return nil
	}
	if !s.opts.DecimalResult {
		return nil
	}
	approx, err := approximateSqrt(k, s.opts.Precision)
	if err != nil {
		return err
	}
	rounded := ValueFromDecimal(approx)
	alternatives := []Expr{ItemFromDecimal(approx)}
	s.res.Solutions = []Value{rounded}
	if !s.opts.Length {
		alternatives = append(alternatives, ItemFromDecimal(approx.Neg()))
		s.res.Solutions = append(s.res.Solutions, rounded.Neg())
	}
	s.record(Snapshot{Left: x, Right: alternatives, Approximate: true})
	return nil
}
