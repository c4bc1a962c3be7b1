package stepwise

import (
	"fmt"
	"sort"
	"strings"
)

// ============================================================
// Sum: ordered terms
// ============================================================

// Sum is an ordered sequence of terms. Order matters for display only.
type Sum struct{ terms []Expr }

// NewSum builds a Sum. It needs at least one term.
func NewSum(terms ...Expr) (*Sum, error) {
	if len(terms) == 0 {
		return nil, wrongArgument("sum needs at least one term")
	}
	for i, t := range terms {
		if t == nil {
			return nil, wrongArgument("sum term %d is nil", i)
		}
	}
	return &Sum{terms: append([]Expr{}, terms...)}, nil
}

// SumOf is NewSum for literal code; it panics on invalid input.
func SumOf(terms ...Expr) *Sum {
	s, err := NewSum(terms...)
	if err != nil {
		panic("stepwise: " + err.Error())
	}
	return s
}

func (s *Sum) Terms() []Expr     { return append([]Expr{}, s.terms...) }
func (s *Sum) Kind() Kind        { return KindSum }
func (s *Sum) IsReducible() bool { _, ok := s.Step(); return ok }
func (s *Sum) String() string    { return s.Render(RenderOptions{}) }
func (s *Sum) LaTeX() string     { return s.Render(RenderOptions{Format: FormatLaTeX}) }

func (s *Sum) Step() (Expr, bool) {
	for i, t := range s.terms {
		if next, ok := t.Step(); ok {
			return &Sum{terms: replaceAt(s.terms, i, next)}, true
		}
	}
	if len(s.terms) == 1 {
		return s.terms[0], true
	}
	for i, t := range s.terms {
		switch t.(type) {
		case *Sum, *Polynomial:
			flat := append([]Expr{}, s.terms[:i]...)
			flat = append(flat, termsOf(t)...)
			flat = append(flat, s.terms[i+1:]...)
			return &Sum{terms: flat}, true
		}
	}
	if next, ok := regroup(s.terms); ok {
		return next, true
	}
	if next, ok := foldNumericTerms(s.terms); ok {
		return next, true
	}
	if next, ok := dropZeroTerms(s.terms); ok {
		return next, true
	}
	return nil, false
}

func (s *Sum) Evaluate(env Env) (Value, error) {
	acc := NewValue(0)
	for _, t := range s.terms {
		v, err := t.Evaluate(env)
		if err != nil {
			return Value{}, err
		}
		acc = acc.Add(v)
	}
	return acc, nil
}

func (s *Sum) Render(opts RenderOptions) string { return renderTerms(s.terms, opts) }

func (s *Sum) Equal(other Expr) bool {
	o, ok := other.(*Sum)
	return ok && equalExprs(s.terms, o.terms)
}

func (s *Sum) RequiresBrackets(pos Position) bool {
	return pos != PositionStandalone && len(s.terms) > 1
}

func (s *Sum) RequiresInnerBrackets() bool { return false }

func (s *Sum) toJSON() map[string]interface{} {
	ts := make([]map[string]interface{}, len(s.terms))
	for i, t := range s.terms {
		ts[i] = t.toJSON()
	}
	return map[string]interface{}{"type": "sum", "terms": ts}
}

// ============================================================
// Like-term collection
// ============================================================

const numericKey = "#"

// likeTerm is the collection view of a term: a numeric coefficient times a
// literal part identified by key.
type likeTerm struct {
	key      string
	coeff    Expr
	variable string // set when the literal part is a single power
	degree   int
	literal  []Expr // literal factors, for multi-literal parts
}

func classify(t Expr) (likeTerm, bool) {
	switch v := t.(type) {
	case *Item:
		if v.isNumeric() {
			if v.exponent != nil {
				return likeTerm{}, false
			}
			return likeTerm{key: numericKey, coeff: v}, true
		}
		n, ok := integerExponent(v.exponent)
		if !ok || n < 1 {
			return likeTerm{}, false
		}
		coeff := N(1)
		if v.sign == Minus && n%2 == 1 {
			coeff = N(-1)
		}
		return likeTerm{key: powerKey(v.literal, int(n)), coeff: coeff, variable: v.literal, degree: int(n)}, true
	case *Fraction:
		if !isNumericOnly(v.denominator) {
			return likeTerm{}, false
		}
		if d, err := v.denominator.Evaluate(nil); err != nil || d.IsZero() {
			return likeTerm{}, false
		}
		if isNumericOnly(v.numerator) {
			return likeTerm{key: numericKey, coeff: v}, true
		}
		lt, ok := classify(v.numerator)
		if !ok {
			return likeTerm{}, false
		}
		lt.coeff = over(lt.coeff, v.denominator)
		return lt, true
	case *Monomial:
		if v.degree == 0 {
			return likeTerm{key: numericKey, coeff: v.coefficient}, true
		}
		return likeTerm{key: powerKey(v.variable, v.degree), coeff: v.coefficient, variable: v.variable, degree: v.degree}, true
	case *Product:
		return classifyProduct(v)
	}
	return likeTerm{}, false
}

func classifyProduct(p *Product) (likeTerm, bool) {
	if p.exponent != nil || p.hasStruck() {
		return likeTerm{}, false
	}
	var nums, lits []Expr
	for _, f := range p.factors {
		switch v := f.(type) {
		case *Item:
			if v.isNumeric() && v.exponent == nil {
				nums = append(nums, v)
				continue
			}
			if n, ok := integerExponent(v.exponent); ok && !v.isNumeric() && v.sign == Plus && n >= 1 {
				lits = append(lits, v)
				continue
			}
			return likeTerm{}, false
		case *Fraction:
			if !isNumericOnly(v) {
				return likeTerm{}, false
			}
			nums = append(nums, v)
		default:
			return likeTerm{}, false
		}
	}
	if len(lits) == 0 {
		return likeTerm{}, false
	}
	var coeff Expr
	switch len(nums) {
	case 0:
		coeff = N(1)
	case 1:
		coeff = nums[0]
	default:
		coeff = &Product{factors: nums}
	}
	sort.SliceStable(lits, func(i, j int) bool { return AlphabeticalOrderCmp(lits[i], lits[j]) < 0 })
	keys := make([]string, len(lits))
	for i, l := range lits {
		it := l.(*Item)
		n, _ := integerExponent(it.exponent)
		keys[i] = powerKey(it.literal, int(n))
		if i > 0 && lits[i-1].(*Item).literal == it.literal {
			return likeTerm{}, false
		}
	}
	if len(lits) == 1 {
		it := lits[0].(*Item)
		n, _ := integerExponent(it.exponent)
		return likeTerm{key: keys[0], coeff: coeff, variable: it.literal, degree: int(n)}, true
	}
	return likeTerm{key: strings.Join(keys, "*"), coeff: coeff, literal: lits}, true
}

func powerKey(name string, degree int) string { return fmt.Sprintf("%s^%d", name, degree) }

// rebuild writes a collected group back as one term.
func (lt likeTerm) rebuild(coeff Expr) Expr {
	if lt.variable != "" {
		return &Monomial{coefficient: coeff, variable: lt.variable, degree: lt.degree}
	}
	return &Product{factors: append([]Expr{coeff}, lt.literal...)}
}

type termGroup struct {
	key     string
	members []int
}

func groupTerms(terms []Expr) ([]termGroup, []likeTerm) {
	classes := make([]likeTerm, len(terms))
	var groups []termGroup
	index := map[string]int{}
	for i, t := range terms {
		lt, ok := classify(t)
		if !ok {
			lt = likeTerm{key: fmt.Sprintf("@%d", i)}
		}
		classes[i] = lt
		if g, seen := index[lt.key]; seen {
			groups[g].members = append(groups[g].members, i)
			continue
		}
		index[lt.key] = len(groups)
		groups = append(groups, termGroup{key: lt.key, members: []int{i}})
	}
	return groups, classes
}

// regroup collects like terms into explicit coefficient sums, keeping
// first-seen order.
func regroup(terms []Expr) (Expr, bool) {
	groups, classes := groupTerms(terms)
	needed := false
	for _, g := range groups {
		if len(g.members) < 2 {
			continue
		}
		if g.key != numericKey || len(groups) > 1 {
			needed = true
		}
	}
	if !needed {
		return nil, false
	}
	out := make([]Expr, 0, len(groups))
	for _, g := range groups {
		if len(g.members) == 1 {
			out = append(out, terms[g.members[0]])
			continue
		}
		if g.key == numericKey {
			sub := make([]Expr, len(g.members))
			for k, m := range g.members {
				sub[k] = terms[m]
			}
			out = append(out, &Sum{terms: sub})
			continue
		}
		coeffs := make([]Expr, len(g.members))
		for k, m := range g.members {
			coeffs[k] = classes[m].coeff
		}
		out = append(out, classes[g.members[0]].rebuild(&Sum{terms: coeffs}))
	}
	return sumOrSingle(out), true
}

// foldNumericTerms folds a sum made only of numeric terms into one value.
func foldNumericTerms(terms []Expr) (Expr, bool) {
	if len(terms) < 2 {
		return nil, false
	}
	total := NewValue(0)
	denominators := []int64{}
	for _, t := range terms {
		lt, ok := classify(t)
		if !ok || lt.key != numericKey {
			return nil, false
		}
		v, err := lt.coeff.Evaluate(nil)
		if err != nil {
			return nil, false
		}
		total = total.Add(v)
		if f, ok := lt.coeff.(*Fraction); ok {
			d, err := f.denominator.Evaluate(nil)
			if err != nil || !d.IsInteger() || d.IsZero() {
				return nil, false
			}
			denominators = append(denominators, d.Num().Int64())
		}
	}
	if len(denominators) == 0 {
		if d, ok := total.Decimal(); ok {
			return ItemFromDecimal(d), true
		}
		return ValueExpr(total), true
	}
	common := denominators[0]
	for _, d := range denominators[1:] {
		common, _ = LCM(common, d)
	}
	common = absInt(common)
	scaled := total.Mul(NewValue(common))
	numerator, ok := scaled.Decimal()
	if !ok {
		return ValueExpr(total), true
	}
	if common == 1 {
		return ItemFromDecimal(numerator), true
	}
	return &Fraction{numerator: ItemFromDecimal(numerator), denominator: N(common)}, true
}

func isZeroTerm(t Expr) bool {
	lt, ok := classify(t)
	if !ok {
		return false
	}
	v, err := lt.coeff.Evaluate(nil)
	return err == nil && v.IsZero()
}

// dropZeroTerms removes terms equal to the neutral element.
func dropZeroTerms(terms []Expr) (Expr, bool) {
	if len(terms) < 2 {
		return nil, false
	}
	kept := make([]Expr, 0, len(terms))
	for _, t := range terms {
		if !isZeroTerm(t) {
			kept = append(kept, t)
		}
	}
	if len(kept) == len(terms) {
		return nil, false
	}
	return sumOrSingle(kept), true
}

// AlphabeticalOrderCmp orders terms by literal name, then by decreasing
// degree; numeric and unclassified terms come last.
func AlphabeticalOrderCmp(a, b Expr) int {
	ka, okA := classify(a)
	kb, okB := classify(b)
	litA := okA && ka.key != numericKey
	litB := okB && kb.key != numericKey
	switch {
	case !litA && !litB:
		return 0
	case !litA:
		return 1
	case !litB:
		return -1
	}
	na, nb := ka.variable, kb.variable
	if na == "" {
		na = ka.key
	}
	if nb == "" {
		nb = kb.key
	}
	if c := strings.Compare(na, nb); c != 0 {
		return c
	}
	switch {
	case ka.degree > kb.degree:
		return -1
	case ka.degree < kb.degree:
		return 1
	}
	return 0
}
