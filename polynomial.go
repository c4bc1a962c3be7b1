package stepwise

import "sort"

// Polynomial is a sum of monomials, collected and ordered by decreasing
// degree once reduced.
type Polynomial struct{ terms []*Monomial }

func NewPolynomial(terms ...*Monomial) (*Polynomial, error) {
	if len(terms) == 0 {
		return nil, wrongArgument("polynomial needs at least one term")
	}
	for i, t := range terms {
		if t == nil {
			return nil, wrongArgument("polynomial term %d is nil", i)
		}
	}
	return &Polynomial{terms: append([]*Monomial{}, terms...)}, nil
}

func (p *Polynomial) Terms() []*Monomial { return append([]*Monomial{}, p.terms...) }

// Degree returns the highest degree among the terms.
func (p *Polynomial) Degree() int {
	d := 0
	for _, t := range p.terms {
		if t.degree > d {
			d = t.degree
		}
	}
	return d
}

func (p *Polynomial) Kind() Kind        { return KindPolynomial }
func (p *Polynomial) IsReducible() bool { _, ok := p.Step(); return ok }
func (p *Polynomial) String() string    { return p.Render(RenderOptions{}) }
func (p *Polynomial) LaTeX() string     { return p.Render(RenderOptions{Format: FormatLaTeX}) }

func (p *Polynomial) Step() (Expr, bool) {
	for i, t := range p.terms {
		if next, ok := t.Step(); ok {
			terms := append([]*Monomial{}, p.terms...)
			terms[i] = next.(*Monomial)
			return &Polynomial{terms: terms}, true
		}
	}
	if len(p.terms) == 1 {
		return p.terms[0], true
	}
	if next, ok := p.collect(); ok {
		return next, true
	}
	if next, ok := p.dropZeros(); ok {
		return next, true
	}
	if !sort.SliceIsSorted(p.terms, p.less) {
		terms := append([]*Monomial{}, p.terms...)
		sort.SliceStable(terms, func(i, j int) bool { return AlphabeticalOrderCmp(terms[i], terms[j]) < 0 })
		return &Polynomial{terms: terms}, true
	}
	return nil, false
}

func (p *Polynomial) less(i, j int) bool { return AlphabeticalOrderCmp(p.terms[i], p.terms[j]) < 0 }

type monomialKey struct {
	variable string
	degree   int
}

func (p *Polynomial) collect() (Expr, bool) {
	var order []monomialKey
	groups := map[monomialKey][]Expr{}
	for _, t := range p.terms {
		k := monomialKey{t.variable, t.degree}
		if _, ok := groups[k]; !ok {
			order = append(order, k)
		}
		groups[k] = append(groups[k], t.coefficient)
	}
	if len(order) == len(p.terms) {
		return nil, false
	}
	terms := make([]*Monomial, len(order))
	for i, k := range order {
		coeffs := groups[k]
		var c Expr = coeffs[0]
		if len(coeffs) > 1 {
			c = &Sum{terms: coeffs}
		}
		terms[i] = &Monomial{coefficient: c, variable: k.variable, degree: k.degree}
	}
	return &Polynomial{terms: terms}, true
}

func (p *Polynomial) dropZeros() (Expr, bool) {
	kept := make([]*Monomial, 0, len(p.terms))
	for _, t := range p.terms {
		if v, err := t.coefficient.Evaluate(nil); err == nil && v.IsZero() {
			continue
		}
		kept = append(kept, t)
	}
	switch {
	case len(kept) == len(p.terms):
		return nil, false
	case len(kept) == 0:
		return N(0), true
	}
	return &Polynomial{terms: kept}, true
}

func (p *Polynomial) Evaluate(env Env) (Value, error) {
	acc := NewValue(0)
	for _, t := range p.terms {
		v, err := t.Evaluate(env)
		if err != nil {
			return Value{}, err
		}
		acc = acc.Add(v)
	}
	return acc, nil
}

func (p *Polynomial) Render(opts RenderOptions) string { return renderTerms(children(p), opts) }

func (p *Polynomial) Equal(other Expr) bool {
	o, ok := other.(*Polynomial)
	return ok && equalExprs(children(p), children(o))
}

func (p *Polynomial) RequiresBrackets(pos Position) bool {
	return pos != PositionStandalone && len(p.terms) > 1
}

func (p *Polynomial) RequiresInnerBrackets() bool { return false }

func (p *Polynomial) toJSON() map[string]interface{} {
	ts := make([]map[string]interface{}, len(p.terms))
	for i, t := range p.terms {
		ts[i] = t.toJSON()
	}
	return map[string]interface{}{"type": "polynomial", "terms": ts}
}
