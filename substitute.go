package stepwise

// Substitute returns e with every literal found in env replaced by its
// numeric value. Literals missing from env are kept.
func Substitute(e Expr, env Env) Expr {
	if len(env) == 0 {
		return e
	}
	switch v := e.(type) {
	case *Item:
		var exp Expr
		if v.exponent != nil {
			exp = Substitute(v.exponent, env)
		}
		if v.isNumeric() {
			return &Item{sign: v.sign, value: v.value, exponent: exp}
		}
		val, ok := env[v.literal]
		if !ok {
			return &Item{sign: v.sign, literal: v.literal, exponent: exp}
		}
		if v.sign == Minus {
			val = val.Neg()
		}
		return power(ValueExpr(val), exp)
	case *Sum:
		return &Sum{terms: substituteAll(v.terms, env)}
	case *Product:
		var exp Expr
		if v.exponent != nil {
			exp = Substitute(v.exponent, env)
		}
		return &Product{factors: substituteAll(v.factors, env), exponent: exp, struck: v.struck}
	case *Fraction:
		return &Fraction{numerator: Substitute(v.numerator, env), denominator: Substitute(v.denominator, env)}
	case *Quotient:
		return &Quotient{numerator: Substitute(v.numerator, env), denominator: Substitute(v.denominator, env), useDivideSymbol: v.useDivideSymbol}
	case *Monomial:
		return substituteMonomial(v, env)
	case *Polynomial:
		terms := make([]Expr, len(v.terms))
		changed := false
		for i, t := range v.terms {
			terms[i] = substituteMonomial(t, env)
			if _, still := terms[i].(*Monomial); !still {
				changed = true
			}
		}
		if !changed {
			return v
		}
		return &Sum{terms: terms}
	case *Expandable:
		return &Expandable{factor: Substitute(v.factor, env), sum: Substitute(v.sum, env)}
	case *BinomialIdentity:
		a, b := Substitute(v.a, env), Substitute(v.b, env)
		if isIdentityOperand(a) && isIdentityOperand(b) {
			return &BinomialIdentity{kind: v.kind, a: a, b: b}
		}
		plus := &Sum{terms: []Expr{a, b}}
		switch v.kind {
		case SquareOfSum:
			return &Product{factors: []Expr{plus}, exponent: N(2)}
		case SquareOfDifference:
			return &Product{factors: []Expr{&Sum{terms: []Expr{a, negate(b)}}}, exponent: N(2)}
		}
		return &Product{factors: []Expr{plus, &Sum{terms: []Expr{a, negate(b)}}}}
	case *SquareRoot:
		return &SquareRoot{radicand: Substitute(v.radicand, env)}
	}
	panic("stepwise: unhandled kind " + e.Kind().String())
}

func substituteAll(list []Expr, env Env) []Expr {
	out := make([]Expr, len(list))
	for i, e := range list {
		out[i] = Substitute(e, env)
	}
	return out
}

func substituteMonomial(m *Monomial, env Env) Expr {
	val, ok := env[m.variable]
	if !ok || m.degree == 0 {
		return m
	}
	return &Product{factors: []Expr{m.coefficient, power(ValueExpr(val), N(int64(m.degree)))}}
}

// power raises a substituted value to exp, keeping the sign inside the power.
func power(base, exp Expr) Expr {
	exp = normalizeExponent(exp)
	if exp == nil {
		return base
	}
	if it, ok := base.(*Item); ok && it.exponent == nil {
		return it.Pow(exp)
	}
	return &Product{factors: []Expr{base}, exponent: exp}
}

func isIdentityOperand(e Expr) bool {
	switch e.(type) {
	case *Item, *Monomial:
		return true
	}
	return false
}
