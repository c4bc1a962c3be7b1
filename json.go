package stepwise

import (
	"encoding/json"
	"fmt"
	"math/big"
	"strconv"
)

// ============================================================
// JSON Serialization
// ============================================================

func ToJSON(e Expr) (string, error) {
	b, err := json.Marshal(e.toJSON())
	return string(b), err
}

// FromJSON builds an expression from its structured record. Every node goes
// through its validating constructor.
func FromJSON(data map[string]interface{}) (Expr, error) {
	if data == nil {
		return nil, wrongArgument("expression must be an object")
	}
	typ, ok := data["type"].(string)
	if !ok || typ == "" {
		return nil, wrongArgument("field 'type' must be a non-empty string")
	}

	subExpr := func(field string) (Expr, error) {
		v, ok := data[field]
		if !ok {
			return nil, wrongArgument("%s: missing %q", typ, field)
		}
		m, ok := asObject(v)
		if !ok {
			return nil, wrongArgument("%s: %q must be an object", typ, field)
		}
		e, err := FromJSON(m)
		if err != nil {
			return nil, fmt.Errorf("%s: %s: %w", typ, field, err)
		}
		return e, nil
	}
	optExpr := func(field string) (Expr, error) {
		if _, ok := data[field]; !ok {
			return nil, nil
		}
		return subExpr(field)
	}
	subExprs := func(field string) ([]Expr, error) {
		raw, ok := data[field].([]interface{})
		if !ok {
			return nil, wrongArgument("%s: %q must be an array", typ, field)
		}
		out := make([]Expr, len(raw))
		for i, it := range raw {
			m, ok := asObject(it)
			if !ok {
				return nil, wrongArgument("%s: %q[%d] must be an object", typ, field, i)
			}
			e, err := FromJSON(m)
			if err != nil {
				return nil, fmt.Errorf("%s: %s[%d]: %w", typ, field, i, err)
			}
			out[i] = e
		}
		return out, nil
	}

	switch typ {
	case "item":
		value, err := scalarString(data["value"])
		if err != nil {
			return nil, fmt.Errorf("item: value: %w", err)
		}
		sign, _ := data["sign"].(string)
		exp, err := optExpr("exponent")
		if err != nil {
			return nil, err
		}
		return NewItem(ItemSpec{Sign: sign, Value: value, Exponent: exp})

	case "sum":
		terms, err := subExprs("terms")
		if err != nil {
			return nil, err
		}
		return NewSum(terms...)

	case "product":
		factors, err := subExprs("factors")
		if err != nil {
			return nil, err
		}
		p, err := NewProduct(factors...)
		if err != nil {
			return nil, err
		}
		exp, err := optExpr("exponent")
		if err != nil {
			return nil, err
		}
		if exp != nil {
			p = p.Pow(exp)
		}
		if raw, ok := data["struck"].([]interface{}); ok && len(raw) > 0 {
			struck := make([]bool, len(p.factors))
			for _, r := range raw {
				i, err := toInt(r)
				if err != nil || i < 0 || i >= len(struck) {
					return nil, outOfRange("product: struck index %v", r)
				}
				struck[i] = true
			}
			p = &Product{factors: p.factors, exponent: p.exponent, struck: struck}
		}
		return p, nil

	case "fraction", "quotient":
		num, err := subExpr("numerator")
		if err != nil {
			return nil, err
		}
		den, err := subExpr("denominator")
		if err != nil {
			return nil, err
		}
		if typ == "fraction" {
			return NewFraction(num, den)
		}
		divide, ok := data["divide_symbol"].(bool)
		if !ok {
			divide = true
		}
		return NewQuotient(num, den, divide)

	case "monomial":
		coeff, err := subExpr("coefficient")
		if err != nil {
			return nil, err
		}
		degree, err := toInt(data["degree"])
		if err != nil {
			return nil, fmt.Errorf("monomial: degree: %w", err)
		}
		variable, _ := data["variable"].(string)
		return NewMonomial(coeff, variable, degree)

	case "polynomial":
		terms, err := subExprs("terms")
		if err != nil {
			return nil, err
		}
		monomials := make([]*Monomial, len(terms))
		for i, t := range terms {
			m, ok := t.(*Monomial)
			if !ok {
				return nil, uncompatibleType("polynomial: terms[%d] is a %s", i, t.Kind())
			}
			monomials[i] = m
		}
		return NewPolynomial(monomials...)

	case "expandable":
		factor, err := subExpr("factor")
		if err != nil {
			return nil, err
		}
		sum, err := subExpr("sum")
		if err != nil {
			return nil, err
		}
		return NewExpandable(factor, sum)

	case "binomial":
		name, _ := data["identity"].(string)
		kind, err := ParseIdentityKind(name)
		if err != nil {
			return nil, err
		}
		a, err := subExpr("a")
		if err != nil {
			return nil, err
		}
		b, err := subExpr("b")
		if err != nil {
			return nil, err
		}
		return NewBinomialIdentity(kind, a, b)

	case "sqrt":
		r, err := subExpr("radicand")
		if err != nil {
			return nil, err
		}
		return NewSquareRoot(r)
	}
	return nil, wrongArgument("unknown expression type: %s", typ)
}

// EquationFromJSON reads {"left": expr, "right": expr, "substitutions": {name: value}}.
func EquationFromJSON(data map[string]interface{}) (*Equation, error) {
	var sides [2]Expr
	for i, field := range []string{"left", "right"} {
		m, ok := asObject(data[field])
		if !ok {
			return nil, wrongArgument("equation: %q must be an object", field)
		}
		e, err := FromJSON(m)
		if err != nil {
			return nil, fmt.Errorf("equation: %s: %w", field, err)
		}
		sides[i] = e
	}
	eq, err := NewEquation(sides[0], sides[1])
	if err != nil {
		return nil, err
	}
	raw, ok := data["substitutions"]
	if !ok {
		return eq, nil
	}
	env, err := EnvFromJSON(raw)
	if err != nil {
		return nil, fmt.Errorf("equation: substitutions: %w", err)
	}
	return eq.WithSubstitutions(env), nil
}

// EnvFromJSON reads a {name: value} object; values are numbers or strings
// such as "5/2" or "2.75".
func EnvFromJSON(raw interface{}) (Env, error) {
	m, ok := asObject(raw)
	if !ok {
		return nil, wrongArgument("substitutions must be an object")
	}
	env := make(Env, len(m))
	for name, v := range m {
		val, err := ParseValue(v)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", name, err)
		}
		env[name] = val
	}
	return env, nil
}

// ParseValue reads a number or a rational string.
func ParseValue(v interface{}) (Value, error) {
	s, err := scalarString(v)
	if err != nil {
		return Value{}, err
	}
	r, ok := new(big.Rat).SetString(s)
	if !ok {
		return Value{}, wrongArgument("invalid number %q", s)
	}
	return Value{r: r}, nil
}

// asObject accepts JSON objects and the map shape YAML decoders produce.
func asObject(v interface{}) (map[string]interface{}, bool) {
	switch m := v.(type) {
	case map[string]interface{}:
		return m, true
	case map[interface{}]interface{}:
		out := make(map[string]interface{}, len(m))
		for k, val := range m {
			ks, ok := k.(string)
			if !ok {
				return nil, false
			}
			out[ks] = val
		}
		return out, true
	}
	return nil, false
}

func scalarString(v interface{}) (string, error) {
	switch n := v.(type) {
	case string:
		if n == "" {
			return "", wrongArgument("empty value")
		}
		return n, nil
	case float64:
		return strconv.FormatFloat(n, 'f', -1, 64), nil
	case int:
		return strconv.Itoa(n), nil
	case int64:
		return strconv.FormatInt(n, 10), nil
	case json.Number:
		return n.String(), nil
	case nil:
		return "", wrongArgument("missing value")
	}
	return "", wrongArgument("value %v must be a number or a string", v)
}

func toInt(v interface{}) (int, error) {
	switch n := v.(type) {
	case float64:
		if n != float64(int(n)) {
			return 0, wrongArgument("%v is not an integer", n)
		}
		return int(n), nil
	case int:
		return n, nil
	case int64:
		return int(n), nil
	case json.Number:
		i, err := n.Int64()
		if err != nil {
			return 0, wrongArgument("%v is not an integer", n)
		}
		return int(i), nil
	}
	return 0, wrongArgument("%v must be an integer", v)
}
