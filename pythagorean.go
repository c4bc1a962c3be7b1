package stepwise

// NewPythagoreanEquation builds the relation hypotenuse² = leg1² + leg2²
// isolated on the one side whose length is unknown. Exactly two of the three
// lengths must be known.
func NewPythagoreanEquation(hypotenuse, leg1, leg2 string, known Env) (*Equation, error) {
	names := []string{hypotenuse, leg1, leg2}
	for _, n := range names {
		if n == "" || !isLetter(n[0]) || !validLiteral(n) {
			return nil, wrongArgument("invalid side name %q", n)
		}
	}
	if hypotenuse == leg1 || hypotenuse == leg2 || leg1 == leg2 {
		return nil, wrongArgument("side names must be distinct")
	}
	unknown := ""
	count := 0
	for _, n := range names {
		v, ok := known[n]
		if !ok {
			unknown = n
			continue
		}
		if v.Sign() <= 0 {
			return nil, outOfRange("length %s = %s is not positive", n, v)
		}
		count++
	}
	if count != 2 {
		return nil, impossibleAction("pythagorean equation needs exactly two known sides, got %d", count)
	}
	sq := func(n string) Expr { return S(n).Pow(N(2)) }
	var eq *Equation
	switch unknown {
	case hypotenuse:
		eq = Eq(sq(hypotenuse), &Sum{terms: []Expr{sq(leg1), sq(leg2)}})
	case leg1:
		eq = Eq(sq(leg1), &Sum{terms: []Expr{sq(hypotenuse), &Product{factors: []Expr{N(-1), sq(leg2)}}}})
	default:
		eq = Eq(sq(leg2), &Sum{terms: []Expr{sq(hypotenuse), &Product{factors: []Expr{N(-1), sq(leg1)}}}})
	}
	eq = eq.WithSubstitutions(known)
	eq.pythagorean = true
	return eq, nil
}
