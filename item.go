package stepwise

import (
	"github.com/shopspring/decimal"
)

// ============================================================
// Item: signed atomic leaf
// ============================================================

// Item is a signed literal or numeric leaf raised to an exponent. The sign
// sits inside the power: an Item (-, 2, 2) is (-2)².
type Item struct {
	sign     Sign
	literal  string
	value    decimal.Decimal
	exponent Expr // nil is the neutral exponent 1
}

// ItemSpec is the structured record NewItem builds from.
type ItemSpec struct {
	Sign     string // "+", "-" or empty
	Value    string // a literal name ("x", "AB") or a decimal ("3.5")
	Exponent Expr   // nil for the neutral exponent
}

// NewItem validates spec and builds an Item.
func NewItem(spec ItemSpec) (*Item, error) {
	sign, err := ParseSign(spec.Sign)
	if err != nil {
		return nil, err
	}
	if spec.Value == "" {
		return nil, wrongArgument("item value is empty")
	}
	it := &Item{sign: sign, exponent: normalizeExponent(spec.Exponent)}
	if isLetter(spec.Value[0]) {
		if !validLiteral(spec.Value) {
			return nil, wrongArgument("invalid literal %q", spec.Value)
		}
		it.literal = spec.Value
		return it, nil
	}
	d, err := decimal.NewFromString(spec.Value)
	if err != nil {
		return nil, wrongArgument("invalid numeric value %q", spec.Value)
	}
	if d.IsNegative() {
		it.sign = it.sign.Flip()
		d = d.Neg()
	}
	it.value = d
	return it, nil
}

func isLetter(c byte) bool { return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') }

func validLiteral(s string) bool {
	for i := 0; i < len(s); i++ {
		c := s[i]
		if !isLetter(c) && !(i > 0 && (c >= '0' && c <= '9' || c == '\'')) {
			return false
		}
	}
	return true
}

// N returns the numeric Item n.
func N(n int64) *Item {
	if n < 0 {
		return &Item{sign: Minus, value: decimal.NewFromInt(-n)}
	}
	return &Item{sign: Plus, value: decimal.NewFromInt(n)}
}

// D returns the numeric Item for a decimal string. It panics on malformed input.
func D(s string) *Item {
	it, err := NewItem(ItemSpec{Value: s})
	if err != nil || it.literal != "" {
		panic("stepwise: invalid decimal " + s)
	}
	return it
}

// S returns the literal Item name. It panics on an invalid name.
func S(name string) *Item {
	if name == "" || !isLetter(name[0]) || !validLiteral(name) {
		panic("stepwise: invalid literal " + name)
	}
	return &Item{sign: Plus, literal: name}
}

// ItemFromDecimal returns the numeric Item d.
func ItemFromDecimal(d decimal.Decimal) *Item {
	if d.IsNegative() {
		return &Item{sign: Minus, value: d.Neg()}
	}
	return &Item{sign: Plus, value: d}
}

// ValueExpr returns v as an Item when it has a terminating decimal form and
// as a Fraction otherwise.
func ValueExpr(v Value) Expr {
	if d, ok := v.Decimal(); ok {
		return ItemFromDecimal(d)
	}
	num, den := v.Num(), v.Denom()
	return &Fraction{
		numerator:   ItemFromDecimal(decimal.NewFromBigInt(num, 0)),
		denominator: ItemFromDecimal(decimal.NewFromBigInt(den, 0)),
	}
}

func normalizeExponent(e Expr) Expr {
	if it, ok := e.(*Item); ok && it.isNumeric() && it.sign == Plus && it.exponent == nil && it.value.Equal(decimal.NewFromInt(1)) {
		return nil
	}
	return e
}

// Pow returns a copy of i raised to exp.
func (i *Item) Pow(exp Expr) *Item {
	return &Item{sign: i.sign, literal: i.literal, value: i.value, exponent: normalizeExponent(exp)}
}

func (i *Item) withSign(s Sign) *Item {
	return &Item{sign: s, literal: i.literal, value: i.value, exponent: i.exponent}
}

func (i *Item) Sign() Sign                 { return i.sign }
func (i *Item) IsLiteral() bool            { return i.literal != "" }
func (i *Item) Literal() string            { return i.literal }
func (i *Item) Magnitude() decimal.Decimal { return i.value }
func (i *Item) isNumeric() bool            { return i.literal == "" }

// Exponent returns the exponent, N(1) when neutral.
func (i *Item) Exponent() Expr {
	if i.exponent == nil {
		return N(1)
	}
	return i.exponent
}

// signed returns the signed numeric value of a numeric Item, ignoring the exponent.
func (i *Item) signed() decimal.Decimal {
	if i.sign == Minus {
		return i.value.Neg()
	}
	return i.value
}

func (i *Item) Kind() Kind        { return KindItem }
func (i *Item) IsReducible() bool { _, ok := i.Step(); return ok }
func (i *Item) String() string    { return i.Render(RenderOptions{}) }
func (i *Item) LaTeX() string     { return i.Render(RenderOptions{Format: FormatLaTeX}) }

func (i *Item) Step() (Expr, bool) {
	if i.exponent == nil {
		return nil, false
	}
	if next, ok := i.exponent.Step(); ok {
		return i.Pow(next), true
	}
	n, ok := integerExponent(i.exponent)
	if !ok {
		return nil, false
	}
	if n == 0 {
		if i.isNumeric() && i.value.IsZero() {
			return nil, false
		}
		return N(1), true
	}
	if i.isNumeric() {
		if n < 0 {
			if i.value.IsZero() {
				return nil, false
			}
			return &Fraction{numerator: N(1), denominator: i.Pow(N(-n))}, true
		}
		v, err := ValueFromDecimal(i.signed()).Pow(n)
		if err != nil {
			return nil, false
		}
		d, _ := v.Decimal()
		return ItemFromDecimal(d), true
	}
	return nil, false
}

func (i *Item) Evaluate(env Env) (Value, error) {
	var base Value
	if i.isNumeric() {
		base = ValueFromDecimal(i.value)
	} else {
		v, ok := env[i.literal]
		if !ok {
			return Value{}, nonEvaluable("literal %q has no value", i.literal)
		}
		base = v
	}
	if i.sign == Minus {
		base = base.Neg()
	}
	if i.exponent == nil {
		return base, nil
	}
	e, err := i.exponent.Evaluate(env)
	if err != nil {
		return Value{}, err
	}
	if !e.IsInteger() {
		return Value{}, nonEvaluable("non-integer exponent %s", e)
	}
	return base.Pow(e.Num().Int64())
}

func (i *Item) Render(opts RenderOptions) string {
	base := i.literal
	if i.isNumeric() {
		base = i.value.String()
	}
	if i.sign == Minus {
		base = "-" + base
	}
	if i.exponent == nil {
		return base
	}
	if i.RequiresInnerBrackets() {
		base = bracket(base, opts)
	}
	return base + superscript(i.exponent, opts)
}

func (i *Item) Equal(other Expr) bool {
	o, ok := other.(*Item)
	if !ok || i.sign != o.sign || i.literal != o.literal || !equalOptional(i.exponent, o.exponent) {
		return false
	}
	return i.isNumeric() == o.isNumeric() && i.value.Equal(o.value)
}

func (i *Item) RequiresBrackets(pos Position) bool {
	switch pos {
	case PositionFactor:
		return i.sign == Minus && i.exponent == nil
	case PositionBase:
		return i.sign == Minus || i.exponent != nil
	}
	return false
}

func (i *Item) RequiresInnerBrackets() bool { return i.sign == Minus && i.exponent != nil }

func (i *Item) toJSON() map[string]interface{} {
	m := map[string]interface{}{"type": "item", "sign": i.sign.String()}
	if i.isNumeric() {
		m["value"] = i.value.String()
	} else {
		m["value"] = i.literal
	}
	if i.exponent != nil {
		m["exponent"] = i.exponent.toJSON()
	}
	return m
}

// numericItem returns e as a numeric Item with a neutral exponent.
func numericItem(e Expr) (*Item, bool) {
	it, ok := e.(*Item)
	if !ok || !it.isNumeric() || it.exponent != nil {
		return nil, false
	}
	return it, true
}

func isNumericItem(e Expr) bool { _, ok := numericItem(e); return ok }

func isOne(e Expr) bool {
	it, ok := numericItem(e)
	return ok && it.sign == Plus && it.value.Equal(decimal.NewFromInt(1))
}

func isMinusOne(e Expr) bool {
	it, ok := numericItem(e)
	return ok && it.sign == Minus && it.value.Equal(decimal.NewFromInt(1))
}

// integerExponent reads an exponent as an int64; nil reads as 1.
func integerExponent(e Expr) (int64, bool) {
	if e == nil {
		return 1, true
	}
	it, ok := numericItem(e)
	if !ok || !it.value.IsInteger() {
		return 0, false
	}
	return it.signed().IntPart(), true
}
