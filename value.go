package stepwise

import (
	"math/big"

	"github.com/shopspring/decimal"
)

// ============================================================
// Value: exact rational result of an evaluation
// ============================================================

// Value is an exact rational number. The zero Value is 0.
type Value struct{ r *big.Rat }

func NewValue(n int64) Value                   { return Value{r: new(big.Rat).SetInt64(n)} }
func ValueFrac(p, q int64) Value               { return Value{r: new(big.Rat).SetFrac64(p, q)} }
func ValueOf(r *big.Rat) Value                 { return Value{r: new(big.Rat).Set(r)} }
func ValueFromDecimal(d decimal.Decimal) Value { return Value{r: d.Rat()} }

func (v Value) rat() *big.Rat {
	if v.r == nil {
		return new(big.Rat)
	}
	return v.r
}

func (v Value) Rat() *big.Rat      { return new(big.Rat).Set(v.rat()) }
func (v Value) Sign() int          { return v.rat().Sign() }
func (v Value) IsZero() bool       { return v.rat().Sign() == 0 }
func (v Value) IsOne() bool        { return v.rat().Cmp(big.NewRat(1, 1)) == 0 }
func (v Value) IsInteger() bool    { return v.rat().IsInt() }
func (v Value) Cmp(o Value) int    { return v.rat().Cmp(o.rat()) }
func (v Value) Equal(o Value) bool { return v.Cmp(o) == 0 }
func (v Value) Add(o Value) Value  { return Value{r: new(big.Rat).Add(v.rat(), o.rat())} }
func (v Value) Sub(o Value) Value  { return Value{r: new(big.Rat).Sub(v.rat(), o.rat())} }
func (v Value) Mul(o Value) Value  { return Value{r: new(big.Rat).Mul(v.rat(), o.rat())} }
func (v Value) Neg() Value         { return Value{r: new(big.Rat).Neg(v.rat())} }
func (v Value) Float64() float64   { f, _ := v.rat().Float64(); return f }
func (v Value) Num() *big.Int      { return new(big.Int).Set(v.rat().Num()) }
func (v Value) Denom() *big.Int    { return new(big.Int).Set(v.rat().Denom()) }

// Quo divides v by o. It fails with ErrOutOfRangeArgument when o is zero.
func (v Value) Quo(o Value) (Value, error) {
	if o.IsZero() {
		return Value{}, outOfRange("division by zero")
	}
	return Value{r: new(big.Rat).Quo(v.rat(), o.rat())}, nil
}

// MaxExponent bounds the integer powers that are carried out. Larger
// exponents stay symbolic and fail to evaluate with ErrOutOfRangeArgument.
const MaxExponent = 1000

// Pow raises v to an integer power.
func (v Value) Pow(n int64) (Value, error) {
	if n > MaxExponent || n < -MaxExponent {
		return Value{}, outOfRange("exponent %d beyond %d", n, MaxExponent)
	}
	if n < 0 {
		if v.IsZero() {
			return Value{}, outOfRange("zero raised to a negative power")
		}
		inv := new(big.Rat).Inv(v.rat())
		return Value{r: inv}.Pow(-n)
	}
	e := big.NewInt(n)
	num := new(big.Int).Exp(v.rat().Num(), e, nil)
	den := new(big.Int).Exp(v.rat().Denom(), e, nil)
	return Value{r: new(big.Rat).SetFrac(num, den)}, nil
}

// Decimal returns the exact base-10 form of v. ok is false when the
// expansion of v does not terminate.
func (v Value) Decimal() (d decimal.Decimal, ok bool) {
	den := new(big.Int).Set(v.rat().Denom())
	places := 0
	for _, p := range []int64{2, 5} {
		bp := big.NewInt(p)
		count := 0
		m := new(big.Int)
		for {
			q, r := new(big.Int).QuoRem(den, bp, m)
			if r.Sign() != 0 {
				break
			}
			den = q
			count++
		}
		if count > places {
			places = count
		}
	}
	if den.Cmp(big.NewInt(1)) != 0 {
		return decimal.Decimal{}, false
	}
	return Round(v, int32(places)), true
}

// String renders v as an integer, a terminating decimal or p/q.
func (v Value) String() string {
	if v.IsInteger() {
		return v.rat().Num().String()
	}
	if d, ok := v.Decimal(); ok {
		return d.String()
	}
	return v.rat().RatString()
}
