package stepwise

import (
	"strings"

	"github.com/shopspring/decimal"
)

// ============================================================
// Numeric kernel
// ============================================================

func gcdInt(a, b int64) int64 {
	for b != 0 {
		a, b = b, a%b
	}
	return a
}

func absInt(a int64) int64 {
	if a < 0 {
		return -a
	}
	return a
}

// GCD returns the greatest common divisor of a and b.
func GCD(a, b int64) (int64, error) {
	if a == 0 || b == 0 {
		return 0, outOfRange("gcd of %d and %d: zero operand", a, b)
	}
	return gcdInt(absInt(a), absInt(b)), nil
}

// LCM returns the least common multiple of a and b.
func LCM(a, b int64) (int64, error) {
	g, err := GCD(a, b)
	if err != nil {
		return 0, err
	}
	return absInt(a) / g * absInt(b), nil
}

// PupilGCD returns the common divisor a pupil would plausibly find by
// inspection. Below 100 the curated divisor table decides; larger operands
// sharing a power of ten have it peeled off first; anything the table cannot
// find falls back to Euclid. The result is > 1 whenever GCD is > 1.
func PupilGCD(a, b int64) (int64, error) {
	if a == 0 || b == 0 {
		return 0, outOfRange("pupil gcd of %d and %d: zero operand", a, b)
	}
	a, b = absInt(a), absInt(b)
	if a <= 100 && b <= 100 {
		if g := commonTableDivisor(a, b); g > 1 {
			return g, nil
		}
		return gcdInt(a, b), nil
	}
	if p := commonPowerOfTen(a, b); p > 1 {
		inner, err := PupilGCD(a/p, b/p)
		if err != nil {
			return 0, err
		}
		return p * inner, nil
	}
	return gcdInt(a, b), nil
}

func commonTableDivisor(a, b int64) int64 {
	best := int64(1)
	for _, da := range pupilDivisors[a] {
		for _, db := range pupilDivisors[b] {
			if da == db && da > best {
				best = da
			}
		}
	}
	return best
}

func commonPowerOfTen(a, b int64) int64 {
	p := int64(1)
	for a%(p*10) == 0 && b%(p*10) == 0 {
		p *= 10
	}
	return p
}

// Round rounds v half-up (ties away from zero) to precision fractional digits.
func Round(v Value, precision int32) decimal.Decimal {
	num := decimal.NewFromBigInt(v.rat().Num(), 0)
	den := decimal.NewFromBigInt(v.rat().Denom(), 0)
	return num.DivRound(den, precision)
}

// RoundDecimal rounds d half-up to precision fractional digits.
func RoundDecimal(d decimal.Decimal, precision int32) decimal.Decimal {
	return d.Round(precision)
}

// DigitsNumber counts the significant fractional digits of d.
func DigitsNumber(d decimal.Decimal) int {
	s := d.String()
	i := strings.IndexByte(s, '.')
	if i < 0 {
		return 0
	}
	return len(strings.TrimRight(s[i+1:], "0"))
}

// IsTerminating reports whether v is exactly representable with precision
// fractional digits.
func IsTerminating(v Value, precision int32) bool {
	return ValueFromDecimal(Round(v, precision)).Equal(v)
}

// SignOfProduct returns the sign of the product of factors: Minus iff the
// count of negative contributors is odd.
func SignOfProduct(factors []Expr) Sign {
	n := 0
	for _, f := range factors {
		n += negativeCount(f)
	}
	if n%2 == 1 {
		return Minus
	}
	return Plus
}

func negativeCount(e Expr) int {
	switch v := e.(type) {
	case *Item:
		if v.sign == Plus {
			return 0
		}
		if n, ok := integerExponent(v.exponent); ok && n%2 == 0 {
			return 0
		}
		return 1
	case *Product:
		n := 0
		for _, f := range v.factors {
			n += negativeCount(f)
		}
		if k, ok := integerExponent(v.exponent); ok && k%2 == 0 {
			return 0
		}
		return n
	case *Fraction:
		return negativeCount(v.numerator) + negativeCount(v.denominator)
	case *Quotient:
		return negativeCount(v.numerator) + negativeCount(v.denominator)
	case *Monomial:
		return negativeCount(v.coefficient)
	default:
		if val, err := e.Evaluate(nil); err == nil && val.Sign() < 0 {
			return 1
		}
		return 0
	}
}
