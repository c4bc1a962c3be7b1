package stepwise

import (
	"math"

	"github.com/shopspring/decimal"
)

// ============================================================
// Geometry-adjacent helpers
// ============================================================

const geometryPrecision = 10

var fullTurn = decimal.NewFromInt(360)

// Point is a plane point with base-10 coordinates.
type Point struct {
	X, Y decimal.Decimal
}

// Barycenter returns the weighted barycenter of points. A nil weights slice
// gives every point the weight 1.
func Barycenter(points []Point, weights []decimal.Decimal) (Point, error) {
	if len(points) == 0 {
		return Point{}, wrongArgument("barycenter of no point")
	}
	if weights == nil {
		weights = make([]decimal.Decimal, len(points))
		for i := range weights {
			weights[i] = decimal.NewFromInt(1)
		}
	}
	if len(weights) != len(points) {
		return Point{}, wrongArgument("%d weights for %d points", len(weights), len(points))
	}
	total := decimal.Zero
	x, y := decimal.Zero, decimal.Zero
	for i, p := range points {
		total = total.Add(weights[i])
		x = x.Add(p.X.Mul(weights[i]))
		y = y.Add(p.Y.Mul(weights[i]))
	}
	if total.IsZero() {
		return Point{}, outOfRange("barycenter weights sum to zero")
	}
	return Point{
		X: x.DivRound(total, geometryPrecision),
		Y: y.DivRound(total, geometryPrecision),
	}, nil
}

// NormalizeAngle maps an angle in degrees onto [0, 360).
func NormalizeAngle(deg decimal.Decimal) decimal.Decimal {
	r := deg.Mod(fullTurn)
	if r.IsNegative() {
		r = r.Add(fullTurn)
	}
	return r
}

// PolarPoint returns the point at radius from center, at angleDeg measured
// counterclockwise from the x axis.
func PolarPoint(center Point, radius, angleDeg decimal.Decimal) Point {
	rad := NormalizeAngle(angleDeg).InexactFloat64() * math.Pi / 180
	r := radius.InexactFloat64()
	return Point{
		X: center.X.Add(decimal.NewFromFloat(r * math.Cos(rad)).Round(geometryPrecision)),
		Y: center.Y.Add(decimal.NewFromFloat(r * math.Sin(rad)).Round(geometryPrecision)),
	}
}
