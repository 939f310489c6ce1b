package astro

import (
	"math"

	"github.com/soniakeys/unit"
)

// NormalizeWithBound wraps value into [0, bound) for a positive bound, or
// (bound, 0] for a negative one.
func NormalizeWithBound(value, bound float64) float64 {
	n := value - bound*math.Floor(value/bound)
	// Tiny negative inputs can round up to exactly the bound.
	if n == bound {
		return 0
	}
	return n
}

// UnwindAngle wraps an angle in degrees into [0, 360).
func UnwindAngle(deg float64) float64 {
	return NormalizeWithBound(deg, 360)
}

// ClosestAngle returns the angle equivalent to deg in [-180, 180].
// Values already in range are returned unchanged.
func ClosestAngle(deg float64) float64 {
	if deg >= -180 && deg <= 180 {
		return deg
	}
	return deg - 360*math.Round(deg/360)
}

func sinDeg(deg float64) float64 { return unit.AngleFromDeg(deg).Sin() }
func cosDeg(deg float64) float64 { return unit.AngleFromDeg(deg).Cos() }
func tanDeg(deg float64) float64 { return unit.AngleFromDeg(deg).Tan() }

func asinDeg(x float64) float64     { return unit.Angle(math.Asin(x)).Deg() }
func acosDeg(x float64) float64     { return unit.Angle(math.Acos(x)).Deg() }
func atanDeg(x float64) float64     { return unit.Angle(math.Atan(x)).Deg() }
func atan2Deg(y, x float64) float64 { return unit.Angle(math.Atan2(y, x)).Deg() }
