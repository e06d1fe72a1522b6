package systems

import (
	"math"

	"gonum.org/v1/gonum/spatial/r2"
)

// Clamp functions for common value ranges

// clamp clamps v between minVal and maxVal.
func clamp(v, minVal, maxVal float64) float64 {
	if v < minVal {
		return minVal
	}
	if v > maxVal {
		return maxVal
	}
	return v
}

// clamp01 clamps v to the [0, 1] range.
func clamp01(v float64) float64 {
	return clamp(v, 0, 1)
}

// Vector functions

// ClosestPointOnSegment projects p onto segment ab, clamping the projection to the segment.
// It returns the closest point and the clamped parameter t in [0,1].
// ok is false for a zero-length segment.
func ClosestPointOnSegment(p, a, b r2.Vec) (closest r2.Vec, t float64, ok bool) {
	ab := r2.Sub(b, a)
	lenSq := r2.Norm2(ab)
	if lenSq == 0 {
		return a, 0, false
	}
	t = clamp01(r2.Dot(r2.Sub(p, a), ab) / lenSq)
	return r2.Add(a, r2.Scale(t, ab)), t, true
}

// Normalize returns the unit vector of v, or fallback when v has zero length.
func Normalize(v, fallback r2.Vec) r2.Vec {
	n := r2.Norm(v)
	if n == 0 {
		return fallback
	}
	return r2.Scale(1/n, v)
}

// Reflect reflects v about the unit normal n.
func Reflect(v, n r2.Vec) r2.Vec {
	return r2.Sub(v, r2.Scale(2*r2.Dot(v, n), n))
}

// AngleBetween returns the unsigned angle between a and b in degrees.
// ok is false when either vector has zero length.
func AngleBetween(a, b r2.Vec) (deg float64, ok bool) {
	ma, mb := r2.Norm(a), r2.Norm(b)
	if ma == 0 || mb == 0 {
		return 0, false
	}
	cos := clamp(r2.Dot(a, b)/(ma*mb), -1, 1)
	return math.Acos(cos) * 180 / math.Pi, true
}

// Distance functions

// distance returns the Euclidean distance between two points.
func distance(a, b r2.Vec) float64 {
	return r2.Norm(r2.Sub(a, b))
}

// MassFactor approximates inverse mass from radius.
// effect blends between no mass dependence (0) and full 1/mass scaling (1).
func MassFactor(radius, baseRadius, effect float64) float64 {
	ratio := radius / baseRadius
	full := 1 / ratio
	return 1 + (full-1)*effect
}
