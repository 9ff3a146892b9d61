package gamemath

import "math"

// Tau is a full turn in radians.
const Tau = 2 * math.Pi

// Angle returns the angle from a to b.
func Angle(a, b Point) float64 {
	return math.Atan2(b.Y-a.Y, b.X-a.X)
}

// NormalizeAngle wraps an angle into [0, Tau).
func NormalizeAngle(a float64) float64 {
	a = math.Mod(a, Tau)
	if a < 0 {
		a += Tau
	}
	return a
}

// AngleCwDiff returns how much a1 must grow to reach a2, in [0, Tau).
// With screen coordinates, growing angles turn clockwise.
func AngleCwDiff(a1, a2 float64) float64 {
	a1 = NormalizeAngle(a1)
	a2 = NormalizeAngle(a2)
	if a1 > a2 {
		a1 -= Tau
	}
	return a2 - a1
}
