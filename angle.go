package linkage

import "math"

// Angles cross the package boundary in degrees; all trigonometry happens in
// radians.

// Radians converts degrees to radians.
func Radians(deg float64) float64 {
	return deg * math.Pi / 180
}

// Degrees converts radians to degrees.
func Degrees(rad float64) float64 {
	return rad * 180 / math.Pi
}

// NormalizeDegrees maps deg into the half-open range (−180, 180].
// NaN and infinities produce NaN.
func NormalizeDegrees(deg float64) float64 {
	if math.IsNaN(deg) || math.IsInf(deg, 0) {
		return math.NaN()
	}
	deg = math.Mod(deg, 360)
	switch {
	case deg <= -180:
		deg += 360
	case deg > 180:
		deg -= 360
	}
	return deg
}

// atan2Degrees returns the direction of v in degrees, in (−180, 180].
func atan2Degrees(v Vec2) float64 {
	return NormalizeDegrees(Degrees(v.Angle()))
}
