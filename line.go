package linkage

import "math"

// Line is a straight segment between two joints, which is how every rigid
// link of the mechanism is represented when it is drawn or measured.
type Line struct {
	// The segment's start point.
	P0 Point
	// The segment's end point.
	P1 Point
}

func (l Line) IsNaN() bool {
	return l.P0.IsNaN() || l.P1.IsNaN()
}

// AngleBetween returns the unsigned angle between the directions of l and o, in
// radians, in the range [0, π]. It is NaN if either line has zero length.
func (l Line) AngleBetween(o Line) float64 {
	u := l.P1.Sub(l.P0)
	v := o.P1.Sub(o.P0)
	if u.Hypot2() == 0 || v.Hypot2() == 0 {
		return math.NaN()
	}
	return math.Abs(math.Atan2(u.Cross(v), u.Dot(v)))
}
