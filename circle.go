package linkage

import (
	"iter"
	"math"
	"slices"
)

// Circle is the locus of a joint that is a fixed distance away from another
// joint. Joint B of the linkage is found by intersecting two of them.
type Circle struct {
	Center Point
	Radius float64
}

// Intersect returns the intersection points of c and o.
//
// The result holds two points and the number of distinct solutions. The first
// point lies on the left of the directed line from c.Center to o.Center (the
// cross product of the center line and the point is non-negative), the second
// on its right. When the circles touch, n is 1 and both points are equal. When
// they are disjoint, one contains the other or they are concentric, n is 0.
//
// Radii are treated as their absolute values.
func (c Circle) Intersect(o Circle) (pts [2]Point, n int) {
	r0 := math.Abs(c.Radius)
	r1 := math.Abs(o.Radius)
	delta := o.Center.Sub(c.Center)
	d := delta.Hypot()
	if !(d > 0) || d > r0+r1 || d < math.Abs(r0-r1) {
		return pts, 0
	}

	// Signed distance from c.Center to the foot of the radical line, measured
	// along the center line.
	a := (r0*r0 - r1*r1 + d*d) / (2 * d)
	// Round-off at tangency can push r0² − a² slightly negative.
	h := math.Sqrt(max(0, r0*r0-a*a))

	u := delta.Div(d)
	foot := c.Center.Translate(u.Mul(a))
	off := u.Perp().Mul(h)
	pts[0] = foot.Translate(off)
	pts[1] = foot.Translate(off.Negate())
	if h == 0 {
		return pts, 1
	}
	return pts, 2
}

func (c Circle) Path(tolerance float64) Path { return slices.Collect(c.PathElements(tolerance)) }

// PathElements approximates the circle with cubic Béziers, which is how pivots
// are drawn.
func (c Circle) PathElements(tolerance float64) iter.Seq[PathElement] {
	return func(yield func(PathElement) bool) {
		scaledError := math.Abs(c.Radius) / tolerance
		var n int
		var armLength float64
		if scaledError < 1.0/1.9608e-4 {
			// Solution from http://spencermortensen.com/articles/bezier-circle/
			n = 4
			armLength = 0.551915024494
		} else {
			// This is empirically determined to fall within error tolerance.
			n = int(math.Ceil(math.Pow(1.1163*scaledError, 1.0/6.0)))
			armLength = (4.0 / 3.0) * math.Tan(math.Pi/2/(float64(n)))
		}

		x, y := c.Center.Splat()
		r := c.Radius
		if !yield(MoveTo(Pt(x+r, y))) {
			return
		}
		deltaTh := 2.0 * math.Pi / float64(n)
		for ix := 1; ix <= n; ix++ {
			a := armLength
			th1 := deltaTh * float64(ix)
			th0 := th1 - deltaTh
			s0, c0 := math.Sincos(th0)
			var s1, c1 float64
			if ix == n {
				s1 = 0.0
				c1 = 1.0
			} else {
				s1, c1 = math.Sincos(th1)
			}
			if !yield(CubicTo(
				Pt(x+r*(c0-a*s0), y+r*(s0+a*c0)),
				Pt(x+r*(c1+a*s1), y+r*(s1-a*c1)),
				Pt(x+r*c1, y+r*s1),
			)) {
				return
			}
		}
		yield(ClosePath())
	}
}
