package linkage

import (
	"iter"
	"slices"

	"gonum.org/v1/gonum/floats"
)

// Trajectory is a sampled coupler curve, ordered by increasing driver angle.
// Angles at which the linkage could not be assembled are absent.
type Trajectory []TrajectorySample

// Clone returns a copy of t that shares no memory with it.
func (t Trajectory) Clone() Trajectory {
	if t == nil {
		return nil
	}
	return slices.Clone(t)
}

// Column returns one value per sample.
func (t Trajectory) Column(fn func(TrajectorySample) float64) []float64 {
	out := make([]float64, len(t))
	for i, s := range t {
		out[i] = fn(s)
	}
	return out
}

func (t Trajectory) Theta2s() []float64 {
	return t.Column(func(s TrajectorySample) float64 { return s.Theta2 })
}

func (t Trajectory) Theta3s() []float64 {
	return t.Column(func(s TrajectorySample) float64 { return s.Theta3 })
}

func (t Trajectory) Theta4s() []float64 {
	return t.Column(func(s TrajectorySample) float64 { return s.Theta4 })
}

// Points returns the coupler points in order.
func (t Trajectory) Points() iter.Seq[Point] {
	return func(yield func(Point) bool) {
		for _, s := range t {
			if !yield(s.C) {
				return
			}
		}
	}
}

// Runs splits t into maximal runs of consecutive samples, given the step it was
// sampled at. A new run starts wherever the driver angle advances by more than
// one step, that is, wherever the linkage broke in between. Runs share memory
// with t.
func (t Trajectory) Runs(step float64) iter.Seq[Trajectory] {
	return func(yield func(Trajectory) bool) {
		if len(t) == 0 {
			return
		}
		// Tolerate the error of computing angles as i·step.
		limit := step * (1 + 1e-9)
		start := 0
		for i := 1; i < len(t); i++ {
			if t[i].Theta2-t[i-1].Theta2 > limit {
				if !yield(t[start:i:i]) {
					return
				}
				start = i
			}
		}
		yield(t[start:])
	}
}

// Path returns the coupler curve as a polyline with one subpath per run.
func (t Trajectory) Path(step float64) Path {
	var p Path
	for run := range t.Runs(step) {
		p.MoveTo(run[0].C)
		for _, s := range run[1:] {
			p.LineTo(s.C)
		}
	}
	return p
}

// CouplerLength returns the distance travelled by the coupler point, not
// counting the jumps across gaps.
func (t Trajectory) CouplerLength(step float64) float64 {
	return t.Path(step).Length()
}

// BoundingBox returns the extents of the coupler curve. ok is false for an
// empty trajectory.
func (t Trajectory) BoundingBox() (r Rect, ok bool) {
	return BoundingBoxOf(t.Points())
}

// Theta4Range returns the smallest and largest output angle, in degrees. For a
// rocker this is its swing. ok is false for an empty trajectory.
func (t Trajectory) Theta4Range() (lo, hi float64, ok bool) {
	if len(t) == 0 {
		return 0, 0, false
	}
	th4 := t.Theta4s()
	return floats.Min(th4), floats.Max(th4), true
}
