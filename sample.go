package linkage

import (
	"iter"
	"math"
	"slices"
)

// DefaultStep is the driver angle increment, in degrees, used to trace a
// coupler curve: 181 evaluations from 0° to 360°.
const DefaultStep = 2.0

// TrajectorySample is the part of a valid pose that plots and tables need.
type TrajectorySample struct {
	Theta2 float64 `json:"theta2"`
	Theta3 float64 `json:"theta3"`
	Theta4 float64 `json:"theta4"`
	// Coupler point.
	C Point `json:"c"`
}

// SampleOf reduces a pose to a sample. The pose should be valid.
func SampleOf(p Pose) TrajectorySample {
	return TrajectorySample{
		Theta2: p.Theta2,
		Theta3: p.Theta3,
		Theta4: p.Theta4,
		C:      p.C,
	}
}

// DriverAngles yields the driver angles i·step for i = 0, 1, … up to and
// including 360°. It yields nothing if step is not a positive, finite number.
func DriverAngles(step float64) iter.Seq[float64] {
	return func(yield func(float64) bool) {
		if !(step > 0) || math.IsInf(step, 0) {
			return
		}
		// The epsilon absorbs representation error, so that steps that divide
		// 360 reach it exactly once.
		n := int(math.Floor(360/step + 1e-9))
		for i := 0; i <= n; i++ {
			// Multiply rather than accumulate so that error doesn't build up.
			if !yield(float64(i) * step) {
				return
			}
		}
	}
}

// Samples solves cfg at every angle of [DriverAngles] in the given mode,
// overriding cfg.Theta2, and yields the valid poses in increasing driver
// angle order. Angles at which the linkage cannot be assembled are skipped,
// leaving gaps in the sequence.
func Samples(cfg Config, mode AssemblyMode, step float64) iter.Seq[TrajectorySample] {
	return func(yield func(TrajectorySample) bool) {
		for th := range DriverAngles(step) {
			p := Solve(cfg.WithTheta2(th), mode)
			if !p.Valid {
				continue
			}
			if !yield(SampleOf(p)) {
				return
			}
		}
	}
}

// Sample collects [Samples] into a trajectory. Each call computes the
// trajectory from scratch; see [TrajectoryCache] for memoization.
func Sample(cfg Config, mode AssemblyMode, step float64) Trajectory {
	return slices.Collect(Samples(cfg, mode, step))
}

// Trace samples cfg at [DefaultStep].
func Trace(cfg Config, mode AssemblyMode) Trajectory {
	return Sample(cfg, mode, DefaultStep)
}
