package linkage

import (
	"fmt"
	"math"

	"go.uber.org/multierr"
)

// Config describes one four-bar linkage with a coupler point, and the driver
// angle it is posed at. Lengths share one arbitrary unit; angles are in
// degrees.
//
// The first fixed pivot is at the origin and the second at (R1, 0). The crank
// (R2) turns about the first pivot, the rocker (R4) about the second, and the
// coupler (R3) joins their moving ends A and B. The coupler point C sits R6
// away from A, at Beta degrees from the direction of A→B.
//
// Solve and Sample expect R1 through R4 to be strictly positive and every
// field to be finite; see [Config.Validate].
type Config struct {
	// Ground link, the distance between the fixed pivots.
	R1 float64 `json:"r1" jsonschema:"description=ground link length (distance between the fixed pivots),minimum=0"`
	// Crank, from the first fixed pivot to joint A.
	R2 float64 `json:"r2" jsonschema:"description=crank length (first fixed pivot to joint A),minimum=0"`
	// Coupler, from joint A to joint B.
	R3 float64 `json:"r3" jsonschema:"description=coupler length (joint A to joint B),minimum=0"`
	// Rocker, from the second fixed pivot to joint B.
	R4 float64 `json:"r4" jsonschema:"description=output link length (second fixed pivot to joint B),minimum=0"`
	// Distance from joint A to the coupler point.
	R6 float64 `json:"r6" jsonschema:"description=distance from joint A to the coupler point C,minimum=0"`
	// Angle of A→C relative to A→B.
	Beta float64 `json:"beta" jsonschema:"description=angle of A→C relative to A→B in degrees"`
	// Driver angle, measured from the ground line.
	Theta2 float64 `json:"theta2" jsonschema:"description=driver (crank) angle in degrees"`
}

// DefaultConfig is a double-crank linkage whose coupler point sits at (2, 1)
// in the coupler's own frame.
var DefaultConfig = Config{
	R1:     1,
	R2:     2,
	R3:     3.5,
	R4:     4,
	R6:     math.Sqrt(5),
	Beta:   Degrees(math.Atan(0.5)),
	Theta2: 0,
}

// WithTheta2 returns a copy of cfg posed at the driver angle deg.
func (cfg Config) WithTheta2(deg float64) Config {
	cfg.Theta2 = deg
	return cfg
}

// Geometry returns cfg with the driver angle zeroed. Two configs with equal
// geometry trace the same coupler curve.
func (cfg Config) Geometry() Config {
	cfg.Theta2 = 0
	return cfg
}

// Lengths returns the four link lengths in the order ground, crank, coupler,
// rocker.
func (cfg Config) Lengths() [4]float64 {
	return [4]float64{cfg.R1, cfg.R2, cfg.R3, cfg.R4}
}

// Validate reports every field that violates the preconditions of the solver:
// link lengths must be positive, the coupler offset non-negative and all
// fields finite. The returned error combines one error per violation.
func (cfg Config) Validate() error {
	var err error
	positive := []struct {
		name string
		v    float64
	}{{"r1", cfg.R1}, {"r2", cfg.R2}, {"r3", cfg.R3}, {"r4", cfg.R4}}
	for _, f := range positive {
		if !isFinite(f.v) {
			err = multierr.Append(err, fmt.Errorf("%s must be finite, got %g", f.name, f.v))
		} else if f.v <= 0 {
			err = multierr.Append(err, fmt.Errorf("%s must be positive, got %g", f.name, f.v))
		}
	}
	if !isFinite(cfg.R6) {
		err = multierr.Append(err, fmt.Errorf("r6 must be finite, got %g", cfg.R6))
	} else if cfg.R6 < 0 {
		err = multierr.Append(err, fmt.Errorf("r6 must not be negative, got %g", cfg.R6))
	}
	if !isFinite(cfg.Beta) {
		err = multierr.Append(err, fmt.Errorf("beta must be finite, got %g", cfg.Beta))
	}
	if !isFinite(cfg.Theta2) {
		err = multierr.Append(err, fmt.Errorf("theta2 must be finite, got %g", cfg.Theta2))
	}
	return err
}

func isFinite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}
