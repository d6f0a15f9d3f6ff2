package linkage

import "math"

// Solve computes the pose of cfg in the given assembly mode.
//
// Solve is total: it never panics and never fails. When joint B cannot be
// placed, the returned pose has Valid set to false and NaN coordinates. Driver
// angles outside [0, 360) are accepted as is.
//
// Joint A follows from the crank. Joint B is the intersection of the circle of
// radius R3 about A and the circle of radius R4 about the second pivot, picked
// by mode (see [AssemblyMode]). The coupler point C is rigidly attached to the
// coupler, R6 away from A at Beta degrees from A→B.
//
// An invalid mode is treated as [Open]. Link lengths that are not positive
// give unspecified, but still NaN-or-finite, results; see [Config.Validate].
func Solve(cfg Config, mode AssemblyMode) Pose {
	p, _ := solve(cfg, mode)
	return p
}

// Assemble is like [Solve] but reports a linkage that cannot be assembled as
// an [*AssemblyError], which wraps [ErrNotAssemblable].
func Assemble(cfg Config, mode AssemblyMode) (Pose, error) {
	p, err := solve(cfg, mode)
	if err != nil {
		return p, err
	}
	return p, nil
}

func solve(cfg Config, mode AssemblyMode) (Pose, *AssemblyError) {
	if !mode.Valid() {
		mode = Open
	}
	p1 := Pt(0, 0)
	p2 := Pt(cfg.R1, 0)

	a := p1.Polar(cfg.R2, Radians(cfg.Theta2))
	d := p2.Sub(a).Hypot()
	lo, hi := math.Abs(cfg.R3-cfg.R4), cfg.R3+cfg.R4

	var reason AssemblyReason
	switch {
	case d == 0:
		reason = Coincident
	case !(d >= lo && d <= hi):
		reason = Unreachable
	}
	if reason != 0 {
		err := &AssemblyError{Theta2: cfg.Theta2, Reason: reason, Distance: d, Min: lo, Max: hi}
		return invalidPose(cfg.R1, cfg.Theta2, mode, err), err
	}

	pts, n := Circle{a, cfg.R3}.Intersect(Circle{p2, cfg.R4})
	if n == 0 {
		// Intersect rejected what the range test accepted; only reachable
		// with non-positive radii.
		err := &AssemblyError{Theta2: cfg.Theta2, Reason: Unreachable, Distance: d, Min: lo, Max: hi}
		return invalidPose(cfg.R1, cfg.Theta2, mode, err), err
	}
	b := pts[0]
	if mode == Crossed {
		b = pts[1]
	}

	coupler := b.Sub(a)
	th3 := coupler.Angle()
	c := a.Polar(cfg.R6, th3+Radians(cfg.Beta))

	return Pose{
		P1:     p1,
		P2:     p2,
		A:      a,
		B:      b,
		C:      c,
		Theta2: cfg.Theta2,
		Theta3: atan2Degrees(coupler),
		Theta4: atan2Degrees(b.Sub(p2)),
		Valid:  true,
		Mode:   mode,
	}, nil
}
