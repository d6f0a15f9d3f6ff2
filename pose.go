package linkage

import (
	"errors"
	"fmt"
	"iter"
	"math"
)

// Pose is the position of every joint of a linkage at one driver angle.
//
// All points share the linkage frame: P1 is always (0, 0) and P2 always
// (R1, 0), valid or not. When the linkage cannot be assembled, Valid is false
// and A, B, C, Theta3 and Theta4 are NaN, never zero, so that a broken pose
// cannot be mistaken for a real one. Use [Pose.Err] or [Assemble] to get the
// reason.
type Pose struct {
	// Fixed pivots.
	P1, P2 Point
	// Crank/coupler joint, coupler/rocker joint and coupler point.
	A, B, C Point
	// Driver angle as given, in degrees.
	Theta2 float64
	// Direction of A→B and of P2→B, in degrees, in (−180, 180].
	Theta3, Theta4 float64
	Valid          bool
	Mode           AssemblyMode

	err *AssemblyError
}

func invalidPose(r1, theta2 float64, mode AssemblyMode, err *AssemblyError) Pose {
	return Pose{
		P1:     Pt(0, 0),
		P2:     Pt(r1, 0),
		A:      nanPoint(),
		B:      nanPoint(),
		C:      nanPoint(),
		Theta2: theta2,
		Theta3: math.NaN(),
		Theta4: math.NaN(),
		Valid:  false,
		Mode:   mode,
		err:    err,
	}
}

// Err returns nil for a valid pose and an [*AssemblyError] otherwise.
func (p Pose) Err() error {
	if p.Valid {
		return nil
	}
	if p.err == nil {
		return &AssemblyError{Theta2: p.Theta2, Reason: Unreachable, Distance: math.NaN()}
	}
	return p.err
}

// TransmissionAngle returns the angle at joint B between the coupler and the
// rocker, in degrees, in [0, 180]. Values far from 90° mean the coupler pushes
// the rocker poorly. It is NaN for invalid poses.
func (p Pose) TransmissionAngle() float64 {
	if !p.Valid {
		return math.NaN()
	}
	return Degrees(Line{p.B, p.A}.AngleBetween(Line{p.B, p.P2}))
}

// Links holds the rigid members of a pose as segments.
type Links struct {
	Ground  Line // P1 → P2
	Crank   Line // P1 → A
	Coupler Line // A → B
	Rocker  Line // P2 → B
	// The coupler point's arms, A → C and B → C.
	ArmA, ArmB Line
}

// Links returns the members of the pose. For invalid poses every member but
// the ground has NaN end points.
func (p Pose) Links() Links {
	return Links{
		Ground:  Line{p.P1, p.P2},
		Crank:   Line{p.P1, p.A},
		Coupler: Line{p.A, p.B},
		Rocker:  Line{p.P2, p.B},
		ArmA:    Line{p.A, p.C},
		ArmB:    Line{p.B, p.C},
	}
}

// Points returns the joints of the pose in the order P1, P2, A, B, C.
func (p Pose) Points() iter.Seq[Point] {
	return func(yield func(Point) bool) {
		_ = yield(p.P1) &&
			yield(p.P2) &&
			yield(p.A) &&
			yield(p.B) &&
			yield(p.C)
	}
}

// BoundingBox returns the extents of the pose's joints. Invalid poses only
// cover the fixed pivots.
func (p Pose) BoundingBox() Rect {
	r, _ := BoundingBoxOf(p.Points())
	return r
}

// ErrNotAssemblable is wrapped by every [AssemblyError].
var ErrNotAssemblable = errors.New("linkage cannot be assembled")

// AssemblyReason says why joint B does not exist.
type AssemblyReason int

const (
	// The coupler and rocker circles do not meet: the distance between
	// joint A and the second pivot is outside [|R3−R4|, R3+R4].
	Unreachable AssemblyReason = iota + 1
	// Joint A coincides with the second pivot, so the coupler and rocker
	// circles are concentric.
	Coincident
)

func (r AssemblyReason) String() string {
	switch r {
	case Unreachable:
		return "unreachable"
	case Coincident:
		return "coincident"
	default:
		return fmt.Sprintf("AssemblyReason(%d)", int(r))
	}
}

// AssemblyError describes a driver angle at which the linkage breaks.
type AssemblyError struct {
	Theta2 float64
	Reason AssemblyReason
	// Distance from joint A to the second pivot, and the range it must fall
	// into.
	Distance float64
	Min, Max float64
}

func (e *AssemblyError) Error() string {
	switch e.Reason {
	case Coincident:
		return fmt.Sprintf("linkage cannot be assembled at θ2=%g°: joint A coincides with the second pivot", e.Theta2)
	default:
		return fmt.Sprintf("linkage cannot be assembled at θ2=%g°: distance %g from joint A to the second pivot is outside [%g, %g]",
			e.Theta2, e.Distance, e.Min, e.Max)
	}
}

func (e *AssemblyError) Unwrap() error { return ErrNotAssemblable }
