package linkage

import (
	"fmt"
	"slices"
)

// GrashofClass is the mobility class of a four-bar, determined by its link
// lengths alone.
type GrashofClass int

const (
	// The ground is the shortest link: crank and rocker both turn fully.
	DoubleCrank GrashofClass = iota + 1
	// The crank is the shortest link: it turns fully, the rocker oscillates.
	CrankRocker
	// The rocker is the shortest link: it turns fully, the crank oscillates.
	RockerCrank
	// The coupler is the shortest link: it turns fully relative to the
	// ground, crank and rocker both oscillate.
	GrashofDoubleRocker
	// s + l = p + q. The linkage can fold flat, where both assembly modes
	// meet.
	ChangePoint
	// s + l > p + q. No link turns fully relative to another.
	TripleRocker
)

func (c GrashofClass) String() string {
	switch c {
	case DoubleCrank:
		return "double-crank"
	case CrankRocker:
		return "crank-rocker"
	case RockerCrank:
		return "rocker-crank"
	case GrashofDoubleRocker:
		return "double-rocker"
	case ChangePoint:
		return "change-point"
	case TripleRocker:
		return "triple-rocker"
	default:
		return fmt.Sprintf("GrashofClass(%d)", int(c))
	}
}

// IsGrashof reports whether the shortest and longest link together are no
// longer than the other two, i.e. whether some link can turn fully.
func (c GrashofClass) IsGrashof() bool {
	return c != TripleRocker
}

// grashofTolerance is the relative tolerance of the change-point test.
const grashofTolerance = 1e-12

// Classify returns the Grashof class of cfg. Ties for the shortest link are
// broken in the order ground, crank, rocker, coupler.
func (cfg Config) Classify() GrashofClass {
	links := cfg.Lengths()
	sorted := slices.Clone(links[:])
	slices.Sort(sorted)
	s, p, q, l := sorted[0], sorted[1], sorted[2], sorted[3]

	lhs, rhs := s+l, p+q
	switch {
	case lhs-rhs > grashofTolerance*rhs:
		return TripleRocker
	case rhs-lhs <= grashofTolerance*rhs:
		return ChangePoint
	}

	switch cfg.shortest() {
	case 0:
		return DoubleCrank
	case 1:
		return CrankRocker
	case 3:
		return RockerCrank
	default:
		return GrashofDoubleRocker
	}
}

// shortest returns the index into Lengths of the shortest link. Ties are
// broken in the order ground, crank, rocker, coupler.
func (cfg Config) shortest() int {
	links := cfg.Lengths()
	best := 0
	for _, i := range [...]int{1, 3, 2} {
		if links[i] < links[best] {
			best = i
		}
	}
	return best
}

// CrankFullyRotates reports whether the driver can make a full turn in at
// least one assembly mode: the linkage satisfies the Grashof condition and the
// ground or the crank is its shortest link. For change-point linkages the turn
// passes through the flat configurations, where the two modes meet.
func (cfg Config) CrankFullyRotates() bool {
	if !cfg.Classify().IsGrashof() {
		return false
	}
	s := cfg.shortest()
	return s == 0 || s == 1
}
