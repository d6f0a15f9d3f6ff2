package linkage

import (
	"fmt"
	"strings"
)

// AssemblyMode selects one of the two ways a four-bar can be assembled for a
// given driver angle.
//
// Joint B is an intersection of two circles and generally has two solutions.
// The labels are a fixed convention: Open is the solution on the left of the
// directed line from joint A to the second fixed pivot, Crossed the one on its
// right. The convention does not depend on distances, so a mode never flips
// when the mechanism passes close to a tangency; at the tangency itself both
// modes coincide.
//
// The zero value is not a valid mode.
type AssemblyMode int

const (
	Open AssemblyMode = iota + 1
	Crossed
)

// Modes lists both assembly modes in a fixed order.
var Modes = [2]AssemblyMode{Open, Crossed}

func (m AssemblyMode) String() string {
	switch m {
	case Open:
		return "open"
	case Crossed:
		return "crossed"
	default:
		return fmt.Sprintf("AssemblyMode(%d)", int(m))
	}
}

// Valid reports whether m is Open or Crossed.
func (m AssemblyMode) Valid() bool {
	return m == Open || m == Crossed
}

// Sign returns +1 for Open and −1 for Crossed, the sign applied to the
// half-chord of the circle intersection. Invalid modes are treated as Open.
func (m AssemblyMode) Sign() float64 {
	if m == Crossed {
		return -1
	}
	return 1
}

// Other returns the opposite mode.
func (m AssemblyMode) Other() AssemblyMode {
	if m == Crossed {
		return Open
	}
	return Crossed
}

// MarshalText implements encoding.TextMarshaler.
func (m AssemblyMode) MarshalText() ([]byte, error) {
	if !m.Valid() {
		return nil, fmt.Errorf("invalid assembly mode %d", int(m))
	}
	return []byte(m.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler. It accepts the mode names
// as well as the signs "+1", "1" and "-1".
func (m *AssemblyMode) UnmarshalText(text []byte) error {
	mode, err := ParseAssemblyMode(string(text))
	if err != nil {
		return err
	}
	*m = mode
	return nil
}

// ParseAssemblyMode parses a mode name or sign, ignoring case and surrounding
// space.
func ParseAssemblyMode(s string) (AssemblyMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "open", "+1", "1", "+":
		return Open, nil
	case "crossed", "cross", "-1", "-":
		return Crossed, nil
	default:
		return 0, fmt.Errorf("unknown assembly mode %q", s)
	}
}
