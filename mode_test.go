package linkage

import (
	"encoding"
	"testing"
)

var (
	_ encoding.TextMarshaler   = AssemblyMode(0)
	_ encoding.TextUnmarshaler = (*AssemblyMode)(nil)
)

func TestParseAssemblyMode(t *testing.T) {
	tests := map[string]AssemblyMode{
		"open":    Open,
		" Open ":  Open,
		"+1":      Open,
		"1":       Open,
		"crossed": Crossed,
		"CROSS":   Crossed,
		"-1":      Crossed,
	}
	for in, want := range tests {
		got, err := ParseAssemblyMode(in)
		if err != nil {
			t.Errorf("%q: %s", in, err)
			continue
		}
		if got != want {
			t.Errorf("%q: got %v, want %v", in, got, want)
		}
	}
	for _, in := range []string{"", "0", "closed", "2"} {
		if _, err := ParseAssemblyMode(in); err == nil {
			t.Errorf("%q: got no error", in)
		}
	}
}

func TestAssemblyModeText(t *testing.T) {
	for _, m := range Modes {
		b, err := m.MarshalText()
		if err != nil {
			t.Fatal(err)
		}
		var got AssemblyMode
		if err := got.UnmarshalText(b); err != nil {
			t.Fatal(err)
		}
		if got != m {
			t.Errorf("got %v, want %v", got, m)
		}
	}
	if _, err := AssemblyMode(0).MarshalText(); err == nil {
		t.Error("marshaled the zero mode")
	}
}

func TestAssemblyModeSign(t *testing.T) {
	diff(t, 1.0, Open.Sign())
	diff(t, -1.0, Crossed.Sign())
	diff(t, Crossed, Open.Other())
	diff(t, Open, Crossed.Other())
	diff(t, "AssemblyMode(5)", AssemblyMode(5).String())
}
