package linkage

import (
	"math"
	"slices"
	"testing"
)

func TestDriverAngles(t *testing.T) {
	tests := []struct {
		step  float64
		n     int
		first float64
		last  float64
	}{
		{2, 181, 0, 360},
		{1, 361, 0, 360},
		{7, 52, 0, 357},
		{0.1, 3601, 0, 360},
		{360, 2, 0, 360},
		{500, 1, 0, 0},
	}
	for _, tt := range tests {
		angles := slices.Collect(DriverAngles(tt.step))
		if len(angles) != tt.n {
			t.Errorf("step %g: got %d angles, want %d", tt.step, len(angles), tt.n)
			continue
		}
		if angles[0] != tt.first {
			t.Errorf("step %g: got first angle %v, want %v", tt.step, angles[0], tt.first)
		}
		if last := angles[len(angles)-1]; !approxEqual(last, tt.last, 1e-9) {
			t.Errorf("step %g: got last angle %v, want %v", tt.step, last, tt.last)
		}
	}

	for _, step := range []float64{0, -2, math.NaN(), math.Inf(1), math.Inf(-1)} {
		if n := len(slices.Collect(DriverAngles(step))); n != 0 {
			t.Errorf("step %g: got %d angles, want none", step, n)
		}
	}
}

func TestSampleFullTurn(t *testing.T) {
	for _, mode := range Modes {
		traj := Sample(DefaultConfig, mode, DefaultStep)
		if len(traj) != 181 {
			t.Fatalf("%s: got %d samples, want 181", mode, len(traj))
		}
		for i, s := range traj {
			if want := float64(i) * DefaultStep; s.Theta2 != want {
				t.Fatalf("%s: sample %d has θ2 = %v, want %v", mode, i, s.Theta2, want)
			}
			p := Solve(DefaultConfig.WithTheta2(s.Theta2), mode)
			diff(t, SampleOf(p), s)
		}
	}
	diff(t, Sample(DefaultConfig, Open, DefaultStep), Trace(DefaultConfig, Open))
}

func TestSampleDropsInvalid(t *testing.T) {
	// Valid while the crank is within about 104.5° of the ground line.
	cfg := Config{R1: 2, R2: 3, R3: 2, R4: 2, R6: 1}
	if cls := cfg.Classify(); cls != TripleRocker {
		t.Fatalf("got class %v, want %v", cls, TripleRocker)
	}
	traj := Sample(cfg, Open, 2)
	if len(traj) != 106 {
		t.Fatalf("got %d samples, want 106", len(traj))
	}
	for _, s := range traj {
		if th := s.Theta2; th > 104 && th < 256 {
			t.Errorf("got a sample at θ2 = %v", th)
		}
		if s.C.IsNaN() || math.IsNaN(s.Theta3) || math.IsNaN(s.Theta4) {
			t.Errorf("got NaN sample %+v", s)
		}
	}
	if !slices.IsSortedFunc(traj, func(a, b TrajectorySample) int {
		switch {
		case a.Theta2 < b.Theta2:
			return -1
		case a.Theta2 > b.Theta2:
			return 1
		default:
			return 0
		}
	}) {
		t.Error("samples aren't ordered by driver angle")
	}
}

func TestSampleNeverAssembles(t *testing.T) {
	cfg := Config{R1: 10, R2: 1, R3: 1, R4: 1, R6: 1}
	for _, mode := range Modes {
		if traj := Sample(cfg, mode, 1); len(traj) != 0 {
			t.Errorf("%s: got %d samples, want none", mode, len(traj))
		}
	}
}

func TestSampleDeterministic(t *testing.T) {
	cfg := Config{R1: 3, R2: 4, R3: 2.5, R4: 1, R6: 2, Beta: 120}
	a := Sample(cfg, Crossed, 3)
	b := Sample(cfg, Crossed, 3)
	diff(t, a, b)

	// The config's own driver angle plays no part.
	diff(t, a, Sample(cfg.WithTheta2(123), Crossed, 3))

	// Field order doesn't matter either.
	same := Config{Beta: 120, R6: 2, R4: 1, R3: 2.5, R2: 4, R1: 3}
	diff(t, a, Sample(same, Crossed, 3))
}

func TestSamplesStopEarly(t *testing.T) {
	var got []float64
	for s := range Samples(DefaultConfig, Open, DefaultStep) {
		got = append(got, s.Theta2)
		if len(got) == 3 {
			break
		}
	}
	diff(t, []float64{0, 2, 4}, got)
}

func TestSampleBadStep(t *testing.T) {
	for _, step := range []float64{0, -1, math.NaN(), math.Inf(1)} {
		if traj := Sample(DefaultConfig, Open, step); len(traj) != 0 {
			t.Errorf("step %v: got %d samples, want none", step, len(traj))
		}
	}
}
