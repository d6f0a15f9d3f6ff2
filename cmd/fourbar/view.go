package main

import (
	"math"

	"github.com/samber/lo"

	"honnef.co/go/linkage"
)

// JSON has no NaN, so the views below use null for the values of a pose that
// cannot be assembled.

type pointView struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

func viewPoint(pt linkage.Point) *pointView {
	if pt.IsNaN() {
		return nil
	}
	return &pointView{pt.X, pt.Y}
}

func viewFloat(f float64) *float64 {
	if math.IsNaN(f) {
		return nil
	}
	return &f
}

type poseView struct {
	Theta2       float64              `json:"theta2"`
	Mode         linkage.AssemblyMode `json:"mode"`
	Valid        bool                 `json:"valid"`
	Error        string               `json:"error,omitempty"`
	P1           *pointView           `json:"p1"`
	P2           *pointView           `json:"p2"`
	A            *pointView           `json:"a"`
	B            *pointView           `json:"b"`
	C            *pointView           `json:"c"`
	Theta3       *float64             `json:"theta3"`
	Theta4       *float64             `json:"theta4"`
	Transmission *float64             `json:"transmission"`
}

func viewPose(p linkage.Pose) poseView {
	v := poseView{
		Theta2:       p.Theta2,
		Mode:         p.Mode,
		Valid:        p.Valid,
		P1:           viewPoint(p.P1),
		P2:           viewPoint(p.P2),
		A:            viewPoint(p.A),
		B:            viewPoint(p.B),
		C:            viewPoint(p.C),
		Theta3:       viewFloat(p.Theta3),
		Theta4:       viewFloat(p.Theta4),
		Transmission: viewFloat(p.TransmissionAngle()),
	}
	if err := p.Err(); err != nil {
		v.Error = err.Error()
	}
	return v
}

type sampleView struct {
	Theta2 float64 `json:"theta2"`
	Theta3 float64 `json:"theta3"`
	Theta4 float64 `json:"theta4"`
	Cx     float64 `json:"cx"`
	Cy     float64 `json:"cy"`
}

func viewTrajectory(traj linkage.Trajectory) []sampleView {
	return lo.Map(traj, func(s linkage.TrajectorySample, _ int) sampleView {
		return sampleView{s.Theta2, s.Theta3, s.Theta4, s.C.X, s.C.Y}
	})
}
