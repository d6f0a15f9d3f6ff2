// Package chart plots solver output with gonum/plot.
package chart

import (
	"fmt"
	"image/color"
	"math"

	"github.com/pkg/errors"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"

	"honnef.co/go/linkage"
)

// Default image size.
const (
	Width  = 16 * vg.Centimeter
	Height = 10 * vg.Centimeter
)

var (
	theta3Color = plotutil.Color(0)
	theta4Color = plotutil.Color(1)
	curveColor  = plotutil.Color(2)
	linkColor   = color.Gray{Y: 0x40}
)

// Angles plots θ3 and θ4 against θ2. Each run of the trajectory, sampled at
// step, is drawn as its own line so that ranges where the linkage breaks stay
// empty. Lines are also broken where an angle wraps around ±180°.
func Angles(traj linkage.Trajectory, step float64) (*plot.Plot, error) {
	p := plot.New()
	p.Title.Text = "Link angles"
	p.X.Label.Text = "θ2 (°)"
	p.Y.Label.Text = "angle (°)"
	p.X.Min, p.X.Max = 0, 360
	p.Y.Min, p.Y.Max = -180, 180
	p.Add(plotter.NewGrid())

	series := []struct {
		name  string
		angle func(linkage.TrajectorySample) float64
		style func(*plotter.Line)
	}{
		{"θ3", func(s linkage.TrajectorySample) float64 { return s.Theta3 }, func(l *plotter.Line) {
			l.Color = theta3Color
		}},
		{"θ4", func(s linkage.TrajectorySample) float64 { return s.Theta4 }, func(l *plotter.Line) {
			l.Color = theta4Color
			l.Dashes = []vg.Length{vg.Points(4), vg.Points(2)}
		}},
	}
	for _, sr := range series {
		first := true
		for run := range traj.Runs(step) {
			pts := xys(run, func(s linkage.TrajectorySample) (float64, float64) { return s.Theta2, sr.angle(s) })
			for _, seg := range splitWraps(pts) {
				l, err := plotter.NewLine(seg)
				if err != nil {
					return nil, errors.Wrapf(err, "%s line", sr.name)
				}
				sr.style(l)
				p.Add(l)
				if first {
					p.Legend.Add(sr.name, l)
					first = false
				}
			}
		}
	}
	return p, nil
}

// Coupler plots the coupler curve, sampled at step, together with the
// mechanism in pose. An invalid pose draws only the ground link.
func Coupler(traj linkage.Trajectory, step float64, pose linkage.Pose) (*plot.Plot, error) {
	p := plot.New()
	p.Title.Text = fmt.Sprintf("Coupler curve (%s, θ2 = %g°)", pose.Mode, pose.Theta2)
	if !pose.Valid {
		p.Title.Text += ", assembly broken"
	}
	p.X.Label.Text = "x"
	p.Y.Label.Text = "y"
	p.Add(plotter.NewGrid())

	first := true
	for run := range traj.Runs(step) {
		l, err := plotter.NewLine(xys(run, func(s linkage.TrajectorySample) (float64, float64) { return s.C.X, s.C.Y }))
		if err != nil {
			return nil, errors.Wrap(err, "coupler curve")
		}
		l.Color = curveColor
		p.Add(l)
		if first {
			p.Legend.Add("C", l)
			first = false
		}
	}

	links := pose.Links()
	for _, seg := range []linkage.Line{links.Ground, links.Crank, links.Coupler, links.Rocker, links.ArmA, links.ArmB} {
		if seg.IsNaN() {
			continue
		}
		l, err := plotter.NewLine(plotter.XYs{{X: seg.P0.X, Y: seg.P0.Y}, {X: seg.P1.X, Y: seg.P1.Y}})
		if err != nil {
			return nil, errors.Wrap(err, "link")
		}
		l.Color = linkColor
		l.Width = vg.Points(2)
		p.Add(l)
	}

	var joints plotter.XYs
	for pt := range pose.Points() {
		if !pt.IsNaN() {
			joints = append(joints, plotter.XY{X: pt.X, Y: pt.Y})
		}
	}
	s, err := plotter.NewScatter(joints)
	if err != nil {
		return nil, errors.Wrap(err, "joints")
	}
	s.GlyphStyle.Shape = draw.CircleGlyph{}
	s.GlyphStyle.Color = linkColor
	p.Add(s)

	// Equal scales on both axes keep the mechanism's proportions.
	equalize(p)
	return p, nil
}

// Save writes p to path in the format implied by its extension, e.g. .png or
// .svg. Non-positive sizes select the defaults.
func Save(p *plot.Plot, path string, width, height vg.Length) error {
	if width <= 0 {
		width = Width
	}
	if height <= 0 {
		height = Height
	}
	return errors.Wrapf(p.Save(width, height, path), "saving %s", path)
}

func xys(run linkage.Trajectory, fn func(linkage.TrajectorySample) (float64, float64)) plotter.XYs {
	out := make(plotter.XYs, len(run))
	for i, s := range run {
		out[i].X, out[i].Y = fn(s)
	}
	return out
}

// splitWraps breaks pts wherever consecutive angles differ by more than
// 180°, which is where an angle in (−180, 180] wraps around.
func splitWraps(pts plotter.XYs) []plotter.XYs {
	var out []plotter.XYs
	start := 0
	for i := 1; i < len(pts); i++ {
		if math.Abs(pts[i].Y-pts[i-1].Y) > 180 {
			out = append(out, pts[start:i])
			start = i
		}
	}
	if start < len(pts) {
		out = append(out, pts[start:])
	}
	return out
}

func equalize(p *plot.Plot) {
	w, h := p.X.Max-p.X.Min, p.Y.Max-p.Y.Min
	switch {
	case w > h:
		c := (p.Y.Min + p.Y.Max) / 2
		p.Y.Min, p.Y.Max = c-w/2, c+w/2
	case h > w:
		c := (p.X.Min + p.X.Max) / 2
		p.X.Min, p.X.Max = c-h/2, c+h/2
	}
}
