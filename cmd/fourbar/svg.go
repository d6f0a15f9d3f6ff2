package main

import (
	"fmt"
	"io"

	"github.com/pkg/errors"

	"honnef.co/go/linkage"
)

// svgStyle holds the presentation attributes of the drawing.
type svgStyle struct {
	Trail   string
	Link    string
	Ground  string
	Broken  string
	Stroke  float64
	JointR  float64
	Margin  float64
	Digits  int
	Caption bool
}

var defaultSVGStyle = svgStyle{
	Trail:   "#1f77b4",
	Link:    "#333333",
	Ground:  "#999999",
	Broken:  "#d62728",
	Stroke:  2,
	JointR:  4,
	Margin:  20,
	Digits:  2,
	Caption: true,
}

// writeSVG draws the mechanism in pose over its coupler curve as a standalone
// SVG document of the given size in pixels. The linkage plane is y-up; the
// drawing is flipped to SVG's y-down space.
func writeSVG(w io.Writer, traj linkage.Trajectory, step float64, pose linkage.Pose, size linkage.Size, style svgStyle) error {
	bounds, ok := traj.BoundingBox()
	if !ok {
		bounds = pose.BoundingBox()
	} else {
		bounds = bounds.Union(pose.BoundingBox())
	}
	aff := linkage.FitTransform(bounds, size, style.Margin)
	opts := linkage.SVGOptions{MaxPrecision: style.Digits}

	var err error
	printf := func(format string, args ...any) {
		if err != nil {
			return
		}
		_, err = fmt.Fprintf(w, format, args...)
	}
	path := func(p linkage.Path, stroke string, width float64) {
		if err != nil || len(p) == 0 {
			return
		}
		printf(`<path d="`)
		if err == nil {
			err = p.Transform(aff).WriteSVG(w, opts)
		}
		printf(`" fill="none" stroke="%s" stroke-width="%g" stroke-linecap="round"/>`+"\n", stroke, width)
	}

	printf(`<svg xmlns="http://www.w3.org/2000/svg" width="%g" height="%g" viewBox="0 0 %g %g">`+"\n",
		size.Width, size.Height, size.Width, size.Height)
	printf(`<rect width="100%%" height="100%%" fill="white"/>` + "\n")

	path(traj.Path(step), style.Trail, style.Stroke/2)

	links := pose.Links()
	var ground linkage.Path
	ground.MoveTo(links.Ground.P0)
	ground.LineTo(links.Ground.P1)
	path(ground, style.Ground, style.Stroke)

	if pose.Valid {
		var mech linkage.Path
		mech.MoveTo(pose.P1)
		mech.LineTo(pose.A)
		mech.LineTo(pose.B)
		mech.LineTo(pose.P2)
		mech.MoveTo(pose.A)
		mech.LineTo(pose.C)
		mech.LineTo(pose.B)
		path(mech, style.Link, style.Stroke)
	}

	r := style.JointR / aff.N0
	for pt := range pose.Points() {
		if pt.IsNaN() {
			continue
		}
		path(linkage.Circle{Center: pt, Radius: r}.Path(0.1*r), style.Link, style.Stroke/2)
	}

	if style.Caption {
		caption := fmt.Sprintf("θ2 = %g°, %s", pose.Theta2, pose.Mode)
		fill := style.Link
		if !pose.Valid {
			caption += ", assembly broken"
			fill = style.Broken
		}
		printf(`<text x="%g" y="%g" font-family="sans-serif" font-size="12" fill="%s">%s</text>`+"\n",
			style.Margin/2, size.Height-style.Margin/2, fill, caption)
	}
	printf("</svg>\n")
	return errors.Wrap(err, "writing SVG")
}
