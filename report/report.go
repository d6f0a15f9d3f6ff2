// Package report tabulates solver output: poses at a few reference driver
// angles and sampled coupler curves.
package report

import (
	"fmt"
	"io"
	"math"
	"slices"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/pkg/errors"
	"github.com/samber/lo"

	"honnef.co/go/linkage"
)

// ReferenceAngles are the driver angles of [ReferenceTable], in degrees.
var ReferenceAngles = []float64{0, 90, 180, 270}

// Broken is shown in place of the values of a pose that cannot be assembled.
const Broken = "assembly broken"

// Format selects how a table is rendered.
type Format int

const (
	Text Format = iota
	CSV
	Markdown
)

func (f Format) String() string {
	switch f {
	case Text:
		return "text"
	case CSV:
		return "csv"
	case Markdown:
		return "markdown"
	default:
		return fmt.Sprintf("Format(%d)", int(f))
	}
}

// ParseFormat parses the names returned by Format.String. "md" is accepted for
// Markdown.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(s) {
	case "text", "":
		return Text, nil
	case "csv":
		return CSV, nil
	case "markdown", "md":
		return Markdown, nil
	default:
		return 0, errors.Errorf("unknown table format %q", s)
	}
}

// Render writes tw to w in the given format.
func Render(w io.Writer, tw table.Writer, f Format) error {
	var out string
	switch f {
	case Text:
		out = tw.Render()
	case CSV:
		out = tw.RenderCSV()
	case Markdown:
		out = tw.RenderMarkdown()
	default:
		return errors.Errorf("unknown table format %d", int(f))
	}
	_, err := io.WriteString(w, out+"\n")
	return err
}

func number(f float64) string {
	if math.IsNaN(f) {
		return "-"
	}
	return fmt.Sprintf("%.3f", f)
}

func point(pt linkage.Point) string {
	if pt.IsNaN() {
		return "-"
	}
	return fmt.Sprintf("(%.3f, %.3f)", pt.X, pt.Y)
}

// ReferenceTable solves cfg at each of the [ReferenceAngles] and lists the
// joints, link angles and transmission angle of each pose.
func ReferenceTable(cfg linkage.Config, mode linkage.AssemblyMode) table.Writer {
	poses := lo.Map(ReferenceAngles, func(th float64, _ int) linkage.Pose {
		return linkage.Solve(cfg.WithTheta2(th), mode)
	})
	return PoseTable(poses)
}

// PoseTable lists the given poses, one per row.
func PoseTable(poses []linkage.Pose) table.Writer {
	tw := table.NewWriter()
	tw.AppendHeader(table.Row{"θ2", "A", "B", "C", "θ3", "θ4", "μ", "Status"})
	tw.AppendRows(lo.Map(poses, func(p linkage.Pose, _ int) table.Row {
		status := "ok"
		if !p.Valid {
			status = Broken
		}
		return table.Row{
			fmt.Sprintf("%g", p.Theta2),
			point(p.A),
			point(p.B),
			point(p.C),
			number(p.Theta3),
			number(p.Theta4),
			number(p.TransmissionAngle()),
			status,
		}
	}))
	return tw
}

// TrajectoryTable lists every sample of traj.
func TrajectoryTable(traj linkage.Trajectory) table.Writer {
	tw := table.NewWriter()
	tw.AppendHeader(table.Row{"θ2", "θ3", "θ4", "Cx", "Cy"})
	tw.AppendRows(lo.Map(traj, func(s linkage.TrajectorySample, _ int) table.Row {
		return table.Row{
			fmt.Sprintf("%g", s.Theta2),
			number(s.Theta3),
			number(s.Theta4),
			number(s.C.X),
			number(s.C.Y),
		}
	}))
	return tw
}

// SummaryTable describes a linkage and its coupler curve sampled at step.
func SummaryTable(cfg linkage.Config, mode linkage.AssemblyMode, traj linkage.Trajectory, step float64) table.Writer {
	tw := table.NewWriter()
	tw.AppendRow(table.Row{"Class", cfg.Classify()})
	tw.AppendRow(table.Row{"Crank turns fully", cfg.CrankFullyRotates()})
	tw.AppendRow(table.Row{"Mode", mode})
	angles := len(slices.Collect(linkage.DriverAngles(step)))
	tw.AppendRow(table.Row{"Samples", fmt.Sprintf("%d of %d", len(traj), angles)})
	tw.AppendRow(table.Row{"Runs", len(slices.Collect(traj.Runs(step)))})
	tw.AppendRow(table.Row{"Coupler path length", number(traj.CouplerLength(step))})
	if lo4, hi4, ok := traj.Theta4Range(); ok {
		tw.AppendRow(table.Row{"θ4 range", fmt.Sprintf("[%s, %s]", number(lo4), number(hi4))})
	}
	if box, ok := traj.BoundingBox(); ok {
		tw.AppendRow(table.Row{"Coupler extents", fmt.Sprintf("%s to %s", point(linkage.Pt(box.X0, box.Y0)), point(linkage.Pt(box.X1, box.Y1)))})
	}
	if err := cfg.Validate(); err != nil {
		tw.AppendRow(table.Row{"Problems", err.Error()})
	}
	return tw
}
