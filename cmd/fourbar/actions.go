package main

import (
	"encoding/json"
	"fmt"
	"io"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/fatih/color"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/pkg/errors"
	"github.com/samber/lo"
	"github.com/spf13/cast"
	"github.com/urfave/cli/v2"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/vg"

	"honnef.co/go/linkage"
	"honnef.co/go/linkage/chart"
	"honnef.co/go/linkage/params"
	"honnef.co/go/linkage/report"
)

var red = color.New(color.FgRed)

// load assembles the document from, in increasing precedence, the defaults,
// the --config file, the --params query and the explicit flags.
func (r *runner) load(c *cli.Context) (params.Document, error) {
	doc := params.DefaultDocument
	if path := c.String(flagConfig); path != "" {
		var err error
		doc, err = params.ReadFile(path, doc, r.logger)
		if err != nil {
			return doc, err
		}
		r.logger.Debug("loaded config file", zap.String("path", path))
	}
	if raw := c.String(flagParams); raw != "" {
		doc = params.ParseQuery(raw, doc, r.logger)
	}

	values := url.Values{}
	for _, key := range params.Keys {
		if c.IsSet(key) {
			values.Set(key, cast.ToString(c.Float64(key)))
		}
	}
	if c.IsSet(params.KeyMode) {
		values.Set(params.KeyMode, c.String(params.KeyMode))
	}
	if c.IsSet(params.KeyStep) {
		values.Set(params.KeyStep, cast.ToString(c.Float64(params.KeyStep)))
	}
	doc.Config = params.Parse(values, doc.Config, r.logger)
	doc.Options = params.ParseOptions(values, doc.Options, r.logger)

	r.logger.Debug("linkage",
		zap.Float64("r1", doc.R1),
		zap.Float64("r2", doc.R2),
		zap.Float64("r3", doc.R3),
		zap.Float64("r4", doc.R4),
		zap.Float64("r6", doc.R6),
		zap.Float64("beta", doc.Beta),
		zap.Float64("theta2", doc.Theta2),
		zap.String("mode", doc.Mode),
		zap.Float64("step", doc.Step))
	return doc, nil
}

// outputFormat parses the --format flag. json is reported separately because
// tables don't render it.
func outputFormat(c *cli.Context) (f report.Format, isJSON bool, err error) {
	s := c.String(flagFormat)
	if strings.EqualFold(s, "json") {
		return 0, true, nil
	}
	f, err = report.ParseFormat(s)
	return f, false, err
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return errors.Wrap(enc.Encode(v), "encoding JSON")
}

func (r *runner) solveAction(c *cli.Context) error {
	doc, err := r.load(c)
	if err != nil {
		return err
	}
	pose := linkage.Solve(doc.Config, doc.AssemblyMode())
	if c.Bool(flagJSON) {
		return writeJSON(r.out, viewPose(pose))
	}
	if err := report.Render(r.out, report.PoseTable([]linkage.Pose{pose}), report.Text); err != nil {
		return err
	}
	if perr := pose.Err(); perr != nil {
		red.Fprintf(r.out, "%s: %v\n", report.Broken, perr)
	} else {
		fmt.Fprintf(r.out, "transmission angle: %.4f°\n", pose.TransmissionAngle())
	}
	return nil
}

func (r *runner) sampleAction(c *cli.Context) error {
	f, isJSON, err := outputFormat(c)
	if err != nil {
		return err
	}
	doc, err := r.load(c)
	if err != nil {
		return err
	}
	traj := r.cache.Sample(doc.Config, doc.AssemblyMode(), doc.Step)
	if isJSON {
		return writeJSON(r.out, viewTrajectory(traj))
	}
	return report.Render(r.out, report.TrajectoryTable(traj), f)
}

func (r *runner) tableAction(c *cli.Context) error {
	f, isJSON, err := outputFormat(c)
	if err != nil {
		return err
	}
	doc, err := r.load(c)
	if err != nil {
		return err
	}
	mode := doc.AssemblyMode()
	if isJSON {
		poses := lo.Map(report.ReferenceAngles, func(th float64, _ int) poseView {
			return viewPose(linkage.Solve(doc.WithTheta2(th), mode))
		})
		return writeJSON(r.out, poses)
	}
	return report.Render(r.out, report.ReferenceTable(doc.Config, mode), f)
}

func (r *runner) plotAction(c *cli.Context) error {
	doc, err := r.load(c)
	if err != nil {
		return err
	}
	mode := doc.AssemblyMode()
	traj := r.cache.Sample(doc.Config, mode, doc.Step)

	var p *plot.Plot
	switch kind := c.String(flagKind); kind {
	case "angles":
		p, err = chart.Angles(traj, doc.Step)
	case "coupler":
		p, err = chart.Coupler(traj, doc.Step, linkage.Solve(doc.Config, mode))
	default:
		return errors.Errorf("unknown chart kind %q, want angles or coupler", kind)
	}
	if err != nil {
		return err
	}
	width := vg.Length(c.Float64(flagWidth)) * vg.Centimeter
	height := vg.Length(c.Float64(flagHeight)) * vg.Centimeter
	return chart.Save(p, c.String(flagOut), width, height)
}

func (r *runner) svgAction(c *cli.Context) error {
	doc, err := r.load(c)
	if err != nil {
		return err
	}
	out := c.String(flagOut)
	frames := c.Int(flagFrames)
	if frames < 1 {
		return errors.Errorf("need at least one frame, got %d", frames)
	}
	if frames > 1 && out == "-" {
		return errors.New("multiple frames need an output file")
	}
	size := linkage.Sz(c.Float64(flagWidth), c.Float64(flagHeight))
	if !(size.Width > 0 && size.Height > 0) || size.IsInf() {
		return errors.Errorf("invalid size %s", size)
	}

	mode := doc.AssemblyMode()
	for i := range frames {
		th := doc.Theta2 + float64(i)*360/float64(frames)
		pose := linkage.Solve(doc.WithTheta2(th), mode)
		// Every frame shares the geometry, so only the first one samples.
		traj := r.cache.Sample(doc.Config, mode, doc.Step)
		if out == "-" {
			return writeSVG(r.out, traj, doc.Step, pose, size, defaultSVGStyle)
		}
		name := out
		if frames > 1 {
			ext := filepath.Ext(out)
			name = fmt.Sprintf("%s-%03d%s", strings.TrimSuffix(out, ext), i, ext)
		}
		if err := writeSVGFile(name, traj, doc.Step, pose, size); err != nil {
			return err
		}
		r.logger.Debug("wrote frame", zap.String("file", name), zap.Float64("theta2", th), zap.Bool("valid", pose.Valid))
	}
	hits, misses := r.cache.Stats()
	r.logger.Debug("trajectory cache", zap.Int("hits", hits), zap.Int("misses", misses))
	return nil
}

func writeSVGFile(name string, traj linkage.Trajectory, step float64, pose linkage.Pose, size linkage.Size) (err error) {
	f, err := os.Create(name)
	if err != nil {
		return errors.Wrap(err, "creating SVG file")
	}
	defer func() {
		if cerr := f.Close(); err == nil {
			err = errors.Wrap(cerr, "closing SVG file")
		}
	}()
	return writeSVG(f, traj, step, pose, size, defaultSVGStyle)
}

func (r *runner) infoAction(c *cli.Context) error {
	f, isJSON, err := outputFormat(c)
	if err != nil {
		return err
	}
	if isJSON {
		return errors.New("info does not support json output")
	}
	doc, err := r.load(c)
	if err != nil {
		return err
	}

	var tables [len(linkage.Modes)]table.Writer
	g, ctx := errgroup.WithContext(c.Context)
	for i, mode := range linkage.Modes {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			traj := r.cache.Sample(doc.Config, mode, doc.Step)
			tables[i] = report.SummaryTable(doc.Config, mode, traj, doc.Step)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	fmt.Fprintf(r.out, "%s (%s)\n", doc.Classify(), params.Values(doc).Encode())
	for i, mode := range linkage.Modes {
		fmt.Fprintf(r.out, "\n%s:\n", mode)
		if err := report.Render(r.out, tables[i], f); err != nil {
			return err
		}
	}
	if verr := doc.Validate(); verr != nil {
		red.Fprintf(r.out, "\nproblems: %v\n", verr)
	}
	return nil
}

func (r *runner) schemaAction(*cli.Context) error {
	return writeJSON(r.out, params.Schema())
}
