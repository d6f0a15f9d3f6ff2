package main

import (
	"io"

	"github.com/urfave/cli/v2"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"honnef.co/go/linkage"
	"honnef.co/go/linkage/logging"
	"honnef.co/go/linkage/params"
)

const (
	// Global flags.
	flagDebug  = "debug"
	flagConfig = "config"
	flagParams = "params"

	// Command flags.
	flagFormat = "format"
	flagJSON   = "json"
	flagOut    = "out"
	flagKind   = "kind"
	flagWidth  = "width"
	flagHeight = "height"
	flagFrames = "frames"
)

// runner holds the state shared by the commands of one invocation.
type runner struct {
	out, errOut io.Writer
	logger      *zap.Logger
	cache       *linkage.TrajectoryCache
}

func geometryFlags() []cli.Flag {
	usage := map[string]string{
		params.KeyR1:     "ground link `LENGTH`",
		params.KeyR2:     "crank `LENGTH`",
		params.KeyR3:     "coupler `LENGTH`",
		params.KeyR4:     "rocker `LENGTH`",
		params.KeyR6:     "`DISTANCE` from joint A to the coupler point",
		params.KeyBeta:   "`ANGLE` of the coupler point relative to the coupler, in degrees",
		params.KeyTheta2: "driver `ANGLE` in degrees",
	}
	flags := make([]cli.Flag, 0, len(params.Keys)+2)
	for _, key := range params.Keys {
		flags = append(flags, &cli.Float64Flag{
			Name:  key,
			Usage: usage[key],
		})
	}
	return append(flags,
		&cli.StringFlag{
			Name:  params.KeyMode,
			Usage: "assembly `MODE`, open or crossed",
		},
		&cli.Float64Flag{
			Name:  params.KeyStep,
			Usage: "driver angle `INCREMENT` of the coupler curve in degrees",
		},
	)
}

// NewApp returns a new app with Writer set to out, and ErrWriter set to
// errOut. Logs go to errOut too.
func NewApp(out, errOut io.Writer) *cli.App {
	r := &runner{
		out:    out,
		errOut: errOut,
		logger: zap.NewNop(),
	}
	formatFlag := &cli.StringFlag{
		Name:    flagFormat,
		Aliases: []string{"f"},
		Value:   "text",
		Usage:   "output `FORMAT`: text, csv, markdown or json",
	}

	app := &cli.App{
		Name:            "fourbar",
		Usage:           "analyze planar four-bar linkages with a coupler point",
		HideHelpCommand: true,
		Writer:          out,
		ErrWriter:       errOut,
		Flags: append([]cli.Flag{
			&cli.BoolFlag{
				Name:    flagDebug,
				Aliases: []string{"vvv"},
				Usage:   "enable debug logging",
			},
			&cli.StringFlag{
				Name:    flagConfig,
				Aliases: []string{"c"},
				Usage:   "load the linkage from a JSON5 `FILE`",
			},
			&cli.StringFlag{
				Name:    flagParams,
				Aliases: []string{"p"},
				Usage:   "load the linkage from URL query `PARAMETERS` such as 'r1=1&r2=2'",
			},
		}, geometryFlags()...),
		Before: func(c *cli.Context) error {
			level := zapcore.WarnLevel
			if c.Bool(flagDebug) {
				level = zapcore.DebugLevel
			}
			r.logger = logging.NewWriterLogger("fourbar", errOut, level)
			logging.ReplaceGlobal(r.logger)
			r.cache = linkage.NewTrajectoryCache(linkage.DefaultCacheSize, r.logger.Named("cache"))
			return nil
		},
		Commands: []*cli.Command{
			{
				Name:      "solve",
				Usage:     "solve the linkage at one driver angle",
				UsageText: "fourbar [global options] solve [--json]",
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:  flagJSON,
						Usage: "print the pose as JSON",
					},
				},
				Action: r.solveAction,
			},
			{
				Name:   "sample",
				Usage:  "trace the coupler curve over a full turn of the crank",
				Flags:  []cli.Flag{formatFlag},
				Action: r.sampleAction,
			},
			{
				Name:   "table",
				Usage:  "solve the linkage at 0°, 90°, 180° and 270°",
				Flags:  []cli.Flag{formatFlag},
				Action: r.tableAction,
			},
			{
				Name:  "plot",
				Usage: "chart the link angles or the coupler curve",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     flagOut,
						Aliases:  []string{"o"},
						Usage:    "write the chart to `FILE`; the extension selects the format",
						Required: true,
					},
					&cli.StringFlag{
						Name:  flagKind,
						Value: "angles",
						Usage: "`KIND` of chart: angles or coupler",
					},
					&cli.Float64Flag{
						Name:  flagWidth,
						Value: 16,
						Usage: "`WIDTH` in centimeters",
					},
					&cli.Float64Flag{
						Name:  flagHeight,
						Value: 10,
						Usage: "`HEIGHT` in centimeters",
					},
				},
				Action: r.plotAction,
			},
			{
				Name:  "svg",
				Usage: "draw the mechanism over its coupler curve",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     flagOut,
						Aliases:  []string{"o"},
						Usage:    "write the drawing to `FILE`, or to stdout if -",
						Required: true,
					},
					&cli.Float64Flag{
						Name:  flagWidth,
						Value: 480,
						Usage: "`WIDTH` in pixels",
					},
					&cli.Float64Flag{
						Name:  flagHeight,
						Value: 480,
						Usage: "`HEIGHT` in pixels",
					},
					&cli.IntFlag{
						Name:  flagFrames,
						Value: 1,
						Usage: "draw `N` frames evenly spaced over a turn of the crank, starting at θ2",
					},
				},
				Action: r.svgAction,
			},
			{
				Name:   "info",
				Usage:  "classify the linkage and summarize both assembly modes",
				Flags:  []cli.Flag{formatFlag},
				Action: r.infoAction,
			},
			{
				Name:   "schema",
				Usage:  "print the JSON schema of configuration files",
				Action: r.schemaAction,
			},
		},
	}
	return app
}
