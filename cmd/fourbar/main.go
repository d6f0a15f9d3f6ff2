// Command fourbar solves and traces planar four-bar linkages.
//
// The linkage comes from, in increasing precedence, the built-in defaults, a
// JSON5 file given by --config, a URL query given by --params, and the
// geometry flags:
//
//	fourbar --config linkage.json5 --params 'r6=1.5' --theta2 45 solve
//	fourbar --r1 2 --r2 3 --r3 2 --r4 2 --r6 1 sample --format csv
//	fourbar info
//	fourbar plot --kind coupler --out coupler.png
//	fourbar svg --frames 36 --out frame.svg
package main

import (
	"os"

	"github.com/fatih/color"
)

func main() {
	app := NewApp(os.Stdout, os.Stderr)
	if err := app.Run(os.Args); err != nil {
		color.New(color.FgRed).Fprintf(os.Stderr, "fourbar: %v\n", err)
		os.Exit(1)
	}
}
