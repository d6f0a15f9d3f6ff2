package linkage

import (
	"math"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
)

func diff(t *testing.T, want, got any, opts ...cmp.Option) {
	t.Helper()
	if d := cmp.Diff(want, got, opts...); d != "" {
		t.Error(d)
	}
}

// approx compares floats with an absolute tolerance and treats NaNs as equal.
func approx(tol float64) cmp.Option {
	return cmp.Options{
		cmpopts.EquateApprox(0, tol),
		cmpopts.EquateNaNs(),
		cmpopts.IgnoreUnexported(Pose{}),
	}
}

func approxEqual(x, y, tol float64) bool {
	return math.Abs(x-y) <= tol
}

// onCircle reports whether pt lies on c within tol.
func onCircle(c Circle, pt Point, tol float64) bool {
	return approxEqual(pt.Distance(c.Center), math.Abs(c.Radius), tol)
}

// inRect reports whether pt lies within r, edges included.
func inRect(r Rect, pt Point) bool {
	r = r.Abs()
	return pt.X >= r.X0 && pt.X <= r.X1 && pt.Y >= r.Y0 && pt.Y <= r.Y1
}

// subpaths counts the MoveTo elements of p.
func subpaths(p Path) int {
	n := 0
	for _, el := range p {
		if el.Kind == MoveToKind {
			n++
		}
	}
	return n
}

func svgString(t *testing.T, p Path, opts SVGOptions) string {
	t.Helper()
	var sb strings.Builder
	if err := p.WriteSVG(&sb, opts); err != nil {
		t.Fatal(err)
	}
	return sb.String()
}
