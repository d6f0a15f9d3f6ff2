package linkage

import (
	"bytes"
	"errors"
	"testing"
)

func TestPathSVG(t *testing.T) {
	var p Path
	p.MoveTo(Pt(0, 0))
	p.LineTo(Pt(1.5, -2))
	p.Push(CubicTo(Pt(1, 1), Pt(2, 2), Pt(3.25, 3)))
	p.Push(ClosePath())
	diff(t, "M0,0 L1.5,-2 C1,1 2,2 3.25,3 Z", svgString(t, p, SVGOptions{}))

	var q Path
	q.MoveTo(Pt(1.0/3, 2.0/3))
	q.LineTo(Pt(0.5, 10))
	diff(t, "M0.333,0.667 L0.5,10", svgString(t, q, SVGOptions{MaxPrecision: 3}))
}

type failingWriter struct{ n int }

func (w *failingWriter) Write(b []byte) (int, error) {
	if w.n == 0 {
		return 0, errors.New("disk full")
	}
	w.n--
	return len(b), nil
}

func TestPathWriteSVGError(t *testing.T) {
	var p Path
	p.MoveTo(Pt(0, 0))
	p.LineTo(Pt(1, 1))
	p.LineTo(Pt(2, 0))
	if err := p.WriteSVG(&failingWriter{n: 2}, SVGOptions{}); err == nil {
		t.Error("got no error from a failing writer")
	}
	var buf bytes.Buffer
	if err := p.WriteSVG(&buf, SVGOptions{}); err != nil {
		t.Fatal(err)
	}
	diff(t, "M0,0 L1,1 L2,0", buf.String())
}

func TestPathTransform(t *testing.T) {
	var p Path
	p.MoveTo(Pt(0, 0))
	p.LineTo(Pt(1, 2))
	p.Push(ClosePath())
	got := p.Transform(Scale(2, -1))
	want := Path{MoveTo(Pt(0, 0)), LineTo(Pt(2, -2)), ClosePath()}
	diff(t, want, got)
	if n := subpaths(got); n != 1 {
		t.Errorf("got %d subpaths, want 1", n)
	}
}

func TestPathLength(t *testing.T) {
	var p Path
	p.MoveTo(Pt(0, 0))
	p.LineTo(Pt(3, 4))
	p.MoveTo(Pt(10, 10))
	p.LineTo(Pt(10, 11))
	// The jump between subpaths doesn't count.
	if l := p.Length(); l != 6 {
		t.Errorf("got length %v, want 6", l)
	}
	p.Push(ClosePath())
	// Closing the second subpath adds the way back to (10, 10).
	if l := p.Length(); l != 7 {
		t.Errorf("got closed length %v, want 7", l)
	}
	if l := (Path{}).Length(); l != 0 {
		t.Errorf("got length %v for an empty path, want 0", l)
	}
}
