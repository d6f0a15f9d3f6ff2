package linkage

import (
	"slices"
	"testing"
)

func TestRectBasics(t *testing.T) {
	r := Rect{10, 20, 0, 0}
	diff(t, -10.0, r.Width())
	diff(t, Rect{0, 0, 10, 20}, r.Abs())
	diff(t, Pt(5, 10), r.Center())
	diff(t, 10.0, r.Abs().Width())
	diff(t, 20.0, r.Abs().Height())
}

func TestBoundingBoxOf(t *testing.T) {
	pts := []Point{Pt(1, 2), nanPoint(), Pt(-3, 5), Pt(0, -1)}
	r, ok := BoundingBoxOf(slices.Values(pts))
	if !ok {
		t.Fatal("got no bounding box")
	}
	diff(t, Rect{-3, -1, 1, 5}, r)

	if _, ok := BoundingBoxOf(slices.Values([]Point{nanPoint()})); ok {
		t.Error("got a bounding box of NaN points only")
	}

	single, _ := BoundingBoxOf(slices.Values([]Point{Pt(2, 3)}))
	diff(t, Rect{2, 3, 2, 3}, single)
}

func TestRectUnion(t *testing.T) {
	a := Rect{0, 0, 1, 1}
	b := Rect{2, -1, 3, 0.5}
	diff(t, Rect{0, -1, 3, 1}, a.Union(b))
	diff(t, Rect{0, 0, 4, 1}, a.UnionPoint(Pt(4, 0.5)))
}
