package linkage

// Affine describes an affine transform via coefficients. Renderers use it to
// map the linkage frame, which is y-up, into a viewport.
//
// If the coefficients are (a, b, c, d, e, f), then the resulting
// transformation represents this augmented matrix:
//
//	| a c e |
//	| b d f |
//	| 0 0 1 |
//
// The idea is that (A * B) * v == A * (B * v).
type Affine struct {
	N0, N1, N2, N3, N4, N5 float64
}

// Scale creates an affine transform representing non-uniform scaling with
// different scale values for x and y
func Scale(x, y float64) Affine {
	return Affine{x, 0, 0, y, 0, 0}
}

// Translate creates an affine transform representing translation.
func Translate(v Vec2) Affine {
	return Affine{1, 0, 0, 1, v.X, v.Y}
}

// FitTransform returns the transform that maps bounds into a viewport of the
// given size, preserving the aspect ratio, centering the result and leaving
// margin units free on every side. The y axis is flipped so that a y-up
// linkage is drawn upright in a y-down viewport.
//
// Degenerate bounds (zero width and height) are centered without scaling.
func FitTransform(bounds Rect, viewport Size, margin float64) Affine {
	bounds = bounds.Abs()
	avail := Sz(max(viewport.Width-2*margin, 0), max(viewport.Height-2*margin, 0))
	s := 1.0
	switch w, h := bounds.Width(), bounds.Height(); {
	case w > 0 && h > 0:
		s = min(avail.Width/w, avail.Height/h)
	case w > 0:
		s = avail.Width / w
	case h > 0:
		s = avail.Height / h
	}
	c := bounds.Center()
	return Translate(Vec2(c).Negate()).
		ThenScale(s, -s).
		ThenTranslate(Vec(0.5*viewport.Width, 0.5*viewport.Height))
}

func (aff Affine) Mul(o Affine) Affine {
	return Affine{
		aff.N0*o.N0 + aff.N2*o.N1,
		aff.N1*o.N0 + aff.N3*o.N1,
		aff.N0*o.N2 + aff.N2*o.N3,
		aff.N1*o.N2 + aff.N3*o.N3,
		aff.N0*o.N4 + aff.N2*o.N5 + aff.N4,
		aff.N1*o.N4 + aff.N3*o.N5 + aff.N5,
	}
}

// ThenScale creates aff followed by a scale of (x, y).
//
// Equivalent to "Scale(x, y) * aff"
func (aff Affine) ThenScale(x, y float64) Affine {
	return Scale(x, y).Mul(aff)
}

// ThenTranslate creates aff followed by a translation of v.
//
// Equivalent to "Translate(v) * aff"
func (aff Affine) ThenTranslate(v Vec2) Affine {
	aff.N4 += v.X
	aff.N5 += v.Y
	return aff
}

