package raster

import "github.com/chewxy/math32"

// FillTriangle scan-converts a screen-space triangle, emitting one fragment
// per covered pixel inside clip. Triangles with a non-finite vertex are
// skipped.
//
// Rows cover [ceil(yMin), ceil(yMax)) and each span covers
// [ceil(xLeft), ceil(xRight)), so pixels on an edge shared by two triangles
// are emitted exactly once.
func FillTriangle(tri [3]Fragment, clip Rect, emit Sink) {
	if !tri[0].finite() || !tri[1].finite() || !tri[2].finite() {
		return
	}
	a, b, c := sortByY(tri)
	if a.Y == c.Y || clip.Empty() {
		return
	}

	switch {
	case a.Y == b.Y:
		// Flat bottom edge a-b, apex c.
		fillRows(a.Y, c.Y, a, c, b, c, clip, emit)
	case b.Y == c.Y:
		// Flat top edge b-c, apex a.
		fillRows(a.Y, c.Y, a, b, a, c, clip, emit)
	default:
		// Split at the middle vertex's height into a flat-top and a
		// flat-bottom half. Both halves evaluate the long edge a-c between
		// its original endpoints so neighbors sharing it agree.
		fillRows(a.Y, b.Y, a, b, a, c, clip, emit)
		fillRows(b.Y, c.Y, b, c, a, c, clip, emit)
	}
}

// fillRows emits spans for rows [ceil(y0), ceil(y1)) between edge p0-p1 and
// edge q0-q1. Both edges run bottom to top.
func fillRows(y0, y1 float32, p0, p1, q0, q1 Fragment, clip Rect, emit Sink) {
	start := max(int(math32.Ceil(y0)), clip.MinY)
	end := min(int(math32.Ceil(y1)), clip.MaxY)

	for y := start; y < end; y++ {
		fy := float32(y)
		l := edgeAt(p0, p1, fy)
		r := edgeAt(q0, q1, fy)
		if l.X > r.X {
			l, r = r, l
		}
		span(l, r, y, clip, emit)
	}
}

// edgeAt interpolates the edge p0-p1 at height y.
func edgeAt(p0, p1 Fragment, y float32) Fragment {
	dy := p1.Y - p0.Y
	if dy == 0 {
		return p0
	}
	f := p0.Lerp(p1, (y-p0.Y)/dy)
	f.Y = y
	return f
}

func span(l, r Fragment, y int, clip Rect, emit Sink) {
	dx := r.X - l.X
	if dx <= 0 {
		return
	}
	start := max(int(math32.Ceil(l.X)), clip.MinX)
	end := min(int(math32.Ceil(r.X)), clip.MaxX)

	for x := start; x < end; x++ {
		fx := float32(x)
		f := l.Lerp(r, (fx-l.X)/dx)
		f.X = fx
		f.Y = float32(y)
		emit(f)
	}
}

// sortByY orders the vertices by ascending y. Ties keep input order.
func sortByY(tri [3]Fragment) (a, b, c Fragment) {
	a, b, c = tri[0], tri[1], tri[2]
	if b.Y < a.Y {
		a, b = b, a
	}
	if c.Y < b.Y {
		b, c = c, b
	}
	if b.Y < a.Y {
		a, b = b, a
	}
	return a, b, c
}
