package raster

import "github.com/chewxy/math32"

// DrawPoint emits the fragment at the pixel nearest to f.
func DrawPoint(f Fragment, clip Rect, emit Sink) {
	if !f.finite() {
		return
	}
	x, y := round(f.X), round(f.Y)
	if !clip.Contains(x, y) {
		return
	}
	f.X, f.Y = float32(x), float32(y)
	emit(f)
}

// DrawLine rasterizes the segment a-b with Bresenham's algorithm,
// interpolating attributes along the segment. Both endpoints are emitted.
func DrawLine(a, b Fragment, clip Rect, emit Sink) {
	a, b, ok := clipSegment(a, b, clip)
	if !ok {
		return
	}

	x0, y0 := round(a.X), round(a.Y)
	x1, y1 := round(b.X), round(b.Y)

	dx := absInt(x1 - x0)
	dy := -absInt(y1 - y0)
	sx, sy := 1, 1
	if x0 > x1 {
		sx = -1
	}
	if y0 > y1 {
		sy = -1
	}
	steps := max(dx, -dy)
	err := dx + dy

	for i := 0; ; i++ {
		if clip.Contains(x0, y0) {
			var f Fragment
			if steps == 0 {
				f = a
			} else {
				f = a.Lerp(b, float32(i)/float32(steps))
			}
			f.X, f.Y = float32(x0), float32(y0)
			emit(f)
		}
		if x0 == x1 && y0 == y1 {
			return
		}
		e2 := 2 * err
		if e2 >= dy {
			err += dy
			x0 += sx
		}
		if e2 <= dx {
			err += dx
			y0 += sy
		}
	}
}

// clipSegment trims a-b to the clip rectangle (Liang-Barsky) so Bresenham
// never walks far outside the target. Segments with a non-finite endpoint
// are rejected.
func clipSegment(a, b Fragment, clip Rect) (Fragment, Fragment, bool) {
	if clip.Empty() || !a.finite() || !b.finite() {
		return a, b, false
	}
	minX, minY := float32(clip.MinX)-0.5, float32(clip.MinY)-0.5
	maxX, maxY := float32(clip.MaxX)-0.5, float32(clip.MaxY)-0.5

	dx, dy := b.X-a.X, b.Y-a.Y
	t0, t1 := float32(0), float32(1)
	edges := [4][2]float32{
		{-dx, a.X - minX},
		{dx, maxX - a.X},
		{-dy, a.Y - minY},
		{dy, maxY - a.Y},
	}
	for _, e := range edges {
		p, q := e[0], e[1]
		if p == 0 {
			if q < 0 {
				return a, b, false
			}
			continue
		}
		r := q / p
		if p < 0 {
			t0 = max(t0, r)
		} else {
			t1 = min(t1, r)
		}
		if t0 > t1 {
			return a, b, false
		}
	}

	na, nb := a, b
	if t0 > 0 {
		na = a.Lerp(b, t0)
	}
	if t1 < 1 {
		nb = a.Lerp(b, t1)
	}
	return na, nb, true
}

func round(v float32) int {
	return int(math32.Floor(v + 0.5))
}

func absInt(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
