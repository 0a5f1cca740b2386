package raster

// Viewport is a rectangle in normalized framebuffer coordinates: X and Y are
// the lower-left origin, W and H the size, all in 0..1.
type Viewport struct {
	X, Y, W, H float32
}

// FullViewport covers the whole framebuffer.
func FullViewport() Viewport {
	return Viewport{W: 1, H: 1}
}

// Valid reports whether the viewport has a positive area.
func (vp Viewport) Valid() bool {
	return vp.W > 0 && vp.H > 0
}

// Pixels returns the viewport in pixels for a width x height framebuffer.
func (vp Viewport) Pixels(width, height int) Rect {
	fw, fh := float32(width), float32(height)
	return Rect{
		MinX: int(vp.X * fw),
		MinY: int(vp.Y * fh),
		MaxX: int((vp.X + vp.W) * fw),
		MaxY: int((vp.Y + vp.H) * fh),
	}
}

// ToScreen maps a vertex in normalized device coordinates to a fragment in
// screen space: screen = origin + (ndc + 1) * halfExtent.
func (vp Viewport) ToScreen(v Vertex, width, height int) Fragment {
	fw, fh := float32(width), float32(height)
	halfW := 0.5 * fw * vp.W
	halfH := 0.5 * fh * vp.H

	return Fragment{
		X:      vp.X*fw + (v.Position.X+1)*halfW,
		Y:      vp.Y*fh + (v.Position.Y+1)*halfH,
		Z:      v.Position.Z,
		UV:     v.UV,
		Normal: v.Normal,
		Eye:    v.Eye,
		Color:  v.Color,
	}
}
