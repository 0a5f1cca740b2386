package clip

import "github.com/Faultbox/midgard-sr/internal/engine/raster"

// Culler discards triangles by screen-space winding.
//
// The winding is the z component of (p1-p0) x (p2-p1). With a y-up screen,
// counter-clockwise triangles have positive winding. A triangle is culled
// when its winding has the same sign as BackSign.
type Culler struct {
	Enabled  bool
	BackSign float32
}

// DefaultCuller culls clockwise triangles.
func DefaultCuller() Culler {
	return Culler{Enabled: true, BackSign: -1}
}

// Winding returns the z component of (p1-p0) x (p2-p1).
func Winding(p0, p1, p2 raster.Fragment) float32 {
	e1x, e1y := p1.X-p0.X, p1.Y-p0.Y
	e2x, e2y := p2.X-p1.X, p2.Y-p1.Y
	return e1x*e2y - e1y*e2x
}

// Backface reports whether the triangle faces away under the default
// convention.
func Backface(p0, p1, p2 raster.Fragment) bool {
	return Winding(p0, p1, p2) < 0
}

// Cull reports whether the triangle should be dropped.
func (c Culler) Cull(p0, p1, p2 raster.Fragment) bool {
	if !c.Enabled {
		return false
	}
	return Winding(p0, p1, p2)*c.BackSign > 0
}
