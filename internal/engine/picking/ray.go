// Package picking provides ray casting and object picking utilities.
package picking

import (
	"github.com/chewxy/math32"

	"github.com/Faultbox/midgard-sr/internal/engine/model"
	"github.com/Faultbox/midgard-sr/internal/engine/raster"
	"github.com/Faultbox/midgard-sr/internal/engine/scene"
	"github.com/Faultbox/midgard-sr/pkg/math"
)

// Ray represents a ray in 3D space with origin and direction.
type Ray struct {
	Origin    math.Vec3
	Direction math.Vec3 // Normalized direction
}

// At returns the point at distance t along the ray.
func (r Ray) At(t float32) math.Vec3 {
	return r.Origin.Add(r.Direction.Scale(t))
}

// ScreenToRay converts a framebuffer pixel position (row 0 at the bottom)
// to a ray in the space invViewProj maps clip space into. It reports false
// when the viewport is empty or the unprojection degenerates.
func ScreenToRay(x, y float32, vp raster.Viewport, width, height int, invViewProj math.Mat4) (Ray, bool) {
	if !vp.Valid() {
		return Ray{}, false
	}
	halfW := 0.5 * float32(width) * vp.W
	halfH := 0.5 * float32(height) * vp.H
	ndcX := (x-vp.X*float32(width))/halfW - 1
	ndcY := (y-vp.Y*float32(height))/halfH - 1

	// Unproject near and far points
	near, ok := invViewProj.MulVec4(math.Vec4{X: ndcX, Y: ndcY, Z: -1, W: 1}).Divide()
	if !ok {
		return Ray{}, false
	}
	far, ok := invViewProj.MulVec4(math.Vec4{X: ndcX, Y: ndcY, Z: 1, W: 1}).Divide()
	if !ok {
		return Ray{}, false
	}

	dir := far.XYZ().Sub(near.XYZ())
	if dir.Length() == 0 {
		return Ray{}, false
	}
	return Ray{Origin: near.XYZ(), Direction: dir.Normalize()}, true
}

func axis(v math.Vec3, i int) float32 {
	switch i {
	case 0:
		return v.X
	case 1:
		return v.Y
	}
	return v.Z
}

// IntersectBounds tests ray intersection with an axis-aligned box.
// Returns the distance to intersection (t) and whether intersection occurred.
// If the ray starts inside the box, returns the exit distance.
func (r Ray) IntersectBounds(b model.Bounds) (t float32, hit bool) {
	tmin := float32(-math32.MaxFloat32)
	tmax := float32(math32.MaxFloat32)

	for i := range 3 {
		o, d := axis(r.Origin, i), axis(r.Direction, i)
		lo, hi := axis(b.Min, i), axis(b.Max, i)
		if d == 0 {
			if o < lo || o > hi {
				return 0, false
			}
			continue
		}
		t1, t2 := (lo-o)/d, (hi-o)/d
		if t1 > t2 {
			t1, t2 = t2, t1
		}
		tmin = max(tmin, t1)
		tmax = min(tmax, t2)
	}

	// Check if intersection is valid
	if tmax < tmin || tmax < 0 {
		return 0, false
	}

	// Return entry point, or exit point if starting inside
	if tmin < 0 {
		return tmax, true
	}
	return tmin, true
}

// Pick returns the index of the renderable whose bounds the world-space ray
// hits nearest to its origin, or -1. Bounds are tested in object space.
func Pick(r Ray, items []scene.Renderable) int {
	best, bestDist := -1, float32(math32.MaxFloat32)
	for i := range items {
		item := &items[i]
		if item.Mesh == nil {
			continue
		}
		inv, ok := item.Transform.Invert()
		if !ok {
			continue
		}
		local := Ray{
			Origin:    inv.TransformPoint(r.Origin),
			Direction: inv.TransformDirection(r.Direction),
		}
		if local.Direction.Length() == 0 {
			continue
		}
		local.Direction = local.Direction.Normalize()

		t, hit := local.IntersectBounds(item.Mesh.Bounds())
		if !hit {
			continue
		}
		// Compare in world units, the object may be scaled.
		d := item.Transform.TransformPoint(local.At(t)).Distance(r.Origin)
		if d < bestDist {
			best, bestDist = i, d
		}
	}
	return best
}
