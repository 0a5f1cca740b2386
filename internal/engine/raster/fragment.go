// Package raster turns screen-space primitives into fragments.
//
// Screen space is y-up: row 0 is the bottom of the image. Pixel centers lie
// on integer coordinates.
package raster

import (
	"github.com/Faultbox/midgard-sr/pkg/color"
	"github.com/Faultbox/midgard-sr/pkg/math"
)

// Vertex is a vertex after the vertex stage. Position is in clip space until
// the perspective divide and in normalized device coordinates after it.
type Vertex struct {
	Position math.Vec4
	Normal   math.Vec3 // view space
	Eye      math.Vec3 // view-space position
	UV       math.Vec2
	Color    color.RGBA
}

// Lerp interpolates every attribute between v and o.
func (v Vertex) Lerp(o Vertex, t float32) Vertex {
	return Vertex{
		Position: v.Position.Lerp(o.Position, t),
		Normal:   v.Normal.Lerp(o.Normal, t),
		Eye:      v.Eye.Lerp(o.Eye, t),
		UV:       v.UV.Lerp(o.UV, t),
		Color:    v.Color.Lerp(o.Color, t),
	}
}

// Fragment is a rasterized sample that has not been committed yet.
type Fragment struct {
	X, Y    float32
	Z       float32 // normalized device depth
	UV      math.Vec2
	Normal  math.Vec3
	Eye     math.Vec3
	Color   color.RGBA
	Stencil uint8
}

// Lerp interpolates every attribute between f and o. Stencil is taken from f.
func (f Fragment) Lerp(o Fragment, t float32) Fragment {
	return Fragment{
		X:       math.Lerp(f.X, o.X, t),
		Y:       math.Lerp(f.Y, o.Y, t),
		Z:       math.Lerp(f.Z, o.Z, t),
		UV:      f.UV.Lerp(o.UV, t),
		Normal:  f.Normal.Lerp(o.Normal, t),
		Eye:     f.Eye.Lerp(o.Eye, t),
		Color:   f.Color.Lerp(o.Color, t),
		Stencil: f.Stencil,
	}
}

// finite reports whether the screen position and depth of f are usable.
func (f Fragment) finite() bool {
	return math.Finite(f.X) && math.Finite(f.Y) && math.Finite(f.Z)
}

// Sink receives fragments produced by the rasterizer.
type Sink func(f Fragment)

// Rect is a half-open pixel rectangle [MinX,MaxX) x [MinY,MaxY).
type Rect struct {
	MinX, MinY, MaxX, MaxY int
}

// Contains reports whether pixel (x, y) lies inside r.
func (r Rect) Contains(x, y int) bool {
	return x >= r.MinX && x < r.MaxX && y >= r.MinY && y < r.MaxY
}

// Empty reports whether r covers no pixels.
func (r Rect) Empty() bool {
	return r.MaxX <= r.MinX || r.MaxY <= r.MinY
}
