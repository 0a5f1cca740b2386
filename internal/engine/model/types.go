// Package model holds the geometry and material data consumed by the
// renderer: vertices, triangular faces, meshes, materials, textures and the
// Model3D aggregate.
package model

import (
	"github.com/Faultbox/midgard-sr/pkg/color"
	"github.com/Faultbox/midgard-sr/pkg/math"
)

// Vertex is a mesh vertex. Faces lists the indices of the faces that use the
// vertex inside its owning Mesh; it never implies ownership.
type Vertex struct {
	Position math.Vec4
	UV       math.Vec2
	Normal   math.Vec3
	Color    color.RGBA
	Faces    []int
}

// NewVertex returns an opaque white vertex at (x, y, z).
func NewVertex(x, y, z float32) Vertex {
	return Vertex{Position: math.Point(x, y, z), Color: color.ColorWhite}
}

// Face is a triangle referencing three vertices of its mesh by index.
type Face struct {
	Vertices [3]int
	UV       [3]math.Vec2
	HasUV    bool
	Normal   math.Vec3
}

// NewFace returns a face over vertices a, b, c.
func NewFace(a, b, c int) Face {
	return Face{Vertices: [3]int{a, b, c}}
}

// WithUV returns a copy of f carrying per-corner texture coordinates.
func (f Face) WithUV(uv0, uv1, uv2 math.Vec2) Face {
	f.UV = [3]math.Vec2{uv0, uv1, uv2}
	f.HasUV = true
	return f
}

// Degenerate reports whether the face has no defined normal because its
// corners are colinear.
func (f Face) Degenerate() bool {
	return f.Normal == (math.Vec3{})
}

// Bounds holds an axis-aligned bounding box.
type Bounds struct {
	Min math.Vec3
	Max math.Vec3
}

// Center returns the middle of the box.
func (b Bounds) Center() math.Vec3 {
	return b.Min.Add(b.Max).Scale(0.5)
}

// Corners returns the eight corners of the box.
func (b Bounds) Corners() [8]math.Vec3 {
	return [8]math.Vec3{
		{X: b.Min.X, Y: b.Min.Y, Z: b.Min.Z},
		{X: b.Max.X, Y: b.Min.Y, Z: b.Min.Z},
		{X: b.Min.X, Y: b.Max.Y, Z: b.Min.Z},
		{X: b.Max.X, Y: b.Max.Y, Z: b.Min.Z},
		{X: b.Min.X, Y: b.Min.Y, Z: b.Max.Z},
		{X: b.Max.X, Y: b.Min.Y, Z: b.Max.Z},
		{X: b.Min.X, Y: b.Max.Y, Z: b.Max.Z},
		{X: b.Max.X, Y: b.Max.Y, Z: b.Max.Z},
	}
}
