package model

import (
	"github.com/Faultbox/midgard-sr/pkg/color"
	"github.com/Faultbox/midgard-sr/pkg/math"
)

// Cube builds an axis-aligned cube of the given edge length centered at the
// origin. Each side has its own four vertices so normals stay flat; faces
// wind counter-clockwise when seen from outside.
func Cube(size float32) *Mesh {
	h := size / 2
	sides := []struct {
		normal  math.Vec3
		corners [4]math.Vec3
	}{
		{math.Vec3{Z: 1}, [4]math.Vec3{{X: -h, Y: -h, Z: h}, {X: h, Y: -h, Z: h}, {X: h, Y: h, Z: h}, {X: -h, Y: h, Z: h}}},
		{math.Vec3{Z: -1}, [4]math.Vec3{{X: h, Y: -h, Z: -h}, {X: -h, Y: -h, Z: -h}, {X: -h, Y: h, Z: -h}, {X: h, Y: h, Z: -h}}},
		{math.Vec3{X: 1}, [4]math.Vec3{{X: h, Y: -h, Z: h}, {X: h, Y: -h, Z: -h}, {X: h, Y: h, Z: -h}, {X: h, Y: h, Z: h}}},
		{math.Vec3{X: -1}, [4]math.Vec3{{X: -h, Y: -h, Z: -h}, {X: -h, Y: -h, Z: h}, {X: -h, Y: h, Z: h}, {X: -h, Y: h, Z: -h}}},
		{math.Vec3{Y: 1}, [4]math.Vec3{{X: -h, Y: h, Z: h}, {X: h, Y: h, Z: h}, {X: h, Y: h, Z: -h}, {X: -h, Y: h, Z: -h}}},
		{math.Vec3{Y: -1}, [4]math.Vec3{{X: -h, Y: -h, Z: -h}, {X: h, Y: -h, Z: -h}, {X: h, Y: -h, Z: h}, {X: -h, Y: -h, Z: h}}},
	}
	uvs := [4]math.Vec2{{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 1, Y: 1}, {X: 0, Y: 1}}

	vertices := make([]Vertex, 0, 24)
	faces := make([]Face, 0, 12)
	for _, s := range sides {
		base := len(vertices)
		for i, c := range s.corners {
			vertices = append(vertices, Vertex{
				Position: c.Point(),
				UV:       uvs[i],
				Normal:   s.normal,
				Color:    color.ColorWhite,
			})
		}
		faces = append(faces,
			NewFace(base, base+1, base+2).WithUV(uvs[0], uvs[1], uvs[2]),
			NewFace(base, base+2, base+3).WithUV(uvs[0], uvs[2], uvs[3]),
		)
	}
	return NewMesh(vertices, faces)
}

// Plane builds a grid on the XZ plane facing +Y, width x depth in size and
// split into divisions x divisions quads.
func Plane(width, depth float32, divisions int) *Mesh {
	if divisions < 1 {
		divisions = 1
	}
	n := divisions + 1
	vertices := make([]Vertex, 0, n*n)
	for j := 0; j < n; j++ {
		for i := 0; i < n; i++ {
			u := float32(i) / float32(divisions)
			v := float32(j) / float32(divisions)
			vertices = append(vertices, Vertex{
				Position: math.Point((u-0.5)*width, 0, (0.5-v)*depth),
				UV:       math.Vec2{X: u, Y: v},
				Normal:   math.Vec3{Y: 1},
				Color:    color.ColorWhite,
			})
		}
	}

	faces := make([]Face, 0, divisions*divisions*2)
	for j := 0; j < divisions; j++ {
		for i := 0; i < divisions; i++ {
			a := j*n + i
			b, c, d := a+1, a+n+1, a+n
			faces = append(faces,
				NewFace(a, b, c).WithUV(vertices[a].UV, vertices[b].UV, vertices[c].UV),
				NewFace(a, c, d).WithUV(vertices[a].UV, vertices[c].UV, vertices[d].UV),
			)
		}
	}
	return NewMesh(vertices, faces)
}
