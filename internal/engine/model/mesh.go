package model

import (
	"github.com/jinzhu/copier"
	"go.uber.org/zap"

	"github.com/Faultbox/midgard-sr/internal/logger"
	"github.com/Faultbox/midgard-sr/pkg/math"
)

// degenerateEpsilon is the smallest cross-product length accepted as a face normal.
const degenerateEpsilon = 1e-6

// Mesh is an immutable triangle mesh. NewMesh copies its inputs so no state
// is shared with the caller.
type Mesh struct {
	vertices []Vertex
	faces    []Face
	bounds   Bounds
}

// NewMesh builds a mesh from vertices and faces. Faces that reference missing
// vertices are dropped with a warning; everything else is kept. Face normals
// are computed here, and vertices without a normal receive the average of
// their adjacent face normals.
func NewMesh(vertices []Vertex, faces []Face) *Mesh {
	m := &Mesh{}
	if err := copier.CopyWithOption(&m.vertices, vertices, copier.Option{DeepCopy: true}); err != nil {
		logger.Warn("mesh vertex copy failed", zap.Error(err))
		m.vertices = append([]Vertex(nil), vertices...)
	}

	for i := range m.vertices {
		m.vertices[i].Faces = nil
	}

	m.faces = make([]Face, 0, len(faces))
	for i, f := range faces {
		if !m.validFace(f) {
			logger.Warn("skipping face with unresolved vertex",
				zap.Int("face", i),
				zap.Ints("vertices", f.Vertices[:]),
			)
			continue
		}
		f.Normal = faceNormal(
			m.vertices[f.Vertices[0]].Position.XYZ(),
			m.vertices[f.Vertices[1]].Position.XYZ(),
			m.vertices[f.Vertices[2]].Position.XYZ(),
		)
		idx := len(m.faces)
		m.faces = append(m.faces, f)
		for _, v := range f.Vertices {
			m.vertices[v].Faces = append(m.vertices[v].Faces, idx)
		}
	}

	for i := range m.vertices {
		if m.vertices[i].Normal == (math.Vec3{}) {
			m.vertices[i].Normal = m.VertexNormal(i)
		}
	}

	m.bounds = computeBounds(m.vertices)
	return m
}

func (m *Mesh) validFace(f Face) bool {
	for _, v := range f.Vertices {
		if v < 0 || v >= len(m.vertices) {
			return false
		}
	}
	return true
}

// Vertices returns the mesh vertices. Callers must not modify the slice.
func (m *Mesh) Vertices() []Vertex { return m.vertices }

// Faces returns the mesh faces. Callers must not modify the slice.
func (m *Mesh) Faces() []Face { return m.faces }

// Vertex returns the i-th vertex.
func (m *Mesh) Vertex(i int) Vertex { return m.vertices[i] }

// Bounds returns the local-space bounding box.
func (m *Mesh) Bounds() Bounds { return m.bounds }

// VertexNormal averages the normals of the non-degenerate faces adjacent to
// vertex i. It returns the zero vector when there are none.
func (m *Mesh) VertexNormal(i int) math.Vec3 {
	if i < 0 || i >= len(m.vertices) {
		return math.Vec3{}
	}
	var sum math.Vec3
	for _, fi := range m.vertices[i].Faces {
		f := m.faces[fi]
		if f.Degenerate() {
			continue
		}
		sum = sum.Add(f.Normal)
	}
	return sum.Normalize()
}

// faceNormal returns the unit normal of (p1-p0) x (p2-p1), or zero when the
// corners are colinear.
func faceNormal(p0, p1, p2 math.Vec3) math.Vec3 {
	n := p1.Sub(p0).Cross(p2.Sub(p1))
	if n.Length() < degenerateEpsilon {
		return math.Vec3{}
	}
	return n.Normalize()
}

func computeBounds(vertices []Vertex) Bounds {
	if len(vertices) == 0 {
		return Bounds{}
	}
	p := vertices[0].Position.XYZ()
	b := Bounds{Min: p, Max: p}
	for _, v := range vertices[1:] {
		p := v.Position.XYZ()
		b.Min = math.Vec3{X: min(b.Min.X, p.X), Y: min(b.Min.Y, p.Y), Z: min(b.Min.Z, p.Z)}
		b.Max = math.Vec3{X: max(b.Max.X, p.X), Y: max(b.Max.Y, p.Y), Z: max(b.Max.Z, p.Z)}
	}
	return b
}
