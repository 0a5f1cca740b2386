package renderer

import (
	"github.com/Faultbox/midgard-sr/internal/engine/model"
	"github.com/Faultbox/midgard-sr/internal/engine/raster"
	"github.com/Faultbox/midgard-sr/pkg/color"
)

// Program supplies the per-stage hooks of a shading mode.
type Program interface {
	// Vertex transforms a model vertex into clip space.
	Vertex(s *State, in model.Vertex, out *raster.Vertex)
	// Fragment computes the color of one fragment.
	Fragment(s *State, f raster.Fragment) color.ARGB
	// Assemble turns one screen-space triangle into fragments.
	Assemble(s *State, tri [3]raster.Fragment, clip raster.Rect, emit raster.Sink)
}

// faceSetup is implemented by programs that keep state per mesh face. It
// runs before the face is clipped, so every piece of a clipped face sees the
// same state.
type faceSetup interface {
	BeginFace(s *State)
}

// base transforms positions and normals and fills triangles. Variants embed
// it and override what they need.
type base struct{}

func (base) Vertex(s *State, in model.Vertex, out *raster.Vertex) {
	p := in.Position
	out.Position = s.ModelViewProjection.MulVec4(p)
	out.Eye = s.ModelView.MulVec4(p).XYZ()
	out.Normal = s.Normal.TransformDirection(in.Normal).Normalize()
	out.UV = in.UV
	out.Color = in.Color
}

func (base) Fragment(s *State, f raster.Fragment) color.ARGB {
	return surface(s, f.Color).Pack()
}

func (base) Assemble(s *State, tri [3]raster.Fragment, clip raster.Rect, emit raster.Sink) {
	raster.FillTriangle(tri, clip, emit)
}

// surface modulates c by the material's diffuse color and opacity.
func surface(s *State, c color.RGBA) color.RGBA {
	return c.RGB().Mul(s.Material.Diffuse).RGBA(c.A * s.Material.Opacity())
}
