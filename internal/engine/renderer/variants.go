package renderer

import (
	"github.com/Faultbox/midgard-sr/internal/engine/lighting"
	"github.com/Faultbox/midgard-sr/internal/engine/model"
	"github.com/Faultbox/midgard-sr/internal/engine/raster"
	"github.com/Faultbox/midgard-sr/pkg/color"
	"github.com/Faultbox/midgard-sr/pkg/math"
)

// solid draws unlit vertex colors.
type solid struct{ base }

// points draws the vertices of each triangle.
type points struct{ base }

func (points) Assemble(s *State, tri [3]raster.Fragment, clip raster.Rect, emit raster.Sink) {
	for _, f := range tri {
		raster.DrawPoint(f, clip, emit)
	}
}

// wireframe draws the edges of each triangle.
type wireframe struct{ base }

func (wireframe) Assemble(s *State, tri [3]raster.Fragment, clip raster.Rect, emit raster.Sink) {
	raster.DrawLine(tri[0], tri[1], clip, emit)
	raster.DrawLine(tri[1], tri[2], clip, emit)
	raster.DrawLine(tri[2], tri[0], clip, emit)
}

// flat lights each face once with its face normal.
type flat struct{ base }

func (flat) Fragment(s *State, f raster.Fragment) color.ARGB {
	lit := lighting.Lambert(s.Material, s.Material.Diffuse.Mul(f.Color.RGB()), s.FaceNormal, f.Eye, s.Lights)
	return lit.RGBA(f.Color.A * s.Material.Opacity()).Pack()
}

// random gives every face its own color drawn from the frame RNG.
type random struct{ base }

func (random) BeginFace(s *State) {
	s.FaceColor = color.Random(s.Rand)
}

func (random) Assemble(s *State, tri [3]raster.Fragment, clip raster.Rect, emit raster.Sink) {
	for i := range tri {
		tri[i].Color = s.FaceColor
	}
	raster.FillTriangle(tri, clip, emit)
}

func (random) Fragment(s *State, f raster.Fragment) color.ARGB {
	return f.Color.Pack()
}

// depth shows normalized device depth, near surfaces bright.
type depth struct{ base }

func (depth) Fragment(s *State, f raster.Fragment) color.ARGB {
	g := 1 - math.Clamp((f.Z+1)/2, 0, 1)
	return color.RGBA{R: g, G: g, B: g, A: 1}.Pack()
}

// normals maps view-space normals to colors.
type normals struct{ base }

func (normals) Fragment(s *State, f raster.Fragment) color.ARGB {
	n := f.Normal.Normalize()
	return color.RGBA{R: n.X*0.5 + 0.5, G: n.Y*0.5 + 0.5, B: n.Z*0.5 + 0.5, A: 1}.Pack()
}

// gouraud lights vertices and interpolates the result.
type gouraud struct{ base }

func (g gouraud) Vertex(s *State, in model.Vertex, out *raster.Vertex) {
	g.base.Vertex(s, in, out)
	diffuse := s.Material.Diffuse.Mul(in.Color.RGB())
	lit := lighting.Phong(s.Material, diffuse, out.Normal, out.Eye, s.Lights)
	out.Color = lit.RGBA(in.Color.A * s.Material.Opacity())
}

func (gouraud) Fragment(s *State, f raster.Fragment) color.ARGB {
	return f.Color.Pack()
}

// phong lights every fragment with its interpolated normal.
type phong struct{ base }

func (phong) Fragment(s *State, f raster.Fragment) color.ARGB {
	diffuse := s.Material.Diffuse.Mul(f.Color.RGB())
	lit := lighting.Phong(s.Material, diffuse, f.Normal.Normalize(), f.Eye, s.Lights)
	return lit.RGBA(f.Color.A * s.Material.Opacity()).Pack()
}

// textured modulates the diffuse map with per-fragment lighting.
type textured struct{ base }

func (textured) Fragment(s *State, f raster.Fragment) color.ARGB {
	diffuse := s.Material.Diffuse
	alpha := f.Color.A * s.Material.Opacity()
	if tex := s.Material.Map(model.DiffuseMap); tex != nil {
		texel := model.Sample(tex, f.UV.X, f.UV.Y).RGBA()
		diffuse = diffuse.Mul(texel.RGB())
		alpha *= texel.A
	}
	lit := lighting.Phong(s.Material, diffuse, f.Normal.Normalize(), f.Eye, s.Lights)
	return lit.RGBA(alpha).Pack()
}
