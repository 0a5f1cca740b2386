package renderer

import (
	"math/rand/v2"

	"github.com/Faultbox/midgard-sr/internal/engine/lighting"
	"github.com/Faultbox/midgard-sr/internal/engine/model"
	"github.com/Faultbox/midgard-sr/internal/engine/scene"
	"github.com/Faultbox/midgard-sr/pkg/color"
	"github.com/Faultbox/midgard-sr/pkg/math"
)

// State is the pipeline state visible to the programs while one renderable
// is processed.
type State struct {
	View                math.Mat4
	Model               math.Mat4
	Normal              math.Mat4
	ModelView           math.Mat4
	Projection          math.Mat4
	ViewProjection      math.Mat4
	ModelViewProjection math.Mat4

	Material *model.Material
	// Lights are in view space.
	Lights []lighting.Light

	// Face is the index of the face being assembled and FaceNormal its
	// view-space normal.
	Face       int
	FaceNormal math.Vec3
	// FaceColor is the per-face color chosen by programs that need one.
	FaceColor color.RGBA

	Rand    *rand.Rand
	Options Options
}

// beginFrame loads the per-frame part of the state.
func (s *State) beginFrame(ctx *scene.Context, lights []lighting.Light) {
	s.View = math.Identity()
	if s.Options.ViewTransform {
		s.View = ctx.View()
	}
	s.Projection = math.Identity()
	if s.Options.ProjectionTransform {
		s.Projection = ctx.Projection()
	}
	s.ViewProjection = s.Projection.Mul(s.View)

	s.Lights = s.Lights[:0]
	for _, l := range lights {
		s.Lights = append(s.Lights, l.Transform(s.View))
	}
}

// bind loads the matrices and material of r.
func (s *State) bind(r *scene.Renderable) {
	s.Model = math.Identity()
	if s.Options.ModelTransform {
		s.Model = r.Transform
	}
	s.ModelView = s.View.Mul(s.Model)
	s.ModelViewProjection = s.Projection.Mul(s.ModelView)
	s.Normal = math.Identity()
	if s.Options.NormalTransform {
		s.Normal = s.ModelView.NormalMatrix()
	}
	s.Material = r.Material
}
