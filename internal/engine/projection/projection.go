// Package projection builds projection matrices from a viewing frustum.
package projection

import (
	"fmt"

	"github.com/chewxy/math32"

	"github.com/Faultbox/midgard-sr/pkg/math"
)

// Plane distance limits applied to every frustum.
const (
	MinPlane float32 = 1
	MaxPlane float32 = 1000
)

// Frustum describes the viewing volume.
type Frustum struct {
	FovY   float32 // vertical field of view in radians
	Aspect float32 // width / height
	Near   float32
	Far    float32
}

// DefaultFrustum returns a 60 degree frustum for the given aspect ratio.
func DefaultFrustum(aspect float32) Frustum {
	return Frustum{FovY: math.Radians(60), Aspect: aspect, Near: 1, Far: 100}
}

// Clamped returns the frustum with near and far limited to [MinPlane, MaxPlane]
// and far kept strictly behind near.
func (f Frustum) Clamped() Frustum {
	f.Near = math.Clamp(f.Near, MinPlane, MaxPlane)
	f.Far = math.Clamp(f.Far, MinPlane, MaxPlane)
	if f.Far <= f.Near {
		if f.Near >= MaxPlane {
			f.Near = MaxPlane - 1
			f.Far = MaxPlane
		} else {
			f.Far = f.Near + 1
		}
	}
	if f.Aspect <= 0 {
		f.Aspect = 1
	}
	return f
}

// NearExtent returns the half width and half height of the near plane.
func (f Frustum) NearExtent() (halfW, halfH float32) {
	halfH = f.Near * math32.Tan(f.FovY/2)
	return halfH * f.Aspect, halfH
}

// Projection converts a frustum into a projection matrix.
type Projection interface {
	Matrix(f Frustum) math.Mat4
}

// Perspective is the symmetric perspective projection.
type Perspective struct{}

// Matrix implements Projection.
func (Perspective) Matrix(f Frustum) math.Mat4 {
	f = f.Clamped()
	return math.Perspective(f.FovY, f.Aspect, f.Near, f.Far)
}

// phi is the receding axis angle shared by the oblique projections.
var phi = math.Radians(45)

// Oblique is a parallel projection that shears depth into the image plane.
// L scales the receding axis and Alpha is the angle between the projector
// and the image plane.
type Oblique struct {
	L     float32
	Alpha float32 // radians

	// Span is the half height of the view box. Zero uses the frustum's near
	// plane extent.
	Span float32
}

// Cavalier returns the oblique projection with full-length receding lines.
func Cavalier() Oblique {
	return Oblique{L: 1, Alpha: math.Radians(45)}
}

// Cabinet returns the oblique projection with half-length receding lines.
func Cabinet() Oblique {
	return Oblique{L: 1, Alpha: math.Radians(63.4)}
}

// Shear returns the x and y shear applied per unit of depth.
func (o Oblique) Shear() (sx, sy float32) {
	t := math32.Tan(o.Alpha)
	sin, cos := math32.Sincos(phi)
	return o.L * cos / t, o.L * sin / t
}

// Matrix implements Projection.
func (o Oblique) Matrix(f Frustum) math.Mat4 {
	f = f.Clamped()
	halfW, halfH := f.NearExtent()
	if o.Span > 0 {
		halfW, halfH = o.Span*f.Aspect, o.Span
	}

	sx, sy := o.Shear()
	shear := math.Identity()
	shear[8] = sx
	shear[9] = sy

	return math.Ortho(-halfW, halfW, -halfH, halfH, f.Near, f.Far).Mul(shear)
}

// Kind selects a projection strategy.
type Kind int

const (
	KindPerspective Kind = iota
	KindCabinet
	KindCavalier
)

var kindNames = map[Kind]string{
	KindPerspective: "perspective",
	KindCabinet:     "cabinet",
	KindCavalier:    "cavalier",
}

func (k Kind) String() string {
	if s, ok := kindNames[k]; ok {
		return s
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// ParseKind maps a configuration name to a Kind.
func ParseKind(s string) (Kind, error) {
	for k, name := range kindNames {
		if name == s {
			return k, nil
		}
	}
	return KindPerspective, fmt.Errorf("unknown projection %q", s)
}

// ForKind returns the strategy registered for k, falling back to perspective.
func ForKind(k Kind) Projection {
	switch k {
	case KindCabinet:
		return Cabinet()
	case KindCavalier:
		return Cavalier()
	default:
		return Perspective{}
	}
}
