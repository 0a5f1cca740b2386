// Package lighting provides light emitters and the reflection model used by
// the shading programs.
package lighting

import (
	"github.com/Faultbox/midgard-sr/pkg/color"
	"github.com/Faultbox/midgard-sr/pkg/math"
)

// Kind identifies a light emitter type.
type Kind int

const (
	KindAmbient Kind = iota
	KindDirectional
	KindPoint
)

func (k Kind) String() string {
	switch k {
	case KindAmbient:
		return "ambient"
	case KindDirectional:
		return "directional"
	case KindPoint:
		return "point"
	default:
		return "unknown"
	}
}

// Light is a single emitter.
type Light struct {
	Kind      Kind
	Color     color.RGB // RGB color (0-1 range)
	Intensity float32

	// Direction points from the surface towards a directional light.
	Direction math.Vec3
	// Position and Range describe a point light.
	Position math.Vec3
	Range    float32
}

// Ambient returns a light that reaches every surface equally.
func Ambient(c color.RGB, intensity float32) Light {
	return Light{Kind: KindAmbient, Color: c, Intensity: intensity}
}

// Directional returns a light infinitely far away in direction dir.
func Directional(dir math.Vec3, c color.RGB, intensity float32) Light {
	return Light{Kind: KindDirectional, Direction: dir.Normalize(), Color: c, Intensity: intensity}
}

// Point returns a light at pos whose contribution fades to zero at rng.
func Point(pos math.Vec3, c color.RGB, rng float32) Light {
	if rng <= 0 {
		rng = 100 // Default range
	}
	return Light{Kind: KindPoint, Position: pos, Color: c.Clamp(), Intensity: 1, Range: rng}
}

// Transform returns the light expressed in the space of m, usually the view
// matrix.
func (l Light) Transform(m math.Mat4) Light {
	switch l.Kind {
	case KindDirectional:
		l.Direction = m.TransformDirection(l.Direction).Normalize()
	case KindPoint:
		l.Position = m.TransformPoint(l.Position)
	}
	return l
}

// Incident returns the unit vector from p towards the light and the
// attenuation at p. Ambient lights return a zero vector.
func (l Light) Incident(p math.Vec3) (math.Vec3, float32) {
	switch l.Kind {
	case KindDirectional:
		return l.Direction, l.Intensity
	case KindPoint:
		toLight := l.Position.Sub(p)
		d := toLight.Length()
		if d >= l.Range {
			return math.Vec3{}, 0
		}
		falloff := 1 - d/l.Range
		return toLight.Normalize(), l.Intensity * falloff * falloff
	default:
		return math.Vec3{}, l.Intensity
	}
}
