package model

import "github.com/Faultbox/midgard-sr/pkg/color"

// MapKind identifies one of the optional texture maps of a Material.
type MapKind int

// Texture map slots.
const (
	AmbientMap MapKind = iota
	DiffuseMap
	SpecularMap
	BumpMap
	NormalMap
	DisplacementMap
	mapCount
)

// String returns the map slot name.
func (k MapKind) String() string {
	switch k {
	case AmbientMap:
		return "ambient"
	case DiffuseMap:
		return "diffuse"
	case SpecularMap:
		return "specular"
	case BumpMap:
		return "bump"
	case NormalMap:
		return "normal"
	case DisplacementMap:
		return "displacement"
	default:
		return "unknown"
	}
}

// Material describes the surface reflectance of a model. Texture maps are
// handles to externally owned assets.
type Material struct {
	Name         string
	Shininess    float32
	Transparency float32
	Ambient      color.RGB
	Diffuse      color.RGB
	Specular     color.RGB

	maps [mapCount]Texture
}

// DefaultMaterial returns a plain white material.
func DefaultMaterial() *Material {
	return &Material{
		Name:      "default",
		Shininess: 32,
		Ambient:   color.Gray(0.2),
		Diffuse:   color.Gray(1),
		Specular:  color.Gray(0.5),
	}
}

// Map returns the texture bound to slot k, or nil.
func (m *Material) Map(k MapKind) Texture {
	if k < 0 || k >= mapCount {
		return nil
	}
	return m.maps[k]
}

// SetMap binds a texture to slot k. Passing nil clears the slot.
func (m *Material) SetMap(k MapKind, t Texture) {
	if k < 0 || k >= mapCount {
		return
	}
	m.maps[k] = t
}

// Opacity returns 1 - Transparency clamped to 0..1.
func (m *Material) Opacity() float32 {
	o := 1 - m.Transparency
	if o < 0 {
		return 0
	}
	if o > 1 {
		return 1
	}
	return o
}
