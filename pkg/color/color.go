// Package color provides the color types used by the rasterizer: float RGB
// and RGBA working colors and the packed 0xAARRGGBB word stored in the color
// plane.
package color

import (
	"image/color"
	"math/rand/v2"
)

// ARGB is a packed 8-bit-per-channel color laid out as 0xAARRGGBB.
type ARGB uint32

// Common packed colors.
const (
	Black       ARGB = 0xFF000000
	White       ARGB = 0xFFFFFFFF
	Transparent ARGB = 0x00000000
)

// Pack builds a packed color from 8-bit channels.
func Pack(r, g, b, a uint8) ARGB {
	return ARGB(uint32(a)<<24 | uint32(r)<<16 | uint32(g)<<8 | uint32(b))
}

// Unpack splits a packed color into 8-bit channels.
func (c ARGB) Unpack() (r, g, b, a uint8) {
	return uint8(c >> 16), uint8(c >> 8), uint8(c), uint8(c >> 24)
}

// A returns the alpha channel.
func (c ARGB) A() uint8 { return uint8(c >> 24) }

// RGBA converts the packed color to a float color.
func (c ARGB) RGBA() RGBA {
	r, g, b, a := c.Unpack()
	return RGBA8(r, g, b, a)
}

// NRGBA converts to the standard library color type for image export.
func (c ARGB) NRGBA() color.NRGBA {
	r, g, b, a := c.Unpack()
	return color.NRGBA{R: r, G: g, B: b, A: a}
}

// FromColor packs any standard library color.
func FromColor(c color.Color) ARGB {
	n := color.NRGBAModel.Convert(c).(color.NRGBA)
	return Pack(n.R, n.G, n.B, n.A)
}

// Luma returns the perceptual luma (0..1) of the packed color.
func (c ARGB) Luma() float32 {
	return c.RGBA().Luma()
}

// RGBA is a float color with channels in 0..1.
type RGBA struct {
	R, G, B, A float32
}

// Predefined float colors.
var (
	ColorWhite = RGBA{1, 1, 1, 1}
	ColorBlack = RGBA{0, 0, 0, 1}
	ColorRed   = RGBA{1, 0, 0, 1}
	ColorGreen = RGBA{0, 1, 0, 1}
	ColorBlue  = RGBA{0, 0, 1, 1}
)

// RGBA8 creates a color from 8-bit RGBA values (0-255).
func RGBA8(r, g, b, a uint8) RGBA {
	return RGBA{
		R: float32(r) / 255,
		G: float32(g) / 255,
		B: float32(b) / 255,
		A: float32(a) / 255,
	}
}

// Pack clamps the channels and packs them.
func (c RGBA) Pack() ARGB {
	return Pack(to8(c.R), to8(c.G), to8(c.B), to8(c.A))
}

// RGB drops the alpha channel.
func (c RGBA) RGB() RGB {
	return RGB{c.R, c.G, c.B}
}

// WithAlpha returns a copy of the color with a different alpha value.
func (c RGBA) WithAlpha(a float32) RGBA {
	return RGBA{c.R, c.G, c.B, a}
}

// Lerp interpolates every channel between c and other.
func (c RGBA) Lerp(other RGBA, t float32) RGBA {
	return RGBA{
		R: c.R + (other.R-c.R)*t,
		G: c.G + (other.G-c.G)*t,
		B: c.B + (other.B-c.B)*t,
		A: c.A + (other.A-c.A)*t,
	}
}

// Scale multiplies the color channels by s, leaving alpha alone.
func (c RGBA) Scale(s float32) RGBA {
	return RGBA{c.R * s, c.G * s, c.B * s, c.A}
}

// Luma returns 0.299R + 0.587G + 0.114B.
func (c RGBA) Luma() float32 {
	return 0.299*c.R + 0.587*c.G + 0.114*c.B
}

// RGB is a float reflectance or light color with channels in 0..1.
type RGB struct {
	R, G, B float32
}

// Gray returns an RGB with all channels set to v.
func Gray(v float32) RGB {
	return RGB{v, v, v}
}

// Add returns c + other.
func (c RGB) Add(other RGB) RGB {
	return RGB{c.R + other.R, c.G + other.G, c.B + other.B}
}

// Mul multiplies channel-wise.
func (c RGB) Mul(other RGB) RGB {
	return RGB{c.R * other.R, c.G * other.G, c.B * other.B}
}

// Scale multiplies every channel by s.
func (c RGB) Scale(s float32) RGB {
	return RGB{c.R * s, c.G * s, c.B * s}
}

// Clamp limits every channel to 0..1.
func (c RGB) Clamp() RGB {
	return RGB{clamp01(c.R), clamp01(c.G), clamp01(c.B)}
}

// RGBA attaches an alpha channel.
func (c RGB) RGBA(a float32) RGBA {
	return RGBA{c.R, c.G, c.B, a}
}

// Random returns an opaque color drawn from rng. Callers own the source so
// renders stay reproducible.
func Random(rng *rand.Rand) RGBA {
	return RGBA{R: rng.Float32(), G: rng.Float32(), B: rng.Float32(), A: 1}
}

func clamp01(v float32) float32 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

func to8(v float32) uint8 {
	return uint8(clamp01(v)*255 + 0.5)
}
