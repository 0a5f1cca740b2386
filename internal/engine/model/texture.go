package model

import (
	"image"

	"github.com/chewxy/math32"

	"github.com/Faultbox/midgard-sr/pkg/color"
)

// Texture is an externally owned image sampled by the renderer.
type Texture interface {
	Size() (width, height int)
	At(x, y int) color.ARGB
}

// Sample performs a nearest-neighbor lookup with repeat wrapping.
// v = 0 is the bottom row of the texture.
func Sample(t Texture, u, v float32) color.ARGB {
	w, h := t.Size()
	if w <= 0 || h <= 0 {
		return color.Transparent
	}
	u -= math32.Floor(u)
	v -= math32.Floor(v)
	x := int(u * float32(w))
	y := int((1 - v) * float32(h))
	return t.At(clampIndex(x, w), clampIndex(y, h))
}

func clampIndex(i, n int) int {
	if i < 0 {
		return 0
	}
	if i >= n {
		return n - 1
	}
	return i
}

// ImageTexture adapts an image.Image decoded by an asset loader.
type ImageTexture struct {
	img    image.Image
	bounds image.Rectangle
}

// NewImageTexture wraps img.
func NewImageTexture(img image.Image) *ImageTexture {
	return &ImageTexture{img: img, bounds: img.Bounds()}
}

// Size returns the image dimensions.
func (t *ImageTexture) Size() (int, int) {
	return t.bounds.Dx(), t.bounds.Dy()
}

// At returns the packed texel at x, y relative to the image origin.
func (t *ImageTexture) At(x, y int) color.ARGB {
	return color.FromColor(t.img.At(t.bounds.Min.X+x, t.bounds.Min.Y+y))
}

// Checker is a procedural two-color checkerboard texture.
type Checker struct {
	Cells  int
	Texels int
	A, B   color.ARGB
}

// NewChecker returns a checkerboard of cells x cells squares.
func NewChecker(cells int, a, b color.ARGB) *Checker {
	if cells < 1 {
		cells = 1
	}
	return &Checker{Cells: cells, Texels: cells * 8, A: a, B: b}
}

// Size returns the texel dimensions.
func (c *Checker) Size() (int, int) { return c.Texels, c.Texels }

// At returns the texel color.
func (c *Checker) At(x, y int) color.ARGB {
	cell := c.Texels / c.Cells
	if ((x/cell)+(y/cell))%2 == 0 {
		return c.A
	}
	return c.B
}
