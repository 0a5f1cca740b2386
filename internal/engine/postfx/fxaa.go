// Package postfx implements screen-space passes over a framebuffer color
// plane.
package postfx

import (
	"github.com/chewxy/math32"

	"github.com/Faultbox/midgard-sr/pkg/color"
)

// FXAA is a single-pass luma based edge smoothing filter. Every pixel costs
// the same: there is no edge search.
type FXAA struct {
	SpanMax   float32 // longest blur direction in pixels
	ReduceMul float32
	ReduceMin float32
}

// NewFXAA returns a filter with the usual FXAA constants.
func NewFXAA() *FXAA {
	return &FXAA{
		SpanMax:   8,
		ReduceMul: 1.0 / 8.0,
		ReduceMin: 1.0 / 128.0,
	}
}

type rgb [3]float32

func luma(c rgb) float32 {
	return 0.299*c[0] + 0.587*c[1] + 0.114*c[2]
}

func (c rgb) add(o rgb) rgb     { return rgb{c[0] + o[0], c[1] + o[1], c[2] + o[2]} }
func (c rgb) scale(s float32) rgb { return rgb{c[0] * s, c[1] * s, c[2] * s} }

// plane is a read-only view of an ARGB color plane, row 0 at the bottom.
type plane struct {
	pix           []uint32
	width, height int
}

func (p plane) fetch(x, y int) rgb {
	x = min(max(x, 0), p.width-1)
	y = min(max(y, 0), p.height-1)
	r, g, b, _ := color.ARGB(p.pix[y*p.width+x]).Unpack()
	return rgb{float32(r) / 255, float32(g) / 255, float32(b) / 255}
}

// sample reads the plane bilinearly at pixel coordinates (x, y), where
// integer coordinates are pixel centers. Reads past the border clamp.
func (p plane) sample(x, y float32) rgb {
	fx, fy := math32.Floor(x), math32.Floor(y)
	tx, ty := x-fx, y-fy
	ix, iy := int(fx), int(fy)

	c00 := p.fetch(ix, iy)
	c10 := p.fetch(ix+1, iy)
	c01 := p.fetch(ix, iy+1)
	c11 := p.fetch(ix+1, iy+1)

	bottom := c00.scale(1 - tx).add(c10.scale(tx))
	top := c01.scale(1 - tx).add(c11.scale(tx))
	return bottom.scale(1 - ty).add(top.scale(ty))
}

// Apply implements framebuffer.Filter.
func (f *FXAA) Apply(dst, src []uint32, width, height int) {
	p := plane{pix: src, width: width, height: height}

	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			i := y*width + x
			c := f.pixel(p, x, y)
			alpha := color.ARGB(src[i]).A()
			dst[i] = uint32(color.RGBA{R: c[0], G: c[1], B: c[2]}.Pack()&0x00FFFFFF) | uint32(alpha)<<24
		}
	}
}

func (f *FXAA) pixel(p plane, x, y int) rgb {
	m := p.fetch(x, y)
	lumaNW := luma(p.fetch(x-1, y+1))
	lumaNE := luma(p.fetch(x+1, y+1))
	lumaSW := luma(p.fetch(x-1, y-1))
	lumaSE := luma(p.fetch(x+1, y-1))
	lumaM := luma(m)

	lumaMin := min(lumaM, lumaNW, lumaNE, lumaSW, lumaSE)
	lumaMax := max(lumaM, lumaNW, lumaNE, lumaSW, lumaSE)
	if lumaMax == lumaMin {
		return m
	}

	dirX := -((lumaNW + lumaNE) - (lumaSW + lumaSE))
	dirY := (lumaNW + lumaSW) - (lumaNE + lumaSE)

	dirReduce := max((lumaNW+lumaNE+lumaSW+lumaSE)*0.25*f.ReduceMul, f.ReduceMin)
	rcpDirMin := 1 / (min(math32.Abs(dirX), math32.Abs(dirY)) + dirReduce)

	dirX = clamp(dirX*rcpDirMin, -f.SpanMax, f.SpanMax)
	dirY = clamp(dirY*rcpDirMin, -f.SpanMax, f.SpanMax)

	px, py := float32(x), float32(y)
	tap := func(k float32) rgb {
		return p.sample(px+dirX*k, py+dirY*k)
	}

	rgbA := tap(1.0/3.0 - 0.5).add(tap(2.0/3.0 - 0.5)).scale(0.5)
	rgbB := rgbA.scale(0.5).add(tap(-0.5).add(tap(0.5)).scale(0.25))

	if lumaB := luma(rgbB); lumaB < lumaMin || lumaB > lumaMax {
		return rgbA
	}
	return rgbB
}

func clamp(v, lo, hi float32) float32 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
