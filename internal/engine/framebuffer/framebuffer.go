// Package framebuffer provides a CPU render target with color, depth,
// stencil and accumulation planes.
package framebuffer

import (
	"image"
	"sync"

	"github.com/chewxy/math32"

	"github.com/Faultbox/midgard-sr/internal/engine/raster"
	"github.com/Faultbox/midgard-sr/pkg/color"
)

// Filter is a post-process pass over the color plane. src is a copy of the
// plane; results go to dst. Both are width*height ARGB, row 0 at the bottom.
type Filter interface {
	Apply(dst, src []uint32, width, height int)
}

// Framebuffer holds the four pixel planes and the per-fragment test state.
//
// Writes are not synchronized. The producer brackets a frame with
// BeginFrame and EndFrame; Snapshot and RGBA take the same lock, so readers
// never observe a partially rendered frame.
type Framebuffer struct {
	mu sync.Mutex

	width  int
	height int

	color   []uint32
	depth   []float32
	stencil []uint8
	accum   []uint32

	clearColor   color.ARGB
	clearDepth   float32
	clearStencil uint8
	clearAccum   color.ARGB

	Tests   Tests
	scissor raster.Rect

	filter    Filter
	antialias bool
	scratch   []uint32
}

// New creates a framebuffer with the specified dimensions, cleared to the
// default clear values.
func New(width, height int) *Framebuffer {
	fb := &Framebuffer{
		clearColor:   color.Black,
		clearDepth:   math32.Inf(1),
		clearStencil: 0xFF,
		clearAccum:   color.Black,
		Tests:        DefaultTests(),
	}
	fb.allocate(width, height)
	return fb
}

func (fb *Framebuffer) allocate(width, height int) {
	if width < 1 {
		width = 1
	}
	if height < 1 {
		height = 1
	}
	n := width * height
	fb.width = width
	fb.height = height
	fb.color = make([]uint32, n)
	fb.depth = make([]float32, n)
	fb.stencil = make([]uint8, n)
	fb.accum = make([]uint32, n)
	fb.scratch = nil
	fb.scissor = raster.Rect{MaxX: width, MaxY: height}
	fb.Clear()
}

// Resize changes the dimensions, reallocating and clearing only when they
// differ. It takes the frame lock and must not be called inside a frame.
func (fb *Framebuffer) Resize(width, height int) {
	fb.mu.Lock()
	defer fb.mu.Unlock()

	if width == fb.width && height == fb.height {
		return
	}
	fb.allocate(width, height)
}

// Clear fills every plane with its clear value.
func (fb *Framebuffer) Clear() {
	c, a := uint32(fb.clearColor), uint32(fb.clearAccum)
	for i := range fb.color {
		fb.color[i] = c
		fb.depth[i] = fb.clearDepth
		fb.stencil[i] = fb.clearStencil
		fb.accum[i] = a
	}
}

// SetClearColor sets the color plane clear value.
func (fb *Framebuffer) SetClearColor(c color.ARGB) { fb.clearColor = c }

// SetClearDepth sets the depth plane clear value.
func (fb *Framebuffer) SetClearDepth(z float32) { fb.clearDepth = z }

// SetClearStencil sets the stencil plane clear value.
func (fb *Framebuffer) SetClearStencil(s uint8) { fb.clearStencil = s }

// SetClearAccum sets the accumulation plane clear value.
func (fb *Framebuffer) SetClearAccum(c color.ARGB) { fb.clearAccum = c }

// ClearColor returns the color plane clear value.
func (fb *Framebuffer) ClearColor() color.ARGB { return fb.clearColor }

// Offset returns the plane index of the pixel nearest to (x, y), or -1 when
// it lies outside the framebuffer.
func (fb *Framebuffer) Offset(x, y float32) int {
	px := int(math32.Floor(x + 0.5))
	py := int(math32.Floor(y + 0.5))
	if px < 0 || py < 0 || px >= fb.width || py >= fb.height {
		return -1
	}
	return py*fb.width + px
}

// Write runs the fragment tests for f and commits c on success.
// Tests run in order scissor, alpha, stencil, depth. A committed fragment
// updates color, depth and stencil and resets the accumulation cell.
func (fb *Framebuffer) Write(f raster.Fragment, c color.ARGB) bool {
	off := fb.Offset(f.X, f.Y)
	if off < 0 {
		return false
	}
	t := &fb.Tests

	if t.Scissor {
		x, y := off%fb.width, off/fb.width
		if !fb.scissor.Contains(x, y) {
			return false
		}
	}
	if t.Alpha && c.A() < t.AlphaRef {
		return false
	}
	if t.Stencil && !t.StencilFunc.Compare(f.Stencil, fb.stencil[off]) {
		return false
	}
	if t.Depth && !(f.Z < fb.depth[off]) {
		return false
	}

	fb.color[off] = uint32(c)
	fb.depth[off] = f.Z
	fb.stencil[off] = f.Stencil
	fb.accum[off] = uint32(fb.clearAccum)
	return true
}

// Discard resets one cell of every plane to its clear value.
func (fb *Framebuffer) Discard(offset int) {
	if offset < 0 || offset >= len(fb.color) {
		return
	}
	fb.color[offset] = uint32(fb.clearColor)
	fb.depth[offset] = fb.clearDepth
	fb.stencil[offset] = fb.clearStencil
	fb.accum[offset] = uint32(fb.clearAccum)
}

// SetPixel writes a pixel bypassing the fragment tests, keeping it only when
// z is nearer than the stored depth. Out-of-bounds pixels are ignored.
func (fb *Framebuffer) SetPixel(x, y int, z float32, c color.ARGB) {
	if x < 0 || y < 0 || x >= fb.width || y >= fb.height {
		return
	}
	off := y*fb.width + x
	if z >= fb.depth[off] {
		return
	}
	fb.color[off] = uint32(c)
	fb.depth[off] = z
}

// SetScissor sets the scissor rectangle [left, left+width) x
// [bottom, bottom+height). It only applies while Tests.Scissor is set.
func (fb *Framebuffer) SetScissor(left, bottom, width, height int) {
	fb.scissor = raster.Rect{MinX: left, MinY: bottom, MaxX: left + width, MaxY: bottom + height}
}

// Scissor returns the scissor rectangle.
func (fb *Framebuffer) Scissor() raster.Rect { return fb.scissor }

// Bounds returns the pixel rectangle fragments can land in, narrowed to the
// scissor rectangle when the scissor test is enabled.
func (fb *Framebuffer) Bounds() raster.Rect {
	r := raster.Rect{MaxX: fb.width, MaxY: fb.height}
	if fb.Tests.Scissor {
		r.MinX = max(r.MinX, fb.scissor.MinX)
		r.MinY = max(r.MinY, fb.scissor.MinY)
		r.MaxX = min(r.MaxX, fb.scissor.MaxX)
		r.MaxY = min(r.MaxY, fb.scissor.MaxY)
	}
	return r
}

// SetFilter installs the post-process filter.
func (fb *Framebuffer) SetFilter(f Filter) { fb.filter = f }

// SetAntialiasing enables or disables the post-process pass.
func (fb *Framebuffer) SetAntialiasing(on bool) { fb.antialias = on }

// PostProcess runs the filter over the color plane when antialiasing is
// enabled and a filter is installed.
func (fb *Framebuffer) PostProcess() {
	if !fb.antialias || fb.filter == nil {
		return
	}
	if len(fb.scratch) != len(fb.color) {
		fb.scratch = make([]uint32, len(fb.color))
	}
	copy(fb.scratch, fb.color)
	fb.filter.Apply(fb.color, fb.scratch, fb.width, fb.height)
}

// BeginFrame takes the frame lock.
func (fb *Framebuffer) BeginFrame() { fb.mu.Lock() }

// EndFrame releases the frame lock.
func (fb *Framebuffer) EndFrame() { fb.mu.Unlock() }

// Snapshot copies the color plane into dst under the frame lock, growing dst
// when needed, and returns it with the dimensions.
func (fb *Framebuffer) Snapshot(dst []uint32) ([]uint32, int, int) {
	fb.mu.Lock()
	defer fb.mu.Unlock()

	if cap(dst) < len(fb.color) {
		dst = make([]uint32, len(fb.color))
	}
	dst = dst[:len(fb.color)]
	copy(dst, fb.color)
	return dst, fb.width, fb.height
}

// RGBA returns the color plane as a top-down image under the frame lock.
func (fb *Framebuffer) RGBA() *image.RGBA {
	fb.mu.Lock()
	defer fb.mu.Unlock()

	img := image.NewRGBA(image.Rect(0, 0, fb.width, fb.height))
	for y := 0; y < fb.height; y++ {
		row := fb.color[(fb.height-1-y)*fb.width:]
		for x := 0; x < fb.width; x++ {
			r, g, b, a := color.ARGB(row[x]).Unpack()
			i := img.PixOffset(x, y)
			img.Pix[i+0] = r
			img.Pix[i+1] = g
			img.Pix[i+2] = b
			img.Pix[i+3] = a
		}
	}
	return img
}

// Size returns the framebuffer dimensions.
func (fb *Framebuffer) Size() (width, height int) {
	return fb.width, fb.height
}

// Color returns the color plane. Row 0 is the bottom of the image.
func (fb *Framebuffer) Color() []uint32 { return fb.color }

// Depth returns the depth plane.
func (fb *Framebuffer) Depth() []float32 { return fb.depth }

// Stencil returns the stencil plane.
func (fb *Framebuffer) Stencil() []uint8 { return fb.stencil }

// Accum returns the accumulation plane.
func (fb *Framebuffer) Accum() []uint32 { return fb.accum }

// At returns the color at pixel (x, y), or the clear color when out of bounds.
func (fb *Framebuffer) At(x, y int) color.ARGB {
	if x < 0 || y < 0 || x >= fb.width || y >= fb.height {
		return fb.clearColor
	}
	return color.ARGB(fb.color[y*fb.width+x])
}

// DepthAt returns the depth at pixel (x, y), or the clear depth when out of
// bounds.
func (fb *Framebuffer) DepthAt(x, y int) float32 {
	if x < 0 || y < 0 || x >= fb.width || y >= fb.height {
		return fb.clearDepth
	}
	return fb.depth[y*fb.width+x]
}
