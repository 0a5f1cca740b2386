package postfx

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Faultbox/midgard-sr/internal/engine/framebuffer"
	"github.com/Faultbox/midgard-sr/pkg/color"
)

var _ framebuffer.Filter = (*FXAA)(nil)

func TestFXAAUniformUnchanged(t *testing.T) {
	const w, h = 6, 5
	src := make([]uint32, w*h)
	for i := range src {
		src[i] = uint32(color.Pack(40, 120, 200, 255))
	}
	dst := make([]uint32, w*h)

	NewFXAA().Apply(dst, src, w, h)
	assert.Equal(t, src, dst)
}

// diagonal returns an image that is white where x > y and black elsewhere.
func diagonal(w, h int) []uint32 {
	src := make([]uint32, w*h)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			if x > y {
				src[y*w+x] = uint32(color.White)
			} else {
				src[y*w+x] = uint32(color.Black)
			}
		}
	}
	return src
}

func TestFXAASmoothsDiagonalEdge(t *testing.T) {
	const w, h = 8, 8
	src := diagonal(w, h)
	dst := make([]uint32, w*h)
	NewFXAA().Apply(dst, src, w, h)

	r, _, _, a := color.ARGB(dst[2*w+2]).Unpack()
	assert.Greater(t, r, uint8(10), "edge pixel should pick up the white side")
	assert.Less(t, r, uint8(245))
	assert.Equal(t, uint8(255), a)

	// Far from the edge nothing changes.
	assert.Equal(t, src[7*w+0], dst[7*w+0])
	assert.Equal(t, src[0*w+7], dst[0*w+7])
}

func TestFXAAKeepsAlpha(t *testing.T) {
	const w, h = 4, 4
	src := diagonal(w, h)
	src[0] = uint32(color.Pack(0, 0, 0, 10))
	dst := make([]uint32, w*h)
	NewFXAA().Apply(dst, src, w, h)
	assert.Equal(t, uint8(10), color.ARGB(dst[0]).A())
}

func TestFXAAWithFramebuffer(t *testing.T) {
	fb := framebuffer.New(8, 8)
	copy(fb.Color(), diagonal(8, 8))
	fb.SetFilter(NewFXAA())
	fb.SetAntialiasing(true)
	fb.PostProcess()

	r, _, _, _ := fb.At(2, 2).Unpack()
	assert.NotZero(t, r)
}
