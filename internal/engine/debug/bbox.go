// Package debug provides debug visualization utilities.
package debug

import (
	"github.com/Faultbox/midgard-sr/internal/engine/clip"
	"github.com/Faultbox/midgard-sr/internal/engine/framebuffer"
	"github.com/Faultbox/midgard-sr/internal/engine/model"
	"github.com/Faultbox/midgard-sr/internal/engine/raster"
	"github.com/Faultbox/midgard-sr/pkg/color"
	"github.com/Faultbox/midgard-sr/pkg/math"
)

// BoxEdges lists the 12 edges of a box as index pairs into
// model.Bounds.Corners.
var BoxEdges = [12][2]int{
	// Along X
	{0, 1}, {2, 3}, {4, 5}, {6, 7},
	// Along Y
	{0, 2}, {1, 3}, {4, 6}, {5, 7},
	// Along Z
	{0, 4}, {1, 5}, {2, 6}, {3, 7},
}

// DefaultBoxPadding is the default padding for selection boxes.
const DefaultBoxPadding = 0.02

// Pad expands b by padding on all sides, fixing inverted axes first.
func Pad(b model.Bounds, padding float32) model.Bounds {
	lo := math.Vec3{X: min(b.Min.X, b.Max.X), Y: min(b.Min.Y, b.Max.Y), Z: min(b.Min.Z, b.Max.Z)}
	hi := math.Vec3{X: max(b.Min.X, b.Max.X), Y: max(b.Min.Y, b.Max.Y), Z: max(b.Min.Z, b.Max.Z)}
	p := math.Vec3{X: padding, Y: padding, Z: padding}
	return model.Bounds{Min: lo.Sub(p), Max: hi.Add(p)}
}

// DrawBounds draws the wireframe of box b, transformed by mvp, into fb.
// Edges with an endpoint outside the view volume are skipped. Pixels are
// depth tested against the scene. The caller holds the frame lock.
func DrawBounds(fb *framebuffer.Framebuffer, vp raster.Viewport, b model.Bounds, mvp math.Mat4, c color.ARGB) int {
	w, h := fb.Size()
	corners := b.Corners()

	var screen [8]raster.Fragment
	var visible [8]bool
	for i, p := range corners {
		v := mvp.MulVec4(p.Point())
		if clip.Outcode(v) != 0 {
			continue
		}
		ndc, ok := v.Divide()
		if !ok {
			continue
		}
		screen[i] = vp.ToScreen(raster.Vertex{Position: ndc}, w, h)
		visible[i] = true
	}

	drawn := 0
	bounds := vp.Pixels(w, h)
	for _, e := range BoxEdges {
		if !visible[e[0]] || !visible[e[1]] {
			continue
		}
		raster.DrawLine(screen[e[0]], screen[e[1]], bounds, func(f raster.Fragment) {
			fb.SetPixel(int(f.X), int(f.Y), f.Z, c)
		})
		drawn++
	}
	return drawn
}
