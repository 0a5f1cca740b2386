// Package clip implements homogeneous frustum clipping and culling.
package clip

import (
	"github.com/Faultbox/midgard-sr/internal/engine/raster"
	"github.com/Faultbox/midgard-sr/pkg/math"
)

// Outcode bits, one per clip plane of -w <= x,y,z <= w.
const (
	Left uint8 = 1 << iota
	Right
	Bottom
	Top
	Near
	Far
)

// planes lists the clip planes in the order they are processed.
var planes = [6]uint8{Left, Right, Bottom, Top, Near, Far}

// Outcode classifies a clip-space position against the six planes.
func Outcode(p math.Vec4) uint8 {
	var code uint8
	if p.X < -p.W {
		code |= Left
	}
	if p.X > p.W {
		code |= Right
	}
	if p.Y < -p.W {
		code |= Bottom
	}
	if p.Y > p.W {
		code |= Top
	}
	if p.Z < -p.W {
		code |= Near
	}
	if p.Z > p.W {
		code |= Far
	}
	return code
}

// distance returns the signed distance of p to plane; inside is >= 0.
func distance(p math.Vec4, plane uint8) float32 {
	switch plane {
	case Left:
		return p.W + p.X
	case Right:
		return p.W - p.X
	case Bottom:
		return p.W + p.Y
	case Top:
		return p.W - p.Y
	case Near:
		return p.W + p.Z
	default:
		return p.W - p.Z
	}
}

// Triangles clips a triangle list (groups of three clip-space vertices)
// against the view volume and returns the surviving triangles, again as
// groups of three. Trailing vertices that do not form a triangle are dropped.
func Triangles(vs []raster.Vertex) []raster.Vertex {
	out := make([]raster.Vertex, 0, len(vs))
	var poly, next []raster.Vertex

	for i := 0; i+2 < len(vs); i += 3 {
		tri := vs[i : i+3]
		c0, c1, c2 := Outcode(tri[0].Position), Outcode(tri[1].Position), Outcode(tri[2].Position)

		if c0|c1|c2 == 0 {
			out = append(out, tri...)
			continue
		}
		if c0&c1&c2 != 0 {
			continue
		}

		poly = append(poly[:0], tri...)
		straddled := c0 | c1 | c2
		for _, plane := range planes {
			if straddled&plane == 0 {
				continue
			}
			next = clipPolygon(poly, plane, next[:0])
			poly, next = next, poly
			if len(poly) < 3 {
				break
			}
		}
		out = fan(out, poly)
	}
	return out
}

// clipPolygon runs one Sutherland-Hodgman pass of poly against plane,
// appending the result to dst.
func clipPolygon(poly []raster.Vertex, plane uint8, dst []raster.Vertex) []raster.Vertex {
	if len(poly) == 0 {
		return dst
	}
	prev := poly[len(poly)-1]
	prevDist := distance(prev.Position, plane)

	for _, cur := range poly {
		curDist := distance(cur.Position, plane)
		if (prevDist >= 0) != (curDist >= 0) {
			t := prevDist / (prevDist - curDist)
			dst = append(dst, prev.Lerp(cur, t))
		}
		if curDist >= 0 {
			dst = append(dst, cur)
		}
		prev, prevDist = cur, curDist
	}
	return dst
}

// fan triangulates a convex polygon around its first vertex.
func fan(dst, poly []raster.Vertex) []raster.Vertex {
	for i := 1; i+1 < len(poly); i++ {
		dst = append(dst, poly[0], poly[i], poly[i+1])
	}
	return dst
}

// OutsideFrustum reports whether every corner of a box lies outside the same
// clip plane once transformed by mvp, so the whole box can be skipped.
func OutsideFrustum(corners [8]math.Vec3, mvp math.Mat4) bool {
	all := uint8(0xFF)
	for _, c := range corners {
		all &= Outcode(mvp.MulVec4(c.Point()))
		if all == 0 {
			return false
		}
	}
	return all != 0
}
