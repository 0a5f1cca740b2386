package math

import "github.com/chewxy/math32"

// Vec4 is a homogeneous 4-component vector.
type Vec4 struct {
	X, Y, Z, W float32
}

// Point returns a homogeneous point with w = 1.
func Point(x, y, z float32) Vec4 {
	return Vec4{x, y, z, 1}
}

// Add returns v + other.
func (v Vec4) Add(other Vec4) Vec4 {
	return Vec4{v.X + other.X, v.Y + other.Y, v.Z + other.Z, v.W + other.W}
}

// Sub returns v - other.
func (v Vec4) Sub(other Vec4) Vec4 {
	return Vec4{v.X - other.X, v.Y - other.Y, v.Z - other.Z, v.W - other.W}
}

// Scale returns v * s.
func (v Vec4) Scale(s float32) Vec4 {
	return Vec4{v.X * s, v.Y * s, v.Z * s, v.W * s}
}

// Lerp interpolates all four components.
func (v Vec4) Lerp(other Vec4, t float32) Vec4 {
	return Vec4{
		Lerp(v.X, other.X, t),
		Lerp(v.Y, other.Y, t),
		Lerp(v.Z, other.Z, t),
		Lerp(v.W, other.W, t),
	}
}

// XYZ drops the w component.
func (v Vec4) XYZ() Vec3 {
	return Vec3{v.X, v.Y, v.Z}
}

// Divide performs the perspective divide. It reports false when w is zero
// or the result is not finite, in which case the vertex has no usable affine
// image and must be discarded.
func (v Vec4) Divide() (Vec4, bool) {
	if v.W == 0 {
		return v, false
	}
	inv := 1 / v.W
	d := Vec4{v.X * inv, v.Y * inv, v.Z * inv, 1}
	if !Finite(d.X) || !Finite(d.Y) || !Finite(d.Z) {
		return v, false
	}
	return d, true
}

// Finite reports whether f is neither NaN nor an infinity.
func Finite(f float32) bool {
	return !math32.IsNaN(f) && !math32.IsInf(f, 0)
}
