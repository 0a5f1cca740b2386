package math

import (
	"math"
	"testing"
)

func TestQuatIdentity(t *testing.T) {
	q := QuatIdentity()
	if q.X != 0 || q.Y != 0 || q.Z != 0 || q.W != 1 {
		t.Errorf("Identity quaternion should be (0,0,0,1), got (%v,%v,%v,%v)", q.X, q.Y, q.Z, q.W)
	}
	if q.ToMat4() != Identity() {
		t.Error("identity quaternion should produce identity matrix")
	}
}

func TestQuatNormalize(t *testing.T) {
	n := Quat{X: 1, Y: 2, Z: 3, W: 4}.Normalize()

	length := math.Sqrt(float64(n.X*n.X + n.Y*n.Y + n.Z*n.Z + n.W*n.W))
	if math.Abs(length-1.0) > 0.0001 {
		t.Errorf("Normalized quaternion length should be 1, got %v", length)
	}
}

func TestQuatSlerp(t *testing.T) {
	q1 := QuatIdentity()
	q2 := QuatFromAxisAngle(Vec3{Y: 1}, float32(math.Pi/2))

	if r := q1.Slerp(q2, 0); math.Abs(float64(r.W-q1.W)) > 0.001 {
		t.Errorf("Slerp at t=0 should equal q1")
	}
	if r := q1.Slerp(q2, 1); math.Abs(float64(r.W-q2.W)) > 0.001 {
		t.Errorf("Slerp at t=1 should equal q2")
	}

	// Halfway through a 90 degree turn is 45 degrees.
	r := q1.Slerp(q2, 0.5)
	expectedW := float32(math.Cos(math.Pi / 8))
	if math.Abs(float64(r.W-expectedW)) > 0.01 {
		t.Errorf("Slerp at t=0.5: expected W ~%v, got %v", expectedW, r.W)
	}
}

func TestQuatMatchesRotateAxis(t *testing.T) {
	axis := Vec3{1, 2, 3}.Normalize()
	q := QuatFromAxisAngle(axis, 1.1)
	if !q.ToMat4().ApproxEqual(RotateAxis(axis, 1.1), 1e-5) {
		t.Errorf("quaternion matrix %v differs from axis rotation %v", q.ToMat4(), RotateAxis(axis, 1.1))
	}
}

func TestQuatRotate(t *testing.T) {
	q := QuatFromEuler(float32(math.Pi/2), 0, 0)
	got := q.Rotate(Vec3{X: 1})
	if abs(got.X) > 1e-5 || abs(got.Z+1) > 1e-5 {
		t.Errorf("yaw 90 should map +X to -Z, got %v", got)
	}
}
