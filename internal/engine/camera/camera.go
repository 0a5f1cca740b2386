// Package camera provides the viewer that feeds VIEW and the viewpoint to a
// render context.
package camera

import (
	"github.com/chewxy/math32"

	"github.com/Faultbox/midgard-sr/internal/engine/model"
	"github.com/Faultbox/midgard-sr/internal/engine/scene"
	"github.com/Faultbox/midgard-sr/pkg/math"
)

// OrbitCamera orbits around a center point.
type OrbitCamera struct {
	Center math.Vec3

	// Spherical coordinates
	Distance float32
	Pitch    float32 // vertical angle, radians
	Yaw      float32 // horizontal angle, radians

	// Constraints
	MinDistance float32
	MaxDistance float32
	MinPitch    float32
	MaxPitch    float32

	// Sensitivity
	DragSensitivity float32
	ZoomSensitivity float32

	// Spin is an automatic yaw rate in radians per second.
	Spin float32
}

// NewOrbitCamera creates a new orbit camera with default settings.
func NewOrbitCamera() *OrbitCamera {
	return &OrbitCamera{
		Distance:        4,
		Pitch:           0.5,
		MinDistance:     1.5,
		MaxDistance:     500,
		MinPitch:        -1.5,
		MaxPitch:        1.5,
		DragSensitivity: 0.005,
		ZoomSensitivity: 0.1,
	}
}

// Position returns the camera position in world space.
func (c *OrbitCamera) Position() math.Vec3 {
	pitchSin, pitchCos := math32.Sincos(c.Pitch)
	yawSin, yawCos := math32.Sincos(c.Yaw)

	return c.Center.Add(math.Vec3{
		X: c.Distance * pitchCos * yawSin,
		Y: c.Distance * pitchSin,
		Z: c.Distance * pitchCos * yawCos,
	})
}

// ViewMatrix returns the view matrix for this camera.
func (c *OrbitCamera) ViewMatrix() math.Mat4 {
	return math.LookAt(c.Position(), c.Center, math.Vec3{Y: 1})
}

// Apply sets the context's view from the camera.
func (c *OrbitCamera) Apply(ctx *scene.Context) {
	ctx.SetView(c.ViewMatrix(), c.Position())
}

// Update advances the automatic spin by dt seconds.
func (c *OrbitCamera) Update(dt float32) {
	if c.Spin == 0 {
		return
	}
	c.Yaw = math32.Mod(c.Yaw+c.Spin*dt, 2*math32.Pi)
}

// HandleDrag updates rotation based on mouse drag delta.
func (c *OrbitCamera) HandleDrag(deltaX, deltaY float32) {
	c.Yaw -= deltaX * c.DragSensitivity
	c.Pitch = math.Clamp(c.Pitch+deltaY*c.DragSensitivity, c.MinPitch, c.MaxPitch)
}

// HandleZoom updates distance based on scroll wheel delta.
func (c *OrbitCamera) HandleZoom(delta float32) {
	c.Distance = math.Clamp(c.Distance-delta*c.Distance*c.ZoomSensitivity, c.MinDistance, c.MaxDistance)
}

// HandleMovement pans the center point relative to the current yaw.
func (c *OrbitCamera) HandleMovement(forward, right, up float32) {
	// Speed scales with distance for consistent feel
	speed := c.Distance * 0.01
	yawSin, yawCos := math32.Sincos(c.Yaw)

	c.Center.X += (-yawSin*forward + yawCos*right) * speed
	c.Center.Z += (-yawCos*forward - yawSin*right) * speed
	c.Center.Y += up * speed
}

// FitToBounds centers the camera on b and backs off until the bounding
// sphere fits a vertical field of view of fovY radians.
func (c *OrbitCamera) FitToBounds(b model.Bounds, fovY float32) {
	c.Center = b.Center()
	radius := b.Max.Sub(b.Min).Length() / 2
	c.Distance = math.Clamp(radius/math32.Sin(fovY/2), c.MinDistance, c.MaxDistance)
}
