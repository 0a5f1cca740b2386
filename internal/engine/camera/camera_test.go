package camera

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Faultbox/midgard-sr/internal/engine/model"
	"github.com/Faultbox/midgard-sr/internal/engine/scene"
	"github.com/Faultbox/midgard-sr/pkg/math"
)

func TestPosition(t *testing.T) {
	c := NewOrbitCamera()
	c.Pitch = 0
	c.Yaw = 0
	c.Distance = 5

	p := c.Position()
	assert.InDelta(t, 0, p.X, 1e-5)
	assert.InDelta(t, 0, p.Y, 1e-5)
	assert.InDelta(t, 5, p.Z, 1e-5)
}

func TestViewMapsCenterInFront(t *testing.T) {
	c := NewOrbitCamera()
	c.Center = math.Vec3{X: 1, Y: 2, Z: 3}
	c.Yaw = 0.7

	v := c.ViewMatrix().TransformPoint(c.Center)
	assert.InDelta(t, 0, v.X, 1e-4)
	assert.InDelta(t, 0, v.Y, 1e-4)
	assert.InDelta(t, -c.Distance, v.Z, 1e-4)
}

func TestApply(t *testing.T) {
	c := NewOrbitCamera()
	ctx := scene.NewContext()
	c.Apply(ctx)
	assert.Equal(t, c.Position(), ctx.Viewpoint())
	assert.Equal(t, c.ViewMatrix(), ctx.View())
}

func TestHandleZoomClamps(t *testing.T) {
	c := NewOrbitCamera()
	for i := 0; i < 100; i++ {
		c.HandleZoom(1)
	}
	assert.Equal(t, c.MinDistance, c.Distance)
	for i := 0; i < 200; i++ {
		c.HandleZoom(-1)
	}
	assert.Equal(t, c.MaxDistance, c.Distance)
}

func TestHandleDragClampsPitch(t *testing.T) {
	c := NewOrbitCamera()
	c.HandleDrag(100, 10000)
	assert.Equal(t, c.MaxPitch, c.Pitch)
	assert.InDelta(t, -0.5, c.Yaw, 1e-6)
}

func TestUpdateSpin(t *testing.T) {
	c := NewOrbitCamera()
	c.Update(1)
	assert.Zero(t, c.Yaw)

	c.Spin = 0.5
	c.Update(2)
	assert.InDelta(t, 1, c.Yaw, 1e-6)
}

func TestFitToBounds(t *testing.T) {
	c := NewOrbitCamera()
	b := model.Cube(2).Bounds()
	c.FitToBounds(b, math.Radians(60))
	assert.Equal(t, math.Vec3{}, c.Center)
	// Half diagonal sqrt(3) over sin(30deg).
	assert.InDelta(t, 2*1.7320508, c.Distance, 1e-4)
}
