package lighting

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Faultbox/midgard-sr/internal/engine/model"
	"github.com/Faultbox/midgard-sr/pkg/color"
	"github.com/Faultbox/midgard-sr/pkg/math"
)

func TestSunDirection(t *testing.T) {
	tests := []struct {
		lon, lat float32
		want     math.Vec3
	}{
		{0, 90, math.Vec3{X: 0, Y: 1, Z: 0}},
		{0, 0, math.Vec3{X: 0, Y: 0, Z: 1}},
		{90, 0, math.Vec3{X: 1, Y: 0, Z: 0}},
	}
	for _, tt := range tests {
		got := SunDirection(tt.lon, tt.lat)
		assert.InDelta(t, tt.want.X, got.X, 1e-5)
		assert.InDelta(t, tt.want.Y, got.Y, 1e-5)
		assert.InDelta(t, tt.want.Z, got.Z, 1e-5)
		assert.InDelta(t, 1, got.Length(), 1e-5)
	}
}

func TestBuffer(t *testing.T) {
	b := NewBuffer()
	for i := 0; i < MaxLights; i++ {
		assert.True(t, b.Add(Ambient(color.Gray(1), 0.1)))
	}
	assert.False(t, b.Add(Ambient(color.Gray(1), 0.1)), "buffer should be full")

	b.Clear()
	assert.Zero(t, b.Len())

	many := make([]Light, MaxLights+5)
	b.SetLights(many)
	assert.Equal(t, MaxLights, b.Len())
}

func TestPointAttenuation(t *testing.T) {
	l := Point(math.Vec3{}, color.RGB{R: 2, G: 0.5, B: -1}, 10)
	assert.Equal(t, color.RGB{R: 1, G: 0.5, B: 0}, l.Color)

	dir, near := l.Incident(math.Vec3{X: 2})
	_, far := l.Incident(math.Vec3{X: 8})
	_, out := l.Incident(math.Vec3{X: 11})

	assert.InDelta(t, -1, dir.X, 1e-6)
	assert.Greater(t, near, far)
	assert.Zero(t, out)

	assert.Equal(t, float32(100), Point(math.Vec3{}, color.Gray(1), 0).Range)
}

func TestTransform(t *testing.T) {
	view := math.Translate(0, 0, -5)
	p := Point(math.Vec3{X: 1}, color.Gray(1), 10).Transform(view)
	assert.Equal(t, math.Vec3{X: 1, Y: 0, Z: -5}, p.Position)

	d := Directional(math.Vec3{Y: 2}, color.Gray(1), 1).Transform(math.RotateZ(math.Radians(90)))
	assert.InDelta(t, -1, d.Direction.X, 1e-5)
	assert.InDelta(t, 0, d.Direction.Y, 1e-5)
}

func TestPhong(t *testing.T) {
	mat := model.DefaultMaterial()
	n := math.Vec3{Z: 1}
	p := math.Vec3{Z: -5}

	ambientOnly := Phong(mat, mat.Diffuse, n, p, []Light{Ambient(color.Gray(1), 1)})
	assert.InDelta(t, 0.2, ambientOnly.R, 1e-5)

	facing := Directional(math.Vec3{Z: 1}, color.Gray(1), 1)
	lit := Phong(mat, mat.Diffuse, n, p, []Light{facing})
	assert.Equal(t, color.Gray(1), lit, "diffuse plus specular saturates")

	behind := Directional(math.Vec3{Z: -1}, color.Gray(1), 1)
	dark := Phong(mat, mat.Diffuse, n, p, []Light{behind})
	assert.Equal(t, color.RGB{}, dark)

	grazing := Directional(math.Vec3{X: 1, Z: 1}, color.Gray(1), 1)
	l := Lambert(mat, color.Gray(0.5), n, p, []Light{grazing})
	assert.InDelta(t, 0.5*0.7071, l.R, 1e-3)
}

func TestKindString(t *testing.T) {
	assert.Equal(t, "point", KindPoint.String())
	assert.Equal(t, "unknown", Kind(9).String())
}
