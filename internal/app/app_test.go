package app

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Faultbox/midgard-sr/internal/config"
	"github.com/Faultbox/midgard-sr/internal/engine/projection"
	"github.com/Faultbox/midgard-sr/internal/engine/renderer"
)

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	cfg := config.Default()
	cfg.Graphics.Width = 64
	cfg.Graphics.Height = 48
	cfg.Camera.Spin = 0
	cfg.Output.Dir = t.TempDir()
	return cfg
}

func newApp(t *testing.T, cfg *config.Config) *App {
	t.Helper()
	a, err := New(cfg, DemoScene(nil))
	require.NoError(t, err)
	return a
}

// covered counts pixels that differ from the clear color.
func covered(a *App) int {
	fb := a.Framebuffer()
	w, h := fb.Size()
	n := 0
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			if fb.At(x, y) != fb.ClearColor() {
				n++
			}
		}
	}
	return n
}

func TestFrameRendersDemoScene(t *testing.T) {
	a := newApp(t, testConfig(t))

	require.NoError(t, a.Frame(0))
	assert.Equal(t, uint64(1), a.Frames())
	assert.Positive(t, covered(a))
	assert.Equal(t, 4, a.Context().Queue().Len())
	assert.Len(t, a.Context().Queue().Lights(), 3)
}

func TestConfigureRejectsAndKeepsPrevious(t *testing.T) {
	a := newApp(t, testConfig(t))

	bad := *a.Config()
	bad.Render.Mode = "raytraced"
	assert.Error(t, a.Configure(&bad))
	assert.Equal(t, renderer.ModePhong, a.Renderer().Mode())

	occl := *a.Config()
	occl.Render.Mode = "flat"
	occl.Render.Options.OcclusionCulling = true
	err := a.Configure(&occl)
	assert.ErrorIs(t, err, renderer.ErrNotImplemented)
	assert.Equal(t, renderer.ModePhong, a.Renderer().Mode())
}

func TestHandleActions(t *testing.T) {
	a := newApp(t, testConfig(t))

	require.NoError(t, a.Handle(Controls{Actions: []Action{
		ActionNextMode,
		ActionNextProjection,
		ActionToggleAntialiasing,
		ActionToggleBounds,
	}}))

	assert.Equal(t, renderer.ModeTextured, a.Renderer().Mode())
	assert.Equal(t, projection.KindCabinet, a.Context().ProjectionKind())
	assert.True(t, a.Renderer().Options().Antialiasing)
	require.NoError(t, a.Frame(0))

	// Wraps around to the first mode.
	require.NoError(t, a.Handle(Controls{Actions: []Action{ActionNextMode}}))
	assert.Equal(t, renderer.ModeSolid, a.Renderer().Mode())
}

func TestHandleCamera(t *testing.T) {
	a := newApp(t, testConfig(t))
	cam := a.Camera()
	yaw, dist := cam.Yaw, cam.Distance

	require.NoError(t, a.Handle(Controls{DragX: 20, Zoom: 1}))
	assert.NotEqual(t, yaw, cam.Yaw)
	assert.NotEqual(t, dist, cam.Distance)

	require.NoError(t, a.Handle(Controls{Actions: []Action{ActionResetCamera}}))
	assert.Equal(t, yaw, cam.Yaw)
	assert.Equal(t, dist, cam.Distance)
}

func TestScreenshot(t *testing.T) {
	cfg := testConfig(t)
	cfg.Output.Format = "bmp"
	a := newApp(t, cfg)
	require.NoError(t, a.Frame(0))

	path, err := a.Screenshot()
	require.NoError(t, err)
	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Positive(t, info.Size())
}

// fakeDisplay quits on the given poll and records presented frames.
type fakeDisplay struct {
	quitAt    int
	polls     int
	presents  int
	width     int
	height    int
	onPresent func()
}

func (d *fakeDisplay) Poll() Controls {
	d.polls++
	return Controls{Quit: d.quitAt > 0 && d.polls >= d.quitAt}
}

func (d *fakeDisplay) Present(pixels []uint32, width, height int) error {
	d.presents++
	d.width, d.height = width, height
	if len(pixels) != width*height {
		panic("short frame")
	}
	if d.onPresent != nil {
		d.onPresent()
	}
	return nil
}

func TestRunPresentsPreviousFrame(t *testing.T) {
	a := newApp(t, testConfig(t))
	d := &fakeDisplay{quitAt: 4}

	require.NoError(t, a.Run(context.Background(), d, nil))
	assert.Equal(t, uint64(3), a.Frames())
	assert.Equal(t, 2, d.presents)
	assert.Equal(t, 64, d.width)
	assert.Equal(t, 48, d.height)
}

func TestRunAppliesReload(t *testing.T) {
	a := newApp(t, testConfig(t))

	next := *a.Config()
	next.Render.Mode = "flat"
	a.Reload(&next)

	require.NoError(t, a.Run(context.Background(), &fakeDisplay{quitAt: 2}, nil))
	assert.Equal(t, renderer.ModeFlat, a.Renderer().Mode())
}

func TestRunStopsOnCancel(t *testing.T) {
	a := newApp(t, testConfig(t))
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	d := &fakeDisplay{onPresent: cancel}
	require.NoError(t, a.Run(ctx, d, nil))
	assert.Equal(t, 1, d.presents)
}

func TestRunReturnsRenderError(t *testing.T) {
	cfg := testConfig(t)
	cfg.Render.Viewport.W = 0
	a := newApp(t, cfg)

	err := a.Run(context.Background(), &fakeDisplay{quitAt: 10}, nil)
	assert.ErrorIs(t, err, renderer.ErrNoViewport)
}

func TestPickAt(t *testing.T) {
	a := newApp(t, testConfig(t))
	require.NoError(t, a.Frame(0))

	// The camera looks at the origin, which lies on the floor.
	assert.NotEmpty(t, a.PickAt(32, 24))
	assert.Equal(t, a.PickAt(32, 24), a.Selected())
	require.NoError(t, a.Frame(0))

	// The top edge looks above everything in the scene.
	require.NoError(t, a.Handle(Controls{Pick: true, PickX: 0, PickY: 0}))
	assert.Empty(t, a.Selected())
}

func TestSceneFromConfig(t *testing.T) {
	cfg := testConfig(t)
	root, err := SceneFromConfig(cfg)
	require.NoError(t, err)
	assert.Len(t, root.Children, 7)

	cfg.Scene.FloorTexture = filepath.Join(t.TempDir(), "missing.tga")
	_, err = SceneFromConfig(cfg)
	assert.Error(t, err)
}
