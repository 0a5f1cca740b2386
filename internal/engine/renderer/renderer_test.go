package renderer

import (
	"testing"

	"github.com/chewxy/math32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Faultbox/midgard-sr/internal/engine/framebuffer"
	"github.com/Faultbox/midgard-sr/internal/engine/lighting"
	"github.com/Faultbox/midgard-sr/internal/engine/model"
	"github.com/Faultbox/midgard-sr/internal/engine/projection"
	"github.com/Faultbox/midgard-sr/internal/engine/raster"
	"github.com/Faultbox/midgard-sr/internal/engine/scene"
	"github.com/Faultbox/midgard-sr/pkg/color"
	"github.com/Faultbox/midgard-sr/pkg/math"
)

// ndcTriangle builds a one-face mesh directly in normalized device
// coordinates.
func ndcTriangle(p0, p1, p2 math.Vec4) *model.Mesh {
	vs := []model.Vertex{model.NewVertex(0, 0, 0), model.NewVertex(0, 0, 0), model.NewVertex(0, 0, 0)}
	vs[0].Position, vs[1].Position, vs[2].Position = p0, p1, p2
	return model.NewMesh(vs, []model.Face{model.NewFace(0, 1, 2)})
}

// screenContext returns a context whose transforms are all identity.
func screenContext(m *model.Mesh) *scene.Context {
	ctx := scene.NewContext()
	ctx.Queue().Add(model.NewModel3D("tri", m, nil), math.Identity())
	return ctx
}

func screenOptions() Options {
	o := DefaultOptions()
	o.ProjectionTransform = false
	return o
}

func newRenderer(t *testing.T, mode Mode, opts Options) *Renderer {
	t.Helper()
	cfg := DefaultConfig()
	cfg.Mode = mode
	cfg.Options = opts
	r, err := New(cfg)
	require.NoError(t, err)
	require.NoError(t, r.Prepare())
	return r
}

func TestApplyRightTriangle(t *testing.T) {
	// Screen (0,0), (4,0), (0,4) on a 10x10 target at depth 0.5.
	m := ndcTriangle(
		math.Vec4{X: -1, Y: -1, Z: 0.5, W: 1},
		math.Vec4{X: -0.2, Y: -1, Z: 0.5, W: 1},
		math.Vec4{X: -1, Y: -0.2, Z: 0.5, W: 1},
	)
	ctx := screenContext(m)
	fb := framebuffer.New(10, 10)
	r := newRenderer(t, ModeSolid, screenOptions())

	require.NoError(t, r.Apply(ctx, fb))

	for y := 0; y < 10; y++ {
		for x := 0; x < 10; x++ {
			if x+y < 4 {
				assert.Equal(t, color.White, fb.At(x, y), "(%d,%d)", x, y)
				assert.InDelta(t, 0.5, fb.DepthAt(x, y), 1e-6)
			} else {
				assert.Equal(t, color.Black, fb.At(x, y), "(%d,%d)", x, y)
				assert.True(t, math32.IsInf(fb.DepthAt(x, y), 1))
			}
		}
	}
	assert.Equal(t, 10, r.Stats().Written)
}

func TestApplyErrors(t *testing.T) {
	r := newRenderer(t, ModeSolid, DefaultOptions())
	fb := framebuffer.New(4, 4)

	assert.ErrorIs(t, r.Apply(nil, fb), ErrNoContext)
	assert.ErrorIs(t, r.Apply(scene.NewContext(), nil), ErrNoFramebuffer)

	noQueue := scene.NewContext()
	noQueue.SetQueue(nil)
	assert.ErrorIs(t, r.Apply(noQueue, fb), ErrNoQueue)

	noViewport := scene.NewContext()
	noViewport.SetViewport(raster.Viewport{})
	assert.ErrorIs(t, r.Apply(noViewport, fb), ErrNoViewport)
}

func TestPrepareOcclusionCulling(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Options.OcclusionCulling = true
	r, err := New(cfg)
	require.NoError(t, err)
	assert.ErrorIs(t, r.Prepare(), ErrNotImplemented)

	// Swapping in through the context surfaces the same error.
	ctx := scene.NewContext()
	assert.ErrorIs(t, ctx.SetRenderer(r), ErrNotImplemented)
	assert.Nil(t, ctx.Renderer())
}

func TestNewUnknownMode(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Mode = Mode(99)
	_, err := New(cfg)
	assert.ErrorIs(t, err, ErrUnknownMode)
}

func TestParseMode(t *testing.T) {
	for _, m := range Modes() {
		got, err := ParseMode(m.String())
		require.NoError(t, err)
		assert.Equal(t, m, got)

		p, err := ProgramFor(m)
		require.NoError(t, err)
		assert.NotNil(t, p)
	}
	_, err := ParseMode("raytraced")
	assert.ErrorIs(t, err, ErrUnknownMode)
}

func TestZeroWVertexDiscarded(t *testing.T) {
	m := ndcTriangle(
		math.Vec4{X: -1, Y: -1, Z: 0.5, W: 1},
		math.Vec4{X: 1, Y: -1, Z: 0.5, W: 0},
		math.Vec4{X: -1, Y: 1, Z: 0.5, W: 1},
	)
	opts := screenOptions()
	opts.Clipping = false
	opts.FrustumCulling = false
	r := newRenderer(t, ModeSolid, opts)
	fb := framebuffer.New(8, 8)

	require.NoError(t, r.Apply(screenContext(m), fb))
	assert.Equal(t, 1, r.Stats().Discarded)
	assert.Zero(t, r.Stats().Written)
}

func TestNonFiniteVertexDiscarded(t *testing.T) {
	// 1/w overflows float32, so the divided position is infinite.
	m := ndcTriangle(
		math.Vec4{X: -1, Y: -1, Z: 0.5, W: 1},
		math.Vec4{X: 1, Y: -1, Z: 0.5, W: 1e-40},
		math.Vec4{X: -1, Y: 1, Z: 0.5, W: 1},
	)
	opts := screenOptions()
	opts.Clipping = false
	opts.FrustumCulling = false
	opts.DebugNormals = true

	for _, mode := range []Mode{ModeWireframe, ModePoints, ModeSolid} {
		t.Run(mode.String(), func(t *testing.T) {
			r := newRenderer(t, mode, opts)
			fb := framebuffer.New(8, 8)
			require.NoError(t, r.Apply(screenContext(m), fb))
			assert.Equal(t, 1, r.Stats().Discarded)
			assert.Zero(t, r.Stats().Written)
			for _, z := range fb.Depth() {
				assert.False(t, math32.IsNaN(z))
			}
		})
	}
}

func TestBackfaceCulling(t *testing.T) {
	// Clockwise on screen.
	m := ndcTriangle(
		math.Vec4{X: -1, Y: -1, Z: 0, W: 1},
		math.Vec4{X: -1, Y: 1, Z: 0, W: 1},
		math.Vec4{X: 1, Y: -1, Z: 0, W: 1},
	)
	fb := framebuffer.New(8, 8)

	r := newRenderer(t, ModeSolid, screenOptions())
	require.NoError(t, r.Apply(screenContext(m), fb))
	assert.Zero(t, r.Stats().Written)
	assert.Equal(t, 1, r.Stats().Culled)

	opts := screenOptions()
	opts.BackfaceCulling = false
	r = newRenderer(t, ModeSolid, opts)
	require.NoError(t, r.Apply(screenContext(m), fb))
	assert.NotZero(t, r.Stats().Written)
}

func TestClippingKeepsFragmentsInside(t *testing.T) {
	m := ndcTriangle(
		math.Vec4{X: -3, Y: -3, Z: 0, W: 1},
		math.Vec4{X: 3, Y: -3, Z: 0, W: 1},
		math.Vec4{X: 0, Y: 3, Z: 0, W: 1},
	)
	fb := framebuffer.New(8, 8)
	r := newRenderer(t, ModeSolid, screenOptions())
	require.NoError(t, r.Apply(screenContext(m), fb))

	assert.Equal(t, r.Stats().Fragments, r.Stats().Written)
	assert.Equal(t, 64, r.Stats().Written)
	assert.Greater(t, r.Stats().Triangles, 1, "clipping should split the triangle")
}

func TestFrustumCullingSkipsObject(t *testing.T) {
	m := ndcTriangle(
		math.Vec4{X: 2, Y: 2, Z: 0, W: 1},
		math.Vec4{X: 3, Y: 2, Z: 0, W: 1},
		math.Vec4{X: 2, Y: 3, Z: 0, W: 1},
	)
	r := newRenderer(t, ModeSolid, screenOptions())
	require.NoError(t, r.Apply(screenContext(m), framebuffer.New(8, 8)))
	assert.Equal(t, 1, r.Stats().Objects)
	assert.Equal(t, 1, r.Stats().Culled)
	assert.Zero(t, r.Stats().Triangles)
}

func TestViewportRestrictsOutput(t *testing.T) {
	m := ndcTriangle(
		math.Vec4{X: -1, Y: -1, Z: 0, W: 1},
		math.Vec4{X: 1, Y: -1, Z: 0, W: 1},
		math.Vec4{X: 1, Y: 1, Z: 0, W: 1},
	)
	ctx := screenContext(m)
	ctx.SetViewport(raster.Viewport{X: 0.5, Y: 0, W: 0.5, H: 1})
	fb := framebuffer.New(8, 8)
	r := newRenderer(t, ModeSolid, screenOptions())
	require.NoError(t, r.Apply(ctx, fb))

	for y := 0; y < 8; y++ {
		for x := 0; x < 4; x++ {
			assert.Equal(t, color.Black, fb.At(x, y))
		}
	}
	assert.Equal(t, color.White, fb.At(7, 0))
}

// cubeScene returns a lit cube in front of a perspective camera.
func cubeScene() *scene.Context {
	ctx := scene.NewContext()
	ctx.SetView(math.LookAt(math.Vec3{X: 1, Y: 1.5, Z: 3}, math.Vec3{}, math.Vec3{Y: 1}), math.Vec3{X: 1, Y: 1.5, Z: 3})
	ctx.SetProjection(projection.KindPerspective, projection.DefaultFrustum(1))

	mat := model.DefaultMaterial()
	mat.SetMap(model.DiffuseMap, model.NewChecker(4, color.White, color.Pack(200, 40, 40, 255)))
	ctx.Queue().Add(model.NewModel3D("cube", model.Cube(1), mat), math.Identity())
	ctx.Queue().AddLight(lighting.Ambient(color.Gray(1), 1))
	ctx.Queue().AddLight(lighting.Directional(math.Vec3{X: 0.3, Y: 1, Z: 0.8}, color.Gray(1), 1))
	return ctx
}

func TestEveryModeDraws(t *testing.T) {
	for _, mode := range Modes() {
		t.Run(mode.String(), func(t *testing.T) {
			r := newRenderer(t, mode, DefaultOptions())
			fb := framebuffer.New(32, 32)
			require.NoError(t, r.Apply(cubeScene(), fb))
			assert.NotZero(t, r.Stats().Written)

			if mode != ModePoints && mode != ModeWireframe {
				assert.NotEqual(t, color.Black, fb.At(16, 16), "cube should cover the center")
			}
		})
	}
}

func TestRandomModeReproducible(t *testing.T) {
	render := func(seed uint64) []uint32 {
		cfg := DefaultConfig()
		cfg.Mode = ModeRandom
		cfg.Seed = seed
		r, err := New(cfg)
		require.NoError(t, err)
		fb := framebuffer.New(32, 32)
		require.NoError(t, r.Apply(cubeScene(), fb))
		// Twice through the same renderer must match too.
		require.NoError(t, r.Apply(cubeScene(), fb))
		out, _, _ := fb.Snapshot(nil)
		return out
	}

	a := render(7)
	b := render(7)
	c := render(8)
	assert.Equal(t, a, b)
	assert.NotEqual(t, a, c)
}

func TestRandomModeOneColorPerFace(t *testing.T) {
	// The triangle crosses four clip planes and is split into several.
	m := ndcTriangle(
		math.Vec4{X: -3, Y: -3, Z: 0, W: 1},
		math.Vec4{X: 3, Y: -3, Z: 0, W: 1},
		math.Vec4{X: 0, Y: 3, Z: 0, W: 1},
	)
	fb := framebuffer.New(8, 8)
	r := newRenderer(t, ModeRandom, screenOptions())
	require.NoError(t, r.Apply(screenContext(m), fb))
	require.Greater(t, r.Stats().Triangles, 1)
	require.Equal(t, 64, r.Stats().Written)

	pix := fb.Color()
	for i, c := range pix {
		assert.Equal(t, pix[0], c, "pixel %d", i)
	}
}

func TestDepthModeOrdersSurfaces(t *testing.T) {
	near := ndcTriangle(
		math.Vec4{X: -1, Y: -1, Z: -0.5, W: 1},
		math.Vec4{X: 1, Y: -1, Z: -0.5, W: 1},
		math.Vec4{X: -1, Y: 1, Z: -0.5, W: 1},
	)
	far := ndcTriangle(
		math.Vec4{X: -1, Y: -1, Z: 0.5, W: 1},
		math.Vec4{X: 1, Y: -1, Z: 0.5, W: 1},
		math.Vec4{X: -1, Y: 1, Z: 0.5, W: 1},
	)
	ctx := scene.NewContext()
	ctx.Queue().Add(model.NewModel3D("near", near, nil), math.Identity())
	ctx.Queue().Add(model.NewModel3D("far", far, nil), math.Identity())
	ctx.Queue().SetComparator(scene.FIFO)

	fb := framebuffer.New(8, 8)
	r := newRenderer(t, ModeDepth, screenOptions())
	require.NoError(t, r.Apply(ctx, fb))

	// The near surface wins the depth test even though it is drawn first.
	assert.InDelta(t, -0.5, fb.DepthAt(1, 1), 1e-6)
	g, _, _, _ := fb.At(1, 1).Unpack()
	assert.Equal(t, uint8(191), g)
}

func TestDebugNormals(t *testing.T) {
	opts := DefaultOptions()
	opts.DebugNormals = true
	opts.DepthTest = false
	r := newRenderer(t, ModeSolid, opts)
	fb := framebuffer.New(64, 64)
	require.NoError(t, r.Apply(cubeScene(), fb))

	yellow := normalColor.Pack()
	found := false
	for _, c := range fb.Color() {
		if color.ARGB(c) == yellow {
			found = true
			break
		}
	}
	assert.True(t, found, "expected debug normal lines")
}

func TestDebugNormalsBypassFragmentTests(t *testing.T) {
	opts := DefaultOptions()
	opts.DebugNormals = true
	opts.ScissorTest = true
	r := newRenderer(t, ModeSolid, opts)
	fb := framebuffer.New(64, 64)
	fb.SetScissor(0, 0, 0, 0)
	require.NoError(t, r.Apply(cubeScene(), fb))

	// Nothing passes the empty scissor but the normal lines are drawn.
	assert.Zero(t, r.Stats().Written)
	assert.Contains(t, fb.Color(), uint32(normalColor.Pack()))
}

func TestAntialiasingRuns(t *testing.T) {
	opts := DefaultOptions()
	plain := newRenderer(t, ModeSolid, opts)
	opts.Antialiasing = true
	smooth := newRenderer(t, ModeSolid, opts)

	a := framebuffer.New(32, 32)
	b := framebuffer.New(32, 32)
	require.NoError(t, plain.Apply(cubeScene(), a))
	require.NoError(t, smooth.Apply(cubeScene(), b))

	assert.NotEqual(t, a.Color(), b.Color())
}
