package scene

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Faultbox/midgard-sr/internal/engine/framebuffer"
	"github.com/Faultbox/midgard-sr/internal/engine/lighting"
	"github.com/Faultbox/midgard-sr/internal/engine/model"
	"github.com/Faultbox/midgard-sr/internal/engine/projection"
	"github.com/Faultbox/midgard-sr/internal/engine/raster"
	"github.com/Faultbox/midgard-sr/pkg/color"
	"github.com/Faultbox/midgard-sr/pkg/math"
)

func TestMatrixStack(t *testing.T) {
	s := NewMatrixStack()
	assert.Equal(t, math.Identity(), s.Top())
	assert.False(t, s.Pop(), "root must survive")

	s.Push()
	s.Mult(math.Translate(1, 0, 0))
	s.Push()
	s.Mult(math.Translate(0, 2, 0))
	assert.Equal(t, 3, s.Depth())
	assert.Equal(t, math.Vec3{X: 1, Y: 2}, s.Top().TransformPoint(math.Vec3{}))

	assert.True(t, s.Pop())
	assert.Equal(t, math.Vec3{X: 1}, s.Top().TransformPoint(math.Vec3{}))

	s.Reset()
	assert.Equal(t, 1, s.Depth())
	assert.Equal(t, math.Identity(), s.Top())
}

func cubeAt(key string, z float32) Renderable {
	return Renderable{Key: key, Mesh: model.Cube(1), Transform: math.Translate(0, 0, z)}
}

func keys(q *Queue) []string {
	var out []string
	for _, r := range q.Items() {
		out = append(out, r.Key)
	}
	return out
}

func TestQueueSortsBackToFront(t *testing.T) {
	q := NewQueue()
	// Submitted nearest first; FIFO would keep this order.
	q.AddRenderable(cubeAt("near", -2))
	q.AddRenderable(cubeAt("mid", -5))
	q.AddRenderable(cubeAt("far", -9))

	q.Sort(math.Vec3{})
	assert.Equal(t, []string{"far", "mid", "near"}, keys(q))
}

func TestQueueDropsRenderablesWithoutMesh(t *testing.T) {
	q := NewQueue()
	q.AddRenderable(Renderable{Key: "empty", Transform: math.Identity()})
	q.AddRenderable(cubeAt("cube", -3))
	q.AddRenderable(Renderable{Key: "empty2", Transform: math.Identity()})
	require.Equal(t, 1, q.Len())

	for _, order := range []Comparator{BackToFront, FrontToBack, FIFO} {
		q.SetComparator(order)
		assert.NotPanics(t, func() { q.Sort(math.Vec3{}) })
	}
	assert.Equal(t, []string{"cube"}, keys(q))
}

func TestQueueComparators(t *testing.T) {
	build := func() *Queue {
		q := NewQueue()
		q.AddRenderable(cubeAt("mid", -5))
		q.AddRenderable(cubeAt("far", -9))
		q.AddRenderable(cubeAt("near", -2))
		return q
	}

	q := build()
	q.SetComparator(FrontToBack)
	q.Sort(math.Vec3{})
	assert.Equal(t, []string{"near", "mid", "far"}, keys(q))

	q = build()
	q.SetComparator(nil)
	q.Sort(math.Vec3{})
	assert.Equal(t, []string{"mid", "far", "near"}, keys(q))
}

func TestParseOrder(t *testing.T) {
	for _, name := range []string{"fifo", "back-to-front", "front-to-back", ""} {
		c, err := ParseOrder(name)
		require.NoError(t, err)
		assert.NotNil(t, c)
	}
	_, err := ParseOrder("random")
	assert.Error(t, err)
}

func TestQueueClear(t *testing.T) {
	q := NewQueue()
	q.Add(model.NewModel3D("cube", model.Cube(1), nil), math.Identity())
	q.Add(nil, math.Identity())
	assert.True(t, q.AddLight(lighting.Ambient(color.Gray(1), 1)))
	require.Equal(t, 1, q.Len())
	require.NotNil(t, q.Items()[0].Material)

	q.Clear()
	assert.Zero(t, q.Len())
	assert.Empty(t, q.Lights())
}

func TestNodeTraverse(t *testing.T) {
	ctx := NewContext()
	cube := model.NewModel3D("cube", model.Cube(1), nil)

	root := NewNode("root")
	root.Transform = math.Translate(10, 0, 0)
	arm := root.AddChild(NewNode("arm"))
	arm.Transform = math.Translate(0, 5, 0)
	arm.Model = cube
	lamp := lighting.Point(math.Vec3{}, color.Gray(1), 10)
	arm.Light = &lamp
	hidden := root.AddChild(NewNode("hidden"))
	hidden.Model = cube
	hidden.Hidden = true

	root.Traverse(ctx)

	require.Equal(t, 1, ctx.Queue().Len())
	r := ctx.Queue().Items()[0]
	assert.Equal(t, math.Vec3{X: 10, Y: 5}, r.Center())

	require.Len(t, ctx.Queue().Lights(), 1)
	assert.Equal(t, math.Vec3{X: 10, Y: 5}, ctx.Queue().Lights()[0].Position)
	assert.Equal(t, 1, ctx.Stack().Depth(), "traversal must leave the stack balanced")
}

type fakeRenderer struct {
	prepareErr error
	applied    int
}

func (f *fakeRenderer) Prepare() error { return f.prepareErr }

func (f *fakeRenderer) Apply(ctx *Context, fb *framebuffer.Framebuffer) error {
	f.applied++
	return nil
}

func TestContextRenderer(t *testing.T) {
	ctx := NewContext()
	fb := framebuffer.New(4, 4)

	assert.ErrorIs(t, ctx.Render(fb), ErrNoRenderer)
	assert.ErrorIs(t, ctx.SetRenderer(nil), ErrNoRenderer)

	good := &fakeRenderer{}
	require.NoError(t, ctx.SetRenderer(good))

	boom := errors.New("boom")
	err := ctx.SetRenderer(&fakeRenderer{prepareErr: boom})
	assert.ErrorIs(t, err, boom)
	assert.Same(t, good, ctx.Renderer(), "failed prepare keeps the previous renderer")

	require.NoError(t, ctx.Render(fb))
	assert.Equal(t, 1, good.applied)
}

func TestContextProjection(t *testing.T) {
	ctx := NewContext()
	assert.Equal(t, projection.KindPerspective, ctx.ProjectionKind())

	f := projection.Frustum{FovY: math.Radians(45), Aspect: 2, Near: 0.1, Far: 5000}
	ctx.SetProjection(projection.KindCabinet, f)
	assert.Equal(t, projection.KindCabinet, ctx.ProjectionKind())
	assert.Equal(t, float32(1), ctx.Frustum().Near)
	assert.Equal(t, float32(1000), ctx.Frustum().Far)
	assert.Equal(t, projection.Cabinet().Matrix(f), ctx.Projection())

	ctx.SetViewport(raster.Viewport{W: 0.5, H: 0.5})
	assert.Equal(t, raster.Viewport{W: 0.5, H: 0.5}, ctx.Viewport())

	view := math.LookAt(math.Vec3{Z: 5}, math.Vec3{}, math.Vec3{Y: 1})
	ctx.SetView(view, math.Vec3{Z: 5})
	assert.Equal(t, view, ctx.View())
	assert.Equal(t, math.Vec3{Z: 5}, ctx.Viewpoint())
}
