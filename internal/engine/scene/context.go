// Package scene holds the per-viewer render context and the per-frame
// queue of drawables and lights.
package scene

import (
	"errors"
	"fmt"

	"github.com/Faultbox/midgard-sr/internal/engine/framebuffer"
	"github.com/Faultbox/midgard-sr/internal/engine/projection"
	"github.com/Faultbox/midgard-sr/internal/engine/raster"
	"github.com/Faultbox/midgard-sr/pkg/math"
)

// ErrNoRenderer is returned by Render before a renderer is selected.
var ErrNoRenderer = errors.New("scene: no renderer selected")

// Renderer draws the context's queue into a framebuffer.
type Renderer interface {
	// Prepare configures the renderer once after it is selected.
	Prepare() error
	// Apply renders one frame.
	Apply(ctx *Context, fb *framebuffer.Framebuffer) error
}

// Context carries the viewer state shared by every object in a frame.
type Context struct {
	view       math.Mat4
	viewpoint  math.Vec3
	projection math.Mat4
	projKind   projection.Kind
	frustum    projection.Frustum
	viewport   raster.Viewport

	stack    *MatrixStack
	queue    *Queue
	renderer Renderer
}

// NewContext returns a context with identity view and a perspective
// projection over the full viewport.
func NewContext() *Context {
	c := &Context{
		view:     math.Identity(),
		viewport: raster.FullViewport(),
		stack:    NewMatrixStack(),
		queue:    NewQueue(),
	}
	c.SetProjection(projection.KindPerspective, projection.DefaultFrustum(1))
	return c
}

// SetView sets the VIEW matrix and the world-space viewpoint it looks from.
func (c *Context) SetView(view math.Mat4, viewpoint math.Vec3) {
	c.view = view
	c.viewpoint = viewpoint
}

// View returns the VIEW matrix.
func (c *Context) View() math.Mat4 { return c.view }

// Viewpoint returns the world-space eye position.
func (c *Context) Viewpoint() math.Vec3 { return c.viewpoint }

// SetProjection builds the PROJECTION matrix for kind from f.
func (c *Context) SetProjection(kind projection.Kind, f projection.Frustum) {
	c.SetProjectionWith(kind, projection.ForKind(kind), f)
}

// SetProjectionWith builds the PROJECTION matrix with a custom strategy.
func (c *Context) SetProjectionWith(kind projection.Kind, p projection.Projection, f projection.Frustum) {
	c.projKind = kind
	c.frustum = f.Clamped()
	c.projection = p.Matrix(c.frustum)
}

// Projection returns the PROJECTION matrix.
func (c *Context) Projection() math.Mat4 { return c.projection }

// ProjectionKind returns the strategy used for the current projection.
func (c *Context) ProjectionKind() projection.Kind { return c.projKind }

// Frustum returns the clamped frustum of the current projection.
func (c *Context) Frustum() projection.Frustum { return c.frustum }

// SetViewport sets the normalized viewport rectangle.
func (c *Context) SetViewport(vp raster.Viewport) { c.viewport = vp }

// Viewport returns the normalized viewport rectangle.
func (c *Context) Viewport() raster.Viewport { return c.viewport }

// Stack returns the matrix stack used during traversal.
func (c *Context) Stack() *MatrixStack { return c.stack }

// Queue returns the processing queue, which may be nil.
func (c *Context) Queue() *Queue { return c.queue }

// SetQueue replaces the processing queue.
func (c *Context) SetQueue(q *Queue) { c.queue = q }

// SetRenderer selects r after running its Prepare. On failure the previous
// renderer stays selected.
func (c *Context) SetRenderer(r Renderer) error {
	if r == nil {
		return ErrNoRenderer
	}
	if err := r.Prepare(); err != nil {
		return fmt.Errorf("preparing renderer: %w", err)
	}
	c.renderer = r
	return nil
}

// Renderer returns the selected renderer.
func (c *Context) Renderer() Renderer { return c.renderer }

// Render draws one frame with the selected renderer.
func (c *Context) Render(fb *framebuffer.Framebuffer) error {
	if c.renderer == nil {
		return ErrNoRenderer
	}
	return c.renderer.Apply(c, fb)
}
