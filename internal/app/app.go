// Package app wires the render pipeline, camera, scene and display into a
// running viewer.
package app

import (
	"errors"
	"fmt"
	"slices"
	"sync/atomic"

	"go.uber.org/zap"

	"github.com/Faultbox/midgard-sr/internal/config"
	"github.com/Faultbox/midgard-sr/internal/engine/camera"
	"github.com/Faultbox/midgard-sr/internal/engine/debug"
	"github.com/Faultbox/midgard-sr/internal/engine/framebuffer"
	"github.com/Faultbox/midgard-sr/internal/engine/picking"
	"github.com/Faultbox/midgard-sr/internal/engine/projection"
	"github.com/Faultbox/midgard-sr/internal/engine/raster"
	"github.com/Faultbox/midgard-sr/internal/engine/renderer"
	"github.com/Faultbox/midgard-sr/internal/engine/scene"
	"github.com/Faultbox/midgard-sr/internal/logger"
	"github.com/Faultbox/midgard-sr/pkg/color"
	"github.com/Faultbox/midgard-sr/pkg/math"
)

// boundsColor is the color of the bounding box overlay.
var boundsColor = color.Pack(0, 255, 128, 255)

// App owns one framebuffer, render context and camera, and renders a scene
// graph into them.
type App struct {
	cfg      *config.Config
	fb       *framebuffer.Framebuffer
	ctx      *scene.Context
	renderer *renderer.Renderer
	camera   *camera.OrbitCamera
	root     *scene.Node
	capture  *debug.ScreenshotCapture

	showBounds bool
	selected   string
	frames     uint64
	pending    atomic.Pointer[config.Config]
}

// New creates an App rendering root with cfg.
func New(cfg *config.Config, root *scene.Node) (*App, error) {
	a := &App{
		fb:      framebuffer.New(cfg.Graphics.Width, cfg.Graphics.Height),
		ctx:     scene.NewContext(),
		camera:  camera.NewOrbitCamera(),
		root:    root,
		capture: debug.NewScreenshotCapture(cfg.Output.Dir, cfg.Output.Prefix),
	}
	a.camera.Distance = cfg.Camera.Distance
	a.camera.Pitch = cfg.Camera.Pitch
	a.camera.Yaw = cfg.Camera.Yaw
	a.camera.Spin = cfg.Camera.Spin

	if err := a.Configure(cfg); err != nil {
		return nil, err
	}
	return a, nil
}

// Configure applies cfg to the pipeline. On error nothing changes.
func (a *App) Configure(cfg *config.Config) error {
	mode, err := renderer.ParseMode(cfg.Render.Mode)
	if err != nil {
		return err
	}
	kind, err := projection.ParseKind(cfg.Render.Projection)
	if err != nil {
		return err
	}
	order, err := scene.ParseOrder(cfg.Render.Order)
	if err != nil {
		return err
	}
	clearColor, err := config.ParseColor(cfg.Render.ClearColor)
	if err != nil {
		return err
	}
	format, err := debug.ParseFormat(cfg.Output.Format)
	if err != nil {
		return err
	}

	r, err := renderer.New(renderer.Config{
		Mode:         mode,
		Options:      cfg.Render.Options,
		ClearColor:   clearColor,
		Seed:         cfg.Render.Seed,
		NormalLength: cfg.Render.NormalLength,
	})
	if err != nil {
		return err
	}
	if err := a.ctx.SetRenderer(r); err != nil {
		return err
	}
	a.renderer = r

	a.fb.Resize(cfg.Graphics.Width, cfg.Graphics.Height)
	vp := raster.Viewport{
		X: cfg.Render.Viewport.X,
		Y: cfg.Render.Viewport.Y,
		W: cfg.Render.Viewport.W,
		H: cfg.Render.Viewport.H,
	}
	a.ctx.SetViewport(vp)
	a.ctx.SetProjection(kind, projection.Frustum{
		FovY:   math.Radians(cfg.Render.FOV),
		Aspect: aspect(vp, cfg.Graphics.Width, cfg.Graphics.Height),
		Near:   cfg.Render.Near,
		Far:    cfg.Render.Far,
	})
	a.ctx.Queue().SetComparator(order)

	a.capture.SetOutputDir(cfg.Output.Dir)
	a.capture.SetFormat(format)
	a.capture.SetScale(cfg.Output.Scale)

	a.cfg = cfg
	logger.Info("pipeline configured",
		zap.Stringer("mode", mode),
		zap.Stringer("projection", kind),
		zap.String("order", cfg.Render.Order),
		zap.Int("width", cfg.Graphics.Width),
		zap.Int("height", cfg.Graphics.Height),
	)
	return nil
}

// aspect returns the pixel aspect ratio of vp on a width x height target.
func aspect(vp raster.Viewport, width, height int) float32 {
	r := vp.Pixels(width, height)
	if r.MaxY <= r.MinY {
		return 1
	}
	return float32(r.MaxX-r.MinX) / float32(r.MaxY-r.MinY)
}

// Config returns the active configuration.
func (a *App) Config() *config.Config { return a.cfg }

// Framebuffer returns the render target.
func (a *App) Framebuffer() *framebuffer.Framebuffer { return a.fb }

// Context returns the render context.
func (a *App) Context() *scene.Context { return a.ctx }

// Camera returns the orbit camera.
func (a *App) Camera() *camera.OrbitCamera { return a.camera }

// Renderer returns the active renderer.
func (a *App) Renderer() *renderer.Renderer { return a.renderer }

// Frames returns the number of frames rendered.
func (a *App) Frames() uint64 { return a.frames }

// Reload queues cfg to be applied before the next frame. It is safe to call
// from any goroutine; only the latest config is kept.
func (a *App) Reload(cfg *config.Config) {
	a.pending.Store(cfg)
}

// applyPending applies a config queued by Reload, if any.
func (a *App) applyPending() {
	cfg := a.pending.Swap(nil)
	if cfg == nil {
		return
	}
	if err := a.Configure(cfg); err != nil {
		logger.Warn("config rejected, keeping previous", zap.Error(err))
	}
}

// Frame advances the camera by dt seconds, rebuilds the queue from the
// scene graph and renders it.
func (a *App) Frame(dt float32) error {
	a.camera.Update(dt)
	a.camera.Apply(a.ctx)

	a.ctx.Queue().Clear()
	a.ctx.Stack().Reset()
	a.root.Traverse(a.ctx)

	if err := a.ctx.Render(a.fb); err != nil {
		return fmt.Errorf("rendering frame %d: %w", a.frames, err)
	}
	if a.showBounds || a.selected != "" {
		a.drawBounds()
	}
	a.frames++
	return nil
}

// drawBounds overlays the bounding box of the selected object, or of every
// queued object while the overlay is on.
func (a *App) drawBounds() {
	a.fb.BeginFrame()
	defer a.fb.EndFrame()

	vp := a.ctx.Projection().Mul(a.ctx.View())
	for _, item := range a.ctx.Queue().Items() {
		if item.Mesh == nil || (!a.showBounds && item.Key != a.selected) {
			continue
		}
		b := debug.Pad(item.Mesh.Bounds(), debug.DefaultBoxPadding)
		debug.DrawBounds(a.fb, a.ctx.Viewport(), b, vp.Mul(item.Transform), boundsColor)
	}
}

// Selected returns the key of the picked object, or "".
func (a *App) Selected() string { return a.selected }

// PickAt selects the object under framebuffer pixel (x, y), row 0 at the
// bottom, from the last rendered queue. Picking empty space clears the
// selection.
func (a *App) PickAt(x, y float32) string {
	a.selected = ""
	inv, ok := a.ctx.Projection().Mul(a.ctx.View()).Invert()
	if !ok {
		return ""
	}
	w, h := a.fb.Size()
	ray, ok := picking.ScreenToRay(x, y, a.ctx.Viewport(), w, h, inv)
	if !ok {
		return ""
	}
	items := a.ctx.Queue().Items()
	if i := picking.Pick(ray, items); i >= 0 {
		a.selected = items[i].Key
		logger.Debug("object picked", zap.String("key", a.selected))
	}
	return a.selected
}

// Screenshot writes the current color plane to the output directory.
func (a *App) Screenshot() (string, error) {
	path, err := a.capture.CaptureFramebuffer(a.fb)
	if err != nil {
		return "", fmt.Errorf("capturing screenshot: %w", err)
	}
	logger.Info("screenshot saved", zap.String("path", path))
	return path, nil
}

// Action is a discrete viewer command.
type Action int

const (
	ActionNone Action = iota
	ActionToggleSpin
	ActionNextMode
	ActionNextProjection
	ActionToggleAntialiasing
	ActionToggleNormals
	ActionToggleBounds
	ActionScreenshot
	ActionResetCamera
)

// Controls is the user input gathered between two frames.
type Controls struct {
	DragX, DragY float32
	Zoom         float32
	Actions      []Action
	Quit         bool

	// Pick requests selection at PickX, PickY: window position in 0..1,
	// origin at the top left.
	Pick         bool
	PickX, PickY float32
}

// Handle applies user controls. It must not run while a frame is in flight.
func (a *App) Handle(c Controls) error {
	if c.DragX != 0 || c.DragY != 0 {
		a.camera.HandleDrag(c.DragX, c.DragY)
	}
	if c.Zoom != 0 {
		a.camera.HandleZoom(c.Zoom)
	}
	if c.Pick {
		w, h := a.fb.Size()
		a.PickAt(c.PickX*float32(w), (1-c.PickY)*float32(h))
	}

	var errs []error
	for _, act := range c.Actions {
		if err := a.do(act); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func (a *App) do(act Action) error {
	next := *a.cfg
	switch act {
	case ActionToggleSpin:
		if a.camera.Spin != 0 {
			a.camera.Spin = 0
		} else {
			a.camera.Spin = max(a.cfg.Camera.Spin, 0.5)
		}
		return nil
	case ActionToggleBounds:
		a.showBounds = !a.showBounds
		return nil
	case ActionScreenshot:
		_, err := a.Screenshot()
		return err
	case ActionResetCamera:
		a.camera.Distance = a.cfg.Camera.Distance
		a.camera.Pitch = a.cfg.Camera.Pitch
		a.camera.Yaw = a.cfg.Camera.Yaw
		return nil
	case ActionNextMode:
		modes := renderer.Modes()
		i := slices.Index(modes, a.renderer.Mode())
		next.Render.Mode = modes[(i+1)%len(modes)].String()
	case ActionNextProjection:
		kinds := []projection.Kind{projection.KindPerspective, projection.KindCabinet, projection.KindCavalier}
		i := slices.Index(kinds, a.ctx.ProjectionKind())
		next.Render.Projection = kinds[(i+1)%len(kinds)].String()
	case ActionToggleAntialiasing:
		next.Render.Options.Antialiasing = !next.Render.Options.Antialiasing
	case ActionToggleNormals:
		next.Render.Options.DebugNormals = !next.Render.Options.DebugNormals
	default:
		return nil
	}
	return a.Configure(&next)
}
