// Package renderer runs the software rasterization pipeline: vertex stage,
// clipping, perspective divide, rasterization and fragment stage.
package renderer

import (
	"fmt"
	"math/rand/v2"
	"time"

	"go.uber.org/zap"

	"github.com/Faultbox/midgard-sr/internal/engine/clip"
	"github.com/Faultbox/midgard-sr/internal/engine/framebuffer"
	"github.com/Faultbox/midgard-sr/internal/engine/postfx"
	"github.com/Faultbox/midgard-sr/internal/engine/raster"
	"github.com/Faultbox/midgard-sr/internal/engine/scene"
	"github.com/Faultbox/midgard-sr/internal/logger"
	"github.com/Faultbox/midgard-sr/pkg/color"
)

// Config holds renderer configuration.
type Config struct {
	Mode       Mode
	Options    Options
	ClearColor color.ARGB
	Seed       uint64
	// NormalLength is the view-space length of debug normal lines.
	NormalLength float32
}

// DefaultConfig returns a solid renderer with default options.
func DefaultConfig() Config {
	return Config{
		Mode:         ModeSolid,
		Options:      DefaultOptions(),
		ClearColor:   color.Black,
		Seed:         1,
		NormalLength: 0.25,
	}
}

// Stats counts the work done by the last Apply.
type Stats struct {
	Objects   int
	Culled    int
	Triangles int
	Discarded int
	Fragments int
	Written   int
	Duration  time.Duration
}

// normalColor is the color of debug normal lines.
var normalColor = color.RGBA{R: 1, G: 1, B: 0, A: 1}

// Renderer draws a scene queue with one shading variant.
type Renderer struct {
	config  Config
	variant variant
	filter  framebuffer.Filter

	state    State
	pcg      *rand.PCG
	prepared bool
	stats    Stats

	// Scratch buffers reused across frames.
	verts   []raster.Vertex
	clipped []raster.Vertex
}

var _ scene.Renderer = (*Renderer)(nil)

// New creates a renderer for cfg.Mode.
func New(cfg Config) (*Renderer, error) {
	v, ok := registry[cfg.Mode]
	if !ok {
		return nil, fmt.Errorf("%w: %d", ErrUnknownMode, int(cfg.Mode))
	}
	if cfg.NormalLength <= 0 {
		cfg.NormalLength = DefaultConfig().NormalLength
	}
	return &Renderer{
		config:  cfg,
		variant: v,
		filter:  postfx.NewFXAA(),
	}, nil
}

// Mode returns the shading variant.
func (r *Renderer) Mode() Mode { return r.config.Mode }

// Options returns the pipeline toggles.
func (r *Renderer) Options() Options { return r.config.Options }

// SetOptions replaces the pipeline toggles. Call Prepare again to validate
// them.
func (r *Renderer) SetOptions(o Options) {
	r.config.Options = o
	r.prepared = false
}

// Stats returns the counters of the last frame.
func (r *Renderer) Stats() Stats { return r.stats }

// Prepare validates the options and reseeds the random source.
func (r *Renderer) Prepare() error {
	if r.config.Options.OcclusionCulling {
		return fmt.Errorf("occlusion culling: %w", ErrNotImplemented)
	}
	r.state.Options = r.config.Options
	r.pcg = rand.NewPCG(r.config.Seed, r.config.Seed)
	r.state.Rand = rand.New(r.pcg)
	r.prepared = true

	logger.Info("renderer prepared",
		zap.Stringer("mode", r.config.Mode),
		zap.Bool("clipping", r.config.Options.Clipping),
		zap.Bool("antialiasing", r.config.Options.Antialiasing),
	)
	return nil
}

// Apply renders the context's queue into fb. The frame lock of fb is held
// for the whole frame.
func (r *Renderer) Apply(ctx *scene.Context, fb *framebuffer.Framebuffer) error {
	switch {
	case ctx == nil:
		return ErrNoContext
	case fb == nil:
		return ErrNoFramebuffer
	case ctx.Queue() == nil:
		return ErrNoQueue
	case !ctx.Viewport().Valid():
		return ErrNoViewport
	}
	if !r.prepared {
		if err := r.Prepare(); err != nil {
			return err
		}
	}

	start := time.Now()
	r.stats = Stats{}
	opts := r.config.Options
	st := &r.state
	// Same seed every frame so per-face colors stay put.
	r.pcg.Seed(r.config.Seed, r.config.Seed)

	fb.BeginFrame()
	defer fb.EndFrame()

	fb.Tests.Scissor = opts.ScissorTest
	fb.Tests.Alpha = opts.AlphaTest
	fb.Tests.Stencil = opts.StencilTest
	fb.Tests.Depth = opts.DepthTest
	fb.SetClearColor(r.config.ClearColor)
	fb.SetFilter(r.filter)
	fb.SetAntialiasing(opts.Antialiasing)
	fb.Clear()

	q := ctx.Queue()
	q.Sort(ctx.Viewpoint())
	st.beginFrame(ctx, q.Lights())

	items := q.Items()
	for i := range items {
		r.draw(ctx, fb, &items[i])
	}

	fb.PostProcess()

	r.stats.Duration = time.Since(start)
	logger.Debug("frame rendered",
		zap.Int("objects", r.stats.Objects),
		zap.Int("culled", r.stats.Culled),
		zap.Int("triangles", r.stats.Triangles),
		zap.Int("fragments", r.stats.Fragments),
		zap.Int("written", r.stats.Written),
		zap.Duration("duration", r.stats.Duration),
	)
	return nil
}

// draw runs the pipeline for one renderable.
func (r *Renderer) draw(ctx *scene.Context, fb *framebuffer.Framebuffer, item *scene.Renderable) {
	st := &r.state
	opts := st.Options
	prog := r.variant.program
	mesh := item.Mesh
	if mesh == nil {
		return
	}
	r.stats.Objects++

	// 1. bind matrices
	st.bind(item)

	if opts.FrustumCulling && clip.OutsideFrustum(mesh.Bounds().Corners(), st.ModelViewProjection) {
		r.stats.Culled++
		return
	}

	// 2. vertex stage
	vertices := mesh.Vertices()
	if cap(r.verts) < len(vertices) {
		r.verts = make([]raster.Vertex, len(vertices))
	}
	r.verts = r.verts[:len(vertices)]
	for i := range vertices {
		prog.Vertex(st, vertices[i], &r.verts[i])
	}

	w, h := fb.Size()
	vp := ctx.Viewport()
	bounds := fb.Bounds()
	vpRect := vp.Pixels(w, h)
	bounds = raster.Rect{
		MinX: max(bounds.MinX, vpRect.MinX),
		MinY: max(bounds.MinY, vpRect.MinY),
		MaxX: min(bounds.MaxX, vpRect.MaxX),
		MaxY: min(bounds.MaxY, vpRect.MaxY),
	}
	culler := clip.Culler{Enabled: opts.BackfaceCulling && r.variant.cull, BackSign: -1}

	emit := func(f raster.Fragment) {
		r.stats.Fragments++
		if fb.Write(f, prog.Fragment(st, f)) {
			r.stats.Written++
		}
	}

	setup, _ := prog.(faceSetup)
	for fi, face := range mesh.Faces() {
		st.Face = fi
		st.FaceNormal = st.Normal.TransformDirection(face.Normal).Normalize()
		if setup != nil {
			setup.BeginFace(st)
		}

		tri := [3]raster.Vertex{
			r.verts[face.Vertices[0]],
			r.verts[face.Vertices[1]],
			r.verts[face.Vertices[2]],
		}
		if face.HasUV {
			for k := range tri {
				tri[k].UV = face.UV[k]
			}
		}

		// 3. clipping
		prims := tri[:]
		if opts.Clipping {
			r.clipped = clip.Triangles(tri[:])
			prims = r.clipped
		}

		for k := 0; k+2 < len(prims); k += 3 {
			r.stats.Triangles++

			// 4. perspective divide
			var frags [3]raster.Fragment
			ok := true
			for j := 0; j < 3; j++ {
				v := prims[k+j]
				ndc, valid := v.Position.Divide()
				if !valid {
					ok = false
					break
				}
				v.Position = ndc
				frags[j] = vp.ToScreen(v, w, h)
			}
			if !ok {
				r.stats.Discarded++
				continue
			}

			// 5. rasterization
			if culler.Cull(frags[0], frags[1], frags[2]) {
				r.stats.Culled++
				continue
			}
			// 6. fragment stage runs inside emit
			prog.Assemble(st, frags, bounds, emit)
		}
	}

	if opts.DebugNormals {
		r.drawNormals(fb, vp, vpRect)
	}
}

// drawNormals draws a line along each vertex normal. The lines bypass the
// fragment tests and are only depth tested.
func (r *Renderer) drawNormals(fb *framebuffer.Framebuffer, vp raster.Viewport, bounds raster.Rect) {
	st := &r.state
	w, h := fb.Size()
	c := normalColor.Pack()

	for i := range r.verts {
		v := r.verts[i]
		tip := v.Eye.Add(v.Normal.Scale(r.config.NormalLength))

		a, okA := v.Position.Divide()
		b, okB := st.Projection.MulVec4(tip.Point()).Divide()
		if !okA || !okB || clip.Outcode(v.Position) != 0 {
			continue
		}
		from := vp.ToScreen(raster.Vertex{Position: a}, w, h)
		to := vp.ToScreen(raster.Vertex{Position: b}, w, h)

		raster.DrawLine(from, to, bounds, func(f raster.Fragment) {
			fb.SetPixel(int(f.X), int(f.Y), f.Z, c)
		})
	}
}
