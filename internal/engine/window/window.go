// Package window presents the software framebuffer in an SDL2 window.
package window

import (
	"encoding/binary"
	"fmt"
	"runtime"

	"github.com/veandco/go-sdl2/sdl"
	"go.uber.org/zap"

	"github.com/Faultbox/midgard-sr/internal/logger"
)

func init() {
	// SDL video calls must be made from the main thread
	runtime.LockOSThread()
}

// Config holds window configuration.
type Config struct {
	Title      string
	Width      int // Framebuffer width in pixels
	Height     int // Framebuffer height in pixels
	Scale      int // Window pixels per framebuffer pixel
	Fullscreen bool
	VSync      bool
}

// Window wraps an SDL2 window with a 2D renderer and a streaming texture
// the color plane is uploaded to.
type Window struct {
	config   Config
	window   *sdl.Window
	renderer *sdl.Renderer
	texture  *sdl.Texture
	texW     int
	texH     int
}

// New creates a new window.
func New(cfg Config) (*Window, error) {
	cfg.Scale = max(cfg.Scale, 1)
	w := &Window{
		config: cfg,
	}

	logger.Info("initializing SDL2")
	if err := sdl.Init(sdl.INIT_VIDEO | sdl.INIT_EVENTS); err != nil {
		return nil, fmt.Errorf("SDL_Init failed: %w", err)
	}

	// Nearest-neighbor scaling keeps framebuffer pixels square
	sdl.SetHint(sdl.HINT_RENDER_SCALE_QUALITY, "0")

	flags := uint32(sdl.WINDOW_SHOWN | sdl.WINDOW_RESIZABLE)
	if cfg.Fullscreen {
		flags |= sdl.WINDOW_FULLSCREEN_DESKTOP
	}

	var err error
	w.window, err = sdl.CreateWindow(
		cfg.Title,
		sdl.WINDOWPOS_CENTERED,
		sdl.WINDOWPOS_CENTERED,
		int32(cfg.Width*cfg.Scale),
		int32(cfg.Height*cfg.Scale),
		flags,
	)
	if err != nil {
		sdl.Quit()
		return nil, fmt.Errorf("SDL_CreateWindow failed: %w", err)
	}

	rflags := uint32(sdl.RENDERER_ACCELERATED)
	if cfg.VSync {
		rflags |= sdl.RENDERER_PRESENTVSYNC
	}
	w.renderer, err = sdl.CreateRenderer(w.window, -1, rflags)
	if err != nil {
		logger.Warn("accelerated renderer unavailable, using software", zap.Error(err))
		w.renderer, err = sdl.CreateRenderer(w.window, -1, sdl.RENDERER_SOFTWARE)
	}
	if err != nil {
		w.window.Destroy()
		sdl.Quit()
		return nil, fmt.Errorf("SDL_CreateRenderer failed: %w", err)
	}

	logger.Info("window created",
		zap.String("title", cfg.Title),
		zap.Int("width", cfg.Width),
		zap.Int("height", cfg.Height),
		zap.Int("scale", cfg.Scale),
		zap.Bool("fullscreen", cfg.Fullscreen),
		zap.Bool("vsync", cfg.VSync),
	)

	return w, nil
}

// Close destroys the window and cleans up SDL2.
func (w *Window) Close() {
	logger.Info("closing window")

	if w.texture != nil {
		w.texture.Destroy()
	}
	if w.renderer != nil {
		w.renderer.Destroy()
	}
	if w.window != nil {
		w.window.Destroy()
	}

	sdl.Quit()
}

// Present uploads a bottom-up ARGB color plane and shows it, scaled to
// the window with its aspect ratio kept.
func (w *Window) Present(pixels []uint32, width, height int) error {
	if err := w.ensureTexture(width, height); err != nil {
		return err
	}

	buf, pitch, err := w.texture.Lock(nil)
	if err != nil {
		return fmt.Errorf("locking texture: %w", err)
	}
	copyFlipped(buf, pitch, pixels, width, height)
	w.texture.Unlock()

	if err := w.renderer.Clear(); err != nil {
		return fmt.Errorf("clearing renderer: %w", err)
	}
	if err := w.renderer.Copy(w.texture, nil, nil); err != nil {
		return fmt.Errorf("copying texture: %w", err)
	}
	w.renderer.Present()
	return nil
}

// ensureTexture (re)creates the streaming texture for the given size.
func (w *Window) ensureTexture(width, height int) error {
	if w.texture != nil && w.texW == width && w.texH == height {
		return nil
	}
	if w.texture != nil {
		w.texture.Destroy()
		w.texture = nil
	}

	tex, err := w.renderer.CreateTexture(sdl.PIXELFORMAT_ARGB8888, sdl.TEXTUREACCESS_STREAMING, int32(width), int32(height))
	if err != nil {
		return fmt.Errorf("SDL_CreateTexture failed: %w", err)
	}
	if err := w.renderer.SetLogicalSize(int32(width), int32(height)); err != nil {
		logger.Warn("failed to set logical size", zap.Error(err))
	}

	w.texture, w.texW, w.texH = tex, width, height
	logger.Debug("streaming texture created", zap.Int("width", width), zap.Int("height", height))
	return nil
}

// copyFlipped writes src, whose row 0 is the bottom, into a top-down
// ARGB8888 buffer with the given row pitch in bytes.
func copyFlipped(dst []byte, pitch int, src []uint32, width, height int) {
	for y := 0; y < height; y++ {
		row := src[(height-1-y)*width : (height-y)*width]
		out := dst[y*pitch:]
		for x, c := range row {
			binary.NativeEndian.PutUint32(out[x*4:], c)
		}
	}
}

// GetSize returns the current window size.
func (w *Window) GetSize() (int, int) {
	width, height := w.window.GetSize()
	return int(width), int(height)
}

// SetTitle sets the window title.
func (w *Window) SetTitle(title string) {
	w.window.SetTitle(title)
}
