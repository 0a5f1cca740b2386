package config

import "flag"

var (
	flagConfig     = flag.String("config", "", "Path to config file")
	flagDebug      = flag.Bool("debug", false, "Enable debug logging")
	flagWindowed   = flag.Bool("windowed", false, "Run in windowed mode")
	flagFullscreen = flag.Bool("fullscreen", false, "Run in fullscreen mode")
	flagWidth      = flag.Int("width", 0, "Framebuffer width")
	flagHeight     = flag.Int("height", 0, "Framebuffer height")
	flagMode       = flag.String("mode", "", "Shading mode (solid, points, wireframe, flat, random, depth, normals, gouraud, phong, textured)")
	flagProjection = flag.String("projection", "", "Projection (perspective, cabinet, cavalier)")
	flagOrder      = flag.String("order", "", "Queue order (fifo, back-to-front, front-to-back)")
	flagAA         = flag.Bool("aa", false, "Enable edge antialiasing")
	flagOutput     = flag.String("output", "", "Snapshot output directory")
	flagFormat     = flag.String("format", "", "Snapshot format (png, bmp)")
)

// ParseFlags parses command-line flags. Call this early in main().
func ParseFlags() {
	flag.Parse()
}

// ConfigPath returns the explicit config path if provided via --config flag.
func ConfigPath() string {
	return *flagConfig
}

// applyFlags applies CLI flag overrides to the config.
func applyFlags(cfg *Config) {
	if *flagDebug {
		cfg.Logging.Level = "debug"
	}
	if *flagWindowed {
		cfg.Graphics.Fullscreen = false
	}
	if *flagFullscreen {
		cfg.Graphics.Fullscreen = true
	}
	if *flagWidth > 0 {
		cfg.Graphics.Width = *flagWidth
	}
	if *flagHeight > 0 {
		cfg.Graphics.Height = *flagHeight
	}
	if *flagMode != "" {
		cfg.Render.Mode = *flagMode
	}
	if *flagProjection != "" {
		cfg.Render.Projection = *flagProjection
	}
	if *flagOrder != "" {
		cfg.Render.Order = *flagOrder
	}
	if *flagAA {
		cfg.Render.Options.Antialiasing = true
	}
	if *flagOutput != "" {
		cfg.Output.Dir = *flagOutput
	}
	if *flagFormat != "" {
		cfg.Output.Format = *flagFormat
	}
}
