// Package config handles viewer configuration loading and management.
package config

import (
	"errors"
	"fmt"

	"github.com/Faultbox/midgard-sr/internal/engine/renderer"
)

// Config holds all viewer settings.
type Config struct {
	Graphics GraphicsConfig `yaml:"graphics"`
	Render   RenderConfig   `yaml:"render"`
	Camera   CameraConfig   `yaml:"camera"`
	Scene    SceneConfig    `yaml:"scene"`
	Output   OutputConfig   `yaml:"output"`
	Logging  LoggingConfig  `yaml:"logging"`
}

// GraphicsConfig holds display settings.
type GraphicsConfig struct {
	Width      int  `yaml:"width"`
	Height     int  `yaml:"height"`
	Scale      int  `yaml:"scale"` // Window pixels per framebuffer pixel
	Fullscreen bool `yaml:"fullscreen"`
	VSync      bool `yaml:"vsync"`
	FPSLimit   int  `yaml:"fps_limit"`
}

// RenderConfig selects the shading mode, projection and pipeline stages.
type RenderConfig struct {
	Mode         string           `yaml:"mode"`
	Projection   string           `yaml:"projection"`
	FOV          float32          `yaml:"fov"` // Vertical, in degrees
	Near         float32          `yaml:"near"`
	Far          float32          `yaml:"far"`
	Viewport     ViewportConfig   `yaml:"viewport"`
	ClearColor   string           `yaml:"clear_color"`
	Seed         uint64           `yaml:"seed"`
	Order        string           `yaml:"order"`
	NormalLength float32          `yaml:"normal_length"`
	Options      renderer.Options `yaml:"options"`
}

// ViewportConfig is the viewport rectangle in 0..1 framebuffer units.
type ViewportConfig struct {
	X float32 `yaml:"x"`
	Y float32 `yaml:"y"`
	W float32 `yaml:"w"`
	H float32 `yaml:"h"`
}

// CameraConfig holds the initial orbit camera placement.
type CameraConfig struct {
	Distance float32 `yaml:"distance"`
	Pitch    float32 `yaml:"pitch"` // Radians
	Yaw      float32 `yaml:"yaw"`   // Radians
	Spin     float32 `yaml:"spin"`  // Radians per second
}

// SceneConfig customizes the demo scene.
type SceneConfig struct {
	FloorTexture string `yaml:"floor_texture"` // PNG, BMP or TGA; empty for a checkerboard
	ColorKey     string `yaml:"color_key"`     // Texels of this color become transparent
}

// OutputConfig holds snapshot export settings.
type OutputConfig struct {
	Dir    string `yaml:"dir"`
	Prefix string `yaml:"prefix"`
	Format string `yaml:"format"`
	Scale  int    `yaml:"scale"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Graphics: GraphicsConfig{
			Width:  320,
			Height: 240,
			Scale:  2,
			VSync:  true,
		},
		Render: RenderConfig{
			Mode:         "phong",
			Projection:   "perspective",
			FOV:          60,
			Near:         1,
			Far:          100,
			Viewport:     ViewportConfig{W: 1, H: 1},
			ClearColor:   "#202020",
			Seed:         1,
			Order:        "back-to-front",
			NormalLength: 0.25,
			Options:      renderer.DefaultOptions(),
		},
		Camera: CameraConfig{
			Distance: 4,
			Pitch:    0.5,
			Spin:     0.5,
		},
		Output: OutputConfig{
			Dir:    "screenshots",
			Prefix: "frame",
			Format: "png",
			Scale:  1,
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}

// Validate reports settings the pipeline cannot work with.
func (c *Config) Validate() error {
	var errs []error
	if c.Graphics.Width <= 0 || c.Graphics.Height <= 0 {
		errs = append(errs, fmt.Errorf("graphics: invalid size %dx%d", c.Graphics.Width, c.Graphics.Height))
	}
	if c.Graphics.Scale < 1 {
		errs = append(errs, fmt.Errorf("graphics: scale must be at least 1, got %d", c.Graphics.Scale))
	}
	if c.Render.FOV <= 0 || c.Render.FOV >= 180 {
		errs = append(errs, fmt.Errorf("render: fov must be in (0, 180), got %g", c.Render.FOV))
	}
	if c.Render.Viewport.W <= 0 || c.Render.Viewport.H <= 0 {
		errs = append(errs, errors.New("render: viewport has no area"))
	}
	if _, err := ParseColor(c.Render.ClearColor); err != nil {
		errs = append(errs, fmt.Errorf("render: %w", err))
	}
	if c.Scene.ColorKey != "" {
		if _, err := ParseColor(c.Scene.ColorKey); err != nil {
			errs = append(errs, fmt.Errorf("scene: %w", err))
		}
	}
	if c.Output.Scale < 1 {
		errs = append(errs, fmt.Errorf("output: scale must be at least 1, got %d", c.Output.Scale))
	}
	return errors.Join(errs...)
}
