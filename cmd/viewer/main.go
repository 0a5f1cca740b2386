// Package main is the entry point for the interactive software renderer
// viewer.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"github.com/Faultbox/midgard-sr/internal/app"
	"github.com/Faultbox/midgard-sr/internal/config"
	"github.com/Faultbox/midgard-sr/internal/engine/input"
	"github.com/Faultbox/midgard-sr/internal/engine/window"
	"github.com/Faultbox/midgard-sr/internal/logger"
)

func main() {
	// Parse CLI flags first
	config.ParseFlags()

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Config error: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	if err := logger.Init(cfg.Logging.Level, cfg.Logging.LogFile); err != nil {
		fmt.Fprintf(os.Stderr, "Logger error: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	logger.Info("=== Midgard SR Viewer ===")
	logger.Sugar.Debugf("Config: %+v", cfg)

	if err := run(cfg); err != nil {
		logger.Error("viewer error", zap.Error(err))
		os.Exit(1)
	}

	logger.Info("viewer closed normally")
}

func run(cfg *config.Config) error {
	root, err := app.SceneFromConfig(cfg)
	if err != nil {
		return err
	}
	a, err := app.New(cfg, root)
	if err != nil {
		return fmt.Errorf("creating app: %w", err)
	}

	win, err := window.New(window.Config{
		Title:      "Midgard SR",
		Width:      cfg.Graphics.Width,
		Height:     cfg.Graphics.Height,
		Scale:      cfg.Graphics.Scale,
		Fullscreen: cfg.Graphics.Fullscreen,
		VSync:      cfg.Graphics.VSync,
	})
	if err != nil {
		return fmt.Errorf("creating window: %w", err)
	}
	defer win.Close()

	var watcher *config.Watcher
	if path := config.Resolve(); path != "" {
		watcher, err = config.NewWatcher(path)
		if err != nil {
			logger.Warn("config hot reload disabled", zap.Error(err))
		} else {
			logger.Info("watching config", zap.String("path", watcher.Path()))
		}
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return a.Run(ctx, &display{win: win, in: input.New()}, watcher)
}
