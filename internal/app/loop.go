package app

import (
	"context"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/Faultbox/midgard-sr/internal/config"
	"github.com/Faultbox/midgard-sr/internal/logger"
)

// Display shows finished frames and gathers user input. Both methods are
// called on the goroutine that called Run.
type Display interface {
	Poll() Controls
	Present(pixels []uint32, width, height int) error
}

// Run renders on a worker goroutine and presents on the calling goroutine
// until the display asks to quit or ctx is done. While frame N+1 renders,
// the display shows a copy of frame N; at most one frame is in flight.
// A non-nil watcher feeds config reloads that are applied between frames.
func (a *App) Run(ctx context.Context, d Display, w *config.Watcher) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	g, gctx := errgroup.WithContext(ctx)

	requests := make(chan float32)
	results := make(chan error, 1)
	g.Go(func() error {
		defer close(results)
		for dt := range requests {
			results <- a.Frame(dt)
		}
		return nil
	})

	if w != nil {
		g.Go(func() error {
			return w.Run(gctx, a.Reload)
		})
	}

	err := a.loop(gctx, d, requests, results)
	close(requests)
	cancel()
	if werr := g.Wait(); err == nil {
		err = werr
	}
	return err
}

func (a *App) loop(ctx context.Context, d Display, requests chan<- float32, results <-chan error) error {
	var (
		pixels []uint32
		width  int
		height int
		last   = time.Now()

		frameCount int
		fpsTimer   = time.Now()
	)
	logger.Info("frame loop started")

	for {
		if ctx.Err() != nil {
			return nil
		}
		start := time.Now()

		// No frame is in flight: scene, camera and renderer may change.
		c := d.Poll()
		if c.Quit {
			logger.Info("frame loop stopped", zap.Uint64("frames", a.frames))
			return nil
		}
		if err := a.Handle(c); err != nil {
			logger.Warn("control failed", zap.Error(err))
		}
		a.applyPending()

		dt := float32(start.Sub(last).Seconds())
		last = start
		select {
		case requests <- dt:
		case <-ctx.Done():
			return nil
		}

		if pixels != nil {
			if err := d.Present(pixels, width, height); err != nil {
				<-results
				return err
			}
		}

		select {
		case err := <-results:
			if err != nil {
				return err
			}
		case <-ctx.Done():
			return nil
		}
		pixels, width, height = a.fb.Snapshot(pixels)

		frameCount++
		if time.Since(fpsTimer) >= time.Second {
			logger.Debug("fps", zap.Int("count", frameCount), zap.Float32("dt_ms", dt*1000))
			frameCount = 0
			fpsTimer = time.Now()
		}

		if limit := a.cfg.Graphics.FPSLimit; limit > 0 {
			if wait := time.Second/time.Duration(limit) - time.Since(start); wait > 0 {
				time.Sleep(wait)
			}
		}
	}
}
