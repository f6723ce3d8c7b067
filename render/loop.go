// Package render - Render loop that turns coalesced redraw requests into draw passes.
package render

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/nvr-ai/go-overlay/overlay"
)

// Target supplies a canvas for each pass and displays it afterwards. Canvas is
// expected to return a surface already holding the latest preview frame.
type Target interface {
	Canvas() (overlay.Canvas, error)
	Present(c overlay.Canvas) error
}

// Config controls the render cadence.
type Config struct {
	// FrameInterval forces a pass at this period so preview frames keep refreshing
	// even when no annotation changed. Zero redraws only on request.
	FrameInterval time.Duration `json:"frame_interval"`
}

// DefaultConfig returns a ~30fps render cadence.
func DefaultConfig() Config {
	return Config{FrameInterval: 33 * time.Millisecond}
}

// Validate checks the configuration.
func (c Config) Validate() error {
	if c.FrameInterval < 0 {
		return errors.Errorf("frame interval must be >= 0, got %s", c.FrameInterval)
	}
	return nil
}

// Stats summarises the loop's activity.
type Stats struct {
	Passes   uint64        `json:"passes"`
	Errors   uint64        `json:"errors"`
	LastPass time.Duration `json:"last_pass"`
}

// Loop draws an overlay onto a target whenever a redraw is requested or the frame
// interval elapses.
type Loop struct {
	overlay *overlay.Overlay
	target  Target
	cfg     Config
	logger  *zap.Logger

	passes   atomic.Uint64
	errors   atomic.Uint64
	lastPass atomic.Int64
}

// NewLoop creates a render loop. A nil logger disables logging.
func NewLoop(ov *overlay.Overlay, target Target, cfg Config, logger *zap.Logger) *Loop {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Loop{
		overlay: ov,
		target:  target,
		cfg:     cfg,
		logger:  logger,
	}
}

// Run draws until ctx is cancelled. Failed passes are counted and logged; they do
// not stop the loop.
func (l *Loop) Run(ctx context.Context) error {
	var tick <-chan time.Time
	if l.cfg.FrameInterval > 0 {
		ticker := time.NewTicker(l.cfg.FrameInterval)
		defer ticker.Stop()
		tick = ticker.C
	}

	l.logger.Info("render loop started", zap.Duration("frame_interval", l.cfg.FrameInterval))
	defer l.logger.Info("render loop stopped", zap.Uint64("passes", l.passes.Load()))

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-l.overlay.Redraw():
		case <-tick:
			// This pass covers any request that is already pending.
			select {
			case <-l.overlay.Redraw():
			default:
			}
		}

		if err := l.Pass(); err != nil {
			l.logger.Warn("render pass failed", zap.Error(err))
		}
	}
}

// Pass runs a single draw pass: fetch a canvas, draw the overlay, present.
func (l *Loop) Pass() error {
	start := time.Now()

	c, err := l.target.Canvas()
	if err != nil {
		l.errors.Add(1)
		return errors.Wrap(err, "failed to acquire canvas")
	}

	l.overlay.Draw(c)

	if err := l.target.Present(c); err != nil {
		l.errors.Add(1)
		return errors.Wrap(err, "failed to present canvas")
	}

	l.passes.Add(1)
	l.lastPass.Store(int64(time.Since(start)))
	return nil
}

// Stats returns a snapshot of the loop counters.
func (l *Loop) Stats() Stats {
	return Stats{
		Passes:   l.passes.Load(),
		Errors:   l.errors.Load(),
		LastPass: time.Duration(l.lastPass.Load()),
	}
}

// CollectMetrics reports the loop counters as gauges.
func (l *Loop) CollectMetrics() map[string]float64 {
	s := l.Stats()
	return map[string]float64{
		"render_passes":       float64(s.Passes),
		"render_errors":       float64(s.Errors),
		"render_last_pass_ms": float64(s.LastPass) / float64(time.Millisecond),
	}
}
