// Package badge drives the transient success acknowledgment shown on the
// trigger surface.
package badge

import (
	"context"
	"log/slog"
	"sync"
	"time"
)

// Setter is the host capability that renders badge text. Implementations
// draw on whatever surface is available (an on-page overlay, a status line).
type Setter interface {
	SetBadge(ctx context.Context, label, color string) error
	ClearBadge(ctx context.Context) error
}

// Badge is a two-valued flag (shown/hidden) with a time-bounded automatic
// reversion to hidden. One shared timer, reset on every Show: when triggers
// overlap the last one wins and keeps its full duration, so an earlier
// trigger can never clear a later badge prematurely.
type Badge struct {
	setter   Setter
	label    string
	color    string
	duration time.Duration
	logger   *slog.Logger

	mu    sync.Mutex
	timer *time.Timer
	shown bool
}

// Config configures a Badge.
type Config struct {
	// Label is the acknowledgment text. Default: "✓".
	Label string
	// Color is the badge background color. Default: "#28a745".
	Color string
	// Duration is how long the badge stays visible. Default: 2s.
	Duration time.Duration

	Logger *slog.Logger
}

func (c *Config) defaults() {
	if c.Label == "" {
		c.Label = "✓"
	}
	if c.Color == "" {
		c.Color = "#28a745"
	}
	if c.Duration <= 0 {
		c.Duration = 2 * time.Second
	}
	if c.Logger == nil {
		c.Logger = slog.Default()
	}
}

// New creates a Badge over the given setter.
func New(setter Setter, cfg Config) *Badge {
	cfg.defaults()
	return &Badge{
		setter:   setter,
		label:    cfg.Label,
		color:    cfg.Color,
		duration: cfg.Duration,
		logger:   cfg.Logger,
	}
}

// Show sets the badge and arms the clear timer. Calling Show again before
// the timer fires resets it.
func (b *Badge) Show(ctx context.Context) {
	if err := b.setter.SetBadge(ctx, b.label, b.color); err != nil {
		b.logger.Warn("badge: set failed", "error", err)
		return
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	b.shown = true
	if b.timer != nil {
		b.timer.Stop()
	}
	var t *time.Timer
	t = time.AfterFunc(b.duration, func() { b.clear(t) })
	b.timer = t
}

// Hidden reports whether the badge is currently hidden.
func (b *Badge) Hidden() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return !b.shown
}

// Stop cancels a pending clear timer without touching the surface.
func (b *Badge) Stop() {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.timer != nil {
		b.timer.Stop()
		b.timer = nil
	}
}

// clear reverts the badge to hidden. A callback from a superseded timer can
// still fire after Show re-arms; it must not touch the newer badge, so only
// the currently armed timer's callback proceeds.
func (b *Badge) clear(t *time.Timer) {
	b.mu.Lock()
	if b.timer != t {
		b.mu.Unlock()
		return
	}
	b.shown = false
	b.timer = nil
	b.mu.Unlock()

	// The surface write is fire-and-forget: the flag flips even if it fails.
	if err := b.setter.ClearBadge(context.Background()); err != nil {
		b.logger.Warn("badge: clear failed", "error", err)
	}
}
