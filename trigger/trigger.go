// Package trigger chains catalog → pick → snippet → clipboard on each
// trigger event. It is the single catch point: stage failures are logged and
// journaled, never propagated.
package trigger

import (
	"context"
	"log/slog"

	"github.com/kkhys/lgtmd/badge"
	"github.com/kkhys/lgtmd/clip"
	"github.com/kkhys/lgtmd/gate"
	"github.com/kkhys/lgtmd/internal/idgen"
	"github.com/kkhys/lgtmd/pick"
	"github.com/kkhys/lgtmd/snippet"
)

// Catalog fetches the identifier list. Satisfied by *catalog.Client.
type Catalog interface {
	FetchIDs(ctx context.Context) ([]string, error)
}

// FailureRecorder journals failed invocations. Satisfied by *diag.Recorder.
type FailureRecorder interface {
	RecordFailure(ctx context.Context, invocationID, stage string, cause error)
}

// Handler orchestrates one trigger event.
type Handler struct {
	catalog Catalog
	picker  *pick.Picker
	format  snippet.Formatter
	sink    clip.Sink
	gate    *gate.Gate
	badge   *badge.Badge
	rec     FailureRecorder
	logger  *slog.Logger
	newID   idgen.Generator
}

// Option configures a Handler.
type Option func(*Handler)

// WithGate installs the activation gate. Without one the trigger is always
// usable.
func WithGate(g *gate.Gate) Option {
	return func(h *Handler) { h.gate = g }
}

// WithBadge installs the success acknowledgment.
func WithBadge(b *badge.Badge) Option {
	return func(h *Handler) { h.badge = b }
}

// WithRecorder installs the failure journal.
func WithRecorder(r FailureRecorder) Option {
	return func(h *Handler) { h.rec = r }
}

// WithIDGenerator overrides the invocation ID generator.
func WithIDGenerator(gen idgen.Generator) Option {
	return func(h *Handler) { h.newID = gen }
}

// New creates a Handler.
func New(cat Catalog, picker *pick.Picker, format snippet.Formatter, sink clip.Sink, logger *slog.Logger, opts ...Option) *Handler {
	if logger == nil {
		logger = slog.Default()
	}
	h := &Handler{
		catalog: cat,
		picker:  picker,
		format:  format,
		sink:    sink,
		logger:  logger,
		newID:   idgen.Prefixed("inv_", idgen.Default),
	}
	for _, o := range opts {
		o(h)
	}
	return h
}

// Enabled reports whether the trigger surface is currently usable.
func (h *Handler) Enabled() bool {
	return h.gate == nil || h.gate.Enabled()
}

// HandleTrigger runs the chain once. It never propagates an error: any stage
// failure short-circuits the rest, produces exactly one diagnostic record,
// and is logged with a fixed prefix. Overlapping invocations run
// independently; the clipboard and badge follow last-writer-wins.
func (h *Handler) HandleTrigger(ctx context.Context) {
	inv := h.newID()

	ids, err := h.catalog.FetchIDs(ctx)
	if err != nil {
		h.fail(ctx, inv, "catalog", err)
		return
	}

	id, err := h.picker.Pick(ids)
	if err != nil {
		h.fail(ctx, inv, "pick", err)
		return
	}

	text := h.format.Format(id)

	if err := h.sink.Copy(ctx, text); err != nil {
		h.fail(ctx, inv, "clipboard", err)
		return
	}

	h.logger.Info("lgtm: snippet copied", "invocation_id", inv, "id", id)
	if h.badge != nil {
		h.badge.Show(ctx)
	}
}

func (h *Handler) fail(ctx context.Context, inv, stage string, err error) {
	h.logger.Error("lgtm: trigger failed",
		"invocation_id", inv, "stage", stage, "error", err)
	if h.rec != nil {
		h.rec.RecordFailure(ctx, inv, stage, err)
	}
}
