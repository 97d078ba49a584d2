// Package clip writes the formatted snippet to the system clipboard.
//
// The privileged path runs the clipboard primitive inside the foreground
// page rather than in the daemon's own process, mirroring the host-restricted
// environments this tool originated in. A direct OS adapter exists for
// headless deployments.
package clip

import (
	"context"
	"fmt"

	"github.com/atotto/clipboard"

	"github.com/kkhys/lgtmd/internal/browser"
)

// Sink is the capability the orchestrator depends on abstractly.
type Sink interface {
	// Copy writes text to the system clipboard, replacing prior content.
	// No read-back verification is performed.
	Copy(ctx context.Context, text string) error
}

// copyJS executes the clipboard write in page context. The async clipboard
// API needs focus; the execCommand path covers pages where it is missing.
const copyJS = `(text) => {
	if (navigator.clipboard && navigator.clipboard.writeText) {
		return navigator.clipboard.writeText(text);
	}
	const ta = document.createElement("textarea");
	ta.value = text;
	document.body.appendChild(ta);
	ta.select();
	document.execCommand("copy");
	ta.remove();
}`

// PageSink writes through the foreground browser tab.
type PageSink struct {
	mgr Manager
}

// Manager is the subset of the browser layer PageSink needs. Satisfied by
// *browser.Manager; substituted in tests.
type Manager interface {
	ActivePage(ctx context.Context) (*browser.Surface, error)
}

// NewPageSink creates a PageSink over the browser manager.
func NewPageSink(mgr Manager) *PageSink {
	return &PageSink{mgr: mgr}
}

// Copy locates the foreground surface and runs the clipboard write in its
// context. Propagates browser.ErrNoActiveSurface when no tab qualifies.
func (s *PageSink) Copy(ctx context.Context, text string) error {
	surface, err := s.mgr.ActivePage(ctx)
	if err != nil {
		return err
	}
	if err := surface.Eval(ctx, copyJS, text); err != nil {
		return fmt.Errorf("clip: page write: %w", err)
	}
	return nil
}

// SystemSink writes the OS clipboard directly from the daemon's process.
type SystemSink struct{}

// NewSystemSink creates a SystemSink.
func NewSystemSink() *SystemSink {
	return &SystemSink{}
}

// Copy writes text via the platform clipboard mechanism.
func (SystemSink) Copy(_ context.Context, text string) error {
	if err := clipboard.WriteAll(text); err != nil {
		return fmt.Errorf("clip: system write: %w", err)
	}
	return nil
}
