package browser

import (
	"context"
	"sync"
)

// showOverlayJS draws (or updates) a fixed-position acknowledgment element
// in the page. Idempotent per page.
const showOverlayJS = `(label, color) => {
	let el = document.getElementById("__lgtmd_badge");
	if (!el) {
		el = document.createElement("div");
		el.id = "__lgtmd_badge";
		el.style.cssText =
			"position:fixed;top:12px;right:12px;z-index:2147483647;" +
			"padding:4px 10px;border-radius:10px;color:#fff;" +
			"font:bold 14px sans-serif;pointer-events:none;";
		document.documentElement.appendChild(el);
	}
	el.textContent = label;
	el.style.background = color;
}`

const clearOverlayJS = `() => {
	const el = document.getElementById("__lgtmd_badge");
	if (el) el.remove();
}`

// OverlayBadge renders the badge as an on-page overlay in the foreground
// tab. It remembers which surface it drew on so the timed clear removes the
// overlay from that same page even if focus moved since.
type OverlayBadge struct {
	mgr *Manager

	mu   sync.Mutex
	last *Surface
}

// NewOverlayBadge creates an OverlayBadge over the manager's browser.
func NewOverlayBadge(mgr *Manager) *OverlayBadge {
	return &OverlayBadge{mgr: mgr}
}

// SetBadge draws the overlay on the current foreground surface.
func (o *OverlayBadge) SetBadge(ctx context.Context, label, color string) error {
	s, err := o.mgr.ActivePage(ctx)
	if err != nil {
		return err
	}
	if err := s.Eval(ctx, showOverlayJS, label, color); err != nil {
		return err
	}
	o.mu.Lock()
	o.last = s
	o.mu.Unlock()
	return nil
}

// ClearBadge removes the overlay from the surface it was drawn on.
func (o *OverlayBadge) ClearBadge(ctx context.Context) error {
	o.mu.Lock()
	s := o.last
	o.last = nil
	o.mu.Unlock()
	if s == nil {
		return nil
	}
	return s.Eval(ctx, clearOverlayJS)
}
