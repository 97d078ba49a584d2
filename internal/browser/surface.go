package browser

import (
	"context"
	"errors"
	"fmt"

	"github.com/go-rod/rod"
)

// ErrNoActiveSurface is returned when no foreground tab can be located, or
// the located target lacks an addressable identity.
var ErrNoActiveSurface = errors.New("browser: no active surface")

// Surface wraps the foreground tab targeted for in-page execution.
type Surface struct {
	page *rod.Page
}

// Location returns the surface's current URL.
func (s *Surface) Location() (string, error) {
	info, err := s.page.Info()
	if err != nil {
		return "", fmt.Errorf("browser: surface info: %w", err)
	}
	return info.URL, nil
}

// Eval runs fn (a JS function literal) inside the surface's page context.
func (s *Surface) Eval(ctx context.Context, fn string, args ...any) error {
	_, err := s.page.Context(ctx).Eval(fn, args...)
	if err != nil {
		return fmt.Errorf("browser: eval: %w", err)
	}
	return nil
}

// Close closes the underlying tab.
func (s *Surface) Close() error {
	if s.page != nil {
		return s.page.Close()
	}
	return nil
}

// candidate is one tab's foreground probe result.
type candidate struct {
	foreground bool
	probeErr   error
	targetID   string
}

// selectCandidate picks the index of the first foreground candidate. Tabs
// whose probe failed (mid-navigation, crashed) are skipped. A foreground tab
// without a target identity cannot be addressed, so selection fails outright
// rather than falling through to a later tab.
func selectCandidate(cands []candidate) (int, error) {
	for i, c := range cands {
		if c.probeErr != nil || !c.foreground {
			continue
		}
		if c.targetID == "" {
			return -1, ErrNoActiveSurface
		}
		return i, nil
	}
	return -1, ErrNoActiveSurface
}

// ActivePage locates exactly one foreground surface: the page whose document
// is visible and holds focus in the current window. Returns
// ErrNoActiveSurface when no page qualifies or the winning target has no ID.
func (m *Manager) ActivePage(ctx context.Context) (*Surface, error) {
	b := m.Browser()
	if b == nil {
		return nil, ErrNoActiveSurface
	}

	pages, err := b.Context(ctx).Pages()
	if err != nil {
		return nil, fmt.Errorf("browser: list pages: %w", err)
	}

	cands := make([]candidate, len(pages))
	for i, p := range pages {
		res, err := p.Context(ctx).Eval(`() => document.visibilityState === "visible" && document.hasFocus()`)
		if err != nil {
			cands[i] = candidate{probeErr: err}
			continue
		}
		cands[i] = candidate{foreground: res.Value.Bool(), targetID: string(p.TargetID)}
	}

	idx, err := selectCandidate(cands)
	if err != nil {
		return nil, err
	}
	return &Surface{page: pages[idx]}, nil
}
