// Package gate restricts when the trigger affordance is usable.
//
// Inside an extension runtime this is a declarative rule evaluated by the
// host. Outside one there is no such evaluator, so the gate is an explicit
// two-state machine: a pure host-suffix predicate re-evaluated on every
// navigation event reported by the browser layer.
package gate

import (
	"net/url"
	"strings"
	"sync"
)

// State is the activation state of the trigger surface.
type State int

const (
	// Disabled is the initial state and the default after every
	// install/update event, before any rule is installed.
	Disabled State = iota
	// Enabled holds only while the foreground location matches a rule.
	Enabled
)

func (s State) String() string {
	if s == Enabled {
		return "enabled"
	}
	return "disabled"
}

// Rule maps a host-suffix predicate to the Enabled action.
type Rule struct {
	HostSuffix string
}

// Matches reports whether the location's host is the rule's domain or a
// subdomain of it. A dot-prefixed suffix (".github.com") matches the apex
// domain too; a bare suffix ("github.com") still requires a dot boundary, so
// "evilgithub.com" never qualifies. The port is ignored and matching is
// case-insensitive.
func (r Rule) Matches(location string) bool {
	u, err := url.Parse(location)
	if err != nil {
		return false
	}
	host := strings.ToLower(u.Hostname())
	if host == "" {
		return false
	}
	suffix := strings.ToLower(r.HostSuffix)
	if suffix == "" {
		return false
	}
	if !strings.HasPrefix(suffix, ".") {
		suffix = "." + suffix
	}
	return host == suffix[1:] || strings.HasSuffix(host, suffix)
}

// Gate is the activation state machine. Safe for concurrent use: navigation
// events and trigger reads come from different goroutines.
type Gate struct {
	mu    sync.RWMutex
	rules []Rule
	state State
}

// New creates a Gate in the Disabled state with no rules installed.
func New() *Gate {
	return &Gate{}
}

// HandleInstalled is the install-or-update lifecycle hook. It forces the
// state back to Disabled, clears any previously installed rules, and
// installs exactly one rule for hostSuffix. Fire-and-forget: the rule is not
// re-checked until the next navigation event.
func (g *Gate) HandleInstalled(hostSuffix string) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.state = Disabled
	g.rules = nil
	g.rules = append(g.rules, Rule{HostSuffix: hostSuffix})
}

// OnNavigate re-evaluates the rule set against the new foreground location
// and returns the resulting state.
func (g *Gate) OnNavigate(location string) State {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.state = Disabled
	for _, r := range g.rules {
		if r.Matches(location) {
			g.state = Enabled
			break
		}
	}
	return g.state
}

// State returns the current activation state.
func (g *Gate) State() State {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.state
}

// Enabled reports whether the trigger surface is currently usable.
func (g *Gate) Enabled() bool {
	return g.State() == Enabled
}

// Rules returns a copy of the installed rule set.
func (g *Gate) Rules() []Rule {
	g.mu.RLock()
	defer g.mu.RUnlock()
	out := make([]Rule, len(g.rules))
	copy(out, g.rules)
	return out
}
