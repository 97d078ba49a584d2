package gate

import "testing"

func TestGate_DefaultsDisabled(t *testing.T) {
	g := New()
	if g.State() != Disabled {
		t.Fatalf("initial state = %v, want disabled", g.State())
	}
	if g.Enabled() {
		t.Fatal("fresh gate reports enabled")
	}
}

func TestHandleInstalled_ResetsAndInstallsOneRule(t *testing.T) {
	g := New()

	// Simulate a prior enabled session and stale rules.
	g.HandleInstalled(".example.org")
	g.OnNavigate("https://sub.example.org/page")
	if !g.Enabled() {
		t.Fatal("setup: gate should be enabled on example.org")
	}

	// Update event: state snaps back to Disabled and the rule set is
	// replaced wholesale.
	g.HandleInstalled(".github.com")
	if g.State() != Disabled {
		t.Errorf("state after install = %v, want disabled", g.State())
	}
	rules := g.Rules()
	if len(rules) != 1 {
		t.Fatalf("got %d rules, want 1", len(rules))
	}
	if rules[0].HostSuffix != ".github.com" {
		t.Errorf("rule suffix = %q, want .github.com", rules[0].HostSuffix)
	}
}

func TestOnNavigate_HostSuffixMatch(t *testing.T) {
	g := New()
	g.HandleInstalled(".github.com")

	tests := []struct {
		location string
		want     State
	}{
		{"https://gist.github.com/user/1234", Enabled},
		{"https://api.github.com/repos", Enabled},
		{"https://GIST.GITHUB.COM/x", Enabled},
		{"https://github.com/user/repo", Enabled},
		{"https://github.com.evil.example/", Disabled},
		{"https://example.com/", Disabled},
		{"https://mygithub.com/", Disabled},
		{"https://evilgithub.com/", Disabled},
		{"not a url", Disabled},
		{"", Disabled},
	}
	for _, tt := range tests {
		if got := g.OnNavigate(tt.location); got != tt.want {
			t.Errorf("OnNavigate(%q) = %v, want %v", tt.location, got, tt.want)
		}
	}
}

func TestRule_BareSuffixNeedsDotBoundary(t *testing.T) {
	r := Rule{HostSuffix: "github.com"}

	tests := []struct {
		location string
		want     bool
	}{
		{"https://github.com/user/repo", true},
		{"https://gist.github.com/x", true},
		{"https://evilgithub.com/", false},
		{"https://github.com.evil.example/", false},
	}
	for _, tt := range tests {
		if got := r.Matches(tt.location); got != tt.want {
			t.Errorf("Matches(%q) = %v, want %v", tt.location, got, tt.want)
		}
	}
}

func TestOnNavigate_DisablesWhenLeavingDomain(t *testing.T) {
	g := New()
	g.HandleInstalled(".github.com")

	g.OnNavigate("https://gist.github.com/")
	if !g.Enabled() {
		t.Fatal("expected enabled on matching host")
	}
	g.OnNavigate("https://example.com/")
	if g.Enabled() {
		t.Fatal("expected disabled after navigating away")
	}
}

func TestRule_PortIgnored(t *testing.T) {
	r := Rule{HostSuffix: ".github.com"}
	if !r.Matches("https://gist.github.com:8443/x") {
		t.Error("port should not affect host matching")
	}
}
