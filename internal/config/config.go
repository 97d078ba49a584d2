// Package config handles lgtmd configuration from YAML files.
package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Config is the top-level lgtmd configuration.
type Config struct {
	// Origin is the catalog service origin, also embedded in the snippet.
	Origin string `yaml:"origin"`
	// APIPath is the identifier-list path on the origin.
	APIPath string `yaml:"api_path"`
	// Extension is the dot-prefixed image file suffix.
	Extension string `yaml:"extension"`

	Listen    string          `yaml:"listen"`
	Badge     BadgeConfig     `yaml:"badge"`
	Gate      GateConfig      `yaml:"gate"`
	Browser   BrowserConfig   `yaml:"browser"`
	Clipboard ClipboardConfig `yaml:"clipboard"`
	Diag      DiagConfig      `yaml:"diag"`
}

// BadgeConfig controls the success acknowledgment.
type BadgeConfig struct {
	Label    string        `yaml:"label"`
	Color    string        `yaml:"color"`
	Duration time.Duration `yaml:"duration"`
}

// GateConfig controls trigger activation.
type GateConfig struct {
	// HostSuffix restricts activation to locations whose host ends with
	// this suffix.
	HostSuffix string `yaml:"host_suffix"`
	// Disabled turns the gate off entirely: the trigger is usable on any
	// page.
	Disabled bool `yaml:"disabled"`
}

// Suffix returns the active host suffix, or "" when the gate is off.
func (g GateConfig) Suffix() string {
	if g.Disabled {
		return ""
	}
	return g.HostSuffix
}

// BrowserConfig controls the Chrome attachment.
type BrowserConfig struct {
	// Remote is the DevTools WebSocket URL of an existing Chrome.
	// Empty = launch a local instance.
	Remote   string `yaml:"remote"`
	Headless bool   `yaml:"headless"`
	// StartURL, when set, opens a seed tab there at startup.
	StartURL string `yaml:"start_url"`
}

// ClipboardConfig selects the write mechanism.
type ClipboardConfig struct {
	// Mode is "page" (execute inside the foreground tab) or "system"
	// (write the OS clipboard directly).
	Mode string `yaml:"mode"`
}

// DiagConfig controls the failure journal.
type DiagConfig struct {
	Path          string `yaml:"path"`
	RetentionDays int    `yaml:"retention_days"`
}

// LoadFile reads a YAML configuration file.
func LoadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("config: parse %s: %w", path, err)
	}

	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Default returns the built-in configuration.
func Default() *Config {
	var cfg Config
	cfg.ApplyDefaults()
	return &cfg
}

// ApplyDefaults fills zero values with the shipped constants.
func (c *Config) ApplyDefaults() {
	if c.Origin == "" {
		c.Origin = "https://lgtm.kkhys.me"
	}
	if c.APIPath == "" {
		c.APIPath = "/api/ids.json"
	}
	if c.Extension == "" {
		c.Extension = ".avif"
	}
	if c.Listen == "" {
		c.Listen = "127.0.0.1:8931"
	}
	if c.Badge.Label == "" {
		c.Badge.Label = "✓"
	}
	if c.Badge.Color == "" {
		c.Badge.Color = "#28a745"
	}
	if c.Badge.Duration <= 0 {
		c.Badge.Duration = 2 * time.Second
	}
	if c.Gate.HostSuffix == "" {
		c.Gate.HostSuffix = ".github.com"
	}
	if c.Clipboard.Mode == "" {
		c.Clipboard.Mode = "page"
	}
	if c.Diag.Path == "" {
		c.Diag.Path = "lgtmd.db"
	}
	if c.Diag.RetentionDays == 0 {
		c.Diag.RetentionDays = 30
	}
}

// Validate rejects values the daemon cannot run with.
func (c *Config) Validate() error {
	switch c.Clipboard.Mode {
	case "page", "system":
	default:
		return fmt.Errorf("config: clipboard.mode %q (want page or system)", c.Clipboard.Mode)
	}
	return nil
}
