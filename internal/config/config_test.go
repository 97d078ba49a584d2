package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestDefault_ShippedConstants(t *testing.T) {
	cfg := Default()

	if cfg.Origin != "https://lgtm.kkhys.me" {
		t.Errorf("origin = %q", cfg.Origin)
	}
	if cfg.APIPath != "/api/ids.json" {
		t.Errorf("api_path = %q", cfg.APIPath)
	}
	if cfg.Extension != ".avif" {
		t.Errorf("extension = %q", cfg.Extension)
	}
	if cfg.Badge.Duration != 2*time.Second {
		t.Errorf("badge.duration = %v", cfg.Badge.Duration)
	}
	if cfg.Badge.Label != "✓" {
		t.Errorf("badge.label = %q", cfg.Badge.Label)
	}
	if cfg.Gate.HostSuffix != ".github.com" {
		t.Errorf("gate.host_suffix = %q", cfg.Gate.HostSuffix)
	}
	if cfg.Clipboard.Mode != "page" {
		t.Errorf("clipboard.mode = %q", cfg.Clipboard.Mode)
	}
}

func TestLoadFile_OverridesAndDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "lgtmd.yaml")
	data := []byte(`
origin: "http://localhost:9999"
extension: ".webp"
badge:
  duration: 500ms
clipboard:
  mode: system
`)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Origin != "http://localhost:9999" {
		t.Errorf("origin = %q", cfg.Origin)
	}
	if cfg.Extension != ".webp" {
		t.Errorf("extension = %q", cfg.Extension)
	}
	if cfg.Badge.Duration != 500*time.Millisecond {
		t.Errorf("badge.duration = %v", cfg.Badge.Duration)
	}
	if cfg.Clipboard.Mode != "system" {
		t.Errorf("clipboard.mode = %q", cfg.Clipboard.Mode)
	}
	// Untouched keys still get defaults.
	if cfg.APIPath != "/api/ids.json" {
		t.Errorf("api_path = %q", cfg.APIPath)
	}
}

func TestGateConfig_Suffix(t *testing.T) {
	g := GateConfig{HostSuffix: ".github.com"}
	if g.Suffix() != ".github.com" {
		t.Errorf("suffix = %q", g.Suffix())
	}
	g.Disabled = true
	if g.Suffix() != "" {
		t.Errorf("disabled gate suffix = %q", g.Suffix())
	}
}

func TestLoadFile_BadClipboardMode(t *testing.T) {
	path := filepath.Join(t.TempDir(), "lgtmd.yaml")
	os.WriteFile(path, []byte("clipboard:\n  mode: telepathy\n"), 0o644)

	if _, err := LoadFile(path); err == nil {
		t.Fatal("expected validation error")
	}
}

func TestLoadFile_Missing(t *testing.T) {
	if _, err := LoadFile(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Fatal("expected error for missing file")
	}
}
