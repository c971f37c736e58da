package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultHasVsyncOnAndNoFPSOverride(t *testing.T) {
	cfg := Default()
	if cfg.SetFPS != 0 {
		t.Errorf("SetFPS = %d, want 0 (use project's declared speed)", cfg.SetFPS)
	}
	if !cfg.SetVsync {
		t.Error("SetVsync should default true")
	}
	if cfg.ObserverOn {
		t.Error("ObserverOn should default false")
	}
}

func TestLoadFromPathMissingFileKeepsDefaults(t *testing.T) {
	cfg, err := LoadFromPath(filepath.Join(t.TempDir(), "nope.yaml"))
	if err != nil {
		t.Fatalf("missing config file should not error: %v", err)
	}
	if cfg.LogLevel != "info" {
		t.Errorf("LogLevel = %q, want default info", cfg.LogLevel)
	}
}

func TestLoadFromPathOverridesDefaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "settings.yaml")
	if err := os.WriteFile(path, []byte("set_fps: 30\nlog_level: debug\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	cfg, err := LoadFromPath(path)
	if err != nil {
		t.Fatalf("LoadFromPath: %v", err)
	}
	if cfg.SetFPS != 30 {
		t.Errorf("SetFPS = %d, want 30", cfg.SetFPS)
	}
	if cfg.LogLevel != "debug" {
		t.Errorf("LogLevel = %q, want debug", cfg.LogLevel)
	}
	if !cfg.SetVsync {
		t.Error("unset fields should keep their default, SetVsync should remain true")
	}
}
