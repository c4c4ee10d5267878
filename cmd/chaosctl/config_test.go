package main

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadServiceConfigDefaultsAndOverrides(t *testing.T) {
	dir := t.TempDir()

	path := filepath.Join(dir, "config.toml")
	content := `
name = "chaosctl.alpha"
addr = "127.0.0.1:9510"
cors_origins = ["http://localhost:3000"]
	`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := loadServiceConfig(path)
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.Name != "chaosctl.alpha" {
		t.Fatalf("unexpected name: %q", cfg.Name)
	}
	if cfg.Addr != "127.0.0.1:9510" {
		t.Fatalf("unexpected addr: %q", cfg.Addr)
	}
	if cfg.ControlsPath != "controls.toml" {
		t.Fatalf("expected default controls path, got %q", cfg.ControlsPath)
	}
	if len(cfg.CORSOrigins) != 1 || cfg.CORSOrigins[0] != "http://localhost:3000" {
		t.Fatalf("unexpected cors origins: %v", cfg.CORSOrigins)
	}
}

func TestLoadServiceConfigRejectsEmptyOverrides(t *testing.T) {
	dir := t.TempDir()

	path := filepath.Join(dir, "config.toml")
	if err := os.WriteFile(path, []byte(`addr = "  "`), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	if _, err := loadServiceConfig(path); err == nil {
		t.Fatalf("expected empty addr rejected")
	}
}
