package main

import (
	"fmt"
	"strings"

	"github.com/BurntSushi/toml"
)

// chaosctl config.toml key mapping to runtime settings.
type fileConfig struct {
	Name         string   `toml:"name"`
	Addr         string   `toml:"addr"`
	ControlsPath string   `toml:"controls_path"`
	CORSOrigins  []string `toml:"cors_origins"`
}

type serviceConfig struct {
	Name         string
	Addr         string
	ControlsPath string
	CORSOrigins  []string
}

func defaultServiceConfig() serviceConfig {
	return serviceConfig{
		Name:         "chaosctl",
		Addr:         ":9500",
		ControlsPath: "controls.toml",
	}
}

// chaosctl loader for TOML config with default overlay.
func loadServiceConfig(path string) (serviceConfig, error) {
	cfg := defaultServiceConfig()

	var raw fileConfig
	meta, err := toml.DecodeFile(path, &raw)
	if err != nil {
		return serviceConfig{}, fmt.Errorf("load chaosctl config: %w", err)
	}

	if meta.IsDefined("name") {
		cfg.Name = strings.TrimSpace(raw.Name)
	}
	if meta.IsDefined("addr") {
		cfg.Addr = strings.TrimSpace(raw.Addr)
	}
	if meta.IsDefined("controls_path") {
		cfg.ControlsPath = strings.TrimSpace(raw.ControlsPath)
	}
	if meta.IsDefined("cors_origins") {
		cfg.CORSOrigins = raw.CORSOrigins
	}

	if cfg.Name == "" {
		return serviceConfig{}, fmt.Errorf("chaosctl config: name must not be empty")
	}
	if cfg.Addr == "" {
		return serviceConfig{}, fmt.Errorf("chaosctl config: addr must not be empty")
	}
	return cfg, nil
}
