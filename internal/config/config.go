// Package config loads declarative control settings: the control blocks an
// experiment carries plus its configuration and secrets stores.
package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/pelletier/go-toml/v2"

	"github.com/danmuck/chaosctl/internal/controls"
)

// Settings is the decoded shape of a controls TOML document.
type Settings struct {
	Configuration controls.Configuration `toml:"configuration"`
	Secrets       controls.Secrets       `toml:"secrets"`
	Controls      []controls.Control     `toml:"controls"`
}

// Load reads and validates a controls settings file.
func Load(path string) (Settings, error) {
	var s Settings
	data, err := os.ReadFile(path)
	if err != nil {
		return Settings{}, fmt.Errorf("controls settings load failed (%s): %w", path, err)
	}
	if err := toml.Unmarshal(data, &s); err != nil {
		return Settings{}, fmt.Errorf("controls settings parse failed (%s): %w", path, err)
	}
	if err := Validate(s); err != nil {
		return Settings{}, err
	}
	return s, nil
}

// Validate checks the structural shape of every control block. Whether a
// control's module actually resolves stays the dispatcher's job.
func Validate(s Settings) error {
	seen := make(map[string]bool, len(s.Controls))
	for i, ctl := range s.Controls {
		if strings.TrimSpace(ctl.Name) == "" {
			return fmt.Errorf("controls[%d] missing name", i)
		}
		if seen[ctl.Name] {
			return fmt.Errorf("controls[%d] duplicates name %q", i, ctl.Name)
		}
		seen[ctl.Name] = true
		if ctl.Provider == nil {
			return fmt.Errorf("control %q missing provider", ctl.Name)
		}
		if strings.TrimSpace(ctl.Provider.Module) == "" {
			return fmt.Errorf("control %q missing provider module", ctl.Name)
		}
	}
	return nil
}
