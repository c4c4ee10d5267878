// Package pause ships a builtin control module that sleeps around activities,
// giving a system time to settle between injections.
package pause

import (
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/danmuck/chaosctl/internal/controls"
)

// Path is the module path the pause control registers under.
const Path = "chaosctl/modules/pause"

// Argument names read from the control's provider arguments.
const (
	ArgBefore = "pause_before"
	ArgAfter  = "pause_after"
)

// Module pauses before and/or after each activity. Durations come from the
// control's static arguments, e.g. pause_before = "250ms".
type Module struct {
	sleep func(time.Duration)
}

// New constructs the pause module.
func New() *Module {
	return &Module{sleep: time.Sleep}
}

// Register adds the pause module to the given registry.
func Register(reg *controls.Registry) error {
	return reg.Register(Path, New())
}

// Capabilities needs nothing beyond the static arguments.
func (m *Module) Capabilities() controls.Capabilities {
	return controls.Capabilities{}
}

// Hooks pauses around activities only.
func (m *Module) Hooks() controls.Hooks {
	return controls.Hooks{
		BeforeActivity: m.hook(ArgBefore),
		AfterActivity:  m.hook(ArgAfter),
	}
}

func (m *Module) hook(arg string) controls.HookFunc {
	return func(target controls.Target, args controls.Arguments) error {
		raw, ok := args[arg]
		if !ok {
			return nil
		}
		d, err := parseDuration(raw)
		if err != nil {
			return fmt.Errorf("pause control: argument %q: %w", arg, err)
		}
		log.Debug().Str("argument", arg).Dur("duration", d).Msg("pausing")
		m.sleep(d)
		return nil
	}
}

func parseDuration(raw any) (time.Duration, error) {
	switch v := raw.(type) {
	case string:
		return time.ParseDuration(v)
	case int64:
		return time.Duration(v) * time.Second, nil
	case float64:
		return time.Duration(v * float64(time.Second)), nil
	default:
		return 0, fmt.Errorf("unsupported duration value %v (%T)", raw, raw)
	}
}
