// Package audit ships a builtin control module that logs every lifecycle
// event routed through it, useful as a journal trail and as a smoke test for
// control wiring.
package audit

import (
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/danmuck/chaosctl/internal/controls"
)

// Path is the module path the audit control registers under.
const Path = "chaosctl/modules/audit"

// Module implements every lifecycle hook.
type Module struct {
	log zerolog.Logger
}

// New constructs the audit module with the global logger.
func New() *Module {
	return &Module{
		log: log.With().Str("control_module", Path).Logger(),
	}
}

// Register adds the audit module to the given registry.
func Register(reg *controls.Registry) error {
	return reg.Register(Path, New())
}

// Capabilities accepts configuration and state so both land in the journal
// trail.
func (m *Module) Capabilities() controls.Capabilities {
	return controls.Capabilities{Configuration: true, State: true}
}

// Hooks implements every extension point.
func (m *Module) Hooks() controls.Hooks {
	return controls.Hooks{
		Configure:        m.configure,
		Cleanup:          m.cleanup,
		BeforeExperiment: m.event(controls.ExperimentBefore),
		AfterExperiment:  m.event(controls.ExperimentAfter),
		BeforeHypothesis: m.event(controls.HypothesisBefore),
		AfterHypothesis:  m.event(controls.HypothesisAfter),
		BeforeMethod:     m.event(controls.MethodBefore),
		AfterMethod:      m.event(controls.MethodAfter),
		BeforeRollback:   m.event(controls.RollbackBefore),
		AfterRollback:    m.event(controls.RollbackAfter),
		BeforeActivity:   m.event(controls.ActivityBefore),
		AfterActivity:    m.event(controls.ActivityAfter),
	}
}

func (m *Module) configure(cfg controls.Configuration, secrets controls.Secrets) error {
	m.log.Info().
		Int("configuration_keys", len(cfg)).
		Int("secret_groups", len(secrets)).
		Msg("audit control configured")
	return nil
}

func (m *Module) cleanup() error {
	m.log.Info().Msg("audit control cleaned up")
	return nil
}

func (m *Module) event(level controls.Level) controls.HookFunc {
	return func(target controls.Target, args controls.Arguments) error {
		event := m.log.Info().
			Str("level", string(level)).
			Str("target", describe(target))
		if _, ok := args["state"]; ok {
			event = event.Bool("with_state", true)
		}
		event.Msg("lifecycle event")
		return nil
	}
}

// describe extracts a display name from an experiment or activity descriptor
// without interpreting the rest of it.
func describe(target controls.Target) string {
	m, ok := target.(map[string]any)
	if !ok {
		return ""
	}
	for _, key := range []string{"title", "name"} {
		if v, ok := m[key].(string); ok {
			return v
		}
	}
	return ""
}
