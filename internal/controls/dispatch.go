package controls

import (
	"strings"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/rs/zerolog/log"

	"github.com/danmuck/chaosctl/internal/observability"
	"github.com/danmuck/chaosctl/internal/substitute"
)

// Dispatcher validates control descriptors and routes lifecycle events to the
// hooks their modules implement. Validation is strict; dispatch is permissive:
// a control that is not importable, or that skips an extension point, no-ops.
type Dispatcher struct {
	registry *Registry
}

// NewDispatcher returns a dispatcher over the given registry. A nil registry
// selects the process-wide Default.
func NewDispatcher(reg *Registry) *Dispatcher {
	if reg == nil {
		reg = Default
	}
	return &Dispatcher{registry: reg}
}

// Validate verifies that a control block matches the descriptor shape and
// that its module resolves. Runs once at experiment-load time, so a missing
// module is a hard error here and only here.
func (d *Dispatcher) Validate(ctl *Control) error {
	if ctl == nil || strings.TrimSpace(ctl.Name) == "" {
		return errors.Wrap(ErrInvalidControl, "a control must have a name")
	}
	if ctl.Provider == nil {
		return errors.Wrapf(ErrInvalidControl,
			"control %q must have a provider", ctl.Name)
	}
	if strings.TrimSpace(ctl.Provider.Module) == "" {
		return errors.Wrapf(ErrInvalidActivity,
			"control %q must have a module path", ctl.Name)
	}
	if _, ok := d.registry.Resolve(ctl.Provider.Module); !ok {
		return errors.Wrapf(ErrInvalidActivity,
			"could not find module %q in control %q", ctl.Provider.Module, ctl.Name)
	}
	return nil
}

// Initialize calls the control's Configure hook with the experiment
// configuration and secrets stores. Absent module or hook is a no-op. Hook
// errors propagate untouched.
func (d *Dispatcher) Initialize(ctl *Control, cfg Configuration, secrets Secrets) error {
	mod, ok := d.resolveModule(ctl)
	if !ok {
		return nil
	}
	configure := mod.Hooks().Configure
	if configure == nil {
		d.hookMiss(ctl.Provider.Module, "configure")
		return nil
	}
	return configure(cfg, secrets)
}

// Cleanup calls the control's Cleanup hook. Absent module or hook is a no-op.
func (d *Dispatcher) Cleanup(ctl *Control) error {
	mod, ok := d.resolveModule(ctl)
	if !ok {
		return nil
	}
	cleanup := mod.Hooks().Cleanup
	if cleanup == nil {
		d.hookMiss(ctl.Provider.Module, "cleanup")
		return nil
	}
	return cleanup()
}

// Apply routes one lifecycle event to the control's hook for the given level.
//
// Argument assembly order: deep copy of the provider's static arguments,
// configuration/secrets substitution, then capability-gated injection of the
// merged secret groups, a configuration copy, and the caller state. Unknown
// levels and absent hooks no-op; hook and substitution errors propagate.
func (d *Dispatcher) Apply(level Level, ctl *Control, target Target,
	state State, cfg Configuration, secrets Secrets) error {

	mod, hook := d.resolveHook(ctl, level)
	if hook == nil {
		return nil
	}

	args := ctl.Provider.Arguments.DeepCopy()

	if cfg != nil || secrets != nil {
		resolved, err := substitute.Apply(args, cfg, secrets)
		if err != nil {
			return err
		}
		args = resolved
	}

	caps := mod.Capabilities()
	if ctl.Provider.Secrets != nil && caps.Secrets {
		args[argSecrets] = secrets.Merge(ctl.Provider.Secrets...)
	}
	if caps.Configuration {
		args[argConfiguration] = cfg.Copy()
	}
	if caps.State {
		args[argState] = state
	}

	start := time.Now()
	err := hook(target, args)
	outcome := "ok"
	if err != nil {
		outcome = "error"
	}
	observability.RecordControlDispatch(ctl.Name, string(level), outcome, time.Since(start))
	return err
}

// resolveModule swallows module-not-found: dispatch happens many times per
// experiment run and a control need not be importable on every host.
func (d *Dispatcher) resolveModule(ctl *Control) (Module, bool) {
	if ctl == nil || ctl.Provider == nil {
		return nil, false
	}
	mod, ok := d.registry.Resolve(ctl.Provider.Module)
	if !ok {
		log.Debug().
			Str("module", ctl.Provider.Module).
			Str("control", ctl.Name).
			Msg("control module is not registered, skipping")
		observability.RecordHookMiss(ctl.Provider.Module, "module")
		return nil, false
	}
	return mod, true
}

func (d *Dispatcher) resolveHook(ctl *Control, level Level) (Module, HookFunc) {
	accessor, ok := levelHooks[level]
	if !ok {
		return nil, nil
	}
	mod, found := d.resolveModule(ctl)
	if !found {
		return nil, nil
	}
	hook := accessor(mod.Hooks())
	if hook == nil {
		d.hookMiss(ctl.Provider.Module, string(level))
		return nil, nil
	}
	return mod, hook
}

func (d *Dispatcher) hookMiss(module, hook string) {
	log.Debug().
		Str("module", module).
		Str("hook", hook).
		Msg("control module does not implement hook")
	observability.RecordHookMiss(module, hook)
}

// Package-level dispatch over the Default registry.

// Validate checks ctl against the Default registry.
func Validate(ctl *Control) error {
	return NewDispatcher(nil).Validate(ctl)
}

// Initialize configures ctl via the Default registry.
func Initialize(ctl *Control, cfg Configuration, secrets Secrets) error {
	return NewDispatcher(nil).Initialize(ctl, cfg, secrets)
}

// Cleanup tears down ctl via the Default registry.
func Cleanup(ctl *Control) error {
	return NewDispatcher(nil).Cleanup(ctl)
}

// Apply dispatches one lifecycle event via the Default registry.
func Apply(level Level, ctl *Control, target Target,
	state State, cfg Configuration, secrets Secrets) error {
	return NewDispatcher(nil).Apply(level, ctl, target, state, cfg, secrets)
}
