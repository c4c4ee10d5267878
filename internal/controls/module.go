package controls

// HookFunc is the signature shared by all lifecycle hooks. The target is the
// experiment or activity the event refers to; args is the assembled argument
// mapping, owned by the hook for the duration of the call.
type HookFunc func(target Target, args Arguments) error

// Hooks lists the hook functions a control module exports. A nil field means
// the module does not implement that extension point and dispatch to it is a
// silent no-op.
type Hooks struct {
	// Configure runs once per experiment before any lifecycle dispatch.
	Configure func(cfg Configuration, secrets Secrets) error
	// Cleanup runs once after the experiment finishes.
	Cleanup func() error

	BeforeExperiment HookFunc
	AfterExperiment  HookFunc
	BeforeHypothesis HookFunc
	AfterHypothesis  HookFunc
	BeforeMethod     HookFunc
	AfterMethod      HookFunc
	BeforeRollback   HookFunc
	AfterRollback    HookFunc
	BeforeActivity   HookFunc
	AfterActivity    HookFunc
}

// Capabilities declares which dispatcher-assembled arguments the module's
// hooks accept. Declared once at registration rather than inspected per call.
type Capabilities struct {
	Secrets       bool
	Configuration bool
	State         bool
}

// Module is the contract a control provider registers under a module path.
type Module interface {
	Hooks() Hooks
	Capabilities() Capabilities
}

// levelHooks fixes the mapping from lifecycle level to the hook it names.
// Levels outside this table resolve to no hook and dispatch becomes a no-op.
var levelHooks = map[Level]func(Hooks) HookFunc{
	ExperimentBefore: func(h Hooks) HookFunc { return h.BeforeExperiment },
	ExperimentAfter:  func(h Hooks) HookFunc { return h.AfterExperiment },
	HypothesisBefore: func(h Hooks) HookFunc { return h.BeforeHypothesis },
	HypothesisAfter:  func(h Hooks) HookFunc { return h.AfterHypothesis },
	MethodBefore:     func(h Hooks) HookFunc { return h.BeforeMethod },
	MethodAfter:      func(h Hooks) HookFunc { return h.AfterMethod },
	RollbackBefore:   func(h Hooks) HookFunc { return h.BeforeRollback },
	RollbackAfter:    func(h Hooks) HookFunc { return h.AfterRollback },
	ActivityBefore:   func(h Hooks) HookFunc { return h.BeforeActivity },
	ActivityAfter:    func(h Hooks) HookFunc { return h.AfterActivity },
}

// Levels returns the ten recognized lifecycle levels in execution order.
func Levels() []Level {
	return []Level{
		ExperimentBefore,
		HypothesisBefore,
		HypothesisAfter,
		MethodBefore,
		ActivityBefore,
		ActivityAfter,
		MethodAfter,
		RollbackBefore,
		RollbackAfter,
		ExperimentAfter,
	}
}
