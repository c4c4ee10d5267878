package controls

// Configuration is the experiment-wide configuration store. Controls receive
// it whole, never a filtered view.
type Configuration map[string]any

// Secrets maps secret group names to their key/value payloads.
type Secrets map[string]map[string]any

// Arguments holds the named arguments assembled for one hook invocation.
type Arguments map[string]any

// Target is the lifecycle subject a hook runs against: an experiment or
// activity descriptor. This package never interprets it, only forwards it.
type Target any

// State is the run/journal value threaded through from the caller.
type State any

// Control describes one externally supplied control block as declared in an
// experiment definition.
type Control struct {
	Name     string    `toml:"name" json:"name"`
	Provider *Provider `toml:"provider" json:"provider,omitempty"`
}

// Provider names the module implementing a control plus its static call shape.
type Provider struct {
	Module    string    `toml:"module" json:"module"`
	Arguments Arguments `toml:"arguments" json:"arguments,omitempty"`
	Secrets   []string  `toml:"secrets" json:"secrets,omitempty"`
}

// Level identifies one of the ten lifecycle points a control may hook.
type Level string

const (
	ExperimentBefore Level = "experiment-before"
	ExperimentAfter  Level = "experiment-after"
	HypothesisBefore Level = "hypothesis-before"
	HypothesisAfter  Level = "hypothesis-after"
	MethodBefore     Level = "method-before"
	MethodAfter      Level = "method-after"
	RollbackBefore   Level = "rollback-before"
	RollbackAfter    Level = "rollback-after"
	ActivityBefore   Level = "activity-before"
	ActivityAfter    Level = "activity-after"
)

// Reserved argument names injected by the dispatcher when a module declares
// the matching capability.
const (
	argSecrets       = "secrets"
	argConfiguration = "configuration"
	argState         = "state"
)

// Copy returns a shallow copy of the configuration. Top-level mutation of the
// copy does not affect the original.
func (c Configuration) Copy() Configuration {
	if c == nil {
		return nil
	}
	out := make(Configuration, len(c))
	for k, v := range c {
		out[k] = v
	}
	return out
}

// Merge unions the named secret groups into a single mapping. Later groups
// overwrite earlier ones on key collision. Unknown groups contribute nothing.
func (s Secrets) Merge(groups ...string) map[string]any {
	merged := make(map[string]any)
	for _, group := range groups {
		for k, v := range s[group] {
			merged[k] = v
		}
	}
	return merged
}

// DeepCopy clones the arguments template, including nested maps and slices.
// Dispatch hands every hook its own copy so the static template stays intact
// across repeated invocations.
func (a Arguments) DeepCopy() Arguments {
	out := make(Arguments, len(a))
	for k, v := range a {
		out[k] = deepCopyValue(v)
	}
	return out
}

func deepCopyValue(v any) any {
	switch val := v.(type) {
	case Arguments:
		return val.DeepCopy()
	case map[string]any:
		out := make(map[string]any, len(val))
		for k, v := range val {
			out[k] = deepCopyValue(v)
		}
		return out
	case []any:
		out := make([]any, len(val))
		for i, elem := range val {
			out[i] = deepCopyValue(elem)
		}
		return out
	default:
		return v
	}
}
