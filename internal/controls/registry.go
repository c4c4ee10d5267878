package controls

import (
	"sort"
	"strings"
	"sync"

	"github.com/cockroachdb/errors"
)

// Registry resolves module paths to registered control modules. It stands in
// for a dynamic import system: modules register once at process start and
// repeated resolution of the same path is an idempotent lookup.
type Registry struct {
	mu      sync.RWMutex
	modules map[string]Module
}

// NewRegistry initializes an empty module registry.
func NewRegistry() *Registry {
	return &Registry{
		modules: make(map[string]Module),
	}
}

// Register adds a module under the given path. Duplicate paths are rejected
// so two providers cannot silently shadow each other.
func (r *Registry) Register(path string, m Module) error {
	path = strings.TrimSpace(path)
	if path == "" {
		return errors.New("controls: module path must not be empty")
	}
	if m == nil {
		return errors.Newf("controls: module %q must not be nil", path)
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.modules[path]; ok {
		return errors.Newf("controls: module %q already registered", path)
	}
	r.modules[path] = m
	return nil
}

// Resolve returns the module registered under path.
func (r *Registry) Resolve(path string) (Module, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	m, ok := r.modules[path]
	return m, ok
}

// Paths returns a sorted snapshot of all registered module paths.
func (r *Registry) Paths() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]string, 0, len(r.modules))
	for path := range r.modules {
		out = append(out, path)
	}
	sort.Strings(out)
	return out
}

// Default is the process-wide registry used by the package-level dispatch
// functions.
var Default = NewRegistry()

// Register adds a module to the Default registry.
func Register(path string, m Module) error {
	return Default.Register(path, m)
}
