package modelstore

import (
	"sort"
	"sync"

	"github.com/fabber-go/fabber/fwdmodel"
)

// Registry is a name -> fwdmodel.Factory table.
type Registry struct {
	mu    sync.RWMutex
	items map[string]fwdmodel.Factory
}

// NewRegistry returns an empty Registry.
func NewRegistry() *Registry {
	return &Registry{items: make(map[string]fwdmodel.Factory)}
}

// Register adds factory under name. Returns ErrAlreadyRegistered if name is
// already taken, matching spec §6's "the registered name then becomes
// usable via --model=<name>" contract (names are unique process-wide).
func (r *Registry) Register(name string, factory fwdmodel.Factory) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.items[name]; exists {
		return ErrAlreadyRegistered
	}
	r.items[name] = factory
	return nil
}

// Build looks up name and invokes its factory with options.
func (r *Registry) Build(name string, options map[string]string) (fwdmodel.ForwardModel, error) {
	r.mu.RLock()
	factory, ok := r.items[name]
	r.mu.RUnlock()
	if !ok {
		return nil, fwdmodel.ErrUnknownModel
	}
	return factory(options)
}

// Names returns the registered model names, sorted, for --listmodels.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]string, 0, len(r.items))
	for name := range r.items {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

// Default is the process-wide registry pre-populated with the built-in
// reference models (linear, poly, trivial), per spec §4.5.
var Default = newDefaultRegistry()

func newDefaultRegistry() *Registry {
	r := NewRegistry()
	_ = r.Register("trivial", trivialFactory)
	_ = r.Register("poly", polyFactory)
	_ = r.Register("linear", linearFactory)
	return r
}
