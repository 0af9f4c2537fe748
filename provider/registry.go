package provider

import (
	"fmt"
	"maps"
	"slices"
	"strings"
	"sync"
)

// Registry maps backend names, as written under `backend:` in the config,
// to the factories that build them. Built backends are kept so that a
// speech engine or an HTTP client is constructed once per process.
type Registry[T Provider] struct {
	mu       sync.RWMutex
	builders map[string]Factory[T]
	built    map[string]T
}

func NewRegistry[T Provider]() *Registry[T] {
	return &Registry[T]{
		builders: make(map[string]Factory[T]),
		built:    make(map[string]T),
	}
}

// RegisterFactory makes a backend selectable by name. A second
// registration under the same name replaces the first.
func (r *Registry[T]) RegisterFactory(name string, factory Factory[T]) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.builders[name] = factory
}

// Create builds the named backend from its config section. The result is
// not kept; see Set.
func (r *Registry[T]) Create(name string, cfg map[string]any) (T, error) {
	r.mu.RLock()
	build, ok := r.builders[name]
	known := slices.Sorted(maps.Keys(r.builders))
	r.mu.RUnlock()

	if !ok {
		var zero T
		return zero, fmt.Errorf("backend %q not registered (known: %s)", name, strings.Join(known, ", "))
	}
	return build(cfg)
}

// Get returns the backend kept under name.
func (r *Registry[T]) Get(name string) (T, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	p, ok := r.built[name]
	return p, ok
}

func (r *Registry[T]) Set(name string, instance T) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.built[name] = instance
}

// List returns the selectable backend names in sorted order.
func (r *Registry[T]) List() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return slices.Sorted(maps.Keys(r.builders))
}
