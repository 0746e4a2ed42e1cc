package module

import (
	"sort"
	"sync"
)

// Registry maps qualified names to loaded modules. It is both the cache and
// the recursion guard: placeholders are inserted before a module's body
// executes, and a request for a name that is still loading receives the same
// in-progress placeholder instead of starting a duplicate load.
//
// A Registry is an owned service object, constructed once at startup and
// never reset during normal operation. Tests construct isolated instances.
type Registry struct {
	mu      sync.Mutex
	modules map[string]*Module
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{modules: map[string]*Module{}}
}

// Lookup returns the cached module for name, if any.
func (r *Registry) Lookup(name string) (*Module, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	mod, ok := r.modules[name]
	return mod, ok
}

// Reserve atomically returns the existing entry for name or inserts a fresh
// placeholder. The boolean reports whether this call created the entry; only
// the creator may populate it.
func (r *Registry) Reserve(name string) (*Module, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if mod, ok := r.modules[name]; ok {
		return mod, false
	}
	mod := New(name)
	r.modules[name] = mod
	return mod, true
}

// Evict removes the entry for name. Used by the loader to drop the
// speculative placeholder after a failed load so a later attempt retries.
func (r *Registry) Evict(name string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.modules, name)
}

// Names returns a sorted list of registered qualified names.
func (r *Registry) Names() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	names := make([]string, 0, len(r.modules))
	for name := range r.modules {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Len returns the number of registered modules.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.modules)
}
