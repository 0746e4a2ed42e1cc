package module

import (
	"fmt"
	"reflect"
	"sync"
)

// Symbols resolves identifiers inside a module's executed namespace.
// The loader binds a concrete implementation once the module has a namespace
// to execute into; until then the module is a placeholder.
type Symbols interface {
	Lookup(name string) (reflect.Value, error)
}

// Module is the runtime object produced for one qualified name. It is
// inserted into the Registry before its body executes, so importers inside a
// cycle observe a partially-initialized but identity-stable object.
//
// Because the registry hands the in-flight placeholder to concurrent
// requesters, the mutable fields are guarded by the module's own mutex:
// the loader populates them while other goroutines may already be reading.
type Module struct {
	name string

	mu      sync.Mutex
	file    string
	search  []string
	origin  any
	symbols Symbols
}

// New returns an empty placeholder module for name.
func New(name string) *Module {
	return &Module{name: name}
}

// Name returns the qualified name the module was loaded under.
func (m *Module) Name() string {
	return m.name
}

// File returns the synthetic file path: the source file for plain modules,
// the directory for packages. Empty until the loader populates the module.
func (m *Module) File() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.file
}

// SetFile records the synthetic file path.
func (m *Module) SetFile(path string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.file = path
}

// SearchPath returns the directories used to resolve the module's own
// children. Non-empty only for packages, and then holds exactly one entry.
func (m *Module) SearchPath() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string{}, m.search...)
}

// SetSearchPath records the package search path.
func (m *Module) SetSearchPath(dirs ...string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.search = append([]string{}, dirs...)
}

// Origin returns the loader that produced the module, or nil for a
// placeholder that has not been populated yet.
func (m *Module) Origin() any {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.origin
}

// SetOrigin records the originating loader.
func (m *Module) SetOrigin(origin any) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.origin = origin
}

// Bind attaches the executed namespace to the module.
func (m *Module) Bind(symbols Symbols) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.symbols = symbols
}

// Ready reports whether the module has a namespace attached. A module seen
// mid-cycle may not be ready yet.
func (m *Module) Ready() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.symbols != nil
}

// namespace returns the attached Symbols without holding the lock across
// any interpreter call.
func (m *Module) namespace() Symbols {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.symbols
}

// Exported lists the exported symbol names the module's body declared.
// Returns nil when the namespace is absent or does not support enumeration.
func (m *Module) Exported() []string {
	lister, ok := m.namespace().(interface{ Exported() []string })
	if !ok {
		return nil
	}
	return lister.Exported()
}

// Get resolves a symbol from the module's namespace and returns its value.
func (m *Module) Get(symbol string) (any, error) {
	symbols := m.namespace()
	if symbols == nil {
		return nil, fmt.Errorf("module %s: namespace is not initialized", m.name)
	}
	value, err := symbols.Lookup(symbol)
	if err != nil {
		return nil, fmt.Errorf("module %s: symbol %s: %w", m.name, symbol, err)
	}
	if !value.IsValid() {
		return nil, fmt.Errorf("module %s: symbol %s is not defined", m.name, symbol)
	}
	return value.Interface(), nil
}
