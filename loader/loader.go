// Package loader resolves dot-delimited qualified names to script files on
// disk and executes them into isolated module namespaces. It exists so the
// host application starts correctly even when its installation path cannot
// be represented in the platform's legacy narrow encoding: every path is
// built and compared as a plain UTF-8 string, bypassing the default
// resolution order entirely.
//
// The loader participates in a two-phase contract: Find reports whether it
// can supply a name (claim or pass, no side effects), and Load produces the
// module object for a claimed name, caching it in a Registry that doubles as
// the recursion guard for cyclic imports.
package loader

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/wrybill/modpath/internal/module"
)

// DefaultExtensions are the file extensions recognized as script modules,
// tried in priority order. Interpreted scripts carry no pre-compiled form,
// so the default list has a single source tier.
var DefaultExtensions = []string{".go"}

// defaultInitStem names the optional package initializer file: a package
// directory pkg/ executes pkg/init.go (with the configured extension) when
// present, and is a valid empty package when absent.
const defaultInitStem = "init"

// Resolver is the contract the host runtime depends on: claim-or-pass
// resolution followed by loading. There is exactly one production
// implementation, but the seam stays swappable so alternate resolvers can be
// chained in tests.
type Resolver interface {
	Find(name Name) (Candidate, bool)
	Load(name Name) (*module.Module, error)
}

// Loader resolves and loads script modules from one or more search roots.
type Loader struct {
	roots      []string
	extensions []string
	initStem   string
	registry   *module.Registry
	diag       Diag
}

// Option configures a Loader.
type Option func(*Loader)

// WithExtensions sets the recognized extensions, highest priority first.
func WithExtensions(exts ...string) Option {
	return func(l *Loader) {
		if len(exts) > 0 {
			l.extensions = append([]string{}, exts...)
		}
	}
}

// WithInitFile sets the stem of the package initializer file.
func WithInitFile(stem string) Option {
	return func(l *Loader) {
		if stem != "" {
			l.initStem = stem
		}
	}
}

// WithDiag sets the diagnostic sink for load-failure notices.
func WithDiag(d Diag) Option {
	return func(l *Loader) {
		if d != nil {
			l.diag = d
		}
	}
}

// WithRegistry shares an existing registry between loaders. Tests use this
// to observe cache state; production code normally lets New build one.
func WithRegistry(r *module.Registry) Option {
	return func(l *Loader) {
		if r != nil {
			l.registry = r
		}
	}
}

// New builds a Loader over the given search roots, earlier roots taking
// precedence.
func New(roots []string, opts ...Option) (*Loader, error) {
	if len(roots) == 0 {
		return nil, fmt.Errorf("loader: at least one search root is required")
	}
	l := &Loader{
		extensions: DefaultExtensions,
		initStem:   defaultInitStem,
		diag:       stderrDiag{},
	}
	for _, root := range roots {
		l.roots = append(l.roots, filepath.Clean(root))
	}
	for _, opt := range opts {
		opt(l)
	}
	if l.registry == nil {
		l.registry = module.NewRegistry()
	}
	return l, nil
}

// Roots returns the search roots in precedence order.
func (l *Loader) Roots() []string {
	return append([]string{}, l.roots...)
}

// Registry exposes the module cache.
func (l *Loader) Registry() *module.Registry {
	return l.registry
}

// Load produces the module object for name. Repeated loads of one name
// return the identical object without re-executing its body; an in-flight
// load of the same name (a cycle, or a concurrent request) receives the
// speculative placeholder registered before the body started executing.
func (l *Loader) Load(name Name) (*module.Module, error) {
	if err := name.Validate(); err != nil {
		return nil, err
	}
	if mod, ok := l.registry.Lookup(name.String()); ok {
		return mod, nil
	}
	candidate, ok := l.Find(name)
	if !ok {
		return nil, &NotFoundError{Name: name}
	}
	mod, created := l.registry.Reserve(name.String())
	if !created {
		return mod, nil
	}
	if err := l.populate(mod, candidate); err != nil {
		l.notice(candidate.Path, err)
		l.registry.Evict(name.String())
		return nil, &LoadError{Name: name, Path: candidate.Path, Err: err}
	}
	return mod, nil
}

// populate executes the candidate's source into the placeholder module. The
// namespace is bound before any source runs so importers inside a cycle can
// observe the in-progress module.
func (l *Loader) populate(mod *module.Module, candidate Candidate) error {
	ns, err := l.newNamespace()
	if err != nil {
		return err
	}
	mod.Bind(ns)
	mod.SetOrigin(l)
	mod.SetFile(candidate.Path)

	switch candidate.Kind {
	case CandidatePackage:
		mod.SetSearchPath(candidate.Path)
		initPath, ok := l.initFilePath(candidate.Path)
		if !ok {
			return nil // namespace-only package
		}
		return l.execFile(ns, initPath)
	default:
		return l.execFile(ns, candidate.Path)
	}
}

// execFile reads, normalizes, and executes one source file. The read holds
// no handle beyond the call, on every exit path.
func (l *Loader) execFile(ns *namespace, path string) error {
	src, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read %s: %w", path, err)
	}
	if err := ns.Exec(path, normalizeNewlines(src)); err != nil {
		return err
	}
	return nil
}

// initFilePath probes the package directory for an initializer file, trying
// the configured extensions in priority order.
func (l *Loader) initFilePath(dir string) (string, bool) {
	for _, ext := range l.extensions {
		path := filepath.Join(dir, l.initStem+ext)
		info, err := os.Stat(path)
		if err == nil && !info.IsDir() {
			return path, true
		}
		if err != nil && !errors.Is(err, fs.ErrNotExist) {
			// Unreadable initializer is a real condition; let exec surface it.
			return path, true
		}
	}
	return "", false
}
