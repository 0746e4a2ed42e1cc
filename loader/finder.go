package loader

import (
	"os"
	"path/filepath"

	"github.com/wrybill/modpath/internal/module"
)

// CandidateKind distinguishes the two physical shapes a qualified name can
// resolve to.
type CandidateKind int

const (
	// CandidateFile is a single source file, name plus extension.
	CandidateFile CandidateKind = iota
	// CandidatePackage is a directory; its children are modules of their own
	// and its optional initializer file runs when the package loads.
	CandidatePackage
)

// Candidate is the physical location a qualified name resolved to.
type Candidate struct {
	Path string
	Kind CandidateKind
}

// Find reports whether the loader can supply name: a claim returns the
// resolved candidate, a pass returns false. Directories take precedence over
// files of the same stem, and earlier roots over later ones. Find never
// errors; a name that matches nothing is a pass, not a failure.
func (l *Loader) Find(name Name) (Candidate, bool) {
	if name.Validate() != nil {
		return Candidate{}, false
	}
	rel := name.relPath()
	for _, root := range l.roots {
		base := filepath.Join(root, rel)
		if info, err := os.Stat(base); err == nil && info.IsDir() {
			return Candidate{Path: base, Kind: CandidatePackage}, true
		}
		for _, ext := range l.extensions {
			path := base + ext
			if info, err := os.Stat(path); err == nil && !info.IsDir() {
				return Candidate{Path: path, Kind: CandidateFile}, true
			}
		}
	}
	return Candidate{}, false
}

// Chain tries each resolver in order, first claim wins. It satisfies
// Resolver so test doubles can sit in front of or behind the production
// loader.
type Chain []Resolver

// Find returns the first claim in the chain.
func (c Chain) Find(name Name) (Candidate, bool) {
	for _, r := range c {
		if candidate, ok := r.Find(name); ok {
			return candidate, ok
		}
	}
	return Candidate{}, false
}

// Load delegates to the first resolver that claims the name.
func (c Chain) Load(name Name) (*module.Module, error) {
	for _, r := range c {
		if _, ok := r.Find(name); ok {
			return r.Load(name)
		}
	}
	return nil, &NotFoundError{Name: name}
}
