package loader

import (
	"context"
	"io/fs"
	"path/filepath"
	"runtime"
	"sort"
	"strings"

	"golang.org/x/sync/errgroup"
)

// Discover walks the search roots and returns every qualified name the
// loader would claim: one entry per package directory and one per script
// file, initializer files excluded. Names are sorted; duplicates across
// roots collapse to the first root's meaning, matching Find's precedence.
func (l *Loader) Discover() ([]Name, error) {
	seen := make(map[Name]struct{})
	for _, root := range l.roots {
		err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				if d != nil && d.IsDir() {
					return fs.SkipDir
				}
				return nil
			}
			rel, relErr := filepath.Rel(root, path)
			if relErr != nil || rel == "." {
				return nil
			}
			if d.IsDir() {
				if !roundTrips(rel) {
					return fs.SkipDir
				}
				if name := nameFromRel(rel); name.Validate() == nil {
					seen[name] = struct{}{}
				}
				return nil
			}
			ext := filepath.Ext(rel)
			if !l.recognized(ext) {
				return nil
			}
			stem := strings.TrimSuffix(rel, ext)
			if filepath.Base(stem) == l.initStem {
				return nil // belongs to its package
			}
			if !roundTrips(stem) {
				return nil
			}
			if name := nameFromRel(stem); name.Validate() == nil {
				seen[name] = struct{}{}
			}
			return nil
		})
		if err != nil {
			return nil, err
		}
	}
	names := make([]Name, 0, len(seen))
	for name := range seen {
		names = append(names, name)
	}
	sort.Slice(names, func(i, j int) bool { return names[i] < names[j] })
	return names, nil
}

// Preload loads every discovered module with bounded parallelism. The
// registry's check-and-insert keeps concurrent requests for one name on a
// single placeholder; the first load error cancels the remaining work.
func (l *Loader) Preload(ctx context.Context) error {
	names, err := l.Discover()
	if err != nil {
		return err
	}
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.NumCPU())
	for _, name := range names {
		name := name
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			_, err := l.Load(name)
			return err
		})
	}
	return g.Wait()
}

func (l *Loader) recognized(ext string) bool {
	for _, candidate := range l.extensions {
		if strings.EqualFold(candidate, ext) {
			return true
		}
	}
	return false
}

// nameFromRel converts a root-relative path (without extension) back into a
// qualified name.
func nameFromRel(rel string) Name {
	return Name(strings.ReplaceAll(filepath.ToSlash(rel), "/", "."))
}

// roundTrips reports whether rel survives the name mapping both ways. A
// segment containing a dot would split into extra name segments, yielding a
// qualified name that resolves to a different path, so such entries are not
// loadable and must not be advertised.
func roundTrips(rel string) bool {
	for _, segment := range strings.Split(filepath.ToSlash(rel), "/") {
		if strings.Contains(segment, ".") {
			return false
		}
	}
	return true
}
