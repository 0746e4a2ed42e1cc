// Package bundle tracks whether the running binary carries its script
// modules embedded at build time. Bundled builds resolve every script
// through the embedded filesystem, whose paths were fixed when the binary
// was linked, so the path-safe loader chain is never installed for them.
package bundle

import (
	"io/fs"
	"sync"
)

var (
	mu   sync.Mutex
	fsys fs.FS
)

// Register records the embedded script filesystem. Bundled builds call this
// from an init function; the first registration wins.
func Register(f fs.FS) {
	if f == nil {
		return
	}
	mu.Lock()
	defer mu.Unlock()
	if fsys == nil {
		fsys = f
	}
}

// Active reports whether an embedded bundle has been registered.
func Active() bool {
	mu.Lock()
	defer mu.Unlock()
	return fsys != nil
}

// FS returns the registered bundle filesystem, if any.
func FS() (fs.FS, bool) {
	mu.Lock()
	defer mu.Unlock()
	return fsys, fsys != nil
}
