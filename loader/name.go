package loader

import (
	"fmt"
	"path/filepath"
	"strings"
)

// Name is a dot-delimited qualified module name such as "pkg.sub". Names are
// canonical UTF-8 strings end to end; resolution never re-encodes them
// through a platform locale, so installation paths outside the legacy narrow
// character set resolve the same as any other.
type Name string

// Validate checks that the name is non-empty and free of empty or
// separator-bearing segments.
func (n Name) Validate() error {
	raw := string(n)
	if strings.TrimSpace(raw) == "" {
		return fmt.Errorf("loader: module name is empty")
	}
	for _, segment := range strings.Split(raw, ".") {
		if segment == "" {
			return fmt.Errorf("loader: module name %q has an empty segment", raw)
		}
		if strings.ContainsAny(segment, `/\`) {
			return fmt.Errorf("loader: module name %q contains a path separator", raw)
		}
	}
	return nil
}

// Segments splits the name on dots.
func (n Name) Segments() []string {
	return strings.Split(string(n), ".")
}

// relPath maps every dot to the host directory separator, consistently for
// the whole name: "a.b.c" becomes filepath.Join("a", "b", "c").
func (n Name) relPath() string {
	return filepath.Join(n.Segments()...)
}

func (n Name) String() string {
	return string(n)
}
