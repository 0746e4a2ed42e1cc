package loader

import (
	"context"
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

func TestDiscoverListsModulesAndPackages(t *testing.T) {
	root := t.TempDir()
	writeScript(t, root, "app.go", valueScript)
	writeScript(t, root, "pkg/init.go", "package main\n")
	writeScript(t, root, "pkg/sub.go", valueScript)
	if err := os.MkdirAll(filepath.Join(root, "pkg", "empty"), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	writeScript(t, root, "pkg/notes.txt", "not a module")
	l := newTestLoader(t, root)

	names, err := l.Discover()
	if err != nil {
		t.Fatalf("Discover: %v", err)
	}
	want := []Name{"app", "pkg", "pkg.empty", "pkg.sub"}
	if !reflect.DeepEqual(names, want) {
		t.Fatalf("expected %v, got %v", want, names)
	}
}

func TestDiscoverSkipsUnresolvableNames(t *testing.T) {
	root := t.TempDir()
	writeScript(t, root, "app.go", valueScript)
	writeScript(t, root, "weird.name.go", valueScript)
	writeScript(t, root, "odd.dir/inner.go", valueScript)
	l := newTestLoader(t, root)

	names, err := l.Discover()
	if err != nil {
		t.Fatalf("Discover: %v", err)
	}
	want := []Name{"app"}
	if !reflect.DeepEqual(names, want) {
		t.Fatalf("dotted stems cannot map back to their path and must be skipped, got %v", names)
	}

	// Every advertised name must actually load.
	for _, name := range names {
		if _, err := l.Load(name); err != nil {
			t.Fatalf("discovered name %s should load: %v", name, err)
		}
	}
}

func TestDiscoverMergesRoots(t *testing.T) {
	primary := t.TempDir()
	fallback := t.TempDir()
	writeScript(t, primary, "shared.go", valueScript)
	writeScript(t, fallback, "shared.go", valueScript)
	writeScript(t, fallback, "extra.go", valueScript)
	l, err := New([]string{primary, fallback})
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	names, err := l.Discover()
	if err != nil {
		t.Fatalf("Discover: %v", err)
	}
	want := []Name{"extra", "shared"}
	if !reflect.DeepEqual(names, want) {
		t.Fatalf("expected %v, got %v", want, names)
	}
}

func TestPreloadLoadsEverything(t *testing.T) {
	root := t.TempDir()
	writeScript(t, root, "a.go", valueScript)
	writeScript(t, root, "b.go", valueScript)
	writeScript(t, root, "pkg/init.go", "package main\n")
	writeScript(t, root, "pkg/sub.go", valueScript)
	l := newTestLoader(t, root)

	if err := l.Preload(context.Background()); err != nil {
		t.Fatalf("Preload: %v", err)
	}
	for _, name := range []string{"a", "b", "pkg", "pkg.sub"} {
		if _, ok := l.Registry().Lookup(name); !ok {
			t.Fatalf("Preload should have cached %s", name)
		}
	}
}

func TestPreloadReportsFirstFailure(t *testing.T) {
	root := t.TempDir()
	writeScript(t, root, "good.go", valueScript)
	writeScript(t, root, "bad.go", "package main\n\nvar X = (\n")
	l := newTestLoader(t, root, WithDiag(DiagFunc(func(string, error) {})))

	if err := l.Preload(context.Background()); err == nil {
		t.Fatalf("Preload should surface the broken module")
	}
}
