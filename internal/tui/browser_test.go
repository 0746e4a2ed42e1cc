package tui

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/wrybill/modpath/loader"
)

func newTestBrowser(t *testing.T) (*Browser, string) {
	t.Helper()
	root := t.TempDir()
	if err := os.MkdirAll(filepath.Join(root, "pkg"), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	src := "package main\n\nvar VALUE = 42\n"
	if err := os.WriteFile(filepath.Join(root, "pkg", "sub.go"), []byte(src), 0o644); err != nil {
		t.Fatalf("write script: %v", err)
	}
	l, err := loader.New([]string{root})
	if err != nil {
		t.Fatalf("loader.New: %v", err)
	}
	browser, err := NewBrowser(l)
	if err != nil {
		t.Fatalf("NewBrowser: %v", err)
	}
	return browser, root
}

func TestBrowserListsDiscoveredModules(t *testing.T) {
	browser, _ := newTestBrowser(t)
	items := browser.menu.Items()
	if len(items) != 2 {
		t.Fatalf("expected pkg and pkg.sub, got %d items", len(items))
	}
}

func TestBrowserLoadShowsNamespace(t *testing.T) {
	browser, _ := newTestBrowser(t)
	model, _ := browser.Update(tea.WindowSizeMsg{Width: 80, Height: 24})
	browser = model.(*Browser)

	mod, err := browser.loader.Load("pkg.sub")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	model, _ = browser.Update(loadResultMsg{name: "pkg.sub", mod: mod})
	browser = model.(*Browser)

	view := browser.View()
	if !strings.Contains(view, "pkg.sub") {
		t.Fatalf("view should name the loaded module:\n%s", view)
	}
	if !strings.Contains(view, "VALUE") {
		t.Fatalf("view should list the exported symbol:\n%s", view)
	}
}

func TestBrowserShowsLoadErrors(t *testing.T) {
	browser, root := newTestBrowser(t)
	if err := os.WriteFile(filepath.Join(root, "broken.go"), []byte("package main\n\nvar X = (\n"), 0o644); err != nil {
		t.Fatalf("write broken script: %v", err)
	}
	_, err := browser.loader.Load("broken")
	if err == nil {
		t.Fatalf("expected a load failure")
	}
	model, _ := browser.Update(loadResultMsg{name: "broken", err: err})
	browser = model.(*Browser)

	if !strings.Contains(browser.View(), "broken") {
		t.Fatalf("view should surface the load error")
	}
}
