package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestInitModpathDirCreatesStructure(t *testing.T) {
	project := t.TempDir()
	if err := InitModpathDir(project); err != nil {
		t.Fatalf("InitModpathDir: %v", err)
	}
	for _, rel := range []string{
		filepath.Join(ModpathDir, "logs"),
		filepath.Join(ModpathDir, "config.yaml"),
	} {
		if _, err := os.Stat(filepath.Join(project, rel)); err != nil {
			t.Fatalf("expected %s to exist: %v", rel, err)
		}
	}
}

func TestInitModpathDirKeepsExistingConfig(t *testing.T) {
	project := t.TempDir()
	if err := InitModpathDir(project); err != nil {
		t.Fatalf("InitModpathDir: %v", err)
	}
	custom := []byte("version: 1\nroots:\n  - mods\n")
	path := filepath.Join(project, ModpathDir, "config.yaml")
	if err := os.WriteFile(path, custom, 0644); err != nil {
		t.Fatalf("write custom config: %v", err)
	}
	if err := InitModpathDir(project); err != nil {
		t.Fatalf("second InitModpathDir: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil || string(data) != string(custom) {
		t.Fatalf("existing config should be left alone")
	}
}

func TestNewConfigDefaults(t *testing.T) {
	project := t.TempDir()
	cfg, err := NewConfig(project)
	if err != nil {
		t.Fatalf("NewConfig: %v", err)
	}
	roots := cfg.Roots()
	if len(roots) != 1 || roots[0] != filepath.Join(project, "scripts") {
		t.Fatalf("unexpected default roots: %v", roots)
	}
	if cfg.InitFile() != "init" {
		t.Fatalf("unexpected default init file: %s", cfg.InitFile())
	}
	exts := cfg.Extensions()
	if len(exts) != 1 || exts[0] != ".go" {
		t.Fatalf("unexpected default extensions: %v", exts)
	}
}

func TestNewConfigReadsProjectFile(t *testing.T) {
	project := t.TempDir()
	if err := InitModpathDir(project); err != nil {
		t.Fatalf("InitModpathDir: %v", err)
	}
	custom := []byte(`version: 1
roots:
  - mods
  - /opt/shared/mods
extensions:
  - .mp
  - .go
init_file: package
`)
	if err := os.WriteFile(filepath.Join(project, ModpathDir, "config.yaml"), custom, 0644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	cfg, err := NewConfig(project)
	if err != nil {
		t.Fatalf("NewConfig: %v", err)
	}
	roots := cfg.Roots()
	if len(roots) != 2 {
		t.Fatalf("expected 2 roots, got %v", roots)
	}
	if roots[0] != filepath.Join(project, "mods") {
		t.Fatalf("relative root should resolve against the project dir: %s", roots[0])
	}
	if roots[1] != filepath.Clean("/opt/shared/mods") {
		t.Fatalf("absolute root should pass through: %s", roots[1])
	}
	if cfg.InitFile() != "package" {
		t.Fatalf("unexpected init file: %s", cfg.InitFile())
	}
	if exts := cfg.Extensions(); len(exts) != 2 || exts[0] != ".mp" {
		t.Fatalf("unexpected extensions: %v", exts)
	}
}

func TestNewConfigRejectsMalformedYAML(t *testing.T) {
	project := t.TempDir()
	if err := InitModpathDir(project); err != nil {
		t.Fatalf("InitModpathDir: %v", err)
	}
	if err := os.WriteFile(filepath.Join(project, ModpathDir, "config.yaml"), []byte("roots: ["), 0644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	if _, err := NewConfig(project); err == nil {
		t.Fatalf("malformed config should fail")
	}
}
