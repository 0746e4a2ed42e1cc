// internal/config/config.go
//
// This package handles configuration and the .modpath directory structure.
// Every project that loads script modules gets a .modpath/ folder created in
// its root, holding the project config and the diagnostic log.

package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

const (
	// ModpathDir is the name of the directory we create in each project.
	ModpathDir = ".modpath"

	defaultInitFile = "init"
)

const defaultProjectConfigYAML = `# modpath project configuration
version: 1

# Directories searched for script modules, in precedence order.
# Relative paths are resolved against the project directory.
roots:
  - scripts

# Recognized script extensions, highest priority first.
extensions:
  - .go

# Stem of the optional package initializer file (init -> pkg/init.go).
init_file: init
`

// ProjectConfig models .modpath/config.yaml.
type ProjectConfig struct {
	Version    int      `yaml:"version"`
	Roots      []string `yaml:"roots"`
	Extensions []string `yaml:"extensions"`
	InitFile   string   `yaml:"init_file"`
}

// Config holds the runtime configuration for the loader CLI.
type Config struct {
	// ProjectDir is the directory the tool was pointed at.
	ProjectDir string

	// ModpathProjectDir is ProjectDir/.modpath.
	ModpathProjectDir string

	Project ProjectConfig
}

// InitModpathDir creates the .modpath directory structure in the given
// project directory and writes the default config when none exists.
//
// Structure created:
// .modpath/
// ├── logs/         <- diagnostic log for failed loads
// └── config.yaml   <- project configuration
func InitModpathDir(projectDir string) error {
	modpathDir := filepath.Join(projectDir, ModpathDir)

	dirs := []string{
		filepath.Join(modpathDir, "logs"),
	}
	for _, dir := range dirs {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return err
		}
	}

	return ensureProjectConfig(filepath.Join(modpathDir, "config.yaml"))
}

// NewConfig creates a Config populated from .modpath/config.yaml, applying
// defaults for anything the file leaves out.
func NewConfig(projectDir string) (*Config, error) {
	cfg := &Config{
		ProjectDir:        projectDir,
		ModpathProjectDir: filepath.Join(projectDir, ModpathDir),
		Project:           defaultProjectConfig(),
	}
	if err := cfg.loadProjectConfig(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LogsDir returns the path to the logs directory.
func (c *Config) LogsDir() string {
	return filepath.Join(c.ModpathProjectDir, "logs")
}

// ProjectConfigPath returns the on-disk location for the project config file.
func (c *Config) ProjectConfigPath() string {
	return filepath.Join(c.ModpathProjectDir, "config.yaml")
}

// Roots returns the configured search roots resolved against the project
// directory, in precedence order.
func (c *Config) Roots() []string {
	roots := make([]string, 0, len(c.Project.Roots))
	for _, root := range c.Project.Roots {
		root = strings.TrimSpace(root)
		if root == "" {
			continue
		}
		if !filepath.IsAbs(root) {
			root = filepath.Join(c.ProjectDir, root)
		}
		roots = append(roots, filepath.Clean(root))
	}
	return roots
}

// Extensions returns the configured extension priority list.
func (c *Config) Extensions() []string {
	return append([]string{}, c.Project.Extensions...)
}

// InitFile returns the configured initializer stem.
func (c *Config) InitFile() string {
	if strings.TrimSpace(c.Project.InitFile) == "" {
		return defaultInitFile
	}
	return c.Project.InitFile
}

func defaultProjectConfig() ProjectConfig {
	return ProjectConfig{
		Version:    1,
		Roots:      []string{"scripts"},
		Extensions: []string{".go"},
		InitFile:   defaultInitFile,
	}
}

func (c *Config) loadProjectConfig() error {
	data, err := os.ReadFile(c.ProjectConfigPath())
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("config: read %s: %w", c.ProjectConfigPath(), err)
	}
	parsed := defaultProjectConfig()
	if err := yaml.Unmarshal(data, &parsed); err != nil {
		return fmt.Errorf("config: parse %s: %w", c.ProjectConfigPath(), err)
	}
	if len(parsed.Roots) == 0 {
		parsed.Roots = defaultProjectConfig().Roots
	}
	if len(parsed.Extensions) == 0 {
		parsed.Extensions = defaultProjectConfig().Extensions
	}
	c.Project = parsed
	return nil
}

func ensureProjectConfig(path string) error {
	if _, err := os.Stat(path); err == nil {
		return nil
	} else if !os.IsNotExist(err) {
		return fmt.Errorf("config: stat %s: %w", path, err)
	}
	if err := os.WriteFile(path, []byte(defaultProjectConfigYAML), 0644); err != nil {
		return fmt.Errorf("config: write default %s: %w", path, err)
	}
	return nil
}
