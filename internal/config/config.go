// Package config provides reading and writing of sitenav configuration.
// Supports both global (~/.sitenav/config.yaml) and local (.sitenav/config.yaml).
// Reading: uses local if it exists, otherwise global.
// Writing: defaults to global, use --local for local.
//
// Configuration covers the tool, not the site: where the docs live, where
// builds go, how previews are served. The site itself is described by the
// navigation descriptor (.sitenav/site.yaml).
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"

	"gopkg.in/yaml.v3"
)

var (
	// ErrNoConfigPath is returned when the config path cannot be determined.
	ErrNoConfigPath = errors.New("cannot determine config path")
	// ErrUnknownKey is returned when getting/setting an unknown config key.
	ErrUnknownKey = errors.New("unknown config key")
	// ErrInvalidValue is returned when a config value is invalid.
	ErrInvalidValue = errors.New("invalid config value")
)

// Scope represents the configuration scope (global or local).
type Scope int

const (
	// ScopeGlobal is user-wide config in ~/.sitenav/config.yaml (default)
	ScopeGlobal Scope = iota
	// ScopeLocal is project-specific config in .sitenav/config.yaml
	ScopeLocal
)

// Dir is the name of the sitenav directory, both in a project and in $HOME.
const Dir = ".sitenav"

// Docs holds docs-tree options.
type Docs struct {
	Dir string `yaml:"dir,omitempty"`
}

// Build holds static build options.
type Build struct {
	Out     string `yaml:"out,omitempty"`
	Workers *int   `yaml:"workers,omitempty"`
}

// Preview holds live preview options.
type Preview struct {
	Addr string `yaml:"addr,omitempty"`
}

// Render holds terminal rendering options.
type Render struct {
	Style string `yaml:"style,omitempty"`
}

// Defaults applied when not configured.
const (
	DefaultDocsDir     = "docs"
	DefaultBuildOut    = "dist"
	DefaultWorkers     = 4
	DefaultPreviewAddr = "127.0.0.1:5173"
	DefaultStyle       = "dark"
)

// Validation bounds for configuration values.
const (
	MinWorkers = 1
	MaxWorkers = 64
)

// Styles lists the accepted glamour styles for render.style.
var Styles = []string{"dark", "light", "notty", "ascii"}

// Config contains configuration for sitenav.
type Config struct {
	Docs    Docs    `yaml:"docs,omitempty"`
	Build   Build   `yaml:"build,omitempty"`
	Preview Preview `yaml:"preview,omitempty"`
	Render  Render  `yaml:"render,omitempty"`

	// path is the file this config was loaded from (for Save)
	path  string
	scope Scope
}

// Validate checks that all configured values are within acceptable bounds.
// Returns nil if all values are valid or not set (defaults will be used).
func (c *Config) Validate() error {
	if c.Build.Workers != nil {
		v := *c.Build.Workers
		if v < MinWorkers || v > MaxWorkers {
			return fmt.Errorf("%w: workers must be between %d and %d, got %d",
				ErrInvalidValue, MinWorkers, MaxWorkers, v)
		}
	}
	if c.Render.Style != "" && !slices.Contains(Styles, c.Render.Style) {
		return fmt.Errorf("%w: style must be one of %v, got %q",
			ErrInvalidValue, Styles, c.Render.Style)
	}
	return nil
}

// DocsDir returns the docs directory, relative to the project root (defaults to "docs").
func (c *Config) DocsDir() string {
	if c.Docs.Dir == "" {
		return DefaultDocsDir
	}
	return c.Docs.Dir
}

// BuildOut returns the build output directory, relative to the project root (defaults to "dist").
func (c *Config) BuildOut() string {
	if c.Build.Out == "" {
		return DefaultBuildOut
	}
	return c.Build.Out
}

// Workers returns the number of concurrent page renderers (defaults to 4).
func (c *Config) Workers() int {
	if c.Build.Workers == nil {
		return DefaultWorkers
	}
	return *c.Build.Workers
}

// PreviewAddr returns the preview listen address (defaults to 127.0.0.1:5173).
func (c *Config) PreviewAddr() string {
	if c.Preview.Addr == "" {
		return DefaultPreviewAddr
	}
	return c.Preview.Addr
}

// Style returns the glamour style for terminal output (defaults to "dark").
func (c *Config) Style() string {
	if c.Render.Style == "" {
		return DefaultStyle
	}
	return c.Render.Style
}

// LocalPath returns the path to the local (project) config file.
func LocalPath() string {
	return filepath.Join(Dir, "config.yaml")
}

// GlobalPath returns the path to the global (user) config file: ~/.sitenav/config.yaml
func GlobalPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, Dir, "config.yaml")
}

// Load reads configuration: uses local if it exists, otherwise global.
func Load() (*Config, error) {
	// Check if local config exists
	if _, err := os.Stat(LocalPath()); err == nil {
		return LoadScope(ScopeLocal)
	}
	// Fall back to global
	return LoadScope(ScopeGlobal)
}

// LoadScope reads configuration from a specific scope.
func LoadScope(scope Scope) (*Config, error) {
	return loadPath(pathForScope(scope), scope)
}

// LoadFrom reads the local config of the project at root, falling back to
// global config when the project has none. Used when the project directory
// is not the working directory (--dir, SITENAV_DIR).
func LoadFrom(root string) (*Config, error) {
	local := filepath.Join(root, LocalPath())
	if _, err := os.Stat(local); err == nil {
		return loadPath(local, ScopeLocal)
	}
	return LoadScope(ScopeGlobal)
}

// LoadLocal reads only the local config of the project at root. A missing
// file yields an empty config that saves to that location.
func LoadLocal(root string) (*Config, error) {
	return loadPath(filepath.Join(root, LocalPath()), ScopeLocal)
}

func loadPath(path string, scope Scope) (*Config, error) {
	if path == "" {
		return &Config{scope: scope}, nil
	}

	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return &Config{path: path, scope: scope}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("cannot read config file %s: %w", path, err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("malformed config file %s: %w\n\nTo fix: edit the file to correct the YAML syntax, or delete it to use defaults", path, err)
	}
	cfg.path = path
	cfg.scope = scope

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config file %s: %w", path, err)
	}
	return &cfg, nil
}

// Scope returns which scope this config was loaded from.
func (c *Config) Scope() Scope {
	return c.scope
}

// Save writes the configuration to its original location.
func (c *Config) Save() error {
	if c.path == "" {
		c.path = pathForScope(c.scope)
	}
	if c.path == "" {
		return ErrNoConfigPath
	}
	return c.saveToPath(c.path)
}

// SaveScope writes the configuration to the specified scope.
func (c *Config) SaveScope(scope Scope) error {
	path := pathForScope(scope)
	if path == "" {
		return ErrNoConfigPath
	}
	return c.saveToPath(path)
}

// saveToPath writes configuration to a specific filesystem path.
// Creates parent directories as needed with mode 0755.
func (c *Config) saveToPath(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshalling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}
	return nil
}

// pathForScope returns the filesystem path for a given scope.
func pathForScope(scope Scope) string {
	switch scope {
	case ScopeLocal:
		return LocalPath()
	case ScopeGlobal:
		return GlobalPath()
	default:
		return ""
	}
}
