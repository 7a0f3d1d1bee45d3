// config_keys.go provides key-value access to configuration settings.
//
// Separated from config.go to isolate the key enumeration and string-based
// get/set logic. This separation allows config.go to focus on YAML structure
// and loading, while this file handles the MCP and CLI interface where config
// is accessed by string keys (e.g., "build.workers").
//
// Design: A pointer is used for build.workers so we can distinguish between
// "not set" (nil) and an explicit value. String keys treat "" as unset.

package config

import (
	"fmt"
	"slices"
	"strconv"
)

// ValidKeys returns all valid configuration keys.
func ValidKeys() []string {
	return []string{
		"docs.dir",
		"build.out", "build.workers",
		"preview.addr",
		"render.style",
	}
}

// IsValidKey returns true if the key is a valid configuration key.
func IsValidKey(key string) bool {
	return slices.Contains(ValidKeys(), key)
}

// Get returns the value of a configuration key as a string.
func (c *Config) Get(key string) (string, error) {
	switch key {
	case "docs.dir":
		return c.DocsDir(), nil
	case "build.out":
		return c.BuildOut(), nil
	case "build.workers":
		return strconv.Itoa(c.Workers()), nil
	case "preview.addr":
		return c.PreviewAddr(), nil
	case "render.style":
		return c.Style(), nil
	default:
		return "", fmt.Errorf("%w: %s", ErrUnknownKey, key)
	}
}

// Set sets the value of a configuration key.
func (c *Config) Set(key, value string) error {
	switch key {
	case "docs.dir":
		if value == "" {
			return fmt.Errorf("%w: docs.dir must not be empty", ErrInvalidValue)
		}
		c.Docs.Dir = value
	case "build.out":
		if value == "" {
			return fmt.Errorf("%w: build.out must not be empty", ErrInvalidValue)
		}
		c.Build.Out = value
	case "build.workers":
		n, err := strconv.Atoi(value)
		if err != nil || n < MinWorkers || n > MaxWorkers {
			return fmt.Errorf("%w: build.workers must be an integer between %d and %d", ErrInvalidValue, MinWorkers, MaxWorkers)
		}
		c.Build.Workers = &n
	case "preview.addr":
		if value == "" {
			return fmt.Errorf("%w: preview.addr must not be empty", ErrInvalidValue)
		}
		c.Preview.Addr = value
	case "render.style":
		if !slices.Contains(Styles, value) {
			return fmt.Errorf("%w: render.style must be one of %v", ErrInvalidValue, Styles)
		}
		c.Render.Style = value
	default:
		return fmt.Errorf("%w: %s", ErrUnknownKey, key)
	}
	return nil
}

// All returns all configuration values as a map.
func (c *Config) All() map[string]string {
	return map[string]string{
		"docs.dir":      c.DocsDir(),
		"build.out":     c.BuildOut(),
		"build.workers": strconv.Itoa(c.Workers()),
		"preview.addr":  c.PreviewAddr(),
		"render.style":  c.Style(),
	}
}

// IsSet returns true if the key has an explicit value (not just defaults).
func (c *Config) IsSet(key string) bool {
	switch key {
	case "docs.dir":
		return c.Docs.Dir != ""
	case "build.out":
		return c.Build.Out != ""
	case "build.workers":
		return c.Build.Workers != nil
	case "preview.addr":
		return c.Preview.Addr != ""
	case "render.style":
		return c.Render.Style != ""
	default:
		return false
	}
}
