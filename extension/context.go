// context.go defines the Context interface for extension access to sitenav
// internals.
//
// Separated from extension.go to isolate dependency injection concerns.
// The Context provides a controlled surface area for extensions - they can
// access what they need without reaching into arbitrary internals.
//
// Design: Context uses an interface to enable testing with mock implementations.
// Extensions receive Context during Init(), not at construction, to support
// the two-phase initialization pattern where extensions register before
// the project is discovered.

package extension

import (
	"path/filepath"

	"github.com/jpl-au/sitenav/internal/config"
	"github.com/jpl-au/sitenav/internal/project"
	"github.com/jpl-au/sitenav/internal/site"
)

// Context provides extensions controlled access to sitenav internals.
// Extensions receive this during initialisation to access shared resources.
type Context interface {
	// Site returns the navigation descriptor loaded from the project.
	Site() *site.Site

	// Root returns the absolute project root directory.
	Root() string

	// SitePath returns the descriptor file path.
	SitePath() string

	// DocsDir returns the docs directory, resolved against the project root.
	DocsDir() string

	// Config returns user configuration for respecting user preferences.
	Config() *config.Config
}

// extContext implements Context.
type extContext struct {
	site *site.Site
	root string
	cfg  *config.Config
}

// NewContext creates a new extension context.
func NewContext(s *site.Site, root string, cfg *config.Config) Context {
	return &extContext{
		site: s,
		root: root,
		cfg:  cfg,
	}
}

// Site returns the descriptor, the primary input of every command.
func (c *extContext) Site() *site.Site {
	return c.site
}

// Root returns the project root.
func (c *extContext) Root() string {
	return c.root
}

// SitePath returns where the descriptor was loaded from.
func (c *extContext) SitePath() string {
	return project.SitePath(c.root)
}

// DocsDir returns the configured docs directory under the project root.
func (c *extContext) DocsDir() string {
	return resolve(c.root, c.cfg.DocsDir())
}

// Config returns the loaded user configuration for respecting preferences.
func (c *extContext) Config() *config.Config {
	return c.cfg
}

// resolve joins a configured directory onto the project root unless it is
// already absolute.
func resolve(root, dir string) string {
	if filepath.IsAbs(dir) {
		return dir
	}
	return filepath.Join(root, dir)
}

// Resolve joins a configured directory (docs.dir, build.out) onto the
// project root unless it is already absolute.
func Resolve(ctx Context, dir string) string {
	return resolve(ctx.Root(), dir)
}
