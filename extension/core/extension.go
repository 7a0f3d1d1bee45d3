// Package core provides the core extension for sitenav.
// It registers commands: init, config, guide, log, version, serve.
package core

import (
	"github.com/jpl-au/sitenav/extension"
	"github.com/spf13/cobra"
)

func init() {
	extension.Register(&Extension{})
}

// Extension implements the core extension.
type Extension struct{}

// Compile-time interface compliance. Catches missing methods at build time
// rather than runtime, making interface changes safer to refactor.
var (
	_ extension.Extension   = (*Extension)(nil)
	_ extension.Projectless = (*Extension)(nil)
)

// Name returns "core" - this extension provides fundamental sitenav commands.
func (e *Extension) Name() string { return "core" }

// Commands returns all core CLI commands for project management.
func (e *Extension) Commands() []*cobra.Command {
	return []*cobra.Command{
		newInitCmd(),
		newConfigCmd(),
		newServeCmd(),
		newGuideCmd(),
		newLogCmd(),
		newVersionCmd(),
	}
}

// MCPTools returns nil - the bootstrap tools (init, guide, config) are
// registered by the MCP server itself so they work without a project.
func (e *Extension) MCPTools() []extension.MCPTool {
	return nil
}

// NoProjectCommands returns commands that manage their own project lookup.
// serve: Long-running MCP server starts in uninitialised mode without a project.
// log: Reads the global audit log, narrowing to a project only if found.
// version: Displays build info, doesn't need the descriptor.
func (e *Extension) NoProjectCommands() []string {
	return []string{"serve", "log", "version"}
}
