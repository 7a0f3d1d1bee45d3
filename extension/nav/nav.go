// Package nav provides the navigation extension for sitenav.
// It registers commands: show, sidebar, validate, links, diff, and the
// matching MCP tools for inspecting the descriptor.
package nav

import (
	"github.com/jpl-au/sitenav/extension"
	"github.com/spf13/cobra"
)

func init() {
	extension.Register(&Extension{})
}

// Extension implements the navigation extension.
type Extension struct {
	ctx extension.Context
}

// Compile-time interface compliance. Catches missing methods at build time
// rather than runtime, making interface changes safer to refactor.
var (
	_ extension.Extension     = (*Extension)(nil)
	_ extension.Initializable = (*Extension)(nil)
	_ extension.Projectless   = (*Extension)(nil)
)

// Name returns "nav" - this extension inspects the navigation descriptor.
func (e *Extension) Name() string { return "nav" }

// Init receives the loaded project from the extension context.
func (e *Extension) Init(ctx extension.Context) error {
	e.ctx = ctx
	return nil
}

// Commands returns the descriptor inspection commands.
func (e *Extension) Commands() []*cobra.Command {
	return []*cobra.Command{
		e.newShowCmd(),
		e.newSidebarCmd(),
		e.newValidateCmd(),
		e.newLinksCmd(),
		e.newDiffCmd(),
	}
}

// MCPTools returns the descriptor tools for the MCP server.
func (e *Extension) MCPTools() []extension.MCPTool {
	return tools()
}

// NoProjectCommands returns commands that locate their own input.
// diff: compares descriptor files, loading the project only when one side
// is omitted.
func (e *Extension) NoProjectCommands() []string {
	return []string{"diff"}
}
