// Package publish provides the publishing extension for sitenav.
// It registers commands: build, preview, page, and the matching MCP tools
// for rendering the docs tree with its navigation chrome.
package publish

import (
	"github.com/jpl-au/sitenav/extension"
	"github.com/spf13/cobra"
)

func init() {
	extension.Register(&Extension{})
}

// Extension implements the publishing extension.
type Extension struct {
	ctx extension.Context
}

var (
	_ extension.Extension     = (*Extension)(nil)
	_ extension.Initializable = (*Extension)(nil)
)

// Name returns "publish" - this extension turns the docs tree into a site.
func (e *Extension) Name() string { return "publish" }

// Init receives the loaded project from the extension context.
func (e *Extension) Init(ctx extension.Context) error {
	e.ctx = ctx
	return nil
}

// Commands returns the build, preview and page commands.
func (e *Extension) Commands() []*cobra.Command {
	return []*cobra.Command{
		e.newBuildCmd(),
		e.newPreviewCmd(),
		e.newPageCmd(),
	}
}

// MCPTools returns the page and build tools for the MCP server.
func (e *Extension) MCPTools() []extension.MCPTool {
	return tools()
}

// docsDir returns the docs directory: the --docs flag when given, else
// docs.dir from config, resolved against the project root.
func docsDir(ctx extension.Context, c *cobra.Command) string {
	if c != nil {
		if d, _ := c.Flags().GetString(extension.FlagDocs); d != "" {
			return extension.Resolve(ctx, d)
		}
	}
	return ctx.DocsDir()
}
