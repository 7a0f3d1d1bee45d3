// serve.go implements the "sitenav serve" command for MCP server operation.
//
// Separated from extension.go because serve has unique lifecycle requirements.
// Unlike other commands that run and exit, serve blocks indefinitely handling
// MCP requests over stdio.
//
// Design: Serve is a projectless command - it finds the project itself and
// starts in uninitialised mode when there is none, so an LLM can call
// sitenav_init rather than the server failing to start.

package core

import (
	"github.com/jpl-au/sitenav/cmd"
	"github.com/jpl-au/sitenav/internal/mcp"
	"github.com/spf13/cobra"
)

func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start MCP server",
		Long: `Start an MCP (Model Context Protocol) server over stdio for LLM integration.

Tools: sitenav_site, sitenav_sidebar, sitenav_validate, sitenav_links,
sitenav_outline, sitenav_diff, sitenav_page, sitenav_build, sitenav_guide,
sitenav_config_get, sitenav_config_set, sitenav_init.
Resource: sitenav://pages/{path}

Use --dir to serve a specific project:
  sitenav serve --dir /path/to/project`,
		RunE: runServe,
	}
}

func runServe(_ *cobra.Command, _ []string) error {
	return mcp.Serve(cmd.Dir())
}
