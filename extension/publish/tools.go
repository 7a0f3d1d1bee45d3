// tools.go defines the MCP tools the publishing extension contributes.

package publish

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jpl-au/sitenav/extension"
	"github.com/jpl-au/sitenav/internal/build"
	"github.com/jpl-au/sitenav/internal/links"
	"github.com/jpl-au/sitenav/internal/log"
	"github.com/mark3labs/mcp-go/mcp"
)

func tools() []extension.MCPTool {
	return []extension.MCPTool{
		{
			Tool: mcp.NewTool("sitenav_page",
				mcp.WithDescription("Get the chrome a page is rendered with: nav bar with the active entry, the sidebar selected for its route, social links and footer. Page frontmatter applies."),
				mcp.WithString("path", mcp.Required(), mcp.Description("Page path, e.g. /components/forms")),
			),
			Handler: pageTool,
		},
		{
			Tool: mcp.NewTool("sitenav_build",
				mcp.WithDescription("Render the docs tree into static HTML in the configured output directory (build.out). Fails without writing when a link is dead, unless the descriptor sets ignoreDeadLinks."),
				mcp.WithBoolean("clean", mcp.Description("Remove the output directory first")),
			),
			Handler: buildTool,
		},
	}
}

// pageTool handles sitenav_page tool calls.
func pageTool(_ context.Context, extCtx extension.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	path, err := req.RequireString("path")
	if err != nil {
		return mcp.NewToolResultError("path is required"), nil //nolint:nilerr
	}

	res, err := compose(extCtx, extCtx.DocsDir(), path)

	log.Event("mcp:sitenav_page", "compose").Path(path).Target(res.File).Write(err)

	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return jsonResult(res)
}

// buildTool handles sitenav_build tool calls. A dead-link failure returns
// the link report so the caller can fix the descriptor.
func buildTool(ctx context.Context, extCtx extension.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	opts := build.Options{
		DocsDir: extCtx.DocsDir(),
		OutDir:  extension.Resolve(extCtx, extCtx.Config().BuildOut()),
		Workers: extCtx.Config().Workers(),
		Clean:   req.GetBool("clean", false),
	}

	res, err := build.Build(ctx, extCtx.Site(), opts)

	log.Event("mcp:sitenav_build", "build").
		Path(opts.DocsDir).
		Target(opts.OutDir).
		Count(len(res.Pages)).
		Write(err)

	if errors.Is(err, links.ErrDeadLinks) {
		data, merr := json.MarshalIndent(res.Links, "", "  ")
		if merr != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return mcp.NewToolResultError(fmt.Sprintf("%v\n%s", err, data)), nil
	}
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("build: %v", err)), nil
	}
	return jsonResult(res)
}

// jsonResult serialises v as indented JSON in an MCP text result.
func jsonResult(v any) (*mcp.CallToolResult, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(string(data)), nil
}
