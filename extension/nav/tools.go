// tools.go defines the MCP tools the navigation extension contributes.
//
// Each handler receives an extension Context built from the descriptor as
// it is on disk at call time, so an LLM editing site.yaml sees its changes
// on the next call.

package nav

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/jpl-au/sitenav/extension"
	"github.com/jpl-au/sitenav/internal/diff"
	"github.com/jpl-au/sitenav/internal/links"
	"github.com/jpl-au/sitenav/internal/log"
	"github.com/jpl-au/sitenav/internal/site"
	"github.com/mark3labs/mcp-go/mcp"
)

func tools() []extension.MCPTool {
	return []extension.MCPTool{
		{
			Tool: mcp.NewTool("sitenav_site",
				mcp.WithDescription("Get the navigation descriptor as JSON: title, base, nav, sidebars keyed by path prefix, social links, footer"),
			),
			Handler: siteTool,
		},
		{
			Tool: mcp.NewTool("sitenav_outline",
				mcp.WithDescription("Get the navigation descriptor as a markdown outline"),
			),
			Handler: outlineTool,
		},
		{
			Tool: mcp.NewTool("sitenav_sidebar",
				mcp.WithDescription("Get the sidebar selected for a page path. The sidebar whose key is the longest prefix of the path wins; no match means the page has no sidebar."),
				mcp.WithString("path", mcp.Required(), mcp.Description("Page path, e.g. /components/forms")),
			),
			Handler: sidebarTool,
		},
		{
			Tool: mcp.NewTool("sitenav_validate",
				mcp.WithDescription("Check the descriptor for structural problems (missing text/link, malformed or duplicate sidebar keys, invalid base)"),
			),
			Handler: validateTool,
		},
		{
			Tool: mcp.NewTool("sitenav_links",
				mcp.WithDescription("Check that every internal link resolves to a markdown page in the docs directory"),
				mcp.WithBoolean("pages", mcp.Description("Also check links inside markdown pages")),
				mcp.WithBoolean("strict", mcp.Description("Check even when the descriptor sets ignoreDeadLinks")),
			),
			Handler: linksTool,
		},
		{
			Tool: mcp.NewTool("sitenav_diff",
				mcp.WithDescription("Compare a proposed descriptor (YAML or JSON) with the project descriptor by navigation outline"),
				mcp.WithString("content", mcp.Required(), mcp.Description("Proposed descriptor content")),
			),
			Handler: diffTool,
		},
	}
}

// siteTool handles sitenav_site tool calls.
func siteTool(_ context.Context, extCtx extension.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	log.Event("mcp:sitenav_site", "show").Target(extCtx.SitePath()).Write(nil)
	return jsonResult(extCtx.Site())
}

// outlineTool handles sitenav_outline tool calls.
func outlineTool(_ context.Context, extCtx extension.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	log.Event("mcp:sitenav_outline", "show").Target(extCtx.SitePath()).Write(nil)
	return mcp.NewToolResultText(extCtx.Site().Outline()), nil
}

// sidebarTool handles sitenav_sidebar tool calls.
func sidebarTool(_ context.Context, extCtx extension.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	path, err := req.RequireString("path")
	if err != nil {
		return mcp.NewToolResultError("path is required"), nil //nolint:nilerr
	}

	g, ok := extCtx.Site().Resolve(path)

	log.Event("mcp:sitenav_sidebar", "resolve").Path(path).Target(g.Prefix).Write(nil)

	res := sidebarResult{Path: path}
	if ok {
		res.Sidebar = &g
	}
	return jsonResult(res)
}

// validateTool handles sitenav_validate tool calls.
func validateTool(_ context.Context, extCtx extension.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	s := extCtx.Site()
	problems := s.Problems()
	if problems == nil {
		problems = []site.Problem{}
	}
	err := s.Validate()

	log.Event("mcp:sitenav_validate", "validate").Target(extCtx.SitePath()).Count(len(problems)).Write(err)

	return jsonResult(validateResult{Valid: err == nil, Problems: problems})
}

// linksTool handles sitenav_links tool calls. Dead links are a normal
// result, not a tool error; the report lists them.
func linksTool(ctx context.Context, extCtx extension.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	pages := req.GetBool("pages", false)
	strict := req.GetBool("strict", false)

	report, err := links.Check(ctx, extCtx.Site(), os.DirFS(extCtx.DocsDir()), links.Options{Pages: pages, Force: strict})

	log.Event("mcp:sitenav_links", "check").
		Path(extCtx.DocsDir()).
		Count(report.Checked).
		Detail("dead", len(report.Dead)).
		Write(err)

	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return jsonResult(report)
}

// diffTool handles sitenav_diff tool calls.
func diffTool(_ context.Context, extCtx extension.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	content, err := req.RequireString("content")
	if err != nil {
		return mcp.NewToolResultError("content is required"), nil //nolint:nilerr
	}

	proposed, err := site.Parse([]byte(content))

	log.Event("mcp:sitenav_diff", "diff").Target(extCtx.SitePath()).Write(err)

	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("malformed descriptor: %v", err)), nil
	}
	r := diff.Sites(extCtx.Site(), proposed, "current", "proposed")
	if !r.Changed {
		return mcp.NewToolResultText("No navigation changes"), nil
	}
	return mcp.NewToolResultText(r.Format(false)), nil
}

// jsonResult serialises v as indented JSON in an MCP text result.
func jsonResult(v any) (*mcp.CallToolResult, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(string(data)), nil
}
