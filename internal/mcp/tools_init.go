// tools_init.go implements the MCP tool for initialising a new project.
//
// This tool works without an existing project, allowing LLMs to bootstrap
// a descriptor. Other descriptor tools require initialisation first.

package mcp

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"

	"github.com/jpl-au/sitenav/internal/log"
	"github.com/jpl-au/sitenav/internal/project"
	"github.com/mark3labs/mcp-go/mcp"
)

// initProject handles sitenav_init tool calls.
func (h *handlers) initProject(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) { //nolint:revive // ctx for future use
	force := getBool(req, "force", false)
	if h.projectRoot() != "" && !force {
		return mcp.NewToolResultError("project already initialised"), nil
	}

	dir := h.dir
	if dir == "" {
		dir = "."
	}
	if root := h.projectRoot(); root != "" {
		dir = root
	}
	scaffold := getBool(req, "scaffold", false)
	opts := project.Options{Force: force, Scaffold: scaffold}
	if cfg, err := h.loadConfig(); err == nil {
		opts.DocsDir = cfg.DocsDir()
		opts.BuildOut = cfg.BuildOut()
	}

	res, err := project.Init(dir, opts)

	log.Event("mcp:init", "init").Target(res.Site).Count(len(res.Pages)).Detail("scaffold", scaffold).Write(err)

	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	root, err := filepath.Abs(dir)
	if err != nil {
		return mcp.NewToolResultError("init succeeded but failed to resolve project root: " + err.Error()), nil
	}
	h.setRoot(root)
	log.SetProject(root)

	slog.Info("project initialised", "root", root, "scaffolded", len(res.Pages))

	if scaffold {
		return mcp.NewToolResultText(fmt.Sprintf("project initialised (%d pages scaffolded, %d already present)", len(res.Pages), res.Existing)), nil
	}
	return mcp.NewToolResultText("project initialised"), nil
}
