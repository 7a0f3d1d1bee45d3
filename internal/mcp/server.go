// Package mcp implements the Model Context Protocol server, exposing the
// navigation descriptor to LLMs. Assistants can ask which sidebar a page
// gets, validate the descriptor and check links while they write docs.
package mcp

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"sync"

	"github.com/jpl-au/sitenav/extension"
	"github.com/jpl-au/sitenav/internal/config"
	"github.com/jpl-au/sitenav/internal/project"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// Version is advertised to clients for capability negotiation.
const Version = "1.0.0"

// ErrNotInitialised is returned by tools when no project has been found.
// The LLM should call sitenav_init to create one before using other tools.
const ErrNotInitialised = "sitenav not initialised - call sitenav_init first"

// Serve starts the MCP server over stdio, enabling LLM integration.
// Uses stdio transport for compatibility with Claude Desktop and other MCP clients.
//
// The server starts even if no project exists, so an LLM can call
// sitenav_init instead of failing with an opaque error. Tools that need the
// descriptor return ErrNotInitialised until then.
func Serve(dir string) error {
	// Log to stderr; stdout is reserved for MCP JSON-RPC messages
	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))
	slog.SetDefault(logger)

	h := &handlers{dir: dir}

	root, err := project.Find(dir)
	if err != nil && !errors.Is(err, project.ErrNotInitialised) {
		slog.Error("failed to locate project", "error", err)
		return err
	}
	if err == nil {
		h.root = root
	} else {
		slog.Info("sitenav not initialised, starting in uninitialised mode - call sitenav_init to create a project")
	}

	s := newServer(h)

	slog.Info("sitenav MCP server ready", "version", Version, "transport", "stdio", "root", root)

	err = server.ServeStdio(s)
	if errors.Is(err, context.Canceled) {
		slog.Info("server stopped")
		return nil
	}
	return err
}

// newServer builds the MCP server with every resource and tool registered.
func newServer(h *handlers) *server.MCPServer {
	s := server.NewMCPServer(
		"sitenav",
		Version,
		server.WithResourceCapabilities(true, false),
		server.WithToolCapabilities(true),
	)

	registerResources(s, h)
	registerTools(s, h)
	registerExtensionTools(s, h, extension.Tools())
	return s
}

// handlers provides MCP request handlers with access to the project.
// The root field is empty until a project is found or initialised.
type handlers struct {
	dir string // --dir override, used by sitenav_init

	mu   sync.RWMutex
	root string
}

// projectRoot returns the project root, or "" in uninitialised mode.
func (h *handlers) projectRoot() string {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.root
}

func (h *handlers) setRoot(root string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.root = root
}

// requireInit returns an error result if no project is available.
// Tools that need the descriptor should call this first.
func (h *handlers) requireInit() *mcp.CallToolResult {
	if h.projectRoot() == "" {
		return mcp.NewToolResultError(ErrNotInitialised)
	}
	return nil
}

// context loads the descriptor and config fresh for each call, so edits
// made while the server runs are seen without a restart.
func (h *handlers) context() (extension.Context, error) {
	root := h.projectRoot()
	if root == "" {
		return nil, errors.New(ErrNotInitialised)
	}
	cfg, err := config.LoadFrom(root)
	if err != nil {
		return nil, err
	}
	s, err := project.Load(root)
	if err != nil {
		return nil, err
	}
	return extension.NewContext(s, root, cfg), nil
}

// registerResources adds URI-based resource access for reading pages.
func registerResources(s *server.MCPServer, h *handlers) {
	s.AddResourceTemplate(
		mcp.NewResourceTemplate(
			"sitenav://pages/{path}",
			"Page",
			mcp.WithTemplateDescription("Read a docs page with its navigation chrome as markdown"),
			mcp.WithTemplateMIMEType("text/markdown"),
		),
		h.readPage,
	)
}

// registerTools exposes the bootstrap tools, which work without a project.
func registerTools(s *server.MCPServer, h *handlers) {
	// Init - works without an existing project
	s.AddTool(
		mcp.NewTool("sitenav_init",
			mcp.WithDescription("Initialise a sitenav project with the default descriptor. Call this first if other tools return 'sitenav not initialised'."),
			mcp.WithBoolean("scaffold", mcp.Description("Write a stub page for every descriptor link that has no page yet")),
			mcp.WithBoolean("force", mcp.Description("Overwrite an existing descriptor")),
		),
		h.initProject,
	)

	// Guide
	s.AddTool(
		mcp.NewTool("sitenav_guide",
			mcp.WithDescription("Get help/guide content for sitenav commands"),
			mcp.WithString("topic", mcp.Description("Guide topic (e.g., 'sidebar', 'build', 'links') or empty for index")),
		),
		h.getGuide,
	)

	// Config Get
	s.AddTool(
		mcp.NewTool("sitenav_config_get",
			mcp.WithDescription("Get a configuration value"),
			mcp.WithString("key", mcp.Description("Config key (docs.dir, build.out, build.workers, preview.addr, render.style) or empty for all")),
		),
		h.configGet,
	)

	// Config Set
	s.AddTool(
		mcp.NewTool("sitenav_config_set",
			mcp.WithDescription("Set a configuration value in the project's local config"),
			mcp.WithString("key", mcp.Required(), mcp.Description("Config key (docs.dir, build.out, build.workers, preview.addr, render.style)")),
			mcp.WithString("value", mcp.Required(), mcp.Description("Value to set")),
		),
		h.configSet,
	)
}

// registerExtensionTools adds the tools contributed by extensions. Each
// handler receives a Context built from the current descriptor.
func registerExtensionTools(s *server.MCPServer, h *handlers, tools []extension.MCPTool) {
	for _, t := range tools {
		s.AddTool(t.Tool, h.wrap(t))
	}
}

// wrap adapts an extension tool handler to the server's handler signature.
func (h *handlers) wrap(t extension.MCPTool) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		if res := h.requireInit(); res != nil {
			return res, nil
		}
		extCtx, err := h.context()
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return t.Handler(ctx, extCtx, req)
	}
}
