// tools_config.go implements MCP tools for configuration management.
//
// Config is read fresh on every tool call (see handlers.context), so a
// value set here applies to the next call without restarting the server.

package mcp

import (
	"context"
	"fmt"

	"github.com/jpl-au/sitenav/internal/config"
	"github.com/jpl-au/sitenav/internal/log"
	"github.com/mark3labs/mcp-go/mcp"
)

// loadConfig reads the project's config, or the global config in
// uninitialised mode.
func (h *handlers) loadConfig() (*config.Config, error) {
	if root := h.projectRoot(); root != "" {
		return config.LoadFrom(root)
	}
	return config.LoadScope(config.ScopeGlobal)
}

// configGet handles sitenav_config_get tool calls.
func (h *handlers) configGet(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) { //nolint:revive // ctx for future use
	cfg, err := h.loadConfig()
	if err != nil {
		log.Event("mcp:config_get", "get").Write(err)
		return mcp.NewToolResultError(err.Error()), nil
	}

	key := getString(req, "key", "")
	if key == "" {
		log.Event("mcp:config_get", "list").Write(nil)
		return jsonResult(cfg.All())
	}

	v, err := cfg.Get(key)

	log.Event("mcp:config_get", "get").Detail("key", key).Write(err)

	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return jsonResult(map[string]string{key: v})
}

// configSet handles sitenav_config_set tool calls. With a project the value
// goes to its local config; without one, to the global config.
func (h *handlers) configSet(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) { //nolint:revive // ctx for future use
	key, err := req.RequireString("key")
	if err != nil {
		return mcp.NewToolResultError("key is required"), nil //nolint:nilerr
	}

	value, err := req.RequireString("value")
	if err != nil {
		return mcp.NewToolResultError("value is required"), nil //nolint:nilerr
	}

	var cfg *config.Config
	if root := h.projectRoot(); root != "" {
		cfg, err = config.LoadLocal(root)
	} else {
		cfg, err = config.LoadScope(config.ScopeGlobal)
	}
	if err == nil {
		err = cfg.Set(key, value)
	}
	if err == nil {
		err = cfg.Save()
	}

	log.Event("mcp:config_set", "set").Detail("key", key).Detail("value", value).Write(err)

	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(fmt.Sprintf("%s = %s", key, value)), nil
}
