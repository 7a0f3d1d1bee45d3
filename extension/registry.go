// registry.go holds the extensions compiled into the binary.
//
// Each extension package registers itself from init(), and extension/all
// imports them in the order their commands and MCP tools should appear.
// The registry is read by cmd (commands and projectless names) and by the
// MCP server (tools).
//
// Design: Registering a name twice panics, as database/sql.Register does.
// It can only happen through a programming error at init time.

package extension

import "sync"

var (
	mu       sync.RWMutex
	registry []Extension
)

// Register adds an extension. Called from init() functions.
func Register(e Extension) {
	mu.Lock()
	defer mu.Unlock()

	for _, r := range registry {
		if r.Name() == e.Name() {
			panic("extension already registered: " + e.Name())
		}
	}
	registry = append(registry, e)
}

// All returns the registered extensions in registration order.
func All() []Extension {
	mu.RLock()
	defer mu.RUnlock()
	return append([]Extension(nil), registry...)
}

// Tools returns the MCP tools of every registered extension, in
// registration order.
func Tools() []MCPTool {
	var tools []MCPTool
	for _, e := range All() {
		tools = append(tools, e.MCPTools()...)
	}
	return tools
}

// ProjectlessCommands returns the names of extension commands that run
// without a project, as declared through Projectless.
func ProjectlessCommands() []string {
	var names []string
	for _, e := range All() {
		if p, ok := e.(Projectless); ok {
			names = append(names, p.NoProjectCommands()...)
		}
	}
	return names
}
