// Package extension provides the plugin architecture for sitenav. Extensions
// encapsulate related functionality (commands, MCP tools) and register at
// init time, enabling modular feature development without touching core code.
package extension

import (
	"github.com/spf13/cobra"
)

// Extension defines the contract for sitenav extensions.
type Extension interface {
	// Name returns a unique identifier for this extension.
	Name() string

	// Commands returns CLI commands to register with the root command.
	Commands() []*cobra.Command

	// MCPTools returns MCP tools to register with the server.
	MCPTools() []MCPTool
}

// Initializable extensions can perform setup once the project is loaded.
type Initializable interface {
	Extension
	Init(ctx Context) error
}

// Projectless is an optional interface for extensions with commands that
// don't require a project. Commands returned by NoProjectCommands() will
// not trigger project discovery in PersistentPreRunE.
//
// Use cases:
// 1. Bootstrap commands (like init) that run before a project exists
// 2. Commands that work on descriptor files given as arguments
// 3. Utility commands that don't need the descriptor
type Projectless interface {
	NoProjectCommands() []string
}
