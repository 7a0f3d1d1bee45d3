package extension

import (
	"slices"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/spf13/cobra"
)

// testExtension is a minimal Extension implementation for testing.
type testExtension struct {
	name  string
	tools []MCPTool
}

func (e testExtension) Name() string               { return e.name }
func (e testExtension) Commands() []*cobra.Command { return nil }
func (e testExtension) MCPTools() []MCPTool        { return e.tools }

func TestRegister_PanicOnDuplicate(t *testing.T) {
	// Register with a unique name for this test
	name := "test-duplicate-panic"
	Register(testExtension{name: name})

	// Registering the same name again should panic
	defer func() {
		if r := recover(); r == nil {
			t.Error("expected panic on duplicate registration, got none")
		}
	}()

	Register(testExtension{name: name})
}

func TestRegister_OrderAndTools(t *testing.T) {
	Register(testExtension{name: "test-order-a", tools: []MCPTool{{Tool: mcp.NewTool("tool_a")}}})
	Register(testExtension{name: "test-order-b", tools: []MCPTool{{Tool: mcp.NewTool("tool_b")}}})

	var names []string
	for _, e := range All() {
		names = append(names, e.Name())
	}
	a, b := slices.Index(names, "test-order-a"), slices.Index(names, "test-order-b")
	if a < 0 || b < 0 || a > b {
		t.Fatalf("All() = %v, want test-order-a before test-order-b", names)
	}

	var tools []string
	for _, tool := range Tools() {
		tools = append(tools, tool.Tool.Name)
	}
	if ta, tb := slices.Index(tools, "tool_a"), slices.Index(tools, "tool_b"); ta < 0 || tb < 0 || ta > tb {
		t.Errorf("Tools() = %v, want tool_a before tool_b", tools)
	}
}

// projectlessExtension declares one command that runs without a project.
type projectlessExtension struct {
	testExtension
}

func (projectlessExtension) NoProjectCommands() []string { return []string{"test-cmd"} }

func TestProjectlessCommands(t *testing.T) {
	Register(projectlessExtension{testExtension{name: "test-projectless"}})

	if !slices.Contains(ProjectlessCommands(), "test-cmd") {
		t.Errorf("ProjectlessCommands() = %v, want test-cmd", ProjectlessCommands())
	}
}
