// Testing Strategy Design Decision:
//
// The cmd/ package contains CLI integration tests that exercise the full stack:
// command parsing -> extension -> descriptor, docs tree and config on disk.
//
// Each test runs the real binary in its own temp project with HOME pointed
// at a temp directory, so the global config and the audit log never touch
// the developer's home. Package-level tests cover the algorithms; these
// tests prove the commands are wired to them.
package cmd

import (
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	binaryPath string
	buildOnce  sync.Once
	buildErr   error
)

// buildBinary compiles the sitenav binary once for all tests.
func buildBinary(t *testing.T) string {
	t.Helper()
	buildOnce.Do(func() {
		// Build to a temp location
		tmpDir, err := os.MkdirTemp("", "sitenav-test-bin-*")
		if err != nil {
			buildErr = err
			return
		}

		binaryName := "sitenav"
		if os.PathSeparator == '\\' {
			binaryName = "sitenav.exe"
		}
		binaryPath = filepath.Join(tmpDir, binaryName)

		// Find project root (parent of cmd/)
		wd := mustGetwd()
		projectRoot := filepath.Dir(wd)

		cmd := exec.Command("go", "build", "-o", binaryPath, ".")
		cmd.Dir = projectRoot
		if out, err := cmd.CombinedOutput(); err != nil {
			buildErr = &buildError{err: err, output: string(out)}
			return
		}
	})
	if buildErr != nil {
		t.Fatalf("failed to build binary: %v", buildErr)
	}
	return binaryPath
}

type buildError struct {
	err    error
	output string
}

func (e *buildError) Error() string {
	return e.err.Error() + "\n" + e.output
}

func mustGetwd() string {
	dir, err := os.Getwd()
	if err != nil {
		panic(err)
	}
	return dir
}

// testEnv holds test environment state.
type testEnv struct {
	t      *testing.T
	dir    string
	home   string
	binary string
}

// newBareEnv creates an empty project directory and home without running init.
func newBareEnv(t *testing.T) *testEnv {
	t.Helper()
	return &testEnv{
		t:      t,
		dir:    t.TempDir(),
		home:   t.TempDir(),
		binary: buildBinary(t),
	}
}

// newTestEnv creates a temporary project initialised with the example
// descriptor and a few pages.
//
// Note: init does not create config. Config is managed separately via
// "sitenav config", following the git model.
func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	env := newBareEnv(t)
	env.run("init")
	env.page("index.md", "# Home\n\nWelcome.\n")
	env.page("components/index.md", "# Components\n")
	env.page("components/forms.md", "---\ntitle: Form Fields\n---\n# Forms\n\nSee [navigation](./navigation).\n")
	return env
}

// page writes a markdown page under the docs directory.
func (e *testEnv) page(name, content string) {
	e.t.Helper()
	p := filepath.Join(e.dir, "docs", filepath.FromSlash(name))
	require.NoError(e.t, os.MkdirAll(filepath.Dir(p), 0755))
	require.NoError(e.t, os.WriteFile(p, []byte(content), 0644))
}

// descriptor replaces the project descriptor.
func (e *testEnv) descriptor(content string) {
	e.t.Helper()
	require.NoError(e.t, os.WriteFile(filepath.Join(e.dir, ".sitenav", "site.yaml"), []byte(content), 0644))
}

// command prepares sitenav with the given args in the test project.
func (e *testEnv) command(args ...string) *exec.Cmd {
	cmd := exec.Command(e.binary, args...)
	cmd.Dir = e.dir
	cmd.Env = append(os.Environ(), "HOME="+e.home, "USERPROFILE="+e.home, "SITENAV_DIR=")
	return cmd
}

// run executes sitenav with the given args and returns stdout.
func (e *testEnv) run(args ...string) string {
	e.t.Helper()
	out, err := e.runErr(args...)
	if err != nil {
		e.t.Fatalf("sitenav %v failed: %v\noutput: %s", args, err, out)
	}
	return out
}

// runErr executes sitenav and returns stdout and any error.
func (e *testEnv) runErr(args ...string) (string, error) {
	e.t.Helper()
	out, err := e.command(args...).CombinedOutput()
	return string(out), err
}

// stdout executes sitenav and returns stdout alone, for JSON parsing.
func (e *testEnv) stdout(args ...string) ([]byte, error) {
	e.t.Helper()
	return e.command(args...).Output()
}

// contains checks if output contains expected string.
func (e *testEnv) contains(output, expected string) {
	e.t.Helper()
	assert.Contains(e.t, output, expected)
}

// equals checks if output equals expected string (trimmed).
func (e *testEnv) equals(output, expected string) {
	e.t.Helper()
	assert.Equal(e.t, strings.TrimSpace(expected), strings.TrimSpace(output))
}
