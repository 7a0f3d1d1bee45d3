package cmd

import (
	"encoding/json"
	"io"
	"net"
	"net/http"
	"os"
	"path/filepath"
	"runtime"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuild(t *testing.T) {
	t.Run("renders pages with their chrome", func(t *testing.T) {
		env := newTestEnv(t)
		env.page("img/logo.svg", "<svg/>")

		out := env.run("build")
		env.contains(out, "Built 3 page(s) and 1 asset(s)")

		dist := filepath.Join(env.dir, "dist")
		assert.FileExists(t, filepath.Join(dist, "index.html"))
		assert.FileExists(t, filepath.Join(dist, "components", "index.html"))
		assert.FileExists(t, filepath.Join(dist, "img", "logo.svg"))
		assert.FileExists(t, filepath.Join(dist, "404.html"))

		forms, err := os.ReadFile(filepath.Join(dist, "components", "forms.html"))
		require.NoError(t, err)
		assert.Contains(t, string(forms), "<title>Form Fields")
		assert.Contains(t, string(forms), `href="/components/navigation"`, "sidebar is rendered")
		assert.Contains(t, string(forms), "Released under the MIT License.")
	})

	t.Run("flags override config", func(t *testing.T) {
		env := newTestEnv(t)
		env.run("config", "--local", "build.out", "public")

		env.run("build")
		assert.FileExists(t, filepath.Join(env.dir, "public", "index.html"))

		env.run("build", "--out", "site", "--workers", "1")
		assert.FileExists(t, filepath.Join(env.dir, "site", "index.html"))
	})

	t.Run("clean", func(t *testing.T) {
		env := newTestEnv(t)
		stale := filepath.Join(env.dir, "dist", "stale.html")
		require.NoError(t, os.MkdirAll(filepath.Dir(stale), 0755))
		require.NoError(t, os.WriteFile(stale, []byte("old"), 0644))

		env.run("build")
		assert.FileExists(t, stale)

		env.run("build", "--clean")
		assert.NoFileExists(t, stale)
	})

	t.Run("dead links fail before writing", func(t *testing.T) {
		env := newTestEnv(t)
		env.descriptor(`title: Strict
themeConfig:
  nav:
    - text: Missing
      link: /missing
`)
		out, err := env.runErr("build")
		assert.Error(t, err)
		env.contains(out, "themeConfig.nav[0]")
		assert.NoDirExists(t, filepath.Join(env.dir, "dist"))
	})

	t.Run("refuses output over docs", func(t *testing.T) {
		env := newTestEnv(t)
		out, err := env.runErr("build", "--out", ".")
		assert.Error(t, err)
		env.contains(out, "overlaps docs directory")
	})

	t.Run("json", func(t *testing.T) {
		env := newTestEnv(t)
		out, err := env.stdout("build", "-o", "json")
		require.NoError(t, err)
		var res struct {
			Pages  []string `json:"pages"`
			Output string   `json:"output"`
		}
		require.NoError(t, json.Unmarshal(out, &res))
		assert.Equal(t, []string{"/", "/components/", "/components/forms"}, res.Pages)
		assert.Equal(t, filepath.Join(env.dir, "dist"), res.Output)
	})
}

func TestPage(t *testing.T) {
	env := newTestEnv(t)

	t.Run("outline", func(t *testing.T) {
		out := env.run("page", "/components/forms")
		env.contains(out, "Route: `/components/forms`")
		env.contains(out, "Selected by `/components/`")
		env.contains(out, "**[Forms](/components/forms)** (current)")
	})

	t.Run("missing page", func(t *testing.T) {
		out := env.run("page", "/components/ui-elements")
		env.contains(out, "_No page at components/ui-elements.md yet._")
	})

	t.Run("html", func(t *testing.T) {
		out := env.run("page", "/components/forms", "--html")
		env.contains(out, "<!DOCTYPE html>")
		env.contains(out, "<title>Form Fields")
	})

	t.Run("json", func(t *testing.T) {
		out, err := env.stdout("page", "/components/forms", "-o", "json")
		require.NoError(t, err)
		var p struct {
			Title  string `json:"title"`
			Exists bool   `json:"exists"`
		}
		require.NoError(t, json.Unmarshal(out, &p))
		assert.Equal(t, "Form Fields", p.Title)
		assert.True(t, p.Exists)
	})

	t.Run("list", func(t *testing.T) {
		env.equals(env.run("page", "--list"), "/\n└── components/\n    └── forms")
		env.equals(env.run("page", "--list", "components/*"), "/\n└── components/\n    └── forms")
	})
}

func TestLog(t *testing.T) {
	env := newTestEnv(t)
	env.run("sidebar", "/components/forms")

	out := env.run("log")
	env.contains(out, "nav:sidebar")
	env.contains(out, "/components/forms -> /components/")

	out = env.run("log", "--source", "core:")
	assert.NotContains(t, out, "nav:sidebar")

	jsonOut, err := env.stdout("log", "-o", "json", "-n", "1")
	require.NoError(t, err)
	var entries []map[string]any
	require.NoError(t, json.Unmarshal(jsonOut, &entries))
	assert.Len(t, entries, 1)

	env.contains(env.run("log", "--prune", "4w", "--dry-run"), "No log entries to prune")

	_, err = env.runErr("log", "--since", "yesterday")
	assert.Error(t, err)
}

func TestVersion(t *testing.T) {
	env := newBareEnv(t)
	out := env.run("version")
	env.contains(out, "Go Version:")
	env.contains(out, runtime.GOOS)

	env.equals(env.run("version", "--short"), "dev")
	env.contains(env.run("version", "--short", "-o", "json"), `{"version":"dev"}`)
}

func TestPreview(t *testing.T) {
	env := newTestEnv(t)

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	addr := ln.Addr().String()
	require.NoError(t, ln.Close())

	cmd := env.command("preview", "--addr", addr)
	require.NoError(t, cmd.Start())
	t.Cleanup(func() {
		_ = cmd.Process.Kill()
		_, _ = cmd.Process.Wait()
	})

	get := func(path string) (int, string) {
		resp, err := http.Get("http://" + addr + path)
		if err != nil {
			return 0, ""
		}
		defer resp.Body.Close()
		body, _ := io.ReadAll(resp.Body)
		return resp.StatusCode, string(body)
	}

	require.Eventually(t, func() bool {
		code, _ := get("/_sitenav/site.json")
		return code == http.StatusOK
	}, 10*time.Second, 50*time.Millisecond, "preview did not start")

	code, body := get("/components/forms")
	assert.Equal(t, http.StatusOK, code)
	assert.Contains(t, body, "<title>Form Fields")

	code, _ = get("/nowhere")
	assert.Equal(t, http.StatusNotFound, code)

	// A descriptor edit is picked up without a restart.
	env.descriptor("title: Renamed\n")
	assert.Eventually(t, func() bool {
		_, body := get("/_sitenav/site.json")
		return titleOf(body) == "Renamed"
	}, 10*time.Second, 50*time.Millisecond)

	if runtime.GOOS != "windows" {
		require.NoError(t, cmd.Process.Signal(os.Interrupt))
		assert.NoError(t, cmd.Wait())
	}
}

// titleOf extracts the title from a site.json body.
func titleOf(body string) string {
	var s struct {
		Title string `json:"title"`
	}
	_ = json.Unmarshal([]byte(body), &s)
	return s.Title
}
