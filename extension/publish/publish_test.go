package publish

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/jpl-au/sitenav/cmd"
	"github.com/jpl-au/sitenav/extension"
	"github.com/jpl-au/sitenav/internal/config"
	"github.com/jpl-au/sitenav/internal/links"
	"github.com/jpl-au/sitenav/internal/site"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newExt returns an initialised extension over s whose docs directory
// holds the given pages, keyed by path relative to docs.
func newExt(t *testing.T, s *site.Site, pages map[string]string) *Extension {
	t.Helper()
	root := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(root, "docs"), 0755))
	for p, content := range pages {
		path := filepath.Join(root, "docs", filepath.FromSlash(p))
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	}
	e := &Extension{}
	require.NoError(t, e.Init(extension.NewContext(s, root, &config.Config{})))
	return e
}

func capture(t *testing.T, c *cobra.Command, args ...string) (string, error) {
	t.Helper()
	var b bytes.Buffer
	cmd.SetOut(&b)
	t.Cleanup(func() { cmd.SetOut(os.Stdout) })
	c.SetArgs(args)
	err := c.Execute()
	return b.String(), err
}

func text(t *testing.T, res *mcp.CallToolResult) string {
	t.Helper()
	require.NotEmpty(t, res.Content)
	tc, ok := res.Content[0].(mcp.TextContent)
	require.True(t, ok)
	return tc.Text
}

var pages = map[string]string{
	"index.md":            "# Home\n",
	"components/forms.md": "# Forms\n\nSee [navigation](./navigation).\n",
	"logo.png":            "png",
}

func TestBuildCmd(t *testing.T) {
	e := newExt(t, site.Default(), pages)
	root := e.ctx.Root()

	out, err := capture(t, e.newBuildCmd())
	require.NoError(t, err)
	assert.Equal(t, "Built 2 page(s) and 1 asset(s) into "+filepath.Join(root, "dist")+"\n", out)
	assert.FileExists(t, filepath.Join(root, "dist", "index.html"))
	assert.FileExists(t, filepath.Join(root, "dist", "components", "forms.html"))
	assert.FileExists(t, filepath.Join(root, "dist", "logo.png"))
	assert.FileExists(t, filepath.Join(root, "dist", "404.html"))

	t.Run("out and clean", func(t *testing.T) {
		stale := filepath.Join(root, "public", "stale.html")
		require.NoError(t, os.MkdirAll(filepath.Dir(stale), 0755))
		require.NoError(t, os.WriteFile(stale, []byte("old"), 0644))

		_, err := capture(t, e.newBuildCmd(), "--out", "public", "--clean", "--workers", "2")
		require.NoError(t, err)
		assert.FileExists(t, filepath.Join(root, "public", "index.html"))
		assert.NoFileExists(t, stale)
	})

	t.Run("dead links", func(t *testing.T) {
		s := site.Default()
		s.IgnoreDeadLinks = false
		e := newExt(t, s, pages)

		out, err := capture(t, e.newBuildCmd())
		assert.ErrorIs(t, err, links.ErrDeadLinks)
		assert.Contains(t, out, "links dead")
		assert.NoDirExists(t, filepath.Join(e.ctx.Root(), "dist"))
	})
}

func TestPageCmd(t *testing.T) {
	e := newExt(t, site.Default(), map[string]string{
		"components/forms.md":      "# Forms\n",
		"components/navigation.md": "---\nsidebar: false\n---\n# Navigation\n",
	})

	out, err := capture(t, e.newPageCmd(), "/components/forms", "--raw")
	require.NoError(t, err)
	assert.Contains(t, out, "Route: `/components/forms`")
	assert.Contains(t, out, "Selected by `/components/`")
	assert.NotContains(t, out, "No page at")

	out, err = capture(t, e.newPageCmd(), "/components/navigation", "--raw")
	require.NoError(t, err)
	assert.Contains(t, out, "_No sidebar for this page._")

	out, err = capture(t, e.newPageCmd(), "/components/ui-elements", "--raw")
	require.NoError(t, err)
	assert.Contains(t, out, "_No page at components/ui-elements.md yet._")

	out, err = capture(t, e.newPageCmd(), "/components/forms", "--html")
	require.NoError(t, err)
	assert.Contains(t, out, "<!DOCTYPE html>")
	assert.Contains(t, out, "<h1")

	out, err = capture(t, e.newPageCmd(), "--list")
	require.NoError(t, err)
	assert.Equal(t, "/\n└── components/\n    ├── forms\n    └── navigation\n", out)

	out, err = capture(t, e.newPageCmd(), "--list", "**/nav*")
	require.NoError(t, err)
	assert.Equal(t, "/\n└── components/\n    └── navigation\n", out)

	_, err = capture(t, e.newPageCmd())
	assert.Error(t, err)
}

func TestTools(t *testing.T) {
	ctx := context.Background()

	t.Run("page", func(t *testing.T) {
		e := newExt(t, site.Default(), pages)
		req := mcp.CallToolRequest{Params: mcp.CallToolParams{Arguments: map[string]any{"path": "/components/forms"}}}

		res, err := pageTool(ctx, e.ctx, req)
		require.NoError(t, err)
		var got struct {
			Route   string `json:"route"`
			Title   string `json:"title"`
			File    string `json:"file"`
			Exists  bool   `json:"exists"`
			Sidebar struct {
				Prefix string `json:"prefix"`
			} `json:"sidebar"`
		}
		require.NoError(t, json.Unmarshal([]byte(text(t, res)), &got))
		assert.Equal(t, "/components/forms", got.Route)
		assert.Equal(t, "Forms", got.Title)
		assert.Equal(t, "components/forms.md", got.File)
		assert.True(t, got.Exists)
		assert.Equal(t, "/components/", got.Sidebar.Prefix)

		res, err = pageTool(ctx, e.ctx, mcp.CallToolRequest{})
		require.NoError(t, err)
		assert.True(t, res.IsError)
	})

	t.Run("build", func(t *testing.T) {
		e := newExt(t, site.Default(), pages)
		res, err := buildTool(ctx, e.ctx, mcp.CallToolRequest{})
		require.NoError(t, err)
		require.False(t, res.IsError, text(t, res))
		assert.Contains(t, text(t, res), `"/components/forms"`)
		assert.FileExists(t, filepath.Join(e.ctx.Root(), "dist", "index.html"))
	})

	t.Run("build dead links", func(t *testing.T) {
		s := site.Default()
		s.IgnoreDeadLinks = false
		e := newExt(t, s, pages)
		res, err := buildTool(ctx, e.ctx, mcp.CallToolRequest{})
		require.NoError(t, err)
		assert.True(t, res.IsError)
		assert.Contains(t, text(t, res), "themeConfig.nav")
	})
}
