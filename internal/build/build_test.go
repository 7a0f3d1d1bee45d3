package build

import (
	"context"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"testing"

	"github.com/jpl-au/sitenav/internal/links"
	"github.com/jpl-au/sitenav/internal/site"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// writeDocs creates files under dir from a path -> content map.
func writeDocs(t *testing.T, dir string, files map[string]string) {
	t.Helper()
	for name, content := range files {
		p := filepath.Join(dir, filepath.FromSlash(name))
		require.NoError(t, os.MkdirAll(filepath.Dir(p), 0755))
		require.NoError(t, os.WriteFile(p, []byte(content), 0644))
	}
}

func readOut(t *testing.T, dir, name string) string {
	t.Helper()
	data, err := os.ReadFile(filepath.Join(dir, filepath.FromSlash(name)))
	require.NoError(t, err)
	return string(data)
}

func sampleDocs() map[string]string {
	return map[string]string{
		"index.md":                       "# EcoDev\n\nWelcome.\n",
		"components/index.md":            "# Components\n",
		"components/forms.md":            "# Forms\n\nSee [navigation](navigation).\n",
		"components/navigation.md":       "# Navigation\n",
		"components/img/form-layout.png": "png",
		"api/endpoints.md":               "---\ntitle: REST Endpoints\nsidebar: false\n---\n\nBody.\n",
	}
}

func TestBuild(t *testing.T) {
	root := t.TempDir()
	docs := filepath.Join(root, "docs")
	out := filepath.Join(root, "dist")
	writeDocs(t, docs, sampleDocs())

	var mu sync.Mutex
	var seen []string
	res, err := Build(context.Background(), site.Default(), Options{
		DocsDir: docs,
		OutDir:  out,
		Workers: 2,
		OnPage: func(r string) {
			mu.Lock()
			defer mu.Unlock()
			seen = append(seen, r)
		},
	})
	require.NoError(t, err)

	want := []string{"/", "/api/endpoints", "/components/", "/components/forms", "/components/navigation"}
	assert.Equal(t, want, res.Pages)
	assert.Equal(t, out, res.Output)
	assert.Equal(t, 1, res.Assets)
	assert.True(t, res.Links.Skipped, "default descriptor ignores dead links")

	sort.Strings(seen)
	assert.Equal(t, want, seen)

	t.Run("page chrome", func(t *testing.T) {
		html := readOut(t, out, "components/forms.html")
		assert.Contains(t, html, "<title>Forms | EcoDev Configurator</title>")
		assert.Contains(t, html, `data-prefix="/components/"`)
		assert.Contains(t, html, `<a href="/components/forms" class="active" aria-current="page">Forms</a>`)
		assert.Contains(t, html, "Released under the MIT License.")
		assert.Contains(t, html, `See <a href="/components/navigation">navigation</a>.`)
	})

	t.Run("index routes", func(t *testing.T) {
		assert.FileExists(t, filepath.Join(out, "index.html"))
		assert.FileExists(t, filepath.Join(out, "components", "index.html"))
	})

	t.Run("frontmatter hides sidebar", func(t *testing.T) {
		html := readOut(t, out, "api/endpoints.html")
		assert.Contains(t, html, "<title>REST Endpoints | EcoDev Configurator</title>")
		assert.NotContains(t, html, `class="sidebar"`)
	})

	t.Run("assets copied", func(t *testing.T) {
		assert.Equal(t, "png", readOut(t, out, "components/img/form-layout.png"))
	})

	t.Run("not found page", func(t *testing.T) {
		html := readOut(t, out, NotFoundFile)
		assert.Contains(t, html, "Page not found")
		assert.NotContains(t, html, `class="sidebar"`)
	})
}

func TestBuild_DeadLinks(t *testing.T) {
	root := t.TempDir()
	docs := filepath.Join(root, "docs")
	out := filepath.Join(root, "dist")
	writeDocs(t, docs, sampleDocs())

	s := site.Default()
	s.IgnoreDeadLinks = false

	res, err := Build(context.Background(), s, Options{DocsDir: docs, OutDir: out, Workers: 4})
	require.ErrorIs(t, err, links.ErrDeadLinks)
	assert.NotEmpty(t, res.Links.Dead)
	assert.NoDirExists(t, out, "nothing is written when links are dead")
}

func TestBuild_Base(t *testing.T) {
	root := t.TempDir()
	docs := filepath.Join(root, "docs")
	out := filepath.Join(root, "dist")
	writeDocs(t, docs, map[string]string{
		"guide/intro.md": "# Intro\n\nNext: [setup](./setup.md), or the [API](/api/).\n",
		"guide/setup.md": "# Setup\n",
		"api/index.md":   "# API\n",
	})

	s, err := site.Parse([]byte(`
title: Guide
base: /guide/
themeConfig:
  nav:
    - {text: Intro, link: /guide/intro}
  sidebar:
    /guide/:
      - text: Guide
        items:
          - {text: Intro, link: /guide/intro}
          - {text: Setup, link: /guide/setup}
`))
	require.NoError(t, err)

	res, err := Build(context.Background(), s, Options{DocsDir: docs, OutDir: out, Workers: 2})
	require.NoError(t, err)
	assert.Empty(t, res.Links.Dead)

	html := readOut(t, out, "guide/intro.html")
	assert.Contains(t, html, `data-prefix="/guide/"`, "sidebar selected for a route under the base")
	assert.Contains(t, html, `<a href="/guide/guide/intro" class="active" aria-current="page">Intro</a>`)
	assert.Contains(t, html, `<a href="/guide/guide/setup">setup</a>`)
	assert.Contains(t, html, `<a href="/guide/api/">API</a>`)
	assert.NotContains(t, html, `href="./setup.md"`)

	assert.NotContains(t, readOut(t, out, "api/index.html"), `class="sidebar"`)
}

func TestBuild_Clean(t *testing.T) {
	root := t.TempDir()
	docs := filepath.Join(root, "docs")
	out := filepath.Join(root, "dist")
	writeDocs(t, docs, sampleDocs())
	writeDocs(t, out, map[string]string{"stale.html": "old"})

	_, err := Build(context.Background(), site.Default(), Options{DocsDir: docs, OutDir: out, Workers: 1})
	require.NoError(t, err)
	assert.FileExists(t, filepath.Join(out, "stale.html"))

	_, err = Build(context.Background(), site.Default(), Options{DocsDir: docs, OutDir: out, Workers: 1, Clean: true})
	require.NoError(t, err)
	assert.NoFileExists(t, filepath.Join(out, "stale.html"))
	assert.FileExists(t, filepath.Join(out, "index.html"))
}

func TestBuild_NestedOutput(t *testing.T) {
	docs := t.TempDir()
	out := filepath.Join(docs, "dist")
	writeDocs(t, docs, sampleDocs())

	for range 2 {
		res, err := Build(context.Background(), site.Default(), Options{DocsDir: docs, OutDir: out, Workers: 2})
		require.NoError(t, err)
		// Files from the previous build are never copied into themselves.
		assert.Equal(t, 1, res.Assets)
	}
}

func TestBuild_Errors(t *testing.T) {
	root := t.TempDir()
	docs := filepath.Join(root, "docs")
	writeDocs(t, docs, sampleDocs())

	t.Run("output contains docs", func(t *testing.T) {
		_, err := Build(context.Background(), site.Default(), Options{DocsDir: docs, OutDir: root})
		assert.ErrorIs(t, err, ErrUnsafeOutput)

		_, err = Build(context.Background(), site.Default(), Options{DocsDir: docs, OutDir: docs})
		assert.ErrorIs(t, err, ErrUnsafeOutput)
	})

	t.Run("missing docs", func(t *testing.T) {
		_, err := Build(context.Background(), site.Default(), Options{DocsDir: filepath.Join(root, "nope"), OutDir: filepath.Join(root, "dist")})
		assert.ErrorIs(t, err, os.ErrNotExist)
	})

	t.Run("no pages", func(t *testing.T) {
		empty := filepath.Join(root, "empty")
		require.NoError(t, os.MkdirAll(empty, 0755))
		_, err := Build(context.Background(), site.Default(), Options{DocsDir: empty, OutDir: filepath.Join(root, "dist")})
		assert.ErrorIs(t, err, ErrNoPages)
	})

	t.Run("invalid descriptor", func(t *testing.T) {
		s := site.Default()
		s.Title = ""
		_, err := Build(context.Background(), s, Options{DocsDir: docs, OutDir: filepath.Join(root, "dist")})
		assert.ErrorIs(t, err, site.ErrEmptyTitle)
	})

	t.Run("cancelled", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		s := site.Default()
		s.IgnoreDeadLinks = false
		_, err := Build(ctx, s, Options{DocsDir: docs, OutDir: filepath.Join(root, "dist")})
		assert.ErrorIs(t, err, context.Canceled)
	})
}
