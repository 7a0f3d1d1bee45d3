package preview

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/jpl-au/sitenav/internal/site"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

// fixture writes a descriptor and a small docs tree, returning the
// descriptor path and docs dir.
func fixture(t *testing.T) (string, string) {
	t.Helper()
	root := t.TempDir()
	sitePath := filepath.Join(root, ".sitenav", "site.yaml")
	docs := filepath.Join(root, "docs")

	require.NoError(t, os.MkdirAll(filepath.Dir(sitePath), 0755))
	require.NoError(t, os.WriteFile(sitePath, site.DefaultYAML(), 0644))

	files := map[string]string{
		"index.md":                 "# EcoDev\n",
		"components/index.md":      "# Components\n",
		"components/forms.md":      "# Forms\n\nForm **fields**.\n",
		"components/img/logo.png":  "png",
		"getting-started/index.md": "# Introduction\n",
	}
	for name, content := range files {
		p := filepath.Join(docs, filepath.FromSlash(name))
		require.NoError(t, os.MkdirAll(filepath.Dir(p), 0755))
		require.NoError(t, os.WriteFile(p, []byte(content), 0644))
	}
	return sitePath, docs
}

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newServer(t *testing.T) (*Server, string) {
	t.Helper()
	sitePath, docs := fixture(t)
	s, err := site.Load(sitePath)
	require.NoError(t, err)
	return New(s, Options{SitePath: sitePath, DocsDir: docs, Logger: quietLogger()}), sitePath
}

func get(t *testing.T, h http.Handler, target string) *httptest.ResponseRecorder {
	t.Helper()
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, target, nil))
	return rec
}

func TestHandler_Pages(t *testing.T) {
	srv, _ := newServer(t)
	h := srv.Handler()

	t.Run("page with sidebar", func(t *testing.T) {
		rec := get(t, h, "/components/forms")
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "text/html; charset=utf-8", rec.Header().Get("Content-Type"))
		body := rec.Body.String()
		assert.Contains(t, body, "<title>Forms | EcoDev Configurator</title>")
		assert.Contains(t, body, `data-prefix="/components/"`)
		assert.Contains(t, body, "<strong>fields</strong>")
	})

	t.Run("md suffix", func(t *testing.T) {
		rec := get(t, h, "/components/forms.md")
		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("root", func(t *testing.T) {
		rec := get(t, h, "/")
		require.Equal(t, http.StatusOK, rec.Code)
		assert.NotContains(t, rec.Body.String(), `class="sidebar"`)
	})

	t.Run("directory redirect", func(t *testing.T) {
		rec := get(t, h, "/components")
		assert.Equal(t, http.StatusMovedPermanently, rec.Code)
		assert.Equal(t, "/components/", rec.Header().Get("Location"))
	})

	t.Run("asset", func(t *testing.T) {
		rec := get(t, h, "/components/img/logo.png")
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "png", rec.Body.String())
	})

	t.Run("not found keeps chrome", func(t *testing.T) {
		rec := get(t, h, "/unknown/page")
		require.Equal(t, http.StatusNotFound, rec.Code)
		body := rec.Body.String()
		assert.Contains(t, body, "Page not found")
		assert.Contains(t, body, `class="nav-bar"`)
		assert.Contains(t, body, "Released under the MIT License.")
		assert.NotContains(t, body, `class="sidebar"`)
	})

	t.Run("not found under a sidebar prefix", func(t *testing.T) {
		rec := get(t, h, "/api/missing")
		require.Equal(t, http.StatusNotFound, rec.Code)
		assert.Contains(t, rec.Body.String(), `data-prefix="/api/"`)
	})
}

func TestHandler_API(t *testing.T) {
	srv, _ := newServer(t)
	h := srv.Handler()

	t.Run("site.json", func(t *testing.T) {
		rec := get(t, h, "/_sitenav/site.json")
		require.Equal(t, http.StatusOK, rec.Code)
		var got site.Site
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
		assert.Equal(t, "EcoDev Configurator", got.Title)
		assert.Equal(t, site.Default().Prefixes(), got.Prefixes())
	})

	t.Run("sidebar", func(t *testing.T) {
		rec := get(t, h, "/_sitenav/sidebar?path=/components/forms")
		require.Equal(t, http.StatusOK, rec.Code)
		var got site.SidebarGroup
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
		assert.Equal(t, "/components/", got.Prefix)
		var items []string
		for _, l := range got.Items() {
			items = append(items, l.Text)
		}
		assert.Equal(t, []string{"Overview", "Forms", "Navigation", "UI Elements"}, items)
	})

	t.Run("sidebar no match", func(t *testing.T) {
		rec := get(t, h, "/_sitenav/sidebar?path=/unknown/page")
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("sidebar missing path", func(t *testing.T) {
		rec := get(t, h, "/_sitenav/sidebar")
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestHandler_Base(t *testing.T) {
	sitePath, docs := fixture(t)
	s, err := site.Load(sitePath)
	require.NoError(t, err)
	s.Base = "/docs/"
	h := New(s, Options{DocsDir: docs, Logger: quietLogger()}).Handler()

	rec := get(t, h, "/")
	assert.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, "/docs/", rec.Header().Get("Location"))

	rec = get(t, h, "/docs/components/forms")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `href="/docs/components/forms"`)

	rec = get(t, h, "/elsewhere/")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestReload(t *testing.T) {
	srv, sitePath := newServer(t)

	edited := strings.Replace(string(site.DefaultYAML()), "title: EcoDev Configurator", "title: EcoDev Handbook", 1)
	require.NoError(t, os.WriteFile(sitePath, []byte(edited), 0644))
	require.NoError(t, srv.Reload())
	assert.Equal(t, "EcoDev Handbook", srv.Site().Title)

	t.Run("invalid keeps previous", func(t *testing.T) {
		require.NoError(t, os.WriteFile(sitePath, []byte("title: [\n"), 0644))
		assert.Error(t, srv.Reload())
		assert.Equal(t, "EcoDev Handbook", srv.Site().Title)

		require.NoError(t, os.WriteFile(sitePath, []byte("title: \"\"\nthemeConfig: {}\n"), 0644))
		assert.ErrorIs(t, srv.Reload(), site.ErrEmptyTitle)
		assert.Equal(t, "EcoDev Handbook", srv.Site().Title)
	})
}

func TestWatch(t *testing.T) {
	defer goleak.VerifyNone(t, goleak.IgnoreCurrent())

	sitePath, docs := fixture(t)
	reloaded := make(chan error, 4)
	srv := New(site.Default(), Options{
		SitePath: sitePath,
		DocsDir:  docs,
		Debounce: 20 * time.Millisecond,
		Logger:   quietLogger(),
		OnReload: func(err error) {
			select {
			case reloaded <- err:
			default:
			}
		},
	})

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- srv.Watch(ctx) }()

	edited := strings.Replace(string(site.DefaultYAML()), "title: EcoDev Configurator", "title: Watched", 1)
	require.Eventually(t, func() bool {
		// Rewrite until the watcher, which starts asynchronously, has seen it.
		_ = os.WriteFile(sitePath, []byte(edited), 0644)
		select {
		case err := <-reloaded:
			return err == nil && srv.Site().Title == "Watched"
		case <-time.After(100 * time.Millisecond):
			return false
		}
	}, 5*time.Second, 10*time.Millisecond)

	cancel()
	require.NoError(t, <-done)
}

func TestServe(t *testing.T) {
	defer goleak.VerifyNone(t, goleak.IgnoreCurrent())

	srv, _ := newServer(t)
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- srv.Serve(ctx, ln) }()

	client := &http.Client{Transport: &http.Transport{DisableKeepAlives: true}}
	resp, err := client.Get("http://" + ln.Addr().String() + "/components/forms")
	require.NoError(t, err)
	_, _ = io.Copy(io.Discard, resp.Body)
	resp.Body.Close()
	client.CloseIdleConnections()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	cancel()
	require.NoError(t, <-done)
}
