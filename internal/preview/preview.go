// Package preview serves a docs tree over HTTP, rendering each page on
// request with the chrome the navigation descriptor defines.
//
// Pages are read from disk on every request, so edits to markdown show up
// on the next reload of the browser. The descriptor is watched with fsnotify;
// after a short debounce it is re-read, validated and swapped in. An edit
// that fails to parse or validate is logged and the previous descriptor
// stays in service.
//
// Routes:
//
//	GET /_sitenav/site.json          descriptor as JSON
//	GET /_sitenav/sidebar?path=...   sidebar selected for a page path
//	GET /*                           rendered page, asset or 404 page
package preview

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"net"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/jpl-au/sitenav/internal/render"
	"github.com/jpl-au/sitenav/internal/route"
	"github.com/jpl-au/sitenav/internal/site"
	"golang.org/x/sync/errgroup"
)

// DefaultDebounce is how long the watcher waits after the last change to
// the descriptor before reloading it.
const DefaultDebounce = 300 * time.Millisecond

// shutdownTimeout bounds how long in-flight requests get once Run is cancelled.
const shutdownTimeout = 5 * time.Second

// Options configures a Server.
type Options struct {
	SitePath string        // Descriptor file to watch and reload
	DocsDir  string        // Directory holding the markdown pages
	Debounce time.Duration // Reload delay after the last change (0 = DefaultDebounce)
	Logger   *slog.Logger  // nil logs to slog.Default()

	// OnReload, when set, is called after every reload attempt with its
	// outcome.
	OnReload func(error)
}

// Server renders pages for a live preview.
type Server struct {
	mu   sync.RWMutex
	site *site.Site

	sitePath string
	docs     fs.FS
	debounce time.Duration
	logger   *slog.Logger
	onReload func(error)
}

// New creates a preview server starting from descriptor s.
func New(s *site.Site, opts Options) *Server {
	if opts.Debounce <= 0 {
		opts.Debounce = DefaultDebounce
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	return &Server{
		site:     s,
		sitePath: opts.SitePath,
		docs:     os.DirFS(opts.DocsDir),
		debounce: opts.Debounce,
		logger:   opts.Logger,
		onReload: opts.OnReload,
	}
}

// Site returns the descriptor currently in service.
func (s *Server) Site() *site.Site {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.site
}

// Reload re-reads the descriptor file. If it fails to load or validate the
// previous descriptor is kept and the error returned.
func (s *Server) Reload() error {
	next, err := site.Load(s.sitePath)
	if err == nil {
		err = next.Validate()
	}
	if err != nil {
		s.logger.Error("descriptor reload failed, keeping previous", "path", s.sitePath, "error", err)
		return fmt.Errorf("reload %s: %w", s.sitePath, err)
	}

	s.mu.Lock()
	s.site = next
	s.mu.Unlock()

	s.logger.Info("descriptor reloaded", "path", s.sitePath, "title", next.Title)
	return nil
}

// Handler returns the HTTP handler serving the preview.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(s.requestLogger)

	r.Get("/_sitenav/site.json", s.handleSite)
	r.Get("/_sitenav/sidebar", s.handleSidebar)
	r.Get("/*", s.handlePage)
	return r
}

// Run listens on addr and serves until ctx is cancelled.
func (s *Server) Run(ctx context.Context, addr string) error {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("listen %s: %w", addr, err)
	}
	return s.Serve(ctx, ln)
}

// Serve serves on ln and watches the descriptor until ctx is cancelled,
// then shuts the HTTP server down gracefully. ln is closed on return.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	srv := &http.Server{
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return s.Watch(gctx)
	})
	g.Go(func() error {
		s.logger.Info("preview listening", "addr", "http://"+ln.Addr().String()+s.Site().BasePath())
		if err := srv.Serve(ln); !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	err := g.Wait()
	s.logger.Info("preview stopped")
	return err
}

// Watch reloads the descriptor whenever its file changes, until ctx is
// cancelled. The parent directory is watched rather than the file itself
// so atomic saves (write temp file, rename over) are seen.
func (s *Server) Watch(ctx context.Context) error {
	if s.sitePath == "" {
		<-ctx.Done()
		return nil
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer watcher.Close()

	if err := watcher.Add(filepath.Dir(s.sitePath)); err != nil {
		return fmt.Errorf("watch %s: %w", s.sitePath, err)
	}
	s.logger.Debug("watching descriptor", "path", s.sitePath)

	target := filepath.Clean(s.sitePath)
	var (
		timer *time.Timer
		fire  <-chan time.Time
	)
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != target {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Rename) {
				continue
			}
			// Debounce: restart the timer on each event
			if timer == nil {
				timer = time.NewTimer(s.debounce)
			} else {
				timer.Reset(s.debounce)
			}
			fire = timer.C

		case <-fire:
			fire = nil
			err := s.Reload()
			if s.onReload != nil {
				s.onReload(err)
			}

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			s.logger.Error("descriptor watcher error", "error", err)
		}
	}
}

// handleSite returns the descriptor in service as JSON.
func (s *Server) handleSite(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, s.Site())
}

// handleSidebar returns the sidebar group selected for ?path=.
func (s *Server) handleSidebar(w http.ResponseWriter, r *http.Request) {
	p := r.URL.Query().Get("path")
	if p == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "missing path parameter"})
		return
	}
	g, ok := s.Site().Resolve(p)
	if !ok {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "no sidebar for " + p})
		return
	}
	writeJSON(w, http.StatusOK, g)
}

// handlePage renders the page for the request path, serves an asset, or
// renders the 404 page.
func (s *Server) handlePage(w http.ResponseWriter, r *http.Request) {
	st := s.Site()
	base := st.BasePath()
	if base != "/" && r.URL.Path == "/" {
		http.Redirect(w, r, base, http.StatusFound)
		return
	}
	if !strings.HasPrefix(r.URL.Path+"/", base) {
		s.notFound(w, st, r.URL.Path)
		return
	}
	rt := route.StripBase(base, route.Normalise(r.URL.Path))

	if name, ok := s.asset(rt); ok {
		http.ServeFileFS(w, r, s.docs, name)
		return
	}

	src, err := fs.ReadFile(s.docs, route.ToFile(rt))
	if errors.Is(err, fs.ErrNotExist) {
		// "/components" is served by components/index.md at "/components/"
		if !strings.HasSuffix(rt, "/") && route.Exists(s.docs, rt+"/") {
			http.Redirect(w, r, st.Href(rt+"/"), http.StatusMovedPermanently)
			return
		}
		s.notFound(w, st, st.Href(rt))
		return
	}
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	doc, err := render.Markdown(src)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	writePage(w, http.StatusOK, render.Compose(st, st.Href(rt), doc))
}

// asset returns the docs file a route names directly, for images and
// other non-page files.
func (s *Server) asset(rt string) (string, bool) {
	name := strings.TrimPrefix(rt, "/")
	if name == "" || strings.HasSuffix(name, "/") || !strings.Contains(name[strings.LastIndex(name, "/")+1:], ".") {
		return "", false
	}
	if _, err := route.FromFile(name); err == nil {
		return "", false
	}
	info, err := fs.Stat(s.docs, name)
	if err != nil || info.IsDir() {
		return "", false
	}
	return name, true
}

// notFound renders the 404 page: nav bar and footer, no sidebar unless the
// path falls under a sidebar prefix.
func (s *Server) notFound(w http.ResponseWriter, st *site.Site, path string) {
	p := render.Compose(st, path, render.Document{Title: "Page not found"})
	p.NotFound = true
	writePage(w, http.StatusNotFound, p)
}

func writePage(w http.ResponseWriter, status int, p render.Page) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_ = render.Render(w, p)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	_ = enc.Encode(v)
}

// requestLogger logs each request at debug level.
func (s *Server) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)
		s.logger.Debug("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"duration", time.Since(start))
	})
}
