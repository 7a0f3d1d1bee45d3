// Package build renders a docs tree into a static HTML site.
//
// Every markdown page under the docs directory becomes one HTML file under
// the output directory, wrapped in the chrome the navigation descriptor
// defines for its route. Non-page files (images, downloads) are copied
// alongside. A 404.html page carrying the nav bar and footer is always
// written.
//
// Pages are independent of each other, so they are rendered concurrently
// with at most Options.Workers in flight. Every file is written with an
// atomic rename: a reader of the output directory sees either the previous
// build's file or the new one, never a partial write.
//
// The dead-link check runs before anything is written. Unless the descriptor
// sets ignoreDeadLinks, any link that does not resolve fails the build.
package build

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/renameio/v2"
	"github.com/jpl-au/sitenav/internal/links"
	"github.com/jpl-au/sitenav/internal/render"
	"github.com/jpl-au/sitenav/internal/route"
	"github.com/jpl-au/sitenav/internal/site"
	"golang.org/x/sync/errgroup"
)

var (
	// ErrNoPages is returned when the docs directory holds no markdown pages.
	ErrNoPages = errors.New("no markdown pages found")
	// ErrUnsafeOutput is returned when the output directory would overlap
	// the docs directory.
	ErrUnsafeOutput = errors.New("output directory overlaps docs directory")
)

// NotFoundFile is the name of the page written for unknown routes.
const NotFoundFile = "404.html"

// Options configures a build.
type Options struct {
	DocsDir string // Directory holding the markdown pages
	OutDir  string // Directory the HTML site is written to
	Workers int    // Maximum pages rendered concurrently (<1 means 1)
	Clean   bool   // Remove OutDir before building

	// OnPage, when set, is called after each page is written. It may be
	// called from several goroutines at once.
	OnPage func(route string)
}

// Result describes a finished build.
type Result struct {
	Pages  []string     `json:"pages"`            // routes, sorted
	Assets int          `json:"assets,omitempty"` // non-page files copied
	Output string       `json:"output"`
	Links  links.Report `json:"links"`
}

// Build renders every page under opts.DocsDir into opts.OutDir.
func Build(ctx context.Context, s *site.Site, opts Options) (Result, error) {
	res := Result{Output: opts.OutDir}

	if err := s.Validate(); err != nil {
		return res, fmt.Errorf("invalid descriptor: %w", err)
	}
	if err := checkDirs(opts.DocsDir, opts.OutDir); err != nil {
		return res, err
	}
	docs := os.DirFS(opts.DocsDir)

	report, err := links.Check(ctx, s, docs, links.Options{Pages: true})
	res.Links = report
	if err != nil {
		return res, fmt.Errorf("checking links: %w", err)
	}
	if err := report.Err(); err != nil {
		return res, err
	}

	files, err := route.Discover(docs)
	if err != nil {
		return res, fmt.Errorf("discovering pages: %w", err)
	}
	if len(files) == 0 {
		return res, fmt.Errorf("%w in %s", ErrNoPages, opts.DocsDir)
	}
	assets, err := route.Assets(docs)
	if err != nil {
		return res, fmt.Errorf("discovering assets: %w", err)
	}
	assets = withoutOutput(assets, opts.DocsDir, opts.OutDir)

	if opts.Clean {
		if err := os.RemoveAll(opts.OutDir); err != nil {
			return res, fmt.Errorf("cleaning output: %w", err)
		}
	}
	if err := os.MkdirAll(opts.OutDir, 0755); err != nil {
		return res, fmt.Errorf("creating output directory: %w", err)
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(max(opts.Workers, 1))
	for _, f := range files {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			if err := writePage(s, docs, f, opts.OutDir); err != nil {
				return err
			}
			if opts.OnPage != nil {
				opts.OnPage(f.Route)
			}
			return nil
		})
	}
	for _, a := range assets {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			return copyAsset(docs, a, opts.OutDir)
		})
	}
	if err := g.Wait(); err != nil {
		return res, err
	}

	if err := writeNotFound(s, opts.OutDir); err != nil {
		return res, err
	}

	for _, f := range files {
		res.Pages = append(res.Pages, f.Route)
	}
	res.Assets = len(assets)
	return res, nil
}

// writePage renders one markdown page with its chrome and writes it.
func writePage(s *site.Site, docs fs.FS, f route.File, out string) error {
	src, err := fs.ReadFile(docs, f.Path)
	if err != nil {
		return fmt.Errorf("reading %s: %w", f.Path, err)
	}
	doc, err := render.Markdown(src)
	if err != nil {
		return fmt.Errorf("%s: %w", f.Path, err)
	}

	var buf bytes.Buffer
	if err := render.Render(&buf, render.Compose(s, s.Href(f.Route), doc)); err != nil {
		return fmt.Errorf("rendering %s: %w", f.Path, err)
	}
	return writeFile(out, route.OutputFile(f.Route), buf.Bytes())
}

// writeNotFound writes the page served for unknown routes.
func writeNotFound(s *site.Site, out string) error {
	p := render.Compose(s, s.Href("/404"), render.Document{Title: "Page not found"})
	p.NotFound = true

	var buf bytes.Buffer
	if err := render.Render(&buf, p); err != nil {
		return fmt.Errorf("rendering %s: %w", NotFoundFile, err)
	}
	return writeFile(out, NotFoundFile, buf.Bytes())
}

// copyAsset copies a non-page file into the output directory unchanged.
func copyAsset(docs fs.FS, name, out string) error {
	data, err := fs.ReadFile(docs, name)
	if err != nil {
		return fmt.Errorf("reading %s: %w", name, err)
	}
	return writeFile(out, name, data)
}

// writeFile atomically writes data to the slash-separated name under out,
// creating parent directories as needed.
func writeFile(out, name string, data []byte) error {
	if !filepath.IsLocal(filepath.FromSlash(name)) {
		return fmt.Errorf("writing %s: %w", name, fs.ErrInvalid)
	}
	p := filepath.Join(out, filepath.FromSlash(name))
	if err := os.MkdirAll(filepath.Dir(p), 0755); err != nil {
		return fmt.Errorf("creating directory: %w", err)
	}
	if err := renameio.WriteFile(p, data, 0644); err != nil {
		return fmt.Errorf("writing %s: %w", name, err)
	}
	return nil
}

// checkDirs verifies the docs directory exists and that cleaning or
// writing the output directory can never touch the docs.
func checkDirs(docsDir, outDir string) error {
	info, err := os.Stat(docsDir)
	if err != nil {
		return fmt.Errorf("docs directory: %w", err)
	}
	if !info.IsDir() {
		return fmt.Errorf("docs directory %s: not a directory", docsDir)
	}
	if outDir == "" {
		return fmt.Errorf("%w: empty output directory", ErrUnsafeOutput)
	}

	docs, err := filepath.Abs(docsDir)
	if err != nil {
		return err
	}
	out, err := filepath.Abs(outDir)
	if err != nil {
		return err
	}
	if docs == out || within(out, docs) {
		return fmt.Errorf("%w: %s contains %s", ErrUnsafeOutput, outDir, docsDir)
	}
	return nil
}

// withoutOutput drops assets that live inside the output directory, which
// happens when the output directory is nested in the docs directory.
func withoutOutput(assets []string, docsDir, outDir string) []string {
	docs, err := filepath.Abs(docsDir)
	if err != nil {
		return assets
	}
	out, err := filepath.Abs(outDir)
	if err != nil || !within(docs, out) {
		return assets
	}
	rel, err := filepath.Rel(docs, out)
	if err != nil {
		return assets
	}
	prefix := filepath.ToSlash(rel) + "/"

	kept := assets[:0]
	for _, a := range assets {
		if !strings.HasPrefix(a, prefix) {
			kept = append(kept, a)
		}
	}
	return kept
}

// within reports whether path child lies inside directory parent.
func within(parent, child string) bool {
	rel, err := filepath.Rel(parent, child)
	return err == nil && rel != "." && filepath.IsLocal(rel)
}
