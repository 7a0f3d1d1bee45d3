// Package project provides project initialisation and discovery for sitenav.
//
// A sitenav project is a directory containing .sitenav/site.yaml, the
// navigation descriptor. This package handles:
//   - Initialising new projects (creating .sitenav/ and the descriptor)
//   - Scaffolding stub pages for every descriptor link that has no page yet
//   - Discovering existing projects by walking up the directory tree
//   - Keeping build output out of git via .gitignore
//
// The discovery algorithm mirrors git's approach: starting from the current
// directory, walk up until a .sitenav directory containing the descriptor
// is found, or the filesystem root is reached.
package project

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/renameio/v2"
	"github.com/jpl-au/sitenav/internal/config"
	"github.com/jpl-au/sitenav/internal/route"
	"github.com/jpl-au/sitenav/internal/site"
)

const (
	// Dir is the directory name for sitenav project files.
	Dir = config.Dir
	// SiteFile is the descriptor filename inside Dir.
	SiteFile = "site.yaml"
)

var (
	// ErrNotInitialised is returned when no sitenav project is found.
	ErrNotInitialised = errors.New("sitenav not initialised (run 'sitenav init')")
	// ErrExists is returned by Init when a descriptor is already present.
	ErrExists = errors.New("descriptor already exists (use --force to reinitialise)")
)

// Options configures Init.
type Options struct {
	Force    bool   // Overwrite an existing descriptor
	Scaffold bool   // Write stub pages for missing descriptor links
	DocsDir  string // Docs directory relative to the project root (defaults to "docs")
	BuildOut string // Build output directory to gitignore (defaults to "dist")
}

// Result describes what Init wrote.
type Result struct {
	Root     string   `json:"root"`
	Site     string   `json:"site"`
	Pages    []string `json:"pages,omitempty"` // scaffolded files, relative to the root
	Existing int      `json:"existing,omitempty"`
}

// SitePath returns the descriptor path for a project root.
func SitePath(root string) string {
	return filepath.Join(root, Dir, SiteFile)
}

// Load reads and parses the descriptor of the project at root.
func Load(root string) (*site.Site, error) {
	return site.Load(SitePath(root))
}

// Init initialises a new sitenav project in dir.
//
// Why init does not write config: following the git model, init only creates
// the descriptor. Config is a separate concern managed via "sitenav config".
//
// The default descriptor is the bundled EcoDev Configurator site, which
// serves as a worked example to edit.
func Init(dir string, opts Options) (Result, error) {
	if dir == "" {
		dir = "."
	}
	if opts.DocsDir == "" {
		opts.DocsDir = config.DefaultDocsDir
	}
	if opts.BuildOut == "" {
		opts.BuildOut = config.DefaultBuildOut
	}
	res := Result{Root: dir, Site: SitePath(dir)}

	if _, err := os.Stat(res.Site); err == nil && !opts.Force {
		return res, ErrExists
	}

	if err := os.MkdirAll(filepath.Join(dir, Dir), 0755); err != nil {
		return res, fmt.Errorf("create directory: %w", err)
	}
	if err := renameio.WriteFile(res.Site, site.DefaultYAML(), 0644); err != nil {
		return res, fmt.Errorf("write descriptor: %w", err)
	}

	// Create .gitignore if it doesn't exist. Local config stays out of git,
	// the descriptor is committed.
	gitignore := filepath.Join(dir, Dir, ".gitignore")
	if _, err := os.Stat(gitignore); errors.Is(err, fs.ErrNotExist) {
		s := `# sitenav - ignore local config
# site.yaml is the navigation descriptor and should be committed
config.yaml
`
		if err := os.WriteFile(gitignore, []byte(s), 0644); err != nil {
			return res, fmt.Errorf("write gitignore: %w", err)
		}
	}

	if err := IgnoreOutput(dir, opts.BuildOut); err != nil {
		return res, fmt.Errorf("ignore build output: %w", err)
	}

	if opts.Scaffold {
		pages, existing, err := Scaffold(dir, opts.DocsDir, site.Default())
		if err != nil {
			return res, err
		}
		res.Pages = pages
		res.Existing = existing
	}
	return res, nil
}

// Scaffold writes a stub markdown page for every internal descriptor link
// whose page does not exist under root/docsDir. Existing pages are never
// touched. Returns the files written (relative to root) and the number of
// pages that were already present.
func Scaffold(root, docsDir string, s *site.Site) ([]string, int, error) {
	docs := filepath.Join(root, docsDir)
	fsys := os.DirFS(docs)

	var written []string
	existing := 0
	seen := make(map[string]bool)
	for _, ref := range s.Links() {
		if ref.External() || ref.Link == "" || strings.HasPrefix(ref.Link, "#") {
			continue
		}
		r := route.Normalise(ref.Link)
		if seen[r] || isAsset(r) {
			continue
		}
		seen[r] = true

		if route.Exists(fsys, r) {
			existing++
			continue
		}
		rel := route.ToFile(r)
		p := filepath.Join(docs, filepath.FromSlash(rel))
		if err := os.MkdirAll(filepath.Dir(p), 0755); err != nil {
			return written, existing, fmt.Errorf("create directory: %w", err)
		}
		if err := renameio.WriteFile(p, []byte(stub(ref.Text)), 0644); err != nil {
			return written, existing, fmt.Errorf("write %s: %w", rel, err)
		}
		written = append(written, filepath.ToSlash(filepath.Join(docsDir, rel)))
	}
	return written, existing, nil
}

// stub returns the content of a scaffolded page.
func stub(title string) string {
	return "# " + title + "\n\nThis page has not been written yet.\n"
}

// isAsset reports whether a route names a non-page file such as an image.
func isAsset(r string) bool {
	last := r[strings.LastIndex(r, "/")+1:]
	return strings.Contains(last, ".")
}

// Discover walks up the directory tree from the working directory looking
// for a sitenav project. Returns the project root.
func Discover() (string, error) {
	dir, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("get working directory: %w", err)
	}
	return DiscoverFrom(dir)
}

// DiscoverFrom walks up from dir looking for a sitenav project.
func DiscoverFrom(dir string) (string, error) {
	dir, err := filepath.Abs(dir)
	if err != nil {
		return "", fmt.Errorf("resolve directory: %w", err)
	}

	for {
		if _, err := os.Stat(SitePath(dir)); err == nil {
			return dir, nil
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return "", ErrNotInitialised
		}
		dir = parent
	}
}

// Find returns the project root. A non-empty override (--dir, SITENAV_DIR)
// must itself be a project root; otherwise the tree is searched upwards
// from the working directory.
func Find(override string) (string, error) {
	if override == "" {
		return Discover()
	}
	abs, err := filepath.Abs(override)
	if err != nil {
		return "", fmt.Errorf("resolve directory: %w", err)
	}
	if _, err := os.Stat(SitePath(abs)); err != nil {
		return "", fmt.Errorf("%s: %w", override, ErrNotInitialised)
	}
	return abs, nil
}
