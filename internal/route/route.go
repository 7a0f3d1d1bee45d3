// Package route converts between page routes, descriptor links and markdown
// files under the docs root.
//
// A route is the URL path a page is served at, relative to the site base.
// Routes always begin with a slash. Directory index pages end with a slash
// ("/getting-started/"), leaf pages do not ("/api/endpoints"). Every link in
// the navigation descriptor and every page discovered on disk passes through
// this package so the two sides compare equal.
//
// Normalisation rules:
//   - Forward slashes only, duplicate slashes collapsed
//   - "." and ".." components resolved, never escaping the root
//   - Query strings and fragments dropped
//   - .md and .html suffixes stripped
//   - A trailing "index" leaf becomes the directory route
package route

import (
	"errors"
	"path"
	"strings"
)

var (
	// ErrNotMarkdown is returned by FromFile for files without a .md extension.
	ErrNotMarkdown = errors.New("not a markdown file")
	// ErrTraversal is returned by FromFile for paths that leave the docs root.
	ErrTraversal = errors.New("path escapes docs root")
)

// Normalise returns the canonical form of a route or internal link.
// The empty string normalises to the root route "/".
func Normalise(p string) string {
	if i := strings.IndexAny(p, "?#"); i >= 0 {
		p = p[:i]
	}
	p = strings.ReplaceAll(p, "\\", "/")
	if p == "" {
		return "/"
	}

	dir := strings.HasSuffix(p, "/")
	p = path.Clean("/" + p)

	if !dir {
		p = trimExt(p)
		if path.Base(p) == "index" {
			p = path.Dir(p)
			dir = true
		}
	}

	if dir && p != "/" {
		p += "/"
	}
	return p
}

// trimExt strips .md and .html suffixes, case-insensitively, until none remain.
func trimExt(p string) string {
	for {
		trimmed := p
		for _, ext := range []string{".md", ".html"} {
			if len(trimmed) > len(ext) && strings.EqualFold(trimmed[len(trimmed)-len(ext):], ext) {
				trimmed = trimmed[:len(trimmed)-len(ext)]
				break
			}
		}
		if trimmed == p {
			return p
		}
		p = trimmed
	}
}

// IsExternal reports whether link points outside the site
// (absolute URLs, protocol-relative URLs, mailto: and tel:).
func IsExternal(link string) bool {
	switch {
	case strings.Contains(link, "://"):
		return true
	case strings.HasPrefix(link, "//"):
		return true
	case strings.HasPrefix(link, "mailto:"), strings.HasPrefix(link, "tel:"):
		return true
	}
	return false
}

// StripBase removes the site base from a request path.
// Paths outside the base are returned unchanged.
//
// Examples (base="/docs/"):
//   - "/docs/api/" -> "/api/"
//   - "/docs" -> "/"
//   - "/other" -> "/other"
func StripBase(base, p string) string {
	if base == "" || base == "/" {
		return p
	}
	if !strings.HasSuffix(base, "/") {
		base += "/"
	}
	if p == strings.TrimSuffix(base, "/") {
		return "/"
	}
	if strings.HasPrefix(p, base) {
		return "/" + p[len(base):]
	}
	return p
}

// Join resolves href relative to the page at route from.
// Absolute hrefs are normalised as-is. The result is a normalised route.
func Join(from, href string) string {
	if strings.HasPrefix(href, "/") {
		return Normalise(href)
	}
	dir := from
	if !strings.HasSuffix(dir, "/") {
		dir = path.Dir(dir) + "/"
	}
	return Normalise(dir + href)
}

// FromFile maps a markdown file path, relative to the docs root, to its route.
//
// Examples:
//   - "index.md" -> "/"
//   - "getting-started/index.md" -> "/getting-started/"
//   - "api/endpoints.md" -> "/api/endpoints"
func FromFile(rel string) (string, error) {
	rel = strings.ReplaceAll(rel, "\\", "/")
	if len(rel) <= 3 || !strings.EqualFold(rel[len(rel)-3:], ".md") {
		return "", ErrNotMarkdown
	}
	for _, part := range strings.Split(rel, "/") {
		if part == ".." {
			return "", ErrTraversal
		}
	}
	if strings.HasPrefix(rel, "/") {
		return "", ErrTraversal
	}
	return Normalise(rel), nil
}

// ToFile maps a route to the markdown file, relative to the docs root,
// that provides it. It is the inverse of FromFile.
func ToFile(r string) string {
	return file(r, ".md")
}

// OutputFile maps a route to the HTML file written by a static build.
func OutputFile(r string) string {
	return file(r, ".html")
}

func file(r, ext string) string {
	r = Normalise(r)
	if strings.HasSuffix(r, "/") {
		return strings.TrimPrefix(r, "/") + "index" + ext
	}
	return strings.TrimPrefix(r, "/") + ext
}
