// Package links implements dead-link checking: verifying that every internal
// link resolves to a document under the docs root.
//
// Two sources of links are checked. Descriptor links (nav, sidebar items and
// social links) are always checked. With Options.Pages, links inside every
// markdown page are checked too; they are taken from the rendered HTML so
// reference-style links, autolinks and raw anchors are all seen the way a
// browser would see them.
//
// External links are never fetched. The descriptor's ignoreDeadLinks option
// disables the check entirely unless Options.Force is set.
package links

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"strings"

	"github.com/jpl-au/sitenav/internal/render"
	"github.com/jpl-au/sitenav/internal/route"
	"github.com/jpl-au/sitenav/internal/site"
	"golang.org/x/net/html"
)

// ErrDeadLinks is wrapped by Report.Err when any link does not resolve.
var ErrDeadLinks = errors.New("dead links found")

// SourceDescriptor is the DeadLink source for links defined in the descriptor.
const SourceDescriptor = "descriptor"

// Options configures a check.
type Options struct {
	Pages bool // Also check links inside markdown pages
	Force bool // Check even when the descriptor sets ignoreDeadLinks

	// OnPage, when set, is called after each page has been checked.
	OnPage func(route string)
}

// DeadLink is a link whose target does not exist.
type DeadLink struct {
	Source   string `json:"source"`   // "descriptor" or the page file path
	Location string `json:"location"` // descriptor location or page route
	Link     string `json:"link"`     // link as written
	Target   string `json:"target"`   // normalised route it resolved to
}

// Report is the outcome of a check.
type Report struct {
	Checked int        `json:"checked"`
	Dead    []DeadLink `json:"dead"`
	Skipped bool       `json:"skipped,omitempty"`
}

// Err returns nil when every link resolved, otherwise an error wrapping
// ErrDeadLinks.
func (r Report) Err() error {
	if len(r.Dead) == 0 {
		return nil
	}
	return fmt.Errorf("%w: %d of %d links do not resolve", ErrDeadLinks, len(r.Dead), r.Checked)
}

// Check verifies the links of s against the pages in docs.
func Check(ctx context.Context, s *site.Site, docs fs.FS, opts Options) (Report, error) {
	var r Report
	if s.IgnoreDeadLinks && !opts.Force {
		r.Skipped = true
		return r, nil
	}

	for _, ref := range s.Links() {
		if ref.External() || ref.Link == "" {
			continue
		}
		r.Checked++
		target := route.Normalise(ref.Link)
		if !route.Exists(docs, target) {
			r.Dead = append(r.Dead, DeadLink{
				Source:   SourceDescriptor,
				Location: ref.Location,
				Link:     ref.Link,
				Target:   target,
			})
		}
	}

	if !opts.Pages {
		return r, nil
	}

	files, err := route.Discover(docs)
	if err != nil {
		return r, fmt.Errorf("discovering pages: %w", err)
	}
	for _, f := range files {
		if err := ctx.Err(); err != nil {
			return r, err
		}
		if err := checkPage(s, docs, f, &r); err != nil {
			return r, err
		}
		if opts.OnPage != nil {
			opts.OnPage(f.Route)
		}
	}
	return r, nil
}

// checkPage renders one page and checks every internal href in its body.
func checkPage(s *site.Site, docs fs.FS, f route.File, r *Report) error {
	src, err := fs.ReadFile(docs, f.Path)
	if err != nil {
		return fmt.Errorf("reading %s: %w", f.Path, err)
	}
	doc, err := render.Markdown(src)
	if err != nil {
		return fmt.Errorf("%s: %w", f.Path, err)
	}
	hrefs, err := Extract(strings.NewReader(string(doc.Body)))
	if err != nil {
		return fmt.Errorf("%s: %w", f.Path, err)
	}

	for _, href := range hrefs {
		if route.IsExternal(href) || strings.HasPrefix(href, "#") {
			continue
		}
		r.Checked++
		target := route.Join(f.Route, route.StripBase(s.BasePath(), href))
		if !route.Exists(docs, target) {
			r.Dead = append(r.Dead, DeadLink{
				Source:   f.Path,
				Location: f.Route,
				Link:     href,
				Target:   target,
			})
		}
	}
	return nil
}

// Extract returns the href of every anchor in an HTML fragment, in document
// order. Empty hrefs are skipped.
func Extract(r io.Reader) ([]string, error) {
	var out []string
	z := html.NewTokenizer(r)
	for {
		switch z.Next() {
		case html.ErrorToken:
			if errors.Is(z.Err(), io.EOF) {
				return out, nil
			}
			return out, z.Err()
		case html.StartTagToken, html.SelfClosingTagToken:
			name, hasAttr := z.TagName()
			if string(name) != "a" || !hasAttr {
				continue
			}
			for {
				key, val, more := z.TagAttr()
				if string(key) == "href" && len(val) > 0 {
					out = append(out, string(val))
				}
				if !more {
					break
				}
			}
		}
	}
}
