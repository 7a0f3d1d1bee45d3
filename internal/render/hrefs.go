// hrefs.go rewrites the links inside a rendered page body so they work from
// the built site.
//
// Markdown authors link to files ("./endpoints.md", "../api/") relative to
// the page. Those links are resolved against the page route the same way the
// dead-link check resolves them, then given the site base. Everything other
// than the href values of anchors is copied through byte for byte.

package render

import (
	"bytes"
	"errors"
	"html/template"
	"io"
	"strings"

	"github.com/jpl-au/sitenav/internal/route"
	"github.com/jpl-au/sitenav/internal/site"
	"golang.org/x/net/html"
)

// rewriteHrefs resolves every internal anchor href in body against the page
// at route r. A body that fails to tokenise is returned unchanged.
func rewriteHrefs(s *site.Site, r string, body template.HTML) template.HTML {
	if !strings.Contains(string(body), "<a ") {
		return body
	}

	var b bytes.Buffer
	z := html.NewTokenizer(strings.NewReader(string(body)))
	for {
		tt := z.Next()
		if tt == html.ErrorToken {
			if errors.Is(z.Err(), io.EOF) {
				return template.HTML(b.String()) //nolint:gosec // tokens are copied or re-escaped
			}
			return body
		}
		raw := z.Raw()
		if tt != html.StartTagToken && tt != html.SelfClosingTagToken {
			b.Write(raw)
			continue
		}

		tok := z.Token()
		if tok.Data != "a" {
			b.Write(raw)
			continue
		}
		changed := false
		for i, a := range tok.Attr {
			if a.Namespace != "" || a.Key != "href" {
				continue
			}
			if h := resolveHref(s, r, a.Val); h != a.Val {
				tok.Attr[i].Val = h
				changed = true
			}
		}
		if !changed {
			b.Write(raw)
			continue
		}
		b.WriteString(tok.String())
	}
}

// resolveHref maps an internal href written in a page at route r to the URL
// of its target. External links and bare fragments are returned unchanged.
func resolveHref(s *site.Site, r, href string) string {
	if href == "" || route.IsExternal(href) || strings.HasPrefix(href, "#") || strings.HasPrefix(href, "?") {
		return href
	}

	p, suffix := href, ""
	if i := strings.IndexAny(p, "?#"); i >= 0 {
		p, suffix = p[:i], p[i:]
	}
	target := route.Join(r, route.StripBase(s.BasePath(), p))
	return s.Href(target) + suffix
}
