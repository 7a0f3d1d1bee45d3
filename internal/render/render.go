// Package render composes pages from the navigation descriptor and renders
// them to HTML.
//
// Rendering happens in two steps. Compose takes the descriptor and the route
// of the current page and produces a Page: the top navigation with the active
// entry marked, the sidebar selected for the route (or none), social links
// and footer, every href already joined with the site base. Render executes
// the embedded layout template over a Page. Keeping the steps apart lets the
// CLI and the MCP server show the composed chrome without producing HTML.
package render

import (
	"embed"
	"html/template"
	"io"
	"strings"

	"github.com/jpl-au/sitenav/internal/route"
	"github.com/jpl-au/sitenav/internal/site"
)

//go:embed layout.html
var layoutFS embed.FS

var layout = template.Must(template.ParseFS(layoutFS, "layout.html"))

// Meta is site-wide page metadata.
type Meta struct {
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
	Home        string `json:"home"`
}

// Entry is a rendered link.
type Entry struct {
	Text     string `json:"text"`
	Href     string `json:"href"`
	Active   bool   `json:"active,omitempty"`
	External bool   `json:"external,omitempty"`
}

// Section is a rendered sidebar section.
type Section struct {
	Text  string  `json:"text"`
	Items []Entry `json:"items"`
}

// Sidebar is the rendered sidebar for a page.
type Sidebar struct {
	Prefix   string    `json:"prefix"`
	Sections []Section `json:"sections"`
}

// Social is a rendered social link.
type Social struct {
	Icon string `json:"icon"`
	Href string `json:"href"`
}

// Page is everything the layout needs to render one page.
type Page struct {
	Site     Meta          `json:"site"`
	Route    string        `json:"route"`
	Title    string        `json:"title,omitempty"`
	Nav      []Entry       `json:"nav"`
	Sidebar  *Sidebar      `json:"sidebar,omitempty"`
	Social   []Social      `json:"social,omitempty"`
	Footer   site.Footer   `json:"footer"`
	Body     template.HTML `json:"-"`
	NotFound bool          `json:"not_found,omitempty"`
}

// Compose builds the page for path, a URL that includes the site base. The
// sidebar is the one Resolve selects for path; it is nil when no sidebar key
// is a prefix of the route. Internal links in the body are resolved against
// the route and given the site base.
func Compose(s *site.Site, path string, doc Document) Page {
	r := route.StripBase(s.BasePath(), route.Normalise(path))

	p := Page{
		Site: Meta{
			Title:       s.Title,
			Description: s.Description,
			Home:        s.BasePath(),
		},
		Route:  r,
		Title:  doc.Title,
		Body:   rewriteHrefs(s, r, doc.Body),
		Footer: s.Footer(),
	}
	if doc.Description != "" {
		p.Site.Description = doc.Description
	}

	for _, l := range s.Nav() {
		p.Nav = append(p.Nav, entry(s, l, navActive(r, l.Link)))
	}

	if g, ok := s.ResolveRoute(r); ok && !doc.HideSidebar {
		sb := &Sidebar{Prefix: g.Prefix}
		for _, sec := range g.Sections {
			out := Section{Text: sec.Text}
			for _, item := range sec.Items {
				active := !route.IsExternal(item.Link) && route.Normalise(item.Link) == r
				out.Items = append(out.Items, entry(s, item, active))
			}
			sb.Sections = append(sb.Sections, out)
		}
		p.Sidebar = sb
	}

	for _, l := range s.SocialLinks() {
		p.Social = append(p.Social, Social{Icon: l.Icon, Href: s.Href(l.Link)})
	}
	return p
}

func entry(s *site.Site, l site.Link, active bool) Entry {
	return Entry{
		Text:     l.Text,
		Href:     s.Href(l.Link),
		Active:   active,
		External: route.IsExternal(l.Link),
	}
}

// navActive reports whether the nav entry linking to link is the current
// section. The home entry is only active on the home page itself.
func navActive(r, link string) bool {
	if route.IsExternal(link) {
		return false
	}
	link = route.Normalise(link)
	if link == "/" {
		return r == "/"
	}
	if strings.HasSuffix(link, "/") {
		return strings.HasPrefix(r, link)
	}
	return r == link
}

// Render writes the page as a complete HTML document.
func Render(w io.Writer, p Page) error {
	return layout.ExecuteTemplate(w, "layout.html", p)
}
