// links.go enumerates and resolves the links a descriptor points at.

package site

import (
	"fmt"
	"strings"

	"github.com/jpl-au/sitenav/internal/route"
)

// LinkKind identifies where in the descriptor a link appears.
type LinkKind string

const (
	KindNav     LinkKind = "nav"
	KindSidebar LinkKind = "sidebar"
	KindSocial  LinkKind = "social"
)

// LinkRef is a link together with its position in the descriptor.
type LinkRef struct {
	Kind     LinkKind `json:"kind"`
	Location string   `json:"location"`
	Text     string   `json:"text"`
	Link     string   `json:"link"`
}

// External reports whether the link leaves the site.
func (r LinkRef) External() bool {
	return route.IsExternal(r.Link)
}

// Links returns every link in the descriptor in display order:
// nav entries, then sidebar items group by group, then social links.
func (s *Site) Links() []LinkRef {
	var out []LinkRef
	for i, l := range s.ThemeConfig.Nav {
		out = append(out, LinkRef{
			Kind:     KindNav,
			Location: fmt.Sprintf("themeConfig.nav[%d]", i),
			Text:     l.Text,
			Link:     l.Link,
		})
	}
	for _, g := range s.ThemeConfig.Sidebar {
		for j, sec := range g.Sections {
			for k, item := range sec.Items {
				out = append(out, LinkRef{
					Kind:     KindSidebar,
					Location: fmt.Sprintf("themeConfig.sidebar[%q][%d].items[%d]", g.Prefix, j, k),
					Text:     item.Text,
					Link:     item.Link,
				})
			}
		}
	}
	for i, l := range s.ThemeConfig.SocialLinks {
		out = append(out, LinkRef{
			Kind:     KindSocial,
			Location: fmt.Sprintf("themeConfig.socialLinks[%d]", i),
			Text:     l.Icon,
			Link:     l.Link,
		})
	}
	return out
}

// Href returns the URL a generated page uses for link. Internal links are
// prefixed with the site base; external links are returned unchanged.
func (s *Site) Href(link string) string {
	if link == "" || route.IsExternal(link) || strings.HasPrefix(link, "#") {
		return link
	}
	return s.BasePath() + strings.TrimPrefix(link, "/")
}
