// outline.go renders a descriptor as a markdown outline.
//
// The outline is the human-readable form of the descriptor: the CLI shows it
// through glamour, the MCP server returns it to LLMs, and descriptor diffs
// compare outlines rather than raw YAML so formatting changes do not show up.

package site

import (
	"fmt"
	"strings"
)

// Outline returns the descriptor as markdown.
func (s *Site) Outline() string {
	var b strings.Builder

	fmt.Fprintf(&b, "# %s\n\n", s.Title)
	if s.Description != "" {
		fmt.Fprintf(&b, "%s\n\n", s.Description)
	}
	fmt.Fprintf(&b, "- base: `%s`\n", s.BasePath())
	fmt.Fprintf(&b, "- ignoreDeadLinks: %t\n\n", s.IgnoreDeadLinks)

	if len(s.ThemeConfig.Nav) > 0 {
		b.WriteString("## Nav\n\n")
		for _, l := range s.ThemeConfig.Nav {
			fmt.Fprintf(&b, "- [%s](%s)\n", l.Text, l.Link)
		}
		b.WriteString("\n")
	}

	if len(s.ThemeConfig.Sidebar) > 0 {
		b.WriteString("## Sidebar\n\n")
		for _, g := range s.ThemeConfig.Sidebar {
			fmt.Fprintf(&b, "### %s\n\n", g.Prefix)
			writeSections(&b, g.Sections)
			b.WriteString("\n")
		}
	}

	if len(s.ThemeConfig.SocialLinks) > 0 {
		b.WriteString("## Social\n\n")
		for _, l := range s.ThemeConfig.SocialLinks {
			fmt.Fprintf(&b, "- %s: %s\n", l.Icon, l.Link)
		}
		b.WriteString("\n")
	}

	f := s.ThemeConfig.Footer
	if f.Message != "" || f.Copyright != "" {
		b.WriteString("## Footer\n\n")
		if f.Message != "" {
			fmt.Fprintf(&b, "%s\n", f.Message)
		}
		if f.Copyright != "" {
			if f.Message != "" {
				b.WriteString("\n")
			}
			fmt.Fprintf(&b, "%s\n", f.Copyright)
		}
	}

	return b.String()
}

// Outline returns the sidebar group as markdown, headed by its prefix.
func (g SidebarGroup) Outline() string {
	var b strings.Builder
	fmt.Fprintf(&b, "### %s\n\n", g.Prefix)
	writeSections(&b, g.Sections)
	return b.String()
}

func writeSections(b *strings.Builder, sections []SidebarSection) {
	for _, sec := range sections {
		fmt.Fprintf(b, "- **%s**\n", sec.Text)
		for _, item := range sec.Items {
			fmt.Fprintf(b, "  - [%s](%s)\n", item.Text, item.Link)
		}
	}
}
