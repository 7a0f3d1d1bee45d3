// terminal.go renders a composed page as markdown for terminal display.

package render

import (
	"fmt"
	"strings"
)

// Markdown returns the page chrome as markdown: the nav bar with the active
// entry in bold, the selected sidebar with the current item marked, social
// links and footer. The page body is not included.
func (p Page) Markdown() string {
	var b strings.Builder

	fmt.Fprintf(&b, "# %s\n\n", p.Site.Title)
	fmt.Fprintf(&b, "Route: `%s`\n\n", p.Route)

	b.WriteString("## Nav\n\n")
	for _, e := range p.Nav {
		b.WriteString("- " + link(e) + "\n")
	}
	b.WriteString("\n")

	b.WriteString("## Sidebar\n\n")
	if p.Sidebar == nil {
		b.WriteString("_No sidebar for this page._\n\n")
	} else {
		fmt.Fprintf(&b, "Selected by `%s`\n\n", p.Sidebar.Prefix)
		for _, sec := range p.Sidebar.Sections {
			fmt.Fprintf(&b, "- **%s**\n", sec.Text)
			for _, e := range sec.Items {
				b.WriteString("  - " + link(e) + "\n")
			}
		}
		b.WriteString("\n")
	}

	if len(p.Social) > 0 {
		b.WriteString("## Social\n\n")
		for _, s := range p.Social {
			fmt.Fprintf(&b, "- %s: %s\n", s.Icon, s.Href)
		}
		b.WriteString("\n")
	}

	if p.Footer.Message != "" || p.Footer.Copyright != "" {
		b.WriteString("---\n\n")
		if p.Footer.Message != "" {
			b.WriteString(p.Footer.Message + "\n\n")
		}
		if p.Footer.Copyright != "" {
			b.WriteString(p.Footer.Copyright + "\n")
		}
	}
	return b.String()
}

func link(e Entry) string {
	s := fmt.Sprintf("[%s](%s)", e.Text, e.Href)
	if e.Active {
		s = "**" + s + "** (current)"
	}
	return s
}
