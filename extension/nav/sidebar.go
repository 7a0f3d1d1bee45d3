// sidebar.go implements the "sitenav sidebar" command: which sidebar does a
// page get?

package nav

import (
	"fmt"

	"github.com/jpl-au/sitenav/cmd"
	"github.com/jpl-au/sitenav/internal/format"
	"github.com/jpl-au/sitenav/internal/log"
	"github.com/jpl-au/sitenav/internal/site"
	"github.com/spf13/cobra"
)

// sidebarResult is the JSON form of a sidebar lookup. Sidebar is nil when
// no sidebar key is a prefix of the path.
type sidebarResult struct {
	Path    string             `json:"path"`
	Sidebar *site.SidebarGroup `json:"sidebar"`
}

func (e *Extension) newSidebarCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "sidebar <path>",
		Short: "Show the sidebar selected for a page path",
		Long: `Shows the sidebar a page gets. The sidebar whose key is the longest
prefix of the path is selected; when no key matches, the page has no sidebar.

  sitenav sidebar /components/forms    # selects /components/
  sitenav sidebar /unknown/page        # no sidebar

The site base is stripped first, and .md/.html suffixes, query strings
and fragments are ignored.`,
		Args: cobra.ExactArgs(1),
		RunE: e.runSidebar,
	}
}

func (e *Extension) runSidebar(_ *cobra.Command, args []string) error {
	path := args[0]
	g, ok := e.ctx.Site().Resolve(path)

	log.Event("nav:sidebar", "resolve").Path(path).Target(g.Prefix).Write(nil)

	res := sidebarResult{Path: path}
	if ok {
		res.Sidebar = &g
	}
	if cmd.JSON() {
		return cmd.PrintJSON(res)
	}

	if !ok {
		fmt.Fprintf(cmd.Out(), "No sidebar for %s\n", path)
		return nil
	}
	return format.Markdown(cmd.Out(), g.Outline(), e.ctx.Config().Style())
}
