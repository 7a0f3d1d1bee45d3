// page.go implements the "sitenav page" command: the chrome a page is
// rendered with, without building the site.

package publish

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/jpl-au/sitenav/cmd"
	"github.com/jpl-au/sitenav/extension"
	"github.com/jpl-au/sitenav/internal/format"
	"github.com/jpl-au/sitenav/internal/glob"
	"github.com/jpl-au/sitenav/internal/log"
	"github.com/jpl-au/sitenav/internal/render"
	"github.com/jpl-au/sitenav/internal/route"
	"github.com/spf13/cobra"
)

// pageResult is the JSON form of a composed page.
type pageResult struct {
	render.Page
	File   string `json:"file"`
	Exists bool   `json:"exists"`
}

func (e *Extension) newPageCmd() *cobra.Command {
	c := &cobra.Command{
		Use:   "page [path]",
		Short: "Show the navigation a page is rendered with",
		Long: `Shows the chrome a page gets: nav bar with the active entry, the sidebar
selected for its route, social links and footer. Page frontmatter applies,
so "sidebar: false" hides the sidebar here as it does in the build.

  sitenav page /components/forms          # outline (rendered on a terminal)
  sitenav page /components/forms --html   # full HTML page
  sitenav page --list                     # every page route as a tree
  sitenav page --list 'components/**'     # routes matching a glob

The page does not have to exist; the chrome of any path can be shown.`,
		Args: cobra.MaximumNArgs(1),
		RunE: e.runPage,
	}
	c.Flags().Bool(extension.FlagHTML, false, "Print the rendered HTML page")
	c.Flags().Bool(extension.FlagRaw, false, "Print the outline without terminal rendering")
	c.Flags().BoolP(extension.FlagList, "l", false, "List page routes")
	c.Flags().String(extension.FlagDocs, "", "Docs directory (default from docs.dir)")
	return c
}

func (e *Extension) runPage(c *cobra.Command, args []string) error {
	list, _ := c.Flags().GetBool(extension.FlagList)
	docs := docsDir(e.ctx, c)
	if list {
		pattern := ""
		if len(args) > 0 {
			pattern = args[0]
		}
		return e.listPages(docs, pattern)
	}
	if len(args) == 0 {
		return cmd.PrintJSONError(errors.New("page: path required (or --list)"))
	}

	html, _ := c.Flags().GetBool(extension.FlagHTML)
	raw, _ := c.Flags().GetBool(extension.FlagRaw)

	res, err := compose(e.ctx, docs, args[0])

	log.Event("publish:page", "compose").Path(args[0]).Target(res.File).Write(err)

	if err != nil {
		return cmd.PrintJSONError(fmt.Errorf("page: %w", err))
	}

	switch {
	case cmd.JSON():
		return cmd.PrintJSON(res)
	case html:
		return render.Render(cmd.Out(), res.Page)
	}

	content := res.Markdown()
	if !res.Exists {
		content += fmt.Sprintf("\n_No page at %s yet._\n", res.File)
	}
	if raw {
		_, err := fmt.Fprint(cmd.Out(), content)
		return err
	}
	return format.Markdown(cmd.Out(), content, e.ctx.Config().Style())
}

// listPages prints the routes of the pages under docs, optionally only
// those matching a glob pattern.
func (e *Extension) listPages(docs, pattern string) error {
	files, err := route.Discover(os.DirFS(docs))
	if err != nil {
		return cmd.PrintJSONError(fmt.Errorf("page: %w", err))
	}
	routes := make([]string, len(files))
	for i, f := range files {
		routes[i] = f.Route
	}
	if pattern != "" {
		if routes, err = glob.Filter(pattern, routes); err != nil {
			return cmd.PrintJSONError(fmt.Errorf("page: %w", err))
		}
		if routes == nil {
			routes = []string{}
		}
	}

	log.Event("publish:page", "list").Path(docs).Count(len(routes)).Detail("pattern", pattern).Write(nil)

	if cmd.JSON() {
		return cmd.PrintJSON(routes)
	}
	return format.Routes(cmd.Out(), routes)
}

// compose reads the page behind path, when there is one, and composes its
// chrome. A missing page composes with no frontmatter.
func compose(ctx extension.Context, docs, path string) (pageResult, error) {
	s := ctx.Site()
	r := route.StripBase(s.BasePath(), route.Normalise(path))
	res := pageResult{File: route.ToFile(r)}

	src, err := fs.ReadFile(os.DirFS(docs), res.File)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		res.Page = render.Compose(s, path, render.Document{})
		return res, nil
	case err != nil:
		return res, err
	}

	doc, err := render.Markdown(src)
	if err != nil {
		return res, fmt.Errorf("%s: %w", res.File, err)
	}
	res.Page = render.Compose(s, path, doc)
	res.Exists = true
	return res, nil
}
