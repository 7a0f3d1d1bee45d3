// links.go implements the "sitenav links" command: the dead-link check the
// build runs, on its own.

package nav

import (
	"context"
	"os"

	"github.com/jpl-au/sitenav/cmd"
	"github.com/jpl-au/sitenav/extension"
	"github.com/jpl-au/sitenav/internal/format"
	"github.com/jpl-au/sitenav/internal/links"
	"github.com/jpl-au/sitenav/internal/log"
	"github.com/jpl-au/sitenav/internal/progress"
	"github.com/spf13/cobra"
)

func (e *Extension) newLinksCmd() *cobra.Command {
	c := &cobra.Command{
		Use:   "links",
		Short: "Check that every internal link resolves to a page",
		Long: `Checks that every internal link in the descriptor resolves to a markdown
page under the docs directory (docs.dir, default "docs"):

  /getting-started/          -> getting-started/index.md
  /components/forms          -> components/forms.md

With --pages, links inside every markdown page are checked too. External
links are never fetched.

When the descriptor sets ignoreDeadLinks, the check is skipped unless
--strict is given. Exits non-zero when any link is dead.`,
		Args: cobra.NoArgs,
		RunE: e.runLinks,
	}
	c.Flags().Bool(extension.FlagPages, false, "Also check links inside markdown pages")
	c.Flags().Bool(extension.FlagStrict, false, "Check even when ignoreDeadLinks is set")
	return c
}

func (e *Extension) runLinks(c *cobra.Command, _ []string) error {
	pages, _ := c.Flags().GetBool(extension.FlagPages)
	strict, _ := c.Flags().GetBool(extension.FlagStrict)
	docs := e.ctx.DocsDir()

	var spin *progress.Spinner
	if pages && !cmd.JSON() {
		spin = progress.NewSpinner("Checking pages")
	}
	report, err := links.Check(context.Background(), e.ctx.Site(), os.DirFS(docs), links.Options{
		Pages: pages,
		Force: strict,
		OnPage: func(r string) {
			if spin != nil {
				spin.Tick(r)
			}
		},
	})
	if spin != nil {
		spin.Stop()
	}
	if err == nil {
		err = report.Err()
	}

	log.Event("nav:links", "check").
		Path(docs).
		Count(report.Checked).
		Detail("dead", len(report.Dead)).
		Detail("pages", pages).
		Write(err)

	if cmd.JSON() {
		if perr := cmd.PrintJSON(report); perr != nil {
			return perr
		}
	} else if perr := format.DeadLinks(cmd.Out(), report); perr != nil {
		return perr
	}

	if err != nil {
		c.SilenceErrors = cmd.JSON()
		c.SilenceUsage = true
	}
	return err
}
