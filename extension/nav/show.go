// show.go implements the "sitenav show" command.

package nav

import (
	"fmt"

	"github.com/jpl-au/sitenav/cmd"
	"github.com/jpl-au/sitenav/extension"
	"github.com/jpl-au/sitenav/internal/format"
	"github.com/jpl-au/sitenav/internal/log"
	"github.com/spf13/cobra"
)

func (e *Extension) newShowCmd() *cobra.Command {
	c := &cobra.Command{
		Use:   "show",
		Short: "Show the navigation descriptor",
		Long: `Shows the navigation descriptor: top nav, every sidebar with its sections
and items, social links and footer.

  sitenav show           # markdown outline (rendered on a terminal)
  sitenav show --tree    # compact tree
  sitenav show -o json   # descriptor as JSON`,
		Args: cobra.NoArgs,
		RunE: e.runShow,
	}
	c.Flags().Bool(extension.FlagTree, false, "Show as a tree")
	return c
}

func (e *Extension) runShow(c *cobra.Command, _ []string) error {
	tree, _ := c.Flags().GetBool(extension.FlagTree)
	s := e.ctx.Site()

	log.Event("nav:show", "show").Target(e.ctx.SitePath()).Count(len(s.ThemeConfig.Sidebar)).Write(nil)

	if cmd.JSON() {
		return cmd.PrintJSON(s)
	}
	if tree {
		return format.Tree(cmd.Out(), s)
	}
	if err := format.Markdown(cmd.Out(), s.Outline(), e.ctx.Config().Style()); err != nil {
		return cmd.PrintJSONError(fmt.Errorf("show: %w", err))
	}
	return nil
}
