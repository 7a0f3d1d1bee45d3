// diff.go implements the "sitenav diff" command: compare two descriptors by
// their navigation, ignoring YAML formatting.

package nav

import (
	"fmt"
	"os"

	"github.com/jpl-au/sitenav/cmd"
	"github.com/jpl-au/sitenav/internal/diff"
	"github.com/jpl-au/sitenav/internal/log"
	"github.com/jpl-au/sitenav/internal/project"
	"github.com/jpl-au/sitenav/internal/site"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

func (e *Extension) newDiffCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "diff <a.yaml> [b.yaml]",
		Short: "Compare two navigation descriptors",
		Long: `Compares two descriptors by their navigation outline, so formatting and
comment changes do not show up.

  sitenav diff old.yaml new.yaml   # compare two files
  sitenav diff main.yaml           # compare a file with the project descriptor

Output is coloured on a terminal.`,
		Args: cobra.RangeArgs(1, 2),
		RunE: e.runDiff,
	}
}

func (e *Extension) runDiff(_ *cobra.Command, args []string) error {
	aPath := args[0]
	bPath := ""
	if len(args) == 2 {
		bPath = args[1]
	} else {
		root, err := project.Find(cmd.Dir())
		if err != nil {
			return cmd.PrintJSONError(fmt.Errorf("diff: %w", err))
		}
		bPath = project.SitePath(root)
	}

	a, err := site.Load(aPath)
	if err != nil {
		return cmd.PrintJSONError(fmt.Errorf("diff: %w", err))
	}
	b, err := site.Load(bPath)
	if err != nil {
		return cmd.PrintJSONError(fmt.Errorf("diff: %w", err))
	}

	r := diff.Sites(a, b, aPath, bPath)

	log.Event("nav:diff", "diff").Path(aPath).Target(bPath).Detail("changed", r.Changed).Write(nil)

	if cmd.JSON() {
		return cmd.PrintJSON(r)
	}
	if !r.Changed {
		fmt.Fprintln(cmd.Out(), "No navigation changes")
		return nil
	}
	fmt.Fprint(cmd.Out(), r.Format(term.IsTerminal(int(os.Stdout.Fd()))))
	return nil
}
