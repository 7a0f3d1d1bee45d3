// version.go implements "sitenav version". The build tag, commit and build
// time come from ldflags (see internal/version); --short prints the tag
// alone for scripts that compare versions.

package core

import (
	"fmt"

	"github.com/jpl-au/sitenav/cmd"
	"github.com/jpl-au/sitenav/extension"
	"github.com/jpl-au/sitenav/internal/version"
	"github.com/spf13/cobra"
)

func newVersionCmd() *cobra.Command {
	c := &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Long: `Print the sitenav build tag, build time, git commit, Go version and platform.

  sitenav version            # full build information
  sitenav version --short    # build tag only, e.g. v1.2.0
  sitenav version -o json    # build information as JSON`,
		Args: cobra.NoArgs,
		RunE: runVersion,
	}
	c.Flags().Bool(extension.FlagShort, false, "Print only the build tag")
	return c
}

func runVersion(c *cobra.Command, _ []string) error {
	short, _ := c.Flags().GetBool(extension.FlagShort)
	info := version.Get()

	switch {
	case cmd.JSON() && short:
		return cmd.PrintJSON(map[string]string{"version": version.Short()})
	case cmd.JSON():
		return cmd.PrintJSON(info)
	case short:
		fmt.Fprintln(cmd.Out(), version.Short())
	default:
		fmt.Fprint(cmd.Out(), info.String())
	}
	return nil
}
