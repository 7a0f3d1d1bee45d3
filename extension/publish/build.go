// build.go implements the "sitenav build" command.

package publish

import (
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/jpl-au/sitenav/cmd"
	"github.com/jpl-au/sitenav/extension"
	"github.com/jpl-au/sitenav/internal/build"
	"github.com/jpl-au/sitenav/internal/format"
	"github.com/jpl-au/sitenav/internal/links"
	"github.com/jpl-au/sitenav/internal/log"
	"github.com/jpl-au/sitenav/internal/progress"
	"github.com/jpl-au/sitenav/internal/route"
	"github.com/spf13/cobra"
)

func (e *Extension) newBuildCmd() *cobra.Command {
	c := &cobra.Command{
		Use:   "build",
		Short: "Render the docs tree into a static HTML site",
		Long: `Renders every markdown page under the docs directory into HTML, wrapped
in the nav bar, sidebar and footer the descriptor defines for its route:

  docs/index.md              -> dist/index.html
  docs/components/forms.md   -> dist/components/forms.html

Other files (images, downloads) are copied alongside and a 404.html page is
written. Links are checked first; unless the descriptor sets
ignoreDeadLinks, a dead link fails the build before anything is written.

Directories default to docs.dir and build.out from config:
  sitenav build --out public --workers 8 --clean`,
		Args: cobra.NoArgs,
		RunE: e.runBuild,
	}
	c.Flags().String(extension.FlagDocs, "", "Docs directory (default from docs.dir)")
	c.Flags().String(extension.FlagOut, "", "Output directory (default from build.out)")
	c.Flags().Int(extension.FlagWorkers, 0, "Pages rendered concurrently (default from build.workers)")
	c.Flags().Bool(extension.FlagClean, false, "Remove the output directory first")
	return c
}

// buildOptions resolves build options from flags, falling back to config.
func (e *Extension) buildOptions(c *cobra.Command) build.Options {
	cfg := e.ctx.Config()
	opts := build.Options{
		DocsDir: docsDir(e.ctx, c),
		OutDir:  extension.Resolve(e.ctx, cfg.BuildOut()),
		Workers: cfg.Workers(),
	}
	if out, _ := c.Flags().GetString(extension.FlagOut); out != "" {
		opts.OutDir = extension.Resolve(e.ctx, out)
	}
	if w, _ := c.Flags().GetInt(extension.FlagWorkers); w > 0 {
		opts.Workers = w
	}
	opts.Clean, _ = c.Flags().GetBool(extension.FlagClean)
	return opts
}

func (e *Extension) runBuild(c *cobra.Command, _ []string) error {
	opts := e.buildOptions(c)

	total := 0
	if files, err := route.Discover(os.DirFS(opts.DocsDir)); err == nil {
		total = len(files)
	}
	var prog *progress.Counter
	if !cmd.JSON() {
		prog = progress.New("Building", total)
		opts.OnPage = prog.Step
	}

	ctx, stop := signal.NotifyContext(c.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	res, err := build.Build(ctx, e.ctx.Site(), opts)
	if prog != nil {
		prog.Done()
	}

	log.Event("publish:build", "build").
		Path(opts.DocsDir).
		Target(opts.OutDir).
		Count(len(res.Pages)).
		Detail("assets", res.Assets).
		Detail("workers", opts.Workers).
		Write(err)

	if errors.Is(err, links.ErrDeadLinks) {
		c.SilenceUsage = true
		if cmd.JSON() {
			c.SilenceErrors = true
			if perr := cmd.PrintJSON(res); perr != nil {
				return perr
			}
			return err
		}
		if perr := format.DeadLinks(cmd.Out(), res.Links); perr != nil {
			return perr
		}
		return err
	}
	if err != nil {
		return cmd.PrintJSONError(fmt.Errorf("build: %w", err))
	}

	if cmd.JSON() {
		return cmd.PrintJSON(res)
	}
	fmt.Fprintf(cmd.Out(), "Built %d page(s) and %d asset(s) into %s\n", len(res.Pages), res.Assets, res.Output)
	if !res.Links.Skipped {
		fmt.Fprintf(cmd.Out(), "%d links checked, none dead\n", res.Links.Checked)
	}
	return nil
}
