// init.go implements the "sitenav init" command for project initialisation.
//
// Separated from extension.go to isolate init-specific logic. Init is special
// because it runs before a project exists and creates the descriptor.
//
// Design: Init does NOT create config - that's managed separately via
// "sitenav config". This follows git's model where init creates project
// structure and config is separate. The docs and output directories it uses
// are read from whatever config already applies.

package core

import (
	"fmt"
	"path/filepath"

	"github.com/jpl-au/sitenav/cmd"
	"github.com/jpl-au/sitenav/extension"
	"github.com/jpl-au/sitenav/internal/config"
	"github.com/jpl-au/sitenav/internal/log"
	"github.com/jpl-au/sitenav/internal/project"
	"github.com/spf13/cobra"
)

func newInitCmd() *cobra.Command {
	c := &cobra.Command{
		Use:   "init",
		Short: "Initialise a new sitenav project",
		Long: `Creates .sitenav/site.yaml in the current directory, holding the
navigation descriptor of the EcoDev Configurator docs as a starting point.

Use --dir to create in a different directory:
  sitenav init --dir /path/to/project

Use --scaffold to write a stub page for every descriptor link that has no
page yet (existing pages are never touched):
  sitenav init --scaffold

The build output directory (build.out, default "dist") is added to the
project's .gitignore.

Note: init does not create config. Use "sitenav config" to set up configuration.`,
		RunE: runInit,
	}
	c.Flags().Bool(extension.FlagScaffold, false, "Write stub pages for descriptor links without a page")
	return c
}

func runInit(c *cobra.Command, _ []string) error {
	scaffold, _ := c.Flags().GetBool(extension.FlagScaffold)
	dir := cmd.Dir()
	if dir == "" {
		dir = "."
	}

	cfg, err := config.LoadFrom(dir)
	if err != nil {
		return cmd.PrintJSONError(fmt.Errorf("config load: %w", err))
	}

	res, err := project.Init(dir, project.Options{
		Force:    cmd.Force(),
		Scaffold: scaffold,
		DocsDir:  cfg.DocsDir(),
		BuildOut: cfg.BuildOut(),
	})

	log.Event("core:init", "init").
		Target(res.Site).
		Count(len(res.Pages)).
		Detail("dir", dir).
		Detail("scaffold", scaffold).
		Write(err)

	if err != nil {
		return cmd.PrintJSONError(fmt.Errorf("init: %w", err))
	}

	if cmd.JSON() {
		return cmd.PrintJSON(res)
	}

	fmt.Fprintf(cmd.Out(), "Initialised sitenav project in %s\n", filepath.ToSlash(res.Site))
	if scaffold {
		fmt.Fprintf(cmd.Out(), "Scaffolded %d page(s) under %s (%d already present)\n", len(res.Pages), cfg.DocsDir(), res.Existing)
	}
	return nil
}
