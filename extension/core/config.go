// config.go implements the "sitenav config" command for configuration management.
//
// Separated from extension.go to isolate config-specific logic including
// the local vs global config precedence rules.
//
// Design: Config follows a cascade model similar to git: local config
// (.sitenav/config.yaml) takes precedence over global (~/.sitenav/config.yaml).
// The --local flag forces use of local config even if it doesn't exist yet.

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

func newConfigCmd() *cobra.Command {
	c := &cobra.Command{
		Use:   "config [key] [value]",
		Short: "View or set config values",
		Long: `View or set config values.

  sitenav config                    # show config
  sitenav config build.out          # show build.out value
  sitenav config build.workers 8    # set build.workers

Keys:
  docs.dir        Docs directory, relative to the project root (default docs)
  build.out       Build output directory (default dist)
  build.workers   Pages rendered concurrently, 1-64 (default 4)
  preview.addr    Preview listen address (default 127.0.0.1:5173)
  render.style    Terminal style: dark, light, notty, ascii (default dark)

Configuration locations:
  Global: ~/.sitenav/config.yaml
  Local:  .sitenav/config.yaml

Uses local config if it exists, otherwise global.
Writes go to the same place reads come from.
Use --local to use local config instead.`,
		Args: cobra.MaximumNArgs(2),
		RunE: runConfig,
	}
	c.Flags().Bool(extension.FlagLocal, false, "Use local config (.sitenav/config.yaml)")
	return c
}

func runConfig(c *cobra.Command, args []string) error {
	forceLocal, _ := c.Flags().GetBool(extension.FlagLocal)

	// Load config: local if exists, otherwise global
	// --local flag forces local even if it doesn't exist yet
	var cfg *config.Config
	var err error
	switch dir := cmd.Dir(); {
	case forceLocal && dir != "":
		cfg, err = config.LoadLocal(dir)
	case forceLocal:
		cfg, err = config.LoadScope(config.ScopeLocal)
	case dir != "":
		cfg, err = config.LoadFrom(dir)
	default:
		cfg, err = config.Load()
	}
	if err != nil {
		return cmd.PrintJSONError(fmt.Errorf("config load: %w", err))
	}

	scopeName := "global"
	if cfg.Scope() == config.ScopeLocal {
		scopeName = "local"
	}

	switch len(args) {
	case 0:
		log.Event("core:config", "list").Write(nil)
		if cmd.JSON() {
			return cmd.PrintJSON(cfg.All())
		}
		all := cfg.All()
		for _, k := range config.ValidKeys() {
			fmt.Fprintf(cmd.Out(), "%s: %s\n", k, all[k])
		}

	case 1:
		// Get single value
		v, err := cfg.Get(args[0])
		log.Event("core:config", "get").Detail("key", args[0]).Write(err)
		if err != nil {
			return cmd.PrintJSONError(fmt.Errorf("config get %q: %w", args[0], err))
		}
		if cmd.JSON() {
			return cmd.PrintJSON(map[string]string{args[0]: v})
		}
		fmt.Fprintln(cmd.Out(), v)

	case 2:
		// Set value - write to same place we read from
		oldOut := cfg.BuildOut()
		if err := cfg.Set(args[0], args[1]); err != nil {
			log.Event("core:config", "set").Detail("key", args[0]).Write(err)
			return cmd.PrintJSONError(fmt.Errorf("config set %q: %w", args[0], err))
		}

		saveErr := cfg.Save()
		log.Event("core:config", "set").Detail("key", args[0]).Detail("scope", scopeName).Write(saveErr)
		if saveErr != nil {
			return cmd.PrintJSONError(fmt.Errorf("config save: %w", saveErr))
		}
		if args[0] == "build.out" && cfg.Scope() == config.ScopeLocal {
			if err := moveOutputIgnore(oldOut, cfg.BuildOut()); err != nil {
				return cmd.PrintJSONError(fmt.Errorf("update .gitignore: %w", err))
			}
		}
		if cmd.JSON() {
			return cmd.PrintJSON(map[string]string{"key": args[0], "value": args[1], "scope": scopeName})
		}
		fmt.Fprintf(cmd.Out(), "%s = %s (%s)\n", args[0], args[1], scopeName)
	}
	return nil
}

// moveOutputIgnore swaps the project's .gitignore entry from the old build
// output directory to the new one. Absolute directories live outside the
// project and are left alone.
func moveOutputIgnore(oldOut, newOut string) error {
	root, err := project.Find(cmd.Dir())
	if err != nil || oldOut == newOut {
		return nil
	}
	if !filepath.IsAbs(oldOut) {
		if err := project.UnignoreOutput(root, oldOut); err != nil {
			return err
		}
	}
	if filepath.IsAbs(newOut) {
		return nil
	}
	return project.IgnoreOutput(root, newOut)
}
