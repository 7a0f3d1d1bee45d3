// log.go implements the "sitenav log" command for reading the audit log.
//
// Separated from extension.go because the audit log lives outside any
// project (~/.sitenav/log/sitenav-log.db). Inside a project the listing is
// limited to that project's entries unless --all is given.

package core

import (
	"context"
	"fmt"

	"github.com/jpl-au/sitenav/cmd"
	"github.com/jpl-au/sitenav/extension"
	"github.com/jpl-au/sitenav/internal/duration"
	"github.com/jpl-au/sitenav/internal/format"
	"github.com/jpl-au/sitenav/internal/log"
	"github.com/jpl-au/sitenav/internal/project"
	"github.com/spf13/cobra"
)

func newLogCmd() *cobra.Command {
	c := &cobra.Command{
		Use:   "log",
		Short: "Show or prune the audit log",
		Long: `Every command and MCP tool call is recorded in ~/.sitenav/log/sitenav-log.db.

  sitenav log                    # latest entries for this project
  sitenav log --since 7d         # entries from the last week
  sitenav log --source mcp:      # MCP tool calls only
  sitenav log --all -n 100       # every project
  sitenav log --prune 3m         # delete entries older than 90 days

Durations: 12h, 7d, 4w, 3m (months of 30 days).`,
		Args: cobra.NoArgs,
		RunE: runLog,
	}
	c.Flags().String(extension.FlagSince, "", "Only entries newer than this (e.g. 7d)")
	c.Flags().String(extension.FlagSource, "", "Only entries whose source starts with this")
	c.Flags().IntP(extension.FlagLimit, "n", log.DefaultLimit, "Maximum entries shown")
	c.Flags().Bool(extension.FlagAll, false, "Include every project")
	c.Flags().String(extension.FlagPrune, "", "Delete entries older than this (e.g. 3m)")
	c.Flags().Bool(extension.FlagDryRun, false, "With --prune, count without deleting")
	return c
}

func runLog(c *cobra.Command, _ []string) error {
	if prune, _ := c.Flags().GetString(extension.FlagPrune); prune != "" {
		dryRun, _ := c.Flags().GetBool(extension.FlagDryRun)
		return runPrune(c.Context(), prune, dryRun)
	}

	f := log.Filter{}
	f.Source, _ = c.Flags().GetString(extension.FlagSource)
	f.Limit, _ = c.Flags().GetInt(extension.FlagLimit)
	if since, _ := c.Flags().GetString(extension.FlagSince); since != "" {
		d, err := duration.Parse(since)
		if err != nil {
			return cmd.PrintJSONError(fmt.Errorf("--since: %w", err))
		}
		f.Since = d
	}
	if all, _ := c.Flags().GetBool(extension.FlagAll); !all {
		if root, err := project.Find(cmd.Dir()); err == nil {
			f.Project = root
		}
	}

	entries, err := log.Query(c.Context(), f)
	if err != nil {
		return cmd.PrintJSONError(fmt.Errorf("log: %w", err))
	}

	if cmd.JSON() {
		if entries == nil {
			entries = []log.Entry{}
		}
		return cmd.PrintJSON(entries)
	}
	return format.LogEntries(cmd.Out(), entries)
}

func runPrune(ctx context.Context, older string, dryRun bool) error {
	d, err := duration.Parse(older)
	if err != nil {
		return cmd.PrintJSONError(fmt.Errorf("--prune: %w", err))
	}

	n, err := log.Prune(ctx, d, dryRun)

	log.Event("core:log", "prune").Count(int(n)).Detail("older_than", older).Detail("dry_run", dryRun).Write(err)

	if err != nil {
		return cmd.PrintJSONError(fmt.Errorf("log: %w", err))
	}

	if cmd.JSON() {
		return cmd.PrintJSON(map[string]any{"pruned": n, "dry_run": dryRun})
	}
	switch {
	case n == 0:
		fmt.Fprintln(cmd.Out(), "No log entries to prune")
	case dryRun:
		fmt.Fprintf(cmd.Out(), "Would prune %d log entry(s)\n", n)
	default:
		fmt.Fprintf(cmd.Out(), "Pruned %d log entry(s)\n", n)
	}
	return nil
}
