/*
Copyright © 2026 James Lawson (jpl-au) <hello@caelisco.net>
*/

// init_extensions.go handles extension initialisation and command registration.
//
// Separated from root.go to isolate the initialisation logic that discovers
// the project, loads config and the descriptor, and wires up extensions.
//
// Design: Extensions register during init() but aren't initialised until
// first command execution. This two-phase pattern allows extensions to
// declare commands before a project exists. The descriptor is loaded once
// and shared across all extensions via the Context.

package cmd

import (
	"fmt"
	"sync"

	"github.com/jpl-au/sitenav/extension"
	"github.com/jpl-au/sitenav/internal/config"
	"github.com/jpl-au/sitenav/internal/log"
	"github.com/jpl-au/sitenav/internal/project"
)

// noProjectCommands lists commands that bypass automatic project loading.
// Built dynamically from bootstrap commands plus extension-declared
// projectless commands.
var noProjectCommands map[string]bool

// buildNoProjectCommands creates the set of commands that skip project loading.
//
// There are two categories:
//
//  1. Bootstrap commands (init, guide, config, help, completion) - These help
//     users set up or learn about sitenav before a project exists. Running
//     "sitenav guide" shouldn't fail just because "sitenav init" hasn't run.
//
//  2. Extension-declared projectless commands - Extensions implement the
//     Projectless interface for commands that take their input elsewhere,
//     such as "diff" comparing two descriptor files.
//
// When adding a new command: If it's a core bootstrap command, add it here.
// Otherwise, implement extension.Projectless in your extension.
func buildNoProjectCommands() map[string]bool {
	cmds := map[string]bool{
		// Core bootstrap commands - always projectless
		"init":       true,
		"guide":      true,
		"config":     true,
		"help":       true,
		"completion": true,
	}

	for _, name := range extension.ProjectlessCommands() {
		cmds[name] = true
	}

	return cmds
}

// Global extension context, created during initialisation.
var (
	extContext extension.Context
	initOnce   sync.Once
	initErr    error
)

// initExtensions loads the project and injects it into extensions.
//
// sync.Once guarantees the descriptor is parsed once per process and every
// extension sees the same one. A missing project surfaces as
// project.ErrNotInitialised, whose message tells the user to run init.
func initExtensions() error {
	initOnce.Do(func() {
		root, err := project.Find(Dir())
		if err != nil {
			initErr = err
			return
		}

		// Set project identifier for audit logging
		log.SetProject(root)

		cfg, err := config.LoadFrom(root)
		if err != nil {
			initErr = err
			return
		}
		s, err := project.Load(root)
		if err != nil {
			initErr = err
			return
		}
		extContext = extension.NewContext(s, root, cfg)

		// Inject the shared context into all Initializable extensions.
		for _, ext := range extension.All() {
			if init, ok := ext.(extension.Initializable); ok {
				if err := init.Init(extContext); err != nil {
					initErr = fmt.Errorf("init extension %s: %w", ext.Name(), err)
					return
				}
			}
		}
	})
	return initErr
}

var extensionsOnce sync.Once

// registerExtensions adds commands from all registered extensions.
// Called once before Execute runs.
func registerExtensions() {
	extensionsOnce.Do(func() {
		for _, ext := range extension.All() {
			for _, cmd := range ext.Commands() {
				rootCmd.AddCommand(cmd)
			}
		}

		// Build noProjectCommands after all extensions are registered
		noProjectCommands = buildNoProjectCommands()
	})
}
