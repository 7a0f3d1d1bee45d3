// flags.go defines constants for all CLI flag names.
//
// Using constants instead of string literals prevents typos and enables
// compile-time checking when flag names are used in both Flags().Type()
// definitions and GetType() calls.
//
// Naming convention: Flag<PascalCaseName> where name matches the kebab-case
// CLI flag (e.g., "no-links" -> FlagNoLinks).

package extension

// Flag name constants for CLI commands.
// These are used with cobra's Flags().Type() and GetType() methods.
const (
	// Boolean flags

	FlagAll      = "all"      // Include every project
	FlagClean    = "clean"    // Remove the output directory before building
	FlagDryRun   = "dry-run"  // Report without changing anything
	FlagHTML     = "html"     // Print rendered HTML
	FlagList     = "list"     // List mode
	FlagLocal    = "local"    // Use local scope (gitignored)
	FlagPages    = "pages"    // Include links inside markdown pages
	FlagRaw      = "raw"      // Raw output without formatting
	FlagScaffold = "scaffold" // Write stub pages for descriptor links
	FlagShort    = "short"    // Print only the version tag
	FlagStrict   = "strict"   // Check even when ignoreDeadLinks is set
	FlagTree     = "tree"     // Tree view output

	// String flags

	FlagAddr   = "addr"   // Listen address
	FlagDocs   = "docs"   // Docs directory
	FlagOut    = "out"    // Output directory
	FlagPrune  = "prune"  // Delete entries older than a duration
	FlagSince  = "since"  // Only entries newer than a duration
	FlagSource = "source" // Source prefix filter

	// Integer flags

	FlagLimit   = "limit"   // Maximum entries shown
	FlagWorkers = "workers" // Concurrent page renderers
)
