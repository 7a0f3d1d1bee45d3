// Package log provides centralised audit logging for sitenav operations.
// Logs are stored in ~/.sitenav/log/sitenav-log.db and track all CLI commands
// and MCP tool invocations across projects.
//
// # Fluent API
//
// Use the fluent builder API to construct and write log entries:
//
//	log.Event("nav:sidebar", "resolve").
//		Path(p).
//		Target(group.Prefix).
//		Write(err)
//
//	log.Event("publish:build", "build").
//		Target(res.Output).
//		Count(len(res.Pages)).
//		Detail("workers", workers).
//		Write(err)
//
// The source parameter follows the format "{extension}:{command}" for CLI
// commands or "mcp:{tool}" for MCP tools. Examples: "nav:show",
// "publish:build", "mcp:sitenav_sidebar".
package log

import (
	"database/sql"
	"os"
	"path/filepath"
	"sync"
	"time"

	_ "modernc.org/sqlite"
)

var (
	global *Logger
	mu     sync.Mutex
)

// Entry represents a single log entry.
type Entry struct {
	Source string `json:"source"`         // e.g., "nav:show", "mcp:sitenav_site"
	Action string `json:"action"`         // verb: show, resolve, check, build, etc.
	Path   string `json:"path,omitempty"` // input: page path or file requested

	// Output fields - populated after operation succeeds
	Target string `json:"target,omitempty"` // output: resolved route, sidebar prefix or output dir
	Count  int    `json:"count,omitempty"`  // output: pages built, links checked, problems found

	// Timing
	Start int64 `json:"start"` // unix timestamp when Event() called
	End   int64 `json:"end"`   // unix timestamp when Write() called

	Success bool           `json:"success"`          // whether operation succeeded
	Error   string         `json:"error,omitempty"`  // error message if failed
	Detail  map[string]any `json:"detail,omitempty"` // additional operation-specific data
}

// Builder constructs a log entry using a fluent API.
// Create with [Event], chain methods to set fields, then call [Builder.Write]
// to write the entry.
type Builder struct {
	entry Entry
}

// Event creates a new log entry builder for an operation.
//
// The source identifies where the operation originated:
//   - CLI commands: "{extension}:{command}" (e.g., "nav:show", "publish:build")
//   - MCP tools: "mcp:{tool}" (e.g., "mcp:sitenav_sidebar")
//
// The action describes what operation was performed:
//   - "show", "resolve", "validate", "check", "build", "preview", "init", etc.
func Event(source, action string) *Builder {
	return &Builder{
		entry: Entry{
			Source: source,
			Action: action,
			Start:  time.Now().Unix(),
		},
	}
}

// Path sets the page path or file this operation was asked about.
//
// Leave unset for operations that don't target a page (e.g., config).
//
// Example:
//
//	log.Event("nav:sidebar", "resolve").Path("/components/forms")
func (b *Builder) Path(path string) *Builder {
	b.entry.Path = path
	return b
}

// Target sets what the operation resolved to or produced (output).
//
// For sidebar lookups: the matching prefix. For builds: the output
// directory.
//
// Example:
//
//	l.Target(group.Prefix)  // After confirming success
func (b *Builder) Target(target string) *Builder {
	b.entry.Target = target
	return b
}

// Count sets how many items the operation produced or examined (output).
func (b *Builder) Count(n int) *Builder {
	b.entry.Count = n
	return b
}

// Detail adds a key-value pair to the log entry's detail map.
//
// Use for operation-specific data that doesn't fit standard fields:
// flags, dead link counts, listen addresses, etc.
// Can be called multiple times to add multiple details.
//
// Example:
//
//	log.Event("nav:links", "check").
//		Detail("pages", pages).
//		Detail("dead", len(report.Dead))
func (b *Builder) Detail(key string, value any) *Builder {
	if b.entry.Detail == nil {
		b.entry.Detail = make(map[string]any)
	}
	b.entry.Detail[key] = value
	return b
}

// Write writes the log entry to the database, deriving success/failure from err.
//
// If err is nil, the entry is logged as successful.
// If err is non-nil, the entry is logged as failed with the error message.
//
// Example:
//
//	res, err := build.Build(ctx, s, opts)
//	log.Event("publish:build", "build").Target(opts.OutDir).Count(len(res.Pages)).Write(err)
//	if err != nil {
//		return err
//	}
func (b *Builder) Write(err error) {
	b.entry.End = time.Now().Unix()
	b.entry.Success = err == nil
	if err != nil {
		b.entry.Error = err.Error()
	}
	Log(b.entry)
}

// Open initialises the global logger. Safe to call multiple times.
// Errors are returned but callers may choose to ignore them (best-effort logging).
func Open() error {
	mu.Lock()
	defer mu.Unlock()

	if global != nil {
		return nil
	}

	p := dbPath()
	if err := os.MkdirAll(filepath.Dir(p), 0755); err != nil {
		return err
	}

	db, err := sql.Open("sqlite", p)
	if err != nil {
		return err
	}

	if err := migrate(db); err != nil {
		db.Close()
		return err
	}

	global = &Logger{db: db}
	return nil
}

// SetProject sets the project identifier for subsequent log entries.
// The dir should be the absolute path to the project root.
func SetProject(dir string) {
	mu.Lock()
	defer mu.Unlock()
	if global != nil {
		global.project = hash(dir)
	}
}

// Log writes an entry. Safe to call if logger not initialised (no-op).
func Log(e Entry) {
	mu.Lock()
	l := global
	mu.Unlock()

	if l == nil {
		return
	}
	l.log(e)
}

// Close closes the global logger.
func Close() {
	mu.Lock()
	defer mu.Unlock()
	if global != nil {
		global.db.Close()
		global = nil
	}
}
