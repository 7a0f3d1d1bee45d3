// Package progress draws the status line shown on stderr while sitenav
// renders pages: a counter for builds, where the page count is known up
// front, and a spinner for link checks, which report pages as they go.
//
// Both write only when stderr is a terminal, so piped and JSON output stay
// clean. Each update rewrites the line in place and names the page being
// processed.
package progress

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	"golang.org/x/term"
)

// minItems is the smallest total that gets a counter; short builds finish
// before a counter is readable.
const minItems = 5

// width is the widest status line written; longer routes are cut from the left.
const width = 72

// Counter shows "label n/total (pct%) route". Step is safe for concurrent
// use, so build workers can report pages as they finish.
type Counter struct {
	mu      sync.Mutex
	w       io.Writer
	label   string
	total   int
	current int
	last    int // length of the last line written
	tty     bool
}

// New returns a counter for total items writing to stderr.
func New(label string, total int) *Counter {
	return NewTo(os.Stderr, label, total)
}

// NewTo returns a counter writing to w. Nothing is written unless w is a
// terminal.
func NewTo(w io.Writer, label string, total int) *Counter {
	return &Counter{w: w, label: label, total: total, tty: isTerminal(w)}
}

// Step records one finished item and shows it.
func (c *Counter) Step(item string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.current++
	if !c.tty || c.total < minItems {
		return
	}
	pct := c.current * 100 / c.total
	c.last = rewrite(c.w, fmt.Sprintf("%s %d/%d (%d%%) %s", c.label, c.current, c.total, pct, item), c.last)
}

// Done clears the line so the command's own output starts on a clean row.
func (c *Counter) Done() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.last > 0 {
		clearLine(c.w, c.last)
		c.last = 0
	}
}

// Spinner shows an animated "label... item" line for work of unknown size.
// Tick is safe for concurrent use.
type Spinner struct {
	mu    sync.Mutex
	w     io.Writer
	label string
	frame int
	last  int
	tty   bool
}

var frames = []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}

// NewSpinner returns a spinner writing to stderr.
func NewSpinner(label string) *Spinner {
	return NewSpinnerTo(os.Stderr, label)
}

// NewSpinnerTo returns a spinner writing to w. Nothing is written unless w
// is a terminal.
func NewSpinnerTo(w io.Writer, label string) *Spinner {
	return &Spinner{w: w, label: label, tty: isTerminal(w)}
}

// Tick advances the animation and names the item just processed.
func (s *Spinner) Tick(item string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.tty {
		return
	}
	s.frame = (s.frame + 1) % len(frames)
	s.last = rewrite(s.w, fmt.Sprintf("%s %s... %s", frames[s.frame], s.label, item), s.last)
}

// Stop clears the spinner line.
func (s *Spinner) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.last > 0 {
		clearLine(s.w, s.last)
		s.last = 0
	}
}

// rewrite replaces the previous line of length prev with line and returns
// the length written.
func rewrite(w io.Writer, line string, prev int) int {
	if r := []rune(line); len(r) > width {
		line = "…" + string(r[len(r)-width+1:])
	}
	n := len([]rune(line))
	pad := ""
	if prev > n {
		pad = strings.Repeat(" ", prev-n)
	}
	fmt.Fprintf(w, "\r%s%s", line, pad)
	return n
}

func clearLine(w io.Writer, n int) {
	fmt.Fprintf(w, "\r%s\r", strings.Repeat(" ", n))
}

// isTerminal reports whether w is a terminal file.
func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}
