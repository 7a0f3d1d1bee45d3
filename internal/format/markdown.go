// markdown.go renders markdown for the terminal with glamour.

package format

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/glamour"
	"golang.org/x/term"
)

// Markdown writes content to w, rendered with the glamour style when
// stdout is a terminal and as raw markdown otherwise. Raw output keeps
// pipes and LLM context loading clean.
func Markdown(w io.Writer, content, style string) error {
	if term.IsTerminal(int(os.Stdout.Fd())) {
		if rendered, err := glamour.Render(content, style); err == nil {
			_, err = fmt.Fprint(w, rendered)
			return err
		}
	}
	_, err := fmt.Fprint(w, content)
	return err
}
