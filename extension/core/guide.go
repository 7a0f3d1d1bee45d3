// guide.go implements the "sitenav guide" command for documentation access.
//
// Separated from extension.go to isolate documentation lookup. Guides are
// embedded in the binary via the guide package, so documentation is always
// available without external files. Terminal output gets glamour rendering
// in the configured render.style; pipe/redirect gets raw markdown for
// machine consumption and LLM context loading.

package core

import (
	"errors"
	"fmt"
	"strings"

	"github.com/jpl-au/sitenav/cmd"
	"github.com/jpl-au/sitenav/guide"
	"github.com/jpl-au/sitenav/internal/config"
	"github.com/jpl-au/sitenav/internal/format"
	"github.com/jpl-au/sitenav/internal/log"
	"github.com/spf13/cobra"
)

func newGuideCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "guide [topic]",
		Short: "Show the sitenav usage guide",
		Long: `Outputs the sitenav guide for LLMs and humans.

  sitenav guide           # main guide
  sitenav guide sidebar   # how sidebars are selected
  sitenav guide build     # static builds`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			name := ""
			if len(args) > 0 {
				name = args[0]
			}

			content, err := guide.Get(name)
			log.Event("core:guide", "read").Detail("topic", name).Write(err)
			if errors.Is(err, guide.ErrUnknownTopic) {
				available, listErr := guide.List()
				if listErr != nil {
					return listErr
				}
				return cmd.PrintJSONError(fmt.Errorf("guide %q not found. Available: %s", name, strings.Join(available, ", ")))
			}
			if err != nil {
				return cmd.PrintJSONError(err)
			}

			if cmd.JSON() {
				return cmd.PrintJSON(map[string]string{"topic": name, "content": content})
			}
			return format.Markdown(cmd.Out(), content, style())
		},
	}
}

// style returns the configured glamour style, falling back to the default
// when no config can be read.
func style() string {
	cfg, err := config.Load()
	if dir := cmd.Dir(); dir != "" {
		cfg, err = config.LoadFrom(dir)
	}
	if err != nil {
		return config.DefaultStyle
	}
	return cfg.Style()
}
