// validate.go implements the "sitenav validate" command.

package nav

import (
	"github.com/jpl-au/sitenav/cmd"
	"github.com/jpl-au/sitenav/internal/format"
	"github.com/jpl-au/sitenav/internal/log"
	"github.com/jpl-au/sitenav/internal/site"
	"github.com/spf13/cobra"
)

// validateResult is the JSON form of a validation run.
type validateResult struct {
	Valid    bool           `json:"valid"`
	Problems []site.Problem `json:"problems"`
}

func (e *Extension) newValidateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "validate",
		Short: "Check the descriptor for structural problems",
		Long: `Checks every invariant of the descriptor and reports all violations:

  - every nav entry, sidebar item and social link has text (or icon) and link
  - every sidebar key starts and ends with / and appears once
  - base starts and ends with /
  - the title is set

Exits non-zero when any problem is found.`,
		Args: cobra.NoArgs,
		RunE: e.runValidate,
	}
}

func (e *Extension) runValidate(c *cobra.Command, _ []string) error {
	s := e.ctx.Site()
	problems := s.Problems()
	if problems == nil {
		problems = []site.Problem{}
	}
	err := s.Validate()

	log.Event("nav:validate", "validate").Target(e.ctx.SitePath()).Count(len(problems)).Write(err)

	if cmd.JSON() {
		if perr := cmd.PrintJSON(validateResult{Valid: err == nil, Problems: problems}); perr != nil {
			return perr
		}
	} else if perr := format.Problems(cmd.Out(), problems); perr != nil {
		return perr
	}

	if err != nil {
		// Problems are already printed; only the exit code is left to set.
		c.SilenceErrors = true
		c.SilenceUsage = true
	}
	return err
}
