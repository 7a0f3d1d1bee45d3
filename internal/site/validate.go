// validate.go checks the structural invariants of a descriptor.
//
// Separated from site.go so loading stays permissive: a descriptor with
// problems can still be shown, diffed and fixed. Commands that render or
// build call Validate before trusting the descriptor.
//
// Design: Every violation is collected rather than stopping at the first one,
// so a single run reports all problems. Each problem carries the location of
// the offending entry in the same notation the file uses, e.g.
// themeConfig.sidebar["/api/"][0].items[2].

package site

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

var (
	ErrEmptyText       = errors.New("missing text")
	ErrEmptyLink       = errors.New("missing link")
	ErrEmptyIcon       = errors.New("missing icon")
	ErrInvalidPrefix   = errors.New("sidebar key must start and end with /")
	ErrDuplicatePrefix = errors.New("duplicate sidebar key")
	ErrInvalidBase     = errors.New("base must start and end with /")
	ErrEmptyTitle      = errors.New("missing title")
)

// Problem is a single descriptor violation.
type Problem struct {
	Location string `json:"location"`
	Err      error  `json:"-"`
}

// Error implements error so a Problem can be matched with errors.Is.
func (p Problem) Error() string {
	return fmt.Sprintf("%s: %v", p.Location, p.Err)
}

// Unwrap returns the sentinel error.
func (p Problem) Unwrap() error { return p.Err }

// MarshalJSON includes the message alongside the location.
func (p Problem) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Location string `json:"location"`
		Message  string `json:"message"`
	}{p.Location, p.Err.Error()})
}

// Problems returns every invariant violation in the descriptor, in file order.
func (s *Site) Problems() []Problem {
	var out []Problem
	add := func(loc string, err error) {
		out = append(out, Problem{Location: loc, Err: err})
	}

	if strings.TrimSpace(s.Title) == "" {
		add("title", ErrEmptyTitle)
	}
	if s.Base != "" && (!strings.HasPrefix(s.Base, "/") || !strings.HasSuffix(s.Base, "/")) {
		add("base", ErrInvalidBase)
	}

	for i, l := range s.ThemeConfig.Nav {
		checkLink(fmt.Sprintf("themeConfig.nav[%d]", i), l, add)
	}

	seen := make(map[string]bool)
	for _, g := range s.ThemeConfig.Sidebar {
		loc := fmt.Sprintf("themeConfig.sidebar[%q]", g.Prefix)
		if !validPrefix(g.Prefix) {
			add(loc, ErrInvalidPrefix)
		}
		if seen[g.Prefix] {
			add(loc, ErrDuplicatePrefix)
		}
		seen[g.Prefix] = true

		for j, sec := range g.Sections {
			secLoc := fmt.Sprintf("%s[%d]", loc, j)
			if strings.TrimSpace(sec.Text) == "" {
				add(secLoc, ErrEmptyText)
			}
			for k, item := range sec.Items {
				checkLink(fmt.Sprintf("%s.items[%d]", secLoc, k), item, add)
			}
		}
	}

	for i, l := range s.ThemeConfig.SocialLinks {
		loc := fmt.Sprintf("themeConfig.socialLinks[%d]", i)
		if strings.TrimSpace(l.Icon) == "" {
			add(loc, ErrEmptyIcon)
		}
		if strings.TrimSpace(l.Link) == "" {
			add(loc, ErrEmptyLink)
		}
	}
	return out
}

// Validate returns nil when the descriptor satisfies every invariant, or all
// violations joined into one error. Use errors.Is with the Err* sentinels.
func (s *Site) Validate() error {
	problems := s.Problems()
	if len(problems) == 0 {
		return nil
	}
	errs := make([]error, len(problems))
	for i, p := range problems {
		errs[i] = p
	}
	return errors.Join(errs...)
}

func checkLink(loc string, l Link, add func(string, error)) {
	if strings.TrimSpace(l.Text) == "" {
		add(loc, ErrEmptyText)
	}
	if strings.TrimSpace(l.Link) == "" {
		add(loc, ErrEmptyLink)
	}
}

// validPrefix reports whether p is usable as a sidebar key.
func validPrefix(p string) bool {
	return strings.HasPrefix(p, "/") && strings.HasSuffix(p, "/")
}
