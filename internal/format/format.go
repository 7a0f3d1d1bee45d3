// Package format provides output formatting utilities for CLI display.
//
// Centralises formatting logic so that command implementations focus on
// their operation while this package handles presentation concerns like
// column alignment and tree rendering.
package format

import (
	"fmt"
	"io"
	"sort"
	"strings"
	"time"

	"github.com/jpl-au/sitenav/internal/links"
	"github.com/jpl-au/sitenav/internal/log"
	"github.com/jpl-au/sitenav/internal/site"
)

// node is one entry of a printed tree.
type node struct {
	label    string
	children []*node
}

// Tree prints the descriptor as a tree: nav entries, then each sidebar
// group with its sections and items, then social links.
func Tree(w io.Writer, s *site.Site) error {
	root := &node{}

	nav := &node{label: "nav"}
	for _, l := range s.Nav() {
		nav.children = append(nav.children, &node{label: l.Text + "  " + l.Link})
	}
	root.children = append(root.children, nav)

	sidebar := &node{label: "sidebar"}
	for _, g := range s.ThemeConfig.Sidebar {
		group := &node{label: g.Prefix}
		for _, sec := range g.Sections {
			section := &node{label: sec.Text}
			for _, item := range sec.Items {
				section.children = append(section.children, &node{label: item.Text + "  " + item.Link})
			}
			group.children = append(group.children, section)
		}
		sidebar.children = append(sidebar.children, group)
	}
	root.children = append(root.children, sidebar)

	if social := s.SocialLinks(); len(social) > 0 {
		n := &node{label: "social"}
		for _, l := range social {
			n.children = append(n.children, &node{label: l.Icon + "  " + l.Link})
		}
		root.children = append(root.children, n)
	}

	fmt.Fprintln(w, s.Title)
	printNode(w, root, "")
	return nil
}

// Routes prints page routes as a directory tree.
func Routes(w io.Writer, routes []string) error {
	if len(routes) == 0 {
		return nil
	}

	type dir struct {
		children map[string]*dir
		page     bool
	}
	root := &dir{children: make(map[string]*dir)}
	for _, r := range routes {
		current := root
		for _, part := range strings.Split(strings.Trim(r, "/"), "/") {
			if part == "" {
				continue
			}
			if current.children[part] == nil {
				current.children[part] = &dir{children: make(map[string]*dir)}
			}
			current = current.children[part]
		}
		current.page = true
	}

	var convert func(name string, d *dir) *node
	convert = func(name string, d *dir) *node {
		n := &node{label: name}
		if len(d.children) > 0 {
			n.label += "/"
		}
		names := make([]string, 0, len(d.children))
		for k := range d.children {
			names = append(names, k)
		}
		sort.Strings(names)
		for _, k := range names {
			n.children = append(n.children, convert(k, d.children[k]))
		}
		return n
	}

	fmt.Fprintln(w, "/")
	printNode(w, convert("", root), "")
	return nil
}

// printNode writes the children of n with box-drawing connectors.
func printNode(w io.Writer, n *node, prefix string) {
	for i, child := range n.children {
		last := i == len(n.children)-1

		connector := "├── "
		if last {
			connector = "└── "
		}
		fmt.Fprintf(w, "%s%s%s\n", prefix, connector, child.label)

		pfx := prefix
		if last {
			pfx += "    "
		} else {
			pfx += "│   "
		}
		if len(child.children) > 0 {
			printNode(w, child, pfx)
		}
	}
}

// Problems prints descriptor violations, one per line.
func Problems(w io.Writer, problems []site.Problem) error {
	if len(problems) == 0 {
		fmt.Fprintln(w, "descriptor is valid")
		return nil
	}
	for _, p := range problems {
		fmt.Fprintf(w, "%s: %v\n", p.Location, p.Err)
	}
	fmt.Fprintf(w, "\n%d problem(s)\n", len(problems))
	return nil
}

// DeadLinks prints a link check report. Dead links are aligned in columns
// of source, location and link.
func DeadLinks(w io.Writer, r links.Report) error {
	if r.Skipped {
		fmt.Fprintln(w, "link check skipped (ignoreDeadLinks is set, use --strict to check anyway)")
		return nil
	}
	if len(r.Dead) == 0 {
		fmt.Fprintf(w, "%d links checked, none dead\n", r.Checked)
		return nil
	}

	maxSource := 6 // minimum "SOURCE"
	maxLoc := 8    // minimum "LOCATION"
	for _, d := range r.Dead {
		maxSource = max(maxSource, len(d.Source))
		maxLoc = max(maxLoc, len(d.Location))
	}

	fmt.Fprintf(w, "%-*s  %-*s  %s\n", maxSource, "SOURCE", maxLoc, "LOCATION", "LINK")
	for _, d := range r.Dead {
		fmt.Fprintf(w, "%-*s  %-*s  %s\n", maxSource, d.Source, maxLoc, d.Location, d.Link)
	}
	fmt.Fprintf(w, "\n%d of %d links dead\n", len(r.Dead), r.Checked)
	return nil
}

// LogEntries prints audit log entries as aligned columns, newest first.
func LogEntries(w io.Writer, entries []log.Entry) error {
	if len(entries) == 0 {
		fmt.Fprintln(w, "No log entries")
		return nil
	}

	maxSource := 6 // minimum "SOURCE"
	maxAction := 6 // minimum "ACTION"
	for _, e := range entries {
		maxSource = max(maxSource, len(e.Source))
		maxAction = max(maxAction, len(e.Action))
	}

	fmt.Fprintf(w, "%-16s  %-*s  %-*s  %-6s  %s\n", "TIME", maxSource, "SOURCE", maxAction, "ACTION", "RESULT", "DETAIL")
	for _, e := range entries {
		result := "ok"
		if !e.Success {
			result = "failed"
		}
		detail := e.Path
		if e.Target != "" {
			if detail != "" {
				detail += " -> "
			}
			detail += e.Target
		}
		if e.Error != "" {
			if detail != "" {
				detail += ": "
			}
			detail += e.Error
		}
		fmt.Fprintf(w, "%-16s  %-*s  %-*s  %-6s  %s\n",
			time.Unix(e.Start, 0).Format("2006-01-02 15:04"),
			maxSource, e.Source, maxAction, e.Action, result, detail)
	}
	return nil
}
