// Package guide holds the topic pages behind "sitenav guide" and the
// sitenav_guide MCP tool. Pages are markdown files embedded in the binary;
// a topic is a file name without its .md suffix.
//
// Commands that share a page with others (show and validate are both about
// the descriptor) resolve to that page, so "sitenav guide <command>" works
// for every command.
package guide

import (
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"sort"
	"strings"
)

//go:embed *.md
var files embed.FS

// ErrUnknownTopic is returned by Get for a topic with no page.
var ErrUnknownTopic = errors.New("unknown guide topic")

// index is the page shown when no topic is given.
const index = "guide"

// aliases maps command names to the topic page that documents them.
var aliases = map[string]string{
	"show":     "descriptor",
	"validate": "descriptor",
	"version":  index,
}

// Get returns the page for topic. Topics are matched case-insensitively;
// an empty topic returns the main page.
func Get(topic string) (string, error) {
	name := strings.ToLower(strings.TrimSpace(topic))
	if name == "" {
		name = index
	}
	if a, ok := aliases[name]; ok {
		name = a
	}
	if strings.ContainsAny(name, `/\.`) {
		return "", fmt.Errorf("%w: %q", ErrUnknownTopic, topic)
	}

	data, err := files.ReadFile(name + ".md")
	if errors.Is(err, fs.ErrNotExist) {
		return "", fmt.Errorf("%w: %q", ErrUnknownTopic, topic)
	}
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// List returns the topic names, sorted, without the main page.
func List() ([]string, error) {
	entries, err := files.ReadDir(".")
	if err != nil {
		return nil, err
	}
	var names []string
	for _, e := range entries {
		name, ok := strings.CutSuffix(e.Name(), ".md")
		if ok && name != index {
			names = append(names, name)
		}
	}
	sort.Strings(names)
	return names, nil
}
