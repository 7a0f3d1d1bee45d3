// Package glob matches page routes against glob patterns.
//
// Extends path.Match with ** for matching any number of route segments, so
// "components/**" selects every page under /components/ regardless of
// nesting depth. Leading slashes and .md suffixes are ignored on both sides,
// so a pattern may be written as a route or as a file name.
package glob

import (
	"path"
	"strings"
)

// Match reports whether route r matches the glob pattern.
// Supports standard glob patterns (*, ?) plus ** for matching any segments.
// A pattern without a slash is also tried against the last segment alone.
// Returns an error if the pattern is malformed.
func Match(pattern, r string) (bool, error) {
	pattern = trim(pattern)
	r = trim(r)

	if before, after, ok := strings.Cut(pattern, "**"); ok && !strings.Contains(after, "**") {
		prefix := strings.TrimSuffix(before, "/")
		suffix := strings.TrimPrefix(after, "/")

		if prefix != "" && r != prefix && !strings.HasPrefix(r, prefix+"/") {
			return false, nil
		}
		if suffix == "" {
			return true, nil
		}
		rest := strings.TrimPrefix(strings.TrimPrefix(r, prefix), "/")
		segments := strings.Split(rest, "/")
		for i := range segments {
			m, err := path.Match(suffix, strings.Join(segments[i:], "/"))
			if err != nil || m {
				return m, err
			}
		}
		return false, nil
	}

	matched, err := path.Match(pattern, r)
	if err != nil || matched {
		return matched, err
	}
	if strings.Contains(pattern, "/") {
		return false, nil
	}
	return path.Match(pattern, path.Base(r))
}

// Filter returns the routes that match pattern, in order.
func Filter(pattern string, routes []string) ([]string, error) {
	var out []string
	for _, r := range routes {
		m, err := Match(pattern, r)
		if err != nil {
			return nil, err
		}
		if m {
			out = append(out, r)
		}
	}
	return out, nil
}

// trim drops the leading slash and .md suffix. A trailing slash, which
// marks a section index route, is dropped too.
func trim(s string) string {
	s = strings.TrimPrefix(s, "/")
	s = strings.TrimSuffix(s, ".md")
	return strings.TrimSuffix(s, "/")
}
