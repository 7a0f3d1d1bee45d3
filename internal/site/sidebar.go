// sidebar.go implements the ordered sidebar mapping and the sidebar lookup.
//
// Separated from site.go because the sidebar is the only part of the
// descriptor with behaviour: its keys are path prefixes matched against the
// current page, and its key order must survive a decode/encode round trip.
//
// Design: Go maps do not preserve insertion order, so the mapping is decoded
// from the YAML node tree into a slice of groups. The array form accepted by
// most documentation generators (one sidebar for every page) decodes to a
// single group with the root prefix "/".

package site

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/jpl-au/sitenav/internal/route"
	"gopkg.in/yaml.v3"
)

// Sidebar maps path prefixes to sidebar sections, in source order.
type Sidebar []SidebarGroup

// UnmarshalYAML decodes a prefix -> sections mapping, keeping key order.
func (s *Sidebar) UnmarshalYAML(n *yaml.Node) error {
	switch n.Kind {
	case yaml.SequenceNode:
		var sections []SidebarSection
		if err := decodeStrict(n, &sections); err != nil {
			return fmt.Errorf("line %d: sidebar: %w", n.Line, err)
		}
		*s = Sidebar{{Prefix: "/", Sections: sections}}
		return nil
	case yaml.MappingNode:
	default:
		return fmt.Errorf("line %d: sidebar must map path prefixes to sections", n.Line)
	}

	groups := make(Sidebar, 0, len(n.Content)/2)
	for i := 0; i+1 < len(n.Content); i += 2 {
		var prefix string
		if err := n.Content[i].Decode(&prefix); err != nil {
			return fmt.Errorf("line %d: sidebar key: %w", n.Content[i].Line, err)
		}
		var sections []SidebarSection
		if err := decodeStrict(n.Content[i+1], &sections); err != nil {
			return fmt.Errorf("line %d: sidebar %q: %w", n.Content[i+1].Line, prefix, err)
		}
		groups = append(groups, SidebarGroup{Prefix: prefix, Sections: sections})
	}
	*s = groups
	return nil
}

// decodeStrict decodes n into v, rejecting unknown fields. Node.Decode does
// not inherit KnownFields from the outer decoder, so the node is re-encoded
// and decoded again with its own strict decoder.
func decodeStrict(n *yaml.Node, v any) error {
	data, err := yaml.Marshal(n)
	if err != nil {
		return err
	}
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	return dec.Decode(v)
}

// MarshalYAML encodes the sidebar as a mapping in slice order.
func (s Sidebar) MarshalYAML() (any, error) {
	n := &yaml.Node{Kind: yaml.MappingNode}
	for _, g := range s {
		var v yaml.Node
		if err := v.Encode(g.Sections); err != nil {
			return nil, fmt.Errorf("sidebar %q: %w", g.Prefix, err)
		}
		n.Content = append(n.Content,
			&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: g.Prefix},
			&v,
		)
	}
	return n, nil
}

// MarshalJSON encodes the sidebar as a JSON object in slice order.
func (s Sidebar) MarshalJSON() ([]byte, error) {
	var b bytes.Buffer
	b.WriteByte('{')
	for i, g := range s {
		if i > 0 {
			b.WriteByte(',')
		}
		k, err := json.Marshal(g.Prefix)
		if err != nil {
			return nil, err
		}
		sections := g.Sections
		if sections == nil {
			sections = []SidebarSection{}
		}
		v, err := json.Marshal(sections)
		if err != nil {
			return nil, err
		}
		b.Write(k)
		b.WriteByte(':')
		b.Write(v)
	}
	b.WriteByte('}')
	return b.Bytes(), nil
}

// UnmarshalJSON decodes a JSON object, keeping key order.
func (s *Sidebar) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return fmt.Errorf("sidebar must be a JSON object")
	}

	var groups Sidebar
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return err
		}
		prefix, ok := tok.(string)
		if !ok {
			return fmt.Errorf("sidebar key must be a string")
		}
		var sections []SidebarSection
		if err := dec.Decode(&sections); err != nil {
			return fmt.Errorf("sidebar %q: %w", prefix, err)
		}
		groups = append(groups, SidebarGroup{Prefix: prefix, Sections: sections})
	}
	if _, err := dec.Token(); err != nil {
		return err
	}
	*s = groups
	return nil
}

// Resolve selects the sidebar for the page at path.
//
// The path is normalised (query, fragment and .md/.html suffix dropped), the
// site base is stripped, and the group whose prefix is the longest prefix of
// the remaining route is returned. Prefixes are matched literally, so
// "/components" does not select "/components/". The second result is false
// when no prefix matches, in which case no sidebar is rendered.
func (s *Site) Resolve(path string) (SidebarGroup, bool) {
	return s.ResolveRoute(route.StripBase(s.BasePath(), route.Normalise(path)))
}

// ResolveRoute is Resolve for a route that is already normalised and has
// the site base stripped, such as a route derived from a docs file.
func (s *Site) ResolveRoute(r string) (SidebarGroup, bool) {
	best := -1
	for i, g := range s.ThemeConfig.Sidebar {
		if !strings.HasPrefix(r, g.Prefix) {
			continue
		}
		if best < 0 || len(g.Prefix) > len(s.ThemeConfig.Sidebar[best].Prefix) {
			best = i
		}
	}
	if best < 0 {
		return SidebarGroup{}, false
	}
	return s.ThemeConfig.Sidebar[best].clone(), true
}

// Group returns the sidebar registered under exactly prefix.
func (s *Site) Group(prefix string) (SidebarGroup, bool) {
	for _, g := range s.ThemeConfig.Sidebar {
		if g.Prefix == prefix {
			return g.clone(), true
		}
	}
	return SidebarGroup{}, false
}
