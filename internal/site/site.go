// Package site defines the Site Navigation Descriptor: the title, base path,
// top navigation, per-section sidebars, social links and footer of a
// documentation site.
//
// The descriptor is constructed once (from the embedded default or a YAML
// file), validated, and then only read. Accessors hand out copies so callers
// cannot mutate a shared descriptor.
//
// # File format
//
// Field names match the configuration object consumed by common static
// documentation generators, so an existing config translates line for line:
//
//	title: EcoDev Configurator
//	base: /
//	ignoreDeadLinks: true
//	themeConfig:
//	  nav:
//	    - text: Home
//	      link: /
//	  sidebar:
//	    /api/:
//	      - text: API
//	        items:
//	          - text: Overview
//	            link: /api/
//	  socialLinks:
//	    - icon: github
//	      link: https://github.com/example/project
//	  footer:
//	    message: Released under the MIT License.
//	    copyright: Copyright © 2025 Example
//
// JSON is accepted as well since it is a subset of YAML.
package site

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"strings"

	"github.com/google/renameio/v2"
	"gopkg.in/yaml.v3"
)

//go:embed ecodev.yaml
var defaultDescriptor []byte

// ErrEmpty is returned when a descriptor file contains no document.
var ErrEmpty = errors.New("empty descriptor")

// Site is the Site Navigation Descriptor.
type Site struct {
	Title           string `yaml:"title" json:"title"`
	Description     string `yaml:"description,omitempty" json:"description,omitempty"`
	Base            string `yaml:"base,omitempty" json:"base,omitempty"`
	IgnoreDeadLinks bool   `yaml:"ignoreDeadLinks,omitempty" json:"ignoreDeadLinks,omitempty"`
	ThemeConfig     Theme  `yaml:"themeConfig" json:"themeConfig"`
}

// Theme holds the navigation chrome rendered around every page.
type Theme struct {
	Nav         []Link       `yaml:"nav,omitempty" json:"nav,omitempty"`
	Sidebar     Sidebar      `yaml:"sidebar,omitempty" json:"sidebar,omitempty"`
	SocialLinks []SocialLink `yaml:"socialLinks,omitempty" json:"socialLinks,omitempty"`
	Footer      Footer       `yaml:"footer,omitempty" json:"footer,omitempty"`
}

// Link is a labelled link, used by the top navigation and sidebar items.
type Link struct {
	Text string `yaml:"text" json:"text"`
	Link string `yaml:"link" json:"link"`
}

// SidebarSection is a titled group of sidebar items.
type SidebarSection struct {
	Text  string `yaml:"text" json:"text"`
	Items []Link `yaml:"items" json:"items"`
}

// SidebarGroup is the sidebar shown for every page under Prefix.
type SidebarGroup struct {
	Prefix   string           `json:"prefix"`
	Sections []SidebarSection `json:"sections"`
}

// SocialLink is an icon link, typically to the source repository.
type SocialLink struct {
	Icon string `yaml:"icon" json:"icon"`
	Link string `yaml:"link" json:"link"`
}

// Footer is the licence and copyright text at the bottom of every page.
type Footer struct {
	Message   string `yaml:"message,omitempty" json:"message,omitempty"`
	Copyright string `yaml:"copyright,omitempty" json:"copyright,omitempty"`
}

// Default returns the EcoDev Configurator descriptor embedded in the binary.
// Each call returns a fresh copy.
func Default() *Site {
	s, err := Parse(defaultDescriptor)
	if err != nil {
		// The embedded file is part of the build; failing here is a programmer error.
		panic("site: embedded descriptor: " + err.Error())
	}
	return s
}

// DefaultYAML returns the raw embedded descriptor, comments and layout intact.
func DefaultYAML() []byte {
	return bytes.Clone(defaultDescriptor)
}

// Parse decodes a descriptor from YAML or JSON. Unknown fields are rejected
// so typos such as "sidebars" surface instead of silently hiding a sidebar.
func Parse(data []byte) (*Site, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)

	var s Site
	if err := dec.Decode(&s); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, ErrEmpty
		}
		return nil, err
	}
	return &s, nil
}

// Load reads and parses the descriptor at path. It does not validate;
// call Validate when the descriptor must be well-formed.
func Load(path string) (*Site, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("descriptor %s: %w", path, err)
		}
		return nil, fmt.Errorf("cannot read descriptor %s: %w", path, err)
	}
	s, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("malformed descriptor %s: %w", path, err)
	}
	return s, nil
}

// Marshal encodes the descriptor as YAML with two-space indentation.
func (s *Site) Marshal() ([]byte, error) {
	var b bytes.Buffer
	enc := yaml.NewEncoder(&b)
	enc.SetIndent(2)
	if err := enc.Encode(s); err != nil {
		return nil, fmt.Errorf("marshalling descriptor: %w", err)
	}
	if err := enc.Close(); err != nil {
		return nil, fmt.Errorf("marshalling descriptor: %w", err)
	}
	return b.Bytes(), nil
}

// Save writes the descriptor to path, atomically replacing any existing file.
func (s *Site) Save(path string) error {
	data, err := s.Marshal()
	if err != nil {
		return err
	}
	if err := renameio.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing descriptor: %w", err)
	}
	return nil
}

// BasePath returns the site base with leading and trailing slashes.
// An unset base is the root "/".
func (s *Site) BasePath() string {
	b := s.Base
	if b == "" {
		return "/"
	}
	if !strings.HasPrefix(b, "/") {
		b = "/" + b
	}
	if !strings.HasSuffix(b, "/") {
		b += "/"
	}
	return b
}

// Nav returns a copy of the top navigation entries in display order.
func (s *Site) Nav() []Link {
	return append([]Link(nil), s.ThemeConfig.Nav...)
}

// SocialLinks returns a copy of the social links in display order.
func (s *Site) SocialLinks() []SocialLink {
	return append([]SocialLink(nil), s.ThemeConfig.SocialLinks...)
}

// Footer returns the footer text.
func (s *Site) Footer() Footer {
	return s.ThemeConfig.Footer
}

// Prefixes returns the sidebar keys in source order.
func (s *Site) Prefixes() []string {
	out := make([]string, 0, len(s.ThemeConfig.Sidebar))
	for _, g := range s.ThemeConfig.Sidebar {
		out = append(out, g.Prefix)
	}
	return out
}

// clone returns a deep copy of the group.
func (g SidebarGroup) clone() SidebarGroup {
	out := SidebarGroup{Prefix: g.Prefix, Sections: make([]SidebarSection, len(g.Sections))}
	for i, sec := range g.Sections {
		out.Sections[i] = SidebarSection{
			Text:  sec.Text,
			Items: append([]Link(nil), sec.Items...),
		}
	}
	return out
}

// Items returns every item of every section in display order.
func (g SidebarGroup) Items() []Link {
	var out []Link
	for _, sec := range g.Sections {
		out = append(out, sec.Items...)
	}
	return out
}
