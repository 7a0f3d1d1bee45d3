// markdown.go converts page markdown into the HTML body of a page.
//
// Separated from render.go because it is the only part that parses page
// content; composition and layout never look inside a page body.
//
// Design: Pages may open with a YAML frontmatter block delimited by "---"
// lines. Recognised keys are title, description and sidebar (false hides the
// sidebar for that page). Without a frontmatter title the first level-one
// heading names the page.

package render

import (
	"bytes"
	"fmt"
	"html/template"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/text"
	"gopkg.in/yaml.v3"
)

var md = goldmark.New(
	goldmark.WithExtensions(extension.GFM),
	goldmark.WithParserOptions(parser.WithAutoHeadingID()),
)

// Document is a rendered page body with its metadata.
type Document struct {
	Title       string
	Description string
	HideSidebar bool
	Body        template.HTML
}

// frontmatter holds the recognised page frontmatter keys.
type frontmatter struct {
	Title       string `yaml:"title"`
	Description string `yaml:"description"`
	Sidebar     *bool  `yaml:"sidebar"`
}

// Markdown renders page source to a Document.
func Markdown(src []byte) (Document, error) {
	var doc Document

	fm, body, err := splitFrontmatter(src)
	if err != nil {
		return doc, err
	}

	root := md.Parser().Parse(text.NewReader(body))

	var buf bytes.Buffer
	if err := md.Renderer().Render(&buf, body, root); err != nil {
		return doc, fmt.Errorf("rendering markdown: %w", err)
	}

	doc.Title = fm.Title
	if doc.Title == "" {
		doc.Title = firstHeading(root, body)
	}
	doc.Description = fm.Description
	doc.HideSidebar = fm.Sidebar != nil && !*fm.Sidebar
	doc.Body = template.HTML(buf.String()) //nolint:gosec // goldmark omits raw HTML without WithUnsafe
	return doc, nil
}

// splitFrontmatter separates a leading "---" YAML block from the markdown body.
func splitFrontmatter(src []byte) (frontmatter, []byte, error) {
	var fm frontmatter

	src = bytes.TrimPrefix(src, []byte("\ufeff"))
	rest, ok := cutLine(src, "---")
	if !ok {
		return fm, src, nil
	}

	// Find the closing delimiter on a line of its own.
	var block []byte
	for len(rest) > 0 {
		line, next := nextLine(rest)
		if string(bytes.TrimRight(line, "\r")) == "---" {
			if err := yaml.Unmarshal(block, &fm); err != nil {
				return fm, nil, fmt.Errorf("malformed frontmatter: %w", err)
			}
			return fm, next, nil
		}
		block = append(block, line...)
		block = append(block, '\n')
		rest = next
	}

	// No closing delimiter: treat the whole file as markdown.
	return frontmatter{}, src, nil
}

// cutLine reports whether src starts with a line equal to want and returns
// the remainder after it.
func cutLine(src []byte, want string) ([]byte, bool) {
	line, rest := nextLine(src)
	if string(bytes.TrimRight(line, "\r")) != want {
		return src, false
	}
	return rest, true
}

func nextLine(b []byte) (line, rest []byte) {
	if i := bytes.IndexByte(b, '\n'); i >= 0 {
		return b[:i], b[i+1:]
	}
	return b, nil
}

// firstHeading returns the text of the first level-one heading.
func firstHeading(root ast.Node, src []byte) string {
	var title string
	_ = ast.Walk(root, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		h, ok := n.(*ast.Heading)
		if !ok || h.Level != 1 {
			return ast.WalkContinue, nil
		}
		title = plainText(h, src)
		return ast.WalkStop, nil
	})
	return title
}

// plainText concatenates the text segments beneath n.
func plainText(n ast.Node, src []byte) string {
	var b bytes.Buffer
	_ = ast.Walk(n, func(c ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		switch t := c.(type) {
		case *ast.Text:
			b.Write(t.Segment.Value(src))
			if t.SoftLineBreak() {
				b.WriteByte(' ')
			}
		case *ast.String:
			b.Write(t.Value)
		}
		return ast.WalkContinue, nil
	})
	return b.String()
}
