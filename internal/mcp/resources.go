// resources.go implements MCP resource handlers for page access.
//
// A page resource is the page's navigation chrome (nav bar, selected
// sidebar, footer) as markdown, followed by the page's own markdown source
// when it exists. LLM clients can load it as context while editing a page
// without calling a tool.
//
// URIs follow the pattern sitenav://pages/{path}, where path is the page
// route without its leading slash: sitenav://pages/components/forms.

package mcp

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/jpl-au/sitenav/internal/log"
	"github.com/jpl-au/sitenav/internal/render"
	"github.com/jpl-au/sitenav/internal/route"
	"github.com/mark3labs/mcp-go/mcp"
)

// ErrInvalidURI indicates a malformed resource URI.
var ErrInvalidURI = errors.New("invalid URI")

const pagePrefix = "sitenav://pages/"

// readPage handles sitenav://pages/{path} resource requests.
func (h *handlers) readPage(ctx context.Context, req mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) { //nolint:revive // ctx for future use
	uri := req.Params.URI
	content, err := h.pageContent(uri)

	log.Event("mcp:resource", "read").Path(uri).Write(err)

	if err != nil {
		return nil, err
	}
	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      uri,
			MIMEType: "text/markdown",
			Text:     content,
		},
	}, nil
}

// pageContent composes the markdown returned for a page URI.
func (h *handlers) pageContent(uri string) (string, error) {
	p, err := parsePageURI(uri)
	if err != nil {
		return "", err
	}
	extCtx, err := h.context()
	if err != nil {
		return "", err
	}

	s := extCtx.Site()
	r := route.Normalise(p)
	page := render.Compose(s, s.Href(r), render.Document{})

	var b strings.Builder
	b.WriteString(page.Markdown())
	b.WriteString("\n---\n\n")

	src, err := fs.ReadFile(os.DirFS(extCtx.DocsDir()), route.ToFile(r))
	switch {
	case errors.Is(err, fs.ErrNotExist):
		fmt.Fprintf(&b, "_No page at %s yet._\n", route.ToFile(r))
	case err != nil:
		return "", err
	default:
		b.Write(src)
	}
	return b.String(), nil
}

// parsePageURI extracts the page path from a sitenav://pages/{path} URI.
// An empty path names the home page.
func parsePageURI(uri string) (string, error) {
	rest, ok := strings.CutPrefix(uri, pagePrefix)
	if !ok {
		return "", fmt.Errorf("%w: %s", ErrInvalidURI, uri)
	}
	return "/" + rest, nil
}
