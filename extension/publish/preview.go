// preview.go implements the "sitenav preview" command: a local server that
// renders pages on request and reloads the descriptor when it changes.

package publish

import (
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/jpl-au/sitenav/cmd"
	"github.com/jpl-au/sitenav/extension"
	"github.com/jpl-au/sitenav/internal/log"
	"github.com/jpl-au/sitenav/internal/preview"
	"github.com/spf13/cobra"
)

func (e *Extension) newPreviewCmd() *cobra.Command {
	c := &cobra.Command{
		Use:   "preview",
		Short: "Serve the docs with live navigation",
		Long: `Serves the docs tree over HTTP. Pages are rendered on every request, so
markdown edits show up on reload. The descriptor is watched: a valid edit
replaces the navigation immediately, an invalid one is logged and the
previous navigation stays in service.

  sitenav preview                       # preview.addr, default 127.0.0.1:5173
  sitenav preview --addr :8080

Besides pages, the server answers:
  GET /_sitenav/site.json               descriptor as JSON
  GET /_sitenav/sidebar?path=/x/y       sidebar selected for a path

Stop with Ctrl-C.`,
		Args: cobra.NoArgs,
		RunE: e.runPreview,
	}
	c.Flags().String(extension.FlagAddr, "", "Listen address (default from preview.addr)")
	c.Flags().String(extension.FlagDocs, "", "Docs directory (default from docs.dir)")
	return c
}

func (e *Extension) runPreview(c *cobra.Command, _ []string) error {
	addr, _ := c.Flags().GetString(extension.FlagAddr)
	if addr == "" {
		addr = e.ctx.Config().PreviewAddr()
	}
	docs := docsDir(e.ctx, c)

	srv := preview.New(e.ctx.Site(), preview.Options{
		SitePath: e.ctx.SitePath(),
		DocsDir:  docs,
		Logger:   slog.New(slog.NewTextHandler(os.Stderr, nil)),
	})

	ctx, stop := signal.NotifyContext(c.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	fmt.Fprintf(cmd.Out(), "Previewing %s at http://%s%s\n", docs, addr, e.ctx.Site().BasePath())
	err := srv.Run(ctx, addr)

	log.Event("publish:preview", "serve").Path(docs).Target(addr).Write(err)

	if err != nil {
		return fmt.Errorf("preview: %w", err)
	}
	return nil
}
