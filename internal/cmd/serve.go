package cmd

import (
	"context"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"github.com/yoanbernabeu/localpages/internal/preview"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Preview pages over HTTP",
	Long: `Starts a local HTTP server that renders every page on request:
  /                                  Index of every page
  /locations/<location>/<service>    Rendered page
  /api/bundles/<location>/<service>  Content bundle as JSON
  /healthz                           Catalog version and page count

Nothing is written to disk. Use 'localpages watch --serve' to reload the
preview when content or catalog files change.`,
	RunE: runServe,
}

var serveAddr string

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().StringVarP(&serveAddr, "addr", "a", "", "Listen address (default: preview.addr)")
}

func runServe(cmd *cobra.Command, args []string) error {
	p, err := loadProject()
	if err != nil {
		return err
	}
	set, err := p.loadContent()
	if err != nil {
		return err
	}
	warnRejected(set)

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
	defer stop()

	server := preview.New(p.config, p.engine, set, logger)
	return serve(ctx, server, previewAddr(p))
}

func previewAddr(p *project) string {
	if serveAddr != "" {
		return serveAddr
	}
	return p.config.Preview.Addr
}

func serve(ctx context.Context, server *preview.Server, addr string) error {
	PrintInfo("Preview available at http://%s (Ctrl+C to stop)", addr)
	return server.ListenAndServe(ctx, addr)
}
