package cmd

import (
	"context"
	"os"
	"os/signal"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/yoanbernabeu/localpages/internal/constants"
	"github.com/yoanbernabeu/localpages/internal/content"
	"github.com/yoanbernabeu/localpages/internal/preview"
	"github.com/yoanbernabeu/localpages/internal/seo"
	"github.com/yoanbernabeu/localpages/internal/watch"
)

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Rebuild when content or catalog files change",
	Long: `Watches the services, locations and catalog files (and their .local
overrides). After each change the catalog and content are reloaded and
the pages rebuilt. With --serve the preview server runs alongside and
picks up every reload.

A file that fails to load is reported and the previous state is kept
until the next change.`,
	RunE: runWatch,
}

var (
	watchServe   bool
	watchNoBuild bool
)

func init() {
	rootCmd.AddCommand(watchCmd)
	watchCmd.Flags().BoolVar(&watchServe, "serve", false, "Run the preview server")
	watchCmd.Flags().BoolVar(&watchNoBuild, "no-build", false, "Only reload the preview, do not write pages")
	watchCmd.Flags().StringVarP(&serveAddr, "addr", "a", "", "Preview listen address (default: preview.addr)")
}

func runWatch(cmd *cobra.Command, args []string) error {
	p, err := loadProject()
	if err != nil {
		return err
	}
	set, err := p.loadContent()
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
	defer stop()

	rebuild := !watchNoBuild
	if rebuild {
		rebuildPages(ctx, p, set)
	} else {
		warnRejected(set)
	}

	w, err := watch.New(p.watchedFiles(), constants.WatchDebounce, logger)
	if err != nil {
		return err
	}

	var server *preview.Server
	if watchServe {
		server = preview.New(p.config, p.engine, set, logger)
	}

	g, ctx := errgroup.WithContext(ctx)
	if server != nil {
		g.Go(func() error {
			return serve(ctx, server, previewAddr(p))
		})
	}
	g.Go(func() error {
		for _, f := range w.Files() {
			PrintVerbose("Watching %s", f)
		}
		PrintInfo("Watching for changes (Ctrl+C to stop)")
		return w.Run(ctx, func(ctx context.Context, changed []string) error {
			reload(ctx, p, server, changed, rebuild)
			return nil
		})
	})

	return g.Wait()
}

// reload picks up edited files. Failures keep the previous engine and content.
func reload(ctx context.Context, p *project, server *preview.Server, changed []string, rebuild bool) {
	for _, f := range changed {
		PrintInfo("Changed: %s", relative(f))
	}

	engine, err := p.loadEngine()
	if err != nil {
		PrintError("Catalog not reloaded: %v", err)
		return
	}
	set, err := p.loadContent()
	if err != nil {
		PrintError("Content not reloaded: %v", err)
		return
	}

	if fingerprintChanged(p.engine, engine) {
		PrintWarning("Catalog changed (%s -> %s): every page may get new copy",
			p.engine.Catalog().Version(), engine.Catalog().Version())
	}
	p.engine = engine

	if server != nil {
		server.Reload(engine, set)
		PrintSuccess("Preview reloaded")
	}

	if rebuild {
		rebuildPages(ctx, p, set)
	} else {
		warnRejected(set)
	}

	logger.Debug("reload finished",
		zap.Int("services", len(set.Services)),
		zap.Int("locations", len(set.Locations)),
		zap.Int("rejected", len(set.Rejected)))
}

func rebuildPages(ctx context.Context, p *project, set *content.Set) {
	result, err := build(ctx, p, set)
	if err != nil {
		PrintError("Build failed: %v", err)
		return
	}
	printBuildSummary(result)
}

func fingerprintChanged(before, after *seo.Engine) bool {
	return before.Catalog().Fingerprint() != after.Catalog().Fingerprint()
}

// relative shortens path for display when it lies below the working directory
func relative(path string) string {
	cwd, err := os.Getwd()
	if err != nil {
		return path
	}
	rel, err := filepath.Rel(cwd, path)
	if err != nil || strings.HasPrefix(rel, "..") {
		return path
	}
	return rel
}
