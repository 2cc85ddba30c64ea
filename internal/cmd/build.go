package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"github.com/yoanbernabeu/localpages/internal/content"
	"github.com/yoanbernabeu/localpages/internal/pipeline"
)

var buildCmd = &cobra.Command{
	Use:   "build",
	Short: "Generate every location/service page",
	Long: `Generates one page per location and service based on localpages.yaml:
- Loads services and locations (plus their .local overrides)
- Assembles titles, descriptions, headings and copy from the catalog
- Writes pages whose content changed since the last build
- Writes the sitemap of generated pages
- Records the build in the ledger

A record that fails validation is reported and skipped; the rest of the
build continues unless --fail-fast is set.`,
	RunE: runBuild,
}

var (
	buildWorkers   int
	buildFailFast  bool
	buildDryRun    bool
	buildLocations []string
	buildServices  []string
)

func init() {
	rootCmd.AddCommand(buildCmd)
	buildCmd.Flags().IntVarP(&buildWorkers, "workers", "w", 0, "Number of generation workers (default: build.workers)")
	buildCmd.Flags().BoolVar(&buildFailFast, "fail-fast", false, "Stop at the first page that fails")
	buildCmd.Flags().BoolVar(&buildDryRun, "dry-run", false, "Generate pages without writing anything")
	buildCmd.Flags().StringArrayVarP(&buildLocations, "location", "l", nil, "Only build these location slugs")
	buildCmd.Flags().StringArrayVarP(&buildServices, "service", "s", nil, "Only build these service slugs")
}

func runBuild(cmd *cobra.Command, args []string) error {
	p, err := loadProject()
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
	defer stop()

	result, err := build(ctx, p, nil)
	if err != nil {
		return err
	}

	printBuildSummary(result)

	if n := len(result.Failures); n > 0 {
		return fmt.Errorf("%d record(s) failed", n)
	}
	return nil
}

// build runs one build with the command line overrides applied. A nil set
// makes the build load the content files itself.
func build(ctx context.Context, p *project, set *content.Set) (*pipeline.Result, error) {
	orch, err := pipeline.NewOrchestrator(p.config, p.path, p.engine, logger)
	if err != nil {
		return nil, err
	}
	orch.SetWorkers(buildWorkers)
	orch.SetFailFast(buildFailFast)
	orch.SetDryRun(buildDryRun)
	orch.Only(splitSlugs(buildLocations), splitSlugs(buildServices))
	orch.OnMessage(func(msg string) {
		PrintVerbose("%s", msg)
	})

	PrintInfo("Building pages with catalog %s (%s)...",
		p.engine.Catalog().Version(), p.engine.Catalog().ShortFingerprint())

	if set == nil {
		return orch.Run(ctx)
	}
	return orch.Build(ctx, set)
}

func printBuildSummary(result *pipeline.Result) {
	for _, failure := range result.Failures {
		PrintWarning("%v", failure)
	}

	if result.CatalogChanged() {
		PrintWarning("Catalog changed since the last build (%s -> %s): every page may have new copy",
			short(result.PreviousFingerprint), short(result.Fingerprint))
		PrintWarning("Run 'localpages catalog diff' to review the changes")
	}

	if buildDryRun {
		PrintSuccess("Generated %d page(s), %d would change (dry run)", len(result.Pages), result.Changed)
		return
	}

	PrintSuccess("Generated %d page(s): %d changed, %d written", len(result.Pages), result.Changed, result.Written)
	if result.Sitemap != "" {
		PrintSuccess("Wrote sitemap %s", result.Sitemap)
	}
	if result.RunID != "" {
		PrintVerbose("Recorded run %s", result.RunID)
	}
}

func short(fingerprint string) string {
	if len(fingerprint) > 12 {
		return fingerprint[:12]
	}
	return fingerprint
}
