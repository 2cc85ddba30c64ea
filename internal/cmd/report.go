package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/yoanbernabeu/localpages/internal/audit"
)

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Audit title lengths and copy diversity",
	Long: `Generates every page in memory and checks the result:
- Meta titles longer than audit.max_title_length
- Descriptions that had to be truncated
- Share of pages using the most common H1 variant (audit.max_variant_share)
- Intro paragraphs of the same service that are near duplicates
  (audit.duplicate_similarity)

The command exits with an error when a threshold is exceeded, so it can
gate a CI pipeline.`,
	RunE: runReport,
}

var (
	reportPages       bool
	reportMaxShare    float64
	reportSimilarity  float64
	reportMaxTitleLen int
)

func init() {
	rootCmd.AddCommand(reportCmd)
	reportCmd.Flags().BoolVar(&reportPages, "pages", false, "List every page in the report")
	reportCmd.Flags().Float64Var(&reportMaxShare, "max-variant-share", 0, "Override audit.max_variant_share")
	reportCmd.Flags().Float64Var(&reportSimilarity, "duplicate-similarity", 0, "Override audit.duplicate_similarity")
	reportCmd.Flags().IntVar(&reportMaxTitleLen, "max-title-length", 0, "Override audit.max_title_length")
}

func runReport(cmd *cobra.Command, args []string) error {
	p, err := loadProject()
	if err != nil {
		return err
	}
	set, err := p.loadContent()
	if err != nil {
		return err
	}
	warnRejected(set)

	opts := audit.Options{
		MaxVariantShare:     p.config.Audit.MaxVariantShare,
		DuplicateSimilarity: p.config.Audit.DuplicateSimilarity,
		MaxTitleLength:      p.config.Audit.MaxTitleLength,
	}
	if reportMaxShare > 0 {
		opts.MaxVariantShare = reportMaxShare
	}
	if reportSimilarity > 0 {
		opts.DuplicateSimilarity = reportSimilarity
	}
	if reportMaxTitleLen > 0 {
		opts.MaxTitleLength = reportMaxTitleLen
	}

	report := audit.Run(p.engine, set.Services, set.Locations, opts)
	report.Render(os.Stdout, reportPages || IsVerbose())

	for _, w := range report.Warnings() {
		PrintWarning("%s", w)
	}
	if problems := report.Problems(); len(problems) > 0 {
		for _, problem := range problems {
			PrintError("%s", problem)
		}
		return fmt.Errorf("audit failed with %d problem(s)", len(problems))
	}

	PrintSuccess("Audit passed for %d page(s)", len(report.Pages))
	return nil
}
