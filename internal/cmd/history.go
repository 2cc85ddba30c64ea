package cmd

import (
	"fmt"
	"os"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/yoanbernabeu/localpages/internal/ledger"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List recorded builds",
	Long: `Lists the builds recorded in the ledger, newest first, with the
catalog version each one used. A fingerprint change between two builds
means every page may have received new copy.`,
	RunE: runHistory,
}

var historyLimit int

func init() {
	rootCmd.AddCommand(historyCmd)
	historyCmd.Flags().IntVarP(&historyLimit, "limit", "n", 10, "Number of builds to show")
}

func runHistory(cmd *cobra.Command, args []string) error {
	p, err := loadProjectConfigOnly()
	if err != nil {
		return err
	}
	if !p.config.LedgerEnabled() {
		return fmt.Errorf("the ledger is disabled (ledger.path is \"-\")")
	}

	path := p.resolve(p.config.Ledger.Path)
	if _, err := os.Stat(path); os.IsNotExist(err) {
		PrintInfo("No builds recorded yet")
		return nil
	}

	store, err := ledger.Open(path)
	if err != nil {
		return err
	}
	defer store.Close()

	runs, err := store.Runs(cmd.Context(), historyLimit)
	if err != nil {
		return err
	}
	if len(runs) == 0 {
		PrintInfo("No builds recorded yet")
		return nil
	}

	t := table.NewWriter()
	t.SetStyle(table.StyleRounded)
	t.SetOutputMirror(os.Stdout)
	t.AppendHeader(table.Row{"Run", "Started", "Catalog", "Fingerprint", "Pages", "Failures"})
	for i, run := range runs {
		fingerprint := short(run.Fingerprint)
		if i+1 < len(runs) && runs[i+1].Fingerprint != run.Fingerprint {
			fingerprint += " *"
		}
		t.AppendRow(table.Row{
			run.ID,
			run.StartedAt.Local().Format("2006-01-02 15:04:05"),
			run.CatalogVersion,
			fingerprint,
			run.Pages,
			run.Failures,
		})
	}
	t.Render()

	PrintVerbose("* catalog changed since the previous build")
	return nil
}
