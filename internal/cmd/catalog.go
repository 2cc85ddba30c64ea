package cmd

import (
	"fmt"
	"os"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/yoanbernabeu/localpages/internal/changelog"
	"github.com/yoanbernabeu/localpages/internal/seo"
)

// builtinCatalog names the catalog compiled into the binary on the command line
const builtinCatalog = "builtin"

var catalogCmd = &cobra.Command{
	Use:   "catalog",
	Short: "Inspect, validate and diff template catalogs",
	Long: `Commands to work with the template catalog that page copy is built from.

The catalog is versioned: adding, removing or reordering an entry changes
which template existing pages select, so every catalog edit is a breaking
change for already published pages. Use 'catalog diff' to see exactly
which pages change before publishing.

Subcommands:
  show          Print the active catalog
  validate      Check a catalog file
  diff          Compare the active catalog with an older one`,
}

var catalogShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the active catalog",
	RunE:  runCatalogShow,
}

var catalogValidateCmd = &cobra.Command{
	Use:   "validate [path]",
	Short: "Check a catalog file",
	Long: `Validates a catalog file: every list must be non-empty and every
template may only use the placeholders its category provides.

Without a path, the catalog configured in localpages.yaml is validated.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runCatalogValidate,
}

var catalogDiffCmd = &cobra.Command{
	Use:   "diff",
	Short: "Compare the active catalog with an older one",
	Long: `Regenerates every page with both catalogs and lists the pages and
fields whose copy differs.

Examples:
  localpages catalog diff --old catalogs/2024.06.yaml
  localpages catalog diff --old builtin --diff
  localpages catalog diff --old catalogs/2024.06.yaml --changelog CHANGELOG.md`,
	RunE: runCatalogDiff,
}

var (
	catalogShowInfo    bool
	catalogDiffOld     string
	catalogDiffNew     string
	catalogDiffUnified bool
	catalogDiffLog     string
)

func init() {
	rootCmd.AddCommand(catalogCmd)
	catalogCmd.AddCommand(catalogShowCmd)
	catalogCmd.AddCommand(catalogValidateCmd)
	catalogCmd.AddCommand(catalogDiffCmd)

	catalogShowCmd.Flags().BoolVar(&catalogShowInfo, "info", false, "Print version, fingerprint and list sizes only")

	catalogDiffCmd.Flags().StringVar(&catalogDiffOld, "old", "", "Previous catalog file, or \"builtin\" (required)")
	catalogDiffCmd.Flags().StringVar(&catalogDiffNew, "new", "", "New catalog file (default: the configured catalog)")
	catalogDiffCmd.Flags().BoolVar(&catalogDiffUnified, "diff", false, "Print a unified diff of every changed page")
	catalogDiffCmd.Flags().StringVar(&catalogDiffLog, "changelog", "", "Append a changelog entry to this file")
	_ = catalogDiffCmd.MarkFlagRequired("old")
}

func runCatalogShow(cmd *cobra.Command, args []string) error {
	p, err := loadProject()
	if err != nil {
		return err
	}
	catalog := p.engine.Catalog()

	if !catalogShowInfo {
		data, err := yaml.Marshal(catalog.File())
		if err != nil {
			return fmt.Errorf("failed to encode catalog: %w", err)
		}
		_, err = os.Stdout.Write(data)
		return err
	}

	f := catalog.File()
	t := table.NewWriter()
	t.SetStyle(table.StyleRounded)
	t.SetOutputMirror(os.Stdout)
	t.AppendRows([]table.Row{
		{"Version", f.Version},
		{"Fingerprint", catalog.Fingerprint()},
		{"Modifiers", len(f.Modifiers)},
		{"H1 patterns", len(f.H1)},
		{"Descriptions", len(f.Descriptions)},
		{"Intros", len(f.Intros)},
		{"Callouts", len(f.Callouts)},
		{"FAQs", len(f.FAQs)},
		{"Service contexts", len(catalog.ContextSlugs())},
	})
	t.Render()
	return nil
}

func runCatalogValidate(cmd *cobra.Command, args []string) error {
	var (
		path string
		data []byte
		err  error
	)
	if len(args) == 1 {
		path = args[0]
	} else {
		p, err := loadProjectConfigOnly()
		if err != nil {
			return err
		}
		path = p.catalogPath()
	}

	if path == "" || path == builtinCatalog {
		path = builtinCatalog
		data = seo.DefaultCatalogYAML()
	} else if data, err = os.ReadFile(path); err != nil {
		return fmt.Errorf("failed to read catalog: %w", err)
	}

	var f seo.CatalogFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return fmt.Errorf("failed to parse catalog: %w", err)
	}

	if errs := seo.ValidateCatalog(f); len(errs) > 0 {
		for _, e := range errs {
			PrintError("%v", e)
		}
		return fmt.Errorf("catalog %s has %d error(s)", path, len(errs))
	}

	catalog, err := seo.NewCatalog(f)
	if err != nil {
		return err
	}
	PrintSuccess("Catalog %s is valid (version %s, fingerprint %s)", path, catalog.Version(), catalog.ShortFingerprint())
	return nil
}

func runCatalogDiff(cmd *cobra.Command, args []string) error {
	p, err := loadProject()
	if err != nil {
		return err
	}
	set, err := p.loadContent()
	if err != nil {
		return err
	}
	warnRejected(set)

	oldEngine, err := engineFor(catalogDiffOld)
	if err != nil {
		return fmt.Errorf("old catalog: %w", err)
	}
	newEngine := p.engine
	if catalogDiffNew != "" {
		if newEngine, err = engineFor(catalogDiffNew); err != nil {
			return fmt.Errorf("new catalog: %w", err)
		}
	}

	log, err := changelog.Compare(oldEngine, newEngine, set.Services, set.Locations)
	if err != nil {
		return err
	}

	t := table.NewWriter()
	t.SetStyle(table.StyleRounded)
	t.SetOutputMirror(os.Stdout)
	t.AppendHeader(table.Row{"Field", "Pages changed"})
	for _, fc := range log.FieldCounts() {
		t.AppendRow(table.Row{fc.Field, fc.Pages})
	}
	t.AppendFooter(table.Row{"Total", fmt.Sprintf("%d of %d", log.ChangedPages(), log.Pages)})
	t.Render()

	if catalogDiffUnified {
		if err := log.WriteDiff(os.Stdout); err != nil {
			return err
		}
	}

	if catalogDiffLog != "" {
		f, err := os.OpenFile(catalogDiffLog, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
		if err != nil {
			return fmt.Errorf("failed to open changelog: %w", err)
		}
		if err := log.WriteMarkdown(f); err != nil {
			f.Close()
			return fmt.Errorf("failed to write changelog: %w", err)
		}
		if err := f.Close(); err != nil {
			return fmt.Errorf("failed to write changelog: %w", err)
		}
		PrintSuccess("Appended changelog entry to %s", catalogDiffLog)
	}

	if log.Breaking() {
		PrintWarning("Catalog %s -> %s changes copy on %d page(s)", log.OldVersion, log.NewVersion, log.ChangedPages())
	} else {
		PrintSuccess("Catalog %s -> %s leaves every page unchanged", log.OldVersion, log.NewVersion)
	}
	return nil
}

// engineFor loads a catalog file, or the built-in catalog for "builtin"
func engineFor(path string) (*seo.Engine, error) {
	if path == builtinCatalog {
		path = ""
	}
	catalog, err := seo.LoadCatalog(path)
	if err != nil {
		return nil, err
	}
	return seo.NewEngine(catalog), nil
}
