package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/yoanbernabeu/localpages/internal/generator"
)

var showCmd = &cobra.Command{
	Use:   "show <location> <service>",
	Short: "Print the content bundle of one page",
	Long: `Prints the generated copy of a single location/service page without
writing anything. Use --rendered to print the page file exactly as build
would write it.

Examples:
  localpages show avalon lawn-care
  localpages show avalon lawn-care --format json
  localpages show avalon lawn-care --rendered`,
	Args: cobra.ExactArgs(2),
	RunE: runShow,
}

var (
	showFormat   string
	showRendered bool
)

func init() {
	rootCmd.AddCommand(showCmd)
	showCmd.Flags().StringVarP(&showFormat, "format", "f", "yaml", "Bundle output format (yaml, json)")
	showCmd.Flags().BoolVar(&showRendered, "rendered", false, "Print the rendered page instead of the bundle")
}

func runShow(cmd *cobra.Command, args []string) error {
	locationSlug, serviceSlug := args[0], args[1]

	p, err := loadProject()
	if err != nil {
		return err
	}
	set, err := p.loadContent()
	if err != nil {
		return err
	}

	pair, ok := set.Find(locationSlug, serviceSlug)
	if !ok {
		return fmt.Errorf("no page for location %q and service %q", locationSlug, serviceSlug)
	}

	if showRendered {
		gen := generator.NewPageGenerator(p.config, p.engine, p.resolve(p.config.Output.Dir))
		_, data, err := gen.Generate(pair.Service, pair.Location)
		if err != nil {
			return err
		}
		_, err = os.Stdout.Write(data)
		return err
	}

	bundle, err := p.engine.Bundle(pair.Service, pair.Location)
	if err != nil {
		return err
	}

	switch showFormat {
	case "json":
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(bundle)
	case "yaml", "yml":
		enc := yaml.NewEncoder(os.Stdout)
		enc.SetIndent(2)
		if err := enc.Encode(bundle); err != nil {
			return err
		}
		return enc.Close()
	default:
		return fmt.Errorf("unsupported format %q (use yaml or json)", showFormat)
	}
}
