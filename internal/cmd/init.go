package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/renameio/v2"
	"github.com/spf13/cobra"

	"github.com/yoanbernabeu/localpages/internal/config"
	"github.com/yoanbernabeu/localpages/internal/content"
	"github.com/yoanbernabeu/localpages/internal/scanner"
	"github.com/yoanbernabeu/localpages/internal/security"
	"github.com/yoanbernabeu/localpages/internal/seo"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize LocalPages configuration",
	Long: `Analyzes the current directory and creates a localpages.yaml
configuration file with detected settings.

This command will:
- Detect an Astro site (astro.config.*, package.json) and write pages
  to src/pages/locations as .astro files
- Fall back to Markdown output in dist/locations otherwise
- Create sample services and locations files when none exist
- Optionally copy the built-in catalog into the project to pin it`,
	RunE: runInit,
}

var (
	initName      string
	initForce     bool
	initBaseURL   string
	initNoContent bool
	initCatalog   bool
)

func init() {
	rootCmd.AddCommand(initCmd)
	initCmd.Flags().StringVarP(&initName, "name", "n", "", "Project name (default: directory name)")
	initCmd.Flags().BoolVarP(&initForce, "force", "f", false, "Overwrite existing configuration")
	initCmd.Flags().StringVarP(&initBaseURL, "base-url", "u", "", "Public URL of the site (e.g., https://www.example.com)")
	initCmd.Flags().BoolVar(&initNoContent, "no-content", false, "Do not create sample content files")
	initCmd.Flags().BoolVar(&initCatalog, "catalog", false, "Copy the built-in catalog into catalogs/ and use it")
}

const sampleServices = `# Services offered. slug is derived from title when omitted.
- slug: lawn-care
  title: Lawn Care
  description: Mowing, edging and seasonal feeding.
- slug: hedge-trimming
  title: Hedge Trimming
  description: Shaping and height reduction for every hedge type.
`

const sampleLocations = `# Towns covered. latitude/longitude are optional but must be set together.
- slug: avalon
  town: Avalon
  county: Cape May
- slug: stone-harbor
  town: Stone Harbor
  county: Cape May
`

func runInit(cmd *cobra.Command, args []string) error {
	configPath := GetConfigFile()
	if configPath == "" {
		configPath = config.ProjectConfigFile
	}
	root := filepath.Dir(configPath)

	// Check if config already exists
	if config.ProjectConfigExists(configPath) && !initForce {
		if !PromptConfirm(fmt.Sprintf("%s already exists. Overwrite it?", configPath)) {
			return fmt.Errorf("%s already exists (use --force to overwrite)", configPath)
		}
	}

	PrintInfo("Analyzing project...")

	s := scanner.New(root)
	result, err := s.Scan()
	if err != nil {
		return fmt.Errorf("failed to analyze project: %w", err)
	}

	// Determine project name
	projectName := initName
	if projectName == "" {
		projectName = result.PackageName
	}
	if projectName == "" {
		abs, _ := filepath.Abs(root)
		projectName = filepath.Base(abs)
	}
	projectName = sanitizeProjectName(projectName)
	if err := security.ValidateProjectName(projectName); err != nil {
		return fmt.Errorf("invalid project name %q (use --name): %w", projectName, err)
	}

	cfg := s.ToProjectConfig(result, projectName)

	if !result.IsAstro && IsInteractive() {
		formats := []string{config.FormatMarkdown, config.FormatAstro, config.FormatJSON}
		if choice := PromptSelect("Output format:", formats); choice >= 0 {
			cfg.Output.Format = formats[choice]
		}
	}

	baseURL := initBaseURL
	if baseURL == "" && IsInteractive() {
		baseURL = PromptInput("Site base URL (used for canonical links and the sitemap)", "")
	}
	cfg.Site.BaseURL = strings.TrimRight(baseURL, "/")
	if cfg.Site.BaseURL == "" {
		cfg.Build.Sitemap = false
		PrintWarning("No base URL set: sitemap generation is disabled")
	}

	if initCatalog {
		path, err := exportCatalog(root)
		if err != nil {
			return err
		}
		cfg.Catalog = path
		PrintSuccess("Copied built-in catalog to %s", path)
	}

	// Validate configuration
	if errors := config.ValidateProjectConfig(cfg); errors.HasErrors() {
		PrintWarning("Configuration has validation issues: %s", errors.Error())
	}

	if err := config.SaveProjectConfig(cfg, configPath); err != nil {
		return fmt.Errorf("failed to save configuration: %w", err)
	}
	PrintSuccess("Created %s", configPath)

	if !initNoContent {
		if err := writeSample(config.ResolvePath(configPath, cfg.Content.Services), sampleServices); err != nil {
			return err
		}
		if err := writeSample(config.ResolvePath(configPath, cfg.Content.Locations), sampleLocations); err != nil {
			return err
		}
	}

	printInitSummary(result, cfg)

	return nil
}

// sanitizeProjectName turns a directory or package name into a valid
// project name, e.g. "@acme/Green Lawns" -> "acme-green-lawns"
func sanitizeProjectName(name string) string {
	name = content.Slugify(name)
	if len(name) > 63 {
		name = strings.TrimRight(name[:63], "-")
	}
	return name
}

// exportCatalog writes the built-in catalog to catalogs/<version>.yaml and
// returns its path relative to root
func exportCatalog(root string) (string, error) {
	catalog, err := seo.DefaultCatalog()
	if err != nil {
		return "", err
	}

	rel := filepath.ToSlash(filepath.Join("catalogs", catalog.Version()+".yaml"))
	path := filepath.Join(root, rel)
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return "", fmt.Errorf("failed to create catalogs directory: %w", err)
	}
	if err := renameio.WriteFile(path, seo.DefaultCatalogYAML(), 0644); err != nil {
		return "", fmt.Errorf("failed to write catalog: %w", err)
	}
	return rel, nil
}

// writeSample creates a content file unless one already exists
func writeSample(path, data string) error {
	if _, err := os.Stat(path); err == nil {
		PrintVerbose("Keeping existing %s", path)
		return nil
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create content directory: %w", err)
	}
	if err := os.WriteFile(path, []byte(data), 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	PrintSuccess("Created sample %s", path)
	return nil
}

func printInitSummary(result *config.ScanResult, cfg *config.ProjectConfig) {
	fmt.Println()
	fmt.Println("📋 Project Configuration:")
	fmt.Printf("   Name:        %s\n", cfg.Name)
	if result.IsAstro {
		fmt.Printf("   Framework:   %s\n", result.Framework)
	}
	fmt.Printf("   Format:      %s\n", cfg.Output.Format)
	fmt.Printf("   Output:      %s\n", cfg.Output.Dir)

	if cfg.Site.BaseURL != "" {
		fmt.Printf("   Base URL:    %s\n", cfg.Site.BaseURL)
	}

	catalog := cfg.Catalog
	if catalog == "" {
		catalog = "built-in"
	}
	fmt.Printf("   Catalog:     %s\n", catalog)

	fmt.Println()
	fmt.Println("Next steps:")
	fmt.Println("  1. Edit content/services.yaml and content/locations.yaml")
	fmt.Println("  2. Run 'localpages report' to check titles and copy diversity")
	fmt.Println("  3. Run 'localpages build' to generate the pages")
	fmt.Println("  Add .localpages/ and *.local.yaml to .gitignore")
}
