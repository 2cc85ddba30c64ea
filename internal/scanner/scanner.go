package scanner

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/yoanbernabeu/localpages/internal/config"
	"github.com/yoanbernabeu/localpages/internal/constants"
)

// astroConfigFiles are the config file names Astro looks for
var astroConfigFiles = []string{
	"astro.config.mjs",
	"astro.config.js",
	"astro.config.ts",
	"astro.config.mts",
	"astro.config.cjs",
}

// Scanner analyzes the site a project generates pages for
type Scanner struct {
	projectPath string
}

// New creates a new Scanner for the given project path
func New(projectPath string) *Scanner {
	if projectPath == "" {
		projectPath = "."
	}
	return &Scanner{projectPath: projectPath}
}

// Scan inspects the project directory. A directory that is not an Astro
// site is not an error: pages are then written as Markdown.
func (s *Scanner) Scan() (*config.ScanResult, error) {
	info, err := os.Stat(s.projectPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read project directory: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%s is not a directory", s.projectPath)
	}

	result := &config.ScanResult{}

	pkg, err := s.parsePackageJSON()
	if err == nil {
		result.PackageName = pkg.Name
	} else if !os.IsNotExist(err) {
		return nil, fmt.Errorf("failed to parse package.json: %w", err)
	}

	result.IsAstro = s.hasAstroConfig() || (pkg != nil && pkg.HasDependency("astro"))
	if result.IsAstro {
		result.Framework = "astro"
		result.HasPagesDir = s.isDir(constants.AstroPagesDir)
	}

	result.HasContent = s.isFile(constants.DefaultServicesFile) || s.isFile(constants.DefaultLocationsFile)

	return result, nil
}

// IsAstroProject checks if the directory contains an Astro site
func (s *Scanner) IsAstroProject() bool {
	if s.hasAstroConfig() {
		return true
	}
	pkg, err := s.parsePackageJSON()
	return err == nil && pkg.HasDependency("astro")
}

// ToProjectConfig converts scan result to project config
func (s *Scanner) ToProjectConfig(result *config.ScanResult, name string) *config.ProjectConfig {
	cfg := config.DefaultProjectConfig()
	cfg.Name = name
	cfg.Site.Name = name

	// Astro routes files under src/pages, so pages go straight there
	if result.IsAstro {
		cfg.Output.Format = config.FormatAstro
		cfg.Output.Dir = constants.AstroOutputDir
		cfg.Build.SitemapPath = "public/sitemap-locations.xml"
	}

	return cfg
}

func (s *Scanner) hasAstroConfig() bool {
	for _, name := range astroConfigFiles {
		if s.isFile(name) {
			return true
		}
	}
	return false
}

func (s *Scanner) isFile(rel string) bool {
	info, err := os.Stat(filepath.Join(s.projectPath, rel))
	return err == nil && !info.IsDir()
}

func (s *Scanner) isDir(rel string) bool {
	info, err := os.Stat(filepath.Join(s.projectPath, rel))
	return err == nil && info.IsDir()
}
