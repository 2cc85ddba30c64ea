package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/yoanbernabeu/localpages/internal/security"
	"gopkg.in/yaml.v3"
)

const (
	// ProjectConfigFile is the default project config filename
	ProjectConfigFile = "localpages.yaml"
)

// LoadProjectConfig loads the project configuration from the given path.
// Paths inside the file are resolved by callers relative to the file's directory.
func LoadProjectConfig(path string) (*ProjectConfig, error) {
	if path == "" {
		path = ProjectConfigFile
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("configuration file not found: %s (run 'localpages init' first)", path)
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var config ProjectConfig
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	config.Output.Format = NormalizeFormat(config.Output.Format)
	config.ApplyDefaults()

	// Reject unsafe paths before anything touches the filesystem
	if config.Name != "" {
		if err := security.ValidateProjectName(config.Name); err != nil {
			return nil, fmt.Errorf("invalid name: %w", err)
		}
	}
	if err := security.ValidateRelativePath(config.Output.Dir); err != nil {
		return nil, fmt.Errorf("invalid output.dir: %w", err)
	}
	if err := security.ValidateRelativePath(config.Build.SitemapPath); err != nil {
		return nil, fmt.Errorf("invalid build.sitemap_path: %w", err)
	}

	return &config, nil
}

// SaveProjectConfig saves the project configuration to the given path
func SaveProjectConfig(config *ProjectConfig, path string) error {
	if path == "" {
		path = ProjectConfigFile
	}

	data, err := yaml.Marshal(config)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// ProjectConfigExists checks if the project config file exists
func ProjectConfigExists(path string) bool {
	if path == "" {
		path = ProjectConfigFile
	}
	_, err := os.Stat(path)
	return err == nil
}

// FindProjectConfig searches for the config file in current and parent directories
func FindProjectConfig() (string, error) {
	cwd, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("failed to get current directory: %w", err)
	}

	dir := cwd
	for {
		configPath := filepath.Join(dir, ProjectConfigFile)
		if _, err := os.Stat(configPath); err == nil {
			return configPath, nil
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}

	return "", fmt.Errorf("no %s found in current or parent directories", ProjectConfigFile)
}

// ResolvePath resolves p relative to the directory holding the config file.
// Absolute paths are returned unchanged.
func ResolvePath(configPath, p string) string {
	if p == "" || filepath.IsAbs(p) {
		return p
	}
	if configPath == "" {
		configPath = ProjectConfigFile
	}
	return filepath.Join(filepath.Dir(configPath), p)
}

// NormalizeFormat normalizes output format names to their canonical form.
// For example, "md" → "markdown", "mdx" → "markdown".
func NormalizeFormat(format string) string {
	switch strings.ToLower(strings.TrimSpace(format)) {
	case "md", "mdx", "markdown":
		return FormatMarkdown
	case "astro":
		return FormatAstro
	case "json":
		return FormatJSON
	default:
		return format
	}
}
