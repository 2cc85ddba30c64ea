package config

import "github.com/yoanbernabeu/localpages/internal/constants"

// ProjectConfig represents the localpages.yaml configuration
type ProjectConfig struct {
	Name    string        `yaml:"name"`
	Site    SiteConfig    `yaml:"site"`
	Content ContentConfig `yaml:"content"`
	// Catalog is the path of a template catalog; empty uses the built-in one
	Catalog string        `yaml:"catalog,omitempty"`
	Output  OutputConfig  `yaml:"output"`
	Build   BuildConfig   `yaml:"build,omitempty"`
	Ledger  LedgerConfig  `yaml:"ledger,omitempty"`
	Preview PreviewConfig `yaml:"preview,omitempty"`
	Audit   AuditConfig   `yaml:"audit,omitempty"`
}

// SiteConfig holds the public site identity
type SiteConfig struct {
	Name    string `yaml:"name"`
	BaseURL string `yaml:"base_url"`
}

// ContentConfig points at the service and location records
type ContentConfig struct {
	Services  string `yaml:"services"`
	Locations string `yaml:"locations"`
}

// OutputConfig holds page output configuration
type OutputConfig struct {
	Dir    string `yaml:"dir"`
	Format string `yaml:"format"`
}

// BuildConfig holds batch generation options
type BuildConfig struct {
	Workers int  `yaml:"workers,omitempty"`
	Sitemap bool `yaml:"sitemap,omitempty"`
	// SitemapPath is relative to the project root
	SitemapPath string `yaml:"sitemap_path,omitempty"`
}

// LedgerConfig holds the generation ledger location
type LedgerConfig struct {
	// Path of the sqlite database; "-" disables the ledger
	Path string `yaml:"path,omitempty"`
}

// PreviewConfig holds the local preview server options
type PreviewConfig struct {
	Addr string `yaml:"addr,omitempty"`
}

// AuditConfig holds report thresholds
type AuditConfig struct {
	MaxVariantShare     float64 `yaml:"max_variant_share,omitempty"`
	DuplicateSimilarity float64 `yaml:"duplicate_similarity,omitempty"`
	MaxTitleLength      int     `yaml:"max_title_length,omitempty"`
}

// ScanResult holds the result of project scanning
type ScanResult struct {
	IsAstro     bool
	HasPagesDir bool
	HasContent  bool
	PackageName string
	Framework   string
}

// Output formats
const (
	FormatAstro    = "astro"
	FormatMarkdown = "markdown"
	FormatJSON     = "json"
)

// DefaultProjectConfig returns a default project configuration
func DefaultProjectConfig() *ProjectConfig {
	return &ProjectConfig{
		Content: ContentConfig{
			Services:  constants.DefaultServicesFile,
			Locations: constants.DefaultLocationsFile,
		},
		Output: OutputConfig{
			Dir:    constants.DefaultOutputDir,
			Format: FormatMarkdown,
		},
		Build: BuildConfig{
			Workers:     constants.DefaultWorkers,
			Sitemap:     true,
			SitemapPath: constants.DefaultSitemapPath,
		},
		Ledger: LedgerConfig{
			Path: constants.DefaultLedgerPath,
		},
		Preview: PreviewConfig{
			Addr: constants.DefaultPreviewAddr,
		},
		Audit: AuditConfig{
			MaxVariantShare:     constants.DefaultMaxVariantShare,
			DuplicateSimilarity: constants.DefaultDuplicateSimilarity,
			MaxTitleLength:      constants.DefaultMaxTitleLength,
		},
	}
}

// ApplyDefaults fills unset optional values from DefaultProjectConfig
func (c *ProjectConfig) ApplyDefaults() {
	def := DefaultProjectConfig()
	if c.Content.Services == "" {
		c.Content.Services = def.Content.Services
	}
	if c.Content.Locations == "" {
		c.Content.Locations = def.Content.Locations
	}
	if c.Output.Dir == "" {
		c.Output.Dir = def.Output.Dir
	}
	if c.Output.Format == "" {
		c.Output.Format = def.Output.Format
	}
	if c.Build.Workers == 0 {
		c.Build.Workers = def.Build.Workers
	}
	if c.Build.SitemapPath == "" {
		c.Build.SitemapPath = def.Build.SitemapPath
	}
	if c.Ledger.Path == "" {
		c.Ledger.Path = def.Ledger.Path
	}
	if c.Preview.Addr == "" {
		c.Preview.Addr = def.Preview.Addr
	}
	if c.Audit.MaxVariantShare == 0 {
		c.Audit.MaxVariantShare = def.Audit.MaxVariantShare
	}
	if c.Audit.DuplicateSimilarity == 0 {
		c.Audit.DuplicateSimilarity = def.Audit.DuplicateSimilarity
	}
	if c.Audit.MaxTitleLength == 0 {
		c.Audit.MaxTitleLength = def.Audit.MaxTitleLength
	}
}

// LedgerEnabled reports whether generated pages are recorded
func (c *ProjectConfig) LedgerEnabled() bool {
	return c.Ledger.Path != "-"
}
