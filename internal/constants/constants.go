package constants

import (
	"path/filepath"
	"time"
)

// Local state kept next to localpages.yaml
const (
	StateDir          = ".localpages"
	DefaultLedgerPath = StateDir + "/ledger.db"
)

// Default content and output locations, relative to the project root
const (
	DefaultServicesFile  = "content/services.yaml"
	DefaultLocationsFile = "content/locations.yaml"
	DefaultOutputDir     = "dist/locations"
	DefaultSitemapPath   = "dist/sitemap-locations.xml"
	AstroPagesDir        = "src/pages"
	AstroOutputDir       = AstroPagesDir + "/locations"
)

// Build defaults
const (
	DefaultWorkers = 4
	MaxWorkers     = 64
)

// Audit defaults
const (
	DefaultMaxVariantShare     = 0.40
	DefaultDuplicateSimilarity = 0.90
	DefaultMaxTitleLength      = 60
)

// Preview server defaults
const (
	DefaultPreviewAddr       = "127.0.0.1:4321"
	PreviewReadHeaderTimeout = 5 * time.Second
	PreviewShutdownTimeout   = 10 * time.Second
)

// WatchDebounce is how long the watcher waits for file events to settle
const WatchDebounce = 300 * time.Millisecond

// LocationDir returns the output directory of a location's pages.
func LocationDir(outDir, locationSlug string) string {
	return filepath.Join(outDir, locationSlug)
}

// PageFile returns the output file of a location/service page.
func PageFile(outDir, locationSlug, serviceSlug, ext string) string {
	return filepath.Join(outDir, locationSlug, serviceSlug+ext)
}

// LocalOverride returns the path of the untracked override file for path,
// e.g. content/services.yaml -> content/services.local.yaml.
func LocalOverride(path string) string {
	ext := filepath.Ext(path)
	return path[:len(path)-len(ext)] + ".local" + ext
}
