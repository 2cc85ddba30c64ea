package generator

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/yoanbernabeu/localpages/internal/security"
)

// ValidatePageData validates a page before it is rendered or written.
func ValidatePageData(outDir string, page Page) error {
	if err := security.ValidateSlug(page.Location.Slug); err != nil {
		return fmt.Errorf("invalid location slug: %w", err)
	}
	if err := security.ValidateSlug(page.Service.Slug); err != nil {
		return fmt.Errorf("invalid service slug: %w", err)
	}

	if page.URL == "" || !strings.HasPrefix(page.URL, "/") {
		return fmt.Errorf("page URL must be a site path, got %q", page.URL)
	}

	if page.Path == "" {
		return fmt.Errorf("page path is required")
	}
	rel, err := filepath.Rel(outDir, page.Path)
	if err != nil || rel == "." || strings.HasPrefix(rel, "..") || filepath.IsAbs(rel) {
		return fmt.Errorf("page path %s escapes output directory %s", page.Path, outDir)
	}

	if page.Bundle.Title == "" || page.Bundle.H1 == "" {
		return fmt.Errorf("page %s has no generated copy", page.URL)
	}

	return nil
}

// ValidateSitemapData validates inputs before sitemap generation.
func ValidateSitemapData(baseURL string, urls []string) error {
	if baseURL == "" {
		return fmt.Errorf("sitemap: base URL is required")
	}
	if !strings.HasPrefix(baseURL, "http://") && !strings.HasPrefix(baseURL, "https://") {
		return fmt.Errorf("sitemap: base URL must start with http:// or https://")
	}
	for _, u := range urls {
		if !strings.HasPrefix(u, "/") {
			return fmt.Errorf("sitemap: %q is not a site path", u)
		}
	}
	return nil
}
