package generator

import (
	"fmt"
	"sort"
	"strings"
)

// SitemapData holds data for the sitemap template
type SitemapData struct {
	URLs []string
}

// GenerateSitemap renders a sitemap of the given site paths, sorted and
// de-duplicated, as absolute URLs below baseURL.
func GenerateSitemap(baseURL string, paths []string) (string, error) {
	if err := ValidateSitemapData(baseURL, paths); err != nil {
		return "", err
	}

	sorted := append([]string(nil), paths...)
	sort.Strings(sorted)

	data := SitemapData{URLs: make([]string, 0, len(sorted))}
	for i, p := range sorted {
		if i > 0 && p == sorted[i-1] {
			continue
		}
		data.URLs = append(data.URLs, SiteURL(baseURL, p))
	}

	out, err := NewTemplateLoader().Execute(sitemapTemplate, data)
	if err != nil {
		return "", fmt.Errorf("failed to generate sitemap: %w", err)
	}
	return out, nil
}

// WriteSitemap generates the sitemap and writes it atomically to path
func WriteSitemap(path, baseURL string, paths []string) error {
	content, err := GenerateSitemap(baseURL, paths)
	if err != nil {
		return err
	}
	return WritePage(path, []byte(content))
}

// SiteURL joins the site base URL and a site path.
func SiteURL(baseURL, path string) string {
	return strings.TrimRight(baseURL, "/") + path
}
