package generator

import (
	"fmt"

	"github.com/yoanbernabeu/localpages/internal/config"
)

// Template names, one per output format plus the sitemap.
const (
	astroTemplate    = "page.astro.tmpl"
	markdownTemplate = "page.md.tmpl"
	sitemapTemplate  = "sitemap.xml.tmpl"
)

// File extensions of generated pages, keyed by output format.
var pageExtensions = map[string]string{
	config.FormatAstro:    ".astro",
	config.FormatMarkdown: ".md",
	config.FormatJSON:     ".json",
}

// PageExtension returns the file extension for an output format.
func PageExtension(format string) (string, error) {
	ext, ok := pageExtensions[format]
	if !ok {
		return "", fmt.Errorf("unsupported output format %q", format)
	}
	return ext, nil
}
