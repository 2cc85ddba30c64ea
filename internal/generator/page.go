package generator

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/renameio/v2"
	"gopkg.in/yaml.v3"

	"github.com/yoanbernabeu/localpages/internal/config"
	"github.com/yoanbernabeu/localpages/internal/constants"
	"github.com/yoanbernabeu/localpages/internal/seo"
)

// Page is one location/service page ready to be rendered.
type Page struct {
	Service  seo.Service
	Location seo.Location
	Bundle   seo.Bundle
	// URL is the site path of the page
	URL string
	// Path is the output file
	Path string
}

// PageGenerator renders location/service pages in the configured format
type PageGenerator struct {
	loader *TemplateLoader
	config *config.ProjectConfig
	engine *seo.Engine
	outDir string
}

// NewPageGenerator creates a new page generator writing below outDir
func NewPageGenerator(cfg *config.ProjectConfig, engine *seo.Engine, outDir string) *PageGenerator {
	return &PageGenerator{
		loader: NewTemplateLoader(),
		config: cfg,
		engine: engine,
		outDir: outDir,
	}
}

// PageData holds data for page templates
type PageData struct {
	Page
	SiteName       string
	Canonical      string
	CatalogVersion string
	Fingerprint    string
	Frontmatter    string
	JSONLD         []map[string]any
}

type frontmatter struct {
	Title       string           `yaml:"title"`
	Description string           `yaml:"description"`
	H1          string           `yaml:"h1"`
	Canonical   string           `yaml:"canonical,omitempty"`
	Keywords    []string         `yaml:"keywords"`
	Service     string           `yaml:"service"`
	Location    string           `yaml:"location"`
	Catalog     string           `yaml:"catalog"`
	Breadcrumbs []seo.Breadcrumb `yaml:"breadcrumbs"`
	JSONLD      []map[string]any `yaml:"jsonLd"`
}

type pageDocument struct {
	URL       string           `json:"url"`
	Canonical string           `json:"canonical,omitempty"`
	Service   seo.Service      `json:"service"`
	Location  seo.Location     `json:"location"`
	Catalog   catalogInfo      `json:"catalog"`
	Bundle    seo.Bundle       `json:"bundle"`
	JSONLD    []map[string]any `json:"jsonLd"`
}

type catalogInfo struct {
	Version     string `json:"version"`
	Fingerprint string `json:"fingerprint"`
}

// Build generates the copy for a page and works out where it is written
func (g *PageGenerator) Build(svc seo.Service, loc seo.Location) (Page, error) {
	bundle, err := g.engine.Bundle(svc, loc)
	if err != nil {
		return Page{}, err
	}

	path, err := PagePath(g.outDir, loc.Slug, svc.Slug, g.config.Output.Format)
	if err != nil {
		return Page{}, err
	}

	page := Page{
		Service:  svc,
		Location: loc,
		Bundle:   bundle,
		URL:      seo.PageURL(loc.Slug, svc.Slug),
		Path:     path,
	}
	if err := ValidatePageData(g.outDir, page); err != nil {
		return Page{}, err
	}
	return page, nil
}

// Render renders a page in the configured output format
func (g *PageGenerator) Render(page Page) ([]byte, error) {
	data, err := g.pageData(page)
	if err != nil {
		return nil, err
	}

	switch g.config.Output.Format {
	case config.FormatJSON:
		doc := pageDocument{
			URL:       page.URL,
			Canonical: data.Canonical,
			Service:   page.Service,
			Location:  page.Location,
			Catalog:   catalogInfo{Version: data.CatalogVersion, Fingerprint: data.Fingerprint},
			Bundle:    page.Bundle,
			JSONLD:    data.JSONLD,
		}
		out, err := json.MarshalIndent(doc, "", "  ")
		if err != nil {
			return nil, fmt.Errorf("failed to encode page %s: %w", page.URL, err)
		}
		return append(out, '\n'), nil
	case config.FormatAstro:
		out, err := g.loader.Execute(astroTemplate, data)
		return []byte(out), err
	case config.FormatMarkdown:
		out, err := g.loader.Execute(markdownTemplate, data)
		return []byte(out), err
	default:
		return nil, fmt.Errorf("unsupported output format %q", g.config.Output.Format)
	}
}

// Generate builds and renders one page
func (g *PageGenerator) Generate(svc seo.Service, loc seo.Location) (Page, []byte, error) {
	page, err := g.Build(svc, loc)
	if err != nil {
		return Page{}, nil, err
	}
	out, err := g.Render(page)
	if err != nil {
		return Page{}, nil, err
	}
	return page, out, nil
}

func (g *PageGenerator) pageData(page Page) (PageData, error) {
	catalog := g.engine.Catalog()
	baseURL := g.config.Site.BaseURL

	data := PageData{
		Page:           page,
		SiteName:       g.config.Site.Name,
		CatalogVersion: catalog.Version(),
		Fingerprint:    catalog.ShortFingerprint(),
		JSONLD: []map[string]any{
			seo.ServiceJSONLD(baseURL, g.config.Site.Name, page.Service, page.Location, page.Bundle),
			seo.BreadcrumbJSONLD(baseURL, page.Bundle.Breadcrumbs),
			seo.FAQPageJSONLD(page.Bundle.FAQs),
		},
	}
	if baseURL != "" {
		data.Canonical = SiteURL(baseURL, page.URL)
	}

	fm, err := yaml.Marshal(frontmatter{
		Title:       page.Bundle.Title,
		Description: page.Bundle.Description,
		H1:          page.Bundle.H1,
		Canonical:   data.Canonical,
		Keywords:    page.Bundle.Keywords,
		Service:     page.Service.Slug,
		Location:    page.Location.Slug,
		Catalog:     data.CatalogVersion + "+" + data.Fingerprint,
		Breadcrumbs: page.Bundle.Breadcrumbs,
		JSONLD:      data.JSONLD,
	})
	if err != nil {
		return PageData{}, fmt.Errorf("failed to encode frontmatter for %s: %w", page.URL, err)
	}
	data.Frontmatter = string(fm)
	return data, nil
}

// PagePath returns <outDir>/<location>/<service>.<ext> for an output format
func PagePath(outDir, locationSlug, serviceSlug, format string) (string, error) {
	ext, err := PageExtension(format)
	if err != nil {
		return "", err
	}
	return constants.PageFile(outDir, locationSlug, serviceSlug, ext), nil
}

// WritePage atomically writes rendered page content to path. Readers see
// either the old file or the new one, never a partial write.
func WritePage(path string, content []byte) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create page directory: %w", err)
	}
	if err := renameio.WriteFile(path, content, 0644); err != nil {
		return fmt.Errorf("failed to write page %s: %w", path, err)
	}
	return nil
}
