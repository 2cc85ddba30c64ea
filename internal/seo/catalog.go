package seo

import (
	_ "embed"
	"encoding/hex"
	"fmt"
	"os"
	"sort"

	"golang.org/x/crypto/blake2b"
	"gopkg.in/yaml.v3"
)

//go:embed catalogs/default.yaml
var defaultCatalogYAML []byte

// CatalogFile is the on-disk form of a template catalog.
type CatalogFile struct {
	Version      string          `yaml:"version"`
	Modifiers    []string        `yaml:"modifiers"`
	Title        TitlePatterns   `yaml:"title"`
	H1           []string        `yaml:"h1"`
	Descriptions []string        `yaml:"descriptions"`
	Intros       []string        `yaml:"intros"`
	Callouts     []string        `yaml:"callouts"`
	Context      ContextLists    `yaml:"context"`
	FAQs         []FAQ           `yaml:"faqs"`
	Keywords     KeywordPatterns `yaml:"keywords"`
	Breadcrumbs  BreadcrumbNames `yaml:"breadcrumbs"`
}

// TitlePatterns holds the two meta title forms.
type TitlePatterns struct {
	Short string `yaml:"short"`
	Long  string `yaml:"long"`
}

// ContextLists holds adjective lists keyed by service slug.
type ContextLists struct {
	Default  []string            `yaml:"default"`
	Services map[string][]string `yaml:"services,omitempty"`
}

// KeywordPatterns holds the fixed keyword patterns and the per-context one.
type KeywordPatterns struct {
	Fixed   []string `yaml:"fixed"`
	Context string   `yaml:"context"`
}

// BreadcrumbNames holds the labels of the breadcrumb trail.
type BreadcrumbNames struct {
	Home  string `yaml:"home"`
	Areas string `yaml:"areas"`
	Page  string `yaml:"page"`
}

// Catalog is a validated, immutable template catalog. It is safe for
// concurrent use; there is no way to modify it after NewCatalog returns.
type Catalog struct {
	version      string
	fingerprint  string
	modifiers    []string
	titleShort   string
	titleLong    string
	h1           []string
	descriptions []string
	intros       []string
	callouts     []string
	ctxDefault   []string
	ctxServices  map[string][]string
	faqs         []FAQ
	keywords     []string
	keywordCtx   string
	crumbHome    string
	crumbAreas   string
	crumbPage    string
}

// NewCatalog validates f and returns an immutable copy of it.
func NewCatalog(f CatalogFile) (*Catalog, error) {
	if errs := ValidateCatalog(f); len(errs) > 0 {
		return nil, fmt.Errorf("invalid catalog %q: %w", f.Version, errs)
	}

	fp, err := fingerprint(f)
	if err != nil {
		return nil, err
	}

	services := make(map[string][]string, len(f.Context.Services))
	for slug, list := range f.Context.Services {
		services[slug] = clone(list)
	}

	return &Catalog{
		version:      f.Version,
		fingerprint:  fp,
		modifiers:    clone(f.Modifiers),
		titleShort:   f.Title.Short,
		titleLong:    f.Title.Long,
		h1:           clone(f.H1),
		descriptions: clone(f.Descriptions),
		intros:       clone(f.Intros),
		callouts:     clone(f.Callouts),
		ctxDefault:   clone(f.Context.Default),
		ctxServices:  services,
		faqs:         append([]FAQ(nil), f.FAQs...),
		keywords:     clone(f.Keywords.Fixed),
		keywordCtx:   f.Keywords.Context,
		crumbHome:    f.Breadcrumbs.Home,
		crumbAreas:   f.Breadcrumbs.Areas,
		crumbPage:    f.Breadcrumbs.Page,
	}, nil
}

// ParseCatalog decodes and validates a YAML catalog.
func ParseCatalog(data []byte) (*Catalog, error) {
	var f CatalogFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("failed to parse catalog: %w", err)
	}
	return NewCatalog(f)
}

// LoadCatalog reads a catalog file. An empty path returns the embedded default.
func LoadCatalog(path string) (*Catalog, error) {
	if path == "" {
		return DefaultCatalog()
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read catalog: %w", err)
	}
	return ParseCatalog(data)
}

// DefaultCatalog returns the catalog compiled into the binary.
func DefaultCatalog() (*Catalog, error) {
	return ParseCatalog(defaultCatalogYAML)
}

// DefaultCatalogYAML returns a copy of the embedded catalog source.
func DefaultCatalogYAML() []byte {
	return append([]byte(nil), defaultCatalogYAML...)
}

// Version is the version string declared by the catalog.
func (c *Catalog) Version() string { return c.version }

// Fingerprint is a digest of the catalog content. Any edit, including a
// reorder, changes it.
func (c *Catalog) Fingerprint() string { return c.fingerprint }

// ContextFor returns the adjective list for a service slug, or the default
// list when the slug has none.
func (c *Catalog) ContextFor(serviceSlug string) []string {
	if list, ok := c.ctxServices[serviceSlug]; ok && len(list) > 0 {
		return clone(list)
	}
	return clone(c.ctxDefault)
}

// Modifiers returns a copy of the modifier list.
func (c *Catalog) Modifiers() []string { return clone(c.modifiers) }

// H1Patterns returns a copy of the H1 pattern list.
func (c *Catalog) H1Patterns() []string { return clone(c.h1) }

// File converts the catalog back to its on-disk form.
func (c *Catalog) File() CatalogFile {
	services := make(map[string][]string, len(c.ctxServices))
	for slug, list := range c.ctxServices {
		services[slug] = clone(list)
	}
	return CatalogFile{
		Version:      c.version,
		Modifiers:    clone(c.modifiers),
		Title:        TitlePatterns{Short: c.titleShort, Long: c.titleLong},
		H1:           clone(c.h1),
		Descriptions: clone(c.descriptions),
		Intros:       clone(c.intros),
		Callouts:     clone(c.callouts),
		Context:      ContextLists{Default: clone(c.ctxDefault), Services: services},
		FAQs:         append([]FAQ(nil), c.faqs...),
		Keywords:     KeywordPatterns{Fixed: clone(c.keywords), Context: c.keywordCtx},
		Breadcrumbs:  BreadcrumbNames{Home: c.crumbHome, Areas: c.crumbAreas, Page: c.crumbPage},
	}
}

// fingerprint hashes the canonical YAML encoding of f. yaml.v3 emits map
// keys sorted, so the digest depends on content and list order only.
func fingerprint(f CatalogFile) (string, error) {
	data, err := yaml.Marshal(f)
	if err != nil {
		return "", fmt.Errorf("failed to encode catalog: %w", err)
	}
	sum := blake2b.Sum256(data)
	return hex.EncodeToString(sum[:]), nil
}

// ContextSlugs returns the service slugs with a curated adjective list.
func (c *Catalog) ContextSlugs() []string {
	slugs := make([]string, 0, len(c.ctxServices))
	for slug := range c.ctxServices {
		slugs = append(slugs, slug)
	}
	sort.Strings(slugs)
	return slugs
}

func clone(s []string) []string {
	return append([]string(nil), s...)
}

// ShortFingerprint returns the first 12 hex characters of the fingerprint.
func (c *Catalog) ShortFingerprint() string {
	return c.fingerprint[:12]
}
