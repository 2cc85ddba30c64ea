package cmd

import (
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/yoanbernabeu/localpages/internal/config"
	"github.com/yoanbernabeu/localpages/internal/content"
	"github.com/yoanbernabeu/localpages/internal/seo"
)

// project is a loaded localpages.yaml with its catalog
type project struct {
	config *config.ProjectConfig
	path   string
	engine *seo.Engine
}

// loadProject loads and validates the project config, then the catalog it
// names.
func loadProject() (*project, error) {
	p, err := loadProjectConfigOnly()
	if err != nil {
		return nil, err
	}

	engine, err := p.loadEngine()
	if err != nil {
		return nil, err
	}
	p.engine = engine

	logger.Debug("project loaded",
		zap.String("config", p.path),
		zap.String("catalog", engine.Catalog().Version()),
		zap.String("fingerprint", engine.Catalog().ShortFingerprint()))

	return p, nil
}

// loadProjectConfigOnly loads and validates the project config without
// reading the catalog. Without --config the nearest localpages.yaml up the
// tree is used.
func loadProjectConfigOnly() (*project, error) {
	path := GetConfigFile()
	if path == "" {
		found, err := config.FindProjectConfig()
		if err != nil {
			path = config.ProjectConfigFile
		} else {
			path = found
		}
	}

	cfg, err := config.LoadProjectConfig(path)
	if err != nil {
		return nil, err
	}
	if errors := config.ValidateProjectConfig(cfg); errors.HasErrors() {
		return nil, fmt.Errorf("configuration validation failed: %w", errors)
	}

	return &project{config: cfg, path: path}, nil
}

// resolve returns a config-relative path as seen from the working directory
func (p *project) resolve(rel string) string {
	return config.ResolvePath(p.path, rel)
}

func (p *project) catalogPath() string {
	return p.resolve(p.config.Catalog)
}

// loadEngine reads the configured catalog, or the built-in one
func (p *project) loadEngine() (*seo.Engine, error) {
	catalog, err := seo.LoadCatalog(p.catalogPath())
	if err != nil {
		return nil, err
	}
	return seo.NewEngine(catalog), nil
}

// loadContent reads services and locations
func (p *project) loadContent() (*content.Set, error) {
	return content.Load(
		p.resolve(p.config.Content.Services),
		p.resolve(p.config.Content.Locations),
		logger,
	)
}

// warnRejected reports the records that failed validation
func warnRejected(set *content.Set) {
	for _, rejected := range set.Rejected {
		PrintWarning("Skipping %v", rejected)
	}
}

// watchedFiles returns the files whose edits change generated pages
func (p *project) watchedFiles() []string {
	files := []string{
		p.resolve(p.config.Content.Services),
		p.resolve(p.config.Content.Locations),
	}
	if p.config.Catalog != "" {
		files = append(files, p.catalogPath())
	}
	return files
}

// splitSlugs flattens repeated and comma-separated flag values
func splitSlugs(values []string) []string {
	var slugs []string
	for _, v := range values {
		for _, s := range strings.Split(v, ",") {
			if s = strings.TrimSpace(s); s != "" {
				slugs = append(slugs, s)
			}
		}
	}
	return slugs
}
