package pipeline

import (
	"context"
	"fmt"
	"os"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/yoanbernabeu/localpages/internal/config"
	"github.com/yoanbernabeu/localpages/internal/content"
	"github.com/yoanbernabeu/localpages/internal/generator"
	"github.com/yoanbernabeu/localpages/internal/ledger"
	"github.com/yoanbernabeu/localpages/internal/seo"
)

// Orchestrator runs a build: it generates every location/service page,
// writes it, and records the run in the ledger.
type Orchestrator struct {
	config     *config.ProjectConfig
	configPath string
	engine     *seo.Engine
	logger     *zap.Logger

	workers   int
	failFast  bool
	dryRun    bool
	locations map[string]bool
	services  map[string]bool

	phase     Phase
	onMessage func(string)
}

// NewOrchestrator creates a new build orchestrator. configPath locates the
// project root that relative paths in cfg are resolved against.
func NewOrchestrator(cfg *config.ProjectConfig, configPath string, engine *seo.Engine, logger *zap.Logger) (*Orchestrator, error) {
	if errs := config.ValidateProjectConfig(cfg); errs.HasErrors() {
		return nil, fmt.Errorf("invalid configuration: %w", errs)
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Orchestrator{
		config:     cfg,
		configPath: configPath,
		engine:     engine,
		logger:     logger,
		workers:    cfg.Build.Workers,
	}, nil
}

// SetWorkers overrides the configured number of generation workers
func (o *Orchestrator) SetWorkers(n int) {
	if n > 0 {
		o.workers = n
	}
}

// SetFailFast makes the first page failure abort the build
func (o *Orchestrator) SetFailFast(failFast bool) {
	o.failFast = failFast
}

// SetDryRun renders pages without writing files or recording the run
func (o *Orchestrator) SetDryRun(dryRun bool) {
	o.dryRun = dryRun
}

// Only restricts the build to the given location and service slugs. An
// empty list keeps every record of that kind.
func (o *Orchestrator) Only(locations, services []string) {
	o.locations = toSet(locations)
	o.services = toSet(services)
}

// OnMessage sets a callback for status messages
func (o *Orchestrator) OnMessage(fn func(string)) {
	o.onMessage = fn
}

// Phase returns the phase the build reached.
func (o *Orchestrator) Phase() Phase {
	return o.phase
}

func (o *Orchestrator) message(format string, args ...interface{}) {
	if o.onMessage != nil {
		o.onMessage(fmt.Sprintf(format, args...))
	}
}

func (o *Orchestrator) setPhase(p Phase) {
	o.phase = p
	o.logger.Debug("build phase", zap.Stringer("phase", p))
}

func (o *Orchestrator) fail(err error) error {
	return &PhaseError{Phase: o.phase, Err: err}
}

// Run loads the configured content files and builds every page.
func (o *Orchestrator) Run(ctx context.Context) (*Result, error) {
	// Step 1: Load content
	o.setPhase(PhaseLoadContent)
	o.message("Loading content...")
	set, err := content.Load(
		config.ResolvePath(o.configPath, o.config.Content.Services),
		config.ResolvePath(o.configPath, o.config.Content.Locations),
		o.logger,
	)
	if err != nil {
		return nil, o.fail(err)
	}
	return o.Build(ctx, set)
}

// Build generates, writes and records the pages of set.
func (o *Orchestrator) Build(ctx context.Context, set *content.Set) (*Result, error) {
	catalog := o.engine.Catalog()
	result := &Result{
		CatalogVersion: catalog.Version(),
		Fingerprint:    catalog.Fingerprint(),
		Failures:       append(content.RecordErrors(nil), set.Rejected...),
	}

	// Step 2: Validate
	o.setPhase(PhaseValidate)
	pairs := o.filter(set.Pairs())
	if len(pairs) == 0 {
		return nil, o.fail(fmt.Errorf("no pages to generate (%d services, %d locations)", len(set.Services), len(set.Locations)))
	}
	if o.failFast && len(result.Failures) > 0 {
		return nil, o.fail(result.Failures[0])
	}
	for _, rejected := range set.Rejected {
		o.logger.Warn("record rejected", zap.Error(rejected))
	}

	// Step 3: Generate
	o.setPhase(PhaseGenerate)
	o.message("Generating %d pages with %d workers...", len(pairs), o.workers)
	outDir := config.ResolvePath(o.configPath, o.config.Output.Dir)
	pages, failures, err := o.generate(ctx, generator.NewPageGenerator(o.config, o.engine, outDir), pairs)
	if err != nil {
		return nil, o.fail(err)
	}
	result.Failures = append(result.Failures, failures...)

	// Step 4: Compare with the ledger and write
	o.setPhase(PhaseWrite)
	var store *ledger.Store
	ledgerPath := config.ResolvePath(o.configPath, o.config.Ledger.Path)
	if o.config.LedgerEnabled() && (!o.dryRun || fileExists(ledgerPath)) {
		store, err = ledger.Open(ledgerPath)
		if err != nil {
			return nil, o.fail(err)
		}
		defer store.Close()

		last, err := store.LastRun(ctx)
		if err != nil {
			return nil, o.fail(err)
		}
		if last != nil {
			result.PreviousFingerprint = last.Fingerprint
		}
	}
	if err := o.markChanged(ctx, store, pages); err != nil {
		return nil, o.fail(err)
	}
	for _, p := range pages {
		if p.Changed {
			result.Changed++
		}
	}
	sortResults(pages, result.Failures)
	result.Pages = pages
	if result.CatalogChanged() {
		o.logger.Warn("catalog changed since last run",
			zap.String("previous", result.PreviousFingerprint),
			zap.String("current", result.Fingerprint),
		)
		o.message("Catalog changed since the last build: %d of %d pages have new copy", result.Changed, len(pages))
	}

	if !o.dryRun {
		o.message("Writing pages...")
		written, err := o.write(ctx, pages)
		if err != nil {
			return nil, o.fail(err)
		}
		result.Written = written
	}

	// Step 5: Sitemap
	if o.config.Build.Sitemap && !o.dryRun {
		o.setPhase(PhaseSitemap)
		if o.partial() {
			o.message("Skipping sitemap for a partial build")
		} else {
			result.Sitemap = config.ResolvePath(o.configPath, o.config.Build.SitemapPath)
			o.message("Writing sitemap...")
			if err := generator.WriteSitemap(result.Sitemap, o.config.Site.BaseURL, result.URLs()); err != nil {
				return nil, o.fail(err)
			}
		}
	}

	// Step 6: Record the run
	if store != nil && !o.dryRun {
		o.setPhase(PhaseLedger)
		records := make([]ledger.PageRecord, 0, len(pages))
		for _, p := range pages {
			records = append(records, ledger.PageRecord{
				Location: p.Page.Location.Slug,
				Service:  p.Page.Service.Slug,
				Digest:   p.Digest,
			})
		}
		run, err := store.Record(ctx, ledger.Run{
			CatalogVersion: result.CatalogVersion,
			Fingerprint:    result.Fingerprint,
			Pages:          len(pages),
			Failures:       len(result.Failures),
		}, records)
		if err != nil {
			return nil, o.fail(err)
		}
		result.RunID = run.ID
	}

	o.setPhase(PhaseDone)
	o.logger.Info("build finished",
		zap.Int("pages", len(pages)),
		zap.Int("changed", result.Changed),
		zap.Int("written", result.Written),
		zap.Int("failures", len(result.Failures)),
		zap.String("catalog", result.CatalogVersion),
	)
	return result, nil
}

// generate renders pairs concurrently. A page that fails becomes a
// RecordError unless fail-fast is set; cancelling ctx stops the batch.
func (o *Orchestrator) generate(ctx context.Context, gen *generator.PageGenerator, pairs []content.Pair) ([]PageResult, content.RecordErrors, error) {
	results := make([]*PageResult, len(pairs))
	errs := make([]*content.RecordError, len(pairs))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(o.workers)
	for i, pair := range pairs {
		i, pair := i, pair
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			page, out, err := gen.Generate(pair.Service, pair.Location)
			if err != nil {
				recErr := content.RecordError{Location: pair.Location.Slug, Service: pair.Service.Slug, Err: err}
				if o.failFast {
					return recErr
				}
				o.logger.Warn("page failed", zap.Error(recErr))
				errs[i] = &recErr
				return nil
			}
			results[i] = &PageResult{
				Page:    page,
				Digest:  ledger.Digest(out),
				Size:    len(out),
				content: out,
			}
			o.logger.Debug("page generated", zap.String("url", page.URL), zap.Int("bytes", len(out)))
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, nil, err
	}

	pages := make([]PageResult, 0, len(pairs))
	var failures content.RecordErrors
	for i := range pairs {
		if results[i] != nil {
			pages = append(pages, *results[i])
		}
		if errs[i] != nil {
			failures = append(failures, *errs[i])
		}
	}
	return pages, failures, nil
}

// markChanged flags pages whose content differs from the last run or from
// the file on disk, so hand edits to generated files are overwritten.
func (o *Orchestrator) markChanged(ctx context.Context, store *ledger.Store, pages []PageResult) error {
	for i := range pages {
		pages[i].Changed = !onDisk(pages[i])
	}
	if store == nil {
		return nil
	}

	records := make([]ledger.PageRecord, 0, len(pages))
	for _, p := range pages {
		records = append(records, ledger.PageRecord{Location: p.Page.Location.Slug, Service: p.Page.Service.Slug, Digest: p.Digest})
	}
	changed, err := store.Changed(ctx, records)
	if err != nil {
		return err
	}
	keys := make(map[string]bool, len(changed))
	for _, c := range changed {
		keys[c.Key()] = true
	}
	for i := range pages {
		if keys[pages[i].Page.Location.Slug+"/"+pages[i].Page.Service.Slug] {
			pages[i].Changed = true
		}
	}
	return nil
}

// onDisk reports whether the page file already holds exactly the rendered page.
func onDisk(p PageResult) bool {
	existing, err := os.ReadFile(p.Page.Path)
	return err == nil && ledger.Digest(existing) == p.Digest
}

// write stores each changed or missing page on disk.
func (o *Orchestrator) write(ctx context.Context, pages []PageResult) (int, error) {
	written := make([]bool, len(pages))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(o.workers)
	for i, p := range pages {
		if !p.Changed {
			continue
		}
		i, p := i, p
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			if err := generator.WritePage(p.Page.Path, p.content); err != nil {
				return err
			}
			written[i] = true
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return 0, err
	}

	n := 0
	for _, w := range written {
		if w {
			n++
		}
	}
	return n, nil
}

func (o *Orchestrator) filter(pairs []content.Pair) []content.Pair {
	if !o.partial() {
		return pairs
	}
	out := make([]content.Pair, 0, len(pairs))
	for _, p := range pairs {
		if len(o.locations) > 0 && !o.locations[p.Location.Slug] {
			continue
		}
		if len(o.services) > 0 && !o.services[p.Service.Slug] {
			continue
		}
		out = append(out, p)
	}
	return out
}

func (o *Orchestrator) partial() bool {
	return len(o.locations) > 0 || len(o.services) > 0
}

func toSet(items []string) map[string]bool {
	if len(items) == 0 {
		return nil
	}
	set := make(map[string]bool, len(items))
	for _, item := range items {
		set[item] = true
	}
	return set
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
