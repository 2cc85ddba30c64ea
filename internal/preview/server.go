package preview

import (
	"bytes"
	"context"
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"html/template"
	"net/http"
	"strings"
	"sync/atomic"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/yuin/goldmark"
	"go.uber.org/zap"

	"github.com/yoanbernabeu/localpages/internal/config"
	"github.com/yoanbernabeu/localpages/internal/constants"
	"github.com/yoanbernabeu/localpages/internal/content"
	"github.com/yoanbernabeu/localpages/internal/generator"
	"github.com/yoanbernabeu/localpages/internal/seo"
)

//go:embed templates/*.html
var templatesFS embed.FS

var templates = template.Must(template.New("").Funcs(template.FuncMap{
	"join": func(sep string, items []string) string { return strings.Join(items, sep) },
}).ParseFS(templatesFS, "templates/*.html"))

// Snapshot is the engine and content the server renders from. A snapshot
// is never modified once published.
type Snapshot struct {
	Engine  *seo.Engine
	Content *content.Set
}

// Server serves generated pages for local review.
type Server struct {
	config   *config.ProjectConfig
	logger   *zap.Logger
	snapshot atomic.Pointer[Snapshot]
	markdown goldmark.Markdown
	router   chi.Router
}

// New creates a preview server for the given engine and content.
func New(cfg *config.ProjectConfig, engine *seo.Engine, set *content.Set, logger *zap.Logger) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &Server{
		config:   cfg,
		logger:   logger,
		markdown: goldmark.New(),
	}
	s.snapshot.Store(&Snapshot{Engine: engine, Content: set})
	s.router = s.routes()
	return s
}

// Reload swaps in a new engine and content. Requests in flight keep the
// snapshot they started with.
func (s *Server) Reload(engine *seo.Engine, set *content.Set) {
	s.snapshot.Store(&Snapshot{Engine: engine, Content: set})
	s.logger.Info("preview reloaded",
		zap.String("catalog", engine.Catalog().Version()),
		zap.Int("services", len(set.Services)),
		zap.Int("locations", len(set.Locations)),
	)
}

// Snapshot returns the snapshot currently served.
func (s *Server) Snapshot() *Snapshot {
	return s.snapshot.Load()
}

// Handler returns the HTTP handler of the server.
func (s *Server) Handler() http.Handler {
	return s.router
}

// ListenAndServe serves on addr until ctx is cancelled.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.router,
		ReadHeaderTimeout: constants.PreviewReadHeaderTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), constants.PreviewShutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("failed to shut down preview server: %w", err)
		}
		if err := <-errCh; err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	}
}

func (s *Server) routes() chi.Router {
	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.Recoverer)
	r.Use(s.logRequests)

	r.Get("/", s.handleIndex)
	r.Get("/healthz", s.handleHealth)
	r.Get("/locations/{location}/{service}", s.handlePage)
	r.Get("/api/bundles/{location}/{service}", s.handleBundle)
	return r
}

func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := chimw.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		s.logger.Debug("request",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Int("status", ww.Status()),
			zap.Duration("duration", time.Since(start)),
			zap.String("request_id", chimw.GetReqID(r.Context())),
		)
	})
}

type indexLocation struct {
	Town  string
	Pages []indexPage
}

type indexPage struct {
	URL   string
	Title string
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	snap := s.snapshot.Load()
	catalog := snap.Engine.Catalog()

	data := struct {
		SiteName       string
		CatalogVersion string
		Fingerprint    string
		Pages          []content.Pair
		Locations      []indexLocation
	}{
		SiteName:       s.config.Site.Name,
		CatalogVersion: catalog.Version(),
		Fingerprint:    catalog.ShortFingerprint(),
		Pages:          snap.Content.Pairs(),
	}
	if data.SiteName == "" {
		data.SiteName = s.config.Name
	}

	for _, loc := range snap.Content.Locations {
		entry := indexLocation{Town: loc.Town}
		for _, svc := range snap.Content.Services {
			title, err := snap.Engine.MetaTitle(svc, loc)
			if err != nil {
				title = svc.Title
			}
			entry.Pages = append(entry.Pages, indexPage{URL: seo.PageURL(loc.Slug, svc.Slug), Title: title})
		}
		data.Locations = append(data.Locations, entry)
	}

	s.renderHTML(w, "index.html", data)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	snap := s.snapshot.Load()
	writeJSON(w, http.StatusOK, map[string]any{
		"status":      "ok",
		"catalog":     snap.Engine.Catalog().Version(),
		"fingerprint": snap.Engine.Catalog().Fingerprint(),
		"pages":       len(snap.Content.Services) * len(snap.Content.Locations),
	})
}

func (s *Server) handleBundle(w http.ResponseWriter, r *http.Request) {
	snap := s.snapshot.Load()
	pair, ok := snap.Content.Find(chi.URLParam(r, "location"), chi.URLParam(r, "service"))
	if !ok {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "page not found"})
		return
	}

	bundle, err := snap.Engine.Bundle(pair.Service, pair.Location)
	if err != nil {
		writeJSON(w, http.StatusUnprocessableEntity, map[string]string{"error": err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, bundle)
}

func (s *Server) handlePage(w http.ResponseWriter, r *http.Request) {
	snap := s.snapshot.Load()
	pair, ok := snap.Content.Find(chi.URLParam(r, "location"), chi.URLParam(r, "service"))
	if !ok {
		http.NotFound(w, r)
		return
	}

	cfg := *s.config
	cfg.Output.Format = config.FormatMarkdown
	gen := generator.NewPageGenerator(&cfg, snap.Engine, "preview")

	page, out, err := gen.Generate(pair.Service, pair.Location)
	if err != nil {
		http.Error(w, err.Error(), http.StatusUnprocessableEntity)
		return
	}

	var body bytes.Buffer
	if err := s.markdown.Convert(stripFrontmatter(out), &body); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	baseURL := s.config.Site.BaseURL
	var jsonLD []template.JS
	for _, doc := range []map[string]any{
		seo.ServiceJSONLD(baseURL, s.config.Site.Name, page.Service, page.Location, page.Bundle),
		seo.BreadcrumbJSONLD(baseURL, page.Bundle.Breadcrumbs),
		seo.FAQPageJSONLD(page.Bundle.FAQs),
	} {
		jsonLD = append(jsonLD, template.JS(seo.JSON(doc)))
	}

	catalog := snap.Engine.Catalog()
	data := struct {
		generator.Page
		Canonical      string
		JSONLD         []template.JS
		Body           template.HTML
		CatalogVersion string
		Fingerprint    string
	}{
		Page:           page,
		JSONLD:         jsonLD,
		Body:           template.HTML(body.String()),
		CatalogVersion: catalog.Version(),
		Fingerprint:    catalog.ShortFingerprint(),
	}
	if baseURL != "" {
		data.Canonical = generator.SiteURL(baseURL, page.URL)
	}

	s.renderHTML(w, "page.html", data)
}

func (s *Server) renderHTML(w http.ResponseWriter, name string, data any) {
	var buf bytes.Buffer
	if err := templates.ExecuteTemplate(&buf, name, data); err != nil {
		s.logger.Error("failed to render template", zap.String("template", name), zap.Error(err))
		http.Error(w, "failed to render page", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = w.Write(buf.Bytes())
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// stripFrontmatter drops a leading "---" YAML block.
func stripFrontmatter(page []byte) []byte {
	const fence = "---\n"
	if !bytes.HasPrefix(page, []byte(fence)) {
		return page
	}
	rest := page[len(fence):]
	end := bytes.Index(rest, []byte("\n"+fence))
	if end < 0 {
		return page
	}
	return rest[end+len(fence)+1:]
}
