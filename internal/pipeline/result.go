package pipeline

import (
	"sort"

	"github.com/yoanbernabeu/localpages/internal/content"
	"github.com/yoanbernabeu/localpages/internal/generator"
)

// PageResult is one generated page.
type PageResult struct {
	Page    generator.Page
	Digest  string
	Size    int
	Changed bool

	content []byte
}

// Content returns the rendered page.
func (p PageResult) Content() []byte {
	return p.content
}

// Result summarizes a build.
type Result struct {
	RunID          string
	CatalogVersion string
	Fingerprint    string
	// Pages is sorted by output path
	Pages []PageResult
	// Failures holds rejected records and pages that failed to generate
	Failures content.RecordErrors
	Written  int
	Changed  int
	Sitemap  string
	// PreviousFingerprint is the catalog fingerprint of the last recorded
	// run, empty when there is none
	PreviousFingerprint string
}

// CatalogChanged reports whether the catalog differs from the one used by
// the previous recorded run. Every page may have new copy when it does.
func (r *Result) CatalogChanged() bool {
	return r.PreviousFingerprint != "" && r.PreviousFingerprint != r.Fingerprint
}

// URLs returns the site paths of the generated pages.
func (r *Result) URLs() []string {
	urls := make([]string, 0, len(r.Pages))
	for _, p := range r.Pages {
		urls = append(urls, p.Page.URL)
	}
	return urls
}

func sortResults(pages []PageResult, failures content.RecordErrors) {
	sort.Slice(pages, func(i, j int) bool {
		return pages[i].Page.Path < pages[j].Page.Path
	})
	sort.SliceStable(failures, func(i, j int) bool {
		if failures[i].Location != failures[j].Location {
			return failures[i].Location < failures[j].Location
		}
		return failures[i].Service < failures[j].Service
	})
}
