package audit

import (
	"fmt"
	"sort"
	"unicode/utf8"

	"github.com/agnivade/levenshtein"

	"github.com/yoanbernabeu/localpages/internal/content"
	"github.com/yoanbernabeu/localpages/internal/seo"
)

// minDiversityPages is the smallest matrix the H1 diversity check is
// meaningful for.
const minDiversityPages = 10

// Options holds report thresholds.
type Options struct {
	// MaxVariantShare is the largest share of pages allowed to use the
	// same H1 modifier and pattern
	MaxVariantShare float64
	// DuplicateSimilarity flags intro paragraphs at or above this
	// normalized Levenshtein similarity
	DuplicateSimilarity float64
	// MaxTitleLength flags meta titles longer than this many characters
	MaxTitleLength int
}

// PageStats describes the generated copy of one page.
type PageStats struct {
	Location          string
	Service           string
	Title             string
	TitleLength       int
	DescriptionLength int
	ShortTitle        bool
	Truncated         bool
	TitleTooLong      bool
	H1Variant         string
}

// Duplicate is a pair of pages of the same service whose intro
// paragraphs are nearly identical.
type Duplicate struct {
	Service    string
	Locations  [2]string
	Similarity float64
}

// Report is the outcome of an audit.
type Report struct {
	Options        Options
	Pages          []PageStats
	DistinctH1     int
	TopVariant     string
	TopVariantUses int
	Duplicates     []Duplicate
	Failures       content.RecordErrors
}

// TopVariantShare returns the share of pages using the most common H1 variant.
func (r *Report) TopVariantShare() float64 {
	if len(r.Pages) == 0 {
		return 0
	}
	return float64(r.TopVariantUses) / float64(len(r.Pages))
}

// DiversityChecked reports whether the matrix is large enough for the
// variant share to mean anything.
func (r *Report) DiversityChecked() bool {
	return len(r.Pages) >= minDiversityPages
}

// Problems lists every threshold the generated copy breaks.
func (r *Report) Problems() []string {
	var problems []string
	if r.DiversityChecked() && r.TopVariantShare() > r.Options.MaxVariantShare {
		problems = append(problems, fmt.Sprintf("H1 variant %q is used by %.1f%% of pages (max %.1f%%)",
			r.TopVariant, 100*r.TopVariantShare(), 100*r.Options.MaxVariantShare))
	}
	for _, p := range r.Pages {
		if p.DescriptionLength > seo.DescriptionMaxLength {
			problems = append(problems, fmt.Sprintf("%s/%s: description is %d characters", p.Location, p.Service, p.DescriptionLength))
		}
	}
	for _, f := range r.Failures {
		problems = append(problems, f.Error())
	}
	return problems
}

// Warnings lists findings worth a look that do not fail the audit.
func (r *Report) Warnings() []string {
	var warnings []string
	for _, p := range r.Pages {
		if p.TitleTooLong {
			warnings = append(warnings, fmt.Sprintf("%s/%s: title is %d characters (max %d)", p.Location, p.Service, p.TitleLength, r.Options.MaxTitleLength))
		}
	}
	for _, d := range r.Duplicates {
		warnings = append(warnings, fmt.Sprintf("%s: intro in %s and %s is %.0f%% similar", d.Service, d.Locations[0], d.Locations[1], 100*d.Similarity))
	}
	return warnings
}

// Passed reports whether the audit found no problems.
func (r *Report) Passed() bool {
	return len(r.Problems()) == 0
}

// Run audits the copy the engine generates for every location/service pair.
func Run(engine *seo.Engine, services []seo.Service, locations []seo.Location, opts Options) *Report {
	report := &Report{Options: opts}
	variants := make(map[string]int)
	h1s := make(map[string]bool)
	intros := make(map[string][]intro)

	for _, pair := range content.Matrix(services, locations) {
		svc, loc := pair.Service, pair.Location
		bundle, err := engine.Bundle(svc, loc)
		if err != nil {
			report.Failures = append(report.Failures, content.RecordError{Location: loc.Slug, Service: svc.Slug, Err: err})
			continue
		}

		full, err := engine.FullDescription(svc, loc)
		if err != nil {
			report.Failures = append(report.Failures, content.RecordError{Location: loc.Slug, Service: svc.Slug, Err: err})
			continue
		}

		modifier, pattern := engine.H1Variant(svc, loc)
		variant := fmt.Sprintf("%s #%d", modifier, pattern+1)
		variants[variant]++
		h1s[bundle.H1] = true

		titleLen := seo.Len(bundle.Title)
		descLen := seo.Len(bundle.Description)
		report.Pages = append(report.Pages, PageStats{
			Location:          loc.Slug,
			Service:           svc.Slug,
			Title:             bundle.Title,
			TitleLength:       titleLen,
			DescriptionLength: descLen,
			ShortTitle:        seo.Len(svc.Title)+seo.Len(loc.Town) > seo.TitleShortThreshold,
			Truncated:         seo.Len(full) > seo.DescriptionMaxLength,
			TitleTooLong:      opts.MaxTitleLength > 0 && titleLen > opts.MaxTitleLength,
			H1Variant:         variant,
		})
		intros[svc.Slug] = append(intros[svc.Slug], intro{location: loc.Slug, text: bundle.IntroParagraph})
	}

	report.DistinctH1 = len(h1s)
	report.TopVariant, report.TopVariantUses = topVariant(variants)
	report.Duplicates = nearDuplicates(intros, opts.DuplicateSimilarity)
	return report
}

type intro struct {
	location string
	text     string
}

// topVariant returns the most used variant; ties go to the smallest name.
func topVariant(variants map[string]int) (string, int) {
	var (
		best  string
		count int
	)
	for v, n := range variants {
		if n > count || (n == count && v < best) {
			best, count = v, n
		}
	}
	return best, count
}

// nearDuplicates compares intro paragraphs pairwise within each service.
func nearDuplicates(intros map[string][]intro, threshold float64) []Duplicate {
	if threshold <= 0 {
		return nil
	}

	services := make([]string, 0, len(intros))
	for svc := range intros {
		services = append(services, svc)
	}
	sort.Strings(services)

	var dups []Duplicate
	for _, svc := range services {
		list := intros[svc]
		for i := 0; i < len(list); i++ {
			for j := i + 1; j < len(list); j++ {
				if s := Similarity(list[i].text, list[j].text); s >= threshold {
					dups = append(dups, Duplicate{
						Service:    svc,
						Locations:  [2]string{list[i].location, list[j].location},
						Similarity: s,
					})
				}
			}
		}
	}
	return dups
}

// Similarity returns 1 minus the Levenshtein distance of a and b divided by
// the length of the longer one, in runes.
func Similarity(a, b string) float64 {
	longest := utf8.RuneCountInString(a)
	if n := utf8.RuneCountInString(b); n > longest {
		longest = n
	}
	if longest == 0 {
		return 1
	}
	return 1 - float64(levenshtein.ComputeDistance(a, b))/float64(longest)
}
