package audit

import (
	"fmt"
	"io"

	"github.com/jedib0t/go-pretty/v6/table"
)

// Render writes the report as tables: a summary, then the pages and
// findings when verbose is set.
func (r *Report) Render(w io.Writer, verbose bool) {
	summary := newTable(w)
	summary.AppendHeader(table.Row{"Check", "Value", "Status"})
	summary.AppendRow(table.Row{"Pages", len(r.Pages), ""})
	summary.AppendRow(table.Row{"Distinct H1s", r.DistinctH1, ""})

	diversity := "ok"
	switch {
	case !r.DiversityChecked():
		diversity = "skipped"
	case r.TopVariantShare() > r.Options.MaxVariantShare:
		diversity = "fail"
	}
	summary.AppendRow(table.Row{
		"Top H1 variant",
		fmt.Sprintf("%s (%.1f%%)", r.TopVariant, 100*r.TopVariantShare()),
		diversity,
	})
	summary.AppendRow(table.Row{"Short titles", r.count(func(p PageStats) bool { return p.ShortTitle }), ""})
	summary.AppendRow(table.Row{"Truncated descriptions", r.count(func(p PageStats) bool { return p.Truncated }), ""})
	summary.AppendRow(table.Row{"Titles over limit", r.count(func(p PageStats) bool { return p.TitleTooLong }), status(!r.any(func(p PageStats) bool { return p.TitleTooLong }))})
	summary.AppendRow(table.Row{"Near-duplicate intros", len(r.Duplicates), status(len(r.Duplicates) == 0)})
	summary.AppendRow(table.Row{"Failed pages", len(r.Failures), status(len(r.Failures) == 0)})
	summary.Render()

	if !verbose {
		return
	}

	pages := newTable(w)
	pages.AppendHeader(table.Row{"Location", "Service", "Title", "Title len", "Desc len", "H1 variant"})
	for _, p := range r.Pages {
		pages.AppendRow(table.Row{p.Location, p.Service, p.Title, p.TitleLength, p.DescriptionLength, p.H1Variant})
	}
	pages.Render()

	if len(r.Duplicates) > 0 {
		dups := newTable(w)
		dups.AppendHeader(table.Row{"Service", "Location", "Location", "Similarity"})
		for _, d := range r.Duplicates {
			dups.AppendRow(table.Row{d.Service, d.Locations[0], d.Locations[1], fmt.Sprintf("%.2f", d.Similarity)})
		}
		dups.Render()
	}
}

func newTable(w io.Writer) table.Writer {
	t := table.NewWriter()
	t.SetStyle(table.StyleRounded)
	t.SetOutputMirror(w)
	return t
}

func status(ok bool) string {
	if ok {
		return "ok"
	}
	return "warn"
}

func (r *Report) count(match func(PageStats) bool) int {
	n := 0
	for _, p := range r.Pages {
		if match(p) {
			n++
		}
	}
	return n
}

func (r *Report) any(match func(PageStats) bool) bool {
	return r.count(match) > 0
}
