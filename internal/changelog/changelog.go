package changelog

import (
	"fmt"
	"io"
	"strings"

	"github.com/pkg/diff"

	"github.com/yoanbernabeu/localpages/internal/content"
	"github.com/yoanbernabeu/localpages/internal/seo"
)

// Change is one field of one page whose copy differs between two catalogs.
type Change struct {
	Location string
	Service  string
	Field    string
	Old      string
	New      string
}

// Changelog lists what a catalog edit does to the generated pages.
type Changelog struct {
	OldVersion     string
	NewVersion     string
	OldFingerprint string
	NewFingerprint string
	// Pages is the number of pages compared
	Pages   int
	Changes []Change

	texts []pageText
}

type pageText struct {
	location string
	service  string
	old      string
	new      string
}

type field struct {
	name  string
	value string
}

// Compare regenerates every page with both engines and records each field
// that differs.
func Compare(oldEngine, newEngine *seo.Engine, services []seo.Service, locations []seo.Location) (*Changelog, error) {
	oldCatalog, newCatalog := oldEngine.Catalog(), newEngine.Catalog()
	log := &Changelog{
		OldVersion:     oldCatalog.Version(),
		NewVersion:     newCatalog.Version(),
		OldFingerprint: oldCatalog.Fingerprint(),
		NewFingerprint: newCatalog.Fingerprint(),
	}

	for _, pair := range content.Matrix(services, locations) {
		svc, loc := pair.Service, pair.Location
		before, err := oldEngine.Bundle(svc, loc)
		if err != nil {
			return nil, content.RecordError{Location: loc.Slug, Service: svc.Slug, Err: err}
		}
		after, err := newEngine.Bundle(svc, loc)
		if err != nil {
			return nil, content.RecordError{Location: loc.Slug, Service: svc.Slug, Err: err}
		}
		log.Pages++

		changes := compareFields(fields(before), fields(after))
		if len(changes) == 0 {
			continue
		}
		for _, c := range changes {
			c.Location, c.Service = loc.Slug, svc.Slug
			log.Changes = append(log.Changes, c)
		}
		log.texts = append(log.texts, pageText{
			location: loc.Slug,
			service:  svc.Slug,
			old:      render(fields(before)),
			new:      render(fields(after)),
		})
	}
	return log, nil
}

// ChangedPages returns the number of pages with at least one changed field.
func (c *Changelog) ChangedPages() int {
	return len(c.texts)
}

// Breaking reports whether any page would get different copy.
func (c *Changelog) Breaking() bool {
	return len(c.Changes) > 0
}

// FieldCounts returns how many pages changed per field, in field order.
func (c *Changelog) FieldCounts() []FieldCount {
	var counts []FieldCount
	index := make(map[string]int)
	counted := make(map[string]bool)
	for _, ch := range c.Changes {
		name := fieldGroup(ch.Field)
		key := ch.Location + "/" + ch.Service + "/" + name
		if counted[key] {
			continue
		}
		counted[key] = true
		i, ok := index[name]
		if !ok {
			i = len(counts)
			index[name] = i
			counts = append(counts, FieldCount{Field: name})
		}
		counts[i].Pages++
	}
	return counts
}

// FieldCount is the number of changes to one kind of field.
type FieldCount struct {
	Field string
	Pages int
}

// WriteDiff writes a unified diff of every changed page.
func (c *Changelog) WriteDiff(w io.Writer) error {
	for _, t := range c.texts {
		page := seo.PageURL(t.location, t.service)
		oldName := fmt.Sprintf("%s (catalog %s)", page, c.OldVersion)
		newName := fmt.Sprintf("%s (catalog %s)", page, c.NewVersion)
		if err := diff.Text(oldName, newName, t.old, t.new, w); err != nil {
			return fmt.Errorf("failed to diff %s: %w", page, err)
		}
	}
	return nil
}

// WriteMarkdown writes a changelog entry suitable for a CHANGELOG file.
func (c *Changelog) WriteMarkdown(w io.Writer) error {
	var b strings.Builder
	fmt.Fprintf(&b, "## Catalog %s -> %s\n\n", c.OldVersion, c.NewVersion)
	fmt.Fprintf(&b, "- fingerprint: `%s` -> `%s`\n", short(c.OldFingerprint), short(c.NewFingerprint))
	fmt.Fprintf(&b, "- pages changed: %d of %d\n", c.ChangedPages(), c.Pages)
	for _, fc := range c.FieldCounts() {
		fmt.Fprintf(&b, "- %s: %d\n", fc.Field, fc.Pages)
	}
	if c.Breaking() {
		b.WriteString("\nExisting pages get new copy. Republish them together and expect search engines to re-crawl.\n")
	}
	b.WriteString("\n")
	_, err := io.WriteString(w, b.String())
	return err
}

func fields(b seo.Bundle) []field {
	out := []field{
		{"title", b.Title},
		{"description", b.Description},
		{"h1", b.H1},
		{"intro", b.IntroParagraph},
		{"callout", b.LocalCallout},
	}
	for i, f := range b.FAQs {
		out = append(out,
			field{fmt.Sprintf("faq[%d].question", i), f.Question},
			field{fmt.Sprintf("faq[%d].answer", i), f.Answer},
		)
	}
	for i, crumb := range b.Breadcrumbs {
		out = append(out, field{fmt.Sprintf("breadcrumb[%d]", i), crumb.Name + " <" + crumb.URL + ">"})
	}
	out = append(out, field{"keywords", strings.Join(b.Keywords, ", ")})
	return out
}

// compareFields matches fields by name; a field present on one side only
// is a change from or to the empty string.
func compareFields(before, after []field) []Change {
	old := make(map[string]string, len(before))
	for _, f := range before {
		old[f.name] = f.value
	}

	var changes []Change
	seen := make(map[string]bool, len(after))
	for _, f := range after {
		seen[f.name] = true
		if prev := old[f.name]; prev != f.value {
			changes = append(changes, Change{Field: f.name, Old: prev, New: f.value})
		}
	}
	for _, f := range before {
		if !seen[f.name] {
			changes = append(changes, Change{Field: f.name, Old: f.value})
		}
	}
	return changes
}

func render(fields []field) string {
	var b strings.Builder
	for _, f := range fields {
		b.WriteString(f.name)
		b.WriteString(": ")
		b.WriteString(f.value)
		b.WriteByte('\n')
	}
	return b.String()
}

// fieldGroup folds indexed names, faq[2].answer -> faq.answer.
func fieldGroup(name string) string {
	open := strings.IndexByte(name, '[')
	if open < 0 {
		return name
	}
	end := strings.IndexByte(name[open:], ']')
	if end < 0 {
		return name
	}
	return name[:open] + name[open+end+1:]
}

func short(fp string) string {
	if len(fp) > 12 {
		return fp[:12]
	}
	return fp
}
