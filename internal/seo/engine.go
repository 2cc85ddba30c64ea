package seo

import (
	"net/url"
)

// Length limits applied by the engine, measured in UTF-16 code units so the
// numbers match what search engines and browsers count.
const (
	// TitleShortThreshold is the combined service title + town length above
	// which the modifier-free title form is used.
	TitleShortThreshold = 30
	// DescriptionMaxLength is the longest meta description emitted.
	DescriptionMaxLength = 160
	// DescriptionTruncateAt is where an over-long description is cut before
	// the ellipsis is appended.
	DescriptionTruncateAt = DescriptionMaxLength - len(ellipsis)

	ellipsis = "..."
)

// Seed categories. Changing one of these strings regenerates every page.
const (
	CategoryTitle         = "title"
	CategoryDescModifier  = "desc-modifier"
	CategoryDescContext   = "desc-context"
	CategoryDescription   = "desc"
	CategoryH1Modifier    = "h1-modifier"
	CategoryH1            = "h1"
	CategoryIntroModifier = "intro-modifier"
	CategoryIntroContext  = "intro-context"
	CategoryIntro         = "intro"
	CategoryCallout       = "callout"
)

// Engine generates page copy from a catalog. It holds no mutable state and
// is safe for concurrent use.
type Engine struct {
	catalog *Catalog
}

// NewEngine returns an engine bound to catalog.
func NewEngine(catalog *Catalog) *Engine {
	return &Engine{catalog: catalog}
}

// Catalog returns the catalog the engine was built with.
func (e *Engine) Catalog() *Catalog {
	return e.catalog
}

// MetaTitle returns the page title. Long service/town combinations drop the
// modifier rather than being cut mid-word.
func (e *Engine) MetaTitle(svc Service, loc Location) (string, error) {
	if err := validatePair(svc, loc); err != nil {
		return "", err
	}
	v := entityVars(svc, loc)
	if Len(svc.Title)+Len(loc.Town) > TitleShortThreshold {
		return substitute(e.catalog.titleShort, v), nil
	}
	modifier := SelectTemplate(e.catalog.modifiers, seed(svc, loc, CategoryTitle))
	return substitute(e.catalog.titleLong, v.withModifier(modifier)), nil
}

// MetaDescription returns the meta description, truncated to
// DescriptionMaxLength after substitution.
func (e *Engine) MetaDescription(svc Service, loc Location) (string, error) {
	desc, err := e.FullDescription(svc, loc)
	if err != nil {
		return "", err
	}
	return Truncate(desc, DescriptionMaxLength), nil
}

// FullDescription returns the meta description before truncation.
func (e *Engine) FullDescription(svc Service, loc Location) (string, error) {
	if err := validatePair(svc, loc); err != nil {
		return "", err
	}
	modifier := SelectTemplate(e.catalog.modifiers, seed(svc, loc, CategoryDescModifier))
	adjective := SelectTemplate(e.catalog.ContextFor(svc.Slug), seed(svc, loc, CategoryDescContext))
	pattern := SelectTemplate(e.catalog.descriptions, seed(svc, loc, CategoryDescription))

	return substitute(pattern, entityVars(svc, loc).withModifier(modifier).with(TokenContext, adjective)), nil
}

// H1 returns the page heading.
func (e *Engine) H1(svc Service, loc Location) (string, error) {
	if err := validatePair(svc, loc); err != nil {
		return "", err
	}
	modifier := SelectTemplate(e.catalog.modifiers, seed(svc, loc, CategoryH1Modifier))
	pattern := SelectTemplate(e.catalog.h1, seed(svc, loc, CategoryH1))
	return substitute(pattern, entityVars(svc, loc).withModifier(modifier)), nil
}

// H1Variant reports which modifier and pattern index the H1 of a page uses.
func (e *Engine) H1Variant(svc Service, loc Location) (modifier string, pattern int) {
	modifier = SelectTemplate(e.catalog.modifiers, seed(svc, loc, CategoryH1Modifier))
	pattern = Index(seed(svc, loc, CategoryH1), len(e.catalog.h1))
	return modifier, pattern
}

// IntroParagraph returns the opening paragraph.
func (e *Engine) IntroParagraph(svc Service, loc Location) (string, error) {
	if err := validatePair(svc, loc); err != nil {
		return "", err
	}
	modifier := SelectTemplate(e.catalog.modifiers, seed(svc, loc, CategoryIntroModifier))
	adjective := SelectTemplate(e.catalog.ContextFor(svc.Slug), seed(svc, loc, CategoryIntroContext))
	pattern := SelectTemplate(e.catalog.intros, seed(svc, loc, CategoryIntro))
	return substitute(pattern, entityVars(svc, loc).withModifier(modifier).with(TokenContext, adjective)), nil
}

// LocalCallout returns a one-sentence local call-out.
func (e *Engine) LocalCallout(svc Service, loc Location) (string, error) {
	if err := validatePair(svc, loc); err != nil {
		return "", err
	}
	pattern := SelectTemplate(e.catalog.callouts, seed(svc, loc, CategoryCallout))
	return substitute(pattern, entityVars(svc, loc)), nil
}

// FAQs returns the fixed question list for the page. No selection happens:
// every page gets every question.
func (e *Engine) FAQs(svc Service, loc Location) ([]FAQ, error) {
	if err := validatePair(svc, loc); err != nil {
		return nil, err
	}
	v := entityVars(svc, loc)
	faqs := make([]FAQ, 0, len(e.catalog.faqs))
	for _, f := range e.catalog.faqs {
		faqs = append(faqs, FAQ{
			Question: substitute(f.Question, v),
			Answer:   substitute(f.Answer, v),
		})
	}
	return faqs, nil
}

// Keywords returns the fixed keyword patterns followed by one keyword per
// context adjective of the service.
func (e *Engine) Keywords(svc Service, loc Location) ([]string, error) {
	if err := validatePair(svc, loc); err != nil {
		return nil, err
	}
	v := entityVars(svc, loc)
	contexts := e.catalog.ContextFor(svc.Slug)
	keywords := make([]string, 0, len(e.catalog.keywords)+len(contexts))
	for _, k := range e.catalog.keywords {
		keywords = append(keywords, substitute(k, v))
	}
	for _, c := range contexts {
		keywords = append(keywords, substitute(e.catalog.keywordCtx, v.with(TokenContext, c)))
	}
	return keywords, nil
}

// Breadcrumbs returns the four-level trail Home > Service Areas > town > page.
func (e *Engine) Breadcrumbs(svc Service, loc Location) ([]Breadcrumb, error) {
	if err := validatePair(svc, loc); err != nil {
		return nil, err
	}
	locURL := LocationURL(loc.Slug)
	return []Breadcrumb{
		{Name: e.catalog.crumbHome, URL: "/"},
		{Name: e.catalog.crumbAreas, URL: "/locations"},
		{Name: loc.Town, URL: locURL},
		{Name: substitute(e.catalog.crumbPage, entityVars(svc, loc)), URL: PageURL(loc.Slug, svc.Slug)},
	}, nil
}

// LocationURL returns the site path of a location hub page.
func LocationURL(locationSlug string) string {
	return "/locations/" + url.PathEscape(locationSlug)
}

// PageURL returns the site path of a location/service page.
func PageURL(locationSlug, serviceSlug string) string {
	return LocationURL(locationSlug) + "/" + url.PathEscape(serviceSlug)
}

// Len returns the length of s in UTF-16 code units.
func Len(s string) int {
	n := 0
	for _, r := range s {
		n += utf16RuneLen(r)
	}
	return n
}

// Truncate shortens s to at most maxLen UTF-16 units, ending it with "..." when
// it had to be cut. It only cuts on rune boundaries.
func Truncate(s string, maxLen int) string {
	if Len(s) <= maxLen {
		return s
	}
	cut := maxLen - len(ellipsis)
	n := 0
	for i, r := range s {
		w := utf16RuneLen(r)
		if n+w > cut {
			return s[:i] + ellipsis
		}
		n += w
	}
	return s
}

// utf16RuneLen mirrors unicode/utf16.RuneLen (Go 1.23+) for older toolchains:
// it returns the number of UTF-16 units needed to encode r, or -1 if r is not
// a valid value to encode.
func utf16RuneLen(r rune) int {
	switch {
	case 0 <= r && r < 0xd800, 0xe000 <= r && r < 0x10000:
		return 1
	case 0x10000 <= r && r <= 0x10ffff:
		return 2
	default:
		return -1
	}
}
