package seo

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// CatalogError describes one invalid catalog entry.
type CatalogError struct {
	Field string
	Err   error
}

func (e CatalogError) Error() string {
	return fmt.Sprintf("%s: %v", e.Field, e.Err)
}

func (e CatalogError) Unwrap() error { return e.Err }

// CatalogErrors holds every problem found in a catalog.
type CatalogErrors []CatalogError

func (e CatalogErrors) Error() string {
	msgs := make([]string, 0, len(e))
	for _, err := range e {
		msgs = append(msgs, err.Error())
	}
	return strings.Join(msgs, "; ")
}

// Unwrap exposes the individual errors to errors.Is and errors.As.
func (e CatalogErrors) Unwrap() []error {
	out := make([]error, 0, len(e))
	for _, err := range e {
		out = append(out, err)
	}
	return out
}

var errEmptyEntry = errors.New("entry is empty")

// ValidateCatalog checks that every queried category is non-empty and that
// each template only uses the placeholders its category provides.
func ValidateCatalog(f CatalogFile) CatalogErrors {
	var errs CatalogErrors
	add := func(field string, err error) {
		errs = append(errs, CatalogError{Field: field, Err: err})
	}

	if strings.TrimSpace(f.Version) == "" {
		add("version", errors.New("version is required"))
	}

	values := func(field string, list []string) {
		if len(list) == 0 {
			add(field, ErrEmptyTemplates)
			return
		}
		for i, v := range list {
			if strings.TrimSpace(v) == "" {
				add(fmt.Sprintf("%s[%d]", field, i), errEmptyEntry)
			} else if hasToken(v) {
				add(fmt.Sprintf("%s[%d]", field, i), fmt.Errorf("value %q must not contain placeholders", v))
			}
		}
	}
	templates := func(field string, list []string, allowed []string) {
		if len(list) == 0 {
			add(field, ErrEmptyTemplates)
			return
		}
		for i, t := range list {
			checkTemplate(fmt.Sprintf("%s[%d]", field, i), t, allowed, add)
		}
	}

	values("modifiers", f.Modifiers)
	checkTemplate("title.short", f.Title.Short, entityTokens, add)
	checkTemplate("title.long", f.Title.Long, modifierTokens, add)
	templates("h1", f.H1, modifierTokens)
	templates("descriptions", f.Descriptions, allTokens)
	templates("intros", f.Intros, allTokens)
	templates("callouts", f.Callouts, entityTokens)
	values("context.default", f.Context.Default)

	slugs := make([]string, 0, len(f.Context.Services))
	for slug := range f.Context.Services {
		slugs = append(slugs, slug)
	}
	sort.Strings(slugs)
	for _, slug := range slugs {
		values("context.services."+slug, f.Context.Services[slug])
	}

	if len(f.FAQs) == 0 {
		add("faqs", ErrEmptyTemplates)
	}
	for i, faq := range f.FAQs {
		checkTemplate(fmt.Sprintf("faqs[%d].question", i), faq.Question, entityTokens, add)
		checkTemplate(fmt.Sprintf("faqs[%d].answer", i), faq.Answer, entityTokens, add)
	}

	templates("keywords.fixed", f.Keywords.Fixed, entityTokens)
	checkTemplate("keywords.context", f.Keywords.Context, append(append([]string{}, entityTokens...), TokenContext), add)

	values("breadcrumbs.home", []string{f.Breadcrumbs.Home})
	values("breadcrumbs.areas", []string{f.Breadcrumbs.Areas})
	checkTemplate("breadcrumbs.page", f.Breadcrumbs.Page, entityTokens, add)

	return errs
}

func checkTemplate(field, t string, allowed []string, add func(string, error)) {
	if strings.TrimSpace(t) == "" {
		add(field, errEmptyEntry)
		return
	}
	if err := checkTokens(t, allowed); err != nil {
		add(field, err)
	}
}
