package seo

import (
	"encoding/json"
	"sync"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestBundle_Deterministic(t *testing.T) {
	first := newTestEngine(t)
	second := newTestEngine(t)

	for _, loc := range testLocations {
		for _, svc := range testServices {
			a, err := first.Bundle(svc, loc)
			if err != nil {
				t.Fatalf("Bundle(%s, %s) error = %v", svc.Slug, loc.Slug, err)
			}
			b, err := second.Bundle(svc, loc)
			if err != nil {
				t.Fatalf("Bundle(%s, %s) error = %v", svc.Slug, loc.Slug, err)
			}
			if diff := cmp.Diff(a, b); diff != "" {
				t.Fatalf("Bundle(%s, %s) not deterministic:\n%s", svc.Slug, loc.Slug, diff)
			}
		}
	}
}

func TestBundle_ConcurrentCallsAgree(t *testing.T) {
	e := newTestEngine(t)
	want, err := e.Bundle(lawnCare, avalon)
	if err != nil {
		t.Fatalf("Bundle() error = %v", err)
	}

	var wg sync.WaitGroup
	results := make([]Bundle, 32)
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i], _ = e.Bundle(lawnCare, avalon)
		}(i)
	}
	wg.Wait()

	for i, got := range results {
		if diff := cmp.Diff(want, got); diff != "" {
			t.Errorf("goroutine %d produced a different bundle:\n%s", i, diff)
		}
	}
}

func TestBundle_JSONFieldNames(t *testing.T) {
	e := newTestEngine(t)
	b, err := e.Bundle(lawnCare, avalon)
	if err != nil {
		t.Fatalf("Bundle() error = %v", err)
	}
	data, err := json.Marshal(b)
	if err != nil {
		t.Fatalf("json.Marshal() error = %v", err)
	}
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil {
		t.Fatalf("json.Unmarshal() error = %v", err)
	}
	for _, name := range []string{"title", "description", "h1", "introParagraph", "localCallout", "faqs", "breadcrumbs", "keywords"} {
		if _, ok := fields[name]; !ok {
			t.Errorf("bundle JSON is missing %q", name)
		}
	}
}

func TestBundle_ReorderChangesSomeOutputs(t *testing.T) {
	base := newTestEngine(t)

	f := base.Catalog().File()
	for i, j := 0, len(f.Modifiers)-1; i < j; i, j = i+1, j-1 {
		f.Modifiers[i], f.Modifiers[j] = f.Modifiers[j], f.Modifiers[i]
	}
	reordered, err := NewCatalog(f)
	if err != nil {
		t.Fatalf("NewCatalog() error = %v", err)
	}
	if reordered.Fingerprint() == base.Catalog().Fingerprint() {
		t.Error("reordering modifiers must change the catalog fingerprint")
	}

	other := NewEngine(reordered)
	changed := 0
	for _, loc := range testLocations {
		for _, svc := range testServices {
			a, _ := base.H1(svc, loc)
			b, _ := other.H1(svc, loc)
			if a != b {
				changed++
			}
		}
	}
	if changed == 0 {
		t.Error("expected a reordered modifier list to change some H1s")
	}
}

func TestBundle_MatchesFieldMethods(t *testing.T) {
	e := newTestEngine(t)
	b, err := e.Bundle(lawnCare, avalon)
	if err != nil {
		t.Fatalf("Bundle() error = %v", err)
	}
	title, _ := e.MetaTitle(lawnCare, avalon)
	callout, _ := e.LocalCallout(lawnCare, avalon)
	if b.Title != title || b.LocalCallout != callout {
		t.Errorf("Bundle() fields differ from the per-field methods: %+v", b)
	}
	if len(b.Breadcrumbs) != 4 {
		t.Errorf("len(Breadcrumbs) = %d, want 4", len(b.Breadcrumbs))
	}
}
