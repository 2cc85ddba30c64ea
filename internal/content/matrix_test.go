package content

import (
	"testing"

	"github.com/yoanbernabeu/localpages/internal/seo"
)

func TestMatrix(t *testing.T) {
	services := []seo.Service{{Slug: "lawn-care"}, {Slug: "irrigation"}}
	locations := []seo.Location{{Slug: "avalon"}, {Slug: "woodbine"}, {Slug: "dennis"}}

	pairs := Matrix(services, locations)
	if len(pairs) != 6 {
		t.Fatalf("Matrix() returned %d pairs, want 6", len(pairs))
	}

	want := []string{
		"avalon/lawn-care", "avalon/irrigation",
		"woodbine/lawn-care", "woodbine/irrigation",
		"dennis/lawn-care", "dennis/irrigation",
	}
	for i, p := range pairs {
		if got := p.Location.Slug + "/" + p.Service.Slug; got != want[i] {
			t.Errorf("pairs[%d] = %q, want %q", i, got, want[i])
		}
	}
}

func TestSet_Find(t *testing.T) {
	set := &Set{
		Services:  []seo.Service{{Slug: "lawn-care", Title: "Lawn Care"}},
		Locations: []seo.Location{{Slug: "avalon", Town: "Avalon"}},
	}

	tests := []struct {
		name     string
		location string
		service  string
		want     bool
	}{
		{"both known", "avalon", "lawn-care", true},
		{"unknown location", "woodbine", "lawn-care", false},
		{"unknown service", "avalon", "irrigation", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, ok := set.Find(tt.location, tt.service)
			if ok != tt.want {
				t.Fatalf("Find(%q, %q) ok = %v, want %v", tt.location, tt.service, ok, tt.want)
			}
			if ok && (p.Location.Town != "Avalon" || p.Service.Title != "Lawn Care") {
				t.Errorf("Find() = %+v", p)
			}
		})
	}
}
