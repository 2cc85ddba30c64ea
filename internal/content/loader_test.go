package content

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/yoanbernabeu/localpages/internal/seo"
)

func writeFile(t *testing.T, dir, name, data string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(data), 0644); err != nil {
		t.Fatalf("failed to write %s: %v", name, err)
	}
	return path
}

func TestLoadServices(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "services.yaml", `
- slug: lawn-care
  title: Lawn Care
- title: "<b>Tree Service</b>"
- slug: irrigation
- slug: Bad Slug
  title: Bad
`)

	services, rejected, err := LoadServices(path, nil)
	if err != nil {
		t.Fatalf("LoadServices() error = %v", err)
	}

	want := []seo.Service{
		{Slug: "lawn-care", Title: "Lawn Care"},
		{Slug: "tree-service", Title: "Tree Service"},
	}
	if diff := cmp.Diff(want, services); diff != "" {
		t.Errorf("LoadServices() mismatch (-want +got):\n%s", diff)
	}

	if len(rejected) != 2 {
		t.Fatalf("expected 2 rejected records, got %d: %v", len(rejected), rejected)
	}
	for _, r := range rejected {
		if !errors.Is(r, seo.ErrInvalidService) {
			t.Errorf("rejected record %v should wrap ErrInvalidService", r)
		}
	}
	if rejected[0].Service != "irrigation" {
		t.Errorf("rejected[0].Service = %q, want %q", rejected[0].Service, "irrigation")
	}
}

func TestLoadServices_EncodedMarkup(t *testing.T) {
	path := writeFile(t, t.TempDir(), "services.yaml", `
- slug: lawn-care
  title: "&lt;img src=x onerror=alert(1)&gt;Lawn Care"
  description: "&amp;lt;script&amp;gt;alert(1)&amp;lt;/script&amp;gt;Weekly mowing"
`)

	services, rejected, err := LoadServices(path, nil)
	if err != nil {
		t.Fatalf("LoadServices() error = %v", err)
	}
	if len(rejected) != 0 {
		t.Fatalf("unexpected rejected records: %v", rejected)
	}

	want := []seo.Service{{Slug: "lawn-care", Title: "Lawn Care", Description: "Weekly mowing"}}
	if diff := cmp.Diff(want, services); diff != "" {
		t.Errorf("LoadServices() mismatch (-want +got):\n%s", diff)
	}
}

func TestLoadLocations_JSON5WithLocalOverride(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "locations.json5", `[
  // barrier islands
  {slug: "avalon", town: "Avalon"},
  {slug: "stone-harbor", town: "Stone Harbor", county: "Cape May"},
]`)
	writeFile(t, dir, "locations.local.json5", `[
  {slug: "avalon", county: "Cape May", latitude: 39.1, longitude: -74.72},
  {town: "Sea Isle City"},
]`)

	locations, rejected, err := LoadLocations(path, nil)
	if err != nil {
		t.Fatalf("LoadLocations() error = %v", err)
	}
	if len(rejected) != 0 {
		t.Fatalf("unexpected rejected records: %v", rejected)
	}

	lat, lng := 39.1, -74.72
	want := []seo.Location{
		{Slug: "avalon", Town: "Avalon", County: "Cape May", Latitude: &lat, Longitude: &lng},
		{Slug: "stone-harbor", Town: "Stone Harbor", County: "Cape May"},
		{Slug: "sea-isle-city", Town: "Sea Isle City"},
	}
	if diff := cmp.Diff(want, locations); diff != "" {
		t.Errorf("LoadLocations() mismatch (-want +got):\n%s", diff)
	}
}

func TestLoadLocations_HalfCoordinates(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "locations.yaml", `
- slug: avalon
  town: Avalon
  latitude: 39.1
`)

	locations, rejected, err := LoadLocations(path, nil)
	if err != nil {
		t.Fatalf("LoadLocations() error = %v", err)
	}
	if len(locations) != 0 || len(rejected) != 1 {
		t.Fatalf("expected the record to be rejected, got %d valid / %d rejected", len(locations), len(rejected))
	}
	if !strings.Contains(rejected[0].Error(), "latitude and longitude") {
		t.Errorf("unexpected error: %v", rejected[0])
	}
}

func TestLoad_Errors(t *testing.T) {
	dir := t.TempDir()
	dup := writeFile(t, dir, "dup.yaml", `
- slug: lawn-care
  title: Lawn Care
- title: Lawn Care
`)
	bad := writeFile(t, dir, "services.toml", `title = "x"`)
	broken := writeFile(t, dir, "broken.json", `[{"slug": }]`)

	tests := []struct {
		name    string
		path    string
		wantErr string
		wantIs  error
	}{
		{"duplicate slug", dup, "duplicate slug", ErrDuplicateSlug},
		{"unsupported extension", bad, "unsupported content file", nil},
		{"parse error", broken, "failed to parse", nil},
		{"not found", filepath.Join(dir, "missing.yaml"), "content file not found", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := LoadServices(tt.path, nil)
			if err == nil {
				t.Fatal("expected error, got nil")
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("error = %q, want it to contain %q", err, tt.wantErr)
			}
			if tt.wantIs != nil && !errors.Is(err, tt.wantIs) {
				t.Errorf("error %v should wrap %v", err, tt.wantIs)
			}
		})
	}
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	services := writeFile(t, dir, "services.yaml", "- slug: lawn-care\n  title: Lawn Care\n- slug: x\n")
	locations := writeFile(t, dir, "locations.json", `[{"slug": "avalon", "town": "Avalon"}, {"slug": "ghost"}]`)

	set, err := Load(services, locations, nil)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if len(set.Services) != 1 || len(set.Locations) != 1 {
		t.Fatalf("got %d services / %d locations, want 1 / 1", len(set.Services), len(set.Locations))
	}
	if len(set.Rejected) != 2 {
		t.Errorf("got %d rejected records, want 2", len(set.Rejected))
	}
	if got := set.Rejected[1].Error(); !strings.HasPrefix(got, "location ghost:") {
		t.Errorf("Rejected[1].Error() = %q, want location prefix", got)
	}
}
