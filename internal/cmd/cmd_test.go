package cmd

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/yoanbernabeu/localpages/internal/seo"
)

func TestSanitizeProjectName(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"green-lawns", "green-lawns"},
		{"Green Lawns", "green-lawns"},
		{"@acme/green_lawns", "acme-green-lawns"},
		{"Jardinería Sánchez", "jardineria-sanchez"},
		{strings.Repeat("a", 70), strings.Repeat("a", 63)},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := sanitizeProjectName(tt.input); got != tt.expected {
				t.Errorf("sanitizeProjectName(%q) = %q, want %q", tt.input, got, tt.expected)
			}
		})
	}
}

func TestSplitSlugs(t *testing.T) {
	got := splitSlugs([]string{"avalon, stone-harbor", "", "cape-may,"})
	want := []string{"avalon", "stone-harbor", "cape-may"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("splitSlugs() mismatch (-want +got):\n%s", diff)
	}
	if got := splitSlugs(nil); got != nil {
		t.Errorf("splitSlugs(nil) = %v, want nil", got)
	}
}

func TestParseSelection(t *testing.T) {
	tests := []struct {
		input    string
		expected int
	}{
		{"1\n", 0},
		{" 3 ", 2},
		{"", -1},
		{"0", -1},
		{"4", -1},
		{"abc", -1},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := parseSelection(tt.input, 3); got != tt.expected {
				t.Errorf("parseSelection(%q) = %d, want %d", tt.input, got, tt.expected)
			}
		})
	}
}

func TestIsYes(t *testing.T) {
	for _, input := range []string{"y", "Y\n", "yes", " YES "} {
		if !isYes(input) {
			t.Errorf("isYes(%q) = false, want true", input)
		}
	}
	for _, input := range []string{"", "n", "no", "yep"} {
		if isYes(input) {
			t.Errorf("isYes(%q) = true, want false", input)
		}
	}
}

func TestShort(t *testing.T) {
	if got := short("0123456789abcdef"); got != "0123456789ab" {
		t.Errorf("short() = %q", got)
	}
	if got := short("abc"); got != "abc" {
		t.Errorf("short() = %q", got)
	}
}

func TestExportCatalog(t *testing.T) {
	root := t.TempDir()

	rel, err := exportCatalog(root)
	if err != nil {
		t.Fatalf("exportCatalog() error = %v", err)
	}

	def, err := seo.DefaultCatalog()
	if err != nil {
		t.Fatal(err)
	}
	if want := "catalogs/" + def.Version() + ".yaml"; rel != want {
		t.Errorf("path = %q, want %q", rel, want)
	}

	exported, err := seo.LoadCatalog(filepath.Join(root, rel))
	if err != nil {
		t.Fatalf("exported catalog does not load: %v", err)
	}
	if exported.Fingerprint() != def.Fingerprint() {
		t.Error("exported catalog fingerprint differs from the built-in one")
	}
}

func TestWriteSample_KeepsExisting(t *testing.T) {
	path := filepath.Join(t.TempDir(), "content", "services.yaml")

	if err := writeSample(path, sampleServices); err != nil {
		t.Fatalf("writeSample() error = %v", err)
	}
	if err := os.WriteFile(path, []byte("[]\n"), 0644); err != nil {
		t.Fatal(err)
	}
	if err := writeSample(path, sampleServices); err != nil {
		t.Fatalf("writeSample() error = %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != "[]\n" {
		t.Errorf("existing file was overwritten: %q", data)
	}
}

func TestInitThenBuild(t *testing.T) {
	dir := t.TempDir()
	configPath := filepath.Join(dir, "localpages.yaml")

	run := func(args ...string) {
		t.Helper()
		rootCmd.SetArgs(append([]string{"--config", configPath, "--yes"}, args...))
		if err := rootCmd.Execute(); err != nil {
			t.Fatalf("localpages %s: %v", strings.Join(args, " "), err)
		}
	}

	run("init", "--name", "green-lawns", "--base-url", "https://www.example.com/")
	run("build")

	for _, rel := range []string{
		"dist/locations/avalon/lawn-care.md",
		"dist/locations/stone-harbor/hedge-trimming.md",
		"dist/sitemap-locations.xml",
		".localpages/ledger.db",
	} {
		if _, err := os.Stat(filepath.Join(dir, rel)); err != nil {
			t.Errorf("expected %s after build: %v", rel, err)
		}
	}

	page, err := os.ReadFile(filepath.Join(dir, "dist/locations/avalon/lawn-care.md"))
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(page), "https://www.example.com/locations/avalon/lawn-care") {
		t.Errorf("page is missing its canonical URL:\n%s", page)
	}

	sitemap, err := os.ReadFile(filepath.Join(dir, "dist/sitemap-locations.xml"))
	if err != nil {
		t.Fatal(err)
	}
	if n := strings.Count(string(sitemap), "<loc>"); n != 4 {
		t.Errorf("sitemap has %d URLs, want 4", n)
	}
}
