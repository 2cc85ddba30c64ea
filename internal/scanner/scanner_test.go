package scanner

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/yoanbernabeu/localpages/internal/config"
	"github.com/yoanbernabeu/localpages/internal/constants"
)

func writeFile(t *testing.T, dir, rel, content string) {
	t.Helper()
	path := filepath.Join(dir, rel)
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatalf("failed to create directory: %v", err)
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write %s: %v", rel, err)
	}
}

func TestScanner_IsAstroProject(t *testing.T) {
	tests := []struct {
		name  string
		files map[string]string
		want  bool
	}{
		{"empty directory", nil, false},
		{"astro config", map[string]string{"astro.config.mjs": "export default {}"}, true},
		{"typescript config", map[string]string{"astro.config.ts": "export default {}"}, true},
		{"astro dependency", map[string]string{"package.json": `{"dependencies": {"astro": "^4.0.0"}}`}, true},
		{"astro dev dependency", map[string]string{"package.json": `{"devDependencies": {"astro": "^4.0.0"}}`}, true},
		{"other framework", map[string]string{"package.json": `{"dependencies": {"next": "14.0.0"}}`}, false},
		{"broken package.json", map[string]string{"package.json": `{`}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			for rel, content := range tt.files {
				writeFile(t, dir, rel, content)
			}
			if got := New(dir).IsAstroProject(); got != tt.want {
				t.Errorf("IsAstroProject() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestScanner_Scan(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "package.json", `{"name": "green-lawns", "dependencies": {"astro": "^4.0.0"}}`)
	writeFile(t, dir, "src/pages/index.astro", "---\n---\n")
	writeFile(t, dir, constants.DefaultServicesFile, "[]\n")

	result, err := New(dir).Scan()
	if err != nil {
		t.Fatalf("Scan() error = %v", err)
	}

	if !result.IsAstro {
		t.Error("expected IsAstro")
	}
	if result.Framework != "astro" {
		t.Errorf("Framework = %q, want astro", result.Framework)
	}
	if !result.HasPagesDir {
		t.Error("expected HasPagesDir")
	}
	if !result.HasContent {
		t.Error("expected HasContent")
	}
	if result.PackageName != "green-lawns" {
		t.Errorf("PackageName = %q, want green-lawns", result.PackageName)
	}
}

func TestScanner_ScanPlainDirectory(t *testing.T) {
	result, err := New(t.TempDir()).Scan()
	if err != nil {
		t.Fatalf("Scan() error = %v", err)
	}
	if result.IsAstro || result.HasPagesDir || result.HasContent {
		t.Errorf("unexpected detection in empty directory: %+v", result)
	}
}

func TestScanner_ScanErrors(t *testing.T) {
	t.Run("missing directory", func(t *testing.T) {
		if _, err := New(filepath.Join(t.TempDir(), "missing")).Scan(); err == nil {
			t.Error("expected error for missing directory")
		}
	})

	t.Run("broken package.json", func(t *testing.T) {
		dir := t.TempDir()
		writeFile(t, dir, "package.json", `{"name": `)
		if _, err := New(dir).Scan(); err == nil {
			t.Error("expected error for invalid package.json")
		}
	})
}

func TestScanner_ToProjectConfig(t *testing.T) {
	s := New(".")

	astro := s.ToProjectConfig(&config.ScanResult{IsAstro: true}, "green-lawns")
	if astro.Output.Format != config.FormatAstro {
		t.Errorf("Format = %q, want %q", astro.Output.Format, config.FormatAstro)
	}
	if astro.Output.Dir != constants.AstroOutputDir {
		t.Errorf("Dir = %q, want %q", astro.Output.Dir, constants.AstroOutputDir)
	}
	if astro.Name != "green-lawns" || astro.Site.Name != "green-lawns" {
		t.Errorf("unexpected names: %q / %q", astro.Name, astro.Site.Name)
	}

	plain := s.ToProjectConfig(&config.ScanResult{}, "green-lawns")
	if plain.Output.Format != config.FormatMarkdown {
		t.Errorf("Format = %q, want %q", plain.Output.Format, config.FormatMarkdown)
	}
	if plain.Output.Dir != constants.DefaultOutputDir {
		t.Errorf("Dir = %q, want %q", plain.Output.Dir, constants.DefaultOutputDir)
	}
}
