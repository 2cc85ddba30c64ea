package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadProjectConfig_ValidatesName(t *testing.T) {
	tests := []struct {
		name    string
		yaml    string
		wantErr bool
	}{
		{
			"valid name",
			"name: cape-lawn\nsite:\n  base_url: https://capelawn.example\n",
			false,
		},
		{
			"injection in name",
			"name: \"cape-lawn; rm -rf /\"\n",
			true,
		},
		{
			"uppercase name",
			"name: CapeLawn\n",
			true,
		},
		{
			"empty name is allowed",
			"site:\n  name: Cape Lawn Co\n",
			false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			path := filepath.Join(dir, "localpages.yaml")
			if err := os.WriteFile(path, []byte(tt.yaml), 0644); err != nil {
				t.Fatal(err)
			}

			_, err := LoadProjectConfig(path)
			if (err != nil) != tt.wantErr {
				t.Errorf("LoadProjectConfig() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestLoadProjectConfig_ValidatesOutputDir(t *testing.T) {
	tests := []struct {
		name    string
		yaml    string
		wantErr bool
	}{
		{
			"valid output dir",
			"name: cape-lawn\noutput:\n  dir: src/pages/locations\n",
			false,
		},
		{
			"path traversal in output dir",
			"name: cape-lawn\noutput:\n  dir: \"../../etc\"\n",
			true,
		},
		{
			"absolute output dir",
			"name: cape-lawn\noutput:\n  dir: /var/www\n",
			true,
		},
		{
			"shell metachar in output dir",
			"name: cape-lawn\noutput:\n  dir: \"pages;id\"\n",
			true,
		},
		{
			"traversal in sitemap path",
			"name: cape-lawn\nbuild:\n  sitemap_path: ../sitemap.xml\n",
			true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			path := filepath.Join(dir, "localpages.yaml")
			if err := os.WriteFile(path, []byte(tt.yaml), 0644); err != nil {
				t.Fatal(err)
			}

			_, err := LoadProjectConfig(path)
			if (err != nil) != tt.wantErr {
				t.Errorf("LoadProjectConfig() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestLoadProjectConfig_NotFound(t *testing.T) {
	_, err := LoadProjectConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	if err == nil {
		t.Fatal("expected error for missing config")
	}
}

func TestSaveAndLoadProjectConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "localpages.yaml")

	cfg := DefaultProjectConfig()
	cfg.Name = "cape-lawn"
	cfg.Site = SiteConfig{Name: "Cape Lawn Co", BaseURL: "https://capelawn.example"}
	cfg.Output.Format = FormatAstro

	if err := SaveProjectConfig(cfg, path); err != nil {
		t.Fatalf("SaveProjectConfig() error = %v", err)
	}
	if !ProjectConfigExists(path) {
		t.Fatal("expected config file to exist")
	}

	loaded, err := LoadProjectConfig(path)
	if err != nil {
		t.Fatalf("LoadProjectConfig() error = %v", err)
	}
	if loaded.Site.BaseURL != cfg.Site.BaseURL || loaded.Output.Format != FormatAstro {
		t.Errorf("round trip mismatch: %+v", loaded)
	}
}

func TestResolvePath(t *testing.T) {
	tests := []struct {
		configPath string
		p          string
		expected   string
	}{
		{"site/localpages.yaml", "content/services.yaml", filepath.Join("site", "content", "services.yaml")},
		{"", "content/services.yaml", filepath.Join(".", "content", "services.yaml")},
		{"site/localpages.yaml", "/abs/services.yaml", "/abs/services.yaml"},
		{"site/localpages.yaml", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.p, func(t *testing.T) {
			got := ResolvePath(tt.configPath, tt.p)
			if got != tt.expected {
				t.Errorf("ResolvePath(%q, %q) = %q, want %q", tt.configPath, tt.p, got, tt.expected)
			}
		})
	}
}

func TestNormalizeFormat(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"md", "markdown"},
		{"MDX", "markdown"},
		{"markdown", "markdown"},
		{"Astro", "astro"},
		{"json", "json"},
		{"html", "html"},
		{"", ""},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got := NormalizeFormat(tt.input)
			if got != tt.expected {
				t.Errorf("NormalizeFormat(%q) = %q, want %q", tt.input, got, tt.expected)
			}
		})
	}
}
