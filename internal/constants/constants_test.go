package constants

import (
	"path/filepath"
	"testing"
)

func TestLocationDir(t *testing.T) {
	tests := []struct {
		name     string
		outDir   string
		location string
		expected string
	}{
		{"simple slug", "dist/locations", "avalon", "dist/locations/avalon"},
		{"hyphenated slug", "src/pages/locations", "sea-isle-city", "src/pages/locations/sea-isle-city"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := LocationDir(tt.outDir, tt.location)
			if got != filepath.FromSlash(tt.expected) {
				t.Errorf("LocationDir(%q, %q) = %q, want %q", tt.outDir, tt.location, got, tt.expected)
			}
		})
	}
}

func TestPageFile(t *testing.T) {
	got := PageFile("dist/locations", "avalon", "lawn-care", ".md")
	expected := filepath.FromSlash("dist/locations/avalon/lawn-care.md")
	if got != expected {
		t.Errorf("PageFile() = %q, want %q", got, expected)
	}
}

func TestLocalOverride(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"content/services.yaml", "content/services.local.yaml"},
		{"locations.json5", "locations.local.json5"},
		{"catalog", "catalog.local"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got := LocalOverride(tt.input)
			if got != tt.expected {
				t.Errorf("LocalOverride(%q) = %q, want %q", tt.input, got, tt.expected)
			}
		})
	}
}

func TestDefaultLedgerPath(t *testing.T) {
	if DefaultLedgerPath != ".localpages/ledger.db" {
		t.Errorf("DefaultLedgerPath = %q, want %q", DefaultLedgerPath, ".localpages/ledger.db")
	}
}
