package content

import "testing"

func TestSlugify(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"Avalon", "avalon"},
		{"Cape May Court House", "cape-may-court-house"},
		{"Señora Café", "senora-cafe"},
		{"  Lawn & Garden ", "lawn-garden"},
		{"O'Brien's Lawn", "obriens-lawn"},
		{"Route 9 / Exit 10", "route-9-exit-10"},
		{"", ""},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got := Slugify(tt.input)
			if got != tt.expected {
				t.Errorf("Slugify(%q) = %q, want %q", tt.input, got, tt.expected)
			}
		})
	}
}
