package seo

import (
	"errors"
	"math"
	"testing"
)

func TestHash_GoldenValues(t *testing.T) {
	tests := []struct {
		seed string
		want int32
	}{
		{"", 0},
		{"x", 120},
		{"a", 97},
		{"ab", 3105},
		{"hello world", 1794106052},
		{"ocean-view-lawn-care-title", 1042744388},
		{"avalon-lawn-care-title", -870588113},
	}

	for _, tt := range tests {
		t.Run(tt.seed, func(t *testing.T) {
			if got := Hash(tt.seed); got != tt.want {
				t.Errorf("Hash(%q) = %d, want %d", tt.seed, got, tt.want)
			}
		})
	}
}

func TestHash_UTF16CodeUnits(t *testing.T) {
	// U+1F33F is two UTF-16 units: 0xD83C 0xDF3F.
	want := int32(0xD83C)*31 + int32(0xDF3F)
	if got := Hash("\U0001F33F"); got != want {
		t.Errorf("Hash(astral rune) = %d, want %d", got, want)
	}
	// é is one unit whatever its UTF-8 width.
	if got := Hash("é"); got != 0xE9 {
		t.Errorf("Hash(é) = %d, want %d", got, 0xE9)
	}
}

func TestSelectTemplate_Golden(t *testing.T) {
	list := []string{"a", "b", "c"}
	tests := []struct {
		seed string
		want string
	}{
		{"x", "a"},
		{"a", "b"},
		{"ocean-view-lawn-care-title", "c"},
		{"avalon-lawn-care-title", "c"},
	}

	for _, tt := range tests {
		t.Run(tt.seed, func(t *testing.T) {
			for i := 0; i < 3; i++ {
				if got := SelectTemplate(list, tt.seed); got != tt.want {
					t.Fatalf("SelectTemplate(%q) = %q, want %q", tt.seed, got, tt.want)
				}
			}
		})
	}
}

func TestIndexFor_MinInt32(t *testing.T) {
	// |MinInt32| = 2147483648, and 2147483648 mod 3 = 2.
	if got := indexFor(math.MinInt32, 3); got != 2 {
		t.Errorf("indexFor(MinInt32, 3) = %d, want 2", got)
	}
	if got := indexFor(math.MinInt32, 1); got != 0 {
		t.Errorf("indexFor(MinInt32, 1) = %d, want 0", got)
	}
}

func TestIndex_InRange(t *testing.T) {
	seeds := []string{"", "x", "cape-may-court-house-outdoor-lighting-intro-context", "wildwood-crest-gutter-cleaning-h1"}
	for _, s := range seeds {
		for n := 1; n <= 9; n++ {
			if got := Index(s, n); got < 0 || got >= n {
				t.Errorf("Index(%q, %d) = %d, out of range", s, n, got)
			}
		}
	}
}

func TestSelectTemplate_EmptyPanics(t *testing.T) {
	defer func() {
		r := recover()
		if r == nil {
			t.Fatal("expected panic for empty template list")
		}
		err, ok := r.(error)
		if !ok || !errors.Is(err, ErrEmptyTemplates) {
			t.Errorf("panic value = %v, want ErrEmptyTemplates", r)
		}
	}()
	SelectTemplate([]string{}, "x")
}
