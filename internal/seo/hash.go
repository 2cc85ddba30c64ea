package seo

import (
	"errors"
	"fmt"
	"unicode/utf16"
)

// ErrEmptyTemplates is the panic value (wrapped) raised when a selection is
// attempted over an empty template list.
var ErrEmptyTemplates = errors.New("template list is empty")

// Hash computes the seed hash used for template selection.
//
// The seed is walked as UTF-16 code units and folded with hash*31 + unit in
// 32-bit two's-complement arithmetic. Overflow wraps; the result must stay
// bit-identical to every page generated so far.
func Hash(seed string) int32 {
	var h int32
	for _, unit := range utf16.Encode([]rune(seed)) {
		h = h*31 + int32(unit)
	}
	return h
}

// Index reduces the hash of seed to a position in a list of n elements.
func Index(seed string, n int) int {
	return indexFor(Hash(seed), n)
}

func indexFor(h int32, n int) int {
	if n <= 0 {
		panic(fmt.Errorf("select over %d elements: %w", n, ErrEmptyTemplates))
	}
	// Widen before taking the absolute value: |MinInt32| does not fit in 32 bits.
	v := int64(h)
	if v < 0 {
		v = -v
	}
	return int(v % int64(n))
}

// SelectTemplate returns the element of templates chosen by seed. It panics
// when templates is empty; catalogs are validated on construction so this
// only fires on a programming error.
func SelectTemplate[T any](templates []T, seed string) T {
	if len(templates) == 0 {
		panic(fmt.Errorf("select %q: %w", seed, ErrEmptyTemplates))
	}
	return templates[indexFor(Hash(seed), len(templates))]
}
