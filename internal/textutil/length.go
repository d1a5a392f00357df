package textutil

import (
	"unicode"

	"golang.org/x/text/unicode/norm"
	"golang.org/x/text/width"
)

// Length counts s's displayed characters rather than its bytes. It
// normalizes to NFC first, so a combining-mark sequence that has a
// precomposed form (e.g. "e" + U+0301 vs "é") counts the same,
// then counts runes, skipping any stray non-spacing marks norm.NFC
// couldn't compose away.
func Length(s string) int {
	composed := norm.NFC.String(s)
	n := 0
	for _, r := range composed {
		if unicode.Is(unicode.Mn, r) {
			continue
		}
		n++
	}
	return n
}

// DisplayWidth sums each rune's terminal column width after NFC
// normalization: East Asian Wide and Fullwidth runes count as 2,
// non-spacing marks as 0, everything else as 1. Used by cmd/plumb
// to align Halt error trees in a fixed-width table.
func DisplayWidth(s string) int {
	composed := norm.NFC.String(s)
	total := 0
	for _, r := range composed {
		if unicode.Is(unicode.Mn, r) {
			continue
		}
		switch width.LookupRune(r).Kind() {
		case width.EastAsianWide, width.EastAsianFullwidth:
			total += 2
		default:
			total++
		}
	}
	return total
}
