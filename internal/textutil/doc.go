// Package textutil provides rune- and grapheme-aware text measurement,
// used by the size rule (step/rules.go) so that string sizing counts
// displayed characters rather than bytes.
package textutil
