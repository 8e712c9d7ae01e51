package core

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// foldTransformer decomposes text and drops combining marks, so
// "março" and "marco" compare equal.
var foldTransformer = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// FoldDiacritics returns text with diacritical marks removed.
func FoldDiacritics(text string) string {
	folded, _, err := transform.String(foldTransformer, text)
	if err != nil {
		return text
	}
	return folded
}

// NormalizeQuery canonicalizes free text for pattern matching: lower-cased,
// diacritics folded, whitespace collapsed to single spaces.
func NormalizeQuery(text string) string {
	folded := FoldDiacritics(strings.ToLower(text))
	return strings.Join(strings.Fields(folded), " ")
}
