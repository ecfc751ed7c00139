// Package textutil prepares comment text for model inference.
//
// YouTube comments written in Persian arrive with mixed Arabic and Persian
// codepoints for the same letters (yeh, kaf) and in assorted Unicode
// normalization forms. Classifier vocabularies expect the Persian forms in
// NFC, so everything is unified here before any model sees the text.
package textutil

import (
	"strings"

	"golang.org/x/text/unicode/norm"
)

// Arabic presentation variants mapped to their Persian equivalents.
var persianUnifier = strings.NewReplacer(
	"ي", "ی", // ARABIC LETTER YEH -> FARSI YEH
	"ى", "ی", // ARABIC LETTER ALEF MAKSURA -> FARSI YEH
	"ك", "ک", // ARABIC LETTER KAF -> KEHEH
	"ة", "ه", // ARABIC LETTER TEH MARBUTA -> HEH
	"ـ", "", // TATWEEL (kashida) carries no meaning
)

// Normalize returns text in NFC form with Arabic letter variants unified to
// their Persian counterparts and surrounding whitespace trimmed.
func Normalize(text string) string {
	text = strings.TrimSpace(text)
	if text == "" {
		return ""
	}
	text = norm.NFC.String(text)
	return persianUnifier.Replace(text)
}

// Truncate shortens text to at most limit runes. A non-positive limit
// returns the text unchanged.
func Truncate(text string, limit int) string {
	if limit <= 0 {
		return text
	}
	runes := []rune(text)
	if len(runes) <= limit {
		return text
	}
	return string(runes[:limit])
}
