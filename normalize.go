package gazetteer

import (
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// StripDiacritics removes combining marks from s: "Zürich" becomes "Zurich"
// and "Åland" becomes "Aland". The result is in NFC form.
func StripDiacritics(s string) string {
	// Transformers keep state, so a chain is not shared between goroutines.
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, err := transform.String(t, s)
	if err != nil {
		return norm.NFC.String(s)
	}
	return out
}

// Normalize returns the search form of a display name: diacritics stripped,
// case folded, surrounding space trimmed and inner runs of space collapsed.
func Normalize(s string) string {
	s = cases.Fold().String(StripDiacritics(s))
	return strings.Join(strings.Fields(s), " ")
}

// normalizePattern is Normalize for search patterns. A leading or trailing
// run of space is kept as a single space, so "San " stays a word prefix.
func normalizePattern(s string) string {
	p := Normalize(s)
	if p == "" {
		return p
	}
	if t := strings.TrimLeftFunc(s, unicode.IsSpace); len(t) < len(s) {
		p = " " + p
	}
	if t := strings.TrimRightFunc(s, unicode.IsSpace); len(t) < len(s) {
		p += " "
	}
	return p
}
