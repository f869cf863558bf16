package gazetteer

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/agnivade/levenshtein"
)

// Matcher reports whether a normalized display name matches a pattern.
// A nil Matcher matches every name.
type Matcher func(name string) bool

// maxFuzzyDistance caps the edit distance accepted by MatchFuzzy.
const maxFuzzyDistance = 3

// maxPatternLen limits the length of fuzzy patterns; the edit distance is
// quadratic in the input length.
const maxPatternLen = 256

// MatchExact matches names equal to pattern after normalization.
func MatchExact(pattern string) Matcher {
	p := Normalize(pattern)
	return func(name string) bool { return name == p }
}

// MatchPrefix matches names starting with pattern after normalization.
// Surrounding space is significant: "San " does not match "Santiago".
func MatchPrefix(pattern string) Matcher {
	p := normalizePattern(pattern)
	return func(name string) bool { return strings.HasPrefix(name, p) }
}

// MatchContains matches names containing pattern after normalization.
// Surrounding space is significant, as for MatchPrefix.
func MatchContains(pattern string) Matcher {
	p := normalizePattern(pattern)
	return func(name string) bool { return strings.Contains(name, p) }
}

// MatchFuzzy matches names within maxDist edits of pattern (Levenshtein
// distance over normalized forms). maxDist is clamped to 0..3; 0 behaves
// like MatchExact.
func MatchFuzzy(pattern string, maxDist int) Matcher {
	p := Normalize(pattern)
	if len(p) > maxPatternLen {
		return func(string) bool { return false }
	}
	maxDist = max(0, min(maxDist, maxFuzzyDistance))
	if maxDist == 0 {
		return func(name string) bool { return name == p }
	}
	n := utf8.RuneCountInString(p)
	return func(name string) bool {
		// The distance is at least the difference in length.
		if d := utf8.RuneCountInString(name) - n; d > maxDist || -d > maxDist {
			return false
		}
		return levenshtein.ComputeDistance(p, name) <= maxDist
	}
}

// MatchRegexp matches names against the regular expression expr, applied to
// the normalized name without regard to case. Diacritics are stripped from
// expr as from names, so "Zürich" matches "zurich". Case folding beyond
// (?i) is not applied to expr: "straße" does not match "strasse".
func MatchRegexp(expr string) (Matcher, error) {
	re, err := regexp.Compile("(?i)" + StripDiacritics(expr))
	if err != nil {
		return nil, err
	}
	return re.MatchString, nil
}

// Countries returns the countries whose name matches m, in alpha-3 order.
func (g *Gazetteer) Countries(m Matcher) []CountryID {
	out := []CountryID{}
	g.countries.each(func(id CountryID, row *countryRow) {
		if m == nil || m(Normalize(row.name)) {
			out = append(out, id)
		}
	})
	return out
}

// Cities returns the cities whose name matches m, in IATA code order.
func (g *Gazetteer) Cities(m Matcher) []CityID {
	out := []CityID{}
	g.cities.each(func(id CityID, row *cityRow) {
		if m == nil || m(Normalize(row.name)) {
			out = append(out, id)
		}
	})
	return out
}

// Currencies returns the currencies whose name matches m, in code order.
func (g *Gazetteer) Currencies(m Matcher) []CurrencyID {
	out := []CurrencyID{}
	g.currencies.each(func(id CurrencyID, row *currencyRow) {
		if m == nil || m(Normalize(row.name)) {
			out = append(out, id)
		}
	})
	return out
}
