package gazetteer

import (
	"fmt"
	"slices"
	"strings"
)

// Subdivision is a first-level administrative division of a country (state,
// province, region), identified by its ISO 3166-2 code without the country prefix.
type Subdivision struct {
	Code string // e.g. "TX", "NSW", "08"
	Name string // e.g. "Texas", "New South Wales"
}

// stringInterner maps strings to small integer indexes. Index 0 is reserved
// for the empty string. It is filled during construction only and read-only
// afterwards, so it needs no locking.
type stringInterner[T ~uint8 | ~uint16] struct {
	lookup []string
	index  map[string]T
}

func newStringInterner[T ~uint8 | ~uint16](capacity int) *stringInterner[T] {
	si := &stringInterner[T]{
		lookup: make([]string, 1, capacity),
		index:  make(map[string]T, capacity),
	}
	si.index[""] = 0
	return si
}

// intern returns the index for s, adding it if needed.
// Panics if the index type overflows; the tables would otherwise be corrupt.
func (si *stringInterner[T]) intern(s string) T {
	if idx, ok := si.index[s]; ok {
		return idx
	}
	maxVal := int(^T(0))
	if len(si.lookup) > maxVal {
		panic(fmt.Sprintf("stringInterner capacity exceeded: %d entries (max %d)", len(si.lookup), maxVal))
	}
	idx := T(len(si.lookup))
	si.lookup = append(si.lookup, s)
	si.index[s] = idx
	return idx
}

// get returns the string for idx, or "" if out of range.
func (si *stringInterner[T]) get(idx T) string {
	if int(idx) < len(si.lookup) {
		return si.lookup[idx]
	}
	return ""
}

func (si *stringInterner[T]) count() int {
	return len(si.lookup)
}

// buildSubdivisions groups subdivision records by country.
// Record codes have the ISO 3166-2 form "CC-SUB".
func buildSubdivisions(recs []subdivisionRecord, countries *table[CountryID, countryRow]) (map[CountryID]map[string]Subdivision, error) {
	divisions := make(map[CountryID]map[string]Subdivision)
	for _, rec := range recs {
		cc, code, ok := strings.Cut(rec.Code, "-")
		if !ok || code == "" {
			return nil, fmt.Errorf("%w: subdivision %q", ErrMalformedRecord, rec.Code)
		}
		country := countries.fromCode(cc)
		if !country.Valid() {
			return nil, fmt.Errorf("%w: subdivision %s: country %q", ErrInvalidReference, rec.Code, cc)
		}
		if divisions[country] == nil {
			divisions[country] = make(map[string]Subdivision)
		}
		if _, dup := divisions[country][code]; dup {
			return nil, fmt.Errorf("%w: subdivision %s", ErrDuplicateCode, rec.Code)
		}
		divisions[country][code] = Subdivision{Code: code, Name: rec.Name}
	}
	return divisions, nil
}

// IsSubdivision reports whether code is a subdivision of country.
// Matching ignores case.
func (g *Gazetteer) IsSubdivision(country CountryID, code string) bool {
	_, ok := g.subdivisions[country][strings.ToUpper(code)]
	return ok
}

// SubdivisionCountry returns the country owning code when exactly one country
// has a subdivision with that code, and NoCountry otherwise.
// Examples: "TX" -> US, "ON" -> CA, "NSW" -> AU; "CA" is ambiguous.
func (g *Gazetteer) SubdivisionCountry(code string) CountryID {
	code = strings.ToUpper(code)
	match := NoCountry
	for country, divisions := range g.subdivisions {
		if _, ok := divisions[code]; ok {
			if match.Valid() {
				return NoCountry
			}
			match = country
		}
	}
	return match
}

// SubdivisionName returns the name of a subdivision, or "" if unknown.
func (g *Gazetteer) SubdivisionName(country CountryID, code string) string {
	return g.subdivisions[country][strings.ToUpper(code)].Name
}

// Subdivisions returns the subdivisions of country sorted by code.
func (g *Gazetteer) Subdivisions(country CountryID) []Subdivision {
	divisions := g.subdivisions[country]
	out := make([]Subdivision, 0, len(divisions))
	for _, d := range divisions {
		out = append(out, d)
	}
	slices.SortFunc(out, func(a, b Subdivision) int { return strings.Compare(a.Code, b.Code) })
	return out
}
