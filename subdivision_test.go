package gazetteer

import (
	"errors"
	"testing"
)

func TestSubdivisionCountry(t *testing.T) {
	g := testGazetteer(t)

	tests := []struct {
		code        string
		wantCountry string
	}{
		{"TX", "USA"},
		{"tx", "USA"},
		{"NY", "USA"},
		{"ON", "CAN"},
		{"NSW", "AUS"},
		{"LND", "GBR"},
		// ambiguous: US-CA California and ES-CA Cadiz
		{"CA", ""},
		{"ZH", ""},
		{"13", ""},
		// unknown
		{"XX", ""},
		{"", ""},
	}
	for _, tc := range tests {
		t.Run(tc.code, func(t *testing.T) {
			got := g.SubdivisionCountry(tc.code)
			if tc.wantCountry == "" {
				if got != NoCountry {
					t.Errorf("SubdivisionCountry(%q) = %s, want none", tc.code, g.CountryAlpha3(got))
				}
				return
			}
			if g.CountryAlpha3(got) != tc.wantCountry {
				t.Errorf("SubdivisionCountry(%q) = %s, want %s", tc.code, g.CountryAlpha3(got), tc.wantCountry)
			}
		})
	}
}

func TestIsSubdivision(t *testing.T) {
	g := testGazetteer(t)
	us, es := g.CountryFromCode("US"), g.CountryFromCode("ES")

	tests := []struct {
		country CountryID
		code    string
		want    bool
		name    string
	}{
		{us, "TX", true, "Texas"},
		{us, "ca", true, "California"},
		{es, "CA", true, "Cádiz"},
		{us, "ON", false, ""},
		{NoCountry, "TX", false, ""},
		{us, "", false, ""},
	}
	for _, tc := range tests {
		if got := g.IsSubdivision(tc.country, tc.code); got != tc.want {
			t.Errorf("IsSubdivision(%d, %q) = %v, want %v", tc.country, tc.code, got, tc.want)
		}
		if got := g.SubdivisionName(tc.country, tc.code); got != tc.name {
			t.Errorf("SubdivisionName(%d, %q) = %q, want %q", tc.country, tc.code, got, tc.name)
		}
	}
}

func TestSubdivisionsSorted(t *testing.T) {
	g := testGazetteer(t)
	subs := g.Subdivisions(g.CountryFromCode("AU"))
	if len(subs) == 0 {
		t.Fatal("no subdivisions for AU")
	}
	for i := 1; i < len(subs); i++ {
		if subs[i-1].Code >= subs[i].Code {
			t.Errorf("subdivisions out of order: %s before %s", subs[i-1].Code, subs[i].Code)
		}
	}
	if got := g.Subdivisions(NoCountry); len(got) != 0 {
		t.Errorf("Subdivisions(NoCountry) = %v", got)
	}
}

func TestBuildSubdivisionsErrors(t *testing.T) {
	countries, err := buildCountries([]countryRecord{{ID: 840, Alpha2: "US", Alpha3: "USA", Name: "United States"}}, mustCurrencies(t))
	if err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name string
		recs []subdivisionRecord
		want error
	}{
		{"no separator", []subdivisionRecord{{"USTX", "Texas"}}, ErrMalformedRecord},
		{"empty code", []subdivisionRecord{{"US-", "Texas"}}, ErrMalformedRecord},
		{"unknown country", []subdivisionRecord{{"QQ-TX", "Texas"}}, ErrInvalidReference},
		{"duplicate", []subdivisionRecord{{"US-TX", "Texas"}, {"US-TX", "Tejas"}}, ErrDuplicateCode},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := buildSubdivisions(tc.recs, countries); !errors.Is(err, tc.want) {
				t.Errorf("buildSubdivisions() error = %v, want %v", err, tc.want)
			}
		})
	}
}

func TestStringInterner(t *testing.T) {
	si := newStringInterner[uint8](4)
	if si.get(0) != "" || si.count() != 1 {
		t.Fatal("index 0 must be the empty string")
	}
	if si.intern("") != 0 {
		t.Error(`intern("") != 0`)
	}
	a := si.intern("LND")
	b := si.intern("TX")
	if a == 0 || b == 0 || a == b {
		t.Errorf("intern gave %d and %d", a, b)
	}
	if si.intern("LND") != a {
		t.Error("interning twice gave a new index")
	}
	if si.get(a) != "LND" || si.get(b) != "TX" || si.get(200) != "" {
		t.Error("get returned the wrong string")
	}
	if si.count() != 3 {
		t.Errorf("count() = %d, want 3", si.count())
	}
}

func TestStringInternerOverflow(t *testing.T) {
	si := newStringInterner[uint8](256)
	for i := 1; i < 256; i++ {
		si.intern(string(rune('A' + i)))
	}
	defer func() {
		if recover() == nil {
			t.Error("intern past capacity did not panic")
		}
	}()
	si.intern("overflow")
}

// mustCurrencies builds a small currency table for unit tests.
func mustCurrencies(t *testing.T) *table[CurrencyID, currencyRow] {
	t.Helper()
	currencies, err := buildCurrencies([]currencyRecord{
		{ID: 840, Code: "USD", Name: "US Dollar"},
		{ID: 978, Code: "EUR", Name: "Euro"},
	})
	if err != nil {
		t.Fatal(err)
	}
	return currencies
}
