package gazetteer

import (
	"fmt"
	"slices"
)

// Validate checks every invariant of the built tables: permutation
// bijections, code round-trips, relation storage, agreement of forward and
// inverse relations, principal-currency membership and the validity of every
// ID stored in a relation. It is run at the end of construction.
func (g *Gazetteer) Validate() error {
	checks := []func() error{
		g.currencies.check,
		g.countries.check,
		g.cities.check,
		g.markets.check,
		g.locodes.check,
		g.countryCities.check,
		g.countryCurrencies.check,
		g.currencyCountries.check,
		g.cityMarkets.check,
		g.countryLocodes.check,
		g.regionCountries.check,
		g.subRegionCountries.check,
		g.checkCities,
		g.checkCurrencies,
		g.checkMarkets,
		g.checkLocodes,
		g.checkRegions,
	}
	for _, check := range checks {
		if err := check(); err != nil {
			return fmt.Errorf("validating gazetteer: %w", err)
		}
	}
	return nil
}

// checkCities verifies city, capital and country-city relations.
func (g *Gazetteer) checkCities() error {
	var err error
	g.cities.each(func(id CityID, row *cityRow) {
		if err != nil {
			return
		}
		if !g.countries.row(row.country).id.Valid() {
			err = fmt.Errorf("%w: city %s has no country", ErrInvalidReference, row.code)
		} else if !g.countryCities.contains(row.country, id) {
			err = fmt.Errorf("%w: city %s missing from the cities of its country", ErrCorruptRelation, row.code)
		}
	})
	if err != nil {
		return err
	}
	listed := 0
	g.countries.each(func(id CountryID, _ *countryRow) {
		if err != nil {
			return
		}
		listed += g.countryCities.count(id)
		for _, city := range g.countryCities.list(id) {
			if g.CityCountry(city) != id {
				err = fmt.Errorf("%w: city %d listed under country %d", ErrCorruptRelation, city, id)
				return
			}
		}
		if capital := g.CountryCapital(id); capital.Valid() && (g.CityCountry(capital) != id || !g.CityIsCapital(capital)) {
			err = fmt.Errorf("%w: capital %d of country %d", ErrCorruptRelation, capital, id)
		}
	})
	if err == nil && listed != g.cities.len() {
		err = fmt.Errorf("%w: countries list %d cities, %d defined", ErrCorruptRelation, listed, g.cities.len())
	}
	return err
}

// checkCurrencies verifies that every country's currency list starts with its
// principal currency and agrees with the currency-to-countries inverse.
func (g *Gazetteer) checkCurrencies() error {
	var err error
	g.countries.each(func(id CountryID, row *countryRow) {
		if err != nil {
			return
		}
		currencies := g.countryCurrencies.list(id)
		if row.currency.Valid() && (len(currencies) == 0 || currencies[0] != row.currency) {
			err = fmt.Errorf("%w: principal currency of %s is not listed first", ErrCorruptRelation, row.alpha3)
			return
		}
		if !row.currency.Valid() && len(currencies) > 0 {
			err = fmt.Errorf("%w: %s has legal tender but no principal currency", ErrCorruptRelation, row.alpha3)
			return
		}
		for _, c := range currencies {
			if !g.currencies.row(c).id.Valid() {
				err = fmt.Errorf("%w: %s lists currency %d", ErrInvalidReference, row.alpha3, c)
				return
			}
			if !g.currencyCountries.contains(c, id) {
				err = fmt.Errorf("%w: %s missing from the countries of currency %d", ErrCorruptRelation, row.alpha3, c)
				return
			}
		}
	})
	if err != nil {
		return err
	}
	g.currencies.each(func(id CurrencyID, row *currencyRow) {
		if err != nil {
			return
		}
		for _, country := range g.currencyCountries.list(id) {
			if !g.countryCurrencies.contains(country, id) {
				err = fmt.Errorf("%w: currency %s lists country %d", ErrCorruptRelation, row.code, country)
				return
			}
		}
	})
	return err
}

func (g *Gazetteer) checkMarkets() error {
	var err error
	g.markets.each(func(id MarketID, row *marketRow) {
		if err == nil && !g.cityMarkets.contains(row.city, id) {
			err = fmt.Errorf("%w: market %s missing from the markets of its city", ErrCorruptRelation, row.code)
		}
	})
	if err != nil {
		return err
	}
	g.cities.each(func(id CityID, row *cityRow) {
		if err != nil {
			return
		}
		for _, m := range g.cityMarkets.list(id) {
			if g.MarketCity(m) != id {
				err = fmt.Errorf("%w: market %d listed under city %s", ErrCorruptRelation, m, row.code)
				return
			}
		}
	})
	return err
}

func (g *Gazetteer) checkLocodes() error {
	var err error
	g.locodes.each(func(id LocodeID, row *locodeRow) {
		if err != nil {
			return
		}
		if g.CountryAlpha2(row.country) != row.code[:2] {
			err = fmt.Errorf("%w: locode %s owned by country %d", ErrCorruptRelation, row.code, row.country)
		} else if !g.countryLocodes.contains(row.country, id) {
			err = fmt.Errorf("%w: locode %s missing from the locodes of its country", ErrCorruptRelation, row.code)
		} else if int(row.subdivision) >= g.subdivisionCodes.count() {
			err = fmt.Errorf("%w: locode %s subdivision index %d", ErrCorruptRelation, row.code, row.subdivision)
		} else if sub := g.subdivisionCodes.get(row.subdivision); sub != "" && !g.IsSubdivision(row.country, sub) {
			err = fmt.Errorf("%w: locode %s subdivision %q", ErrInvalidReference, row.code, sub)
		}
	})
	return err
}

// checkRegions verifies that region and subregion groupings partition the
// countries with a subregion.
func (g *Gazetteer) checkRegions() error {
	var err error
	g.countries.each(func(id CountryID, row *countryRow) {
		if err != nil || row.subRegion == NoSubRegion {
			return
		}
		if !g.subRegionCountries.contains(row.subRegion, id) || !g.regionCountries.contains(row.subRegion.Region(), id) {
			err = fmt.Errorf("%w: %s missing from its region grouping", ErrCorruptRelation, row.alpha3)
		}
	})
	if err != nil {
		return err
	}
	for r := Region(1); int(r) < numRegions; r++ {
		for _, c := range g.regionCountries.list(r) {
			if g.CountryRegion(c) != r {
				return fmt.Errorf("%w: country %d grouped under %s", ErrCorruptRelation, c, r)
			}
		}
	}
	for s := SubRegion(1); int(s) < numSubRegions; s++ {
		for _, c := range g.subRegionCountries.list(s) {
			if g.CountrySubRegion(c) != s {
				return fmt.Errorf("%w: country %d grouped under %s", ErrCorruptRelation, c, s)
			}
		}
	}
	return nil
}

// Minimum table sizes expected of a complete dataset.
const (
	minCountryCount  = 240
	minCurrencyCount = 150
	minCityCount     = 150
)

// knownCountry is a country whose relations are checked by ValidateData.
type knownCountry struct {
	code        string
	wantName    string
	wantCapital string
	wantCur     string
}

// knownCity is a city whose placement is checked by ValidateData.
type knownCity struct {
	code          string
	wantCountry   string
	wantRegion    Region
	wantSubRegion SubRegion
}

var knownCountries = []knownCountry{
	{"GBR", "United Kingdom", "LON", "GBP"},
	{"FRA", "France", "PAR", "EUR"},
	{"USA", "United States", "WAS", "USD"},
	{"JPN", "Japan", "TYO", "JPY"},
}

var knownCities = []knownCity{
	{"NYC", "USA", Americas, NorthernAmerica},
	{"LON", "GBR", Europe, NorthernEurope},
	{"SYD", "AUS", Oceania, AustraliaAndNewZealand},
	{"NBO", "KEN", Africa, EasternAfrica},
}

// euroMembers must all list EUR among their currencies.
var euroMembers = []string{"FRA", "DEU", "ESP", "ITA", "NLD"}

// ValidateData builds a Gazetteer from the sources selected by opts and
// checks it against known scenarios on top of the structural invariants.
// It returns the Gazetteer it checked.
func ValidateData(opts ...Option) (*Gazetteer, error) {
	g, err := NewGazetteer(opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to load data: %w", err)
	}
	if err := g.checkKnown(); err != nil {
		return nil, err
	}
	return g, nil
}

// checkKnown checks g against the known countries, cities and currency union.
func (g *Gazetteer) checkKnown() error {
	if n := g.NumCountries(); n < minCountryCount {
		return fmt.Errorf("country count too low: got %d, want >= %d", n, minCountryCount)
	}
	if n := g.NumCurrencies(); n < minCurrencyCount {
		return fmt.Errorf("currency count too low: got %d, want >= %d", n, minCurrencyCount)
	}
	if n := g.NumCities(); n < minCityCount {
		return fmt.Errorf("city count too low: got %d, want >= %d", n, minCityCount)
	}

	for _, tc := range knownCountries {
		c := g.CountryByCode(tc.code)
		if c.Name() != tc.wantName {
			return fmt.Errorf("country %s name = %q, want %q", tc.code, c.Name(), tc.wantName)
		}
		if got := c.Capital().Code(); got != tc.wantCapital {
			return fmt.Errorf("country %s capital = %s, want %s", tc.code, got, tc.wantCapital)
		}
		if got := c.Currency().Code(); got != tc.wantCur {
			return fmt.Errorf("country %s currency = %s, want %s", tc.code, got, tc.wantCur)
		}
	}

	for _, tc := range knownCities {
		c := g.CityByCode(tc.code)
		if got := c.Country().Code(); got != tc.wantCountry {
			return fmt.Errorf("city %s country = %s, want %s", tc.code, got, tc.wantCountry)
		}
		if c.Region() != tc.wantRegion || c.SubRegion() != tc.wantSubRegion {
			return fmt.Errorf("city %s in %s/%s, want %s/%s", tc.code, c.Region(), c.SubRegion(), tc.wantRegion, tc.wantSubRegion)
		}
	}

	eur := g.CurrencyFromCode("EUR")
	members := g.CurrencyCountries(eur)
	if len(members) <= 30 {
		return fmt.Errorf("EUR is legal tender in %d countries, want > 30", len(members))
	}
	for _, code := range euroMembers {
		if !slices.Contains(members, g.CountryFromCode(code)) {
			return fmt.Errorf("EUR is not legal tender in %s", code)
		}
	}
	return nil
}
