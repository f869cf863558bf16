package gazetteer

import (
	"fmt"
	"strconv"
)

// CountryID is the stable external ID of a country: its ISO 3166-1 numeric
// code, or a value from the user-assigned range 900-999 for entities without one.
type CountryID uint16

// NoCountry is the sentinel country.
const NoCountry CountryID = 0

const countryIDSpace = 1000

// Valid reports whether id is not the sentinel.
func (id CountryID) Valid() bool { return id != NoCountry }

// Numeric returns the zero-padded three-digit form of id.
func (id CountryID) Numeric() string {
	return fmt.Sprintf("%03d", uint16(id))
}

type countryRow struct {
	id        CountryID
	alpha2    string
	alpha3    string
	name      string
	currency  CurrencyID
	subRegion SubRegion
}

var countrySentinel = countryRow{alpha2: noCode(2), alpha3: noCode(3)}

func buildCountries(recs []countryRecord, currencies *table[CurrencyID, currencyRow]) (*table[CountryID, countryRow], error) {
	rows := make([]countryRow, len(recs))
	for i, rec := range recs {
		row := countryRow{
			id:     CountryID(rec.ID),
			alpha2: rec.Alpha2,
			alpha3: rec.Alpha3,
			name:   rec.Name,
		}
		if rec.Currency != "" {
			if row.currency = currencies.fromCode(rec.Currency); !row.currency.Valid() {
				return nil, fmt.Errorf("%w: country %s: currency %q", ErrInvalidReference, rec.Alpha3, rec.Currency)
			}
		}
		if rec.SubRegion != "" {
			s, ok := ParseSubRegion(rec.SubRegion)
			if !ok {
				return nil, fmt.Errorf("%w: country %s: subregion %q", ErrInvalidReference, rec.Alpha3, rec.SubRegion)
			}
			row.subRegion = s
		}
		rows[i] = row
	}
	return buildTable("country", countryIDSpace, countrySentinel, rows,
		func(r *countryRow) CountryID { return r.id },
		coding[countryRow]{3, func(r *countryRow) string { return r.alpha3 }},
		coding[countryRow]{2, func(r *countryRow) string { return r.alpha2 }},
	)
}

// CountryFromCode resolves an ISO 3166-1 alpha-2 or alpha-3 code.
func (g *Gazetteer) CountryFromCode(code string) CountryID {
	return g.countries.fromCode(code)
}

// CountryFromNumeric resolves an ISO 3166-1 numeric code such as "826".
func (g *Gazetteer) CountryFromNumeric(numeric string) CountryID {
	n, err := strconv.ParseUint(numeric, 10, 16)
	if err != nil {
		return NoCountry
	}
	return g.countries.row(CountryID(n)).id
}

// CountryAlpha2 returns the ISO 3166-1 alpha-2 code of id, or "--" if undefined.
func (g *Gazetteer) CountryAlpha2(id CountryID) string { return g.countries.row(id).alpha2 }

// CountryAlpha3 returns the ISO 3166-1 alpha-3 code of id, or "---" if undefined.
func (g *Gazetteer) CountryAlpha3(id CountryID) string { return g.countries.row(id).alpha3 }

// CountryName returns the display name of id.
func (g *Gazetteer) CountryName(id CountryID) string { return g.countries.row(id).name }

// CountryCurrency returns the principal currency of id.
func (g *Gazetteer) CountryCurrency(id CountryID) CurrencyID {
	return g.countries.row(id).currency
}

// CountryCurrencies returns every legal tender of id, principal currency first.
func (g *Gazetteer) CountryCurrencies(id CountryID) []CurrencyID {
	return g.countryCurrencies.list(id)
}

// CountryCapital returns the capital city of id, or NoCity if none is recorded.
func (g *Gazetteer) CountryCapital(id CountryID) CityID {
	return lookupOne(g.countryCapital, id)
}

// CountryCities returns the cities of id in code order.
func (g *Gazetteer) CountryCities(id CountryID) []CityID {
	return g.countryCities.list(id)
}

// CountryMarkets returns the markets of every city of id.
func (g *Gazetteer) CountryMarkets(id CountryID) []MarketID {
	var markets []MarketID
	for _, city := range g.countryCities.list(id) {
		for _, m := range g.cityMarkets.list(city) {
			if m.Valid() {
				markets = append(markets, m)
			}
		}
	}
	if markets == nil {
		return []MarketID{}
	}
	return markets
}

// CountryLocodes returns the UN/LOCODE locations of id in code order.
func (g *Gazetteer) CountryLocodes(id CountryID) []LocodeID {
	return g.countryLocodes.list(id)
}

// CountrySubRegion returns the subregion of id, or NoSubRegion.
func (g *Gazetteer) CountrySubRegion(id CountryID) SubRegion { return g.countries.row(id).subRegion }

// CountryRegion returns the region of id, or NoRegion.
func (g *Gazetteer) CountryRegion(id CountryID) Region { return g.countries.row(id).subRegion.Region() }

// RegionCountries returns the countries of r in code order.
func (g *Gazetteer) RegionCountries(r Region) []CountryID {
	return g.regionCountries.list(r)
}

// SubRegionCountries returns the countries of s in code order.
func (g *Gazetteer) SubRegionCountries(s SubRegion) []CountryID {
	return g.subRegionCountries.list(s)
}

// Country is a read-only view of one country.
type Country struct {
	g  *Gazetteer
	id CountryID
}

// Country returns the view of id; undefined IDs give the sentinel view.
func (g *Gazetteer) Country(id CountryID) Country {
	return Country{g: g, id: g.countries.row(id).id}
}

// CountryByCode resolves an alpha-2 or alpha-3 code and returns its view.
func (g *Gazetteer) CountryByCode(code string) Country {
	return Country{g: g, id: g.CountryFromCode(code)}
}

// ID returns the ISO 3166-1 numeric ID of the country.
func (c Country) ID() CountryID { return c.id }

// Valid reports whether c is a defined country.
func (c Country) Valid() bool { return c.id.Valid() }

// Alpha2 returns the two-letter code.
func (c Country) Alpha2() string { return c.g.CountryAlpha2(c.id) }

// Alpha3 returns the three-letter code.
func (c Country) Alpha3() string { return c.g.CountryAlpha3(c.id) }

// Code returns the canonical code, the alpha-3 one.
func (c Country) Code() string { return c.Alpha3() }

// Name returns the display name.
func (c Country) Name() string { return c.g.CountryName(c.id) }

// Region returns the continental region.
func (c Country) Region() Region { return c.g.CountryRegion(c.id) }

// SubRegion returns the subregion.
func (c Country) SubRegion() SubRegion { return c.g.CountrySubRegion(c.id) }

// Currency returns the principal currency.
func (c Country) Currency() Currency { return c.g.Currency(c.g.CountryCurrency(c.id)) }

// Capital returns the capital city, or the sentinel city if none is recorded.
func (c Country) Capital() City { return c.g.City(c.g.CountryCapital(c.id)) }

// String returns the canonical code.
func (c Country) String() string { return c.Code() }

// Currencies returns every legal tender, principal currency first.
func (c Country) Currencies() []Currency { return c.g.currencyViews(c.g.CountryCurrencies(c.id)) }

// Cities returns the cities of the country.
func (c Country) Cities() []City { return c.g.cityViews(c.g.CountryCities(c.id)) }

// Markets returns the markets of every city of the country.
func (c Country) Markets() []Market { return c.g.marketViews(c.g.CountryMarkets(c.id)) }

// Locodes returns the UN/LOCODE locations of the country.
func (c Country) Locodes() []Locode { return c.g.locodeViews(c.g.CountryLocodes(c.id)) }
