package gazetteer

import "fmt"

// CityID is the stable external ID of a city.
type CityID uint16

// NoCity is the sentinel city.
const NoCity CityID = 0

const cityIDSpace = 4096

// Valid reports whether id is not the sentinel.
func (id CityID) Valid() bool { return id != NoCity }

// cityRow is the canonical record of a city. Both the three-letter IATA code
// and the five-letter UN/LOCODE resolve to the same row.
type cityRow struct {
	id      CityID
	code    string
	locode  string
	name    string
	lat     float64
	lon     float64
	capital bool
	country CountryID
}

var citySentinel = cityRow{code: noCode(3), locode: noCode(5)}

func buildCities(recs []cityRecord, countries *table[CountryID, countryRow]) (*table[CityID, cityRow], error) {
	rows := make([]cityRow, len(recs))
	for i, rec := range recs {
		country := countries.fromCode(rec.Country)
		if !country.Valid() {
			return nil, fmt.Errorf("%w: city %s: country %q", ErrInvalidReference, rec.Code, rec.Country)
		}
		if rec.Lat < -90 || rec.Lat > 90 || rec.Lon < -180 || rec.Lon > 180 {
			return nil, fmt.Errorf("%w: city %s: position %v,%v", ErrMalformedRecord, rec.Code, rec.Lat, rec.Lon)
		}
		rows[i] = cityRow{
			id:      CityID(rec.ID),
			code:    rec.Code,
			locode:  rec.Locode,
			name:    rec.Name,
			lat:     rec.Lat,
			lon:     rec.Lon,
			capital: rec.Capital,
			country: country,
		}
	}
	return buildTable("city", cityIDSpace, citySentinel, rows,
		func(r *cityRow) CityID { return r.id },
		coding[cityRow]{3, func(r *cityRow) string { return r.code }},
		coding[cityRow]{5, func(r *cityRow) string { return r.locode }},
	)
}

// CityFromCode resolves a three-letter IATA city code or a five-letter
// UN/LOCODE. Both codings of a city give the same ID.
func (g *Gazetteer) CityFromCode(code string) CityID {
	return g.cities.fromCode(code)
}

// CityCode returns the IATA city code of id, or "---" if undefined.
func (g *Gazetteer) CityCode(id CityID) string { return g.cities.row(id).code }

// CityLocode returns the five-letter UN/LOCODE of id, or "-----" if undefined.
func (g *Gazetteer) CityLocode(id CityID) string { return g.cities.row(id).locode }

// CityName returns the display name of id.
func (g *Gazetteer) CityName(id CityID) string { return g.cities.row(id).name }

// CityIsCapital reports whether id is the capital of its country.
func (g *Gazetteer) CityIsCapital(id CityID) bool {
	return g.cities.row(id).capital
}

// CityPosition returns the latitude and longitude of id in degrees.
func (g *Gazetteer) CityPosition(id CityID) (lat, lon float64) {
	row := g.cities.row(id)
	return row.lat, row.lon
}

// CityCountry returns the country id belongs to.
func (g *Gazetteer) CityCountry(id CityID) CountryID {
	return g.cities.row(id).country
}

// CityMarkets returns the markets located in id.
func (g *Gazetteer) CityMarkets(id CityID) []MarketID {
	return g.cityMarkets.list(id)
}

// CityLocodeID returns the UN/LOCODE entry sharing the city's five-letter code.
func (g *Gazetteer) CityLocodeID(id CityID) LocodeID {
	if !g.cities.row(id).id.Valid() {
		return NoLocode
	}
	return g.locodes.fromCode(g.cities.row(id).locode)
}

// City is a read-only view of one city.
type City struct {
	g  *Gazetteer
	id CityID
}

// City returns the view of id; undefined IDs give the sentinel view.
func (g *Gazetteer) City(id CityID) City {
	return City{g: g, id: g.cities.row(id).id}
}

// CityByCode resolves an IATA code or UN/LOCODE and returns its view.
func (g *Gazetteer) CityByCode(code string) City {
	return City{g: g, id: g.CityFromCode(code)}
}

// ID returns the stable ID of the city.
func (c City) ID() CityID { return c.id }

// Valid reports whether c is a defined city.
func (c City) Valid() bool { return c.id.Valid() }

// Code returns the IATA city code.
func (c City) Code() string { return c.g.CityCode(c.id) }

// Locode returns the five-letter UN/LOCODE.
func (c City) Locode() string { return c.g.CityLocode(c.id) }

// Name returns the display name.
func (c City) Name() string { return c.g.CityName(c.id) }

// IsCapital reports whether the city is the capital of its country.
func (c City) IsCapital() bool { return c.g.CityIsCapital(c.id) }

// Country returns the country the city belongs to.
func (c City) Country() Country { return c.g.Country(c.g.CityCountry(c.id)) }

// Region returns the region of the city's country.
func (c City) Region() Region { return c.g.CountryRegion(c.g.CityCountry(c.id)) }

// SubRegion returns the subregion of the city's country.
func (c City) SubRegion() SubRegion { return c.g.CountrySubRegion(c.g.CityCountry(c.id)) }

// Markets returns the markets located in the city.
func (c City) Markets() []Market { return c.g.marketViews(c.g.CityMarkets(c.id)) }

// LocodeEntry returns the UN/LOCODE location sharing the city's five-letter code.
func (c City) LocodeEntry() Locode { return c.g.Locode(c.g.CityLocodeID(c.id)) }

// String returns the IATA city code.
func (c City) String() string { return c.Code() }

// Position returns the latitude and longitude of the city in degrees.
func (c City) Position() (lat, lon float64) { return c.g.CityPosition(c.id) }

// Geohash returns the geohash of the city position at the given precision.
func (c City) Geohash(precision int) string {
	lat, lon := c.Position()
	return Geohash(lat, lon, precision)
}

// DistanceTo returns the great-circle distance to other in metres.
func (c City) DistanceTo(other City) float64 {
	return c.g.CityDistance(c.id, other.id)
}
