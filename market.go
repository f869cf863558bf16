package gazetteer

import "fmt"

// MarketID is the stable external ID of a financial market.
type MarketID uint16

// NoMarket is the sentinel market. It also stands for "no market assigned yet"
// and is filtered out of derived market lists.
const NoMarket MarketID = 0

const marketIDSpace = 1024

// Valid reports whether id is not the sentinel.
func (id MarketID) Valid() bool { return id != NoMarket }

type marketRow struct {
	id   MarketID
	code string // ISO 10383 market identifier code
	name string
	city CityID
}

var marketSentinel = marketRow{code: noCode(4)}

func buildMarkets(recs []marketRecord, cities *table[CityID, cityRow]) (*table[MarketID, marketRow], error) {
	rows := make([]marketRow, len(recs))
	for i, rec := range recs {
		city := cities.fromCode(rec.City)
		if !city.Valid() {
			return nil, fmt.Errorf("%w: market %s: city %q", ErrInvalidReference, rec.Code, rec.City)
		}
		rows[i] = marketRow{id: MarketID(rec.ID), code: rec.Code, name: rec.Name, city: city}
	}
	return buildTable("market", marketIDSpace, marketSentinel, rows,
		func(r *marketRow) MarketID { return r.id },
		coding[marketRow]{4, func(r *marketRow) string { return r.code }},
	)
}

// MarketFromCode resolves a four-character market identifier code.
func (g *Gazetteer) MarketFromCode(code string) MarketID {
	return g.markets.fromCode(code)
}

// MarketCode returns the market identifier code of id, or "----" if undefined.
func (g *Gazetteer) MarketCode(id MarketID) string { return g.markets.row(id).code }

// MarketName returns the display name of id.
func (g *Gazetteer) MarketName(id MarketID) string { return g.markets.row(id).name }

// MarketCity returns the city id is located in.
func (g *Gazetteer) MarketCity(id MarketID) CityID { return g.markets.row(id).city }

// MarketCountry returns the country of the city id is located in.
func (g *Gazetteer) MarketCountry(id MarketID) CountryID {
	return g.CityCountry(g.MarketCity(id))
}

// Market is a read-only view of one market.
type Market struct {
	g  *Gazetteer
	id MarketID
}

// Market returns the view of id; undefined IDs give the sentinel view.
func (g *Gazetteer) Market(id MarketID) Market {
	return Market{g: g, id: g.markets.row(id).id}
}

// MarketByCode resolves code and returns its view.
func (g *Gazetteer) MarketByCode(code string) Market {
	return Market{g: g, id: g.MarketFromCode(code)}
}

// ID returns the stable ID of the market.
func (m Market) ID() MarketID { return m.id }

// Valid reports whether m is a defined market.
func (m Market) Valid() bool { return m.id.Valid() }

// Code returns the market identifier code.
func (m Market) Code() string { return m.g.MarketCode(m.id) }

// Name returns the display name.
func (m Market) Name() string { return m.g.MarketName(m.id) }

// City returns the city the market is located in.
func (m Market) City() City { return m.g.City(m.g.MarketCity(m.id)) }

// Country returns the country of the market's city.
func (m Market) Country() Country { return m.g.Country(m.g.MarketCountry(m.id)) }

// String returns the market identifier code.
func (m Market) String() string { return m.Code() }
