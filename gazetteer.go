// Package gazetteer resolves ISO country, ISO currency, IATA city, ISO 10383
// market and UN/LOCODE codes to stable numeric IDs and back, and relates those
// IDs to each other.
//
// All tables are built once from a frozen dataset (embedded data files, a
// data directory override or a msgpack snapshot) and are immutable afterwards,
// so a Gazetteer is safe for concurrent use without locks.
//
// Queries never fail. An unknown or malformed code resolves to the zero ID of
// its kind (NoCountry, NoCity, ...), and every query on a zero ID returns the
// sentinel value: an empty list, a placeholder code of dashes or an empty name.
//
//	g, err := gazetteer.NewGazetteer()
//	if err != nil {
//	    log.Fatal(err)
//	}
//	uk := g.CountryByCode("GBR")
//	fmt.Println(uk.Name(), uk.Capital(), uk.Currency()) // United Kingdom LON GBP
package gazetteer

import (
	"fmt"
	"log"
	"sync"

	"github.com/golang/geo/s2"
)

// GazetteerConfig contains configuration options for Gazetteer construction.
type GazetteerConfig struct {
	DataDir      string   // Directory whose data files override the embedded ones (default: none)
	SnapshotPath string   // msgpack snapshot to load instead of the data files
	HotCodes     []string // Codes probed first within their bucket
	BaseCurrency string   // Base currency code; empty uses DefaultBaseCurrency
}

// Option is a functional option for configuring a Gazetteer.
type Option func(*GazetteerConfig)

// WithDataDir sets a directory whose data files take precedence over the
// embedded copies, file by file.
func WithDataDir(dir string) Option {
	return func(c *GazetteerConfig) {
		c.DataDir = dir
	}
}

// WithSnapshot loads the dataset from a snapshot written by WriteSnapshot.
func WithSnapshot(path string) Option {
	return func(c *GazetteerConfig) {
		c.SnapshotPath = path
	}
}

// WithHotCodes makes each code the first probe of its alphabet bucket, in
// every table holding a code of that width. Lookups of other codes are
// unaffected apart from the extra probe.
func WithHotCodes(codes ...string) Option {
	return func(c *GazetteerConfig) {
		c.HotCodes = append(c.HotCodes, codes...)
	}
}

// WithBaseCurrency sets the base currency of the Gazetteer.
func WithBaseCurrency(code string) Option {
	return func(c *GazetteerConfig) {
		c.BaseCurrency = code
	}
}

// defaultConfig returns the default configuration.
func defaultConfig() *GazetteerConfig {
	return &GazetteerConfig{}
}

// cellLevel is the S2 level of the city position index. Level 6 cells are
// roughly 110-160 km wide, which keeps the index small for a city table of a
// few thousand rows.
const cellLevel = 6

// Gazetteer is the cross-reference store relating countries, cities,
// currencies, markets, UN/LOCODE locations, regions and subregions.
// Safe for concurrent use after construction.
type Gazetteer struct {
	currencies *table[CurrencyID, currencyRow]
	countries  *table[CountryID, countryRow]
	cities     *table[CityID, cityRow]
	markets    *table[MarketID, marketRow]
	locodes    *table[LocodeID, locodeRow]

	countryCapital     []CityID // one-to-one, indexed by CountryID
	countryCities      relation[CountryID, CityID]
	countryCurrencies  relation[CountryID, CurrencyID]
	currencyCountries  relation[CurrencyID, CountryID]
	cityMarkets        relation[CityID, MarketID]
	countryLocodes     relation[CountryID, LocodeID]
	regionCountries    relation[Region, CountryID]
	subRegionCountries relation[SubRegion, CountryID]

	subdivisionCodes *stringInterner[uint16]
	subdivisions     map[CountryID]map[string]Subdivision

	cellIndex    map[s2.CellID][]CityID
	baseCurrency CurrencyID
	config       *GazetteerConfig
}

// Singleton pattern for the default Gazetteer instance.
var (
	defaultGazetteer     *Gazetteer
	defaultGazetteerOnce sync.Once
	defaultGazetteerErr  error
)

// GetDefaultGazetteer returns a shared Gazetteer built from the embedded
// data, initializing it on first call.
func GetDefaultGazetteer() (*Gazetteer, error) {
	defaultGazetteerOnce.Do(func() {
		defaultGazetteer, defaultGazetteerErr = NewGazetteer()
	})
	return defaultGazetteer, defaultGazetteerErr
}

// NewGazetteer builds a Gazetteer from the embedded data files, or from the
// sources selected by opts:
//
//	g, err := NewGazetteer(WithDataDir("/etc/gazetteer"), WithHotCodes("USD", "LON"))
//
// Construction fails if any table is malformed, any reference between files
// does not resolve, or any invariant of the built tables does not hold.
func NewGazetteer(opts ...Option) (*Gazetteer, error) {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(cfg)
	}
	ds, err := loadSource(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to load data: %w", err)
	}
	return build(ds, cfg)
}

// build resolves the references of ds and constructs every table and relation.
func build(ds *dataset, cfg *GazetteerConfig) (*Gazetteer, error) {
	g := &Gazetteer{config: cfg}

	var err error
	if g.currencies, err = buildCurrencies(ds.Currencies); err != nil {
		return nil, err
	}
	if g.countries, err = buildCountries(ds.Countries, g.currencies); err != nil {
		return nil, err
	}
	if g.cities, err = buildCities(ds.Cities, g.countries); err != nil {
		return nil, err
	}
	if g.markets, err = buildMarkets(ds.Markets, g.cities); err != nil {
		return nil, err
	}
	g.subdivisionCodes = newStringInterner[uint16](len(ds.Subdivisions) + 1)
	if g.locodes, err = buildLocodes(ds.Locodes, g.countries, g.subdivisionCodes); err != nil {
		return nil, err
	}
	if g.subdivisions, err = buildSubdivisions(ds.Subdivisions, g.countries); err != nil {
		return nil, err
	}
	if err := g.buildRelations(ds.Tender); err != nil {
		return nil, err
	}
	g.buildCellIndex()

	for _, code := range cfg.HotCodes {
		if !g.seed(code) {
			log.Printf("warning: hot code %q is not defined in any table", code)
		}
	}
	if err := g.setBaseCurrency(cfg.BaseCurrency); err != nil {
		return nil, err
	}
	if err := g.Validate(); err != nil {
		return nil, err
	}
	return g, nil
}

// buildRelations derives every relation from the entity tables. Links are
// emitted in rank order, so relation lists come out in code order.
func (g *Gazetteer) buildRelations(tender []tenderRecord) error {
	g.countryCapital = make([]CityID, countryIDSpace)
	var cityLinks []link[CountryID, CityID]
	var err error
	g.cities.each(func(id CityID, row *cityRow) {
		cityLinks = append(cityLinks, link[CountryID, CityID]{row.country, id})
		if !row.capital {
			return
		}
		if prev := g.countryCapital[row.country]; prev.Valid() && err == nil {
			err = fmt.Errorf("%w: country %d has capitals %d and %d", ErrCorruptRelation, row.country, prev, id)
		}
		g.countryCapital[row.country] = id
	})
	if err != nil {
		return err
	}
	if g.countryCities, err = buildRelation("country cities", countryIDSpace, cityLinks); err != nil {
		return err
	}

	var marketLinks []link[CityID, MarketID]
	g.markets.each(func(id MarketID, row *marketRow) {
		marketLinks = append(marketLinks, link[CityID, MarketID]{row.city, id})
	})
	if g.cityMarkets, err = buildRelation("city markets", cityIDSpace, marketLinks); err != nil {
		return err
	}

	// Principal currencies first, so every list starts with its principal.
	var currencyLinks []link[CountryID, CurrencyID]
	var regionLinks []link[Region, CountryID]
	var subRegionLinks []link[SubRegion, CountryID]
	g.countries.each(func(id CountryID, row *countryRow) {
		if row.currency.Valid() {
			currencyLinks = append(currencyLinks, link[CountryID, CurrencyID]{id, row.currency})
		}
		if row.subRegion != NoSubRegion {
			regionLinks = append(regionLinks, link[Region, CountryID]{row.subRegion.Region(), id})
			subRegionLinks = append(subRegionLinks, link[SubRegion, CountryID]{row.subRegion, id})
		}
	})
	for _, t := range tender {
		country := g.countries.fromCode(t.Country)
		currency := g.currencies.fromCode(t.Currency)
		if !country.Valid() || !currency.Valid() {
			return fmt.Errorf("%w: tender %s %s", ErrInvalidReference, t.Country, t.Currency)
		}
		currencyLinks = append(currencyLinks, link[CountryID, CurrencyID]{country, currency})
	}
	if g.countryCurrencies, err = buildRelation("country currencies", countryIDSpace, currencyLinks); err != nil {
		return err
	}

	var inverse []link[CurrencyID, CountryID]
	g.countries.each(func(id CountryID, _ *countryRow) {
		for _, c := range g.countryCurrencies.list(id) {
			inverse = append(inverse, link[CurrencyID, CountryID]{c, id})
		}
	})
	if g.currencyCountries, err = buildRelation("currency countries", currencyIDSpace, inverse); err != nil {
		return err
	}

	if g.regionCountries, err = buildRelation("region countries", numRegions, regionLinks); err != nil {
		return err
	}
	if g.subRegionCountries, err = buildRelation("subregion countries", numSubRegions, subRegionLinks); err != nil {
		return err
	}

	var locodeLinks []link[CountryID, LocodeID]
	g.locodes.each(func(id LocodeID, row *locodeRow) {
		locodeLinks = append(locodeLinks, link[CountryID, LocodeID]{row.country, id})
	})
	g.countryLocodes, err = buildRelation("country locodes", countryIDSpace, locodeLinks)
	return err
}

// seed applies a hot code to every table with a coding of its width.
func (g *Gazetteer) seed(code string) bool {
	seeded := g.countries.seed(code)
	seeded = g.cities.seed(code) || seeded
	seeded = g.currencies.seed(code) || seeded
	seeded = g.markets.seed(code) || seeded
	seeded = g.locodes.seed(code) || seeded
	return seeded
}

// buildCellIndex creates an S2 cell index of city positions for NearestCity.
func (g *Gazetteer) buildCellIndex() {
	g.cellIndex = make(map[s2.CellID][]CityID)
	g.cities.each(func(id CityID, row *cityRow) {
		cell := cellOf(row.lat, row.lon)
		g.cellIndex[cell] = append(g.cellIndex[cell], id)
	})
}

// NumCountries returns the number of defined countries.
func (g *Gazetteer) NumCountries() int { return g.countries.len() }

// NumCities returns the number of defined cities.
func (g *Gazetteer) NumCities() int { return g.cities.len() }

// NumCurrencies returns the number of defined currencies.
func (g *Gazetteer) NumCurrencies() int { return g.currencies.len() }

// NumMarkets returns the number of defined markets.
func (g *Gazetteer) NumMarkets() int { return g.markets.len() }

// NumLocodes returns the number of defined UN/LOCODE locations.
func (g *Gazetteer) NumLocodes() int { return g.locodes.len() }

func (g *Gazetteer) countryViews(ids []CountryID) []Country {
	out := make([]Country, len(ids))
	for i, id := range ids {
		out[i] = Country{g: g, id: id}
	}
	return out
}

func (g *Gazetteer) cityViews(ids []CityID) []City {
	out := make([]City, len(ids))
	for i, id := range ids {
		out[i] = City{g: g, id: id}
	}
	return out
}

func (g *Gazetteer) currencyViews(ids []CurrencyID) []Currency {
	out := make([]Currency, len(ids))
	for i, id := range ids {
		out[i] = Currency{g: g, id: id}
	}
	return out
}

func (g *Gazetteer) marketViews(ids []MarketID) []Market {
	out := make([]Market, len(ids))
	for i, id := range ids {
		out[i] = Market{g: g, id: id}
	}
	return out
}

func (g *Gazetteer) locodeViews(ids []LocodeID) []Locode {
	out := make([]Locode, len(ids))
	for i, id := range ids {
		out[i] = Locode{g: g, id: id}
	}
	return out
}
