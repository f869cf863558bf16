package gazetteer

import (
	"math"
	"slices"
	"sync"
	"testing"

	. "gopkg.in/check.v1"
)

// Hook up gocheck into the "go test" runner.
func Test(t *testing.T) { TestingT(t) }

type GazetteerSuite struct {
	g *Gazetteer
}

var _ = Suite(&GazetteerSuite{})

// testGazetteer returns the shared Gazetteer built from the embedded data.
func testGazetteer(t testing.TB) *Gazetteer {
	t.Helper()
	g, err := GetDefaultGazetteer()
	if err != nil {
		t.Fatalf("GetDefaultGazetteer: %v", err)
	}
	return g
}

func (s *GazetteerSuite) SetUpSuite(c *C) {
	var err error
	s.g, err = NewGazetteer()
	c.Assert(err, IsNil)
	c.Assert(s.g, NotNil)
}

func (s *GazetteerSuite) TestTableSizes(c *C) {
	c.Assert(s.g.NumCountries(), Equals, 250)
	c.Assert(s.g.NumCities(), Equals, 205)
	c.Assert(s.g.NumCurrencies() > 150, Equals, true)
	c.Assert(s.g.NumMarkets() > 60, Equals, true)
	c.Assert(s.g.NumLocodes() > 50, Equals, true)
}

func (s *GazetteerSuite) TestUnitedKingdom(c *C) {
	uk := s.g.CountryByCode("GBR")
	c.Assert(uk.Valid(), Equals, true)
	c.Assert(uk.Name(), Equals, "United Kingdom")
	c.Assert(uk.Capital().Code(), Equals, "LON")
	c.Assert(uk.Currency().Code(), Equals, "GBP")
	c.Assert(uk.Alpha2(), Equals, "GB")
	c.Assert(uk.ID(), Equals, CountryID(826))
	c.Assert(uk.ID().Numeric(), Equals, "826")
	c.Assert(uk.Region(), Equals, Europe)
	c.Assert(uk.SubRegion(), Equals, NorthernEurope)
	c.Assert(uk.String(), Equals, "GBR")

	// Both codings resolve to the same country.
	c.Assert(s.g.CountryFromCode("GB"), Equals, uk.ID())
	c.Assert(s.g.CountryFromNumeric("826"), Equals, uk.ID())
}

func (s *GazetteerSuite) TestNewYork(c *C) {
	nyc := s.g.CityByCode("NYC")
	c.Assert(nyc.Valid(), Equals, true)
	c.Assert(nyc.Country().Code(), Equals, "USA")
	c.Assert(nyc.Region(), Equals, Americas)
	c.Assert(nyc.SubRegion(), Equals, NorthernAmerica)
	c.Assert(nyc.SubRegion().String(), Equals, "Northern America")
	c.Assert(nyc.IsCapital(), Equals, false)

	var mics []string
	for _, m := range nyc.Markets() {
		mics = append(mics, m.Code())
	}
	c.Assert(slices.Contains(mics, "XNYS"), Equals, true)
	c.Assert(slices.Contains(mics, "XNAS"), Equals, true)
}

func (s *GazetteerSuite) TestEuro(c *C) {
	eur := s.g.CurrencyByCode("EUR")
	c.Assert(eur.Valid(), Equals, true)
	c.Assert(eur.ID(), Equals, CurrencyID(978))

	var codes []string
	for _, country := range eur.Countries() {
		codes = append(codes, country.Code())
	}
	c.Assert(len(codes) > 30, Equals, true)
	for _, want := range []string{"FRA", "DEU", "ESP"} {
		c.Assert(slices.Contains(codes, want), Equals, true, Commentf("missing %s", want))
	}
}

func (s *GazetteerSuite) TestWrongWidth(c *C) {
	c.Assert(s.g.CityFromCode("LOND"), Equals, NoCity)
	c.Assert(s.g.CityFromCode("LO"), Equals, NoCity)
	c.Assert(s.g.CurrencyFromCode("EURO"), Equals, NoCurrency)
	c.Assert(s.g.CountryFromCode("GBRT"), Equals, NoCountry)
	c.Assert(s.g.CountryFromCode(""), Equals, NoCountry)
	c.Assert(s.g.cities.index(4), IsNil)
}

func (s *GazetteerSuite) TestDualCityCoding(c *C) {
	byIATA := s.g.CityFromCode("LON")
	byLocode := s.g.CityFromCode("GBLON")
	c.Assert(byIATA.Valid(), Equals, true)
	c.Assert(byLocode, Equals, byIATA)
	c.Assert(s.g.CityLocode(byIATA), Equals, "GBLON")
	c.Assert(s.g.CityName(byLocode), Equals, "London")
	c.Assert(byIATA, Equals, CityID(10))
}

func (s *GazetteerSuite) TestRoundTrip(c *C) {
	g := s.g
	g.countries.each(func(id CountryID, row *countryRow) {
		c.Assert(g.CountryFromCode(row.alpha3), Equals, id)
		c.Assert(g.CountryFromCode(row.alpha2), Equals, id)
		c.Assert(g.CountryAlpha3(g.CountryFromCode(row.alpha3)), Equals, row.alpha3)
	})
	g.cities.each(func(id CityID, row *cityRow) {
		c.Assert(g.CityCode(g.CityFromCode(row.code)), Equals, row.code)
		c.Assert(g.CityLocode(g.CityFromCode(row.locode)), Equals, row.locode)
	})
	g.currencies.each(func(id CurrencyID, row *currencyRow) {
		c.Assert(g.CurrencyCode(g.CurrencyFromCode(row.code)), Equals, row.code)
	})
	g.markets.each(func(id MarketID, row *marketRow) {
		c.Assert(g.MarketCode(g.MarketFromCode(row.code)), Equals, row.code)
	})
	g.locodes.each(func(id LocodeID, row *locodeRow) {
		c.Assert(g.LocodeCode(g.LocodeFromCode(row.code)), Equals, row.code)
	})
}

func (s *GazetteerSuite) TestPermutationBijection(c *C) {
	ids := s.g.countries.ids
	for r := 1; r < len(ids.toExternal); r++ {
		c.Assert(ids.rank(ids.external(Rank(r))), Equals, Rank(r))
	}
	for id := 0; id < ids.space(); id++ {
		if r := ids.rank(CountryID(id)); r != 0 {
			c.Assert(ids.external(r), Equals, CountryID(id))
		}
	}
	c.Assert(ids.rank(NoCountry), Equals, Rank(0))
	c.Assert(ids.rank(CountryID(1)), Equals, Rank(0))
}

func (s *GazetteerSuite) TestOrderPreservation(c *C) {
	x := s.g.countries.index(3)
	for b := byte('A'); b <= 'Z'; b++ {
		low, high := x.bucket(b)
		for pos := low + 1; pos < high; pos++ {
			c.Assert(x.codes[pos-1] < x.codes[pos], Equals, true)
			c.Assert(x.lookup(x.codes[pos-1]) < x.lookup(x.codes[pos]), Equals, true)
			// Canonical ranks follow the primary coding.
			c.Assert(x.resolve(x.codes[pos-1]) < x.resolve(x.codes[pos]), Equals, true)
		}
	}
}

func (s *GazetteerSuite) TestSentinelSafety(c *C) {
	g := s.g
	for _, code := range []string{"QQQ", "ZZZ", "---", "gbr", "G1R"} {
		c.Assert(g.CountryFromCode(code), Equals, NoCountry)
		c.Assert(g.CityFromCode(code), Equals, NoCity)
		c.Assert(g.CurrencyFromCode(code), Equals, NoCurrency)
	}

	for _, id := range []CountryID{NoCountry, 1, 999, 65535} {
		c.Assert(g.CountryCities(id), DeepEquals, []CityID{})
		c.Assert(g.CountryCurrencies(id), DeepEquals, []CurrencyID{})
		c.Assert(g.CountryMarkets(id), DeepEquals, []MarketID{})
		c.Assert(g.CountryLocodes(id), DeepEquals, []LocodeID{})
		c.Assert(g.CountryCapital(id), Equals, NoCity)
		c.Assert(g.CountryCurrency(id), Equals, NoCurrency)
		c.Assert(g.CountryRegion(id), Equals, NoRegion)
		c.Assert(g.CountryName(id), Equals, "")
		c.Assert(g.CountryAlpha3(id), Equals, "---")
		c.Assert(g.Country(id).Valid(), Equals, false)
	}
	for _, id := range []CityID{NoCity, 5, 4095, 65535} {
		c.Assert(g.CityMarkets(id), DeepEquals, []MarketID{})
		c.Assert(g.CityCountry(id), Equals, NoCountry)
		c.Assert(g.CityCode(id), Equals, "---")
		c.Assert(g.CityLocodeID(id), Equals, NoLocode)
		c.Assert(g.City(id).IsCapital(), Equals, false)
	}
	c.Assert(g.CurrencyCountries(NoCurrency), DeepEquals, []CountryID{})
	c.Assert(g.CurrencyCountries(65535), DeepEquals, []CountryID{})
	c.Assert(g.MarketCity(NoMarket), Equals, NoCity)
	c.Assert(g.MarketCountry(NoMarket), Equals, NoCountry)
	c.Assert(g.LocodeCountry(NoLocode), Equals, NoCountry)
	c.Assert(g.RegionCountries(NoRegion), DeepEquals, []CountryID{})
	c.Assert(g.RegionCountries(Region(200)), DeepEquals, []CountryID{})
	c.Assert(g.SubRegionCountries(NoSubRegion), DeepEquals, []CountryID{})

	// Sentinel views chain into further sentinels.
	none := g.CountryByCode("QQQ")
	c.Assert(none.Capital().Country().Currency().Code(), Equals, "---")
	c.Assert(none.Cities(), HasLen, 0)
}

func (s *GazetteerSuite) TestRelationConsistency(c *C) {
	g := s.g
	g.cities.each(func(id CityID, row *cityRow) {
		c.Assert(slices.Contains(g.CountryCities(g.CityCountry(id)), id), Equals, true,
			Commentf("city %s", row.code))
	})
	g.markets.each(func(id MarketID, _ *marketRow) {
		c.Assert(slices.Contains(g.CountryMarkets(g.MarketCountry(id)), id), Equals, true)
	})
}

func (s *GazetteerSuite) TestPrincipalCurrencyMembership(c *C) {
	g := s.g
	g.countries.each(func(id CountryID, row *countryRow) {
		currencies := g.CountryCurrencies(id)
		if len(currencies) > 1 {
			c.Assert(slices.Contains(currencies, g.CountryCurrency(id)), Equals, true)
		}
		if g.CountryCurrency(id).Valid() {
			c.Assert(currencies[0], Equals, g.CountryCurrency(id), Commentf("country %s", row.alpha3))
		}
	})

	panama := g.CountryByCode("PAN")
	var codes []string
	for _, cur := range panama.Currencies() {
		codes = append(codes, cur.Code())
	}
	c.Assert(codes, DeepEquals, []string{"PAB", "USD"})
	c.Assert(slices.Contains(g.CurrencyCountries(g.CurrencyFromCode("USD")), panama.ID()), Equals, true)
}

func (s *GazetteerSuite) TestCapitals(c *C) {
	tests := []struct{ country, capital string }{
		{"FRA", "PAR"},
		{"USA", "WAS"},
		{"JPN", "TYO"},
		{"KEN", "NBO"},
	}
	for _, tc := range tests {
		capital := s.g.CountryByCode(tc.country).Capital()
		c.Assert(capital.Code(), Equals, tc.capital)
		c.Assert(capital.IsCapital(), Equals, true)
	}
	// Sydney is not the capital of Australia.
	c.Assert(s.g.CityByCode("SYD").IsCapital(), Equals, false)
}

func (s *GazetteerSuite) TestAntarctica(c *C) {
	aq := s.g.CountryByCode("ATA")
	c.Assert(aq.Valid(), Equals, true)
	c.Assert(aq.Region(), Equals, NoRegion)
	c.Assert(aq.SubRegion(), Equals, NoSubRegion)
	c.Assert(aq.Currency().Valid(), Equals, false)
	c.Assert(aq.Currencies(), HasLen, 0)
	c.Assert(slices.Contains(s.g.RegionCountries(NoRegion), aq.ID()), Equals, false)
}

func (s *GazetteerSuite) TestRegionGroupings(c *C) {
	g := s.g
	total := 0
	for r := Region(1); int(r) < numRegions; r++ {
		countries := g.RegionCountries(r)
		c.Assert(len(countries) > 0, Equals, true)
		total += len(countries)
		for _, id := range countries {
			c.Assert(g.CountryRegion(id), Equals, r)
		}
		for _, sub := range r.SubRegions() {
			for _, id := range g.SubRegionCountries(sub) {
				c.Assert(slices.Contains(countries, id), Equals, true)
			}
		}
	}
	// Every country but Antarctica belongs to a region.
	c.Assert(total, Equals, g.NumCountries()-1)
}

func (s *GazetteerSuite) TestCountryViews(c *C) {
	us := s.g.CountryByCode("US")
	c.Assert(us.Code(), Equals, "USA")

	cities := us.Cities()
	c.Assert(len(cities) > 5, Equals, true)
	for i := 1; i < len(cities); i++ {
		c.Assert(cities[i-1].Code() < cities[i].Code(), Equals, true)
	}
	markets := us.Markets()
	c.Assert(len(markets) >= 2, Equals, true)
	for _, m := range markets {
		c.Assert(m.Country().ID(), Equals, us.ID())
	}
	for _, l := range s.g.CountryByCode("GBR").Locodes() {
		c.Assert(l.Country().Alpha2(), Equals, "GB")
	}
}

func (s *GazetteerSuite) TestCityLocodeEntry(c *C) {
	lon := s.g.CityByCode("LON")
	entry := lon.LocodeEntry()
	c.Assert(entry.Valid(), Equals, true)
	c.Assert(entry.Code(), Equals, "GBLON")
	c.Assert(entry.Name(), Equals, "London")
}

func (s *GazetteerSuite) TestHotCodes(c *C) {
	g, err := NewGazetteer(WithHotCodes("USD", "LON", "GBLON", "XNYS", "QQQ"))
	c.Assert(err, IsNil)

	x := g.currencies.index(3)
	c.Assert(x.seeds['U'-'A'], Equals, x.lookup("USD"))
	c.Assert(g.CurrencyFromCode("USD"), Equals, CurrencyID(840))
	c.Assert(g.CurrencyFromCode("UAH"), Equals, s.g.CurrencyFromCode("UAH"))
	c.Assert(g.CityFromCode("LON"), Equals, CityID(10))
	c.Assert(g.CityFromCode("GBLON"), Equals, CityID(10))
	c.Assert(g.MarketFromCode("XNYS"), Equals, s.g.MarketFromCode("XNYS"))
	c.Assert(g.Validate(), IsNil)
}

func (s *GazetteerSuite) TestConcurrentReads(c *C) {
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 200; j++ {
				if s.g.CountryByCode("GBR").Capital().Code() != "LON" {
					c.Error("concurrent read returned a wrong capital")
					return
				}
				s.g.CurrencyCountries(s.g.CurrencyFromCode("EUR"))
			}
		}()
	}
	wg.Wait()
}

func (s *GazetteerSuite) TestGetDefaultGazetteer(c *C) {
	a, err := GetDefaultGazetteer()
	c.Assert(err, IsNil)
	b, err := GetDefaultGazetteer()
	c.Assert(err, IsNil)
	c.Assert(a == b, Equals, true)
}

func (s *GazetteerSuite) TestCityDistanceView(c *C) {
	lon, par := s.g.CityByCode("LON"), s.g.CityByCode("PAR")
	d := lon.DistanceTo(par)
	c.Assert(d > 330e3 && d < 360e3, Equals, true, Commentf("distance %f", d))
	c.Assert(math.IsNaN(lon.DistanceTo(s.g.City(NoCity))), Equals, true)
}

func BenchmarkNewGazetteer(b *testing.B) {
	for n := 0; n < b.N; n++ {
		if _, err := NewGazetteer(); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkCountryFromCode(b *testing.B) {
	g := testGazetteer(b)
	b.ResetTimer()
	for n := 0; n < b.N; n++ {
		g.CountryFromCode("GBR")
	}
}

func BenchmarkCountryCurrencies(b *testing.B) {
	g := testGazetteer(b)
	id := g.CountryFromCode("PAN")
	b.ResetTimer()
	for n := 0; n < b.N; n++ {
		g.CountryCurrencies(id)
	}
}
