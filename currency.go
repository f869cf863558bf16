package gazetteer

// CurrencyID is the ISO 4217 numeric code of a currency.
type CurrencyID uint16

// NoCurrency is the sentinel currency.
const NoCurrency CurrencyID = 0

// currencyIDSpace covers every three-digit ISO 4217 numeric code.
const currencyIDSpace = 1000

// Valid reports whether id is not the sentinel. It does not check that the
// currency is defined; undefined IDs behave like the sentinel everywhere.
func (id CurrencyID) Valid() bool { return id != NoCurrency }

type currencyRow struct {
	id   CurrencyID
	code string
	name string
}

var currencySentinel = currencyRow{code: noCode(3)}

func buildCurrencies(recs []currencyRecord) (*table[CurrencyID, currencyRow], error) {
	rows := make([]currencyRow, len(recs))
	for i, rec := range recs {
		rows[i] = currencyRow{id: CurrencyID(rec.ID), code: rec.Code, name: rec.Name}
	}
	return buildTable("currency", currencyIDSpace, currencySentinel, rows,
		func(r *currencyRow) CurrencyID { return r.id },
		coding[currencyRow]{3, func(r *currencyRow) string { return r.code }},
	)
}

// CurrencyFromCode resolves a three-letter ISO 4217 code.
func (g *Gazetteer) CurrencyFromCode(code string) CurrencyID {
	return g.currencies.fromCode(code)
}

// CurrencyCode returns the three-letter code of id.
func (g *Gazetteer) CurrencyCode(id CurrencyID) string {
	return g.currencies.row(id).code
}

// CurrencyName returns the display name of id.
func (g *Gazetteer) CurrencyName(id CurrencyID) string {
	return g.currencies.row(id).name
}

// CurrencyCountries returns every country where id is legal tender.
func (g *Gazetteer) CurrencyCountries(id CurrencyID) []CountryID {
	return g.currencyCountries.list(id)
}

// Currency is a read-only view of one currency.
type Currency struct {
	g  *Gazetteer
	id CurrencyID
}

// Currency returns the view of id; undefined IDs give the sentinel view.
func (g *Gazetteer) Currency(id CurrencyID) Currency {
	return Currency{g: g, id: g.currencies.row(id).id}
}

// CurrencyByCode resolves code and returns its view.
func (g *Gazetteer) CurrencyByCode(code string) Currency {
	return Currency{g: g, id: g.CurrencyFromCode(code)}
}

// ID returns the ISO 4217 numeric ID of the currency.
func (c Currency) ID() CurrencyID { return c.id }

// Valid reports whether c is a defined currency.
func (c Currency) Valid() bool { return c.id.Valid() }

// Code returns the three-letter code.
func (c Currency) Code() string { return c.g.CurrencyCode(c.id) }

// Name returns the display name.
func (c Currency) Name() string { return c.g.CurrencyName(c.id) }

// String returns the three-letter code.
func (c Currency) String() string { return c.Code() }

// Countries returns the countries where c is legal tender.
func (c Currency) Countries() []Country {
	return c.g.countryViews(c.g.CurrencyCountries(c.id))
}
