package gazetteer

import (
	"bufio"
	"fmt"
	"io"
)

// CodeReader reads whitespace-delimited codes from a text stream and
// resolves each to an entity. An unknown code yields the sentinel entity,
// not an error; errors come only from the underlying reader, with io.EOF at
// the end of input.
type CodeReader struct {
	g  *Gazetteer
	sc *bufio.Scanner
}

// NewCodeReader returns a CodeReader resolving codes read from r.
func (g *Gazetteer) NewCodeReader(r io.Reader) *CodeReader {
	sc := bufio.NewScanner(r)
	sc.Split(bufio.ScanWords)
	return &CodeReader{g: g, sc: sc}
}

func (cr *CodeReader) next() (string, error) {
	if cr.sc.Scan() {
		return cr.sc.Text(), nil
	}
	if err := cr.sc.Err(); err != nil {
		return "", fmt.Errorf("reading code: %w", err)
	}
	return "", io.EOF
}

// ReadCountry reads an alpha-2 or alpha-3 country code.
func (cr *CodeReader) ReadCountry() (Country, error) {
	code, err := cr.next()
	if err != nil {
		return cr.g.Country(NoCountry), err
	}
	return cr.g.CountryByCode(code), nil
}

// ReadCity reads an IATA city code or a UN/LOCODE.
func (cr *CodeReader) ReadCity() (City, error) {
	code, err := cr.next()
	if err != nil {
		return cr.g.City(NoCity), err
	}
	return cr.g.CityByCode(code), nil
}

// ReadCurrency reads an ISO 4217 currency code.
func (cr *CodeReader) ReadCurrency() (Currency, error) {
	code, err := cr.next()
	if err != nil {
		return cr.g.Currency(NoCurrency), err
	}
	return cr.g.CurrencyByCode(code), nil
}

// ReadMarket reads a market identifier code.
func (cr *CodeReader) ReadMarket() (Market, error) {
	code, err := cr.next()
	if err != nil {
		return cr.g.Market(NoMarket), err
	}
	return cr.g.MarketByCode(code), nil
}

// ReadLocode reads a five-character UN/LOCODE.
func (cr *CodeReader) ReadLocode() (Locode, error) {
	code, err := cr.next()
	if err != nil {
		return cr.g.Locode(NoLocode), err
	}
	return cr.g.LocodeByCode(code), nil
}

// Coded is an entity with a canonical code.
type Coded interface {
	Code() string
}

// WriteCode writes the canonical code of e to w. The sentinel entity writes
// its placeholder code, which reads back as the sentinel.
func WriteCode(w io.Writer, e Coded) error {
	_, err := io.WriteString(w, e.Code())
	return err
}
