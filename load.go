package gazetteer

import (
	"bufio"
	"compress/bzip2"
	"embed"
	"fmt"
	"io"
	"io/fs"
	"log"
	"os"
	"path"
	"path/filepath"
	"strconv"
	"strings"

	"fortio.org/safecast"
	"golang.org/x/sync/errgroup"
)

//go:embed gazetteer-data
var embeddedData embed.FS

// dataDirName is the directory of the embedded data files.
const dataDirName = "gazetteer-data"

// Data file names, relative to the data directory.
const (
	currenciesFile   = "currencies.tsv"
	countriesFile    = "countries.tsv"
	tenderFile       = "tender.tsv"
	citiesFile       = "cities.tsv"
	marketsFile      = "markets.tsv"
	locodesFile      = "locodes.tsv"
	subdivisionsFile = "subdivisions.tsv"
)

// noValue marks an empty optional column in a data file.
const noValue = "-"

type currencyRecord struct {
	ID   uint16 `msgpack:"id"`
	Code string `msgpack:"code"`
	Name string `msgpack:"name"`
}

type countryRecord struct {
	ID        uint16 `msgpack:"id"`
	Alpha2    string `msgpack:"alpha2"`
	Alpha3    string `msgpack:"alpha3"`
	Currency  string `msgpack:"currency,omitempty"`
	SubRegion string `msgpack:"subregion,omitempty"`
	Name      string `msgpack:"name"`
}

// tenderRecord lists a currency accepted by a country besides its principal one.
type tenderRecord struct {
	Country  string `msgpack:"country"`
	Currency string `msgpack:"currency"`
}

type cityRecord struct {
	ID      uint16  `msgpack:"id"`
	Code    string  `msgpack:"code"`
	Locode  string  `msgpack:"locode"`
	Country string  `msgpack:"country"`
	Capital bool    `msgpack:"capital,omitempty"`
	Lat     float64 `msgpack:"lat"`
	Lon     float64 `msgpack:"lon"`
	Name    string  `msgpack:"name"`
}

type marketRecord struct {
	ID   uint16 `msgpack:"id"`
	Code string `msgpack:"code"`
	City string `msgpack:"city"`
	Name string `msgpack:"name"`
}

type locodeRecord struct {
	ID          uint16 `msgpack:"id"`
	Code        string `msgpack:"code"`
	Function    string `msgpack:"function"`
	Status      string `msgpack:"status"`
	Coordinates string `msgpack:"coordinates,omitempty"`
	Subdivision string `msgpack:"subdivision,omitempty"`
	Name        string `msgpack:"name"`
}

type subdivisionRecord struct {
	Code string `msgpack:"code"`
	Name string `msgpack:"name"`
}

// dataset is the frozen source of every table, before resolution of the
// references between files.
type dataset struct {
	Schema       int                 `msgpack:"schema"`
	Currencies   []currencyRecord    `msgpack:"currencies"`
	Countries    []countryRecord     `msgpack:"countries"`
	Tender       []tenderRecord      `msgpack:"tender"`
	Cities       []cityRecord        `msgpack:"cities"`
	Markets      []marketRecord      `msgpack:"markets"`
	Locodes      []locodeRecord      `msgpack:"locodes"`
	Subdivisions []subdivisionRecord `msgpack:"subdivisions"`
}

// openDataFile opens a data file, preferring the filesystem override in dir
// over the embedded copy.
func openDataFile(dir, name string) (fs.File, error) {
	if dir != "" {
		if fh, err := os.Open(filepath.Join(dir, name)); err == nil {
			log.Printf("info: using %s from %s", name, dir)
			return fh, nil
		}
	}
	return embeddedData.Open(path.Join(dataDirName, name))
}

// openOptionallyBzippedFile opens name or its bzip2-compressed variant,
// preferring the compressed one.
func openOptionallyBzippedFile(dir, name string) (io.Reader, func() error, error) {
	fh, err := openDataFile(dir, name+".bz2")
	if err != nil {
		fh, err = openDataFile(dir, name)
		if err != nil {
			return nil, nil, fmt.Errorf("opening %s: %w", name, err)
		}
		return fh, fh.Close, nil
	}
	return bzip2.NewReader(fh), fh.Close, nil
}

// loadDataset reads and parses every data file concurrently.
func loadDataset(dir string) (*dataset, error) {
	ds := &dataset{Schema: snapshotSchema}
	var eg errgroup.Group
	eg.Go(func() error { return readDataFile(dir, currenciesFile, 3, parseCurrency(&ds.Currencies)) })
	eg.Go(func() error { return readDataFile(dir, countriesFile, 6, parseCountry(&ds.Countries)) })
	eg.Go(func() error { return readDataFile(dir, tenderFile, 2, parseTender(&ds.Tender)) })
	eg.Go(func() error { return readDataFile(dir, citiesFile, 8, parseCity(&ds.Cities)) })
	eg.Go(func() error { return readDataFile(dir, marketsFile, 4, parseMarket(&ds.Markets)) })
	eg.Go(func() error { return readDataFile(dir, locodesFile, 7, parseLocode(&ds.Locodes)) })
	eg.Go(func() error { return readDataFile(dir, subdivisionsFile, 2, parseSubdivision(&ds.Subdivisions)) })
	if err := eg.Wait(); err != nil {
		return nil, err
	}
	return ds, nil
}

// readDataFile parses a tab-separated file of records with a fixed number of
// columns. Blank lines and lines starting with '#' are skipped.
func readDataFile(dir, name string, columns int, parse func(fields []string) error) error {
	r, cleanup, err := openOptionallyBzippedFile(dir, name)
	if err != nil {
		return err
	}
	defer cleanup()

	sc := bufio.NewScanner(r)
	line := 0
	for sc.Scan() {
		line++
		text := strings.TrimRight(sc.Text(), "\r")
		if text == "" || strings.HasPrefix(text, "#") {
			continue
		}
		fields := strings.Split(text, "\t")
		if len(fields) != columns {
			return fmt.Errorf("%s:%d: %w: %d columns, want %d", name, line, ErrMalformedRecord, len(fields), columns)
		}
		for i, f := range fields {
			if f == noValue {
				fields[i] = ""
			}
		}
		if err := parse(fields); err != nil {
			return fmt.Errorf("%s:%d: %w", name, line, err)
		}
	}
	if err := sc.Err(); err != nil {
		return fmt.Errorf("reading %s: %w", name, err)
	}
	return nil
}

func parseID(s string) (uint16, error) {
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("%w: id %q", ErrMalformedRecord, s)
	}
	id, err := safecast.Conv[uint16](n)
	if err != nil {
		return 0, fmt.Errorf("%w: id %q: %w", ErrMalformedRecord, s, err)
	}
	return id, nil
}

func parseDegrees(s string) (float64, error) {
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: position %q", ErrMalformedRecord, s)
	}
	return v, nil
}

func parseCurrency(out *[]currencyRecord) func([]string) error {
	return func(f []string) error {
		id, err := parseID(f[0])
		if err != nil {
			return err
		}
		*out = append(*out, currencyRecord{ID: id, Code: f[1], Name: f[2]})
		return nil
	}
}

func parseCountry(out *[]countryRecord) func([]string) error {
	return func(f []string) error {
		id, err := parseID(f[0])
		if err != nil {
			return err
		}
		*out = append(*out, countryRecord{
			ID:        id,
			Alpha2:    f[1],
			Alpha3:    f[2],
			Currency:  f[3],
			SubRegion: f[4],
			Name:      f[5],
		})
		return nil
	}
}

func parseTender(out *[]tenderRecord) func([]string) error {
	return func(f []string) error {
		*out = append(*out, tenderRecord{Country: f[0], Currency: f[1]})
		return nil
	}
}

func parseCity(out *[]cityRecord) func([]string) error {
	return func(f []string) error {
		id, err := parseID(f[0])
		if err != nil {
			return err
		}
		var capital bool
		switch f[4] {
		case "C":
			capital = true
		case "":
		default:
			return fmt.Errorf("%w: capital flag %q", ErrMalformedRecord, f[4])
		}
		lat, err := parseDegrees(f[5])
		if err != nil {
			return err
		}
		lon, err := parseDegrees(f[6])
		if err != nil {
			return err
		}
		*out = append(*out, cityRecord{
			ID:      id,
			Code:    f[1],
			Locode:  f[2],
			Country: f[3],
			Capital: capital,
			Lat:     lat,
			Lon:     lon,
			Name:    f[7],
		})
		return nil
	}
}

func parseMarket(out *[]marketRecord) func([]string) error {
	return func(f []string) error {
		id, err := parseID(f[0])
		if err != nil {
			return err
		}
		*out = append(*out, marketRecord{ID: id, Code: f[1], City: f[2], Name: f[3]})
		return nil
	}
}

func parseLocode(out *[]locodeRecord) func([]string) error {
	return func(f []string) error {
		id, err := parseID(f[0])
		if err != nil {
			return err
		}
		*out = append(*out, locodeRecord{
			ID:          id,
			Code:        f[1],
			Function:    f[2],
			Status:      f[3],
			Coordinates: f[4],
			Subdivision: f[5],
			Name:        f[6],
		})
		return nil
	}
}

func parseSubdivision(out *[]subdivisionRecord) func([]string) error {
	return func(f []string) error {
		*out = append(*out, subdivisionRecord{Code: f[0], Name: f[1]})
		return nil
	}
}
