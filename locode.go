package gazetteer

import (
	"fmt"
	"strconv"
	"strings"
)

// LocodeID is the stable external ID of a UN/LOCODE location.
type LocodeID uint16

// NoLocode is the sentinel location.
const NoLocode LocodeID = 0

const locodeIDSpace = 4096

// Valid reports whether id is not the sentinel.
func (id LocodeID) Valid() bool { return id != NoLocode }

// Function is the set of transport functions of a UN/LOCODE location.
type Function uint8

const (
	FunctionPort Function = 1 << iota
	FunctionRail
	FunctionRoad
	FunctionAirport
	FunctionPostal
	FunctionMultimodal
	FunctionFixedTransport
	FunctionBorderCrossing
)

// functionLetters holds the character of each function bit at its column in
// the eight-character UN/LOCODE function field.
const functionLetters = "1234567B"

// parseFunction decodes a function field such as "1234----" or "0-------".
func parseFunction(s string) (Function, error) {
	if len(s) != len(functionLetters) {
		return 0, fmt.Errorf("%w: function %q", ErrMalformedRecord, s)
	}
	if s[0] == '0' {
		if strings.Trim(s[1:], "-") != "" {
			return 0, fmt.Errorf("%w: function %q", ErrMalformedRecord, s)
		}
		return 0, nil
	}
	var f Function
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '-':
		case functionLetters[i]:
			f |= 1 << i
		default:
			return 0, fmt.Errorf("%w: function %q", ErrMalformedRecord, s)
		}
	}
	return f, nil
}

// Has reports whether every function in x is set in f.
func (f Function) Has(x Function) bool { return f&x == x }

// String returns the UN/LOCODE function field of f.
func (f Function) String() string {
	if f == 0 {
		return "0-------"
	}
	b := []byte("--------")
	for i := range b {
		if f&(1<<i) != 0 {
			b[i] = functionLetters[i]
		}
	}
	return string(b)
}

// Status is the UN/LOCODE entry status.
type Status uint8

const (
	StatusUnknown Status = iota
	StatusApprovedGovernment
	StatusApprovedCustoms
	StatusApprovedFacilitation
	StatusInternational
	StatusApprovedStandardisation
	StatusApprovedUnverified
	StatusNotVerified
	StatusRecognised
	StatusRequestNational
	StatusRequested
	StatusRejected
	StatusUserRequest
	StatusToBeRemoved

	numStatuses = int(StatusToBeRemoved) + 1
)

var statusCodes = [numStatuses]string{
	StatusUnknown:                 "",
	StatusApprovedGovernment:      "AA",
	StatusApprovedCustoms:         "AC",
	StatusApprovedFacilitation:    "AF",
	StatusInternational:           "AI",
	StatusApprovedStandardisation: "AS",
	StatusApprovedUnverified:      "AQ",
	StatusNotVerified:             "QQ",
	StatusRecognised:              "RL",
	StatusRequestNational:         "RN",
	StatusRequested:               "RQ",
	StatusRejected:                "RR",
	StatusUserRequest:             "UR",
	StatusToBeRemoved:             "XX",
}

func parseStatus(code string) (Status, error) {
	for s := Status(1); int(s) < numStatuses; s++ {
		if statusCodes[s] == code {
			return s, nil
		}
	}
	return StatusUnknown, fmt.Errorf("%w: status %q", ErrMalformedRecord, code)
}

// String returns the two-letter UN/LOCODE status code.
func (s Status) String() string {
	if int(s) >= numStatuses {
		return ""
	}
	return statusCodes[s]
}

// Approved reports whether the entry has been approved by a competent body.
func (s Status) Approved() bool {
	return s >= StatusApprovedGovernment && s <= StatusApprovedUnverified
}

// parseCoordinates decodes the UN/LOCODE "DDMMN DDDMME" position form.
// An empty field means the location has no recorded position.
func parseCoordinates(s string) (lat, lon float64, ok bool, err error) {
	if s == "" {
		return 0, 0, false, nil
	}
	parts := strings.Fields(s)
	if len(parts) != 2 || len(parts[0]) != 5 || len(parts[1]) != 6 {
		return 0, 0, false, fmt.Errorf("%w: coordinates %q", ErrMalformedRecord, s)
	}
	lat, err = parseAngle(parts[0], 2, 'N', 'S', 90)
	if err != nil {
		return 0, 0, false, fmt.Errorf("coordinates %q: %w", s, err)
	}
	lon, err = parseAngle(parts[1], 3, 'E', 'W', 180)
	if err != nil {
		return 0, 0, false, fmt.Errorf("coordinates %q: %w", s, err)
	}
	return lat, lon, true, nil
}

func parseAngle(s string, degDigits int, pos, neg byte, limit int) (float64, error) {
	deg, err := strconv.Atoi(s[:degDigits])
	if err != nil {
		return 0, fmt.Errorf("%w: degrees %q", ErrMalformedRecord, s)
	}
	minutes, err := strconv.Atoi(s[degDigits : degDigits+2])
	if err != nil || minutes >= 60 || deg > limit {
		return 0, fmt.Errorf("%w: angle %q", ErrMalformedRecord, s)
	}
	v := float64(deg) + float64(minutes)/60
	switch s[len(s)-1] {
	case pos:
		return v, nil
	case neg:
		return -v, nil
	}
	return 0, fmt.Errorf("%w: hemisphere in %q", ErrMalformedRecord, s)
}

type locodeRow struct {
	id          LocodeID
	code        string
	name        string
	function    Function
	status      Status
	lat, lon    float64
	hasPosition bool
	country     CountryID
	subdivision uint16 // index into Gazetteer.subdivisionCodes
}

var locodeSentinel = locodeRow{code: noCode(5)}

func buildLocodes(recs []locodeRecord, countries *table[CountryID, countryRow], subdivisions *stringInterner[uint16]) (*table[LocodeID, locodeRow], error) {
	rows := make([]locodeRow, len(recs))
	for i, rec := range recs {
		if len(rec.Code) != 5 {
			return nil, fmt.Errorf("%w: locode %q", ErrMalformedRecord, rec.Code)
		}
		country := countries.fromCode(rec.Code[:2])
		if !country.Valid() {
			return nil, fmt.Errorf("%w: locode %s: country %q", ErrInvalidReference, rec.Code, rec.Code[:2])
		}
		fn, err := parseFunction(rec.Function)
		if err != nil {
			return nil, fmt.Errorf("locode %s: %w", rec.Code, err)
		}
		status, err := parseStatus(rec.Status)
		if err != nil {
			return nil, fmt.Errorf("locode %s: %w", rec.Code, err)
		}
		lat, lon, ok, err := parseCoordinates(rec.Coordinates)
		if err != nil {
			return nil, fmt.Errorf("locode %s: %w", rec.Code, err)
		}
		rows[i] = locodeRow{
			id:          LocodeID(rec.ID),
			code:        rec.Code,
			name:        rec.Name,
			function:    fn,
			status:      status,
			lat:         lat,
			lon:         lon,
			hasPosition: ok,
			country:     country,
			subdivision: subdivisions.intern(rec.Subdivision),
		}
	}
	return buildTable("locode", locodeIDSpace, locodeSentinel, rows,
		func(r *locodeRow) LocodeID { return r.id },
		coding[locodeRow]{5, func(r *locodeRow) string { return r.code }},
	)
}

// LocodeFromCode resolves a five-character UN/LOCODE: two letters of country
// followed by three characters of location.
func (g *Gazetteer) LocodeFromCode(code string) LocodeID {
	return g.locodes.fromCode(code)
}

// LocodeCode returns the five-letter code of id, or "-----" if undefined.
func (g *Gazetteer) LocodeCode(id LocodeID) string { return g.locodes.row(id).code }

// LocodeName returns the display name of id.
func (g *Gazetteer) LocodeName(id LocodeID) string { return g.locodes.row(id).name }

// LocodeFunction returns the transport functions of id.
func (g *Gazetteer) LocodeFunction(id LocodeID) Function { return g.locodes.row(id).function }

// LocodeStatus returns the UN/LOCODE entry status of id.
func (g *Gazetteer) LocodeStatus(id LocodeID) Status { return g.locodes.row(id).status }

// LocodeCountry returns the country named by the first two letters of id's code.
func (g *Gazetteer) LocodeCountry(id LocodeID) CountryID { return g.locodes.row(id).country }

// LocodePosition returns the position of id; ok is false when none is recorded.
func (g *Gazetteer) LocodePosition(id LocodeID) (lat, lon float64, ok bool) {
	row := g.locodes.row(id)
	return row.lat, row.lon, row.hasPosition
}

// LocodeSubdivision returns the ISO 3166-2 subdivision code of id without the
// country prefix, or "" when none is recorded.
func (g *Gazetteer) LocodeSubdivision(id LocodeID) string {
	return g.subdivisionCodes.get(g.locodes.row(id).subdivision)
}

// Locode is a read-only view of one UN/LOCODE location.
type Locode struct {
	g  *Gazetteer
	id LocodeID
}

// Locode returns the view of id; undefined IDs give the sentinel view.
func (g *Gazetteer) Locode(id LocodeID) Locode {
	return Locode{g: g, id: g.locodes.row(id).id}
}

// LocodeByCode resolves code and returns its view.
func (g *Gazetteer) LocodeByCode(code string) Locode {
	return Locode{g: g, id: g.LocodeFromCode(code)}
}

// ID returns the stable ID of the location.
func (l Locode) ID() LocodeID { return l.id }

// Valid reports whether l is a defined location.
func (l Locode) Valid() bool { return l.id.Valid() }

// Code returns the five-letter UN/LOCODE.
func (l Locode) Code() string { return l.g.LocodeCode(l.id) }

// Name returns the display name.
func (l Locode) Name() string { return l.g.LocodeName(l.id) }

// Function returns the transport functions of the location.
func (l Locode) Function() Function { return l.g.LocodeFunction(l.id) }

// Status returns the entry status.
func (l Locode) Status() Status { return l.g.LocodeStatus(l.id) }

// Country returns the country of the location.
func (l Locode) Country() Country { return l.g.Country(l.g.LocodeCountry(l.id)) }

// Subdivision returns the subdivision code without the country prefix.
func (l Locode) Subdivision() string { return l.g.LocodeSubdivision(l.id) }

// String returns the five-letter UN/LOCODE.
func (l Locode) String() string { return l.Code() }

// Position returns the recorded position; ok is false when there is none.
func (l Locode) Position() (lat, lon float64, ok bool) {
	return l.g.LocodePosition(l.id)
}

// SubdivisionName returns the display name of the location's subdivision.
func (l Locode) SubdivisionName() string {
	return l.g.SubdivisionName(l.g.LocodeCountry(l.id), l.Subdivision())
}
