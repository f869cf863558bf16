package gazetteer

import (
	"math"
	"strings"

	geohash "github.com/TomiHiltunen/geohash-golang"
	"github.com/golang/geo/s2"
)

// earthRadiusMeters is the mean Earth radius (IUGG).
const earthRadiusMeters = 6371008.8

// maxGeohashPrecision is the longest geohash accepted by Geohash.
const maxGeohashPrecision = 12

// geohashAlphabet is the base32 alphabet of geohash strings.
const geohashAlphabet = "0123456789bcdefghjkmnpqrstuvwxyz"

func validPosition(lat, lon float64) bool {
	return !math.IsNaN(lat) && !math.IsNaN(lon) && !math.IsInf(lat, 0) && !math.IsInf(lon, 0) &&
		lat >= -90 && lat <= 90 && lon >= -180 && lon <= 180
}

// DistanceMeters returns the great-circle distance between two positions in
// metres. Invalid positions give NaN.
func DistanceMeters(lat1, lon1, lat2, lon2 float64) float64 {
	if !validPosition(lat1, lon1) || !validPosition(lat2, lon2) {
		return math.NaN()
	}
	a := s2.LatLngFromDegrees(lat1, lon1)
	b := s2.LatLngFromDegrees(lat2, lon2)
	return a.Distance(b).Radians() * earthRadiusMeters
}

// CityDistance returns the great-circle distance between two cities in
// metres, or NaN when either is undefined.
func (g *Gazetteer) CityDistance(a, b CityID) float64 {
	if !g.City(a).Valid() || !g.City(b).Valid() {
		return math.NaN()
	}
	lat1, lon1 := g.CityPosition(a)
	lat2, lon2 := g.CityPosition(b)
	return DistanceMeters(lat1, lon1, lat2, lon2)
}

// Geohash encodes a position with the given number of characters, clamped
// to 1..12. Invalid positions give "".
func Geohash(lat, lon float64, precision int) string {
	if !validPosition(lat, lon) {
		return ""
	}
	precision = max(1, min(precision, maxGeohashPrecision))
	return geohash.EncodeWithPrecision(lat, lon, precision)
}

// DecodeGeohash returns the centre of the cell denoted by hash.
// ok is false for an empty or malformed hash.
func DecodeGeohash(hash string) (lat, lon float64, ok bool) {
	if hash == "" || len(hash) > maxGeohashPrecision {
		return 0, 0, false
	}
	for i := 0; i < len(hash); i++ {
		if !strings.ContainsRune(geohashAlphabet, rune(hash[i])) {
			return 0, 0, false
		}
	}
	box := geohash.Decode(hash)
	if box == nil {
		return 0, 0, false
	}
	c := box.Center()
	return c.Lat(), c.Lng(), true
}

// NearestCity returns the city closest to a position and its distance in
// metres. It returns NoCity when no city lies within maxMeters; maxMeters <= 0
// means no limit.
func (g *Gazetteer) NearestCity(lat, lon, maxMeters float64) (CityID, float64) {
	if !validPosition(lat, lon) || g.cities.len() == 0 {
		return NoCity, math.NaN()
	}
	query := s2.LatLngFromDegrees(lat, lon)
	cell := cellOf(lat, lon)

	best, bestDist := NoCity, math.Inf(1)
	consider := func(id CityID) {
		row := g.cities.row(id)
		d := query.Distance(s2.LatLngFromDegrees(row.lat, row.lon)).Radians() * earthRadiusMeters
		if d < bestDist || (d == bestDist && id < best) {
			best, bestDist = id, d
		}
	}
	for _, c := range cellAndNeighbors(cell) {
		for _, id := range g.cellIndex[c] {
			consider(id)
		}
	}

	// A city outside the neighbourhood is at least one cell width away; a
	// farther candidate needs the full scan.
	if bestDist > s2.MinWidthMetric.Value(cellLevel)*earthRadiusMeters {
		g.cities.each(func(id CityID, _ *cityRow) { consider(id) })
	}
	if maxMeters > 0 && bestDist > maxMeters {
		return NoCity, bestDist
	}
	return best, bestDist
}

// cellOf returns the index cell containing a position.
func cellOf(lat, lon float64) s2.CellID {
	return s2.CellIDFromLatLng(s2.LatLngFromDegrees(lat, lon)).Parent(cellLevel)
}

// cellAndNeighbors returns the given cell plus its edge and corner neighbours.
func cellAndNeighbors(cell s2.CellID) []s2.CellID {
	cells := make([]s2.CellID, 0, 9)
	cells = append(cells, cell)

	edgeNeighbors := cell.EdgeNeighbors()
	cells = append(cells, edgeNeighbors[:]...)

	seen := make(map[s2.CellID]bool, 9)
	for _, c := range cells {
		seen[c] = true
	}
	for _, n := range edgeNeighbors {
		for _, corner := range n.EdgeNeighbors() {
			if !seen[corner] {
				cells = append(cells, corner)
				seen[corner] = true
			}
		}
	}
	return cells
}
