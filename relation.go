package gazetteer

import (
	"fmt"
	"slices"

	"fortio.org/safecast"
)

// link is one (source, destination) pair of a relation.
type link[S, D identifier] struct {
	from S
	to   D
}

// relation is a one-to-many mapping from source IDs to destination IDs stored
// as compressed rows: the destinations of s are values[offsets[s]:offsets[s+1]].
// offsets is sized to the whole source ID space, so row 0 and every undefined
// ID hold an empty list.
type relation[S, D identifier] struct {
	offsets []uint32
	values  []D
}

// buildRelation groups links by source, keeping their input order within a
// source. A repeated link or one that leaves the source space is rejected.
func buildRelation[S, D identifier](name string, space int, links []link[S, D]) (relation[S, D], error) {
	var zero relation[S, D]
	total, err := safecast.Conv[uint32](len(links))
	if err != nil {
		return zero, fmt.Errorf("%s: %w", name, err)
	}

	counts := make([]uint32, space+1)
	for _, l := range links {
		if l.from == 0 || int(l.from) >= space || l.to == 0 {
			return zero, fmt.Errorf("%w: %s link %d -> %d", ErrInvalidReference, name, l.from, l.to)
		}
		counts[int(l.from)+1]++
	}
	for i := 1; i <= space; i++ {
		counts[i] += counts[i-1]
	}

	rel := relation[S, D]{
		offsets: counts,
		values:  make([]D, total),
	}
	next := make([]uint32, space)
	copy(next, counts[:space])
	for _, l := range links {
		s := int(l.from)
		row := rel.values[counts[s]:next[s]]
		if slices.Contains(row, l.to) {
			return zero, fmt.Errorf("%w: %s link %d -> %d listed twice", ErrCorruptRelation, name, l.from, l.to)
		}
		rel.values[next[s]] = l.to
		next[s]++
	}
	return rel, nil
}

// list returns the destinations of s. The result is a copy; an unknown or
// sentinel source yields an empty list.
func (r relation[S, D]) list(s S) []D {
	if int(s)+1 >= len(r.offsets) {
		return []D{}
	}
	return slices.Clone(r.values[r.offsets[s]:r.offsets[int(s)+1]])
}

// count returns the number of destinations of s.
func (r relation[S, D]) count(s S) int {
	if int(s)+1 >= len(r.offsets) {
		return 0
	}
	return int(r.offsets[int(s)+1] - r.offsets[s])
}

// contains reports whether d is a destination of s.
func (r relation[S, D]) contains(s S, d D) bool {
	if int(s)+1 >= len(r.offsets) {
		return false
	}
	return slices.Contains(r.values[r.offsets[s]:r.offsets[int(s)+1]], d)
}

// check verifies that the offsets describe exactly the stored values.
func (r relation[S, D]) check() error {
	if len(r.offsets) == 0 || r.offsets[0] != 0 || (len(r.offsets) > 1 && r.offsets[1] != 0) {
		return fmt.Errorf("%w: sentinel row is not empty", ErrCorruptRelation)
	}
	for i := 1; i < len(r.offsets); i++ {
		if r.offsets[i] < r.offsets[i-1] {
			return fmt.Errorf("%w: offsets decrease at source %d", ErrCorruptRelation, i-1)
		}
	}
	if int(r.offsets[len(r.offsets)-1]) != len(r.values) {
		return fmt.Errorf("%w: offsets cover %d values, %d stored", ErrCorruptRelation, r.offsets[len(r.offsets)-1], len(r.values))
	}
	return nil
}

// lookupOne reads a one-to-one relation stored as a plain array indexed by
// source ID; unknown sources map to the zero ID.
func lookupOne[S, D identifier](table []D, s S) D {
	if int(s) >= len(table) {
		return 0
	}
	return table[s]
}
