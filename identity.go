package gazetteer

import "fmt"

// identifier is the set of integer types used as external IDs and group keys.
type identifier interface {
	~uint8 | ~uint16
}

// identity translates between dense ranks and sparse, stable external IDs.
//
// toRank is sized to the whole declared ID space so that any ID in the space
// can be looked up; undefined slots hold rank 0.
type identity[ID identifier] struct {
	toExternal []ID
	toRank     []Rank
}

// buildIdentity builds the permutation from ids, the external ID of every
// rank. ids[0] must be the zero ID of the sentinel row.
func buildIdentity[ID identifier](space int, ids []ID) (identity[ID], error) {
	var zero identity[ID]
	if len(ids) == 0 || ids[0] != 0 {
		return zero, fmt.Errorf("%w: rank 0 must carry the zero ID", ErrCorruptRelation)
	}
	p := identity[ID]{
		toExternal: make([]ID, len(ids)),
		toRank:     make([]Rank, space),
	}
	for r, id := range ids {
		if r == 0 {
			continue
		}
		if id == 0 || int(id) >= space {
			return zero, fmt.Errorf("%w: ID %d outside 1..%d", ErrMalformedRecord, id, space-1)
		}
		if p.toRank[id] != 0 {
			return zero, fmt.Errorf("%w: %d", ErrDuplicateID, id)
		}
		p.toExternal[r] = id
		p.toRank[id] = Rank(r)
	}
	return p, nil
}

// external returns the external ID stored at rank r, or 0 for an unknown rank.
func (p identity[ID]) external(r Rank) ID {
	if int(r) >= len(p.toExternal) {
		return 0
	}
	return p.toExternal[r]
}

// rank returns the rank of id, or 0 for an ID outside the defined set.
func (p identity[ID]) rank(id ID) Rank {
	if int(id) >= len(p.toRank) {
		return 0
	}
	return p.toRank[id]
}

// space returns the size of the declared external ID space.
func (p identity[ID]) space() int {
	return len(p.toRank)
}
