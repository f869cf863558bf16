package gazetteer

import (
	"fmt"
	"sort"

	"fortio.org/safecast"
)

// coding extracts one fixed-width code from a canonical row.
type coding[R any] struct {
	width int
	code  func(*R) string
}

// table is an arena of canonical rows addressed by rank, the identity
// permutation of those rows, and one sorted code index per coding.
//
// Canonical ranks follow the order of the first coding. Further codings are
// independent sorted views whose positions store canonical ranks, so resolving
// through any coding yields the same row and the same external ID.
type table[ID identifier, R any] struct {
	kind    string
	rows    []R
	ids     identity[ID]
	codings []coding[R]
	indexes []*codeIndex
}

// buildTable assigns canonical ranks to src, prepends the sentinel row and
// builds the identity permutation and every code index.
func buildTable[ID identifier, R any](kind string, space int, sentinel R, src []R, id func(*R) ID, codings ...coding[R]) (*table[ID, R], error) {
	if len(codings) == 0 {
		return nil, fmt.Errorf("%s table: no coding", kind)
	}
	if _, err := safecast.Conv[Rank](len(src) + 1); err != nil {
		return nil, fmt.Errorf("%s table of %d rows: %w", kind, len(src), err)
	}

	primary := codings[0].code
	sorted := make([]R, len(src))
	copy(sorted, src)
	sort.SliceStable(sorted, func(i, j int) bool { return primary(&sorted[i]) < primary(&sorted[j]) })

	t := &table[ID, R]{
		kind:    kind,
		rows:    make([]R, 0, len(sorted)+1),
		codings: codings,
	}
	t.rows = append(t.rows, sentinel)
	t.rows = append(t.rows, sorted...)

	ids := make([]ID, len(t.rows))
	for r := 1; r < len(t.rows); r++ {
		ids[r] = id(&t.rows[r])
	}
	var err error
	if t.ids, err = buildIdentity(space, ids); err != nil {
		return nil, fmt.Errorf("%s table: %w", kind, err)
	}

	widths := make(map[int]bool, len(codings))
	for _, c := range codings {
		if widths[c.width] {
			return nil, fmt.Errorf("%s table: two codings of width %d", kind, c.width)
		}
		widths[c.width] = true

		entries := make([]codeEntry, 0, len(sorted))
		for r := 1; r < len(t.rows); r++ {
			entries = append(entries, codeEntry{code: c.code(&t.rows[r]), row: Rank(r)})
		}
		x, err := buildCodeIndex(c.width, entries)
		if err != nil {
			return nil, fmt.Errorf("%s table: %w", kind, err)
		}
		t.indexes = append(t.indexes, x)
	}
	return t, nil
}

// index returns the code index of the given width, or nil.
func (t *table[ID, R]) index(width int) *codeIndex {
	for _, x := range t.indexes {
		if x.width == width {
			return x
		}
	}
	return nil
}

// fromCode resolves code through the index matching its width and returns the
// external ID, or 0 when the code is unknown or no coding has that width.
func (t *table[ID, R]) fromCode(code string) ID {
	x := t.index(len(code))
	if x == nil {
		return 0
	}
	return t.ids.external(x.resolve(code))
}

// row returns the canonical row of id; unknown IDs get the sentinel row.
func (t *table[ID, R]) row(id ID) *R {
	return &t.rows[t.ids.rank(id)]
}

// len returns the number of rows, excluding the sentinel.
func (t *table[ID, R]) len() int {
	return len(t.rows) - 1
}

// each calls fn for every row in rank order, skipping the sentinel.
func (t *table[ID, R]) each(fn func(id ID, row *R)) {
	for r := 1; r < len(t.rows); r++ {
		fn(t.ids.toExternal[r], &t.rows[r])
	}
}

// seed makes code the first probe of its bucket in the index of matching width.
func (t *table[ID, R]) seed(code string) bool {
	x := t.index(len(code))
	return x != nil && x.seed(code)
}

// check verifies the identity permutation and every code index of t: ranks
// and IDs round-trip, each row's codes resolve back to the row, and each
// index is strictly sorted and partitioned into its letter buckets.
func (t *table[ID, R]) check() error {
	if len(t.ids.toExternal) != len(t.rows) || t.ids.toExternal[0] != 0 {
		return fmt.Errorf("%w: %s identity does not cover the rows", ErrCorruptRelation, t.kind)
	}
	for r := 1; r < len(t.rows); r++ {
		if got := t.ids.rank(t.ids.external(Rank(r))); got != Rank(r) {
			return fmt.Errorf("%w: %s rank %d maps back to rank %d", ErrCorruptRelation, t.kind, r, got)
		}
	}
	for id, r := range t.ids.toRank {
		if r != 0 && int(t.ids.external(r)) != id {
			return fmt.Errorf("%w: %s ID %d maps back to ID %d", ErrCorruptRelation, t.kind, id, t.ids.external(r))
		}
	}

	if t.ids.space() < len(t.rows) {
		return fmt.Errorf("%w: %s ID space %d holds fewer IDs than %d rows", ErrCorruptRelation, t.kind, t.ids.space(), len(t.rows)-1)
	}

	for i, c := range t.codings {
		x := t.indexes[i]
		if x.len() != len(t.rows)-1 {
			return fmt.Errorf("%w: %s index of width %d holds %d codes for %d rows", ErrCorruptRelation, t.kind, c.width, x.len(), len(t.rows)-1)
		}
		for r := 1; r < len(t.rows); r++ {
			code := c.code(&t.rows[r])
			pos := x.lookup(code)
			if got := x.rows[pos]; got != Rank(r) {
				return fmt.Errorf("%w: %s code %q resolves to rank %d, want %d", ErrCorruptRelation, t.kind, code, got, r)
			}
			if low, high := x.bucket(code[0]); pos < low || pos >= high {
				return fmt.Errorf("%w: %s code %q outside its bucket", ErrCorruptRelation, t.kind, code)
			}
		}
		if err := x.check(); err != nil {
			return fmt.Errorf("%s: %w", t.kind, err)
		}
	}
	return nil
}
