package gazetteer

import (
	"fmt"
	"sort"
	"strings"

	"fortio.org/safecast"
)

// Rank is the dense position of a canonical row within an entity table.
// Rank 0 is the sentinel row present in every table.
type Rank uint16

// alphabetSize is the number of buckets a code index is partitioned into,
// one per leading uppercase ASCII letter.
const alphabetSize = 26

// codeEntry pairs a fixed-width code with the canonical rank it denotes.
type codeEntry struct {
	code string
	row  Rank
}

// codeIndex is a sorted table of fixed-width codes partitioned by leading letter.
//
// Position 0 holds a placeholder for the sentinel row and is never part of a
// bucket, so every successful lookup returns a position >= 1. Each position
// stores the canonical rank of the row it denotes; for the index that defines
// the canonical order the two coincide.
type codeIndex struct {
	width  int
	codes  []string
	rows   []Rank
	bounds [alphabetSize + 1]int
	seeds  [alphabetSize]int // first probe of a bucket, 0 = midpoint
}

// noCode returns the placeholder code of the sentinel row for a given width.
func noCode(width int) string {
	return strings.Repeat("-", width)
}

// validCode reports whether code is a well-formed code of the given width:
// an uppercase ASCII letter followed by uppercase letters or digits.
func validCode(code string, width int) bool {
	if width == 0 || len(code) != width || code[0] < 'A' || code[0] > 'Z' {
		return false
	}
	for i := 1; i < len(code); i++ {
		c := code[i]
		if (c < 'A' || c > 'Z') && (c < '0' || c > '9') {
			return false
		}
	}
	return true
}

// buildCodeIndex sorts entries by code and precomputes the bucket boundaries.
func buildCodeIndex(width int, entries []codeEntry) (*codeIndex, error) {
	if _, err := safecast.Conv[Rank](len(entries) + 1); err != nil {
		return nil, fmt.Errorf("code index of %d entries: %w", len(entries), err)
	}
	sorted := make([]codeEntry, len(entries))
	copy(sorted, entries)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].code < sorted[j].code })

	x := &codeIndex{
		width: width,
		codes: make([]string, 1, len(sorted)+1),
		rows:  make([]Rank, 1, len(sorted)+1),
	}
	x.codes[0] = noCode(width)
	for i, e := range sorted {
		if !validCode(e.code, width) {
			return nil, fmt.Errorf("%w: code %q is not a %d-character code", ErrMalformedRecord, e.code, width)
		}
		if i > 0 && sorted[i-1].code == e.code {
			return nil, fmt.Errorf("%w: %q", ErrDuplicateCode, e.code)
		}
		x.codes = append(x.codes, e.code)
		x.rows = append(x.rows, e.row)
	}

	pos := 1
	for b := 0; b < alphabetSize; b++ {
		x.bounds[b] = pos
		for pos < len(x.codes) && x.codes[pos][0] == byte('A'+b) {
			pos++
		}
	}
	x.bounds[alphabetSize] = pos
	return x, nil
}

// lookup returns the position of code in the index, or 0 when the code is
// absent or malformed.
func (x *codeIndex) lookup(code string) int {
	if len(code) != x.width {
		return 0
	}
	bucket := int(code[0]) - 'A'
	if bucket < 0 || bucket >= alphabetSize {
		return 0
	}
	low, high := x.bounds[bucket], x.bounds[bucket+1]
	mid := x.seeds[bucket]
	for low < high {
		if mid == 0 {
			mid = int(uint(low+high) >> 1)
		}
		cand := x.codes[mid]
		i := 1
		for i < x.width && code[i] == cand[i] {
			i++
		}
		if i == x.width {
			return mid
		}
		if code[i] < cand[i] {
			high = mid
		} else {
			low = mid + 1
		}
		mid = 0
	}
	return 0
}

// resolve returns the canonical rank denoted by code, or 0 if not found.
func (x *codeIndex) resolve(code string) Rank {
	return x.rows[x.lookup(code)]
}

// seed makes code the first probe of its bucket. It reports whether the code
// is present in the index; absent codes leave the index unchanged.
func (x *codeIndex) seed(code string) bool {
	pos := x.lookup(code)
	if pos == 0 {
		return false
	}
	x.seeds[code[0]-'A'] = pos
	return true
}

// bucket returns the half-open position range holding codes starting with letter.
func (x *codeIndex) bucket(letter byte) (int, int) {
	if letter < 'A' || letter > 'Z' {
		return 0, 0
	}
	b := int(letter - 'A')
	return x.bounds[b], x.bounds[b+1]
}

// len returns the number of codes in the index, excluding the sentinel placeholder.
func (x *codeIndex) len() int {
	return len(x.codes) - 1
}

// check verifies that codes are strictly ascending and that each bucket holds
// exactly the codes starting with its letter.
func (x *codeIndex) check() error {
	if x.bounds[0] != 1 || x.bounds[alphabetSize] != len(x.codes) {
		return fmt.Errorf("%w: bucket bounds do not cover the %d-character index", ErrCorruptRelation, x.width)
	}
	for b := 0; b < alphabetSize; b++ {
		low, high := x.bounds[b], x.bounds[b+1]
		if low > high {
			return fmt.Errorf("%w: bucket %c bounds decrease", ErrCorruptRelation, 'A'+b)
		}
		for pos := low; pos < high; pos++ {
			if x.codes[pos][0] != byte('A'+b) {
				return fmt.Errorf("%w: code %q in bucket %c", ErrCorruptRelation, x.codes[pos], 'A'+b)
			}
			if pos > 1 && x.codes[pos-1] >= x.codes[pos] {
				return fmt.Errorf("%w: codes %q and %q out of order", ErrCorruptRelation, x.codes[pos-1], x.codes[pos])
			}
		}
	}
	return nil
}
