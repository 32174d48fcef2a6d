package index

import (
	"fmt"
	"iter"

	"github.com/arloliu/prefpack/errs"
	"github.com/arloliu/prefpack/internal/hash"
)

// Hashed is a string-ID index keyed by 64-bit xxHash values instead of the
// strings themselves, which keeps map keys fixed-size when identifiers are
// long (URLs, UUIDs, composite keys). The verbatim strings are retained for
// reverse lookups and to tell a repeated Add of one ID apart from two IDs
// sharing a hash.
//
// A true hash collision is reported as errs.ErrHashCollision: merging two
// distinct IDs would silently break the bijection.
//
// The read surface mirrors Index[string]. The zero value is not usable;
// create instances with NewHashed or HashedFromIDs.
type Hashed struct {
	toIdx map[uint64]int
	toID  []string
}

// NewHashed creates an empty hashed index.
func NewHashed() *Hashed {
	return &Hashed{toIdx: make(map[uint64]int)}
}

// HashedFromIDs creates a hashed index assigning ids their slice positions.
// Returns ErrDuplicateID when the same ID appears twice and ErrHashCollision
// when two distinct IDs share a hash.
func HashedFromIDs(ids []string) (*Hashed, error) {
	x := &Hashed{
		toIdx: make(map[uint64]int, len(ids)),
		toID:  make([]string, 0, len(ids)),
	}
	for i, id := range ids {
		idx, err := x.Add(id)
		if err != nil {
			return nil, err
		}
		// Add is idempotent, so a repeated ID comes back with an older index.
		if idx != i {
			return nil, fmt.Errorf("%w: %q at position %d", errs.ErrDuplicateID, id, i)
		}
	}

	return x, nil
}

// Add returns the index assigned to id, assigning the next free index when
// id is new. Adding a known ID returns its existing index.
func (x *Hashed) Add(id string) (int, error) {
	h := hash.ID(id)
	if idx, ok := x.toIdx[h]; ok {
		if x.toID[idx] == id {
			return idx, nil
		}

		return 0, fmt.Errorf("%w: %q and %q share hash %#016x",
			errs.ErrHashCollision, x.toID[idx], id, h)
	}

	idx := len(x.toID)
	x.toIdx[h] = idx
	x.toID = append(x.toID, id)

	return idx, nil
}

// Idx returns the index assigned to id. An ID whose hash is present but
// whose stored string differs is absent.
func (x *Hashed) Idx(id string) (int, bool) {
	idx, ok := x.toIdx[hash.ID(id)]
	if !ok || x.toID[idx] != id {
		return 0, false
	}

	return idx, true
}

// ID returns the external ID at idx.
func (x *Hashed) ID(idx int) (string, bool) {
	if idx < 0 || idx >= len(x.toID) {
		return "", false
	}

	return x.toID[idx], true
}

// Contains reports whether id has an index.
func (x *Hashed) Contains(id string) bool {
	_, ok := x.Idx(id)
	return ok
}

// Len returns the number of IDs in the index.
func (x *Hashed) Len() int {
	return len(x.toID)
}

// All iterates (index, ID) pairs in index order.
func (x *Hashed) All() iter.Seq2[int, string] {
	return func(yield func(int, string) bool) {
		for i, id := range x.toID {
			if !yield(i, id) {
				return
			}
		}
	}
}
