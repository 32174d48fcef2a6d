// Package index maintains dense zero-based bijections between external
// identifiers and the surrogate indices a preference store addresses rows
// by.
package index

import (
	"fmt"
	"iter"

	"github.com/arloliu/prefpack/errs"
)

// Index is a bijection between external IDs and the dense range [0, Len()).
// Indices are assigned in insertion order and never change, so stores can
// keep addressing rows by index while callers address them by ID.
//
// The zero value is not usable; create instances with New or FromIDs.
// Lookups are safe for concurrent use once no more IDs are added.
type Index[T comparable] struct {
	toIdx map[T]int
	toID  []T
}

// New creates an empty index.
func New[T comparable]() *Index[T] {
	return &Index[T]{toIdx: make(map[T]int)}
}

// FromIDs creates an index assigning ids their slice positions.
// Returns ErrDuplicateID when the same ID appears twice.
func FromIDs[T comparable](ids []T) (*Index[T], error) {
	x := &Index[T]{
		toIdx: make(map[T]int, len(ids)),
		toID:  make([]T, 0, len(ids)),
	}
	for i, id := range ids {
		if _, ok := x.toIdx[id]; ok {
			return nil, fmt.Errorf("%w: %v at position %d", errs.ErrDuplicateID, id, i)
		}
		x.toIdx[id] = i
		x.toID = append(x.toID, id)
	}

	return x, nil
}

// Add returns the index assigned to id, assigning the next free index when
// id is new. Adding a known ID returns its existing index.
func (x *Index[T]) Add(id T) int {
	if idx, ok := x.toIdx[id]; ok {
		return idx
	}

	idx := len(x.toID)
	x.toIdx[id] = idx
	x.toID = append(x.toID, id)

	return idx
}

// Idx returns the index assigned to id.
func (x *Index[T]) Idx(id T) (int, bool) {
	idx, ok := x.toIdx[id]
	return idx, ok
}

// ID returns the external ID at idx.
func (x *Index[T]) ID(idx int) (T, bool) {
	if idx < 0 || idx >= len(x.toID) {
		var zero T
		return zero, false
	}

	return x.toID[idx], true
}

// Contains reports whether id has an index.
func (x *Index[T]) Contains(id T) bool {
	_, ok := x.toIdx[id]
	return ok
}

// Len returns the number of IDs in the index.
func (x *Index[T]) Len() int {
	return len(x.toID)
}

// All iterates (index, ID) pairs in index order.
func (x *Index[T]) All() iter.Seq2[int, T] {
	return func(yield func(int, T) bool) {
		for i, id := range x.toID {
			if !yield(i, id) {
				return
			}
		}
	}
}
