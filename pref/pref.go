package pref

import "iter"

// IdxPref is one preference as seen from a row: the counterpart's surrogate
// index and the rating value.
type IdxPref struct {
	Idx int
	V   float64
}

// Tuple is one preference in absolute coordinates: user index, item index,
// rating value.
type Tuple struct {
	UIdx int
	IIdx int
	V    float64
}

// Row is one orientation row handed to the builder: the surrogate index
// owning the row, its strictly ascending counterpart indices, and the
// positional rating values (len(Vals) == len(Idxs)).
//
// A Source may reuse the backing slices between yields; consumers copy what
// they keep.
type Row struct {
	K    int
	Idxs []int
	Vals []float64
}

// Source streams one orientation of a preference matrix into a build.
type Source interface {
	// NumRows returns the size of this orientation's row-key space.
	NumRows() int

	// NumCols returns the size of the counterpart space.
	NumCols() int

	// Rows yields the rows holding at least one preference, in any order.
	Rows() iter.Seq[Row]
}

// Data is the dual-orientation read surface shared by the compressed store,
// the slice-backed Simple store, and transposed views.
//
// All sequence-returning methods are lazy and may be consumed concurrently;
// nothing mutates after construction. A surrogate index outside its range
// panics.
type Data interface {
	// NumUsers returns the size of the user index space.
	NumUsers() int
	// NumItems returns the size of the item index space.
	NumItems() int
	// NumPreferences returns the total number of stored preferences.
	NumPreferences() int

	// NumUserPreferences returns the length of one user row without
	// decoding anything.
	NumUserPreferences(uidx int) int
	// NumItemPreferences returns the length of one item row without
	// decoding anything.
	NumItemPreferences(iidx int) int

	// UserPreferences yields a user's (item index, value) pairs in
	// ascending item-index order.
	UserPreferences(uidx int) iter.Seq[IdxPref]
	// ItemPreferences yields an item's (user index, value) pairs in
	// ascending user-index order.
	ItemPreferences(iidx int) iter.Seq[IdxPref]

	// UserItems yields a user's item indices; the value plane stays
	// untouched.
	UserItems(uidx int) iter.Seq[int]
	// ItemUsers yields an item's user indices; the value plane stays
	// untouched.
	ItemUsers(iidx int) iter.Seq[int]

	// UserValues yields a user's rating values in row order; the index
	// plane stays untouched.
	UserValues(uidx int) iter.Seq[float64]
	// ItemValues yields an item's rating values in row order; the index
	// plane stays untouched.
	ItemValues(iidx int) iter.Seq[float64]

	// UsersWithPreferences yields the users owning at least one preference,
	// ascending.
	UsersWithPreferences() iter.Seq[int]
	// ItemsWithPreferences yields the items owning at least one preference,
	// ascending.
	ItemsWithPreferences() iter.Seq[int]

	// NumUsersWithPreferences counts users owning at least one preference.
	NumUsersWithPreferences() int
	// NumItemsWithPreferences counts items owning at least one preference.
	NumItemsWithPreferences() int
}

// Sizes reports the encoded bytes of a store, split by orientation and
// plane.
type Sizes struct {
	UserIndexBytes int
	UserValueBytes int
	ItemIndexBytes int
	ItemValueBytes int
}

// Total returns the encoded bytes across both orientations and planes.
func (s Sizes) Total() int {
	return s.UserIndexBytes + s.UserValueBytes + s.ItemIndexBytes + s.ItemValueBytes
}

// emptySeq is the shared empty sequence returned for rows without
// preferences.
func emptySeq[T any]() iter.Seq[T] {
	return func(yield func(T) bool) {}
}
