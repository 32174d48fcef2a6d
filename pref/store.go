package pref

import (
	"fmt"
	"iter"
	"sync"

	"github.com/arloliu/prefpack/codec"
	"github.com/arloliu/prefpack/errs"
	"github.com/arloliu/prefpack/internal/delta"
	"github.com/arloliu/prefpack/internal/options"
	"github.com/arloliu/prefpack/internal/pool"
)

// Store is a compressed dual-indexed preference store: every user's item
// list and every item's user list is held as an independently encoded blob
// pair, giving fast row access from either side at a fraction of the
// uncompressed footprint.
//
// A Store is immutable after construction. All read methods are safe for
// arbitrary concurrent use; iterators decode into pooled scratch scoped to
// the iteration.
//
// Example:
//
//	store, err := pref.NewStore(data,
//	    pref.WithIndexCodec(codec.NewEliasFanoCodec()),
//	    pref.WithValueCodec(codec.NewPackedCodec()),
//	)
//	if err != nil {
//	    return err
//	}
//	for p := range store.UserPreferences(uidx) {
//	    fmt.Println(p.Idx, p.V)
//	}
type Store struct {
	byUser *orientation
	byItem *orientation

	userCodec  codec.Codec
	itemCodec  codec.Codec
	valueCodec codec.Codec

	prefs int
}

var _ Data = (*Store)(nil)

// NewStore builds a compressed store from both orientations of d.
//
// Parameters:
//   - d: dual-orientation input, typically a *Simple or another store
//   - opts: codec and worker configuration (default VarByte everywhere)
//
// Returns a build error wrapping an errs sentinel when d violates the row
// contract (range, order, duplicates, value range).
func NewStore(d Data, opts ...Option) (*Store, error) {
	if d == nil {
		return nil, fmt.Errorf("%w: data", errs.ErrNilData)
	}

	return newStore(userSource(d), itemSource(d), opts)
}

// NewStoreFromSource builds a compressed store from the user orientation
// stream s; the item orientation is derived by transposing the stream.
func NewStoreFromSource(s Source, opts ...Option) (*Store, error) {
	if s == nil {
		return nil, fmt.Errorf("%w: source", errs.ErrNilData)
	}

	return newStore(s, TransposeSource(s), opts)
}

func newStore(users, items Source, opts []Option) (*Store, error) {
	cfg := defaultConfig()
	if err := options.Apply(cfg, opts...); err != nil {
		return nil, err
	}

	var (
		wg     sync.WaitGroup
		bu, bi *orientation
		eu, ei error
	)
	wg.Add(2)
	go func() {
		defer wg.Done()
		bu, eu = buildOrientation(users, "user", cfg.userCodec, cfg.valueCodec, cfg.workers, true)
	}()
	go func() {
		defer wg.Done()
		bi, ei = buildOrientation(items, "item", cfg.itemCodec, cfg.valueCodec, cfg.workers, true)
	}()
	wg.Wait()

	if eu != nil {
		return nil, eu
	}
	if ei != nil {
		return nil, ei
	}
	if bu.prefs != bi.prefs {
		return nil, fmt.Errorf("%w: orientations disagree on preference totals (user %d, item %d)",
			errs.ErrLengthMismatch, bu.prefs, bi.prefs)
	}

	return &Store{
		byUser:     bu,
		byItem:     bi,
		userCodec:  cfg.userCodec,
		itemCodec:  cfg.itemCodec,
		valueCodec: cfg.valueCodec,
		prefs:      bu.prefs,
	}, nil
}

// NumUsers returns the size of the user index space.
func (s *Store) NumUsers() int { return s.byUser.numRows }

// NumItems returns the size of the item index space.
func (s *Store) NumItems() int { return s.byItem.numRows }

// NumPreferences returns the total number of stored preferences.
func (s *Store) NumPreferences() int { return s.prefs }

// NumUserPreferences returns the length of one user row. No decoding.
func (s *Store) NumUserPreferences(uidx int) int {
	s.byUser.checkRow(uidx)
	return s.byUser.lengths[uidx]
}

// NumItemPreferences returns the length of one item row. No decoding.
func (s *Store) NumItemPreferences(iidx int) int {
	s.byItem.checkRow(iidx)
	return s.byItem.lengths[iidx]
}

// UserPreferences yields one user's (item index, value) pairs in ascending
// item-index order. Each iteration decodes the row's blob pair once.
func (s *Store) UserPreferences(uidx int) iter.Seq[IdxPref] {
	return s.byUser.preferences(uidx, s.userCodec, s.valueCodec)
}

// ItemPreferences yields one item's (user index, value) pairs in ascending
// user-index order.
func (s *Store) ItemPreferences(iidx int) iter.Seq[IdxPref] {
	return s.byItem.preferences(iidx, s.itemCodec, s.valueCodec)
}

// UserItems yields one user's item indices. The value blob stays untouched.
func (s *Store) UserItems(uidx int) iter.Seq[int] {
	return s.byUser.indices(uidx, s.userCodec)
}

// ItemUsers yields one item's user indices. The value blob stays untouched.
func (s *Store) ItemUsers(iidx int) iter.Seq[int] {
	return s.byItem.indices(iidx, s.itemCodec)
}

// UserValues yields one user's rating values in row order. The index blob
// stays untouched.
func (s *Store) UserValues(uidx int) iter.Seq[float64] {
	return s.byUser.values(uidx, s.valueCodec)
}

// ItemValues yields one item's rating values in row order.
func (s *Store) ItemValues(iidx int) iter.Seq[float64] {
	return s.byItem.values(iidx, s.valueCodec)
}

// UsersWithPreferences yields the users owning at least one preference in
// ascending index order, straight off the presence bitmap.
func (s *Store) UsersWithPreferences() iter.Seq[int] { return s.byUser.withPrefs() }

// ItemsWithPreferences yields the items owning at least one preference in
// ascending index order.
func (s *Store) ItemsWithPreferences() iter.Seq[int] { return s.byItem.withPrefs() }

// NumUsersWithPreferences counts users owning at least one preference.
func (s *Store) NumUsersWithPreferences() int { return int(s.byUser.present.GetCardinality()) }

// NumItemsWithPreferences counts items owning at least one preference.
func (s *Store) NumItemsWithPreferences() int { return int(s.byItem.present.GetCardinality()) }

// Sizes reports the encoded bytes per orientation and plane.
func (s *Store) Sizes() Sizes {
	return Sizes{
		UserIndexBytes: blobBytes(s.byUser.idxBlobs),
		UserValueBytes: blobBytes(s.byUser.valBlobs),
		ItemIndexBytes: blobBytes(s.byItem.idxBlobs),
		ItemValueBytes: blobBytes(s.byItem.valBlobs),
	}
}

func blobBytes(blobs [][]byte) int {
	total := 0
	for _, b := range blobs {
		total += len(b)
	}

	return total
}

// ============================================================================
// Orientation read path
// ============================================================================

// checkRow panics when k is outside the row space: reads take surrogate
// indices the caller obtained from an index, so an out-of-range key is a
// caller bug, not a data condition.
func (o *orientation) checkRow(k int) {
	if k < 0 || k >= o.numRows {
		panic(fmt.Sprintf("pref: %s index %d out of range [0, %d)", o.label, k, o.numRows))
	}
}

// decodeIdx expands row k's index blob into dst, undoing the gap transform
// when the codec is not integrated. Corruption of an immutable blob is
// unrecoverable: it panics wrapping errs.ErrCorruptedBlob rather than
// masking the row as empty.
func (o *orientation) decodeIdx(k int, c codec.Codec, dst []uint32) {
	if err := c.Decode(o.idxBlobs[k], dst, 0, len(dst)); err != nil {
		panic(fmt.Errorf("pref: %s row %d index blob: %w", o.label, k, err))
	}
	if !c.Integrated() {
		delta.Decode(dst, 0, len(dst))
	}
}

// decodeVal expands row k's value blob into dst.
func (o *orientation) decodeVal(k int, c codec.Codec, dst []uint32) {
	if err := c.Decode(o.valBlobs[k], dst, 0, len(dst)); err != nil {
		panic(fmt.Errorf("pref: %s row %d value blob: %w", o.label, k, err))
	}
}

func (o *orientation) preferences(k int, idxCodec, valCodec codec.Codec) iter.Seq[IdxPref] {
	o.checkRow(k)
	n := o.lengths[k]
	if n == 0 {
		return emptySeq[IdxPref]()
	}

	return func(yield func(IdxPref) bool) {
		idxs, relIdx := pool.GetUint32Slice(n)
		defer relIdx()
		vals, relVal := pool.GetUint32Slice(n)
		defer relVal()

		o.decodeIdx(k, idxCodec, idxs)
		o.decodeVal(k, valCodec, vals)

		for i := range n {
			if !yield(IdxPref{Idx: int(idxs[i]), V: float64(vals[i])}) {
				return
			}
		}
	}
}

func (o *orientation) indices(k int, idxCodec codec.Codec) iter.Seq[int] {
	o.checkRow(k)
	n := o.lengths[k]
	if n == 0 {
		return emptySeq[int]()
	}

	return func(yield func(int) bool) {
		idxs, release := pool.GetUint32Slice(n)
		defer release()

		o.decodeIdx(k, idxCodec, idxs)

		for i := range n {
			if !yield(int(idxs[i])) {
				return
			}
		}
	}
}

func (o *orientation) values(k int, valCodec codec.Codec) iter.Seq[float64] {
	o.checkRow(k)
	n := o.lengths[k]
	if n == 0 {
		return emptySeq[float64]()
	}

	return func(yield func(float64) bool) {
		vals, release := pool.GetUint32Slice(n)
		defer release()

		o.decodeVal(k, valCodec, vals)

		for i := range n {
			if !yield(float64(vals[i])) {
				return
			}
		}
	}
}

func (o *orientation) withPrefs() iter.Seq[int] {
	return func(yield func(int) bool) {
		it := o.present.Iterator()
		for it.HasNext() {
			if !yield(int(it.Next())) {
				return
			}
		}
	}
}
