package pref

import (
	"fmt"
	"iter"
	"sync"

	"github.com/arloliu/prefpack/codec"
	"github.com/arloliu/prefpack/errs"
	"github.com/arloliu/prefpack/internal/options"
)

// BinaryStore is the implicit-feedback variant of Store: it keeps the index
// plane only, so datasets without ratings (clicks, plays, purchases) pay
// nothing for a value plane. Preference reads yield value 1 for every pair.
type BinaryStore struct {
	byUser *orientation
	byItem *orientation

	userCodec codec.Codec
	itemCodec codec.Codec

	prefs int
}

var _ Data = (*BinaryStore)(nil)

// NewBinaryStore builds an index-only store from both orientations of d.
// Rating values in d are ignored.
func NewBinaryStore(d Data, opts ...Option) (*BinaryStore, error) {
	if d == nil {
		return nil, fmt.Errorf("%w: data", errs.ErrNilData)
	}

	return newBinaryStore(userSource(d), itemSource(d), opts)
}

// NewBinaryStoreFromSource builds an index-only store from the user
// orientation stream s; the item orientation is derived by transposing the
// stream.
func NewBinaryStoreFromSource(s Source, opts ...Option) (*BinaryStore, error) {
	if s == nil {
		return nil, fmt.Errorf("%w: source", errs.ErrNilData)
	}

	return newBinaryStore(s, TransposeSource(s), opts)
}

func newBinaryStore(users, items Source, opts []Option) (*BinaryStore, error) {
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
		bu, eu = buildOrientation(users, "user", cfg.userCodec, nil, cfg.workers, false)
	}()
	go func() {
		defer wg.Done()
		bi, ei = buildOrientation(items, "item", cfg.itemCodec, nil, cfg.workers, false)
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

	return &BinaryStore{
		byUser:    bu,
		byItem:    bi,
		userCodec: cfg.userCodec,
		itemCodec: cfg.itemCodec,
		prefs:     bu.prefs,
	}, nil
}

// NumUsers returns the size of the user index space.
func (s *BinaryStore) NumUsers() int { return s.byUser.numRows }

// NumItems returns the size of the item index space.
func (s *BinaryStore) NumItems() int { return s.byItem.numRows }

// NumPreferences returns the total number of stored preferences.
func (s *BinaryStore) NumPreferences() int { return s.prefs }

// NumUserPreferences returns the length of one user row. No decoding.
func (s *BinaryStore) NumUserPreferences(uidx int) int {
	s.byUser.checkRow(uidx)
	return s.byUser.lengths[uidx]
}

// NumItemPreferences returns the length of one item row. No decoding.
func (s *BinaryStore) NumItemPreferences(iidx int) int {
	s.byItem.checkRow(iidx)
	return s.byItem.lengths[iidx]
}

// UserPreferences yields one user's items with value 1 for every pair.
func (s *BinaryStore) UserPreferences(uidx int) iter.Seq[IdxPref] {
	return s.byUser.binaryPreferences(uidx, s.userCodec)
}

// ItemPreferences yields one item's users with value 1 for every pair.
func (s *BinaryStore) ItemPreferences(iidx int) iter.Seq[IdxPref] {
	return s.byItem.binaryPreferences(iidx, s.itemCodec)
}

// UserItems yields one user's item indices.
func (s *BinaryStore) UserItems(uidx int) iter.Seq[int] {
	return s.byUser.indices(uidx, s.userCodec)
}

// ItemUsers yields one item's user indices.
func (s *BinaryStore) ItemUsers(iidx int) iter.Seq[int] {
	return s.byItem.indices(iidx, s.itemCodec)
}

// UserValues yields 1 once per stored preference. Nothing decodes: the row
// length alone drives the sequence.
func (s *BinaryStore) UserValues(uidx int) iter.Seq[float64] {
	s.byUser.checkRow(uidx)
	return onesSeq(s.byUser.lengths[uidx])
}

// ItemValues yields 1 once per stored preference.
func (s *BinaryStore) ItemValues(iidx int) iter.Seq[float64] {
	s.byItem.checkRow(iidx)
	return onesSeq(s.byItem.lengths[iidx])
}

// UsersWithPreferences yields the users owning at least one preference in
// ascending index order.
func (s *BinaryStore) UsersWithPreferences() iter.Seq[int] { return s.byUser.withPrefs() }

// ItemsWithPreferences yields the items owning at least one preference in
// ascending index order.
func (s *BinaryStore) ItemsWithPreferences() iter.Seq[int] { return s.byItem.withPrefs() }

// NumUsersWithPreferences counts users owning at least one preference.
func (s *BinaryStore) NumUsersWithPreferences() int {
	return int(s.byUser.present.GetCardinality())
}

// NumItemsWithPreferences counts items owning at least one preference.
func (s *BinaryStore) NumItemsWithPreferences() int {
	return int(s.byItem.present.GetCardinality())
}

// Sizes reports the encoded bytes per orientation; value planes are zero.
func (s *BinaryStore) Sizes() Sizes {
	return Sizes{
		UserIndexBytes: blobBytes(s.byUser.idxBlobs),
		ItemIndexBytes: blobBytes(s.byItem.idxBlobs),
	}
}

func (o *orientation) binaryPreferences(k int, idxCodec codec.Codec) iter.Seq[IdxPref] {
	base := o.indices(k, idxCodec)
	return func(yield func(IdxPref) bool) {
		for idx := range base {
			if !yield(IdxPref{Idx: idx, V: 1}) {
				return
			}
		}
	}
}

func onesSeq(n int) iter.Seq[float64] {
	return func(yield func(float64) bool) {
		for range n {
			if !yield(1) {
				return
			}
		}
	}
}
