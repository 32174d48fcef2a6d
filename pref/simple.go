package pref

import (
	"fmt"
	"iter"
	"sort"

	"github.com/arloliu/prefpack/errs"
)

// Simple is the uncompressed slice-backed Data: both orientations held as
// plain per-row preference slices. It serves as build input for the
// compressed stores, as the baseline they are measured against, and as the
// oracle compressed reads are compared to.
type Simple struct {
	byUser [][]IdxPref
	byItem [][]IdxPref

	usersWith int
	itemsWith int
	prefs     int
}

var _ Data = (*Simple)(nil)

// NewSimple gathers tuples into both orientations, sorting each row by
// counterpart index.
//
// Returns ErrIndexOutOfRange when a tuple references an index outside the
// declared spaces and ErrDuplicateIndex when one (user, item) pair appears
// twice.
func NewSimple(numUsers, numItems int, tuples []Tuple) (*Simple, error) {
	if numUsers < 0 || numItems < 0 {
		return nil, fmt.Errorf("%w: negative dimensions %dx%d", errs.ErrInvalidCount, numUsers, numItems)
	}

	s := &Simple{
		byUser: make([][]IdxPref, numUsers),
		byItem: make([][]IdxPref, numItems),
		prefs:  len(tuples),
	}

	for _, tp := range tuples {
		if tp.UIdx < 0 || tp.UIdx >= numUsers {
			return nil, fmt.Errorf("%w: user index %d outside [0, %d)",
				errs.ErrIndexOutOfRange, tp.UIdx, numUsers)
		}
		if tp.IIdx < 0 || tp.IIdx >= numItems {
			return nil, fmt.Errorf("%w: item index %d outside [0, %d)",
				errs.ErrIndexOutOfRange, tp.IIdx, numItems)
		}
		s.byUser[tp.UIdx] = append(s.byUser[tp.UIdx], IdxPref{Idx: tp.IIdx, V: tp.V})
		s.byItem[tp.IIdx] = append(s.byItem[tp.IIdx], IdxPref{Idx: tp.UIdx, V: tp.V})
	}

	if err := sortSimpleRows(s.byUser, "user"); err != nil {
		return nil, err
	}
	if err := sortSimpleRows(s.byItem, "item"); err != nil {
		return nil, err
	}

	for _, row := range s.byUser {
		if len(row) > 0 {
			s.usersWith++
		}
	}
	for _, row := range s.byItem {
		if len(row) > 0 {
			s.itemsWith++
		}
	}

	return s, nil
}

func sortSimpleRows(rows [][]IdxPref, label string) error {
	for k, row := range rows {
		sort.Slice(row, func(i, j int) bool { return row[i].Idx < row[j].Idx })
		for i := 1; i < len(row); i++ {
			if row[i].Idx == row[i-1].Idx {
				return fmt.Errorf("%w: %s row %d holds two preferences for counterpart %d",
					errs.ErrDuplicateIndex, label, k, row[i].Idx)
			}
		}
	}

	return nil
}

// NumUsers returns the size of the user index space.
func (s *Simple) NumUsers() int { return len(s.byUser) }

// NumItems returns the size of the item index space.
func (s *Simple) NumItems() int { return len(s.byItem) }

// NumPreferences returns the total number of preferences.
func (s *Simple) NumPreferences() int { return s.prefs }

// NumUserPreferences returns the length of one user row.
func (s *Simple) NumUserPreferences(uidx int) int {
	return len(simpleRow(s.byUser, "user", uidx))
}

// NumItemPreferences returns the length of one item row.
func (s *Simple) NumItemPreferences(iidx int) int {
	return len(simpleRow(s.byItem, "item", iidx))
}

// UserPreferences yields one user's (item index, value) pairs in ascending
// item-index order.
func (s *Simple) UserPreferences(uidx int) iter.Seq[IdxPref] {
	return prefSeq(simpleRow(s.byUser, "user", uidx))
}

// ItemPreferences yields one item's (user index, value) pairs in ascending
// user-index order.
func (s *Simple) ItemPreferences(iidx int) iter.Seq[IdxPref] {
	return prefSeq(simpleRow(s.byItem, "item", iidx))
}

// UserItems yields one user's item indices.
func (s *Simple) UserItems(uidx int) iter.Seq[int] {
	return idxSeq(simpleRow(s.byUser, "user", uidx))
}

// ItemUsers yields one item's user indices.
func (s *Simple) ItemUsers(iidx int) iter.Seq[int] {
	return idxSeq(simpleRow(s.byItem, "item", iidx))
}

// UserValues yields one user's rating values in row order.
func (s *Simple) UserValues(uidx int) iter.Seq[float64] {
	return valSeq(simpleRow(s.byUser, "user", uidx))
}

// ItemValues yields one item's rating values in row order.
func (s *Simple) ItemValues(iidx int) iter.Seq[float64] {
	return valSeq(simpleRow(s.byItem, "item", iidx))
}

// UsersWithPreferences yields users owning at least one preference,
// ascending.
func (s *Simple) UsersWithPreferences() iter.Seq[int] { return occupiedSeq(s.byUser) }

// ItemsWithPreferences yields items owning at least one preference,
// ascending.
func (s *Simple) ItemsWithPreferences() iter.Seq[int] { return occupiedSeq(s.byItem) }

// NumUsersWithPreferences counts users owning at least one preference.
func (s *Simple) NumUsersWithPreferences() int { return s.usersWith }

// NumItemsWithPreferences counts items owning at least one preference.
func (s *Simple) NumItemsWithPreferences() int { return s.itemsWith }

func simpleRow(rows [][]IdxPref, label string, k int) []IdxPref {
	if k < 0 || k >= len(rows) {
		panic(fmt.Sprintf("pref: %s index %d out of range [0, %d)", label, k, len(rows)))
	}

	return rows[k]
}

func prefSeq(row []IdxPref) iter.Seq[IdxPref] {
	return func(yield func(IdxPref) bool) {
		for _, p := range row {
			if !yield(p) {
				return
			}
		}
	}
}

func idxSeq(row []IdxPref) iter.Seq[int] {
	return func(yield func(int) bool) {
		for _, p := range row {
			if !yield(p.Idx) {
				return
			}
		}
	}
}

func valSeq(row []IdxPref) iter.Seq[float64] {
	return func(yield func(float64) bool) {
		for _, p := range row {
			if !yield(p.V) {
				return
			}
		}
	}
}

func occupiedSeq(rows [][]IdxPref) iter.Seq[int] {
	return func(yield func(int) bool) {
		for k, row := range rows {
			if len(row) == 0 {
				continue
			}
			if !yield(k) {
				return
			}
		}
	}
}
