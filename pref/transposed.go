package pref

import (
	"iter"
	"sort"
)

// TransposeSource derives the complementary orientation of src: each yielded
// row collects, for one counterpart index, the row keys that reference it.
//
// One scan of src fills per-counterpart buckets (no dense matrix); buckets
// are sorted only when src yielded its rows out of key order. Each Rows call
// rebuilds the buckets, so the adapter itself holds no state.
func TransposeSource(src Source) Source {
	return &transposeSource{src: src}
}

type transposeSource struct {
	src Source
}

func (t *transposeSource) NumRows() int { return t.src.NumCols() }
func (t *transposeSource) NumCols() int { return t.src.NumRows() }

func (t *transposeSource) Rows() iter.Seq[Row] {
	return func(yield func(Row) bool) {
		cols := t.src.NumCols()
		idxs := make([][]int, cols)
		vals := make([][]float64, cols)

		sorted := true
		prevK := -1
		for row := range t.src.Rows() {
			if row.K <= prevK {
				sorted = false
			}
			prevK = row.K

			for i, c := range row.Idxs {
				if c < 0 || c >= cols {
					// Out-of-range indices are reported by whoever consumes
					// the direct orientation; dropping the entry here keeps
					// this stream total.
					continue
				}
				idxs[c] = append(idxs[c], row.K)
				if i < len(row.Vals) {
					vals[c] = append(vals[c], row.Vals[i])
				}
			}
		}

		for c := range cols {
			if len(idxs[c]) == 0 {
				continue
			}
			if !sorted {
				sortPaired(idxs[c], vals[c])
			}
			row := Row{K: c, Idxs: idxs[c], Vals: vals[c]}
			if !yield(row) {
				return
			}
		}
	}
}

// sortPaired sorts idxs ascending, moving vals in tandem when present.
func sortPaired(idxs []int, vals []float64) {
	if len(vals) != len(idxs) {
		// A value-length mismatch is reported by the consumer; sorting the
		// indices alone keeps that report deterministic.
		vals = nil
	}
	sort.Sort(pairedRows{idxs: idxs, vals: vals})
}

type pairedRows struct {
	idxs []int
	vals []float64
}

func (p pairedRows) Len() int           { return len(p.idxs) }
func (p pairedRows) Less(i, j int) bool { return p.idxs[i] < p.idxs[j] }
func (p pairedRows) Swap(i, j int) {
	p.idxs[i], p.idxs[j] = p.idxs[j], p.idxs[i]
	if p.vals != nil {
		p.vals[i], p.vals[j] = p.vals[j], p.vals[i]
	}
}

// Transpose returns a view of d with the axes swapped: user calls answer
// from item state and vice versa. Transposing a transposed view returns the
// original.
func Transpose(d Data) Data {
	if t, ok := d.(*transposed); ok {
		return t.d
	}

	return &transposed{d: d}
}

type transposed struct {
	d Data
}

var _ Data = (*transposed)(nil)

func (t *transposed) NumUsers() int       { return t.d.NumItems() }
func (t *transposed) NumItems() int       { return t.d.NumUsers() }
func (t *transposed) NumPreferences() int { return t.d.NumPreferences() }

func (t *transposed) NumUserPreferences(uidx int) int { return t.d.NumItemPreferences(uidx) }
func (t *transposed) NumItemPreferences(iidx int) int { return t.d.NumUserPreferences(iidx) }

func (t *transposed) UserPreferences(uidx int) iter.Seq[IdxPref] { return t.d.ItemPreferences(uidx) }
func (t *transposed) ItemPreferences(iidx int) iter.Seq[IdxPref] { return t.d.UserPreferences(iidx) }

func (t *transposed) UserItems(uidx int) iter.Seq[int] { return t.d.ItemUsers(uidx) }
func (t *transposed) ItemUsers(iidx int) iter.Seq[int] { return t.d.UserItems(iidx) }

func (t *transposed) UserValues(uidx int) iter.Seq[float64] { return t.d.ItemValues(uidx) }
func (t *transposed) ItemValues(iidx int) iter.Seq[float64] { return t.d.UserValues(iidx) }

func (t *transposed) UsersWithPreferences() iter.Seq[int] { return t.d.ItemsWithPreferences() }
func (t *transposed) ItemsWithPreferences() iter.Seq[int] { return t.d.UsersWithPreferences() }

func (t *transposed) NumUsersWithPreferences() int { return t.d.NumItemsWithPreferences() }
func (t *transposed) NumItemsWithPreferences() int { return t.d.NumUsersWithPreferences() }
