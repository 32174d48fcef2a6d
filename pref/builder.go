package pref

import (
	"fmt"
	"iter"
	"math"
	"sync"
	"sync/atomic"

	"github.com/RoaringBitmap/roaring/v2"

	"github.com/arloliu/prefpack/codec"
	"github.com/arloliu/prefpack/errs"
	"github.com/arloliu/prefpack/internal/delta"
	"github.com/arloliu/prefpack/internal/pool"
)

// maxValue is the exclusive upper bound for rating values: the value plane
// stores uint32.
const maxValue = float64(1 << 32)

// orientation is one fully encoded axis of a store: per-row blobs and
// lengths, the presence bitmap, and the preference total.
//
// Build writes each row's slots exactly once; afterwards everything is
// read-only.
type orientation struct {
	label    string
	numRows  int
	numCols  int
	prefs    int
	lengths  []int
	idxBlobs [][]byte
	valBlobs [][]byte
	present  *roaring.Bitmap
}

// encodeJob carries one validated row's uint32 scratch to the encode
// workers. release returns the scratch to its pools.
type encodeJob struct {
	k       int
	idxs    []uint32
	vals    []uint32
	release func()
}

// buildOrientation validates and encodes every row of src into disjoint
// per-row slots.
//
// The dispatch loop (the calling goroutine) validates rows, records lengths
// and presence, and copies rows into pooled scratch — sources may reuse
// their slices between yields. Workers apply the gap transform when the
// index codec is not integrated, encode both planes, and store the blobs.
// Slots are disjoint so workers share nothing; the first error wins and the
// remaining jobs drain.
func buildOrientation(src Source, label string, idxCodec, valCodec codec.Codec, workers int, withValues bool) (*orientation, error) {
	numRows := src.NumRows()
	numCols := src.NumCols()
	if numRows < 0 || numCols < 0 {
		return nil, fmt.Errorf("%w: %s orientation has negative dimensions %dx%d",
			errs.ErrInvalidCount, label, numRows, numCols)
	}

	o := &orientation{
		label:    label,
		numRows:  numRows,
		numCols:  numCols,
		lengths:  make([]int, numRows),
		idxBlobs: make([][]byte, numRows),
		present:  roaring.New(),
	}
	if withValues {
		o.valBlobs = make([][]byte, numRows)
	}

	if workers < 1 {
		workers = 1
	}

	var (
		wg       sync.WaitGroup
		failed   atomic.Bool
		errOnce  sync.Once
		buildErr error
	)
	fail := func(err error) {
		errOnce.Do(func() { buildErr = err })
		failed.Store(true)
	}

	jobs := make(chan encodeJob, workers)
	for range workers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for job := range jobs {
				if !failed.Load() {
					if err := encodeRow(o, job, idxCodec, valCodec); err != nil {
						fail(err)
					}
				}
				job.release()
			}
		}()
	}

	for row := range src.Rows() {
		if failed.Load() {
			break
		}

		if err := o.validateKey(row.K); err != nil {
			fail(err)
			break
		}
		if len(row.Idxs) == 0 {
			// Sources should not yield empty rows; tolerating one is
			// harmless, the slot just stays empty.
			continue
		}
		if withValues && len(row.Vals) != len(row.Idxs) {
			fail(fmt.Errorf("%w: %s row %d has %d indices but %d values",
				errs.ErrLengthMismatch, label, row.K, len(row.Idxs), len(row.Vals)))
			break
		}

		job, err := o.admitRow(row, withValues)
		if err != nil {
			fail(err)
			break
		}
		jobs <- job
	}

	close(jobs)
	wg.Wait()

	if buildErr != nil {
		return nil, buildErr
	}

	return o, nil
}

func (o *orientation) validateKey(k int) error {
	if k < 0 || k >= o.numRows {
		return fmt.Errorf("%w: %s row key %d outside [0, %d)",
			errs.ErrIndexOutOfRange, o.label, k, o.numRows)
	}
	if o.present.Contains(uint32(k)) {
		return fmt.Errorf("%w: %s row %d yielded twice", errs.ErrDuplicateRow, o.label, k)
	}

	return nil
}

// admitRow validates row content, copies it into pooled uint32 scratch, and
// records the row's length, presence bit, and preference count.
func (o *orientation) admitRow(row Row, withValues bool) (encodeJob, error) {
	n := len(row.Idxs)

	idxs, relIdx := pool.GetUint32Slice(n)
	release := relIdx

	var vals []uint32
	if withValues {
		var relVal func()
		vals, relVal = pool.GetUint32Slice(n)
		release = func() {
			relIdx()
			relVal()
		}
	}

	prev := -1
	for i, idx := range row.Idxs {
		switch {
		case idx < 0 || idx >= o.numCols:
			release()
			return encodeJob{}, fmt.Errorf("%w: %s row %d references counterpart %d outside [0, %d)",
				errs.ErrIndexOutOfRange, o.label, row.K, idx, o.numCols)
		case idx == prev:
			release()
			return encodeJob{}, fmt.Errorf("%w: %s row %d repeats counterpart %d",
				errs.ErrDuplicateIndex, o.label, row.K, idx)
		case idx < prev:
			release()
			return encodeJob{}, fmt.Errorf("%w: %s row %d has counterpart %d after %d",
				errs.ErrNotAscending, o.label, row.K, idx, prev)
		}
		idxs[i] = uint32(idx)
		prev = idx
	}

	if withValues {
		for i, v := range row.Vals {
			if math.IsNaN(v) || v < 0 || v >= maxValue {
				release()
				return encodeJob{}, fmt.Errorf("%w: %s row %d value %v outside [0, 2^32)",
					errs.ErrValueOutOfRange, o.label, row.K, v)
			}
			// Truncated toward zero, mirroring the rating cast on read.
			vals[i] = uint32(v)
		}
	}

	o.lengths[row.K] = n
	o.present.Add(uint32(row.K))
	o.prefs += n

	return encodeJob{k: row.K, idxs: idxs, vals: vals, release: release}, nil
}

// encodeRow runs on a worker: gap transform when the index codec wants it,
// then both encodes into the row's own slots.
func encodeRow(o *orientation, job encodeJob, idxCodec, valCodec codec.Codec) error {
	if !idxCodec.Integrated() {
		delta.Encode(job.idxs, 0, len(job.idxs))
	}

	idxBlob, err := idxCodec.Encode(job.idxs, 0, len(job.idxs))
	if err != nil {
		return fmt.Errorf("%s row %d index encode: %w", o.label, job.k, err)
	}
	o.idxBlobs[job.k] = idxBlob

	if job.vals != nil {
		valBlob, err := valCodec.Encode(job.vals, 0, len(job.vals))
		if err != nil {
			return fmt.Errorf("%s row %d value encode: %w", o.label, job.k, err)
		}
		o.valBlobs[job.k] = valBlob
	}

	return nil
}

// dataSource adapts one orientation of a built Data into the Source shape
// the builder consumes.
type dataSource struct {
	d      Data
	byUser bool
}

func userSource(d Data) Source { return dataSource{d: d, byUser: true} }
func itemSource(d Data) Source { return dataSource{d: d, byUser: false} }

func (s dataSource) NumRows() int {
	if s.byUser {
		return s.d.NumUsers()
	}

	return s.d.NumItems()
}

func (s dataSource) NumCols() int {
	if s.byUser {
		return s.d.NumItems()
	}

	return s.d.NumUsers()
}

func (s dataSource) Rows() iter.Seq[Row] {
	return func(yield func(Row) bool) {
		keys := s.d.UsersWithPreferences
		prefs := s.d.UserPreferences
		if !s.byUser {
			keys = s.d.ItemsWithPreferences
			prefs = s.d.ItemPreferences
		}

		// Scratch reused between yields; the builder copies on admit.
		var idxs []int
		var vals []float64
		for k := range keys() {
			idxs = idxs[:0]
			vals = vals[:0]
			for p := range prefs(k) {
				idxs = append(idxs, p.Idx)
				vals = append(vals, p.V)
			}
			if !yield(Row{K: k, Idxs: idxs, Vals: vals}) {
				return
			}
		}
	}
}
