// Package prefpack stores user-item preference data as compressed,
// dual-indexed sparse matrices.
//
// Prefpack is optimized for recommendation workloads with many users and
// items but short preference lists per row (e.g. 100k users averaging a few
// dozen ratings each), providing compact per-row blobs and equal-cost
// iteration from either side of the matrix.
//
// # Core Features
//
//   - Dual orientation: every row readable by user or by item
//   - Pluggable integer codecs (VarByte, EliasFano, Packed, Raw) per plane
//   - Optional byte-level compression (Zstd, S2, LZ4) around any codec
//   - Binary stores that keep presence only and skip the value planes
//   - Constant-time transposed views that swap the two orientations
//   - Parallel builds with full per-row validation
//
// # Basic Usage
//
// Building and reading a rating store:
//
//	import (
//	    "github.com/arloliu/prefpack"
//	    "github.com/arloliu/prefpack/pref"
//	)
//
//	tuples := []pref.Tuple{
//	    {UIdx: 0, IIdx: 9, V: 4},
//	    {UIdx: 0, IIdx: 2, V: 3},
//	    {UIdx: 1, IIdx: 5, V: 2},
//	}
//	data, _ := pref.NewSimple(2, 12, tuples)
//
//	store, _ := prefpack.New(data)
//	for p := range store.UserPreferences(0) {
//	    fmt.Printf("item=%d rating=%g\n", p.Idx, p.V)
//	}
//	for p := range store.ItemPreferences(5) {
//	    fmt.Printf("user=%d rating=%g\n", p.Idx, p.V)
//	}
//
// Choosing codecs per plane:
//
//	store, _ := prefpack.New(data,
//	    prefpack.WithIndexCodec(codec.NewEliasFanoCodec()),
//	    prefpack.WithValueCodec(codec.NewPackedCodec()),
//	)
//
// # Package Structure
//
// This package provides convenient top-level wrappers around the pref
// package, simplifying the most common use cases. For advanced usage and
// fine-grained control, use the pref package directly.
package prefpack

import (
	"github.com/arloliu/prefpack/codec"
	"github.com/arloliu/prefpack/pref"
)

// New builds a compressed dual-indexed store from in-memory preference data.
//
// The input is read twice, once per orientation, and every row is encoded
// into an immutable blob pair. The returned store answers the full pref.Data
// interface from either side without consulting the input again.
//
// Parameters:
//   - d: The preference data to compress (typically a *pref.Simple)
//   - opts: Optional configuration functions (see pref.Option)
//
// Returns:
//   - *pref.Store: The built store.
//   - error: An error if the input is nil, malformed, or an option is invalid.
//
// Available options:
//   - WithIndexCodec(c) / WithUserCodec(c) / WithItemCodec(c)
//   - WithValueCodec(c)
//   - WithWorkers(n)
//
// All planes default to the VarByte codec (see DefaultCodec) and builds use
// GOMAXPROCS encode workers.
//
// Example:
//
//	store, err := prefpack.New(data,
//	    prefpack.WithIndexCodec(codec.NewEliasFanoCodec()),
//	    prefpack.WithWorkers(8),
//	)
func New(d pref.Data, opts ...pref.Option) (*pref.Store, error) {
	return pref.NewStore(d, opts...)
}

// NewFromSource builds a compressed dual-indexed store from streamed rows.
//
// Use this when the preference matrix does not fit in memory as a pref.Data
// value, or when rows arrive from an external producer. The source's user
// orientation is consumed directly and the item orientation is derived by
// bucketing, so Rows may yield rows in any order.
//
// Parameters:
//   - s: The row stream for the user orientation
//   - opts: Optional configuration functions (see pref.Option)
//
// Returns:
//   - *pref.Store: The built store.
//   - error: An error if the source is nil, a row is malformed, or an
//     option is invalid.
//
// Example:
//
//	store, err := prefpack.NewFromSource(src,
//	    prefpack.WithValueCodec(codec.NewPackedCodec()),
//	)
func NewFromSource(s pref.Source, opts ...pref.Option) (*pref.Store, error) {
	return pref.NewStoreFromSource(s, opts...)
}

// NewBinary builds a presence-only store from in-memory preference data.
//
// Binary stores record which user-item pairs exist and discard the rating
// values entirely, so no value planes are built and value-side validation is
// skipped. Reads report the constant value 1 for every present pair.
//
// Use this when:
//   - Interactions are implicit (clicks, plays, purchases) with no rating
//   - The value planes would double the footprint for no benefit
//
// Parameters:
//   - d: The preference data to compress; its values are ignored
//   - opts: Optional configuration functions (WithValueCodec has no effect)
//
// Returns:
//   - *pref.BinaryStore: The built store.
//   - error: An error if the input is nil, malformed, or an option is invalid.
//
// Example:
//
//	store, err := prefpack.NewBinary(data,
//	    prefpack.WithIndexCodec(codec.NewEliasFanoCodec()),
//	)
func NewBinary(d pref.Data, opts ...pref.Option) (*pref.BinaryStore, error) {
	return pref.NewBinaryStore(d, opts...)
}

// NewBinaryFromSource builds a presence-only store from streamed rows.
//
// Like NewBinary but for rows arriving from a pref.Source. Row values are
// ignored, so sources may yield rows with empty Vals.
//
// Parameters:
//   - s: The row stream for the user orientation
//   - opts: Optional configuration functions (WithValueCodec has no effect)
//
// Returns:
//   - *pref.BinaryStore: The built store.
//   - error: An error if the source is nil, a row is malformed, or an
//     option is invalid.
func NewBinaryFromSource(s pref.Source, opts ...pref.Option) (*pref.BinaryStore, error) {
	return pref.NewBinaryStoreFromSource(s, opts...)
}

// Transpose returns a view of d with the user and item roles swapped.
//
// The view shares d's storage: no rows are copied and no blobs are rebuilt.
// Users become items and items become users, so UserPreferences on the view
// answers ItemPreferences on d. Transposing a transposed view returns the
// original value.
//
// Parameters:
//   - d: The preference data to view transposed
//
// Returns:
//   - pref.Data: The transposed view.
//
// Example:
//
//	byItem := prefpack.Transpose(store)
//	for p := range byItem.UserPreferences(5) {
//	    // p.Idx is a user index of item 5
//	}
func Transpose(d pref.Data) pref.Data {
	return pref.Transpose(d)
}

// DefaultCodec returns the codec every plane uses when no option overrides
// it: stream variable-byte encoding with the gap transform applied to index
// lists.
//
// VarByte is the default because it is byte-aligned, cheap to decode, and
// within a few percent of the tighter codecs on typical rating data. Swap in
// codec.NewEliasFanoCodec for the smallest index planes or
// codec.NewPackedCodec for narrow value ranges.
func DefaultCodec() codec.Codec {
	return codec.NewVarByteCodec()
}

// WithIndexCodec sets the codec for both orientations' index lists.
func WithIndexCodec(c codec.Codec) pref.Option {
	return pref.WithIndexCodec(c)
}

// WithUserCodec sets the codec for the user orientation's index lists.
func WithUserCodec(c codec.Codec) pref.Option {
	return pref.WithUserCodec(c)
}

// WithItemCodec sets the codec for the item orientation's index lists.
func WithItemCodec(c codec.Codec) pref.Option {
	return pref.WithItemCodec(c)
}

// WithValueCodec sets the codec for the rating values of both orientations.
func WithValueCodec(c codec.Codec) pref.Option {
	return pref.WithValueCodec(c)
}

// WithWorkers sets the number of encode workers per build pass.
// Defaults to GOMAXPROCS.
func WithWorkers(n int) pref.Option {
	return pref.WithWorkers(n)
}
