// Package errs defines the sentinel errors shared across prefpack packages.
//
// Errors are plain sentinel values. Call sites attach context by wrapping:
//
//	return fmt.Errorf("%w: row %d has %d indices, %d values",
//		errs.ErrLengthMismatch, k, ni, nv)
//
// Callers test categories with errors.Is.
package errs

import "errors"

// Build contract violations. Returned by store construction when a source
// row breaks the input contract; construction stops at the first violation.
var (
	// ErrIndexOutOfRange indicates a surrogate index outside its declared
	// space: a row key beyond the orientation's row count, or a counterpart
	// index beyond the counterpart count.
	ErrIndexOutOfRange = errors.New("surrogate index out of range")

	// ErrDuplicateRow indicates a source yielded two rows with the same
	// surrogate index.
	ErrDuplicateRow = errors.New("duplicate row for surrogate index")

	// ErrLengthMismatch indicates a row whose counterpart-index and value
	// slices differ in length.
	ErrLengthMismatch = errors.New("index/value length mismatch")

	// ErrNotAscending indicates a sequence that must be strictly ascending
	// is not.
	ErrNotAscending = errors.New("sequence not strictly ascending")

	// ErrDuplicateIndex indicates a repeated counterpart index within a
	// single row.
	ErrDuplicateIndex = errors.New("duplicate counterpart index in row")

	// ErrValueOutOfRange indicates a rating value that cannot be stored:
	// negative, NaN, or beyond the 32-bit unsigned range.
	ErrValueOutOfRange = errors.New("rating value out of range")

	// ErrNilData indicates a nil data source passed to a constructor.
	ErrNilData = errors.New("nil preference data")

	// ErrNilCodec indicates a nil codec passed to a constructor or option.
	ErrNilCodec = errors.New("nil codec")
)

// Codec errors. Encode-side errors fail the build; decode-side corruption
// is fatal and surfaces as a panic from the read path.
var (
	// ErrInvalidOffset indicates a negative or out-of-bounds window offset.
	ErrInvalidOffset = errors.New("invalid window offset")

	// ErrInvalidCount indicates a negative count or a window extending past
	// the end of the slice.
	ErrInvalidCount = errors.New("invalid window count")

	// ErrCorruptedBlob indicates an encoded blob that cannot reproduce
	// exactly the recorded element count: truncated data, trailing bytes,
	// or a malformed header.
	ErrCorruptedBlob = errors.New("corrupted codec blob")
)

// Index errors.
var (
	// ErrHashCollision indicates two distinct identifiers hashing to the
	// same 64-bit value; a hashed index cannot remain a bijection past this
	// point.
	ErrHashCollision = errors.New("identifier hash collision")

	// ErrDuplicateID indicates the same identifier added twice while
	// constructing an index from a fixed identifier list.
	ErrDuplicateID = errors.New("duplicate identifier")
)

// Format errors.
var (
	// ErrInvalidFormat indicates a malformed line in a ratings or index
	// file.
	ErrInvalidFormat = errors.New("invalid file format")
)
