// Package delta implements the gap transform applied to strictly ascending
// index lists before byte-level encoding.
//
// A strictly ascending window is rewritten so that every element after the
// first stores its distance to the predecessor minus one:
//
//	original:    [2, 5, 9]
//	transformed: [2, 2, 3]
//
// Because the input is strictly ascending, every gap is at least one, so the
// minus-one shaves the guaranteed minimum and the transformed values stay
// non-negative. Small gaps dominate in real preference rows, which is what
// makes variable-length codecs effective on the transformed window.
//
// Rating value lists are never transformed; consecutive ratings have no
// ordering guarantee.
package delta

// Encode applies the gap transform to values[offset : offset+count] in
// place. The first element of the window is unchanged.
//
// The window must be strictly ascending; the transform walks backwards so
// each element still sees its untouched predecessor. Windows of length zero
// or one are no-ops. The caller is responsible for keeping the window within
// bounds.
func Encode(values []uint32, offset, count int) {
	for i := offset + count - 1; i > offset; i-- {
		values[i] -= values[i-1] + 1
	}
}

// Decode reverses the gap transform on values[offset : offset+count] in
// place, restoring the original strictly ascending window. It walks forward
// so each element sees its already restored predecessor.
func Decode(values []uint32, offset, count int) {
	for i := offset + 1; i < offset+count; i++ {
		values[i] += values[i-1] + 1
	}
}
