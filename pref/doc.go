// Package pref stores user-item preference (rating) data as a compressed
// dual-indexed sparse matrix: every user's item list and every item's user
// list is an independently encoded blob pair, readable from either side
// without touching the other.
//
// # Model
//
// Users and items are dense surrogate indices (see the index package for
// mapping external IDs). A preference is a (user, item, value) triple; each
// orientation stores it twice, once per axis:
//
//	user row u: ascending item indices + positional values
//	item row i: ascending user indices + positional values
//
// Rows are encoded independently, so reading one row decodes one small blob
// pair, not the data set.
//
// # Building
//
//	simple, err := pref.NewSimple(numUsers, numItems, tuples)
//	if err != nil {
//	    return err
//	}
//	store, err := pref.NewStore(simple,
//	    pref.WithIndexCodec(codec.NewEliasFanoCodec()),
//	    pref.WithValueCodec(codec.NewPackedCodec()),
//	    pref.WithWorkers(8),
//	)
//
// NewStore consumes any Data; NewStoreFromSource consumes a row stream and
// derives the complementary orientation itself (TransposeSource). Both
// orientations build in parallel, and within each a dispatch goroutine
// validates rows while workers encode them into disjoint slots.
//
// Build-time validation fails fast with errors wrapping the errs sentinels:
// row keys out of range or duplicated, index lists not strictly ascending,
// length mismatches, values outside [0, 2^32). Values are truncated toward
// zero when stored.
//
// # Reading
//
// All reads are lazy iterators over one row:
//
//	for p := range store.UserPreferences(uidx) {
//	    // p.Idx is the item index, p.V the rating
//	}
//	for iidx := range store.UserItems(uidx) { ... }   // index plane only
//	for v := range store.UserValues(uidx) { ... }     // value plane only
//	for uidx := range store.UsersWithPreferences() { ... }
//
// Empty rows yield nothing without touching a blob. Non-empty reads decode
// into pooled scratch scoped to the iteration; breaking early releases it.
// Reads are safe for arbitrary concurrent use: a store never changes after
// construction.
//
// Two conditions panic instead of returning errors: a surrogate index
// outside its space (caller bug) and a blob that no longer decodes
// (corruption of immutable state, the panic wraps errs.ErrCorruptedBlob).
//
// # Variants
//
//   - Simple: uncompressed slice-backed Data; build input, test oracle, and
//     size baseline.
//   - BinaryStore: index plane only, for implicit-feedback data; preference
//     values read as 1.
//   - Transpose: axis-swapping view over any Data, delegation only.
//
// # Codec Choice
//
// Index lists are strictly ascending and benefit from the gap transform,
// which the store applies automatically unless the codec is integrated
// (EliasFano). Values are encoded as-is. The stats package measures actual
// sizes per codec pair; VarByte is the default for both planes.
package pref
