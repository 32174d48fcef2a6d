// Package hash provides the hash function used to derive numeric identities
// for external user and item identifiers.
package hash

import "github.com/cespare/xxhash/v2"

// ID computes the xxHash64 of the given string.
func ID(data string) uint64 {
	return xxhash.Sum64String(data)
}

// IDBytes computes the xxHash64 of the given bytes. It produces the same
// value as ID for equal content, so readers can hash raw input without
// converting to string first.
func IDBytes(data []byte) uint64 {
	return xxhash.Sum64(data)
}
