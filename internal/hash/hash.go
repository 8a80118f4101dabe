// Package hash wraps RapidHash, the hasher used for metadata and data
// checksums, behind the pair of entry points the rest of the module
// needs: a one-shot Sum and a streaming Hasher for callers that build up
// bytes incrementally (the container hashes the descriptor bytes, the
// descriptor length and the data checksum as separate pieces).
//
// The default seed is always used; IMA has no per-file seed configuration.
package hash

import "github.com/zeebo/rapidhash"

// Sum returns the RapidHash of data using the library's default seed.
func Sum(data []byte) uint64 {
	return rapidhash.Sum64(data)
}

// Hasher is a streaming RapidHash accumulator, for callers that build up
// bytes incrementally instead of hashing a single contiguous slice.
type Hasher = rapidhash.Hasher

// New returns a Hasher seeded with the library's default seed.
func New() *Hasher {
	return rapidhash.New()
}
