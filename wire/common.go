package wire

import (
	"github.com/dmitryelj/SHA256-Benchmark/crypto/sha256"
)

// HashB calculates hash(b) and returns the resulting bytes.
func HashB(b []byte) []byte {
	hash := sha256.Sum256(b)
	return hash[:]
}

// HashH calculates hash(b) and returns the resulting bytes as a Hash.
func HashH(b []byte) Hash {
	return Hash(sha256.Sum256(b))
}

// DoubleHashB calculates sha256(sha256(b)) and returns the resulting bytes.
func DoubleHashB(b []byte) []byte {
	second := DoubleHashH(b)
	return second[:]
}

// DoubleHashH calculates sha256(sha256(b)) and returns the resulting bytes
// as a Hash.
func DoubleHashH(b []byte) Hash {
	first := sha256.Sum256(b)
	return Hash(sha256.Sum256(first[:]))
}

// DoubleHasher computes double hashes with a single reusable context. It is
// meant for hot loops; it is not safe for concurrent use.
type DoubleHasher struct {
	ctx sha256.Context
}

// NewDoubleHasher returns a DoubleHasher ready for use.
func NewDoubleHasher() *DoubleHasher {
	d := new(DoubleHasher)
	d.ctx.Reset()
	return d
}

// Sum returns sha256(sha256(b)) along with the intermediate first hash.
func (d *DoubleHasher) Sum(b []byte) (first, second Hash) {
	// A single slice cannot exceed MaxMessageLen.
	_, _ = d.ctx.Write(b)
	first = d.ctx.Finalize()
	return first, d.Rehash(first)
}

// Rehash returns sha256(first). It is the second half of a double hash
// whose first half was computed elsewhere, for example from a midstate.
func (d *DoubleHasher) Rehash(first Hash) Hash {
	_, _ = d.ctx.Write(first[:])
	return d.ctx.Finalize()
}
