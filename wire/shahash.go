package wire

import (
	"encoding/hex"
	"fmt"
)

// HashSize is the size of a SHA-256 digest in bytes.
const HashSize = 32

// MaxHashStringSize is the length of a fully written hash string.
const MaxHashStringSize = HashSize * 2

// ErrHashStrSize is returned for hash strings longer than
// MaxHashStringSize characters.
var ErrHashStrSize = fmt.Errorf("max hash string length is %v bytes", MaxHashStringSize)

// Hash is a SHA-256 digest kept in the byte order the hash function emits.
// Block hashes are shown reversed, see String.
type Hash [HashSize]byte

// String returns the hex encoding of the byte-reversed hash, which is how
// block explorers display block hashes.
func (hash Hash) String() string {
	for i, j := 0, HashSize-1; i < j; i, j = i+1, j-1 {
		hash[i], hash[j] = hash[j], hash[i]
	}
	return hex.EncodeToString(hash[:])
}

// Hex returns the hex encoding of the digest in emitted order.
func (hash Hash) Hex() string {
	return hex.EncodeToString(hash[:])
}

// CloneBytes returns a copy of the digest bytes.
func (hash *Hash) CloneBytes() []byte {
	return append([]byte(nil), hash[:]...)
}

// SetBytes copies b into hash. b must be exactly HashSize bytes.
func (hash *Hash) SetBytes(b []byte) error {
	if len(b) != HashSize {
		return fmt.Errorf("invalid hash length of %v, want %v", len(b), HashSize)
	}
	copy(hash[:], b)
	return nil
}

// IsEqual reports whether hash and target hold the same digest. Two nil
// hashes are equal.
func (hash *Hash) IsEqual(target *Hash) bool {
	if hash == nil || target == nil {
		return hash == target
	}
	return *hash == *target
}

// NewHash returns a Hash holding a copy of b.
func NewHash(b []byte) (*Hash, error) {
	var h Hash
	if err := h.SetBytes(b); err != nil {
		return nil, err
	}
	return &h, nil
}

// NewHashFromStr parses a hash in display form, see Decode.
func NewHashFromStr(s string) (*Hash, error) {
	h := new(Hash)
	if err := Decode(h, s); err != nil {
		return nil, err
	}
	return h, nil
}

// Decode parses the display form of a hash into dst. Leading zeros may be
// omitted, as may an odd leading nibble.
func Decode(dst *Hash, src string) error {
	if len(src) > MaxHashStringSize {
		return ErrHashStrSize
	}
	if len(src)%2 != 0 {
		src = "0" + src
	}

	var display Hash
	if _, err := hex.Decode(display[HashSize-len(src)/2:], []byte(src)); err != nil {
		return err
	}
	for i, b := range display {
		dst[HashSize-1-i] = b
	}
	return nil
}
