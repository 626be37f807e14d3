package mining

import (
	"errors"
	"math/big"

	"github.com/btcsuite/btcd/blockchain"
	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"github.com/dmitryelj/SHA256-Benchmark/wire"
)

var (
	// ErrInvalidTarget is returned for a target that is zero or negative.
	ErrInvalidTarget = errors.New("target must be positive")
	// ErrHighHash is returned when a block hash is above its target.
	ErrHighHash = errors.New("block hash is higher than target")
)

// HashToBig converts a hash into a big.Int, treating the hash as the
// little-endian encoding of a 256-bit number.
func HashToBig(hash wire.Hash) *big.Int {
	ch := chainhash.Hash(hash)
	return blockchain.HashToBig(&ch)
}

// CompactToBig expands the compact "bits" representation of a target.
func CompactToBig(bits uint32) *big.Int {
	return blockchain.CompactToBig(bits)
}

// MeetsTarget reports whether hash, read as a number, is at most target.
func MeetsTarget(hash wire.Hash, target *big.Int) bool {
	return HashToBig(hash).Cmp(target) <= 0
}

// CheckProofOfWork verifies that the double hash of header is at most the
// target encoded in its Bits field.
func CheckProofOfWork(header *wire.BlockHeader) error {
	target := CompactToBig(header.Bits)
	if target.Sign() <= 0 {
		return ErrInvalidTarget
	}
	if !MeetsTarget(header.BlockHash(), target) {
		return ErrHighHash
	}
	return nil
}
