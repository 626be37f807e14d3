package mining

import (
	"math/big"
	"testing"

	"github.com/dmitryelj/SHA256-Benchmark/wire"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// refHeaderHex is block 277316 of the Bitcoin main chain.
const refHeaderHex = "02000000492263a1711b7d5ff065d7ae3da8b5f3fa39ad7bfea67b7e02000000000000009de25511ea941d5eb23a3f08ea8a54096e0a3cf57823b9eb2dabe030409f045ece05be520ca3031959f542fb"

func refHeader(t *testing.T) *wire.BlockHeader {
	h, err := wire.NewBlockHeaderFromStr(refHeaderHex)
	require.NoError(t, err)
	return h
}

func TestCompactToBig(t *testing.T) {
	want, ok := new(big.Int).SetString("3a30c00000000000000000000000000000000000000000000", 16)
	require.True(t, ok)
	assert.Equal(t, 0, want.Cmp(CompactToBig(0x1903a30c)))
}

func TestCheckProofOfWork(t *testing.T) {
	h := refHeader(t)
	assert.NoError(t, CheckProofOfWork(h))

	h.Nonce++
	assert.Equal(t, ErrHighHash, CheckProofOfWork(h))

	h.Bits = 0
	assert.Equal(t, ErrInvalidTarget, CheckProofOfWork(h))
}

func TestHashToBig(t *testing.T) {
	var hash wire.Hash
	hash[0] = 0x01
	assert.Equal(t, int64(1), HashToBig(hash).Int64())

	hash = wire.Hash{}
	hash[31] = 0x01
	want := new(big.Int).Lsh(big.NewInt(1), 248)
	assert.Equal(t, 0, want.Cmp(HashToBig(hash)))

	assert.True(t, MeetsTarget(hash, want))
	assert.False(t, MeetsTarget(hash, new(big.Int).Sub(want, big.NewInt(1))))
}
