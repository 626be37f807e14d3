package wire

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDoubleHash(t *testing.T) {
	tests := []struct {
		in     string
		single string
		double string
	}{
		{
			in:     "",
			single: "e3b0c44298fc1c149afbf4c8996fb92427ae41e4649b934ca495991b7852b855",
			double: "5df6e0e2761359d30a8275058e299fcc0381534545f55cf43e41983f5d4c9456",
		},
		{
			in:     "abc",
			single: "ba7816bf8f01cfea414140de5dae2223b00361a396177a9cb410ff61f20015ad",
			double: "4f8b42c22dd3729b519ba6f68d2da7cc5b2d606d05daed5ad5128cc03e6c6358",
		},
	}

	d := NewDoubleHasher()
	for i, test := range tests {
		single := HashH([]byte(test.in))
		assert.Equal(t, test.single, single.Hex(), "HashH #%d", i)
		assert.Equal(t, single[:], HashB([]byte(test.in)), "HashB #%d", i)

		double := DoubleHashH([]byte(test.in))
		assert.Equal(t, test.double, double.Hex(), "DoubleHashH #%d", i)
		assert.Equal(t, double[:], DoubleHashB([]byte(test.in)), "DoubleHashB #%d", i)
		assert.Equal(t, HashH(single[:]), double, "composition #%d", i)

		first, second := d.Sum([]byte(test.in))
		assert.Equal(t, single, first, "DoubleHasher first #%d", i)
		assert.Equal(t, double, second, "DoubleHasher second #%d", i)
		assert.Equal(t, double, d.Rehash(single), "Rehash #%d", i)
	}
}

func TestDoubleHasherReuse(t *testing.T) {
	d := NewDoubleHasher()
	msg := make([]byte, 200)
	for n := 0; n < len(msg); n++ {
		msg[n] = byte(n * 7)
		_, got := d.Sum(msg[:n])
		if want := DoubleHashH(msg[:n]); got != want {
			t.Fatalf("len %d: got %v, want %v", n, got, want)
		}
	}
}

func TestDoubleHasherSumThenRehash(t *testing.T) {
	d := NewDoubleHasher()
	msg := []byte("hello world\n")
	first, second := d.Sum(msg)
	assert.Equal(t, HashH(msg), first)
	assert.Equal(t, second, d.Rehash(first))
	assert.Equal(t, "f83e4b6bba3efac41f1ff56ee97adf7454680fee778924cb5ba06311d136ad1c", second.Hex())
}
