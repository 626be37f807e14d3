package sha256

import "math/bits"

// rotateLeft32 rotates v left by n bits. n is taken modulo 32.
func rotateLeft32(v uint32, n uint) uint32 {
	return bits.RotateLeft32(v, int(n&31))
}

// rotateRight32 rotates v right by n bits. n is taken modulo 32.
func rotateRight32(v uint32, n uint) uint32 {
	return bits.RotateLeft32(v, -int(n&31))
}
