package sha256

import "encoding/binary"

func sigma0(x uint32) uint32 {
	return rotateRight32(x, 7) ^ rotateRight32(x, 18) ^ (x >> 3)
}

func sigma1(x uint32) uint32 {
	return rotateRight32(x, 17) ^ rotateRight32(x, 19) ^ (x >> 10)
}

// schedule is the message schedule kept as a 16-word circular window.
// Word i of the 64-word schedule lives in slot i&15 until round i+16
// overwrites it.
type schedule [16]uint32

// load fills the window with the big-endian words of a 64-byte block.
func (w *schedule) load(p []byte) {
	_ = p[chunk-1]
	for i := range w {
		w[i] = binary.BigEndian.Uint32(p[i*4:])
	}
}

// next returns schedule word i. Rounds must ask for words in order.
func (w *schedule) next(i int) uint32 {
	if i < 16 {
		return w[i]
	}
	w[i&15] += sigma1(w[(i-2)&15]) + w[(i-7)&15] + sigma0(w[(i-15)&15])
	return w[i&15]
}
