package sha256

func bigSigma0(x uint32) uint32 {
	return rotateRight32(x, 2) ^ rotateRight32(x, 13) ^ rotateRight32(x, 22)
}

func bigSigma1(x uint32) uint32 {
	return rotateRight32(x, 6) ^ rotateRight32(x, 11) ^ rotateRight32(x, 25)
}

func ch(x, y, z uint32) uint32 {
	return z ^ (x & (y ^ z))
}

func maj(x, y, z uint32) uint32 {
	return (x & y) | (z & (x | y))
}

// Logical working registers a..h.
const (
	regA = iota
	regB
	regC
	regD
	regE
	regF
	regG
	regH
)

// slot maps logical register r at round i onto the physical register
// file. Advancing the round renames every register one step down the
// a..h chain without moving any data.
func slot(r, i int) int {
	return (r - i) & 7
}

// block compresses every whole 64-byte block of p into h.
func block(h *[8]uint32, p []byte) {
	var w schedule
	for len(p) >= chunk {
		w.load(p)
		t := *h
		for i := 0; i < 64; i++ {
			a, b, c := t[slot(regA, i)], t[slot(regB, i)], t[slot(regC, i)]
			e, f, g := t[slot(regE, i)], t[slot(regF, i)], t[slot(regG, i)]

			t1 := t[slot(regH, i)] + bigSigma1(e) + ch(e, f, g) + _K[i] + w.next(i)
			t2 := bigSigma0(a) + maj(a, b, c)

			// The slot holding h becomes a at round i+1, and the slot
			// holding d becomes e.
			t[slot(regD, i)] += t1
			t[slot(regH, i)] = t1 + t2
		}
		// 64 is a multiple of 8, so the mapping is back to identity.
		for j := range h {
			h[j] += t[j]
		}
		p = p[chunk:]
	}
}
