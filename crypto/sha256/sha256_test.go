package sha256

import (
	gosha256 "crypto/sha256"
	"encoding/binary"
	"encoding/hex"
	"math/rand"
	"strings"
	"testing"

	"github.com/davecgh/go-spew/spew"
	simd "github.com/minio/sha256-simd"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sha256Test struct {
	out string
	in  string
}

var golden = []sha256Test{
	{"e3b0c44298fc1c149afbf4c8996fb92427ae41e4649b934ca495991b7852b855", ""},
	{"ba7816bf8f01cfea414140de5dae2223b00361a396177a9cb410ff61f20015ad", "abc"},
	{"248d6a61d20638b8e5c026930c3e6039a33ce45964ff2167f6ecedd419db06c1", "abcdbcdecdefdefgefghfghighijhijkijkljklmklmnlmnomnopnopq"},
	{"cf5b16a778af8380036ce59e7b0492370b249b11e8f07a51afac45037afee9d1", "abcdefghbcdefghicdefghijdefghijkefghijklfghijklmghijklmnhijklmnoijklmnopjklmnopqklmnopqrlmnopqrsmnopqrstnopqrstu"},
	{"a948904f2f0f479b8f8197694b30184b0d2ed1c1cd2a1ec0fb85d299a192a447", "hello world\n"},
	// Padding boundaries: 55 bytes fit one block, 56 spill into a second.
	{"9f4390f8d30c2dd92ec9f095b65e2b9ae9b0a925a5258e241c9f1e910f734318", strings.Repeat("a", 55)},
	{"b35439a4ac6f0948b6d6f9e3c6af0f5f590ce20f1bde7090ef7970686ec6738a", strings.Repeat("a", 56)},
	{"7d3e74a05d7db15bce4ad9ec0658ea98e3f06eeecf16b4c6fff2da457ddc2f34", strings.Repeat("a", 63)},
	{"ffe054fe7ae0cb6dc65c3af9b61d5209f439851db43d0ba5997337df154668eb", strings.Repeat("a", 64)},
}

func TestGolden(t *testing.T) {
	for i, g := range golden {
		sum := Sum256([]byte(g.in))
		assert.Equal(t, g.out, hex.EncodeToString(sum[:]), "Sum256 #%d, len %d", i, len(g.in))

		c := New()
		for j := 0; j < 3; j++ {
			if j < 2 {
				require.NoError(t, c.Update([]byte(g.in)))
			} else {
				half := len(g.in) / 2
				require.NoError(t, c.Update([]byte(g.in[:half])))
				require.NoError(t, c.Update([]byte(g.in[half:])))
			}
			got := c.Finalize()
			assert.Equal(t, g.out, hex.EncodeToString(got[:]), "Context #%d, pass %d", i, j)
		}
	}
}

func TestMillionA(t *testing.T) {
	if testing.Short() {
		t.Skip("long vector")
	}
	c := New()
	buf := []byte(strings.Repeat("a", 1000))
	for i := 0; i < 1000; i++ {
		require.NoError(t, c.Update(buf))
	}
	got := c.Finalize()
	assert.Equal(t, "cdc76e5c9914fb9281a1c7e284d73e67f1809a48a497200e046d39ccc7112cd0", hex.EncodeToString(got[:]))
}

// TestReferenceLengths covers the two message lengths the Bitcoin double
// hash produces, and their neighbours, through the generic padding path.
func TestReferenceLengths(t *testing.T) {
	rng := rand.New(rand.NewSource(80))
	for _, n := range []int{31, 32, 33, 79, 80, 81} {
		msg := make([]byte, n)
		rng.Read(msg)
		want := gosha256.Sum256(msg)
		if got := Sum256(msg); got != want {
			t.Errorf("len %d: got %x, want %x", n, got, want)
		}
	}
}

func TestMatchesReferenceImplementations(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	for n := 0; n <= 300; n++ {
		msg := make([]byte, n)
		rng.Read(msg)
		got := Sum256(msg)
		if want := gosha256.Sum256(msg); got != want {
			t.Fatalf("len %d: crypto/sha256 mismatch, got %x, want %x", n, got, want)
		}
		if want := simd.Sum256(msg); got != want {
			t.Fatalf("len %d: sha256-simd mismatch, got %x, want %x", n, got, want)
		}
	}
}

func TestStreamingConsistency(t *testing.T) {
	rng := rand.New(rand.NewSource(2))
	msg := make([]byte, 1031)
	rng.Read(msg)
	want := Sum256(msg)

	c := New()
	for round := 0; round < 200; round++ {
		rest := msg
		for len(rest) > 0 {
			n := rng.Intn(150) + 1
			if n > len(rest) {
				n = len(rest)
			}
			require.NoError(t, c.Update(rest[:n]))
			rest = rest[n:]
		}
		if got := c.Finalize(); got != want {
			t.Fatalf("round %d: got %x, want %x", round, got, want)
		}
	}

	// Byte-at-a-time, including empty updates in between.
	for _, b := range msg {
		require.NoError(t, c.Update(nil))
		require.NoError(t, c.Update([]byte{b}))
	}
	assert.Equal(t, want, c.Finalize())
}

func TestStateMachine(t *testing.T) {
	c := New()
	assert.Equal(t, StateFresh, c.State())
	assert.Equal(t, uint64(0), c.Len())

	require.NoError(t, c.Update([]byte("ab")))
	assert.Equal(t, StateAccumulating, c.State())
	require.NoError(t, c.Update([]byte("c")))
	assert.Equal(t, uint64(3), c.Len())

	first := c.Finalize()
	assert.Equal(t, StateFresh, c.State())
	assert.Equal(t, uint64(0), c.Len())

	// A finalized context must behave exactly like a new one.
	fresh := New()
	if *c != *fresh {
		t.Fatalf("context after Finalize differs from New:\n%s\n%s", spew.Sdump(c), spew.Sdump(fresh))
	}

	require.NoError(t, c.Update([]byte("abc")))
	assert.Equal(t, first, c.Finalize())

	// Finalize on a fresh context is the empty-message digest.
	empty := c.Finalize()
	assert.Equal(t, "e3b0c44298fc1c149afbf4c8996fb92427ae41e4649b934ca495991b7852b855", hex.EncodeToString(empty[:]))

	assert.Equal(t, "fresh", StateFresh.String())
	assert.Equal(t, "accumulating", StateAccumulating.String())
	assert.Equal(t, "invalid", State(9).String())
}

func TestHashInterface(t *testing.T) {
	c := New()
	assert.Equal(t, Size, c.Size())
	assert.Equal(t, BlockSize, c.BlockSize())

	n, err := c.Write([]byte("ab"))
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	// Sum must not disturb the running message.
	prefix := []byte{0xff}
	sum := c.Sum(prefix)
	assert.Len(t, sum, 1+Size)
	assert.Equal(t, byte(0xff), sum[0])
	assert.Equal(t, StateAccumulating, c.State())
	assert.Equal(t, uint64(2), c.Len())

	_, err = c.Write([]byte("c"))
	require.NoError(t, err)
	assert.Equal(t, "ba7816bf8f01cfea414140de5dae2223b00361a396177a9cb410ff61f20015ad", hex.EncodeToString(c.Sum(nil)))

	c.Reset()
	assert.Equal(t, StateFresh, c.State())
}

func TestCopySnapshot(t *testing.T) {
	header := make([]byte, 80)
	for i := range header {
		header[i] = byte(i)
	}

	mid := New()
	require.NoError(t, mid.Update(header[:64]))
	for nonce := 0; nonce < 4; nonce++ {
		header[76] = byte(nonce)
		c := *mid
		require.NoError(t, c.Update(header[64:]))
		assert.Equal(t, gosha256.Sum256(header), c.Finalize(), "nonce %d", nonce)
	}
}

func TestMessageTooLong(t *testing.T) {
	c := New()
	require.NoError(t, c.Update([]byte("abc")))
	c.len = MaxMessageLen - 1
	before := *c

	err := c.Update([]byte("xy"))
	assert.Equal(t, ErrMessageTooLong, err)
	assert.Equal(t, before, *c, "failed Update must not touch the context")

	n, err := c.Write([]byte("xy"))
	assert.Equal(t, ErrMessageTooLong, err)
	assert.Equal(t, 0, n)

	require.NoError(t, c.Update([]byte("x")))
	assert.Equal(t, uint64(MaxMessageLen), c.Len())
	assert.Equal(t, ErrMessageTooLong, c.Update([]byte("x")))
}

func TestRotate(t *testing.T) {
	tests := []struct {
		v     uint32
		n     uint
		left  uint32
		right uint32
	}{
		{0x80000001, 1, 0x00000003, 0xC0000000},
		{0x12345678, 0, 0x12345678, 0x12345678},
		{0x12345678, 32, 0x12345678, 0x12345678},
		{0x12345678, 4, 0x23456781, 0x81234567},
		{0x12345678, 36, 0x23456781, 0x81234567},
		{0xdeadbeef, 31, 0xEF56DF77, 0xBD5B7DDF},
	}
	for i, test := range tests {
		if got := rotateLeft32(test.v, test.n); got != test.left {
			t.Errorf("%d: rotateLeft32(%#x, %d) = %#x, want %#x", i, test.v, test.n, got, test.left)
		}
		if got := rotateRight32(test.v, test.n); got != test.right {
			t.Errorf("%d: rotateRight32(%#x, %d) = %#x, want %#x", i, test.v, test.n, got, test.right)
		}
		if got := rotateRight32(rotateLeft32(test.v, test.n), test.n); got != test.v {
			t.Errorf("%d: rotation round trip = %#x, want %#x", i, got, test.v)
		}
	}
}

// directSchedule is the textbook 64-word expansion.
func directSchedule(p []byte) [64]uint32 {
	var w [64]uint32
	for i := 0; i < 16; i++ {
		w[i] = binary.BigEndian.Uint32(p[i*4:])
	}
	for i := 16; i < 64; i++ {
		w[i] = w[i-16] + sigma0(w[i-15]) + w[i-7] + sigma1(w[i-2])
	}
	return w
}

func TestScheduleMatchesDirect(t *testing.T) {
	rng := rand.New(rand.NewSource(3))
	p := make([]byte, chunk)
	for round := 0; round < 100; round++ {
		rng.Read(p)
		want := directSchedule(p)
		var w schedule
		w.load(p)
		for i := 0; i < 64; i++ {
			if got := w.next(i); got != want[i] {
				t.Fatalf("round %d word %d: got %#x, want %#x", round, i, got, want[i])
			}
		}
	}
}

func TestSlot(t *testing.T) {
	// Round 0 is the identity mapping, and every round shifts by one.
	for r := regA; r <= regH; r++ {
		assert.Equal(t, r, slot(r, 0))
		assert.Equal(t, r, slot(r, 64))
		for i := 0; i < 63; i++ {
			assert.Equal(t, slot(r, i), slot(r+1, i+1))
		}
	}
	// h at round i is a at round i+1; d at round i is e at round i+1.
	assert.Equal(t, slot(regH, 5), slot(regA, 6))
	assert.Equal(t, slot(regD, 5), slot(regE, 6))
}

func TestBlockFromInitialState(t *testing.T) {
	// "abc" padded by hand is a single block.
	var p [chunk]byte
	copy(p[:], "abc")
	p[3] = 0x80
	p[63] = 24

	h := [8]uint32{init0, init1, init2, init3, init4, init5, init6, init7}
	block(&h, p[:])
	want := [8]uint32{
		0xba7816bf, 0x8f01cfea, 0x414140de, 0x5dae2223,
		0xb00361a3, 0x96177a9c, 0xb410ff61, 0xf20015ad,
	}
	assert.Equal(t, want, h)

	// Fewer than 64 bytes are not a block.
	before := h
	block(&h, p[:chunk-1])
	assert.Equal(t, before, h)
}

func TestMixingFunctions(t *testing.T) {
	assert.Equal(t, uint32(0xf0f0f0f0), ch(0xffffffff, 0xf0f0f0f0, 0x0f0f0f0f))
	assert.Equal(t, uint32(0x0f0f0f0f), ch(0, 0xf0f0f0f0, 0x0f0f0f0f))
	assert.Equal(t, uint32(0xff00ff00), maj(0xff00ff00, 0xffff0000, 0x0000ff00))
	assert.Equal(t, uint32(0), maj(0xffffffff, 0, 0))
	assert.Equal(t, rotateRight32(1, 2)^rotateRight32(1, 13)^rotateRight32(1, 22), bigSigma0(1))
	assert.Equal(t, rotateRight32(1, 6)^rotateRight32(1, 11)^rotateRight32(1, 25), bigSigma1(1))
}
