// Package sha256 implements the SHA-256 hash algorithm as defined in
// FIPS 180-4, as an incremental initialize / update / finalize state
// machine.
//
// A Context is a plain value: it holds no pointers, never allocates per
// block and may be copied to snapshot a partially hashed message. A single
// Context must not be used from several goroutines at once; independent
// Contexts need no coordination.
package sha256

import (
	"encoding/binary"
	"errors"
	"hash"
)

// ErrMessageTooLong is returned by Update when the total message would
// exceed MaxMessageLen bytes.
var ErrMessageTooLong = errors.New("sha256: message too long")

// State describes where a Context is in its lifecycle.
type State uint8

const (
	// StateFresh is a Context right after Reset or Finalize.
	StateFresh State = iota
	// StateAccumulating is a Context that has accepted input.
	StateAccumulating
)

func (s State) String() string {
	switch s {
	case StateFresh:
		return "fresh"
	case StateAccumulating:
		return "accumulating"
	default:
		return "invalid"
	}
}

// Context is the running state of one SHA-256 computation.
//
// The zero value is not ready for use; call Reset or use New.
type Context struct {
	h     [8]uint32
	x     [chunk]byte
	nx    int
	len   uint64
	state State
}

var _ hash.Hash = (*Context)(nil)

// New returns a fresh Context.
func New() *Context {
	c := new(Context)
	c.Reset()
	return c
}

// Reset sets c to the FIPS 180-4 initial hash value with no input
// consumed. It moves c to StateFresh.
func (c *Context) Reset() {
	c.h[0] = init0
	c.h[1] = init1
	c.h[2] = init2
	c.h[3] = init3
	c.h[4] = init4
	c.h[5] = init5
	c.h[6] = init6
	c.h[7] = init7
	c.x = [chunk]byte{}
	c.nx = 0
	c.len = 0
	c.state = StateFresh
}

// State reports the lifecycle state of c.
func (c *Context) State() State { return c.state }

// Len returns the number of message bytes consumed since the last Reset.
func (c *Context) Len() uint64 { return c.len }

// Size returns the digest size, 32 bytes.
func (c *Context) Size() int { return Size }

// BlockSize returns the SHA-256 block size, 64 bytes.
func (c *Context) BlockSize() int { return BlockSize }

// Update appends p to the message. Every completed 64-byte block is
// compressed immediately; the remainder stays buffered. The result does
// not depend on how the message is split across calls.
//
// If the message would grow beyond MaxMessageLen, Update returns
// ErrMessageTooLong and leaves c unchanged.
func (c *Context) Update(p []byte) error {
	if uint64(len(p)) > MaxMessageLen-c.len {
		return ErrMessageTooLong
	}
	c.state = StateAccumulating
	c.len += uint64(len(p))
	if c.nx > 0 {
		n := copy(c.x[c.nx:], p)
		c.nx += n
		if c.nx == chunk {
			block(&c.h, c.x[:])
			c.nx = 0
		}
		p = p[n:]
	}
	if len(p) >= chunk {
		n := len(p) &^ (chunk - 1)
		block(&c.h, p[:n])
		p = p[n:]
	}
	if len(p) > 0 {
		c.nx = copy(c.x[:], p)
	}
	return nil
}

// Write implements io.Writer on top of Update.
func (c *Context) Write(p []byte) (int, error) {
	if err := c.Update(p); err != nil {
		return 0, err
	}
	return len(p), nil
}

// Finalize pads the message, compresses the final block or blocks and
// returns the digest. c is then Reset and can hash a new message.
func (c *Context) Finalize() [Size]byte {
	bitLen := c.len << 3

	// One 0x80 byte, then zeros up to 56 mod 64. If fewer than 9 bytes
	// are free the padding spills into an extra block.
	c.x[c.nx] = 0x80
	c.nx++
	if c.nx > chunk-8 {
		for i := c.nx; i < chunk; i++ {
			c.x[i] = 0
		}
		block(&c.h, c.x[:])
		c.nx = 0
	}
	for i := c.nx; i < chunk-8; i++ {
		c.x[i] = 0
	}
	binary.BigEndian.PutUint64(c.x[chunk-8:], bitLen)
	block(&c.h, c.x[:])

	var digest [Size]byte
	for i, s := range c.h {
		binary.BigEndian.PutUint32(digest[i*4:], s)
	}

	c.Reset()
	return digest
}

// Sum appends the digest of the message written so far to b. Unlike
// Finalize it works on a copy, so c can keep accepting input.
func (c *Context) Sum(b []byte) []byte {
	d := *c
	digest := d.Finalize()
	return append(b, digest[:]...)
}

// Sum256 returns the SHA-256 digest of data.
func Sum256(data []byte) [Size]byte {
	var c Context
	c.Reset()
	// A single slice cannot exceed MaxMessageLen.
	_ = c.Update(data)
	return c.Finalize()
}
