package wire

import (
	"encoding/binary"
	"encoding/hex"
	"fmt"
	"io"
	"time"
)

// HeaderSize is the number of bytes in a serialized block header.
// Version 4 bytes + PrevBlock 32 bytes + MerkleRoot 32 bytes +
// Timestamp 4 bytes + Bits 4 bytes + Nonce 4 bytes.
const HeaderSize = 80

// NonceOffset is the byte offset of the nonce in a serialized header.
const NonceOffset = HeaderSize - 4

// BlockHeader is a Bitcoin-style block header: the 80 bytes whose double
// SHA-256 must fall below the target encoded in Bits.
type BlockHeader struct {
	// Version of the block.
	Version int32

	// Hash of the previous block header in the block chain.
	PrevBlock Hash

	// Merkle tree reference to hash of all transactions for the block.
	MerkleRoot Hash

	// Time the block was created, with one second precision.
	Timestamp time.Time

	// Difficulty target for the block, in compact form.
	Bits uint32

	// Nonce used to generate the block.
	Nonce uint32
}

// BlockHash computes the block identifier hash for the given block header.
func (h *BlockHeader) BlockHash() Hash {
	return DoubleHashH(h.Bytes())
}

// Bytes returns the 80-byte serialization of h.
func (h *BlockHeader) Bytes() []byte {
	buf := make([]byte, HeaderSize)
	h.put(buf)
	return buf
}

func (h *BlockHeader) put(buf []byte) {
	binary.LittleEndian.PutUint32(buf[0:4], uint32(h.Version))
	copy(buf[4:36], h.PrevBlock[:])
	copy(buf[36:68], h.MerkleRoot[:])
	binary.LittleEndian.PutUint32(buf[68:72], uint32(h.Timestamp.Unix()))
	binary.LittleEndian.PutUint32(buf[72:76], h.Bits)
	binary.LittleEndian.PutUint32(buf[76:80], h.Nonce)
}

// Serialize encodes h to w.
func (h *BlockHeader) Serialize(w io.Writer) error {
	var buf [HeaderSize]byte
	h.put(buf[:])
	_, err := w.Write(buf[:])
	return err
}

// Deserialize decodes a header from r into h.
func (h *BlockHeader) Deserialize(r io.Reader) error {
	var buf [HeaderSize]byte
	if _, err := io.ReadFull(r, buf[:]); err != nil {
		return err
	}
	return h.SetBytes(buf[:])
}

// SetBytes decodes an 80-byte serialization into h.
func (h *BlockHeader) SetBytes(bs []byte) error {
	if len(bs) != HeaderSize {
		return fmt.Errorf("%w: got %d bytes", ErrInvalidHeaderLength, len(bs))
	}
	h.Version = int32(binary.LittleEndian.Uint32(bs[0:4]))
	copy(h.PrevBlock[:], bs[4:36])
	copy(h.MerkleRoot[:], bs[36:68])
	h.Timestamp = time.Unix(int64(binary.LittleEndian.Uint32(bs[68:72])), 0)
	h.Bits = binary.LittleEndian.Uint32(bs[72:76])
	h.Nonce = binary.LittleEndian.Uint32(bs[76:80])
	return nil
}

// NewBlockHeaderFromBytes decodes a serialized header.
func NewBlockHeaderFromBytes(bs []byte) (*BlockHeader, error) {
	h := new(BlockHeader)
	if err := h.SetBytes(bs); err != nil {
		return nil, err
	}
	return h, nil
}

// NewBlockHeaderFromStr decodes a header given as 160 hex characters.
func NewBlockHeaderFromStr(s string) (*BlockHeader, error) {
	bs, err := hex.DecodeString(s)
	if err != nil {
		return nil, err
	}
	return NewBlockHeaderFromBytes(bs)
}
