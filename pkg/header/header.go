// Package header implements the fixed 80-byte block header.
//
//	offset  size  field
//	0       4     version      (uint32le)
//	4       32    prev block   (wire order)
//	36      32    merkle root  (wire order)
//	68      4     timestamp    (uint32le)
//	72      4     nBits        (uint32le)
//	76      4     nonce        (uint32le)
//
// Raw headers are plain []byte values. SetNonce and SetTimestamp never modify
// their argument; they return a new 80-byte slice.
package header

import (
	"encoding/binary"

	"github.com/btcsuite/btcd/chaincfg/chainhash"

	"github.com/suffix-labs/genblock/pkg/crypto"
	"github.com/suffix-labs/genblock/pkg/wire"
)

// Size is the length of a serialized header.
const Size = 80

// Field offsets.
const (
	versionOffset    = 0
	prevBlockOffset  = 4
	merkleRootOffset = 36
	timestampOffset  = 68
	bitsOffset       = 72
	nonceOffset      = 76
)

// Header is the decoded form of a block header.
type Header struct {
	Version    uint32
	PrevBlock  chainhash.Hash
	MerkleRoot chainhash.Hash
	Timestamp  uint32 // Unix time
	Bits       uint32 // Compact difficulty target
	Nonce      uint32
}

// Encode serializes the header fields into 80 bytes.
func Encode(version uint32, prevBlock, merkleRoot chainhash.Hash, timestamp, bits, nonce uint32) []byte {
	out := make([]byte, 0, Size)
	out = wire.AppendUint32(out, version)
	out = append(out, prevBlock[:]...)
	out = append(out, merkleRoot[:]...)
	out = wire.AppendUint32(out, timestamp)
	out = wire.AppendUint32(out, bits)
	return wire.AppendUint32(out, nonce)
}

// Bytes serializes h.
func (h Header) Bytes() []byte {
	return Encode(h.Version, h.PrevBlock, h.MerkleRoot, h.Timestamp, h.Bits, h.Nonce)
}

// Hash returns the block hash of h under the protocol hash f.
func (h Header) Hash(f crypto.HashFunc) chainhash.Hash {
	return f.Sum(h.Bytes())
}

// Decode parses an 80-byte header.
func Decode(raw []byte) (Header, error) {
	if err := checkSize(raw); err != nil {
		return Header{}, err
	}

	var h Header
	h.Version = binary.LittleEndian.Uint32(raw[versionOffset:])
	copy(h.PrevBlock[:], raw[prevBlockOffset:merkleRootOffset])
	copy(h.MerkleRoot[:], raw[merkleRootOffset:timestampOffset])
	h.Timestamp = binary.LittleEndian.Uint32(raw[timestampOffset:])
	h.Bits = binary.LittleEndian.Uint32(raw[bitsOffset:])
	h.Nonce = binary.LittleEndian.Uint32(raw[nonceOffset:])

	return h, nil
}

// SetNonce returns a copy of raw with the nonce replaced.
func SetNonce(raw []byte, nonce uint32) ([]byte, error) {
	return setUint32(raw, nonceOffset, nonce)
}

// SetTimestamp returns a copy of raw with the timestamp replaced.
func SetTimestamp(raw []byte, timestamp uint32) ([]byte, error) {
	return setUint32(raw, timestampOffset, timestamp)
}

// Hash returns the block hash of a raw header under f.
func Hash(raw []byte, f crypto.HashFunc) (chainhash.Hash, error) {
	if err := checkSize(raw); err != nil {
		return chainhash.Hash{}, err
	}
	return f.Sum(raw), nil
}

func setUint32(raw []byte, offset int, v uint32) ([]byte, error) {
	if err := checkSize(raw); err != nil {
		return nil, err
	}

	out := make([]byte, Size)
	copy(out, raw)
	binary.LittleEndian.PutUint32(out[offset:], v)
	return out, nil
}

func checkSize(raw []byte) error {
	if len(raw) != Size {
		return &wire.LengthError{What: "block header", Want: Size, Got: len(raw)}
	}
	return nil
}
