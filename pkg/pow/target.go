// Package pow implements compact difficulty targets and the proof-of-work
// check on block headers.
//
// nBits packs a 256-bit target into 4 bytes: the high byte is an exponent e
// and the low 3 bytes a big-endian mantissa m.
//
//	e <= 3: target = m >> (8 * (3 - e))
//	e > 3:  target = m << (8 * (e - 3))
//
// The sign bit of the reference format is not interpreted; the mantissa is
// taken as the full 24 bits.
package pow

import (
	"fmt"
	"math/big"

	"github.com/btcsuite/btcd/chaincfg/chainhash"

	"github.com/suffix-labs/genblock/pkg/crypto"
	"github.com/suffix-labs/genblock/pkg/header"
	"github.com/suffix-labs/genblock/pkg/wire"
)

// maxTargetBits is the width of a hash and therefore of any usable target.
const maxTargetBits = 256

// DecodeTarget expands nBits into the target it encodes. Targets that do not
// fit in 256 bits fail with *wire.EncodingError.
func DecodeTarget(bits uint32) (*big.Int, error) {
	exponent := bits >> 24
	mantissa := int64(bits & 0x00ffffff)

	target := big.NewInt(mantissa)
	if exponent <= 3 {
		target.Rsh(target, uint(8*(3-exponent)))
		return target, nil
	}

	target.Lsh(target, uint(8*(exponent-3)))
	if target.BitLen() > maxTargetBits {
		return nil, &wire.EncodingError{Field: "nBits", Value: uint64(bits), Message: "target exceeds 256 bits"}
	}

	return target, nil
}

// TargetHex returns the target of nBits as 64 big-endian hex digits.
func TargetHex(bits uint32) (string, error) {
	target, err := DecodeTarget(bits)
	if err != nil {
		return "", err
	}

	var buf [32]byte
	target.FillBytes(buf[:])
	return fmt.Sprintf("%x", buf), nil
}

// HashToBig interprets a block hash as the big-endian integer of its display
// (reversed) form.
func HashToBig(h chainhash.Hash) *big.Int {
	var be [chainhash.HashSize]byte
	for i := range h {
		be[i] = h[chainhash.HashSize-1-i]
	}
	return new(big.Int).SetBytes(be[:])
}

// CheckProofOfWork reports whether the hash of the raw header under f is
// strictly below the target encoded in the header's nBits.
func CheckProofOfWork(raw []byte, f crypto.HashFunc) (bool, error) {
	h, err := header.Decode(raw)
	if err != nil {
		return false, err
	}

	target, err := DecodeTarget(h.Bits)
	if err != nil {
		return false, fmt.Errorf("decoding target: %w", err)
	}

	return MeetsTarget(f.Sum(raw), target), nil
}

// MeetsTarget reports whether hash, read as a big-endian integer of its
// display form, is strictly less than target.
func MeetsTarget(hash chainhash.Hash, target *big.Int) bool {
	return HashToBig(hash).Cmp(target) < 0
}
