// Package crypto implements the protocol hash functions and key handling.
//
// Two hashing conventions exist for block and transaction identity:
//
//	sha256d(b) = SHA256(SHA256(b))
//	sha256t(b) = SHA256(sha256d(b))
//
// A deployment picks exactly one of them as its protocol hash. All digests
// are returned as chainhash.Hash values, which hold the bytes in wire order
// and render them reversed when printed.
package crypto

import (
	"fmt"
	"strings"

	"github.com/btcsuite/btcd/chaincfg/chainhash"
)

// HashFunc selects the protocol hash used for block hashes and transaction
// ids.
type HashFunc uint8

const (
	// DoubleSHA256 is the classic two-round convention.
	DoubleSHA256 HashFunc = iota + 1

	// TripleSHA256 adds a third SHA-256 round. It is the default protocol hash.
	TripleSHA256
)

// DefaultHashFunc is the protocol hash used when none is configured.
const DefaultHashFunc = TripleSHA256

// Sha256d returns SHA256(SHA256(b)).
func Sha256d(b []byte) chainhash.Hash {
	return chainhash.DoubleHashH(b)
}

// Sha256t returns SHA256(SHA256(SHA256(b))).
func Sha256t(b []byte) chainhash.Hash {
	return chainhash.HashH(chainhash.DoubleHashB(b))
}

// Sum hashes b with the selected convention. It panics on an unknown
// HashFunc.
func (f HashFunc) Sum(b []byte) chainhash.Hash {
	switch f {
	case DoubleSHA256:
		return Sha256d(b)
	case TripleSHA256:
		return Sha256t(b)
	default:
		panic(fmt.Sprintf("crypto: unknown hash function %d", f))
	}
}

// Valid reports whether f names a known convention.
func (f HashFunc) Valid() bool {
	return f == DoubleSHA256 || f == TripleSHA256
}

func (f HashFunc) String() string {
	switch f {
	case DoubleSHA256:
		return "sha256d"
	case TripleSHA256:
		return "sha256t"
	default:
		return fmt.Sprintf("HashFunc(%d)", uint8(f))
	}
}

// ParseHashFunc maps a configuration name ("sha256d" or "sha256t") to a
// HashFunc.
func ParseHashFunc(name string) (HashFunc, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "sha256d", "double":
		return DoubleSHA256, nil
	case "sha256t", "triple":
		return TripleSHA256, nil
	default:
		return 0, fmt.Errorf("unknown protocol hash %q", name)
	}
}
