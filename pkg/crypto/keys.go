// Package crypto implements secp256k1 key handling for genesis outputs and
// wallet key migration.
//
// Key formats:
//   - Private keys: WIF (Wallet Import Format)
//     version || key (32 bytes) || [0x01 if compressed] || checksum (4 bytes)
//   - Public keys: compressed (33 bytes) or uncompressed (65 bytes) SEC encoding
//   - Addresses: base58check(version || hash160(pubkey))
package crypto

import (
	"crypto/sha256"
	"errors"
	"fmt"

	"github.com/btcsuite/btcutil/base58"
	"github.com/decred/dcrd/dcrec/secp256k1/v4"
	"golang.org/x/crypto/ripemd160"
)

// Network holds the base58 version bytes of one chain.
type Network struct {
	Name          string
	WIFVersion    byte // Private key (WIF) version byte
	PubKeyVersion byte // P2PKH address version byte
}

// Known networks.
var (
	MainNet = Network{Name: "mainnet", WIFVersion: 0x80, PubKeyVersion: 0x00}
	TestNet = Network{Name: "testnet", WIFVersion: 0xef, PubKeyVersion: 0x6f}
)

// WIF errors.
var (
	ErrWIFLength  = errors.New("invalid WIF length")
	ErrWIFNetwork = errors.New("WIF belongs to another network")
)

// WIF is a decoded wallet import format private key.
type WIF struct {
	Key        *secp256k1.PrivateKey
	Compressed bool
	Net        Network
}

// DecodeWIF decodes a WIF string and checks it was encoded for net.
func DecodeWIF(wif string, net Network) (*WIF, error) {
	payload, version, err := base58.CheckDecode(wif)
	if err != nil {
		return nil, fmt.Errorf("decoding WIF: %w", err)
	}

	// payload excludes the version byte and checksum.
	compressed := false
	switch {
	case len(payload) == 32:
	case len(payload) == 33 && payload[32] == 0x01:
		compressed = true
	default:
		return nil, fmt.Errorf("%w: %d", ErrWIFLength, len(payload)+1)
	}

	if version != net.WIFVersion {
		return nil, fmt.Errorf("%w: prefix 0x%02x, expected 0x%02x (%s)", ErrWIFNetwork, version, net.WIFVersion, net.Name)
	}

	return &WIF{
		Key:        secp256k1.PrivKeyFromBytes(payload[:32]),
		Compressed: compressed,
		Net:        net,
	}, nil
}

// String encodes the key back to WIF for its network.
func (w *WIF) String() string {
	payload := make([]byte, 0, 33)
	payload = append(payload, w.Key.Serialize()...)
	if w.Compressed {
		payload = append(payload, 0x01)
	}
	return base58.CheckEncode(payload, w.Net.WIFVersion)
}

// PubKey returns the SEC encoding of the public key, compressed or not to
// match the WIF flag.
func (w *WIF) PubKey() []byte {
	if w.Compressed {
		return w.Key.PubKey().SerializeCompressed()
	}
	return w.Key.PubKey().SerializeUncompressed()
}

// Address returns the P2PKH address of the key on its network.
func (w *WIF) Address() string {
	return Address(w.PubKey(), w.Net)
}

// ConvertWIF re-encodes a private key from one network to another, keeping
// the compression flag.
func ConvertWIF(wif string, from, to Network) (string, error) {
	w, err := DecodeWIF(wif, from)
	if err != nil {
		return "", err
	}

	w.Net = to
	return w.String(), nil
}

// ParsePublicKey validates a SEC encoded public key (33 or 65 bytes) and
// returns it unchanged.
func ParsePublicKey(pubKey []byte) ([]byte, error) {
	if len(pubKey) != secp256k1.PubKeyBytesLenCompressed && len(pubKey) != secp256k1.PubKeyBytesLenUncompressed {
		return nil, fmt.Errorf("public key must be 33 or 65 bytes, got %d", len(pubKey))
	}

	if _, err := secp256k1.ParsePubKey(pubKey); err != nil {
		return nil, fmt.Errorf("failed to parse public key: %w", err)
	}

	return pubKey, nil
}

// Hash160 returns RIPEMD160(SHA256(b)).
func Hash160(b []byte) []byte {
	sum := sha256.Sum256(b)
	h := ripemd160.New()
	h.Write(sum[:])
	return h.Sum(nil)
}

// Address encodes the P2PKH address of pubKey on net.
func Address(pubKey []byte, net Network) string {
	return base58.CheckEncode(Hash160(pubKey), net.PubKeyVersion)
}
