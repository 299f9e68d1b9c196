package crypto

import (
	"encoding/hex"
	"testing"

	"github.com/btcsuite/btcutil/base58"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Private key 1 in every WIF flavour.
const (
	testnetCompressed   = "cMahea7zqjxrtgAbB7LSGbcQUr1uX1ojuat9jZodMN87JcbXMTcA"
	mainnetCompressed   = "KwDiBf89QgGbjEhKnhXJuH7LrciVrZi3qYjgd9M7rFU73sVHnoWn"
	testnetUncompressed = "91avARGdfge8E4tZfYLoxeJ5sGBdNJQH4kvjJoQFacbgwmaKkrx"
	mainnetUncompressed = "5HpHagT65TZzG1PH3CSu63k8DbpvD8s5ip4nEB3kEsreAnchuDf"
)

func TestConvertWIF(t *testing.T) {
	tests := []struct {
		name    string
		testnet string
		mainnet string
	}{
		{"compressed", testnetCompressed, mainnetCompressed},
		{"uncompressed", testnetUncompressed, mainnetUncompressed},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, err := ConvertWIF(tc.testnet, TestNet, MainNet)
			require.NoError(t, err)
			assert.Equal(t, tc.mainnet, got)

			back, err := ConvertWIF(got, MainNet, TestNet)
			require.NoError(t, err)
			assert.Equal(t, tc.testnet, back)
		})
	}
}

func TestDecodeWIF(t *testing.T) {
	w, err := DecodeWIF(mainnetCompressed, MainNet)
	require.NoError(t, err)

	assert.True(t, w.Compressed)
	assert.Equal(t, "0279be667ef9dcbbac55a06295ce870b07029bfcdb2dce28d959f2815b16f81798", hex.EncodeToString(w.PubKey()))
	assert.Equal(t, "1BgGZ9tcN4rm9KBzDn7KprQz87SZ26SAMH", w.Address())

	w, err = DecodeWIF(mainnetUncompressed, MainNet)
	require.NoError(t, err)

	assert.False(t, w.Compressed)
	assert.Len(t, w.PubKey(), 65)
	assert.Equal(t, "1EHNa6Q4Jz2uvNExL497mE43ikXhwF6kZm", w.Address())
}

func TestDecodeWIFErrors(t *testing.T) {
	_, err := DecodeWIF(testnetCompressed, MainNet)
	assert.ErrorIs(t, err, ErrWIFNetwork)

	_, err = DecodeWIF(base58.CheckEncode(make([]byte, 20), 0xef), TestNet)
	assert.ErrorIs(t, err, ErrWIFLength)

	// Flip the last character to break the checksum.
	broken := mainnetCompressed[:len(mainnetCompressed)-1] + "o"
	_, err = DecodeWIF(broken, MainNet)
	assert.ErrorIs(t, err, base58.ErrChecksum)
}

func TestParsePublicKey(t *testing.T) {
	pub, _ := hex.DecodeString("047c62bbf7f5aa4dd5c16bad99ac621b857fac4e93de86e45f5ada73404eeb44dedcf377b03c14a24e9d51605d9dd2d8ddaef58760d9c4bb82d9c8f06d96e79488")

	got, err := ParsePublicKey(pub)
	require.NoError(t, err)
	assert.Equal(t, pub, got)

	_, err = ParsePublicKey(pub[:64])
	assert.Error(t, err)

	bad := append([]byte{}, pub...)
	bad[64] ^= 0x01
	_, err = ParsePublicKey(bad)
	assert.Error(t, err)
}

func TestHash160(t *testing.T) {
	assert.Equal(t, "b472a266d0bd89c13706a4132ccfb16f7c3b9fcb", hex.EncodeToString(Hash160(nil)))
}
