package pow

import (
	"context"
	"fmt"
	"math/big"
	"testing"

	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/suffix-labs/genblock/pkg/crypto"
	"github.com/suffix-labs/genblock/pkg/header"
	"github.com/suffix-labs/genblock/pkg/wire"
)

const regtestBits = 0x207fffff

// genesisHeader is the header over the reference coinbase, whose id is
// fbef9740...ce74, at time 1337.
func genesisHeader(t *testing.T, bits, nonce uint32) []byte {
	t.Helper()

	merkle, err := chainhash.NewHashFromStr("fbef9740e790f33f1a1708b3108a7954247491ecc753a63db00d25562935ce74")
	require.NoError(t, err)

	return header.Encode(1, chainhash.Hash{}, *merkle, 1337, bits, nonce)
}

func TestDecodeTarget(t *testing.T) {
	tests := []struct {
		bits uint32
		want string
	}{
		{0x207fffff, "7fffff0000000000000000000000000000000000000000000000000000000000"},
		{0x1d00ffff, "00000000ffff0000000000000000000000000000000000000000000000000000"},
		{0x03123456, "0000000000000000000000000000000000000000000000000000000000123456"},
		{0x02123456, "0000000000000000000000000000000000000000000000000000000000001234"},
		{0x01123456, "0000000000000000000000000000000000000000000000000000000000000012"},
		{0x00123456, "0000000000000000000000000000000000000000000000000000000000000000"},
		{0x04123456, "0000000000000000000000000000000000000000000000000000000012345600"},
		{0x2000ffff, "00ffff0000000000000000000000000000000000000000000000000000000000"},
	}

	for _, tc := range tests {
		t.Run(fmt.Sprintf("%08x", tc.bits), func(t *testing.T) {
			got, err := TargetHex(tc.bits)
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestDecodeTargetOverflow(t *testing.T) {
	_, err := DecodeTarget(0x21ffffff)

	var encErr *wire.EncodingError
	require.ErrorAs(t, err, &encErr)
	assert.Equal(t, "nBits", encErr.Field)

	_, err = TargetHex(0x21ffffff)
	assert.ErrorAs(t, err, &encErr)

	// Small mantissa still fits at exponent 0x21.
	got, err := DecodeTarget(0x21000001)
	require.NoError(t, err)
	assert.Equal(t, 241, got.BitLen())
}

func TestHashToBig(t *testing.T) {
	h, err := chainhash.NewHashFromStr("00000000000000000000000000000000000000000000000000000000000001ff")
	require.NoError(t, err)

	assert.Equal(t, big.NewInt(0x1ff), HashToBig(*h))
}

func TestCheckProofOfWork(t *testing.T) {
	raw := genesisHeader(t, regtestBits, 0)

	ok, err := CheckProofOfWork(raw, crypto.TripleSHA256)
	require.NoError(t, err)
	assert.True(t, ok)

	// Nonce 1 hashes to b7b6a9ab..., above 7fffff00...
	raw, err = header.SetNonce(raw, 1)
	require.NoError(t, err)

	ok, err = CheckProofOfWork(raw, crypto.TripleSHA256)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestMeetsTargetStrict(t *testing.T) {
	hash := crypto.TripleSHA256.Sum(genesisHeader(t, regtestBits, 0))
	value := HashToBig(hash)

	assert.False(t, MeetsTarget(hash, value), "hash equal to target")
	assert.True(t, MeetsTarget(hash, new(big.Int).Add(value, big.NewInt(1))))
	assert.False(t, MeetsTarget(hash, new(big.Int).Sub(value, big.NewInt(1))))
}

func TestCheckProofOfWorkErrors(t *testing.T) {
	_, err := CheckProofOfWork(make([]byte, 79), crypto.TripleSHA256)
	var lenErr *wire.LengthError
	assert.ErrorAs(t, err, &lenErr)

	_, err = CheckProofOfWork(genesisHeader(t, 0x21ffffff, 0), crypto.TripleSHA256)
	var encErr *wire.EncodingError
	assert.ErrorAs(t, err, &encErr)
}

func TestSolve(t *testing.T) {
	raw := genesisHeader(t, regtestBits, 0)
	orig := append([]byte{}, raw...)

	var events []string
	res, err := Solve(context.Background(), raw, crypto.TripleSHA256, Options{
		StartNonce: 1,
		OnEvent: func(v string, args ...any) {
			events = append(events, fmt.Sprintf(v, args...))
		},
	})
	require.NoError(t, err)

	// Nonces 1 through 6 fail, 7 is the first to pass.
	assert.Equal(t, uint32(7), res.Nonce)
	assert.Equal(t, uint64(7), res.Attempts)
	assert.Equal(t, orig, raw)
	assert.Equal(t, "5845fb44", res.Hash.String()[:8])

	ok, err := CheckProofOfWork(res.Header, crypto.TripleSHA256)
	require.NoError(t, err)
	assert.True(t, ok)

	require.NotEmpty(t, events)
	assert.Contains(t, events[0], "started")
	assert.Equal(t, "pow: solve: completed", events[len(events)-1])
}

func TestSolveFirstNonce(t *testing.T) {
	res, err := Solve(context.Background(), genesisHeader(t, regtestBits, 0), crypto.TripleSHA256, Options{})
	require.NoError(t, err)

	assert.Equal(t, uint32(0), res.Nonce)
	assert.Equal(t, uint64(1), res.Attempts)
	assert.Equal(t, "63fb6db8609ea3378e12ff251fa44bee262c77de7e9b25494280ee26d3eebeb1", res.Hash.String())
}

func TestSolveExhausted(t *testing.T) {
	_, err := Solve(context.Background(), genesisHeader(t, regtestBits, 0), crypto.TripleSHA256, Options{
		StartNonce:  1,
		MaxAttempts: 6,
	})
	assert.ErrorIs(t, err, ErrNonceExhausted)
}

func TestSolveCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := Solve(ctx, genesisHeader(t, 0x1d00ffff, 0), crypto.TripleSHA256, Options{})
	assert.ErrorIs(t, err, context.Canceled)
}
