package pow

import (
	"context"
	"errors"
	"fmt"

	"github.com/btcsuite/btcd/chaincfg/chainhash"

	"github.com/suffix-labs/genblock/pkg/crypto"
	"github.com/suffix-labs/genblock/pkg/header"
)

// ErrNonceExhausted is returned by Solve when every nonce it was allowed to
// try failed the target.
var ErrNonceExhausted = errors.New("nonce space exhausted")

// checkInterval is how many attempts pass between context checks.
const checkInterval = 1 << 16

// EventHandler receives progress messages from Solve.
type EventHandler func(v string, args ...any)

// Options controls a nonce search.
type Options struct {
	StartNonce  uint32       // First nonce tried
	MaxAttempts uint64       // 0 means the whole 32-bit nonce space
	OnEvent     EventHandler // Optional progress callback
}

// Result is a header that satisfies its own target.
type Result struct {
	Header   []byte
	Hash     chainhash.Hash
	Nonce    uint32
	Attempts uint64
}

// Solve searches nonces, starting at opts.StartNonce and wrapping at 2^32,
// until the header hash under f is below the header's target. The input
// header is not modified.
func Solve(ctx context.Context, raw []byte, f crypto.HashFunc, opts Options) (Result, error) {
	evHandler := opts.OnEvent
	if evHandler == nil {
		evHandler = func(string, ...any) {}
	}

	h, err := header.Decode(raw)
	if err != nil {
		return Result{}, err
	}

	target, err := DecodeTarget(h.Bits)
	if err != nil {
		return Result{}, fmt.Errorf("decoding target: %w", err)
	}

	limit := opts.MaxAttempts
	if limit == 0 || limit > 1<<32 {
		limit = 1 << 32
	}

	if err := ctx.Err(); err != nil {
		return Result{}, err
	}

	evHandler("pow: solve: started: nonce[%d] bits[0x%08x] hash[%s]", opts.StartNonce, h.Bits, f)
	defer evHandler("pow: solve: completed")

	nonce := opts.StartNonce
	for attempts := uint64(1); attempts <= limit; attempts++ {
		if attempts%checkInterval == 0 {
			if err := ctx.Err(); err != nil {
				evHandler("pow: solve: cancelled: attempts[%d]", attempts-1)
				return Result{}, err
			}
			evHandler("pow: solve: progress: attempts[%d] nonce[%d]", attempts-1, nonce)
		}

		candidate, err := header.SetNonce(raw, nonce)
		if err != nil {
			return Result{}, err
		}

		hash := f.Sum(candidate)
		if MeetsTarget(hash, target) {
			evHandler("pow: solve: solved: nonce[%d] hash[%s] attempts[%d]", nonce, hash, attempts)
			return Result{Header: candidate, Hash: hash, Nonce: nonce, Attempts: attempts}, nil
		}

		nonce++
	}

	return Result{}, ErrNonceExhausted
}
