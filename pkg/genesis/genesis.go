// Package genesis assembles a genesis block: one coinbase transaction and
// the header that commits to it.
//
// The coinbase scriptSig is
//
//	push(nBits) || push(byte length of nBits) || push(timestamp text)
//
// which reproduces the preamble of the reference generator byte for byte.
// With a single transaction the merkle root is that transaction's id.
package genesis

import (
	"context"
	"fmt"
	"math/bits"

	"github.com/btcsuite/btcd/chaincfg/chainhash"

	"github.com/suffix-labs/genblock/pkg/crypto"
	"github.com/suffix-labs/genblock/pkg/header"
	"github.com/suffix-labs/genblock/pkg/pow"
	"github.com/suffix-labs/genblock/pkg/script"
	"github.com/suffix-labs/genblock/pkg/tx"
	"github.com/suffix-labs/genblock/pkg/wire"
)

// DefaultTimestamp is the coinbase text used when none is given.
const DefaultTimestamp = "VeriBlock"

// Output is one (script, amount) pair paid by the coinbase.
type Output struct {
	Script script.Script
	Amount uint64 // Satoshis
}

// Params holds everything that goes into a genesis block.
type Params struct {
	Version   uint32
	Time      uint32 // Header timestamp (unix seconds)
	Nonce     uint32
	Bits      uint32
	Timestamp string          // Coinbase text; empty means DefaultTimestamp
	Outputs   []Output        // Coinbase outputs in order
	Hash      crypto.HashFunc // Protocol hash; zero means crypto.DefaultHashFunc
}

// Block is an assembled genesis block.
type Block struct {
	Coinbase *tx.Transaction
	Header   []byte // Serialized 80-byte header
	HashFunc crypto.HashFunc
}

// ScriptWithPrefix pushes nBits as a minimal integer followed by a data push
// holding the number of bytes the value of nBits occupies (1 to 4).
func ScriptWithPrefix(nBits uint32) (script.Script, error) {
	size := (bits.Len32(nBits) + 7) / 8

	return script.NewBuilder().
		PushInt(int64(nBits)).
		PushBytes(script.ScriptNum(int64(size))).
		Script()
}

// CoinbaseScriptSig returns ScriptWithPrefix(nBits) followed by a push of
// the ASCII timestamp text.
func CoinbaseScriptSig(nBits uint32, timestamp string) (script.Script, error) {
	prefix, err := ScriptWithPrefix(nBits)
	if err != nil {
		return nil, err
	}

	for i := 0; i < len(timestamp); i++ {
		if timestamp[i] > 0x7f {
			return nil, &wire.EncodingError{Field: "timestamp", Value: uint64(timestamp[i]), Message: fmt.Sprintf("non-ASCII byte at offset %d", i)}
		}
	}

	return script.NewBuilder().
		Concat(prefix).
		PushBytes([]byte(timestamp)).
		Script()
}

// Build assembles the coinbase transaction and header described by p.
func Build(p Params) (*Block, error) {
	hashFunc := p.Hash
	if hashFunc == 0 {
		hashFunc = crypto.DefaultHashFunc
	}
	if !hashFunc.Valid() {
		return nil, fmt.Errorf("invalid protocol hash %s", hashFunc)
	}

	text := p.Timestamp
	if text == "" {
		text = DefaultTimestamp
	}

	scriptSig, err := CoinbaseScriptSig(p.Bits, text)
	if err != nil {
		return nil, fmt.Errorf("building coinbase scriptSig: %w", err)
	}

	coinbase := &tx.Transaction{
		Version: p.Version,
		Inputs:  []tx.TxIn{tx.NewCoinbaseInput(scriptSig)},
		Outputs: make([]tx.TxOut, 0, len(p.Outputs)),
	}
	for _, o := range p.Outputs {
		coinbase.Outputs = append(coinbase.Outputs, tx.TxOut{Amount: o.Amount, ScriptPubKey: o.Script})
	}

	if _, err := coinbase.TotalOut(); err != nil {
		return nil, fmt.Errorf("summing coinbase outputs: %w", err)
	}

	merkleRoot := coinbase.ID(hashFunc)

	return &Block{
		Coinbase: coinbase,
		Header:   header.Encode(p.Version, chainhash.Hash{}, merkleRoot, p.Time, p.Bits, p.Nonce),
		HashFunc: hashFunc,
	}, nil
}

// MerkleRoot returns the merkle root committed to by the header.
func (b *Block) MerkleRoot() chainhash.Hash {
	h, _ := header.Decode(b.Header)
	return h.MerkleRoot
}

// Hash returns the block hash.
func (b *Block) Hash() chainhash.Hash {
	return b.HashFunc.Sum(b.Header)
}

// Valid reports whether the header satisfies its own proof-of-work target.
func (b *Block) Valid() (bool, error) {
	return pow.CheckProofOfWork(b.Header, b.HashFunc)
}

// Mine searches for a nonce that satisfies the target and returns a new
// Block carrying the solved header. b is left unchanged.
func (b *Block) Mine(ctx context.Context, opts pow.Options) (*Block, pow.Result, error) {
	res, err := pow.Solve(ctx, b.Header, b.HashFunc, opts)
	if err != nil {
		return nil, pow.Result{}, fmt.Errorf("mining genesis header: %w", err)
	}

	return &Block{Coinbase: b.Coinbase, Header: res.Header, HashFunc: b.HashFunc}, res, nil
}

// Bytes serializes the full block: header || VarInt(1) || coinbase.
func (b *Block) Bytes() []byte {
	out := make([]byte, 0, header.Size+1+256)
	out = append(out, b.Header...)
	out = wire.AppendVarInt(out, 1)
	return append(out, b.Coinbase.Encode()...)
}

// PayToPubKeyOutput returns an output paying amount to a validated SEC public
// key with <pubkey> OP_CHECKSIG.
func PayToPubKeyOutput(pubKey []byte, amount uint64) (Output, error) {
	if _, err := crypto.ParsePublicKey(pubKey); err != nil {
		return Output{}, err
	}

	s, err := script.PayToPubKey(pubKey)
	if err != nil {
		return Output{}, err
	}

	return Output{Script: s, Amount: amount}, nil
}
