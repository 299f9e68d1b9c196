// Package tx implements the transaction wire format.
//
// Layout (all integers little-endian):
//
//	Transaction = version (4) || VarInt(#in) || TxIn* || VarInt(#out) || TxOut* || locktime (4)
//	TxIn        = prev txid (32, wire order) || prev index (4) || VarInt+scriptSig || sequence (4)
//	TxOut       = amount (8) || VarInt+scriptPubKey
//
// Transaction ids are the protocol hash of the serialized transaction. The
// chainhash.Hash returned by ID stores the digest in wire order; its String
// method gives the reversed hex form used for display.
package tx

import (
	"errors"
	"fmt"

	"github.com/btcsuite/btcd/chaincfg/chainhash"

	"github.com/suffix-labs/genblock/pkg/crypto"
	"github.com/suffix-labs/genblock/pkg/script"
	"github.com/suffix-labs/genblock/pkg/wire"
)

// Coinbase input sentinels.
const (
	CoinbaseIndex    = uint32(0xffffffff)
	DefaultSequence  = uint32(0xffffffff)
	DefaultTxVersion = uint32(1)
)

// SigHashAll is the only signature hash type the format declares.
const SigHashAll = uint32(1)

// ErrSignatureHashUnsupported is returned by EncodeForSignature. Per-input
// signing serialization is declared but not implemented.
var ErrSignatureHashUnsupported = errors.New("signature hash serialization is not supported")

// TxIn spends a previous output.
type TxIn struct {
	PrevTxID  chainhash.Hash // Previous transaction id (wire order)
	PrevIndex uint32         // Output index within the previous transaction
	ScriptSig script.Script  // Unlocking script
	Sequence  uint32
}

// NewCoinbaseInput returns the single input of a coinbase transaction: a null
// previous txid, index 0xffffffff and sequence 0xffffffff.
func NewCoinbaseInput(scriptSig script.Script) TxIn {
	return TxIn{
		PrevIndex: CoinbaseIndex,
		ScriptSig: scriptSig,
		Sequence:  DefaultSequence,
	}
}

// IsCoinbase reports whether the input carries the coinbase sentinels.
func (in TxIn) IsCoinbase() bool {
	return in.PrevIndex == CoinbaseIndex && in.PrevTxID == (chainhash.Hash{})
}

// Encode serializes the input.
func (in TxIn) Encode() []byte {
	return in.appendTo(make([]byte, 0, 32+4+wire.MaxVarIntSize+len(in.ScriptSig)+4))
}

func (in TxIn) appendTo(dst []byte) []byte {
	dst = append(dst, in.PrevTxID[:]...)
	dst = wire.AppendUint32(dst, in.PrevIndex)
	dst = append(dst, in.ScriptSig.Encode()...)
	return wire.AppendUint32(dst, in.Sequence)
}

// TxOut creates a new spendable output.
type TxOut struct {
	Amount       uint64 // Value in satoshis
	ScriptPubKey script.Script
}

// Encode serializes the output.
func (out TxOut) Encode() []byte {
	return out.appendTo(make([]byte, 0, 8+wire.MaxVarIntSize+len(out.ScriptPubKey)))
}

func (out TxOut) appendTo(dst []byte) []byte {
	dst = wire.AppendUint64(dst, out.Amount)
	return append(dst, out.ScriptPubKey.Encode()...)
}

// Transaction is an ordered list of inputs and outputs.
type Transaction struct {
	Version  uint32
	Inputs   []TxIn
	Outputs  []TxOut
	LockTime uint32
}

// Encode serializes the full transaction.
func (tx *Transaction) Encode() []byte {
	var out []byte
	out = wire.AppendUint32(out, tx.Version)

	out = wire.AppendVarInt(out, uint64(len(tx.Inputs)))
	for _, in := range tx.Inputs {
		out = in.appendTo(out)
	}

	out = wire.AppendVarInt(out, uint64(len(tx.Outputs)))
	for _, o := range tx.Outputs {
		out = o.appendTo(out)
	}

	return wire.AppendUint32(out, tx.LockTime)
}

// EncodeForSignature would return the serialization signed by input index
// under hashType. It always fails with ErrSignatureHashUnsupported.
func (tx *Transaction) EncodeForSignature(index int, hashType uint32) ([]byte, error) {
	return nil, fmt.Errorf("input %d, hash type %d: %w", index, hashType, ErrSignatureHashUnsupported)
}

// ID returns the transaction id under the protocol hash h.
func (tx *Transaction) ID(h crypto.HashFunc) chainhash.Hash {
	return h.Sum(tx.Encode())
}

// IsCoinbase reports whether tx has exactly one input and it is a coinbase
// input.
func (tx *Transaction) IsCoinbase() bool {
	return len(tx.Inputs) == 1 && tx.Inputs[0].IsCoinbase()
}

// TotalOut sums the output amounts. It fails if the sum overflows.
func (tx *Transaction) TotalOut() (uint64, error) {
	var total uint64
	for i, o := range tx.Outputs {
		if total+o.Amount < total {
			return 0, &wire.EncodingError{Field: fmt.Sprintf("output %d amount", i), Value: o.Amount, Message: "total overflows uint64"}
		}
		total += o.Amount
	}
	return total, nil
}
