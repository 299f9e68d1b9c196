package tx

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"io"

	"github.com/suffix-labs/genblock/pkg/wire"
)

// maxScriptSize bounds script lengths read from untrusted bytes.
const maxScriptSize = 10_000

// Decode parses a serialized transaction. Trailing bytes are an error.
func Decode(data []byte) (*Transaction, error) {
	r := bytes.NewReader(data)

	tx, err := Read(r)
	if err != nil {
		return nil, err
	}

	if r.Len() != 0 {
		return nil, fmt.Errorf("%d trailing bytes after transaction", r.Len())
	}

	return tx, nil
}

// Read parses one transaction from r.
func Read(r io.Reader) (*Transaction, error) {
	tx := &Transaction{}

	if err := binary.Read(r, binary.LittleEndian, &tx.Version); err != nil {
		return nil, fmt.Errorf("reading version: %w", err)
	}

	numInputs, err := wire.ReadVarInt(r)
	if err != nil {
		return nil, fmt.Errorf("reading input count: %w", err)
	}

	tx.Inputs = make([]TxIn, 0, min(numInputs, 1024))
	for i := uint64(0); i < numInputs; i++ {
		var in TxIn
		if err := readTxIn(r, &in); err != nil {
			return nil, fmt.Errorf("parsing input %d: %w", i, err)
		}
		tx.Inputs = append(tx.Inputs, in)
	}

	numOutputs, err := wire.ReadVarInt(r)
	if err != nil {
		return nil, fmt.Errorf("reading output count: %w", err)
	}

	tx.Outputs = make([]TxOut, 0, min(numOutputs, 1024))
	for i := uint64(0); i < numOutputs; i++ {
		var out TxOut
		if err := readTxOut(r, &out); err != nil {
			return nil, fmt.Errorf("parsing output %d: %w", i, err)
		}
		tx.Outputs = append(tx.Outputs, out)
	}

	if err := binary.Read(r, binary.LittleEndian, &tx.LockTime); err != nil {
		return nil, fmt.Errorf("reading locktime: %w", err)
	}

	return tx, nil
}

// readTxIn reads a single input.
func readTxIn(r io.Reader, in *TxIn) error {
	if _, err := io.ReadFull(r, in.PrevTxID[:]); err != nil {
		return fmt.Errorf("reading prevout txid: %w", err)
	}
	if err := binary.Read(r, binary.LittleEndian, &in.PrevIndex); err != nil {
		return fmt.Errorf("reading prevout index: %w", err)
	}

	script, err := readScript(r)
	if err != nil {
		return fmt.Errorf("reading scriptSig: %w", err)
	}
	in.ScriptSig = script

	if err := binary.Read(r, binary.LittleEndian, &in.Sequence); err != nil {
		return fmt.Errorf("reading sequence: %w", err)
	}

	return nil
}

// readTxOut reads a single output.
func readTxOut(r io.Reader, out *TxOut) error {
	if err := binary.Read(r, binary.LittleEndian, &out.Amount); err != nil {
		return fmt.Errorf("reading amount: %w", err)
	}

	script, err := readScript(r)
	if err != nil {
		return fmt.Errorf("reading scriptPubKey: %w", err)
	}
	out.ScriptPubKey = script

	return nil
}

func readScript(r io.Reader) ([]byte, error) {
	size, err := wire.ReadVarInt(r)
	if err != nil {
		return nil, fmt.Errorf("reading length: %w", err)
	}
	if size > maxScriptSize {
		return nil, &wire.EncodingError{Field: "script length", Value: size, Message: "exceeds maximum script size"}
	}

	script := make([]byte, size)
	if _, err := io.ReadFull(r, script); err != nil {
		return nil, err
	}
	return script, nil
}
