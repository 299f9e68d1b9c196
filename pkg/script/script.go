// Package script builds the byte-level scripts embedded in coinbase inputs
// and transaction outputs.
//
// Scripts are assembled with a Builder. Every Builder operation returns a new
// Builder that owns its buffer, so an earlier value is never changed by a
// later append:
//
//	b := script.NewBuilder().PushInt(0x1d00ffff)
//	sig, err := b.PushBytes([]byte("text")).Script()
//
// Push-data encoding:
//
//	len < 0x4c          len || data
//	len <= 0xff         OP_PUSHDATA1 || uint8 len || data
//	len <= 0xffff       OP_PUSHDATA2 || uint16le len || data
//	len <= 0xffffffff   OP_PUSHDATA4 || uint32le len || data
package script

import (
	"encoding/binary"
	"encoding/hex"

	"github.com/suffix-labs/genblock/pkg/wire"
)

// Script is a finished script. Treat it as read-only.
type Script []byte

// Bytes returns the raw script without a length prefix.
func (s Script) Bytes() []byte {
	return []byte(s)
}

// Encode returns VarInt(len(s)) || s, the form used wherever a script is
// embedded as a length-prefixed field.
func (s Script) Encode() []byte {
	out := make([]byte, 0, wire.VarIntSize(uint64(len(s)))+len(s))
	out = wire.AppendVarInt(out, uint64(len(s)))
	return append(out, s...)
}

func (s Script) String() string {
	return hex.EncodeToString(s)
}

// Operand is one element that can be appended to a script. The set of
// implementations is closed: OpCode, Data, SmallInt and Script.
type Operand interface {
	appendTo(b Builder) Builder
}

// Data is raw bytes pushed with the minimal push-data prefix.
type Data []byte

// SmallInt is an integer pushed in its minimal form.
type SmallInt int64

func (op OpCode) appendTo(b Builder) Builder { return b.PushOpcode(op) }
func (d Data) appendTo(b Builder) Builder { return b.PushBytes(d) }
func (n SmallInt) appendTo(b Builder) Builder { return b.PushInt(int64(n)) }
func (s Script) appendTo(b Builder) Builder { return b.Concat(s) }

// Builder accumulates script bytes. The zero value is an empty builder.
// The first error is sticky and reported by Script.
type Builder struct {
	buf []byte
	err error
}

// NewBuilder returns an empty Builder.
func NewBuilder() Builder {
	return Builder{}
}

// extend returns a Builder whose buffer is a fresh copy of b's with extra
// bytes appended.
func (b Builder) extend(parts ...[]byte) Builder {
	if b.err != nil {
		return b
	}

	size := len(b.buf)
	for _, p := range parts {
		size += len(p)
	}

	buf := make([]byte, len(b.buf), size)
	copy(buf, b.buf)
	for _, p := range parts {
		buf = append(buf, p...)
	}

	return Builder{buf: buf}
}

// PushOpcode appends a single opcode byte.
func (b Builder) PushOpcode(op OpCode) Builder {
	return b.extend([]byte{byte(op)})
}

// PushBytes appends data behind the smallest push-data prefix that can
// describe its length.
func (b Builder) PushBytes(data []byte) Builder {
	if b.err != nil {
		return b
	}

	n := uint64(len(data))
	switch {
	case n < uint64(OP_PUSHDATA1):
		return b.extend([]byte{byte(n)}, data)
	case n <= 0xff:
		return b.extend([]byte{byte(OP_PUSHDATA1), byte(n)}, data)
	case n <= 0xffff:
		prefix := binary.LittleEndian.AppendUint16([]byte{byte(OP_PUSHDATA2)}, uint16(n))
		return b.extend(prefix, data)
	case n <= 0xffffffff:
		prefix := binary.LittleEndian.AppendUint32([]byte{byte(OP_PUSHDATA4)}, uint32(n))
		return b.extend(prefix, data)
	default:
		return Builder{buf: b.buf, err: &wire.EncodingError{Field: "pushdata", Value: n, Message: "data longer than OP_PUSHDATA4 can describe"}}
	}
}

// PushInt appends n as a single opcode when n is -1, 0 or 1..16, and as a
// ScriptNum data push otherwise.
func (b Builder) PushInt(n int64) Builder {
	if op, ok := SmallIntOpcode(n); ok {
		return b.PushOpcode(op)
	}
	return b.PushBytes(ScriptNum(n))
}

// Concat appends another script verbatim.
func (b Builder) Concat(s Script) Builder {
	return b.extend(s)
}

// Push appends any operand variant. A nil operand is rejected with
// *wire.UnsupportedOperandError.
func (b Builder) Push(ops ...Operand) Builder {
	for _, op := range ops {
		if b.err != nil {
			return b
		}
		if op == nil {
			return Builder{buf: b.buf, err: &wire.UnsupportedOperandError{Operand: op}}
		}
		b = op.appendTo(b)
	}
	return b
}

// Len returns the number of bytes accumulated so far.
func (b Builder) Len() int {
	return len(b.buf)
}

// Script returns the finished script, or the first error hit while
// building it. On error no script bytes are returned.
func (b Builder) Script() (Script, error) {
	if b.err != nil {
		return nil, b.err
	}

	out := make(Script, len(b.buf))
	copy(out, b.buf)
	return out, nil
}
