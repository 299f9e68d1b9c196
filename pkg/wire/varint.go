// Package wire implements the primitive encodings shared by every structure
// in the block format: compact variable-length integers and fixed-width
// little-endian integers.
//
// VarInt layout (the "compact size" of the reference client):
//
//	v < 0xFD          1 byte literal
//	v <= 0xFFFF       0xFD || uint16le
//	v <= 0xFFFFFFFF   0xFE || uint32le
//	otherwise         0xFF || uint64le
package wire

import (
	"encoding/binary"
	"fmt"
	"io"
)

// VarInt width markers.
const (
	varIntMarker16 = 0xfd
	varIntMarker32 = 0xfe
	varIntMarker64 = 0xff
)

// MaxVarIntSize is the widest VarInt encoding in bytes.
const MaxVarIntSize = 9

// VarIntSize returns the number of bytes VarInt(v) occupies.
func VarIntSize(v uint64) int {
	switch {
	case v < varIntMarker16:
		return 1
	case v <= 0xffff:
		return 3
	case v <= 0xffffffff:
		return 5
	default:
		return 9
	}
}

// VarInt encodes v using the minimal-width VarInt form.
func VarInt(v uint64) []byte {
	return AppendVarInt(make([]byte, 0, VarIntSize(v)), v)
}

// AppendVarInt appends the minimal-width VarInt encoding of v to dst.
func AppendVarInt(dst []byte, v uint64) []byte {
	switch {
	case v < varIntMarker16:
		return append(dst, byte(v))
	case v <= 0xffff:
		dst = append(dst, varIntMarker16)
		return binary.LittleEndian.AppendUint16(dst, uint16(v))
	case v <= 0xffffffff:
		dst = append(dst, varIntMarker32)
		return binary.LittleEndian.AppendUint32(dst, uint32(v))
	default:
		dst = append(dst, varIntMarker64)
		return binary.LittleEndian.AppendUint64(dst, v)
	}
}

// DecodeVarInt decodes the VarInt at the start of b and returns the value
// together with the number of bytes consumed. Encodings that are not the
// minimal width for their value are rejected.
func DecodeVarInt(b []byte) (uint64, int, error) {
	if len(b) == 0 {
		return 0, 0, fmt.Errorf("reading varint marker: %w", io.ErrUnexpectedEOF)
	}

	var (
		v     uint64
		n     int
		floor uint64
	)

	switch b[0] {
	case varIntMarker16:
		n, floor = 3, varIntMarker16
		if len(b) < n {
			return 0, 0, fmt.Errorf("reading varint payload: %w", io.ErrUnexpectedEOF)
		}
		v = uint64(binary.LittleEndian.Uint16(b[1:n]))
	case varIntMarker32:
		n, floor = 5, 0x10000
		if len(b) < n {
			return 0, 0, fmt.Errorf("reading varint payload: %w", io.ErrUnexpectedEOF)
		}
		v = uint64(binary.LittleEndian.Uint32(b[1:n]))
	case varIntMarker64:
		n, floor = 9, 0x100000000
		if len(b) < n {
			return 0, 0, fmt.Errorf("reading varint payload: %w", io.ErrUnexpectedEOF)
		}
		v = binary.LittleEndian.Uint64(b[1:n])
	default:
		return uint64(b[0]), 1, nil
	}

	if v < floor {
		return 0, 0, &EncodingError{Field: "varint", Value: v, Message: "non-canonical encoding"}
	}

	return v, n, nil
}

// ReadVarInt reads one VarInt from r, applying the same rules as DecodeVarInt.
func ReadVarInt(r io.Reader) (uint64, error) {
	var buf [MaxVarIntSize]byte
	if _, err := io.ReadFull(r, buf[:1]); err != nil {
		return 0, err
	}

	size := 1
	switch buf[0] {
	case varIntMarker16:
		size = 3
	case varIntMarker32:
		size = 5
	case varIntMarker64:
		size = 9
	}

	if size > 1 {
		if _, err := io.ReadFull(r, buf[1:size]); err != nil {
			return 0, fmt.Errorf("reading varint payload: %w", noEOF(err))
		}
	}

	v, _, err := DecodeVarInt(buf[:size])
	return v, err
}

// AppendUint32 appends v as 4 little-endian bytes.
func AppendUint32(dst []byte, v uint32) []byte {
	return binary.LittleEndian.AppendUint32(dst, v)
}

// AppendUint64 appends v as 8 little-endian bytes.
func AppendUint64(dst []byte, v uint64) []byte {
	return binary.LittleEndian.AppendUint64(dst, v)
}

// noEOF turns a clean EOF in the middle of a structure into
// io.ErrUnexpectedEOF.
func noEOF(err error) error {
	if err == io.EOF {
		return io.ErrUnexpectedEOF
	}
	return err
}
