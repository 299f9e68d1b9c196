// Package wire error types.
//
// Every codec in this module fails with one of these types. They are fatal to
// the encode or build call in progress: encoding is deterministic, so a
// failure always points at an input or programming defect and is never
// retried. No partial output accompanies any of them.
package wire

import "fmt"

// EncodingError is returned when a value does not fit the width of the
// field it is being written to, or when decoded bytes are not the canonical
// encoding of their value.
type EncodingError struct {
	Field   string // Field being encoded (e.g. "varint", "pushdata")
	Value   uint64 // Offending value
	Message string // Human-readable error message
}

func (e *EncodingError) Error() string {
	return fmt.Sprintf("encoding error [%s]: %s (value %d)", e.Field, e.Message, e.Value)
}

// UnsupportedOperandError is returned when a script append is handed an
// operand that is not one of the script operand variants.
type UnsupportedOperandError struct {
	Operand any
}

func (e *UnsupportedOperandError) Error() string {
	return fmt.Sprintf("unsupported script operand %T", e.Operand)
}

// LengthError is returned when a fixed-size structure is given the wrong
// number of bytes.
type LengthError struct {
	What string // Structure being decoded or modified
	Want int
	Got  int
}

func (e *LengthError) Error() string {
	return fmt.Sprintf("%s must be exactly %d bytes, got %d", e.What, e.Want, e.Got)
}

// ParseError is returned when an external row (balance file, script hex)
// cannot be turned into a value.
type ParseError struct {
	Line    int    // 1-based line number, 0 when not line oriented
	Field   string // Column or field name
	Message string // Human-readable error message
	Cause   error  // Underlying decode error (if any)
}

func (e *ParseError) Error() string {
	prefix := "parse error"
	if e.Line > 0 {
		prefix = fmt.Sprintf("parse error at line %d", e.Line)
	}
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %s: %v", prefix, e.Field, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s: %s", prefix, e.Field, e.Message)
}

func (e *ParseError) Unwrap() error {
	return e.Cause
}
