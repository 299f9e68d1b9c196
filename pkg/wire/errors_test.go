package wire

import (
	"encoding/hex"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestErrorMessages(t *testing.T) {
	assert.Equal(t, "encoding error [pushdata]: data too long (value 5)",
		(&EncodingError{Field: "pushdata", Value: 5, Message: "data too long"}).Error())

	assert.Equal(t, "unsupported script operand <nil>",
		(&UnsupportedOperandError{}).Error())

	assert.Equal(t, "block header must be exactly 80 bytes, got 79",
		(&LengthError{What: "block header", Want: 80, Got: 79}).Error())

	assert.Equal(t, "parse error: amount: not a number",
		(&ParseError{Field: "amount", Message: "not a number"}).Error())
}

func TestParseErrorUnwrap(t *testing.T) {
	_, cause := hex.DecodeString("zz")
	err := error(&ParseError{Line: 3, Field: "script", Message: "not hex", Cause: cause})

	assert.Contains(t, err.Error(), "line 3")
	assert.True(t, errors.Is(err, cause))
}
