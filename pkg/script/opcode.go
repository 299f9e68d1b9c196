package script

import "fmt"

// OpCode is a single script opcode byte.
type OpCode byte

// Opcodes used when building coinbase and output scripts.
const (
	OP_0           OpCode = 0x00
	OP_PUSHDATA1   OpCode = 0x4c
	OP_PUSHDATA2   OpCode = 0x4d
	OP_PUSHDATA4   OpCode = 0x4e
	OP_1NEGATE     OpCode = 0x4f
	OP_1           OpCode = 0x51
	OP_16          OpCode = 0x60
	OP_DUP         OpCode = 0x76
	OP_EQUAL       OpCode = 0x87
	OP_EQUALVERIFY OpCode = 0x88
	OP_HASH160     OpCode = 0xa9
	OP_CHECKSIG    OpCode = 0xac
)

var opcodeNames = map[OpCode]string{
	OP_0:           "OP_0",
	OP_PUSHDATA1:   "OP_PUSHDATA1",
	OP_PUSHDATA2:   "OP_PUSHDATA2",
	OP_PUSHDATA4:   "OP_PUSHDATA4",
	OP_1NEGATE:     "OP_1NEGATE",
	OP_DUP:         "OP_DUP",
	OP_EQUAL:       "OP_EQUAL",
	OP_EQUALVERIFY: "OP_EQUALVERIFY",
	OP_HASH160:     "OP_HASH160",
	OP_CHECKSIG:    "OP_CHECKSIG",
}

func (op OpCode) String() string {
	if name, ok := opcodeNames[op]; ok {
		return name
	}
	if op >= OP_1 && op <= OP_16 {
		return fmt.Sprintf("OP_%d", op-OP_1+1)
	}
	return fmt.Sprintf("OP_UNKNOWN_0x%02x", byte(op))
}

// SmallIntOpcode returns the opcode that pushes n for n in {-1, 0, 1..16}.
func SmallIntOpcode(n int64) (OpCode, bool) {
	switch {
	case n == -1:
		return OP_1NEGATE, true
	case n == 0:
		return OP_0, true
	case n >= 1 && n <= 16:
		return OP_1 + OpCode(n-1), true
	default:
		return 0, false
	}
}
