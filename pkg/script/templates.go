package script

import "fmt"

// PayToPubKey returns <pubkey> OP_CHECKSIG.
func PayToPubKey(pubKey []byte) (Script, error) {
	return NewBuilder().PushBytes(pubKey).PushOpcode(OP_CHECKSIG).Script()
}

// PayToPubKeyHash returns OP_DUP OP_HASH160 <hash160> OP_EQUALVERIFY OP_CHECKSIG.
func PayToPubKeyHash(hash160 []byte) (Script, error) {
	if len(hash160) != 20 {
		return nil, fmt.Errorf("pubkey hash must be 20 bytes, got %d", len(hash160))
	}

	return NewBuilder().
		PushOpcode(OP_DUP).
		PushOpcode(OP_HASH160).
		PushBytes(hash160).
		PushOpcode(OP_EQUALVERIFY).
		PushOpcode(OP_CHECKSIG).
		Script()
}
