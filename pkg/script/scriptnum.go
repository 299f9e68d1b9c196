package script

// ScriptNum serializes n in the minimal signed form used inside push data:
// little-endian magnitude with the sign carried in the top bit of the last
// byte. Zero encodes as an empty slice. When the magnitude already uses that
// top bit an extra 0x00 (positive) or 0x80 (negative) byte is appended.
func ScriptNum(n int64) []byte {
	if n == 0 {
		return []byte{}
	}

	negative := n < 0
	magnitude := uint64(n)
	if negative {
		magnitude = uint64(-n)
	}

	out := make([]byte, 0, 9)
	for magnitude > 0 {
		out = append(out, byte(magnitude&0xff))
		magnitude >>= 8
	}

	last := len(out) - 1
	switch {
	case out[last]&0x80 != 0 && negative:
		out = append(out, 0x80)
	case out[last]&0x80 != 0:
		out = append(out, 0x00)
	case negative:
		out[last] |= 0x80
	}

	return out
}
