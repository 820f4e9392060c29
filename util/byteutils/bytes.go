package byteutils

import (
	"encoding/hex"
	"strings"
)

// CopyBytes returns an independent copy of b. nil stays nil.
func CopyBytes(b []byte) []byte {
	if b == nil {
		return nil
	}
	c := make([]byte, len(b))
	copy(c, b)
	return c
}

// Bytes2Hex encodes d as lowercase hex.
func Bytes2Hex(d []byte) string {
	return hex.EncodeToString(d)
}

// Hex2Bytes decodes an even-length hex string. A 0x prefix is accepted.
func Hex2Bytes(s string) ([]byte, error) {
	if strings.HasPrefix(s, "0x") || strings.HasPrefix(s, "0X") {
		s = s[2:]
	}
	return hex.DecodeString(s)
}
