package hash_test

import (
	"encoding/hex"
	"testing"

	"github.com/medibloc/go-keyrecover/crypto/hash"
	"github.com/stretchr/testify/assert"
)

func TestDoubleSha256(t *testing.T) {
	// sha256d("") is the well-known empty payload digest.
	assert.Equal(t,
		"5df6e0e2761359d30a8275058e299fcc0381534545f55cf43e41983f5d4c9456",
		hex.EncodeToString(hash.DoubleSha256([]byte{})))
	assert.Equal(t, hash.DoubleSha256([]byte("ab")), hash.DoubleSha256([]byte("a"), []byte("b")))
}

func TestHash160(t *testing.T) {
	pub, _ := hex.DecodeString("0479be667ef9dcbbac55a06295ce870b07029bfcdb2dce28d959f2815b16f81798483ada7726a3c4655da4fbfc0e1108a8fd17b448a68554199c47d08ffb10d4b8")
	h := hash.Hash160(pub)
	assert.Len(t, h, hash.Hash160Size)
	assert.Equal(t, "91b24bf9f5288532960ac687abb035127b1d28a5", hex.EncodeToString(h))
}
