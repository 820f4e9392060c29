package hash

import (
	"crypto/sha256"

	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"golang.org/x/crypto/ripemd160"
)

// Hash160Size is the length of a HASH160 digest.
const Hash160Size = ripemd160.Size

// Sha256 returns the SHA-256 digest of the data.
func Sha256(args ...[]byte) []byte {
	hasher := sha256.New()
	for _, bytes := range args {
		hasher.Write(bytes)
	}
	return hasher.Sum(nil)
}

// DoubleSha256 returns SHA-256(SHA-256(data)).
func DoubleSha256(args ...[]byte) []byte {
	var data []byte
	for _, bytes := range args {
		data = append(data, bytes...)
	}
	return chainhash.DoubleHashB(data)
}

// Ripemd160 return the RIPEMD160 digest of the data.
func Ripemd160(args ...[]byte) []byte {
	hasher := ripemd160.New()
	for _, bytes := range args {
		hasher.Write(bytes)
	}
	return hasher.Sum(nil)
}

// Hash160 returns RIPEMD160(SHA-256(data)).
func Hash160(data []byte) []byte {
	return Ripemd160(Sha256(data))
}
