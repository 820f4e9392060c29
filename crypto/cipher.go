// Copyright (C) 2018  MediBloc
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with this program.  If not, see <https://www.gnu.org/licenses/>

package crypto

import (
	"crypto/aes"
	"crypto/cipher"
	"errors"

	"github.com/medibloc/go-keyrecover/crypto/hash"
)

// Cipher parameters of the wallet key encryption format. They are fixed by the
// format and never negotiated per call.
const (
	// AESKeySize is the master key length (AES-256).
	AESKeySize = 32
	// AESBlockSize is the CBC block size.
	AESBlockSize = aes.BlockSize
	// IVSize is the length of the per-entry initialization vector.
	IVSize = aes.BlockSize
)

// Cipher errors.
var (
	ErrInvalidKeySize          = errors.New("aes key must be 32 bytes")
	ErrInvalidIVSize           = errors.New("iv must be 16 bytes")
	ErrInvalidCiphertextLength = errors.New("ciphertext is not a positive multiple of the block size")
	ErrInvalidPadding          = errors.New("invalid pkcs#7 padding")
)

// DeriveIV returns the IV used for a key entry: the first 16 bytes of
// SHA256d over the entry's serialized public key.
func DeriveIV(pubKey []byte) []byte {
	return hash.DoubleSha256(pubKey)[:IVSize]
}

// AESCBCEncrypt encrypts plaintext with AES-256-CBC and PKCS#7 padding.
func AESCBCEncrypt(key, iv, plaintext []byte) ([]byte, error) {
	block, err := newBlock(key, iv)
	if err != nil {
		return nil, err
	}
	padLen := AESBlockSize - len(plaintext)%AESBlockSize
	padded := make([]byte, len(plaintext)+padLen)
	defer WipeBytes(padded)
	copy(padded, plaintext)
	for i := len(plaintext); i < len(padded); i++ {
		padded[i] = byte(padLen)
	}

	out := make([]byte, len(padded))
	cipher.NewCBCEncrypter(block, iv).CryptBlocks(out, padded)
	return out, nil
}

// AESCBCDecrypt decrypts ciphertext with AES-256-CBC and strips PKCS#7
// padding. The plaintext is returned as KeyMaterial owned by the caller.
func AESCBCDecrypt(key, iv, ciphertext []byte) (*KeyMaterial, error) {
	block, err := newBlock(key, iv)
	if err != nil {
		return nil, err
	}
	if len(ciphertext) == 0 || len(ciphertext)%AESBlockSize != 0 {
		return nil, ErrInvalidCiphertextLength
	}

	out := make([]byte, len(ciphertext))
	defer WipeBytes(out)
	cipher.NewCBCDecrypter(block, iv).CryptBlocks(out, ciphertext)

	n, err := pkcs7PadLen(out)
	if err != nil {
		return nil, err
	}
	return NewKeyMaterial(out[:len(out)-n]), nil
}

// EncryptSecret encrypts a private key secret under the master key, using the
// IV derived from pubKey.
func EncryptSecret(masterKey *KeyMaterial, secret, pubKey []byte) ([]byte, error) {
	return AESCBCEncrypt(masterKey.Bytes(), DeriveIV(pubKey), secret)
}

// DecryptSecret reverses EncryptSecret.
func DecryptSecret(masterKey *KeyMaterial, ciphertext, pubKey []byte) (*KeyMaterial, error) {
	return AESCBCDecrypt(masterKey.Bytes(), DeriveIV(pubKey), ciphertext)
}

func newBlock(key, iv []byte) (cipher.Block, error) {
	if len(key) != AESKeySize {
		return nil, ErrInvalidKeySize
	}
	if len(iv) != IVSize {
		return nil, ErrInvalidIVSize
	}
	return aes.NewCipher(key)
}

func pkcs7PadLen(b []byte) (int, error) {
	n := int(b[len(b)-1])
	if n == 0 || n > AESBlockSize || n > len(b) {
		return 0, ErrInvalidPadding
	}
	var diff byte
	for _, p := range b[len(b)-n:] {
		diff |= p ^ byte(n)
	}
	if diff != 0 {
		return 0, ErrInvalidPadding
	}
	return n, nil
}
