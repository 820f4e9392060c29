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

package keystore

import (
	"bytes"
	"errors"

	"github.com/medibloc/go-keyrecover/crypto"
	"github.com/medibloc/go-keyrecover/crypto/hash"
	"github.com/medibloc/go-keyrecover/crypto/secp256k1"
	"github.com/medibloc/go-keyrecover/util/byteutils"
)

// KeyIDLength is the length of a KeyID.
const KeyIDLength = hash.Hash160Size

// ErrInvalidKeyID is returned when a KeyID cannot be parsed.
var ErrInvalidKeyID = errors.New("invalid key id")

// KeyID identifies a key entry by the HASH160 of its serialized public key.
type KeyID [KeyIDLength]byte

// KeyIDFromPubKey computes the KeyID of a serialized public key.
func KeyIDFromPubKey(pubKey []byte) (id KeyID) {
	copy(id[:], hash.Hash160(pubKey))
	return id
}

// HexToKeyID parses a hex encoded KeyID.
func HexToKeyID(s string) (KeyID, error) {
	var id KeyID
	b, err := byteutils.Hex2Bytes(s)
	if err != nil || len(b) != KeyIDLength {
		return id, ErrInvalidKeyID
	}
	copy(id[:], b)
	return id, nil
}

// String returns the hex form of the KeyID.
func (id KeyID) String() string {
	return byteutils.Bytes2Hex(id[:])
}

// DisplayString returns the hex of the id bytes in reverse order, the form
// wallet tools print.
func (id KeyID) DisplayString() string {
	var rev KeyID
	for i := range id {
		rev[KeyIDLength-1-i] = id[i]
	}
	return byteutils.Bytes2Hex(rev[:])
}

// Less orders KeyIDs lexicographically.
func (id KeyID) Less(other KeyID) bool {
	return bytes.Compare(id[:], other[:]) < 0
}

// EncryptedKey is one encrypted private key record. It is immutable once
// created.
type EncryptedKey struct {
	id         KeyID
	pubKey     []byte
	ciphertext []byte
}

// NewEncryptedKey creates an entry from a serialized public key and the
// ciphertext of its private scalar.
func NewEncryptedKey(pubKey, ciphertext []byte) (*EncryptedKey, error) {
	if _, err := secp256k1.ParsePublicKey(pubKey); err != nil {
		return nil, ErrInvalidPublicKey
	}
	return &EncryptedKey{
		id:         KeyIDFromPubKey(pubKey),
		pubKey:     byteutils.CopyBytes(pubKey),
		ciphertext: byteutils.CopyBytes(ciphertext),
	}, nil
}

// ID returns the entry's KeyID.
func (e *EncryptedKey) ID() KeyID {
	return e.id
}

// PubKey returns a copy of the serialized public key.
func (e *EncryptedKey) PubKey() []byte {
	return byteutils.CopyBytes(e.pubKey)
}

// Ciphertext returns a copy of the encrypted scalar.
func (e *EncryptedKey) Ciphertext() []byte {
	return byteutils.CopyBytes(e.ciphertext)
}

// Compressed reports whether the stored public key is compressed.
func (e *EncryptedKey) Compressed() bool {
	return secp256k1.IsCompressed(e.pubKey)
}

// MasterKeyCheck is a known ciphertext/plaintext pair encrypted under the
// master key with AES-256-CBC.
type MasterKeyCheck struct {
	IV         []byte
	Ciphertext []byte
	Plaintext  []byte
}

// DecryptedKey is a recovered private key.
type DecryptedKey struct {
	ID         KeyID
	Scalar     *crypto.KeyMaterial
	Compressed bool
}

// NewDecryptedKey copies scalar into a new DecryptedKey.
func NewDecryptedKey(id KeyID, scalar []byte, compressed bool) *DecryptedKey {
	return &DecryptedKey{
		ID:         id,
		Scalar:     crypto.NewKeyMaterial(scalar),
		Compressed: compressed,
	}
}

// Wipe zeroes the private scalar.
func (k *DecryptedKey) Wipe() {
	if k != nil {
		k.Scalar.Wipe()
	}
}

// VerifiedKey is a master key that passed verification against a keystore.
// Only Verify creates usable values.
type VerifiedKey struct {
	key       *crypto.KeyMaterial
	verified  bool
	exercised bool
}

// Exercised reports whether verification actually decrypted something. It is
// false when an empty keystore was accepted.
func (v *VerifiedKey) Exercised() bool {
	return v != nil && v.exercised
}

// Wipe zeroes the master key.
func (v *VerifiedKey) Wipe() {
	if v != nil {
		v.key.Wipe()
	}
}
