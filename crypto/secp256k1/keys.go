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

package secp256k1

import (
	"errors"

	"github.com/btcsuite/btcd/btcec/v2"
)

// Key sizes.
const (
	PrivateKeySize         = btcec.PrivKeyBytesLen
	CompressedPubKeySize   = btcec.PubKeyBytesLenCompressed
	UncompressedPubKeySize = 65
)

const (
	prefixCompressedEven byte = 0x02
	prefixCompressedOdd  byte = 0x03
	prefixUncompressed   byte = 0x04
)

var (
	// ErrInvalidPrivateKey is returned for scalars of the wrong length, zero, or >= N.
	ErrInvalidPrivateKey = errors.New("invalid private key scalar")
	// ErrInvalidPublicKey is returned for encodings that are not a point on the curve.
	ErrInvalidPublicKey = errors.New("invalid public key encoding")
)

// ToPrivateKey builds a private key from a 32-byte big-endian scalar in
// [1, N). The caller must Zero the returned key.
func ToPrivateKey(d []byte) (*btcec.PrivateKey, error) {
	if len(d) != PrivateKeySize {
		return nil, ErrInvalidPrivateKey
	}
	var s btcec.ModNScalar
	defer s.Zero()
	if overflow := s.SetByteSlice(d); overflow || s.IsZero() {
		return nil, ErrInvalidPrivateKey
	}
	return btcec.PrivKeyFromScalar(&s), nil
}

// ZeroKey clears the private key scalar.
func ZeroKey(priv *btcec.PrivateKey) {
	if priv != nil {
		priv.Zero()
	}
}

// ParsePublicKey parses a compressed or uncompressed serialized public key.
func ParsePublicKey(pub []byte) (*btcec.PublicKey, error) {
	switch {
	case len(pub) == CompressedPubKeySize &&
		(pub[0] == prefixCompressedEven || pub[0] == prefixCompressedOdd):
	case len(pub) == UncompressedPubKeySize && pub[0] == prefixUncompressed:
	default:
		return nil, ErrInvalidPublicKey
	}
	key, err := btcec.ParsePubKey(pub)
	if err != nil {
		return nil, ErrInvalidPublicKey
	}
	return key, nil
}

// IsCompressed reports whether pub is in the 33-byte compressed form.
func IsCompressed(pub []byte) bool {
	return btcec.IsCompressedPubKey(pub)
}

// SerializePublicKey encodes pub in compressed or uncompressed form.
func SerializePublicKey(pub *btcec.PublicKey, compressed bool) []byte {
	if compressed {
		return pub.SerializeCompressed()
	}
	return pub.SerializeUncompressed()
}

// DerivePublicKey returns the public key for scalar d serialized in the
// requested form.
func DerivePublicKey(d []byte, compressed bool) ([]byte, error) {
	priv, err := ToPrivateKey(d)
	if err != nil {
		return nil, err
	}
	defer ZeroKey(priv)
	return SerializePublicKey(priv.PubKey(), compressed), nil
}

// MatchesPublicKey reports whether scalar d derives the point encoded by pub,
// ignoring the difference between compressed and uncompressed encodings.
func MatchesPublicKey(d []byte, pub []byte) (bool, error) {
	stored, err := ParsePublicKey(pub)
	if err != nil {
		return false, err
	}
	priv, err := ToPrivateKey(d)
	if err != nil {
		return false, err
	}
	defer ZeroKey(priv)
	return priv.PubKey().IsEqual(stored), nil
}
