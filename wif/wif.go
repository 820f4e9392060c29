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

package wif

import (
	"crypto/subtle"
	"errors"
	"fmt"

	"github.com/btcsuite/btcd/btcutil/base58"
	"github.com/medibloc/go-keyrecover/crypto"
	"github.com/medibloc/go-keyrecover/crypto/hash"
	"github.com/medibloc/go-keyrecover/crypto/secp256k1"
	"github.com/medibloc/go-keyrecover/keystore"
)

const (
	compressMagic  byte = 0x01
	checksumLength      = 4

	uncompressedLength = 1 + secp256k1.PrivateKeySize + checksumLength
	compressedLength   = uncompressedLength + 1
)

// ErrEncoding is returned for keys or strings that are not valid WIF input.
var ErrEncoding = errors.New("malformed wif")

// Export encodes key and wipes it.
func Export(key *keystore.DecryptedKey, version byte) (string, error) {
	defer key.Wipe()
	return Encode(key, version)
}

// Encode encodes key without consuming it.
func Encode(key *keystore.DecryptedKey, version byte) (string, error) {
	if key == nil || key.Scalar.Len() != secp256k1.PrivateKeySize {
		return "", fmt.Errorf("%w: scalar must be %d bytes", ErrEncoding, secp256k1.PrivateKeySize)
	}

	buf := make([]byte, 0, compressedLength)
	defer crypto.WipeBytes(buf[:cap(buf)])

	buf = append(buf, version)
	buf = append(buf, key.Scalar.Bytes()...)
	if key.Compressed {
		buf = append(buf, compressMagic)
	}
	sum := hash.DoubleSha256(buf)
	defer crypto.WipeBytes(sum)
	buf = append(buf, sum[:checksumLength]...)

	return base58.Encode(buf), nil
}

// Decoded is a parsed WIF string.
type Decoded struct {
	Version    byte
	Scalar     *crypto.KeyMaterial
	Compressed bool
}

// Wipe zeroes the decoded scalar.
func (d *Decoded) Wipe() {
	if d != nil {
		d.Scalar.Wipe()
	}
}

// Decode parses a WIF string and validates its checksum and scalar.
func Decode(s string) (*Decoded, error) {
	raw := base58.Decode(s)
	defer crypto.WipeBytes(raw)

	var compressed bool
	switch len(raw) {
	case uncompressedLength:
	case compressedLength:
		if raw[1+secp256k1.PrivateKeySize] != compressMagic {
			return nil, fmt.Errorf("%w: bad compression flag", ErrEncoding)
		}
		compressed = true
	default:
		return nil, fmt.Errorf("%w: unexpected length %d", ErrEncoding, len(raw))
	}

	payload := raw[:len(raw)-checksumLength]
	sum := hash.DoubleSha256(payload)
	defer crypto.WipeBytes(sum)
	if subtle.ConstantTimeCompare(sum[:checksumLength], raw[len(payload):]) != 1 {
		return nil, fmt.Errorf("%w: checksum mismatch", ErrEncoding)
	}

	scalar := payload[1 : 1+secp256k1.PrivateKeySize]
	priv, err := secp256k1.ToPrivateKey(scalar)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrEncoding, err)
	}
	secp256k1.ZeroKey(priv)

	return &Decoded{
		Version:    payload[0],
		Scalar:     crypto.NewKeyMaterial(scalar),
		Compressed: compressed,
	}, nil
}
