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
	"errors"
	"fmt"

	"github.com/medibloc/go-keyrecover/crypto"
	"github.com/medibloc/go-keyrecover/crypto/secp256k1"
)

// decryptEntry decrypts one entry and checks the result against the stored
// public key. The returned key owns the decrypted scalar.
func decryptEntry(masterKey *crypto.KeyMaterial, e *EncryptedKey) (*DecryptedKey, error) {
	plain, err := crypto.DecryptSecret(masterKey, e.ciphertext, e.pubKey)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPadding, err)
	}
	transferred := false
	defer func() {
		if !transferred {
			plain.Wipe()
		}
	}()

	if plain.Len() != secp256k1.PrivateKeySize {
		return nil, fmt.Errorf("%w: got %d bytes", ErrInvalidScalar, plain.Len())
	}

	ok, err := secp256k1.MatchesPublicKey(plain.Bytes(), e.pubKey)
	switch {
	case errors.Is(err, secp256k1.ErrInvalidPrivateKey):
		return nil, ErrInvalidScalar
	case errors.Is(err, secp256k1.ErrInvalidPublicKey):
		return nil, ErrInvalidPublicKey
	case err != nil:
		return nil, err
	case !ok:
		return nil, ErrKeyMismatch
	}

	transferred = true
	return &DecryptedKey{
		ID:         e.id,
		Scalar:     plain,
		Compressed: e.Compressed(),
	}, nil
}
