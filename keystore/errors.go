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
)

// Verification errors.
var (
	ErrInvalidKeyLength   = errors.New("master key must be 32 bytes")
	ErrWrongMasterKey     = errors.New("master key does not decrypt the keystore")
	ErrNoKeys             = errors.New("keystore has no keys to verify against")
	ErrKeystoreCorrupted  = errors.New("keystore corrupted: some keys decrypt and some do not")
	ErrInvalidCheckRecord = errors.New("invalid master key check record")
	ErrUnverifiedKey      = errors.New("master key has not been verified")
)

// Per-entry decryption errors.
var (
	ErrPadding          = errors.New("invalid ciphertext padding")
	ErrInvalidScalar    = errors.New("decrypted scalar is not a valid private key")
	ErrKeyMismatch      = errors.New("decrypted key does not match stored public key")
	ErrInvalidPublicKey = errors.New("stored public key is not a valid curve point")
)

// Holder errors.
var (
	ErrNoMatch      = errors.New("no key for given id")
	ErrDuplicateKey = errors.New("key already exists")
)

// EntryError reports the failure of a single key entry.
type EntryError struct {
	ID  KeyID
	Err error
}

func (e *EntryError) Error() string {
	return fmt.Sprintf("key %s: %v", e.ID, e.Err)
}

// Unwrap returns the underlying error.
func (e *EntryError) Unwrap() error {
	return e.Err
}
