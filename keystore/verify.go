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
	"github.com/medibloc/go-keyrecover/crypto"
	"github.com/medibloc/go-keyrecover/util/logging"
	"github.com/sirupsen/logrus"
)

// VerifyOptions controls master key verification.
type VerifyOptions struct {
	// AcceptNoKeys accepts any candidate when the keystore is empty.
	AcceptNoKeys bool

	// Thorough decrypts every entry instead of one when there is no check
	// record, and reports a keystore where only some keys decrypt as
	// corrupted.
	Thorough bool
}

// Verify checks a candidate master key against the keystore.
func Verify(holder KeyHolder, candidate []byte, acceptNoKeys bool) (*VerifiedKey, error) {
	return VerifyWithOptions(holder, candidate, VerifyOptions{AcceptNoKeys: acceptNoKeys})
}

// VerifyWithOptions checks a candidate master key against the keystore.
//
// A check record, when present, is the only thing consulted. Otherwise the
// entry with the smallest KeyID is decrypted and matched against its public
// key. The candidate is copied; the caller keeps ownership of it.
func VerifyWithOptions(holder KeyHolder, candidate []byte, opts VerifyOptions) (*VerifiedKey, error) {
	if len(candidate) != crypto.AESKeySize {
		return nil, ErrInvalidKeyLength
	}

	key := crypto.NewKeyMaterial(candidate)
	verified := false
	defer func() {
		if !verified {
			key.Wipe()
		}
	}()

	exercised := true
	var err error
	if check := checkRecordOf(holder); check != nil {
		err = verifyCheckRecord(key, check)
	} else {
		entries := entriesOf(holder)
		switch {
		case len(entries) == 0 && opts.AcceptNoKeys:
			exercised = false
		case len(entries) == 0:
			err = ErrNoKeys
		case opts.Thorough:
			err = verifyAllEntries(key, entries)
		default:
			err = verifyEntry(key, entries[0])
		}
	}
	if err != nil {
		logging.WithFields(logrus.Fields{
			"err": err,
		}).Debug("Master key verification failed.")
		return nil, err
	}

	verified = true
	return &VerifiedKey{
		key:       key,
		verified:  true,
		exercised: exercised,
	}, nil
}

func checkRecordOf(holder KeyHolder) *MasterKeyCheck {
	if holder == nil {
		return nil
	}
	return holder.CheckRecord()
}

func verifyCheckRecord(key *crypto.KeyMaterial, check *MasterKeyCheck) error {
	if len(check.IV) != crypto.IVSize || len(check.Ciphertext) == 0 ||
		len(check.Ciphertext)%crypto.AESBlockSize != 0 {
		return ErrInvalidCheckRecord
	}

	plain, err := crypto.AESCBCDecrypt(key.Bytes(), check.IV, check.Ciphertext)
	if err != nil {
		return ErrWrongMasterKey
	}
	defer plain.Wipe()

	expected := crypto.NewKeyMaterial(check.Plaintext)
	defer expected.Wipe()

	if !plain.Equal(expected) {
		return ErrWrongMasterKey
	}
	return nil
}

func verifyEntry(key *crypto.KeyMaterial, e *EncryptedKey) error {
	dk, err := decryptEntry(key, e)
	if err != nil {
		return ErrWrongMasterKey
	}
	dk.Wipe()
	return nil
}

func verifyAllEntries(key *crypto.KeyMaterial, entries []*EncryptedKey) error {
	var pass, fail int
	for _, e := range entries {
		if verifyEntry(key, e) != nil {
			fail++
			continue
		}
		pass++
	}
	switch {
	case pass == 0:
		return ErrWrongMasterKey
	case fail > 0:
		logging.WithFields(logrus.Fields{
			"pass": pass,
			"fail": fail,
		}).Warn("Keystore has keys that do not decrypt under a valid master key.")
		return ErrKeystoreCorrupted
	}
	return nil
}
