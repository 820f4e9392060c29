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

package walletdb

import (
	"bytes"
	"fmt"

	"github.com/medibloc/go-keyrecover/crypto"
	"github.com/medibloc/go-keyrecover/keystore"
	"github.com/medibloc/go-keyrecover/storage"
)

// Record key prefixes.
var (
	CryptedKeyPrefix    = []byte("ckey")
	DescriptorKeyPrefix = []byte("dckey")
	CheckRecordKey      = []byte("mkcheck")
)

const maxDescriptorIDLength = 0xff

// CryptedKeyKey returns the record key of a legacy encrypted key.
func CryptedKeyKey(pubKey []byte) []byte {
	return concat(CryptedKeyPrefix, pubKey)
}

// DescriptorKeyKey returns the record key of an encrypted key that belongs to
// a descriptor.
func DescriptorKeyKey(descriptor string, pubKey []byte) ([]byte, error) {
	if len(descriptor) > maxDescriptorIDLength {
		return nil, fmt.Errorf("%w: descriptor id longer than %d bytes", ErrMalformedRecord, maxDescriptorIDLength)
	}
	return concat(DescriptorKeyPrefix, []byte{byte(len(descriptor))}, []byte(descriptor), pubKey), nil
}

// CheckRecordValue serializes a check record as iv || len(plaintext) ||
// plaintext || ciphertext.
func CheckRecordValue(c *keystore.MasterKeyCheck) ([]byte, error) {
	if len(c.IV) != crypto.IVSize || len(c.Plaintext) > 0xff {
		return nil, fmt.Errorf("%w: check record", ErrMalformedRecord)
	}
	return concat(c.IV, []byte{byte(len(c.Plaintext))}, c.Plaintext, c.Ciphertext), nil
}

func parseCheckRecord(v []byte) (*keystore.MasterKeyCheck, error) {
	if len(v) < crypto.IVSize+1 {
		return nil, fmt.Errorf("%w: check record too short", ErrMalformedRecord)
	}
	plainLen := int(v[crypto.IVSize])
	rest := v[crypto.IVSize+1:]
	if len(rest) < plainLen {
		return nil, fmt.Errorf("%w: check record too short", ErrMalformedRecord)
	}
	return &keystore.MasterKeyCheck{
		IV:         concat(v[:crypto.IVSize]),
		Plaintext:  concat(rest[:plainLen]),
		Ciphertext: concat(rest[plainLen:]),
	}, nil
}

func parseDescriptorKey(k []byte) (string, []byte, error) {
	rest := k[len(DescriptorKeyPrefix):]
	if len(rest) == 0 || len(rest) < 1+int(rest[0]) {
		return "", nil, fmt.Errorf("%w: descriptor key", ErrMalformedRecord)
	}
	idLen := int(rest[0])
	return string(rest[1 : 1+idLen]), rest[1+idLen:], nil
}

// LoadLevelDB opens the database at path read-only and loads its keys.
func LoadLevelDB(path string) (keystore.KeyHolder, error) {
	stor, err := storage.OpenLeveldbReadOnly(path)
	if err != nil {
		return nil, err
	}
	defer stor.Close()
	return LoadStorage(stor)
}

// LoadStorage builds a holder from the records in stor. Any descriptor key
// record makes it a descriptor wallet.
func LoadStorage(stor storage.Storage) (keystore.KeyHolder, error) {
	check, err := loadCheckRecord(stor)
	if err != nil {
		return nil, err
	}

	descriptors := keystore.NewDescriptorKeyHolder()
	var nDescriptorKeys int
	err = stor.Iterate(DescriptorKeyPrefix, func(k, v []byte) error {
		id, pub, err := parseDescriptorKey(k)
		if err != nil {
			return err
		}
		e, err := keystore.NewEncryptedKey(pub, v)
		if err != nil {
			return fmt.Errorf("descriptor %s: %w", id, err)
		}
		nDescriptorKeys++
		return descriptors.AddKey(id, e)
	})
	if err != nil {
		return nil, err
	}

	legacy := keystore.NewLegacyKeyHolder()
	err = stor.Iterate(CryptedKeyPrefix, func(k, v []byte) error {
		e, err := keystore.NewEncryptedKey(k[len(CryptedKeyPrefix):], v)
		if err != nil {
			return err
		}
		return legacy.AddKey(e)
	})
	if err != nil {
		return nil, err
	}

	if nDescriptorKeys > 0 {
		if legacy.Len() > 0 {
			return nil, fmt.Errorf("%w: wallet mixes legacy and descriptor keys", ErrMalformedRecord)
		}
		descriptors.SetCheckRecord(check)
		return descriptors, nil
	}
	legacy.SetCheckRecord(check)
	return legacy, nil
}

func loadCheckRecord(stor storage.Storage) (*keystore.MasterKeyCheck, error) {
	v, err := stor.Get(CheckRecordKey)
	if err == storage.ErrKeyNotFound {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return parseCheckRecord(v)
}

// Save writes holder's entries and check record to stor.
func Save(stor storage.Storage, holder keystore.KeyHolder) error {
	if c := holder.CheckRecord(); c != nil {
		v, err := CheckRecordValue(c)
		if err != nil {
			return err
		}
		if err := stor.Put(CheckRecordKey, v); err != nil {
			return err
		}
	}

	if d, ok := holder.(*keystore.DescriptorKeyHolder); ok {
		for _, id := range d.Descriptors() {
			keys, err := d.Descriptor(id)
			if err != nil {
				return err
			}
			for _, e := range keys.Entries() {
				k, err := DescriptorKeyKey(id, e.PubKey())
				if err != nil {
					return err
				}
				if err := stor.Put(k, e.Ciphertext()); err != nil {
					return err
				}
			}
		}
		return nil
	}

	for _, e := range holder.Entries() {
		if err := stor.Put(CryptedKeyKey(e.PubKey()), e.Ciphertext()); err != nil {
			return err
		}
	}
	return nil
}

func concat(parts ...[]byte) []byte {
	var buf bytes.Buffer
	for _, p := range parts {
		buf.Write(p)
	}
	return buf.Bytes()
}
