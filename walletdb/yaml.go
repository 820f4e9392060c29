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
	"fmt"
	"io/ioutil"

	"github.com/medibloc/go-keyrecover/keystore"
	"github.com/medibloc/go-keyrecover/util/byteutils"
	"gopkg.in/yaml.v2"
)

type checkDump struct {
	IV         string `yaml:"iv"`
	Ciphertext string `yaml:"ciphertext"`
	Plaintext  string `yaml:"plaintext"`
}

type keyDump struct {
	PubKey     string `yaml:"pubkey"`
	Ciphertext string `yaml:"ciphertext"`
}

type descriptorDump struct {
	ID   string    `yaml:"id"`
	Keys []keyDump `yaml:"keys"`
}

type walletDump struct {
	Type        string           `yaml:"type"`
	Check       *checkDump       `yaml:"check,omitempty"`
	Keys        []keyDump        `yaml:"keys,omitempty"`
	Descriptors []descriptorDump `yaml:"descriptors,omitempty"`
}

// LoadYAML reads a wallet dump file.
func LoadYAML(path string) (keystore.KeyHolder, error) {
	content, err := ioutil.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return ParseYAML(content)
}

// ParseYAML builds a holder from a wallet dump. An empty type means legacy.
func ParseYAML(content []byte) (keystore.KeyHolder, error) {
	dump := new(walletDump)
	if err := yaml.UnmarshalStrict(content, dump); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedRecord, err)
	}

	check, err := dump.Check.toCheckRecord()
	if err != nil {
		return nil, err
	}

	switch dump.Type {
	case "", TypeLegacy:
		if len(dump.Descriptors) > 0 {
			return nil, fmt.Errorf("%w: legacy wallet with descriptors", ErrMalformedRecord)
		}
		holder := keystore.NewLegacyKeyHolder()
		for i, k := range dump.Keys {
			e, err := k.toEncryptedKey()
			if err != nil {
				return nil, fmt.Errorf("key %d: %w", i, err)
			}
			if err := holder.AddKey(e); err != nil {
				return nil, fmt.Errorf("key %d: %w", i, err)
			}
		}
		holder.SetCheckRecord(check)
		return holder, nil
	case TypeDescriptor:
		if len(dump.Keys) > 0 {
			return nil, fmt.Errorf("%w: descriptor wallet with top-level keys", ErrMalformedRecord)
		}
		holder := keystore.NewDescriptorKeyHolder()
		for _, d := range dump.Descriptors {
			for i, k := range d.Keys {
				e, err := k.toEncryptedKey()
				if err != nil {
					return nil, fmt.Errorf("descriptor %s key %d: %w", d.ID, i, err)
				}
				if err := holder.AddKey(d.ID, e); err != nil {
					return nil, fmt.Errorf("descriptor %s key %d: %w", d.ID, i, err)
				}
			}
		}
		holder.SetCheckRecord(check)
		return holder, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownType, dump.Type)
	}
}

func (k keyDump) toEncryptedKey() (*keystore.EncryptedKey, error) {
	pub, err := decodeHex("pubkey", k.PubKey)
	if err != nil {
		return nil, err
	}
	ct, err := decodeHex("ciphertext", k.Ciphertext)
	if err != nil {
		return nil, err
	}
	return keystore.NewEncryptedKey(pub, ct)
}

func (c *checkDump) toCheckRecord() (*keystore.MasterKeyCheck, error) {
	if c == nil {
		return nil, nil
	}
	var (
		record = new(keystore.MasterKeyCheck)
		err    error
	)
	if record.IV, err = decodeHex("check iv", c.IV); err != nil {
		return nil, err
	}
	if record.Ciphertext, err = decodeHex("check ciphertext", c.Ciphertext); err != nil {
		return nil, err
	}
	if record.Plaintext, err = decodeHex("check plaintext", c.Plaintext); err != nil {
		return nil, err
	}
	return record, nil
}

func decodeHex(field, s string) ([]byte, error) {
	b, err := byteutils.Hex2Bytes(s)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrMalformedRecord, field, err)
	}
	return b, nil
}
