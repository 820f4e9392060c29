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

package keystore_test

import (
	"testing"

	"github.com/medibloc/go-keyrecover/keystore"
	"github.com/medibloc/go-keyrecover/util/testutil/keyutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLegacyKeyHolder(t *testing.T) {
	mk := keyutil.NewMasterKey(t)
	defer mk.Wipe()

	h := keystore.NewLegacyKeyHolder()
	pair := keyutil.NewKeyPair(t, true)
	e := pair.Encrypt(t, mk)
	require.NoError(t, h.AddKey(e))
	assert.Equal(t, keystore.ErrDuplicateKey, h.AddKey(e))
	assert.True(t, h.HasKey(pair.ID))
	assert.Equal(t, 1, h.Len())

	got, err := h.GetKey(pair.ID)
	require.NoError(t, err)
	assert.Equal(t, pair.PubKey, got.PubKey())

	_, err = h.GetKey(keystore.KeyID{})
	assert.Equal(t, keystore.ErrNoMatch, err)
	assert.Nil(t, h.CheckRecord())
}

func TestEntriesSorted(t *testing.T) {
	mk := keyutil.NewMasterKey(t)
	defer mk.Wipe()

	h, _ := keyutil.NewLegacyKeystore(t, mk, 10)
	entries := h.Entries()
	require.Len(t, entries, 10)
	for i := 1; i < len(entries); i++ {
		assert.True(t, entries[i-1].ID().Less(entries[i].ID()))
	}
}

func TestEncryptedKeyImmutable(t *testing.T) {
	mk := keyutil.NewMasterKey(t)
	defer mk.Wipe()

	pair := keyutil.NewKeyPair(t, false)
	e := pair.Encrypt(t, mk)
	assert.False(t, e.Compressed())
	assert.Equal(t, keystore.KeyIDFromPubKey(pair.PubKey), e.ID())

	pub := e.PubKey()
	pub[0] = 0xff
	assert.Equal(t, pair.PubKey, e.PubKey())
	ct := e.Ciphertext()
	ct[0] ^= 0xff
	assert.NotEqual(t, ct, e.Ciphertext())
}

func TestNewEncryptedKeyInvalidPubKey(t *testing.T) {
	_, err := keystore.NewEncryptedKey([]byte{0x02, 0x01}, make([]byte, 48))
	assert.Equal(t, keystore.ErrInvalidPublicKey, err)
}

func TestDescriptorKeyHolder(t *testing.T) {
	mk := keyutil.NewMasterKey(t)
	defer mk.Wipe()

	shared := keyutil.NewKeyPair(t, true)
	a := keyutil.NewKeyPair(t, true)
	b := keyutil.NewKeyPair(t, false)

	h := keystore.NewDescriptorKeyHolder()
	require.NoError(t, h.AddKey("wpkh-receive", shared.Encrypt(t, mk)))
	require.NoError(t, h.AddKey("wpkh-receive", a.Encrypt(t, mk)))
	require.NoError(t, h.AddKey("wpkh-change", shared.Encrypt(t, mk)))
	require.NoError(t, h.AddKey("wpkh-change", b.Encrypt(t, mk)))
	assert.Equal(t, keystore.ErrDuplicateKey, h.AddKey("wpkh-change", b.Encrypt(t, mk)))

	assert.Equal(t, []string{"wpkh-change", "wpkh-receive"}, h.Descriptors())
	d, err := h.Descriptor("wpkh-receive")
	require.NoError(t, err)
	assert.Equal(t, 2, d.Len())
	_, err = h.Descriptor("missing")
	assert.Equal(t, keystore.ErrNoMatch, err)

	entries := h.Entries()
	require.Len(t, entries, 3)
	ids := map[keystore.KeyID]bool{}
	for _, e := range entries {
		ids[e.ID()] = true
	}
	assert.True(t, ids[shared.ID])
	assert.True(t, ids[a.ID])
	assert.True(t, ids[b.ID])
}

func TestKeyID(t *testing.T) {
	id, err := keystore.HexToKeyID("d9351dcbad5b8f3b8bfa2f2cdc85c28118ca9326")
	require.NoError(t, err)
	assert.Equal(t, "d9351dcbad5b8f3b8bfa2f2cdc85c28118ca9326", id.String())
	assert.Equal(t, "2693ca1881c285dc2c2ffa8b3b8f5badcb1d35d9", id.DisplayString())

	_, err = keystore.HexToKeyID("d935")
	assert.Equal(t, keystore.ErrInvalidKeyID, err)
	_, err = keystore.HexToKeyID("zz")
	assert.Equal(t, keystore.ErrInvalidKeyID, err)

	assert.True(t, keystore.KeyID{0x01}.Less(keystore.KeyID{0x02}))
	assert.False(t, keystore.KeyID{0x02}.Less(keystore.KeyID{0x02}))
}
