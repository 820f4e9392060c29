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

package crypto_test

import (
	"crypto/rand"
	"testing"

	"github.com/medibloc/go-keyrecover/crypto"
	"github.com/medibloc/go-keyrecover/util/byteutils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func hex2Bytes(t *testing.T, s string) []byte {
	b, err := byteutils.Hex2Bytes(s)
	require.NoError(t, err)
	return b
}

func TestAESCBCDecryption(t *testing.T) {
	key := make([]byte, crypto.AESKeySize)
	iv := make([]byte, crypto.IVSize)
	_, err := rand.Read(key)
	require.NoError(t, err)

	for _, size := range []int{0, 1, 15, 16, 32, 33} {
		in := make([]byte, size)
		_, err = rand.Read(in)
		require.NoError(t, err)

		out, err := crypto.AESCBCEncrypt(key, iv, in)
		require.NoError(t, err)
		assert.Equal(t, (size/crypto.AESBlockSize+1)*crypto.AESBlockSize, len(out))

		dec, err := crypto.AESCBCDecrypt(key, iv, out)
		require.NoError(t, err)
		assert.Equal(t, in, dec.Bytes(), "Input and decrypted bytes should equal")
		dec.Wipe()
	}
}

func TestAESCBCKnownVector(t *testing.T) {
	key := make([]byte, 32)
	for i := range key {
		key[i] = byte(i)
	}
	iv := hex2Bytes(t, "101112131415161718191a1b1c1d1e1f")
	plain := hex2Bytes(t, "5d8dfeb4f44e1bd75140ac71f9a8b0ea41154c87ad5c1484d0a1ea8f1eb9ceb7")
	want := "8da7f88c4c579786915d625c2dc78548aae7e2855f3bade86eebfcd1929672e42aa903785cd273b597c628c05190fe93"

	out, err := crypto.AESCBCEncrypt(key, iv, plain)
	require.NoError(t, err)
	assert.Equal(t, want, byteutils.Bytes2Hex(out))
}

func TestAESCBCErrors(t *testing.T) {
	key := make([]byte, crypto.AESKeySize)
	iv := make([]byte, crypto.IVSize)

	_, err := crypto.AESCBCDecrypt(key[:16], iv, make([]byte, 16))
	assert.Equal(t, crypto.ErrInvalidKeySize, err)
	_, err = crypto.AESCBCDecrypt(key, iv[:8], make([]byte, 16))
	assert.Equal(t, crypto.ErrInvalidIVSize, err)
	_, err = crypto.AESCBCDecrypt(key, iv, nil)
	assert.Equal(t, crypto.ErrInvalidCiphertextLength, err)
	_, err = crypto.AESCBCDecrypt(key, iv, make([]byte, 20))
	assert.Equal(t, crypto.ErrInvalidCiphertextLength, err)

	// A full block of 0x11 decrypts to a pad length larger than the block.
	out, err := crypto.AESCBCEncrypt(key, iv, []byte("0123456789abcdef\x11\x11\x11\x11\x11\x11\x11\x11\x11\x11\x11\x11\x11\x11\x11\x11"))
	require.NoError(t, err)
	_, err = crypto.AESCBCDecrypt(key, iv, out[:32])
	assert.Equal(t, crypto.ErrInvalidPadding, err)
}

func TestEncryptSecret(t *testing.T) {
	master := make([]byte, 32)
	for i := range master {
		master[i] = byte(i)
	}
	mk := crypto.NewKeyMaterial(master)
	defer mk.Wipe()

	pub := hex2Bytes(t, "02d0de0aaeaefad02b8bdc8a01a1b8b11c696bd3d66a2c5f10780d95b7df42645c")
	secret := hex2Bytes(t, "0c28fca386c7a227600b2fe50b7cae11ec86d3bf1fbe471be89827e19d72aa1d")

	assert.Equal(t, "a403a9de454ea0a8174784da19e089da", byteutils.Bytes2Hex(crypto.DeriveIV(pub)))

	ct, err := crypto.EncryptSecret(mk, secret, pub)
	require.NoError(t, err)
	assert.Equal(t,
		"1bdd346926b88821f440ba20c132f3b65199bd09192a48ed3bea4d926c4ddc40918b65439808913d52c7c2615a171c96",
		byteutils.Bytes2Hex(ct))

	dec, err := crypto.DecryptSecret(mk, ct, pub)
	require.NoError(t, err)
	defer dec.Wipe()
	assert.Equal(t, secret, dec.Bytes())
}
