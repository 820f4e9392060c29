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

package secp256k1_test

import (
	"testing"

	"github.com/medibloc/go-keyrecover/crypto/secp256k1"
	"github.com/medibloc/go-keyrecover/util/byteutils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	testPrivHex          = "0c28fca386c7a227600b2fe50b7cae11ec86d3bf1fbe471be89827e19d72aa1d"
	testPubCompressedHex = "02d0de0aaeaefad02b8bdc8a01a1b8b11c696bd3d66a2c5f10780d95b7df42645c"
	generatorHex         = "0479be667ef9dcbbac55a06295ce870b07029bfcdb2dce28d959f2815b16f81798483ada7726a3c4655da4fbfc0e1108a8fd17b448a68554199c47d08ffb10d4b8"
)

func TestToPrivateKeyErrors(t *testing.T) {
	for _, h := range []string{
		"0000000000000000000000000000000000000000000000000000000000000000",
		"fffffffffffffffffffffffffffffffebaaedce6af48a03bbfd25e8cd0364141",
		"ffffffffffffffffffffffffffffffffffffffffffffffffffffffffffffffff",
		"01",
	} {
		d, err := byteutils.Hex2Bytes(h)
		require.NoError(t, err)
		_, err = secp256k1.ToPrivateKey(d)
		assert.Equal(t, secp256k1.ErrInvalidPrivateKey, err, h)
	}

	d, _ := byteutils.Hex2Bytes("fffffffffffffffffffffffffffffffebaaedce6af48a03bbfd25e8cd0364140")
	priv, err := secp256k1.ToPrivateKey(d)
	require.NoError(t, err)
	secp256k1.ZeroKey(priv)
}

func TestDerivePublicKey(t *testing.T) {
	d, _ := byteutils.Hex2Bytes(testPrivHex)
	pub, err := secp256k1.DerivePublicKey(d, true)
	require.NoError(t, err)
	assert.Equal(t, testPubCompressedHex, byteutils.Bytes2Hex(pub))
	assert.True(t, secp256k1.IsCompressed(pub))

	one := make([]byte, 32)
	one[31] = 1
	pub, err = secp256k1.DerivePublicKey(one, false)
	require.NoError(t, err)
	assert.Equal(t, generatorHex, byteutils.Bytes2Hex(pub))
	assert.False(t, secp256k1.IsCompressed(pub))
}

func TestMatchesPublicKey(t *testing.T) {
	d, _ := byteutils.Hex2Bytes(testPrivHex)
	compressed, _ := byteutils.Hex2Bytes(testPubCompressedHex)
	uncompressed, err := secp256k1.DerivePublicKey(d, false)
	require.NoError(t, err)

	ok, err := secp256k1.MatchesPublicKey(d, compressed)
	require.NoError(t, err)
	assert.True(t, ok)
	ok, err = secp256k1.MatchesPublicKey(d, uncompressed)
	require.NoError(t, err)
	assert.True(t, ok)

	generator, _ := byteutils.Hex2Bytes(generatorHex)
	ok, err = secp256k1.MatchesPublicKey(d, generator)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestParsePublicKey(t *testing.T) {
	_, err := secp256k1.ParsePublicKey(nil)
	assert.Equal(t, secp256k1.ErrInvalidPublicKey, err)

	bad, _ := byteutils.Hex2Bytes(testPubCompressedHex)
	bad[0] = 0x05
	_, err = secp256k1.ParsePublicKey(bad)
	assert.Equal(t, secp256k1.ErrInvalidPublicKey, err)

	// x = 5 has no point on the curve.
	noPoint := make([]byte, 33)
	noPoint[0] = 0x02
	noPoint[32] = 0x05
	_, err = secp256k1.ParsePublicKey(noPoint)
	assert.Equal(t, secp256k1.ErrInvalidPublicKey, err)
}
