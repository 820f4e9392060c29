package keyutil

import (
	"crypto/rand"
	"fmt"
	"testing"

	"github.com/btcsuite/btcd/btcec/v2"
	"github.com/medibloc/go-keyrecover/crypto"
	"github.com/medibloc/go-keyrecover/crypto/secp256k1"
	"github.com/medibloc/go-keyrecover/keystore"
	"github.com/medibloc/go-keyrecover/util/byteutils"
	"github.com/stretchr/testify/require"
)

// KeyPair is a plaintext key used to build encrypted keystores in tests.
type KeyPair struct {
	ID         keystore.KeyID
	PubKey     []byte
	Scalar     []byte
	Compressed bool
}

// NewKeyPairFromScalar creates a pair from a 32-byte scalar.
func NewKeyPairFromScalar(t *testing.T, scalar []byte, compressed bool) *KeyPair {
	pub, err := secp256k1.DerivePublicKey(scalar, compressed)
	require.NoError(t, err)
	return &KeyPair{
		ID:         keystore.KeyIDFromPubKey(pub),
		PubKey:     pub,
		Scalar:     byteutils.CopyBytes(scalar),
		Compressed: compressed,
	}
}

// NewKeyPairFromHex creates a pair from a hex encoded scalar.
func NewKeyPairFromHex(t *testing.T, scalarHex string, compressed bool) *KeyPair {
	scalar, err := byteutils.Hex2Bytes(scalarHex)
	require.NoError(t, err)
	return NewKeyPairFromScalar(t, scalar, compressed)
}

// NewKeyPair creates a random pair.
func NewKeyPair(t *testing.T, compressed bool) *KeyPair {
	priv, err := btcec.NewPrivateKey()
	require.NoError(t, err)
	defer priv.Zero()
	return NewKeyPairFromScalar(t, priv.Serialize(), compressed)
}

// Encrypt encrypts the pair's scalar under the master key.
func (pair *KeyPair) Encrypt(t *testing.T, masterKey *crypto.KeyMaterial) *keystore.EncryptedKey {
	ct, err := crypto.EncryptSecret(masterKey, pair.Scalar, pair.PubKey)
	require.NoError(t, err)
	return pair.WithCiphertext(t, ct)
}

// WithCiphertext builds an entry for the pair with an arbitrary ciphertext.
func (pair *KeyPair) WithCiphertext(t *testing.T, ct []byte) *keystore.EncryptedKey {
	e, err := keystore.NewEncryptedKey(pair.PubKey, ct)
	require.NoError(t, err)
	return e
}

// String describes KeyPair in string format.
func (pair *KeyPair) String() string {
	if pair == nil {
		return ""
	}
	return fmt.Sprintf("ID:%v, Compressed:%v\n", pair.ID, pair.Compressed)
}

// KeyPairs is a slice of KeyPair.
type KeyPairs []*KeyPair

// FindPair finds the pair with the given id.
func (pairs KeyPairs) FindPair(id keystore.KeyID) *KeyPair {
	for _, pair := range pairs {
		if pair.ID == id {
			return pair
		}
	}
	return nil
}

// NewMasterKey returns a random 32-byte master key.
func NewMasterKey(t *testing.T) *crypto.KeyMaterial {
	b := make([]byte, crypto.AESKeySize)
	_, err := rand.Read(b)
	require.NoError(t, err)
	defer crypto.WipeBytes(b)
	return crypto.NewKeyMaterial(b)
}

// NewLegacyKeystore creates n random keys encrypted under masterKey. Odd
// entries use uncompressed public keys.
func NewLegacyKeystore(t *testing.T, masterKey *crypto.KeyMaterial, n int) (*keystore.LegacyKeyHolder, KeyPairs) {
	holder := keystore.NewLegacyKeyHolder()
	var pairs KeyPairs
	for i := 0; i < n; i++ {
		pair := NewKeyPair(t, i%2 == 0)
		require.NoError(t, holder.AddKey(pair.Encrypt(t, masterKey)))
		pairs = append(pairs, pair)
	}
	return holder, pairs
}

// NewCheckRecord creates a check record for masterKey.
func NewCheckRecord(t *testing.T, masterKey *crypto.KeyMaterial) *keystore.MasterKeyCheck {
	iv := make([]byte, crypto.IVSize)
	plain := make([]byte, 32)
	_, err := rand.Read(iv)
	require.NoError(t, err)
	_, err = rand.Read(plain)
	require.NoError(t, err)

	ct, err := crypto.AESCBCEncrypt(masterKey.Bytes(), iv, plain)
	require.NoError(t, err)
	return &keystore.MasterKeyCheck{IV: iv, Ciphertext: ct, Plaintext: plain}
}
