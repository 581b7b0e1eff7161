package storage

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncryptDecryptRoundTrip(t *testing.T) {
	key := DeriveKey("test passphrase")

	encrypted, err := Encrypt([]byte("Priya Sharma"), key)
	require.NoError(t, err)
	assert.NotContains(t, encrypted, "Priya")

	decrypted, err := Decrypt(encrypted, key)
	require.NoError(t, err)
	assert.Equal(t, "Priya Sharma", string(decrypted))
}

func TestDecryptWithWrongKeyFails(t *testing.T) {
	encrypted, err := Encrypt([]byte("secret"), DeriveKey("right key"))
	require.NoError(t, err)

	_, err = Decrypt(encrypted, DeriveKey("wrong key"))
	assert.Error(t, err)
}

func TestDeriveKeyIsDeterministic(t *testing.T) {
	assert.Equal(t, DeriveKey("passphrase"), DeriveKey("passphrase"))
	assert.NotEqual(t, DeriveKey("passphrase"), DeriveKey("other"))
	assert.Len(t, DeriveKey("passphrase"), 32)
}
