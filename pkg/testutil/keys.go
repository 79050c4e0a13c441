package testutil

import (
	"crypto/ed25519"
	"testing"

	"github.com/mr-tron/base58"
	"github.com/stretchr/testify/require"
)

// GenerateSolanaKeys returns n random public keys.
func GenerateSolanaKeys(t *testing.T, n int) []ed25519.PublicKey {
	keys := make([]ed25519.PublicKey, n)
	for i := 0; i < n; i++ {
		p, _, err := ed25519.GenerateKey(nil)
		require.NoError(t, err)
		keys[i] = p
	}
	return keys
}

func GenerateSolanaKey(t *testing.T) ed25519.PublicKey {
	return GenerateSolanaKeys(t, 1)[0]
}

// MustDecodePublicKey decodes a base58 fixture, failing the test if it isn't
// a 32 byte key.
func MustDecodePublicKey(t *testing.T, value string) ed25519.PublicKey {
	decoded, err := base58.Decode(value)
	require.NoError(t, err)
	require.Len(t, decoded, ed25519.PublicKeySize)
	return decoded
}
