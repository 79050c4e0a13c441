package tokenmanager

import (
	"crypto/ed25519"
	"testing"

	"github.com/mr-tron/base58"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/code-payments/code-token-manager/pkg/testutil"
)

func TestGetAddresses_Fixtures(t *testing.T) {
	program := DefaultProgram()
	mint := testutil.MustDecodePublicKey(t, fixtureMint)
	owner := testutil.MustDecodePublicKey(t, fixtureOwner)

	tokenManager, bump, err := program.GetTokenManagerAddress(&GetTokenManagerAddressArgs{Mint: mint})
	require.NoError(t, err)
	assert.Equal(t, fixtureTokenManager, base58.Encode(tokenManager))
	assert.EqualValues(t, 255, bump)

	mintCounter, bump, err := program.GetMintCounterAddress(&GetMintCounterAddressArgs{Mint: mint})
	require.NoError(t, err)
	assert.Equal(t, fixtureMintCounter, base58.Encode(mintCounter))
	assert.EqualValues(t, 248, bump)

	mintManager, bump, err := program.GetMintManagerAddress(&GetMintManagerAddressArgs{Mint: mint})
	require.NoError(t, err)
	assert.Equal(t, fixtureMintManager, base58.Encode(mintManager))
	assert.EqualValues(t, 255, bump)

	claimReceipt, _, err := program.GetClaimReceiptAddress(&GetClaimReceiptAddressArgs{
		TokenManager: tokenManager,
		Recipient:    owner,
	})
	require.NoError(t, err)
	assert.Equal(t, fixtureClaimReceipt, base58.Encode(claimReceipt))

	transferReceipt, _, err := program.GetTransferReceiptAddress(&GetTransferReceiptAddressArgs{TokenManager: tokenManager})
	require.NoError(t, err)
	assert.Equal(t, fixtureTransferReceipt, base58.Encode(transferReceipt))

	receiptMintManager, _, err := program.GetReceiptMintManagerAddress()
	require.NoError(t, err)
	assert.Equal(t, fixtureReceiptMintManager, base58.Encode(receiptMintManager))
}

func TestFindAddress_Deterministic(t *testing.T) {
	env := setup(t)

	for _, tag := range []SeedTag{SeedTokenManager, SeedMintCounter, SeedMintManager} {
		first, err := env.program.FindAddress(tag, env.mint)
		require.NoError(t, err)
		second, err := env.program.FindAddress(tag, env.mint)
		require.NoError(t, err)

		assert.Equal(t, first, second)
		assert.Len(t, first.Address, ed25519.PublicKeySize)
	}
}

func TestFindAddress_NamespacesAreDistinct(t *testing.T) {
	env := setup(t)

	seen := make(map[string]SeedTag)
	for _, tag := range []SeedTag{SeedTokenManager, SeedMintCounter, SeedMintManager, SeedTransferReceipt} {
		derived, err := env.program.FindAddress(tag, env.mint)
		require.NoError(t, err)

		encoded := base58.Encode(derived.Address)
		other, ok := seen[encoded]
		assert.False(t, ok, "%s collides with %s", tag, other)
		seen[encoded] = tag
	}
}

func TestFindAddress_SingleByteChange(t *testing.T) {
	env := setup(t)

	other := make(ed25519.PublicKey, ed25519.PublicKeySize)
	copy(other, env.mint)
	other[ed25519.PublicKeySize-1] ^= 0x01

	for _, tag := range []SeedTag{SeedTokenManager, SeedMintCounter, SeedMintManager} {
		original, err := env.program.FindAddress(tag, env.mint)
		require.NoError(t, err)
		changed, err := env.program.FindAddress(tag, other)
		require.NoError(t, err)

		assert.NotEqual(t, original.Address, changed.Address)
	}
}

func TestFindAddress_ScopedToProgram(t *testing.T) {
	env := setup(t)

	otherProgram, err := NewProgram(testutil.GenerateSolanaKey(t), DefaultIdl())
	require.NoError(t, err)

	original, err := env.program.FindAddress(SeedTokenManager, env.mint)
	require.NoError(t, err)
	other, err := otherProgram.FindAddress(SeedTokenManager, env.mint)
	require.NoError(t, err)

	assert.NotEqual(t, original.Address, other.Address)
}

func TestFindAddress_InvalidInput(t *testing.T) {
	env := setup(t)

	for _, tc := range []struct {
		tag  SeedTag
		keys []ed25519.PublicKey
	}{
		{SeedTag("unknown"), []ed25519.PublicKey{env.mint}},
		{SeedTokenManager, nil},
		{SeedTokenManager, []ed25519.PublicKey{env.mint, env.issuer}},
		{SeedClaimReceipt, []ed25519.PublicKey{env.mint}},
		{SeedReceiptMintManager, []ed25519.PublicKey{env.mint}},
		{SeedMintManager, []ed25519.PublicKey{env.mint[:31]}},
	} {
		_, err := env.program.FindAddress(tc.tag, tc.keys...)
		assert.Equal(t, ErrSchemaMismatch, errors.Cause(err), tc.tag)
	}

	_, _, err := env.program.GetTokenManagerAddress(&GetTokenManagerAddressArgs{})
	assert.Equal(t, ErrSchemaMismatch, errors.Cause(err))
}

func TestAddressCache(t *testing.T) {
	env := setup(t)

	cache := NewAddressCache(env.program, 2)

	expected, err := env.program.FindAddress(SeedTokenManager, env.mint)
	require.NoError(t, err)

	for i := 0; i < 3; i++ {
		actual, err := cache.FindAddress(SeedTokenManager, env.mint)
		require.NoError(t, err)
		assert.Equal(t, expected, actual)
	}
	assert.Equal(t, 1, cache.Len())

	// Mutating a returned address doesn't corrupt the cached entry
	actual, err := cache.FindAddress(SeedTokenManager, env.mint)
	require.NoError(t, err)
	actual.Address[0] ^= 0xff
	actual, err = cache.FindAddress(SeedTokenManager, env.mint)
	require.NoError(t, err)
	assert.Equal(t, expected, actual)

	_, err = cache.FindAddress(SeedMintCounter, env.mint)
	require.NoError(t, err)
	_, err = cache.FindAddress(SeedMintManager, env.mint)
	require.NoError(t, err)
	assert.Equal(t, 2, cache.Len())

	_, err = cache.FindAddress(SeedClaimReceipt, env.mint)
	assert.Equal(t, ErrSchemaMismatch, errors.Cause(err))
	assert.Equal(t, 2, cache.Len())
}
