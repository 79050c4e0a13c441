package binary

import (
	"crypto/ed25519"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFixedWidthRoundTrip(t *testing.T) {
	key, _, err := ed25519.GenerateKey(nil)
	require.NoError(t, err)

	discriminator := []byte{1, 2, 3, 4, 5, 6, 7, 8}

	buf := make([]byte, DiscriminatorSize+1+4+8+ed25519.PublicKeySize)

	var offset int
	PutDiscriminator(buf, discriminator, &offset)
	PutUint8(buf, 42, &offset)
	PutUint32(buf, 0xdeadbeef, &offset)
	PutUint64(buf, 1<<40+7, &offset)
	PutKey32(buf, key, &offset)
	require.Equal(t, len(buf), offset)

	// Little endian, no padding
	assert.Equal(t, byte(42), buf[8])
	assert.Equal(t, []byte{0xef, 0xbe, 0xad, 0xde}, buf[9:13])

	var actualDiscriminator []byte
	var u8 uint8
	var u32 uint32
	var u64 uint64
	var actualKey ed25519.PublicKey

	offset = 0
	GetDiscriminator(buf, &actualDiscriminator, &offset)
	GetUint8(buf, &u8, &offset)
	GetUint32(buf, &u32, &offset)
	GetUint64(buf, &u64, &offset)
	GetKey32(buf, &actualKey, &offset)

	assert.Equal(t, discriminator, actualDiscriminator)
	assert.EqualValues(t, 42, u8)
	assert.EqualValues(t, 0xdeadbeef, u32)
	assert.EqualValues(t, 1<<40+7, u64)
	assert.Equal(t, key, actualKey)
	assert.Equal(t, len(buf), offset)
}

func TestGetOptionalKey32(t *testing.T) {
	key, _, err := ed25519.GenerateKey(nil)
	require.NoError(t, err)

	buf := make([]byte, 1+1+ed25519.PublicKeySize)
	buf[1] = 1
	copy(buf[2:], key)

	var actual ed25519.PublicKey
	var offset int

	GetOptionalKey32(buf, &actual, &offset)
	assert.Nil(t, actual)
	assert.Equal(t, 1, offset)

	GetOptionalKey32(buf, &actual, &offset)
	assert.Equal(t, key, actual)
	assert.Equal(t, len(buf), offset)
}
