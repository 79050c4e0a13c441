package wrapper

import (
	"context"
	"crypto/ed25519"
	"testing"

	"github.com/mr-tron/base58"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/code-payments/code-token-manager/pkg/config/memory"
)

func TestStringConfig(t *testing.T) {
	mock := memory.NewConfig(nil)
	wrapper := NewStringConfig(mock, "default")

	// Return the default value when no override is set
	val, err := wrapper.GetSafe(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "default", val)

	// The overriden value is returned when set
	mock.SetValue([]byte("override"))
	assert.Equal(t, "override", wrapper.Get(context.Background()))

	// The last observed config value is returned on error
	mock.InduceErrors()
	val, err = wrapper.GetSafe(context.Background())
	require.Error(t, err)
	assert.Equal(t, "override", val)

	// The default value is returned when the override no longer has a value
	mock.StopInducingErrors()
	mock.ClearValue()
	assert.Equal(t, "default", wrapper.Get(context.Background()))

	mock.SetValue(42)
	_, err = wrapper.GetSafe(context.Background())
	assert.Equal(t, ErrUnsuportedConversion, err)
}

func TestBoolConfig(t *testing.T) {
	mock := memory.NewConfig(nil)
	wrapper := NewBoolConfig(mock, true)

	assert.True(t, wrapper.Get(context.Background()))

	mock.SetValue([]byte("false"))
	assert.False(t, wrapper.Get(context.Background()))

	mock.SetValue(true)
	assert.True(t, wrapper.Get(context.Background()))

	mock.SetValue([]byte("not a bool"))
	val, err := wrapper.GetSafe(context.Background())
	assert.Error(t, err)
	assert.True(t, val)
}

func TestPublicKeyConfig(t *testing.T) {
	defaultValue, _, err := ed25519.GenerateKey(nil)
	require.NoError(t, err)
	overridenValue, _, err := ed25519.GenerateKey(nil)
	require.NoError(t, err)

	mock := memory.NewConfig(nil)
	wrapper := NewPublicKeyConfig(mock, defaultValue)

	assert.Equal(t, defaultValue, wrapper.Get(context.Background()))

	mock.SetValue([]byte(base58.Encode(overridenValue)))
	assert.Equal(t, overridenValue, wrapper.Get(context.Background()))

	mock.SetValue(defaultValue)
	assert.Equal(t, defaultValue, wrapper.Get(context.Background()))

	// Too short, keep the last good value
	mock.SetValue(base58.Encode(overridenValue[:31]))
	val, err := wrapper.GetSafe(context.Background())
	assert.Equal(t, ErrInvalidPublicKey, err)
	assert.Equal(t, defaultValue, val)

	mock.SetValue("0OIl")
	_, err = wrapper.GetSafe(context.Background())
	assert.Equal(t, ErrInvalidPublicKey, errors.Cause(err))
}
