package wrapper

import (
	"context"
	"crypto/ed25519"
	"strconv"
	"sync"

	"github.com/mr-tron/base58"
	"github.com/pkg/errors"

	"github.com/code-payments/code-token-manager/pkg/config"
)

var (
	// ErrUnsuportedConversion indicates the wrapper does not implement conversion from the source type
	ErrUnsuportedConversion = errors.New("config: wrapper conversion from source type not implemented")

	// ErrInvalidPublicKey indicates the source value isn't a 32 byte key
	ErrInvalidPublicKey = errors.New("config: invalid public key")
)

// typedConfig converts the values of an untyped config.Config, falling back
// to a default when no value is set and to the last good value on error.
type typedConfig[T any] struct {
	override     config.Config
	defaultValue T
	convert      func(interface{}) (T, error)

	stateMu   sync.RWMutex
	lastValue T
}

func newTypedConfig[T any](override config.Config, defaultValue T, convert func(interface{}) (T, error)) *typedConfig[T] {
	return &typedConfig[T]{
		override:     override,
		defaultValue: defaultValue,
		convert:      convert,
		lastValue:    defaultValue,
	}
}

// GetSafe gets a config value and propagates any errors that arise. A best-effort
// attempt is made to return the last known value
func (c *typedConfig[T]) GetSafe(ctx context.Context) (T, error) {
	override, err := c.override.Get(ctx)

	c.stateMu.RLock()
	lastValue := c.lastValue
	c.stateMu.RUnlock()

	if err == config.ErrNoValue {
		c.setLast(c.defaultValue)
		return c.defaultValue, nil
	} else if err != nil {
		return lastValue, err
	}

	newValue, err := c.convert(override)
	if err != nil {
		return lastValue, err
	}

	c.setLast(newValue)
	return newValue, nil
}

// Get is a wrapper for GetSafe that ignores the returned error
func (c *typedConfig[T]) Get(ctx context.Context) T {
	val, _ := c.GetSafe(ctx)
	return val
}

// Shutdown signals the config to stop all underlying resources
func (c *typedConfig[T]) Shutdown() {
	c.override.Shutdown()
}

func (c *typedConfig[T]) setLast(v T) {
	c.stateMu.Lock()
	c.lastValue = v
	c.stateMu.Unlock()
}

// NewBoolConfig returns a new bool config utility wrapper
func NewBoolConfig(override config.Config, defaultValue bool) config.Bool {
	return newTypedConfig(override, defaultValue, func(v interface{}) (bool, error) {
		switch typed := v.(type) {
		case []byte:
			return strconv.ParseBool(string(typed))
		case string:
			return strconv.ParseBool(typed)
		case bool:
			return typed, nil
		}
		return false, ErrUnsuportedConversion
	})
}

// NewStringConfig returns a new string config utility wrapper
func NewStringConfig(override config.Config, defaultValue string) config.String {
	return newTypedConfig(override, defaultValue, func(v interface{}) (string, error) {
		switch typed := v.(type) {
		case []byte:
			return string(typed), nil
		case string:
			return typed, nil
		}
		return "", ErrUnsuportedConversion
	})
}

// NewPublicKeyConfig returns a new public key config utility wrapper. Text
// sources are base58 decoded; raw keys are used as-is.
func NewPublicKeyConfig(override config.Config, defaultValue ed25519.PublicKey) config.PublicKey {
	return newTypedConfig(override, defaultValue, func(v interface{}) (ed25519.PublicKey, error) {
		var decoded []byte
		switch typed := v.(type) {
		case []byte:
			var err error
			decoded, err = base58.Decode(string(typed))
			if err != nil {
				return nil, errors.Wrap(ErrInvalidPublicKey, err.Error())
			}
		case string:
			var err error
			decoded, err = base58.Decode(typed)
			if err != nil {
				return nil, errors.Wrap(ErrInvalidPublicKey, err.Error())
			}
		case ed25519.PublicKey:
			decoded = typed
		default:
			return nil, ErrUnsuportedConversion
		}

		if len(decoded) != ed25519.PublicKeySize {
			return nil, ErrInvalidPublicKey
		}
		return ed25519.PublicKey(decoded), nil
	})
}
