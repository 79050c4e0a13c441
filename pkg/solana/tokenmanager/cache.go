package tokenmanager

import (
	"crypto/ed25519"
	"strings"

	"github.com/mr-tron/base58"

	"github.com/code-payments/code-token-manager/pkg/cache"
)

// AddressCache memoizes FindAddress results. Derivations are deterministic,
// so entries never go stale; the budget only bounds memory.
type AddressCache struct {
	program *Program
	cache   cache.Cache
}

// NewAddressCache returns a cache holding up to size derived addresses.
func NewAddressCache(program *Program, size int) *AddressCache {
	return &AddressCache{
		program: program,
		cache:   cache.NewCache(size),
	}
}

// FindAddress is Program.FindAddress with memoization. Failed derivations
// aren't cached.
func (c *AddressCache) FindAddress(tag SeedTag, keys ...ed25519.PublicKey) (DerivedAddress, error) {
	key := c.cacheKey(tag, keys)

	if cached, ok := c.cache.Retrieve(key); ok {
		return copyDerivedAddress(cached.(DerivedAddress)), nil
	}

	derived, err := c.program.FindAddress(tag, keys...)
	if err != nil {
		return DerivedAddress{}, err
	}

	// A concurrent caller may have won the race, which is fine
	_ = c.cache.Insert(key, copyDerivedAddress(derived), 1)

	return derived, nil
}

func (c *AddressCache) Len() int {
	return c.cache.Len()
}

func (c *AddressCache) cacheKey(tag SeedTag, keys []ed25519.PublicKey) string {
	parts := make([]string, 0, len(keys)+2)
	parts = append(parts, base58.Encode(c.program.id), string(tag))
	for _, key := range keys {
		parts = append(parts, base58.Encode(key))
	}
	return strings.Join(parts, ":")
}

func copyDerivedAddress(derived DerivedAddress) DerivedAddress {
	address := make(ed25519.PublicKey, len(derived.Address))
	copy(address, derived.Address)
	return DerivedAddress{Address: address, Bump: derived.Bump}
}
