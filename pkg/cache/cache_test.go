package cache

import (
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCache_InsertWithinBudget(t *testing.T) {
	cache := NewCache(3)

	require.NoError(t, cache.Insert("A", "valueA", 1))
	require.NoError(t, cache.Insert("B", "valueB", 1))
	require.NoError(t, cache.Insert("C", "valueC", 1))

	assert.Equal(t, 3, cache.GetWeight())
	assert.Equal(t, 3, cache.GetBudget())
	assert.Equal(t, 3, cache.Len())
}

func TestCache_DuplicateRejected(t *testing.T) {
	cache := NewCache(2)

	require.NoError(t, cache.Insert("dupe", "first", 1))
	assert.Equal(t, ErrKeyExists, cache.Insert("dupe", "second", 1))

	value, ok := cache.Retrieve("dupe")
	require.True(t, ok)
	assert.Equal(t, "first", value)
}

func TestCache_EvictsLeastRecentlyUsed(t *testing.T) {
	cache := NewCache(2)
	cache.SetVerbose(true)

	require.NoError(t, cache.Insert("evicted", "valueEvicted", 1))
	require.NoError(t, cache.Insert("A", "valueA", 1))
	require.NoError(t, cache.Insert("B", "valueB", 1))

	_, ok := cache.Retrieve("evicted")
	assert.False(t, ok)
	assert.Equal(t, 2, cache.GetWeight())

	// Touching A makes B the next eviction
	_, ok = cache.Retrieve("A")
	require.True(t, ok)
	require.NoError(t, cache.Insert("C", "valueC", 1))

	_, ok = cache.Retrieve("B")
	assert.False(t, ok)
	_, ok = cache.Retrieve("A")
	assert.True(t, ok)
	_, ok = cache.Retrieve("C")
	assert.True(t, ok)
}

func TestCache_EvictsUntilWithinBudget(t *testing.T) {
	cache := NewCache(3)

	require.NoError(t, cache.Insert("A", "valueA", 1))
	require.NoError(t, cache.Insert("B", "valueB", 1))
	require.NoError(t, cache.Insert("heavy", "valueHeavy", 3))

	assert.Equal(t, 3, cache.GetWeight())
	assert.Equal(t, 1, cache.Len())

	// An entry heavier than the budget doesn't survive its own insert
	require.NoError(t, cache.Insert("too-heavy", "valueTooHeavy", 4))
	assert.Equal(t, 0, cache.GetWeight())
	assert.Equal(t, 0, cache.Len())
}

func TestCache_Clear(t *testing.T) {
	cache := NewCache(10)
	require.NoError(t, cache.Insert("A", "valueA", 1))
	require.NoError(t, cache.Insert("B", "valueB", 1))

	cache.Clear()

	assert.Equal(t, 0, cache.GetWeight())
	assert.Equal(t, 0, cache.Len())
	_, ok := cache.Retrieve("A")
	assert.False(t, ok)

	require.NoError(t, cache.Insert("A", "valueA", 1))
}

func TestCache_ConcurrentAccess(t *testing.T) {
	cache := NewCache(50)

	var wg sync.WaitGroup
	for i := 0; i < 100; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()

			key := fmt.Sprintf("key%d", i)
			assert.NoError(t, cache.Insert(key, i, 1))
			cache.Retrieve(key)
		}(i)
	}
	wg.Wait()

	assert.Equal(t, 50, cache.GetWeight())
	assert.Equal(t, 50, cache.Len())
}
