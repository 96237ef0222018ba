// Package storetest provides a shared behavioural test suite for
// store.KVStore implementations.
package storetest

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"

	"github.com/KarandeepSinghSidhu10/Tube-to-Textbook/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// RunKVStoreTests exercises the KVStore contract against stores produced by
// newStore. Each subtest gets a fresh store.
func RunKVStoreTests(t *testing.T, newStore func(t *testing.T) store.KVStore) {
	t.Helper()

	t.Run("missing key", func(t *testing.T) {
		kv := newStore(t)
		value, found, err := kv.Get(context.Background(), "never_set")
		require.NoError(t, err)
		assert.False(t, found)
		assert.Empty(t, value)
	})

	t.Run("set then get", func(t *testing.T) {
		kv := newStore(t)
		ctx := context.Background()
		require.NoError(t, kv.Set(ctx, "tubetext_history", `[{"id":"a"}]`))

		value, found, err := kv.Get(ctx, "tubetext_history")
		require.NoError(t, err)
		assert.True(t, found)
		assert.Equal(t, `[{"id":"a"}]`, value)
	})

	t.Run("overwrite", func(t *testing.T) {
		kv := newStore(t)
		ctx := context.Background()
		require.NoError(t, kv.Set(ctx, "k", "first"))
		require.NoError(t, kv.Set(ctx, "k", "second"))

		value, found, err := kv.Get(ctx, "k")
		require.NoError(t, err)
		assert.True(t, found)
		assert.Equal(t, "second", value)
	})

	t.Run("empty value is stored", func(t *testing.T) {
		kv := newStore(t)
		ctx := context.Background()
		require.NoError(t, kv.Set(ctx, "k", ""))

		value, found, err := kv.Get(ctx, "k")
		require.NoError(t, err)
		assert.True(t, found)
		assert.Equal(t, "", value)
	})

	t.Run("keys are independent", func(t *testing.T) {
		kv := newStore(t)
		ctx := context.Background()
		require.NoError(t, kv.Set(ctx, "a", "1"))
		require.NoError(t, kv.Set(ctx, "b", "2"))

		a, _, err := kv.Get(ctx, "a")
		require.NoError(t, err)
		b, _, err := kv.Get(ctx, "b")
		require.NoError(t, err)
		assert.Equal(t, "1", a)
		assert.Equal(t, "2", b)
	})

	t.Run("large unicode value", func(t *testing.T) {
		kv := newStore(t)
		ctx := context.Background()
		value := strings.Repeat("Photosynthèse ☀️ \"quoted\"\n", 4000)
		require.NoError(t, kv.Set(ctx, "big", value))

		got, found, err := kv.Get(ctx, "big")
		require.NoError(t, err)
		assert.True(t, found)
		assert.Equal(t, value, got)
	})

	t.Run("empty key rejected", func(t *testing.T) {
		kv := newStore(t)
		ctx := context.Background()

		err := kv.Set(ctx, "", "v")
		assert.True(t, errors.Is(err, store.ErrInvalidKey), "expected ErrInvalidKey, got %v", err)

		_, _, err = kv.Get(ctx, "")
		assert.True(t, errors.Is(err, store.ErrInvalidKey), "expected ErrInvalidKey, got %v", err)
	})

	t.Run("concurrent writers", func(t *testing.T) {
		kv := newStore(t)
		ctx := context.Background()

		var wg sync.WaitGroup
		for i := 0; i < 8; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				assert.NoError(t, kv.Set(ctx, "shared", "value"))
			}()
		}
		wg.Wait()

		value, found, err := kv.Get(ctx, "shared")
		require.NoError(t, err)
		assert.True(t, found)
		assert.Equal(t, "value", value)
	})
}
