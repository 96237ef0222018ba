package filekv

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/KarandeepSinghSidhu10/Tube-to-Textbook/internal/store"
	"github.com/KarandeepSinghSidhu10/Tube-to-Textbook/internal/store/storetest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStore(t *testing.T) {
	storetest.RunKVStoreTests(t, func(t *testing.T) store.KVStore {
		s, err := New(filepath.Join(t.TempDir(), "kv.json"))
		require.NoError(t, err)
		return s
	})
}

func TestStore_PersistsAcrossInstances(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "dir", "history.json")
	ctx := context.Background()

	first, err := New(path)
	require.NoError(t, err)
	require.NoError(t, first.Set(ctx, "tubetext_history", `[]`))

	second, err := New(path)
	require.NoError(t, err)
	value, found, err := second.Get(ctx, "tubetext_history")
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, `[]`, value)

	entries, err := os.ReadDir(filepath.Dir(path))
	require.NoError(t, err)
	assert.Len(t, entries, 1, "No temporary files are left behind")
}

func TestStore_CorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "kv.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o600))
	ctx := context.Background()

	s, err := New(path)
	require.NoError(t, err)

	_, found, err := s.Get(ctx, "k")
	assert.False(t, found)
	var storeErr *store.StoreError
	require.True(t, errors.As(err, &storeErr), "expected a StoreError, got %v", err)
	assert.Equal(t, "get", storeErr.Operation)
	assert.ErrorIs(t, err, store.ErrInvalidValue)

	require.NoError(t, s.Set(ctx, "k", "v"), "Set replaces a corrupt file")
	value, found, err := s.Get(ctx, "k")
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, "v", value)
}

func TestNew_EmptyPath(t *testing.T) {
	_, err := New("")
	assert.ErrorIs(t, err, store.ErrNotInitialized)
}
