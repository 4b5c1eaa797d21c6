package storage

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryStoreGetMissing(t *testing.T) {
	store := NewMemoryStore()
	_, err := store.Get(context.Background(), "bkt", "missing")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMemoryStoreRoundTrip(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	require.NoError(t, store.Put(ctx, "bkt", "dir/a", []byte("payload"), "text/plain"))

	data, err := store.Get(ctx, "bkt", "dir/a")
	require.NoError(t, err)
	assert.Equal(t, []byte("payload"), data)

	exists, err := store.Exists(ctx, "bkt", "dir/a")
	require.NoError(t, err)
	assert.True(t, exists)

	exists, err = store.Exists(ctx, "bkt", "dir/b")
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestMemoryStoreListPrefix(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()
	require.NoError(t, store.Put(ctx, "bkt", "dir/b", nil, ""))
	require.NoError(t, store.Put(ctx, "bkt", "dir/a", nil, ""))
	require.NoError(t, store.Put(ctx, "bkt", "other/c", nil, ""))
	require.NoError(t, store.Put(ctx, "two", "dir/d", nil, ""))

	keys, err := store.List(ctx, "bkt", "dir/")
	require.NoError(t, err)
	assert.Equal(t, []string{"dir/a", "dir/b"}, keys)
}

func TestMemoryStorePutAccounting(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()
	require.NoError(t, store.Put(ctx, "bkt", "k", []byte("1"), ""))
	require.NoError(t, store.Put(ctx, "bkt", "k", []byte("2"), ""))

	assert.Equal(t, 2, store.PutCount("k"))
	assert.Equal(t, []string{"k", "k"}, store.Puts())
}
