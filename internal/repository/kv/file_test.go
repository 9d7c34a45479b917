package kv

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"eventease/internal/domain"
)

func TestFileStore_roundtrip(t *testing.T) {
	ctx := context.Background()
	store, err := NewFileStore(t.TempDir())
	require.NoError(t, err)

	require.NoError(t, store.Set(ctx, domain.KeyEvents, []byte(`{"a":1}`)))

	data, err := store.Get(ctx, domain.KeyEvents)
	require.NoError(t, err)
	assert.JSONEq(t, `{"a":1}`, string(data))
}

func TestFileStore_missing_key(t *testing.T) {
	ctx := context.Background()
	store, err := NewFileStore(t.TempDir())
	require.NoError(t, err)

	_, err = store.Get(ctx, "never-written")
	assert.ErrorIs(t, err, domain.ErrKeyNotFound)
}

func TestFileStore_overwrite(t *testing.T) {
	ctx := context.Background()
	store, err := NewFileStore(t.TempDir())
	require.NoError(t, err)

	require.NoError(t, store.Set(ctx, "k", []byte(`"v1"`)))
	require.NoError(t, store.Set(ctx, "k", []byte(`"v2"`)))

	data, err := store.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, `"v2"`, string(data))
}

func TestFileStore_delete(t *testing.T) {
	ctx := context.Background()
	store, err := NewFileStore(t.TempDir())
	require.NoError(t, err)

	require.NoError(t, store.Set(ctx, "k", []byte(`1`)))
	require.NoError(t, store.Delete(ctx, "k"))

	_, err = store.Get(ctx, "k")
	assert.ErrorIs(t, err, domain.ErrKeyNotFound)

	// Deleting a missing key is not an error.
	assert.NoError(t, store.Delete(ctx, "k"))
}

func TestFileStore_namespaced_keys(t *testing.T) {
	ctx := context.Background()
	store, err := NewFileStore(t.TempDir())
	require.NoError(t, err)

	require.NoError(t, store.Set(ctx, "eventease:users_db", []byte(`[]`)))
	require.NoError(t, store.Set(ctx, "eventease:events", []byte(`{}`)))

	users, err := store.Get(ctx, "eventease:users_db")
	require.NoError(t, err)
	assert.Equal(t, `[]`, string(users))

	events, err := store.Get(ctx, "eventease:events")
	require.NoError(t, err)
	assert.Equal(t, `{}`, string(events))
}
