package storage

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

var errAbort = errors.New("abort")

// runStoreContract checks behaviour every backend must share.
func runStoreContract(t *testing.T, store Store) {
	t.Helper()
	ctx := context.Background()

	_, ok, err := store.Get(ctx, "missing")
	require.NoError(t, err)
	require.False(t, ok)

	require.NoError(t, store.Set(ctx, "a", []byte(`1`)))
	value, ok, err := store.Get(ctx, "a")
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, `1`, string(value))

	err = store.Update(ctx, func(ctx context.Context, tx Tx) error {
		require.NoError(t, tx.Set(ctx, "a", []byte(`2`)))
		require.NoError(t, tx.Set(ctx, "b", []byte(`3`)))
		staged, ok, err := tx.Get(ctx, "a")
		require.NoError(t, err)
		require.True(t, ok)
		require.Equal(t, `2`, string(staged))
		return errAbort
	})
	require.ErrorIs(t, err, errAbort)

	value, _, err = store.Get(ctx, "a")
	require.NoError(t, err)
	require.Equal(t, `1`, string(value), "failed update must not leak writes")
	_, ok, err = store.Get(ctx, "b")
	require.NoError(t, err)
	require.False(t, ok)

	err = store.Update(ctx, func(ctx context.Context, tx Tx) error {
		if err := tx.Set(ctx, "b", []byte(`3`)); err != nil {
			return err
		}
		return tx.Delete(ctx, "a")
	})
	require.NoError(t, err)

	_, ok, err = store.Get(ctx, "a")
	require.NoError(t, err)
	require.False(t, ok)
	value, ok, err = store.Get(ctx, "b")
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, `3`, string(value))

	keys, err := store.Keys(ctx)
	require.NoError(t, err)
	require.Equal(t, []string{"b"}, keys)

	require.NoError(t, store.Delete(ctx, "b"))
	keys, err = store.Keys(ctx)
	require.NoError(t, err)
	require.Empty(t, keys)
}
