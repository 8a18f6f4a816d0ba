package kv_test

import (
	"context"
	"testing"

	"github.com/fwojciec/ldblocks/kv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBlockIndex(t *testing.T) {
	t.Parallel()

	t.Run("adds ids in ascending order", func(t *testing.T) {
		t.Parallel()

		data := make(map[string]string)
		idx := kv.NewBlockIndex(newMemoryStore(data))
		ctx := context.Background()

		for _, id := range []string{"10", "2", "10", "1"} {
			require.NoError(t, idx.MarkDocument(ctx, id, true))
		}

		ids, err := idx.FindDocumentIDs(ctx)
		require.NoError(t, err)
		assert.Equal(t, []string{"1", "2", "10"}, ids)
		assert.Equal(t, `["1","2","10"]`, data[kv.BlockIndexKey])
	})

	t.Run("removes ids and deletes the empty index", func(t *testing.T) {
		t.Parallel()

		data := make(map[string]string)
		idx := kv.NewBlockIndex(newMemoryStore(data))
		ctx := context.Background()

		require.NoError(t, idx.MarkDocument(ctx, "1", true))
		require.NoError(t, idx.MarkDocument(ctx, "2", true))
		require.NoError(t, idx.MarkDocument(ctx, "1", false))

		ok, err := idx.HasBlocks(ctx, "1")
		require.NoError(t, err)
		assert.False(t, ok)
		ok, err = idx.HasBlocks(ctx, "2")
		require.NoError(t, err)
		assert.True(t, ok)

		require.NoError(t, idx.MarkDocument(ctx, "2", false))
		assert.NotContains(t, data, kv.BlockIndexKey)
	})

	t.Run("unmarking an unknown id writes nothing", func(t *testing.T) {
		t.Parallel()

		data := make(map[string]string)
		idx := kv.NewBlockIndex(newMemoryStore(data))

		require.NoError(t, idx.MarkDocument(context.Background(), "1", false))

		assert.Empty(t, data)
	})

	t.Run("returns empty list without index", func(t *testing.T) {
		t.Parallel()

		idx := kv.NewBlockIndex(newMemoryStore(make(map[string]string)))

		ids, err := idx.FindDocumentIDs(context.Background())
		require.NoError(t, err)
		assert.Empty(t, ids)
	})
}
