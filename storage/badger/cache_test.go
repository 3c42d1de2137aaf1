package badger

import (
	"context"
	"testing"

	"github.com/dgraph-io/badger/v4"
	"github.com/poiesic/searchit/core"
	"github.com/poiesic/searchit/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestCache(t *testing.T) storage.EmbeddingCache {
	t.Helper()
	cache, err := NewMemoryCache()
	require.NoError(t, err)
	t.Cleanup(func() { cache.Close() })
	return cache
}

func TestCache_SaveLoad(t *testing.T) {
	cache := newTestCache(t)
	ctx := context.Background()

	fingerprint := core.FingerprintText("document body")
	vector := []float32{0.1, 0.2, 0.3}

	require.NoError(t, cache.Save(ctx, "doc_001", fingerprint, vector))

	record, err := cache.Load(ctx, "doc_001")
	require.NoError(t, err)
	assert.Equal(t, "doc_001", record.DocId)
	assert.Equal(t, fingerprint, record.Fingerprint)
	assert.Equal(t, vector, record.Vector)
	assert.False(t, record.UpdatedAt.IsZero())
}

func TestCache_LoadAbsent(t *testing.T) {
	cache := newTestCache(t)

	_, err := cache.Load(context.Background(), "missing")
	assert.ErrorIs(t, err, storage.ErrNotFound)
}

func TestCache_SaveEmptyDocId(t *testing.T) {
	cache := newTestCache(t)

	err := cache.Save(context.Background(), "", "fp", []float32{1})
	assert.ErrorIs(t, err, core.ErrEmptyDocumentId)
}

func TestCache_SaveOverwrites(t *testing.T) {
	cache := newTestCache(t)
	ctx := context.Background()

	require.NoError(t, cache.Save(ctx, "doc_001", "fp1", []float32{1, 2}))
	require.NoError(t, cache.Save(ctx, "doc_001", "fp2", []float32{3, 4}))

	record, err := cache.Load(ctx, "doc_001")
	require.NoError(t, err)
	assert.Equal(t, "fp2", record.Fingerprint)
	assert.Equal(t, []float32{3, 4}, record.Vector)
}

func TestCache_ValidEmbedding(t *testing.T) {
	cache := newTestCache(t)
	ctx := context.Background()

	fingerprint := core.FingerprintText("stable content")
	vector := []float32{0.5, 0.5, 0.5, 0.5}
	require.NoError(t, cache.Save(ctx, "doc_001", fingerprint, vector))

	t.Run("matching fingerprint returns exact vector", func(t *testing.T) {
		got, err := cache.ValidEmbedding(ctx, "doc_001", fingerprint)
		require.NoError(t, err)
		assert.Equal(t, vector, got)
	})

	t.Run("stale fingerprint is a miss", func(t *testing.T) {
		_, err := cache.ValidEmbedding(ctx, "doc_001", core.FingerprintText("edited content"))
		assert.ErrorIs(t, err, storage.ErrNotFound)
	})

	t.Run("unknown doc id is a miss", func(t *testing.T) {
		_, err := cache.ValidEmbedding(ctx, "doc_999", fingerprint)
		assert.ErrorIs(t, err, storage.ErrNotFound)
	})
}

func TestCache_CorruptRecordIsMiss(t *testing.T) {
	backend, err := OpenBackend("", true)
	require.NoError(t, err)
	cache := newCache(backend)
	t.Cleanup(func() { cache.Close() })

	// Write garbage directly under the record key.
	err = backend.WithTx(func(tx *badger.Txn) error {
		if err := tx.Set(makeEmbeddingKey("doc_001"), []byte{0xde, 0xad}); err != nil {
			return err
		}
		return tx.Commit()
	}, true)
	require.NoError(t, err)

	_, err = cache.Load(context.Background(), "doc_001")
	assert.ErrorIs(t, err, storage.ErrNotFound)

	_, err = cache.ValidEmbedding(context.Background(), "doc_001", "anything")
	assert.ErrorIs(t, err, storage.ErrNotFound)
}

func TestCache_ClosedBackend(t *testing.T) {
	cache, err := NewMemoryCache()
	require.NoError(t, err)
	require.NoError(t, cache.Close())

	_, err = cache.Load(context.Background(), "doc_001")
	assert.ErrorIs(t, err, storage.ErrStorageClosed)

	err = cache.Save(context.Background(), "doc_001", "fp", []float32{1})
	assert.ErrorIs(t, err, storage.ErrStorageClosed)
}
