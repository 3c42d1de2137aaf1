package badger

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/poiesic/searchit/core"
	"github.com/poiesic/searchit/storage"
)

// Embedding record keys are namespaced so the database can host other data
// later without key collisions.
const embeddingRecordPrefix = "embrec"

// makeEmbeddingKey generates a key for an embedding record by document id.
func makeEmbeddingKey(docID string) []byte {
	return []byte(fmt.Sprintf("%s:%s", embeddingRecordPrefix, docID))
}

// Cache implements storage.EmbeddingCache on BadgerDB.
type Cache struct {
	backend *Backend
	logger  *slog.Logger
}

var _ storage.EmbeddingCache = (*Cache)(nil)

// NewCache opens (or creates) a BadgerDB-backed embedding cache at path.
//
// Returns storage.EmbeddingCache interface to enforce abstraction.
func NewCache(path string) (storage.EmbeddingCache, error) {
	backend, err := OpenBackend(path, false)
	if err != nil {
		return nil, err
	}
	return newCache(backend), nil
}

// newCache wraps an already-open backend. The caller keeps ownership of the
// backend's lifetime when constructing through this path.
func newCache(backend *Backend) *Cache {
	return &Cache{
		backend: backend,
		logger:  slog.Default().With("component", "badger-cache"),
	}
}

// Close closes the underlying database.
func (c *Cache) Close() error {
	return c.backend.Close()
}

// Load retrieves the cached record for a document id.
func (c *Cache) Load(ctx context.Context, docID string) (*core.CacheRecord, error) {
	if c.backend.IsClosed() {
		return nil, storage.ErrStorageClosed
	}

	var record *core.CacheRecord
	err := c.backend.WithTx(func(tx *badger.Txn) error {
		item, err := tx.Get(makeEmbeddingKey(docID))
		if err != nil {
			if errors.Is(err, badger.ErrKeyNotFound) {
				return storage.ErrNotFound
			}
			return err
		}
		return item.Value(func(val []byte) error {
			record, err = storage.UnmarshalCacheRecord(val)
			return err
		})
	}, false)

	if err != nil {
		if errors.Is(err, storage.ErrSerializationFailed) {
			// Corrupt record: report absence, the caller recomputes.
			c.logger.Warn("dropping corrupt cache record", "docID", docID, "err", err)
			return nil, storage.ErrNotFound
		}
		return nil, err
	}
	return record, nil
}

// Save stores a record for the document id, overwriting any existing one.
// Each save runs in its own transaction, so a crash mid-write never leaves
// a partially-written record visible.
func (c *Cache) Save(ctx context.Context, docID, fingerprint string, vector []float32) error {
	if docID == "" {
		return core.ErrEmptyDocumentId
	}
	if c.backend.IsClosed() {
		return storage.ErrStorageClosed
	}

	record := &core.CacheRecord{
		DocId:       docID,
		Fingerprint: fingerprint,
		Vector:      vector,
		UpdatedAt:   time.Now().UTC(),
	}

	return c.backend.WithTx(func(tx *badger.Txn) error {
		if err := tx.Set(makeEmbeddingKey(docID), storage.MarshalCacheRecord(record)); err != nil {
			return err
		}
		return tx.Commit()
	}, true)
}

// ValidEmbedding returns the stored vector only if the record's fingerprint
// matches. Stale and absent records both surface as storage.ErrNotFound.
func (c *Cache) ValidEmbedding(ctx context.Context, docID, fingerprint string) ([]float32, error) {
	record, err := c.Load(ctx, docID)
	if err != nil {
		return nil, err
	}
	if record.Fingerprint != fingerprint {
		return nil, storage.ErrNotFound
	}
	return record.Vector, nil
}
