package storage

import (
	"context"

	"github.com/poiesic/searchit/core"
)

// EmbeddingCache is a durable key-value store from document id to CacheRecord.
// Records outlive the process; one record per document id, last-write-wins.
// Implementations must be thread-safe and must treat each Save as a single
// atomic unit so a crash mid-write never corrupts other records.
type EmbeddingCache interface {
	// Load retrieves the cached record for a document id.
	// Returns ErrNotFound if no record exists or the stored record is
	// unreadable; corruption is indistinguishable from absence by design.
	Load(ctx context.Context, docID string) (*core.CacheRecord, error)

	// Save stores a record for the document id, overwriting any existing one.
	// The fingerprint must be the one computed from the text that produced
	// the vector. First use creates the backing storage location.
	Save(ctx context.Context, docID, fingerprint string, vector []float32) error

	// ValidEmbedding returns the stored vector only if a record exists for
	// docID and its fingerprint equals the argument. Any other outcome
	// (absent, stale fingerprint, corrupt record) returns ErrNotFound; the
	// caller recomputes. This is the cache-invalidation contract: content
	// edits silently invalidate stale vectors.
	ValidEmbedding(ctx context.Context, docID, fingerprint string) ([]float32, error)

	// Close closes the storage backend and releases resources.
	Close() error
}
