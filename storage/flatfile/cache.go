package flatfile

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/poiesic/searchit/core"
	"github.com/poiesic/searchit/storage"
)

// cacheFile is the on-disk JSON shape, one file per document id.
type cacheFile struct {
	DocId       string    `json:"doc_id"`
	Fingerprint string    `json:"fingerprint"`
	Vector      []float32 `json:"embedding"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// Cache implements storage.EmbeddingCache as a directory of JSON files,
// cache/<doc_id>.json. The layout is human-inspectable and each record is
// an independent file, so a crash mid-write can only affect the record
// being written.
type Cache struct {
	dir    string
	logger *slog.Logger
}

var _ storage.EmbeddingCache = (*Cache)(nil)

// NewCache creates a flat-file embedding cache rooted at dir.
// The directory is created if absent; creation is idempotent.
//
// Returns storage.EmbeddingCache interface to enforce abstraction.
func NewCache(dir string) (storage.EmbeddingCache, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("creating cache directory: %w", err)
	}
	return &Cache{
		dir:    dir,
		logger: slog.Default().With("component", "flatfile-cache"),
	}, nil
}

// Close is a no-op; the cache holds no open handles between operations.
func (c *Cache) Close() error {
	return nil
}

func (c *Cache) recordPath(docID string) string {
	return filepath.Join(c.dir, docID+".json")
}

// Load retrieves the cached record for a document id.
func (c *Cache) Load(ctx context.Context, docID string) (*core.CacheRecord, error) {
	data, err := os.ReadFile(c.recordPath(docID))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, storage.ErrNotFound
		}
		// Unreadable files count as misses, not failures.
		c.logger.Warn("unreadable cache file", "docID", docID, "err", err)
		return nil, storage.ErrNotFound
	}

	var rec cacheFile
	if err := json.Unmarshal(data, &rec); err != nil {
		c.logger.Warn("dropping corrupt cache file", "docID", docID, "err", err)
		return nil, storage.ErrNotFound
	}

	return &core.CacheRecord{
		DocId:       rec.DocId,
		Fingerprint: rec.Fingerprint,
		Vector:      rec.Vector,
		UpdatedAt:   rec.UpdatedAt,
	}, nil
}

// Save stores a record for the document id, overwriting any existing one.
// The file is written to a temp name and renamed into place so a partial
// write is never observable under the record's final name.
func (c *Cache) Save(ctx context.Context, docID, fingerprint string, vector []float32) error {
	if docID == "" {
		return core.ErrEmptyDocumentId
	}

	data, err := json.Marshal(cacheFile{
		DocId:       docID,
		Fingerprint: fingerprint,
		Vector:      vector,
		UpdatedAt:   time.Now().UTC(),
	})
	if err != nil {
		return fmt.Errorf("%w: %w", storage.ErrSerializationFailed, err)
	}

	tmp, err := os.CreateTemp(c.dir, docID+".tmp-*")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return err
	}
	return os.Rename(tmpName, c.recordPath(docID))
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
