package search

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/poiesic/searchit/ai"
	"github.com/poiesic/searchit/core"
	"github.com/poiesic/searchit/docstore"
	"github.com/poiesic/searchit/index"
	"github.com/poiesic/searchit/storage"
)

const defaultPreviewLength = 200

// State describes the engine's build lifecycle.
type State int

const (
	// StateEmpty means no documents have been loaded yet.
	StateEmpty State = iota
	// StateDocumentsLoaded means documents are loaded but not embedded.
	StateDocumentsLoaded
	// StateEmbeddingsReady means embeddings are assembled but not indexed.
	StateEmbeddingsReady
	// StateReady means the engine serves searches from a built snapshot.
	StateReady
)

// snapshot is an immutable built state. Searches read only snapshots, so a
// failed rebuild never disturbs the state being served.
type snapshot struct {
	order    []*core.Document
	byID     map[string]*core.Document
	rows     []core.DocVector
	strategy index.Strategy
}

// Engine orchestrates the load -> embed-or-reuse -> index -> query pipeline.
//
// Build methods mutate the engine and must be serialized by the caller;
// Search and SearchWithExplanation are safe to call concurrently against a
// built engine, including while a rebuild is in flight — they serve the
// previously published snapshot until the rebuild succeeds.
type Engine struct {
	store      *docstore.Store
	cache      storage.EmbeddingCache
	embedder   ai.Embedder
	strategy   index.Strategy
	monitor    BuildMonitor
	previewLen int
	logger     *slog.Logger

	mu      sync.RWMutex
	state   State
	docs    []*core.Document // loaded, pending build
	pending []core.DocVector // embedded, pending index
	dim     int              // learned embedding dimension, 0 until known
	current *snapshot
}

// Option configures an Engine.
type Option func(*Engine) error

// WithStrategy sets the ranking strategy.
// Default is index.NewExactScan().
func WithStrategy(strategy index.Strategy) Option {
	return func(e *Engine) error {
		if strategy == nil {
			strategy = index.NewExactScan()
		}
		e.strategy = strategy
		return nil
	}
}

// WithBuildMonitor sets a monitor receiving build progress callbacks.
func WithBuildMonitor(monitor BuildMonitor) Option {
	return func(e *Engine) error {
		if monitor == nil {
			monitor = &noopBuildMonitor{}
		}
		e.monitor = monitor
		return nil
	}
}

// WithPreviewLength sets the preview length in characters.
// Default is 200.
func WithPreviewLength(n int) Option {
	return func(e *Engine) error {
		if n < 1 {
			n = defaultPreviewLength
		}
		e.previewLen = n
		return nil
	}
}

// WithDimension pins the expected embedding dimension so cached vectors of a
// different dimensionality are invalidated up front. Without it the engine
// learns the dimension from the first embedding it sees.
func WithDimension(dim int) Option {
	return func(e *Engine) error {
		if dim < 0 {
			dim = 0
		}
		e.dim = dim
		return nil
	}
}

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(e *Engine) error {
		if logger == nil {
			logger = slog.Default()
		}
		e.logger = logger
		return nil
	}
}

// NewEngine creates a search engine.
func NewEngine(store *docstore.Store, cache storage.EmbeddingCache, embedder ai.Embedder, opts ...Option) (*Engine, error) {
	if store == nil {
		return nil, ErrStoreRequired
	}
	if cache == nil {
		return nil, ErrCacheRequired
	}
	if embedder == nil {
		return nil, ErrEmbedderRequired
	}

	e := &Engine{
		store:      store,
		cache:      cache,
		embedder:   embedder,
		strategy:   index.NewExactScan(),
		monitor:    &noopBuildMonitor{},
		previewLen: defaultPreviewLength,
		logger:     slog.Default(),
	}

	// Apply options
	for _, opt := range opts {
		if err := opt(e); err != nil {
			return nil, err
		}
	}

	return e, nil
}

// State returns the engine's build lifecycle state.
func (e *Engine) State() State {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.state
}

// LoadDocuments loads the corpus from dir, replacing any previously loaded
// documents. Re-entrant: calling again reloads from disk. A snapshot built
// earlier keeps serving searches until the next successful BuildIndex.
func (e *Engine) LoadDocuments(ctx context.Context, dir string) error {
	docs, err := e.store.Load(ctx, dir)
	if err != nil {
		return err
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	e.docs = docs
	e.pending = nil
	e.state = StateDocumentsLoaded
	e.logger.Info("documents loaded", "dir", dir, "count", len(docs))
	return nil
}

// BuildEmbeddings produces one embedding row per loaded document, in
// document order. For each document the cleaned text is fingerprinted and
// the cache consulted; all misses are embedded in a single batch and each
// new vector is written back to the cache immediately, keyed by the
// fingerprint it was embedded for. The assembled rows are normalized as a
// batch. On any failure the engine's served snapshot is left untouched.
//
// All cache and embedder work is staged outside the engine's lock, so
// searches keep serving the prior snapshot while the embedder round-trips;
// the lock is taken only to publish the finished rows.
func (e *Engine) BuildEmbeddings(ctx context.Context) error {
	e.mu.RLock()
	docs := e.docs
	pinned := e.dim
	e.mu.RUnlock()

	if docs == nil {
		return ErrNoDocuments
	}
	e.monitor.Start(len(docs))

	fingerprints := make([]string, len(docs))
	vectors := make([][]float32, len(docs))
	var missIdx []int
	var missTexts []string

	for i, doc := range docs {
		cleaned := core.CleanText(doc.Text)
		fingerprints[i] = core.FingerprintText(doc.Text)

		vec, err := e.cache.ValidEmbedding(ctx, doc.Id, fingerprints[i])
		switch {
		case err == nil && pinned > 0 && len(vec) != pinned:
			// Valid fingerprint but wrong dimensionality: the model changed
			// between runs. Never mix it into the matrix.
			e.monitor.CacheInvalidated(doc.Id)
			missIdx = append(missIdx, i)
			missTexts = append(missTexts, cleaned)
		case err == nil:
			e.monitor.CacheHit(doc.Id)
			vectors[i] = vec
		case errors.Is(err, storage.ErrNotFound):
			e.monitor.CacheMiss(doc.Id)
			missIdx = append(missIdx, i)
			missTexts = append(missTexts, cleaned)
		default:
			return fmt.Errorf("cache lookup for %s: %w", doc.Id, err)
		}
	}

	if len(missTexts) > 0 {
		if err := e.embedMisses(ctx, docs, fingerprints, vectors, missIdx, missTexts); err != nil {
			return err
		}
	}

	// Resolve the matrix dimension, then force out any cached row that
	// disagrees with it (possible when the dimension was unknown during the
	// lookup pass).
	dim := pinned
	if len(missIdx) > 0 {
		dim = len(vectors[missIdx[0]])
	} else if dim == 0 && len(docs) > 0 {
		dim = len(vectors[0])
	}

	var staleIdx []int
	var staleTexts []string
	for i, vec := range vectors {
		if len(vec) != dim {
			e.monitor.CacheInvalidated(docs[i].Id)
			staleIdx = append(staleIdx, i)
			staleTexts = append(staleTexts, core.CleanText(docs[i].Text))
		}
	}
	if len(staleTexts) > 0 {
		if err := e.embedMisses(ctx, docs, fingerprints, vectors, staleIdx, staleTexts); err != nil {
			return err
		}
		for _, i := range staleIdx {
			if len(vectors[i]) != dim {
				return fmt.Errorf("%w: document %s has dimension %d, matrix has %d",
					ErrDimensionMismatch, docs[i].Id, len(vectors[i]), dim)
			}
		}
	}

	rows := make([]core.DocVector, len(docs))
	normalized := ai.NormalizeVectors(vectors)
	for i, doc := range docs {
		rows[i] = core.DocVector{DocId: doc.Id, Vector: normalized[i]}
	}

	e.mu.Lock()
	e.pending = rows
	e.dim = dim
	e.state = StateEmbeddingsReady
	e.mu.Unlock()

	e.monitor.Finish(rows)
	e.logger.Info("embeddings ready", "docs", len(docs), "embedded", len(missTexts)+len(staleTexts), "dimension", dim)
	return nil
}

// embedMisses runs one batched embedder call for the given documents and
// writes each new vector back to the cache under the fingerprint that was
// current when the batch was assembled.
func (e *Engine) embedMisses(ctx context.Context, docs []*core.Document, fingerprints []string, vectors [][]float32, missIdx []int, missTexts []string) error {
	embedded, err := e.embedder.EmbedTexts(ctx, missTexts)
	if err != nil {
		e.logger.Error("error generating embeddings", "count", len(missTexts), "err", err)
		return fmt.Errorf("embedding %d documents: %w", len(missTexts), err)
	}
	if len(embedded) != len(missTexts) {
		return fmt.Errorf("%w: expected %d, received %d", ErrEmbeddingCount, len(missTexts), len(embedded))
	}

	for j, i := range missIdx {
		if err := e.cache.Save(ctx, docs[i].Id, fingerprints[i], embedded[j]); err != nil {
			return fmt.Errorf("caching embedding for %s: %w", docs[i].Id, err)
		}
		vectors[i] = embedded[j]
	}
	e.monitor.Embedded(len(missIdx))
	return nil
}

// BuildIndex builds the configured ranking strategy from the assembled rows
// and publishes the new snapshot. Building the exact-scan strategy is
// effectively free; the flat index inserts all rows once here.
func (e *Engine) BuildIndex() error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.pending == nil {
		if e.docs == nil {
			return ErrNoDocuments
		}
		return fmt.Errorf("%w: embeddings not built", ErrNotReady)
	}

	if err := e.strategy.Build(e.pending); err != nil {
		return err
	}

	byID := make(map[string]*core.Document, len(e.docs))
	for _, doc := range e.docs {
		byID[doc.Id] = doc
	}
	e.current = &snapshot{
		order:    e.docs,
		byID:     byID,
		rows:     e.pending,
		strategy: e.strategy,
	}
	e.state = StateReady
	return nil
}

// Build composes the pipeline: documents are loaded from dir unless already
// loaded, embeddings are derived from cache or model, and the index is
// built. Calling Build again is safe and re-derives everything from the
// current cache and document state; with an unchanged corpus the second run
// makes no embedder calls.
func (e *Engine) Build(ctx context.Context, dir string) error {
	if e.State() == StateEmpty {
		if err := e.LoadDocuments(ctx, dir); err != nil {
			return err
		}
	}
	if err := e.BuildEmbeddings(ctx); err != nil {
		return err
	}
	return e.BuildIndex()
}

// Rows returns the built embedding rows of the served snapshot.
// Returns nil before the first successful build.
func (e *Engine) Rows() []core.DocVector {
	e.mu.RLock()
	defer e.mu.RUnlock()
	if e.current == nil {
		return nil
	}
	return e.current.rows
}

// Search embeds the query through the same normalization path as the corpus
// and returns up to topK hits ranked by cosine similarity. topK is clamped
// to the corpus size.
func (e *Engine) Search(ctx context.Context, query string, topK int) ([]*core.SearchResult, error) {
	return e.search(ctx, query, topK, false)
}

// SearchWithExplanation is Search with a keyword-overlap explanation
// attached to every hit. The explanation is descriptive metadata computed
// after ranking is final; it never alters the order.
func (e *Engine) SearchWithExplanation(ctx context.Context, query string, topK int) ([]*core.SearchResult, error) {
	return e.search(ctx, query, topK, true)
}

func (e *Engine) search(ctx context.Context, query string, topK int, explain bool) ([]*core.SearchResult, error) {
	if err := core.ValidateQuery(query, topK); err != nil {
		return nil, err
	}

	e.mu.RLock()
	snap := e.current
	e.mu.RUnlock()
	if snap == nil {
		return nil, ErrNotReady
	}

	if len(snap.order) == 0 {
		return []*core.SearchResult{}, nil
	}
	if topK > len(snap.order) {
		topK = len(snap.order)
	}

	embedding, err := e.embedder.EmbedText(ctx, query)
	if err != nil {
		e.logger.Error("error generating embedding for query", "query", query, "err", err)
		return nil, err
	}
	embedding = ai.NormalizeVector(embedding)

	matches, err := snap.strategy.Search(embedding, topK)
	if err != nil {
		return nil, err
	}

	results := make([]*core.SearchResult, 0, len(matches))
	for _, match := range matches {
		doc, ok := snap.byID[match.DocId]
		if !ok {
			// The index returned an id the document list doesn't know.
			// That can only happen if the two drifted apart, which is a
			// programming defect, not a user error.
			return nil, fmt.Errorf("%w: %s", ErrDocNotFound, match.DocId)
		}

		result := &core.SearchResult{
			DocId:   match.DocId,
			Score:   match.Score,
			Preview: docstore.Preview(doc, e.previewLen),
		}
		if explain {
			result.Explanation = Explain(query, doc)
		}
		results = append(results, result)
	}
	return results, nil
}
