// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package searchit

import (
	"context"
	"log/slog"

	"github.com/poiesic/searchit/ai"
	"github.com/poiesic/searchit/ai/openai"
	"github.com/poiesic/searchit/core"
	"github.com/poiesic/searchit/docstore"
	"github.com/poiesic/searchit/index"
	"github.com/poiesic/searchit/search"
	"github.com/poiesic/searchit/storage"
	"github.com/poiesic/searchit/storage/badger"
	"github.com/poiesic/searchit/storage/flatfile"
)

// Service wires the document store, embedding cache, embedder, and search
// engine into one unit with a shared lifecycle. One Service per process;
// close it when done.
type Service struct {
	cache    storage.EmbeddingCache
	embedder ai.Embedder
	engine   *search.Engine
	logger   *slog.Logger
}

// ServiceOption configures a Service.
type ServiceOption func(*serviceOptions)

type serviceOptions struct {
	aiConfig   *ai.Config
	embedder   ai.Embedder
	cache      storage.EmbeddingCache
	flatIndex  bool
	fileCache  bool
	monitor    search.BuildMonitor
	previewLen int
	logger     *slog.Logger
}

// WithAIConfig sets the embedding service configuration.
// Ignored when WithEmbedder supplies an embedder directly.
func WithAIConfig(cfg *ai.Config) ServiceOption {
	return func(o *serviceOptions) {
		o.aiConfig = cfg
	}
}

// WithEmbedder injects an embedder, bypassing the OpenAI-compatible client.
// Used by tests and by callers with their own embedding transport.
func WithEmbedder(embedder ai.Embedder) ServiceOption {
	return func(o *serviceOptions) {
		o.embedder = embedder
	}
}

// WithCache injects an embedding cache, bypassing cache construction.
// The Service takes ownership and closes it.
func WithCache(cache storage.EmbeddingCache) ServiceOption {
	return func(o *serviceOptions) {
		o.cache = cache
	}
}

// WithFlatIndex selects the flat inner-product index strategy instead of
// the default exact scan. Both are exact; the flat index pays its cost at
// build time.
func WithFlatIndex() ServiceOption {
	return func(o *serviceOptions) {
		o.flatIndex = true
	}
}

// WithFileCache stores cached embeddings as one JSON file per document in
// the cache directory instead of a BadgerDB database.
func WithFileCache() ServiceOption {
	return func(o *serviceOptions) {
		o.fileCache = true
	}
}

// WithBuildMonitor sets a monitor receiving build progress callbacks.
func WithBuildMonitor(monitor search.BuildMonitor) ServiceOption {
	return func(o *serviceOptions) {
		o.monitor = monitor
	}
}

// WithPreviewLength sets the result preview length in characters.
func WithPreviewLength(n int) ServiceOption {
	return func(o *serviceOptions) {
		o.previewLen = n
	}
}

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) ServiceOption {
	return func(o *serviceOptions) {
		o.logger = logger
	}
}

// NewService creates a Service with its embedding cache at cachePath.
func NewService(cachePath string, opts ...ServiceOption) (*Service, error) {
	options := &serviceOptions{
		aiConfig: ai.DefaultConfig(),
		logger:   slog.Default(),
	}
	for _, opt := range opts {
		opt(options)
	}
	if options.logger == nil {
		options.logger = slog.Default()
	}

	cache := options.cache
	if cache == nil {
		var err error
		if options.fileCache {
			cache, err = flatfile.NewCache(cachePath)
		} else {
			cache, err = badger.NewCache(cachePath)
		}
		if err != nil {
			return nil, err
		}
	}

	embedder := options.embedder
	if embedder == nil {
		var err error
		embedder, err = openai.NewEmbedder(options.aiConfig)
		if err != nil {
			cache.Close()
			return nil, err
		}
	}

	store, err := docstore.New(docstore.WithLogger(options.logger))
	if err != nil {
		cache.Close()
		return nil, err
	}

	var strategy index.Strategy = index.NewExactScan()
	if options.flatIndex {
		strategy = index.NewFlatIPIndex()
	}

	engineOpts := []search.Option{
		search.WithStrategy(strategy),
		search.WithLogger(options.logger),
	}
	if options.monitor != nil {
		engineOpts = append(engineOpts, search.WithBuildMonitor(options.monitor))
	}
	if options.previewLen > 0 {
		engineOpts = append(engineOpts, search.WithPreviewLength(options.previewLen))
	}

	engine, err := search.NewEngine(store, cache, embedder, engineOpts...)
	if err != nil {
		cache.Close()
		return nil, err
	}

	return &Service{
		cache:    cache,
		embedder: embedder,
		engine:   engine,
		logger:   options.logger,
	}, nil
}

// Close releases the service's resources.
func (s *Service) Close() error {
	if err := s.cache.Close(); err != nil {
		s.logger.Error("error closing embedding cache", "err", err)
		return err
	}
	return nil
}

// Engine exposes the underlying search engine for callers that drive the
// build phases individually.
func (s *Service) Engine() *search.Engine {
	return s.engine
}

// Build loads the corpus from dataDir (unless already loaded), derives
// embeddings from cache or model, and builds the index.
func (s *Service) Build(ctx context.Context, dataDir string) error {
	return s.engine.Build(ctx, dataDir)
}

// Search returns up to topK hits for the query.
func (s *Service) Search(ctx context.Context, query string, topK int) ([]*core.SearchResult, error) {
	return s.engine.Search(ctx, query, topK)
}

// SearchWithExplanation returns up to topK hits with keyword-overlap
// explanations attached.
func (s *Service) SearchWithExplanation(ctx context.Context, query string, topK int) ([]*core.SearchResult, error) {
	return s.engine.SearchWithExplanation(ctx, query, topK)
}
