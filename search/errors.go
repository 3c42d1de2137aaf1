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


package search

import "errors"

var (
	// ErrStoreRequired is returned when a document store is not provided.
	ErrStoreRequired = errors.New("document store required")

	// ErrCacheRequired is returned when an embedding cache is not provided.
	ErrCacheRequired = errors.New("embedding cache required")

	// ErrEmbedderRequired is returned when an embedder is not provided.
	ErrEmbedderRequired = errors.New("embedder required")

	// ErrNoDocuments indicates BuildEmbeddings was called before any
	// documents were loaded.
	ErrNoDocuments = errors.New("no documents loaded")

	// ErrNotReady indicates Search was called before a successful build.
	ErrNotReady = errors.New("engine not ready, build first")

	// ErrEmbeddingCount indicates the embedder returned a batch whose length
	// does not match the request.
	ErrEmbeddingCount = errors.New("embedding result count mismatch")

	// ErrDimensionMismatch indicates embedding rows of different dimensions
	// would have been mixed into one matrix.
	ErrDimensionMismatch = errors.New("embedding dimension mismatch")

	// ErrDocNotFound indicates a ranked document id could not be located in
	// the loaded document set. This is an internal invariant violation: the
	// index and the document list have drifted apart.
	ErrDocNotFound = errors.New("ranked document missing from loaded set")
)
