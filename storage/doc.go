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


// Package storage provides the embedding cache abstraction for searchit.
//
// The EmbeddingCache interface decouples the search pipeline from the
// backing technology. Two implementations ship with the module:
//
//   - storage/badger: an embedded BadgerDB key-value store with binary
//     record encoding (mus-go)
//   - storage/flatfile: one JSON file per document id, matching a plain
//     cache directory layout that is easy to inspect by hand
//
// # Invalidation Contract
//
// A cached vector is valid only while the stored fingerprint equals the
// fingerprint of the document's current cleaned text. Everything that is
// not a valid hit — absence, a stale fingerprint, a corrupt or truncated
// record — surfaces as ErrNotFound and routes the caller to recomputation.
// Cache failures are never fatal.
//
// # Constructor Return Type Pattern
//
// Public constructors return the storage.EmbeddingCache interface to
// prevent coupling to a specific backend:
//
//	cache, err := badger.NewCache(path)
//	cache, err := flatfile.NewCache(dir)
//
// # Thread Safety
//
// Implementations must be safe for concurrent use. Saves for different
// document ids are independent; a save for a single id is one atomic unit.
package storage
