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


// Package search orchestrates the semantic search pipeline.
//
// The Engine composes the document store, embedding cache, embedder, and
// ranking strategy into an explicit build lifecycle:
//
//	Empty -> DocumentsLoaded -> EmbeddingsReady -> Ready
//
// Builds consult the cache per document fingerprint, batch every miss into
// a single embedder call, and publish an immutable snapshot only on
// success, so a failed rebuild never degrades the state being served.
// Queries run against the snapshot and may carry a keyword-overlap
// explanation as descriptive metadata.
//
// Engines are constructed per process and passed where needed; there is no
// package-level shared instance, so concurrent servers and tests each get
// isolated state.
package search
