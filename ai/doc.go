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


// Package ai provides abstractions for the embedding services used in
// searchit.
//
// The Embedder interface turns text into fixed-dimension float vectors. The
// engine and cache depend only on this abstraction, so the embedding model
// is swappable without touching the search pipeline.
//
// # Implementation Packages
//
//   - ai/openai: production implementation using OpenAI-compatible APIs
//   - ai/mock: test doubles for unit testing without external services
//
// Public constructors in implementation packages (openai.NewEmbedder) return
// the ai.Embedder interface to enforce abstraction. Test constructors
// (mock.NewMockEmbedder) return concrete types so tests can inject behavior
// and assert on call counts.
//
// The package also provides epsilon-safe vector normalization helpers.
// Query and corpus vectors must pass through the same normalization path for
// dot products to equal cosine similarity.
package ai
