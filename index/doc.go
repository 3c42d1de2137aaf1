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


// Package index provides similarity ranking strategies over unit-normalized
// embedding rows.
//
// Two interchangeable strategies implement the Strategy interface:
//
//   - ExactScan: brute-force dot-product scan with a stable sort
//   - FlatIPIndex: flat inner-product index built once, queried with a
//     bounded top-k selection
//
// Both are exact; FlatIPIndex exists as the build-once ranking structure,
// not as an approximate-nearest-neighbor index. Since rows and queries are
// unit-normalized upstream, the inner product equals cosine similarity and
// scores fall in [-1, 1].
package index
