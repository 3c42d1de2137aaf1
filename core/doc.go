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


// Package core contains the domain model for searchit.
//
// It defines the entities shared across the system (Document, CacheRecord,
// DocVector, SearchResult), the canonical text cleaning and fingerprinting
// used for cache invalidation, and boundary validation for search requests.
//
// The package has no dependencies on storage, AI services, or orchestration;
// all other packages depend on it.
package core
