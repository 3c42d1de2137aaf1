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


// Package docstore loads corpus documents from a directory of UTF-8 text
// files, one document per file.
//
// Document ids are filename stems and are assigned in lexicographic
// filename order regardless of read concurrency, so the same directory
// always yields the same corpus in the same order. Decoding problems are
// tolerated by dropping invalid bytes; a file that cannot be read at all
// fails the load.
package docstore
