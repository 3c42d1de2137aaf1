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


package core

import (
	"fmt"
	"strings"
)

// ValidateQuery validates a search request according to the query surface
// contract.
//
// Validation rules:
//   - query must not be empty or whitespace-only
//   - topK must be >= 1
//
// NOT validated here:
//   - topK against the corpus size (the engine clamps it instead)
func ValidateQuery(query string, topK int) error {
	if strings.TrimSpace(query) == "" {
		return fmt.Errorf("%w: %w", ErrInvalidQuery, ErrEmptyQuery)
	}
	if topK < 1 {
		return fmt.Errorf("%w: %w: got %d", ErrInvalidQuery, ErrInvalidTopK, topK)
	}
	return nil
}
