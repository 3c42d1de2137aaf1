package index

import (
	"fmt"
	"sort"
	"sync"

	"github.com/poiesic/searchit/core"
)

// ExactScan ranks by computing the dot product of the query against every
// row. Brute force, globally correct, no build cost.
type ExactScan struct {
	mu    sync.RWMutex
	rows  []core.DocVector
	dim   int
	built bool
}

var _ Strategy = (*ExactScan)(nil)

// NewExactScan creates an exact brute-force ranking strategy.
func NewExactScan() *ExactScan {
	return &ExactScan{}
}

// Build retains the rows for scanning. Replaces prior rows atomically, so
// a search racing a rebuild sees either the old rows or the new ones.
func (s *ExactScan) Build(rows []core.DocVector) error {
	dim := 0
	for i, row := range rows {
		if i == 0 {
			dim = len(row.Vector)
			continue
		}
		if len(row.Vector) != dim {
			return fmt.Errorf("%w: row %d has dimension %d, want %d", ErrDimensionMismatch, i, len(row.Vector), dim)
		}
	}

	s.mu.Lock()
	s.rows = rows
	s.dim = dim
	s.built = true
	s.mu.Unlock()
	return nil
}

// Search scans every row and returns the topK highest scores, descending,
// ties kept in original document order.
func (s *ExactScan) Search(query []float32, topK int) ([]Match, error) {
	s.mu.RLock()
	rows, dim, built := s.rows, s.dim, s.built
	s.mu.RUnlock()

	if !built {
		return nil, ErrNotBuilt
	}
	if topK < 1 {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidTopK, topK)
	}
	if len(rows) > 0 && len(query) != dim {
		return nil, fmt.Errorf("%w: query has dimension %d, index has %d", ErrDimensionMismatch, len(query), dim)
	}

	matches := make([]Match, len(rows))
	for i, row := range rows {
		matches[i] = Match{DocId: row.DocId, Score: dotProduct(query, row.Vector)}
	}

	// Stable keeps original document order for equal scores.
	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].Score > matches[j].Score
	})

	if len(matches) > topK {
		matches = matches[:topK]
	}
	return matches, nil
}
