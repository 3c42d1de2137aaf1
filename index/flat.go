package index

import (
	"fmt"
	"sync"

	"github.com/poiesic/searchit/core"
)

// FlatIPIndex is a flat inner-product index: rows are inserted once at
// build time into a contiguous matrix and queries select the top-k by a
// single pass with a bounded candidate list. It is exact, not approximate,
// and must rank identically to ExactScan.
type FlatIPIndex struct {
	mu     sync.RWMutex
	ids    []string
	matrix []float32
	dim    int
	built  bool
}

var _ Strategy = (*FlatIPIndex)(nil)

// NewFlatIPIndex creates a flat inner-product index strategy.
func NewFlatIPIndex() *FlatIPIndex {
	return &FlatIPIndex{}
}

// Build inserts all rows into the index, replacing prior contents
// atomically, so a search racing a rebuild sees either the old matrix or
// the new one.
func (f *FlatIPIndex) Build(rows []core.DocVector) error {
	dim := 0
	if len(rows) > 0 {
		dim = len(rows[0].Vector)
	}

	ids := make([]string, len(rows))
	matrix := make([]float32, 0, len(rows)*dim)
	for i, row := range rows {
		if len(row.Vector) != dim {
			return fmt.Errorf("%w: row %d has dimension %d, want %d", ErrDimensionMismatch, i, len(row.Vector), dim)
		}
		ids[i] = row.DocId
		matrix = append(matrix, row.Vector...)
	}

	f.mu.Lock()
	f.ids = ids
	f.matrix = matrix
	f.dim = dim
	f.built = true
	f.mu.Unlock()
	return nil
}

// Search computes inner products over the matrix in one pass and keeps the
// best topK candidates. Equal scores keep the earlier row first, matching
// ExactScan's tie-breaking.
func (f *FlatIPIndex) Search(query []float32, topK int) ([]Match, error) {
	f.mu.RLock()
	ids, matrix, dim, built := f.ids, f.matrix, f.dim, f.built
	f.mu.RUnlock()

	if !built {
		return nil, ErrNotBuilt
	}
	if topK < 1 {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidTopK, topK)
	}
	if len(ids) > 0 && len(query) != dim {
		return nil, fmt.Errorf("%w: query has dimension %d, index has %d", ErrDimensionMismatch, len(query), dim)
	}

	if topK > len(ids) {
		topK = len(ids)
	}

	// Bounded insertion keeps best at the front; rows scanned in order, so a
	// new candidate is placed after existing equal scores.
	best := make([]Match, 0, topK)
	for i, id := range ids {
		score := dotProduct(query, matrix[i*dim:(i+1)*dim])
		if len(best) == topK && topK > 0 && score <= best[topK-1].Score {
			continue
		}

		pos := len(best)
		for pos > 0 && best[pos-1].Score < score {
			pos--
		}
		if len(best) < topK {
			best = append(best, Match{})
		}
		copy(best[pos+1:], best[pos:len(best)-1])
		best[pos] = Match{DocId: id, Score: score}
	}
	return best, nil
}
