package index

import "github.com/poiesic/searchit/core"

// Match is a single ranked hit from a similarity search.
type Match struct {
	DocId string
	Score float32
}

// Strategy ranks unit-normalized query vectors against a built set of
// unit-normalized document rows. Both shipped strategies are exact: for the
// same rows and query they produce the same ranking, so the choice is a
// construction-time configuration rather than a behavioral one.
//
// Build atomically replaces any previously built rows. Implementations are
// safe for concurrent use: a Search racing a Build observes either the old
// rows or the new ones, never a mix.
type Strategy interface {
	// Build indexes the rows. All rows must share one dimension.
	Build(rows []core.DocVector) error

	// Search returns up to topK matches ordered by descending score, ties
	// broken by original row order. topK larger than the row count returns
	// every row. The query dimension must match the built rows.
	Search(query []float32, topK int) ([]Match, error)
}

// dotProduct calculates the dot product of two vectors.
// For unit-normalized vectors this equals their cosine similarity.
func dotProduct(a, b []float32) float32 {
	var sum float32
	minLen := len(a)
	if len(b) < minLen {
		minLen = len(b)
	}
	for i := 0; i < minLen; i++ {
		sum += a[i] * b[i]
	}
	return sum
}
