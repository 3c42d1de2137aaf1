package core

import (
	"strings"
	"time"
)

// Document is a single corpus document loaded from disk.
// It is immutable once loaded; its Id is derived from the source filename.
type Document struct {
	Id        string
	Text      string
	WordCount int
}

// NewDocument creates a Document, computing the word count from the raw text.
func NewDocument(id, text string) *Document {
	return &Document{
		Id:        id,
		Text:      text,
		WordCount: len(strings.Fields(text)),
	}
}

// CacheRecord is a persisted embedding keyed by document id.
// A record is valid for a document only while its Fingerprint matches the
// fingerprint of the document's current cleaned text.
type CacheRecord struct {
	DocId       string
	Fingerprint string
	Vector      []float32
	UpdatedAt   time.Time
}

// DocVector pairs a document id with its embedding row.
// Keeping the id and vector together makes the row-to-document alignment
// explicit instead of relying on two parallel slices staying in sync.
type DocVector struct {
	DocId  string
	Vector []float32
}

// Explanation carries heuristic relevance signals attached to a search hit.
// These are descriptive metadata; they never alter the similarity ranking.
type Explanation struct {
	MatchedKeywords []string
	OverlapRatio    float64
	LengthNorm      float64
}

// SearchResult is a single ranked hit for a query.
type SearchResult struct {
	DocId       string
	Score       float32
	Preview     string
	Explanation *Explanation
}
