package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewDocument(t *testing.T) {
	tests := []struct {
		name      string
		id        string
		text      string
		wordCount int
	}{
		{"simple text", "doc_001", "three word text", 3},
		{"empty text", "doc_002", "", 0},
		{"newlines count as separators", "doc_003", "one\ntwo\nthree", 3},
		{"repeated whitespace", "doc_004", "a   b", 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc := NewDocument(tt.id, tt.text)
			assert.Equal(t, tt.id, doc.Id)
			assert.Equal(t, tt.text, doc.Text)
			assert.Equal(t, tt.wordCount, doc.WordCount)
		})
	}
}
