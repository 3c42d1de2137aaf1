package docstore

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/poiesic/searchit/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeCorpus(t *testing.T, files map[string]string) string {
	t.Helper()
	dir := t.TempDir()
	for name, body := range files {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(body), 0644))
	}
	return dir
}

func TestStore_Load(t *testing.T) {
	dir := writeCorpus(t, map[string]string{
		"doc_002.txt": "second document",
		"doc_001.txt": "first document body",
		"doc_003.txt": "third",
		"notes.md":    "ignored, wrong extension",
	})

	store, err := New()
	require.NoError(t, err)

	docs, err := store.Load(context.Background(), dir)
	require.NoError(t, err)
	require.Len(t, docs, 3)

	// Lexicographic order regardless of creation order.
	assert.Equal(t, "doc_001", docs[0].Id)
	assert.Equal(t, "doc_002", docs[1].Id)
	assert.Equal(t, "doc_003", docs[2].Id)

	assert.Equal(t, "first document body", docs[0].Text)
	assert.Equal(t, 3, docs[0].WordCount)
}

func TestStore_LoadEmptyDirectory(t *testing.T) {
	store, err := New()
	require.NoError(t, err)

	docs, err := store.Load(context.Background(), t.TempDir())
	require.NoError(t, err)
	assert.Empty(t, docs)
}

func TestStore_LoadInvalidUTF8(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "doc_001.txt"), []byte("valid \xff\xfe bytes"), 0644))

	store, err := New()
	require.NoError(t, err)

	docs, err := store.Load(context.Background(), dir)
	require.NoError(t, err)
	require.Len(t, docs, 1)
	assert.Equal(t, "valid  bytes", docs[0].Text)
}

func TestStore_CustomPattern(t *testing.T) {
	dir := writeCorpus(t, map[string]string{
		"a.md":  "markdown doc",
		"b.txt": "text doc",
	})

	store, err := New(WithPattern("*.md"))
	require.NoError(t, err)

	docs, err := store.Load(context.Background(), dir)
	require.NoError(t, err)
	require.Len(t, docs, 1)
	assert.Equal(t, "a", docs[0].Id)
}

func TestStore_Options(t *testing.T) {
	t.Run("empty pattern rejected", func(t *testing.T) {
		_, err := New(WithPattern(""))
		assert.ErrorIs(t, err, ErrEmptyPattern)
	})

	t.Run("pool size floor of one", func(t *testing.T) {
		store, err := New(WithPoolSize(-5))
		require.NoError(t, err)
		assert.Equal(t, 1, store.poolSize)
	})

	t.Run("nil logger falls back to default", func(t *testing.T) {
		_, err := New(WithLogger(nil))
		require.NoError(t, err)
	})
}

func TestStore_LoadCancelled(t *testing.T) {
	dir := writeCorpus(t, map[string]string{"doc_001.txt": "body"})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	store, err := New()
	require.NoError(t, err)

	_, err = store.Load(ctx, dir)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestPreview(t *testing.T) {
	tests := []struct {
		name     string
		text     string
		n        int
		expected string
	}{
		{"short text unchanged", "short", 200, "short"},
		{"truncation adds ellipsis", strings.Repeat("a", 10), 4, "aaaa..."},
		{"newlines become spaces", "line one\nline two", 200, "line one line two"},
		{"crlf becomes a single space", "line one\r\nline two", 200, "line one line two"},
		{"bare carriage return becomes a space", "line one\rline two", 200, "line one line two"},
		{"exact length is not truncated", "abcd", 4, "abcd"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc := core.NewDocument("doc", tt.text)
			assert.Equal(t, tt.expected, Preview(doc, tt.n))
		})
	}
}
