package searchit

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/poiesic/searchit/ai/mock"
	"github.com/poiesic/searchit/search"
)

func writeTestCorpus(t *testing.T, docs map[string]string) string {
	t.Helper()
	dir := t.TempDir()
	for name, text := range docs {
		err := os.WriteFile(filepath.Join(dir, name), []byte(text), 0644)
		require.NoError(t, err)
	}
	return dir
}

func TestNewService(t *testing.T) {
	t.Run("create with defaults", func(t *testing.T) {
		cachePath := filepath.Join(t.TempDir(), "cache")
		svc, err := NewService(cachePath, WithEmbedder(mock.NewMockEmbedder()))
		require.NoError(t, err)
		require.NotNil(t, svc)
		defer svc.Close()

		assert.NotNil(t, svc.Engine())
		assert.Equal(t, search.StateEmpty, svc.Engine().State())
	})

	t.Run("create with file cache", func(t *testing.T) {
		cachePath := filepath.Join(t.TempDir(), "cache")
		svc, err := NewService(cachePath, WithFileCache(), WithEmbedder(mock.NewMockEmbedder()))
		require.NoError(t, err)
		require.NotNil(t, svc)
		defer svc.Close()

		// File cache stores records as plain files in the directory.
		info, err := os.Stat(cachePath)
		require.NoError(t, err)
		assert.True(t, info.IsDir())
	})

	t.Run("error with invalid cache path", func(t *testing.T) {
		tmpFile := filepath.Join(t.TempDir(), "not_a_dir")
		err := os.WriteFile(tmpFile, []byte("test"), 0644)
		require.NoError(t, err)

		svc, err := NewService(tmpFile, WithEmbedder(mock.NewMockEmbedder()))
		assert.Error(t, err)
		assert.Nil(t, svc)
	})
}

func TestService_BuildAndSearch(t *testing.T) {
	ctx := context.Background()
	dataDir := writeTestCorpus(t, map[string]string{
		"alpha.txt": "the quick brown fox",
		"beta.txt":  "jumps over the lazy dog",
		"gamma.txt": "an entirely different subject",
	})

	monitor := &search.CountingBuildMonitor{}
	cachePath := filepath.Join(t.TempDir(), "cache")
	svc, err := NewService(cachePath,
		WithEmbedder(mock.NewMockEmbedder()),
		WithBuildMonitor(monitor),
		WithPreviewLength(64),
	)
	require.NoError(t, err)
	defer svc.Close()

	err = svc.Build(ctx, dataDir)
	require.NoError(t, err)
	assert.Equal(t, search.StateReady, svc.Engine().State())
	assert.Equal(t, 3, monitor.Docs)
	assert.Equal(t, 3, monitor.Misses)

	results, err := svc.Search(ctx, "the quick brown fox", 2)
	require.NoError(t, err)
	require.Len(t, results, 2)
	assert.Equal(t, "alpha", results[0].DocId)

	explained, err := svc.SearchWithExplanation(ctx, "the quick brown fox", 1)
	require.NoError(t, err)
	require.Len(t, explained, 1)
	require.NotNil(t, explained[0].Explanation)
	assert.Contains(t, explained[0].Explanation.MatchedKeywords, "quick")
}

func TestService_FlatIndex(t *testing.T) {
	ctx := context.Background()
	dataDir := writeTestCorpus(t, map[string]string{
		"one.txt": "first document body",
		"two.txt": "second document body",
	})

	cachePath := filepath.Join(t.TempDir(), "cache")
	svc, err := NewService(cachePath,
		WithEmbedder(mock.NewMockEmbedder()),
		WithFlatIndex(),
	)
	require.NoError(t, err)
	defer svc.Close()

	require.NoError(t, svc.Build(ctx, dataDir))

	results, err := svc.Search(ctx, "first document body", 1)
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "one", results[0].DocId)
}

func TestService_CacheReuseAcrossInstances(t *testing.T) {
	ctx := context.Background()
	dataDir := writeTestCorpus(t, map[string]string{
		"doc.txt": "stable cached content",
	})
	cachePath := filepath.Join(t.TempDir(), "cache")

	embedder := mock.NewMockEmbedder()
	svc, err := NewService(cachePath, WithEmbedder(embedder))
	require.NoError(t, err)
	require.NoError(t, svc.Build(ctx, dataDir))
	require.NoError(t, svc.Close())
	firstCalls := embedder.CallCount()
	require.Greater(t, firstCalls, 0)

	monitor := &search.CountingBuildMonitor{}
	embedder2 := mock.NewMockEmbedder()
	svc2, err := NewService(cachePath,
		WithEmbedder(embedder2),
		WithBuildMonitor(monitor),
	)
	require.NoError(t, err)
	defer svc2.Close()

	require.NoError(t, svc2.Build(ctx, dataDir))
	assert.Equal(t, 1, monitor.Hits)
	assert.Equal(t, 0, monitor.Misses)
	assert.Equal(t, 0, embedder2.CallCount())
}

func TestService_Close(t *testing.T) {
	cachePath := filepath.Join(t.TempDir(), "cache")
	svc, err := NewService(cachePath, WithEmbedder(mock.NewMockEmbedder()))
	require.NoError(t, err)

	assert.NoError(t, svc.Close())
}
