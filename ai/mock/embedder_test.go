package mock

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMockEmbedder_Deterministic(t *testing.T) {
	embedder := NewMockEmbedder()
	ctx := context.Background()

	first, err := embedder.EmbedText(ctx, "same text")
	require.NoError(t, err)
	second, err := embedder.EmbedText(ctx, "same text")
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Len(t, first, 384)
	assert.Equal(t, 2, embedder.CallCount())
}

func TestMockEmbedder_RecordsTexts(t *testing.T) {
	embedder := NewMockEmbedder()
	ctx := context.Background()

	_, err := embedder.EmbedText(ctx, "one")
	require.NoError(t, err)
	_, err = embedder.EmbedTexts(ctx, []string{"two", "three"})
	require.NoError(t, err)

	assert.Equal(t, []string{"one", "two", "three"}, embedder.EmbeddedTexts())

	embedder.Reset()
	assert.Zero(t, embedder.CallCount())
	assert.Empty(t, embedder.EmbeddedTexts())
}

func TestMockEmbedder_ConcurrentUse(t *testing.T) {
	embedder := NewMockEmbedder()
	ctx := context.Background()

	const goroutines = 8
	const callsEach = 25

	var wg sync.WaitGroup
	for g := 0; g < goroutines; g++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < callsEach; i++ {
				_, err := embedder.EmbedText(ctx, "concurrent text")
				assert.NoError(t, err)
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, goroutines*callsEach, embedder.CallCount())
	assert.Len(t, embedder.EmbeddedTexts(), goroutines*callsEach)
}
