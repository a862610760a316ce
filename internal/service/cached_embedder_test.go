package service

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type countingEmbedder struct {
	mu    sync.Mutex
	calls int
	err   error
}

func (c *countingEmbedder) CreateEmbedding(_ context.Context, text string) ([]float32, error) {
	c.mu.Lock()
	c.calls++
	c.mu.Unlock()

	if c.err != nil {
		return nil, c.err
	}

	return []float32{float32(len(text)), 1}, nil
}

func TestCachedEmbedder(t *testing.T) {
	ctx := context.Background()

	t.Run("repeated text hits the cache", func(t *testing.T) {
		inner := &countingEmbedder{}
		embedder, err := NewCachedEmbedder(inner, 8)
		require.NoError(t, err)

		first, err := embedder.CreateEmbedding(ctx, "hello")
		require.NoError(t, err)

		second, err := embedder.CreateEmbedding(ctx, "hello")
		require.NoError(t, err)

		assert.Equal(t, first, second)
		assert.Equal(t, 1, inner.calls)
	})

	t.Run("distinct texts each call upstream", func(t *testing.T) {
		inner := &countingEmbedder{}
		embedder, err := NewCachedEmbedder(inner, 8)
		require.NoError(t, err)

		_, err = embedder.CreateEmbedding(ctx, "a")
		require.NoError(t, err)
		_, err = embedder.CreateEmbedding(ctx, "bb")
		require.NoError(t, err)

		assert.Equal(t, 2, inner.calls)
	})

	t.Run("errors are not cached", func(t *testing.T) {
		inner := &countingEmbedder{err: errors.New("api down")}
		embedder, err := NewCachedEmbedder(inner, 8)
		require.NoError(t, err)

		_, err = embedder.CreateEmbedding(ctx, "hello")
		require.Error(t, err)

		inner.err = nil

		_, err = embedder.CreateEmbedding(ctx, "hello")
		require.NoError(t, err)
		assert.Equal(t, 2, inner.calls)
	})

	t.Run("zero size disables caching", func(t *testing.T) {
		inner := &countingEmbedder{}
		embedder, err := NewCachedEmbedder(inner, 0)
		require.NoError(t, err)

		_, err = embedder.CreateEmbedding(ctx, "hello")
		require.NoError(t, err)
		_, err = embedder.CreateEmbedding(ctx, "hello")
		require.NoError(t, err)

		assert.Equal(t, 2, inner.calls)
	})

	t.Run("concurrent identical lookups collapse to one upstream call", func(t *testing.T) {
		inner := &countingEmbedder{}
		embedder, err := NewCachedEmbedder(inner, 8)
		require.NoError(t, err)

		const goroutines = 16

		var wg sync.WaitGroup

		for range goroutines {
			wg.Add(1)

			go func() {
				defer wg.Done()

				_, err := embedder.CreateEmbedding(ctx, "same text")
				assert.NoError(t, err)
			}()
		}

		wg.Wait()

		// Singleflight guarantees at most a handful of upstream calls; with the
		// cache populated after the first, this stays well below fan-out.
		assert.Less(t, inner.calls, goroutines)
	})
}
