// Package service exposes the AI core's operations to the surrounding
// application: question generation, assignment sampling, summaries, answer
// analysis and history access.
package service

import (
	"context"
	"fmt"

	lru "github.com/hashicorp/golang-lru/v2"
	"golang.org/x/sync/singleflight"

	"github.com/famring/hearth/internal/embedding"
)

// CachedEmbedder wraps an embedding client with an LRU keyed by input text and
// collapses concurrent lookups for the same text into one upstream call.
// Generation embeds the same base document for retrieval, seeding and storage;
// the cache turns those into a single API call.
type CachedEmbedder struct {
	inner embedding.Client
	cache *lru.Cache[string, []float32]
	group singleflight.Group
}

// NewCachedEmbedder creates a caching embedder. size <= 0 disables caching and
// returns a pass-through wrapper.
func NewCachedEmbedder(inner embedding.Client, size int) (*CachedEmbedder, error) {
	e := &CachedEmbedder{inner: inner}

	if size > 0 {
		cache, err := lru.New[string, []float32](size)
		if err != nil {
			return nil, fmt.Errorf("create embedding cache: %w", err)
		}

		e.cache = cache
	}

	return e, nil
}

var _ embedding.Client = (*CachedEmbedder)(nil)

// CreateEmbedding returns the cached vector for text, fetching at most once
// concurrently per distinct text. Returned slices are shared; callers must not
// mutate them.
func (e *CachedEmbedder) CreateEmbedding(ctx context.Context, text string) ([]float32, error) {
	if e.cache == nil {
		return e.inner.CreateEmbedding(ctx, text)
	}

	if vec, ok := e.cache.Get(text); ok {
		return vec, nil
	}

	result, err, _ := e.group.Do(text, func() (any, error) {
		vec, err := e.inner.CreateEmbedding(ctx, text)
		if err != nil {
			return nil, err
		}

		e.cache.Add(text, vec)

		return vec, nil
	})
	if err != nil {
		return nil, err
	}

	return result.([]float32), nil
}
