// Package embedding defines the embedding capability consumed by the core,
// with a deterministic mock for tests.
package embedding

import "context"

// Client turns text into a fixed-length vector.
// Implemented by the OpenAI client and by Mock for tests.
type Client interface {
	CreateEmbedding(ctx context.Context, text string) ([]float32, error)
}
