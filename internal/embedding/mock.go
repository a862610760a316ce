package embedding

import (
	"context"
	"crypto/sha256"
	"fmt"

	"github.com/famring/hearth/pkg/embeddings"
)

// Mock implements Client for testing purposes.
// It generates deterministic embeddings based on the input text hash, so equal
// texts always embed identically and distinct texts almost never collide.
type Mock struct {
	dimensions int
}

// NewMock creates a mock embedding client with 1536 dimensions
// (matching text-embedding-3-small).
func NewMock() *Mock {
	return &Mock{dimensions: 1536}
}

// NewMockWithDimensions creates a mock client with custom dimensions.
func NewMockWithDimensions(dimensions int) *Mock {
	return &Mock{dimensions: dimensions}
}

// CreateEmbedding generates a deterministic unit vector from the text hash.
func (m *Mock) CreateEmbedding(_ context.Context, text string) ([]float32, error) {
	if text == "" {
		return nil, fmt.Errorf("text cannot be empty")
	}

	hash := sha256.Sum256([]byte(text))
	vec := make([]float32, m.dimensions)

	for i := 0; i < m.dimensions; i++ {
		// Use hash bytes cyclically, mapped into [-1, 1]
		byteIdx := i % len(hash)
		vec[i] = (float32(hash[byteIdx]) / 127.5) - 1.0
	}

	embeddings.NormalizeL2(vec)

	return vec, nil
}

var _ Client = (*Mock)(nil)
