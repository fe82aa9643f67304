package embedding

import (
	"context"
	"crypto/sha256"
	"encoding/binary"
)

// MockClient is a deterministic offline embedder for tests and local
// development without an encoder server. Vectors are derived from a hash
// of the input text, so equal texts always embed identically.
type MockClient struct {
	dimension int
}

// NewMockClient creates a mock embedder with the given dimension.
func NewMockClient(dimension int) *MockClient {
	if dimension <= 0 {
		dimension = 384
	}
	return &MockClient{dimension: dimension}
}

// Embed generates hash-derived unit vectors for the given texts.
func (c *MockClient) Embed(_ context.Context, texts []string) ([][]float32, error) {
	embeddings := make([][]float32, len(texts))
	for i, text := range texts {
		vec := make([]float32, c.dimension)
		seed := sha256.Sum256([]byte(text))
		for j := range vec {
			var buf [12]byte
			copy(buf[:8], seed[:8])
			binary.LittleEndian.PutUint32(buf[8:], uint32(j))
			h := sha256.Sum256(buf[:])
			// Map the first 8 hash bytes onto [-1, 1).
			u := binary.LittleEndian.Uint64(h[:8])
			vec[j] = float32(int64(u)) / float32(1<<63)
		}
		embeddings[i] = L2Normalize(vec)
	}
	return embeddings, nil
}

// EmbedSingle generates a mock embedding for a single text.
func (c *MockClient) EmbedSingle(ctx context.Context, text string) ([]float32, error) {
	embeddings, err := c.Embed(ctx, []string{text})
	if err != nil {
		return nil, err
	}
	return embeddings[0], nil
}

// Model returns the mock model name.
func (c *MockClient) Model() string { return "mock-embedding-model" }

// Dimension returns the embedding dimension.
func (c *MockClient) Dimension() int { return c.dimension }

var _ Embedder = (*MockClient)(nil)
