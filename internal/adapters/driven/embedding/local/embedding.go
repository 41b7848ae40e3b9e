// Package local provides a deterministic, network-free embedding service.
//
// It exists so the engine is fully testable and operable without any
// external provider: the same text always maps to the same vector, and
// every component lies in [0, 1]. The vectors carry no real semantics;
// they only give cosine search something stable to rank.
package local

import (
	"context"
	"math"

	"github.com/helix-labs/docqa-cli/internal/core/ports/driven"
)

// Ensure EmbeddingService implements the interface.
var _ driven.EmbeddingService = (*EmbeddingService)(nil)

// DefaultDimensions matches the OpenAI text-embedding-3-small vector size
// so local and remote vectors stay comparable in one store.
const DefaultDimensions = 1536

// EmbeddingService generates deterministic pseudo-embeddings.
type EmbeddingService struct {
	dimensions int
}

// NewEmbeddingService creates a local embedding service.
// A non-positive dimensions value falls back to DefaultDimensions.
func NewEmbeddingService(dimensions int) *EmbeddingService {
	if dimensions <= 0 {
		dimensions = DefaultDimensions
	}
	return &EmbeddingService{dimensions: dimensions}
}

// Embed generates the deterministic vector for text.
//
// The seed is the sum of the text's Unicode code points; component i is
// sin(seed*(i+1))*0.5+0.5. Token usage is approximated as one token per
// four bytes, rounded up.
func (s *EmbeddingService) Embed(_ context.Context, text string) (driven.Embedding, error) {
	var seed float64
	for _, r := range text {
		seed += float64(r)
	}

	vector := make([]float32, s.dimensions)
	for i := range vector {
		vector[i] = float32(math.Sin(seed*float64(i+1))*0.5 + 0.5)
	}

	return driven.Embedding{
		Vector: vector,
		Tokens: (len(text) + 3) / 4,
	}, nil
}

// Dimensions returns the embedding vector size.
func (s *EmbeddingService) Dimensions() int {
	return s.dimensions
}

// ModelName returns the name of the embedding model being used.
func (s *EmbeddingService) ModelName() string {
	return "local-deterministic"
}
