package driven

import "context"

// Embedding is the result of embedding a single text.
type Embedding struct {
	// Vector is the fixed-length representation of the text. Every
	// component is a finite real number.
	Vector []float32

	// Tokens is the token count charged for the text. Remote adapters
	// report true provider usage; the local adapter approximates.
	Tokens int
}

// EmbeddingService generates vector embeddings from text.
//
// Implementations:
//   - openai: remote OpenAI-compatible API adapter
//   - local: deterministic, network-free fallback generator
//   - failover: composes a remote and a local adapter, degrading on failure
//
// All adapters wired into one engine must agree on Dimensions so that
// stored chunk vectors and query vectors stay comparable.
type EmbeddingService interface {
	// Embed generates a vector embedding for the given text.
	Embed(ctx context.Context, text string) (Embedding, error)

	// Dimensions returns the embedding vector size (e.g. 1536).
	Dimensions() int

	// ModelName returns the name of the embedding model being used.
	ModelName() string
}
