package driven

import (
	"context"

	"github.com/helix-labs/docqa-cli/internal/core/domain"
)

// VectorStore keeps chunk records keyed by chunk ID.
//
// The store preserves insertion order: All returns chunks in the order
// they were first upserted, which the retriever relies on for stable
// tie-breaking between equal scores. An O(n) scan at query time is the
// intended access pattern at this scale; there is no ANN index.
type VectorStore interface {
	// Upsert inserts or replaces a chunk by its ID. Replacing keeps the
	// chunk's original position in the scan order.
	Upsert(ctx context.Context, chunk domain.Chunk) error

	// DeleteByDocument removes every chunk owned by the given document.
	// Removing chunks for an unknown document is not an error.
	DeleteByDocument(ctx context.Context, documentID string) error

	// Clear removes all chunks.
	Clear(ctx context.Context) error

	// All returns a snapshot of every stored chunk in insertion order.
	All(ctx context.Context) ([]domain.Chunk, error)

	// CountDocuments returns the number of distinct document IDs that own
	// at least one chunk.
	CountDocuments(ctx context.Context) (int, error)
}
