package driving

import (
	"context"

	"github.com/helix-labs/docqa-cli/internal/core/domain"
)

// QueryService answers questions against the indexed corpus.
type QueryService interface {
	// Ask retrieves the most relevant sources for the query, synthesises a
	// grounded answer and records the exchange in history.
	// Returns domain.ErrInvalidInput for an empty query. Provider failures
	// degrade to the deterministic fallback and never fail the query.
	Ask(ctx context.Context, query string, topK int) (*domain.QueryAnswer, error)

	// History returns all recorded queries, most recent first.
	History(ctx context.Context) ([]domain.QueryRecord, error)

	// Rate sets user feedback (1-5) on a history record.
	Rate(ctx context.Context, id string, rating int) error
}
