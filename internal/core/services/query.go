package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/helix-labs/docqa-cli/internal/core/domain"
	"github.com/helix-labs/docqa-cli/internal/core/ports/driven"
	"github.com/helix-labs/docqa-cli/internal/core/ports/driving"
	"github.com/helix-labs/docqa-cli/internal/logger"
)

// Ensure Query implements the interface.
var _ driving.QueryService = (*Query)(nil)

// Query answers questions against the indexed corpus and records every
// completed exchange in history.
type Query struct {
	retriever    *Retriever
	synthesizer  *Synthesizer
	historyStore driven.HistoryStore
}

// NewQuery creates the query service.
func NewQuery(retriever *Retriever, synthesizer *Synthesizer, historyStore driven.HistoryStore) *Query {
	return &Query{
		retriever:    retriever,
		synthesizer:  synthesizer,
		historyStore: historyStore,
	}
}

// Ask retrieves relevant sources, synthesises a grounded answer and
// records the exchange. Provider failures degrade to the deterministic
// fallback; only malformed input fails the query.
func (q *Query) Ask(ctx context.Context, query string, topK int) (*domain.QueryAnswer, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, fmt.Errorf("%w: query is empty", domain.ErrInvalidInput)
	}

	start := time.Now()

	sources, err := q.retriever.Search(ctx, query, topK)
	if err != nil {
		return nil, fmt.Errorf("retrieve: %w", err)
	}

	answer := q.synthesizer.Answer(ctx, query, sources)

	result := &domain.QueryAnswer{
		Answer:         answer,
		Sources:        sources,
		ProcessingTime: time.Since(start),
	}

	rec := &domain.QueryRecord{
		ID:        uuid.New().String(),
		Query:     query,
		Answer:    answer,
		Sources:   SourceTitles(sources),
		CreatedAt: time.Now().UTC(),
	}
	if err := q.historyStore.Save(ctx, rec); err != nil {
		// History is best-effort; a failed save must not fail the query.
		logger.Warn("Recording query history failed: %v", err)
	}

	logger.Info("Answered in %s with %d sources", result.ProcessingTime, len(sources))
	return result, nil
}

// History returns all recorded queries, most recent first.
func (q *Query) History(ctx context.Context) ([]domain.QueryRecord, error) {
	return q.historyStore.List(ctx)
}

// Rate sets user feedback on a history record.
func (q *Query) Rate(ctx context.Context, id string, rating int) error {
	if strings.TrimSpace(id) == "" {
		return fmt.Errorf("%w: record id is required", domain.ErrInvalidInput)
	}
	if rating < 1 || rating > 5 {
		return fmt.Errorf("%w: rating must be between 1 and 5", domain.ErrInvalidInput)
	}
	return q.historyStore.Rate(ctx, id, rating)
}
