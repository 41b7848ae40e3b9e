package driven

import (
	"context"

	"github.com/helix-labs/docqa-cli/internal/core/domain"
)

// DocumentStore persists documents.
type DocumentStore interface {
	// Save stores or updates a document.
	Save(ctx context.Context, doc *domain.Document) error

	// Get retrieves a document by ID. Returns domain.ErrNotFound when the
	// ID is unknown.
	Get(ctx context.Context, id string) (*domain.Document, error)

	// Delete removes a document. Returns domain.ErrNotFound when the ID is
	// unknown.
	Delete(ctx context.Context, id string) error

	// List returns all documents in unspecified order.
	List(ctx context.Context) ([]domain.Document, error)

	// Clear removes all documents.
	Clear(ctx context.Context) error
}

// HistoryStore persists query history records.
type HistoryStore interface {
	// Save stores a new history record.
	Save(ctx context.Context, rec *domain.QueryRecord) error

	// List returns all records, most recent first.
	List(ctx context.Context) ([]domain.QueryRecord, error)

	// Rate sets the user feedback rating (1-5) on an existing record.
	// Returns domain.ErrNotFound when the ID is unknown.
	Rate(ctx context.Context, id string, rating int) error
}
