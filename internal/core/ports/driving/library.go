package driving

import (
	"context"

	"github.com/helix-labs/docqa-cli/internal/core/domain"
)

// UploadRequest carries a document payload into the library.
type UploadRequest struct {
	// ID is optional; when empty the library assigns one.
	ID string

	// Title is the human-readable title (required).
	Title string

	// Content is the raw uploaded bytes (required).
	Content []byte

	// FileType is the declared format tag ("txt", "md", "pdf", "docx").
	// When empty it is derived from the title's extension.
	FileType string
}

// Observer receives the full document list after every persisted state
// change, ordered by most-recently-updated first. Observers are invoked
// synchronously in subscription order and must not block.
type Observer func(documents []domain.Document)

// LibraryService owns the document lifecycle: upload, extraction,
// chunking, embedding, indexing, re-indexing and deletion.
//
// Indexing failures never escape as errors; they are captured on the
// returned Document as StatusError plus a message. Only validation
// failures (bad input, unsupported type) return an error, and those are
// rejected before any state mutation.
type LibraryService interface {
	// Upload accepts a new document and runs the indexing pipeline.
	Upload(ctx context.Context, req UploadRequest) (*domain.Document, error)

	// Update replaces a document's content (and optionally title) and
	// re-runs the indexing pipeline without changing identity.
	// Returns domain.ErrNotFound for an unknown ID.
	Update(ctx context.Context, id string, title string, content []byte) (*domain.Document, error)

	// Get retrieves a document by ID.
	Get(ctx context.Context, id string) (*domain.Document, error)

	// List returns all documents ordered by most-recently-updated first.
	List(ctx context.Context) ([]domain.Document, error)

	// Delete removes a document from any state and sweeps its chunks from
	// the vector store. Returns domain.ErrNotFound for an unknown ID.
	Delete(ctx context.Context, id string) error

	// Clear removes all documents and the entire vector store contents.
	Clear(ctx context.Context) error

	// Stats reports document and indexed-chunk counts.
	Stats(ctx context.Context) (LibraryStats, error)

	// Subscribe registers an observer and returns its unsubscribe handle.
	Subscribe(obs Observer) (unsubscribe func())
}

// LibraryStats summarises the indexed corpus.
type LibraryStats struct {
	// Documents is the number of documents in the library.
	Documents int `json:"documents"`

	// IndexedDocuments is the number of distinct documents with chunks in
	// the vector store.
	IndexedDocuments int `json:"indexedDocuments"`

	// Chunks is the total number of stored chunks.
	Chunks int `json:"chunks"`
}
