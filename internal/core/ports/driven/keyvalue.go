package driven

import "context"

// KeyValueStore is the persistence collaborator behind the in-memory
// stores. Each store serializes its full state to a single keyed blob.
//
// The engine must not assume any particular storage medium: the shipped
// implementation is SQLite, but a file or network store behind the same
// contract works equally.
type KeyValueStore interface {
	// Load returns the blob stored under key. Returns domain.ErrNotFound
	// when the key has never been saved.
	Load(ctx context.Context, key string) ([]byte, error)

	// Save stores the blob under key, replacing any previous value.
	Save(ctx context.Context, key string, value []byte) error

	// Close releases resources.
	Close() error
}

// ContentExtractor turns uploaded raw bytes into plain text.
//
// Plain-text-like formats decode directly. Richer formats (PDF, DOCX) are
// deliberately stubbed and yield a placeholder string; a real extractor
// slots in behind the same contract.
type ContentExtractor interface {
	// Extract decodes the raw upload into plain text.
	Extract(ctx context.Context, fileType string, data []byte) (string, error)

	// Supports reports whether the file type can be accepted at upload.
	Supports(fileType string) bool
}
