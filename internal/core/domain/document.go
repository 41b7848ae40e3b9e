package domain

import (
	"fmt"
	"time"
)

// DocumentStatus tracks a document through the indexing lifecycle.
type DocumentStatus string

// Document lifecycle states.
const (
	// StatusPending means the document has been accepted but not yet processed.
	StatusPending DocumentStatus = "pending"

	// StatusProcessing means content extraction and embedding are in progress.
	StatusProcessing DocumentStatus = "processing"

	// StatusIndexed means all chunks are embedded and searchable.
	StatusIndexed DocumentStatus = "indexed"

	// StatusError means extraction or embedding failed. The document is
	// retained so the user can retry or remove it.
	StatusError DocumentStatus = "error"
)

// Valid reports whether the status is one of the known lifecycle states.
func (s DocumentStatus) Valid() bool {
	switch s {
	case StatusPending, StatusProcessing, StatusIndexed, StatusError:
		return true
	}
	return false
}

// Document represents an uploaded document and its indexing state.
// It is owned by the library service; nothing else mutates it.
type Document struct {
	// ID is the unique identifier for the document.
	ID string `json:"id"`

	// Title is the human-readable title, usually the file name.
	Title string `json:"title"`

	// Content is the extracted plain text.
	Content string `json:"content"`

	// FileType is the declared format tag ("txt", "md", "pdf", "docx").
	FileType string `json:"fileType"`

	// Size is the byte size of the uploaded content.
	Size int64 `json:"size"`

	// Status is the current lifecycle state.
	Status DocumentStatus `json:"status"`

	// ErrorMessage holds the failure reason when Status is StatusError.
	ErrorMessage string `json:"errorMessage,omitempty"`

	// ChunkCount is the number of chunks produced at indexing time.
	ChunkCount int `json:"chunkCount,omitempty"`

	// CreatedAt is when the document was first uploaded.
	CreatedAt time.Time `json:"createdAt"`

	// UpdatedAt is when the document last changed state or content.
	UpdatedAt time.Time `json:"updatedAt"`
}

// Chunk is the unit of embedding and retrieval: a bounded slice of a
// document's text plus its vector representation.
// Chunks are immutable once written; re-indexing a document replaces the
// full set rather than patching individual chunks.
type Chunk struct {
	// ID is derived from the owning document and chunk index, see ChunkID.
	ID string `json:"id"`

	// DocumentID links to the parent Document.
	DocumentID string `json:"documentId"`

	// Content is the chunk text.
	Content string `json:"content"`

	// Index is the ordinal position within the document.
	Index int `json:"index"`

	// Embedding is the vector representation used for similarity search.
	Embedding []float32 `json:"embedding"`

	// Title is the parent document title, denormalised for result display.
	Title string `json:"title"`

	// FileType is the parent document format tag.
	FileType string `json:"fileType"`

	// TotalChunks is how many chunks the parent document produced.
	TotalChunks int `json:"totalChunks"`
}

// ChunkID builds the deterministic chunk identifier for a document and
// chunk index. Re-indexing a document therefore reproduces the same IDs,
// which makes upserts idempotent and deletion targeted.
func ChunkID(documentID string, index int) string {
	return fmt.Sprintf("%s:%d", documentID, index)
}
