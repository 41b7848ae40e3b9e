package domain

import "time"

// DocumentSource is a retrieved document with the chunk text that matched
// a query. Multiple chunks from the same document are merged into one
// source with their content joined and the best score kept.
type DocumentSource struct {
	// DocumentID is the owning document.
	DocumentID string `json:"id"`

	// Title is the document title.
	Title string `json:"title"`

	// Content is the matched chunk text. When several chunks of the same
	// document land in the top-K their texts are joined with a blank line.
	Content string `json:"content"`

	// Score is the highest cosine similarity observed among the merged
	// chunks, in [-1, 1].
	Score float64 `json:"relevanceScore"`
}

// QueryAnswer is the result of a completed question.
type QueryAnswer struct {
	// Answer is the generated (or fallback) answer text.
	Answer string `json:"answer"`

	// Sources are the documents the answer was grounded on, most relevant
	// first.
	Sources []DocumentSource `json:"sources"`

	// ProcessingTime is the total wall-clock time spent on the query.
	ProcessingTime time.Duration `json:"processingTime"`
}

// QueryRecord is a history entry created for every completed query.
// Records are never auto-deleted; only the rating may change afterwards.
type QueryRecord struct {
	// ID is the unique identifier for the record.
	ID string `json:"id"`

	// Query is the question as asked.
	Query string `json:"query"`

	// Answer is the answer that was returned.
	Answer string `json:"answer"`

	// Sources is the concatenated source titles, comma separated.
	Sources string `json:"sources"`

	// Rating is the user feedback: 0 = unrated, 1-5 = rated.
	Rating int `json:"rating"`

	// CreatedAt is when the query completed.
	CreatedAt time.Time `json:"createdAt"`
}
