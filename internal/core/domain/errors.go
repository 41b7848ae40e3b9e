package domain

import "errors"

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrNotFound indicates a requested document or history record does not
	// exist. List and search operations never return this; absence there
	// yields an empty result.
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates malformed or invalid input: a missing
	// identifier, an empty query, an oversized upload. Rejected before any
	// state mutation occurs.
	ErrInvalidInput = errors.New("invalid input")

	// ErrUnsupportedType indicates an unknown document file type at the
	// upload boundary.
	ErrUnsupportedType = errors.New("unsupported file type")

	// ErrExtractionFailed indicates document content could not be read or
	// decoded. The document moves to StatusError with a message; the
	// library service itself never crashes on it.
	ErrExtractionFailed = errors.New("content extraction failed")

	// ErrProviderUnavailable indicates the remote embedding or generation
	// provider could not be reached or returned a non-success response.
	// Always recovered locally by the deterministic fallback; logged, never
	// surfaced to the end user as a hard failure.
	ErrProviderUnavailable = errors.New("AI provider unavailable")
)
