// Package domain defines the core business entities for the docqa engine.
//
// This package is part of the hexagonal architecture's innermost layer.
// It has NO external dependencies and defines the fundamental types:
//
//   - Document: An uploaded document and its indexing lifecycle state
//   - Chunk: The unit of embedding and retrieval
//   - DocumentSource: A retrieved document aggregated from matched chunks
//   - QueryRecord: A history entry for a completed question
//
// # Architectural Position
//
// Domain is at the centre of the hexagon. It may only import
// the Go standard library. All other packages depend on domain,
// never the reverse.
//
// # Import Rules
//
//   - Can Import: Standard library only
//   - Cannot Import: Any internal/ package, any external dependency
package domain
