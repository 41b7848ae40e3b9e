// Package driven defines the interfaces that core calls OUT to infrastructure.
//
// These are the "driven" or "secondary" ports in hexagonal architecture.
// Core services depend on these interfaces, and infrastructure adapters
// implement them.
//
// # Required Interfaces
//
// These must be provided for the engine to function:
//
//   - DocumentStore: Document persistence
//   - VectorStore: Chunk and embedding storage, scanned at query time
//   - HistoryStore: Query history persistence
//   - KeyValueStore: The underlying load/save collaborator the stores
//     snapshot themselves into
//   - EmbeddingService: Text to vector. The deterministic local adapter
//     always satisfies this, so embedding is never truly unavailable.
//   - ContentExtractor: Raw upload bytes to plain text
//
// # Optional Interfaces
//
// These can be nil - the engine degrades gracefully:
//
//   - LLMService: Answer generation. Without it, queries are answered by
//     the deterministic templated fallback.
//
// # Import Rules
//
//   - Can Import: domain package only
//   - Cannot Import: Any adapter package
package driven
