// Package memory provides in-memory implementations of the storage ports.
//
// Each store guards its state with a RWMutex and, when constructed with a
// key-value collaborator, snapshots its full state to a single keyed JSON
// blob after every mutation and restores it at construction. The stores
// themselves never assume a particular storage medium.
package memory

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"github.com/helix-labs/docqa-cli/internal/core/domain"
	"github.com/helix-labs/docqa-cli/internal/core/ports/driven"
)

// Ensure VectorStore implements the interface.
var _ driven.VectorStore = (*VectorStore)(nil)

// vectorStoreKey is the persistence key for the chunk snapshot.
const vectorStoreKey = "vectorstore"

// VectorStore keeps chunks keyed by ID in insertion order.
type VectorStore struct {
	mu    sync.RWMutex
	kv    driven.KeyValueStore
	order []string
	byID  map[string]domain.Chunk
}

// NewVectorStore creates a vector store, restoring any persisted snapshot.
// kv may be nil for a purely in-memory store.
func NewVectorStore(ctx context.Context, kv driven.KeyValueStore) (*VectorStore, error) {
	s := &VectorStore{
		kv:   kv,
		byID: make(map[string]domain.Chunk),
	}
	if kv == nil {
		return s, nil
	}

	blob, err := kv.Load(ctx, vectorStoreKey)
	if errors.Is(err, domain.ErrNotFound) {
		return s, nil
	}
	if err != nil {
		return nil, fmt.Errorf("load vector store: %w", err)
	}

	var chunks []domain.Chunk
	if err := json.Unmarshal(blob, &chunks); err != nil {
		return nil, fmt.Errorf("decode vector store: %w", err)
	}
	for _, c := range chunks {
		s.order = append(s.order, c.ID)
		s.byID[c.ID] = c
	}
	return s, nil
}

// Upsert inserts or replaces a chunk. A replaced chunk keeps its position
// in the scan order.
func (s *VectorStore) Upsert(ctx context.Context, chunk domain.Chunk) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.byID[chunk.ID]; !exists {
		s.order = append(s.order, chunk.ID)
	}
	s.byID[chunk.ID] = chunk

	return s.persist(ctx)
}

// DeleteByDocument removes every chunk owned by documentID.
func (s *VectorStore) DeleteByDocument(ctx context.Context, documentID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	kept := s.order[:0]
	for _, id := range s.order {
		if s.byID[id].DocumentID == documentID {
			delete(s.byID, id)
			continue
		}
		kept = append(kept, id)
	}
	s.order = kept

	return s.persist(ctx)
}

// Clear removes all chunks.
func (s *VectorStore) Clear(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.order = nil
	s.byID = make(map[string]domain.Chunk)

	return s.persist(ctx)
}

// All returns a snapshot of every chunk in insertion order.
func (s *VectorStore) All(_ context.Context) ([]domain.Chunk, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	chunks := make([]domain.Chunk, 0, len(s.order))
	for _, id := range s.order {
		chunks = append(chunks, s.byID[id])
	}
	return chunks, nil
}

// CountDocuments returns the number of distinct document IDs with at
// least one chunk.
func (s *VectorStore) CountDocuments(_ context.Context) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	seen := make(map[string]struct{})
	for _, c := range s.byID {
		seen[c.DocumentID] = struct{}{}
	}
	return len(seen), nil
}

// persist writes the ordered chunk snapshot. Callers hold the write lock.
func (s *VectorStore) persist(ctx context.Context) error {
	if s.kv == nil {
		return nil
	}

	chunks := make([]domain.Chunk, 0, len(s.order))
	for _, id := range s.order {
		chunks = append(chunks, s.byID[id])
	}

	blob, err := json.Marshal(chunks)
	if err != nil {
		return fmt.Errorf("encode vector store: %w", err)
	}
	if err := s.kv.Save(ctx, vectorStoreKey, blob); err != nil {
		return fmt.Errorf("save vector store: %w", err)
	}
	return nil
}
