package memory

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"sync"

	"github.com/helix-labs/docqa-cli/internal/core/domain"
	"github.com/helix-labs/docqa-cli/internal/core/ports/driven"
)

// Ensure DocumentStore implements the interface.
var _ driven.DocumentStore = (*DocumentStore)(nil)

// documentStoreKey is the persistence key for the document snapshot.
const documentStoreKey = "documents"

// DocumentStore is an in-memory implementation of driven.DocumentStore.
type DocumentStore struct {
	mu        sync.RWMutex
	kv        driven.KeyValueStore
	documents map[string]domain.Document
}

// NewDocumentStore creates a document store, restoring any persisted
// snapshot. kv may be nil for a purely in-memory store.
func NewDocumentStore(ctx context.Context, kv driven.KeyValueStore) (*DocumentStore, error) {
	s := &DocumentStore{
		kv:        kv,
		documents: make(map[string]domain.Document),
	}
	if kv == nil {
		return s, nil
	}

	blob, err := kv.Load(ctx, documentStoreKey)
	if errors.Is(err, domain.ErrNotFound) {
		return s, nil
	}
	if err != nil {
		return nil, fmt.Errorf("load documents: %w", err)
	}

	var docs []domain.Document
	if err := json.Unmarshal(blob, &docs); err != nil {
		return nil, fmt.Errorf("decode documents: %w", err)
	}
	for _, doc := range docs {
		s.documents[doc.ID] = doc
	}
	return s, nil
}

// Save stores or updates a document.
func (s *DocumentStore) Save(ctx context.Context, doc *domain.Document) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.documents[doc.ID] = *doc
	return s.persist(ctx)
}

// Get retrieves a document by ID.
func (s *DocumentStore) Get(_ context.Context, id string) (*domain.Document, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	doc, ok := s.documents[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &doc, nil
}

// Delete removes a document.
func (s *DocumentStore) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.documents[id]; !ok {
		return domain.ErrNotFound
	}
	delete(s.documents, id)
	return s.persist(ctx)
}

// List returns all documents.
func (s *DocumentStore) List(_ context.Context) ([]domain.Document, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	docs := make([]domain.Document, 0, len(s.documents))
	for id := range s.documents {
		docs = append(docs, s.documents[id])
	}
	return docs, nil
}

// Clear removes all documents.
func (s *DocumentStore) Clear(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.documents = make(map[string]domain.Document)
	return s.persist(ctx)
}

// persist writes the document snapshot, sorted by ID so the blob is
// stable across runs. Callers hold the write lock.
func (s *DocumentStore) persist(ctx context.Context) error {
	if s.kv == nil {
		return nil
	}

	docs := make([]domain.Document, 0, len(s.documents))
	for id := range s.documents {
		docs = append(docs, s.documents[id])
	}
	sort.Slice(docs, func(i, j int) bool { return docs[i].ID < docs[j].ID })

	blob, err := json.Marshal(docs)
	if err != nil {
		return fmt.Errorf("encode documents: %w", err)
	}
	if err := s.kv.Save(ctx, documentStoreKey, blob); err != nil {
		return fmt.Errorf("save documents: %w", err)
	}
	return nil
}
