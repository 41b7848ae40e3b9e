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

// Ensure HistoryStore implements the interface.
var _ driven.HistoryStore = (*HistoryStore)(nil)

// historyStoreKey is the persistence key for the history snapshot.
const historyStoreKey = "history"

// HistoryStore is an in-memory implementation of driven.HistoryStore.
// Records are kept in completion order and never auto-deleted.
type HistoryStore struct {
	mu      sync.RWMutex
	kv      driven.KeyValueStore
	records []domain.QueryRecord
}

// NewHistoryStore creates a history store, restoring any persisted
// snapshot. kv may be nil for a purely in-memory store.
func NewHistoryStore(ctx context.Context, kv driven.KeyValueStore) (*HistoryStore, error) {
	s := &HistoryStore{kv: kv}
	if kv == nil {
		return s, nil
	}

	blob, err := kv.Load(ctx, historyStoreKey)
	if errors.Is(err, domain.ErrNotFound) {
		return s, nil
	}
	if err != nil {
		return nil, fmt.Errorf("load history: %w", err)
	}
	if err := json.Unmarshal(blob, &s.records); err != nil {
		return nil, fmt.Errorf("decode history: %w", err)
	}
	return s, nil
}

// Save appends a new record.
func (s *HistoryStore) Save(ctx context.Context, rec *domain.QueryRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.records = append(s.records, *rec)
	return s.persist(ctx)
}

// List returns all records, most recent first.
func (s *HistoryStore) List(_ context.Context) ([]domain.QueryRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]domain.QueryRecord, len(s.records))
	for i, rec := range s.records {
		out[len(s.records)-1-i] = rec
	}
	return out, nil
}

// Rate sets the feedback rating on an existing record.
func (s *HistoryStore) Rate(ctx context.Context, id string, rating int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.records {
		if s.records[i].ID == id {
			s.records[i].Rating = rating
			return s.persist(ctx)
		}
	}
	return domain.ErrNotFound
}

// persist writes the history snapshot. Callers hold the write lock.
func (s *HistoryStore) persist(ctx context.Context) error {
	if s.kv == nil {
		return nil
	}
	blob, err := json.Marshal(s.records)
	if err != nil {
		return fmt.Errorf("encode history: %w", err)
	}
	if err := s.kv.Save(ctx, historyStoreKey, blob); err != nil {
		return fmt.Errorf("save history: %w", err)
	}
	return nil
}
