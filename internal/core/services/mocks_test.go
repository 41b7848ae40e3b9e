package services

import (
	"context"
	"fmt"

	"github.com/helix-labs/docqa-cli/internal/core/domain"
	"github.com/helix-labs/docqa-cli/internal/core/ports/driven"
)

// --- Mock implementations shared across service tests ---

// mockEmbedder implements driven.EmbeddingService with fixed per-text
// vectors. Unknown texts get a default vector.
type mockEmbedder struct {
	vectors  map[string][]float32
	fallback []float32
	embedErr error
	calls    []string
}

func newMockEmbedder() *mockEmbedder {
	return &mockEmbedder{
		vectors:  make(map[string][]float32),
		fallback: []float32{1, 0, 0},
	}
}

func (m *mockEmbedder) Embed(_ context.Context, text string) (driven.Embedding, error) {
	m.calls = append(m.calls, text)
	if m.embedErr != nil {
		return driven.Embedding{}, m.embedErr
	}
	if v, ok := m.vectors[text]; ok {
		return driven.Embedding{Vector: v, Tokens: len(text) / 4}, nil
	}
	return driven.Embedding{Vector: m.fallback, Tokens: len(text) / 4}, nil
}

func (m *mockEmbedder) Dimensions() int { return len(m.fallback) }

func (m *mockEmbedder) ModelName() string { return "mock-embed" }

// mockLLM implements driven.LLMService.
type mockLLM struct {
	response string
	err      error
	messages []driven.ChatMessage
}

func (m *mockLLM) Chat(_ context.Context, messages []driven.ChatMessage, _ driven.ChatOptions) (string, error) {
	m.messages = messages
	if m.err != nil {
		return "", m.err
	}
	return m.response, nil
}

func (m *mockLLM) ModelName() string { return "mock-llm" }

// mockExtractor implements driven.ContentExtractor.
type mockExtractor struct {
	err error
}

func (m *mockExtractor) Extract(_ context.Context, _ string, data []byte) (string, error) {
	if m.err != nil {
		return "", m.err
	}
	return string(data), nil
}

func (m *mockExtractor) Supports(fileType string) bool {
	return fileType != "exe"
}

// mockHistoryStore implements driven.HistoryStore.
type mockHistoryStore struct {
	records []domain.QueryRecord
	saveErr error
}

func (m *mockHistoryStore) Save(_ context.Context, rec *domain.QueryRecord) error {
	if m.saveErr != nil {
		return m.saveErr
	}
	m.records = append(m.records, *rec)
	return nil
}

func (m *mockHistoryStore) List(_ context.Context) ([]domain.QueryRecord, error) {
	out := make([]domain.QueryRecord, len(m.records))
	for i, rec := range m.records {
		out[len(m.records)-1-i] = rec
	}
	return out, nil
}

func (m *mockHistoryStore) Rate(_ context.Context, id string, rating int) error {
	for i := range m.records {
		if m.records[i].ID == id {
			m.records[i].Rating = rating
			return nil
		}
	}
	return domain.ErrNotFound
}

// testChunk builds a chunk with the given embedding.
func testChunk(docID string, index int, vec []float32) domain.Chunk {
	return domain.Chunk{
		ID:         domain.ChunkID(docID, index),
		DocumentID: docID,
		Content:    fmt.Sprintf("%s chunk %d", docID, index),
		Index:      index,
		Embedding:  vec,
		Title:      docID + ".txt",
		FileType:   "txt",
	}
}
