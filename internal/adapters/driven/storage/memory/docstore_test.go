package memory

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/helix-labs/docqa-cli/internal/core/domain"
)

func testDocument(id string) *domain.Document {
	now := time.Now().UTC()
	return &domain.Document{
		ID:        id,
		Title:     id + ".txt",
		Content:   "Deploy using Docker.",
		FileType:  "txt",
		Size:      20,
		Status:    domain.StatusIndexed,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

func TestDocumentStore_SaveAndGet(t *testing.T) {
	ctx := context.Background()
	s, err := NewDocumentStore(ctx, nil)
	require.NoError(t, err)

	doc := testDocument("doc-1")
	require.NoError(t, s.Save(ctx, doc))

	got, err := s.Get(ctx, "doc-1")
	require.NoError(t, err)
	assert.Equal(t, doc.Title, got.Title)
	assert.Equal(t, domain.StatusIndexed, got.Status)
}

func TestDocumentStore_GetNotFound(t *testing.T) {
	ctx := context.Background()
	s, err := NewDocumentStore(ctx, nil)
	require.NoError(t, err)

	_, err = s.Get(ctx, "missing")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestDocumentStore_Delete(t *testing.T) {
	ctx := context.Background()
	s, err := NewDocumentStore(ctx, nil)
	require.NoError(t, err)

	require.NoError(t, s.Save(ctx, testDocument("doc-1")))
	require.NoError(t, s.Delete(ctx, "doc-1"))

	_, err = s.Get(ctx, "doc-1")
	assert.ErrorIs(t, err, domain.ErrNotFound)

	assert.ErrorIs(t, s.Delete(ctx, "doc-1"), domain.ErrNotFound)
}

func TestDocumentStore_PersistenceRoundTrip(t *testing.T) {
	ctx := context.Background()
	kv := newFakeKV()

	s, err := NewDocumentStore(ctx, kv)
	require.NoError(t, err)

	doc := testDocument("doc-1")
	doc.ErrorMessage = "boom"
	doc.Status = domain.StatusError
	doc.ChunkCount = 3
	require.NoError(t, s.Save(ctx, doc))

	reloaded, err := NewDocumentStore(ctx, kv)
	require.NoError(t, err)

	got, err := reloaded.Get(ctx, "doc-1")
	require.NoError(t, err)

	assert.Equal(t, doc.Title, got.Title)
	assert.Equal(t, doc.Content, got.Content)
	assert.Equal(t, doc.Status, got.Status)
	assert.Equal(t, doc.ErrorMessage, got.ErrorMessage)
	assert.Equal(t, doc.ChunkCount, got.ChunkCount)

	// Timestamps parse back to equal instants.
	assert.True(t, got.CreatedAt.Equal(doc.CreatedAt))
	assert.True(t, got.UpdatedAt.Equal(doc.UpdatedAt))
}

func TestDocumentStore_ListAndClear(t *testing.T) {
	ctx := context.Background()
	s, err := NewDocumentStore(ctx, newFakeKV())
	require.NoError(t, err)

	require.NoError(t, s.Save(ctx, testDocument("doc-1")))
	require.NoError(t, s.Save(ctx, testDocument("doc-2")))

	docs, err := s.List(ctx)
	require.NoError(t, err)
	assert.Len(t, docs, 2)

	require.NoError(t, s.Clear(ctx))
	docs, err = s.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, docs)
}
