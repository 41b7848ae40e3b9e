package sqlite

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/helix-labs/docqa-cli/internal/core/domain"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := NewStore(t.TempDir())
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func TestStore_SaveAndLoad(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.Save(ctx, "documents", []byte(`[{"id":"doc-1"}]`)))

	blob, err := s.Load(ctx, "documents")
	require.NoError(t, err)
	assert.Equal(t, []byte(`[{"id":"doc-1"}]`), blob)
}

func TestStore_LoadMissingKey(t *testing.T) {
	s := newTestStore(t)

	_, err := s.Load(context.Background(), "missing")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestStore_SaveReplaces(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.Save(ctx, "k", []byte("first")))
	require.NoError(t, s.Save(ctx, "k", []byte("second")))

	blob, err := s.Load(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, []byte("second"), blob)
}

func TestStore_SurvivesReopen(t *testing.T) {
	dir := t.TempDir()
	ctx := context.Background()

	s, err := NewStore(dir)
	require.NoError(t, err)
	require.NoError(t, s.Save(ctx, "k", []byte("persisted")))
	require.NoError(t, s.Close())

	reopened, err := NewStore(dir)
	require.NoError(t, err)
	defer reopened.Close()

	blob, err := reopened.Load(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, []byte("persisted"), blob)
}
