package local

import (
	"context"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEmbed_Deterministic(t *testing.T) {
	s := NewEmbeddingService(0)
	ctx := context.Background()

	first, err := s.Embed(ctx, "hello")
	require.NoError(t, err)
	require.Len(t, first.Vector, DefaultDimensions)

	for i := 0; i < 5; i++ {
		again, err := s.Embed(ctx, "hello")
		require.NoError(t, err)
		assert.Equal(t, first.Vector, again.Vector)
	}
}

func TestEmbed_ComponentsInRange(t *testing.T) {
	s := NewEmbeddingService(64)

	emb, err := s.Embed(context.Background(), "The quick brown fox jumps over the lazy dog.")
	require.NoError(t, err)

	for i, v := range emb.Vector {
		assert.False(t, math.IsNaN(float64(v)), "component %d is NaN", i)
		assert.GreaterOrEqual(t, float64(v), 0.0, "component %d below range", i)
		assert.LessOrEqual(t, float64(v), 1.0, "component %d above range", i)
	}
}

func TestEmbed_SeedFormula(t *testing.T) {
	s := NewEmbeddingService(4)

	// "ab" -> seed 97+98 = 195.
	emb, err := s.Embed(context.Background(), "ab")
	require.NoError(t, err)

	for i := range emb.Vector {
		want := float32(math.Sin(195*float64(i+1))*0.5 + 0.5)
		assert.Equal(t, want, emb.Vector[i], "component %d", i)
	}
}

func TestEmbed_DifferentTextsDiffer(t *testing.T) {
	s := NewEmbeddingService(32)
	ctx := context.Background()

	a, err := s.Embed(ctx, "alpha")
	require.NoError(t, err)
	b, err := s.Embed(ctx, "bravo")
	require.NoError(t, err)

	assert.NotEqual(t, a.Vector, b.Vector)
}

func TestEmbed_TokenApproximation(t *testing.T) {
	s := NewEmbeddingService(8)
	ctx := context.Background()

	tests := []struct {
		text   string
		tokens int
	}{
		{"", 0},
		{"abc", 1},
		{"abcd", 1},
		{"abcde", 2},
		{"twelve chars", 3},
	}
	for _, tt := range tests {
		emb, err := s.Embed(ctx, tt.text)
		require.NoError(t, err)
		assert.Equal(t, tt.tokens, emb.Tokens, "text %q", tt.text)
	}
}

func TestDimensions(t *testing.T) {
	assert.Equal(t, DefaultDimensions, NewEmbeddingService(0).Dimensions())
	assert.Equal(t, 256, NewEmbeddingService(256).Dimensions())
}
