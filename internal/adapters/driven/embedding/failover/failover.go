// Package failover composes a remote embedding service with the local
// deterministic fallback.
//
// The variant pair is fixed once at construction; the only per-call
// branching is the automatic degrade when the remote call fails. A
// provider outage therefore never reaches the caller as an error.
package failover

import (
	"context"

	"github.com/helix-labs/docqa-cli/internal/core/ports/driven"
	"github.com/helix-labs/docqa-cli/internal/logger"
)

// Ensure EmbeddingService implements the interface.
var _ driven.EmbeddingService = (*EmbeddingService)(nil)

// EmbeddingService tries the remote service first and degrades to the
// local one on any failure.
type EmbeddingService struct {
	remote driven.EmbeddingService
	local  driven.EmbeddingService
}

// NewEmbeddingService wraps remote with a local fallback.
// remote may be nil (no credential configured), in which case every call
// goes straight to local.
func NewEmbeddingService(remote, local driven.EmbeddingService) *EmbeddingService {
	return &EmbeddingService{remote: remote, local: local}
}

// Embed generates an embedding, falling back to the local generator when
// the remote provider is unavailable.
func (s *EmbeddingService) Embed(ctx context.Context, text string) (driven.Embedding, error) {
	if s.remote == nil {
		return s.local.Embed(ctx, text)
	}

	emb, err := s.remote.Embed(ctx, text)
	if err != nil {
		logger.Warn("Remote embedding failed, using local fallback: %v", err)
		return s.local.Embed(ctx, text)
	}
	return emb, nil
}

// Dimensions returns the embedding vector size. Remote and local are
// constructed with matching dimensionality, so either answer is valid.
func (s *EmbeddingService) Dimensions() int {
	if s.remote != nil {
		return s.remote.Dimensions()
	}
	return s.local.Dimensions()
}

// ModelName returns the name of the active embedding model.
func (s *EmbeddingService) ModelName() string {
	if s.remote != nil {
		return s.remote.ModelName()
	}
	return s.local.ModelName()
}
