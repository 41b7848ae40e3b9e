package cli

import (
	"context"
	"testing"

	"github.com/helix-labs/docqa-cli/internal/adapters/driven/embedding/local"
	"github.com/helix-labs/docqa-cli/internal/adapters/driven/extractor"
	"github.com/helix-labs/docqa-cli/internal/adapters/driven/storage/memory"
	"github.com/helix-labs/docqa-cli/internal/chunker"
	"github.com/helix-labs/docqa-cli/internal/core/services"
)

// setupTestServices wires in-memory services for command tests and
// returns a cleanup function restoring the previous wiring.
func setupTestServices(t *testing.T) func() {
	t.Helper()
	ctx := context.Background()

	docs, err := memory.NewDocumentStore(ctx, nil)
	if err != nil {
		t.Fatal(err)
	}
	vectors, err := memory.NewVectorStore(ctx, nil)
	if err != nil {
		t.Fatal(err)
	}
	history, err := memory.NewHistoryStore(ctx, nil)
	if err != nil {
		t.Fatal(err)
	}

	embedder := local.NewEmbeddingService(32)
	ext := extractor.New()

	oldLibrary := libraryService
	oldQuery := queryService
	oldExtractor := contentExtractor

	contentExtractor = ext
	libraryService = services.NewLibrary(docs, vectors, ext, embedder, chunker.New())
	queryService = services.NewQuery(
		services.NewRetriever(vectors, embedder),
		services.NewSynthesizer(nil),
		history,
	)

	return func() {
		libraryService = oldLibrary
		queryService = oldQuery
		contentExtractor = oldExtractor
	}
}

func TestRootCmd_Use(t *testing.T) {
	if rootCmd.Use != "docqa" {
		t.Errorf("unexpected root command name: %s", rootCmd.Use)
	}
}
