package services

import (
	"context"
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/helix-labs/docqa-cli/internal/core/domain"
	"github.com/helix-labs/docqa-cli/internal/core/ports/driven"
	"github.com/helix-labs/docqa-cli/internal/logger"
)

// DefaultTopK is the number of chunks considered when none is requested.
const DefaultTopK = 5

// scoredChunk holds intermediate results before document aggregation.
type scoredChunk struct {
	chunk domain.Chunk
	score float64
}

// Retriever scores every stored chunk against a query embedding and
// aggregates the best matches per source document.
type Retriever struct {
	vectorStore      driven.VectorStore
	embeddingService driven.EmbeddingService
}

// NewRetriever creates a retriever over the given store and embedder.
func NewRetriever(vectorStore driven.VectorStore, embeddingService driven.EmbeddingService) *Retriever {
	return &Retriever{
		vectorStore:      vectorStore,
		embeddingService: embeddingService,
	}
}

// Search returns the documents most relevant to the query, best first.
// An empty store yields an empty result, never an error.
//
// Aggregation keeps the order in which documents first appear among the
// top-K chunks; it does not re-sort by the aggregated maximum score.
func (r *Retriever) Search(ctx context.Context, query string, topK int) ([]domain.DocumentSource, error) {
	if topK <= 0 {
		topK = DefaultTopK
	}

	logger.Section("Retrieval")
	logger.Debug("Query: %q, topK: %d", query, topK)

	chunks, err := r.vectorStore.All(ctx)
	if err != nil {
		return nil, fmt.Errorf("scan vector store: %w", err)
	}
	if len(chunks) == 0 {
		logger.Debug("Vector store is empty")
		return []domain.DocumentSource{}, nil
	}

	queryEmb, err := r.embeddingService.Embed(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("embed query: %w", err)
	}
	logger.Debug("Query embedding: %d dimensions, %d tokens", len(queryEmb.Vector), queryEmb.Tokens)

	scored := make([]scoredChunk, len(chunks))
	for i, chunk := range chunks {
		scored[i] = scoredChunk{
			chunk: chunk,
			score: CosineSimilarity(queryEmb.Vector, chunk.Embedding),
		}
	}

	// Stable sort keeps insertion order between equal scores.
	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].score > scored[j].score
	})

	if len(scored) > topK {
		scored = scored[:topK]
	}
	logger.Debug("Top %d chunks selected from %d", len(scored), len(chunks))

	return aggregateByDocument(scored), nil
}

// aggregateByDocument merges top-K chunks into one source per document.
// The first chunk of a document creates its source; later chunks append
// their text and raise the score to the maximum observed.
func aggregateByDocument(scored []scoredChunk) []domain.DocumentSource {
	sources := make([]domain.DocumentSource, 0, len(scored))
	index := make(map[string]int)

	for _, sc := range scored {
		if i, ok := index[sc.chunk.DocumentID]; ok {
			sources[i].Content += "\n\n" + sc.chunk.Content
			sources[i].Score = math.Max(sources[i].Score, sc.score)
			continue
		}
		index[sc.chunk.DocumentID] = len(sources)
		sources = append(sources, domain.DocumentSource{
			DocumentID: sc.chunk.DocumentID,
			Title:      sc.chunk.Title,
			Content:    sc.chunk.Content,
			Score:      sc.score,
		})
	}

	return sources
}

// CosineSimilarity computes dot(a,b) / (|a| * |b|) with float64
// accumulation. It returns 0 for mismatched lengths or zero vectors.
func CosineSimilarity(a, b []float32) float64 {
	if len(a) != len(b) || len(a) == 0 {
		return 0
	}

	var dot, normA, normB float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		normA += float64(a[i]) * float64(a[i])
		normB += float64(b[i]) * float64(b[i])
	}
	if normA == 0 || normB == 0 {
		return 0
	}
	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}

// SourceTitles joins source titles for history records and display.
func SourceTitles(sources []domain.DocumentSource) string {
	titles := make([]string, len(sources))
	for i, src := range sources {
		titles[i] = src.Title
	}
	return strings.Join(titles, ", ")
}
