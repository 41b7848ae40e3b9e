package services

import (
	"context"
	"fmt"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/helix-labs/docqa-cli/internal/chunker"
	"github.com/helix-labs/docqa-cli/internal/core/domain"
	"github.com/helix-labs/docqa-cli/internal/core/ports/driven"
	"github.com/helix-labs/docqa-cli/internal/core/ports/driving"
	"github.com/helix-labs/docqa-cli/internal/logger"
)

// Ensure Library implements the interface.
var _ driving.LibraryService = (*Library)(nil)

// DefaultMaxUploadBytes caps accepted document payloads.
const DefaultMaxUploadBytes = 10 << 20 // 10 MiB

// subscriber pairs an observer with its registration handle.
type subscriber struct {
	id  int
	obs driving.Observer
}

// Library owns the document lifecycle: it is the only component that
// mutates Document records, and it drives the indexing pipeline
// (extract, chunk, embed, upsert) on upload and update.
type Library struct {
	docStore         driven.DocumentStore
	vectorStore      driven.VectorStore
	extractor        driven.ContentExtractor
	embeddingService driven.EmbeddingService
	splitter         *chunker.Splitter
	maxUploadBytes   int64

	subMu   sync.Mutex
	subs    []subscriber
	nextSub int
}

// LibraryOption configures the library service.
type LibraryOption func(*Library)

// WithMaxUploadBytes sets the upload size limit.
func WithMaxUploadBytes(n int64) LibraryOption {
	return func(l *Library) {
		if n > 0 {
			l.maxUploadBytes = n
		}
	}
}

// NewLibrary creates the document lifecycle service.
func NewLibrary(
	docStore driven.DocumentStore,
	vectorStore driven.VectorStore,
	extractor driven.ContentExtractor,
	embeddingService driven.EmbeddingService,
	splitter *chunker.Splitter,
	opts ...LibraryOption,
) *Library {
	l := &Library{
		docStore:         docStore,
		vectorStore:      vectorStore,
		extractor:        extractor,
		embeddingService: embeddingService,
		splitter:         splitter,
		maxUploadBytes:   DefaultMaxUploadBytes,
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Upload accepts a new document and runs the indexing pipeline.
// Validation failures return an error before any state mutation; pipeline
// failures are captured on the returned document as StatusError.
func (l *Library) Upload(ctx context.Context, req driving.UploadRequest) (*domain.Document, error) {
	if strings.TrimSpace(req.Title) == "" {
		return nil, fmt.Errorf("%w: title is required", domain.ErrInvalidInput)
	}
	if len(req.Content) == 0 {
		return nil, fmt.Errorf("%w: content is required", domain.ErrInvalidInput)
	}
	if int64(len(req.Content)) > l.maxUploadBytes {
		return nil, fmt.Errorf("%w: content exceeds %d bytes", domain.ErrInvalidInput, l.maxUploadBytes)
	}

	fileType := req.FileType
	if fileType == "" {
		fileType = strings.TrimPrefix(filepath.Ext(req.Title), ".")
	}
	if fileType == "" {
		fileType = "txt"
	}
	if !l.extractor.Supports(fileType) {
		return nil, fmt.Errorf("%w: %q", domain.ErrUnsupportedType, fileType)
	}

	id := req.ID
	if id == "" {
		id = uuid.New().String()
	}

	now := time.Now().UTC()
	doc := &domain.Document{
		ID:        id,
		Title:     req.Title,
		FileType:  fileType,
		Size:      int64(len(req.Content)),
		Status:    domain.StatusPending,
		CreatedAt: now,
		UpdatedAt: now,
	}

	logger.Section("Indexing")
	logger.Info("Upload %q (%s, %d bytes)", doc.Title, doc.FileType, doc.Size)

	if err := l.saveAndNotify(ctx, doc); err != nil {
		return nil, err
	}

	return l.index(ctx, doc, req.Content)
}

// Update replaces a document's content and re-runs the indexing pipeline
// without changing identity.
func (l *Library) Update(ctx context.Context, id string, title string, content []byte) (*domain.Document, error) {
	if strings.TrimSpace(id) == "" {
		return nil, fmt.Errorf("%w: document id is required", domain.ErrInvalidInput)
	}
	if len(content) == 0 {
		return nil, fmt.Errorf("%w: content is required", domain.ErrInvalidInput)
	}
	if int64(len(content)) > l.maxUploadBytes {
		return nil, fmt.Errorf("%w: content exceeds %d bytes", domain.ErrInvalidInput, l.maxUploadBytes)
	}

	doc, err := l.docStore.Get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get document: %w", err)
	}

	if title != "" {
		doc.Title = title
	}
	doc.Size = int64(len(content))

	logger.Info("Re-indexing %q", doc.Title)
	return l.index(ctx, doc, content)
}

// index runs the processing pipeline: extract, chunk, embed, upsert.
// Failures are recorded on the document, not returned; only storage
// errors propagate.
func (l *Library) index(ctx context.Context, doc *domain.Document, raw []byte) (*domain.Document, error) {
	doc.Status = domain.StatusProcessing
	doc.ErrorMessage = ""
	doc.UpdatedAt = time.Now().UTC()
	if err := l.saveAndNotify(ctx, doc); err != nil {
		return nil, err
	}

	text, err := l.extractor.Extract(ctx, doc.FileType, raw)
	if err != nil {
		return l.failed(ctx, doc, err)
	}
	doc.Content = text

	parts := l.splitter.Split(text)
	logger.Debug("Document %s split into %d chunks", doc.ID, len(parts))

	// Re-indexing replaces the full chunk set; there are no partial
	// chunk updates.
	if err := l.vectorStore.DeleteByDocument(ctx, doc.ID); err != nil {
		return nil, fmt.Errorf("sweep old chunks: %w", err)
	}

	// Chunks are embedded one at a time, in index order, so a partial
	// failure leaves a deterministic prefix behind for diagnosis.
	for i, part := range parts {
		emb, err := l.embeddingService.Embed(ctx, part)
		if err != nil {
			return l.failed(ctx, doc, fmt.Errorf("embed chunk %d: %w", i, err))
		}

		chunk := domain.Chunk{
			ID:          domain.ChunkID(doc.ID, i),
			DocumentID:  doc.ID,
			Content:     part,
			Index:       i,
			Embedding:   emb.Vector,
			Title:       doc.Title,
			FileType:    doc.FileType,
			TotalChunks: len(parts),
		}
		if err := l.vectorStore.Upsert(ctx, chunk); err != nil {
			return l.failed(ctx, doc, fmt.Errorf("store chunk %d: %w", i, err))
		}
	}

	doc.Status = domain.StatusIndexed
	doc.ChunkCount = len(parts)
	doc.UpdatedAt = time.Now().UTC()
	if err := l.saveAndNotify(ctx, doc); err != nil {
		return nil, err
	}

	logger.Info("Indexed %q: %d chunks", doc.Title, doc.ChunkCount)
	return doc, nil
}

// failed records a pipeline failure on the document. The document is
// retained in StatusError so the user can retry or remove it.
func (l *Library) failed(ctx context.Context, doc *domain.Document, cause error) (*domain.Document, error) {
	logger.Warn("Indexing %q failed: %v", doc.Title, cause)

	doc.Status = domain.StatusError
	doc.ErrorMessage = cause.Error()
	doc.UpdatedAt = time.Now().UTC()
	if err := l.saveAndNotify(ctx, doc); err != nil {
		return nil, err
	}
	return doc, nil
}

// Get retrieves a document by ID.
func (l *Library) Get(ctx context.Context, id string) (*domain.Document, error) {
	return l.docStore.Get(ctx, id)
}

// List returns all documents ordered by most-recently-updated first.
func (l *Library) List(ctx context.Context) ([]domain.Document, error) {
	docs, err := l.docStore.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list documents: %w", err)
	}

	sort.Slice(docs, func(i, j int) bool {
		if docs[i].UpdatedAt.Equal(docs[j].UpdatedAt) {
			return docs[i].ID < docs[j].ID
		}
		return docs[i].UpdatedAt.After(docs[j].UpdatedAt)
	})
	return docs, nil
}

// Delete removes a document from any state and sweeps its chunks, so no
// chunk outlives its document.
func (l *Library) Delete(ctx context.Context, id string) error {
	if strings.TrimSpace(id) == "" {
		return fmt.Errorf("%w: document id is required", domain.ErrInvalidInput)
	}

	if err := l.docStore.Delete(ctx, id); err != nil {
		return err
	}
	if err := l.vectorStore.DeleteByDocument(ctx, id); err != nil {
		return fmt.Errorf("sweep chunks: %w", err)
	}

	logger.Info("Deleted document %s", id)
	l.notify(ctx)
	return nil
}

// Clear removes all documents and the entire vector store contents.
func (l *Library) Clear(ctx context.Context) error {
	if err := l.docStore.Clear(ctx); err != nil {
		return fmt.Errorf("clear documents: %w", err)
	}
	if err := l.vectorStore.Clear(ctx); err != nil {
		return fmt.Errorf("clear vector store: %w", err)
	}

	logger.Info("Library cleared")
	l.notify(ctx)
	return nil
}

// Stats reports document and indexed-chunk counts.
func (l *Library) Stats(ctx context.Context) (driving.LibraryStats, error) {
	docs, err := l.docStore.List(ctx)
	if err != nil {
		return driving.LibraryStats{}, fmt.Errorf("list documents: %w", err)
	}
	indexed, err := l.vectorStore.CountDocuments(ctx)
	if err != nil {
		return driving.LibraryStats{}, fmt.Errorf("count indexed documents: %w", err)
	}
	chunks, err := l.vectorStore.All(ctx)
	if err != nil {
		return driving.LibraryStats{}, fmt.Errorf("count chunks: %w", err)
	}

	return driving.LibraryStats{
		Documents:        len(docs),
		IndexedDocuments: indexed,
		Chunks:           len(chunks),
	}, nil
}

// Subscribe registers an observer and returns its unsubscribe handle.
func (l *Library) Subscribe(obs driving.Observer) func() {
	l.subMu.Lock()
	defer l.subMu.Unlock()

	l.nextSub++
	id := l.nextSub
	l.subs = append(l.subs, subscriber{id: id, obs: obs})

	return func() {
		l.subMu.Lock()
		defer l.subMu.Unlock()
		for i := range l.subs {
			if l.subs[i].id == id {
				l.subs = append(l.subs[:i], l.subs[i+1:]...)
				return
			}
		}
	}
}

// saveAndNotify persists the document, then notifies observers.
// Persistence always happens before notification so observers only ever
// see persisted state.
func (l *Library) saveAndNotify(ctx context.Context, doc *domain.Document) error {
	if err := l.docStore.Save(ctx, doc); err != nil {
		return fmt.Errorf("save document: %w", err)
	}
	l.notify(ctx)
	return nil
}

// notify invokes observers synchronously, in subscription order, with
// the current full document list.
func (l *Library) notify(ctx context.Context) {
	docs, err := l.List(ctx)
	if err != nil {
		logger.Warn("Observer notification skipped: %v", err)
		return
	}

	l.subMu.Lock()
	subs := make([]subscriber, len(l.subs))
	copy(subs, l.subs)
	l.subMu.Unlock()

	for _, sub := range subs {
		sub.obs(docs)
	}
}
