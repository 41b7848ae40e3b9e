package httpapi

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/helix-labs/docqa-cli/internal/adapters/driven/embedding/local"
	"github.com/helix-labs/docqa-cli/internal/adapters/driven/extractor"
	"github.com/helix-labs/docqa-cli/internal/adapters/driven/storage/memory"
	"github.com/helix-labs/docqa-cli/internal/chunker"
	"github.com/helix-labs/docqa-cli/internal/core/domain"
	"github.com/helix-labs/docqa-cli/internal/core/services"
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	ctx := context.Background()

	docs, err := memory.NewDocumentStore(ctx, nil)
	require.NoError(t, err)
	vectors, err := memory.NewVectorStore(ctx, nil)
	require.NoError(t, err)
	history, err := memory.NewHistoryStore(ctx, nil)
	require.NoError(t, err)

	embedder := local.NewEmbeddingService(64)
	library := services.NewLibrary(docs, vectors, extractor.New(), embedder, chunker.New())
	query := services.NewQuery(
		services.NewRetriever(vectors, embedder),
		services.NewSynthesizer(nil),
		history,
	)

	srv := httptest.NewServer(NewRouter(library, query).Handler())
	t.Cleanup(srv.Close)
	return srv
}

func postJSON(t *testing.T, url, body string) *http.Response {
	t.Helper()
	resp, err := http.Post(url, "application/json", strings.NewReader(body))
	require.NoError(t, err)
	return resp
}

func decode[T any](t *testing.T, resp *http.Response) T {
	t.Helper()
	defer resp.Body.Close()
	var v T
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&v))
	return v
}

func TestHealthz(t *testing.T) {
	srv := newTestServer(t)

	resp, err := http.Get(srv.URL + "/healthz")
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	body := decode[map[string]string](t, resp)
	assert.Equal(t, "ok", body["status"])
}

func TestUploadDocument(t *testing.T) {
	srv := newTestServer(t)

	resp := postJSON(t, srv.URL+"/v1/documents",
		`{"title":"guide.txt","content":"Deploy using Docker. Set OPENAI_API_KEY. Restart the service."}`)
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	doc := decode[domain.Document](t, resp)
	assert.NotEmpty(t, doc.ID)
	assert.Equal(t, "guide.txt", doc.Title)
	assert.Equal(t, domain.StatusIndexed, doc.Status)
	assert.Equal(t, 1, doc.ChunkCount)
}

func TestUploadDocument_Invalid(t *testing.T) {
	srv := newTestServer(t)

	resp := postJSON(t, srv.URL+"/v1/documents", `{"title":"","content":"x"}`)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	resp.Body.Close()

	resp = postJSON(t, srv.URL+"/v1/documents", `{"title":"app.exe","content":"MZ"}`)
	assert.Equal(t, http.StatusUnsupportedMediaType, resp.StatusCode)
	resp.Body.Close()

	resp = postJSON(t, srv.URL+"/v1/documents", `not json`)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	resp.Body.Close()
}

func TestListAndGetDocuments(t *testing.T) {
	srv := newTestServer(t)

	created := decode[domain.Document](t, postJSON(t, srv.URL+"/v1/documents",
		`{"title":"notes.md","content":"Some notes."}`))

	resp, err := http.Get(srv.URL + "/v1/documents")
	require.NoError(t, err)
	docs := decode[[]domain.Document](t, resp)
	require.Len(t, docs, 1)
	assert.Equal(t, created.ID, docs[0].ID)

	resp, err = http.Get(srv.URL + "/v1/documents/" + created.ID)
	require.NoError(t, err)
	got := decode[domain.Document](t, resp)
	assert.Equal(t, created.ID, got.ID)

	resp, err = http.Get(srv.URL + "/v1/documents/missing")
	require.NoError(t, err)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	resp.Body.Close()
}

func TestDeleteDocument_Idempotent(t *testing.T) {
	srv := newTestServer(t)

	created := decode[domain.Document](t, postJSON(t, srv.URL+"/v1/documents",
		`{"title":"a.txt","content":"Alpha."}`))

	del := func(id string) int {
		req, err := http.NewRequest(http.MethodDelete, srv.URL+"/v1/documents/"+id, nil)
		require.NoError(t, err)
		resp, err := http.DefaultClient.Do(req)
		require.NoError(t, err)
		resp.Body.Close()
		return resp.StatusCode
	}

	assert.Equal(t, http.StatusNoContent, del(created.ID))
	// Deleting an already-deleted document still succeeds.
	assert.Equal(t, http.StatusNoContent, del(created.ID))
}

func TestUpdateDocument(t *testing.T) {
	srv := newTestServer(t)

	created := decode[domain.Document](t, postJSON(t, srv.URL+"/v1/documents",
		`{"title":"a.txt","content":"First."}`))

	req, err := http.NewRequest(http.MethodPut, srv.URL+"/v1/documents/"+created.ID,
		strings.NewReader(`{"content":"Second version."}`))
	require.NoError(t, err)
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	updated := decode[domain.Document](t, resp)
	assert.Equal(t, created.ID, updated.ID)
	assert.Equal(t, domain.StatusIndexed, updated.Status)
}

func TestAsk(t *testing.T) {
	srv := newTestServer(t)

	resp := postJSON(t, srv.URL+"/v1/documents",
		`{"title":"guide.txt","content":"Deploy using Docker."}`)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	resp.Body.Close()

	resp = postJSON(t, srv.URL+"/v1/query", `{"query":"How do I deploy?"}`)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	body := decode[map[string]any](t, resp)
	assert.NotEmpty(t, body["answer"])
	sources, ok := body["sources"].([]any)
	require.True(t, ok)
	require.Len(t, sources, 1)
	src := sources[0].(map[string]any)
	assert.Equal(t, "guide.txt", src["title"])
	assert.Contains(t, src, "relevanceScore")
}

func TestAsk_EmptyQuery(t *testing.T) {
	srv := newTestServer(t)

	resp := postJSON(t, srv.URL+"/v1/query", `{"query":"  "}`)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	resp.Body.Close()
}

func TestHistoryAndRating(t *testing.T) {
	srv := newTestServer(t)

	resp := postJSON(t, srv.URL+"/v1/query", `{"query":"anything"}`)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()

	resp, err := http.Get(srv.URL + "/v1/history")
	require.NoError(t, err)
	records := decode[[]domain.QueryRecord](t, resp)
	require.Len(t, records, 1)
	assert.Equal(t, "anything", records[0].Query)

	resp = postJSON(t, srv.URL+"/v1/history/"+records[0].ID+"/rating", `{"rating":4}`)
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)
	resp.Body.Close()

	resp = postJSON(t, srv.URL+"/v1/history/"+records[0].ID+"/rating", `{"rating":9}`)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	resp.Body.Close()
}

func TestStats(t *testing.T) {
	srv := newTestServer(t)

	resp := postJSON(t, srv.URL+"/v1/documents", `{"title":"a.txt","content":"Alpha."}`)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	resp.Body.Close()

	resp, err := http.Get(srv.URL + "/v1/stats")
	require.NoError(t, err)
	stats := decode[map[string]int](t, resp)
	assert.Equal(t, 1, stats["documents"])
	assert.Equal(t, 1, stats["chunks"])
}
