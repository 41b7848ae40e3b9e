package file

import (
	"os"

	"github.com/helix-labs/docqa-cli/internal/core/ports/driven"
)

// Configuration keys.
const (
	KeyAPIKey         = "openai.api_key"
	KeyBaseURL        = "openai.base_url"
	KeyEmbeddingModel = "openai.embedding_model"
	KeyChatModel      = "openai.chat_model"
	KeyChunkSize      = "index.chunk_size"
	KeyChunkOverlap   = "index.chunk_overlap"
	KeyMaxUploadMB    = "index.max_upload_mb"
	KeyTopK           = "query.top_k"
	KeyDataDir        = "storage.data_dir"
	KeyServerAddr     = "server.addr"
	KeyWatchDir       = "watch.dir"
)

// Settings is the resolved application configuration: config file values
// with environment overrides applied. Zero values mean "use the
// component's default".
type Settings struct {
	APIKey         string
	BaseURL        string
	EmbeddingModel string
	ChatModel      string
	ChunkSize      int
	ChunkOverlap   int
	MaxUploadMB    int
	TopK           int
	DataDir        string
	ServerAddr     string
	WatchDir       string
}

// ResolveSettings reads known keys from the store and applies environment
// overrides. OPENAI_API_KEY and OPENAI_BASE_URL take precedence over the
// config file so CI and one-off runs don't need a persisted key.
func ResolveSettings(store driven.ConfigStore) Settings {
	s := Settings{
		APIKey:         store.GetString(KeyAPIKey),
		BaseURL:        store.GetString(KeyBaseURL),
		EmbeddingModel: store.GetString(KeyEmbeddingModel),
		ChatModel:      store.GetString(KeyChatModel),
		ChunkSize:      store.GetInt(KeyChunkSize),
		ChunkOverlap:   store.GetInt(KeyChunkOverlap),
		MaxUploadMB:    store.GetInt(KeyMaxUploadMB),
		TopK:           store.GetInt(KeyTopK),
		DataDir:        store.GetString(KeyDataDir),
		ServerAddr:     store.GetString(KeyServerAddr),
		WatchDir:       store.GetString(KeyWatchDir),
	}

	if v := os.Getenv("OPENAI_API_KEY"); v != "" {
		s.APIKey = v
	}
	if v := os.Getenv("OPENAI_BASE_URL"); v != "" {
		s.BaseURL = v
	}
	if v := os.Getenv("DOCQA_DATA_DIR"); v != "" {
		s.DataDir = v
	}

	return s
}
