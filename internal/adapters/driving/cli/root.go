package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	configfile "github.com/helix-labs/docqa-cli/internal/adapters/driven/config/file"
	embeddingfailover "github.com/helix-labs/docqa-cli/internal/adapters/driven/embedding/failover"
	embeddinglocal "github.com/helix-labs/docqa-cli/internal/adapters/driven/embedding/local"
	embeddingopenai "github.com/helix-labs/docqa-cli/internal/adapters/driven/embedding/openai"
	"github.com/helix-labs/docqa-cli/internal/adapters/driven/extractor"
	llmopenai "github.com/helix-labs/docqa-cli/internal/adapters/driven/llm/openai"
	"github.com/helix-labs/docqa-cli/internal/adapters/driven/storage/memory"
	"github.com/helix-labs/docqa-cli/internal/adapters/driven/storage/sqlite"
	"github.com/helix-labs/docqa-cli/internal/chunker"
	"github.com/helix-labs/docqa-cli/internal/core/ports/driven"
	"github.com/helix-labs/docqa-cli/internal/core/ports/driving"
	"github.com/helix-labs/docqa-cli/internal/core/services"
	"github.com/helix-labs/docqa-cli/internal/logger"
)

// version is set at build time via -ldflags.
var version = "dev"

// Services used by the commands. Populated by initServices on first use;
// tests may inject their own implementations.
var (
	libraryService   driving.LibraryService
	queryService     driving.QueryService
	configStore      driven.ConfigStore
	contentExtractor driven.ContentExtractor
	appSettings      configfile.Settings
)

var verbose bool

var rootCmd = &cobra.Command{
	Use:   "docqa",
	Short: "Ask questions about your documents",
	Long: `docqa indexes your documents and answers questions about them.

Documents are chunked, embedded and stored locally. Queries retrieve the
most relevant passages and synthesise an answer grounded in them.`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentPreRunE = func(cmd *cobra.Command, _ []string) error {
		logger.SetVerbose(verbose)

		switch cmd.Name() {
		case "version", "help", "completion":
			return nil
		}
		return initServices()
	}
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose output")
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

// initServices wires the full service graph from configuration. Already
// injected services (e.g. by tests) are left alone.
func initServices() error {
	if libraryService != nil && queryService != nil {
		return nil
	}

	cfg, err := configfile.NewConfigStore("")
	if err != nil {
		return fmt.Errorf("open config: %w", err)
	}
	configStore = cfg
	appSettings = configfile.ResolveSettings(cfg)

	kv, err := sqlite.NewStore(appSettings.DataDir)
	if err != nil {
		return fmt.Errorf("open storage: %w", err)
	}

	ctx := rootCmd.Context()

	docStore, err := memory.NewDocumentStore(ctx, kv)
	if err != nil {
		return fmt.Errorf("load documents: %w", err)
	}
	vectorStore, err := memory.NewVectorStore(ctx, kv)
	if err != nil {
		return fmt.Errorf("load vector store: %w", err)
	}
	historyStore, err := memory.NewHistoryStore(ctx, kv)
	if err != nil {
		return fmt.Errorf("load history: %w", err)
	}

	local := embeddinglocal.NewEmbeddingService(0)

	var remote driven.EmbeddingService
	var llm driven.LLMService
	if appSettings.APIKey != "" {
		remoteSvc, err := embeddingopenai.NewEmbeddingService(embeddingopenai.Config{
			APIKey:  appSettings.APIKey,
			BaseURL: appSettings.BaseURL,
			Model:   appSettings.EmbeddingModel,
		})
		if err != nil {
			return fmt.Errorf("configure embedding provider: %w", err)
		}
		remote = remoteSvc

		llmSvc, err := llmopenai.NewLLMService(llmopenai.Config{
			APIKey:  appSettings.APIKey,
			BaseURL: appSettings.BaseURL,
			Model:   appSettings.ChatModel,
		})
		if err != nil {
			return fmt.Errorf("configure chat provider: %w", err)
		}
		llm = llmSvc
	} else {
		logger.Debug("No API key configured, using local embeddings and templated answers")
	}

	embedder := embeddingfailover.NewEmbeddingService(remote, local)

	var splitterOpts []chunker.Option
	if appSettings.ChunkSize > 0 {
		splitterOpts = append(splitterOpts, chunker.WithChunkSize(appSettings.ChunkSize))
	}
	if appSettings.ChunkOverlap > 0 {
		splitterOpts = append(splitterOpts, chunker.WithOverlap(appSettings.ChunkOverlap))
	}

	contentExtractor = extractor.New()

	var libraryOpts []services.LibraryOption
	if appSettings.MaxUploadMB > 0 {
		libraryOpts = append(libraryOpts, services.WithMaxUploadBytes(int64(appSettings.MaxUploadMB)<<20))
	}

	libraryService = services.NewLibrary(
		docStore,
		vectorStore,
		contentExtractor,
		embedder,
		chunker.New(splitterOpts...),
		libraryOpts...,
	)

	queryService = services.NewQuery(
		services.NewRetriever(vectorStore, embedder),
		services.NewSynthesizer(llm),
		historyStore,
	)

	return nil
}
