package cli

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	configfile "github.com/helix-labs/docqa-cli/internal/adapters/driven/config/file"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage configuration",
	RunE:  runConfigShow,
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show current configuration",
	RunE:  runConfigShow,
}

var configSetCmd = &cobra.Command{
	Use:   "set [key] [value]",
	Short: "Set a configuration value",
	Long: `Set a configuration value by key. Integer values are stored as
integers, everything else as strings.

Keys:
  openai.api_key          API key (prefer 'config set-key' for this)
  openai.base_url         API base URL override
  openai.embedding_model  embedding model name
  openai.chat_model       chat model name
  index.chunk_size        target chunk size in characters
  index.chunk_overlap     chunk overlap hint in characters
  index.max_upload_mb     upload size limit in MiB
  query.top_k             chunks retrieved per query
  storage.data_dir        data directory
  server.addr             HTTP listen address
  watch.dir               directory for the watch command`,
	Args: cobra.ExactArgs(2),
	RunE: runConfigSet,
}

var configSetKeyCmd = &cobra.Command{
	Use:   "set-key",
	Short: "Set the API key (prompted, not echoed)",
	RunE:  runConfigSetKey,
}

func init() {
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configSetCmd)
	configCmd.AddCommand(configSetKeyCmd)
	rootCmd.AddCommand(configCmd)
}

func runConfigShow(cmd *cobra.Command, _ []string) error {
	if configStore == nil {
		return errors.New("config store not configured")
	}

	s := configfile.ResolveSettings(configStore)

	cmd.Printf("Config file: %s\n\n", configStore.Path())

	cmd.Println("[OpenAI]")
	if s.APIKey != "" {
		cmd.Printf("  API Key:         %s\n", maskAPIKey(s.APIKey))
	} else {
		cmd.Println("  API Key:         (not set, using local embeddings)")
	}
	printOrDefault(cmd, "Base URL", s.BaseURL)
	printOrDefault(cmd, "Embedding model", s.EmbeddingModel)
	printOrDefault(cmd, "Chat model", s.ChatModel)
	cmd.Println()

	cmd.Println("[Index]")
	printIntOrDefault(cmd, "Chunk size", s.ChunkSize)
	printIntOrDefault(cmd, "Chunk overlap", s.ChunkOverlap)
	printIntOrDefault(cmd, "Max upload MB", s.MaxUploadMB)
	cmd.Println()

	cmd.Println("[Query]")
	printIntOrDefault(cmd, "Top K", s.TopK)
	cmd.Println()

	cmd.Println("[Storage]")
	printOrDefault(cmd, "Data dir", s.DataDir)

	return nil
}

func runConfigSet(cmd *cobra.Command, args []string) error {
	if configStore == nil {
		return errors.New("config store not configured")
	}

	key, value := args[0], args[1]

	if n, err := strconv.Atoi(value); err == nil {
		if err := configStore.Set(key, n); err != nil {
			return fmt.Errorf("failed to set %s: %w", key, err)
		}
	} else {
		if err := configStore.Set(key, value); err != nil {
			return fmt.Errorf("failed to set %s: %w", key, err)
		}
	}

	cmd.Printf("Set %s\n", key)
	return nil
}

func runConfigSetKey(cmd *cobra.Command, _ []string) error {
	if configStore == nil {
		return errors.New("config store not configured")
	}

	cmd.Print("Enter API key: ")
	apiKey := readPassword()
	cmd.Println()
	if apiKey == "" {
		return errors.New("API key must not be empty")
	}

	if err := configStore.Set(configfile.KeyAPIKey, apiKey); err != nil {
		return fmt.Errorf("failed to save API key: %w", err)
	}

	cmd.Println("API key saved.")
	return nil
}

// Helper functions.

func printOrDefault(cmd *cobra.Command, label, value string) {
	if value == "" {
		value = "(default)"
	}
	cmd.Printf("  %-16s %s\n", label+":", value)
}

func printIntOrDefault(cmd *cobra.Command, label string, value int) {
	if value == 0 {
		cmd.Printf("  %-16s (default)\n", label+":")
		return
	}
	cmd.Printf("  %-16s %d\n", label+":", value)
}

//nolint:errcheck // CLI helper, error ignored for UX
func readPassword() string {
	// Try to read the key without echo
	if term.IsTerminal(int(os.Stdin.Fd())) {
		password, err := term.ReadPassword(int(os.Stdin.Fd()))
		if err == nil {
			return string(password)
		}
	}
	// Fallback to regular input
	reader := bufio.NewReader(os.Stdin)
	input, _ := reader.ReadString('\n')
	return strings.TrimSpace(input)
}

func maskAPIKey(key string) string {
	if len(key) <= 8 {
		return "****"
	}
	return key[:4] + "..." + key[len(key)-4:]
}
