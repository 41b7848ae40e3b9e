package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"
)

var (
	askTopK int
	askJSON bool
)

var askCmd = &cobra.Command{
	Use:   "ask [question]",
	Short: "Ask a question about your documents",
	Long: `Retrieves the most relevant passages from the indexed library and
synthesises an answer grounded in them. Sources are listed with their
relevance scores.`,
	Args: cobra.ExactArgs(1),
	RunE: runAsk,
}

func init() {
	askCmd.Flags().IntVarP(&askTopK, "top-k", "k", 0, "number of chunks to retrieve (default from config)")
	askCmd.Flags().BoolVar(&askJSON, "json", false, "output the answer as JSON")
	rootCmd.AddCommand(askCmd)
}

func runAsk(cmd *cobra.Command, args []string) error {
	if queryService == nil {
		return errors.New("query service not configured")
	}

	topK := askTopK
	if topK == 0 {
		topK = appSettings.TopK
	}

	result, err := queryService.Ask(cmd.Context(), args[0], topK)
	if err != nil {
		return fmt.Errorf("query failed: %w", err)
	}

	if askJSON {
		data, err := json.MarshalIndent(result, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal answer: %w", err)
		}
		cmd.Println(string(data))
		return nil
	}

	cmd.Println(result.Answer)

	if len(result.Sources) > 0 {
		cmd.Println()
		cmd.Println("Sources:")
		for i := range result.Sources {
			cmd.Printf("  [%d] %s (%.0f%%)\n", i+1, result.Sources[i].Title, result.Sources[i].Score*100)
		}
	}

	cmd.Println()
	cmd.Printf("Answered in %s\n", result.ProcessingTime.Round(time.Millisecond))
	return nil
}
