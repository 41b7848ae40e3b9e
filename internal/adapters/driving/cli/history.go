package cli

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show past queries",
	RunE:  runHistoryList,
}

var historyRateCmd = &cobra.Command{
	Use:   "rate [record-id] [rating]",
	Short: "Rate a past answer from 1 to 5",
	Args:  cobra.ExactArgs(2),
	RunE:  runHistoryRate,
}

func init() {
	historyCmd.AddCommand(historyRateCmd)
	rootCmd.AddCommand(historyCmd)
}

func runHistoryList(cmd *cobra.Command, _ []string) error {
	if queryService == nil {
		return errors.New("query service not configured")
	}

	records, err := queryService.History(cmd.Context())
	if err != nil {
		return fmt.Errorf("failed to load history: %w", err)
	}

	if len(records) == 0 {
		cmd.Println("No queries yet.")
		return nil
	}

	cmd.Println("Query history (most recent first):")
	cmd.Println()
	for i := range records {
		cmd.Printf("  %s\n", records[i].ID)
		cmd.Printf("    Asked:   %s\n", records[i].CreatedAt.Format("2006-01-02 15:04:05"))
		cmd.Printf("    Query:   %s\n", records[i].Query)
		if records[i].Sources != "" {
			cmd.Printf("    Sources: %s\n", records[i].Sources)
		}
		if records[i].Rating > 0 {
			cmd.Printf("    Rating:  %d/5\n", records[i].Rating)
		}
		cmd.Println()
	}

	cmd.Printf("Total: %d queries\n", len(records))
	return nil
}

func runHistoryRate(cmd *cobra.Command, args []string) error {
	if queryService == nil {
		return errors.New("query service not configured")
	}

	rating, err := strconv.Atoi(args[1])
	if err != nil {
		return fmt.Errorf("rating must be a number: %w", err)
	}

	if err := queryService.Rate(cmd.Context(), args[0], rating); err != nil {
		return fmt.Errorf("failed to rate answer: %w", err)
	}

	cmd.Printf("Rated %s: %d/5\n", args[0], rating)
	return nil
}
