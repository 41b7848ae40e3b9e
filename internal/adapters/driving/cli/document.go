package cli

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/helix-labs/docqa-cli/internal/core/domain"
	"github.com/helix-labs/docqa-cli/internal/core/ports/driving"
)

var documentCmd = &cobra.Command{
	Use:   "document",
	Short: "Manage the document library",
	Long:  `Add, list, view, update, or remove documents from the library.`,
}

var documentAddCmd = &cobra.Command{
	Use:   "add [file...]",
	Short: "Add files to the library",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runDocumentAdd,
}

var documentListCmd = &cobra.Command{
	Use:   "list",
	Short: "List all documents",
	RunE:  runDocumentList,
}

var documentGetCmd = &cobra.Command{
	Use:   "get [doc-id]",
	Short: "Show document info",
	Args:  cobra.ExactArgs(1),
	RunE:  runDocumentGet,
}

var documentUpdateCmd = &cobra.Command{
	Use:   "update [doc-id] [file]",
	Short: "Replace document content and re-index",
	Args:  cobra.ExactArgs(2),
	RunE:  runDocumentUpdate,
}

var documentRemoveCmd = &cobra.Command{
	Use:   "remove [doc-id]",
	Short: "Remove a document and its index entries",
	Args:  cobra.ExactArgs(1),
	RunE:  runDocumentRemove,
}

var documentClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Remove all documents",
	RunE:  runDocumentClear,
}

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show library statistics",
	RunE:  runStats,
}

func init() {
	documentCmd.AddCommand(documentAddCmd)
	documentCmd.AddCommand(documentListCmd)
	documentCmd.AddCommand(documentGetCmd)
	documentCmd.AddCommand(documentUpdateCmd)
	documentCmd.AddCommand(documentRemoveCmd)
	documentCmd.AddCommand(documentClearCmd)
	rootCmd.AddCommand(documentCmd)
	rootCmd.AddCommand(statsCmd)
}

func runDocumentAdd(cmd *cobra.Command, args []string) error {
	if libraryService == nil {
		return errors.New("library service not configured")
	}

	ctx := cmd.Context()
	failures := 0

	for _, path := range args {
		data, err := os.ReadFile(path)
		if err != nil {
			cmd.Printf("  %s: %v\n", path, err)
			failures++
			continue
		}

		doc, err := libraryService.Upload(ctx, driving.UploadRequest{
			Title:   filepath.Base(path),
			Content: data,
		})
		if err != nil {
			cmd.Printf("  %s: %v\n", path, err)
			failures++
			continue
		}

		if doc.Status == domain.StatusError {
			cmd.Printf("  %s: indexing failed: %s\n", path, doc.ErrorMessage)
			failures++
			continue
		}
		cmd.Printf("  %s: indexed as %s (%d chunks)\n", path, doc.ID, doc.ChunkCount)
	}

	if failures > 0 {
		return fmt.Errorf("%d of %d files failed", failures, len(args))
	}
	return nil
}

func runDocumentList(cmd *cobra.Command, _ []string) error {
	if libraryService == nil {
		return errors.New("library service not configured")
	}

	docs, err := libraryService.List(cmd.Context())
	if err != nil {
		return fmt.Errorf("failed to list documents: %w", err)
	}

	if len(docs) == 0 {
		cmd.Println("No documents in the library.")
		return nil
	}

	cmd.Println("Documents:")
	cmd.Println()
	for i := range docs {
		cmd.Printf("  %s\n", docs[i].ID)
		cmd.Printf("    Title:   %s\n", docs[i].Title)
		cmd.Printf("    Status:  %s\n", docs[i].Status)
		if docs[i].Status == domain.StatusError {
			cmd.Printf("    Error:   %s\n", docs[i].ErrorMessage)
		}
		cmd.Printf("    Chunks:  %d\n", docs[i].ChunkCount)
		cmd.Println()
	}

	cmd.Printf("Total: %d documents\n", len(docs))
	return nil
}

func runDocumentGet(cmd *cobra.Command, args []string) error {
	if libraryService == nil {
		return errors.New("library service not configured")
	}

	doc, err := libraryService.Get(cmd.Context(), args[0])
	if err != nil {
		return fmt.Errorf("failed to get document: %w", err)
	}

	cmd.Printf("Document: %s\n\n", doc.ID)
	cmd.Printf("  Title:    %s\n", doc.Title)
	cmd.Printf("  Type:     %s\n", doc.FileType)
	cmd.Printf("  Size:     %d bytes\n", doc.Size)
	cmd.Printf("  Status:   %s\n", doc.Status)
	if doc.ErrorMessage != "" {
		cmd.Printf("  Error:    %s\n", doc.ErrorMessage)
	}
	cmd.Printf("  Chunks:   %d\n", doc.ChunkCount)
	cmd.Printf("  Created:  %s\n", doc.CreatedAt.Format("2006-01-02 15:04:05"))
	cmd.Printf("  Updated:  %s\n", doc.UpdatedAt.Format("2006-01-02 15:04:05"))

	return nil
}

func runDocumentUpdate(cmd *cobra.Command, args []string) error {
	if libraryService == nil {
		return errors.New("library service not configured")
	}

	data, err := os.ReadFile(args[1])
	if err != nil {
		return fmt.Errorf("failed to read file: %w", err)
	}

	doc, err := libraryService.Update(cmd.Context(), args[0], "", data)
	if err != nil {
		return fmt.Errorf("failed to update document: %w", err)
	}

	if doc.Status == domain.StatusError {
		return fmt.Errorf("re-indexing failed: %s", doc.ErrorMessage)
	}
	cmd.Printf("Document %s re-indexed (%d chunks).\n", doc.ID, doc.ChunkCount)
	return nil
}

func runDocumentRemove(cmd *cobra.Command, args []string) error {
	if libraryService == nil {
		return errors.New("library service not configured")
	}

	if err := libraryService.Delete(cmd.Context(), args[0]); err != nil {
		return fmt.Errorf("failed to remove document: %w", err)
	}

	cmd.Printf("Document %s removed.\n", args[0])
	return nil
}

func runDocumentClear(cmd *cobra.Command, _ []string) error {
	if libraryService == nil {
		return errors.New("library service not configured")
	}

	if err := libraryService.Clear(cmd.Context()); err != nil {
		return fmt.Errorf("failed to clear library: %w", err)
	}

	cmd.Println("Library cleared.")
	return nil
}

func runStats(cmd *cobra.Command, _ []string) error {
	if libraryService == nil {
		return errors.New("library service not configured")
	}

	stats, err := libraryService.Stats(cmd.Context())
	if err != nil {
		return fmt.Errorf("failed to get stats: %w", err)
	}

	cmd.Println("Library")
	cmd.Println("=======")
	cmd.Printf("  Documents:  %d\n", stats.Documents)
	cmd.Printf("  Indexed:    %d\n", stats.IndexedDocuments)
	cmd.Printf("  Chunks:     %d\n", stats.Chunks)
	return nil
}
